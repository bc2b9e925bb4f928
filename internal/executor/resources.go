package executor

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryLimiter enforces a soft byte budget, sampled between file
// dispatches via runtime.ReadMemStats. Once the budget is exceeded,
// further scheduling blocks until an in-flight file completes and memory
// is resampled below the limit.
type MemoryLimiter struct {
	// LimitBytes is the soft budget. Zero means unlimited.
	LimitBytes uint64

	mu sync.Mutex
}

// Wait blocks until current heap usage is below LimitBytes, or ctx is done.
// A zero LimitBytes never blocks.
func (m *MemoryLimiter) Wait(ctx context.Context) {
	if m == nil || m.LimitBytes == 0 {
		return
	}
	for {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		if ms.HeapAlloc < m.LimitBytes {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Backpressure caps the number of files in flight at once; a producer
// calling Acquire blocks when the cap is already reached.
type Backpressure struct {
	sem chan struct{}
}

// NewBackpressure creates a controller allowing at most maxInFlight files
// in flight simultaneously. maxInFlight <= 0 means unlimited (Acquire never
// blocks).
func NewBackpressure(maxInFlight int) *Backpressure {
	if maxInFlight <= 0 {
		return &Backpressure{}
	}
	return &Backpressure{sem: make(chan struct{}, maxInFlight)}
}

// Acquire reserves one in-flight slot, blocking until one is available or
// ctx is done.
func (b *Backpressure) Acquire(ctx context.Context) {
	if b == nil || b.sem == nil {
		return
	}
	select {
	case b.sem <- struct{}{}:
	case <-ctx.Done():
	}
}

// Release frees one in-flight slot.
func (b *Backpressure) Release() {
	if b == nil || b.sem == nil {
		return
	}
	select {
	case <-b.sem:
	default:
	}
}

// MonitorSnapshot is a point-in-time read of ResourceMonitor's counters.
type MonitorSnapshot struct {
	PeakMemory        uint64
	CurrentMemory     uint64
	ActiveWorkers     int64
	CPUTime           time.Duration
	FilesProcessed    int64
	AvgProcessingTime time.Duration
}

// ResourceMonitor samples memory and worker activity on an interval and
// tracks running totals needed for the progress/resource-usage report.
type ResourceMonitor struct {
	// Interval is how often Sample updates CurrentMemory/PeakMemory when
	// driven by Run (see ResourceController.Sample). Exposed for callers
	// that want to drive a ticker goroutine themselves; ResourceController
	// samples synchronously on its own schedule instead.
	Interval time.Duration

	startedAt time.Time

	peakMemory     uint64
	currentMemory  uint64
	activeWorkers  int64
	filesProcessed int64
	totalProcessed time.Duration

	mu sync.Mutex
}

// NewResourceMonitor creates a monitor. interval is advisory metadata for
// callers driving their own ticker; it is not used internally.
func NewResourceMonitor(interval time.Duration) *ResourceMonitor {
	return &ResourceMonitor{Interval: interval, startedAt: time.Now()}
}

// Sample reads current memory stats and updates Current/Peak.
func (m *ResourceMonitor) Sample() {
	if m == nil {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentMemory = ms.HeapAlloc
	if ms.HeapAlloc > m.peakMemory {
		m.peakMemory = ms.HeapAlloc
	}
}

// WorkerStarted increments the active-worker count.
func (m *ResourceMonitor) WorkerStarted() {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.activeWorkers, 1)
}

// WorkerFinished decrements the active-worker count and records how long
// the file took to process.
func (m *ResourceMonitor) WorkerFinished(elapsed time.Duration) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.activeWorkers, -1)
	atomic.AddInt64(&m.filesProcessed, 1)
	m.mu.Lock()
	m.totalProcessed += elapsed
	m.mu.Unlock()
}

// Snapshot returns the monitor's current counters.
func (m *ResourceMonitor) Snapshot() MonitorSnapshot {
	if m == nil {
		return MonitorSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	processed := atomic.LoadInt64(&m.filesProcessed)
	var avg time.Duration
	if processed > 0 {
		avg = m.totalProcessed / time.Duration(processed)
	}

	return MonitorSnapshot{
		PeakMemory:        m.peakMemory,
		CurrentMemory:     m.currentMemory,
		ActiveWorkers:     atomic.LoadInt64(&m.activeWorkers),
		CPUTime:           time.Since(m.startedAt),
		FilesProcessed:    processed,
		AvgProcessingTime: avg,
	}
}

// ResourceController bundles a MemoryLimiter, Backpressure controller, and
// ResourceMonitor into the single set of gates an Executor consults between
// file dispatches.
type ResourceController struct {
	Memory   *MemoryLimiter
	Backpres *Backpressure
	Monitor  *ResourceMonitor
}

// NewResourceController wires a MemoryLimiter, Backpressure, and
// ResourceMonitor with the given limits. limitBytes or maxInFlight of 0
// disables that gate.
func NewResourceController(limitBytes uint64, maxInFlight int, monitorInterval time.Duration) *ResourceController {
	return &ResourceController{
		Memory:   &MemoryLimiter{LimitBytes: limitBytes},
		Backpres: NewBackpressure(maxInFlight),
		Monitor:  NewResourceMonitor(monitorInterval),
	}
}

// Acquire blocks until both the memory budget and the in-flight cap allow
// scheduling one more file, then marks one worker active.
func (rc *ResourceController) Acquire(ctx context.Context) {
	if rc == nil {
		return
	}
	rc.Memory.Wait(ctx)
	rc.Backpres.Acquire(ctx)
	rc.Monitor.WorkerStarted()
}

// Release frees the in-flight slot reserved by Acquire and records how long
// the file took to process.
func (rc *ResourceController) Release(elapsed time.Duration) {
	if rc == nil {
		return
	}
	rc.Backpres.Release()
	rc.Monitor.WorkerFinished(elapsed)
}

// Sample takes a memory reading. Called by a worker between its own file
// passes so PeakMemory/CurrentMemory stay current without a separate ticker
// goroutine.
func (rc *ResourceController) Sample() {
	if rc == nil {
		return
	}
	rc.Monitor.Sample()
}

// Snapshot returns the current resource usage counters.
func (rc *ResourceController) Snapshot() MonitorSnapshot {
	if rc == nil {
		return MonitorSnapshot{}
	}
	return rc.Monitor.Snapshot()
}
