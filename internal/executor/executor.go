// Package executor drives the parallel pipeline: discover inputs, then for
// each file run cache lookup → parse → semantic analyze → rules → per-file
// diagnostic bundle, fanned out across a bounded worker pool and reassembled
// in input order.
//
// Grounded on the teacher's internal/linter/linter.go single-file pipeline
// (here repeated once per file by each worker) and internal/async/runtime.go's
// semaphore-channel-plus-sync.WaitGroup concurrency shape, generalized from
// async resolver-request fan-out to CPU-bound per-file pipeline execution.
package executor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/octofhir/fsh-lint/internal/cache"
	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/discovery"
	"github.com/octofhir/fsh-lint/internal/fishable"
	"github.com/octofhir/fsh-lint/internal/linter"
	"github.com/octofhir/fsh-lint/internal/semantic"
)

// FileResult is one file's pipeline outcome.
type FileResult struct {
	File        string
	Diagnostics []diagnostic.Diagnostic
	Result      *linter.Result
	Err         error
}

// Executor drives the parallel lint pipeline over a set of discovered files.
type Executor struct {
	// Concurrency is the worker pool size. Zero or negative means
	// runtime.GOMAXPROCS(0); the effective value is always at least 1.
	Concurrency int

	// Config is the resolved configuration applied to every file.
	Config *config.Config

	// ParseCache, if non-nil, is shared across all workers.
	ParseCache *cache.ParseResultCache

	// AliasTable, if non-nil, is shared across all files so aliases
	// defined in one resolve when linting another.
	AliasTable *semantic.AliasTable

	// Fishable resolves cross-file/cross-package FHIR references.
	Fishable fishable.Fishable

	// Channel receives progress updates. Nil means silent.
	Channel linter.Channel

	// Resources, if non-nil, gates scheduling by memory budget and
	// in-flight file count. Nil means unconstrained.
	Resources *ResourceController
}

// Run executes the pipeline over files, returning one FileResult per file in
// the same order as files. Per-file errors are attached to that file's
// result and do not stop the run. If ctx is cancelled between dispatches,
// Run returns the partial results collected so far alongside ctx.Err().
func (e *Executor) Run(ctx context.Context, files []discovery.DiscoveredFile) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var completedMu sync.Mutex
	completed := 0

	var cancelled error
	for i, f := range files {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		default:
		}
		if cancelled != nil {
			break
		}

		if e.Resources != nil {
			e.Resources.Acquire(ctx)
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			cancelled = ctx.Err()
			if e.Resources != nil {
				e.Resources.Release(0)
			}
		}
		if cancelled != nil {
			break
		}

		wg.Add(1)
		go func(idx int, file discovery.DiscoveredFile) {
			defer wg.Done()
			defer func() { <-sem }()

			dispatched := time.Now()
			results[idx] = e.runOne(file)
			if e.Resources != nil {
				e.Resources.Release(time.Since(dispatched))
			}

			completedMu.Lock()
			completed++
			n := completed
			completedMu.Unlock()

			e.reportProgress(len(files), n, file.Path)
		}(i, f)
	}

	wg.Wait()

	if cancelled != nil {
		return results, cancelled
	}
	return results, nil
}

func (e *Executor) runOne(file discovery.DiscoveredFile) FileResult {
	if e.Resources != nil {
		e.Resources.Sample()
	}

	result, err := linter.LintFile(linter.Input{
		FilePath:   file.Path,
		Config:     e.Config,
		Fishable:   e.Fishable,
		ParseCache: e.ParseCache,
		AliasTable: e.AliasTable,
	})
	if err != nil {
		return FileResult{File: file.Path, Err: err}
	}

	diags := result.Diagnostics
	diagnostic.SortByLocation(diags)

	return FileResult{File: file.Path, Diagnostics: diags, Result: result}
}

func (e *Executor) reportProgress(total, completed int, currentFile string) {
	if e.Channel == nil {
		return
	}
	pct := 0
	if total > 0 {
		pct = completed * 100 / total
	}
	e.Channel.Progress(currentFile, pct)
}

// AllDiagnostics concatenates every file's diagnostics in input order, the
// order the pipeline guarantees: per-file diagnostics are already sorted by
// (line, column, rule_id); the final list is simply those lists concatenated.
func AllDiagnostics(results []FileResult) []diagnostic.Diagnostic {
	total := 0
	for _, r := range results {
		total += len(r.Diagnostics)
	}
	out := make([]diagnostic.Diagnostic, 0, total)
	for _, r := range results {
		out = append(out, r.Diagnostics...)
	}
	return out
}

// FailedFiles returns the subset of results that errored during their
// pipeline pass (parse failure, config load failure that also failed its
// fallback, etc.).
func FailedFiles(results []FileResult) []FileResult {
	var out []FileResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
