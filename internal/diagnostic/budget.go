package diagnostic

import "sync"

// Budget caps how many diagnostics a single rule may emit per file, the
// same capped-accumulation idea as armon/circbuf's fixed-capacity buffer —
// here capping diagnostic count rather than bytes, since an unbounded
// pathological rule (e.g. a pattern that matches every rule line in a huge
// generated FSH file) must not be allowed to blow up memory or output size.
type Budget struct {
	mu       sync.Mutex
	limit    int
	counts   map[string]int
	overflow map[string]bool
}

// NewBudget creates a Budget allowing up to limit diagnostics per rule id.
// A non-positive limit means unbounded.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit, counts: make(map[string]int), overflow: make(map[string]bool)}
}

// Allow reports whether one more diagnostic from ruleID may be emitted, and
// records it if so. Once a rule hits the limit, every subsequent call
// returns false and Overflowed(ruleID) becomes true.
func (b *Budget) Allow(ruleID string) bool {
	if b.limit <= 0 {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.counts[ruleID] >= b.limit {
		b.overflow[ruleID] = true
		return false
	}
	b.counts[ruleID]++
	return true
}

// Overflowed reports whether ruleID has hit its budget at least once.
func (b *Budget) Overflowed(ruleID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflow[ruleID]
}

// OverflowedRules returns every rule id that hit its budget, for a summary
// line like "namingconvention: 100+ findings, truncated".
func (b *Budget) OverflowedRules() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.overflow))
	for id := range b.overflow {
		out = append(out, id)
	}
	return out
}
