package cache

import "github.com/octofhir/fsh-lint/internal/syntax"

const defaultCapacity = 1000

// ParseResultCache caches parsed syntax trees keyed by content hash, so
// re-linting an unchanged file (even under a different path) skips
// re-lexing and re-parsing.
type ParseResultCache struct {
	inner *LruCache[ContentHash, *syntax.ParseResult]
}

// NewParseResultCache creates a cache with the default capacity (1000).
func NewParseResultCache() *ParseResultCache {
	return NewParseResultCacheWithCapacity(defaultCapacity)
}

// NewParseResultCacheWithCapacity creates a cache holding at most capacity
// entries.
func NewParseResultCacheWithCapacity(capacity int) *ParseResultCache {
	return &ParseResultCache{inner: NewLruCache[ContentHash, *syntax.ParseResult](capacity)}
}

// Get returns the cached parse result for contentHash, if any.
func (c *ParseResultCache) Get(contentHash ContentHash) (*syntax.ParseResult, bool) {
	return c.inner.Get(contentHash)
}

// Insert caches result under contentHash.
func (c *ParseResultCache) Insert(contentHash ContentHash, result *syntax.ParseResult) {
	c.inner.Insert(contentHash, result)
}

// Remove evicts the cached result for contentHash, if present.
func (c *ParseResultCache) Remove(contentHash ContentHash) (*syntax.ParseResult, bool) {
	return c.inner.Remove(contentHash)
}

// InvalidateAll clears every cached entry. Parse results are keyed by
// content hash, not file path, so there is no way to map a single changed
// file to the entries it might have produced; clearing everything is the
// only correct response to any change.
func (c *ParseResultCache) InvalidateAll() {
	c.inner.Clear()
}

// Stats reports the cache's current size and capacity.
func (c *ParseResultCache) Stats() Stats {
	return Stats{Size: c.inner.Len(), Capacity: c.inner.maxSize}
}

// Stats summarizes a cache's utilization.
type Stats struct {
	Size     int
	Capacity int
}

// Utilization returns the cache's fill percentage, 0 to 100.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity) * 100
}
