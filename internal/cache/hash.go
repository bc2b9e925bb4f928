package cache

import "github.com/cespare/xxhash/v2"

// ContentHash identifies source content for cache keying. Two identical
// source strings always hash equal; this is used instead of the file path
// so an unmodified file re-read under a different name still hits the cache,
// and so a modified file under the same path reliably misses.
type ContentHash struct {
	Hash uint64
	Size int
}

// HashContent computes the ContentHash of content.
func HashContent(content string) ContentHash {
	return ContentHash{
		Hash: xxhash.Sum64String(content),
		Size: len(content),
	}
}
