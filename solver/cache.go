package solver

import (
	"sync"
)

const cacheShards = 32

// depthBounds are monotone: solvable is the smallest depth with a known
// winning strategy (0 while unknown), failed is the largest depth proven
// unsolvable. failed < solvable whenever both are set.
type depthBounds struct {
	solvable int
	failed   int
}

// Cache memoizes solvability bounds for candidate sets. Sharded by key
// hash so concurrent sessions can share it; keys carry the configuration
// and pool, so one cache can back sessions of any shape. Construct with
// NewCache.
type Cache struct {
	shards [cacheShards]cacheShard
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]depthBounds
}

func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]depthBounds)
	}
	return c
}

func (c *Cache) shard(key string) *cacheShard {
	// inline FNV-1a, avoids copying the key to a byte slice
	const offset, prime = 2166136261, 16777619
	h := uint32(offset)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime
	}
	return &c.shards[h%cacheShards]
}

func (c *Cache) bounds(key string) (depthBounds, bool) {
	s := c.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.entries[key]
	return b, ok
}

// markSolvable lowers the solvable bound to depth.
func (c *Cache) markSolvable(key string, depth int) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.entries[key]
	if b.solvable == 0 || depth < b.solvable {
		b.solvable = depth
	}
	s.entries[key] = b
}

// markFailed raises the failed bound to depth.
func (c *Cache) markFailed(key string, depth int) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.entries[key]
	if depth > b.failed {
		b.failed = depth
	}
	s.entries[key] = b
}

// Len is the number of candidate sets with cached bounds.
func (c *Cache) Len() int {
	total := 0
	for i := range c.shards {
		c.shards[i].mu.RLock()
		total += len(c.shards[i].entries)
		c.shards[i].mu.RUnlock()
	}
	return total
}
