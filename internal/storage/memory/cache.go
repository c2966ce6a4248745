// Package memory provides the in-memory index and value cache for kvdb.
package memory

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheCapacity is the default number of values held by the cache.
const DefaultCacheCapacity = 1024

// Cache is a fixed-capacity LRU from key to value bytes. Presence of a key
// implies the key is live; callers invalidate on remove and overwrite on set
// so the cache is never consulted for deleted keys.
type Cache struct {
	lru *lru.Cache[int64, []byte]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache holding at most capacity values.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("memory: cache capacity must be positive, got %d", capacity)
	}
	inner, err := lru.New[int64, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("memory: create cache: %w", err)
	}
	return &Cache{lru: inner}, nil
}

// Get returns the cached value for key, updating its recency.
func (c *Cache) Get(key int64) ([]byte, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Peek returns the cached value without touching recency or counters.
func (c *Cache) Peek(key int64) ([]byte, bool) {
	return c.lru.Peek(key)
}

// Put inserts or refreshes the value for key, evicting the least recently
// used entry when the cache is full.
func (c *Cache) Put(key int64, value []byte) {
	c.lru.Add(key, value)
}

// Invalidate drops the entry for key if present.
func (c *Cache) Invalidate(key int64) {
	c.lru.Remove(key)
}

// Clear drops every entry. Compaction invalidates offsets wholesale, and
// clearing is the coherency discipline that goes with it.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Contains reports whether key is cached, without recency or counter effects.
func (c *Cache) Contains(key int64) bool {
	return c.lru.Contains(key)
}

// Hits returns the number of cache hits since creation.
func (c *Cache) Hits() uint64 {
	return c.hits.Load()
}

// Misses returns the number of cache misses since creation.
func (c *Cache) Misses() uint64 {
	return c.misses.Load()
}
