package memory

import (
	"bytes"
	"testing"
)

func TestNewCache_RejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewCache(0); err == nil {
		t.Fatalf("expected error for capacity 0")
	}
	if _, err := NewCache(-5); err == nil {
		t.Fatalf("expected error for negative capacity")
	}
}

func TestCache_PutGet(t *testing.T) {
	c := newCache(t, 4)

	if _, ok := c.Get(1); ok {
		t.Fatalf("empty cache returned a value")
	}

	c.Put(1, []byte("a"))
	v, ok := c.Get(1)
	if !ok || !bytes.Equal(v, []byte("a")) {
		t.Fatalf("Get(1) = %q, %v; want %q, true", v, ok, "a")
	}

	c.Put(1, []byte("b"))
	v, _ = c.Get(1)
	if !bytes.Equal(v, []byte("b")) {
		t.Fatalf("overwrite: Get(1) = %q, want %q", v, "b")
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newCache(t, 2)

	c.Put(1, []byte("a"))
	c.Put(2, []byte("b"))

	// Touch 1 so that 2 becomes the eviction victim.
	if _, ok := c.Get(1); !ok {
		t.Fatalf("Get(1) missed")
	}

	c.Put(3, []byte("c"))

	if c.Contains(2) {
		t.Fatalf("key 2 should have been evicted before key 3")
	}
	if !c.Contains(1) || !c.Contains(3) {
		t.Fatalf("keys 1 and 3 should survive eviction")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestCache_InvalidateAndClear(t *testing.T) {
	c := newCache(t, 4)

	c.Put(1, []byte("a"))
	c.Put(2, []byte("b"))

	c.Invalidate(1)
	if c.Contains(1) {
		t.Fatalf("key 1 still present after Invalidate")
	}
	// Invalidating an absent key is a no-op.
	c.Invalidate(99)

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestCache_HitMissCounters(t *testing.T) {
	c := newCache(t, 2)

	c.Put(1, []byte("a"))

	c.Get(1) // hit
	c.Get(2) // miss
	c.Get(1) // hit

	if c.Hits() != 2 {
		t.Fatalf("Hits = %d, want 2", c.Hits())
	}
	if c.Misses() != 1 {
		t.Fatalf("Misses = %d, want 1", c.Misses())
	}

	// Peek and Contains leave the counters alone.
	c.Peek(1)
	c.Contains(2)
	if c.Hits() != 2 || c.Misses() != 1 {
		t.Fatalf("counters moved on Peek/Contains: hits=%d misses=%d", c.Hits(), c.Misses())
	}
}

func newCache(t *testing.T, capacity int) *Cache {
	t.Helper()

	c, err := NewCache(capacity)
	if err != nil {
		t.Fatalf("NewCache(%d): %v", capacity, err)
	}
	return c
}
