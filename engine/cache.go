package engine

// TickSource supplies the current tick for cache freshness checks
// *World satisfies it; tests substitute a fixed counter
type TickSource interface {
	CurrentTick() uint64
}

type cacheEntry[V any] struct {
	value    V
	inserted uint64
}

// TTLCache memoizes expensive per-entity computations across ticks
// Every entry is stamped with its insertion tick; a hit is fresh while
// current - inserted < ttl. Stale entries are recomputed in place on access
// and reclaimed in bulk by Prune, there is no background eviction.
type TTLCache[K comparable, V any] struct {
	ticks   TickSource
	entries map[K]cacheEntry[V]
}

// NewTTLCache creates an empty cache bound to a tick source
func NewTTLCache[K comparable, V any](ticks TickSource) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		ticks:   ticks,
		entries: make(map[K]cacheEntry[V]),
	}
}

// GetOrCompute returns the cached value for key if fresh, otherwise runs
// compute, stores the result stamped with the current tick, and returns it
func (c *TTLCache[K, V]) GetOrCompute(key K, ttl uint64, compute func() V) V {
	now := c.ticks.CurrentTick()
	if e, ok := c.entries[key]; ok && now-e.inserted < ttl {
		return e.value
	}
	v := compute()
	c.entries[key] = cacheEntry[V]{value: v, inserted: now}
	return v
}

// Peek returns the cached value for key if fresh, without computing
func (c *TTLCache[K, V]) Peek(key K, ttl uint64) (V, bool) {
	now := c.ticks.CurrentTick()
	if e, ok := c.entries[key]; ok && now-e.inserted < ttl {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Invalidate drops the entry for key so the next access recomputes
func (c *TTLCache[K, V]) Invalidate(key K) {
	delete(c.entries, key)
}

// Prune reclaims every entry whose age is at least maxAge
// Call once per tick from the owning system; cost is one map pass
func (c *TTLCache[K, V]) Prune(maxAge uint64) {
	now := c.ticks.CurrentTick()
	for k, e := range c.entries {
		if now-e.inserted >= maxAge {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of resident entries, fresh or stale
func (c *TTLCache[K, V]) Len() int {
	return len(c.entries)
}

// Clear drops all entries
func (c *TTLCache[K, V]) Clear() {
	clear(c.entries)
}
