package engine

import (
	"testing"
)

// fixedTicks is a hand-advanced tick source for cache tests
type fixedTicks struct {
	now uint64
}

func (f *fixedTicks) CurrentTick() uint64 { return f.now }

func TestCacheComputesOnceWithinTTL(t *testing.T) {
	ticks := &fixedTicks{now: 10}
	c := NewTTLCache[int, float64](ticks)

	calls := 0
	compute := func() float64 {
		calls++
		return 42.0
	}

	if v := c.GetOrCompute(1, 5, compute); v != 42.0 {
		t.Errorf("Expected 42.0, got %f", v)
	}
	ticks.now = 14 // Age 4, still fresh at ttl 5
	if v := c.GetOrCompute(1, 5, compute); v != 42.0 {
		t.Errorf("Expected cached 42.0, got %f", v)
	}

	if calls != 1 {
		t.Errorf("Expected exactly 1 compute within ttl, got %d", calls)
	}
}

func TestCacheRecomputesAfterTTL(t *testing.T) {
	ticks := &fixedTicks{now: 10}
	c := NewTTLCache[int, float64](ticks)

	calls := 0
	compute := func() float64 {
		calls++
		return float64(calls)
	}

	c.GetOrCompute(1, 5, compute)
	ticks.now = 15 // Age 5 == ttl, stale
	if v := c.GetOrCompute(1, 5, compute); v != 2.0 {
		t.Errorf("Expected recomputed value 2.0, got %f", v)
	}
	if calls != 2 {
		t.Errorf("Expected 2 computes across ttl boundary, got %d", calls)
	}
}

func TestCacheInvalidateForcesRecompute(t *testing.T) {
	ticks := &fixedTicks{now: 0}
	c := NewTTLCache[string, int](ticks)

	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	c.GetOrCompute("k", 100, compute)
	c.Invalidate("k")
	c.GetOrCompute("k", 100, compute)

	if calls != 2 {
		t.Errorf("Expected recompute after invalidate, got %d calls", calls)
	}
}

func TestCachePruneReclaimsOldEntries(t *testing.T) {
	ticks := &fixedTicks{now: 0}
	c := NewTTLCache[int, int](ticks)

	c.GetOrCompute(1, 10, func() int { return 1 })
	ticks.now = 30
	c.GetOrCompute(2, 10, func() int { return 2 })

	c.Prune(20)

	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after prune, got %d", c.Len())
	}
	if _, ok := c.Peek(2, 10); !ok {
		t.Error("Expected young entry to survive prune")
	}
	if _, ok := c.Peek(1, 1000); ok {
		t.Error("Expected old entry reclaimed")
	}
}

func TestCachePeekNeverComputes(t *testing.T) {
	ticks := &fixedTicks{now: 0}
	c := NewTTLCache[int, int](ticks)

	if _, ok := c.Peek(7, 10); ok {
		t.Error("Expected miss on empty cache")
	}

	c.GetOrCompute(7, 10, func() int { return 99 })
	ticks.now = 20
	if _, ok := c.Peek(7, 10); ok {
		t.Error("Expected stale entry to report miss")
	}
}

func TestWorldIsTickSource(t *testing.T) {
	w := NewWorld(4)
	c := NewTTLCache[int, int](w)

	calls := 0
	c.GetOrCompute(1, 2, func() int { calls++; return 0 })
	w.Tick()
	c.GetOrCompute(1, 2, func() int { calls++; return 0 })
	w.Tick()
	c.GetOrCompute(1, 2, func() int { calls++; return 0 })

	// Inserted at tick 0: fresh at tick 1, stale at tick 2
	if calls != 2 {
		t.Errorf("Expected 2 computes over 3 ticks with ttl 2, got %d", calls)
	}
}
