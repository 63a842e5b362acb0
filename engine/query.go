package engine

import (
	"iter"

	"github.com/lixenwraith/undercity/core"
)

// QueryBuilder provides a fluent interface for querying entities based on
// component intersection. The walk starts from the smallest store and filters
// through the rest with Has checks, so work is proportional to the rarest
// component.
//
// Results always come back in ascending entity id order regardless of which
// store seeds the walk, keeping multi-component passes reproducible.
type QueryBuilder struct {
	stores []QueryableStore
}

// Query creates a new QueryBuilder for finding entities with specific
// component combinations
//
// Example:
//
//	for e := range world.Query().
//	    With(world.Components.Rank).
//	    With(world.Components.Capability).
//	    All() { ... }
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		stores: make([]QueryableStore, 0, 4), // Pre-allocate for common case
	}
}

// With adds a component store to the query filter
// The resulting query only yields entities present in ALL specified stores
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	qb.stores = append(qb.stores, store)
	return qb
}

// All returns a lazy sequence over matching entities in ascending id order
// The sequence is restartable; each range re-selects the seed store and
// reflects store contents at that moment. An empty filter yields nothing.
func (qb *QueryBuilder) All() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		if len(qb.stores) == 0 {
			return
		}

		// Seed from the smallest store to minimize Has checks
		seed := qb.stores[0]
		for _, s := range qb.stores[1:] {
			if s.Count() < seed.Count() {
				seed = s
			}
		}

		for e := range seed.Entities() {
			match := true
			for _, s := range qb.stores {
				if s == seed {
					continue
				}
				if !s.Has(e) {
					match = false
					break
				}
			}
			if match && !yield(e) {
				return
			}
		}
	}
}

// Collect runs the query eagerly and returns matches as a fresh slice
func (qb *QueryBuilder) Collect() []core.Entity {
	result := make([]core.Entity, 0, 16)
	for e := range qb.All() {
		result = append(result, e)
	}
	return result
}

// Count returns the number of matching entities
func (qb *QueryBuilder) Count() int {
	n := 0
	for range qb.All() {
		n++
	}
	return n
}
