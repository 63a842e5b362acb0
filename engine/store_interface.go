package engine

import (
	"iter"

	"github.com/lixenwraith/undercity/core"
)

// AnyStore provides type-erased operations for lifecycle management
// This interface allows World to manage all stores uniformly for operations
// like entity destruction without knowing the concrete type
type AnyStore interface {
	// Discard removes the entity's component if present, no error reporting
	Discard(e core.Entity)

	// Has checks if an entity has this component
	Has(e core.Entity) bool

	// Count returns the number of entities with this component
	Count() int

	// Clear removes all components from this store
	Clear()
}

// QueryableStore extends AnyStore with the iteration the query builder needs
// to intersect component sets
type QueryableStore interface {
	AnyStore

	// Entities yields holders in ascending id order
	Entities() iter.Seq[core.Entity]

	// All returns holders in ascending id order as a fresh slice
	All() []core.Entity
}
