package engine

import (
	"iter"

	"github.com/lixenwraith/undercity/core"
)

// Store is a fixed-capacity dense container for one component type T
// Components live packed in a dense array; a sparse table maps entity id to
// dense index for O(1) access. Removal swaps the last element into the hole,
// so dense order is arbitrary but the sparse walk in Entities is always
// ascending by id.
//
// Stores are not internally locked. All access happens on the tick goroutine
// or under World.RunSafe.
type Store[T any] struct {
	sparse []int32 // entity id -> dense index, -1 when absent
	dense  []T
	owner  []core.Entity // dense index -> entity id
	world  *World
}

func newStore[T any](w *World) *Store[T] {
	s := &Store[T]{
		sparse: make([]int32, w.capacity+1),
		dense:  make([]T, 0, w.capacity),
		owner:  make([]core.Entity, 0, w.capacity),
		world:  w,
	}
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	w.registerStore(s)
	return s
}

// Add attaches a component to a live entity
// Returns core.ErrInvalidEntity for dead or out-of-range ids and
// core.ErrDuplicateComponent when the entity already has one
func (s *Store[T]) Add(e core.Entity, val T) error {
	if !s.world.Alive(e) {
		return core.ErrInvalidEntity
	}
	if s.sparse[e] >= 0 {
		return core.ErrDuplicateComponent
	}
	s.sparse[e] = int32(len(s.dense))
	s.dense = append(s.dense, val)
	s.owner = append(s.owner, e)
	return nil
}

// Get returns a mutable handle to the entity's component
// The pointer stays valid until the next Remove or DestroyEntity on this
// store; mutate through it freely within a tick
func (s *Store[T]) Get(e core.Entity) (*T, error) {
	if !s.world.Alive(e) {
		return nil, core.ErrInvalidEntity
	}
	idx := s.sparse[e]
	if idx < 0 {
		return nil, core.ErrMissingComponent
	}
	return &s.dense[idx], nil
}

// Set overwrites the entity's component value, attaching it if absent
func (s *Store[T]) Set(e core.Entity, val T) error {
	if !s.world.Alive(e) {
		return core.ErrInvalidEntity
	}
	if idx := s.sparse[e]; idx >= 0 {
		s.dense[idx] = val
		return nil
	}
	return s.Add(e, val)
}

// Remove detaches the entity's component via swap-remove
// Returns core.ErrMissingComponent when the entity has none
func (s *Store[T]) Remove(e core.Entity) error {
	if !s.world.Alive(e) {
		return core.ErrInvalidEntity
	}
	if s.sparse[e] < 0 {
		return core.ErrMissingComponent
	}
	s.discard(e)
	return nil
}

// discard unconditionally removes e's component if present, ignoring liveness
// Used by the destroy sweep where the entity is already being torn down
func (s *Store[T]) discard(e core.Entity) {
	if int(e) >= len(s.sparse) {
		return
	}
	idx := s.sparse[e]
	if idx < 0 {
		return
	}

	last := int32(len(s.dense) - 1)
	if idx != last {
		s.dense[idx] = s.dense[last]
		moved := s.owner[last]
		s.owner[idx] = moved
		s.sparse[moved] = idx
	}
	s.dense = s.dense[:last]
	s.owner = s.owner[:last]
	s.sparse[e] = -1
}

// Has checks if the entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	if int(e) >= len(s.sparse) || e == core.NoEntity {
		return false
	}
	return s.sparse[e] >= 0
}

// Count returns the number of entities with this component
func (s *Store[T]) Count() int {
	return len(s.dense)
}

// Entities returns a lazy sequence of holders in ascending id order
// The sequence is restartable; registered ids are re-walked on each range
func (s *Store[T]) Entities() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		for id := 1; id < len(s.sparse); id++ {
			if s.sparse[id] < 0 {
				continue
			}
			if !yield(core.Entity(id)) {
				return
			}
		}
	}
}

// All returns holders in ascending id order as a fresh slice
func (s *Store[T]) All() []core.Entity {
	result := make([]core.Entity, 0, len(s.dense))
	for e := range s.Entities() {
		result = append(result, e)
	}
	return result
}

// Discard implements AnyStore for the world's destroy sweep
func (s *Store[T]) Discard(e core.Entity) {
	s.discard(e)
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	s.dense = s.dense[:0]
	s.owner = s.owner[:0]
}
