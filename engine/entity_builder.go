package engine

import "github.com/lixenwraith/undercity/core"

// EntityBuilder provides a fluent, type-safe interface for constructing
// entities with components. Spawn reserves an id upfront; With attaches
// components; Build reports the first error hit along the chain.
//
// Example:
//
//	e, err := engine.With(
//	    engine.With(w.Spawn(), w.Components.Identity, ident),
//	    w.Components.Wealth, wealth,
//	).Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	err    error
}

// Spawn reserves an entity id and starts a builder chain
// A full world surfaces core.ErrCapacityExceeded at Build
func (w *World) Spawn() *EntityBuilder {
	e, err := w.CreateEntity()
	return &EntityBuilder{
		world:  w,
		entity: e,
		err:    err,
	}
}

// With adds a component of type T to the entity being built
// Generic function rather than method so each store keeps compile-time type
// safety. Errors stick: after the first failure later adds are skipped.
func With[T any](eb *EntityBuilder, store *Store[T], val T) *EntityBuilder {
	if eb.err != nil {
		return eb
	}
	eb.err = store.Add(eb.entity, val)
	return eb
}

// Build finishes the chain, returning the entity id or the first error
// On error the reserved entity is destroyed so no half-built agent leaks
func (eb *EntityBuilder) Build() (core.Entity, error) {
	if eb.err != nil {
		if eb.entity != core.NoEntity {
			_ = eb.world.DestroyEntity(eb.entity)
		}
		return core.NoEntity, eb.err
	}
	return eb.entity, nil
}
