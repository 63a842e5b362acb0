package core

import "errors"

// Kernel contract violations. These signal bookkeeping logic errors, not
// transient conditions: callers must not retry, and whether a violation
// aborts the tick or skips the offending entity is host policy.
var (
	// ErrDuplicateComponent is returned when attaching a component an entity already has
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrMissingComponent is returned when reading or detaching a component an entity does not have
	ErrMissingComponent = errors.New("missing component")

	// ErrIndexOutOfRange is returned for bit indices outside 0..31
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidEntity is returned for ids that were never allocated or have been destroyed
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCapacityExceeded is returned when the world's fixed entity capacity is exhausted
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
