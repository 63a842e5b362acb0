package engine

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/status"
)

// World contains all entities and their components using typed stores
// Capacity is fixed at construction; entity ids run 1..capacity and are
// recycled through a free list after destruction.
//
// The world is the sole owner of stores, systems, and the tick counter.
// Systems run single-threaded inside Tick; host goroutines coordinate
// through RunSafe, the event queue, and the status registry.
type World struct {
	capacity   int
	nextID     core.Entity
	freeIDs    []core.Entity
	alive      []bool
	aliveCount int

	tick atomic.Uint64

	Components ComponentStore
	allStores  []AnyStore

	systems []System

	Status     *status.Registry
	eventQueue *event.Queue

	updateMutex sync.Mutex
}

// NewWorld creates a world with a fixed entity capacity
func NewWorld(capacity int) *World {
	w := &World{
		capacity: capacity,
		nextID:   1,
		freeIDs:  make([]core.Entity, 0, 16),
		alive:    make([]bool, capacity+1),
		systems:  make([]System, 0, 8),
		Status:   status.NewRegistry(),
	}
	w.eventQueue = event.NewQueue()

	initComponentStores(w)

	return w
}

// registerStore adds a store to the lifecycle sweep list
// Called by newStore during component store initialization
func (w *World) registerStore(s AnyStore) {
	w.allStores = append(w.allStores, s)
}

// Capacity returns the fixed entity capacity
func (w *World) Capacity() int {
	return w.capacity
}

// CreateEntity reserves an entity id, recycling freed ids first
// Returns core.ErrCapacityExceeded when the world is full
func (w *World) CreateEntity() (core.Entity, error) {
	if n := len(w.freeIDs); n > 0 {
		id := w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
		w.alive[id] = true
		w.aliveCount++
		return id, nil
	}
	if int(w.nextID) > w.capacity {
		return core.NoEntity, core.ErrCapacityExceeded
	}
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	w.aliveCount++
	return id, nil
}

// DestroyEntity removes the entity and all its components
// Relationship slots elsewhere may keep the dead id; readers existence-check
// before use rather than the world scrubbing every reference
func (w *World) DestroyEntity(e core.Entity) error {
	if !w.Alive(e) {
		return core.ErrInvalidEntity
	}
	for _, store := range w.allStores {
		store.Discard(e)
	}
	w.alive[e] = false
	w.aliveCount--
	w.freeIDs = append(w.freeIDs, e)
	return nil
}

// Alive reports whether e is a live entity in this world
func (w *World) Alive(e core.Entity) bool {
	if e == core.NoEntity || int(e) > w.capacity {
		return false
	}
	return w.alive[e]
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return w.aliveCount
}

// CurrentTick returns the tick counter, safe from any goroutine
func (w *World) CurrentTick() uint64 {
	return w.tick.Load()
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in priority order
func (w *World) Systems() []System {
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
// Host goroutines use this for any direct store access between ticks
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Tick advances the counter and runs all systems once, in priority order
// Systems observing CurrentTick during the pass see the tick being executed
func (w *World) Tick() {
	w.RunSafe(func() {
		w.tick.Add(1)
		for _, system := range w.systems {
			system.Update()
		}
	})
}

// PushEvent emits a sim event stamped with the current tick
// Safe for concurrent producers; the host loop is the single consumer
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.Event{
		Type:    eventType,
		Tick:    w.tick.Load(),
		Payload: payload,
	})
}

// Events returns the world's event queue for host-side consumption
func (w *World) Events() *event.Queue {
	return w.eventQueue
}

// Clear removes all entities and components and rewinds the id counter
// The tick counter and registered systems survive; used by tests and resets
func (w *World) Clear() {
	for _, store := range w.allStores {
		store.Clear()
	}
	for i := range w.alive {
		w.alive[i] = false
	}
	w.aliveCount = 0
	w.nextID = 1
	w.freeIDs = w.freeIDs[:0]
}
