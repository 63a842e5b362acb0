package engine

// System is one scheduled update pass over the world
// Systems run single-threaded inside Tick, ordered by Priority
type System interface {
	// Name identifies the system in host reporting
	Name() string

	Update()
	Priority() int // Lower values run first
}
