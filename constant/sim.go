package constant

// Slot universes. Every contested universe is represented as bit positions in
// a core.BitSet32, so none of these may ever exceed 32.
const (
	// MaxBlocks is the number of contestable city blocks
	MaxBlocks = 32

	// MaxRackets is the number of contestable racket slots
	MaxRackets = 32

	// MaxPlots is the number of concurrently trackable conspiracy plots
	MaxPlots = 32
)

// Fixed-degree relationship bounds. Slot removal zeroes the slot; the arrays
// never resize.
const (
	// AllySlots is the personal ally tie limit per agent
	AllySlots = 4

	// RivalSlots is the personal rival tie limit per agent
	RivalSlots = 4

	// InteractionSlots is the length of the per-agent interaction log ring
	InteractionSlots = 8

	// SuccessorSlots is the designated successor list limit per ranked agent
	SuccessorSlots = 4

	// TakeHistorySlots is the length of the per-agent racket take history ring
	TakeHistorySlots = 16
)

// World sizing
const (
	// DefaultAgentCapacity is the default fixed entity capacity of a world
	DefaultAgentCapacity = 256

	// DefaultFactions is the default number of seeded factions
	DefaultFactions = 3

	// MaxFactions bounds the seeded faction count, keeps the per-faction
	// gauge family and monitor roster small
	MaxFactions = 8
)

// Event queue sizing
const (
	// EventQueueSize is the fixed ring capacity of the sim event queue (power of two)
	EventQueueSize = 256

	// EventBufferMask masks a monotonic index into the ring
	EventBufferMask = EventQueueSize - 1
)
