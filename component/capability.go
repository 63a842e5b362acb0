package component

// CapabilityComponent is the shared strength and standing record consulted
// during conflict resolution and succession
type CapabilityComponent struct {
	// Base is raw capability before situational multipliers
	Base float64

	// Reputation ranges 0 to 1, rises on victories, decays on defeats
	Reputation float64

	// Victories counts decisive conflicts won
	Victories uint32

	// Casualties counts decisive losses plus stalemate attrition
	Casualties uint32

	// Contested marks the agent as party to at least one pending conflict
	Contested bool
}
