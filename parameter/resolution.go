package parameter

// Conflict lifecycle
const (
	// ResolutionMaturationWindow is ticks a conflict must age, without
	// re-registration, before it becomes resolution-eligible
	ResolutionMaturationWindow = 100

	// ResolutionThreshold is the minimum strength differential for a
	// decisive outcome, equality stalemates
	ResolutionThreshold = 1.5

	// ResolutionCacheTTL is ticks a computed strength stays fresh
	ResolutionCacheTTL = 10

	// ResolutionCacheMaxAge is the prune horizon for stale strength entries
	ResolutionCacheMaxAge = 50
)

// Strength formula weights
const (
	// ResolutionAllyWeight scales each one-hop ally's base capability in
	// the contribution sum
	ResolutionAllyWeight = 0.25

	// ResolutionStabilityWeight scales the average control stability bonus
	ResolutionStabilityWeight = 1.0

	// ResolutionReputationWeight scales the reputation bonus
	ResolutionReputationWeight = 0.5
)

// Post-resolution adjustments
const (
	// ResolutionVictoryReputation is reputation gained by a decisive winner
	ResolutionVictoryReputation = 0.05

	// ResolutionDefeatReputationDecay multiplies a decisive loser's reputation
	ResolutionDefeatReputationDecay = 0.85

	// ResolutionCaptureStability is the control stability a winner starts
	// with on a captured slot
	ResolutionCaptureStability = 0.3

	// ResolutionStalemateErosion is control stability lost by both parties
	// on the disputed slot when a stalemate is re-armed
	ResolutionStalemateErosion = 0.1
)
