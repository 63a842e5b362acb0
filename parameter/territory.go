package parameter

// Claim gating
const (
	// TerritoryClaimAmbition is the minimum ambition to press a new claim
	TerritoryClaimAmbition = 0.5

	// TerritoryClaimCapability is the minimum base capability to press a
	// new claim
	TerritoryClaimCapability = 3.0

	// TerritoryMaxClaims is the most blocks a single agent will claim
	TerritoryMaxClaims = 6

	// TerritoryClaimInterval spaces an agent's claim attempts in ticks
	TerritoryClaimInterval = 25

	// TerritoryClaimStability is the control stability a fresh claim starts at
	TerritoryClaimStability = 0.25
)

// Stability dynamics
const (
	// TerritoryGrowthRate drives per-tick stability regrowth toward full
	// control on an uncontested block
	TerritoryGrowthRate = 0.02

	// TerritoryContestedDecay is per-tick stability lost on a block with a
	// pending conflict
	TerritoryContestedDecay = 0.03
)
