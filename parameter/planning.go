package parameter

// Threat memoization
const (
	// PlanningCacheTTL is ticks a computed threat assessment stays fresh
	PlanningCacheTTL = 20

	// PlanningCacheMaxAge is the prune horizon for stale threat entries
	PlanningCacheMaxAge = 100
)

// Mood dynamics, all deltas clamp mood to [-1, 1]
const (
	// PlanningMoodIncome is mood gained per tick while income is positive
	PlanningMoodIncome = 0.01

	// PlanningMoodBroke is mood lost per tick while cash is below upkeep
	PlanningMoodBroke = 0.02

	// PlanningMoodThreatWeight scales mood loss by normalized threat
	PlanningMoodThreatWeight = 0.015

	// PlanningMoodCasualty is mood lost per fresh casualty
	PlanningMoodCasualty = 0.1

	// PlanningMoodVictory is mood gained per fresh victory
	PlanningMoodVictory = 0.08
)

// Ambition drift
const (
	// PlanningAmbitionRate is the per-tick pull of ambition toward its
	// reputation-driven setpoint
	PlanningAmbitionRate = 0.005

	// PlanningThreatNormalizer divides raw rival strength into a 0..1 threat
	PlanningThreatNormalizer = 50.0
)

// Relationship upkeep
const (
	// PlanningPactTributes is the logged tribute count with one partner that
	// converts a working relationship into an alliance
	PlanningPactTributes = 3

	// PlanningDesignateLevel is the lowest rank that keeps a designated
	// successor list filled
	PlanningDesignateLevel = 2
)
