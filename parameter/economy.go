package parameter

// Racket income
const (
	// EconomyBaseYield is the per-tick take of the lowest-value racket slot
	EconomyBaseYield = 10.0

	// EconomyYieldStep is the extra per-tick take each slot tier adds
	EconomyYieldStep = 2.5

	// EconomyYieldTiers is the number of racket value tiers, slot index
	// modulo tiers selects the tier
	EconomyYieldTiers = 4

	// EconomyStabilityCut scales take by the racket's control stability
	EconomyStabilityCut = 0.5
)

// Racket claims
const (
	// EconomyClaimAmbition is the minimum ambition to muscle into a racket
	EconomyClaimAmbition = 0.4

	// EconomyClaimCash is the minimum cash on hand to open a new racket
	EconomyClaimCash = 200

	// EconomyMaxRackets is the most racket slots a single agent will run
	EconomyMaxRackets = 4

	// EconomyClaimInterval spaces an agent's racket grabs in ticks
	EconomyClaimInterval = 40

	// EconomyClaimStability is the grip a fresh racket starts at
	EconomyClaimStability = 0.25
)

// Grip dynamics
const (
	// EconomyGripGrowth is per-tick grip regained on an undisputed racket
	EconomyGripGrowth = 0.015

	// EconomyGripDecay is per-tick grip lost on a racket with a pending
	// conflict
	EconomyGripDecay = 0.025
)

// Tribute
const (
	// EconomyTributeRate is the default fraction of racket income passed one
	// level up the hierarchy, seeded into each agent's wealth record
	EconomyTributeRate = 0.2

	// EconomyUpkeep is flat per-tick cash burn for every agent
	EconomyUpkeep = 1
)

// Muscle investment
const (
	// EconomyInvestInterval spaces an agent's capability purchases in ticks
	EconomyInvestInterval = 60

	// EconomyInvestFloor is the cash reserve kept untouched by purchases
	EconomyInvestFloor = 400

	// EconomyInvestCost is the cash price of one capability purchase
	EconomyInvestCost = 150

	// EconomyInvestGain is the base capability one purchase adds
	EconomyInvestGain = 0.5

	// EconomyInvestBaseCap is the ceiling purchases can push base capability to
	EconomyInvestBaseCap = 15.0
)
