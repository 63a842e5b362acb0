package parameter

// Plot formation
const (
	// ConspiracyTriggerStability is the target stability below which
	// plotting against a ranked holder becomes attractive
	ConspiracyTriggerStability = 0.45

	// ConspiracyFounderAmbition is the minimum ambition to found a plot
	ConspiracyFounderAmbition = 0.7

	// ConspiracyFounderLoyalty is the loyalty ceiling above which an agent
	// will not move against their own boss
	ConspiracyFounderLoyalty = 0.5

	// ConspiracyFormationInterval spaces plot formation checks in ticks
	ConspiracyFormationInterval = 60
)

// Plot progression
const (
	// ConspiracyQuorum is the member count a plot needs before it exerts
	// pressure on its target
	ConspiracyQuorum = 2

	// ConspiracyPressureRate scales per-tick target stability loss by the
	// plot's capability advantage
	ConspiracyPressureRate = 0.015

	// ConspiracyExposureRate is per-member, per-tick heat accumulated by
	// an active plot
	ConspiracyExposureRate = 0.002

	// ConspiracyExposureHeat is the member heat level that burns a plot
	ConspiracyExposureHeat = 0.6

	// ConspiracyExposedReputationDecay multiplies each member's reputation
	// when a plot is exposed
	ConspiracyExposedReputationDecay = 0.7

	// ConspiracyExposedHeat is law attention gained by each exposed member
	ConspiracyExposedHeat = 0.3

	// ConspiracyExposureRelief is stability regained by the target when a
	// plot against them is exposed
	ConspiracyExposureRelief = 0.2

	// ConspiracyGrudgeDelta is the relationship damage an exposed plot logs
	// between each member and the target
	ConspiracyGrudgeDelta = -0.5

	// ConspiracyRecoveryMargin above the trigger stability dissolves a plot,
	// the window has closed
	ConspiracyRecoveryMargin = 0.2
)
