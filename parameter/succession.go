package parameter

// Stability thresholds
const (
	// SuccessionCollapseThreshold is the stability floor below which a
	// ranked position falls vacant
	SuccessionCollapseThreshold = 0.2

	// SuccessionMinViableSupport is the support score a best candidate
	// must exceed for a transfer instead of a collapse
	SuccessionMinViableSupport = 0.15

	// SuccessionFreshStability is the stability granted to a position's
	// new holder, and to the demoted incumbent at the lower level
	SuccessionFreshStability = 0.6
)

// Support formula weights
const (
	// SuccessionInfluenceWeight scales the influence differential term
	SuccessionInfluenceWeight = 0.4

	// SuccessionAllianceBonus is added when a third party lists the
	// candidate as an ally
	SuccessionAllianceBonus = 0.3

	// SuccessionRivalryPenalty is subtracted when a third party lists the
	// candidate as a rival
	SuccessionRivalryPenalty = 0.5
)

// Transfer costs
const (
	// SuccessionCapabilitySlash is the fraction of base capability the
	// displaced incumbent loses
	SuccessionCapabilitySlash = 0.3

	// SuccessionAbsorbFraction is the share of the slashed capability the
	// successor absorbs
	SuccessionAbsorbFraction = 0.5
)

// Stability drift
const (
	// SuccessionRecoveryRate is per-tick stability regained by an
	// uncontested, solvent ranked holder
	SuccessionRecoveryRate = 0.005

	// SuccessionPressureRate is per-tick stability lost by a contested or
	// insolvent ranked holder
	SuccessionPressureRate = 0.01
)
