package parameter

// Desperation gating
const (
	// CrimeDesperationCash is the cash floor below which an agent turns to
	// street crime
	CrimeDesperationCash = 50

	// CrimeDesperationMood is the mood ceiling below which an agent turns
	// to street crime
	CrimeDesperationMood = -0.2

	// CrimeChancePercent is the per-tick percentage chance a desperate
	// agent acts
	CrimeChancePercent = 12
)

// Theft outcome
const (
	// CrimeTakeFraction is the share of the victim's cash a theft moves
	CrimeTakeFraction = 0.1

	// CrimeTakeMax caps a single theft
	CrimeTakeMax = 100

	// CrimeHeatPerTheft is law attention gained per committed theft
	CrimeHeatPerTheft = 0.05

	// CrimeGrudgeDelta is the relationship damage a theft logs on the victim
	CrimeGrudgeDelta = -0.4
)

// Getting caught
const (
	// CrimeCatchHeat is the heat level above which a theft risks arrest
	CrimeCatchHeat = 0.6

	// CrimeCatchPercent is the arrest chance once over the heat bar
	CrimeCatchPercent = 30

	// CrimeFineFraction is the share of the offender's cash a conviction takes
	CrimeFineFraction = 0.5

	// CrimeConvictionReputationDecay multiplies a convicted offender's
	// reputation
	CrimeConvictionReputationDecay = 0.8
)
