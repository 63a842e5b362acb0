package event

import (
	"github.com/lixenwraith/undercity/core"
)

// ConflictResolvedPayload carries a decisive outcome
type ConflictResolvedPayload struct {
	Domain         string
	Winner         core.Entity
	Loser          core.Entity
	Slot           int
	WinnerStrength float64
	LoserStrength  float64
}

// ConflictStalematePayload carries an indecisive outcome, both parties paid
type ConflictStalematePayload struct {
	Domain string
	PartyA core.Entity
	PartyB core.Entity
	Slot   int
}

// ClaimPayload carries a fresh slot claim in a contested universe
type ClaimPayload struct {
	Domain    string
	Agent     core.Entity
	Slot      int
	Contested bool // At least one other claimant already holds the slot
}

// SuccessionPayload carries a leadership transfer
type SuccessionPayload struct {
	Faction   uint8
	Level     uint8
	Incumbent core.Entity
	Successor core.Entity
	Support   float64
}

// CollapsePayload carries a hierarchy collapse
type CollapsePayload struct {
	Faction uint8
	Level   uint8
	Holder  core.Entity
	Demoted int // Stakeholders pushed one level down
}

// PlotPayload carries conspiracy lifecycle changes
type PlotPayload struct {
	Plot    int
	Target  core.Entity
	Members int
}

// CrimePayload carries a street theft and its consequence
type CrimePayload struct {
	Offender core.Entity
	Victim   core.Entity
	Amount   int64
	Caught   bool
}

// RuinPayload carries an agent's slide into debt
type RuinPayload struct {
	Agent core.Entity
	Debt  int64
}
