package component

import (
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
)

// RankLevel is an agent's position in a faction hierarchy
type RankLevel uint8

const (
	// RankStreet is unranked street membership
	RankStreet RankLevel = iota
	RankSoldier
	RankCapo
	RankUnderboss
	RankBoss
)

// MaxRankLevel bounds collapse cascades to the hierarchy depth
const MaxRankLevel = RankBoss

// RankComponent places an agent in a faction hierarchy. Stability below the
// collapse threshold makes the position contestable through succession.
type RankComponent struct {
	// Faction identifies the hierarchy the agent belongs to
	Faction uint8

	Level RankLevel

	// Stability ranges 0 to 1, hold on the position
	Stability float64

	// Influence ranges 0 to 1, pull over third parties in successions
	Influence float64

	// Loyalty ranges 0 to 1, attachment to the current order
	Loyalty float64

	// Successors lists designated heirs in preference order, zero is empty
	Successors [constant.SuccessorSlots]core.Entity
}

// Ranked reports whether the agent holds a contestable position
func (r *RankComponent) Ranked() bool {
	return r.Level > RankStreet
}

// Designate fills the first empty successor slot with e. Returns false when
// e is invalid, already designated, or all slots are taken.
func (r *RankComponent) Designate(e core.Entity) bool {
	if e == core.NoEntity {
		return false
	}
	for _, s := range r.Successors {
		if s == e {
			return false
		}
	}
	for i := range r.Successors {
		if r.Successors[i] == core.NoEntity {
			r.Successors[i] = e
			return true
		}
	}
	return false
}

// ClearSuccessors empties the designated heir list
func (r *RankComponent) ClearSuccessors() {
	for i := range r.Successors {
		r.Successors[i] = core.NoEntity
	}
}

// DropSuccessor zeroes e's successor slot if present
func (r *RankComponent) DropSuccessor(e core.Entity) {
	for i := range r.Successors {
		if r.Successors[i] == e {
			r.Successors[i] = core.NoEntity
		}
	}
}

// String returns the level's street label
func (l RankLevel) String() string {
	switch l {
	case RankStreet:
		return "street"
	case RankSoldier:
		return "soldier"
	case RankCapo:
		return "capo"
	case RankUnderboss:
		return "underboss"
	case RankBoss:
		return "boss"
	}
	return "unknown"
}
