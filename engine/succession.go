package engine

import (
	"sort"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/core"
)

// SuccessionConfig tunes vacancy detection and candidate scoring
type SuccessionConfig struct {
	// CollapseThreshold is the stability floor below which a ranked
	// position falls vacant
	CollapseThreshold float64

	// MinViableSupport is the support a best candidate must exceed for a
	// transfer instead of a collapse
	MinViableSupport float64

	// FreshStability is granted to a position's new holder and to the
	// demoted incumbent
	FreshStability float64

	// InfluenceWeight scales the influence differential term
	InfluenceWeight float64

	// AllianceBonus is added when a third party allies the candidate
	AllianceBonus float64

	// RivalryPenalty is subtracted when a third party rivals the candidate
	RivalryPenalty float64

	// CapabilitySlash is the base capability fraction the incumbent loses
	CapabilitySlash float64

	// AbsorbFraction is the slashed capability share the successor gains
	AbsorbFraction float64
}

// SuccessionCandidate is one scored contender for a vacant position
type SuccessionCandidate struct {
	Agent   core.Entity
	Support float64
}

// SuccessionOutcomeKind classifies how a vacancy ended
type SuccessionOutcomeKind uint8

const (
	// SuccessionTransfer installed a viable successor
	SuccessionTransfer SuccessionOutcomeKind = iota

	// SuccessionCollapse found no viable successor and dropped the tier
	SuccessionCollapse
)

// SuccessionOutcome reports one processed vacancy
type SuccessionOutcome struct {
	Kind SuccessionOutcomeKind

	Faction uint8
	Level   component.RankLevel

	Incumbent core.Entity
	Successor core.Entity // NoEntity on collapse
	Support   float64

	Demoted int // Stakeholders pushed down on collapse
}

// SuccessionEngine watches ranked positions and hands unstable ones to the
// best-supported candidate, or collapses the hierarchy tier when nobody
// viable steps up.
//
// All scans run in ascending entity order and candidate ties break to the
// lowest id, so identical worlds always produce identical successions.
type SuccessionEngine struct {
	world *World
	cfg   SuccessionConfig
}

// NewSuccessionEngine creates an engine bound to a world
func NewSuccessionEngine(w *World, cfg SuccessionConfig) *SuccessionEngine {
	return &SuccessionEngine{
		world: w,
		cfg:   cfg,
	}
}

// Evaluate processes every unstable ranked position once
// A collapse halves stakeholder stability one level down, which can trigger
// further vacancies; those are caught by repeated passes, bounded by the
// fixed hierarchy depth, never unbounded recursion.
func (s *SuccessionEngine) Evaluate() []SuccessionOutcome {
	var outcomes []SuccessionOutcome

	for pass := 0; pass <= int(component.MaxRankLevel); pass++ {
		unstable := s.collectUnstable()
		if len(unstable) == 0 {
			break
		}
		for _, holder := range unstable {
			// An earlier vacancy this pass may have restabilized or
			// demoted this holder, re-check before processing
			rank, err := s.world.Components.Rank.Get(holder)
			if err != nil || !rank.Ranked() || rank.Stability >= s.cfg.CollapseThreshold {
				continue
			}
			outcomes = append(outcomes, s.fillVacancy(holder, rank))
		}
	}

	return outcomes
}

// collectUnstable returns ranked holders below the collapse threshold,
// highest level first so cascades run top-down, id ascending within a level
func (s *SuccessionEngine) collectUnstable() []core.Entity {
	var unstable []core.Entity
	for e := range s.world.Components.Rank.Entities() {
		rank, err := s.world.Components.Rank.Get(e)
		if err != nil {
			continue
		}
		if rank.Ranked() && rank.Stability < s.cfg.CollapseThreshold {
			unstable = append(unstable, e)
		}
	}
	sort.Slice(unstable, func(i, j int) bool {
		ri, _ := s.world.Components.Rank.Get(unstable[i])
		rj, _ := s.world.Components.Rank.Get(unstable[j])
		if ri.Level != rj.Level {
			return ri.Level > rj.Level
		}
		return unstable[i] < unstable[j]
	})
	return unstable
}

func (s *SuccessionEngine) fillVacancy(holder core.Entity, rank *component.RankComponent) SuccessionOutcome {
	candidates := s.Candidates(holder)

	if len(candidates) > 0 {
		best := candidates[0]
		if best.Support > s.cfg.MinViableSupport && s.outmuscles(best.Agent, holder) {
			return s.transfer(holder, rank, best)
		}
	}

	return s.collapse(holder, rank)
}

// Candidates scores every contender for holder's position, best first
// Contenders are the designated successors plus all ranked stakeholders of
// the same faction. Ties break to the lowest entity id.
func (s *SuccessionEngine) Candidates(holder core.Entity) []SuccessionCandidate {
	rank, err := s.world.Components.Rank.Get(holder)
	if err != nil {
		return nil
	}

	var pool []core.Entity
	seen := func(e core.Entity) bool {
		for _, p := range pool {
			if p == e {
				return true
			}
		}
		return false
	}

	// Designated heirs first, in slot order
	for _, heir := range rank.Successors {
		if heir == core.NoEntity || heir == holder || !s.world.Alive(heir) {
			continue
		}
		if !s.world.Components.Rank.Has(heir) {
			continue
		}
		if !seen(heir) {
			pool = append(pool, heir)
		}
	}

	// Then every ranked stakeholder in the faction, ascending id
	for _, e := range s.stakeholders(rank.Faction, holder) {
		if !seen(e) {
			pool = append(pool, e)
		}
	}

	candidates := make([]SuccessionCandidate, 0, len(pool))
	for _, c := range pool {
		candidates = append(candidates, SuccessionCandidate{
			Agent:   c,
			Support: s.supportFor(c, holder, rank.Faction),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Support != candidates[j].Support {
			return candidates[i].Support > candidates[j].Support
		}
		return candidates[i].Agent < candidates[j].Agent
	})
	return candidates
}

// stakeholders returns the faction's ranked members except holder, ascending
func (s *SuccessionEngine) stakeholders(faction uint8, holder core.Entity) []core.Entity {
	var result []core.Entity
	for e := range s.world.Components.Rank.Entities() {
		if e == holder {
			continue
		}
		r, err := s.world.Components.Rank.Get(e)
		if err != nil || r.Faction != faction || !r.Ranked() {
			continue
		}
		result = append(result, e)
	}
	return result
}

// supportFor averages candidate backing over third parties: faction
// stakeholders excluding the holder and the candidate. Each third party
// contributes its influence gap to the candidate, adjusted by personal
// ties, discounted by its loyalty to the current order.
func (s *SuccessionEngine) supportFor(candidate, holder core.Entity, faction uint8) float64 {
	cRank, err := s.world.Components.Rank.Get(candidate)
	if err != nil {
		return 0
	}

	sum := 0.0
	thirds := 0
	for _, t := range s.stakeholders(faction, holder) {
		if t == candidate {
			continue
		}
		tRank, err := s.world.Components.Rank.Get(t)
		if err != nil {
			continue
		}
		thirds++

		term := (cRank.Influence - tRank.Influence) * s.cfg.InfluenceWeight
		if soc, err := s.world.Components.Social.Get(t); err == nil {
			if soc.IsAlly(candidate) {
				term += s.cfg.AllianceBonus
			}
			if soc.IsRival(candidate) {
				term -= s.cfg.RivalryPenalty
			}
		}
		sum += term * (1 - tRank.Loyalty)
	}

	if thirds == 0 {
		return 0
	}
	return sum / float64(thirds)
}

// outmuscles reports whether the candidate's raw capability beats the
// incumbent's; support alone never unseats a stronger holder
func (s *SuccessionEngine) outmuscles(candidate, holder core.Entity) bool {
	cCap, err := s.world.Components.Capability.Get(candidate)
	if err != nil {
		return false
	}
	hCap, err := s.world.Components.Capability.Get(holder)
	if err != nil {
		return true
	}
	return cCap.Base > hCap.Base
}

func (s *SuccessionEngine) transfer(holder core.Entity, rank *component.RankComponent, best SuccessionCandidate) SuccessionOutcome {
	succRank, _ := s.world.Components.Rank.Get(best.Agent)

	level := rank.Level
	faction := rank.Faction

	succRank.Faction = faction
	succRank.Level = level
	succRank.Stability = s.cfg.FreshStability
	succRank.ClearSuccessors()

	// Incumbent steps one level down with a clean slate at the new tier
	rank.Level--
	rank.Stability = s.cfg.FreshStability
	rank.ClearSuccessors()

	if hCap, err := s.world.Components.Capability.Get(holder); err == nil {
		slashed := hCap.Base * s.cfg.CapabilitySlash
		hCap.Base -= slashed
		if cCap, err := s.world.Components.Capability.Get(best.Agent); err == nil {
			cCap.Base += slashed * s.cfg.AbsorbFraction
		}
	}

	return SuccessionOutcome{
		Kind:      SuccessionTransfer,
		Faction:   faction,
		Level:     level,
		Incumbent: holder,
		Successor: best.Agent,
		Support:   best.Support,
	}
}

func (s *SuccessionEngine) collapse(holder core.Entity, rank *component.RankComponent) SuccessionOutcome {
	level := rank.Level
	faction := rank.Faction

	demoted := 0
	tier := append(s.stakeholders(faction, holder), holder)
	for _, e := range tier {
		r, err := s.world.Components.Rank.Get(e)
		if err != nil || !r.Ranked() {
			continue
		}
		r.Level--
		r.Stability /= 2
		demoted++
	}

	return SuccessionOutcome{
		Kind:      SuccessionCollapse,
		Faction:   faction,
		Level:     level,
		Incumbent: holder,
		Successor: core.NoEntity,
		Demoted:   demoted,
	}
}
