package system

import (
	"sync/atomic"

	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
)

// SuccessionSystem drifts positional stability and hands unstable positions
// to the succession engine
type SuccessionSystem struct {
	world    *engine.World
	succ     *engine.SuccessionEngine
	collapse float64

	statTransfers *atomic.Int64
	statCollapses *atomic.Int64
	statUnstable  *atomic.Int64
}

// NewSuccessionSystem builds the system with default tuning, or with the
// first supplied config when the host overrides it
func NewSuccessionSystem(world *engine.World, tuning ...engine.SuccessionConfig) engine.System {
	cfg := engine.SuccessionConfig{
		CollapseThreshold: parameter.SuccessionCollapseThreshold,
		MinViableSupport:  parameter.SuccessionMinViableSupport,
		FreshStability:    parameter.SuccessionFreshStability,
		InfluenceWeight:   parameter.SuccessionInfluenceWeight,
		AllianceBonus:     parameter.SuccessionAllianceBonus,
		RivalryPenalty:    parameter.SuccessionRivalryPenalty,
		CapabilitySlash:   parameter.SuccessionCapabilitySlash,
		AbsorbFraction:    parameter.SuccessionAbsorbFraction,
	}
	if len(tuning) > 0 {
		cfg = tuning[0]
	}

	s := &SuccessionSystem{
		world:    world,
		succ:     engine.NewSuccessionEngine(world, cfg),
		collapse: cfg.CollapseThreshold,
	}

	s.statTransfers = world.Status.Ints.Get("succession.transfers")
	s.statCollapses = world.Status.Ints.Get("succession.collapses")
	s.statUnstable = world.Status.Ints.Get("succession.unstable")

	return s
}

// Name returns system's name
func (s *SuccessionSystem) Name() string {
	return "succession"
}

func (s *SuccessionSystem) Priority() int {
	return constant.PrioritySuccession
}

func (s *SuccessionSystem) Update() {
	s.driftStability()

	for _, out := range s.succ.Evaluate() {
		switch out.Kind {
		case engine.SuccessionTransfer:
			s.statTransfers.Add(1)
			s.world.PushEvent(event.EventSuccession, &event.SuccessionPayload{
				Faction:   out.Faction,
				Level:     uint8(out.Level),
				Incumbent: out.Incumbent,
				Successor: out.Successor,
				Support:   out.Support,
			})
		case engine.SuccessionCollapse:
			s.statCollapses.Add(1)
			s.world.PushEvent(event.EventPowerCollapse, &event.CollapsePayload{
				Faction: out.Faction,
				Level:   uint8(out.Level),
				Holder:  out.Incumbent,
				Demoted: out.Demoted,
			})
		}
	}
}

// driftStability presses contested or insolvent holders and lets quiet ones
// recover. Runs before evaluation so vacancies reflect this tick's pressure.
func (s *SuccessionSystem) driftStability() {
	unstable := 0

	for e := range s.world.Components.Rank.Entities() {
		rank, err := s.world.Components.Rank.Get(e)
		if err != nil || !rank.Ranked() {
			continue
		}

		pressed := false
		if cp, err := s.world.Components.Capability.Get(e); err == nil && cp.Contested {
			pressed = true
		}
		if wc, err := s.world.Components.Wealth.Get(e); err == nil && wc.Cash < 0 {
			pressed = true
		}

		if pressed {
			rank.Stability -= parameter.SuccessionPressureRate
			if rank.Stability < 0 {
				rank.Stability = 0
			}
		} else {
			rank.Stability += parameter.SuccessionRecoveryRate
			if rank.Stability > 1 {
				rank.Stability = 1
			}
		}

		if rank.Stability < s.collapse {
			unstable++
		}
	}

	s.statUnstable.Store(int64(unstable))
}
