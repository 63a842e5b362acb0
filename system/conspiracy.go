package system

import (
	"sync/atomic"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
)

// plot is one live scheme against a ranked holder
// Membership lives on the agents as plot-index bits; the table holds the
// per-plot side only
type plot struct {
	active  bool
	target  core.Entity
	founder core.Entity
	formed  uint64
}

// ConspiracySystem owns the plot table: formation against weakened superiors,
// recruitment along ally edges, pressure on the target, and exposure when the
// members run too hot
type ConspiracySystem struct {
	world *engine.World
	plots [constant.MaxPlots]plot

	statActive  *atomic.Int64
	statFormed  *atomic.Int64
	statExposed *atomic.Int64
}

func NewConspiracySystem(world *engine.World) engine.System {
	s := &ConspiracySystem{
		world: world,
	}

	s.statActive = world.Status.Ints.Get("conspiracy.active")
	s.statFormed = world.Status.Ints.Get("conspiracy.formed")
	s.statExposed = world.Status.Ints.Get("conspiracy.exposed")

	return s
}

// Name returns system's name
func (s *ConspiracySystem) Name() string {
	return "conspiracy"
}

func (s *ConspiracySystem) Priority() int {
	return constant.PriorityConspiracy
}

func (s *ConspiracySystem) Update() {
	s.formPlots()
	s.recruit()
	s.advance()
}

// formPlots lets disloyal, ambitious agents move against a weakened superior
// An existing plot against the same target absorbs the would-be founder.
func (s *ConspiracySystem) formPlots() {
	now := s.world.CurrentTick()

	for e := range s.world.Query().
		With(s.world.Components.Conspiracy).
		With(s.world.Components.Identity).
		With(s.world.Components.Rank).
		All() {
		if (now+uint64(e))%parameter.ConspiracyFormationInterval != 0 {
			continue
		}
		id, _ := s.world.Components.Identity.Get(e)
		if id.Ambition < parameter.ConspiracyFounderAmbition {
			continue
		}
		rank, _ := s.world.Components.Rank.Get(e)
		if rank.Loyalty > parameter.ConspiracyFounderLoyalty {
			continue
		}

		target := s.softTarget(e, rank)
		if target == core.NoEntity {
			continue
		}

		if p := s.plotAgainst(target); p >= 0 {
			s.join(p, e)
			continue
		}
		s.found(e, target, now)
	}
}

// softTarget returns e's nearest superior whose hold has weakened enough to
// plot against, NoEntity when the chain above is solid
func (s *ConspiracySystem) softTarget(e core.Entity, rank *component.RankComponent) core.Entity {
	best := core.NoEntity
	var bestLevel component.RankLevel

	for other := range s.world.Components.Rank.Entities() {
		if other == e {
			continue
		}
		or, err := s.world.Components.Rank.Get(other)
		if err != nil || or.Faction != rank.Faction || or.Level <= rank.Level {
			continue
		}
		if or.Stability >= parameter.ConspiracyTriggerStability {
			continue
		}
		if best == core.NoEntity || or.Level < bestLevel {
			best, bestLevel = other, or.Level
		}
	}
	return best
}

// plotAgainst returns the active plot index targeting t, or -1
func (s *ConspiracySystem) plotAgainst(t core.Entity) int {
	for i := range s.plots {
		if s.plots[i].active && s.plots[i].target == t {
			return i
		}
	}
	return -1
}

func (s *ConspiracySystem) join(i int, e core.Entity) {
	if cc, err := s.world.Components.Conspiracy.Get(e); err == nil {
		cc.Plots.Insert(i)
	}
}

func (s *ConspiracySystem) found(e, target core.Entity, now uint64) {
	slot := -1
	for i := range s.plots {
		if !s.plots[i].active {
			slot = i
			break
		}
	}
	if slot < 0 {
		return // Table full, the city has enough intrigue already
	}

	s.plots[slot] = plot{
		active:  true,
		target:  target,
		founder: e,
		formed:  now,
	}
	s.join(slot, e)

	s.statFormed.Add(1)
	s.world.PushEvent(event.EventPlotFormed, &event.PlotPayload{
		Plot:    slot,
		Target:  target,
		Members: 1,
	})
}

// recruit grows each plot by at most one disloyal ally of a member per tick
func (s *ConspiracySystem) recruit() {
	for i := range s.plots {
		if !s.plots[i].active {
			continue
		}
		target := s.plots[i].target
		recruited := false

		for _, m := range s.members(i) {
			soc, err := s.world.Components.Social.Get(m)
			if err != nil {
				continue
			}
			for _, ally := range soc.Allies {
				if ally == core.NoEntity || ally == target || !s.world.Alive(ally) {
					continue
				}
				cc, err := s.world.Components.Conspiracy.Get(ally)
				if err != nil || cc.Plots.Contains(i) {
					continue
				}
				rank, err := s.world.Components.Rank.Get(ally)
				if err != nil || rank.Loyalty > parameter.ConspiracyFounderLoyalty {
					continue
				}
				cc.Plots.Insert(i)
				recruited = true
				break
			}
			if recruited {
				break
			}
		}
	}
}

// advance applies plot pressure, accumulates exposure heat, and burns or
// dissolves plots whose run has ended
func (s *ConspiracySystem) advance() {
	active := 0

	for i := range s.plots {
		if !s.plots[i].active {
			continue
		}
		members := s.members(i)
		if len(members) == 0 {
			s.clear(i, members)
			continue
		}

		target := s.plots[i].target
		tRank := s.targetRank(target)
		if tRank == nil || tRank.Stability > parameter.ConspiracyTriggerStability+parameter.ConspiracyRecoveryMargin {
			// Target gone, demoted out of reach, or recovered
			s.clear(i, members)
			continue
		}

		if len(members) >= parameter.ConspiracyQuorum {
			advantage := s.combinedBase(members) - s.targetBase(target)
			if advantage > 0 {
				tRank.Stability -= parameter.ConspiracyPressureRate * advantage
				if tRank.Stability < 0 {
					tRank.Stability = 0
				}
			}
		}

		hot := false
		for _, m := range members {
			id, err := s.world.Components.Identity.Get(m)
			if err != nil {
				continue
			}
			id.Heat += parameter.ConspiracyExposureRate * float64(len(members))
			if id.Heat > 1 {
				id.Heat = 1
			}
			if id.Heat >= parameter.ConspiracyExposureHeat {
				hot = true
			}
		}

		if hot {
			s.expose(i, members, tRank)
			continue
		}
		active++
	}

	s.statActive.Store(int64(active))
}

// expose burns the plot: members lose reputation and gain heat, the target
// learns who moved against them and recovers some footing
func (s *ConspiracySystem) expose(i int, members []core.Entity, tRank *component.RankComponent) {
	target := s.plots[i].target
	now := s.world.CurrentTick()

	for _, m := range members {
		if cp, err := s.world.Components.Capability.Get(m); err == nil {
			cp.Reputation *= parameter.ConspiracyExposedReputationDecay
		}
		if id, err := s.world.Components.Identity.Get(m); err == nil {
			id.Heat += parameter.ConspiracyExposedHeat
			if id.Heat > 1 {
				id.Heat = 1
			}
		}
		if soc, err := s.world.Components.Social.Get(target); err == nil {
			soc.AddRival(m)
		}
		if soc, err := s.world.Components.Social.Get(m); err == nil {
			soc.Record(component.Interaction{
				With:  target,
				Tick:  now,
				Kind:  component.InteractionBetrayal,
				Delta: parameter.ConspiracyGrudgeDelta,
			})
		}
	}

	tRank.Stability += parameter.ConspiracyExposureRelief
	if tRank.Stability > 1 {
		tRank.Stability = 1
	}

	s.statExposed.Add(1)
	s.world.PushEvent(event.EventPlotExposed, &event.PlotPayload{
		Plot:    i,
		Target:  target,
		Members: len(members),
	})

	s.clear(i, members)
}

// clear releases the table slot and every member's plot bit
func (s *ConspiracySystem) clear(i int, members []core.Entity) {
	for _, m := range members {
		if cc, err := s.world.Components.Conspiracy.Get(m); err == nil {
			cc.Plots.Remove(i)
		}
	}
	s.plots[i] = plot{}
}

// members returns plot i's membership, ascending by entity id
func (s *ConspiracySystem) members(i int) []core.Entity {
	var result []core.Entity
	for e := range s.world.Components.Conspiracy.Entities() {
		cc, err := s.world.Components.Conspiracy.Get(e)
		if err != nil {
			continue
		}
		if cc.Plots.Contains(i) {
			result = append(result, e)
		}
	}
	return result
}

func (s *ConspiracySystem) targetRank(t core.Entity) *component.RankComponent {
	if !s.world.Alive(t) {
		return nil
	}
	rank, err := s.world.Components.Rank.Get(t)
	if err != nil || !rank.Ranked() {
		return nil
	}
	return rank
}

func (s *ConspiracySystem) combinedBase(members []core.Entity) float64 {
	sum := 0.0
	for _, m := range members {
		if cp, err := s.world.Components.Capability.Get(m); err == nil {
			sum += cp.Base
		}
	}
	return sum
}

func (s *ConspiracySystem) targetBase(t core.Entity) float64 {
	cp, err := s.world.Components.Capability.Get(t)
	if err != nil {
		return 0
	}
	return cp.Base
}
