package system

import (
	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/parameter"
	"github.com/lixenwraith/undercity/status"
)

// PlanningSystem is each agent's between-move thinking: mood and ambition
// drift from this tick's outcomes, steady tribute partners become allies,
// and senior holders keep an heir designated
type PlanningSystem struct {
	world  *engine.World
	threat *engine.TTLCache[core.Entity, float64]

	// Standing counter snapshots from the previous pass, indexed by entity
	// id; deltas drive mood swings
	prevVictories  []uint32
	prevCasualties []uint32

	statThreatPeak *status.AtomicFloat
	statMoodAvg    *status.AtomicFloat
}

func NewPlanningSystem(world *engine.World) engine.System {
	s := &PlanningSystem{
		world:          world,
		threat:         engine.NewTTLCache[core.Entity, float64](world),
		prevVictories:  make([]uint32, world.Capacity()+1),
		prevCasualties: make([]uint32, world.Capacity()+1),
	}

	s.statThreatPeak = world.Status.Floats.Get("planning.threat.peak")
	s.statMoodAvg = world.Status.Floats.Get("planning.mood.average")

	return s
}

// Name returns system's name
func (s *PlanningSystem) Name() string {
	return "planning"
}

func (s *PlanningSystem) Priority() int {
	return constant.PriorityPlanning
}

func (s *PlanningSystem) Update() {
	s.assess()
	s.brokerPacts()
	s.groomSuccessors()
	s.threat.Prune(parameter.PlanningCacheMaxAge)
}

// assess recomputes every agent's mood and ambition from cash flow, fresh
// wins and losses, and the strength of their worst rival
func (s *PlanningSystem) assess() {
	moodSum := 0.0
	moodCount := 0

	for e := range s.world.Components.Identity.Entities() {
		id, err := s.world.Components.Identity.Get(e)
		if err != nil {
			continue
		}

		threat := s.threatTo(e)
		s.statThreatPeak.Max(threat)

		mood := id.Mood
		if wc, err := s.world.Components.Wealth.Get(e); err == nil {
			if wc.Income > 0 {
				mood += parameter.PlanningMoodIncome
			}
			if wc.Cash < parameter.EconomyUpkeep {
				mood -= parameter.PlanningMoodBroke
			}
		}
		mood -= parameter.PlanningMoodThreatWeight * threat

		if cp, err := s.world.Components.Capability.Get(e); err == nil {
			// A recycled id restarts its counters below the snapshot
			if cp.Casualties < s.prevCasualties[e] {
				s.prevCasualties[e] = cp.Casualties
			}
			if cp.Victories < s.prevVictories[e] {
				s.prevVictories[e] = cp.Victories
			}
			mood -= parameter.PlanningMoodCasualty * float64(cp.Casualties-s.prevCasualties[e])
			mood += parameter.PlanningMoodVictory * float64(cp.Victories-s.prevVictories[e])
			s.prevCasualties[e] = cp.Casualties
			s.prevVictories[e] = cp.Victories

			// Ambition chases standing
			setpoint := 0.3 + 0.6*cp.Reputation
			id.Ambition += (setpoint - id.Ambition) * parameter.PlanningAmbitionRate
			if id.Ambition > 1 {
				id.Ambition = 1
			}
			if id.Ambition < 0 {
				id.Ambition = 0
			}
		}

		if mood > 1 {
			mood = 1
		}
		if mood < -1 {
			mood = -1
		}
		id.Mood = mood

		moodSum += mood
		moodCount++
	}

	if moodCount > 0 {
		s.statMoodAvg.Set(moodSum / float64(moodCount))
	}
}

// threatTo is the normalized strength of e's most dangerous live rival,
// memoized because the rival scan dominates the planning pass
func (s *PlanningSystem) threatTo(e core.Entity) float64 {
	return s.threat.GetOrCompute(e, parameter.PlanningCacheTTL, func() float64 {
		soc, err := s.world.Components.Social.Get(e)
		if err != nil {
			return 0
		}

		worst := 0.0
		for _, rival := range soc.Rivals {
			if rival == core.NoEntity || !s.world.Alive(rival) {
				continue
			}
			if cp, err := s.world.Components.Capability.Get(rival); err == nil {
				raw := cp.Base * (1 + cp.Reputation)
				if raw > worst {
					worst = raw
				}
			}
		}

		t := worst / parameter.PlanningThreatNormalizer
		if t > 1 {
			t = 1
		}
		return t
	})
}

// brokerPacts converts a steady tribute relationship into a mutual alliance,
// at most one new pact per agent per tick
func (s *PlanningSystem) brokerPacts() {
	now := s.world.CurrentTick()

	for e := range s.world.Components.Social.Entities() {
		soc, err := s.world.Components.Social.Get(e)
		if err != nil {
			continue
		}

		for _, in := range soc.Log {
			if in.Kind != component.InteractionTribute || in.With == core.NoEntity {
				continue
			}
			partner := in.With
			if soc.IsAlly(partner) || soc.IsRival(partner) || !s.world.Alive(partner) {
				continue
			}

			n := 0
			for _, other := range soc.Log {
				if other.With == partner && other.Kind == component.InteractionTribute {
					n++
				}
			}
			if n < parameter.PlanningPactTributes {
				continue
			}

			if !soc.AddAlly(partner) {
				continue
			}
			soc.Record(component.Interaction{
				With: partner,
				Tick: now,
				Kind: component.InteractionPact,
			})
			if ps, err := s.world.Components.Social.Get(partner); err == nil {
				ps.AddAlly(e)
				ps.Record(component.Interaction{
					With: e,
					Tick: now,
					Kind: component.InteractionPact,
				})
			}
			break
		}
	}
}

// groomSuccessors keeps senior holders' heir lists from sitting empty
func (s *PlanningSystem) groomSuccessors() {
	for e := range s.world.Components.Rank.Entities() {
		rank, err := s.world.Components.Rank.Get(e)
		if err != nil || int(rank.Level) < parameter.PlanningDesignateLevel {
			continue
		}
		if s.hasHeir(rank) {
			continue
		}
		if heir := s.bestSubordinate(e, rank); heir != core.NoEntity {
			rank.Designate(heir)
		}
	}
}

func (s *PlanningSystem) hasHeir(rank *component.RankComponent) bool {
	for _, h := range rank.Successors {
		if h != core.NoEntity && s.world.Alive(h) {
			return true
		}
	}
	return false
}

// bestSubordinate returns the most loyal influential member one level down,
// lowest id on ties
func (s *PlanningSystem) bestSubordinate(holder core.Entity, rank *component.RankComponent) core.Entity {
	best := core.NoEntity
	bestScore := 0.0

	for e := range s.world.Components.Rank.Entities() {
		if e == holder {
			continue
		}
		sub, err := s.world.Components.Rank.Get(e)
		if err != nil || sub.Faction != rank.Faction || sub.Level+1 != rank.Level {
			continue
		}
		score := sub.Loyalty * (1 + sub.Influence)
		if best == core.NoEntity || score > bestScore {
			best, bestScore = e, score
		}
	}
	return best
}
