package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/status"
)

// MetricsSystem publishes the per-tick telemetry snapshot: population, cash
// concentration, and per-faction series keyed for prefix scans by the monitor
type MetricsSystem struct {
	world *engine.World

	statTick       *atomic.Int64
	statPopulation *atomic.Int64
	statRichest    *status.AtomicString
	statTopCash    *atomic.Int64
}

func NewMetricsSystem(world *engine.World) engine.System {
	s := &MetricsSystem{
		world: world,
	}

	s.statTick = world.Status.Ints.Get("sim.tick")
	s.statPopulation = world.Status.Ints.Get("sim.population")
	s.statRichest = world.Status.Strings.Get("sim.richest")
	s.statTopCash = world.Status.Ints.Get("sim.richest.cash")

	return s
}

// Name returns system's name
func (s *MetricsSystem) Name() string {
	return "metrics"
}

func (s *MetricsSystem) Priority() int {
	return constant.PriorityMetrics
}

func (s *MetricsSystem) Update() {
	s.statTick.Store(int64(s.world.CurrentTick()))
	s.statPopulation.Store(int64(s.world.EntityCount()))

	s.reportWealth()
	s.reportFactions()
}

func (s *MetricsSystem) reportWealth() {
	richest := core.NoEntity
	topCash := int64(0)

	for e := range s.world.Components.Wealth.Entities() {
		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil {
			continue
		}
		if richest == core.NoEntity || wc.Cash > topCash {
			richest, topCash = e, wc.Cash
		}
	}

	if richest == core.NoEntity {
		return
	}
	s.statTopCash.Store(topCash)
	if id, err := s.world.Components.Identity.Get(richest); err == nil {
		s.statRichest.Store(id.Callsign)
	}
}

// reportFactions refreshes the faction.N.* gauge family
// Keys are created on first sight of a faction and persist for the run.
func (s *MetricsSystem) reportFactions() {
	type tally struct {
		members   int
		ranked    int
		stability float64
		boss      core.Entity
	}
	tallies := make(map[uint8]*tally)

	for e := range s.world.Components.Rank.Entities() {
		rank, err := s.world.Components.Rank.Get(e)
		if err != nil {
			continue
		}
		t := tallies[rank.Faction]
		if t == nil {
			t = &tally{}
			tallies[rank.Faction] = t
		}
		t.members++
		if rank.Ranked() {
			t.ranked++
			t.stability += rank.Stability
		}
		if rank.Level == component.RankBoss {
			if t.boss == core.NoEntity || e < t.boss {
				t.boss = e
			}
		}
	}

	for f, t := range tallies {
		prefix := fmt.Sprintf("faction.%d", f)
		s.world.Status.Ints.Get(prefix + ".members").Store(int64(t.members))
		s.world.Status.Ints.Get(prefix + ".ranked").Store(int64(t.ranked))

		avg := 0.0
		if t.ranked > 0 {
			avg = t.stability / float64(t.ranked)
		}
		s.world.Status.Floats.Get(prefix + ".stability").Set(avg)

		bossName := "none"
		if t.boss != core.NoEntity {
			if id, err := s.world.Components.Identity.Get(t.boss); err == nil {
				bossName = id.Callsign
			}
		}
		s.world.Status.Strings.Get(prefix + ".boss").Store(bossName)
	}
}
