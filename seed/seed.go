// Package seed builds a deterministic starting population. Build runs
// ordered passes over one seeded generator, so the same seed and config
// always produce the same city.
package seed

import (
	"fmt"
	"math/rand"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/config"
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/parameter"
)

// Street name pool for callsigns, suffixed with the agent ordinal
var callsigns = [...]string{
	"ash", "brick", "cinder", "drift", "ember", "flint", "gravel", "hollow",
	"iron", "jinx", "knuckle", "ledger", "mortar", "needle", "onyx", "patch",
}

// Tie formation odds during seeding
const (
	allyChance  = 0.6
	rivalChance = 0.4
)

// Census reports what Build placed into the world.
type Census struct {
	Agents   int
	Factions int

	// Bosses holds each faction's seeded boss, indexed faction-1
	Bosses []core.Entity

	Blocks  int
	Rackets int
}

// Build populates an empty world from cfg. Passes run in a fixed order:
// roster, hierarchy, ties, holdings.
func Build(w *engine.World, cfg *config.Config) (*Census, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("seeding: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	agents, err := roster(w, cfg, rng)
	if err != nil {
		return nil, err
	}

	factions := deal(agents, cfg.Population.Factions)
	hierarchy(w, factions, rng)
	ties(w, agents, factions, rng)
	blocks, rackets := holdings(w, factions, rng)

	census := &Census{
		Agents:   len(agents),
		Factions: len(factions),
		Bosses:   make([]core.Entity, len(factions)),
		Blocks:   blocks,
		Rackets:  rackets,
	}
	for f, members := range factions {
		census.Bosses[f] = members[0]
	}
	return census, nil
}

// roster creates every agent with the full component set
func roster(w *engine.World, cfg *config.Config, rng *rand.Rand) ([]core.Entity, error) {
	p := cfg.Population
	agents := make([]core.Entity, 0, p.Agents)

	for i := 0; i < p.Agents; i++ {
		eb := w.Spawn()
		eb = engine.With(eb, w.Components.Identity, component.IdentityComponent{
			Callsign:  fmt.Sprintf("%s-%d", callsigns[rng.Intn(len(callsigns))], i+1),
			Archetype: component.Archetype(rng.Intn(4)),
			Mood:      rng.Float64()*0.4 - 0.2,
			Ambition:  0.2 + rng.Float64()*0.7,
		})
		eb = engine.With(eb, w.Components.Capability, component.CapabilityComponent{
			Base:       p.BaseMin + rng.Float64()*(p.BaseMax-p.BaseMin),
			Reputation: rng.Float64() * 0.3,
		})
		eb = engine.With(eb, w.Components.Wealth, component.WealthComponent{
			Cash:        p.CashMin + rng.Int63n(p.CashMax-p.CashMin+1),
			TributeRate: parameter.EconomyTributeRate,
		})
		eb = engine.With(eb, w.Components.Social, component.SocialComponent{})
		eb = engine.With(eb, w.Components.Territory, component.TerritoryComponent{})
		eb = engine.With(eb, w.Components.Racket, component.RacketComponent{})
		eb = engine.With(eb, w.Components.Conspiracy, component.ConspiracyComponent{})

		e, err := eb.Build()
		if err != nil {
			return nil, fmt.Errorf("seeding agent %d: %w", i+1, err)
		}
		agents = append(agents, e)
	}
	return agents, nil
}

// deal splits agents into faction rosters round-robin, preserving id order
// inside each roster
func deal(agents []core.Entity, factions int) [][]core.Entity {
	rosters := make([][]core.Entity, factions)
	for i, e := range agents {
		f := i % factions
		rosters[f] = append(rosters[f], e)
	}
	return rosters
}

// hierarchy ranks each roster top-down and designates the first heirs
func hierarchy(w *engine.World, factions [][]core.Entity, rng *rand.Rand) {
	for f, members := range factions {
		for idx, e := range members {
			level := levelFor(idx, len(members))
			w.Components.Rank.Add(e, component.RankComponent{
				Faction:   uint8(f + 1),
				Level:     level,
				Stability: 0.5 + 0.05*float64(level) + rng.Float64()*0.1,
				Influence: clamp1(0.1 + 0.15*float64(level) + rng.Float64()*0.1),
				Loyalty:   0.3 + rng.Float64()*0.6,
			})
		}

		// Boss grooms the underboss, underboss grooms the first capo
		if len(members) > 1 {
			br, _ := w.Components.Rank.Get(members[0])
			br.Designate(members[1])
		}
		if len(members) > 2 {
			ur, _ := w.Components.Rank.Get(members[1])
			ur.Designate(members[2])
		}
	}
}

// levelFor maps a roster position to a rank: one boss, one underboss, two
// capos, a third of the remainder soldiers, the rest street
func levelFor(idx, size int) component.RankLevel {
	switch {
	case idx == 0:
		return component.RankBoss
	case idx == 1:
		return component.RankUnderboss
	case idx <= 3:
		return component.RankCapo
	case idx <= 3+(size-4)/3:
		return component.RankSoldier
	default:
		return component.RankStreet
	}
}

// ties wires starting allies inside factions and rivals across them
func ties(w *engine.World, agents []core.Entity, factions [][]core.Entity, rng *rand.Rand) {
	for i, e := range agents {
		f := i % len(factions)
		soc, err := w.Components.Social.Get(e)
		if err != nil {
			continue
		}

		if rng.Float64() < allyChance {
			own := factions[f]
			if pick := own[rng.Intn(len(own))]; pick != e {
				soc.AddAlly(pick)
				if ps, err := w.Components.Social.Get(pick); err == nil {
					ps.AddAlly(e)
				}
			}
		}

		if len(factions) > 1 && rng.Float64() < rivalChance {
			other := factions[(f+1+rng.Intn(len(factions)-1))%len(factions)]
			pick := other[rng.Intn(len(other))]
			soc.AddRival(pick)
			if ps, err := w.Components.Social.Get(pick); err == nil {
				ps.AddRival(e)
			}
		}
	}
}

// holdings grants seniors their starting blocks and rackets, disjoint slots
// dealt in faction order until a universe runs out
func holdings(w *engine.World, factions [][]core.Entity, rng *rand.Rand) (blocks, rackets int) {
	nextBlock := 0
	nextSlot := 0

	for _, members := range factions {
		for idx, e := range members {
			level := levelFor(idx, len(members))
			if level < component.RankCapo {
				continue
			}

			grants := 1
			if level == component.RankBoss {
				grants = 2
			}
			for g := 0; g < grants && nextBlock < constant.MaxBlocks; g++ {
				tc, err := w.Components.Territory.Get(e)
				if err != nil {
					break
				}
				tc.Claims.Insert(nextBlock)
				tc.Stability[nextBlock] = 0.5 + rng.Float64()*0.2
				nextBlock++
				blocks++
			}

			if level >= component.RankUnderboss && nextSlot < constant.MaxRackets {
				rc, err := w.Components.Racket.Get(e)
				if err != nil {
					continue
				}
				rc.Slots.Insert(nextSlot)
				rc.Stability[nextSlot] = 0.5 + rng.Float64()*0.2
				nextSlot++
				rackets++
			}
		}
	}
	return blocks, rackets
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
