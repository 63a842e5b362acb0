// Package sim assembles a configured underworld: conflict resolvers for
// each disputed domain, every simulation system in priority order, and the
// handles a host loop drives a run with.
package sim

import (
	"fmt"

	"github.com/lixenwraith/undercity/config"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/parameter"
	"github.com/lixenwraith/undercity/system"
)

// Deck bundles the live handles of an assembled run
type Deck struct {
	World *engine.World

	// Turf settles block disputes, Rackets settles racket slot disputes
	Turf    *engine.ConflictResolver
	Rackets *engine.ConflictResolver
}

// Assemble wires resolvers and systems into the world. The world must be
// freshly constructed; assembling twice doubles every system.
func Assemble(w *engine.World, cfg *config.Config) (*Deck, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("assembling: %w", err)
	}

	rc := resolverConfig(cfg)
	turf := engine.NewConflictResolver(w, system.NewTerritoryDomain(w), rc)
	rackets := engine.NewConflictResolver(w, system.NewRacketDomain(w), rc)

	w.AddSystem(system.NewConflictSystem(w, turf, rackets))
	w.AddSystem(system.NewSuccessionSystem(w, successionConfig(cfg)))
	w.AddSystem(system.NewTerritorySystem(w, turf))
	w.AddSystem(system.NewEconomySystem(w, rackets))
	w.AddSystem(system.NewConspiracySystem(w))
	w.AddSystem(system.NewCrimeSystem(w))
	w.AddSystem(system.NewPlanningSystem(w))
	w.AddSystem(system.NewMetricsSystem(w))

	return &Deck{
		World:   w,
		Turf:    turf,
		Rackets: rackets,
	}, nil
}

// resolverConfig maps the run config onto resolver tuning; formula weights
// stay at their baked-in values
func resolverConfig(cfg *config.Config) engine.ResolverConfig {
	return engine.ResolverConfig{
		MaturationWindow:      cfg.Resolution.MaturationWindow,
		Threshold:             cfg.Resolution.Threshold,
		CacheTTL:              cfg.Resolution.CacheTTL,
		AllyWeight:            parameter.ResolutionAllyWeight,
		StabilityWeight:       parameter.ResolutionStabilityWeight,
		ReputationWeight:      parameter.ResolutionReputationWeight,
		VictoryReputation:     parameter.ResolutionVictoryReputation,
		DefeatReputationDecay: parameter.ResolutionDefeatReputationDecay,
	}
}

func successionConfig(cfg *config.Config) engine.SuccessionConfig {
	return engine.SuccessionConfig{
		CollapseThreshold: cfg.Resolution.CollapseThreshold,
		MinViableSupport:  cfg.Resolution.MinViableSupport,
		FreshStability:    parameter.SuccessionFreshStability,
		InfluenceWeight:   parameter.SuccessionInfluenceWeight,
		AllianceBonus:     parameter.SuccessionAllianceBonus,
		RivalryPenalty:    parameter.SuccessionRivalryPenalty,
		CapabilitySlash:   parameter.SuccessionCapabilitySlash,
		AbsorbFraction:    parameter.SuccessionAbsorbFraction,
	}
}
