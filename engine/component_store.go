package engine

import (
	"github.com/lixenwraith/undercity/component"
)

// ComponentStore provides named typed stores for the closed component set
// Systems cache the struct once during construction; every access after that
// is a direct field read, no lookup
type ComponentStore struct {
	// Persona
	Identity *Store[component.IdentityComponent]
	Social   *Store[component.SocialComponent]

	// Standing
	Capability *Store[component.CapabilityComponent]
	Rank       *Store[component.RankComponent]

	// Holdings
	Territory *Store[component.TerritoryComponent]
	Racket    *Store[component.RacketComponent]
	Wealth    *Store[component.WealthComponent]

	// Schemes
	Conspiracy *Store[component.ConspiracyComponent]
}

// initComponentStores allocates every typed store and registers each with
// the world's lifecycle sweep. Called once from NewWorld.
func initComponentStores(w *World) {
	w.Components = ComponentStore{
		Identity:   newStore[component.IdentityComponent](w),
		Social:     newStore[component.SocialComponent](w),
		Capability: newStore[component.CapabilityComponent](w),
		Rank:       newStore[component.RankComponent](w),
		Territory:  newStore[component.TerritoryComponent](w),
		Racket:     newStore[component.RacketComponent](w),
		Wealth:     newStore[component.WealthComponent](w),
		Conspiracy: newStore[component.ConspiracyComponent](w),
	}
}
