package system

import (
	"testing"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
)

func newAgent(t *testing.T, w *engine.World, arch component.Archetype, ambition, base float64) core.Entity {
	t.Helper()
	e, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	w.Components.Identity.Add(e, component.IdentityComponent{
		Callsign:  "agent",
		Archetype: arch,
		Ambition:  ambition,
	})
	w.Components.Capability.Add(e, component.CapabilityComponent{Base: base})
	w.Components.Social.Add(e, component.SocialComponent{})
	w.Components.Territory.Add(e, component.TerritoryComponent{})
	return e
}

func drainEvents(w *engine.World) []event.Event {
	return w.Events().Consume()
}

func TestSettlersSpreadAcrossEmptyBlocks(t *testing.T) {
	w := engine.NewWorld(8)
	domain := NewTerritoryDomain(w)
	resolver := engine.NewConflictResolver(w, domain, engine.ResolverConfig{
		MaturationWindow: parameter.ResolutionMaturationWindow,
		Threshold:        parameter.ResolutionThreshold,
		CacheTTL:         parameter.ResolutionCacheTTL,
	})
	w.AddSystem(NewTerritorySystem(w, resolver))

	a := newAgent(t, w, component.ArchetypeBroker, 0.9, 5)
	b := newAgent(t, w, component.ArchetypeGhost, 0.9, 5)

	for i := 0; i < int(parameter.TerritoryClaimInterval); i++ {
		w.Tick()
	}

	ta, _ := w.Components.Territory.Get(a)
	tb, _ := w.Components.Territory.Get(b)
	if ta.Claims.Count() != 1 || tb.Claims.Count() != 1 {
		t.Fatalf("Expected one claim each, got %d and %d", ta.Claims.Count(), tb.Claims.Count())
	}
	if !ta.Claims.Intersect(tb.Claims).Empty() {
		t.Errorf("Expected settlers on distinct blocks, got overlap %v and %v", ta.Claims, tb.Claims)
	}

	claims := 0
	for _, ev := range drainEvents(w) {
		if ev.Type != event.EventTurfClaimed {
			continue
		}
		claims++
		p, ok := ev.Payload.(*event.ClaimPayload)
		if !ok {
			t.Fatalf("Expected *ClaimPayload, got %T", ev.Payload)
		}
		if p.Contested {
			t.Errorf("Expected uncontested settlement, got contested slot %d", p.Slot)
		}
		if p.Domain != "turf" {
			t.Errorf("Expected turf domain, got %q", p.Domain)
		}
	}
	if claims != 2 {
		t.Errorf("Expected 2 claim events, got %d", claims)
	}
}

func TestEnforcerContestsHeldBlock(t *testing.T) {
	w := engine.NewWorld(8)
	domain := NewTerritoryDomain(w)
	resolver := engine.NewConflictResolver(w, domain, engine.ResolverConfig{
		MaturationWindow: parameter.ResolutionMaturationWindow,
		Threshold:        parameter.ResolutionThreshold,
		CacheTTL:         parameter.ResolutionCacheTTL,
	})
	w.AddSystem(NewConflictSystem(w, resolver))
	w.AddSystem(NewTerritorySystem(w, resolver))

	enforcer := newAgent(t, w, component.ArchetypeEnforcer, 0.9, 8)
	holder := newAgent(t, w, component.ArchetypeGhost, 0.1, 5)

	// The holder already controls block 0; low ambition keeps them passive
	hc, _ := w.Components.Territory.Get(holder)
	hc.Claims.Insert(0)
	hc.Stability[0] = 0.5

	for i := 0; i < 30; i++ {
		w.Tick()
	}

	ec, _ := w.Components.Territory.Get(enforcer)
	if !ec.Claims.Contains(0) {
		t.Fatalf("Expected enforcer muscling into block 0, claims %v", ec.Claims)
	}

	if resolver.Pending() != 1 {
		t.Errorf("Expected 1 pending dispute, got %d", resolver.Pending())
	}
	for _, e := range []core.Entity{enforcer, holder} {
		cp, _ := w.Components.Capability.Get(e)
		if !cp.Contested {
			t.Errorf("Expected contested flag on %d", e)
		}
	}

	contested := false
	for _, ev := range drainEvents(w) {
		if ev.Type != event.EventTurfClaimed {
			continue
		}
		if p, ok := ev.Payload.(*event.ClaimPayload); ok && p.Contested && p.Slot == 0 {
			contested = true
		}
	}
	if !contested {
		t.Error("Expected a contested claim event for block 0")
	}
}

func TestDisputedBlockBleedsStability(t *testing.T) {
	w := engine.NewWorld(8)
	domain := NewTerritoryDomain(w)
	resolver := engine.NewConflictResolver(w, domain, engine.ResolverConfig{
		MaturationWindow: parameter.ResolutionMaturationWindow,
		Threshold:        parameter.ResolutionThreshold,
		CacheTTL:         parameter.ResolutionCacheTTL,
	})
	w.AddSystem(NewConflictSystem(w, resolver))
	w.AddSystem(NewTerritorySystem(w, resolver))

	// Low ambition on both sides, no fresh claims interfere
	a := newAgent(t, w, component.ArchetypeGhost, 0.1, 5)
	b := newAgent(t, w, component.ArchetypeGhost, 0.1, 5)

	for _, e := range []core.Entity{a, b} {
		tc, _ := w.Components.Territory.Get(e)
		tc.Claims.Insert(3)
		tc.Stability[3] = 0.8
	}
	// Block 7 is quiet and should regrow
	tc, _ := w.Components.Territory.Get(a)
	tc.Claims.Insert(7)
	tc.Stability[7] = 0.5

	for i := 0; i < 10; i++ {
		w.Tick()
	}

	ta, _ := w.Components.Territory.Get(a)
	if ta.Stability[3] >= 0.8 {
		t.Errorf("Expected disputed block 3 to bleed, got %f", ta.Stability[3])
	}
	if ta.Stability[7] <= 0.5 {
		t.Errorf("Expected quiet block 7 to regrow, got %f", ta.Stability[7])
	}

	tb, _ := w.Components.Territory.Get(b)
	if tb.Stability[3] >= 0.8 {
		t.Errorf("Expected disputed block 3 to bleed for both, got %f", tb.Stability[3])
	}
}

func TestClaimAppetiteCapped(t *testing.T) {
	w := engine.NewWorld(4)
	domain := NewTerritoryDomain(w)
	resolver := engine.NewConflictResolver(w, domain, engine.ResolverConfig{
		MaturationWindow: parameter.ResolutionMaturationWindow,
		Threshold:        parameter.ResolutionThreshold,
		CacheTTL:         parameter.ResolutionCacheTTL,
	})
	w.AddSystem(NewTerritorySystem(w, resolver))

	a := newAgent(t, w, component.ArchetypeBroker, 1.0, 10)

	for i := 0; i < 300; i++ {
		w.Tick()
	}

	tc, _ := w.Components.Territory.Get(a)
	if tc.Claims.Count() != parameter.TerritoryMaxClaims {
		t.Errorf("Expected claims capped at %d, got %d", parameter.TerritoryMaxClaims, tc.Claims.Count())
	}
}
