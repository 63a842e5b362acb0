package engine

import (
	"iter"
	"testing"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/core"
)

// testTurf adapts the territory store for resolver tests
type testTurf struct {
	w *World
}

func (d *testTurf) Name() string { return "turf" }

func (d *testTurf) Holders() iter.Seq[core.Entity] {
	return d.w.Components.Territory.Entities()
}

func (d *testTurf) Exists(e core.Entity) bool {
	return d.w.Alive(e) && d.w.Components.Territory.Has(e)
}

func (d *testTurf) Claims(e core.Entity) core.BitSet32 {
	tc, err := d.w.Components.Territory.Get(e)
	if err != nil {
		return 0
	}
	return tc.Claims
}

func (d *testTurf) StabilityAverage(e core.Entity) float64 {
	tc, err := d.w.Components.Territory.Get(e)
	if err != nil {
		return 0
	}
	return tc.StabilityAverage()
}

func (d *testTurf) Transfer(winner, loser core.Entity, slot int) {
	if tc, err := d.w.Components.Territory.Get(loser); err == nil {
		tc.Claims.Remove(slot)
		tc.Stability[slot] = 0
	}
	if tc, err := d.w.Components.Territory.Get(winner); err == nil {
		tc.Claims.Insert(slot)
		tc.Stability[slot] = 0.3
	}
}

func (d *testTurf) Attrition(a, b core.Entity, slot int) {
	for _, e := range []core.Entity{a, b} {
		if tc, err := d.w.Components.Territory.Get(e); err == nil && tc.Stability[slot] > 0.1 {
			tc.Stability[slot] -= 0.1
		}
	}
}

// rawStrengthConfig zeroes every multiplier so strength equals base capability
func rawStrengthConfig(maturation uint64, threshold float64) ResolverConfig {
	return ResolverConfig{
		MaturationWindow:      maturation,
		Threshold:             threshold,
		CacheTTL:              1,
		VictoryReputation:     0.05,
		DefeatReputationDecay: 0.85,
	}
}

func contestant(t *testing.T, w *World, base float64, rep float64, slot int) core.Entity {
	t.Helper()
	e, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	w.Components.Capability.Add(e, component.CapabilityComponent{Base: base, Reputation: rep})
	terr := component.TerritoryComponent{}
	terr.Claims.Insert(slot)
	w.Components.Territory.Add(e, terr)
	return e
}

func TestDecisiveResolution(t *testing.T) {
	w := NewWorld(8)
	strong := contestant(t, w, 10.0, 0.5, 3)
	weak := contestant(t, w, 7.0, 0.4, 3)

	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(2, 2.0))

	w.Tick()
	r.Observe()
	if r.Pending() != 1 {
		t.Fatalf("Expected 1 pending conflict, got %d", r.Pending())
	}

	// Immature: nothing settles yet
	if outs := r.Resolve(); len(outs) != 0 {
		t.Fatalf("Expected no outcome before maturation, got %d", len(outs))
	}

	w.Tick()
	w.Tick()
	w.Tick()
	outs := r.Resolve()

	if len(outs) != 1 || outs[0].Kind != OutcomeDecisive {
		t.Fatalf("Expected one decisive outcome, got %v", outs)
	}
	if outs[0].Winner != strong || outs[0].Loser != weak {
		t.Errorf("Expected winner %d loser %d, got %d %d", strong, weak, outs[0].Winner, outs[0].Loser)
	}
	if r.Pending() != 0 {
		t.Errorf("Expected pending conflict removed, got %d", r.Pending())
	}

	st, _ := w.Components.Territory.Get(strong)
	wt, _ := w.Components.Territory.Get(weak)
	if !st.Claims.Contains(3) || wt.Claims.Contains(3) {
		t.Error("Expected slot 3 held by winner only")
	}
	if st.Stability[3] != 0.3 {
		t.Errorf("Expected capture stability 0.3, got %f", st.Stability[3])
	}

	sc, _ := w.Components.Capability.Get(strong)
	wc, _ := w.Components.Capability.Get(weak)
	if sc.Victories != 1 || sc.Casualties != 0 {
		t.Errorf("Expected winner 1/0 counters, got %d/%d", sc.Victories, sc.Casualties)
	}
	if wc.Casualties != 1 || wc.Victories != 0 {
		t.Errorf("Expected loser 0/1 counters, got %d/%d", wc.Victories, wc.Casualties)
	}
	if sc.Reputation < 0.549 || sc.Reputation > 0.551 {
		t.Errorf("Expected winner reputation 0.55, got %f", sc.Reputation)
	}
	if wc.Reputation < 0.339 || wc.Reputation > 0.341 {
		t.Errorf("Expected loser reputation decayed to 0.34, got %f", wc.Reputation)
	}
	if sc.Contested || wc.Contested {
		t.Error("Expected contested flags cleared after resolution")
	}
}

func TestStalemateInclusiveBoundary(t *testing.T) {
	w := NewWorld(8)
	a := contestant(t, w, 10.0, 0, 5)
	b := contestant(t, w, 8.0, 0, 5)

	// Differential exactly equals the threshold: must stalemate
	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(1, 2.0))

	w.Tick()
	r.Observe()
	w.Tick()
	w.Tick()

	outs := r.Resolve()
	if len(outs) != 1 || outs[0].Kind != OutcomeStalemate {
		t.Fatalf("Expected stalemate at inclusive boundary, got %v", outs)
	}

	ac, _ := w.Components.Capability.Get(a)
	bc, _ := w.Components.Capability.Get(b)
	if ac.Casualties != 1 || bc.Casualties != 1 {
		t.Errorf("Expected both parties to absorb a casualty, got %d %d", ac.Casualties, bc.Casualties)
	}
	if r.Pending() != 1 {
		t.Errorf("Expected conflict still pending after stalemate, got %d", r.Pending())
	}
	if ac.Contested != true || bc.Contested != true {
		t.Error("Expected both still contested")
	}

	// Re-armed window: not eligible again immediately
	w.Tick()
	if outs := r.Resolve(); len(outs) != 0 {
		t.Errorf("Expected re-armed conflict to stay immature, got %v", outs)
	}
}

func TestIdempotentRegistration(t *testing.T) {
	w := NewWorld(8)
	contestant(t, w, 5.0, 0, 3)
	contestant(t, w, 5.0, 0, 3)

	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(100, 2.0))

	w.Tick()
	r.Observe()
	start := r.PendingConflicts()[0].StartTick

	for i := 0; i < 10; i++ {
		w.Tick()
		r.Observe()
	}

	if r.Pending() != 1 {
		t.Errorf("Expected repeated claims to keep map at size 1, got %d", r.Pending())
	}
	if got := r.PendingConflicts()[0].StartTick; got != start {
		t.Errorf("Expected conflict age preserved, start %d became %d", start, got)
	}
}

func TestDiscardOnMissingParty(t *testing.T) {
	w := NewWorld(8)
	survivor := contestant(t, w, 10.0, 0.5, 4)
	doomed := contestant(t, w, 7.0, 0.5, 4)

	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(1, 2.0))

	w.Tick()
	r.Observe()
	w.DestroyEntity(doomed)
	w.Tick()
	w.Tick()

	outs := r.Resolve()
	if len(outs) != 1 || outs[0].Kind != OutcomeDiscarded {
		t.Fatalf("Expected discarded outcome, got %v", outs)
	}
	if r.Pending() != 0 {
		t.Errorf("Expected pending cleared, got %d", r.Pending())
	}

	// No side effects on the survivor
	sc, _ := w.Components.Capability.Get(survivor)
	if sc.Victories != 0 || sc.Casualties != 0 || sc.Reputation != 0.5 {
		t.Errorf("Expected survivor untouched, got %+v", sc)
	}
	if sc.Contested {
		t.Error("Expected survivor no longer contested")
	}
}

func TestContestedFlagSurvivesOtherDisputes(t *testing.T) {
	w := NewWorld(8)
	hub := contestant(t, w, 20.0, 0, 1) // Strong enough to win decisively
	rivalA := contestant(t, w, 5.0, 0, 1)
	rivalB := contestant(t, w, 5.0, 0, 2)
	if tc, _ := w.Components.Territory.Get(hub); tc != nil {
		tc.Claims.Insert(2) // Hub disputes both slots
	}

	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(1, 2.0))
	w.Tick()
	r.Observe()
	if r.Pending() != 2 {
		t.Fatalf("Expected 2 pending disputes, got %d", r.Pending())
	}

	w.Tick()
	w.Tick()
	outs := r.Resolve()
	if len(outs) != 2 {
		t.Fatalf("Expected both disputes settled, got %d", len(outs))
	}

	hc, _ := w.Components.Capability.Get(hub)
	if hc.Contested {
		t.Error("Expected hub uncontested after both disputes settled")
	}
	if hc.Victories != 2 {
		t.Errorf("Expected hub to win both, got %d victories", hc.Victories)
	}
	ra, _ := w.Components.Capability.Get(rivalA)
	rb, _ := w.Components.Capability.Get(rivalB)
	if ra.Contested || rb.Contested {
		t.Error("Expected rivals uncontested")
	}
}

func TestStrengthAllyContributionOneHop(t *testing.T) {
	w := NewWorld(8)

	agent := contestant(t, w, 5.0, 0, 0)
	ally := contestant(t, w, 10.0, 0, 1)
	distant := contestant(t, w, 1000.0, 0, 2)

	// agent -> ally -> distant: only the first hop may count
	soc := component.SocialComponent{}
	soc.AddAlly(ally)
	w.Components.Social.Add(agent, soc)

	allySoc := component.SocialComponent{}
	allySoc.AddAlly(distant)
	w.Components.Social.Add(ally, allySoc)

	cfg := rawStrengthConfig(1, 2.0)
	cfg.AllyWeight = 0.5
	r := NewConflictResolver(w, &testTurf{w: w}, cfg)

	// 5 * (1 + 10*0.5) = 30, the distant giant adds nothing
	if got := r.Strength(agent); got != 30.0 {
		t.Errorf("Expected one-hop strength 30.0, got %f", got)
	}

	// Dead allies stop contributing once the cache refreshes
	w.DestroyEntity(ally)
	w.Tick()
	if got := r.Strength(agent); got != 5.0 {
		t.Errorf("Expected strength 5.0 after ally death, got %f", got)
	}
}

func TestEndToEndSlotDispute(t *testing.T) {
	w := NewWorld(8)
	strong := contestant(t, w, 10.0, 0, 3)
	weak := contestant(t, w, 7.0, 0, 3)

	r := NewConflictResolver(w, &testTurf{w: w}, rawStrengthConfig(100, 2.0))

	var outs []Outcome
	resolvedAt := uint64(0)
	for i := 0; i < 150; i++ {
		w.Tick()
		r.Observe()
		if got := r.Resolve(); len(got) > 0 {
			outs = got
			resolvedAt = w.CurrentTick()
			break
		}
		if r.Pending() != 1 {
			t.Fatalf("Expected exactly 1 pending conflict at tick %d, got %d", w.CurrentTick(), r.Pending())
		}
	}

	if len(outs) != 1 || outs[0].Kind != OutcomeDecisive {
		t.Fatalf("Expected eventual decisive outcome, got %v", outs)
	}
	// Registered at tick 1, eligible strictly after 100 ticks of age
	if resolvedAt != 102 {
		t.Errorf("Expected resolution at tick 102, got %d", resolvedAt)
	}

	st, _ := w.Components.Territory.Get(strong)
	wt, _ := w.Components.Territory.Get(weak)
	if !st.Claims.Contains(3) {
		t.Error("Expected slot 3 set on the stronger party")
	}
	if wt.Claims.Contains(3) {
		t.Error("Expected slot 3 cleared on the weaker party")
	}
}
