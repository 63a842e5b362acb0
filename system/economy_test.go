package system

import (
	"testing"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
)

func newEarner(t *testing.T, w *engine.World, arch component.Archetype, ambition float64, cash int64) core.Entity {
	t.Helper()
	e, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	w.Components.Identity.Add(e, component.IdentityComponent{
		Callsign:  "earner",
		Archetype: arch,
		Ambition:  ambition,
	})
	w.Components.Social.Add(e, component.SocialComponent{})
	w.Components.Wealth.Add(e, component.WealthComponent{
		Cash:        cash,
		TributeRate: parameter.EconomyTributeRate,
	})
	w.Components.Racket.Add(e, component.RacketComponent{})
	return e
}

func economyWorld(t *testing.T) (*engine.World, *engine.ConflictResolver) {
	t.Helper()
	w := engine.NewWorld(8)
	domain := NewRacketDomain(w)
	resolver := engine.NewConflictResolver(w, domain, engine.ResolverConfig{
		MaturationWindow: parameter.ResolutionMaturationWindow,
		Threshold:        parameter.ResolutionThreshold,
		CacheTTL:         parameter.ResolutionCacheTTL,
	})
	w.AddSystem(NewEconomySystem(w, resolver))
	return w, resolver
}

func TestRacketTakeScalesWithTier(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	rc, _ := w.Components.Racket.Get(e)
	rc.Slots.Insert(0) // Tier 0: base yield
	rc.Slots.Insert(5) // Tier 1: one step up
	rc.Stability[0] = 1.0
	rc.Stability[5] = 1.0

	w.Tick()

	wc, _ := w.Components.Wealth.Get(e)
	// 10 + 12.5 at full grip, truncated to cash, minus upkeep
	if wc.Cash != 21 {
		t.Errorf("Expected cash 21, got %d", wc.Cash)
	}
	if wc.Income != 21 {
		t.Errorf("Expected income 21, got %d", wc.Income)
	}

	avg := rc.AverageTake()
	if avg < 22.49 || avg > 22.51 {
		t.Errorf("Expected average take 22.5, got %f", avg)
	}
}

func TestWeakGripCutsTake(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	rc, _ := w.Components.Racket.Get(e)
	rc.Slots.Insert(0)
	rc.Stability[0] = 0 // No grip at all

	w.Tick()

	wc, _ := w.Components.Wealth.Get(e)
	// Half yield at zero grip: 10 * 0.5 = 5, minus upkeep
	if wc.Cash != 4 {
		t.Errorf("Expected cash 4, got %d", wc.Cash)
	}
}

func TestTributeFlowsOneLevelUp(t *testing.T) {
	w, _ := economyWorld(t)
	soldier := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)
	capo := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	w.Components.Rank.Add(soldier, component.RankComponent{
		Faction: 1, Level: component.RankSoldier, Stability: 0.8,
	})
	w.Components.Rank.Add(capo, component.RankComponent{
		Faction: 1, Level: component.RankCapo, Stability: 0.8,
	})

	rc, _ := w.Components.Racket.Get(soldier)
	rc.Slots.Insert(0)
	rc.Stability[0] = 1.0

	w.Tick()

	sw, _ := w.Components.Wealth.Get(soldier)
	cw, _ := w.Components.Wealth.Get(capo)
	// Soldier: 10 take, 2 tribute out, 1 upkeep
	if sw.Cash != 7 {
		t.Errorf("Expected soldier cash 7, got %d", sw.Cash)
	}
	// Capo: 2 tribute in, 1 upkeep
	if cw.Cash != 1 {
		t.Errorf("Expected capo cash 1, got %d", cw.Cash)
	}

	soc, _ := w.Components.Social.Get(soldier)
	in, ok := soc.LastWith(capo)
	if !ok || in.Kind != component.InteractionTribute {
		t.Fatalf("Expected a logged tribute to the capo, got %+v ok=%v", in, ok)
	}
	if in.Delta != 2 {
		t.Errorf("Expected tribute delta 2, got %f", in.Delta)
	}
}

func TestTributePaysAtTheEarnersRate(t *testing.T) {
	w, _ := economyWorld(t)
	soldier := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)
	capo := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	w.Components.Rank.Add(soldier, component.RankComponent{
		Faction: 1, Level: component.RankSoldier, Stability: 0.8,
	})
	w.Components.Rank.Add(capo, component.RankComponent{
		Faction: 1, Level: component.RankCapo, Stability: 0.8,
	})

	sw, _ := w.Components.Wealth.Get(soldier)
	sw.TributeRate = 0.5

	rc, _ := w.Components.Racket.Get(soldier)
	rc.Slots.Insert(0)
	rc.Stability[0] = 1.0

	w.Tick()

	// Soldier: 10 take, 5 tribute out at the raised rate, 1 upkeep
	if sw.Cash != 4 {
		t.Errorf("Expected soldier cash 4, got %d", sw.Cash)
	}
	cw, _ := w.Components.Wealth.Get(capo)
	if cw.Cash != 4 {
		t.Errorf("Expected capo cash 4, got %d", cw.Cash)
	}
}

func TestBossKeepsEverything(t *testing.T) {
	w, _ := economyWorld(t)
	boss := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	w.Components.Rank.Add(boss, component.RankComponent{
		Faction: 1, Level: component.RankBoss, Stability: 0.8,
	})
	rc, _ := w.Components.Racket.Get(boss)
	rc.Slots.Insert(0)
	rc.Stability[0] = 1.0

	w.Tick()

	wc, _ := w.Components.Wealth.Get(boss)
	if wc.Cash != 9 {
		t.Errorf("Expected boss cash 9 with no tribute out, got %d", wc.Cash)
	}
}

func TestBrokerOpensRichestSlot(t *testing.T) {
	w, _ := economyWorld(t)
	broker := newEarner(t, w, component.ArchetypeBroker, 0.9, 500)

	for i := 0; i < int(parameter.EconomyClaimInterval); i++ {
		w.Tick()
	}

	rc, _ := w.Components.Racket.Get(broker)
	if !rc.Slots.Contains(3) {
		t.Fatalf("Expected broker on top-tier slot 3, got %v", rc.Slots)
	}

	opened := 0
	for _, ev := range drainEvents(w) {
		if ev.Type != event.EventRacketOpened {
			continue
		}
		opened++
		p, ok := ev.Payload.(*event.ClaimPayload)
		if !ok {
			t.Fatalf("Expected *ClaimPayload, got %T", ev.Payload)
		}
		if p.Domain != "racket" || p.Slot != 3 || p.Contested {
			t.Errorf("Unexpected opening payload %+v", p)
		}
	}
	if opened != 1 {
		t.Errorf("Expected 1 opening event, got %d", opened)
	}
}

func TestGripRegrowsWhenQuiet(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	rc, _ := w.Components.Racket.Get(e)
	rc.Slots.Insert(2)
	rc.Stability[2] = 0.25

	for i := 0; i < 10; i++ {
		w.Tick()
	}

	if rc.Stability[2] <= 0.25 {
		t.Errorf("Expected grip regrowth, got %f", rc.Stability[2])
	}
}

func TestInvestmentBuysMuscle(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 1000)
	w.Components.Capability.Add(e, component.CapabilityComponent{Base: 5})

	for i := 0; i < int(parameter.EconomyInvestInterval); i++ {
		w.Tick()
	}

	cp, _ := w.Components.Capability.Get(e)
	if cp.Base != 5.5 {
		t.Errorf("Expected one purchase raising base to 5.5, got %f", cp.Base)
	}
	wc, _ := w.Components.Wealth.Get(e)
	// 60 ticks of upkeep plus one purchase
	if wc.Cash != 1000-60-parameter.EconomyInvestCost {
		t.Errorf("Expected cash %d, got %d", 1000-60-parameter.EconomyInvestCost, wc.Cash)
	}
}

func TestInvestmentStopsAtTheCap(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 10000)
	w.Components.Capability.Add(e, component.CapabilityComponent{Base: 14.8})

	for i := 0; i < 2*int(parameter.EconomyInvestInterval); i++ {
		w.Tick()
	}

	cp, _ := w.Components.Capability.Get(e)
	if cp.Base != parameter.EconomyInvestBaseCap {
		t.Errorf("Expected base clamped to %f, got %f", parameter.EconomyInvestBaseCap, cp.Base)
	}
	wc, _ := w.Components.Wealth.Get(e)
	// Only the first window buys; the second finds base at the cap
	if wc.Cash != 10000-120-parameter.EconomyInvestCost {
		t.Errorf("Expected cash %d, got %d", 10000-120-parameter.EconomyInvestCost, wc.Cash)
	}
}

func TestInvestmentSparesTheReserve(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, parameter.EconomyInvestFloor)
	w.Components.Capability.Add(e, component.CapabilityComponent{Base: 5})

	for i := 0; i < int(parameter.EconomyInvestInterval); i++ {
		w.Tick()
	}

	cp, _ := w.Components.Capability.Get(e)
	if cp.Base != 5 {
		t.Errorf("Expected no purchase below the reserve, base moved to %f", cp.Base)
	}
}

func TestRuinFiresOnceAtTheCrossing(t *testing.T) {
	w, _ := economyWorld(t)
	e := newEarner(t, w, component.ArchetypeGhost, 0.1, 2)

	for i := 0; i < 5; i++ {
		w.Tick()
	}

	ruins := 0
	for _, ev := range drainEvents(w) {
		if ev.Type != event.EventAgentRuined {
			continue
		}
		ruins++
		p, ok := ev.Payload.(*event.RuinPayload)
		if !ok {
			t.Fatalf("Expected *RuinPayload, got %T", ev.Payload)
		}
		if p.Agent != e || p.Debt != 1 {
			t.Errorf("Unexpected ruin payload %+v", p)
		}
		if ev.Tick != 3 {
			t.Errorf("Expected the crossing on tick 3, got %d", ev.Tick)
		}
	}
	if ruins != 1 {
		t.Errorf("Expected exactly 1 ruin event, got %d", ruins)
	}
	if n := w.Status.Ints.Get("economy.ruined").Load(); n != 1 {
		t.Errorf("Expected ruin counter 1, got %d", n)
	}
}

func TestRacketTransferMovesSlotAndGrip(t *testing.T) {
	w := engine.NewWorld(4)
	domain := NewRacketDomain(w)

	winner := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)
	loser := newEarner(t, w, component.ArchetypeGhost, 0.1, 0)

	lc, _ := w.Components.Racket.Get(loser)
	lc.Slots.Insert(4)
	lc.Stability[4] = 0.7

	domain.Transfer(winner, loser, 4)

	if lc.Slots.Contains(4) {
		t.Error("Expected loser stripped of slot 4")
	}
	if lc.Stability[4] != 0 {
		t.Errorf("Expected loser grip zeroed, got %f", lc.Stability[4])
	}
	wc, _ := w.Components.Racket.Get(winner)
	if !wc.Slots.Contains(4) {
		t.Error("Expected winner granted slot 4")
	}
	if wc.Stability[4] != parameter.ResolutionCaptureStability {
		t.Errorf("Expected capture grip %f, got %f", parameter.ResolutionCaptureStability, wc.Stability[4])
	}
}
