package engine

import (
	"testing"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/event"
)

type probeSystem struct {
	name     string
	priority int
	log      *[]string
}

func (p *probeSystem) Name() string {
	return p.name
}

func (p *probeSystem) Update() {
	*p.log = append(*p.log, p.name)
}

func (p *probeSystem) Priority() int {
	return p.priority
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld(4)
	var log []string

	// Registered out of order on purpose
	w.AddSystem(&probeSystem{name: "planning", priority: 700, log: &log})
	w.AddSystem(&probeSystem{name: "conflict", priority: 100, log: &log})
	w.AddSystem(&probeSystem{name: "economy", priority: 400, log: &log})

	w.Tick()

	want := []string{"conflict", "economy", "planning"}
	if len(log) != len(want) {
		t.Fatalf("Expected %d updates, got %d", len(want), len(log))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %s at position %d, got %s", want[i], i, log[i])
		}
	}
}

func TestTickAdvancesCounter(t *testing.T) {
	w := NewWorld(4)

	if w.CurrentTick() != 0 {
		t.Errorf("Expected fresh world at tick 0, got %d", w.CurrentTick())
	}

	for i := 0; i < 5; i++ {
		w.Tick()
	}
	if w.CurrentTick() != 5 {
		t.Errorf("Expected tick 5, got %d", w.CurrentTick())
	}
}

func TestSystemsSeeTickBeingExecuted(t *testing.T) {
	w := NewWorld(4)
	var seen []uint64

	w.AddSystem(&tickProbe{world: w, seen: &seen})
	w.Tick()
	w.Tick()

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("Expected systems to observe ticks [1 2], got %v", seen)
	}
}

type tickProbe struct {
	world *World
	seen  *[]uint64
}

func (p *tickProbe) Name() string { return "probe" }

func (p *tickProbe) Update() {
	*p.seen = append(*p.seen, p.world.CurrentTick())
}

func (p *tickProbe) Priority() int { return 0 }

func TestPushEventStampsTick(t *testing.T) {
	w := NewWorld(4)

	w.Tick()
	w.Tick()
	w.Tick()
	w.PushEvent(event.EventCrime, &event.CrimePayload{Amount: 25})

	events := w.Events().Consume()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Tick != 3 {
		t.Errorf("Expected event stamped with tick 3, got %d", events[0].Tick)
	}
	payload, ok := events[0].Payload.(*event.CrimePayload)
	if !ok || payload.Amount != 25 {
		t.Errorf("Expected crime payload with amount 25, got %v", events[0].Payload)
	}
}

func TestClearResetsEntitiesKeepsTick(t *testing.T) {
	w := NewWorld(4)

	e, _ := w.CreateEntity()
	w.Components.Rank.Add(e, component.RankComponent{Level: component.RankBoss})
	w.Tick()

	w.Clear()

	if w.EntityCount() != 0 {
		t.Errorf("Expected empty world, count %d", w.EntityCount())
	}
	if w.Components.Rank.Count() != 0 {
		t.Errorf("Expected cleared stores, rank count %d", w.Components.Rank.Count())
	}
	if w.CurrentTick() != 1 {
		t.Errorf("Expected tick to survive clear, got %d", w.CurrentTick())
	}

	// Id space rewinds
	e2, err := w.CreateEntity()
	if err != nil || e2 != 1 {
		t.Errorf("Expected id allocation restarted at 1, got %d %v", e2, err)
	}
}
