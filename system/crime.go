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

// CrimeSystem turns broke, miserable agents into street thieves
// Theft rolls are deterministic functions of tick and entity id, the same
// seed world always produces the same crime wave.
type CrimeSystem struct {
	world *engine.World

	statThefts      *atomic.Int64
	statConvictions *atomic.Int64
}

func NewCrimeSystem(world *engine.World) engine.System {
	s := &CrimeSystem{
		world: world,
	}

	s.statThefts = world.Status.Ints.Get("crime.thefts")
	s.statConvictions = world.Status.Ints.Get("crime.convictions")

	return s
}

// Name returns system's name
func (s *CrimeSystem) Name() string {
	return "crime"
}

func (s *CrimeSystem) Priority() int {
	return constant.PriorityCrime
}

func (s *CrimeSystem) Update() {
	now := s.world.CurrentTick()

	for e := range s.world.Query().
		With(s.world.Components.Identity).
		With(s.world.Components.Wealth).
		All() {
		id, _ := s.world.Components.Identity.Get(e)
		if id.Mood >= parameter.CrimeDesperationMood {
			continue
		}
		wc, _ := s.world.Components.Wealth.Get(e)
		if wc.Cash >= parameter.CrimeDesperationCash {
			continue
		}
		if (now+uint64(e)*31)%100 >= parameter.CrimeChancePercent {
			continue
		}

		victim := s.pickVictim(e)
		if victim == core.NoEntity {
			continue
		}
		s.steal(e, victim, id, wc, now)
	}
}

// pickVictim returns the richest non-ally mark, lowest id on ties
func (s *CrimeSystem) pickVictim(offender core.Entity) core.Entity {
	soc, _ := s.world.Components.Social.Get(offender)

	victim := core.NoEntity
	topCash := int64(0)
	for e := range s.world.Components.Wealth.Entities() {
		if e == offender || !s.world.Alive(e) {
			continue
		}
		if soc != nil && soc.IsAlly(e) {
			continue
		}
		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil || wc.Cash <= 0 {
			continue
		}
		if victim == core.NoEntity || wc.Cash > topCash {
			victim, topCash = e, wc.Cash
		}
	}
	return victim
}

func (s *CrimeSystem) steal(offender, victim core.Entity, id *component.IdentityComponent, wc *component.WealthComponent, now uint64) {
	vw, err := s.world.Components.Wealth.Get(victim)
	if err != nil {
		return
	}

	amount := int64(float64(vw.Cash) * parameter.CrimeTakeFraction)
	if amount > parameter.CrimeTakeMax {
		amount = parameter.CrimeTakeMax
	}
	if amount <= 0 {
		return
	}

	vw.Cash -= amount
	wc.Cash += amount

	id.Heat += parameter.CrimeHeatPerTheft
	if id.Heat > 1 {
		id.Heat = 1
	}

	// The victim remembers
	if soc, err := s.world.Components.Social.Get(victim); err == nil {
		soc.AddRival(offender)
		soc.Record(component.Interaction{
			With:  offender,
			Tick:  now,
			Kind:  component.InteractionTheft,
			Delta: parameter.CrimeGrudgeDelta,
		})
	}

	caught := id.Heat > parameter.CrimeCatchHeat &&
		(now*7+uint64(offender)*13)%100 < parameter.CrimeCatchPercent
	if caught {
		s.convict(offender, id, wc)
	}

	s.statThefts.Add(1)
	s.world.PushEvent(event.EventCrime, &event.CrimePayload{
		Offender: offender,
		Victim:   victim,
		Amount:   amount,
		Caught:   caught,
	})
}

// convict fines the offender, dents their reputation, and cools them off
func (s *CrimeSystem) convict(offender core.Entity, id *component.IdentityComponent, wc *component.WealthComponent) {
	if wc.Cash > 0 {
		wc.Cash -= int64(float64(wc.Cash) * parameter.CrimeFineFraction)
	}
	if cp, err := s.world.Components.Capability.Get(offender); err == nil {
		cp.Reputation *= parameter.CrimeConvictionReputationDecay
	}
	id.Heat /= 2

	s.statConvictions.Add(1)
}
