package system

import (
	"iter"
	"sync/atomic"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
	"github.com/lixenwraith/undercity/status"
)

// RacketDomain adapts racket operations to the conflict resolver
type RacketDomain struct {
	world *engine.World
}

func NewRacketDomain(world *engine.World) *RacketDomain {
	return &RacketDomain{world: world}
}

func (d *RacketDomain) Name() string {
	return "racket"
}

func (d *RacketDomain) Holders() iter.Seq[core.Entity] {
	return d.world.Components.Racket.Entities()
}

func (d *RacketDomain) Exists(e core.Entity) bool {
	return d.world.Alive(e) && d.world.Components.Racket.Has(e)
}

func (d *RacketDomain) Claims(e core.Entity) core.BitSet32 {
	rc, err := d.world.Components.Racket.Get(e)
	if err != nil {
		return 0
	}
	return rc.Slots
}

func (d *RacketDomain) StabilityAverage(e core.Entity) float64 {
	rc, err := d.world.Components.Racket.Get(e)
	if err != nil {
		return 0
	}
	return rc.StabilityAverage()
}

func (d *RacketDomain) Transfer(winner, loser core.Entity, slot int) {
	if rc, err := d.world.Components.Racket.Get(loser); err == nil {
		rc.Slots.Remove(slot)
		rc.Stability[slot] = 0
	}
	if rc, err := d.world.Components.Racket.Get(winner); err == nil {
		rc.Slots.Insert(slot)
		rc.Stability[slot] = parameter.ResolutionCaptureStability
	}
}

func (d *RacketDomain) Attrition(a, b core.Entity, slot int) {
	for _, e := range [2]core.Entity{a, b} {
		rc, err := d.world.Components.Racket.Get(e)
		if err != nil || !rc.Slots.Contains(slot) {
			continue
		}
		v := rc.Stability[slot] - parameter.ResolutionStalemateErosion
		if v < 0 {
			v = 0
		}
		rc.Stability[slot] = v
	}
}

// EconomySystem owns the cash flow pass: racket takes, tribute up the
// hierarchy, flat upkeep, and new racket openings
type EconomySystem struct {
	world    *engine.World
	resolver *engine.ConflictResolver

	// Per-entity racket take this tick, hoisted so tribute reads raw
	// earnings untouched by earlier transfers in the same pass
	earned []int64

	statCashTotal *atomic.Int64
	statRackets   *atomic.Int64
	statOpened    *atomic.Int64
	statRuined    *atomic.Int64
	statTakeAvg   *status.AtomicFloat
}

// NewEconomySystem binds the system to the resolver settling racket disputes
func NewEconomySystem(world *engine.World, resolver *engine.ConflictResolver) engine.System {
	s := &EconomySystem{
		world:    world,
		resolver: resolver,
		earned:   make([]int64, world.Capacity()+1),
	}

	s.statCashTotal = world.Status.Ints.Get("economy.cash.total")
	s.statRackets = world.Status.Ints.Get("economy.rackets")
	s.statOpened = world.Status.Ints.Get("economy.opened")
	s.statRuined = world.Status.Ints.Get("economy.ruined")
	s.statTakeAvg = world.Status.Floats.Get("economy.take.average")

	return s
}

// Name returns system's name
func (s *EconomySystem) Name() string {
	return "economy"
}

func (s *EconomySystem) Priority() int {
	return constant.PriorityEconomy
}

func (s *EconomySystem) Update() {
	s.resetIncome()
	s.collectTakes()
	s.payTribute()
	s.payUpkeep()
	s.openRackets()
	s.invest()
	s.driftGrip()
	s.report()
}

func (s *EconomySystem) resetIncome() {
	clear(s.earned)
	for e := range s.world.Components.Wealth.Entities() {
		if wc, err := s.world.Components.Wealth.Get(e); err == nil {
			wc.Income = 0
		}
	}
}

// collectTakes pays each racket holder their per-slot yield, scaled by grip
func (s *EconomySystem) collectTakes() {
	for e := range s.world.Components.Racket.Entities() {
		rc, err := s.world.Components.Racket.Get(e)
		if err != nil {
			continue
		}
		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil {
			continue
		}

		take := 0.0
		for slot := range rc.Slots.Bits() {
			tier := slot % parameter.EconomyYieldTiers
			yield := parameter.EconomyBaseYield + parameter.EconomyYieldStep*float64(tier)
			take += yield * (1 - parameter.EconomyStabilityCut*(1-rc.Stability[slot]))
		}
		rc.RecordTake(take)

		cut := int64(take)
		s.earned[e] = cut
		wc.Cash += cut
		wc.Income += cut
	}
}

// payTribute moves each ranked earner's cut one level up, to the lowest-id
// holder of the next rank in the same faction. The rate is the earner's own.
func (s *EconomySystem) payTribute() {
	now := s.world.CurrentTick()

	for e := range s.world.Components.Racket.Entities() {
		if s.earned[e] <= 0 {
			continue
		}
		rank, err := s.world.Components.Rank.Get(e)
		if err != nil || rank.Level >= component.RankBoss {
			continue
		}
		superior := s.superior(e, rank)
		if superior == core.NoEntity {
			continue
		}

		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil {
			continue
		}
		tribute := int64(float64(s.earned[e]) * wc.TributeRate)
		if tribute <= 0 {
			continue
		}

		sw, err := s.world.Components.Wealth.Get(superior)
		if err != nil {
			continue
		}

		wc.Cash -= tribute
		wc.Income -= tribute
		sw.Cash += tribute
		sw.Income += tribute

		if soc, err := s.world.Components.Social.Get(e); err == nil {
			soc.Record(component.Interaction{
				With:  superior,
				Tick:  now,
				Kind:  component.InteractionTribute,
				Delta: float64(tribute),
			})
		}
	}
}

// superior returns the lowest-id faction member exactly one level up
func (s *EconomySystem) superior(e core.Entity, rank *component.RankComponent) core.Entity {
	for other := range s.world.Components.Rank.Entities() {
		if other == e {
			continue
		}
		or, err := s.world.Components.Rank.Get(other)
		if err != nil {
			continue
		}
		if or.Faction == rank.Faction && or.Level == rank.Level+1 {
			return other
		}
	}
	return core.NoEntity
}

// payUpkeep burns flat upkeep and flags each agent the moment debt takes them
func (s *EconomySystem) payUpkeep() {
	for e := range s.world.Components.Wealth.Entities() {
		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil {
			continue
		}
		before := wc.Cash
		wc.Cash -= parameter.EconomyUpkeep
		wc.Income -= parameter.EconomyUpkeep

		if before >= 0 && wc.Cash < 0 {
			s.statRuined.Add(1)
			s.world.PushEvent(event.EventAgentRuined, &event.RuinPayload{
				Agent: e,
				Debt:  -wc.Cash,
			})
		}
	}
}

// openRackets lets eligible agents muscle into one new slot each
func (s *EconomySystem) openRackets() {
	now := s.world.CurrentTick()

	var occupancy [constant.MaxRackets]int
	for e := range s.world.Components.Racket.Entities() {
		rc, err := s.world.Components.Racket.Get(e)
		if err != nil {
			continue
		}
		for slot := range rc.Slots.Bits() {
			occupancy[slot]++
		}
	}

	for e := range s.world.Components.Racket.Entities() {
		if (now+uint64(e))%parameter.EconomyClaimInterval != 0 {
			continue
		}
		id, err := s.world.Components.Identity.Get(e)
		if err != nil || id.Ambition < parameter.EconomyClaimAmbition {
			continue
		}
		wc, err := s.world.Components.Wealth.Get(e)
		if err != nil || wc.Cash < parameter.EconomyClaimCash {
			continue
		}
		rc, err := s.world.Components.Racket.Get(e)
		if err != nil || rc.Slots.Count() >= parameter.EconomyMaxRackets {
			continue
		}

		slot := s.pickSlot(rc, id, &occupancy)
		if slot < 0 {
			continue
		}
		contested := occupancy[slot] > 0

		rc.Slots.Insert(slot)
		rc.Stability[slot] = parameter.EconomyClaimStability
		occupancy[slot]++

		s.statOpened.Add(1)
		s.world.PushEvent(event.EventRacketOpened, &event.ClaimPayload{
			Domain:    "racket",
			Agent:     e,
			Slot:      slot,
			Contested: contested,
		})
	}
}

// pickSlot chooses a target: brokers chase the richest tier discounted by
// crowding, everyone else settles the lowest empty slot
func (s *EconomySystem) pickSlot(rc *component.RacketComponent, id *component.IdentityComponent, occupancy *[constant.MaxRackets]int) int {
	if id.Archetype == component.ArchetypeBroker {
		best := -1
		bestScore := 0.0
		for slot := 0; slot < constant.MaxRackets; slot++ {
			if rc.Slots.Contains(slot) {
				continue
			}
			tier := slot % parameter.EconomyYieldTiers
			score := float64(tier+1) / float64(occupancy[slot]+1)
			if best < 0 || score > bestScore {
				best, bestScore = slot, score
			}
		}
		return best
	}

	for slot := 0; slot < constant.MaxRackets; slot++ {
		if occupancy[slot] == 0 && !rc.Slots.Contains(slot) {
			return slot
		}
	}
	return -1
}

// invest converts surplus cash into base capability, one purchase per window,
// never touching the reserve
func (s *EconomySystem) invest() {
	now := s.world.CurrentTick()

	for e := range s.world.Query().
		With(s.world.Components.Wealth).
		With(s.world.Components.Capability).
		All() {
		if (now+uint64(e)*7)%parameter.EconomyInvestInterval != 0 {
			continue
		}
		wc, _ := s.world.Components.Wealth.Get(e)
		if wc.Cash < parameter.EconomyInvestFloor+parameter.EconomyInvestCost {
			continue
		}
		cp, _ := s.world.Components.Capability.Get(e)
		if cp.Base >= parameter.EconomyInvestBaseCap {
			continue
		}

		wc.Cash -= parameter.EconomyInvestCost
		cp.Base += parameter.EconomyInvestGain
		if cp.Base > parameter.EconomyInvestBaseCap {
			cp.Base = parameter.EconomyInvestBaseCap
		}
	}
}

// driftGrip grows grip on quiet rackets and bleeds it on disputed ones
func (s *EconomySystem) driftGrip() {
	for e := range s.world.Components.Racket.Entities() {
		rc, err := s.world.Components.Racket.Get(e)
		if err != nil {
			continue
		}
		disputed := s.resolver.ContestedBits(e)
		for slot := range rc.Slots.Bits() {
			if disputed.Contains(slot) {
				v := rc.Stability[slot] - parameter.EconomyGripDecay
				if v < 0 {
					v = 0
				}
				rc.Stability[slot] = v
				continue
			}
			v := rc.Stability[slot] + parameter.EconomyGripGrowth
			if v > 1 {
				v = 1
			}
			rc.Stability[slot] = v
		}
	}
}

func (s *EconomySystem) report() {
	cash := int64(0)
	for e := range s.world.Components.Wealth.Entities() {
		if wc, err := s.world.Components.Wealth.Get(e); err == nil {
			cash += wc.Cash
		}
	}
	s.statCashTotal.Store(cash)

	slots := 0
	takeSum := 0.0
	holders := 0
	for e := range s.world.Components.Racket.Entities() {
		rc, err := s.world.Components.Racket.Get(e)
		if err != nil {
			continue
		}
		slots += rc.Slots.Count()
		takeSum += rc.AverageTake()
		holders++
	}
	s.statRackets.Store(int64(slots))
	if holders > 0 {
		s.statTakeAvg.Set(takeSum / float64(holders))
	}
}
