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
)

// TerritoryDomain adapts block holdings to the conflict resolver
type TerritoryDomain struct {
	world *engine.World
}

func NewTerritoryDomain(world *engine.World) *TerritoryDomain {
	return &TerritoryDomain{world: world}
}

func (d *TerritoryDomain) Name() string {
	return "turf"
}

func (d *TerritoryDomain) Holders() iter.Seq[core.Entity] {
	return d.world.Components.Territory.Entities()
}

func (d *TerritoryDomain) Exists(e core.Entity) bool {
	return d.world.Alive(e) && d.world.Components.Territory.Has(e)
}

func (d *TerritoryDomain) Claims(e core.Entity) core.BitSet32 {
	tc, err := d.world.Components.Territory.Get(e)
	if err != nil {
		return 0
	}
	return tc.Claims
}

func (d *TerritoryDomain) StabilityAverage(e core.Entity) float64 {
	tc, err := d.world.Components.Territory.Get(e)
	if err != nil {
		return 0
	}
	return tc.StabilityAverage()
}

func (d *TerritoryDomain) Transfer(winner, loser core.Entity, slot int) {
	if tc, err := d.world.Components.Territory.Get(loser); err == nil {
		tc.Claims.Remove(slot)
		tc.Stability[slot] = 0
	}
	if tc, err := d.world.Components.Territory.Get(winner); err == nil {
		tc.Claims.Insert(slot)
		tc.Stability[slot] = parameter.ResolutionCaptureStability
	}
}

func (d *TerritoryDomain) Attrition(a, b core.Entity, slot int) {
	for _, e := range [2]core.Entity{a, b} {
		tc, err := d.world.Components.Territory.Get(e)
		if err != nil || !tc.Claims.Contains(slot) {
			continue
		}
		v := tc.Stability[slot] - parameter.ResolutionStalemateErosion
		if v < 0 {
			v = 0
		}
		tc.Stability[slot] = v
	}
}

// TerritorySystem owns block claims and per-block control drift
type TerritorySystem struct {
	world    *engine.World
	resolver *engine.ConflictResolver

	statClaims    *atomic.Int64
	statContested *atomic.Int64
	statClaimed   *atomic.Int64
}

// NewTerritorySystem binds the system to the resolver settling its universe,
// contested blocks are read from the resolver's pending set
func NewTerritorySystem(world *engine.World, resolver *engine.ConflictResolver) engine.System {
	s := &TerritorySystem{
		world:    world,
		resolver: resolver,
	}

	s.statClaims = world.Status.Ints.Get("territory.claims")
	s.statContested = world.Status.Ints.Get("territory.contested")
	s.statClaimed = world.Status.Ints.Get("territory.claimed")

	return s
}

// Name returns system's name
func (s *TerritorySystem) Name() string {
	return "territory"
}

func (s *TerritorySystem) Priority() int {
	return constant.PriorityTerritory
}

func (s *TerritorySystem) Update() {
	s.pressClaims()
	s.driftStability()
}

// pressClaims lets eligible agents stake one new block each
// Attempts are staggered by entity id so the whole population never claims
// on the same tick
func (s *TerritorySystem) pressClaims() {
	now := s.world.CurrentTick()

	var occupancy [constant.MaxBlocks]int
	for e := range s.world.Components.Territory.Entities() {
		tc, err := s.world.Components.Territory.Get(e)
		if err != nil {
			continue
		}
		for slot := range tc.Claims.Bits() {
			occupancy[slot]++
		}
	}

	for e := range s.world.Components.Territory.Entities() {
		if (now+uint64(e))%parameter.TerritoryClaimInterval != 0 {
			continue
		}
		id, err := s.world.Components.Identity.Get(e)
		if err != nil || id.Ambition < parameter.TerritoryClaimAmbition {
			continue
		}
		cp, err := s.world.Components.Capability.Get(e)
		if err != nil || cp.Base < parameter.TerritoryClaimCapability {
			continue
		}
		tc, err := s.world.Components.Territory.Get(e)
		if err != nil || tc.Claims.Count() >= parameter.TerritoryMaxClaims {
			continue
		}

		slot := s.pickBlock(tc, id, &occupancy)
		if slot < 0 {
			continue
		}
		contested := occupancy[slot] > 0

		tc.Claims.Insert(slot)
		tc.Stability[slot] = parameter.TerritoryClaimStability
		occupancy[slot]++

		s.statClaimed.Add(1)
		s.world.PushEvent(event.EventTurfClaimed, &event.ClaimPayload{
			Domain:    "turf",
			Agent:     e,
			Slot:      slot,
			Contested: contested,
		})
	}
}

// pickBlock chooses a target: enforcers muscle into the least defended
// occupied block, everyone else settles the lowest empty one
func (s *TerritorySystem) pickBlock(tc *component.TerritoryComponent, id *component.IdentityComponent, occupancy *[constant.MaxBlocks]int) int {
	if id.Archetype == component.ArchetypeEnforcer {
		best, bestCount := -1, 0
		for slot := 0; slot < constant.MaxBlocks; slot++ {
			if tc.Claims.Contains(slot) || occupancy[slot] == 0 {
				continue
			}
			if best < 0 || occupancy[slot] < bestCount {
				best, bestCount = slot, occupancy[slot]
			}
		}
		if best >= 0 {
			return best
		}
	}

	for slot := 0; slot < constant.MaxBlocks; slot++ {
		if occupancy[slot] == 0 && !tc.Claims.Contains(slot) {
			return slot
		}
	}
	return -1
}

// driftStability grows control on quiet blocks and bleeds it on disputed ones
func (s *TerritorySystem) driftStability() {
	totalClaims := 0
	contestedBlocks := 0

	for e := range s.world.Components.Territory.Entities() {
		tc, err := s.world.Components.Territory.Get(e)
		if err != nil {
			continue
		}
		disputed := s.resolver.ContestedBits(e)
		for slot := range tc.Claims.Bits() {
			totalClaims++
			if disputed.Contains(slot) {
				contestedBlocks++
				v := tc.Stability[slot] - parameter.TerritoryContestedDecay
				if v < 0 {
					v = 0
				}
				tc.Stability[slot] = v
				continue
			}
			v := tc.Stability[slot] + parameter.TerritoryGrowthRate
			if v > 1 {
				v = 1
			}
			tc.Stability[slot] = v
		}
	}

	s.statClaims.Store(int64(totalClaims))
	s.statContested.Store(int64(contestedBlocks))
}
