package engine

import (
	"iter"
	"math"
	"sort"

	"github.com/lixenwraith/undercity/core"
)

// ConflictDomain adapts one contested slot universe (blocks, rackets) to the
// resolver. The kernel owns detection, maturation, strength comparison, and
// the standing counters; the domain owns its claim bits and slot payloads.
type ConflictDomain interface {
	// Name labels the universe in events and telemetry
	Name() string

	// Holders yields every entity carrying the domain component, ascending
	Holders() iter.Seq[core.Entity]

	// Exists reports whether e is still a live claimant in this universe
	Exists(e core.Entity) bool

	// Claims returns e's current claim bits
	Claims(e core.Entity) core.BitSet32

	// StabilityAverage returns e's mean control stability across held slots
	StabilityAverage(e core.Entity) float64

	// Transfer moves the slot decisively: clears the loser's bit, sets the
	// winner's, and seeds the winner's slot payload
	Transfer(winner, loser core.Entity, slot int)

	// Attrition applies stalemate wear to both parties' slot payloads
	Attrition(a, b core.Entity, slot int)
}

// PendingConflict is one live dispute over a slot
// Parties are stored as an ordered pair, PartyA < PartyB, so the same dispute
// registered from either side lands on the same key
type PendingConflict struct {
	PartyA core.Entity
	PartyB core.Entity
	Slot   int

	StartTick      uint64
	LastUpdateTick uint64
}

type conflictKey struct {
	a    core.Entity
	b    core.Entity
	slot int
}

// ResolverConfig tunes one resolver instance
type ResolverConfig struct {
	// MaturationWindow is ticks a dispute must sit untouched before it is
	// eligible; a stalemate re-arms the window
	MaturationWindow uint64

	// Threshold is the strength differential required for a decisive
	// outcome; differences at or under it stalemate
	Threshold float64

	// CacheTTL is ticks a computed strength stays fresh
	CacheTTL uint64

	// AllyWeight scales each one-hop ally's base capability
	AllyWeight float64

	// StabilityWeight scales the average control stability bonus
	StabilityWeight float64

	// ReputationWeight scales the reputation bonus
	ReputationWeight float64

	// VictoryReputation is reputation gained by a decisive winner
	VictoryReputation float64

	// DefeatReputationDecay multiplies a decisive loser's reputation
	DefeatReputationDecay float64
}

// OutcomeKind classifies a resolution result
type OutcomeKind uint8

const (
	// OutcomeDecisive transferred the slot to the stronger party
	OutcomeDecisive OutcomeKind = iota

	// OutcomeStalemate cost both parties and re-armed the dispute
	OutcomeStalemate

	// OutcomeDiscarded dropped a dispute because a party left the universe
	OutcomeDiscarded
)

// Outcome reports one processed dispute
type Outcome struct {
	Kind OutcomeKind

	// Ordered pair, matches the pending entry
	PartyA core.Entity
	PartyB core.Entity
	Slot   int

	// Decisive only
	Winner core.Entity
	Loser  core.Entity

	StrengthA float64
	StrengthB float64
}

// ConflictResolver tracks disputes over one slot universe and settles the
// mature ones by relational strength.
//
// Strength folds in one-hop ally contributions, average control stability,
// and reputation:
//
//	base * (1 + sum(ally base * allyWeight)) * (1 + stability * sw) * (1 + reputation * rw)
//
// Ally iteration is bounded by the fixed ally slots, never transitive.
type ConflictResolver struct {
	world  *World
	domain ConflictDomain
	cfg    ResolverConfig

	pending  map[conflictKey]*PendingConflict
	refs     map[core.Entity]int // Live dispute count per party, drives Contested flags
	strength *TTLCache[core.Entity, float64]
}

// NewConflictResolver creates a resolver for one domain
func NewConflictResolver(w *World, domain ConflictDomain, cfg ResolverConfig) *ConflictResolver {
	return &ConflictResolver{
		world:    w,
		domain:   domain,
		cfg:      cfg,
		pending:  make(map[conflictKey]*PendingConflict),
		refs:     make(map[core.Entity]int),
		strength: NewTTLCache[core.Entity, float64](w),
	}
}

// Domain returns the universe this resolver settles
func (r *ConflictResolver) Domain() ConflictDomain {
	return r.domain
}

// Observe scans current claims and registers a dispute for every slot with
// two or more claimants. Registration is idempotent: re-observing a known
// dispute neither duplicates it nor resets its age, so maturation clocks
// keep running across repeated claims.
func (r *ConflictResolver) Observe() {
	var claimants [core.BitSetBits][]core.Entity

	for e := range r.domain.Holders() {
		for slot := range r.domain.Claims(e).Bits() {
			claimants[slot] = append(claimants[slot], e)
		}
	}

	now := r.world.CurrentTick()
	for slot := range claimants {
		parties := claimants[slot]
		if len(parties) < 2 {
			continue
		}
		// Holders yields ascending, so every pair is already ordered
		for i := 0; i < len(parties)-1; i++ {
			for j := i + 1; j < len(parties); j++ {
				r.register(parties[i], parties[j], slot, now)
			}
		}
	}
}

func (r *ConflictResolver) register(a, b core.Entity, slot int, now uint64) {
	if a > b {
		a, b = b, a
	}
	key := conflictKey{a: a, b: b, slot: slot}
	if _, exists := r.pending[key]; exists {
		return
	}
	r.pending[key] = &PendingConflict{
		PartyA:         a,
		PartyB:         b,
		Slot:           slot,
		StartTick:      now,
		LastUpdateTick: now,
	}
	r.retain(a)
	r.retain(b)
}

// Resolve settles every mature dispute and returns what happened, in
// deterministic (PartyA, PartyB, Slot) order
func (r *ConflictResolver) Resolve() []Outcome {
	now := r.world.CurrentTick()

	keys := make([]conflictKey, 0, len(r.pending))
	for k, c := range r.pending {
		if now-c.LastUpdateTick > r.cfg.MaturationWindow {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		if keys[i].b != keys[j].b {
			return keys[i].b < keys[j].b
		}
		return keys[i].slot < keys[j].slot
	})

	var outcomes []Outcome
	for _, key := range keys {
		c := r.pending[key]
		if c == nil {
			continue // Removed by an earlier outcome this pass
		}
		outcomes = append(outcomes, r.settle(key, c, now))
	}
	return outcomes
}

func (r *ConflictResolver) settle(key conflictKey, c *PendingConflict, now uint64) Outcome {
	a, b, slot := c.PartyA, c.PartyB, c.Slot

	// A party that left the universe voids the dispute, no side effects
	if !r.domain.Exists(a) || !r.domain.Exists(b) {
		r.unregister(key)
		return Outcome{Kind: OutcomeDiscarded, PartyA: a, PartyB: b, Slot: slot}
	}

	sa := r.Strength(a)
	sb := r.Strength(b)
	diff := sa - sb

	if math.Abs(diff) <= r.cfg.Threshold {
		// Stalemate: both bleed, dispute re-arms for another window
		r.addCasualty(a)
		r.addCasualty(b)
		r.domain.Attrition(a, b, slot)
		r.strength.Invalidate(a)
		r.strength.Invalidate(b)
		c.LastUpdateTick = now
		return Outcome{
			Kind:      OutcomeStalemate,
			PartyA:    a,
			PartyB:    b,
			Slot:      slot,
			StrengthA: sa,
			StrengthB: sb,
		}
	}

	winner, loser := a, b
	if diff < 0 {
		winner, loser = b, a
	}

	r.domain.Transfer(winner, loser, slot)

	if cp, err := r.world.Components.Capability.Get(winner); err == nil {
		cp.Victories++
		cp.Reputation = math.Min(1, cp.Reputation+r.cfg.VictoryReputation)
	}
	if cp, err := r.world.Components.Capability.Get(loser); err == nil {
		cp.Casualties++
		cp.Reputation *= r.cfg.DefeatReputationDecay
	}

	r.strength.Invalidate(winner)
	r.strength.Invalidate(loser)
	r.unregister(key)

	return Outcome{
		Kind:      OutcomeDecisive,
		PartyA:    a,
		PartyB:    b,
		Slot:      slot,
		Winner:    winner,
		Loser:     loser,
		StrengthA: sa,
		StrengthB: sb,
	}
}

// Strength computes a party's effective strength, memoized per tick window
func (r *ConflictResolver) Strength(e core.Entity) float64 {
	return r.strength.GetOrCompute(e, r.cfg.CacheTTL, func() float64 {
		return r.computeStrength(e)
	})
}

func (r *ConflictResolver) computeStrength(e core.Entity) float64 {
	cp, err := r.world.Components.Capability.Get(e)
	if err != nil {
		return 0
	}

	allySum := 0.0
	if soc, err := r.world.Components.Social.Get(e); err == nil {
		// One hop only: allies-of-allies never count
		for _, ally := range soc.Allies {
			if ally == core.NoEntity || !r.world.Alive(ally) {
				continue
			}
			if ac, err := r.world.Components.Capability.Get(ally); err == nil {
				allySum += ac.Base * r.cfg.AllyWeight
			}
		}
	}

	stability := r.domain.StabilityAverage(e)
	reputation := cp.Reputation

	return cp.Base *
		(1 + allySum) *
		(1 + stability*r.cfg.StabilityWeight) *
		(1 + reputation*r.cfg.ReputationWeight)
}

func (r *ConflictResolver) addCasualty(e core.Entity) {
	if cp, err := r.world.Components.Capability.Get(e); err == nil {
		cp.Casualties++
	}
}

func (r *ConflictResolver) retain(e core.Entity) {
	r.refs[e]++
	if cp, err := r.world.Components.Capability.Get(e); err == nil {
		cp.Contested = true
	}
}

func (r *ConflictResolver) release(e core.Entity) {
	r.refs[e]--
	if r.refs[e] > 0 {
		return
	}
	delete(r.refs, e)
	if cp, err := r.world.Components.Capability.Get(e); err == nil {
		cp.Contested = false
	}
}

func (r *ConflictResolver) unregister(key conflictKey) {
	c := r.pending[key]
	if c == nil {
		return
	}
	delete(r.pending, key)
	r.release(c.PartyA)
	r.release(c.PartyB)
}

// Pending returns the live dispute count
func (r *ConflictResolver) Pending() int {
	return len(r.pending)
}

// PendingConflicts returns a sorted snapshot of live disputes
func (r *ConflictResolver) PendingConflicts() []PendingConflict {
	result := make([]PendingConflict, 0, len(r.pending))
	for _, c := range r.pending {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PartyA != result[j].PartyA {
			return result[i].PartyA < result[j].PartyA
		}
		if result[i].PartyB != result[j].PartyB {
			return result[i].PartyB < result[j].PartyB
		}
		return result[i].Slot < result[j].Slot
	})
	return result
}

// ContestedBits returns the slots e is currently disputing
func (r *ConflictResolver) ContestedBits(e core.Entity) core.BitSet32 {
	var bits core.BitSet32
	for _, c := range r.pending {
		if c.PartyA == e || c.PartyB == e {
			_ = bits.Insert(c.Slot)
		}
	}
	return bits
}

// PruneCache reclaims stale strength entries, call once per tick
func (r *ConflictResolver) PruneCache(maxAge uint64) {
	r.strength.Prune(maxAge)
}
