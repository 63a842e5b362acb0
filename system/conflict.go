package system

import (
	"sync/atomic"

	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/parameter"
)

// ConflictSystem runs dispute detection and settlement over every contested
// slot universe. It owns the resolvers; later systems read post-resolution
// ownership and the contested flags the resolvers maintain.
type ConflictSystem struct {
	world     *engine.World
	resolvers []*engine.ConflictResolver

	statPending    *atomic.Int64
	statResolved   *atomic.Int64
	statStalemates *atomic.Int64
	statDiscarded  *atomic.Int64
}

func NewConflictSystem(world *engine.World, resolvers ...*engine.ConflictResolver) engine.System {
	s := &ConflictSystem{
		world:     world,
		resolvers: resolvers,
	}

	s.statPending = world.Status.Ints.Get("conflict.pending")
	s.statResolved = world.Status.Ints.Get("conflict.resolved")
	s.statStalemates = world.Status.Ints.Get("conflict.stalemates")
	s.statDiscarded = world.Status.Ints.Get("conflict.discarded")

	return s
}

// Name returns system's name
func (s *ConflictSystem) Name() string {
	return "conflict"
}

func (s *ConflictSystem) Priority() int {
	return constant.PriorityConflict
}

func (s *ConflictSystem) Update() {
	pending := 0
	for _, r := range s.resolvers {
		r.Observe()
		for _, out := range r.Resolve() {
			s.emit(r.Domain().Name(), out)
		}
		r.PruneCache(parameter.ResolutionCacheMaxAge)
		pending += r.Pending()
	}
	s.statPending.Store(int64(pending))
}

func (s *ConflictSystem) emit(domain string, out engine.Outcome) {
	switch out.Kind {
	case engine.OutcomeDecisive:
		s.statResolved.Add(1)
		ws, ls := out.StrengthA, out.StrengthB
		if out.Winner != out.PartyA {
			ws, ls = ls, ws
		}
		s.world.PushEvent(event.EventConflictResolved, &event.ConflictResolvedPayload{
			Domain:         domain,
			Winner:         out.Winner,
			Loser:          out.Loser,
			Slot:           out.Slot,
			WinnerStrength: ws,
			LoserStrength:  ls,
		})
	case engine.OutcomeStalemate:
		s.statStalemates.Add(1)
		s.world.PushEvent(event.EventConflictStalemate, &event.ConflictStalematePayload{
			Domain: domain,
			PartyA: out.PartyA,
			PartyB: out.PartyB,
			Slot:   out.Slot,
		})
	case engine.OutcomeDiscarded:
		s.statDiscarded.Add(1)
	}
}
