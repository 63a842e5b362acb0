package component

import (
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
)

// InteractionKind tags an entry in the interaction log
type InteractionKind uint8

const (
	InteractionTheft InteractionKind = iota
	InteractionClash
	InteractionTribute
	InteractionPact
	InteractionBetrayal
)

// Interaction is one remembered exchange with another agent
type Interaction struct {
	With  core.Entity
	Tick  uint64
	Kind  InteractionKind
	Delta float64
}

// SocialComponent holds an agent's bounded relationship state. Ally and
// rival slots hold entity ids, zero means empty. The interaction log is a
// ring, oldest entries overwritten first.
type SocialComponent struct {
	Allies [constant.AllySlots]core.Entity
	Rivals [constant.RivalSlots]core.Entity

	Log    [constant.InteractionSlots]Interaction
	LogIdx uint8
}

// IsAlly reports whether e occupies an ally slot
func (s *SocialComponent) IsAlly(e core.Entity) bool {
	for _, a := range s.Allies {
		if a == e && e != core.NoEntity {
			return true
		}
	}
	return false
}

// IsRival reports whether e occupies a rival slot
func (s *SocialComponent) IsRival(e core.Entity) bool {
	for _, r := range s.Rivals {
		if r == e && e != core.NoEntity {
			return true
		}
	}
	return false
}

// AddAlly fills the first empty ally slot with e. Returns false when e is
// invalid, already present, or all slots are taken.
func (s *SocialComponent) AddAlly(e core.Entity) bool {
	if e == core.NoEntity || s.IsAlly(e) {
		return false
	}
	for i := range s.Allies {
		if s.Allies[i] == core.NoEntity {
			s.Allies[i] = e
			return true
		}
	}
	return false
}

// AddRival fills the first empty rival slot with e. Returns false when e is
// invalid, already present, or all slots are taken.
func (s *SocialComponent) AddRival(e core.Entity) bool {
	if e == core.NoEntity || s.IsRival(e) {
		return false
	}
	for i := range s.Rivals {
		if s.Rivals[i] == core.NoEntity {
			s.Rivals[i] = e
			return true
		}
	}
	return false
}

// RemoveAlly zeroes e's ally slot if present
func (s *SocialComponent) RemoveAlly(e core.Entity) {
	for i := range s.Allies {
		if s.Allies[i] == e {
			s.Allies[i] = core.NoEntity
		}
	}
}

// RemoveRival zeroes e's rival slot if present
func (s *SocialComponent) RemoveRival(e core.Entity) {
	for i := range s.Rivals {
		if s.Rivals[i] == e {
			s.Rivals[i] = core.NoEntity
		}
	}
}

// Drop zeroes every slot referencing e, used when e leaves the world
func (s *SocialComponent) Drop(e core.Entity) {
	s.RemoveAlly(e)
	s.RemoveRival(e)
}

// Record appends one interaction to the ring, overwriting the oldest
func (s *SocialComponent) Record(in Interaction) {
	s.Log[s.LogIdx%constant.InteractionSlots] = in
	s.LogIdx++
}

// LastWith returns the most recent logged interaction with e, if any
func (s *SocialComponent) LastWith(e core.Entity) (Interaction, bool) {
	var best Interaction
	found := false
	for _, in := range s.Log {
		if in.With != e || in.With == core.NoEntity {
			continue
		}
		if !found || in.Tick > best.Tick {
			best = in
			found = true
		}
	}
	return best, found
}
