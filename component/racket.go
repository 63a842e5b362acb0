package component

import (
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
)

// RacketComponent tracks an agent's racket operations. A set bit in Slots
// marks a running racket, Stability holds per-slot grip in 0..1. Take is a
// ring of recent per-tick income for trend checks.
type RacketComponent struct {
	Slots     core.BitSet32
	Stability [constant.MaxRackets]float64

	Take    [constant.TakeHistorySlots]float64
	TakeIdx uint32
}

// RecordTake appends one tick's racket income to the ring
func (r *RacketComponent) RecordTake(v float64) {
	r.Take[r.TakeIdx%constant.TakeHistorySlots] = v
	r.TakeIdx++
}

// AverageTake returns mean income over the recorded window
func (r *RacketComponent) AverageTake() float64 {
	n := int(r.TakeIdx)
	if n == 0 {
		return 0
	}
	if n > constant.TakeHistorySlots {
		n = constant.TakeHistorySlots
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += r.Take[i]
	}
	return sum / float64(n)
}

// StabilityAverage returns mean grip across running rackets, zero when none
func (r *RacketComponent) StabilityAverage() float64 {
	n := r.Slots.Count()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := range r.Stability {
		if r.Slots.Contains(i) {
			sum += r.Stability[i]
		}
	}
	return sum / float64(n)
}
