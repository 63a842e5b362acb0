package component

import (
	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
)

// TerritoryComponent tracks an agent's city block holdings. A set bit in
// Claims marks a claimed block, Stability holds per-block control strength
// in 0..1, meaningful only for claimed blocks.
type TerritoryComponent struct {
	Claims    core.BitSet32
	Stability [constant.MaxBlocks]float64
}

// StabilityAverage returns mean control stability across claimed blocks,
// zero when nothing is claimed
func (t *TerritoryComponent) StabilityAverage() float64 {
	n := t.Claims.Count()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := range t.Stability {
		if t.Claims.Contains(i) {
			sum += t.Stability[i]
		}
	}
	return sum / float64(n)
}
