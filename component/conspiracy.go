package component

import (
	"github.com/lixenwraith/undercity/core"
)

// ConspiracyComponent marks an agent's plot memberships. A set bit in Plots
// is an index into the world's plot table.
type ConspiracyComponent struct {
	Plots core.BitSet32
}
