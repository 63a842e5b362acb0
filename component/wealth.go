package component

// WealthComponent tracks an agent's cash position. Income is the last
// tick's net flow, recomputed by the economy pass. TributeRate is the
// fraction of racket income this agent kicks up the hierarchy.
type WealthComponent struct {
	Cash        int64
	Income      int64
	TributeRate float64
}
