package constant

// System Execution Priorities (lower runs first)
// Resolution runs first so every later system reads post-resolution ownership.
const (
	PriorityConflict   = 100
	PrioritySuccession = 200 // After conflict counters settle
	PriorityTerritory  = 300
	PriorityEconomy    = 400 // After territory, income follows ownership
	PriorityConspiracy = 500
	PriorityCrime      = 600
	PriorityPlanning   = 700 // After all state changes, before telemetry
	PriorityMetrics    = 900 // Final, telemetry collection
)
