package event

// EventType represents the type of sim event
type EventType int

const (
	// EventConflictResolved signals a decisive conflict outcome
	// Trigger: ConflictSystem resolution pass
	// Consumer: Host reporters | Payload: *ConflictResolvedPayload
	EventConflictResolved EventType = iota

	// EventConflictStalemate signals an indecisive mature conflict
	// Trigger: ConflictSystem resolution pass
	// Consumer: Host reporters | Payload: *ConflictStalematePayload
	EventConflictStalemate

	// EventTurfClaimed signals a new block claim
	// Trigger: TerritorySystem claim pass
	// Consumer: Host reporters | Payload: *ClaimPayload
	EventTurfClaimed

	// EventRacketOpened signals a new racket operation
	// Trigger: EconomySystem claim pass
	// Consumer: Host reporters | Payload: *ClaimPayload
	EventRacketOpened

	// EventSuccession signals a leadership transfer
	// Trigger: SuccessionSystem evaluation
	// Consumer: Host reporters | Payload: *SuccessionPayload
	EventSuccession

	// EventPowerCollapse signals a vacancy with no viable successor
	// Trigger: SuccessionSystem evaluation
	// Consumer: Host reporters | Payload: *CollapsePayload
	EventPowerCollapse

	// EventPlotFormed signals a new conspiracy against a ranked holder
	// Trigger: ConspiracySystem formation pass
	// Consumer: Host reporters | Payload: *PlotPayload
	EventPlotFormed

	// EventPlotExposed signals a conspiracy burned by accumulated heat
	// Trigger: ConspiracySystem exposure check
	// Consumer: Host reporters | Payload: *PlotPayload
	EventPlotExposed

	// EventCrime signals a street theft, committed or punished
	// Trigger: CrimeSystem desperation pass
	// Consumer: Host reporters | Payload: *CrimePayload
	EventCrime

	// EventAgentRuined signals an agent's cash crossing into debt
	// Trigger: EconomySystem upkeep pass
	// Consumer: Host reporters | Payload: *RuinPayload
	EventAgentRuined
)

// Event represents a single sim event with metadata
type Event struct {
	Type    EventType
	Tick    uint64
	Payload any
}

// String returns the event type's log label
func (t EventType) String() string {
	switch t {
	case EventConflictResolved:
		return "conflict_resolved"
	case EventConflictStalemate:
		return "conflict_stalemate"
	case EventTurfClaimed:
		return "turf_claimed"
	case EventRacketOpened:
		return "racket_opened"
	case EventSuccession:
		return "succession"
	case EventPowerCollapse:
		return "power_collapse"
	case EventPlotFormed:
		return "plot_formed"
	case EventPlotExposed:
		return "plot_exposed"
	case EventCrime:
		return "crime"
	case EventAgentRuined:
		return "agent_ruined"
	}
	return "unknown"
}
