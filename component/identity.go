package component

// Archetype classifies an agent's default posture on the street
type Archetype uint8

const (
	// ArchetypeEnforcer leans on muscle, claims turf early
	ArchetypeEnforcer Archetype = iota

	// ArchetypeBroker leans on rackets and tribute flow
	ArchetypeBroker

	// ArchetypeFixer builds ties and works successions
	ArchetypeFixer

	// ArchetypeGhost keeps heat low and waits
	ArchetypeGhost
)

// IdentityComponent carries an agent's persona and drive state. Mood and
// ambition feed claim and plot decisions each tick.
type IdentityComponent struct {
	// Callsign is the agent's street name
	Callsign string

	Archetype Archetype

	// Mood ranges -1 (desperate) to 1 (content)
	Mood float64

	// Ambition ranges 0 to 1, gates claims and plots
	Ambition float64

	// Heat ranges 0 to 1, accumulated law attention
	Heat float64
}

// String returns the archetype's street label
func (a Archetype) String() string {
	switch a {
	case ArchetypeEnforcer:
		return "enforcer"
	case ArchetypeBroker:
		return "broker"
	case ArchetypeFixer:
		return "fixer"
	case ArchetypeGhost:
		return "ghost"
	}
	return "unknown"
}
