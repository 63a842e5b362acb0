// Package render draws the live console monitor: block and racket strips
// colored by holder faction, faction rosters, counters, and the event wire.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/event"
	"github.com/lixenwraith/undercity/sim"
)

const wireLength = 12

// factionColors maps a faction id to a stable strip color, index 0 is
// unaffiliated
var factionColors = [...]tcell.Color{
	tcell.ColorWhite,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorPurple,
	tcell.ColorAqua,
	tcell.ColorFuchsia,
	tcell.ColorOrange,
}

var counterKeys = []string{
	"conflict.pending",
	"conflict.resolved",
	"conflict.stalemates",
	"territory.claims",
	"territory.contested",
	"economy.rackets",
	"economy.opened",
	"succession.transfers",
	"succession.collapses",
	"conspiracy.active",
	"conspiracy.exposed",
	"crime.thefts",
	"crime.convictions",
	"economy.ruined",
}

// Monitor owns the terminal screen and ticks the deck on a timer
type Monitor struct {
	screen tcell.Screen
	deck   *sim.Deck

	width, height int
	interval      time.Duration
	paused        bool
	wire          []string
}

// NewMonitor initializes the screen; callers must Close it
func NewMonitor(deck *sim.Deck, interval time.Duration) (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	m := &Monitor{
		screen:   screen,
		deck:     deck,
		interval: interval,
		wire:     make([]string, 0, wireLength),
	}
	m.width, m.height = screen.Size()
	return m, nil
}

// Run drives the tick and draw loop until the operator quits
func (m *Monitor) Run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- m.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !m.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !m.paused {
				m.step()
			}
			m.draw()
		}
	}
}

func (m *Monitor) Close() {
	m.screen.Fini()
}

func (m *Monitor) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				m.paused = !m.paused
			case 's':
				// Single step while paused, drawn on the next frame
				if m.paused {
					m.step()
				}
			}
		}

	case *tcell.EventResize:
		m.width, m.height = m.screen.Size()
		m.screen.Sync()
	}

	return true
}

func (m *Monitor) step() {
	m.deck.World.Tick()
	for _, ev := range m.deck.World.Events().Consume() {
		m.wire = append(m.wire, m.describe(ev))
	}
	if over := len(m.wire) - wireLength; over > 0 {
		m.wire = m.wire[over:]
	}
}

func (m *Monitor) describe(ev event.Event) string {
	switch p := ev.Payload.(type) {
	case *event.ConflictResolvedPayload:
		return fmt.Sprintf("t%-6d %s %2d: %s took it from %s",
			ev.Tick, p.Domain, p.Slot, m.callsign(p.Winner), m.callsign(p.Loser))
	case *event.ConflictStalematePayload:
		return fmt.Sprintf("t%-6d %s %2d: %s and %s trade blows",
			ev.Tick, p.Domain, p.Slot, m.callsign(p.PartyA), m.callsign(p.PartyB))
	case *event.ClaimPayload:
		if p.Contested {
			return fmt.Sprintf("t%-6d %s %2d: %s muscles in",
				ev.Tick, p.Domain, p.Slot, m.callsign(p.Agent))
		}
		return fmt.Sprintf("t%-6d %s %2d: %s moves in",
			ev.Tick, p.Domain, p.Slot, m.callsign(p.Agent))
	case *event.SuccessionPayload:
		return fmt.Sprintf("t%-6d faction %d: %s succeeds %s",
			ev.Tick, p.Faction, m.callsign(p.Successor), m.callsign(p.Incumbent))
	case *event.CollapsePayload:
		return fmt.Sprintf("t%-6d faction %d: tier %d collapses under %s, %d demoted",
			ev.Tick, p.Faction, p.Level, m.callsign(p.Holder), p.Demoted)
	case *event.PlotPayload:
		if ev.Type == event.EventPlotExposed {
			return fmt.Sprintf("t%-6d plot %d against %s burned",
				ev.Tick, p.Plot, m.callsign(p.Target))
		}
		return fmt.Sprintf("t%-6d plot %d: %d knives out for %s",
			ev.Tick, p.Plot, p.Members, m.callsign(p.Target))
	case *event.CrimePayload:
		if p.Caught {
			return fmt.Sprintf("t%-6d %s robs %s for %d, caught",
				ev.Tick, m.callsign(p.Offender), m.callsign(p.Victim), p.Amount)
		}
		return fmt.Sprintf("t%-6d %s robs %s for %d",
			ev.Tick, m.callsign(p.Offender), m.callsign(p.Victim), p.Amount)
	case *event.RuinPayload:
		return fmt.Sprintf("t%-6d %s goes under, %d in debt",
			ev.Tick, m.callsign(p.Agent), p.Debt)
	}
	return fmt.Sprintf("t%-6d event %d", ev.Tick, ev.Type)
}

func (m *Monitor) callsign(e core.Entity) string {
	id, err := m.deck.World.Components.Identity.Get(e)
	if err != nil {
		return fmt.Sprintf("ghost-%d", e)
	}
	return id.Callsign
}

func (m *Monitor) draw() {
	m.screen.Clear()

	m.drawHeader(0)
	m.drawStrip(2, "blocks", m.blockHolders())
	m.drawStrip(3, "rackets", m.racketHolders())
	row := m.drawFactions(5)
	m.drawCounters(2)
	m.drawWire(row + 1)

	m.screen.Show()
}

func (m *Monitor) drawHeader(y int) {
	ints := m.deck.World.Status.Ints
	title := fmt.Sprintf("undercity  tick %d  pop %d  cash %d  gauges %d",
		ints.Get("sim.tick").Load(),
		ints.Get("sim.population").Load(),
		ints.Get("economy.cash.total").Load(),
		m.deck.World.Status.TotalCount())
	m.print(2, y, tcell.StyleDefault.Bold(true), title)

	hint := "[space] pause  [s] step  [q] quit"
	if m.paused {
		hint = "PAUSED  " + hint
	}
	m.print(m.width-len(hint)-2, y, tcell.StyleDefault.Dim(true), hint)
}

// stripCell is one slot of a holdings strip
type stripCell struct {
	faction   uint8
	claimed   bool
	contested bool
	weak      bool
}

func (m *Monitor) blockHolders() [constant.MaxBlocks]stripCell {
	var cells [constant.MaxBlocks]stripCell
	w := m.deck.World
	for e := range w.Components.Territory.Entities() {
		tc, err := w.Components.Territory.Get(e)
		if err != nil {
			continue
		}
		for slot := range tc.Claims.Bits() {
			m.fill(&cells[slot], e, tc.Stability[slot])
		}
	}
	return cells
}

func (m *Monitor) racketHolders() [constant.MaxRackets]stripCell {
	var cells [constant.MaxRackets]stripCell
	w := m.deck.World
	for e := range w.Components.Racket.Entities() {
		rc, err := w.Components.Racket.Get(e)
		if err != nil {
			continue
		}
		for slot := range rc.Slots.Bits() {
			m.fill(&cells[slot], e, rc.Stability[slot])
		}
	}
	return cells
}

func (m *Monitor) fill(cell *stripCell, e core.Entity, stability float64) {
	if cell.claimed {
		cell.contested = true
		return
	}
	cell.claimed = true
	cell.weak = stability < 0.3
	if rank, err := m.deck.World.Components.Rank.Get(e); err == nil {
		cell.faction = rank.Faction
	}
}

func (m *Monitor) drawStrip(y int, label string, cells [32]stripCell) {
	m.print(2, y, tcell.StyleDefault.Dim(true), label)
	for slot, cell := range cells {
		x := 11 + slot
		switch {
		case !cell.claimed:
			m.screen.SetContent(x, y, '·', nil, tcell.StyleDefault.Dim(true))
		case cell.contested:
			m.screen.SetContent(x, y, '╳', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		default:
			st := tcell.StyleDefault.Foreground(factionColors[int(cell.faction)%len(factionColors)])
			if cell.weak {
				st = st.Dim(true)
			}
			m.screen.SetContent(x, y, '█', nil, st)
		}
	}
}

func (m *Monitor) drawFactions(y int) int {
	ints := m.deck.World.Status.Ints
	floats := m.deck.World.Status.Floats
	bosses := m.deck.World.Status.Strings

	row := y
	for f := 1; f <= constant.MaxFactions; f++ {
		key := fmt.Sprintf("faction.%d.members", f)
		if !ints.Has(key) {
			continue
		}
		line := fmt.Sprintf("%d %-14s %3d members %3d ranked  grip %.2f",
			f,
			bosses.Get(fmt.Sprintf("faction.%d.boss", f)).Load(),
			ints.Get(key).Load(),
			ints.Get(fmt.Sprintf("faction.%d.ranked", f)).Load(),
			floats.Get(fmt.Sprintf("faction.%d.stability", f)).Get())
		m.print(2, row, tcell.StyleDefault.Foreground(factionColors[f%len(factionColors)]), line)
		row++
	}
	return row
}

func (m *Monitor) drawCounters(y int) {
	x := m.width - 34
	if x < 48 {
		x = 48
	}
	ints := m.deck.World.Status.Ints
	floats := m.deck.World.Status.Floats

	row := y
	for _, key := range counterKeys {
		m.print(x, row, tcell.StyleDefault.Dim(true), fmt.Sprintf("%-22s %7d", key, ints.Get(key).Load()))
		row++
	}
	for _, key := range []string{"economy.take.average", "planning.mood.average", "planning.threat.peak"} {
		m.print(x, row, tcell.StyleDefault.Dim(true), fmt.Sprintf("%-22s %7.3f", key, floats.Get(key).Get()))
		row++
	}
}

func (m *Monitor) drawWire(y int) {
	m.print(2, y, tcell.StyleDefault.Bold(true), "wire")
	for i, line := range m.wire {
		m.print(2, y+1+i, tcell.StyleDefault, line)
	}
}

func (m *Monitor) print(x, y int, style tcell.Style, text string) {
	if y < 0 || y >= m.height {
		return
	}
	col := x
	for _, r := range text {
		if col >= m.width {
			return
		}
		m.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
