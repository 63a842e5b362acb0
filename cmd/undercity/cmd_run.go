package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/event"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetUint64("ticks")
			every, _ := cmd.Flags().GetUint64("report-every")
			pace, _ := cmd.Flags().GetDuration("pace")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level)

			deck, census, err := assembleCity(cfg)
			if err != nil {
				return err
			}
			logger.Info("city seeded",
				"seed", cfg.Seed,
				"agents", census.Agents,
				"factions", census.Factions,
				"blocks", census.Blocks,
				"rackets", census.Rackets)

			router := event.NewRouter[*slog.Logger](deck.World.Events())
			router.Register(powerReporter{})
			router.Register(streetReporter{})

			w := deck.World
			start := time.Now()
			for w.CurrentTick() < ticks {
				w.Tick()
				router.DispatchAll(logger)

				if every > 0 && w.CurrentTick()%every == 0 {
					pulse(logger, w)
				}
				if pace > 0 {
					time.Sleep(pace)
				}
			}
			elapsed := time.Since(start)

			logger.Info("run complete",
				"ticks", ticks,
				"elapsed", elapsed.Round(time.Millisecond))
			pulse(logger, w)
			return nil
		},
	}

	cmd.Flags().Uint64("ticks", 10000, "Ticks to run")
	cmd.Flags().Uint64("report-every", 1000, "Gauge report interval in ticks, 0 disables")
	cmd.Flags().Duration("pace", 0, "Sleep between ticks, 0 runs flat out")
	return cmd
}

// pulse logs the headline gauges
func pulse(logger *slog.Logger, w *engine.World) {
	ints := w.Status.Ints
	logger.Info("city pulse",
		"tick", ints.Get("sim.tick").Load(),
		"cash", ints.Get("economy.cash.total").Load(),
		"claims", ints.Get("territory.claims").Load(),
		"contested", ints.Get("territory.contested").Load(),
		"rackets", ints.Get("economy.rackets").Load(),
		"resolved", ints.Get("conflict.resolved").Load(),
		"transfers", ints.Get("succession.transfers").Load(),
		"thefts", ints.Get("crime.thefts").Load(),
		"ruined", ints.Get("economy.ruined").Load(),
		"plots", ints.Get("conspiracy.active").Load(),
		"mood", w.Status.Floats.Get("planning.mood.average").Get())
}

// powerReporter logs leadership changes and burned plots
type powerReporter struct{}

func (powerReporter) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSuccession,
		event.EventPowerCollapse,
		event.EventPlotExposed,
	}
}

func (powerReporter) HandleEvent(logger *slog.Logger, ev event.Event) {
	switch p := ev.Payload.(type) {
	case *event.SuccessionPayload:
		logger.Info("succession",
			"tick", ev.Tick,
			"faction", p.Faction,
			"level", p.Level,
			"incumbent", p.Incumbent,
			"successor", p.Successor,
			"support", p.Support)
	case *event.CollapsePayload:
		logger.Warn("power collapse",
			"tick", ev.Tick,
			"faction", p.Faction,
			"level", p.Level,
			"holder", p.Holder,
			"demoted", p.Demoted)
	case *event.PlotPayload:
		logger.Info("plot exposed",
			"tick", ev.Tick,
			"plot", p.Plot,
			"target", p.Target,
			"members", p.Members)
	}
}

// streetReporter logs the block-level churn at debug, ruin at warn
type streetReporter struct{}

func (streetReporter) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventConflictResolved,
		event.EventCrime,
		event.EventAgentRuined,
	}
}

func (streetReporter) HandleEvent(logger *slog.Logger, ev event.Event) {
	switch p := ev.Payload.(type) {
	case *event.ConflictResolvedPayload:
		logger.Debug("settlement",
			"tick", ev.Tick,
			"domain", p.Domain,
			"slot", p.Slot,
			"winner", p.Winner,
			"loser", p.Loser)
	case *event.CrimePayload:
		logger.Debug("theft",
			"tick", ev.Tick,
			"offender", p.Offender,
			"victim", p.Victim,
			"amount", p.Amount,
			"caught", p.Caught)
	case *event.RuinPayload:
		logger.Warn("agent ruined",
			"tick", ev.Tick,
			"agent", p.Agent,
			"debt", p.Debt)
	}
}
