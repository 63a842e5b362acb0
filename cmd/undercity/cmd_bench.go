package main

import (
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Profile a flat-out run",
		Long: `bench ticks the city as fast as it will go under a pprof profile.

Inspect the output with:
  go tool pprof -http=":8000" <profile>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetUint64("ticks")
			mode, _ := cmd.Flags().GetString("profile")
			dir, _ := cmd.Flags().GetString("profile-dir")

			if ticks == 0 {
				return fmt.Errorf("bench needs at least one tick")
			}

			var opt func(*profile.Profile)
			switch mode {
			case "cpu":
				opt = profile.CPUProfile
			case "mem":
				opt = profile.MemProfileAllocs
			default:
				return fmt.Errorf("unknown profile mode %q, want cpu or mem", mode)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level)

			deck, _, err := assembleCity(cfg)
			if err != nil {
				return err
			}
			w := deck.World

			p := profile.Start(opt, profile.ProfilePath(dir), profile.NoShutdownHook)
			start := time.Now()
			for w.CurrentTick() < ticks {
				w.Tick()
				w.Events().Consume()
			}
			elapsed := time.Since(start)
			p.Stop()

			logger.Info("bench complete",
				"ticks", ticks,
				"elapsed", elapsed.Round(time.Millisecond),
				"ns_per_tick", elapsed.Nanoseconds()/int64(ticks))
			return nil
		},
	}

	cmd.Flags().Uint64("ticks", 50000, "Ticks to run under the profile")
	cmd.Flags().String("profile", "cpu", "Profile mode: cpu or mem")
	cmd.Flags().String("profile-dir", ".", "Directory for the pprof output")
	return cmd
}
