package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/undercity/core"
	"github.com/lixenwraith/undercity/render"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the city live in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %v", interval)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			deck, _, err := assembleCity(cfg)
			if err != nil {
				return err
			}

			monitor, err := render.NewMonitor(deck, interval)
			if err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer monitor.Close()

			// A panic with the screen up would leave the terminal raw
			defer func() {
				core.HandleCrash(recover(), monitor.Close)
			}()

			monitor.Run()
			return nil
		},
	}

	cmd.Flags().Duration("interval", 100*time.Millisecond, "Wall-clock time per tick")
	return cmd
}
