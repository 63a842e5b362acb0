package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/undercity/config"
	"github.com/lixenwraith/undercity/engine"
	"github.com/lixenwraith/undercity/seed"
	"github.com/lixenwraith/undercity/sim"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "undercity",
		Short: "Street-level faction simulation",
		Long: `undercity runs a fixed-capacity underworld of clashing crews:
territory grabs, racket takes, conspiracies, street theft, and the
successions that follow when a boss loses the block.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (defaults to ./undercity.yaml when present)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Override the configured seed")

	rootCmd.AddCommand(
		newRunCmd(),
		newWatchCmd(),
		newBenchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("undercity version %s\n", version)
		},
	}
}

// loadConfig resolves the run config from the config flag, default file
// probing, environment, and the seed override
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// assembleCity seeds a fresh world and wires the full system stack
func assembleCity(cfg *config.Config) (*sim.Deck, *seed.Census, error) {
	w := engine.NewWorld(cfg.Capacity)

	census, err := seed.Build(w, cfg)
	if err != nil {
		return nil, nil, err
	}
	deck, err := sim.Assemble(w, cfg)
	if err != nil {
		return nil, nil, err
	}
	return deck, census, nil
}

// newLogger builds the leveled stderr logger
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
