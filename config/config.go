// Package config provides unified configuration loading for undercity runs.
// Settings layer in order: built-in defaults, an optional YAML file, then
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lixenwraith/undercity/constant"
	"github.com/lixenwraith/undercity/parameter"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the project-local config file Load probes for
const DefaultPath = "undercity.yaml"

// Config contains all settings for one simulation run.
type Config struct {
	// Seed drives every random draw during population seeding. The same
	// seed builds the same city.
	Seed int64 `yaml:"seed"`

	// Capacity is the fixed entity capacity of the world.
	Capacity int `yaml:"capacity"`

	// Population shapes the seeded census.
	Population PopulationConfig `yaml:"population"`

	// Resolution tunes the conflict and succession kernels.
	Resolution ResolutionConfig `yaml:"resolution"`

	// Log configures host-side logging.
	Log LogConfig `yaml:"log"`
}

// PopulationConfig shapes the seeded census.
type PopulationConfig struct {
	// Agents is the number of agents seeded into the world.
	Agents int `yaml:"agents"`

	// Factions is the number of hierarchies the agents are dealt into.
	Factions int `yaml:"factions"`

	// CashMin and CashMax bound seeded starting cash.
	CashMin int64 `yaml:"cash_min"`
	CashMax int64 `yaml:"cash_max"`

	// BaseMin and BaseMax bound seeded base capability.
	BaseMin float64 `yaml:"base_min"`
	BaseMax float64 `yaml:"base_max"`
}

// ResolutionConfig tunes the conflict and succession kernels.
type ResolutionConfig struct {
	// MaturationWindow is ticks a dispute ages before it can settle.
	MaturationWindow uint64 `yaml:"maturation_window"`

	// Threshold is the strength differential required for a decisive
	// outcome; differences at or under it stalemate.
	Threshold float64 `yaml:"resolution_threshold"`

	// CacheTTL is ticks a computed strength stays fresh.
	CacheTTL uint64 `yaml:"cache_ttl"`

	// CollapseThreshold is the stability floor below which a ranked
	// position falls vacant.
	CollapseThreshold float64 `yaml:"collapse_threshold"`

	// MinViableSupport is the support score a succession candidate must
	// exceed to take a vacant position.
	MinViableSupport float64 `yaml:"min_viable_support"`
}

// LogConfig configures host-side logging.
type LogConfig struct {
	// Level sets log verbosity: "debug", "info", "warn", or "error".
	Level string `yaml:"level"`
}

// Default returns a Config with the built-in tuning.
func Default() *Config {
	return &Config{
		Seed:     1,
		Capacity: constant.DefaultAgentCapacity,
		Population: PopulationConfig{
			Agents:   96,
			Factions: constant.DefaultFactions,
			CashMin:  50,
			CashMax:  500,
			BaseMin:  1,
			BaseMax:  10,
		},
		Resolution: ResolutionConfig{
			MaturationWindow:  parameter.ResolutionMaturationWindow,
			Threshold:         parameter.ResolutionThreshold,
			CacheTTL:          parameter.ResolutionCacheTTL,
			CollapseThreshold: parameter.SuccessionCollapseThreshold,
			MinViableSupport:  parameter.SuccessionMinViableSupport,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment.
// Order: defaults -> ./undercity.yaml (if present) -> environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(DefaultPath); err == nil {
		fileCfg, loadErr := LoadFromFile(DefaultPath)
		if loadErr != nil {
			return nil, loadErr
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a buildable world.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.Population.Agents < 1 {
		return fmt.Errorf("population.agents must be at least 1, got %d", c.Population.Agents)
	}
	if c.Population.Agents > c.Capacity {
		return fmt.Errorf("population.agents %d exceeds capacity %d", c.Population.Agents, c.Capacity)
	}
	if c.Population.Factions < 1 || c.Population.Factions > constant.MaxFactions {
		return fmt.Errorf("population.factions must be between 1 and %d, got %d", constant.MaxFactions, c.Population.Factions)
	}
	if c.Population.Agents < c.Population.Factions {
		return fmt.Errorf("population.agents %d cannot staff %d factions", c.Population.Agents, c.Population.Factions)
	}
	if c.Population.CashMin < 0 || c.Population.CashMin > c.Population.CashMax {
		return fmt.Errorf("population cash range [%d, %d] is invalid", c.Population.CashMin, c.Population.CashMax)
	}
	if c.Population.BaseMin <= 0 || c.Population.BaseMin > c.Population.BaseMax {
		return fmt.Errorf("population base range [%f, %f] is invalid", c.Population.BaseMin, c.Population.BaseMax)
	}

	if c.Resolution.Threshold < 0 {
		return fmt.Errorf("resolution_threshold must be non-negative, got %f", c.Resolution.Threshold)
	}
	if c.Resolution.CollapseThreshold < 0 || c.Resolution.CollapseThreshold > 1 {
		return fmt.Errorf("collapse_threshold must be between 0 and 1, got %f", c.Resolution.CollapseThreshold)
	}
	if c.Resolution.MinViableSupport < 0 || c.Resolution.MinViableSupport > 1 {
		return fmt.Errorf("min_viable_support must be between 0 and 1, got %f", c.Resolution.MinViableSupport)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, or empty for default)", c.Log.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UNDERCITY_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("UNDERCITY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capacity = n
		}
	}
	if v := os.Getenv("UNDERCITY_AGENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Population.Agents = n
		}
	}
	if v := os.Getenv("UNDERCITY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
