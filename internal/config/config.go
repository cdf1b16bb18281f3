// Package config holds the matcher's options record (spec.md §6): per-level
// thresholds, hierarchy propagation, the level subset to run, ranking
// parallelism, and feature weight overrides. It is internal because,
// unlike the teacher's pkg/config, nothing outside this module is a
// consumer of its own configuration package.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/relabel/classmatch/pkg/model"
)

//go:generate cp ../../config.toml default_config.toml
//go:embed default_config.toml
var embeddedConfigData []byte

// LevelThresholds is the floor score and minimum runner-up margin a level
// requires to commit a proposal (spec.md §4.3).
type LevelThresholds struct {
	Absolute float64 `toml:"absolute"`
	Relative float64 `toml:"relative"`
}

// Config is the matcher's options record.
type Config struct {
	Thresholds         map[string]LevelThresholds `toml:"thresholds"`
	PropagateHierarchy bool                       `toml:"propagate_hierarchy"`
	Levels             []string                   `toml:"levels"`
	Parallelism        int                        `toml:"parallelism"`
	FeatureWeights     map[string]int             `toml:"feature_weights"`
}

// DefaultConfig returns the embedded default configuration, optionally
// overridden by a local config.toml the same way the teacher's
// pkg/config.DefaultConfig looks for a local override.
func DefaultConfig() (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(embeddedConfigData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}

	for _, path := range []string{"config.toml", "../config.toml", "../../config.toml"} {
		if _, err := os.Stat(path); err == nil {
			local, err := LoadFromFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load local config %s: %v\n", path, err)
				break
			}
			return local, nil
		}
	}

	return &cfg, nil
}

// LoadFromFile loads a configuration from a TOML file.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return &cfg, nil
}

// AbsoluteThreshold returns the floor score required to commit a proposal
// at level, falling back to the spec.md §4.3 design default if the level
// is absent from configuration.
func (c *Config) AbsoluteThreshold(level model.Level) float64 {
	if t, ok := c.Thresholds[level.String()]; ok {
		return t.Absolute
	}
	return defaultThresholds[level].Absolute
}

// RelativeThreshold returns the minimum margin over the runner-up required
// to commit a proposal at level.
func (c *Config) RelativeThreshold(level model.Level) float64 {
	if t, ok := c.Thresholds[level.String()]; ok {
		return t.Relative
	}
	return defaultThresholds[level].Relative
}

// ParsedLevels resolves the configured level names into model.Level values,
// in configured order. An empty configuration runs every level.
func (c *Config) ParsedLevels() ([]model.Level, error) {
	if len(c.Levels) == 0 {
		return model.Levels, nil
	}
	out := make([]model.Level, 0, len(c.Levels))
	for _, name := range c.Levels {
		l, ok := model.ParseLevel(name)
		if !ok {
			return nil, fmt.Errorf("unrecognized level %q", name)
		}
		out = append(out, l)
	}
	return out, nil
}

var defaultThresholds = map[model.Level]LevelThresholds{
	model.Initial:   {Absolute: 0.80, Relative: 0.08},
	model.Secondary: {Absolute: 0.70, Relative: 0.05},
	model.Extra:     {Absolute: 0.60, Relative: 0.03},
	model.Final:     {Absolute: 0.50, Relative: 0.01},
}
