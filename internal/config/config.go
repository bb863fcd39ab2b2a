// Package config loads the worldgen YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/database"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/scenario"
)

// Config is the top-level worldgen configuration.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Output     OutputConfig     `yaml:"output"`
	Database   database.Config  `yaml:"database"`
	Logging    logger.Config    `yaml:"logging"`
}

// GenerationConfig holds the party and world parameters.
type GenerationConfig struct {
	Players    int    `yaml:"players"`
	Skills     uint32 `yaml:"skills"`
	Difficulty int    `yaml:"difficulty"`
	Length     int    `yaml:"length"`

	// Seed 0 picks a seed from the clock.
	Seed int64 `yaml:"seed"`

	// MaxAttempts bounds how many consecutive seeds are tried when an
	// attempt fails for a seed-dependent reason.
	MaxAttempts int `yaml:"max_attempts"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls what the CLI does with a finished world.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`

	// SaveDir receives <name>.scnw files when non-empty.
	SaveDir string `yaml:"save_dir"`

	// Store writes each world to the database.
	Store bool `yaml:"store"`
}

// DefaultConfig returns a configuration that generates a short solo world
// from data/catalog.yaml.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Players:     1,
			Difficulty:  3,
			Length:      3,
			MaxAttempts: 10,
		},
		Catalog:  CatalogConfig{Path: "data/catalog.yaml"},
		Output:   OutputConfig{Color: "auto"},
		Database: database.DefaultConfig("data/scenarios.db"),
		Logging:  logger.DefaultConfig(),
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults. LOG_* environment variables override the logging section.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.Logging.ApplyEnv()
	return cfg, nil
}

// Scenario returns the generation parameters as a scenario.Config.
func (g GenerationConfig) Scenario() scenario.Config {
	return scenario.Config{
		Players:    g.Players,
		Skills:     catalog.Skill(g.Skills),
		Difficulty: g.Difficulty,
		Length:     g.Length,
	}
}

// Validate reports the first configuration error.
func (c *Config) Validate() error {
	if err := c.Generation.Scenario().Validate(); err != nil {
		return err
	}
	if c.Generation.MaxAttempts < 1 {
		return fmt.Errorf("config: max_attempts must be at least 1, got %d", c.Generation.MaxAttempts)
	}
	if c.Catalog.Path == "" {
		return errors.New("config: catalog path is required")
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: output color must be auto, always or never, got %q", c.Output.Color)
	}
	if c.Output.Store {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	return nil
}
