// Package config loads the engine and client configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Solver   SolverConfig   `yaml:"solver"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	DealMode         string `yaml:"deal_mode"`         // "random" or "solvable"
	FoundationPoints int    `yaml:"foundation_points"` // points per card reaching a foundation
}

// SolverConfig bounds the solvable-deal verification.
type SolverConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // reshuffles before degrading to random
	NodeBudget  int `yaml:"node_budget"`  // search nodes per verification
}

// ResolverConfig tunes the drop-target resolver.
type ResolverConfig struct {
	Sensitivity float64 `yaml:"sensitivity"` // overlap-area margin for the area tie-break
}

// Load reads a yaml config file, backfilling defaults for zero values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Game.DealMode == "" {
		cfg.Game.DealMode = "random"
	}
	if cfg.Game.FoundationPoints == 0 {
		cfg.Game.FoundationPoints = 10
	}
	if cfg.Solver.MaxAttempts == 0 {
		cfg.Solver.MaxAttempts = 40
	}
	if cfg.Solver.NodeBudget == 0 {
		cfg.Solver.NodeBudget = 200_000
	}
	if cfg.Resolver.Sensitivity == 0 {
		cfg.Resolver.Sensitivity = 0.2
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			DealMode:         "random",
			FoundationPoints: 10,
		},
		Solver: SolverConfig{
			MaxAttempts: 40,
			NodeBudget:  200_000,
		},
		Resolver: ResolverConfig{
			Sensitivity: 0.2,
		},
	}
}
