// Package config loads simulation settings from defaults, an optional YAML
// file and WEALTHSIM_* environment variables, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jwtly10/wealthsim/internal/exchange"
	"github.com/jwtly10/wealthsim/internal/types"
)

// Config contains all wealthsim settings.
type Config struct {
	// Simulation holds the four batch inputs.
	Simulation SimulationConfig `yaml:"simulation"`

	// Runner controls how the batch is executed.
	Runner RunnerConfig `yaml:"runner"`

	// Logging controls operational output on stderr.
	Logging LoggingConfig `yaml:"logging"`
}

type SimulationConfig struct {
	Individuals   int `yaml:"individuals" env:"WEALTHSIM_INDIVIDUALS"`
	InitialWealth int `yaml:"initial_wealth" env:"WEALTHSIM_INITIAL_WEALTH"`
	Encounters    int `yaml:"encounters" env:"WEALTHSIM_ENCOUNTERS"`
	Simulations   int `yaml:"simulations" env:"WEALTHSIM_SIMULATIONS"`
}

type RunnerConfig struct {
	// Seed fixes the random stream. 0 draws a fresh seed per batch.
	Seed int64 `yaml:"seed" env:"WEALTHSIM_SEED"`

	// Workers bounds concurrent runs; 1 runs sequentially.
	Workers int `yaml:"workers" env:"WEALTHSIM_WORKERS"`

	// Rule is the exchange rule: "strict" (default) or "fallthrough".
	Rule string `yaml:"rule" env:"WEALTHSIM_RULE"`
}

type LoggingConfig struct {
	// Level is "info" (default), "debug", "warn" or "error".
	Level string `yaml:"level" env:"WEALTHSIM_LOG_LEVEL"`
}

// Default returns 100 individuals with 50 coins each, 10000 encounters, one run.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Individuals:   100,
			InitialWealth: 50,
			Encounters:    10000,
			Simulations:   1,
		},
		Runner: RunnerConfig{
			Seed:    0,
			Workers: 1,
			Rule:    string(exchange.RuleStrict),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load applies an optional YAML file (skipped when path is empty) and then
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config file: %v", types.ErrInvalidParameter, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any WEALTHSIM_* variables that are set.
// Non-numeric values are rejected.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: parse env: %v", types.ErrInvalidParameter, err)
	}
	return nil
}

// Params converts the simulation section into validated batch inputs.
func (c *Config) Params() (types.Params, error) {
	p := types.Params{
		Individuals:   c.Simulation.Individuals,
		InitialWealth: c.Simulation.InitialWealth,
		Encounters:    c.Simulation.Encounters,
		Simulations:   c.Simulation.Simulations,
	}
	if err := p.Validate(); err != nil {
		return types.Params{}, err
	}
	return p, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}

	if c.Runner.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", types.ErrInvalidParameter, c.Runner.Workers)
	}

	if _, err := exchange.ParseRule(c.Runner.Rule); err != nil {
		return err
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("%w: invalid log level: %s (valid: info, debug, warn, error)", types.ErrInvalidParameter, c.Logging.Level)
	}

	return nil
}
