// Package config loads the optional run configuration of the arbor CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by simulate and serve. Command line flags
// take precedence over values read from a file. Rate is the interval between
// updates in serve mode, Ticks bounds a simulation (zero lets the scenario
// decide) and Frames is the transition length of the reference executor.
type Config struct {
	Rate        time.Duration `yaml:"rate"`
	Ticks       int           `yaml:"ticks"`
	Frames      int           `yaml:"frames"`
	LogLevel    string        `yaml:"log_level"`
	MetricsAddr string        `yaml:"metrics_addr"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisPrefix string        `yaml:"redis_prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Rate:        100 * time.Millisecond,
		Ticks:       0,
		LogLevel:    "warn",
		MetricsAddr: ":9090",
		RedisPrefix: "arbor:",
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative counts and a non-positive rate.
func (c Config) Validate() error {
	switch {
	case c.Rate <= 0:
		return fmt.Errorf("rate must be positive, got %s", c.Rate)
	case c.Ticks < 0:
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	case c.Frames < 0:
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	return nil
}
