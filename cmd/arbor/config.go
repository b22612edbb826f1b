package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
)

// loadConfig reads --config and applies every flag the user set on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || path == "" {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if f := flags.Lookup("ticks"); f != nil && f.Changed {
		cfg.Ticks, _ = flags.GetInt("ticks")
	}
	if f := flags.Lookup("frames"); f != nil && f.Changed {
		cfg.Frames, _ = flags.GetInt("frames")
	}
	if f := flags.Lookup("redis"); f != nil && f.Changed {
		cfg.RedisAddr, _ = flags.GetString("redis")
	}
	if f := flags.Lookup("rate"); f != nil && f.Changed {
		cfg.Rate, _ = flags.GetDuration("rate")
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.MetricsAddr, _ = flags.GetString("addr")
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
