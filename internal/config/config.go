// Package config loads runtime settings from LICHFOLIO_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings.
type Config struct {
	// SavePath is the SQLite save database location.
	SavePath string `env:"LICHFOLIO_SAVE_PATH" envDefault:"lichfolio.db"`

	// DataDir holds YAML definition files (achievements and the like).
	DataDir string `env:"LICHFOLIO_DATA_DIR" envDefault:"data"`

	// Seed drives world generation. Zero means derive from the clock.
	Seed int64 `env:"LICHFOLIO_SEED" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LICHFOLIO_LOG_LEVEL" envDefault:"info"`

	// LogJSON switches logs to JSON output.
	LogJSON bool `env:"LICHFOLIO_LOG_JSON" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
