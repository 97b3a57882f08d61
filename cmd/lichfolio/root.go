package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/graveworks/lichfolio/internal/config"
	"github.com/graveworks/lichfolio/internal/entropy"
	"github.com/graveworks/lichfolio/internal/gamedata"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "lichfolio",
	Short: "Run the lich portfolio simulation",
	Long: `lichfolio manages an undying investor's holdings across the centuries:
slumber, wake to a changed world, and keep the living from noticing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		setupLogging(cfg)
		return nil
	},
}

func setupLogging(cfg config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newGame builds a fresh game from the configured seed and merges any
// YAML achievement definitions found under the data directory.
func newGame(cfg config.Config) (*gamedata.GameData, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := gamedata.New(seed, entropy.NewRand(seed))
	if err != nil {
		return nil, err
	}
	if err := g.Achievements().LoadDefinitions(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("load achievement definitions: %w", err)
	}
	return g, nil
}
