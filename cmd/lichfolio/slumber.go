package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/graveworks/lichfolio/internal/gamedata"
	"github.com/graveworks/lichfolio/internal/persistence"
	"github.com/graveworks/lichfolio/internal/worldsim"
)

var slumberCmd = &cobra.Command{
	Use:   "slumber",
	Short: "Fast-forward the world while the lich sleeps",
	Long: `Advances the simulation year by year, recording world events in the
chronicle and applying exposure decay, then saves the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		years, _ := cmd.Flags().GetInt("years")
		slot, _ := cmd.Flags().GetString("slot")
		if years <= 0 {
			return fmt.Errorf("years must be positive, got %d", years)
		}

		store, err := persistence.Open(cfg.SavePath)
		if err != nil {
			return fmt.Errorf("open save database: %w", err)
		}
		defer store.Close()

		g, err := newGame(cfg)
		if err != nil {
			return err
		}
		if err := store.LoadGame(slot, g); err != nil {
			if !errors.Is(err, persistence.ErrSlotNotFound) {
				return fmt.Errorf("load slot %q: %w", slot, err)
			}
			slog.Info("no saved game in slot, starting fresh", "slot", slot)
		}

		if limit := g.Phylactery().MaxSlumberYears(); years > limit {
			slog.Warn("slumber capped by phylactery",
				"requested", years, "limit", limit)
			years = limit
		}

		startYear := g.CurrentYear()
		startValue := g.Portfolio().TotalValue()

		var events []worldsim.Event
		bar := progressbar.Default(int64(years), "Slumbering")
		for i := 0; i < years; i++ {
			events = append(events, g.CompleteSlumber(1)...)
			bar.Add(1)
		}

		for _, ev := range events {
			slog.Info("event during slumber",
				"year", ev.YearOccurred,
				"name", ev.Name,
				"type", ev.Type.String(),
				"severity", ev.Severity.String(),
			)
		}

		printAwakening(g, startYear, startValue, len(events))

		if err := store.SaveGame(slot, g); err != nil {
			return fmt.Errorf("save slot %q: %w", slot, err)
		}
		slog.Info("game saved", "slot", slot, "path", cfg.SavePath)
		return nil
	},
}

func printAwakening(g *gamedata.GameData, startYear int, startValue float64, eventCount int) {
	delta := g.Portfolio().TotalValue() - startValue
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	fmt.Printf("\nThe lich awakens in year %d.\n", g.CurrentYear())
	fmt.Printf("  Years slumbered:  %d\n", g.CurrentYear()-startYear)
	fmt.Printf("  World events:     %d\n", eventCount)
	fmt.Printf("  Gold on hand:     %s\n", humanize.Commaf(g.Portfolio().Gold()))
	fmt.Printf("  Total value:      %s (%s%s)\n",
		humanize.Commaf(g.Portfolio().TotalValue()), sign, humanize.Commaf(delta))
	fmt.Printf("  Exposure:         %d (%s)\n",
		g.Exposure().Value(), g.Exposure().Level().String())
	fmt.Printf("  Agents in play:   %d\n", g.Agents().Count())
}

func init() {
	slumberCmd.Flags().Int("years", 10, "number of years to slumber")
	slumberCmd.Flags().String("slot", "autosave", "save slot to load and write")
	rootCmd.AddCommand(slumberCmd)
}
