package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/graveworks/lichfolio/internal/agent"
	"github.com/graveworks/lichfolio/internal/gamedata"
	"github.com/graveworks/lichfolio/internal/investment"
	"github.com/graveworks/lichfolio/internal/persistence"
	"github.com/graveworks/lichfolio/internal/worldsim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demonstration campaign",
	Long: `Seeds a small realm with kingdoms, holdings, and agents, then sleeps
through several decades, reporting each awakening. State is saved to the
configured slot when the campaign ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, _ := cmd.Flags().GetString("slot")
		cycles, _ := cmd.Flags().GetInt("cycles")
		years, _ := cmd.Flags().GetInt("cycle-years")
		if cycles <= 0 || years <= 0 {
			return fmt.Errorf("cycles and cycle-years must be positive")
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
			seedDemoRealm(g)
		}

		for cycle := 1; cycle <= cycles; cycle++ {
			events := g.CompleteSlumber(years)
			slog.Info("awakened",
				"cycle", cycle,
				"year", g.CurrentYear(),
				"events", len(events),
			)
			printStatus(g)
		}

		for _, entry := range g.Chronicle().Recent(5) {
			slog.Info("chronicle",
				"year", entry.YearOccurred,
				"event", entry.EventName,
				"severity", entry.Severity.String(),
			)
		}
		fmt.Printf("Achievements: %d/%d unlocked (%.0f%%)\n",
			g.Achievements().UnlockedCount(), g.Achievements().TotalCount(),
			g.Achievements().CompletionPercentage()*100)

		if err := store.SaveGame(slot, g); err != nil {
			return fmt.Errorf("save slot %q: %w", slot, err)
		}
		slog.Info("game saved", "slot", slot, "path", cfg.SavePath)
		return nil
	},
}

// seedDemoRealm stocks a fresh game with two kingdoms, a starter
// portfolio, and a pair of agents covering the holdings.
func seedDemoRealm(g *gamedata.GameData) {
	slog.Info("seeding demonstration realm")

	g.World().AddKingdom(worldsim.NewKingdom("valdria", "Kingdom of Valdria"))
	g.World().AddKingdom(worldsim.NewKingdom("meridia", "Duchy of Meridia"))

	bond := investment.NewFinancial("bond-valdria", "Valdrian Crown Bond", investment.CrownBond, 300)
	bond.SetIssuerID("valdria")
	farm := investment.NewProperty("farm-eastmarch", "Eastmarch Farmland", investment.Agricultural, 250)
	route := investment.NewTrade("route-silk", "Southern Silk Route", investment.Route, 200)
	for _, inv := range []investment.Investment{bond, farm, route} {
		if g.Portfolio().SubtractGold(inv.PurchasePrice()) {
			g.Portfolio().Add(inv)
		}
	}

	steward := agent.NewIndividual("steward-aldric", "Aldric the Steward", g.Entropy())
	steward.AssignInvestment(bond.ID())
	steward.AssignInvestment(farm.ID())
	g.Agents().Add(steward)

	house := agent.NewFamilyWithHead("house-merren", "House Merren", "Cassia Merren", g.CurrentYear(), 30, 65, g.Entropy())
	house.AssignInvestment(route.ID())
	g.Agents().Add(house)
}

func printStatus(g *gamedata.GameData) {
	fmt.Printf("Year %d | gold %s | total %s | exposure %d (%s) | agents %d\n",
		g.CurrentYear(),
		humanize.Commaf(g.Portfolio().Gold()),
		humanize.Commaf(g.Portfolio().TotalValue()),
		g.Exposure().Value(), g.Exposure().Level().String(),
		g.Agents().Count(),
	)
}

func init() {
	runCmd.Flags().String("slot", "autosave", "save slot to load and write")
	runCmd.Flags().Int("cycles", 3, "number of slumber cycles")
	runCmd.Flags().Int("cycle-years", 25, "years per slumber cycle")
	rootCmd.AddCommand(runCmd)
}
