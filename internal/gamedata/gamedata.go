// Package gamedata aggregates every simulation subsystem into one game
// state: the portfolio, agent roster, phylactery, discovery ledger, world
// simulation, chronicle, synergy rules, and exposure meter. It is the unit
// of saving and loading.
package gamedata

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/graveworks/lichfolio/internal/achievement"
	"github.com/graveworks/lichfolio/internal/agent"
	"github.com/graveworks/lichfolio/internal/chronicle"
	"github.com/graveworks/lichfolio/internal/entropy"
	"github.com/graveworks/lichfolio/internal/exposure"
	"github.com/graveworks/lichfolio/internal/investment"
	"github.com/graveworks/lichfolio/internal/ledger"
	"github.com/graveworks/lichfolio/internal/megaproject"
	"github.com/graveworks/lichfolio/internal/phylactery"
	"github.com/graveworks/lichfolio/internal/rival"
	"github.com/graveworks/lichfolio/internal/synergy"
	"github.com/graveworks/lichfolio/internal/worldsim"
)

const (
	defaultStartingGold = 1000.0
	defaultStartingYear = 847

	// FormatVersion is bumped whenever the snapshot layout changes.
	FormatVersion = 1
)

// HistoryPoint records the portfolio's worth at the end of a slumber.
type HistoryPoint struct {
	Year            int     `json:"year"`
	TotalValue      float64 `json:"total_value"`
	Gold            float64 `json:"gold"`
	InvestmentValue float64 `json:"investment_value"`
}

// GameData owns every subsystem of one game in progress.
type GameData struct {
	portfolio    *investment.Portfolio
	agents       *agent.Manager
	phylactery   *phylactery.Phylactery
	ledger       *ledger.Ledger
	world        *worldsim.WorldSimulation
	chronicle    *chronicle.Chronicle
	synergies    *synergy.Manager
	exposure     *exposure.Meter
	achievements *achievement.Manager
	megaprojects *megaproject.Manager
	rivals       *rival.Manager

	history          []HistoryPoint
	totalYearsPlayed int

	src entropy.Source
}

// New creates a fresh game seeded for deterministic world generation.
// Passing nil uses the package default entropy source.
func New(seed int64, src entropy.Source) (*GameData, error) {
	if src == nil {
		src = entropy.Default()
	}
	synergies, err := synergy.NewManager()
	if err != nil {
		return nil, fmt.Errorf("building synergy rules: %w", err)
	}

	g := &GameData{
		portfolio:    investment.NewPortfolio(),
		agents:       agent.NewManager(),
		phylactery:   phylactery.New(),
		ledger:       ledger.NewLedger(),
		world:        worldsim.NewWorldSimulation(worldsim.NewGenerator(seed, src)),
		chronicle:    chronicle.NewChronicle(),
		synergies:    synergies,
		exposure:     exposure.NewMeter(),
		achievements: achievement.Default(),
		megaprojects: megaproject.Default(),
		rivals:       rival.Default(),
		src:          src,
	}
	g.wireHooks()
	return g, nil
}

func (g *GameData) wireHooks() {
	g.portfolio.OnGoldChanged(func(old, now float64) {
		if now > old {
			g.achievements.IncrementStat(achievement.StatTotalGoldEarned, int64(now-old))
		}
		g.achievements.OnGoldChanged(int64(now))
	})
	g.phylactery.OnDarkUnlock(func(string) {
		g.achievements.OnDarkUnlock()
	})
	g.phylactery.OnUpgradePurchased(func(_ phylactery.Category, upgradeID string) {
		// Soul-binding is the one bargain not settled in gold.
		if upgradeID == "soul-binding" {
			g.achievements.OnSoulTrade()
		}
	})
	g.megaprojects.OnPhaseCompleted(func(p *megaproject.Project, phaseName string) {
		g.chronicle.AddMilestone(g.world.CurrentYear(), "A Great Work Advances",
			fmt.Sprintf("%s has finished its %s phase", p.Name(), phaseName))
	})
	g.megaprojects.OnDiscovered(func(p *megaproject.Project) {
		g.exposure.Add(25)
		g.chronicle.AddMilestone(g.world.CurrentYear(), "A Great Work Uncovered",
			fmt.Sprintf("Mortal eyes have found %s", p.Name()))
	})
	g.rivals.OnDiscovered(func(r *rival.Rival) {
		g.chronicle.AddMilestone(g.world.CurrentYear(), "An Immortal Takes Notice",
			fmt.Sprintf("%s has learned of the lich", r.Name()))
	})
	g.rivals.OnStanceChanged(func(r *rival.Rival, _, now rival.Stance) {
		if now == rival.StanceHostile {
			g.chronicle.AddMilestone(g.world.CurrentYear(), "An Immortal Turns Hostile",
				fmt.Sprintf("%s now moves against the lich", r.Name()))
		}
	})
}

func (g *GameData) Portfolio() *investment.Portfolio   { return g.portfolio }
func (g *GameData) Agents() *agent.Manager             { return g.agents }
func (g *GameData) Phylactery() *phylactery.Phylactery { return g.phylactery }
func (g *GameData) Ledger() *ledger.Ledger             { return g.ledger }
func (g *GameData) World() *worldsim.WorldSimulation   { return g.world }
func (g *GameData) Chronicle() *chronicle.Chronicle    { return g.chronicle }
func (g *GameData) Synergies() *synergy.Manager        { return g.synergies }
func (g *GameData) Exposure() *exposure.Meter          { return g.exposure }
func (g *GameData) Achievements() *achievement.Manager { return g.achievements }
func (g *GameData) Megaprojects() *megaproject.Manager { return g.megaprojects }
func (g *GameData) Rivals() *rival.Manager             { return g.rivals }
func (g *GameData) Entropy() entropy.Source            { return g.src }

// CurrentYear delegates to the world simulation.
func (g *GameData) CurrentYear() int { return g.world.CurrentYear() }

// TotalYearsPlayed is the sum of all slumbered years this run.
func (g *GameData) TotalYearsPlayed() int { return g.totalYearsPlayed }

// History returns the recorded portfolio snapshots, oldest first.
func (g *GameData) History() []HistoryPoint {
	out := make([]HistoryPoint, len(g.history))
	copy(out, g.history)
	return out
}

// SaveID identifies this aggregate in save files.
func (g *GameData) SaveID() string { return "game-data" }

// StartNewGame resets every subsystem to its initial state, including the
// phylactery's upgrades and points.
func (g *GameData) StartNewGame() {
	slog.Info("starting new game")

	g.totalYearsPlayed = 0
	g.history = nil
	g.portfolio.Reset(defaultStartingGold)
	g.agents.Reset()
	g.phylactery.ResetUpgrades()
	g.ledger.Reset()
	g.world.Reset(defaultStartingYear)
	g.chronicle.Reset()
	g.synergies.Reset()
	g.exposure.Reset()
	g.megaprojects.Reset()
	g.rivals.Reset()
}

// CompleteSlumber advances the game by the given number of years, capped
// at the phylactery's slumber limit. The world simulation runs first; its
// events are chronicled and applied to holdings, agents age, exposure
// decays, and investment income lands in the hoard. Returns the events
// that occurred.
func (g *GameData) CompleteSlumber(years int) []worldsim.Event {
	if years <= 0 {
		return nil
	}
	if limit := g.phylactery.MaxSlumberYears(); years > limit {
		slog.Warn("slumber capped", "requested", years, "limit", limit)
		years = limit
	}

	slog.Info("entering slumber", "years", years, "year", g.world.CurrentYear())

	g.totalYearsPlayed += years
	g.megaprojects.UnlockEligible(g.phylactery.Level())
	g.rivals.SetThreat(g.exposure.Value())

	events := g.world.AdvanceYears(years)
	for _, ev := range events {
		g.chronicle.Record(ev, ev.YearOccurred, "", 0, ev.ExposureImpact)
		g.portfolio.ApplyEvent(investment.Event{
			ID:       ev.ID,
			Type:     ev.Type.String(),
			Severity: int(ev.Severity),
		})
		if ev.ExposureImpact > 0 {
			g.exposure.Add(int(ev.ExposureImpact))
		}
		g.rivals.ReactToEvent(ev)
		g.applySeizures(ev)
	}

	g.agents.AdvanceYears(years)
	agentExposure := int(g.agents.TotalExposureContribution())
	if g.megaprojects.HasAgentTravel() {
		// Leyline travel leaves no witnesses on the roads.
		agentExposure /= 2
	}
	g.exposure.Add(agentExposure)

	g.advanceGreatWorks(years)
	g.rivals.TickYears(years, g.src)
	if pressure := g.rivals.HostileCount() * years / 10; pressure > 0 {
		g.exposure.Add(pressure)
	}

	income := g.portfolio.ApplySlumber(years)
	bonus := g.phylactery.TimeEfficiencyBonus()
	g.synergies.Recalculate(g.portfolio)
	bonus *= g.synergies.TotalBonus()
	bonus *= 1.0 + g.megaprojects.PropertyIncomeBonus()
	if extra := income * (bonus - 1.0); extra > 0 {
		g.portfolio.AddGold(extra)
	}

	g.exposure.ApplyDecay(years)
	if decadeBonus := g.phylactery.ExposureDecayBonus(); decadeBonus > 0 {
		g.exposure.Add(-decadeBonus * years / 10)
	}

	g.history = append(g.history, HistoryPoint{
		Year:            g.world.CurrentYear(),
		TotalValue:      g.portfolio.TotalValue(),
		Gold:            g.portfolio.Gold(),
		InvestmentValue: g.portfolio.InvestmentValue(),
	})

	g.achievements.OnSlumberComplete(years)
	g.achievements.OnGoldChanged(int64(g.portfolio.TotalValue()))
	for _, op := range g.agents.ByType(agent.TypeFamily) {
		if fam, ok := op.(*agent.Family); ok {
			g.achievements.OnFamilySuccession(fam.Generation())
		}
	}
	for _, inv := range g.portfolio.Investments() {
		g.achievements.OnInvestmentHeld(inv.ID(), inv.YearsHeld())
	}
	g.checkKingdomDebt()
	g.rivals.NoticePlayer(g.exposure.Value(), g.src)

	return events
}

// advanceGreatWorks pays each active project's upkeep and sinks the
// slumbered years into construction. Projects the hoard cannot fund
// are paused instead.
func (g *GameData) advanceGreatWorks(years int) {
	for _, proj := range g.megaprojects.Active() {
		upkeep := proj.CostPerYear() * float64(years)
		if upkeep > 0 && !g.portfolio.SubtractGold(upkeep) {
			slog.Warn("great work paused for lack of funds",
				"project", proj.ID(), "upkeep", upkeep)
			proj.Pause()
			continue
		}
		proj.AdvanceYears(years, g.src)
	}
}

// applySeizures lets catastrophic political upheaval claw at land
// holdings unless a great work shields them.
func (g *GameData) applySeizures(ev worldsim.Event) {
	if ev.Type != worldsim.EventPolitical || ev.Severity < worldsim.SeverityCatastrophic {
		return
	}
	if g.megaprojects.HasSeizureImmunity() {
		return
	}
	for _, inv := range g.portfolio.ByClass(investment.ClassProperty) {
		inv.SetCurrentValue(inv.CurrentValue() * 0.85)
	}
}

// checkKingdomDebt reports what fraction of each kingdom's outstanding
// debt the portfolio holds.
func (g *GameData) checkKingdomDebt() {
	for _, k := range g.world.Kingdoms() {
		debt := k.DebtOutstanding()
		if debt <= 0 {
			continue
		}
		owned := 0.0
		for _, inv := range g.portfolio.ByClass(investment.ClassFinancial) {
			if fin, ok := inv.(*investment.Financial); ok && fin.IssuerID() == k.ID() {
				owned += fin.FaceValue()
			}
		}
		if owned > 0 {
			g.achievements.OnKingdomDebtOwned(k.ID(), owned/debt)
		}
	}
}

// Prestige converts the current portfolio into phylactery points and
// starts the run over, keeping the ledger and phylactery. Points follow a
// log scale: 10,000 gold is worth 1 point.
func (g *GameData) Prestige() uint64 {
	totalValue := g.portfolio.TotalValue()

	var points uint64
	if totalValue > 1000 {
		points = uint64(math.Log10(totalValue) - 3.0)
	}
	if points > 0 {
		g.phylactery.AddPoints(points)
	}
	g.achievements.OnPrestige(points)

	g.chronicle.AddMilestone(g.world.CurrentYear(), "Transcendence",
		fmt.Sprintf("The cycle ends; %d phylactery points carried onward", points))

	g.totalYearsPlayed = 0
	g.history = nil
	g.portfolio.Reset(defaultStartingGold)
	g.agents.Reset()
	g.world.Reset(defaultStartingYear)
	g.synergies.Reset()
	g.exposure.Reset()
	g.megaprojects.Reset()
	g.rivals.Reset()

	slog.Info("prestige complete", "points", points)
	return points
}

// Snapshot is the versioned, serializable form of a whole game.
type Snapshot struct {
	Version          int                          `json:"version"`
	TotalYearsPlayed int                          `json:"total_years_played"`
	CurrentYear      int                          `json:"current_year"`
	Exposure         int                          `json:"exposure"`
	Portfolio        investment.PortfolioSnapshot `json:"portfolio"`
	Agents           []agent.Snapshot             `json:"agents"`
	Phylactery       phylactery.Snapshot          `json:"phylactery"`
	Ledger           []ledger.Entry               `json:"ledger"`
	Kingdoms         []worldsim.KingdomSnapshot   `json:"kingdoms"`
	ChronicleEntries []*chronicle.Entry           `json:"chronicle_entries"`
	Milestones       []chronicle.Milestone        `json:"milestones"`
	Achievements     achievement.Snapshot         `json:"achievements"`
	Megaprojects     []megaproject.Snapshot       `json:"megaprojects"`
	Rivals           []rival.Snapshot             `json:"rivals"`
	History          []HistoryPoint               `json:"history"`
}

// Snapshot captures the whole game state.
func (g *GameData) Snapshot() Snapshot {
	return Snapshot{
		Version:          FormatVersion,
		TotalYearsPlayed: g.totalYearsPlayed,
		CurrentYear:      g.world.CurrentYear(),
		Exposure:         g.exposure.Value(),
		Portfolio:        g.portfolio.Snapshot(),
		Agents:           g.agents.Snapshot(),
		Phylactery:       g.phylactery.Snapshot(),
		Ledger:           g.ledger.Snapshot(),
		Kingdoms:         g.world.SnapshotKingdoms(),
		ChronicleEntries: g.chronicle.All(),
		Milestones:       g.chronicle.Milestones(),
		Achievements:     g.achievements.Snapshot(),
		Megaprojects:     g.megaprojects.Snapshot(),
		Rivals:           g.rivals.Snapshot(),
		History:          g.history,
	}
}

// Restore replaces the whole game state with a snapshot. Nothing is
// modified when the snapshot cannot be applied.
func (g *GameData) Restore(snap Snapshot) error {
	if snap.Version > FormatVersion {
		return fmt.Errorf("save format version %d is newer than supported %d",
			snap.Version, FormatVersion)
	}

	// Validate the parts that can fail before touching live state.
	for _, is := range snap.Portfolio.Investments {
		if _, err := investment.RestoreInvestment(is); err != nil {
			return err
		}
	}
	for _, as := range snap.Agents {
		if _, err := agent.RestoreOperator(as, g.src); err != nil {
			return err
		}
	}

	if err := g.portfolio.Restore(snap.Portfolio); err != nil {
		return err
	}
	if err := g.agents.Restore(snap.Agents, g.src); err != nil {
		return err
	}
	g.phylactery.Restore(snap.Phylactery)
	g.ledger.Restore(snap.Ledger)
	g.chronicle.Restore(snap.ChronicleEntries, snap.Milestones)
	g.achievements.Restore(snap.Achievements)
	g.megaprojects.Restore(snap.Megaprojects)
	if snap.Rivals != nil {
		g.rivals.Restore(snap.Rivals)
	}
	g.world.RestoreKingdoms(snap.Kingdoms)
	g.world.SetCurrentYear(snap.CurrentYear)
	g.exposure.SetValue(snap.Exposure)
	g.totalYearsPlayed = snap.TotalYearsPlayed
	g.history = append([]HistoryPoint(nil), snap.History...)
	g.synergies.Recalculate(g.portfolio)

	slog.Info("game data restored",
		"year", snap.CurrentYear, "total_played", snap.TotalYearsPlayed)
	return nil
}
