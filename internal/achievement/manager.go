package achievement

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/graveworks/lichfolio/internal/platform"
)

// Statistic names tracked alongside achievements.
const (
	StatTotalGoldEarned     = "total_gold_earned"
	StatTotalYearsSlumbered = "total_years_slumbered"
	StatMaxFamilyGeneration = "max_family_generation"
	StatMaxInvestmentYears  = "max_investment_years"
	StatPrestigeCount       = "prestige_count"
)

type state struct {
	def      Definition
	unlocked bool
	progress int64
}

// Manager tracks achievement state, progress, and statistics, and mirrors
// unlocks to the platform bridge.
type Manager struct {
	states map[string]*state
	order  []string
	stats  map[string]int64

	onUnlocked []func(achievementID string)
	onProgress []func(achievementID string, percentage int)
}

// NewManager returns a manager seeded with the built-in catalog.
func NewManager() *Manager {
	m := &Manager{
		states: make(map[string]*state),
		stats:  make(map[string]int64),
	}
	for _, def := range builtinDefinitions() {
		m.Register(def)
	}
	return m
}

// Register adds a definition, replacing any existing one with the same ID.
// Unlock state survives redefinition.
func (m *Manager) Register(def Definition) {
	if def.ID == "" {
		return
	}
	if existing, ok := m.states[def.ID]; ok {
		existing.def = def
		return
	}
	m.states[def.ID] = &state{def: def}
	m.order = append(m.order, def.ID)
}

// LoadDefinitions merges YAML definitions from dir over the current catalog.
func (m *Manager) LoadDefinitions(dir string) error {
	defs, err := LoadDefinitions(dir)
	if err != nil {
		return err
	}
	for _, def := range defs {
		m.Register(def)
	}
	if len(defs) > 0 {
		slog.Info("loaded achievement definitions", "dir", dir, "count", len(defs))
	}
	return nil
}

// OnUnlocked registers a callback fired when an achievement is newly
// unlocked.
func (m *Manager) OnUnlocked(fn func(achievementID string)) {
	m.onUnlocked = append(m.onUnlocked, fn)
}

// OnProgress registers a callback fired when progress changes, with the new
// percentage (0-100).
func (m *Manager) OnProgress(fn func(achievementID string, percentage int)) {
	m.onProgress = append(m.onProgress, fn)
}

// Get returns a definition by ID.
func (m *Manager) Get(achievementID string) (Definition, bool) {
	s, ok := m.states[achievementID]
	if !ok {
		return Definition{}, false
	}
	return s.def, true
}

// All returns every registered definition in registration order.
func (m *Manager) All() []Definition {
	out := make([]Definition, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.states[id].def)
	}
	return out
}

// Unlock marks an achievement unlocked. Returns true only on the first
// unlock.
func (m *Manager) Unlock(achievementID string) bool {
	s, ok := m.states[achievementID]
	if !ok || s.unlocked {
		return false
	}
	s.unlocked = true
	if s.def.Target > 0 {
		s.progress = s.def.Target
	}

	slog.Info("achievement unlocked", "achievement", achievementID, "points", s.def.Points)

	if !platform.Default().SyncAchievement(achievementID) {
		slog.Warn("platform achievement sync failed", "achievement", achievementID)
	}
	for _, fn := range m.onUnlocked {
		fn(achievementID)
	}
	return true
}

// IsUnlocked reports whether the achievement has been unlocked.
func (m *Manager) IsUnlocked(achievementID string) bool {
	s, ok := m.states[achievementID]
	return ok && s.unlocked
}

// UnlockedCount returns the number of unlocked achievements.
func (m *Manager) UnlockedCount() int {
	count := 0
	for _, s := range m.states {
		if s.unlocked {
			count++
		}
	}
	return count
}

// TotalCount returns the number of registered achievements.
func (m *Manager) TotalCount() int {
	return len(m.states)
}

// CompletionPercentage returns the unlocked fraction in [0, 1].
func (m *Manager) CompletionPercentage() float64 {
	if len(m.states) == 0 {
		return 0
	}
	return float64(m.UnlockedCount()) / float64(len(m.states))
}

// TotalPoints returns the point sum of all unlocked achievements.
func (m *Manager) TotalPoints() int {
	points := 0
	for _, s := range m.states {
		if s.unlocked {
			points += s.def.Points
		}
	}
	return points
}

// Progress returns the raw progress value for an achievement.
func (m *Manager) Progress(achievementID string) int64 {
	s, ok := m.states[achievementID]
	if !ok {
		return 0
	}
	return s.progress
}

// ProgressPercentage returns progress toward the target as 0-100. Unlocked
// achievements always report 100.
func (m *Manager) ProgressPercentage(achievementID string) int {
	s, ok := m.states[achievementID]
	if !ok {
		return 0
	}
	if s.unlocked {
		return 100
	}
	if s.def.Target <= 0 {
		return 0
	}
	pct := int(s.progress * 100 / s.def.Target)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SetProgress records progress toward an achievement. Explicit sets may
// lower the value, but an unlock already earned is never revoked.
// Reaching the target unlocks the achievement.
func (m *Manager) SetProgress(achievementID string, value int64) {
	s, ok := m.states[achievementID]
	if !ok || s.unlocked || value == s.progress {
		return
	}
	if value < 0 {
		value = 0
	}
	s.progress = value
	for _, fn := range m.onProgress {
		fn(achievementID, m.ProgressPercentage(achievementID))
	}
	if s.def.Target > 0 && s.progress >= s.def.Target {
		m.Unlock(achievementID)
	}
}

// raiseProgress is the hook-side path: game signals only ever move
// progress up.
func (m *Manager) raiseProgress(achievementID string, value int64) {
	s, ok := m.states[achievementID]
	if !ok || value <= s.progress {
		return
	}
	m.SetProgress(achievementID, value)
}

// IncrementProgress adds to an achievement's progress.
func (m *Manager) IncrementProgress(achievementID string, amount int64) {
	s, ok := m.states[achievementID]
	if !ok || amount <= 0 {
		return
	}
	m.SetProgress(achievementID, s.progress+amount)
}

// SetStat records a statistic value.
func (m *Manager) SetStat(name string, value int64) {
	m.stats[name] = value
}

// Stat returns a statistic value, 0 when untracked.
func (m *Manager) Stat(name string) int64 {
	return m.stats[name]
}

// IncrementStat adds to a statistic.
func (m *Manager) IncrementStat(name string, amount int64) {
	m.stats[name] += amount
}

// OnGoldChanged tracks the gold balance for wealth achievements.
func (m *Manager) OnGoldChanged(totalGold int64) {
	m.raiseProgress(FirstMillion, totalGold)
}

// OnSlumberComplete records a finished slumber cycle.
func (m *Manager) OnSlumberComplete(yearsSlumbered int) {
	m.IncrementStat(StatTotalYearsSlumbered, int64(yearsSlumbered))
	if yearsSlumbered >= 100 {
		m.raiseProgress(Centennial, int64(yearsSlumbered))
	}
}

// OnFamilySuccession records a family reaching a new generation.
func (m *Manager) OnFamilySuccession(generation int) {
	if int64(generation) > m.Stat(StatMaxFamilyGeneration) {
		m.SetStat(StatMaxFamilyGeneration, int64(generation))
	}
	m.raiseProgress(Dynasty, int64(generation))
}

// OnInvestmentHeld records how long an investment has been held.
func (m *Manager) OnInvestmentHeld(investmentID string, yearsHeld int) {
	_ = investmentID
	if int64(yearsHeld) > m.Stat(StatMaxInvestmentYears) {
		m.SetStat(StatMaxInvestmentYears, int64(yearsHeld))
	}
	m.raiseProgress(PatientInvestor, int64(yearsHeld))
}

// OnDarkUnlock records the dark investment class being opened.
func (m *Manager) OnDarkUnlock() {
	m.Unlock(DarkAwakening)
}

// OnSoulTrade records a completed soul trade.
func (m *Manager) OnSoulTrade() {
	m.Unlock(SoulTrader)
}

// OnPrestige records a completed prestige cycle.
func (m *Manager) OnPrestige(pointsEarned uint64) {
	_ = pointsEarned
	m.IncrementStat(StatPrestigeCount, 1)
	m.Unlock(Transcendence)
}

// OnKingdomDebtOwned records the owned share of a kingdom's debt.
func (m *Manager) OnKingdomDebtOwned(kingdomID string, fraction float64) {
	_ = kingdomID
	if fraction >= 1.0 {
		m.Unlock(HostileTakeover)
	}
}

// Reset relocks every achievement and clears progress and statistics.
func (m *Manager) Reset() {
	slog.Info("resetting all achievements")
	bridge := platform.Default()
	for _, s := range m.states {
		if s.unlocked && !bridge.ClearAchievement(s.def.ID) {
			slog.Warn("platform achievement clear failed", "achievement", s.def.ID)
		}
		s.unlocked = false
		s.progress = 0
	}
	m.stats = make(map[string]int64)
}

// Snapshot captures unlock, progress, and statistic state.
type Snapshot struct {
	Unlocked []string         `json:"unlocked"`
	Progress map[string]int64 `json:"progress"`
	Stats    map[string]int64 `json:"stats"`
}

// Snapshot returns the current state with deterministic ordering.
func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{
		Progress: make(map[string]int64),
		Stats:    make(map[string]int64),
	}
	for id, s := range m.states {
		if s.unlocked {
			snap.Unlocked = append(snap.Unlocked, id)
		}
		if s.progress > 0 {
			snap.Progress[id] = s.progress
		}
	}
	for name, value := range m.stats {
		snap.Stats[name] = value
	}
	sort.Strings(snap.Unlocked)
	return snap
}

// Restore replaces the current state with a snapshot. Unknown achievement
// IDs are dropped.
func (m *Manager) Restore(snap Snapshot) {
	for _, s := range m.states {
		s.unlocked = false
		s.progress = 0
	}
	for _, id := range snap.Unlocked {
		if s, ok := m.states[id]; ok {
			s.unlocked = true
		}
	}
	for id, value := range snap.Progress {
		if s, ok := m.states[id]; ok {
			s.progress = value
		}
	}
	m.stats = make(map[string]int64)
	for name, value := range snap.Stats {
		m.stats[name] = value
	}
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the shared achievement manager.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}
