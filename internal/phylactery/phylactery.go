// Package phylactery tracks the lich's soul-vessel upgrades. Points earned
// through play are spent on nodes in five upgrade trees; unlocked nodes
// grant passive bonuses queried by the rest of the simulation.
package phylactery

import (
	"log/slog"
	"sort"
	"sync"
)

// Category identifies an upgrade tree.
type Category uint8

const (
	CategoryTemporal Category = iota
	CategoryNetwork
	CategoryDivination
	CategoryResilience
	CategoryDarkArts
)

func (c Category) String() string {
	switch c {
	case CategoryTemporal:
		return "temporal"
	case CategoryNetwork:
		return "network"
	case CategoryDivination:
		return "divination"
	case CategoryResilience:
		return "resilience"
	case CategoryDarkArts:
		return "dark-arts"
	default:
		return "unknown"
	}
}

const (
	baseMaxSlumberYears = 100
	baseMaxAgents       = 3
	upgradesPerLevel    = 3
)

// Node is a single purchasable upgrade.
type Node struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Cost        uint64
	Requires    []string
}

func builtinNodes() []Node {
	return []Node{
		// Temporal Mastery
		{ID: "extended-slumber-1", Name: "Extended Slumber I", Description: "Increase max slumber to 150 years", Category: CategoryTemporal, Cost: 1},
		{ID: "extended-slumber-2", Name: "Extended Slumber II", Description: "Increase max slumber to 250 years", Category: CategoryTemporal, Cost: 3, Requires: []string{"extended-slumber-1"}},
		{ID: "extended-slumber-3", Name: "Extended Slumber III", Description: "Increase max slumber to 500 years", Category: CategoryTemporal, Cost: 8, Requires: []string{"extended-slumber-2"}},
		{ID: "time-compression-1", Name: "Time Compression I", Description: "+10% income per slumber year", Category: CategoryTemporal, Cost: 2},
		{ID: "time-compression-2", Name: "Time Compression II", Description: "+25% income per slumber year", Category: CategoryTemporal, Cost: 5, Requires: []string{"time-compression-1"}},
		{ID: "temporal-mastery", Name: "Temporal Mastery", Description: "+50% income per slumber year", Category: CategoryTemporal, Cost: 15, Requires: []string{"time-compression-2", "extended-slumber-2"}},

		// Network Expansion
		{ID: "additional-agents-1", Name: "Expanded Network I", Description: "+2 agent slots (5 total)", Category: CategoryNetwork, Cost: 1},
		{ID: "additional-agents-2", Name: "Expanded Network II", Description: "+3 agent slots (8 total)", Category: CategoryNetwork, Cost: 4, Requires: []string{"additional-agents-1"}},
		{ID: "additional-agents-3", Name: "Vast Network", Description: "+4 agent slots (12 total)", Category: CategoryNetwork, Cost: 10, Requires: []string{"additional-agents-2"}},
		{ID: "family-legacy", Name: "Family Legacy", Description: "Unlock family agents with bloodline traits", Category: CategoryNetwork, Cost: 3},
		{ID: "bloodline-mastery", Name: "Bloodline Mastery", Description: "Improved trait inheritance for families", Category: CategoryNetwork, Cost: 8, Requires: []string{"family-legacy"}},
		{ID: "cult-initiation", Name: "Cult Initiation", Description: "Unlock cult agents", Category: CategoryNetwork, Cost: 5, Requires: []string{"family-legacy"}},
		{ID: "eternal-congregation", Name: "Eternal Congregation", Description: "Cults persist indefinitely and grow faster", Category: CategoryNetwork, Cost: 12, Requires: []string{"cult-initiation"}},

		// Divination
		{ID: "basic-scrying", Name: "Basic Scrying", Description: "+15% event prediction accuracy", Category: CategoryDivination, Cost: 1},
		{ID: "improved-scrying", Name: "Improved Scrying", Description: "+30% event prediction accuracy", Category: CategoryDivination, Cost: 3, Requires: []string{"basic-scrying"}},
		{ID: "perfect-foresight", Name: "Perfect Foresight", Description: "+50% event prediction accuracy", Category: CategoryDivination, Cost: 12, Requires: []string{"improved-scrying"}},
		{ID: "event-sensing", Name: "Event Sensing", Description: "10 years warning before major events", Category: CategoryDivination, Cost: 2},
		{ID: "prophetic-visions", Name: "Prophetic Visions", Description: "25 years warning before major events", Category: CategoryDivination, Cost: 6, Requires: []string{"event-sensing"}},
		{ID: "omniscience", Name: "Omniscience", Description: "50 years warning, see all event outcomes", Category: CategoryDivination, Cost: 20, Requires: []string{"prophetic-visions", "perfect-foresight"}},

		// Resilience
		{ID: "contingency-plans", Name: "Contingency Plans", Description: "20% chance to avoid disaster losses", Category: CategoryResilience, Cost: 1},
		{ID: "disaster-proofing", Name: "Disaster Proofing", Description: "40% chance to avoid disaster losses", Category: CategoryResilience, Cost: 4, Requires: []string{"contingency-plans"}},
		{ID: "indestructible", Name: "Indestructible", Description: "70% chance to avoid disaster losses", Category: CategoryResilience, Cost: 15, Requires: []string{"disaster-proofing"}},
		{ID: "quick-recovery", Name: "Quick Recovery", Description: "50% faster recovery from disasters", Category: CategoryResilience, Cost: 2},
		{ID: "rapid-rebuilding", Name: "Rapid Rebuilding", Description: "100% faster recovery from disasters", Category: CategoryResilience, Cost: 5, Requires: []string{"quick-recovery"}},
		{ID: "shadow-presence", Name: "Shadow Presence", Description: "+5 exposure decay per decade", Category: CategoryResilience, Cost: 3},
		{ID: "unseen-hand", Name: "Unseen Hand", Description: "+10 exposure decay per decade", Category: CategoryResilience, Cost: 8, Requires: []string{"shadow-presence"}},
		{ID: "invisible", Name: "Invisible", Description: "+20 exposure decay per decade", Category: CategoryResilience, Cost: 18, Requires: []string{"unseen-hand"}},

		// Dark Arts
		{ID: "forbidden-knowledge", Name: "Forbidden Knowledge", Description: "Begin studying the dark arts", Category: CategoryDarkArts, Cost: 5},
		{ID: "dark-investments", Name: "Dark Investments", Description: "Unlock dark investment class", Category: CategoryDarkArts, Cost: 10, Requires: []string{"forbidden-knowledge"}},
		{ID: "soul-binding", Name: "Soul Binding", Description: "Unlock bound (undead) agents", Category: CategoryDarkArts, Cost: 12, Requires: []string{"forbidden-knowledge"}},
		{ID: "legion-of-undead", Name: "Legion of Undead", Description: "No limit on bound agents", Category: CategoryDarkArts, Cost: 25, Requires: []string{"soul-binding"}},
		{ID: "dark-efficiency", Name: "Dark Efficiency", Description: "+25% dark investment income", Category: CategoryDarkArts, Cost: 8, Requires: []string{"forbidden-knowledge"}},
		{ID: "shadow-economy", Name: "Shadow Economy", Description: "+50% dark investment income", Category: CategoryDarkArts, Cost: 15, Requires: []string{"dark-efficiency", "dark-investments"}},
		{ID: "absolute-corruption", Name: "Absolute Corruption", Description: "+100% dark investment income", Category: CategoryDarkArts, Cost: 30, Requires: []string{"shadow-economy"}},
	}
}

// Phylactery holds the point pool and upgrade state.
type Phylactery struct {
	points      uint64
	totalEarned uint64

	nodes    map[string]Node
	order    []string
	unlocked map[string]bool

	onPointsChanged    []func(oldPoints, newPoints uint64)
	onUpgradePurchased []func(category Category, upgradeID string)
	onDarkUnlock       []func(upgradeID string)
}

// New returns a phylactery with the built-in upgrade trees and no points.
func New() *Phylactery {
	p := &Phylactery{
		nodes:    make(map[string]Node),
		unlocked: make(map[string]bool),
	}
	for _, n := range builtinNodes() {
		p.nodes[n.ID] = n
		p.order = append(p.order, n.ID)
	}
	return p
}

// OnPointsChanged registers a callback fired whenever the available point
// count changes.
func (p *Phylactery) OnPointsChanged(fn func(oldPoints, newPoints uint64)) {
	p.onPointsChanged = append(p.onPointsChanged, fn)
}

// OnUpgradePurchased registers a callback fired after a successful unlock.
func (p *Phylactery) OnUpgradePurchased(fn func(category Category, upgradeID string)) {
	p.onUpgradePurchased = append(p.onUpgradePurchased, fn)
}

// OnDarkUnlock registers a callback fired when a dark arts upgrade is
// purchased.
func (p *Phylactery) OnDarkUnlock(fn func(upgradeID string)) {
	p.onDarkUnlock = append(p.onDarkUnlock, fn)
}

func (p *Phylactery) Points() uint64            { return p.points }
func (p *Phylactery) TotalPointsEarned() uint64 { return p.totalEarned }

// AddPoints grants phylactery points. Zero is a no-op.
func (p *Phylactery) AddPoints(points uint64) {
	if points == 0 {
		return
	}
	old := p.points
	p.points += points
	p.totalEarned += points
	slog.Info("phylactery points added", "added", points, "available", p.points)
	for _, fn := range p.onPointsChanged {
		fn(old, p.points)
	}
}

// SpendPoints deducts points without unlocking anything. Returns false when
// the pool cannot cover the amount.
func (p *Phylactery) SpendPoints(points uint64) bool {
	if points > p.points {
		return false
	}
	if points == 0 {
		return true
	}
	old := p.points
	p.points -= points
	for _, fn := range p.onPointsChanged {
		fn(old, p.points)
	}
	return true
}

// Level derives the phylactery level from total unlocked upgrades. Every
// three upgrades raise the level by one, starting at level 1.
func (p *Phylactery) Level() int {
	return 1 + p.UpgradeCount()/upgradesPerLevel
}

// Nodes returns all upgrade nodes in a stable order.
func (p *Phylactery) Nodes() []Node {
	out := make([]Node, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.nodes[id])
	}
	return out
}

// NodesByCategory returns nodes in one upgrade tree, in definition order.
func (p *Phylactery) NodesByCategory(category Category) []Node {
	var out []Node
	for _, id := range p.order {
		if n := p.nodes[id]; n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// HasUpgrade reports whether the upgrade has been unlocked.
func (p *Phylactery) HasUpgrade(upgradeID string) bool {
	return p.unlocked[upgradeID]
}

// UpgradeCount returns the number of unlocked upgrades across all trees.
func (p *Phylactery) UpgradeCount() int {
	return len(p.unlocked)
}

// CategoryUpgradeCount returns the number of unlocked upgrades in one tree.
func (p *Phylactery) CategoryUpgradeCount(category Category) int {
	count := 0
	for id := range p.unlocked {
		if p.nodes[id].Category == category {
			count++
		}
	}
	return count
}

// UpgradeCost returns the point cost of an upgrade, or 0 when unknown.
func (p *Phylactery) UpgradeCost(upgradeID string) uint64 {
	return p.nodes[upgradeID].Cost
}

// CanUnlock reports whether the upgrade exists, is still locked, has all
// prerequisites met, and is affordable.
func (p *Phylactery) CanUnlock(upgradeID string) bool {
	node, ok := p.nodes[upgradeID]
	if !ok || p.unlocked[upgradeID] {
		return false
	}
	for _, req := range node.Requires {
		if !p.unlocked[req] {
			return false
		}
	}
	return p.points >= node.Cost
}

// Unlock purchases an upgrade, deducting its cost. Returns false when the
// upgrade cannot be purchased.
func (p *Phylactery) Unlock(upgradeID string) bool {
	if !p.CanUnlock(upgradeID) {
		return false
	}
	node := p.nodes[upgradeID]

	old := p.points
	p.points -= node.Cost
	p.unlocked[upgradeID] = true

	slog.Info("phylactery upgrade purchased",
		"upgrade", upgradeID, "category", node.Category.String(), "cost", node.Cost)

	for _, fn := range p.onPointsChanged {
		fn(old, p.points)
	}
	for _, fn := range p.onUpgradePurchased {
		fn(node.Category, upgradeID)
	}
	if node.Category == CategoryDarkArts {
		for _, fn := range p.onDarkUnlock {
			fn(upgradeID)
		}
	}
	return true
}

// MaxSlumberYears returns the slumber cap granted by the temporal tree.
func (p *Phylactery) MaxSlumberYears() int {
	years := baseMaxSlumberYears
	if p.unlocked["extended-slumber-1"] {
		years = 150
	}
	if p.unlocked["extended-slumber-2"] {
		years = 250
	}
	if p.unlocked["extended-slumber-3"] {
		years = 500
	}
	return years
}

// TimeEfficiencyBonus is the income multiplier per slumber year.
func (p *Phylactery) TimeEfficiencyBonus() float64 {
	bonus := 1.0
	if p.unlocked["time-compression-1"] {
		bonus += 0.10
	}
	if p.unlocked["time-compression-2"] {
		bonus += 0.15
	}
	if p.unlocked["temporal-mastery"] {
		bonus += 0.25
	}
	return bonus
}

// MaxAgents returns the agent slot cap granted by the network tree.
func (p *Phylactery) MaxAgents() int {
	agents := baseMaxAgents
	if p.unlocked["additional-agents-1"] {
		agents = 5
	}
	if p.unlocked["additional-agents-2"] {
		agents = 8
	}
	if p.unlocked["additional-agents-3"] {
		agents = 12
	}
	return agents
}

func (p *Phylactery) HasFamilyAgents() bool {
	return p.unlocked["family-legacy"]
}

func (p *Phylactery) HasCultAgents() bool {
	return p.unlocked["cult-initiation"]
}

// PredictionBonus is the event prediction accuracy bonus in percent.
func (p *Phylactery) PredictionBonus() int {
	bonus := 0
	if p.unlocked["basic-scrying"] {
		bonus += 15
	}
	if p.unlocked["improved-scrying"] {
		bonus += 15
	}
	if p.unlocked["perfect-foresight"] {
		bonus += 20
	}
	return bonus
}

// WarningYears is the advance notice before major events.
func (p *Phylactery) WarningYears() int {
	years := 0
	if p.unlocked["event-sensing"] {
		years = 10
	}
	if p.unlocked["prophetic-visions"] {
		years = 25
	}
	if p.unlocked["omniscience"] {
		years = 50
	}
	return years
}

// DisasterSurvivalBonus is the percent chance to avoid disaster losses.
func (p *Phylactery) DisasterSurvivalBonus() int {
	bonus := 0
	if p.unlocked["contingency-plans"] {
		bonus = 20
	}
	if p.unlocked["disaster-proofing"] {
		bonus = 40
	}
	if p.unlocked["indestructible"] {
		bonus = 70
	}
	return bonus
}

// RecoveryBonus is the disaster recovery speed multiplier.
func (p *Phylactery) RecoveryBonus() float64 {
	bonus := 1.0
	if p.unlocked["quick-recovery"] {
		bonus += 0.50
	}
	if p.unlocked["rapid-rebuilding"] {
		bonus += 0.50
	}
	return bonus
}

// ExposureDecayBonus is the extra exposure decay granted per decade.
func (p *Phylactery) ExposureDecayBonus() int {
	bonus := 0
	if p.unlocked["shadow-presence"] {
		bonus += 5
	}
	if p.unlocked["unseen-hand"] {
		bonus += 5
	}
	if p.unlocked["invisible"] {
		bonus += 10
	}
	return bonus
}

func (p *Phylactery) HasDarkInvestments() bool {
	return p.unlocked["dark-investments"]
}

func (p *Phylactery) HasBoundAgents() bool {
	return p.unlocked["soul-binding"]
}

// DarkIncomeBonus is the dark investment income multiplier.
func (p *Phylactery) DarkIncomeBonus() float64 {
	bonus := 1.0
	if p.unlocked["dark-efficiency"] {
		bonus += 0.25
	}
	if p.unlocked["shadow-economy"] {
		bonus += 0.25
	}
	if p.unlocked["absolute-corruption"] {
		bonus += 0.50
	}
	return bonus
}

// ResetUpgrades relocks every upgrade and refunds all spent points.
func (p *Phylactery) ResetUpgrades() {
	p.unlocked = make(map[string]bool)
	p.points = p.totalEarned
}

// Reset clears all upgrades and points.
func (p *Phylactery) Reset() {
	p.unlocked = make(map[string]bool)
	p.points = 0
	p.totalEarned = 0
}

// Snapshot captures the phylactery state for persistence.
type Snapshot struct {
	Points            uint64   `json:"points"`
	TotalPointsEarned uint64   `json:"total_points_earned"`
	Unlocked          []string `json:"unlocked"`
}

// Snapshot returns the current state, with unlocked IDs sorted for stable
// output.
func (p *Phylactery) Snapshot() Snapshot {
	unlocked := make([]string, 0, len(p.unlocked))
	for id := range p.unlocked {
		unlocked = append(unlocked, id)
	}
	sort.Strings(unlocked)
	return Snapshot{
		Points:            p.points,
		TotalPointsEarned: p.totalEarned,
		Unlocked:          unlocked,
	}
}

// Restore replaces the current state with a snapshot. Unknown upgrade IDs
// are dropped with a warning.
func (p *Phylactery) Restore(snap Snapshot) {
	p.points = snap.Points
	p.totalEarned = snap.TotalPointsEarned
	p.unlocked = make(map[string]bool)
	for _, id := range snap.Unlocked {
		if _, ok := p.nodes[id]; !ok {
			slog.Warn("discarding unknown phylactery upgrade", "upgrade", id)
			continue
		}
		p.unlocked[id] = true
	}
}

var (
	defaultPhylactery *Phylactery
	defaultOnce       sync.Once
)

// Default returns the shared phylactery instance.
func Default() *Phylactery {
	defaultOnce.Do(func() {
		defaultPhylactery = New()
	})
	return defaultPhylactery
}
