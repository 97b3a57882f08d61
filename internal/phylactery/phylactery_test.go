package phylactery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New()

	assert.Equal(t, uint64(0), p.Points())
	assert.Equal(t, uint64(0), p.TotalPointsEarned())
	assert.Equal(t, 1, p.Level())
	assert.Equal(t, 0, p.UpgradeCount())
	assert.Equal(t, 100, p.MaxSlumberYears())
	assert.Equal(t, 3, p.MaxAgents())
	assert.InDelta(t, 1.0, p.TimeEfficiencyBonus(), 1e-9)
}

func TestAddPoints(t *testing.T) {
	p := New()

	var calls [][2]uint64
	p.OnPointsChanged(func(old, now uint64) {
		calls = append(calls, [2]uint64{old, now})
	})

	p.AddPoints(5)
	p.AddPoints(0)
	p.AddPoints(3)

	assert.Equal(t, uint64(8), p.Points())
	assert.Equal(t, uint64(8), p.TotalPointsEarned())
	require.Len(t, calls, 2)
	assert.Equal(t, [2]uint64{0, 5}, calls[0])
	assert.Equal(t, [2]uint64{5, 8}, calls[1])
}

func TestSpendPoints(t *testing.T) {
	p := New()
	p.AddPoints(10)

	assert.False(t, p.SpendPoints(11))
	assert.Equal(t, uint64(10), p.Points())

	assert.True(t, p.SpendPoints(4))
	assert.Equal(t, uint64(6), p.Points())
	assert.Equal(t, uint64(10), p.TotalPointsEarned())
}

func TestUnlockRequiresPointsAndPrereqs(t *testing.T) {
	p := New()

	// No points at all.
	assert.False(t, p.CanUnlock("extended-slumber-1"))
	assert.False(t, p.Unlock("extended-slumber-1"))

	p.AddPoints(4)

	// Prerequisite missing even though affordable.
	assert.False(t, p.CanUnlock("extended-slumber-2"))

	require.True(t, p.Unlock("extended-slumber-1"))
	assert.Equal(t, uint64(3), p.Points())
	assert.True(t, p.HasUpgrade("extended-slumber-1"))

	// Already unlocked.
	assert.False(t, p.Unlock("extended-slumber-1"))

	require.True(t, p.Unlock("extended-slumber-2"))
	assert.Equal(t, uint64(0), p.Points())

	// Unknown upgrade.
	assert.False(t, p.Unlock("philosopher-stone"))
}

func TestUnlockMultiplePrerequisites(t *testing.T) {
	p := New()
	p.AddPoints(100)

	// temporal-mastery requires time-compression-2 and extended-slumber-2.
	require.True(t, p.Unlock("time-compression-1"))
	require.True(t, p.Unlock("time-compression-2"))
	assert.False(t, p.CanUnlock("temporal-mastery"))

	require.True(t, p.Unlock("extended-slumber-1"))
	require.True(t, p.Unlock("extended-slumber-2"))
	assert.True(t, p.CanUnlock("temporal-mastery"))
	require.True(t, p.Unlock("temporal-mastery"))

	assert.InDelta(t, 1.50, p.TimeEfficiencyBonus(), 1e-9)
	assert.Equal(t, 250, p.MaxSlumberYears())
}

func TestUpgradePurchasedObserver(t *testing.T) {
	p := New()
	p.AddPoints(10)

	var gotCategory Category
	var gotID string
	p.OnUpgradePurchased(func(category Category, upgradeID string) {
		gotCategory = category
		gotID = upgradeID
	})

	require.True(t, p.Unlock("basic-scrying"))
	assert.Equal(t, CategoryDivination, gotCategory)
	assert.Equal(t, "basic-scrying", gotID)
}

func TestDarkUnlockObserver(t *testing.T) {
	p := New()
	p.AddPoints(50)

	var dark []string
	p.OnDarkUnlock(func(upgradeID string) {
		dark = append(dark, upgradeID)
	})

	require.True(t, p.Unlock("contingency-plans"))
	assert.Empty(t, dark)

	require.True(t, p.Unlock("forbidden-knowledge"))
	require.True(t, p.Unlock("dark-investments"))
	assert.Equal(t, []string{"forbidden-knowledge", "dark-investments"}, dark)
	assert.True(t, p.HasDarkInvestments())
	assert.False(t, p.HasBoundAgents())
}

func TestLevelFromUpgradeCount(t *testing.T) {
	p := New()
	p.AddPoints(100)

	assert.Equal(t, 1, p.Level())

	require.True(t, p.Unlock("extended-slumber-1"))
	require.True(t, p.Unlock("time-compression-1"))
	assert.Equal(t, 1, p.Level())

	require.True(t, p.Unlock("basic-scrying"))
	assert.Equal(t, 2, p.Level())

	assert.Equal(t, 3, p.UpgradeCount())
	assert.Equal(t, 2, p.CategoryUpgradeCount(CategoryTemporal))
	assert.Equal(t, 1, p.CategoryUpgradeCount(CategoryDivination))
	assert.Equal(t, 0, p.CategoryUpgradeCount(CategoryDarkArts))
}

func TestTemporalBonuses(t *testing.T) {
	p := New()
	p.AddPoints(100)

	require.True(t, p.Unlock("extended-slumber-1"))
	assert.Equal(t, 150, p.MaxSlumberYears())
	require.True(t, p.Unlock("extended-slumber-2"))
	assert.Equal(t, 250, p.MaxSlumberYears())
	require.True(t, p.Unlock("extended-slumber-3"))
	assert.Equal(t, 500, p.MaxSlumberYears())

	require.True(t, p.Unlock("time-compression-1"))
	assert.InDelta(t, 1.10, p.TimeEfficiencyBonus(), 1e-9)
	require.True(t, p.Unlock("time-compression-2"))
	assert.InDelta(t, 1.25, p.TimeEfficiencyBonus(), 1e-9)
}

func TestNetworkBonuses(t *testing.T) {
	p := New()
	p.AddPoints(100)

	require.True(t, p.Unlock("additional-agents-1"))
	assert.Equal(t, 5, p.MaxAgents())
	require.True(t, p.Unlock("additional-agents-2"))
	assert.Equal(t, 8, p.MaxAgents())
	require.True(t, p.Unlock("additional-agents-3"))
	assert.Equal(t, 12, p.MaxAgents())

	assert.False(t, p.HasFamilyAgents())
	require.True(t, p.Unlock("family-legacy"))
	assert.True(t, p.HasFamilyAgents())

	assert.False(t, p.HasCultAgents())
	require.True(t, p.Unlock("cult-initiation"))
	assert.True(t, p.HasCultAgents())
}

func TestDivinationBonuses(t *testing.T) {
	p := New()
	p.AddPoints(100)

	require.True(t, p.Unlock("basic-scrying"))
	require.True(t, p.Unlock("improved-scrying"))
	assert.Equal(t, 30, p.PredictionBonus())
	require.True(t, p.Unlock("perfect-foresight"))
	assert.Equal(t, 50, p.PredictionBonus())

	require.True(t, p.Unlock("event-sensing"))
	assert.Equal(t, 10, p.WarningYears())
	require.True(t, p.Unlock("prophetic-visions"))
	assert.Equal(t, 25, p.WarningYears())
	require.True(t, p.Unlock("omniscience"))
	assert.Equal(t, 50, p.WarningYears())
}

func TestResilienceBonuses(t *testing.T) {
	p := New()
	p.AddPoints(100)

	require.True(t, p.Unlock("contingency-plans"))
	assert.Equal(t, 20, p.DisasterSurvivalBonus())
	require.True(t, p.Unlock("disaster-proofing"))
	assert.Equal(t, 40, p.DisasterSurvivalBonus())
	require.True(t, p.Unlock("indestructible"))
	assert.Equal(t, 70, p.DisasterSurvivalBonus())

	require.True(t, p.Unlock("quick-recovery"))
	assert.InDelta(t, 1.50, p.RecoveryBonus(), 1e-9)
	require.True(t, p.Unlock("rapid-rebuilding"))
	assert.InDelta(t, 2.0, p.RecoveryBonus(), 1e-9)

	require.True(t, p.Unlock("shadow-presence"))
	assert.Equal(t, 5, p.ExposureDecayBonus())
	require.True(t, p.Unlock("unseen-hand"))
	assert.Equal(t, 10, p.ExposureDecayBonus())
	require.True(t, p.Unlock("invisible"))
	assert.Equal(t, 20, p.ExposureDecayBonus())
}

func TestDarkArtsBonuses(t *testing.T) {
	p := New()
	p.AddPoints(200)

	require.True(t, p.Unlock("forbidden-knowledge"))
	require.True(t, p.Unlock("soul-binding"))
	assert.True(t, p.HasBoundAgents())

	require.True(t, p.Unlock("dark-efficiency"))
	assert.InDelta(t, 1.25, p.DarkIncomeBonus(), 1e-9)
	require.True(t, p.Unlock("dark-investments"))
	require.True(t, p.Unlock("shadow-economy"))
	assert.InDelta(t, 1.50, p.DarkIncomeBonus(), 1e-9)
	require.True(t, p.Unlock("absolute-corruption"))
	assert.InDelta(t, 2.0, p.DarkIncomeBonus(), 1e-9)
}

func TestResetUpgradesRefundsPoints(t *testing.T) {
	p := New()
	p.AddPoints(20)

	require.True(t, p.Unlock("extended-slumber-1"))
	require.True(t, p.Unlock("time-compression-1"))
	assert.Equal(t, uint64(17), p.Points())

	p.ResetUpgrades()

	assert.Equal(t, 0, p.UpgradeCount())
	assert.Equal(t, uint64(20), p.Points())
	assert.Equal(t, uint64(20), p.TotalPointsEarned())
	assert.Equal(t, 100, p.MaxSlumberYears())
}

func TestReset(t *testing.T) {
	p := New()
	p.AddPoints(20)
	require.True(t, p.Unlock("extended-slumber-1"))

	p.Reset()

	assert.Equal(t, uint64(0), p.Points())
	assert.Equal(t, uint64(0), p.TotalPointsEarned())
	assert.Equal(t, 0, p.UpgradeCount())
}

func TestSnapshotRestore(t *testing.T) {
	p := New()
	p.AddPoints(30)
	require.True(t, p.Unlock("extended-slumber-1"))
	require.True(t, p.Unlock("forbidden-knowledge"))

	snap := p.Snapshot()
	assert.Equal(t, uint64(24), snap.Points)
	assert.Equal(t, uint64(30), snap.TotalPointsEarned)
	assert.Equal(t, []string{"extended-slumber-1", "forbidden-knowledge"}, snap.Unlocked)

	restored := New()
	restored.Restore(snap)

	assert.Equal(t, uint64(24), restored.Points())
	assert.Equal(t, uint64(30), restored.TotalPointsEarned())
	assert.True(t, restored.HasUpgrade("extended-slumber-1"))
	assert.True(t, restored.HasUpgrade("forbidden-knowledge"))
	assert.Equal(t, 150, restored.MaxSlumberYears())
}

func TestRestoreDropsUnknownUpgrades(t *testing.T) {
	p := New()
	p.Restore(Snapshot{
		Points:            5,
		TotalPointsEarned: 10,
		Unlocked:          []string{"extended-slumber-1", "chrono-trigger"},
	})

	assert.Equal(t, 1, p.UpgradeCount())
	assert.True(t, p.HasUpgrade("extended-slumber-1"))
	assert.False(t, p.HasUpgrade("chrono-trigger"))
}

func TestNodesByCategory(t *testing.T) {
	p := New()

	temporal := p.NodesByCategory(CategoryTemporal)
	require.Len(t, temporal, 6)
	assert.Equal(t, "extended-slumber-1", temporal[0].ID)

	dark := p.NodesByCategory(CategoryDarkArts)
	require.Len(t, dark, 7)
	assert.Equal(t, "forbidden-knowledge", dark[0].ID)
}

func TestDefaultSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
