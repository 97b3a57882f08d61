package achievement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	m := NewManager()

	assert.Equal(t, 8, m.TotalCount())
	assert.Equal(t, 0, m.UnlockedCount())

	def, ok := m.Get(FirstMillion)
	require.True(t, ok)
	assert.Equal(t, "First Million", def.Name)
	assert.Equal(t, int64(1000000), def.Target)
	assert.Equal(t, 10, def.Points)
	assert.False(t, def.Hidden)

	dark, ok := m.Get(DarkAwakening)
	require.True(t, ok)
	assert.True(t, dark.Hidden)
	assert.Equal(t, 25, dark.Points)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestUnlockIdempotent(t *testing.T) {
	m := NewManager()

	var unlocked []string
	m.OnUnlocked(func(id string) { unlocked = append(unlocked, id) })

	assert.True(t, m.Unlock(Transcendence))
	assert.False(t, m.Unlock(Transcendence))
	assert.False(t, m.Unlock("unknown"))

	assert.True(t, m.IsUnlocked(Transcendence))
	assert.Equal(t, 1, m.UnlockedCount())
	assert.Equal(t, []string{Transcendence}, unlocked)
	assert.Equal(t, 100, m.TotalPoints())
}

func TestProgressAutoUnlock(t *testing.T) {
	m := NewManager()

	m.SetProgress(Centennial, 50)
	assert.Equal(t, int64(50), m.Progress(Centennial))
	assert.Equal(t, 50, m.ProgressPercentage(Centennial))
	assert.False(t, m.IsUnlocked(Centennial))

	m.SetProgress(Centennial, 100)
	assert.True(t, m.IsUnlocked(Centennial))
	assert.Equal(t, 100, m.ProgressPercentage(Centennial))
}

func TestSetProgressMayDecrease(t *testing.T) {
	m := NewManager()

	m.SetProgress(FirstMillion, 500000)
	m.SetProgress(FirstMillion, 200000)
	assert.Equal(t, int64(200000), m.Progress(FirstMillion))

	m.SetProgress(FirstMillion, -5)
	assert.Equal(t, int64(0), m.Progress(FirstMillion))
}

func TestUnlockStickyThroughLowerProgress(t *testing.T) {
	m := NewManager()

	m.SetProgress(Centennial, 100)
	require.True(t, m.IsUnlocked(Centennial))

	m.SetProgress(Centennial, 20)
	assert.True(t, m.IsUnlocked(Centennial))
	assert.Equal(t, int64(100), m.Progress(Centennial))
	assert.Equal(t, 100, m.ProgressPercentage(Centennial))
}

func TestHookProgressNeverDecreases(t *testing.T) {
	m := NewManager()

	m.OnGoldChanged(500000)
	m.OnGoldChanged(200000)
	assert.Equal(t, int64(500000), m.Progress(FirstMillion))
}

func TestIncrementProgress(t *testing.T) {
	m := NewManager()

	m.IncrementProgress(Dynasty, 2)
	m.IncrementProgress(Dynasty, 2)
	assert.Equal(t, int64(4), m.Progress(Dynasty))
	assert.False(t, m.IsUnlocked(Dynasty))

	m.IncrementProgress(Dynasty, 1)
	assert.True(t, m.IsUnlocked(Dynasty))
}

func TestProgressObserver(t *testing.T) {
	m := NewManager()

	var percentages []int
	m.OnProgress(func(id string, pct int) {
		if id == Centennial {
			percentages = append(percentages, pct)
		}
	})

	m.SetProgress(Centennial, 25)
	m.SetProgress(Centennial, 75)
	assert.Equal(t, []int{25, 75}, percentages)
}

func TestCompletionPercentage(t *testing.T) {
	m := NewManager()

	assert.InDelta(t, 0.0, m.CompletionPercentage(), 1e-9)
	m.Unlock(Transcendence)
	m.Unlock(SoulTrader)
	assert.InDelta(t, 0.25, m.CompletionPercentage(), 1e-9)
}

func TestStats(t *testing.T) {
	m := NewManager()

	assert.Equal(t, int64(0), m.Stat(StatPrestigeCount))
	m.IncrementStat(StatPrestigeCount, 1)
	m.IncrementStat(StatPrestigeCount, 1)
	assert.Equal(t, int64(2), m.Stat(StatPrestigeCount))

	m.SetStat(StatTotalGoldEarned, 12345)
	assert.Equal(t, int64(12345), m.Stat(StatTotalGoldEarned))
}

func TestGoldChangedHook(t *testing.T) {
	m := NewManager()

	m.OnGoldChanged(999999)
	assert.False(t, m.IsUnlocked(FirstMillion))

	m.OnGoldChanged(1000000)
	assert.True(t, m.IsUnlocked(FirstMillion))
}

func TestSlumberCompleteHook(t *testing.T) {
	m := NewManager()

	m.OnSlumberComplete(50)
	assert.Equal(t, int64(50), m.Stat(StatTotalYearsSlumbered))
	assert.False(t, m.IsUnlocked(Centennial))

	m.OnSlumberComplete(100)
	assert.Equal(t, int64(150), m.Stat(StatTotalYearsSlumbered))
	assert.True(t, m.IsUnlocked(Centennial))
}

func TestFamilySuccessionHook(t *testing.T) {
	m := NewManager()

	m.OnFamilySuccession(3)
	assert.Equal(t, int64(3), m.Stat(StatMaxFamilyGeneration))
	assert.False(t, m.IsUnlocked(Dynasty))

	m.OnFamilySuccession(2)
	assert.Equal(t, int64(3), m.Stat(StatMaxFamilyGeneration))

	m.OnFamilySuccession(5)
	assert.True(t, m.IsUnlocked(Dynasty))
}

func TestInvestmentHeldHook(t *testing.T) {
	m := NewManager()

	m.OnInvestmentHeld("mine-1", 120)
	assert.Equal(t, int64(120), m.Stat(StatMaxInvestmentYears))
	assert.False(t, m.IsUnlocked(PatientInvestor))

	m.OnInvestmentHeld("mine-1", 500)
	assert.True(t, m.IsUnlocked(PatientInvestor))
}

func TestInstantHooks(t *testing.T) {
	m := NewManager()

	m.OnDarkUnlock()
	assert.True(t, m.IsUnlocked(DarkAwakening))

	m.OnSoulTrade()
	assert.True(t, m.IsUnlocked(SoulTrader))

	m.OnPrestige(7)
	assert.True(t, m.IsUnlocked(Transcendence))
	assert.Equal(t, int64(1), m.Stat(StatPrestigeCount))

	m.OnKingdomDebtOwned("valdria", 0.9)
	assert.False(t, m.IsUnlocked(HostileTakeover))
	m.OnKingdomDebtOwned("valdria", 1.0)
	assert.True(t, m.IsUnlocked(HostileTakeover))
}

func TestReset(t *testing.T) {
	m := NewManager()
	m.Unlock(Transcendence)
	m.SetProgress(Centennial, 60)
	m.SetStat(StatPrestigeCount, 3)

	m.Reset()

	assert.Equal(t, 0, m.UnlockedCount())
	assert.Equal(t, int64(0), m.Progress(Centennial))
	assert.Equal(t, int64(0), m.Stat(StatPrestigeCount))
}

func TestSnapshotRestore(t *testing.T) {
	m := NewManager()
	m.Unlock(DarkAwakening)
	m.SetProgress(Centennial, 60)
	m.SetStat(StatTotalYearsSlumbered, 340)

	snap := m.Snapshot()
	assert.Equal(t, []string{DarkAwakening}, snap.Unlocked)
	assert.Equal(t, int64(60), snap.Progress[Centennial])

	restored := NewManager()
	restored.Restore(snap)

	assert.True(t, restored.IsUnlocked(DarkAwakening))
	assert.Equal(t, int64(60), restored.Progress(Centennial))
	assert.Equal(t, int64(340), restored.Stat(StatTotalYearsSlumbered))
	assert.Equal(t, 1, restored.UnlockedCount())
}

func TestRestoreDropsUnknownIDs(t *testing.T) {
	m := NewManager()
	m.Restore(Snapshot{
		Unlocked: []string{Transcendence, "ghost"},
		Progress: map[string]int64{"ghost": 10},
	})

	assert.True(t, m.IsUnlocked(Transcendence))
	assert.Equal(t, 1, m.UnlockedCount())
}

func TestLoadDefinitionsFromYAML(t *testing.T) {
	dir := t.TempDir()
	doc := `entries:
  - id: gold_hoarder
    title: Gold Hoarder
    description: Accumulate 10,000,000 gold pieces
    category: wealth
    target: 10000000
    points: 60
    unknown_key: ignored
  - id: incomplete
    description: Missing a name
  - id: whisper_network
    name: Whisper Network
    description: Discover 10 hidden ledger entries
    hint: Keep your ears open
    is_hidden: true
    points: 15
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(doc), 0o644))

	// Non-entries document is skipped silently.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "help.yaml"),
		[]byte("topics:\n  - id: intro\n"), 0o644))

	m := NewManager()
	require.NoError(t, m.LoadDefinitions(dir))

	assert.Equal(t, 10, m.TotalCount())

	hoarder, ok := m.Get("gold_hoarder")
	require.True(t, ok)
	assert.Equal(t, "Gold Hoarder", hoarder.Name)
	assert.Equal(t, int64(10000000), hoarder.Target)
	assert.Equal(t, 60, hoarder.Points)

	whisper, ok := m.Get("whisper_network")
	require.True(t, ok)
	assert.True(t, whisper.Hidden)
	assert.Equal(t, "Keep your ears open", whisper.Hint)

	_, ok = m.Get("incomplete")
	assert.False(t, ok)
}

func TestLoadDefinitionsSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_broken.yaml"),
		[]byte("entries: [\n  {id: oops"), 0o644))

	doc := `entries:
  - id: survivor
    name: Survivor
    description: Loaded despite a broken neighbor
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_good.yaml"), []byte(doc), 0o644))

	m := NewManager()
	require.NoError(t, m.LoadDefinitions(dir))

	_, ok := m.Get("survivor")
	assert.True(t, ok)
}

func TestLoadDefinitionsAcceptsYmlAndDefaultsCategory(t *testing.T) {
	dir := t.TempDir()
	doc := `entries:
  - id: short_ext
    name: Short Extension
    description: Lives in a .yml file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yml"), []byte(doc), 0o644))

	m := NewManager()
	require.NoError(t, m.LoadDefinitions(dir))

	def, ok := m.Get("short_ext")
	require.True(t, ok)
	assert.Equal(t, "general", def.Category)
}

func TestLoadDefinitionsMissingDir(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.LoadDefinitions(filepath.Join(t.TempDir(), "nope")))
	assert.Equal(t, 8, m.TotalCount())
}

func TestLoadDefinitionsOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	doc := `entries:
  - id: first_million
    name: First Fortune
    description: Reach 1,000,000 gold pieces
    target: 1000000
    points: 12
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(doc), 0o644))

	m := NewManager()
	m.SetProgress(FirstMillion, 400000)
	require.NoError(t, m.LoadDefinitions(dir))

	def, ok := m.Get(FirstMillion)
	require.True(t, ok)
	assert.Equal(t, "First Fortune", def.Name)
	assert.Equal(t, 12, def.Points)
	assert.Equal(t, int64(400000), m.Progress(FirstMillion))
	assert.Equal(t, 8, m.TotalCount())
}

func TestDefaultSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
