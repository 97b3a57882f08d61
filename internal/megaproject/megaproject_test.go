package megaproject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// neverSource makes every discovery roll fail.
type neverSource struct{}

func (neverSource) Float() float64 { return 0.999 }
func (neverSource) IntN(n int) int { return n - 1 }

// alwaysSource makes every discovery roll succeed.
type alwaysSource struct{}

func (alwaysSource) Float() float64 { return 0 }
func (alwaysSource) IntN(int) int   { return 0 }

func newTestProject() *Project {
	p := NewProject("bone-citadel", "The Bone Citadel")
	p.AddPhase(Phase{Name: "Foundation", Years: 50})
	p.AddPhase(Phase{Name: "Expansion", Years: 100, Effect: EffectIncomeBonus, Value: 0.05})
	p.AddPhase(Phase{Name: "Crowning", Years: 50, Effect: EffectSeizureImmunity})
	p.SetCostPerYear(25)
	p.SetDiscoveryRisk(5)
	return p
}

func TestProjectPhaseProgression(t *testing.T) {
	p := newTestProject()
	require.True(t, p.Start(0))
	assert.Equal(t, StateActive, p.State())
	assert.Equal(t, 200, p.TotalDuration())

	p.AdvanceYears(50, neverSource{})
	cur, ok := p.CurrentPhase()
	require.True(t, ok)
	assert.Equal(t, "Expansion", cur.Name)
	assert.InDelta(t, 0.25, p.Progress(), 1e-9)

	p.AdvanceYears(120, neverSource{})
	assert.Equal(t, 170, p.YearsInvested())
	assert.Equal(t, 30, p.YearsRemaining())

	p.AdvanceYears(30, neverSource{})
	assert.True(t, p.IsComplete())
	assert.Equal(t, StateComplete, p.State())
}

func TestEffectsOnlyFromCompletedPhases(t *testing.T) {
	p := newTestProject()
	require.True(t, p.Start(0))

	p.AdvanceYears(60, neverSource{})
	assert.Zero(t, p.PropertyIncomeBonus(), "phase two is unfinished")
	assert.False(t, p.HasSeizureImmunity())

	p.AdvanceYears(90, neverSource{})
	assert.InDelta(t, 0.05, p.PropertyIncomeBonus(), 1e-9)
	assert.False(t, p.HasSeizureImmunity(), "crowning is unfinished")

	p.AdvanceYears(50, neverSource{})
	assert.True(t, p.HasSeizureImmunity())
}

func TestStartGatedByUnlockLevel(t *testing.T) {
	p := newTestProject()
	p.SetUnlockLevel(5)
	assert.Equal(t, StateLocked, p.State())

	assert.False(t, p.Unlock(3))
	assert.False(t, p.Start(3))

	require.True(t, p.Unlock(5))
	assert.False(t, p.Start(4), "available but below level")
	assert.True(t, p.Start(5))
}

func TestPauseBlocksAdvance(t *testing.T) {
	p := newTestProject()
	require.True(t, p.Start(0))
	require.True(t, p.Pause())

	p.AdvanceYears(50, neverSource{})
	assert.Zero(t, p.YearsInvested())

	require.True(t, p.Resume())
	p.AdvanceYears(50, neverSource{})
	assert.Equal(t, 50, p.YearsInvested())
}

func TestDiscoveryStopsConstruction(t *testing.T) {
	p := newTestProject()
	p.SetDiscoveryRisk(100)
	require.True(t, p.Start(0))

	p.AdvanceYears(40, alwaysSource{})
	assert.True(t, p.IsDiscovered())

	invested := p.YearsInvested()
	p.AdvanceYears(40, alwaysSource{})
	assert.Equal(t, invested, p.YearsInvested(), "discovered projects do not advance")
}

func TestHideResumesConstruction(t *testing.T) {
	p := newTestProject()
	p.SetDiscoveryRisk(100)
	require.True(t, p.Start(0))
	p.AdvanceYears(20, alwaysSource{})
	require.True(t, p.IsDiscovered())

	require.True(t, p.Hide())
	assert.Equal(t, StateActive, p.State())
	p.SetDiscoveryRisk(0)
	p.AdvanceYears(300, neverSource{})
	assert.True(t, p.IsComplete())
}

func TestDestroyAndReset(t *testing.T) {
	p := newTestProject()
	p.SetDiscoveryRisk(100)
	require.True(t, p.Start(0))
	p.AdvanceYears(20, alwaysSource{})
	require.True(t, p.IsDiscovered())

	p.Destroy()
	assert.Equal(t, StateDestroyed, p.State())

	p.SetUnlockLevel(3)
	p.Reset()
	assert.Equal(t, StateLocked, p.State())
	assert.Zero(t, p.YearsInvested())
	assert.Zero(t, p.PropertyIncomeBonus())
}

func TestNoDiscoveryBeforeFirstDecade(t *testing.T) {
	p := newTestProject()
	p.SetDiscoveryRisk(100)
	require.True(t, p.Start(0))

	p.AdvanceYears(9, alwaysSource{})
	assert.Equal(t, StateActive, p.State())

	p.AdvanceYears(1, alwaysSource{})
	assert.True(t, p.IsDiscovered())
}

func TestManagerUnlockAndEffects(t *testing.T) {
	m := Default()
	for _, p := range m.All() {
		assert.Equal(t, StateLocked, p.State())
	}

	m.UnlockEligible(4)
	assert.Equal(t, StateAvailable, m.ByID("undying-vault").State())
	assert.Equal(t, StateAvailable, m.ByID("leyline-network").State())
	assert.Equal(t, StateLocked, m.ByID("shadow-court").State())

	ll := m.ByID("leyline-network")
	require.True(t, ll.Start(4))
	ll.SetDiscoveryRisk(0)
	ll.AdvanceYears(110, neverSource{})
	assert.True(t, m.HasAgentTravel())
	assert.Zero(t, m.PropertyIncomeBonus())
}

func TestManagerForwardsPhaseCompletion(t *testing.T) {
	m := Default()
	var completed []string
	m.OnPhaseCompleted(func(p *Project, phase string) {
		completed = append(completed, p.ID()+"/"+phase)
	})

	m.UnlockEligible(10)
	v := m.ByID("undying-vault")
	v.SetDiscoveryRisk(0)
	require.True(t, v.Start(10))
	v.AdvanceYears(100, entropy.NewRand(7))

	require.Len(t, completed, 2)
	assert.Equal(t, "undying-vault/Excavation", completed[0])
	assert.Equal(t, "undying-vault/Warding", completed[1])
}

func TestSnapshotRestoreRebuildsEffects(t *testing.T) {
	m := Default()
	m.UnlockEligible(10)
	v := m.ByID("undying-vault")
	v.SetDiscoveryRisk(0)
	require.True(t, v.Start(10))
	v.AdvanceYears(120, neverSource{})
	require.True(t, v.HasSeizureImmunity())

	snaps := m.Snapshot()

	m2 := Default()
	m2.Restore(snaps)
	v2 := m2.ByID("undying-vault")
	assert.Equal(t, StateActive, v2.State())
	assert.Equal(t, 120, v2.YearsInvested())
	assert.True(t, v2.HasSeizureImmunity())
	assert.False(t, m2.HasAgentTravel())
}
