package rival

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveworks/lichfolio/internal/worldsim"
)

// lowSource always rolls the minimum.
type lowSource struct{}

func (lowSource) Float() float64 { return 0 }
func (lowSource) IntN(int) int   { return 0 }

// highSource always rolls the maximum.
type highSource struct{}

func (highSource) Float() float64 { return 0.999 }
func (highSource) IntN(n int) int { return n - 1 }

func TestStanceDriftsHostileUnderThreat(t *testing.T) {
	r := New("wyrm", "Old Wyrm", KindDragon)
	r.SetAggression(90)
	r.SetCunning(55)
	r.SetThreat(60)

	var changes []Stance
	r.OnStanceChanged(func(_, now Stance) { changes = append(changes, now) })

	r.TickYear(lowSource{})
	assert.Equal(t, StanceHostile, r.Stance())
	require.Len(t, changes, 1)
	assert.Equal(t, StanceHostile, changes[0])
}

func TestCunningTempersHostility(t *testing.T) {
	r := New("countess", "The Countess", KindVampire)
	r.SetAggression(70)
	r.SetCunning(85)
	r.SetThreat(40)

	r.TickYear(lowSource{})
	assert.Equal(t, StanceWary, r.Stance())
}

func TestDullRivalsNeverReassess(t *testing.T) {
	r := New("brute", "The Brute", KindDemon)
	r.SetAggression(100)
	r.SetCunning(40)
	r.SetThreat(90)

	r.TickYear(lowSource{})
	assert.Equal(t, StanceUnknown, r.Stance())
}

func TestGreedSwingsBothWays(t *testing.T) {
	rich := New("hoarder", "The Hoarder", KindDragon)
	rich.SetAggression(55)
	rich.SetCunning(55)
	rich.SetGreed(80)

	// A modest threat reads as a business partner.
	rich.SetThreat(40)
	rich.TickYear(lowSource{})
	assert.Equal(t, StanceWary, rich.Stance()) // 55 + 20 - 10 = 65

	// A grave threat reads as competition.
	rich.SetThreat(60)
	rich.TickYear(lowSource{})
	assert.Equal(t, StanceHostile, rich.Stance()) // 55 + 30 + 10 = 95
}

func TestReactToEventByKind(t *testing.T) {
	coup := worldsim.Event{Type: worldsim.EventPolitical, Severity: worldsim.SeverityMajor}
	surge := worldsim.Event{Type: worldsim.EventMagical, Severity: worldsim.SeverityMinor}
	doom := worldsim.Event{Type: worldsim.EventEconomic, Severity: worldsim.SeverityCatastrophic}

	dragon := New("d", "D", KindDragon)
	dragon.ReactToEvent(coup)
	assert.Equal(t, 60, dragon.Aggression())

	vampire := New("v", "V", KindVampire)
	vampire.ReactToEvent(coup)
	assert.Equal(t, 55, vampire.Power())

	lich := New("l", "L", KindLich)
	lich.ReactToEvent(surge)
	assert.Equal(t, 55, lich.Cunning())

	fae := New("f", "F", KindFae)
	fae.ReactToEvent(surge)
	assert.Equal(t, 50, fae.Greed(), "minor omens do not move the fae")

	demon := New("x", "X", KindDemon)
	demon.ReactToEvent(doom)
	assert.Equal(t, 65, demon.Aggression())
}

func TestPowerClampedDuringTick(t *testing.T) {
	r := New("t", "T", KindLich)
	r.SetPower(99)
	for i := 0; i < 10; i++ {
		r.TickYear(highSource{})
	}
	assert.Equal(t, 100, r.Power())
}

func TestDiscoverAndDestroyIdempotent(t *testing.T) {
	r := New("t", "T", KindFae)
	found, gone := 0, 0
	r.OnDiscovered(func() { found++ })
	r.OnDestroyed(func() { gone++ })

	r.Discover()
	r.Discover()
	r.Destroy()
	r.Destroy()

	assert.Equal(t, 1, found)
	assert.Equal(t, 1, gone)
	assert.False(t, r.IsActive())

	r.TickYear(highSource{})
	assert.Equal(t, 50, r.Power(), "destroyed rivals do not act")
}

func TestTerritoryBookkeeping(t *testing.T) {
	r := New("t", "T", KindDragon)
	r.AddTerritory("ironmark")
	r.AddTerritory("ironmark")
	r.AddTerritory("veilwood")

	assert.Len(t, r.Territories(), 2)
	assert.True(t, r.HasTerritory("veilwood"))
	assert.True(t, r.RemoveTerritory("ironmark"))
	assert.False(t, r.RemoveTerritory("ironmark"))
	assert.Len(t, r.Territories(), 1)
}

func TestManagerNoticeRequiresExposure(t *testing.T) {
	m := Default()
	m.NoticePlayer(30, lowSource{})
	assert.Empty(t, m.Known(), "a quiet lich goes unnoticed")

	m.NoticePlayer(60, lowSource{})
	assert.Len(t, m.Known(), len(m.All()))
}

func TestManagerHostileCountAndObservers(t *testing.T) {
	m := Default()
	var shifted []string
	m.OnStanceChanged(func(r *Rival, _, now Stance) {
		if now == StanceHostile {
			shifted = append(shifted, r.ID())
		}
	})

	assert.Zero(t, m.HostileCount())

	mal := m.ByID("malgrath")
	require.NotNil(t, mal)
	mal.Discover()
	mal.DeclareConflict()

	assert.Equal(t, 1, m.HostileCount())
	assert.Equal(t, []string{"malgrath"}, shifted)

	// Undiscovered hostiles exert no pressure.
	m.ByID("vexarion").DeclareConflict()
	assert.Equal(t, 1, m.HostileCount())
}

func TestSnapshotRoundtrip(t *testing.T) {
	m := Default()
	kaz := m.ByID("kazrek")
	require.NotNil(t, kaz)
	kaz.Discover()
	kaz.SetStance(StanceAllied)
	kaz.AddTerritory("gloomfen")
	m.ByID("elurin").Destroy()

	snaps := m.Snapshot()

	m2 := NewManager()
	m2.Restore(snaps)
	require.Len(t, m2.All(), len(m.All()))

	kaz2 := m2.ByID("kazrek")
	assert.Equal(t, StanceAllied, kaz2.Stance())
	assert.True(t, kaz2.IsKnown())
	assert.Equal(t, []string{"gloomfen"}, kaz2.Territories())
	assert.False(t, m2.ByID("elurin").IsActive())
	assert.Equal(t, 85, kaz2.Cunning())
}

func TestResetRestoresBuiltinRoster(t *testing.T) {
	m := Default()
	m.ByID("morwenna").Destroy()
	m.ByID("vexarion").Discover()

	m.Reset()
	assert.True(t, m.ByID("morwenna").IsActive())
	assert.False(t, m.ByID("vexarion").IsKnown())
}
