package chronicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveworks/lichfolio/internal/worldsim"
)

func testEvent(id string, t worldsim.EventType, sev worldsim.Severity, year int) worldsim.Event {
	return worldsim.Event{
		ID:           id,
		Name:         "Event " + id,
		Type:         t,
		Severity:     sev,
		YearOccurred: year,
		Description:  "something happened",
	}
}

func TestRecordMostRecentFirst(t *testing.T) {
	c := NewChronicle()
	c.Record(testEvent("a", worldsim.EventEconomic, worldsim.SeverityMinor, 850), 850, "", 0, 0)
	c.Record(testEvent("b", worldsim.EventPolitical, worldsim.SeverityMajor, 860), 861, "", 0, 0)
	c.Record(testEvent("c", worldsim.EventMagical, worldsim.SeverityModerate, 870), 870, "", 0, 0)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].EventID)
	assert.Equal(t, "b", all[1].EventID)
	assert.Equal(t, "a", all[2].EventID)
	assert.Equal(t, 3, c.Count())
}

func TestYearResolvedClamped(t *testing.T) {
	c := NewChronicle()
	e := c.Record(testEvent("a", worldsim.EventEconomic, worldsim.SeverityMinor, 900), 850, "", 0, 0)
	assert.Equal(t, 900, e.YearResolved)
}

func TestRecordWithChoice(t *testing.T) {
	c := NewChronicle()
	e := c.RecordWithChoice(
		testEvent("a", worldsim.EventPolitical, worldsim.SeverityMajor, 900),
		901, "bribe", "The official looked away", -500, 2.5)

	assert.Equal(t, "bribe", e.PlayerChoice)
	assert.Equal(t, "The official looked away", e.Outcome)
	assert.Equal(t, int64(-500), e.GoldImpact)
	assert.Equal(t, 2.5, e.ExposureImpact)
}

func TestReadsReturnFreshCopies(t *testing.T) {
	c := NewChronicle()
	c.Record(testEvent("a", worldsim.EventEconomic, worldsim.SeverityMinor, 850), 850, "", 0, 0)

	first := c.All()[0]
	first.EventName = "tampered"

	assert.Equal(t, "Event a", c.All()[0].EventName)
}

func TestFilters(t *testing.T) {
	c := NewChronicle()
	ev := testEvent("a", worldsim.EventPolitical, worldsim.SeverityMajor, 850)
	ev.KingdomID = "aldmere"
	c.Record(ev, 850, "", 0, 0)
	c.Record(testEvent("b", worldsim.EventEconomic, worldsim.SeverityMinor, 900), 900, "", 0, 0)
	c.Record(testEvent("c", worldsim.EventPolitical, worldsim.SeverityModerate, 950), 950, "", 0, 0)

	byType := c.ByType(worldsim.EventPolitical)
	require.Len(t, byType, 2)
	assert.Equal(t, "c", byType[0].EventID)
	assert.Equal(t, "a", byType[1].EventID)

	byYear := c.ByYearRange(860, 960)
	require.Len(t, byYear, 2)
	assert.Equal(t, "c", byYear[0].EventID)

	byKingdom := c.ByKingdom("aldmere")
	require.Len(t, byKingdom, 1)
	assert.Equal(t, "a", byKingdom[0].EventID)

	bySeverity := c.BySeverity(worldsim.SeverityModerate)
	require.Len(t, bySeverity, 2)
	assert.Equal(t, "c", bySeverity[0].EventID)
	assert.Equal(t, "a", bySeverity[1].EventID)
}

func TestRecent(t *testing.T) {
	c := NewChronicle()
	for year := 850; year < 860; year++ {
		c.Record(testEvent(string(rune('a'+year-850)), worldsim.EventPersonal, worldsim.SeverityMinor, year), year, "", 0, 0)
	}

	recent := c.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, 859, recent[0].YearOccurred)
	assert.Equal(t, 857, recent[2].YearOccurred)

	assert.Len(t, c.Recent(100), 10)
	assert.Empty(t, c.Recent(0))
}

func TestCountByType(t *testing.T) {
	c := NewChronicle()
	c.Record(testEvent("a", worldsim.EventMagical, worldsim.SeverityMinor, 850), 850, "", 0, 0)
	c.Record(testEvent("b", worldsim.EventMagical, worldsim.SeverityMinor, 851), 851, "", 0, 0)
	c.Record(testEvent("c", worldsim.EventEconomic, worldsim.SeverityMinor, 852), 852, "", 0, 0)

	assert.Equal(t, 2, c.CountByType(worldsim.EventMagical))
	assert.Equal(t, 1, c.CountByType(worldsim.EventEconomic))
	assert.Equal(t, 0, c.CountByType(worldsim.EventPersonal))
}

func TestMilestonesSeparateFromEntries(t *testing.T) {
	c := NewChronicle()
	c.AddMilestone(947, "Century Passed", "One hundred years of patient scheming")

	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.ByType(worldsim.EventPersonal))

	ms := c.Milestones()
	require.Len(t, ms, 1)
	assert.Equal(t, 947, ms[0].Year)
	assert.Equal(t, "Century Passed", ms[0].Title)
}

func TestReset(t *testing.T) {
	c := NewChronicle()
	c.Record(testEvent("a", worldsim.EventEconomic, worldsim.SeverityMinor, 850), 850, "", 0, 0)
	c.AddMilestone(850, "x", "y")

	c.Reset()
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Milestones())
	assert.Equal(t, 0, c.CountByType(worldsim.EventEconomic))
}

func TestRestore(t *testing.T) {
	c := NewChronicle()
	c.Record(testEvent("a", worldsim.EventEconomic, worldsim.SeverityMinor, 850), 850, "", 0, 0)
	saved := c.All()
	milestones := c.Milestones()

	fresh := NewChronicle()
	fresh.Restore(saved, milestones)
	assert.Equal(t, 1, fresh.Count())
	assert.Equal(t, 1, fresh.CountByType(worldsim.EventEconomic))
	assert.Equal(t, "a", fresh.All()[0].EventID)
}

func TestDefaultSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
