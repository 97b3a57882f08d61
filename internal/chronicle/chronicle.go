// Package chronicle keeps the permanent record of everything that has
// happened across the centuries: resolved world events, the choices made
// in response, and milestone markers.
package chronicle

import (
	"log/slog"
	"sync"

	"github.com/graveworks/lichfolio/internal/worldsim"
)

// Entry is the permanent record of one resolved event.
type Entry struct {
	EventID        string            `json:"event_id"`
	EventName      string            `json:"event_name"`
	EventType      worldsim.EventType `json:"event_type"`
	Severity       worldsim.Severity `json:"severity"`
	YearOccurred   int               `json:"year_occurred"`
	YearResolved   int               `json:"year_resolved"`
	Description    string            `json:"description"`
	Outcome        string            `json:"outcome,omitempty"`
	PlayerChoice   string            `json:"player_choice,omitempty"`
	GoldImpact     int64             `json:"gold_impact"`
	ExposureImpact float64           `json:"exposure_impact"`
	KingdomID      string            `json:"kingdom_id,omitempty"`
}

// Copy returns an independent copy of the entry.
func (e *Entry) Copy() *Entry {
	cp := *e
	return &cp
}

// Milestone marks a named moment rather than a world event.
type Milestone struct {
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Chronicle is the ordered record, most recent first.
type Chronicle struct {
	entries     []*Entry
	milestones  []Milestone
	countByType map[worldsim.EventType]int
}

// NewChronicle creates an empty chronicle.
func NewChronicle() *Chronicle {
	return &Chronicle{countByType: make(map[worldsim.EventType]int)}
}

// Record chronicles a resolved event. The resolution year is clamped so
// an event never resolves before it occurred.
func (c *Chronicle) Record(ev worldsim.Event, yearResolved int, outcome string, goldImpact int64, exposureImpact float64) *Entry {
	return c.RecordWithChoice(ev, yearResolved, "", outcome, goldImpact, exposureImpact)
}

// RecordWithChoice chronicles a resolved event along with the choice
// the player made.
func (c *Chronicle) RecordWithChoice(ev worldsim.Event, yearResolved int, choiceID, outcome string, goldImpact int64, exposureImpact float64) *Entry {
	if yearResolved < ev.YearOccurred {
		yearResolved = ev.YearOccurred
	}

	entry := &Entry{
		EventID:        ev.ID,
		EventName:      ev.Name,
		EventType:      ev.Type,
		Severity:       ev.Severity,
		YearOccurred:   ev.YearOccurred,
		YearResolved:   yearResolved,
		Description:    ev.Description,
		Outcome:        outcome,
		PlayerChoice:   choiceID,
		GoldImpact:     goldImpact,
		ExposureImpact: exposureImpact,
		KingdomID:      ev.KingdomID,
	}

	// Most recent first.
	c.entries = append([]*Entry{entry}, c.entries...)
	c.countByType[ev.Type]++

	slog.Debug("chronicled event",
		"event", ev.Name, "type", ev.Type, "year", ev.YearOccurred, "choice", choiceID)
	return entry.Copy()
}

// All returns copies of every entry, most recent first.
func (c *Chronicle) All() []*Entry {
	return copyEntries(c.entries)
}

// ByType returns copies of entries of the given type, most recent first.
func (c *Chronicle) ByType(t worldsim.EventType) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if e.EventType == t {
			out = append(out, e.Copy())
		}
	}
	return out
}

// ByYearRange returns copies of entries that occurred within
// [startYear, endYear], most recent first.
func (c *Chronicle) ByYearRange(startYear, endYear int) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if e.YearOccurred >= startYear && e.YearOccurred <= endYear {
			out = append(out, e.Copy())
		}
	}
	return out
}

// ByKingdom returns copies of entries tied to a kingdom, most recent
// first.
func (c *Chronicle) ByKingdom(kingdomID string) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if e.KingdomID == kingdomID {
			out = append(out, e.Copy())
		}
	}
	return out
}

// BySeverity returns copies of entries at least as severe as the given
// floor, most recent first.
func (c *Chronicle) BySeverity(min worldsim.Severity) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if e.Severity >= min {
			out = append(out, e.Copy())
		}
	}
	return out
}

// Recent returns copies of the n most recent entries.
func (c *Chronicle) Recent(n int) []*Entry {
	if n > len(c.entries) {
		n = len(c.entries)
	}
	if n <= 0 {
		return nil
	}
	return copyEntries(c.entries[:n])
}

// Count returns the total number of recorded events.
func (c *Chronicle) Count() int { return len(c.entries) }

// CountByType returns how many events of the given type were recorded.
func (c *Chronicle) CountByType(t worldsim.EventType) int {
	return c.countByType[t]
}

// AddMilestone marks a named moment. Milestones live apart from event
// entries and never match type filters.
func (c *Chronicle) AddMilestone(year int, title, description string) {
	c.milestones = append(c.milestones, Milestone{
		Year:        year,
		Title:       title,
		Description: description,
	})
	slog.Info("milestone recorded", "year", year, "title", title)
}

// Milestones returns the milestone markers in the order added.
func (c *Chronicle) Milestones() []Milestone {
	return append([]Milestone(nil), c.milestones...)
}

// Reset clears all entries and milestones.
func (c *Chronicle) Reset() {
	c.entries = nil
	c.milestones = nil
	c.countByType = make(map[worldsim.EventType]int)
}

// Restore replaces the chronicle's contents, used by save loading.
// Entries must be ordered most recent first.
func (c *Chronicle) Restore(entries []*Entry, milestones []Milestone) {
	c.Reset()
	c.entries = copyEntries(entries)
	for _, e := range c.entries {
		c.countByType[e.EventType]++
	}
	c.milestones = append([]Milestone(nil), milestones...)
}

func copyEntries(entries []*Entry) []*Entry {
	out := make([]*Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Copy()
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultChr  *Chronicle
)

// Default returns the process-wide chronicle.
func Default() *Chronicle {
	defaultOnce.Do(func() { defaultChr = NewChronicle() })
	return defaultChr
}
