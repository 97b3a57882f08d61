// Package ledger tracks what the player has uncovered about the world:
// market mechanisms, agent secrets, rival schemers, and hidden lore.
package ledger

import (
	"log/slog"
	"sort"
)

// Category groups discoveries for display and filtering.
type Category uint8

const (
	CategoryEconomic Category = iota
	CategoryAgent
	CategoryCompetitor
	CategoryHidden
)

func (c Category) String() string {
	switch c {
	case CategoryEconomic:
		return "economic"
	case CategoryAgent:
		return "agent"
	case CategoryCompetitor:
		return "competitor"
	case CategoryHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Entry is one discovery.
type Entry struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	YearDiscovered int      `json:"year_discovered"`
}

// DiscoveredFunc observes new discoveries.
type DiscoveredFunc func(e Entry)

// Ledger is the discovery log, keyed by entry id.
type Ledger struct {
	discoveries map[string]Entry

	onDiscovered []DiscoveredFunc
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{discoveries: make(map[string]Entry)}
}

// Discover records an entry, reporting whether it was new.
func (l *Ledger) Discover(id string, category Category, year int) bool {
	if id == "" {
		return false
	}
	if _, ok := l.discoveries[id]; ok {
		return false
	}
	e := Entry{ID: id, Category: category, YearDiscovered: year}
	l.discoveries[id] = e
	slog.Info("ledger entry discovered", "entry", id, "category", category, "year", year)
	for _, fn := range l.onDiscovered {
		fn(e)
	}
	return true
}

// IsDiscovered reports whether the entry is known.
func (l *Ledger) IsDiscovered(id string) bool {
	_, ok := l.discoveries[id]
	return ok
}

// ByCategory returns the known entries in a category.
func (l *Ledger) ByCategory(category Category) []Entry {
	var out []Entry
	for _, e := range l.discoveries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// All returns every known entry.
func (l *Ledger) All() []Entry {
	out := make([]Entry, 0, len(l.discoveries))
	for _, e := range l.discoveries {
		out = append(out, e)
	}
	return out
}

// Count returns the number of discoveries.
func (l *Ledger) Count() int { return len(l.discoveries) }

// OnDiscovered registers a discovery observer.
func (l *Ledger) OnDiscovered(fn DiscoveredFunc) {
	l.onDiscovered = append(l.onDiscovered, fn)
}

// Reset forgets everything.
func (l *Ledger) Reset() {
	l.discoveries = make(map[string]Entry)
}

// Snapshot returns the discoveries for saving, sorted by id for stable
// output.
func (l *Ledger) Snapshot() []Entry {
	out := l.All()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Restore replaces the ledger's contents from a snapshot.
func (l *Ledger) Restore(entries []Entry) {
	l.discoveries = make(map[string]Entry, len(entries))
	for _, e := range entries {
		l.discoveries[e.ID] = e
	}
}
