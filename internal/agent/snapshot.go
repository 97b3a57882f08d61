package agent

import (
	"fmt"
	"sort"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// TraitSnapshot is the serializable form of a trait.
type TraitSnapshot struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	InheritanceChance float64  `json:"inheritance_chance"`
	IncomeModifier    float64  `json:"income_modifier"`
	LoyaltyModifier   int      `json:"loyalty_modifier"`
	DiscoveryModifier float64  `json:"discovery_modifier"`
	Conflicts         []string `json:"conflicts,omitempty"`
}

// Snapshot is the serializable form of an operator, covering both
// individual and family agents.
type Snapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        uint8           `json:"type"`
	Age         int             `json:"age"`
	MaxAge      int             `json:"max_age"`
	Loyalty     int             `json:"loyalty"`
	Competence  int             `json:"competence"`
	Cover       uint8           `json:"cover"`
	Knowledge   uint8           `json:"knowledge"`
	Traits      []TraitSnapshot `json:"traits,omitempty"`
	Assignments []string        `json:"assignments,omitempty"`

	TrainingProgress float64   `json:"training_progress,omitempty"`
	Successor        *Snapshot `json:"successor,omitempty"`

	FamilyName   string          `json:"family_name,omitempty"`
	Generation   int             `json:"generation,omitempty"`
	FoundingYear int             `json:"founding_year,omitempty"`
	Bloodline    []TraitSnapshot `json:"bloodline,omitempty"`
}

func snapshotTrait(t *Trait) TraitSnapshot {
	return TraitSnapshot{
		ID:                t.ID(),
		Name:              t.Name(),
		Description:       t.Description(),
		InheritanceChance: t.InheritanceChance(),
		IncomeModifier:    t.IncomeModifier(),
		LoyaltyModifier:   t.LoyaltyModifier(),
		DiscoveryModifier: t.DiscoveryModifier(),
		Conflicts:         t.ConflictIDs(),
	}
}

func restoreTrait(snap TraitSnapshot) *Trait {
	t := NewTraitFull(snap.ID, snap.Name, snap.Description,
		snap.InheritanceChance, snap.IncomeModifier,
		snap.LoyaltyModifier, snap.DiscoveryModifier)
	for _, id := range snap.Conflicts {
		t.AddConflict(id)
	}
	return t
}

func snapshotTraits(traits []*Trait) []TraitSnapshot {
	out := make([]TraitSnapshot, 0, len(traits))
	for _, t := range traits {
		out = append(out, snapshotTrait(t))
	}
	return out
}

func (a *Agent) snapshotBase() Snapshot {
	assignments := a.AssignedInvestments()
	sort.Strings(assignments)
	return Snapshot{
		ID:          a.id,
		Name:        a.name,
		Age:         a.age,
		MaxAge:      a.maxAge,
		Loyalty:     a.loyalty,
		Competence:  a.competence,
		Cover:       uint8(a.cover),
		Knowledge:   uint8(a.knowledge),
		Traits:      snapshotTraits(a.traits),
		Assignments: assignments,
	}
}

func (a *Agent) restoreBase(snap Snapshot) {
	a.age = snap.Age
	a.maxAge = snap.MaxAge
	a.loyalty = snap.Loyalty
	a.competence = snap.Competence
	a.cover = CoverStatus(snap.Cover)
	a.knowledge = KnowledgeLevel(snap.Knowledge)
	a.traits = nil
	for _, ts := range snap.Traits {
		a.AddTrait(restoreTrait(ts))
	}
	a.investments = make(map[string]struct{})
	for _, id := range snap.Assignments {
		a.investments[id] = struct{}{}
	}
}

// Snapshot captures an individual, including any successor in training.
func (ind *Individual) Snapshot() Snapshot {
	snap := ind.snapshotBase()
	snap.Type = uint8(TypeIndividual)
	snap.TrainingProgress = ind.trainingProgress
	if ind.successor != nil {
		s := ind.successor.Snapshot()
		snap.Successor = &s
	}
	return snap
}

// Snapshot captures a family dynasty.
func (f *Family) Snapshot() Snapshot {
	snap := f.snapshotBase()
	snap.Type = uint8(TypeFamily)
	snap.FamilyName = f.familyName
	snap.Generation = f.generation
	snap.FoundingYear = f.foundingYear
	snap.Bloodline = snapshotTraits(f.bloodline)
	return snap
}

// RestoreOperator reconstructs an operator from its snapshot.
func RestoreOperator(snap Snapshot, src entropy.Source) (Operator, error) {
	switch Type(snap.Type) {
	case TypeIndividual:
		ind := NewIndividual(snap.ID, snap.Name, src)
		ind.restoreBase(snap)
		ind.trainingProgress = snap.TrainingProgress
		if snap.Successor != nil {
			restored, err := RestoreOperator(*snap.Successor, src)
			if err != nil {
				return nil, err
			}
			ind.successor = restored.(*Individual)
		}
		return ind, nil
	case TypeFamily:
		f := NewFamily(snap.ID, snap.FamilyName, snap.FoundingYear, src)
		f.restoreBase(snap)
		f.SetName(snap.Name)
		f.generation = snap.Generation
		f.bloodline = nil
		for _, ts := range snap.Bloodline {
			f.bloodline = append(f.bloodline, restoreTrait(ts))
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown operator type %d", snap.Type)
	}
}

// Snapshot captures every operator in roster order. Operators that do not
// support snapshotting are skipped.
func (m *Manager) Snapshot() []Snapshot {
	type snapshotter interface {
		Snapshot() Snapshot
	}
	var out []Snapshot
	for _, op := range m.order {
		if s, ok := op.(snapshotter); ok {
			out = append(out, s.Snapshot())
		}
	}
	return out
}

// Restore replaces the roster with operators rebuilt from snapshots.
func (m *Manager) Restore(snaps []Snapshot, src entropy.Source) error {
	restored := make([]Operator, 0, len(snaps))
	for _, snap := range snaps {
		op, err := RestoreOperator(snap, src)
		if err != nil {
			return err
		}
		restored = append(restored, op)
	}
	m.Reset()
	for _, op := range restored {
		m.Add(op)
	}
	return nil
}
