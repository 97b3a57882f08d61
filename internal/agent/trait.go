// Package agent provides the mortal-operator data model: heritable traits,
// individual agents with successors, bloodline families, and the manager
// that indexes them.
package agent

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// Trait inheritance gains +2% per generation as the trait settles into the
// bloodline, capped at 95%.
const (
	inheritanceGenerationBonus = 0.02
	inheritanceCap             = 0.95
)

// Trait is a heritable modifier bundle. The id is immutable after
// construction; everything else has a validated setter.
type Trait struct {
	id          string
	name        string
	description string

	inheritanceChance float64 // 0.0-1.0
	incomeModifier    float64 // 1.0 = neutral
	loyaltyModifier   int     // bonus/penalty
	discoveryModifier float64 // 1.0 = neutral, lower is stealthier

	conflictsWith []string // trait ids
}

// NewTrait creates a trait with neutral modifiers.
func NewTrait(id, name string) *Trait {
	return &Trait{
		id:                id,
		name:              name,
		inheritanceChance: 0.5,
		incomeModifier:    1.0,
		discoveryModifier: 1.0,
	}
}

// NewTraitFull creates a fully-specified trait.
func NewTraitFull(id, name, description string, inheritanceChance, incomeModifier float64, loyaltyModifier int, discoveryModifier float64) *Trait {
	t := NewTrait(id, name)
	t.description = description
	t.SetInheritanceChance(inheritanceChance)
	t.SetIncomeModifier(incomeModifier)
	t.SetLoyaltyModifier(loyaltyModifier)
	t.SetDiscoveryModifier(discoveryModifier)
	return t
}

func (t *Trait) ID() string          { return t.id }
func (t *Trait) Name() string        { return t.name }
func (t *Trait) Description() string { return t.description }

func (t *Trait) SetName(name string)        { t.name = name }
func (t *Trait) SetDescription(desc string) { t.description = desc }

func (t *Trait) InheritanceChance() float64 { return t.inheritanceChance }

// SetInheritanceChance clamps to [0, 1].
func (t *Trait) SetInheritanceChance(chance float64) {
	t.inheritanceChance = clampFloat(chance, 0, 1)
}

func (t *Trait) IncomeModifier() float64 { return t.incomeModifier }

// SetIncomeModifier rejects negative multipliers.
func (t *Trait) SetIncomeModifier(modifier float64) {
	if modifier < 0 {
		slog.Debug("rejecting negative income modifier", "trait", t.id, "modifier", modifier)
		return
	}
	t.incomeModifier = modifier
}

func (t *Trait) LoyaltyModifier() int { return t.loyaltyModifier }

// SetLoyaltyModifier clamps to [-100, 100].
func (t *Trait) SetLoyaltyModifier(modifier int) {
	t.loyaltyModifier = clampInt(modifier, -100, 100)
}

func (t *Trait) DiscoveryModifier() float64 { return t.discoveryModifier }

// SetDiscoveryModifier rejects negative multipliers.
func (t *Trait) SetDiscoveryModifier(modifier float64) {
	if modifier < 0 {
		slog.Debug("rejecting negative discovery modifier", "trait", t.id, "modifier", modifier)
		return
	}
	t.discoveryModifier = modifier
}

// ConflictIDs returns the raw conflict list.
func (t *Trait) ConflictIDs() []string {
	return t.conflictsWith
}

// AddConflict registers a conflicting trait id. Duplicates are ignored.
func (t *Trait) AddConflict(traitID string) {
	if traitID == "" || t.ConflictsWithID(traitID) {
		return
	}
	t.conflictsWith = append(t.conflictsWith, traitID)
}

// ConflictsWithID reports whether this trait lists traitID as a conflict.
func (t *Trait) ConflictsWithID(traitID string) bool {
	for _, id := range t.conflictsWith {
		if id == traitID {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether either trait lists the other as a conflict.
func (t *Trait) ConflictsWith(other *Trait) bool {
	if other == nil {
		return false
	}
	return t.ConflictsWithID(other.id) || other.ConflictsWithID(t.id)
}

// Copy returns a structurally equal trait with independent identity.
func (t *Trait) Copy() *Trait {
	cp := NewTraitFull(t.id, t.name, t.description,
		t.inheritanceChance, t.incomeModifier, t.loyaltyModifier, t.discoveryModifier)
	cp.conflictsWith = append([]string(nil), t.conflictsWith...)
	return cp
}

// RollInheritance performs the Bernoulli inheritance roll for the given
// generation, drawing from src (the default entropy source when nil).
func (t *Trait) RollInheritance(generation int, src entropy.Source) bool {
	if src == nil {
		src = entropy.Default()
	}

	effective := t.inheritanceChance + float64(generation)*inheritanceGenerationBonus
	if effective > inheritanceCap {
		effective = inheritanceCap
	}
	if t.inheritanceChance == 0 {
		// A trait that never inherits stays that way regardless of generation.
		effective = 0
	}

	roll := src.Float()
	inherited := roll < effective
	slog.Debug("trait inheritance roll",
		"trait", t.id, "generation", generation,
		"roll", roll, "chance", effective, "inherited", inherited)
	return inherited
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
