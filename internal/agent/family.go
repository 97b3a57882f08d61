package agent

import (
	"fmt"
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// maxTraits caps how many traits any single head can carry.
const maxTraits = 4

// newTraitChance is the base probability of a fresh trait emerging when
// a generation turns over.
const newTraitChance = 0.05

type (
	GenerationAdvancedFunc func(f *Family, generation int)
	TraitEmergedFunc       func(f *Family, t *Trait)
)

// Family is a bloodline dynasty: the agent state models the current
// head, while bloodline traits accumulate across generations.
type Family struct {
	Agent

	familyName   string
	generation   int
	foundingYear int

	bloodline []*Trait // unique by id

	onGenerationAdvanced []GenerationAdvancedFunc
	onTraitEmerged       []TraitEmergedFunc
}

// NewFamily creates a first-generation family.
func NewFamily(id, familyName string, foundingYear int, src entropy.Source) *Family {
	f := &Family{
		Agent:        *NewAgent(id, familyName, src),
		familyName:   familyName,
		generation:   1,
		foundingYear: foundingYear,
	}
	return f
}

// NewFamilyWithHead additionally primes the initial head's name and
// lifespan.
func NewFamilyWithHead(id, familyName, headName string, foundingYear, age, maxAge int, src entropy.Source) *Family {
	f := NewFamily(id, familyName, foundingYear, src)
	f.SetName(headName)
	f.SetAge(age)
	f.SetMaxAge(maxAge)
	return f
}

func (f *Family) Type() Type { return TypeFamily }

func (f *Family) FamilyName() string { return f.familyName }
func (f *Family) Generation() int    { return f.generation }
func (f *Family) FoundingYear() int  { return f.foundingYear }

// YearsEstablished returns how long the dynasty has existed, 0 when
// currentYear predates the founding.
func (f *Family) YearsEstablished(currentYear int) int {
	if currentYear <= f.foundingYear {
		return 0
	}
	return currentYear - f.foundingYear
}

// BloodlineTraits returns the accumulated inheritable traits.
func (f *Family) BloodlineTraits() []*Trait { return f.bloodline }

// AddBloodlineTrait records a trait in the bloodline, ignoring nil and
// duplicate ids.
func (f *Family) AddBloodlineTrait(t *Trait) {
	if t == nil || f.HasBloodlineTrait(t.ID()) {
		return
	}
	f.bloodline = append(f.bloodline, t)
}

// HasBloodlineTrait reports whether the bloodline carries the trait id.
func (f *Family) HasBloodlineTrait(traitID string) bool {
	for _, t := range f.bloodline {
		if t.ID() == traitID {
			return true
		}
	}
	return false
}

// AdvanceGeneration turns the dynasty over to a new head. The current
// head must have reached max age. Bloodline traits are re-rolled onto
// the new head with conflict suppression, traits unique to the old head
// may join the bloodline, and a new trait may emerge.
func (f *Family) AdvanceGeneration() error {
	if f.Age() < f.MaxAge() {
		return fmt.Errorf("family %s: head is %d, cannot advance before max age %d", f.id, f.Age(), f.MaxAge())
	}

	f.generation++
	slog.Info("family advancing generation", "family", f.familyName, "generation", f.generation)

	inherited := f.rollInheritance()

	for _, t := range f.Traits() {
		f.RemoveTrait(t.ID())
	}
	for _, t := range inherited {
		if len(f.Traits()) >= maxTraits {
			break
		}
		f.AddTrait(t)
	}

	if emerged := f.rollNewTrait(); emerged != nil {
		f.AddBloodlineTrait(emerged)
		if len(f.Traits()) < maxTraits {
			f.AddTrait(emerged)
		}
		for _, fn := range f.onTraitEmerged {
			fn(f, emerged)
		}
	}

	f.SetAge(entropy.IntRangeFrom(f.src, 18, 26))
	f.SetMaxAge(entropy.IntRangeFrom(f.src, 60, 86))

	branch := "Junior"
	if f.src.IntN(2) == 1 {
		branch = "Senior"
	}
	f.SetName(fmt.Sprintf("%s %s (Gen %d)", f.familyName, branch, f.generation))

	// A new head may be less devoted than the one who served a lifetime.
	f.SetLoyalty(f.Loyalty() - f.src.IntN(10))

	for _, fn := range f.onGenerationAdvanced {
		fn(f, f.generation)
	}
	return nil
}

// rollInheritance rolls every bloodline trait for the new head, skipping
// traits that conflict with ones already inherited, then gives traits
// unique to the dying head a 50% chance of joining the bloodline.
func (f *Family) rollInheritance() []*Trait {
	var inherited []*Trait

	for _, t := range f.bloodline {
		if !t.RollInheritance(f.generation, f.src) {
			continue
		}
		conflicts := false
		for _, have := range inherited {
			if t.ConflictsWith(have) {
				slog.Debug("inherited trait conflict", "trait", t.ID(), "existing", have.ID())
				conflicts = true
				break
			}
		}
		if !conflicts && len(inherited) < maxTraits {
			inherited = append(inherited, t)
		}
	}

	for _, t := range f.Traits() {
		if f.HasBloodlineTrait(t.ID()) {
			continue
		}
		if f.src.IntN(100) < 50 {
			f.AddBloodlineTrait(t)
			if len(inherited) < maxTraits {
				inherited = append(inherited, t)
			}
		}
	}

	slog.Debug("bloodline inheritance rolled",
		"family", f.familyName, "generation", f.generation, "inherited", len(inherited))
	return inherited
}

// Trait templates that can emerge in bloodlines. A data-driven catalog
// can replace these at load time.
var emergentTraits = []struct {
	id, name, description string
	inheritance, income   float64
	loyalty               int
	discovery             float64
}{
	{"shrewd", "Shrewd", "Natural business acumen", 0.6, 1.15, 0, 1.0},
	{"loyal", "Devoted", "Exceptional loyalty", 0.5, 1.0, 15, 0.8},
	{"cunning", "Cunning", "Skilled at deception", 0.4, 1.1, -5, 0.7},
	{"ambitious", "Ambitious", "Driven to succeed", 0.5, 1.2, -10, 1.1},
	{"cautious", "Cautious", "Avoids unnecessary risks", 0.6, 0.95, 5, 0.6},
	{"charismatic", "Charismatic", "Natural leader", 0.4, 1.1, 5, 1.0},
	{"secretive", "Secretive", "Keeps secrets well", 0.5, 1.0, 0, 0.5},
	{"greedy", "Greedy", "Motivated by wealth", 0.4, 1.25, -15, 1.2},
}

// rollNewTrait occasionally produces a fresh trait for the bloodline:
// 5% base chance, +1% per generation, capped at 15%. Conflicting or
// already-present templates are retried a few times then abandoned.
func (f *Family) rollNewTrait() *Trait {
	chance := newTraitChance + float64(f.generation)*0.01
	if chance > 0.15 {
		chance = 0.15
	}
	if f.src.Float() >= chance {
		return nil
	}

	for attempts := 0; attempts < 5; attempts++ {
		tpl := emergentTraits[f.src.IntN(len(emergentTraits))]
		if f.HasBloodlineTrait(tpl.id) {
			continue
		}
		t := NewTraitFull(tpl.id, tpl.name, tpl.description,
			tpl.inheritance, tpl.income, tpl.loyalty, tpl.discovery)

		conflicts := false
		for _, existing := range f.bloodline {
			if t.ConflictsWith(existing) {
				conflicts = true
				break
			}
		}
		if !conflicts {
			slog.Info("new trait emerged", "family", f.familyName, "trait", t.ID())
			return t
		}
	}
	return nil
}

// OnYearPassed ages the head; when the head dies the dynasty continues
// under a new generation instead of emitting a death.
func (f *Family) OnYearPassed() {
	if f.Age()+1 >= f.MaxAge() {
		f.SetAge(f.Age() + 1)
		if err := f.AdvanceGeneration(); err != nil {
			slog.Error("generation advance failed", "family", f.familyName, "error", err)
		}
		return
	}
	f.Agent.OnYearPassed()
}

func (f *Family) OnGenerationAdvanced(fn GenerationAdvancedFunc) {
	f.onGenerationAdvanced = append(f.onGenerationAdvanced, fn)
}

func (f *Family) OnTraitEmerged(fn TraitEmergedFunc) {
	f.onTraitEmerged = append(f.onTraitEmerged, fn)
}
