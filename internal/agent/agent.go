package agent

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// CoverStatus describes how well an agent's connection to their patron
// is concealed.
type CoverStatus uint8

const (
	CoverSecure CoverStatus = iota
	CoverSuspicious
	CoverCompromised
	CoverExposed
)

func (c CoverStatus) String() string {
	switch c {
	case CoverSecure:
		return "secure"
	case CoverSuspicious:
		return "suspicious"
	case CoverCompromised:
		return "compromised"
	case CoverExposed:
		return "exposed"
	default:
		return "unknown"
	}
}

// KnowledgeLevel describes how much the agent understands about what
// they actually serve.
type KnowledgeLevel uint8

const (
	KnowledgeNone KnowledgeLevel = iota
	KnowledgeBasic
	KnowledgeSuspicious
	KnowledgeFull
)

func (k KnowledgeLevel) String() string {
	switch k {
	case KnowledgeNone:
		return "none"
	case KnowledgeBasic:
		return "basic"
	case KnowledgeSuspicious:
		return "suspicious"
	case KnowledgeFull:
		return "full"
	default:
		return "unknown"
	}
}

// Type tags the agent variant.
type Type uint8

const (
	TypeIndividual Type = iota
	TypeFamily
)

func (t Type) String() string {
	switch t {
	case TypeIndividual:
		return "individual"
	case TypeFamily:
		return "family"
	default:
		return "unknown"
	}
}

// Exposure contribution per knowledge level before modifiers.
var knowledgeExposureBase = map[KnowledgeLevel]float64{
	KnowledgeNone:       0,
	KnowledgeBasic:      2,
	KnowledgeSuspicious: 5,
	KnowledgeFull:       10,
}

// Cover multipliers: a secure cover halves what leaks out, a blown one
// triples it.
var coverExposureMult = map[CoverStatus]float64{
	CoverSecure:      0.5,
	CoverSuspicious:  1.0,
	CoverCompromised: 2.0,
	CoverExposed:     3.0,
}

// maxExposureContribution caps how much any single agent can leak per
// reading, no matter how blown their cover is.
const maxExposureContribution = 25

// Observer callbacks.
type (
	DiedFunc           func(a *Agent)
	BetrayedFunc       func(a *Agent)
	LoyaltyChangedFunc func(a *Agent, old, new int)
)

// Agent is the base mortal operator. Individual and Family embed it.
type Agent struct {
	id   string
	name string

	age    int
	maxAge int

	loyalty    int // 0-100
	competence int // 0-100

	cover     CoverStatus
	knowledge KnowledgeLevel
	died      bool

	traits      []*Trait // insertion order, unique by id
	investments map[string]struct{}

	src entropy.Source

	onDied           []DiedFunc
	onBetrayed       []BetrayedFunc
	onLoyaltyChanged []LoyaltyChangedFunc
}

// NewAgent creates an agent with a rolled lifespan and neutral standing:
// age uniform in [18,70], max age in [60,90], secure cover, no knowledge,
// loyalty and competence at 50.
func NewAgent(id, name string, src entropy.Source) *Agent {
	if src == nil {
		src = entropy.Default()
	}
	a := &Agent{
		id:          id,
		name:        name,
		age:         entropy.IntRangeFrom(src, 18, 71),
		maxAge:      entropy.IntRangeFrom(src, 60, 91),
		loyalty:     50,
		competence:  50,
		cover:       CoverSecure,
		knowledge:   KnowledgeNone,
		investments: make(map[string]struct{}),
		src:         src,
	}
	// Old recruits still get a few years of service.
	if a.maxAge <= a.age {
		a.maxAge = a.age + entropy.IntRangeFrom(src, 3, 16)
	}
	return a
}

func (a *Agent) ID() string                { return a.id }
func (a *Agent) Name() string              { return a.name }
func (a *Agent) Age() int                  { return a.age }
func (a *Agent) MaxAge() int               { return a.maxAge }
func (a *Agent) Loyalty() int              { return a.loyalty }
func (a *Agent) Competence() int           { return a.competence }
func (a *Agent) Cover() CoverStatus        { return a.cover }
func (a *Agent) Knowledge() KnowledgeLevel { return a.knowledge }

// Type reports the variant tag. The base defaults to individual.
func (a *Agent) Type() Type { return TypeIndividual }

func (a *Agent) SetName(name string) { a.name = name }

// SetAge rejects negative ages.
func (a *Agent) SetAge(age int) {
	if age < 0 {
		return
	}
	a.age = age
}

// SetMaxAge rejects non-positive lifespans.
func (a *Agent) SetMaxAge(maxAge int) {
	if maxAge <= 0 {
		return
	}
	a.maxAge = maxAge
}

// SetLoyalty clamps to [0,100] and notifies observers on change.
func (a *Agent) SetLoyalty(loyalty int) {
	loyalty = clampInt(loyalty, 0, 100)
	if loyalty == a.loyalty {
		return
	}
	old := a.loyalty
	a.loyalty = loyalty
	for _, fn := range a.onLoyaltyChanged {
		fn(a, old, loyalty)
	}
}

// SetCompetence clamps to [0,100].
func (a *Agent) SetCompetence(competence int) {
	a.competence = clampInt(competence, 0, 100)
}

func (a *Agent) SetCover(cover CoverStatus)           { a.cover = cover }
func (a *Agent) SetKnowledge(knowledge KnowledgeLevel) { a.knowledge = knowledge }

// IsAlive reports whether the agent has not yet reached max age.
func (a *Agent) IsAlive() bool { return a.age < a.maxAge }

// YearsRemaining returns how many years the agent has left, never negative.
func (a *Agent) YearsRemaining() int {
	if a.age >= a.maxAge {
		return 0
	}
	return a.maxAge - a.age
}

// AddTrait appends a trait, ignoring nil and duplicate ids.
func (a *Agent) AddTrait(t *Trait) {
	if t == nil || a.HasTrait(t.ID()) {
		return
	}
	a.traits = append(a.traits, t)
}

// HasTrait reports whether a trait with the given id is present.
func (a *Agent) HasTrait(traitID string) bool {
	for _, t := range a.traits {
		if t.ID() == traitID {
			return true
		}
	}
	return false
}

// RemoveTrait removes the trait with the given id, reporting whether it
// was present.
func (a *Agent) RemoveTrait(traitID string) bool {
	for i, t := range a.traits {
		if t.ID() == traitID {
			a.traits = append(a.traits[:i], a.traits[i+1:]...)
			return true
		}
	}
	return false
}

// Traits returns the trait list in insertion order. Callers must not
// mutate the returned slice.
func (a *Agent) Traits() []*Trait { return a.traits }

// AssignInvestment records a weak reference to an investment this agent
// manages.
func (a *Agent) AssignInvestment(investmentID string) {
	if investmentID == "" {
		return
	}
	a.investments[investmentID] = struct{}{}
}

// UnassignInvestment drops the reference, reporting whether it existed.
func (a *Agent) UnassignInvestment(investmentID string) bool {
	if _, ok := a.investments[investmentID]; !ok {
		return false
	}
	delete(a.investments, investmentID)
	return true
}

// AssignedInvestments returns the ids of investments this agent manages.
func (a *Agent) AssignedInvestments() []string {
	ids := make([]string, 0, len(a.investments))
	for id := range a.investments {
		ids = append(ids, id)
	}
	return ids
}

// HasAssignments reports whether the agent currently manages anything.
func (a *Agent) HasAssignments() bool { return len(a.investments) > 0 }

// IncomeModifier derives the agent's income multiplier: 0.5 at zero
// competence, 1.0 at 50, 1.5 at 100, then scaled by every trait's income
// modifier.
func (a *Agent) IncomeModifier() float64 {
	modifier := 0.5 + float64(a.competence)/100.0
	for _, t := range a.traits {
		modifier *= t.IncomeModifier()
	}
	return modifier
}

// ExposureContribution computes how much this agent leaks per reading:
// a base set by knowledge level, scaled by cover status and by every
// trait's discovery modifier, capped.
func (a *Agent) ExposureContribution() float64 {
	contribution := knowledgeExposureBase[a.knowledge] * coverExposureMult[a.cover]
	for _, t := range a.traits {
		contribution *= t.DiscoveryModifier()
	}
	if contribution > maxExposureContribution {
		contribution = maxExposureContribution
	}
	return contribution
}

// RollBetrayal rolls the annual betrayal check. The base chance is
// (100 - loyalty)%, reduced sharply when the agent knows little, capped
// at 25% per year.
func (a *Agent) RollBetrayal() bool {
	chance := 100 - a.loyalty
	switch a.knowledge {
	case KnowledgeNone:
		chance /= 10
	case KnowledgeBasic:
		chance /= 5
	case KnowledgeSuspicious:
		chance /= 2
	case KnowledgeFull:
	}
	if chance < 0 {
		chance = 0
	}
	if chance > 25 {
		chance = 25
	}
	return a.src.IntN(100) < chance
}

// OnYearPassed ages the agent one year, applies knowledge-driven loyalty
// decay, and checks for death and betrayal.
func (a *Agent) OnYearPassed() {
	if a.died {
		return
	}
	a.age++

	if a.age >= a.maxAge {
		a.died = true
		slog.Info("agent died of old age", "agent", a.id, "age", a.age)
		for _, fn := range a.onDied {
			fn(a)
		}
		return
	}

	// Agents who know more question their service more.
	var decayChance int
	switch a.knowledge {
	case KnowledgeBasic:
		decayChance = 10
	case KnowledgeSuspicious:
		decayChance = 20
	case KnowledgeFull:
		decayChance = 30
	}
	if decayChance > 0 && a.src.IntN(100) < decayChance {
		a.SetLoyalty(a.loyalty - 1)
	}

	if a.RollBetrayal() {
		slog.Warn("agent betrayal", "agent", a.id, "knowledge", a.knowledge)
		for _, fn := range a.onBetrayed {
			fn(a)
		}
	}
}

func (a *Agent) OnDied(fn DiedFunc)                     { a.onDied = append(a.onDied, fn) }
func (a *Agent) OnBetrayed(fn BetrayedFunc)             { a.onBetrayed = append(a.onBetrayed, fn) }
func (a *Agent) OnLoyaltyChanged(fn LoyaltyChangedFunc) { a.onLoyaltyChanged = append(a.onLoyaltyChanged, fn) }
