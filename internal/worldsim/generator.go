package worldsim

import (
	"log/slog"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// baseYearlyEventChance is the odds of any event in an average year,
// before the economic climate shifts it.
const baseYearlyEventChance = 0.30

type eventTemplate struct {
	name        string
	description string

	marketModifier  float64
	affectedClass   string
	stabilityImpact int
	causesWar       bool
	exposureImpact  float64
	affectsDark     bool
	isBetrayal      bool
	isDeath         bool
}

var eventTemplates = map[EventType]map[Severity][]eventTemplate{
	EventEconomic: {
		SeverityMinor: {
			{name: "Trade Fair", description: "A regional trade fair boosts commerce", marketModifier: 1.05, affectedClass: "trade"},
			{name: "Poor Harvest", description: "A below-average harvest affects food prices", marketModifier: 0.95, affectedClass: "property"},
			{name: "New Mine Discovery", description: "A new vein of ore is discovered", marketModifier: 1.08},
			{name: "Tax Increase", description: "Local taxes are raised slightly", marketModifier: 0.97, affectedClass: "property"},
		},
		SeverityModerate: {
			{name: "Trade Route Opens", description: "A new trade route brings prosperity", marketModifier: 1.15, affectedClass: "trade"},
			{name: "Banking Crisis", description: "Several money lenders fail", marketModifier: 0.85, affectedClass: "financial"},
			{name: "Resource Boom", description: "Valuable resources flood the market", marketModifier: 1.20},
			{name: "Trade Embargo", description: "Political tensions disrupt trade", marketModifier: 0.80, affectedClass: "trade"},
		},
		SeverityMajor: {
			{name: "Market Crash", description: "Financial markets collapse", marketModifier: 0.60},
			{name: "Golden Age", description: "Unprecedented prosperity sweeps the land", marketModifier: 1.40},
			{name: "Currency Devaluation", description: "The currency loses significant value", marketModifier: 0.70, affectedClass: "financial"},
			{name: "Discovery of New Lands", description: "New territories bring vast opportunity", marketModifier: 1.50, affectedClass: "trade"},
		},
	},
	EventPolitical: {
		SeverityMinor: {
			{name: "Noble Scandal", description: "A minor noble is caught in scandal", stabilityImpact: -5},
			{name: "Royal Proclamation", description: "The crown issues new edicts", stabilityImpact: 5},
			{name: "Border Skirmish", description: "Minor conflict on the frontier", stabilityImpact: -10},
			{name: "Diplomatic Visit", description: "Foreign dignitaries improve relations", stabilityImpact: 10},
		},
		SeverityModerate: {
			{name: "Succession Dispute", description: "Questions arise about the line of succession", stabilityImpact: -25},
			{name: "Reform Movement", description: "Calls for change sweep the populace", stabilityImpact: -15},
			{name: "Alliance Formed", description: "A powerful alliance is announced", stabilityImpact: 20},
			{name: "Peasant Unrest", description: "The common folk grow restless", stabilityImpact: -20},
		},
		SeverityMajor: {
			{name: "Civil War", description: "The realm tears itself apart", stabilityImpact: -50, causesWar: true},
			{name: "Revolution", description: "The old order is overthrown", stabilityImpact: -60, causesWar: true},
			{name: "Conquest", description: "Foreign armies march on the capital", stabilityImpact: -40, causesWar: true},
			{name: "Golden Peace", description: "A century-long peace treaty is signed", stabilityImpact: 50},
		},
	},
	EventMagical: {
		SeverityMinor: {
			{name: "Strange Lights", description: "Unusual lights seen in the sky", exposureImpact: 5},
			{name: "Witch Accusations", description: "Rumors of witchcraft spread", exposureImpact: 10},
			{name: "Blessed Harvest", description: "The harvest is miraculously bountiful", exposureImpact: -5},
			{name: "Cursed Well", description: "A village well turns bitter", exposureImpact: 8, affectsDark: true},
		},
		SeverityModerate: {
			{name: "Artifact Discovered", description: "An ancient artifact is unearthed", exposureImpact: 20, affectsDark: true},
			{name: "Magical Plague", description: "A mysterious illness spreads", exposureImpact: 25, affectsDark: true},
			{name: "Divine Vision", description: "A saint receives a holy vision", exposureImpact: -15},
			{name: "Demonic Sighting", description: "Reports of demon activity", exposureImpact: 30, affectsDark: true},
		},
		SeverityMajor: {
			{name: "The Veil Thins", description: "The barrier between worlds weakens", exposureImpact: 50, affectsDark: true},
			{name: "Divine Intervention", description: "The gods manifest their power", exposureImpact: -40},
			{name: "Magical Catastrophe", description: "A spell goes terribly wrong", exposureImpact: 60, affectsDark: true},
			{name: "Age of Miracles", description: "Magic becomes commonplace", exposureImpact: 40, affectsDark: true},
		},
	},
	EventPersonal: {
		SeverityMinor: {
			{name: "Agent Illness", description: "One of your agents falls ill"},
			{name: "Agent Promotion", description: "An agent gains influence"},
			{name: "Family Dispute", description: "Quarrel among your servants"},
			{name: "New Contact", description: "An agent makes a valuable connection"},
		},
		SeverityModerate: {
			{name: "Agent Investigated", description: "Authorities take interest in an agent"},
			{name: "Wavering Loyalty", description: "An agent questions their service", isBetrayal: true},
			{name: "Agent Marriage", description: "An agent's family grows"},
			{name: "Agent Accident", description: "Serious injury befalls an agent"},
		},
		SeverityMajor: {
			{name: "Agent Exposed", description: "An agent's true master is revealed", isBetrayal: true, exposureImpact: 25},
			{name: "Agent Assassinated", description: "An agent is found dead", isDeath: true},
			{name: "Mass Defection", description: "Several servants flee your employ", isBetrayal: true},
			{name: "Loyal Unto Death", description: "An agent dies protecting your secret", isDeath: true, exposureImpact: -10},
		},
	},
}

// Generator rolls world events. The economic climate is a slow simplex
// noise curve over the year axis, so runs with the same seed replay the
// same booms and busts.
type Generator struct {
	noise opensimplex.Noise
	src   entropy.Source
}

// NewGenerator creates a generator. A nil source falls back to the
// process default.
func NewGenerator(seed int64, src entropy.Source) *Generator {
	if src == nil {
		src = entropy.Default()
	}
	return &Generator{
		noise: opensimplex.NewNormalized(seed),
		src:   src,
	}
}

// EconomicClimate samples the climate curve for a year: 0 is depression,
// 1 is golden age, ~0.5 is an average year.
func (g *Generator) EconomicClimate(year int) float64 {
	// Low frequency keeps booms and busts on a decades scale.
	return g.noise.Eval2(float64(year)*0.02, 0)
}

// GenerateYearly rolls the events for one year. Turbulent climates at
// either extreme raise both frequency and severity.
func (g *Generator) GenerateYearly(year int) []Event {
	climate := g.EconomicClimate(year)

	// Distance from the climate midpoint drives turbulence.
	turbulence := 2 * abs(climate-0.5)
	chance := baseYearlyEventChance * (0.75 + turbulence)

	if g.src.Float() >= chance {
		return nil
	}

	eventType := EventType(g.src.IntN(4))
	severity := g.rollSeverity(turbulence)
	ev := g.instantiate(eventType, severity, year)

	slog.Debug("world event generated",
		"year", year, "event", ev.Name, "type", eventType, "severity", severity,
		"climate", climate)
	return []Event{ev}
}

// rollSeverity skews toward minor in calm years and toward major in
// turbulent ones.
func (g *Generator) rollSeverity(turbulence float64) Severity {
	roll := g.src.Float()
	switch {
	case roll < 0.75-0.35*turbulence:
		return SeverityMinor
	case roll < 0.95-0.15*turbulence:
		return SeverityModerate
	default:
		return SeverityMajor
	}
}

// instantiate fills an Event from a random template of the given type
// and severity.
func (g *Generator) instantiate(eventType EventType, severity Severity, year int) Event {
	pool := eventTemplates[eventType][severity]
	if len(pool) == 0 {
		// Catastrophic draws reuse the major pool.
		pool = eventTemplates[eventType][SeverityMajor]
	}
	tmpl := pool[g.src.IntN(len(pool))]

	return Event{
		ID:              uuid.NewString(),
		Name:            tmpl.name,
		Type:            eventType,
		Severity:        severity,
		YearOccurred:    year,
		Description:     tmpl.description,
		MarketModifier:  tmpl.marketModifier,
		AffectedClass:   tmpl.affectedClass,
		StabilityImpact: tmpl.stabilityImpact,
		CausesWar:       tmpl.causesWar,
		ExposureImpact:  tmpl.exposureImpact,
		AffectsDark:     tmpl.affectsDark,
		IsBetrayal:      tmpl.isBetrayal,
		IsDeath:         tmpl.isDeath,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
