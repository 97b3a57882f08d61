// Package worldsim drives the mortal world: the year counter, kingdoms,
// the economic cycle, and the random events a long slumber rolls past.
package worldsim

// EventType classifies world events.
type EventType uint8

const (
	EventEconomic EventType = iota
	EventPolitical
	EventMagical
	EventPersonal
)

func (t EventType) String() string {
	switch t {
	case EventEconomic:
		return "economic"
	case EventPolitical:
		return "political"
	case EventMagical:
		return "magical"
	case EventPersonal:
		return "personal"
	default:
		return "unknown"
	}
}

// Severity grades how hard an event lands.
type Severity uint8

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeverityMajor
	SeverityCatastrophic
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeverityMajor:
		return "major"
	case SeverityCatastrophic:
		return "catastrophic"
	default:
		return "unknown"
	}
}

// Choice is one way the player may respond to an event.
type Choice struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Consequence string  `json:"consequence"`
	GoldCost    float64 `json:"gold_cost"`
}

// Event is a resolved world occurrence. Once generated it is treated as
// a value.
type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         EventType `json:"type"`
	Severity     Severity  `json:"severity"`
	YearOccurred int       `json:"year_occurred"`
	Description  string    `json:"description"`
	KingdomID    string    `json:"kingdom_id,omitempty"`
	RegionID     string    `json:"region_id,omitempty"`
	Choices      []Choice  `json:"choices,omitempty"`

	// Type-specific payloads. Zero values mean "no effect".
	MarketModifier  float64 `json:"market_modifier,omitempty"`
	AffectedClass   string  `json:"affected_class,omitempty"`
	StabilityImpact int     `json:"stability_impact,omitempty"`
	CausesWar       bool    `json:"causes_war,omitempty"`
	ExposureImpact  float64 `json:"exposure_impact,omitempty"`
	AffectsDark     bool    `json:"affects_dark,omitempty"`
	IsBetrayal      bool    `json:"is_betrayal,omitempty"`
	IsDeath         bool    `json:"is_death,omitempty"`
}
