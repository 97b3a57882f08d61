package investment

import "log/slog"

// PropertyType is the land-holding subtype.
type PropertyType uint8

const (
	Agricultural PropertyType = iota
	Urban
	Mining
	Timber
	Coastal
)

func (t PropertyType) String() string {
	switch t {
	case Agricultural:
		return "agricultural"
	case Urban:
		return "urban"
	case Mining:
		return "mining"
	case Timber:
		return "timber"
	case Coastal:
		return "coastal"
	default:
		return "unknown"
	}
}

var propertyReturns = map[PropertyType]float64{
	Agricultural: 0.03,
	Urban:        0.04,
	Mining:       0.05,
	Timber:       0.035,
	Coastal:      0.045,
}

// maxImprovements caps how far a holding can be developed.
const maxImprovements = 5

// Property is real estate: steady compounding growth, improvable, and
// more stable than other classes.
type Property struct {
	Base

	propertyType   PropertyType
	improvements   int
	stabilityBonus float64
}

// NewProperty creates a land holding. Properties start 20% more stable
// than average.
func NewProperty(id, name string, propertyType PropertyType, purchasePrice float64) *Property {
	return &Property{
		Base:           NewBase(id, name, ClassProperty, RiskLow, purchasePrice),
		propertyType:   propertyType,
		stabilityBonus: 1.2,
	}
}

func (p *Property) PropertyType() PropertyType { return p.propertyType }
func (p *Property) Improvements() int          { return p.improvements }
func (p *Property) StabilityBonus() float64    { return p.stabilityBonus }

// AddImprovement develops the holding, reporting whether the cap
// allowed it.
func (p *Property) AddImprovement() bool {
	if p.improvements >= maxImprovements {
		return false
	}
	p.improvements++
	return true
}

// CalculateReturns compounds the current value at the type rate plus
// 0.5% per improvement.
func (p *Property) CalculateReturns(years int) float64 {
	rate := p.BaseReturnRate() + float64(p.improvements)*0.005
	result := p.CurrentValue()
	for i := 0; i < years; i++ {
		result *= 1.0 + rate
	}
	return result
}

func (p *Property) ApplyEvent(ev Event) {
	slog.Debug("property event applied", "investment", p.ID(), "event", ev.ID)
}

func (p *Property) CanSell() bool { return true }

// RiskModifier is inverse to stability.
func (p *Property) RiskModifier() float64 {
	return 1.0 / p.stabilityBonus
}

func (p *Property) BaseReturnRate() float64 {
	return propertyReturns[p.propertyType]
}
