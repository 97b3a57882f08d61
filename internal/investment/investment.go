// Package investment models the holdings a patient schemer accumulates:
// the polymorphic investment contract, its variants, and the portfolio
// that owns them.
package investment

// AssetClass groups investments for synergy rules and reporting.
type AssetClass uint8

const (
	ClassProperty AssetClass = iota
	ClassTrade
	ClassFinancial
	ClassMagical
	ClassPolitical
	ClassDark
)

func (c AssetClass) String() string {
	switch c {
	case ClassProperty:
		return "property"
	case ClassTrade:
		return "trade"
	case ClassFinancial:
		return "financial"
	case ClassMagical:
		return "magical"
	case ClassPolitical:
		return "political"
	case ClassDark:
		return "dark"
	default:
		return "unknown"
	}
}

// RiskLevel is a coarse risk band.
type RiskLevel uint8

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskExtreme
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Investment is the contract every holding satisfies. Variants embed
// Base and override the valuation methods.
type Investment interface {
	ID() string
	Name() string
	AssetClass() AssetClass
	RiskLevel() RiskLevel
	PurchasePrice() float64
	CurrentValue() float64
	SetCurrentValue(v float64)
	OwnerAgentID() string
	SetOwnerAgentID(id string)
	YearsHeld() int
	AddYearsHeld(years int)

	// CalculateReturns projects the value realized after holding for
	// the given number of years.
	CalculateReturns(years int) float64
	// ApplyEvent adjusts state in response to a world event.
	ApplyEvent(ev Event)
	CanSell() bool
	RiskModifier() float64
	BaseReturnRate() float64
}

// Event is the slice of a world event that investments react to. Kept
// local to avoid a dependency on the simulation package.
type Event struct {
	ID       string
	Type     string
	Severity int
}

// Base carries the state shared by all investment variants.
type Base struct {
	id            string
	name          string
	class         AssetClass
	risk          RiskLevel
	purchasePrice float64
	currentValue  float64
	ownerAgentID  string
	yearsHeld     int
}

// NewBase creates the shared record. Current value starts at the
// purchase price.
func NewBase(id, name string, class AssetClass, risk RiskLevel, purchasePrice float64) Base {
	return Base{
		id:            id,
		name:          name,
		class:         class,
		risk:          risk,
		purchasePrice: purchasePrice,
		currentValue:  purchasePrice,
	}
}

func (b *Base) ID() string             { return b.id }
func (b *Base) Name() string           { return b.name }
func (b *Base) AssetClass() AssetClass { return b.class }
func (b *Base) RiskLevel() RiskLevel   { return b.risk }
func (b *Base) PurchasePrice() float64 { return b.purchasePrice }
func (b *Base) CurrentValue() float64  { return b.currentValue }

// SetCurrentValue floors at zero.
func (b *Base) SetCurrentValue(v float64) {
	if v < 0 {
		v = 0
	}
	b.currentValue = v
}

func (b *Base) OwnerAgentID() string      { return b.ownerAgentID }
func (b *Base) SetOwnerAgentID(id string) { b.ownerAgentID = id }

func (b *Base) YearsHeld() int { return b.yearsHeld }

// AddYearsHeld accumulates holding duration; non-positive years are
// ignored.
func (b *Base) AddYearsHeld(years int) {
	if years > 0 {
		b.yearsHeld += years
	}
}

// SetYearsHeld is used by save restoration.
func (b *Base) SetYearsHeld(years int) {
	if years < 0 {
		years = 0
	}
	b.yearsHeld = years
}

func (b *Base) SetRiskLevel(r RiskLevel) { b.risk = r }
