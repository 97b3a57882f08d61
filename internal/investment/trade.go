package investment

import "log/slog"

// TradeType is the commerce subtype.
type TradeType uint8

const (
	Route TradeType = iota
	Commodity
	Guild
	Shipping
	Caravan
)

func (t TradeType) String() string {
	switch t {
	case Route:
		return "route"
	case Commodity:
		return "commodity"
	case Guild:
		return "guild"
	case Shipping:
		return "shipping"
	case Caravan:
		return "caravan"
	default:
		return "unknown"
	}
}

// RouteStatus tracks whether goods are actually moving.
type RouteStatus uint8

const (
	RouteOpen RouteStatus = iota
	RouteDisrupted
	RouteClosed
)

func (s RouteStatus) String() string {
	switch s {
	case RouteOpen:
		return "open"
	case RouteDisrupted:
		return "disrupted"
	case RouteClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var tradeReturns = map[TradeType]float64{
	Route:     0.06,
	Commodity: 0.08,
	Guild:     0.05,
	Shipping:  0.07,
	Caravan:   0.065,
}

// Trade is commerce: routes, commodities, guild stakes. Higher returns
// than property, but sensitive to route status and market swings.
type Trade struct {
	Base

	tradeType      TradeType
	routeStatus    RouteStatus
	marketModifier float64
}

// NewTrade creates a commerce holding with an open route and a neutral
// market.
func NewTrade(id, name string, tradeType TradeType, purchasePrice float64) *Trade {
	return &Trade{
		Base:           NewBase(id, name, ClassTrade, RiskMedium, purchasePrice),
		tradeType:      tradeType,
		routeStatus:    RouteOpen,
		marketModifier: 1.0,
	}
}

func (tr *Trade) TradeType() TradeType      { return tr.tradeType }
func (tr *Trade) RouteStatus() RouteStatus  { return tr.routeStatus }
func (tr *Trade) MarketModifier() float64   { return tr.marketModifier }

func (tr *Trade) SetRouteStatus(s RouteStatus) { tr.routeStatus = s }

// SetMarketModifier floors at zero.
func (tr *Trade) SetMarketModifier(m float64) {
	if m < 0 {
		m = 0
	}
	tr.marketModifier = m
}

// CalculateReturns compounds the current value at the type rate scaled
// by route status (disrupted halves, closed zeroes) and the market.
func (tr *Trade) CalculateReturns(years int) float64 {
	status := 1.0
	switch tr.routeStatus {
	case RouteDisrupted:
		status = 0.5
	case RouteClosed:
		status = 0.0
	}
	rate := tr.BaseReturnRate() * status * tr.marketModifier

	result := tr.CurrentValue()
	for i := 0; i < years; i++ {
		result *= 1.0 + rate
	}
	return result
}

func (tr *Trade) ApplyEvent(ev Event) {
	slog.Debug("trade event applied",
		"investment", tr.ID(), "event", ev.ID, "route", tr.routeStatus)
}

// CanSell is always true; closed routes just sell poorly.
func (tr *Trade) CanSell() bool { return true }

// RiskModifier rises with route trouble and market volatility.
func (tr *Trade) RiskModifier() float64 {
	risk := 1.0
	switch tr.routeStatus {
	case RouteDisrupted:
		risk = 1.5
	case RouteClosed:
		risk = 2.0
	}
	if tr.marketModifier > 1.2 || tr.marketModifier < 0.8 {
		risk *= 1.25
	}
	return risk
}

func (tr *Trade) BaseReturnRate() float64 {
	return tradeReturns[tr.tradeType]
}
