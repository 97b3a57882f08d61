package investment

import (
	"fmt"
	"log/slog"
)

// Snapshot is the serializable form of a single investment. Kind selects
// the concrete type; kind-specific fields are zero for other kinds.
type Snapshot struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	Subtype       uint8   `json:"subtype"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentValue  float64 `json:"current_value"`
	OwnerAgentID  string  `json:"owner_agent_id,omitempty"`
	YearsHeld     int     `json:"years_held,omitempty"`

	InterestRate float64 `json:"interest_rate,omitempty"`
	FaceValue    float64 `json:"face_value,omitempty"`
	DebtStatus   uint8   `json:"debt_status,omitempty"`
	MaturityYear int     `json:"maturity_year,omitempty"`
	IssuerID     string  `json:"issuer_id,omitempty"`

	Improvements int `json:"improvements,omitempty"`

	RouteStatus    uint8   `json:"route_status,omitempty"`
	MarketModifier float64 `json:"market_modifier,omitempty"`
}

const (
	kindFinancial = "financial"
	kindProperty  = "property"
	kindTrade     = "trade"
)

// SnapshotInvestment captures an investment's state. Unknown concrete
// types return an error.
func SnapshotInvestment(inv Investment) (Snapshot, error) {
	snap := Snapshot{
		ID:            inv.ID(),
		Name:          inv.Name(),
		PurchasePrice: inv.PurchasePrice(),
		CurrentValue:  inv.CurrentValue(),
		OwnerAgentID:  inv.OwnerAgentID(),
		YearsHeld:     inv.YearsHeld(),
	}
	switch v := inv.(type) {
	case *Financial:
		snap.Kind = kindFinancial
		snap.Subtype = uint8(v.FinancialType())
		snap.InterestRate = v.InterestRate()
		snap.FaceValue = v.FaceValue()
		snap.DebtStatus = uint8(v.DebtStatus())
		snap.MaturityYear = v.MaturityYear()
		snap.IssuerID = v.IssuerID()
	case *Property:
		snap.Kind = kindProperty
		snap.Subtype = uint8(v.PropertyType())
		snap.Improvements = v.Improvements()
	case *Trade:
		snap.Kind = kindTrade
		snap.Subtype = uint8(v.TradeType())
		snap.RouteStatus = uint8(v.RouteStatus())
		snap.MarketModifier = v.MarketModifier()
	default:
		return Snapshot{}, fmt.Errorf("unsupported investment type %T", inv)
	}
	return snap, nil
}

// RestoreInvestment reconstructs an investment from its snapshot.
func RestoreInvestment(snap Snapshot) (Investment, error) {
	switch snap.Kind {
	case kindFinancial:
		f := NewFinancial(snap.ID, snap.Name, FinancialType(snap.Subtype), snap.PurchasePrice)
		f.SetInterestRate(snap.InterestRate)
		f.SetFaceValue(snap.FaceValue)
		f.SetMaturityYear(snap.MaturityYear)
		f.SetIssuerID(snap.IssuerID)
		f.SetDebtStatus(DebtStatus(snap.DebtStatus))
		f.SetCurrentValue(snap.CurrentValue)
		f.SetOwnerAgentID(snap.OwnerAgentID)
		f.SetYearsHeld(snap.YearsHeld)
		return f, nil
	case kindProperty:
		p := NewProperty(snap.ID, snap.Name, PropertyType(snap.Subtype), snap.PurchasePrice)
		for i := 0; i < snap.Improvements; i++ {
			p.AddImprovement()
		}
		p.SetCurrentValue(snap.CurrentValue)
		p.SetOwnerAgentID(snap.OwnerAgentID)
		p.SetYearsHeld(snap.YearsHeld)
		return p, nil
	case kindTrade:
		t := NewTrade(snap.ID, snap.Name, TradeType(snap.Subtype), snap.PurchasePrice)
		t.SetRouteStatus(RouteStatus(snap.RouteStatus))
		t.SetMarketModifier(snap.MarketModifier)
		t.SetCurrentValue(snap.CurrentValue)
		t.SetOwnerAgentID(snap.OwnerAgentID)
		t.SetYearsHeld(snap.YearsHeld)
		return t, nil
	default:
		return nil, fmt.Errorf("unknown investment kind %q", snap.Kind)
	}
}

// PortfolioSnapshot is the serializable form of a whole portfolio.
type PortfolioSnapshot struct {
	Gold        float64    `json:"gold"`
	Investments []Snapshot `json:"investments"`
}

// Snapshot captures the portfolio state. Investments that cannot be
// snapshotted are skipped with a warning.
func (p *Portfolio) Snapshot() PortfolioSnapshot {
	snap := PortfolioSnapshot{Gold: p.gold}
	for _, inv := range p.investments {
		is, err := SnapshotInvestment(inv)
		if err != nil {
			slog.Warn("skipping unsnapshotable investment",
				"investment", inv.ID(), "error", err)
			continue
		}
		snap.Investments = append(snap.Investments, is)
	}
	return snap
}

// Restore replaces the portfolio contents with a snapshot.
func (p *Portfolio) Restore(snap PortfolioSnapshot) error {
	restored := make([]Investment, 0, len(snap.Investments))
	for _, is := range snap.Investments {
		inv, err := RestoreInvestment(is)
		if err != nil {
			return err
		}
		restored = append(restored, inv)
	}
	p.gold = snap.Gold
	p.investments = restored
	return nil
}
