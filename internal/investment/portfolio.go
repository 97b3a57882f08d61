package investment

import "log/slog"

// defaultStartingGold is the hoard a fresh game begins with.
const defaultStartingGold = 1000.0

type (
	GoldChangedFunc       func(old, new float64)
	InvestmentAddedFunc   func(inv Investment)
	InvestmentRemovedFunc func(inv Investment)
)

// Portfolio owns the gold balance and the investment list.
type Portfolio struct {
	gold        float64
	investments []Investment // insertion order, unique by id

	onGoldChanged       []GoldChangedFunc
	onInvestmentAdded   []InvestmentAddedFunc
	onInvestmentRemoved []InvestmentRemovedFunc
}

// NewPortfolio creates a portfolio holding the default starting gold.
func NewPortfolio() *Portfolio {
	return &Portfolio{gold: defaultStartingGold}
}

func (p *Portfolio) Gold() float64 { return p.gold }

// SetGold floors at zero and notifies on change.
func (p *Portfolio) SetGold(amount float64) {
	if amount < 0 {
		amount = 0
	}
	if amount == p.gold {
		return
	}
	old := p.gold
	p.gold = amount
	for _, fn := range p.onGoldChanged {
		fn(old, amount)
	}
}

// AddGold credits the balance. Negative amounts are ignored.
func (p *Portfolio) AddGold(amount float64) {
	if amount <= 0 {
		return
	}
	p.SetGold(p.gold + amount)
}

// SubtractGold debits the balance, failing when it would go negative.
func (p *Portfolio) SubtractGold(amount float64) bool {
	if amount < 0 {
		return false
	}
	if !p.CanAfford(amount) {
		return false
	}
	p.SetGold(p.gold - amount)
	return true
}

// CanAfford reports whether the balance covers amount.
func (p *Portfolio) CanAfford(amount float64) bool {
	return p.gold >= amount
}

// Add appends an investment, rejecting nil and duplicate ids, and
// notifies observers exactly once.
func (p *Portfolio) Add(inv Investment) bool {
	if inv == nil || p.ByID(inv.ID()) != nil {
		return false
	}
	p.investments = append(p.investments, inv)
	slog.Debug("investment added", "investment", inv.ID(), "class", inv.AssetClass())
	for _, fn := range p.onInvestmentAdded {
		fn(inv)
	}
	return true
}

// Remove detaches an investment by identity, notifying on success.
func (p *Portfolio) Remove(inv Investment) bool {
	if inv == nil {
		return false
	}
	for i, have := range p.investments {
		if have == inv {
			p.investments = append(p.investments[:i], p.investments[i+1:]...)
			for _, fn := range p.onInvestmentRemoved {
				fn(inv)
			}
			return true
		}
	}
	return false
}

// ByID looks an investment up, nil when absent.
func (p *Portfolio) ByID(id string) Investment {
	for _, inv := range p.investments {
		if inv.ID() == id {
			return inv
		}
	}
	return nil
}

// Investments returns the holdings in insertion order. Callers must not
// mutate the returned slice.
func (p *Portfolio) Investments() []Investment { return p.investments }

// ByClass returns holdings of the given asset class in insertion order.
func (p *Portfolio) ByClass(class AssetClass) []Investment {
	var out []Investment
	for _, inv := range p.investments {
		if inv.AssetClass() == class {
			out = append(out, inv)
		}
	}
	return out
}

// Count returns the number of holdings.
func (p *Portfolio) Count() int { return len(p.investments) }

// TotalValue is gold on hand plus the sum of current values.
func (p *Portfolio) TotalValue() float64 {
	total := p.gold
	for _, inv := range p.investments {
		total += inv.CurrentValue()
	}
	return total
}

// InvestmentValue is the sum of current values, excluding gold.
func (p *Portfolio) InvestmentValue() float64 {
	total := 0.0
	for _, inv := range p.investments {
		total += inv.CurrentValue()
	}
	return total
}

// ApplySlumber realizes the effects of slumbering for the given years:
// gains are paid out as gold income, losses write the investment down.
// Returns the total income earned.
func (p *Portfolio) ApplySlumber(years int) float64 {
	if years <= 0 {
		return 0
	}
	income := 0.0
	for _, inv := range p.investments {
		inv.AddYearsHeld(years)
		projected := inv.CalculateReturns(years)
		gain := projected - inv.CurrentValue()
		if gain > 0 {
			income += gain
		} else if gain < 0 {
			inv.SetCurrentValue(projected)
		}
	}
	if income > 0 {
		p.AddGold(income)
	}
	slog.Debug("slumber applied to portfolio", "years", years, "income", income)
	return income
}

// ApplyEvent forwards a world event to every holding.
func (p *Portfolio) ApplyEvent(ev Event) {
	for _, inv := range p.investments {
		inv.ApplyEvent(ev)
	}
}

func (p *Portfolio) OnGoldChanged(fn GoldChangedFunc) {
	p.onGoldChanged = append(p.onGoldChanged, fn)
}

func (p *Portfolio) OnInvestmentAdded(fn InvestmentAddedFunc) {
	p.onInvestmentAdded = append(p.onInvestmentAdded, fn)
}

func (p *Portfolio) OnInvestmentRemoved(fn InvestmentRemovedFunc) {
	p.onInvestmentRemoved = append(p.onInvestmentRemoved, fn)
}

// Reset drops all holdings and restores the given starting gold,
// or the default when negative.
func (p *Portfolio) Reset(startingGold float64) {
	if startingGold < 0 {
		startingGold = defaultStartingGold
	}
	p.investments = nil
	p.gold = startingGold
}
