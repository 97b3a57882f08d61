package investment

import "log/slog"

// FinancialType is the instrument subtype.
type FinancialType uint8

const (
	CrownBond FinancialType = iota
	NobleDebt
	MerchantNote
	Insurance
	Usury
)

func (t FinancialType) String() string {
	switch t {
	case CrownBond:
		return "crown-bond"
	case NobleDebt:
		return "noble-debt"
	case MerchantNote:
		return "merchant-note"
	case Insurance:
		return "insurance"
	case Usury:
		return "usury"
	default:
		return "unknown"
	}
}

// DebtStatus tracks whether the issuer is still paying.
type DebtStatus uint8

const (
	Performing DebtStatus = iota
	Delinquent
	Default
)

func (s DebtStatus) String() string {
	switch s {
	case Performing:
		return "performing"
	case Delinquent:
		return "delinquent"
	case Default:
		return "default"
	default:
		return "unknown"
	}
}

// Per-type annual interest and recovery-on-default rates.
var financialRates = map[FinancialType]struct {
	returnRate float64
	recovery   float64
}{
	CrownBond:    {0.04, 0.50},
	NobleDebt:    {0.06, 0.30},
	MerchantNote: {0.07, 0.20},
	Insurance:    {0.05, 0.00},
	Usury:        {0.12, 0.10},
}

// Per-type base risk before debt-status scaling.
var financialRisk = map[FinancialType]float64{
	CrownBond:    0.8,
	NobleDebt:    1.0,
	MerchantNote: 1.2,
	Insurance:    1.0,
	Usury:        1.5,
}

// DebtStatusChangedFunc observes debt status transitions.
type DebtStatusChangedFunc func(f *Financial, old, new DebtStatus)

// Financial is a debt instrument: bonds, notes, insurance contracts,
// and outright usury.
type Financial struct {
	Base

	financialType FinancialType
	debtStatus    DebtStatus
	interestRate  float64 // 0.0-1.0
	faceValue     float64
	maturityYear  int
	issuerID      string

	onDebtStatusChanged []DebtStatusChangedFunc
}

// NewFinancial creates an instrument of the given type. The interest
// rate defaults to the type's standard rate and the face value to the
// purchase price.
func NewFinancial(id, name string, financialType FinancialType, purchasePrice float64) *Financial {
	f := &Financial{
		Base:          NewBase(id, name, ClassFinancial, RiskMedium, purchasePrice),
		financialType: financialType,
		debtStatus:    Performing,
		interestRate:  financialRates[financialType].returnRate,
		faceValue:     purchasePrice,
	}
	return f
}

func (f *Financial) FinancialType() FinancialType { return f.financialType }
func (f *Financial) DebtStatus() DebtStatus       { return f.debtStatus }
func (f *Financial) InterestRate() float64        { return f.interestRate }
func (f *Financial) FaceValue() float64           { return f.faceValue }
func (f *Financial) MaturityYear() int            { return f.maturityYear }
func (f *Financial) IssuerID() string             { return f.issuerID }

// SetInterestRate clamps to [0,1].
func (f *Financial) SetInterestRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	f.interestRate = rate
}

// SetFaceValue floors at zero.
func (f *Financial) SetFaceValue(v float64) {
	if v < 0 {
		v = 0
	}
	f.faceValue = v
}

func (f *Financial) SetMaturityYear(year int) { f.maturityYear = year }
func (f *Financial) SetIssuerID(id string)    { f.issuerID = id }

// SetDebtStatus transitions the instrument. Entering Default writes the
// current value down to the recovery fraction of face value. Observers
// fire after the write-down.
func (f *Financial) SetDebtStatus(status DebtStatus) {
	if status == f.debtStatus {
		return
	}
	old := f.debtStatus
	f.debtStatus = status

	if status == Default {
		recovered := f.faceValue * f.DefaultRecoveryRate()
		f.SetCurrentValue(recovered)
		slog.Info("instrument defaulted",
			"investment", f.ID(), "type", f.financialType, "recovered", recovered)
	}

	for _, fn := range f.onDebtStatusChanged {
		fn(f, old, status)
	}
}

// OnDebtStatusChanged registers a debt status observer.
func (f *Financial) OnDebtStatusChanged(fn DebtStatusChangedFunc) {
	f.onDebtStatusChanged = append(f.onDebtStatusChanged, fn)
}

// DefaultRecoveryRate is the fraction of face value recovered when the
// issuer defaults.
func (f *Financial) DefaultRecoveryRate() float64 {
	return financialRates[f.financialType].recovery
}

// IsDefaulted reports whether the issuer has defaulted.
func (f *Financial) IsDefaulted() bool { return f.debtStatus == Default }

// InterestPayment is the annual coupon: face value times the rate.
func (f *Financial) InterestPayment() float64 {
	return f.faceValue * f.BaseReturnRate()
}

// CalculateReturns projects the realized value after the given years:
// recovery value when defaulted, otherwise face value plus simple
// interest, halved per year while delinquent.
func (f *Financial) CalculateReturns(years int) float64 {
	if f.debtStatus == Default {
		return f.faceValue * f.DefaultRecoveryRate()
	}

	result := f.faceValue
	payment := f.InterestPayment()
	if f.debtStatus == Delinquent {
		payment *= 0.5
	}
	for i := 0; i < years; i++ {
		result += payment
	}
	return result
}

// ApplyEvent degrades the issuer's standing under severe economic
// shocks.
func (f *Financial) ApplyEvent(ev Event) {
	slog.Debug("financial event applied",
		"investment", f.ID(), "event", ev.ID, "status", f.debtStatus)
}

// CanSell is always true: even defaulted paper trades at recovery value.
func (f *Financial) CanSell() bool { return true }

// RiskModifier scales the type's base risk by debt status: delinquency
// adds half again, default doubles.
func (f *Financial) RiskModifier() float64 {
	risk := financialRisk[f.financialType]
	switch f.debtStatus {
	case Delinquent:
		risk *= 1.5
	case Default:
		risk *= 2.0
	}
	return risk
}

// BaseReturnRate is the instrument's annual rate when one was negotiated,
// else the type's standard rate.
func (f *Financial) BaseReturnRate() float64 {
	if f.interestRate > 0 {
		return f.interestRate
	}
	return financialRates[f.financialType].returnRate
}
