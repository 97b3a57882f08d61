package worldsim

// Kingdom is a mortal polity: a target for events and a counterparty
// for debt.
type Kingdom struct {
	id   string
	name string

	stability       int // 0-100
	treasury        float64
	debtOutstanding float64

	relations map[string]int // kingdom id -> -100..100
}

// NewKingdom creates a kingdom at middling stability with an empty
// treasury.
func NewKingdom(id, name string) *Kingdom {
	return &Kingdom{
		id:        id,
		name:      name,
		stability: 50,
		relations: make(map[string]int),
	}
}

func (k *Kingdom) ID() string     { return k.id }
func (k *Kingdom) Name() string   { return k.name }
func (k *Kingdom) Stability() int { return k.stability }

// SetStability clamps to [0,100].
func (k *Kingdom) SetStability(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	k.stability = v
}

// AdjustStability shifts stability by delta with clamping.
func (k *Kingdom) AdjustStability(delta int) {
	k.SetStability(k.stability + delta)
}

func (k *Kingdom) Treasury() float64 { return k.treasury }

// SetTreasury floors at zero.
func (k *Kingdom) SetTreasury(v float64) {
	if v < 0 {
		v = 0
	}
	k.treasury = v
}

func (k *Kingdom) DebtOutstanding() float64 { return k.debtOutstanding }

// SetDebtOutstanding floors at zero.
func (k *Kingdom) SetDebtOutstanding(v float64) {
	if v < 0 {
		v = 0
	}
	k.debtOutstanding = v
}

// Relation returns the standing toward another kingdom, 0 when unknown.
func (k *Kingdom) Relation(otherID string) int {
	return k.relations[otherID]
}

// SetRelation clamps to [-100,100].
func (k *Kingdom) SetRelation(otherID string, v int) {
	if v < -100 {
		v = -100
	}
	if v > 100 {
		v = 100
	}
	k.relations[otherID] = v
}

// IsUnstable reports whether the kingdom is ripe for a takeover.
func (k *Kingdom) IsUnstable() bool { return k.stability < 25 }
