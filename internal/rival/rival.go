// Package rival models the other immortals: dragons, elder vampires,
// rival liches, fae lords, and bound demons. They grow in power across
// the centuries, claim territory, and shift attitude toward the lich as
// its exposure rises.
package rival

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
	"github.com/graveworks/lichfolio/internal/worldsim"
)

// Kind is the species of immortal.
type Kind uint8

const (
	KindDragon Kind = iota
	KindVampire
	KindLich
	KindFae
	KindDemon
)

func (k Kind) String() string {
	switch k {
	case KindDragon:
		return "dragon"
	case KindVampire:
		return "vampire"
	case KindLich:
		return "lich"
	case KindFae:
		return "fae"
	case KindDemon:
		return "demon"
	default:
		return "unknown"
	}
}

// Stance is a rival's attitude toward the lich.
type Stance uint8

const (
	StanceUnknown Stance = iota
	StanceWary
	StanceNeutral
	StanceFriendly
	StanceHostile
	StanceAllied
)

func (s Stance) String() string {
	switch s {
	case StanceUnknown:
		return "unknown"
	case StanceWary:
		return "wary"
	case StanceNeutral:
		return "neutral"
	case StanceFriendly:
		return "friendly"
	case StanceHostile:
		return "hostile"
	case StanceAllied:
		return "allied"
	default:
		return "unknown"
	}
}

const defaultTrait = 50

// Rival is one immortal competitor. Traits run 0-100.
type Rival struct {
	id   string
	name string
	kind Kind

	stance     Stance
	power      int
	aggression int
	greed      int
	cunning    int

	active bool
	known  bool // whether the rival has noticed the lich

	threat      int // perceived threat the lich poses
	territories []string

	onStanceChanged []func(old, now Stance)
	onDiscovered    []func()
	onDestroyed     []func()
}

// New creates an active rival with average traits, unaware of the lich.
func New(id, name string, kind Kind) *Rival {
	return &Rival{
		id:         id,
		name:       name,
		kind:       kind,
		stance:     StanceUnknown,
		power:      defaultTrait,
		aggression: defaultTrait,
		greed:      defaultTrait,
		cunning:    defaultTrait,
		active:     true,
	}
}

func (r *Rival) ID() string      { return r.id }
func (r *Rival) Name() string    { return r.name }
func (r *Rival) Kind() Kind      { return r.kind }
func (r *Rival) Stance() Stance  { return r.stance }
func (r *Rival) Power() int      { return r.power }
func (r *Rival) Aggression() int { return r.aggression }
func (r *Rival) Greed() int      { return r.greed }
func (r *Rival) Cunning() int    { return r.cunning }
func (r *Rival) IsActive() bool  { return r.active }
func (r *Rival) IsKnown() bool   { return r.known }
func (r *Rival) Threat() int     { return r.threat }

func (r *Rival) SetPower(v int)      { r.power = clampTrait(v) }
func (r *Rival) SetAggression(v int) { r.aggression = clampTrait(v) }
func (r *Rival) SetGreed(v int)      { r.greed = clampTrait(v) }
func (r *Rival) SetCunning(v int)    { r.cunning = clampTrait(v) }
func (r *Rival) SetThreat(v int) {
	if v < 0 {
		v = 0
	}
	r.threat = v
}

func (r *Rival) SetStance(s Stance) {
	if r.stance == s {
		return
	}
	old := r.stance
	r.stance = s
	for _, fn := range r.onStanceChanged {
		fn(old, s)
	}
}

// Territories returns the held region IDs.
func (r *Rival) Territories() []string {
	return append([]string(nil), r.territories...)
}

func (r *Rival) HasTerritory(regionID string) bool {
	for _, id := range r.territories {
		if id == regionID {
			return true
		}
	}
	return false
}

func (r *Rival) AddTerritory(regionID string) {
	if r.HasTerritory(regionID) {
		return
	}
	r.territories = append(r.territories, regionID)
}

func (r *Rival) RemoveTerritory(regionID string) bool {
	for i, id := range r.territories {
		if id == regionID {
			r.territories = append(r.territories[:i], r.territories[i+1:]...)
			return true
		}
	}
	return false
}

// TickYear runs one year of rival behavior: stance drift when the lich
// seems threatening, and a small power fluctuation. Inactive rivals do
// nothing.
func (r *Rival) TickYear(src entropy.Source) {
	if !r.active {
		return
	}
	if r.cunning > 50 && r.threat > 30 {
		r.evaluateStance()
	}
	r.power = clampTrait(r.power + entropy.IntRangeFrom(src, -2, 3))
}

// WantsExpansion reports whether the rival tries to claim territory
// this year. Driven by greed and current power.
func (r *Rival) WantsExpansion(src entropy.Source) bool {
	if !r.active {
		return false
	}
	desire := (r.greed + r.power) / 2
	return src.IntN(100) < desire
}

// evaluateStance recomputes attitude from aggression, perceived threat,
// and temperament. An alliance never forms by drift.
func (r *Rival) evaluateStance() {
	score := r.aggression + r.threat/2
	if r.cunning > 60 {
		score -= 20
	}
	if r.greed > 70 {
		if r.threat > 50 {
			score += 10
		} else {
			score -= 10
		}
	}

	switch {
	case score > 80:
		r.SetStance(StanceHostile)
	case score > 60:
		r.SetStance(StanceWary)
	case score > 40:
		r.SetStance(StanceNeutral)
	case score > 20:
		r.SetStance(StanceFriendly)
	}
}

// ReactToEvent shifts traits after a world event. Each kind answers to
// different omens.
func (r *Rival) ReactToEvent(ev worldsim.Event) {
	if !r.active {
		return
	}
	switch r.kind {
	case KindDragon:
		// Dragons are territorial; great upheavals concern them.
		if ev.Type == worldsim.EventPolitical && ev.Severity >= worldsim.SeverityMajor {
			r.aggression = clampTrait(r.aggression + 10)
		}
	case KindVampire:
		// Vampires thrive in chaos.
		if ev.Type == worldsim.EventPolitical && ev.Severity >= worldsim.SeverityModerate {
			r.power = clampTrait(r.power + 5)
		}
	case KindLich:
		if ev.Type == worldsim.EventMagical {
			r.cunning = clampTrait(r.cunning + 5)
		}
	case KindFae:
		if ev.Type == worldsim.EventMagical && ev.Severity >= worldsim.SeverityMajor {
			r.greed = clampTrait(r.greed + 10)
		}
	case KindDemon:
		// Demons are opportunists.
		if ev.Severity >= worldsim.SeverityCatastrophic {
			r.aggression = clampTrait(r.aggression + 15)
		}
	}
}

// Discover marks the rival as having noticed the lich. Idempotent.
func (r *Rival) Discover() {
	if r.known {
		return
	}
	r.known = true
	slog.Info("rival has taken notice", "rival", r.id)
	for _, fn := range r.onDiscovered {
		fn()
	}
}

// Destroy permanently removes the rival from play. Idempotent.
func (r *Rival) Destroy() {
	if !r.active {
		return
	}
	r.active = false
	slog.Info("rival destroyed", "rival", r.id)
	for _, fn := range r.onDestroyed {
		fn()
	}
}

// FormAlliance binds the rival to the lich. Only an explicit pact
// reaches this stance.
func (r *Rival) FormAlliance() {
	r.SetStance(StanceAllied)
}

// DeclareConflict turns the rival openly hostile.
func (r *Rival) DeclareConflict() {
	r.SetStance(StanceHostile)
}

// OnStanceChanged registers a callback fired on attitude shifts.
func (r *Rival) OnStanceChanged(fn func(old, now Stance)) {
	r.onStanceChanged = append(r.onStanceChanged, fn)
}

// OnDiscovered registers a callback fired when the rival notices the lich.
func (r *Rival) OnDiscovered(fn func()) {
	r.onDiscovered = append(r.onDiscovered, fn)
}

// OnDestroyed registers a callback fired when the rival is destroyed.
func (r *Rival) OnDestroyed(fn func()) {
	r.onDestroyed = append(r.onDestroyed, fn)
}

func clampTrait(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
