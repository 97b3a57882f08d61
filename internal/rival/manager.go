package rival

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
	"github.com/graveworks/lichfolio/internal/worldsim"
)

// noticeThreshold is the exposure level below which no rival stumbles
// onto the lich by accident.
const noticeThreshold = 40

// builtinRivals seeds the world with one immortal of each kind.
func builtinRivals() []*Rival {
	vexarion := New("vexarion", "Vexarion the Gilded", KindDragon)
	vexarion.SetPower(75)
	vexarion.SetGreed(90)
	vexarion.SetAggression(60)
	vexarion.SetCunning(40)

	morwenna := New("morwenna", "Countess Morwenna", KindVampire)
	morwenna.SetPower(55)
	morwenna.SetGreed(60)
	morwenna.SetAggression(40)
	morwenna.SetCunning(80)

	kazrek := New("kazrek", "Kazrek the Hollow", KindLich)
	kazrek.SetPower(65)
	kazrek.SetGreed(50)
	kazrek.SetAggression(55)
	kazrek.SetCunning(85)

	elurin := New("elurin", "Lord Elurin of the Thorn Court", KindFae)
	elurin.SetPower(50)
	elurin.SetGreed(70)
	elurin.SetAggression(30)
	elurin.SetCunning(75)

	malgrath := New("malgrath", "Malgrath the Bound", KindDemon)
	malgrath.SetPower(70)
	malgrath.SetGreed(45)
	malgrath.SetAggression(85)
	malgrath.SetCunning(35)

	return []*Rival{vexarion, morwenna, kazrek, elurin, malgrath}
}

// Manager holds every rival immortal and fans rival callbacks out to
// manager-level observers.
type Manager struct {
	rivals []*Rival
	byID   map[string]*Rival

	onStanceChanged []func(r *Rival, old, now Stance)
	onDiscovered    []func(r *Rival)
}

// NewManager creates a manager with no rivals.
func NewManager() *Manager {
	return &Manager{byID: make(map[string]*Rival)}
}

// Default creates a manager seeded with the built-in rivals.
func Default() *Manager {
	m := NewManager()
	for _, r := range builtinRivals() {
		m.Add(r)
	}
	return m
}

// Add registers a rival. Duplicate IDs are rejected.
func (m *Manager) Add(r *Rival) bool {
	if r == nil {
		return false
	}
	if _, exists := m.byID[r.ID()]; exists {
		slog.Warn("duplicate rival ignored", "rival", r.ID())
		return false
	}
	m.rivals = append(m.rivals, r)
	m.byID[r.ID()] = r
	r.OnStanceChanged(func(old, now Stance) {
		for _, fn := range m.onStanceChanged {
			fn(r, old, now)
		}
	})
	r.OnDiscovered(func() {
		for _, fn := range m.onDiscovered {
			fn(r)
		}
	})
	return true
}

// ByID returns the rival with the given ID, or nil.
func (m *Manager) ByID(id string) *Rival { return m.byID[id] }

// All returns every rival in registration order.
func (m *Manager) All() []*Rival {
	return append([]*Rival(nil), m.rivals...)
}

// Active returns the rivals still in play.
func (m *Manager) Active() []*Rival {
	var out []*Rival
	for _, r := range m.rivals {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

// Known returns the active rivals who have noticed the lich.
func (m *Manager) Known() []*Rival {
	var out []*Rival
	for _, r := range m.rivals {
		if r.IsActive() && r.IsKnown() {
			out = append(out, r)
		}
	}
	return out
}

// HostileCount counts active, known rivals with a hostile stance.
func (m *Manager) HostileCount() int {
	n := 0
	for _, r := range m.rivals {
		if r.IsActive() && r.IsKnown() && r.Stance() == StanceHostile {
			n++
		}
	}
	return n
}

// SetThreat updates every rival's view of how dangerous the lich is.
func (m *Manager) SetThreat(level int) {
	for _, r := range m.rivals {
		r.SetThreat(level)
	}
}

// TickYears runs the given number of yearly turns through every rival.
func (m *Manager) TickYears(years int, src entropy.Source) {
	for y := 0; y < years; y++ {
		for _, r := range m.rivals {
			r.TickYear(src)
		}
	}
}

// NoticePlayer lets rivals who have not yet found the lich do so when
// exposure runs high. The sharpest minds find it first.
func (m *Manager) NoticePlayer(exposure int, src entropy.Source) {
	if exposure <= noticeThreshold {
		return
	}
	for _, r := range m.rivals {
		if !r.IsActive() || r.IsKnown() {
			continue
		}
		if src.IntN(100) < r.Cunning()/2 {
			r.Discover()
		}
	}
}

// ReactToEvent forwards a world event to every rival.
func (m *Manager) ReactToEvent(ev worldsim.Event) {
	for _, r := range m.rivals {
		r.ReactToEvent(ev)
	}
}

// OnStanceChanged registers a callback fired when any rival's attitude
// shifts.
func (m *Manager) OnStanceChanged(fn func(r *Rival, old, now Stance)) {
	m.onStanceChanged = append(m.onStanceChanged, fn)
}

// OnDiscovered registers a callback fired when any rival notices the lich.
func (m *Manager) OnDiscovered(fn func(r *Rival)) {
	m.onDiscovered = append(m.onDiscovered, fn)
}

// Reset restores the built-in roster with fresh traits.
func (m *Manager) Reset() {
	m.rivals = nil
	m.byID = make(map[string]*Rival)
	for _, r := range builtinRivals() {
		m.Add(r)
	}
}
