package agent

import "log/slog"

// Operator is the behaviour shared by all agent variants. Both
// *Individual and *Family satisfy it through the embedded base.
type Operator interface {
	ID() string
	Name() string
	Type() Type
	Loyalty() int
	Competence() int
	IsAlive() bool
	HasAssignments() bool
	ExposureContribution() float64
	IncomeModifier() float64
	OnYearPassed()
}

// Manager indexes agents by id and by variant type.
type Manager struct {
	byID   map[string]Operator
	byType map[Type][]Operator
	order  []Operator
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	m := &Manager{}
	m.Reset()
	return m
}

// Add registers an agent. Adding a duplicate id is a no-op that returns
// the agent already registered under that id.
func (m *Manager) Add(a Operator) Operator {
	if a == nil {
		return nil
	}
	if existing, ok := m.byID[a.ID()]; ok {
		slog.Debug("duplicate agent id ignored", "agent", a.ID())
		return existing
	}
	m.byID[a.ID()] = a
	m.byType[a.Type()] = append(m.byType[a.Type()], a)
	m.order = append(m.order, a)
	return a
}

// Remove unregisters an agent, reporting whether it was present.
func (m *Manager) Remove(a Operator) bool {
	if a == nil {
		return false
	}
	registered, ok := m.byID[a.ID()]
	if !ok || registered != a {
		return false
	}
	delete(m.byID, a.ID())
	m.byType[a.Type()] = removeOperator(m.byType[a.Type()], a)
	m.order = removeOperator(m.order, a)
	return true
}

func removeOperator(s []Operator, a Operator) []Operator {
	for i, o := range s {
		if o == a {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// ByID looks up an agent, nil when absent.
func (m *Manager) ByID(id string) Operator {
	return m.byID[id]
}

// ByType returns agents of the given variant in registration order.
func (m *Manager) ByType(t Type) []Operator {
	return append([]Operator(nil), m.byType[t]...)
}

// All returns every agent in registration order.
func (m *Manager) All() []Operator {
	return append([]Operator(nil), m.order...)
}

// Available returns agents with no investment assignments.
func (m *Manager) Available() []Operator {
	var out []Operator
	for _, a := range m.order {
		if !a.HasAssignments() {
			out = append(out, a)
		}
	}
	return out
}

// Count returns the number of registered agents.
func (m *Manager) Count() int { return len(m.order) }

// AverageLoyalty is the mean loyalty across all agents, 0 when empty.
func (m *Manager) AverageLoyalty() float64 {
	if len(m.order) == 0 {
		return 0
	}
	var sum int
	for _, a := range m.order {
		sum += a.Loyalty()
	}
	return float64(sum) / float64(len(m.order))
}

// AverageCompetence is the mean competence across all agents, 0 when
// empty.
func (m *Manager) AverageCompetence() float64 {
	if len(m.order) == 0 {
		return 0
	}
	var sum int
	for _, a := range m.order {
		sum += a.Competence()
	}
	return float64(sum) / float64(len(m.order))
}

// TotalExposureContribution sums every agent's exposure leak.
func (m *Manager) TotalExposureContribution() float64 {
	var total float64
	for _, a := range m.order {
		total += a.ExposureContribution()
	}
	return total
}

// AdvanceYears steps every agent through n years of aging, loyalty
// decay, and succession. Agents who die are removed after each year,
// with any heir promoted into the roster in their place.
func (m *Manager) AdvanceYears(n int) {
	for i := 0; i < n; i++ {
		for _, a := range m.All() {
			a.OnYearPassed()
		}
		m.reapDead()
	}
}

func (m *Manager) reapDead() {
	for _, a := range m.All() {
		if a.IsAlive() {
			continue
		}
		m.Remove(a)
		if ind, ok := a.(*Individual); ok {
			if heir := ind.TakePromoted(); heir != nil {
				m.Add(heir)
				slog.Info("heir joined roster", "from", a.ID(), "heir", heir.ID())
			}
		}
	}
}

// Reset drops all agents.
func (m *Manager) Reset() {
	m.byID = make(map[string]Operator)
	m.byType = make(map[Type][]Operator)
	m.order = nil
}
