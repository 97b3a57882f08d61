package megaproject

import "log/slog"

// builtinProjects defines the great works available to every run.
func builtinProjects() []*Project {
	vault := NewProject("undying-vault", "The Undying Vault")
	vault.SetDescription("A treasury carved beneath a mountain, beyond any crown's reach.")
	vault.SetCostPerYear(50)
	vault.SetDiscoveryRisk(3)
	vault.AddPhase(Phase{Name: "Excavation", Years: 40})
	vault.AddPhase(Phase{Name: "Warding", Years: 60, Effect: EffectSeizureImmunity})
	vault.AddPhase(Phase{Name: "Consecration", Years: 50, Effect: EffectIncomeBonus, Value: 0.05})
	vault.SetUnlockLevel(2)

	leylines := NewProject("leyline-network", "Leyline Network")
	leylines.SetDescription("Hidden roads of power letting servants cross the realm in a heartbeat.")
	leylines.SetCostPerYear(80)
	leylines.SetDiscoveryRisk(5)
	leylines.AddPhase(Phase{Name: "Survey", Years: 30})
	leylines.AddPhase(Phase{Name: "Attunement", Years: 80, Effect: EffectAgentTravel})
	leylines.AddPhase(Phase{Name: "Binding", Years: 90, Effect: EffectIncomeBonus, Value: 0.08})
	leylines.SetUnlockLevel(4)

	court := NewProject("shadow-court", "The Shadow Court")
	court.SetDescription("A parallel government of debtors and thralls inside every palace.")
	court.SetCostPerYear(120)
	court.SetDiscoveryRisk(8)
	court.AddPhase(Phase{Name: "Infiltration", Years: 50, Effect: EffectIncomeBonus, Value: 0.03})
	court.AddPhase(Phase{Name: "Leverage", Years: 100, Effect: EffectIncomeBonus, Value: 0.07})
	court.AddPhase(Phase{Name: "Dominion", Years: 150, Effect: EffectSeizureImmunity})
	court.SetUnlockLevel(6)

	return []*Project{vault, leylines, court}
}

// Manager holds every great work and fans project callbacks out to
// manager-level observers.
type Manager struct {
	projects []*Project
	byID     map[string]*Project

	onPhaseCompleted []func(project *Project, phaseName string)
	onDiscovered     []func(project *Project)
}

// NewManager creates a manager empty of projects.
func NewManager() *Manager {
	return &Manager{byID: make(map[string]*Project)}
}

// Default creates a manager preloaded with the built-in great works.
func Default() *Manager {
	m := NewManager()
	for _, p := range builtinProjects() {
		m.Add(p)
	}
	return m
}

// Add registers a project. Duplicate IDs are rejected.
func (m *Manager) Add(p *Project) bool {
	if p == nil {
		return false
	}
	if _, exists := m.byID[p.ID()]; exists {
		slog.Warn("duplicate great work ignored", "project", p.ID())
		return false
	}
	m.projects = append(m.projects, p)
	m.byID[p.ID()] = p
	p.OnPhaseCompleted(func(phaseName string) {
		for _, fn := range m.onPhaseCompleted {
			fn(p, phaseName)
		}
	})
	p.OnStateChanged(func(_, now State) {
		if now == StateDiscovered {
			for _, fn := range m.onDiscovered {
				fn(p)
			}
		}
	})
	return true
}

// ByID returns the project with the given ID, or nil.
func (m *Manager) ByID(id string) *Project { return m.byID[id] }

// All returns every project in registration order.
func (m *Manager) All() []*Project {
	return append([]*Project(nil), m.projects...)
}

// Active returns the projects currently under construction.
func (m *Manager) Active() []*Project {
	var out []*Project
	for _, p := range m.projects {
		if p.State() == StateActive {
			out = append(out, p)
		}
	}
	return out
}

// UnlockEligible frees every locked project the given phylactery level
// now satisfies.
func (m *Manager) UnlockEligible(phylacteryLevel int) {
	for _, p := range m.projects {
		p.Unlock(phylacteryLevel)
	}
}

// PropertyIncomeBonus sums the income bonus across all projects.
func (m *Manager) PropertyIncomeBonus() float64 {
	total := 0.0
	for _, p := range m.projects {
		total += p.PropertyIncomeBonus()
	}
	return total
}

// HasAgentTravel reports whether any project grants unseen travel.
func (m *Manager) HasAgentTravel() bool {
	for _, p := range m.projects {
		if p.HasAgentTravel() {
			return true
		}
	}
	return false
}

// HasSeizureImmunity reports whether any project shields holdings.
func (m *Manager) HasSeizureImmunity() bool {
	for _, p := range m.projects {
		if p.HasSeizureImmunity() {
			return true
		}
	}
	return false
}

// OnPhaseCompleted registers a callback fired when any project's phase
// finishes.
func (m *Manager) OnPhaseCompleted(fn func(project *Project, phaseName string)) {
	m.onPhaseCompleted = append(m.onPhaseCompleted, fn)
}

// OnDiscovered registers a callback fired when any project is noticed.
func (m *Manager) OnDiscovered(fn func(project *Project)) {
	m.onDiscovered = append(m.onDiscovered, fn)
}

// Reset wipes progress on every project, keeping their definitions.
func (m *Manager) Reset() {
	for _, p := range m.projects {
		p.Reset()
	}
}
