package megaproject

import "log/slog"

// Snapshot is the serializable progress of one project. Definitions
// (phases, costs, risks) live in code; only progress is saved.
type Snapshot struct {
	ID                  string `json:"id"`
	State               State  `json:"state"`
	YearsInvested       int    `json:"years_invested"`
	CurrentPhase        int    `json:"current_phase"`
	YearsInCurrentPhase int    `json:"years_in_current_phase"`
}

// Snapshot captures the project's progress.
func (p *Project) Snapshot() Snapshot {
	return Snapshot{
		ID:                  p.id,
		State:               p.state,
		YearsInvested:       p.yearsInvested,
		CurrentPhase:        p.currentPhase,
		YearsInCurrentPhase: p.yearsInCurrentPhase,
	}
}

// Restore applies saved progress and rebuilds cached effects. State
// changes do not fire observers during restore.
func (p *Project) Restore(snap Snapshot) {
	p.state = snap.State
	p.yearsInvested = snap.YearsInvested
	p.currentPhase = snap.CurrentPhase
	p.yearsInCurrentPhase = snap.YearsInCurrentPhase
	p.updateEffects()
}

// Snapshot captures progress for every project.
func (m *Manager) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p.Snapshot())
	}
	return out
}

// Restore applies saved progress by project ID. Saves referring to
// projects that no longer exist are skipped.
func (m *Manager) Restore(snaps []Snapshot) {
	for _, s := range snaps {
		p := m.byID[s.ID]
		if p == nil {
			slog.Warn("skipping unknown great work in save", "project", s.ID)
			continue
		}
		p.Restore(s)
	}
}
