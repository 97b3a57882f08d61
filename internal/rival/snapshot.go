package rival

// Snapshot is the serializable state of one rival.
type Snapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Stance      Stance   `json:"stance"`
	Power       int      `json:"power"`
	Aggression  int      `json:"aggression"`
	Greed       int      `json:"greed"`
	Cunning     int      `json:"cunning"`
	Active      bool     `json:"active"`
	Known       bool     `json:"known"`
	Threat      int      `json:"threat"`
	Territories []string `json:"territories,omitempty"`
}

// Snapshot captures the rival's state.
func (r *Rival) Snapshot() Snapshot {
	return Snapshot{
		ID:          r.id,
		Name:        r.name,
		Kind:        r.kind,
		Stance:      r.stance,
		Power:       r.power,
		Aggression:  r.aggression,
		Greed:       r.greed,
		Cunning:     r.cunning,
		Active:      r.active,
		Known:       r.known,
		Threat:      r.threat,
		Territories: append([]string(nil), r.territories...),
	}
}

// RestoreRival rebuilds a rival from a snapshot. Observers are not
// carried over.
func RestoreRival(snap Snapshot) *Rival {
	r := New(snap.ID, snap.Name, snap.Kind)
	r.stance = snap.Stance
	r.power = clampTrait(snap.Power)
	r.aggression = clampTrait(snap.Aggression)
	r.greed = clampTrait(snap.Greed)
	r.cunning = clampTrait(snap.Cunning)
	r.active = snap.Active
	r.known = snap.Known
	r.SetThreat(snap.Threat)
	r.territories = append([]string(nil), snap.Territories...)
	return r
}

// Snapshot captures every rival.
func (m *Manager) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(m.rivals))
	for _, r := range m.rivals {
		out = append(out, r.Snapshot())
	}
	return out
}

// Restore replaces the roster with the saved one.
func (m *Manager) Restore(snaps []Snapshot) {
	m.rivals = nil
	m.byID = make(map[string]*Rival)
	for _, s := range snaps {
		m.Add(RestoreRival(s))
	}
}
