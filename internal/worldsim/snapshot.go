package worldsim

// KingdomSnapshot is the serializable form of a kingdom.
type KingdomSnapshot struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Stability       int            `json:"stability"`
	Treasury        float64        `json:"treasury"`
	DebtOutstanding float64        `json:"debt_outstanding"`
	Relations       map[string]int `json:"relations,omitempty"`
}

// Snapshot captures the kingdom's current state.
func (k *Kingdom) Snapshot() KingdomSnapshot {
	snap := KingdomSnapshot{
		ID:              k.id,
		Name:            k.name,
		Stability:       k.stability,
		Treasury:        k.treasury,
		DebtOutstanding: k.debtOutstanding,
	}
	if len(k.relations) > 0 {
		snap.Relations = make(map[string]int, len(k.relations))
		for id, v := range k.relations {
			snap.Relations[id] = v
		}
	}
	return snap
}

// RestoreKingdom rebuilds a kingdom from its snapshot.
func RestoreKingdom(snap KingdomSnapshot) *Kingdom {
	k := NewKingdom(snap.ID, snap.Name)
	k.SetStability(snap.Stability)
	k.SetTreasury(snap.Treasury)
	k.SetDebtOutstanding(snap.DebtOutstanding)
	for id, v := range snap.Relations {
		k.SetRelation(id, v)
	}
	return k
}

// SnapshotKingdoms captures every kingdom in insertion order.
func (w *WorldSimulation) SnapshotKingdoms() []KingdomSnapshot {
	var out []KingdomSnapshot
	for _, k := range w.kingdoms {
		out = append(out, k.Snapshot())
	}
	return out
}

// RestoreKingdoms replaces the kingdom set from snapshots.
func (w *WorldSimulation) RestoreKingdoms(snaps []KingdomSnapshot) {
	w.kingdoms = nil
	for _, snap := range snaps {
		w.AddKingdom(RestoreKingdom(snap))
	}
}
