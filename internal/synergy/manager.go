package synergy

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/graveworks/lichfolio/internal/investment"
)

// ChangedFunc observes changes to the active synergy set.
type ChangedFunc func(active []Rule)

// Manager evaluates the rule catalog against a portfolio and caches the
// active set and total bonus.
type Manager struct {
	env   *cel.Env
	rules []compiledRule

	active     map[string]Rule
	totalBonus float64

	onChanged []ChangedFunc
}

// NewManager creates a manager loaded with the built-in rule catalog.
func NewManager() (*Manager, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create synergy environment: %w", err)
	}
	m := &Manager{
		env:        env,
		active:     make(map[string]Rule),
		totalBonus: 1.0,
	}
	for _, r := range builtinRules() {
		if err := m.AddRule(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddRule compiles and registers a rule. A rule with a duplicate id
// replaces the earlier one.
func (m *Manager) AddRule(r Rule) error {
	cr, err := compileRule(m.env, r)
	if err != nil {
		return err
	}
	for i, have := range m.rules {
		if have.rule.ID == r.ID {
			m.rules[i] = cr
			return nil
		}
	}
	m.rules = append(m.rules, cr)
	return nil
}

// Rules returns the registered catalog.
func (m *Manager) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	for i, cr := range m.rules {
		out[i] = cr.rule
	}
	return out
}

// Recalculate evaluates every rule against the portfolio and rebuilds
// the active set. Observers fire only when the set actually changes.
func (m *Manager) Recalculate(p *investment.Portfolio) {
	snap := snapshot(p)

	next := make(map[string]Rule, len(m.rules))
	bonus := 1.0
	for _, cr := range m.rules {
		out, _, err := cr.prog.Eval(snap)
		if err != nil {
			slog.Error("synergy rule evaluation failed", "rule", cr.rule.ID, "error", err)
			continue
		}
		matched, ok := out.Value().(bool)
		if !ok || !matched {
			continue
		}
		next[cr.rule.ID] = cr.rule
		bonus *= cr.rule.Multiplier
	}

	changed := len(next) != len(m.active)
	if !changed {
		for id := range next {
			if _, ok := m.active[id]; !ok {
				changed = true
				break
			}
		}
	}

	m.active = next
	m.totalBonus = bonus

	if changed {
		active := m.ActiveSynergies()
		slog.Info("active synergies changed", "count", len(active), "bonus", bonus)
		for _, fn := range m.onChanged {
			fn(active)
		}
	}
}

// ActiveSynergies returns the active rules sorted by id.
func (m *Manager) ActiveSynergies() []Rule {
	out := make([]Rule, 0, len(m.active))
	for _, r := range m.active {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsActive reports whether the synergy with the given id is active.
func (m *Manager) IsActive(id string) bool {
	_, ok := m.active[id]
	return ok
}

// Count returns the number of active synergies.
func (m *Manager) Count() int { return len(m.active) }

// TotalBonus is the product of active multipliers, 1.0 when none are.
func (m *Manager) TotalBonus() float64 { return m.totalBonus }

// OnChanged registers an active-set observer.
func (m *Manager) OnChanged(fn ChangedFunc) {
	m.onChanged = append(m.onChanged, fn)
}

// Reset clears the active set without touching the catalog.
func (m *Manager) Reset() {
	m.active = make(map[string]Rule)
	m.totalBonus = 1.0
}

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// Default returns the process-wide manager. The built-in catalog always
// compiles, so initialization cannot fail.
func Default() *Manager {
	defaultOnce.Do(func() {
		m, err := NewManager()
		if err != nil {
			panic(fmt.Sprintf("synergy: built-in rules failed to compile: %v", err))
		}
		defaultMgr = m
	})
	return defaultMgr
}
