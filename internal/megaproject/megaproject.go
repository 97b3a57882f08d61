// Package megaproject models the great works: multi-century undertakings
// advanced during slumber, paid for yearly, and dangerous to be caught
// building. Completed phases grant permanent effects.
package megaproject

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// State tracks where a great work stands.
type State uint8

const (
	StateLocked State = iota
	StateAvailable
	StateActive
	StatePaused
	StateDiscovered
	StateComplete
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateAvailable:
		return "available"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDiscovered:
		return "discovered"
	case StateComplete:
		return "complete"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// EffectType is the kind of permanent benefit a finished phase grants.
type EffectType uint8

const (
	EffectNone EffectType = iota
	EffectIncomeBonus
	EffectAgentTravel
	EffectSeizureImmunity
)

func (t EffectType) String() string {
	switch t {
	case EffectIncomeBonus:
		return "income_bonus"
	case EffectAgentTravel:
		return "agent_travel"
	case EffectSeizureImmunity:
		return "seizure_immunity"
	default:
		return "none"
	}
}

// Phase is one stage of construction. Its effect applies only once the
// phase is fully finished.
type Phase struct {
	Name   string     `json:"name"`
	Years  int        `json:"years"`
	Effect EffectType `json:"effect,omitempty"`
	Value  float64    `json:"value,omitempty"`
}

// discoveryInterval is how often an active project risks being noticed,
// in years invested.
const discoveryInterval = 10

// Project is one great work in progress.
type Project struct {
	id          string
	name        string
	description string
	phases      []Phase

	costPerYear   float64
	unlockLevel   int
	discoveryRisk int // percent per decade while active

	state               State
	yearsInvested       int
	currentPhase        int
	yearsInCurrentPhase int

	// Cached from completed phases.
	incomeBonus     float64
	agentTravel     bool
	seizureImmunity bool

	onPhaseCompleted []func(phaseName string)
	onStateChanged   []func(old, now State)
}

// NewProject creates a great work with no phases, locked until its
// unlock level is met. A zero unlock level makes it available at once.
func NewProject(id, name string) *Project {
	return &Project{id: id, name: name, state: StateAvailable}
}

func (p *Project) ID() string          { return p.id }
func (p *Project) Name() string        { return p.name }
func (p *Project) Description() string { return p.description }
func (p *Project) State() State        { return p.state }
func (p *Project) CostPerYear() float64 {
	return p.costPerYear
}
func (p *Project) UnlockLevel() int   { return p.unlockLevel }
func (p *Project) DiscoveryRisk() int { return p.discoveryRisk }
func (p *Project) YearsInvested() int { return p.yearsInvested }

func (p *Project) SetDescription(d string)   { p.description = d }
func (p *Project) SetCostPerYear(c float64)  { p.costPerYear = c }
func (p *Project) SetDiscoveryRisk(risk int) { p.discoveryRisk = risk }

// SetUnlockLevel also locks or frees the project when it has not yet
// been started.
func (p *Project) SetUnlockLevel(level int) {
	p.unlockLevel = level
	switch {
	case p.state == StateLocked && level == 0:
		p.setState(StateAvailable)
	case p.state == StateAvailable && level > 0:
		p.setState(StateLocked)
	}
}

// AddPhase appends a construction stage.
func (p *Project) AddPhase(ph Phase) {
	p.phases = append(p.phases, ph)
}

func (p *Project) Phases() []Phase {
	out := make([]Phase, len(p.phases))
	copy(out, p.phases)
	return out
}

// TotalDuration is the sum of all phase lengths.
func (p *Project) TotalDuration() int {
	total := 0
	for _, ph := range p.phases {
		total += ph.Years
	}
	return total
}

// YearsRemaining is how many more years of work finish the project.
func (p *Project) YearsRemaining() int {
	remaining := 0
	for i, ph := range p.phases {
		if i > p.currentPhase {
			remaining += ph.Years
		} else if i == p.currentPhase {
			remaining += ph.Years - p.yearsInCurrentPhase
		}
	}
	return remaining
}

// Progress reports overall completion in [0, 1].
func (p *Project) Progress() float64 {
	total := p.TotalDuration()
	if total == 0 {
		return 0
	}
	return float64(p.yearsInvested) / float64(total)
}

// CurrentPhase returns the phase under construction, false when the
// project is complete or has no phases.
func (p *Project) CurrentPhase() (Phase, bool) {
	if p.currentPhase >= len(p.phases) {
		return Phase{}, false
	}
	return p.phases[p.currentPhase], true
}

func (p *Project) IsComplete() bool   { return p.state == StateComplete }
func (p *Project) IsDiscovered() bool { return p.state == StateDiscovered }

// Unlock frees a locked project when the given phylactery level meets
// its requirement.
func (p *Project) Unlock(phylacteryLevel int) bool {
	if p.state != StateLocked || phylacteryLevel < p.unlockLevel {
		return false
	}
	p.setState(StateAvailable)
	return true
}

// CanStart reports whether construction may begin.
func (p *Project) CanStart(phylacteryLevel int) bool {
	return p.state == StateAvailable && phylacteryLevel >= p.unlockLevel
}

// Start begins construction. Fails unless the project is available and
// the level requirement is met.
func (p *Project) Start(phylacteryLevel int) bool {
	if !p.CanStart(phylacteryLevel) {
		return false
	}
	p.setState(StateActive)
	slog.Info("great work begun", "project", p.id)
	return true
}

// Pause suspends an active project without losing progress.
func (p *Project) Pause() bool {
	if p.state != StateActive {
		return false
	}
	p.setState(StatePaused)
	return true
}

// Resume continues a paused project.
func (p *Project) Resume() bool {
	if p.state != StatePaused {
		return false
	}
	p.setState(StateActive)
	return true
}

// AdvanceYears sinks the given years into construction, completing
// phases as they fill. Once per decade of invested work the project
// risks discovery; a discovered project stops advancing. Only active
// projects advance.
func (p *Project) AdvanceYears(years int, src entropy.Source) {
	for years > 0 && p.state == StateActive {
		ph, ok := p.CurrentPhase()
		if !ok {
			break
		}
		need := ph.Years - p.yearsInCurrentPhase
		if years >= need {
			years -= need
			p.yearsInCurrentPhase += need
			p.investYears(need, src)
			if p.state != StateActive {
				return
			}
			p.currentPhase++
			p.yearsInCurrentPhase = 0
			p.updateEffects()
			slog.Info("great work phase complete", "project", p.id, "phase", ph.Name)
			for _, fn := range p.onPhaseCompleted {
				fn(ph.Name)
			}
		} else {
			p.yearsInCurrentPhase += years
			p.investYears(years, src)
			years = 0
		}
	}
	if p.state == StateActive && p.currentPhase >= len(p.phases) && len(p.phases) > 0 {
		p.setState(StateComplete)
		slog.Info("great work complete", "project", p.id)
	}
}

// investYears counts invested time and rolls discovery at each decade
// boundary crossed.
func (p *Project) investYears(years int, src entropy.Source) {
	before := p.yearsInvested / discoveryInterval
	p.yearsInvested += years
	after := p.yearsInvested / discoveryInterval
	for i := before; i < after; i++ {
		if p.RollDiscovery(src) {
			return
		}
	}
}

// RollDiscovery tests whether an active project has been noticed.
// Returns true on discovery.
func (p *Project) RollDiscovery(src entropy.Source) bool {
	if p.state != StateActive || p.discoveryRisk <= 0 {
		return false
	}
	if src.IntN(100) < p.discoveryRisk {
		p.setState(StateDiscovered)
		slog.Warn("great work discovered", "project", p.id)
		return true
	}
	return false
}

// Destroy razes a discovered project.
func (p *Project) Destroy() {
	p.setState(StateDestroyed)
}

// Hide re-conceals a discovered project, resuming construction.
func (p *Project) Hide() bool {
	if p.state != StateDiscovered {
		return false
	}
	p.setState(StateActive)
	return true
}

// PropertyIncomeBonus is the summed income bonus from completed phases.
func (p *Project) PropertyIncomeBonus() float64 { return p.incomeBonus }

// HasAgentTravel reports whether agents move unseen.
func (p *Project) HasAgentTravel() bool { return p.agentTravel }

// HasSeizureImmunity reports whether holdings resist confiscation.
func (p *Project) HasSeizureImmunity() bool { return p.seizureImmunity }

func (p *Project) updateEffects() {
	p.incomeBonus = 0
	p.agentTravel = false
	p.seizureImmunity = false
	for i := 0; i < p.currentPhase && i < len(p.phases); i++ {
		switch p.phases[i].Effect {
		case EffectIncomeBonus:
			p.incomeBonus += p.phases[i].Value
		case EffectAgentTravel:
			p.agentTravel = true
		case EffectSeizureImmunity:
			p.seizureImmunity = true
		}
	}
}

// Reset wipes all progress. The project returns to locked or available
// depending on its unlock level.
func (p *Project) Reset() {
	p.yearsInvested = 0
	p.currentPhase = 0
	p.yearsInCurrentPhase = 0
	p.updateEffects()
	if p.unlockLevel == 0 {
		p.setState(StateAvailable)
	} else {
		p.setState(StateLocked)
	}
}

func (p *Project) setState(s State) {
	if p.state == s {
		return
	}
	old := p.state
	p.state = s
	for _, fn := range p.onStateChanged {
		fn(old, s)
	}
}

// OnPhaseCompleted registers a callback fired when a phase finishes.
func (p *Project) OnPhaseCompleted(fn func(phaseName string)) {
	p.onPhaseCompleted = append(p.onPhaseCompleted, fn)
}

// OnStateChanged registers a callback fired on every state transition.
func (p *Project) OnStateChanged(fn func(old, now State)) {
	p.onStateChanged = append(p.onStateChanged, fn)
}
