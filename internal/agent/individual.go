package agent

import (
	"log/slog"

	"github.com/graveworks/lichfolio/internal/entropy"
)

// Individual is a single mortal operator who may groom a successor to
// inherit their duties.
type Individual struct {
	Agent

	successor        *Individual // exclusively owned
	trainingProgress float64     // 0.0-1.0
	promoted         *Individual // heir raised at death, awaiting pickup
}

// NewIndividual creates an individual agent with no successor.
func NewIndividual(id, name string, src entropy.Source) *Individual {
	return &Individual{Agent: *NewAgent(id, name, src)}
}

func (ind *Individual) Type() Type { return TypeIndividual }

func (ind *Individual) Successor() *Individual { return ind.successor }

// SetSuccessor takes exclusive ownership of successor, releasing any
// previous one and resetting training progress.
func (ind *Individual) SetSuccessor(successor *Individual) {
	if ind.successor == successor {
		return
	}
	ind.successor = successor
	ind.trainingProgress = 0
}

func (ind *Individual) TrainingProgress() float64 { return ind.trainingProgress }

// SetTrainingProgress clamps to [0,1]. Progress without a successor is
// meaningless and ignored.
func (ind *Individual) SetTrainingProgress(progress float64) {
	if ind.successor == nil {
		return
	}
	ind.trainingProgress = clampFloat(progress, 0, 1)
}

// Train advances successor training by delta.
func (ind *Individual) Train(delta float64) {
	ind.SetTrainingProgress(ind.trainingProgress + delta)
}

// HasTrainedSuccessor reports whether a fully-trained successor stands by.
func (ind *Individual) HasTrainedSuccessor() bool {
	return ind.successor != nil && ind.trainingProgress >= 1.0
}

// SkillRetention is the fraction of competence a successor inherits:
// 0.25 untrained, scaling linearly to 0.75 fully trained.
func (ind *Individual) SkillRetention() float64 {
	if ind.successor == nil {
		return 0.25
	}
	return 0.25 + ind.trainingProgress*0.50
}

// ExecuteSuccession promotes the successor: they receive the better of
// their own competence or the retained share of the parent's, inherit
// all investment assignments, and stop being owned by the parent.
// Returns nil when no successor exists.
func (ind *Individual) ExecuteSuccession() *Individual {
	successor := ind.successor
	if successor == nil {
		slog.Warn("agent died with no successor", "agent", ind.ID())
		return nil
	}

	retention := ind.SkillRetention()
	transferred := int(float64(ind.Competence()) * retention)
	if successor.Competence() > transferred {
		transferred = successor.Competence()
	}
	successor.SetCompetence(transferred)

	for _, id := range ind.AssignedInvestments() {
		successor.AssignInvestment(id)
		ind.UnassignInvestment(id)
	}

	slog.Info("succession executed",
		"from", ind.ID(), "to", successor.ID(),
		"retention", retention, "competence", transferred)

	ind.successor = nil
	ind.trainingProgress = 0
	return successor
}

// OnYearPassed handles death with succession before the base aging step.
// The promoted heir is held until the manager collects it.
func (ind *Individual) OnYearPassed() {
	if !ind.died && ind.Age()+1 >= ind.MaxAge() {
		ind.promoted = ind.ExecuteSuccession()
	}
	ind.Agent.OnYearPassed()
}

// TakePromoted hands over the heir raised at death, once. Nil when the
// individual is still alive or died heirless.
func (ind *Individual) TakePromoted() *Individual {
	p := ind.promoted
	ind.promoted = nil
	return p
}
