package controller

import (
	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/model"
)

// Phase identifies which State variant is active.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the view state. Exactly one variant is held at a time:
// Idle, Pending, Ready or Failed.
type State interface {
	Phase() Phase
	state()
}

// Idle means nothing has been submitted, or the view was reset.
type Idle struct{}

// Pending means an evaluation request is in flight.
type Pending struct {
	// Proposal is the frozen copy of the submitted text.
	Proposal string
}

// Ready holds a successful evaluation.
type Ready struct {
	Evaluation *model.BusinessEvaluation
	// Result carries call metadata (usage, provider, timing).
	Result *evaluator.Result
}

// Failed holds a user-facing message for a failed evaluation.
type Failed struct {
	Message string
	Err     error
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Pending) Phase() Phase { return PhasePending }
func (Ready) Phase() Phase   { return PhaseReady }
func (Failed) Phase() Phase  { return PhaseFailed }

func (Idle) state()    {}
func (Pending) state() {}
func (Ready) state()   {}
func (Failed) state()  {}
