// Package controller drives the evaluation view state:
// Idle -> Pending -> Ready | Failed, and back to Idle on reset.
//
// A Controller is owned by a single goroutine (e.g. a bubbletea update
// loop) and is not safe for concurrent use. Submit returns a Job that the
// owner runs asynchronously; the Job's Settlement is handed back to Settle
// on the owning goroutine. At most one submission is in flight at a time.
package controller

import (
	"context"
	"time"

	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/model"
)

// Evaluator is the capability the controller needs from the evaluation client.
type Evaluator interface {
	Evaluate(ctx context.Context, proposal string) (*evaluator.Result, error)
}

// Job performs one evaluation. It blocks until the call settles and is
// meant to run off the owning goroutine.
type Job func() Settlement

// Settlement is the outcome of a Job.
type Settlement struct {
	seq    uint64
	result *evaluator.Result
	err    error
}

// Err returns the evaluation error, if any.
func (s Settlement) Err() error { return s.err }

// Controller holds the view state and draft text.
type Controller struct {
	client  Evaluator
	parent  context.Context
	timeout time.Duration

	state State
	draft string

	seq      uint64 // sequence number of the latest submission
	cancel   context.CancelFunc
	disposed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds each submission. On expiry the submission fails with
// evaluator.ErrTransport. Zero (the default) waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// New creates a controller in the Idle state. Cancelling parent has the
// same effect on in-flight requests as Dispose.
func New(parent context.Context, client Evaluator, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		parent: parent,
		state:  Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current view state.
func (c *Controller) State() State { return c.state }

// Draft returns the current draft text.
func (c *Controller) Draft() string { return c.draft }

// InputEnabled reports whether the draft may be edited or submitted.
func (c *Controller) InputEnabled() bool {
	return !c.disposed && c.state.Phase() != PhasePending
}

// SetDraft replaces the draft text, e.g. while the user types.
// Ignored while a request is pending.
func (c *Controller) SetDraft(text string) bool {
	if !c.InputEnabled() {
		return false
	}
	c.draft = text
	return true
}

// UseExample replaces the draft with an example proposal. It never changes
// the view state.
func (c *Controller) UseExample(text string) bool {
	return c.SetDraft(text)
}

// Submit freezes text into an evaluation request and enters Pending.
// It returns false, and no Job, when text is blank, when a request is
// already pending, or after Dispose. Any held result or error is discarded.
func (c *Controller) Submit(text string) (Job, bool) {
	if !c.InputEnabled() || model.IsBlank(text) {
		return nil, false
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.parent, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.parent)
	}

	c.seq++
	c.cancel = cancel
	c.draft = text
	c.state = Pending{Proposal: text}

	seq, client, proposal := c.seq, c.client, text
	return func() Settlement {
		return settle(ctx, seq, client, proposal)
	}, true
}

// settle runs the evaluation and races it against ctx, so an expired
// deadline settles the job even if the client ignores cancellation.
func settle(ctx context.Context, seq uint64, client Evaluator, proposal string) Settlement {
	done := make(chan Settlement, 1)
	go func() {
		res, err := client.Evaluate(ctx, proposal)
		done <- Settlement{seq: seq, result: res, err: err}
	}()

	select {
	case s := <-done:
		return s
	case <-ctx.Done():
		return Settlement{seq: seq, err: evaluator.NewError(evaluator.ErrTransport, "request aborted", ctx.Err())}
	}
}

// Settle applies a finished Job. It returns false, leaving the state
// untouched, when the settlement is stale: the controller was disposed,
// reset, or a newer submission replaced it.
func (c *Controller) Settle(s Settlement) bool {
	if c.disposed || c.state.Phase() != PhasePending || s.seq != c.seq {
		return false
	}
	c.release()

	if s.err == nil && (s.result == nil || s.result.Evaluation == nil) {
		s.err = evaluator.NewError(evaluator.ErrEmptyResponse, "", nil)
	}
	if s.err != nil {
		c.state = Failed{Message: FailureMessage(s.err), Err: s.err}
		return true
	}
	c.state = Ready{Evaluation: s.result.Evaluation, Result: s.result}
	return true
}

// Reset returns to Idle, clearing the draft and any result or error.
// Ignored while a request is pending.
func (c *Controller) Reset() bool {
	if !c.InputEnabled() {
		return false
	}
	c.state = Idle{}
	c.draft = ""
	return true
}

// Dispose cancels any in-flight request. Later settlements are discarded
// and all further events are ignored.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.release()
}

func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
