// Package pipeline drives the configuration-change cycle for one device:
// render, apply, validate, and rollback, with an explicit run state.
package pipeline

import (
	"fmt"
	"time"

	"github.com/netweave/netweave/pkg/util"
)

// State is the lifecycle position of a configuration run.
type State string

const (
	// StateUnapplied: payload rendered (or not yet), nothing on the device.
	StateUnapplied State = "unapplied"
	// StateApplied: the device accepted and committed the change.
	StateApplied State = "applied"
	// StateValidated: observed state matched expectations. Terminal.
	StateValidated State = "validated"
	// StateFailed: validation did not pass. Not terminal; rollback remains.
	StateFailed State = "failed"
	// StateRolledBack: the reverse payload was applied. Terminal.
	StateRolledBack State = "rolled_back"
)

var transitions = map[State][]State{
	StateUnapplied: {StateApplied},
	StateApplied:   {StateValidated, StateFailed},
	StateFailed:    {StateRolledBack},
}

// Run tracks one configuration change against one device.
type Run struct {
	Device   string
	Template string
	State    State
	Started  time.Time
}

// NewRun starts a run in the unapplied state.
func NewRun(device, template string) *Run {
	return &Run{
		Device:   device,
		Template: template,
		State:    StateUnapplied,
		Started:  time.Now(),
	}
}

// Transition moves the run to the target state, or rejects the move if the
// state machine does not allow it.
func (r *Run) Transition(to State) error {
	for _, next := range transitions[r.State] {
		if next == to {
			r.State = to
			return nil
		}
	}
	return fmt.Errorf("%s -> %s: %w", r.State, to, util.ErrInvalidTransition)
}

// Terminal reports whether the run can move no further.
func (r *Run) Terminal() bool {
	return len(transitions[r.State]) == 0
}
