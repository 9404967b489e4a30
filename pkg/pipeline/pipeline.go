package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/netweave/netweave/pkg/audit"
	"github.com/netweave/netweave/pkg/device"
	"github.com/netweave/netweave/pkg/intent"
	"github.com/netweave/netweave/pkg/inventory"
	"github.com/netweave/netweave/pkg/render"
	"github.com/netweave/netweave/pkg/state"
	"github.com/netweave/netweave/pkg/util"
)

// Pipeline orchestrates one configuration run against one device. Each
// stage opens its own device session; nothing is held between stages.
type Pipeline struct {
	Doc      *intent.Document
	Renderer *render.Renderer
	Template string
	Connect  device.ConnectFunc
	Params   device.ConnParams
	User     string
	Retry    state.RetryPolicy
	DryRun   bool
}

// Result is what a full deploy leaves behind for display.
type Result struct {
	Run     *Run
	Payload string
	Report  *state.Report
}

// Render produces the payload for the pipeline's template and intent.
// NETCONF payloads are additionally checked for XML well-formedness.
func (p *Pipeline) Render() (string, error) {
	start := time.Now()
	payload, err := p.Renderer.Render(p.Template, p.Doc.Data)
	if err == nil && p.Params.Transport == inventory.TransportNetconf {
		if xerr := render.CheckXML(payload); xerr != nil {
			err = util.NewRenderError(p.Template, "", xerr)
		}
	}
	p.record(audit.StageRender, start, err)
	if err != nil {
		return "", err
	}
	return payload, nil
}

// Apply pushes the payload to the device and, on success, moves the run to
// the applied state. Protocol-layer atomicity means an apply failure leaves
// the run unapplied, never partially applied.
func (p *Pipeline) Apply(ctx context.Context, run *Run, payload string) error {
	start := time.Now()
	err := p.push(ctx, payload)
	p.record(audit.StageApply, start, err)
	if err != nil {
		return err
	}
	return run.Transition(StateApplied)
}

// ValidateState compares observed device state against exp, deriving the
// expectation from the intent when exp is nil. The run moves to validated
// on pass and to failed otherwise; a nil run skips state tracking
// (standalone validation outside a deploy cycle). The report is returned
// even on failure so callers can display the differences.
func (p *Pipeline) ValidateState(ctx context.Context, run *Run, exp *state.Expectation) (*state.Report, error) {
	start := time.Now()

	var err error
	if exp == nil {
		exp, err = state.Derive(p.Doc)
		if err != nil {
			p.record(audit.StageValidate, start, err)
			return nil, err
		}
	}

	validator := state.NewValidator(p.Connect, p.Params)
	report, err := validator.Validate(ctx, exp, p.Retry)
	if err != nil {
		p.record(audit.StageValidate, start, err)
		return report, err
	}

	err = report.Err()
	p.record(audit.StageValidate, start, err)
	if run == nil {
		return report, err
	}
	if err != nil {
		if terr := run.Transition(StateFailed); terr != nil {
			return report, terr
		}
		return report, err
	}
	return report, run.Transition(StateValidated)
}

// Rollback renders the reverse payload and applies it. A device report
// that the data is already absent counts as success, so rolling back twice
// is safe. A nil run skips state tracking (operator-initiated rollback
// outside a deploy cycle).
func (p *Pipeline) Rollback(ctx context.Context, run *Run) error {
	start := time.Now()

	payload, err := p.Renderer.RenderRollback(p.Template, p.Doc.Data)
	if err != nil {
		p.record(audit.StageRollback, start, err)
		return err
	}

	err = p.push(ctx, payload)
	var rej *util.RejectionError
	if errors.As(err, &rej) && rej.IsDataMissing() {
		util.WithDevice(p.Params.Name).Info("rollback target already absent, nothing to remove")
		err = nil
	}
	p.record(audit.StageRollback, start, err)
	if err != nil {
		return err
	}
	if run != nil {
		return run.Transition(StateRolledBack)
	}
	return nil
}

// Deploy runs the full cycle: render, apply, validate. When validation
// finds a mismatch and autoRollback is set, the reverse payload is applied
// before returning the validation error. A change still pending after the
// retry budget is not rolled back: pending is a convergence delay, not
// divergence, and reverting it would fight a device that may be about to
// converge. The run is left in the failed state for the operator to
// re-validate or roll back explicitly.
func (p *Pipeline) Deploy(ctx context.Context, autoRollback bool) (*Result, error) {
	run := NewRun(p.Params.Name, p.Template)
	result := &Result{Run: run}

	payload, err := p.Render()
	if err != nil {
		return result, err
	}
	result.Payload = payload

	if err := p.Apply(ctx, run, payload); err != nil {
		return result, err
	}

	report, err := p.ValidateState(ctx, run, nil)
	result.Report = report
	if err != nil {
		if autoRollback && run.State == StateFailed && !errors.Is(err, util.ErrValidationPending) {
			if rbErr := p.Rollback(ctx, run); rbErr != nil {
				return result, fmt.Errorf("rollback after failed validation: %v (validation: %w)", rbErr, err)
			}
		}
		return result, err
	}
	return result, nil
}

// push opens a session and applies the payload using the transport's
// change discipline: candidate + lock + commit for NETCONF, config push +
// write memory for CLI.
func (p *Pipeline) push(ctx context.Context, payload string) error {
	drv, err := p.Connect(ctx, p.Params)
	if err != nil {
		return err
	}
	defer drv.Close()

	if p.Params.Transport != inventory.TransportNetconf {
		if _, err := drv.EditConfig("running", payload); err != nil {
			return err
		}
		return drv.Commit()
	}

	const target = "candidate"
	if err := drv.Lock(target); err != nil {
		return err
	}
	defer drv.Unlock(target)

	if _, err := drv.EditConfig(target, payload); err != nil {
		drv.Discard()
		return err
	}
	if err := drv.Validate(target); err != nil {
		drv.Discard()
		return err
	}
	if err := drv.Commit(); err != nil {
		drv.Discard()
		return err
	}
	return nil
}

func (p *Pipeline) record(stage audit.Stage, start time.Time, err error) {
	event := audit.NewEvent(p.User, p.Params.Name, stage).
		WithTemplate(p.Template).
		WithDryRun(p.DryRun).
		WithDuration(time.Since(start))
	if err != nil {
		event.WithError(err)
	} else {
		event.WithSuccess()
	}
	audit.Record(event)
}
