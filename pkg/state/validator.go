package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kylelemons/godebug/pretty"

	"github.com/netweave/netweave/pkg/device"
	"github.com/netweave/netweave/pkg/util"
)

// Outcome classifies one validation pass.
type Outcome string

const (
	// Pass: every check matched.
	Pass Outcome = "pass"
	// Mismatch: at least one element is present with the wrong value.
	// Active divergence, not a convergence delay. Not retried.
	Mismatch Outcome = "mismatch"
	// Pending: every divergence is a missing element; the device has not
	// converged yet. The natural retry point.
	Pending Outcome = "pending"
)

// Difference is one check that did not hold.
type Difference struct {
	Path     string
	Expected string
	Actual   string // "" when the element is absent
	Pending  bool   // absent element, not an active mismatch
}

// Report is the result of validating one device against one expectation.
type Report struct {
	Device      string
	Outcome     Outcome
	Differences []Difference
	Attempts    int
}

// Err converts the report outcome to the pipeline error taxonomy.
func (r *Report) Err() error {
	switch r.Outcome {
	case Pass:
		return nil
	case Pending:
		return fmt.Errorf("%d check(s) pending after %d attempt(s): %w",
			len(r.Differences), r.Attempts, util.ErrValidationPending)
	default:
		msgs := make([]string, 0, len(r.Differences))
		for _, d := range r.Differences {
			if !d.Pending {
				msgs = append(msgs, fmt.Sprintf("%s: expected '%s', got '%s'", d.Path, d.Expected, d.Actual))
			}
		}
		return util.NewValidationError(msgs...)
	}
}

// Summary renders the report for operator display, with an expected/actual
// diff of the failing fields.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Device: %s\nOutcome: %s (attempts: %d)\n", r.Device, r.Outcome, r.Attempts)
	if len(r.Differences) == 0 {
		return sb.String()
	}

	expected := make(map[string]string, len(r.Differences))
	actual := make(map[string]string, len(r.Differences))
	for _, d := range r.Differences {
		expected[d.Path] = d.Expected
		if d.Pending {
			actual[d.Path] = "<absent>"
		} else {
			actual[d.Path] = d.Actual
		}
	}
	sb.WriteString(pretty.Compare(expected, actual))
	sb.WriteString("\n")
	return sb.String()
}

// RetryPolicy controls re-checking while the outcome is Pending. Mismatch
// and Pass return immediately; only convergence delays are retried.
type RetryPolicy struct {
	Attempts int           // total validation passes
	Backoff  time.Duration // initial wait, doubled per retry
}

// DefaultRetryPolicy: three passes, 2s then 4s between them.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 2 * time.Second}

// Validator retrieves device state and compares it against expectations.
// Each pass opens its own session; nothing is held across passes.
type Validator struct {
	connect device.ConnectFunc
	params  device.ConnParams
}

// NewValidator creates a validator for one device.
func NewValidator(connect device.ConnectFunc, params device.ConnParams) *Validator {
	return &Validator{connect: connect, params: params}
}

// Once performs a single validation pass.
func (v *Validator) Once(ctx context.Context, exp *Expectation) (*Report, error) {
	drv, err := v.connect(ctx, v.params)
	if err != nil {
		return nil, err
	}
	defer drv.Close()

	var resp *device.Response
	if exp.Operational {
		resp, err = drv.Get(exp.Filter)
	} else {
		resp, err = drv.GetConfig(exp.Source, exp.Filter)
	}
	if err != nil {
		return nil, err
	}

	return evaluate(v.params.Name, resp, exp)
}

// Validate runs validation passes under the retry policy until the outcome
// is Pass or Mismatch, or attempts are exhausted.
func (v *Validator) Validate(ctx context.Context, exp *Expectation, policy RetryPolicy) (*Report, error) {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	log := util.WithDevice(v.params.Name).WithField("stage", "validate")
	backoff := policy.Backoff

	for attempt := 1; ; attempt++ {
		report, err := v.Once(ctx, exp)
		if err != nil {
			return nil, err
		}
		report.Attempts = attempt

		if report.Outcome != Pending || attempt >= policy.Attempts {
			return report, nil
		}

		log.Infof("state pending (%d check(s) not yet observed), retrying in %s", len(report.Differences), backoff)
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// evaluate compares a device reply against the expectation field by field.
func evaluate(deviceName string, resp *device.Response, exp *Expectation) (*Report, error) {
	doc := resp.Doc()
	if doc == nil {
		return nil, fmt.Errorf("validation requires an XML-capable transport (got non-XML reply)")
	}

	report := &Report{Device: deviceName, Outcome: Pass}
	pendingOnly := true
	for _, check := range exp.Checks {
		el := doc.FindElement(check.Path)
		if el == nil {
			report.Differences = append(report.Differences, Difference{
				Path: check.Path, Expected: check.Equals, Pending: true,
			})
			continue
		}
		actual := strings.TrimSpace(el.Text())
		if actual != check.Equals {
			report.Differences = append(report.Differences, Difference{
				Path: check.Path, Expected: check.Equals, Actual: actual,
			})
			pendingOnly = false
		}
	}

	if len(report.Differences) > 0 {
		if pendingOnly {
			report.Outcome = Pending
		} else {
			report.Outcome = Mismatch
		}
	}
	return report, nil
}
