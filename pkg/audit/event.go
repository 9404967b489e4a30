// Package audit provides audit logging for configuration-change runs.
package audit

import (
	"fmt"
	"time"
)

// Stage names the pipeline stage an event belongs to.
type Stage string

const (
	StageRender   Stage = "render"
	StageApply    Stage = "apply"
	StageValidate Stage = "validate"
	StageRollback Stage = "rollback"
)

// Event records one pipeline stage execution against one device.
type Event struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	User      string        `json:"user"`
	Device    string        `json:"device"`
	Stage     Stage         `json:"stage"`
	Template  string        `json:"template,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	DryRun    bool          `json:"dry_run"`
	Duration  time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Stage       Stage
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
}

// NewEvent creates a new audit event
func NewEvent(user, device string, stage Stage) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Stage:     stage,
	}
}

// WithTemplate sets the template name
func (e *Event) WithTemplate(template string) *Event {
	e.Template = template
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDryRun marks the event as a preview-only run
func (e *Event) WithDryRun(dryRun bool) *Event {
	e.DryRun = dryRun
	return e
}

// WithDuration sets the stage duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
