// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pipeline stage failures. Typed errors below unwrap
// to these so callers can branch with errors.Is without inspecting text.
var (
	ErrParse             = errors.New("intent parse failed")
	ErrRender            = errors.New("template render failed")
	ErrConnection        = errors.New("device connection failed")
	ErrRejected          = errors.New("device rejected change")
	ErrValidationFailed  = errors.New("validation failed")
	ErrValidationPending = errors.New("expected state not yet observed")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTransition = errors.New("invalid run state transition")
)

// ParseError reports a malformed intent, inventory, or expectation document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a parse error for the document at path
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

// RenderError reports a template/intent mismatch. Field names the intent
// key the template referenced but the document does not provide.
type RenderError struct {
	Template string
	Field    string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("rendering template '%s': intent is missing field '%s'", e.Template, e.Field)
	}
	return fmt.Sprintf("rendering template '%s': %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return ErrRender
}

// NewRenderError creates a render error for the named template
func NewRenderError(template, field string, err error) *RenderError {
	return &RenderError{Template: template, Field: field, Err: err}
}

// ConnectionError reports a transport or authentication failure while
// reaching a device. Device-side refusals are RejectionError instead.
type ConnectionError struct {
	Host string
	Op   string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return ErrConnection
}

// NewConnectionError creates a connection error for the given host and operation
func NewConnectionError(host, op string, err error) *ConnectionError {
	return &ConnectionError{Host: host, Op: op, Err: err}
}

// RejectionError reports a change the device refused. Diagnostic carries
// the device-supplied text unmodified for operator inspection.
type RejectionError struct {
	Host       string
	Diagnostic string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("device %s rejected change: %s", e.Host, e.Diagnostic)
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

// IsDataMissing reports whether the rejection indicates the target data
// was already absent (RFC 6241 data-missing). Rollback treats this as
// success so that rolling back twice is idempotent.
func (e *RejectionError) IsDataMissing() bool {
	return strings.Contains(strings.ToLower(e.Diagnostic), "data-missing")
}

// NewRejectionError creates a rejection error preserving the device diagnostic
func NewRejectionError(host, diagnostic string) *RejectionError {
	return &RejectionError{Host: host, Diagnostic: diagnostic}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
