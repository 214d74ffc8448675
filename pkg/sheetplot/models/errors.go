package models

import (
	"errors"
	"fmt"
)

// ErrIncomplete marks a selection that is still missing required inputs.
// It is the normal interim state while the user is choosing columns, not a
// failure: callers suppress rendering and show a prompt.
var ErrIncomplete = errors.New("selection incomplete")

// ErrNoTable indicates that no spreadsheet has been loaded yet.
var ErrNoTable = errors.New("no table loaded")

// ErrNoColumns indicates the loaded table has no columns to choose from.
var ErrNoColumns = errors.New("table has no columns")

// ErrTooLarge indicates an upload over the configured size limit.
var ErrTooLarge = errors.New("file too large")

// ErrUnknownKind indicates a selection names a chart kind that does not exist.
var ErrUnknownKind = errors.New("unknown chart kind")

// ErrUnknownScale indicates a selection names an axis scale other than
// linear or log.
var ErrUnknownScale = errors.New("unknown scale")

// IncompleteError carries the prompt shown while a selection is incomplete.
// It matches ErrIncomplete with errors.Is.
type IncompleteError struct {
	Prompt string
}

func (e *IncompleteError) Error() string {
	return "selection incomplete: " + e.Prompt
}

// Is reports whether target is ErrIncomplete.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// Incomplete returns an incomplete-selection error with the given prompt.
func Incomplete(prompt string) error {
	return &IncompleteError{Prompt: prompt}
}

// IsIncomplete reports whether err marks an incomplete selection.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// PromptOf returns the prompt of an incomplete-selection error, or "".
func PromptOf(err error) string {
	var ie *IncompleteError
	if errors.As(err, &ie) {
		return ie.Prompt
	}
	return ""
}

// ParseError represents a spreadsheet that could not be read as a table.
type ParseError struct {
	Source string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %q: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(source, reason string, err error) *ParseError {
	return &ParseError{
		Source: source,
		Reason: reason,
		Err:    err,
	}
}

// PreconditionError represents a selection that cannot apply to the current
// table, e.g. a column that disappeared after a file swap.
type PreconditionError struct {
	Column string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Column == "" {
		return "precondition failed: " + e.Reason
	}
	return fmt.Sprintf("precondition failed for column %q: %s", e.Column, e.Reason)
}

// NewPreconditionError creates a new PreconditionError.
func NewPreconditionError(column, reason string) *PreconditionError {
	return &PreconditionError{
		Column: column,
		Reason: reason,
	}
}

// InvalidScaleError represents a logarithmic axis over data or limits it
// cannot display.
type InvalidScaleError struct {
	Axis   string // "x", "y" or "y2"
	Column string
	Value  float64
	Reason string
}

func (e *InvalidScaleError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid %s-axis scale: %s", e.Axis, e.Reason)
	}
	return fmt.Sprintf("invalid %s-axis scale for column %q: %s", e.Axis, e.Column, e.Reason)
}
