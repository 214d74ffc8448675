package sheetplot

import (
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// Errors returned by sessions. They are the models errors, re-exported so
// callers need only this package.
var (
	ErrIncomplete = models.ErrIncomplete
	ErrNoTable    = models.ErrNoTable
	ErrNoColumns  = models.ErrNoColumns
)

type (
	// ParseError reports an unreadable workbook.
	ParseError = models.ParseError
	// PreconditionError reports a selection the table cannot satisfy.
	PreconditionError = models.PreconditionError
	// InvalidScaleError reports a log axis over data it cannot show.
	InvalidScaleError = models.InvalidScaleError
)

// IsIncomplete reports whether err marks an unfinished selection.
func IsIncomplete(err error) bool {
	return models.IsIncomplete(err)
}

// PromptOf returns the prompt carried by an incomplete-selection error.
func PromptOf(err error) string {
	return models.PromptOf(err)
}
