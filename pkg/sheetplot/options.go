// Package sheetplot turns spreadsheet tables into charts.
//
// A Session holds the state of one user: the uploaded table, the last
// selection and the chart built from it. Every input change rebuilds the
// chart from scratch.
package sheetplot

import (
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/parser"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/render"
)

// DefaultMaxBytes caps uploaded workbooks at 32 MiB.
const DefaultMaxBytes = 32 << 20

// Options configures a session.
type Options struct {
	// Sheet selects the sheet to read; empty means the first sheet.
	Sheet string
	// UsePrintArea reads the sheet's print area instead of its data region.
	UsePrintArea bool
	// MaxBytes caps the workbook size; 0 means DefaultMaxBytes, negative
	// means unlimited.
	MaxBytes int64
	// Render controls the output image.
	Render render.Options
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		MaxBytes: DefaultMaxBytes,
		Render: render.Options{
			Width:  render.DefaultWidth,
			Height: render.DefaultHeight,
			DPI:    render.DefaultDPI,
		},
	}
}

func (o Options) loadOptions(name string) parser.LoadOptions {
	max := o.MaxBytes
	switch {
	case max == 0:
		max = DefaultMaxBytes
	case max < 0:
		max = 0
	}
	return parser.LoadOptions{
		Name:         name,
		Sheet:        o.Sheet,
		UsePrintArea: o.UsePrintArea,
		MaxBytes:     max,
	}
}
