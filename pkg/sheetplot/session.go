package sheetplot

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/builder"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/export"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/parser"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/render"
)

// Session is the state of one user. It is not safe for concurrent use.
type Session struct {
	opts Options

	data  []byte
	table *models.Table

	sel    *models.Selection
	spec   models.ChartSpec
	last   *models.RenderedImage
	prompt string
}

// NewSession returns an empty session waiting for a workbook.
func NewSession(opts Options) *Session {
	return &Session{opts: opts, prompt: builder.PromptUpload}
}

// Open creates a session and loads the workbook at path.
func Open(path string, opts Options) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.NewParseError(filepath.Base(path), "cannot open file", err)
	}
	defer f.Close()

	s := NewSession(opts)
	if err := s.Load(f, filepath.Base(path)); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a workbook. On failure the previous table is kept; on success
// it replaces the table and drops the selection and chart built on the
// old one.
func (s *Session) Load(r io.Reader, name string) error {
	lo := s.opts.loadOptions(name)
	data, err := parser.ReadAll(r, lo)
	if err != nil {
		return err
	}
	t, err := parser.LoadTableBytes(data, lo)
	if err != nil {
		return err
	}

	s.data = data
	s.table = t
	s.reset()
	return nil
}

// Options returns the session options.
func (s *Session) Options() Options {
	return s.opts
}

// SetRenderOptions changes the output image settings for later renders.
func (s *Session) SetRenderOptions(ro render.Options) {
	s.opts.Render = ro
}

// Table returns the loaded table, or nil.
func (s *Session) Table() *models.Table {
	return s.table
}

// Columns returns the column names of the loaded table.
func (s *Session) Columns() ([]string, error) {
	if s.table == nil {
		return nil, ErrNoTable
	}
	cols := s.table.Columns()
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	return cols, nil
}

// Presets returns selections reproducing the charts embedded next to the
// table in the workbook.
func (s *Session) Presets() ([]models.Preset, error) {
	if s.table == nil {
		return nil, ErrNoTable
	}
	return parser.ExtractPresets(s.data, s.table)
}

// Build validates sel against the table. An incomplete selection is kept
// as the current state; a selection the table cannot satisfy resets it.
func (s *Session) Build(sel models.Selection) (models.ChartSpec, error) {
	spec, err := builder.Build(s.table, sel)
	s.last = nil
	switch {
	case err == nil:
		s.sel, s.spec, s.prompt = &sel, spec, ""
		return spec, nil
	case models.IsIncomplete(err):
		s.sel, s.spec, s.prompt = &sel, nil, models.PromptOf(err)
	default:
		var pe *models.PreconditionError
		if errors.As(err, &pe) {
			s.reset()
		}
	}
	return nil, err
}

// Limits returns the axis limit defaults for the form of sel.
func (s *Session) Limits(sel models.Selection) (builder.LimitDefaults, error) {
	return builder.FormLimits(s.table, sel)
}

// Render builds sel and draws it.
func (s *Session) Render(sel models.Selection) (*models.RenderedImage, error) {
	spec, err := s.Build(sel)
	if err != nil {
		return nil, err
	}
	img, err := render.Render(s.table, spec, s.opts.Render)
	if err != nil {
		return nil, err
	}
	s.last = img
	return img, nil
}

// Export renders sel and wraps the image for download.
func (s *Session) Export(sel models.Selection) (*export.File, error) {
	img, err := s.Render(sel)
	if err != nil {
		return nil, err
	}
	return export.Download(img)
}

// HTML builds sel and writes it as an interactive page.
func (s *Session) HTML(w io.Writer, sel models.Selection) error {
	spec, err := s.Build(sel)
	if err != nil {
		return err
	}
	return export.HTML(w, s.table, spec)
}

// Selection returns the last selection kept by Build.
func (s *Session) Selection() (models.Selection, bool) {
	if s.sel == nil {
		return models.Selection{}, false
	}
	return *s.sel, true
}

// Spec returns the chart built from the current selection, or nil.
func (s *Session) Spec() models.ChartSpec {
	return s.spec
}

// Preview returns the last rendered image. While there is none it draws a
// placeholder carrying the current prompt.
func (s *Session) Preview() (*models.RenderedImage, error) {
	if s.last != nil {
		return s.last, nil
	}
	return render.Placeholder(s.opts.Render.Width, s.opts.Render.Height, s.Prompt())
}

// Prompt returns the message shown while no chart can be drawn.
func (s *Session) Prompt() string {
	if s.table == nil {
		return builder.PromptUpload
	}
	return s.prompt
}

func (s *Session) reset() {
	s.sel, s.spec, s.last = nil, nil, nil
	s.prompt = builder.PromptX
}
