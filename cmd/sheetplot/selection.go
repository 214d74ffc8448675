package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/builder"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"gopkg.in/yaml.v3"
)

// selectionFlags holds the chart flags of the render command.
type selectionFlags struct {
	specFile string
	preset   int

	kind      string
	x         []string
	y         []string
	labels    []string
	secondary []int

	title   string
	xlabel  string
	ylabel  string
	y2label string

	xscale  string
	yscale  string
	y2scale string

	legend  string
	legend2 string
	noGrid  bool

	xlim  string
	ylim  string
	y2lim string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.specFile, "spec", "", "YAML chart selection file")
	fl.IntVar(&f.preset, "preset", 0, "Start from the Nth embedded chart (see 'sheetplot presets')")

	fl.StringVar(&f.kind, "kind", "", "Chart kind: line, shared_x, shared_y, dual_axis, scatter")
	fl.StringSliceVar(&f.x, "x", nil, "X column(s)")
	fl.StringSliceVar(&f.y, "y", nil, "Y column(s)")
	fl.StringSliceVar(&f.labels, "label", nil, "Dual-axis line labels")
	fl.IntSliceVar(&f.secondary, "secondary", nil, "Dual-axis lines (1-based) drawn on the secondary axis")

	fl.StringVar(&f.title, "title", "", "Chart title")
	fl.StringVar(&f.xlabel, "xlabel", "", "X axis label")
	fl.StringVar(&f.ylabel, "ylabel", "", "Y axis label")
	fl.StringVar(&f.y2label, "y2label", "", "Secondary Y axis label")

	fl.StringVar(&f.xscale, "xscale", "", "X axis scale: linear or log")
	fl.StringVar(&f.yscale, "yscale", "", "Y axis scale: linear or log")
	fl.StringVar(&f.y2scale, "y2scale", "", "Secondary Y axis scale: linear or log")

	fl.StringVar(&f.legend, "legend", "", "Legend location, e.g. best, \"upper left\", lower_right")
	fl.StringVar(&f.legend2, "legend2", "", "Secondary legend location")
	fl.BoolVar(&f.noGrid, "no-grid", false, "Hide grid lines")

	fl.StringVar(&f.xlim, "xlim", "", "X axis limits as MIN,MAX (either may be empty)")
	fl.StringVar(&f.ylim, "ylim", "", "Y axis limits as MIN,MAX")
	fl.StringVar(&f.y2lim, "y2lim", "", "Secondary Y axis limits as MIN,MAX")
}

// presetLister is implemented by a loaded session.
type presetLister interface {
	Presets() ([]models.Preset, error)
}

// selection assembles the chart selection: a preset or spec file as the
// base, then the flags given on the command line on top.
func (f *selectionFlags) selection(cmd *cobra.Command, src presetLister) (models.Selection, error) {
	var sel models.Selection
	switch {
	case f.preset > 0:
		presets, err := src.Presets()
		if err != nil {
			return sel, err
		}
		if f.preset > len(presets) {
			return sel, fmt.Errorf("preset %d not found (workbook has %d)", f.preset, len(presets))
		}
		sel = presets[f.preset-1].Selection
	case f.specFile != "":
		s, err := loadSelection(f.specFile)
		if err != nil {
			return sel, err
		}
		sel = s
	case f.kind != "":
		s, err := builder.Defaults(models.ChartKind(f.kind))
		if err != nil {
			return sel, err
		}
		sel = s
	default:
		return sel, errors.New("one of --kind, --spec or --preset is required")
	}

	if err := f.apply(cmd, &sel); err != nil {
		return sel, err
	}
	return sel, nil
}

// apply overrides sel with every flag set on cmd.
func (f *selectionFlags) apply(cmd *cobra.Command, sel *models.Selection) error {
	changed := cmd.Flags().Changed

	if changed("kind") {
		kind, err := models.ParseChartKind(f.kind)
		if err != nil {
			return err
		}
		sel.Kind = kind
	}
	if changed("x") || changed("y") {
		if err := f.applyColumns(sel); err != nil {
			return err
		}
	}

	for _, s := range []struct {
		flag string
		dst  *string
		val  string
	}{
		{"title", &sel.Title, f.title},
		{"xlabel", &sel.XLabel, f.xlabel},
		{"ylabel", &sel.YLabel, f.ylabel},
		{"y2label", &sel.Y2Label, f.y2label},
	} {
		if changed(s.flag) {
			*s.dst = s.val
		}
	}

	for _, s := range []struct {
		flag string
		dst  *models.Scale
		val  string
	}{
		{"xscale", &sel.XScale, f.xscale},
		{"yscale", &sel.YScale, f.yscale},
		{"y2scale", &sel.Y2Scale, f.y2scale},
	} {
		if !changed(s.flag) {
			continue
		}
		scale, err := models.ParseScale(s.val)
		if err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
		*s.dst = scale
	}

	for _, s := range []struct {
		flag string
		dst  *models.Legend
		val  string
	}{
		{"legend", &sel.Legend, f.legend},
		{"legend2", &sel.Legend2, f.legend2},
	} {
		if !changed(s.flag) {
			continue
		}
		loc, err := models.ParseLegend(s.val)
		if err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
		*s.dst = loc
	}

	if changed("no-grid") {
		grid := !f.noGrid
		sel.Grid = &grid
	}

	for _, s := range []struct {
		flag string
		dst  **models.LimitOverride
		val  string
	}{
		{"xlim", &sel.XLimits, f.xlim},
		{"ylim", &sel.YLimits, f.ylim},
		{"y2lim", &sel.Y2Limits, f.y2lim},
	} {
		if !changed(s.flag) {
			continue
		}
		lim, err := parseLimits(s.val)
		if err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
		*s.dst = lim
		sel.EditLimits = true
	}
	return nil
}

// applyColumns maps --x and --y onto the pickers of the chart kind. For a
// dual-axis chart the columns pair up into lines; a single X column is
// shared by every line.
func (f *selectionFlags) applyColumns(sel *models.Selection) error {
	kind, err := models.ParseChartKind(string(sel.Kind))
	if err != nil {
		return err
	}
	switch kind {
	case models.ChartLine, models.ChartScatter:
		if len(f.x) > 1 || len(f.y) > 1 {
			return fmt.Errorf("%s charts take one --x and one --y column", kind)
		}
		sel.X, sel.Y = first(f.x), first(f.y)
	case models.ChartSharedX:
		if len(f.x) > 1 {
			return errors.New("shared_x charts take one --x column")
		}
		sel.X, sel.YColumns = first(f.x), f.y
	case models.ChartSharedY:
		if len(f.y) > 1 {
			return errors.New("shared_y charts take one --y column")
		}
		sel.XColumns, sel.Y = f.x, first(f.y)
	case models.ChartDualAxis:
		lines, err := f.lines()
		if err != nil {
			return err
		}
		sel.Lines, sel.LineCount = lines, len(lines)
	}
	return nil
}

func (f *selectionFlags) lines() ([]models.LineSelection, error) {
	if len(f.x) != 1 && len(f.x) != len(f.y) {
		return nil, fmt.Errorf("dual_axis charts need one --x column or one per --y column (got %d and %d)", len(f.x), len(f.y))
	}
	lines := make([]models.LineSelection, len(f.y))
	for i, y := range f.y {
		x := f.x[0]
		if len(f.x) > 1 {
			x = f.x[i]
		}
		label := builder.DefaultLineLabel(i)
		if i < len(f.labels) {
			label = f.labels[i]
		}
		lines[i] = models.LineSelection{X: x, Y: y, Label: label}
	}
	for _, n := range f.secondary {
		if n < 1 || n > len(lines) {
			return nil, fmt.Errorf("--secondary %d out of range 1-%d", n, len(lines))
		}
		lines[n-1].Secondary = true
	}
	return lines, nil
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// parseLimits parses "MIN,MAX". Either bound may be left empty to keep the
// column's observed value.
func parseLimits(s string) (*models.LimitOverride, error) {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid limits %q (want MIN,MAX)", s)
	}
	var lim models.LimitOverride
	for _, b := range []struct {
		text string
		dst  **float64
	}{
		{lo, &lim.Min},
		{hi, &lim.Max},
	} {
		text := strings.TrimSpace(b.text)
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q: %w", text, err)
		}
		*b.dst = &v
	}
	return &lim, nil
}

// loadSelection reads a YAML chart selection. Unknown keys are rejected.
func loadSelection(path string) (models.Selection, error) {
	var sel models.Selection
	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read spec file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sel); err != nil {
		return sel, fmt.Errorf("failed to parse spec file %s: %w", path, err)
	}
	return sel, nil
}
