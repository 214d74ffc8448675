// Package builder turns raw form selections into validated chart specs.
//
// Build never touches the renderer: it only checks the selection against
// the loaded table and assembles one of the models.ChartSpec variants.
// A selection that is still being filled in yields models.ErrIncomplete
// together with the prompt to show the user.
package builder

import (
	"fmt"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// MaxLines is the largest number of dual-axis lines.
const MaxLines = 10

// Prompts shown while a selection is incomplete.
const (
	PromptUpload  = "Waiting on file to be uploaded"
	PromptX       = "Please select data for X-axis"
	PromptY       = "Please select data for the Y-axis"
	PromptLines   = "Please select data for every line"
	PromptPrimary = "Please put at least one line on the primary Y-axis"
)

// Build validates sel against t and returns the chart spec it describes.
func Build(t *models.Table, sel models.Selection) (models.ChartSpec, error) {
	if t == nil {
		return nil, models.Incomplete(PromptUpload)
	}

	kind, err := models.ParseChartKind(string(sel.Kind))
	if err != nil {
		return nil, err
	}

	frame, err := newFrame(sel)
	if err != nil {
		return nil, err
	}

	var spec models.ChartSpec
	switch kind {
	case models.ChartLine, models.ChartScatter:
		spec, err = buildSingle(kind, frame, sel)
	case models.ChartSharedX:
		spec, err = buildSharedX(frame, sel)
	case models.ChartSharedY:
		spec, err = buildSharedY(frame, sel)
	case models.ChartDualAxis:
		spec, err = buildDualAxis(frame, sel)
	}
	if err != nil {
		return nil, err
	}

	for _, name := range spec.Columns() {
		if !t.Has(name) {
			return nil, models.NewPreconditionError(name, "column not found in table")
		}
	}

	if sel.EditLimits {
		return withLimits(t, spec, sel)
	}
	return spec, nil
}

func newFrame(sel models.Selection) (models.Frame, error) {
	xScale, err := parseScale("x", sel.XScale)
	if err != nil {
		return models.Frame{}, err
	}
	yScale, err := parseScale("y", sel.YScale)
	if err != nil {
		return models.Frame{}, err
	}
	return models.Frame{
		Title: sel.Title,
		X:     models.Axis{Label: sel.XLabel, Scale: xScale},
		Y:     models.Axis{Label: sel.YLabel, Scale: yScale},
		Grid:  sel.Grid == nil || *sel.Grid,
	}, nil
}

func parseScale(axis string, s models.Scale) (models.Scale, error) {
	scale, err := models.ParseScale(string(s))
	if err != nil {
		return "", fmt.Errorf("%s axis: %w", axis, err)
	}
	return scale, nil
}

func parseLegend(l models.Legend) (models.Legend, error) {
	legend, err := models.ParseLegend(string(l))
	if err != nil {
		return "", models.NewPreconditionError("", err.Error())
	}
	return legend, nil
}

func buildSingle(kind models.ChartKind, frame models.Frame, sel models.Selection) (models.ChartSpec, error) {
	if sel.X == "" {
		return nil, models.Incomplete(PromptX)
	}
	if sel.Y == "" {
		return nil, models.Incomplete(PromptY)
	}
	if kind == models.ChartScatter {
		return models.Scatter{Frame: frame, XColumn: sel.X, YColumn: sel.Y}, nil
	}
	return models.SingleLine{Frame: frame, XColumn: sel.X, YColumn: sel.Y}, nil
}

func buildSharedX(frame models.Frame, sel models.Selection) (models.ChartSpec, error) {
	if sel.X == "" {
		return nil, models.Incomplete(PromptX)
	}
	ys := nonEmpty(sel.YColumns)
	if len(ys) == 0 {
		return nil, models.Incomplete(PromptY)
	}
	legend, err := parseLegend(sel.Legend)
	if err != nil {
		return nil, err
	}
	return models.MultiLineSharedX{Frame: frame, XColumn: sel.X, YColumns: ys, Legend: legend}, nil
}

func buildSharedY(frame models.Frame, sel models.Selection) (models.ChartSpec, error) {
	xs := nonEmpty(sel.XColumns)
	if len(xs) == 0 {
		return nil, models.Incomplete(PromptX)
	}
	if sel.Y == "" {
		return nil, models.Incomplete(PromptY)
	}
	legend, err := parseLegend(sel.Legend)
	if err != nil {
		return nil, err
	}
	return models.MultiLineSharedY{Frame: frame, XColumns: xs, YColumn: sel.Y, Legend: legend}, nil
}

func buildDualAxis(frame models.Frame, sel models.Selection) (models.ChartSpec, error) {
	count := sel.LineCount
	if count == 0 {
		count = len(sel.Lines)
		if count == 0 {
			return nil, models.Incomplete(PromptLines)
		}
	}
	if count < 1 || count > MaxLines {
		return nil, models.NewPreconditionError("",
			fmt.Sprintf("number of lines must be between 1 and %d, got %d", MaxLines, count))
	}
	if len(sel.Lines) < count {
		return nil, models.Incomplete(PromptLines)
	}

	var primary, secondary []models.Series
	for i, line := range sel.Lines[:count] {
		if line.X == "" {
			return nil, models.Incomplete(PromptX)
		}
		if line.Y == "" {
			return nil, models.Incomplete(PromptY)
		}
		label := line.Label
		if label == "" {
			label = DefaultLineLabel(i)
		}
		s := models.Series{X: line.X, Y: line.Y, Label: label, Secondary: line.Secondary}
		if line.Secondary {
			secondary = append(secondary, s)
		} else {
			primary = append(primary, s)
		}
	}
	if len(primary) == 0 {
		return nil, models.Incomplete(PromptPrimary)
	}

	legend, err := parseLegend(sel.Legend)
	if err != nil {
		return nil, err
	}
	spec := models.DualAxis{Frame: frame, Primary: primary, Legend: legend}

	if len(secondary) > 0 {
		scale, err := parseScale("y2", sel.Y2Scale)
		if err != nil {
			return nil, err
		}
		legend2, err := parseLegend(sel.Legend2)
		if err != nil {
			return nil, err
		}
		spec.Secondary = &models.SecondaryGroup{
			Series: secondary,
			Axis:   models.Axis{Label: sel.Y2Label, Scale: scale},
			Legend: legend2,
		}
	}
	return spec, nil
}

func nonEmpty(names []string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
