package render

import (
	"math"
	"strings"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plan is a chart spec resolved against a table: series values in plot
// space, axis ranges with their ticks, and legend placement. Drawing a
// plan involves no further decisions.
type Plan struct {
	Title   string
	Grid    bool
	X       AxisPlan
	Y       AxisPlan
	Y2      *AxisPlan
	Series  []SeriesPlan
	Legends []LegendPlan
}

// AxisPlan is one resolved axis. Min and Max are in plot space (log10 of
// the data on log axes) with Min < Max; Descending flips the direction.
type AxisPlan struct {
	Label      string
	Scale      models.Scale
	Min, Max   float64
	Descending bool
	// Categories holds the labels of a categorical axis, nil otherwise.
	Categories []string
	Ticks      []chart.Tick
}

// fraction maps a plot-space value to its position along the axis, 0 at
// the start and 1 at the end.
func (a AxisPlan) fraction(v float64) float64 {
	f := (v - a.Min) / (a.Max - a.Min)
	if a.Descending {
		return 1 - f
	}
	return f
}

// at is the inverse of fraction.
func (a AxisPlan) at(f float64) float64 {
	if a.Descending {
		f = 1 - f
	}
	return a.Min + f*(a.Max-a.Min)
}

// SeriesPlan is one series in plot space. NaN in either slice breaks a line.
type SeriesPlan struct {
	Label     string
	X         []float64
	Y         []float64
	Secondary bool
	Scatter   bool
	Color     drawing.Color
}

// LegendPlan is one legend box: its resolved anchor and the series it lists.
type LegendPlan struct {
	Anchor models.Legend
	Series []int
}

// Prepare resolves spec against t. It fails with an InvalidScaleError when a
// log axis meets text, non-positive data or non-positive limits.
func Prepare(t *models.Table, spec models.ChartSpec) (*Plan, error) {
	if t == nil {
		return nil, models.ErrNoTable
	}
	if spec == nil {
		return nil, models.Incomplete("")
	}

	if d, ok := spec.(models.DualAxis); ok && len(d.Primary) == 0 {
		return nil, models.NewPreconditionError("", "dual-axis chart needs at least one primary line")
	}

	frame := spec.Base()
	axes := map[string]*axisBuilder{
		"x": newAxisBuilder("x", frame.X),
		"y": newAxisBuilder("y", frame.Y),
	}
	if d, ok := spec.(models.DualAxis); ok && d.HasSecondary() {
		axes["y2"] = newAxisBuilder("y2", d.Secondary.Axis)
	}
	yAxisOf := func(s models.Series) *axisBuilder {
		if s.Secondary && axes["y2"] != nil {
			return axes["y2"]
		}
		return axes["y"]
	}

	series := spec.Series()
	cols := make([][2]*models.Column, len(series))
	for i, s := range series {
		xc, ok := t.Column(s.X)
		if !ok {
			return nil, models.NewPreconditionError(s.X, "column not found in table")
		}
		yc, ok := t.Column(s.Y)
		if !ok {
			return nil, models.NewPreconditionError(s.Y, "column not found in table")
		}
		cols[i] = [2]*models.Column{xc, yc}
		axes["x"].observe(xc)
		yAxisOf(s).observe(yc)
	}

	_, scatter := spec.(models.Scatter)
	plan := &Plan{Title: frame.Title, Grid: frame.Grid}
	for i, s := range series {
		xs, err := axes["x"].values(cols[i][0])
		if err != nil {
			return nil, err
		}
		ys, err := yAxisOf(s).values(cols[i][1])
		if err != nil {
			return nil, err
		}
		plan.Series = append(plan.Series, SeriesPlan{
			Label:     s.DisplayLabel(),
			X:         xs,
			Y:         ys,
			Secondary: s.Secondary && axes["y2"] != nil,
			Scatter:   scatter,
			Color:     seriesColor(i),
		})
	}

	var err error
	if plan.X, err = axes["x"].finish(); err != nil {
		return nil, err
	}
	if plan.Y, err = axes["y"].finish(); err != nil {
		return nil, err
	}
	if b := axes["y2"]; b != nil {
		y2, err := b.finish()
		if err != nil {
			return nil, err
		}
		plan.Y2 = &y2
	}

	plan.Legends = planLegends(spec, plan)
	return plan, nil
}

// axisBuilder collects the data drawn against one axis.
type axisBuilder struct {
	name        string
	axis        models.Axis
	categorical bool
	categories  []string
	index       map[string]int
	lo, hi      float64
	seen        bool
}

func newAxisBuilder(name string, axis models.Axis) *axisBuilder {
	if axis.Scale == "" {
		axis.Scale = models.ScaleLinear
	}
	return &axisBuilder{name: name, axis: axis, index: make(map[string]int)}
}

// observe marks the axis categorical as soon as one of its columns is text.
func (a *axisBuilder) observe(col *models.Column) {
	if !col.IsNumeric() {
		a.categorical = true
	}
}

func (a *axisBuilder) note(v float64) {
	if !a.seen {
		a.lo, a.hi, a.seen = v, v, true
		return
	}
	a.lo = math.Min(a.lo, v)
	a.hi = math.Max(a.hi, v)
}

// values converts a column to plot-space values for this axis.
func (a *axisBuilder) values(col *models.Column) ([]float64, error) {
	out := make([]float64, col.Len())

	if a.categorical {
		if a.axis.Scale == models.ScaleLog {
			return nil, &models.InvalidScaleError{Axis: a.name, Column: col.Name, Value: math.NaN(),
				Reason: "log scale needs numeric data"}
		}
		for i, text := range col.Text {
			text = strings.TrimSpace(text)
			if text == "" {
				out[i] = math.NaN()
				continue
			}
			idx, ok := a.index[text]
			if !ok {
				idx = len(a.categories)
				a.index[text] = idx
				a.categories = append(a.categories, text)
			}
			out[i] = float64(idx)
			a.note(out[i])
		}
		return out, nil
	}

	for i, v := range col.Numbers {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		if a.axis.Scale == models.ScaleLog {
			if v <= 0 {
				return nil, &models.InvalidScaleError{Axis: a.name, Column: col.Name, Value: v,
					Reason: "log scale needs positive values"}
			}
			v = math.Log10(v)
		}
		out[i] = v
		a.note(v)
	}
	return out, nil
}

// finish computes the range and ticks of the axis.
func (a *axisBuilder) finish() (AxisPlan, error) {
	p := AxisPlan{Label: a.axis.Label, Scale: a.axis.Scale, Categories: a.categories}
	log := a.axis.Scale == models.ScaleLog

	var lo, hi float64
	switch {
	case a.axis.Limits != nil:
		lo, hi = a.axis.Limits.Min, a.axis.Limits.Max
		if log {
			if lo <= 0 || hi <= 0 {
				return AxisPlan{}, &models.InvalidScaleError{Axis: a.name, Value: math.Min(lo, hi),
					Reason: "log scale needs positive limits"}
			}
			lo, hi = math.Log10(lo), math.Log10(hi)
		}
		if lo > hi {
			lo, hi = hi, lo
			p.Descending = true
		}
		if lo == hi {
			lo, hi = widen(lo)
		}
	case a.seen:
		lo, hi = paddedBounds(a.lo, a.hi)
	default:
		lo, hi = 0, 1
	}
	p.Min, p.Max = lo, hi

	var ticks []chart.Tick
	switch {
	case a.categorical:
		ticks = categoryTicks(a.categories, lo, hi)
	case log:
		ticks = logTicks(lo, hi)
	default:
		ticks = niceTicks(lo, hi, desiredTicks, formatTick)
	}
	p.Ticks = withBounds(ticks, lo, hi)
	return p, nil
}
