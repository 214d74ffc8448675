package models

import (
	"fmt"
	"strings"
)

// ChartKind names one of the supported chart configurations.
type ChartKind string

const (
	// ChartLine draws one Y column against one X column.
	ChartLine ChartKind = "line"
	// ChartSharedX draws several Y columns against one X column.
	ChartSharedX ChartKind = "shared_x"
	// ChartSharedY draws one Y column against several X columns.
	ChartSharedY ChartKind = "shared_y"
	// ChartDualAxis draws up to ten lines split over a primary and a secondary Y axis.
	ChartDualAxis ChartKind = "dual_axis"
	// ChartScatter draws one Y column against one X column as points.
	ChartScatter ChartKind = "scatter"
)

// ChartKinds lists the chart kinds in presentation order.
var ChartKinds = []ChartKind{ChartLine, ChartSharedX, ChartSharedY, ChartDualAxis, ChartScatter}

// ParseChartKind parses a chart kind name. Dashes and spaces are accepted in
// place of underscores.
func ParseChartKind(s string) (ChartKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "line", "single_line":
		return ChartLine, nil
	case "shared_x", "same_x":
		return ChartSharedX, nil
	case "shared_y", "same_y":
		return ChartSharedY, nil
	case "dual_axis", "two_y", "dual":
		return ChartDualAxis, nil
	case "scatter":
		return ChartScatter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Scale is an axis scale.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale parses an axis scale; the empty string means linear.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ScaleLinear, nil
	case "log":
		return ScaleLog, nil
	}
	return "", fmt.Errorf("%w %q (must be linear or log)", ErrUnknownScale, s)
}

// Legend is the anchor a legend box is placed at inside the plot area.
type Legend string

const (
	LegendBest        Legend = "best"
	LegendUpperRight  Legend = "upper right"
	LegendUpperLeft   Legend = "upper left"
	LegendUpperCenter Legend = "upper center"
	LegendLowerRight  Legend = "lower right"
	LegendLowerLeft   Legend = "lower left"
	LegendLowerCenter Legend = "lower center"
)

// LegendAnchors lists the legend anchors offered to the user.
var LegendAnchors = []Legend{
	LegendBest, LegendUpperRight, LegendUpperLeft, LegendUpperCenter,
	LegendLowerRight, LegendLowerLeft, LegendLowerCenter,
}

// ParseLegend parses a legend anchor; the empty string means best.
// Underscores and dashes are accepted in place of spaces.
func ParseLegend(s string) (Legend, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	if norm == "" {
		return LegendBest, nil
	}
	for _, l := range LegendAnchors {
		if string(l) == norm {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid legend location %q", s)
}

// Limits is an explicit axis range in data units. Min greater than Max
// draws a descending axis.
type Limits struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Axis holds the label, scale and optional limits of one axis.
type Axis struct {
	Label  string  `json:"label"`
	Scale  Scale   `json:"scale"`
	Limits *Limits `json:"limits,omitempty"`
}

// Series is one (X column, Y column, label, axis group) tuple drawn as a
// single line or point set.
type Series struct {
	X         string `json:"x"`
	Y         string `json:"y"`
	Label     string `json:"label,omitempty"`
	Secondary bool   `json:"secondary,omitempty"`
}

// DisplayLabel returns the legend text of the series: its label, or the Y
// column name when no label is set.
func (s Series) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Y
}

// Frame holds the parts every chart variant has.
type Frame struct {
	Title string `json:"title"`
	X     Axis   `json:"x_axis"`
	Y     Axis   `json:"y_axis"`
	Grid  bool   `json:"grid"`
}

// Base returns the frame itself; it lets variants expose their embedded frame.
func (f Frame) Base() Frame {
	return f
}

// ChartSpec is a validated chart configuration. It is implemented by
// SingleLine, MultiLineSharedX, MultiLineSharedY, DualAxis and Scatter.
type ChartSpec interface {
	Kind() ChartKind
	Base() Frame
	// Series returns the series in declaration order.
	Series() []Series
	// Columns returns every referenced column name, without duplicates.
	Columns() []string
	chartSpec()
}

// SingleLine draws one line.
type SingleLine struct {
	Frame
	XColumn string `json:"x"`
	YColumn string `json:"y"`
}

func (SingleLine) Kind() ChartKind { return ChartLine }
func (SingleLine) chartSpec()      {}

func (c SingleLine) Series() []Series {
	return []Series{{X: c.XColumn, Y: c.YColumn}}
}

func (c SingleLine) Columns() []string { return columnsOf(c.Series()) }

// Scatter draws one point set.
type Scatter struct {
	Frame
	XColumn string `json:"x"`
	YColumn string `json:"y"`
}

func (Scatter) Kind() ChartKind { return ChartScatter }
func (Scatter) chartSpec()      {}

func (c Scatter) Series() []Series {
	return []Series{{X: c.XColumn, Y: c.YColumn}}
}

func (c Scatter) Columns() []string { return columnsOf(c.Series()) }

// MultiLineSharedX draws one line per Y column against a common X column.
type MultiLineSharedX struct {
	Frame
	XColumn  string   `json:"x"`
	YColumns []string `json:"y"`
	Legend   Legend   `json:"legend"`
}

func (MultiLineSharedX) Kind() ChartKind { return ChartSharedX }
func (MultiLineSharedX) chartSpec()      {}

func (c MultiLineSharedX) Series() []Series {
	out := make([]Series, len(c.YColumns))
	for i, y := range c.YColumns {
		out[i] = Series{X: c.XColumn, Y: y, Label: y}
	}
	return out
}

func (c MultiLineSharedX) Columns() []string { return columnsOf(c.Series()) }

// MultiLineSharedY draws one line per X column against a common Y column.
type MultiLineSharedY struct {
	Frame
	XColumns []string `json:"x"`
	YColumn  string   `json:"y"`
	Legend   Legend   `json:"legend"`
}

func (MultiLineSharedY) Kind() ChartKind { return ChartSharedY }
func (MultiLineSharedY) chartSpec()      {}

func (c MultiLineSharedY) Series() []Series {
	out := make([]Series, len(c.XColumns))
	for i, x := range c.XColumns {
		out[i] = Series{X: x, Y: c.YColumn, Label: x}
	}
	return out
}

func (c MultiLineSharedY) Columns() []string { return columnsOf(c.Series()) }

// SecondaryGroup is the set of series drawn against the right-hand Y axis.
type SecondaryGroup struct {
	Series []Series `json:"series"`
	Axis   Axis     `json:"axis"`
	Legend Legend   `json:"legend"`
}

// DualAxis draws lines over a primary Y axis and, when any line asks for
// it, an independently scaled secondary Y axis sharing the plot area.
// Primary must hold at least one series; the builder refuses a selection
// without one and render.Prepare rejects such a spec.
type DualAxis struct {
	Frame
	Primary   []Series        `json:"primary"`
	Legend    Legend          `json:"legend"`
	Secondary *SecondaryGroup `json:"secondary,omitempty"`
}

func (DualAxis) Kind() ChartKind { return ChartDualAxis }
func (DualAxis) chartSpec()      {}

// Series returns the primary series followed by the secondary ones.
func (c DualAxis) Series() []Series {
	out := append([]Series(nil), c.Primary...)
	if c.Secondary != nil {
		out = append(out, c.Secondary.Series...)
	}
	return out
}

func (c DualAxis) Columns() []string { return columnsOf(c.Series()) }

// HasSecondary reports whether any series is drawn on the secondary axis.
func (c DualAxis) HasSecondary() bool {
	return c.Secondary != nil && len(c.Secondary.Series) > 0
}

// LegendOf returns the legend anchor of a chart, and false for variants
// that draw no legend.
func LegendOf(spec ChartSpec) (Legend, bool) {
	switch c := spec.(type) {
	case MultiLineSharedX:
		return c.Legend, true
	case MultiLineSharedY:
		return c.Legend, true
	case DualAxis:
		return c.Legend, true
	}
	return "", false
}

func columnsOf(series []Series) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range series {
		for _, name := range []string{s.X, s.Y} {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
