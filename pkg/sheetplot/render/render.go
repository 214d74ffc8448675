// Package render draws chart specs with go-chart.
//
// Rendering happens in two steps. Prepare resolves a spec against a table
// into a Plan: plot-space values, axis ranges, ticks and legend anchors.
// Draw turns a plan into PNG or SVG bytes. Both steps are deterministic:
// the same table and spec always produce the same bytes.
package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default output geometry: a 6.4 x 4.8 inch figure at 100 DPI.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultDPI    = 100
)

// Series styling.
const (
	lineWidth       = 1.5
	scatterDotWidth = 3.0
	gridWidth       = 0.8
	gridWidth2      = 0.5
)

var dashPattern = []float64{6, 3}

// Options controls the output image.
type Options struct {
	Width  int
	Height int
	DPI    float64
	Format models.ImageFormat
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Format == "" {
		o.Format = models.FormatPNG
	}
	return o
}

// Render draws spec over t.
func Render(t *models.Table, spec models.ChartSpec, opts Options) (*models.RenderedImage, error) {
	plan, err := Prepare(t, spec)
	if err != nil {
		return nil, err
	}
	return Draw(plan, opts)
}

// Draw renders a prepared plan.
func Draw(plan *Plan, opts Options) (*models.RenderedImage, error) {
	opts = opts.withDefaults()

	provider := chart.PNG
	switch opts.Format {
	case models.FormatPNG:
	case models.FormatSVG:
		provider = chart.SVG
	default:
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}

	ch, err := plan.chart(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return &models.RenderedImage{
		Data:   buf.Bytes(),
		Format: opts.Format,
		Width:  opts.Width,
		Height: opts.Height,
	}, nil
}

// chart assembles the go-chart value for the plan.
func (p *Plan) chart(opts Options) (*chart.Chart, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	top := 20
	if p.Title != "" {
		top = 40
	}
	ch := &chart.Chart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontSize: 12, FontColor: colorText},
		Width:      opts.Width,
		Height:     opts.Height,
		DPI:        opts.DPI,
		Font:       font,
		Background: chart.Style{Padding: chart.Box{Top: top, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  p.X.Label,
			Range: p.X.rangeOf(),
			Ticks: p.X.Ticks,
		},
		// go-chart draws YAxisSecondary on the left and YAxis on the right.
		// Every series is plotted against the left axis; the right axis only
		// labels the secondary scale at the matching heights.
		YAxisSecondary: chart.YAxis{
			Name:  p.Y.Label,
			Range: p.Y.rangeOf(),
			Ticks: p.Y.Ticks,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: p.Y.rangeOf(),
			Ticks: p.Y.Ticks,
		},
	}

	if p.Grid {
		ch.XAxis.GridMajorStyle = gridStyle(gridWidth)
		ch.XAxis.GridMinorStyle = gridStyle(gridWidth)
		ch.XAxis.GridLines = gridLines(p.X.Ticks, gridWidth)
		ch.YAxisSecondary.GridMajorStyle = gridStyle(gridWidth)
		ch.YAxisSecondary.GridMinorStyle = gridStyle(gridWidth)
		ch.YAxisSecondary.GridLines = gridLines(p.Y.Ticks, gridWidth)
	}

	if p.Y2 != nil {
		ticks := ticksOnto(p.Y2.Ticks, *p.Y2, p.Y)
		blue := chart.Style{FontColor: colorSecondaryAxis, StrokeColor: colorSecondaryAxis, StrokeWidth: 1}
		ch.YAxis = chart.YAxis{
			Name:      p.Y2.Label,
			NameStyle: chart.Style{FontColor: colorSecondaryAxis},
			Style:     blue,
			TickStyle: blue,
			Range:     p.Y.rangeOf(),
			Ticks:     ticks,
		}
		if p.Grid {
			ch.YAxis.GridMajorStyle = gridStyle(gridWidth2)
			ch.YAxis.GridMinorStyle = gridStyle(gridWidth2)
			ch.YAxis.GridLines = gridLines(ticks, gridWidth2)
		}
	}

	ch.Series = append(ch.Series,
		frameSeries(p.X, p.Y, chart.YAxisSecondary),
		frameSeries(p.X, p.Y, chart.YAxisPrimary))
	for _, s := range p.Series {
		if s.Secondary && p.Y2 != nil {
			s = s.onto(*p.Y2, p.Y)
		}
		ch.Series = append(ch.Series, s.pieces(p.X, p.Y, chart.YAxisSecondary)...)
	}

	if len(p.Legends) > 0 {
		ch.Elements = []chart.Renderable{legendElement(p, font)}
	}
	return ch, nil
}

func (a AxisPlan) rangeOf() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: a.Min, Max: a.Max, Descending: a.Descending}
}

func (a AxisPlan) bounds() (float64, float64) {
	return a.Min, a.Max
}

// ticksOnto moves ticks of axis from to the same positions along axis to,
// keeping their labels.
func ticksOnto(ticks []chart.Tick, from, to AxisPlan) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: to.at(from.fraction(t.Value)), Label: t.Label}
	}
	return out
}

// onto maps the series from axis from to axis to. Gaps stay gaps.
func (s SeriesPlan) onto(from, to AxisPlan) SeriesPlan {
	ys := make([]float64, len(s.Y))
	for i, v := range s.Y {
		if math.IsNaN(v) {
			ys[i] = v
			continue
		}
		ys[i] = to.at(from.fraction(v))
	}
	s.Y = ys
	return s
}

func gridStyle(width float64) chart.Style {
	return chart.Style{StrokeColor: colorGrid, StrokeWidth: width}
}

// gridLines places one major grid line on every labelled tick.
func gridLines(ticks []chart.Tick, width float64) []chart.GridLine {
	var out []chart.GridLine
	for _, t := range ticks {
		if t.Label == "" {
			continue
		}
		out = append(out, chart.GridLine{Value: t.Value, Style: gridStyle(width)})
	}
	return out
}

// frameSeries is an invisible series spanning the axis range, so the axis
// is drawn even when every data point falls outside the limits.
func frameSeries(x, y AxisPlan, axis chart.YAxisType) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		YAxis:   axis,
		XValues: []float64{x.Min, x.Max},
		YValues: []float64{y.Min, y.Max},
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    chart.Disabled,
		},
	}
}

// pieces splits the series into go-chart series: one per unbroken run of
// a line, clipped to the axis ranges, or one holding every visible point
// of a scatter.
func (s SeriesPlan) pieces(xAxis, yAxis AxisPlan, axis chart.YAxisType) []chart.Series {
	clip := rect{}
	clip.xmin, clip.xmax = xAxis.bounds()
	clip.ymin, clip.ymax = yAxis.bounds()

	if s.Scatter {
		var xs, ys []float64
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) || !clip.contains(x, y) {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if len(xs) == 0 {
			return nil
		}
		return []chart.Series{chart.ContinuousSeries{
			Name:    s.Label,
			YAxis:   axis,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: drawing.ColorTransparent,
				DotWidth:    scatterDotWidth,
				DotColor:    s.Color,
			},
		}}
	}

	style := chart.Style{StrokeWidth: lineWidth, StrokeColor: s.Color}
	if s.Secondary {
		style.StrokeDashArray = dashPattern
	}

	var out []chart.Series
	var xs, ys []float64
	flush := func() {
		if len(xs) >= 2 {
			out = append(out, chart.ContinuousSeries{
				Name:    s.Label,
				YAxis:   axis,
				XValues: xs,
				YValues: ys,
				Style:   style,
			})
		}
		xs, ys = nil, nil
	}
	appendPoint := func(x, y float64) {
		if n := len(xs); n > 0 && xs[n-1] == x && ys[n-1] == y {
			return
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	for i := 1; i < len(s.X); i++ {
		x0, y0, x1, y1 := s.X[i-1], s.Y[i-1], s.X[i], s.Y[i]
		if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
			flush()
			continue
		}
		cx0, cy0, cx1, cy1, ok := clipSegment(clip, x0, y0, x1, y1)
		if !ok {
			flush()
			continue
		}
		if cx0 != x0 || cy0 != y0 {
			flush()
		}
		appendPoint(cx0, cy0)
		appendPoint(cx1, cy1)
		if cx1 != x1 || cy1 != y1 {
			flush()
		}
	}
	flush()
	return out
}
