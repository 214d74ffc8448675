package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/render"
)

// Interactive page download name and media type.
const (
	HTMLName      = "plot.html"
	HTMLMediaType = "text/html; charset=utf-8"
)

const secondaryColor = "blue"

// HTML writes an interactive ECharts page of spec over t. It resolves the
// spec like the image renderer does and fails on the same errors.
func HTML(w io.Writer, t *models.Table, spec models.ChartSpec) error {
	plan, err := render.Prepare(t, spec)
	if err != nil {
		return err
	}

	frame := spec.Base()
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(frame.Title),
			ChartID:   "sheetplot",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: frame.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(xAxisOpts(plan.X, frame.X.Limits, plan.Grid)),
		charts.WithYAxisOpts(yAxisOpts(plan.Y, frame.Y.Limits, plan.Grid)),
		charts.WithLegendOpts(legendOpts(plan)),
	}

	var secondary *opts.YAxis
	if d, ok := spec.(models.DualAxis); ok && plan.Y2 != nil {
		y2 := yAxisOpts(*plan.Y2, d.Secondary.Axis.Limits, false)
		y2.AxisLabel = &opts.AxisLabel{Show: opts.Bool(true), Color: secondaryColor}
		y2.AxisLine = &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: secondaryColor}}
		secondary = &y2
	}

	if _, ok := spec.(models.Scatter); ok {
		sc := charts.NewScatter()
		sc.SetGlobalOptions(global...)
		if plan.X.Categories != nil {
			sc.SetXAxis(plan.X.Categories)
		}
		for _, s := range plan.Series {
			sc.AddSeries(s.Label, scatterData(plan, s),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.String()}))
		}
		return renderPage(sc.Render, w)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(global...)
	if secondary != nil {
		line.ExtendYAxis(*secondary)
	}
	if plan.X.Categories != nil {
		line.SetXAxis(plan.X.Categories)
	}
	for _, s := range plan.Series {
		lc := opts.LineChart{ShowSymbol: opts.Bool(false)}
		style := opts.LineStyle{Color: s.Color.String()}
		if s.Secondary {
			lc.YAxisIndex = 1
			style.Type = "dashed"
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.String()}),
			charts.WithLineChartOpts(lc),
			charts.WithLineStyleOpts(style),
		}
		line.AddSeries(s.Label, lineData(plan, s), seriesOpts...)
	}
	return renderPage(line.Render, w)
}

func renderPage(fn func(io.Writer) error, w io.Writer) error {
	if err := fn(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func pageTitle(title string) string {
	if title == "" {
		return "sheetplot"
	}
	return title
}

func axisType(a render.AxisPlan) string {
	switch {
	case a.Categories != nil:
		return "category"
	case a.Scale == models.ScaleLog:
		return "log"
	}
	return "value"
}

func xAxisOpts(a render.AxisPlan, lim *models.Limits, grid bool) opts.XAxis {
	ax := opts.XAxis{
		Name:      a.Label,
		Type:      axisType(a),
		SplitLine: &opts.SplitLine{Show: opts.Bool(grid)},
	}
	if lim != nil && a.Categories == nil {
		ax.Min, ax.Max = math.Min(lim.Min, lim.Max), math.Max(lim.Min, lim.Max)
	}
	return ax
}

func yAxisOpts(a render.AxisPlan, lim *models.Limits, grid bool) opts.YAxis {
	ax := opts.YAxis{
		Name:      a.Label,
		Type:      axisType(a),
		SplitLine: &opts.SplitLine{Show: opts.Bool(grid)},
	}
	if lim != nil && a.Categories == nil {
		ax.Min, ax.Max = math.Min(lim.Min, lim.Max), math.Max(lim.Min, lim.Max)
	}
	return ax
}

// legendOpts places one legend listing every series at the resolved
// anchor of the first legend box.
func legendOpts(plan *render.Plan) opts.Legend {
	if len(plan.Legends) == 0 {
		return opts.Legend{Show: opts.Bool(false)}
	}
	l := opts.Legend{Show: opts.Bool(true), Left: "right", Top: "top"}
	switch plan.Legends[0].Anchor {
	case models.LegendUpperLeft, models.LegendLowerLeft:
		l.Left = "left"
	case models.LegendUpperCenter, models.LegendLowerCenter:
		l.Left = "center"
	}
	switch plan.Legends[0].Anchor {
	case models.LegendLowerLeft, models.LegendLowerRight, models.LegendLowerCenter:
		l.Top = "bottom"
	}
	return l
}

// dataValue converts a plot-space value back to data units. Missing values
// become "-", which ECharts draws as a gap.
func dataValue(a render.AxisPlan, v float64) interface{} {
	if math.IsNaN(v) {
		return "-"
	}
	if a.Scale == models.ScaleLog && a.Categories == nil {
		return math.Pow(10, v)
	}
	return v
}

func yAxisOf(plan *render.Plan, s render.SeriesPlan) render.AxisPlan {
	if s.Secondary && plan.Y2 != nil {
		return *plan.Y2
	}
	return plan.Y
}

func lineData(plan *render.Plan, s render.SeriesPlan) []opts.LineData {
	yAxis := yAxisOf(plan, s)
	out := make([]opts.LineData, len(s.X))
	for i := range s.X {
		out[i] = opts.LineData{Value: []interface{}{dataValue(plan.X, s.X[i]), dataValue(yAxis, s.Y[i])}}
	}
	return out
}

func scatterData(plan *render.Plan, s render.SeriesPlan) []opts.ScatterData {
	yAxis := yAxisOf(plan, s)
	var out []opts.ScatterData
	for i := range s.X {
		if math.IsNaN(s.X[i]) || math.IsNaN(s.Y[i]) {
			continue
		}
		out = append(out, opts.ScatterData{
			Value:      []interface{}{dataValue(plan.X, s.X[i]), dataValue(yAxis, s.Y[i])},
			SymbolSize: 6,
		})
	}
	return out
}
