package render

import (
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/wcharczuk/go-chart/v2"
)

// bestOrder is the order anchors are tried in when placing a "best" legend.
var bestOrder = []models.Legend{
	models.LegendUpperRight,
	models.LegendUpperLeft,
	models.LegendLowerLeft,
	models.LegendLowerRight,
	models.LegendUpperCenter,
	models.LegendLowerCenter,
}

// anchorRegion is the part of the plot area, in axes fractions, a legend at
// the anchor covers for placement purposes.
func anchorRegion(anchor models.Legend) rect {
	var r rect
	switch anchor {
	case models.LegendUpperLeft, models.LegendLowerLeft:
		r.xmin, r.xmax = 0, 0.4
	case models.LegendUpperCenter, models.LegendLowerCenter:
		r.xmin, r.xmax = 0.3, 0.7
	default:
		r.xmin, r.xmax = 0.6, 1
	}
	switch anchor {
	case models.LegendLowerLeft, models.LegendLowerRight, models.LegendLowerCenter:
		r.ymin, r.ymax = 0, 0.4
	default:
		r.ymin, r.ymax = 0.6, 1
	}
	return r
}

// planLegends resolves the legend boxes of spec. Variants without a legend
// get none; a dual-axis chart gets a second box for its secondary series.
func planLegends(spec models.ChartSpec, plan *Plan) []LegendPlan {
	anchor, ok := models.LegendOf(spec)
	if !ok {
		return nil
	}

	var primary, secondary []int
	for i, s := range plan.Series {
		if s.Secondary {
			secondary = append(secondary, i)
		} else {
			primary = append(primary, i)
		}
	}

	points := plan.axesPoints()
	first := resolveAnchor(anchor, points, "")
	legends := []LegendPlan{{Anchor: first, Series: primary}}

	if d, ok := spec.(models.DualAxis); ok && d.HasSecondary() && len(secondary) > 0 {
		legends = append(legends, LegendPlan{
			Anchor: resolveAnchor(d.Secondary.Legend, points, first),
			Series: secondary,
		})
	}
	return legends
}

// resolveAnchor turns "best" into the anchor whose region holds the fewest
// points, skipping exclude. Ties keep the earlier anchor in bestOrder.
func resolveAnchor(anchor models.Legend, points [][2]float64, exclude models.Legend) models.Legend {
	if anchor != models.LegendBest && anchor != "" {
		return anchor
	}
	best := models.LegendUpperRight
	bestCount := math.MaxInt
	for _, candidate := range bestOrder {
		if candidate == exclude {
			continue
		}
		region := anchorRegion(candidate)
		count := 0
		for _, p := range points {
			if region.contains(p[0], p[1]) {
				count++
			}
		}
		if count < bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}

// axesPoints returns every plotted point as axes fractions.
func (p *Plan) axesPoints() [][2]float64 {
	var out [][2]float64
	for _, s := range p.Series {
		yAxis := p.Y
		if s.Secondary && p.Y2 != nil {
			yAxis = *p.Y2
		}
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			fx, fy := p.X.fraction(x), yAxis.fraction(y)
			if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
				continue
			}
			out = append(out, [2]float64{fx, fy})
		}
	}
	return out
}

// Legend layout in pixels.
const (
	legendFontSize = 8.0
	legendPadding  = 5
	legendMargin   = 8
	legendSwatch   = 20
	legendGap      = 5
	legendRowGap   = 3
	legendStackGap = 4
)

// legendElement draws the planned legend boxes inside the plot area.
// Boxes sharing an anchor are stacked away from the anchored edge.
func legendElement(plan *Plan, font *truetype.Font) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if font == nil {
			font = defaults.GetFont()
		}
		offsets := make(map[models.Legend]int)
		for _, lp := range plan.Legends {
			if len(lp.Series) == 0 {
				continue
			}
			r.SetFont(font)
			r.SetFontSize(legendFontSize)
			r.SetFontColor(colorText)

			textW, textH := 0, 0
			for _, i := range lp.Series {
				tb := r.MeasureText(plan.Series[i].Label)
				textW = max(textW, tb.Width())
				textH = max(textH, tb.Height())
			}
			rowH := textH + legendRowGap
			w := 2*legendPadding + legendSwatch + legendGap + textW
			h := 2*legendPadding + len(lp.Series)*rowH - legendRowGap

			left, top := legendOrigin(lp.Anchor, cb, w, h, offsets[lp.Anchor])
			offsets[lp.Anchor] += h + legendStackGap

			r.SetFillColor(colorLegendFill)
			r.SetStrokeColor(colorLegendBorder)
			r.SetStrokeWidth(1)
			r.SetStrokeDashArray(nil)
			r.MoveTo(left, top)
			r.LineTo(left+w, top)
			r.LineTo(left+w, top+h)
			r.LineTo(left, top+h)
			r.LineTo(left, top)
			r.Close()
			r.FillStroke()

			for row, i := range lp.Series {
				s := plan.Series[i]
				rowTop := top + legendPadding + row*rowH
				midY := rowTop + textH/2
				x := left + legendPadding

				if s.Scatter {
					r.SetFillColor(s.Color)
					r.SetStrokeColor(s.Color)
					r.Circle(scatterDotWidth, x+legendSwatch/2, midY)
					r.FillStroke()
				} else {
					r.SetStrokeColor(s.Color)
					r.SetStrokeWidth(lineWidth)
					if s.Secondary {
						r.SetStrokeDashArray(dashPattern)
					} else {
						r.SetStrokeDashArray(nil)
					}
					r.MoveTo(x, midY)
					r.LineTo(x+legendSwatch, midY)
					r.Stroke()
				}

				r.SetFont(font)
				r.SetFontSize(legendFontSize)
				r.SetFontColor(colorText)
				r.Text(s.Label, x+legendSwatch+legendGap, rowTop+textH)
			}
		}
	}
}

// legendOrigin returns the top-left corner of a w x h legend box at anchor,
// pushed offset pixels away from the anchored edge.
func legendOrigin(anchor models.Legend, cb chart.Box, w, h, offset int) (left, top int) {
	switch anchor {
	case models.LegendUpperLeft, models.LegendLowerLeft:
		left = cb.Left + legendMargin
	case models.LegendUpperCenter, models.LegendLowerCenter:
		left = cb.Left + (cb.Width()-w)/2
	default:
		left = cb.Right - legendMargin - w
	}
	switch anchor {
	case models.LegendLowerLeft, models.LegendLowerRight, models.LegendLowerCenter:
		top = cb.Bottom - legendMargin - h - offset
	default:
		top = cb.Top + legendMargin + offset
	}
	return left, top
}
