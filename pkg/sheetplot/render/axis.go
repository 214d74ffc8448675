package render

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

// desiredTicks is the tick count aimed for on numeric axes.
const desiredTicks = 6

// maxCategoryTicks caps the labelled ticks on a categorical axis.
const maxCategoryTicks = 20

// dataMargin is the fraction of the data span added on both sides of an
// axis without explicit limits.
const dataMargin = 0.05

// paddedBounds expands [min,max] by the data margin. A degenerate span is
// widened so the axis always has a positive extent.
func paddedBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, 1
	}
	if max <= min {
		return widen(min)
	}
	pad := (max - min) * dataMargin
	return min - pad, max + pad
}

// widen turns a single value into a small range around it.
func widen(v float64) (float64, float64) {
	delta := math.Abs(v) * dataMargin
	if delta == 0 {
		delta = 1
	}
	return v - delta, v + delta
}

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
// Ticks outside the range are dropped.
func niceTicks(min, max float64, n int, label func(float64) string) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Floor(span/step) + 1
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}

	eps := bestStep * 1e-9
	start := math.Ceil((min-eps)/bestStep) * bestStep
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > max+eps || i > 4*n {
			break
		}
		if math.Abs(v) < eps {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: label(v)})
	}
	return ticks
}

// logTicks returns decade ticks for an axis drawn in log10 space. Narrow
// ranges without two whole decades fall back to nice ticks labelled with
// their linear value.
func logTicks(min, max float64) []chart.Tick {
	first, last := math.Ceil(min), math.Floor(max)
	if last-first < 1 {
		return niceTicks(min, max, desiredTicks, func(v float64) string {
			return formatTick(math.Pow(10, v))
		})
	}
	step := math.Ceil((last - first + 1) / float64(desiredTicks+2))
	var ticks []chart.Tick
	for k := first; k <= last; k += step {
		ticks = append(ticks, chart.Tick{Value: k, Label: formatDecade(k)})
	}
	return ticks
}

// categoryTicks labels the integer positions of a categorical axis.
func categoryTicks(categories []string, min, max float64) []chart.Tick {
	step := 1
	if len(categories) > maxCategoryTicks {
		step = (len(categories) + maxCategoryTicks - 1) / maxCategoryTicks
	}
	var ticks []chart.Tick
	for i := 0; i < len(categories); i += step {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: categories[i]})
	}
	return ticks
}

// withBounds adds unlabelled ticks at the exact range ends so the axis
// keeps the computed range when go-chart derives it from the ticks.
func withBounds(ticks []chart.Tick, min, max float64) []chart.Tick {
	eps := (max - min) * 1e-9
	out := make([]chart.Tick, 0, len(ticks)+2)
	if len(ticks) == 0 || ticks[0].Value > min+eps {
		out = append(out, chart.Tick{Value: min})
	}
	out = append(out, ticks...)
	if len(ticks) == 0 || ticks[len(ticks)-1].Value < max-eps {
		out = append(out, chart.Tick{Value: max})
	}
	return out
}

// formatTick prints a tick value without float noise such as 0.30000000000000004.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func formatDecade(k float64) string {
	if k >= -3 && k <= 5 {
		return strconv.FormatFloat(math.Pow(10, k), 'f', -1, 64)
	}
	return "1e" + strconv.Itoa(int(k))
}
