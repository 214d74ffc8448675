package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is the series color cycle (the "tab10" qualitative set).
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

var (
	colorSecondaryAxis = drawing.Color{R: 0, G: 0, B: 255, A: 255}
	colorGrid          = drawing.Color{R: 176, G: 176, B: 176, A: 255}
	colorText          = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	colorLegendBorder  = drawing.Color{R: 204, G: 204, B: 204, A: 255}
	colorLegendFill    = drawing.Color{R: 255, G: 255, B: 255, A: 204}
)

// seriesColor returns the color of the i-th series.
func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}
