package builder

import (
	"strconv"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// Defaults returns the prefilled form of a chart kind: the titles, axis
// labels, scales and legend anchors a fresh selection starts from. Column
// pickers are left empty.
func Defaults(kind models.ChartKind) (models.Selection, error) {
	kind, err := models.ParseChartKind(string(kind))
	if err != nil {
		return models.Selection{}, err
	}

	sel := models.Selection{
		Kind:   kind,
		Title:  "Title",
		XLabel: "X-axis",
		YLabel: "Y-axis",
		XScale: models.ScaleLinear,
		YScale: models.ScaleLinear,
	}

	switch kind {
	case models.ChartLine:
		sel.Title = "Title1"
		sel.XLabel = "X-Axis"
	case models.ChartScatter:
		sel.Title = "Title5"
	case models.ChartSharedX, models.ChartSharedY:
		sel.Legend = models.LegendBest
	case models.ChartDualAxis:
		sel.Legend = models.LegendBest
		sel.Legend2 = models.LegendBest
		sel.Y2Label = "Secondary Y-axis"
		sel.Y2Scale = models.ScaleLinear
		sel.LineCount = 1
		sel.Lines = []models.LineSelection{{Label: DefaultLineLabel(0)}}
	}
	return sel, nil
}

// DefaultLineLabel returns the label a dual-axis line starts with.
func DefaultLineLabel(i int) string {
	return "Label " + strconv.Itoa(i+1)
}
