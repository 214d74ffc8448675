package models

// Preset is a ready-made selection derived from a chart embedded in the
// uploaded workbook.
type Preset struct {
	// Name is the drawing object name, e.g. "Chart 1".
	Name string `json:"name"`
	// ChartType is the workbook chart type (e.g. Line, XYScatter).
	ChartType string `json:"chart_type"`
	// W is the chart frame width in pixels (nil if unknown).
	W *int `json:"w,omitempty"`
	// H is the chart frame height in pixels (nil if unknown).
	H *int `json:"h,omitempty"`
	// Selection reproduces the chart with the table's columns.
	Selection Selection `json:"selection"`
}
