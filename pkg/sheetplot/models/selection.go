package models

// Selection is the raw form state for one chart: whatever the user has
// picked so far, possibly incomplete. The builder turns it into a ChartSpec.
type Selection struct {
	// Kind is the chart variant.
	Kind ChartKind `json:"kind" yaml:"kind"`

	// X and Y are the single-column pickers (line, scatter, shared X's X,
	// shared Y's Y).
	X string `json:"x,omitempty" yaml:"x,omitempty"`
	Y string `json:"y,omitempty" yaml:"y,omitempty"`
	// XColumns and YColumns are the multi-column pickers.
	XColumns []string `json:"x_columns,omitempty" yaml:"x_columns,omitempty"`
	YColumns []string `json:"y_columns,omitempty" yaml:"y_columns,omitempty"`

	// LineCount is the number of dual-axis lines (1-10). Zero means len(Lines).
	LineCount int `json:"line_count,omitempty" yaml:"line_count,omitempty"`
	// Lines are the dual-axis line definitions.
	Lines []LineSelection `json:"lines,omitempty" yaml:"lines,omitempty"`

	Title   string `json:"title" yaml:"title"`
	XLabel  string `json:"x_label" yaml:"x_label"`
	YLabel  string `json:"y_label" yaml:"y_label"`
	Y2Label string `json:"y2_label,omitempty" yaml:"y2_label,omitempty"`

	XScale  Scale `json:"x_scale,omitempty" yaml:"x_scale,omitempty"`
	YScale  Scale `json:"y_scale,omitempty" yaml:"y_scale,omitempty"`
	Y2Scale Scale `json:"y2_scale,omitempty" yaml:"y2_scale,omitempty"`

	Legend  Legend `json:"legend,omitempty" yaml:"legend,omitempty"`
	Legend2 Legend `json:"legend2,omitempty" yaml:"legend2,omitempty"`

	// Grid toggles primary grid lines; nil means on.
	Grid *bool `json:"grid,omitempty" yaml:"grid,omitempty"`

	// EditLimits is the "edit axis" toggle. When set every axis gets limits,
	// defaulting to the observed range of its reference column.
	EditLimits bool           `json:"edit_limits,omitempty" yaml:"edit_limits,omitempty"`
	XLimits    *LimitOverride `json:"x_limits,omitempty" yaml:"x_limits,omitempty"`
	YLimits    *LimitOverride `json:"y_limits,omitempty" yaml:"y_limits,omitempty"`
	Y2Limits   *LimitOverride `json:"y2_limits,omitempty" yaml:"y2_limits,omitempty"`
}

// LineSelection is one dual-axis line definition.
type LineSelection struct {
	X         string `json:"x" yaml:"x"`
	Y         string `json:"y" yaml:"y"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Secondary bool   `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// LimitOverride is a user edit of an axis range. Column records the column
// the values were entered against; the override is dropped once the axis
// reference column changes. An empty Column applies to any column.
type LimitOverride struct {
	Column string   `json:"column,omitempty" yaml:"column,omitempty"`
	Min    *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// AppliesTo reports whether the override was entered for column.
func (o *LimitOverride) AppliesTo(column string) bool {
	return o != nil && (o.Column == "" || o.Column == column)
}
