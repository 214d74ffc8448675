package builder

import (
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// AxisLimits is the default range of one axis and the column it comes from.
type AxisLimits struct {
	Column string        `json:"column"`
	Limits models.Limits `json:"limits"`
}

// LimitDefaults holds the values an "edit axis" form starts from.
type LimitDefaults struct {
	X  AxisLimits  `json:"x"`
	Y  AxisLimits  `json:"y"`
	Y2 *AxisLimits `json:"y2,omitempty"`
}

// DefaultLimits returns the observed range of a numeric column, skipping
// empty cells. It depends only on the table and the column name.
func DefaultLimits(t *models.Table, column string) (models.Limits, error) {
	col, ok := t.Column(column)
	if !ok {
		return models.Limits{}, models.NewPreconditionError(column, "column not found in table")
	}
	if !col.IsNumeric() {
		return models.Limits{}, models.NewPreconditionError(column, "axis limits need a numeric column")
	}
	lo, hi, ok := col.MinMax()
	if !ok {
		return models.Limits{}, models.NewPreconditionError(column, "column has no values")
	}
	return models.Limits{Min: lo, Max: hi}, nil
}

// ReferenceColumns returns the columns whose ranges seed the X, Y and
// secondary Y limits of spec. The secondary column is "" when the chart has
// no secondary axis.
func ReferenceColumns(spec models.ChartSpec) (x, y, y2 string) {
	series := spec.Series()
	if len(series) > 0 {
		x, y = series[0].X, series[0].Y
	}
	if d, ok := spec.(models.DualAxis); ok && d.HasSecondary() {
		y2 = d.Secondary.Series[0].Y
	}
	return x, y, y2
}

// FormLimits returns the default limits for the chart sel describes.
func FormLimits(t *models.Table, sel models.Selection) (LimitDefaults, error) {
	sel.EditLimits = false
	spec, err := Build(t, sel)
	if err != nil {
		return LimitDefaults{}, err
	}

	xCol, yCol, y2Col := ReferenceColumns(spec)
	var out LimitDefaults
	if out.X, err = axisLimits(t, xCol); err != nil {
		return LimitDefaults{}, err
	}
	if out.Y, err = axisLimits(t, yCol); err != nil {
		return LimitDefaults{}, err
	}
	if y2Col != "" {
		y2, err := axisLimits(t, y2Col)
		if err != nil {
			return LimitDefaults{}, err
		}
		out.Y2 = &y2
	}
	return out, nil
}

func axisLimits(t *models.Table, column string) (AxisLimits, error) {
	lim, err := DefaultLimits(t, column)
	if err != nil {
		return AxisLimits{}, err
	}
	return AxisLimits{Column: column, Limits: lim}, nil
}

// resolveLimits applies an override to the default range of column. An
// override entered against another column is stale and ignored.
func resolveLimits(t *models.Table, column string, override *models.LimitOverride) (*models.Limits, error) {
	lim, err := DefaultLimits(t, column)
	if err != nil {
		return nil, err
	}
	if override.AppliesTo(column) {
		if override.Min != nil {
			lim.Min = *override.Min
		}
		if override.Max != nil {
			lim.Max = *override.Max
		}
	}
	return &lim, nil
}

// withLimits gives every axis of spec explicit limits.
func withLimits(t *models.Table, spec models.ChartSpec, sel models.Selection) (models.ChartSpec, error) {
	xCol, yCol, y2Col := ReferenceColumns(spec)

	xLim, err := resolveLimits(t, xCol, sel.XLimits)
	if err != nil {
		return nil, err
	}
	yLim, err := resolveLimits(t, yCol, sel.YLimits)
	if err != nil {
		return nil, err
	}

	setFrame := func(f *models.Frame) {
		f.X.Limits = xLim
		f.Y.Limits = yLim
	}

	switch c := spec.(type) {
	case models.SingleLine:
		setFrame(&c.Frame)
		return c, nil
	case models.Scatter:
		setFrame(&c.Frame)
		return c, nil
	case models.MultiLineSharedX:
		setFrame(&c.Frame)
		return c, nil
	case models.MultiLineSharedY:
		setFrame(&c.Frame)
		return c, nil
	case models.DualAxis:
		setFrame(&c.Frame)
		if y2Col != "" {
			y2Lim, err := resolveLimits(t, y2Col, sel.Y2Limits)
			if err != nil {
				return nil, err
			}
			group := *c.Secondary
			group.Axis.Limits = y2Lim
			c.Secondary = &group
		}
		return c, nil
	}
	return spec, nil
}
