package builder

import (
	"errors"
	"math"
	"testing"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

func sampleTable() *models.Table {
	return models.NewTable("book.xlsx", "Sheet1", []models.Column{
		models.NewNumericColumn("Time", 1, 2, 3, 4),
		models.NewNumericColumn("Temp", 20, 25, math.NaN(), 18),
		models.NewNumericColumn("Load", 5, 7, 6, 9),
		models.NewNumericColumn("Gain", -3, 0, 4, 2),
		models.NewTextColumn("Site", "a", "b", "c", "d"),
	})
}

func TestBuildIncomplete(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		sel    models.Selection
		prompt string
	}{
		{"line without x", models.Selection{Kind: models.ChartLine, Y: "Temp"}, PromptX},
		{"line without y", models.Selection{Kind: models.ChartLine, X: "Time"}, PromptY},
		{"scatter without y", models.Selection{Kind: models.ChartScatter, X: "Time"}, PromptY},
		{"shared x without y columns", models.Selection{Kind: models.ChartSharedX, X: "Time"}, PromptY},
		{"shared x with blank y columns", models.Selection{Kind: models.ChartSharedX, X: "Time", YColumns: []string{""}}, PromptY},
		{"shared y without x columns", models.Selection{Kind: models.ChartSharedY, Y: "Temp"}, PromptX},
		{"dual axis without lines", models.Selection{Kind: models.ChartDualAxis}, PromptLines},
		{"dual axis short of lines", models.Selection{
			Kind:      models.ChartDualAxis,
			LineCount: 2,
			Lines:     []models.LineSelection{{X: "Time", Y: "Temp"}},
		}, PromptLines},
		{"dual axis blank y", models.Selection{
			Kind:  models.ChartDualAxis,
			Lines: []models.LineSelection{{X: "Time"}},
		}, PromptY},
		{"dual axis all secondary", models.Selection{
			Kind:  models.ChartDualAxis,
			Lines: []models.LineSelection{{X: "Time", Y: "Temp", Secondary: true}},
		}, PromptPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Build(table, tt.sel)
			if !errors.Is(err, models.ErrIncomplete) {
				t.Fatalf("Expected ErrIncomplete, got spec=%v err=%v", spec, err)
			}
			if spec != nil {
				t.Errorf("Expected no spec for an incomplete selection")
			}
			if got := models.PromptOf(err); got != tt.prompt {
				t.Errorf("Expected prompt %q, got %q", tt.prompt, got)
			}
		})
	}
}

func TestBuildNoTable(t *testing.T) {
	_, err := Build(nil, models.Selection{Kind: models.ChartLine, X: "a", Y: "b"})
	if models.PromptOf(err) != PromptUpload {
		t.Errorf("Expected upload prompt, got %v", err)
	}
}

func TestBuildVariants(t *testing.T) {
	table := sampleTable()

	t.Run("single line", func(t *testing.T) {
		spec, err := Build(table, models.Selection{Kind: models.ChartLine, X: "Time", Y: "Temp", Title: "T"})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		line, ok := spec.(models.SingleLine)
		if !ok {
			t.Fatalf("Expected SingleLine, got %T", spec)
		}
		if line.XColumn != "Time" || line.YColumn != "Temp" || line.Title != "T" {
			t.Errorf("Unexpected spec %+v", line)
		}
		if !line.Grid {
			t.Errorf("Grid should default to on")
		}
		if line.X.Scale != models.ScaleLinear {
			t.Errorf("Scale should default to linear, got %q", line.X.Scale)
		}
	})

	t.Run("shared x labels", func(t *testing.T) {
		spec, err := Build(table, models.Selection{Kind: models.ChartSharedX, X: "Time", YColumns: []string{"Temp", "Load"}})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		series := spec.Series()
		if len(series) != 2 || series[0].Label != "Temp" || series[1].Label != "Load" {
			t.Errorf("Unexpected series %+v", series)
		}
		if legend, ok := models.LegendOf(spec); !ok || legend != models.LegendBest {
			t.Errorf("Expected best legend, got %q %v", legend, ok)
		}
	})

	t.Run("shared y", func(t *testing.T) {
		spec, err := Build(table, models.Selection{
			Kind: models.ChartSharedY, XColumns: []string{"Time", "Load"}, Y: "Temp", Legend: "lower left",
		})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		shared := spec.(models.MultiLineSharedY)
		if shared.Legend != models.LegendLowerLeft {
			t.Errorf("Expected lower left legend, got %q", shared.Legend)
		}
		if got := spec.Series()[1]; got.X != "Load" || got.Y != "Temp" {
			t.Errorf("Unexpected second series %+v", got)
		}
	})

	t.Run("grid off", func(t *testing.T) {
		off := false
		spec, err := Build(table, models.Selection{Kind: models.ChartScatter, X: "Time", Y: "Temp", Grid: &off})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if spec.Base().Grid {
			t.Errorf("Expected grid off")
		}
	})
}

func TestBuildDualAxisPartition(t *testing.T) {
	table := sampleTable()
	sel := models.Selection{
		Kind:      models.ChartDualAxis,
		LineCount: 3,
		Lines: []models.LineSelection{
			{X: "Time", Y: "Load", Secondary: true},
			{X: "Time", Y: "Temp"},
			{X: "Time", Y: "Gain", Label: "gain", Secondary: true},
			{X: "Time", Y: "Site"},
		},
		Y2Label: "Right",
		Legend2: "upper left",
	}

	spec, err := Build(table, sel)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	dual := spec.(models.DualAxis)

	if len(dual.Primary) != 1 || dual.Primary[0].Y != "Temp" {
		t.Fatalf("Expected one primary series on Temp, got %+v", dual.Primary)
	}
	if dual.Primary[0].Label != "Label 2" {
		t.Errorf("Expected default label %q, got %q", "Label 2", dual.Primary[0].Label)
	}
	if !dual.HasSecondary() || len(dual.Secondary.Series) != 2 {
		t.Fatalf("Expected two secondary series, got %+v", dual.Secondary)
	}
	if dual.Secondary.Series[0].Y != "Load" || dual.Secondary.Series[1].Label != "gain" {
		t.Errorf("Secondary order not kept: %+v", dual.Secondary.Series)
	}
	if dual.Secondary.Axis.Label != "Right" || dual.Secondary.Legend != models.LegendUpperLeft {
		t.Errorf("Unexpected secondary group %+v", dual.Secondary)
	}

	for i := range sel.Lines {
		sel.Lines[i].Secondary = false
	}
	spec, err = Build(table, sel)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if spec.(models.DualAxis).Secondary != nil {
		t.Errorf("Secondary group should be nil without secondary series")
	}
}

func TestBuildPreconditions(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		sel    models.Selection
		column string
	}{
		{"missing column", models.Selection{Kind: models.ChartLine, X: "Time", Y: "Pressure"}, "Pressure"},
		{"missing shared column", models.Selection{Kind: models.ChartSharedX, X: "Time", YColumns: []string{"Temp", "Gone"}}, "Gone"},
		{"too many lines", models.Selection{Kind: models.ChartDualAxis, LineCount: 11}, ""},
		{"negative lines", models.Selection{Kind: models.ChartDualAxis, LineCount: -1}, ""},
		{"text limit column", models.Selection{Kind: models.ChartLine, X: "Site", Y: "Temp", EditLimits: true}, "Site"},
		{"bad legend", models.Selection{Kind: models.ChartSharedX, X: "Time", YColumns: []string{"Temp"}, Legend: "middle"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(table, tt.sel)
			var pe *models.PreconditionError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected PreconditionError, got %v", err)
			}
			if pe.Column != tt.column {
				t.Errorf("Expected column %q, got %q", tt.column, pe.Column)
			}
		})
	}
}

func TestBuildAfterFileSwap(t *testing.T) {
	sel := models.Selection{Kind: models.ChartLine, X: "Time", Y: "Temp"}
	if _, err := Build(sampleTable(), sel); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	swapped := models.NewTable("other.xlsx", "Sheet1", []models.Column{
		models.NewNumericColumn("Time", 1, 2),
		models.NewNumericColumn("Voltage", 3, 4),
	})
	_, err := Build(swapped, sel)
	var pe *models.PreconditionError
	if !errors.As(err, &pe) || pe.Column != "Temp" {
		t.Errorf("Expected PreconditionError for Temp, got %v", err)
	}
}

func TestBuildUnknownKindAndScale(t *testing.T) {
	table := sampleTable()

	if _, err := Build(table, models.Selection{Kind: "pie"}); !errors.Is(err, models.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}

	_, err := Build(table, models.Selection{Kind: models.ChartLine, X: "Time", Y: "Temp", YScale: "cubic"})
	if !errors.Is(err, models.ErrUnknownScale) {
		t.Errorf("Expected ErrUnknownScale, got %v", err)
	}
	var se *models.InvalidScaleError
	if errors.As(err, &se) {
		t.Errorf("An unknown scale name is not a data problem, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		kind   models.ChartKind
		title  string
		xLabel string
	}{
		{models.ChartLine, "Title1", "X-Axis"},
		{models.ChartSharedX, "Title", "X-axis"},
		{models.ChartSharedY, "Title", "X-axis"},
		{models.ChartDualAxis, "Title", "X-axis"},
		{models.ChartScatter, "Title5", "X-axis"},
	}

	for _, tt := range tests {
		sel, err := Defaults(tt.kind)
		if err != nil {
			t.Fatalf("Defaults(%s) failed: %v", tt.kind, err)
		}
		if sel.Title != tt.title || sel.XLabel != tt.xLabel || sel.YLabel != "Y-axis" {
			t.Errorf("Defaults(%s) = %q/%q/%q", tt.kind, sel.Title, sel.XLabel, sel.YLabel)
		}
	}

	dual, _ := Defaults(models.ChartDualAxis)
	if dual.Y2Label != "Secondary Y-axis" || dual.LineCount != 1 || dual.Lines[0].Label != "Label 1" {
		t.Errorf("Unexpected dual-axis defaults %+v", dual)
	}

	if _, err := Defaults("bogus"); !errors.Is(err, models.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}
