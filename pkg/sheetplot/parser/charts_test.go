package parser

import (
	"strconv"
	"testing"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/xuri/excelize/v2"
)

func chartFixture(t *testing.T, chart *excelize.Chart) ([]byte, *models.Table) {
	t.Helper()
	cells := map[string]any{"A1": "Time", "B1": "Temp", "C1": "Load"}
	for i, row := range [][3]float64{{1, 20, 5}, {2, 21, 7}, {3, 19, 6}, {4, 23, 9}} {
		r := i + 2
		cells["A"+strconv.Itoa(r)] = row[0]
		cells["B"+strconv.Itoa(r)] = row[1]
		cells["C"+strconv.Itoa(r)] = row[2]
	}
	data := workbookBytes(t, cells, func(f *excelize.File) {
		if err := f.AddChart("Sheet1", "E2", chart); err != nil {
			t.Fatalf("AddChart failed: %v", err)
		}
	})
	table, err := LoadTableBytes(data, LoadOptions{Name: "chart.xlsx"})
	if err != nil {
		t.Fatalf("LoadTableBytes failed: %v", err)
	}
	return data, table
}

func TestExtractPresetsSharedX(t *testing.T) {
	data, table := chartFixture(t, &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{Name: "Sheet1!$B$1", Categories: "Sheet1!$A$2:$A$5", Values: "Sheet1!$B$2:$B$5"},
			{Name: "Sheet1!$C$1", Categories: "Sheet1!$A$2:$A$5", Values: "Sheet1!$C$2:$C$5"},
		},
		Title: []excelize.RichTextRun{{Text: "Plant"}},
	})

	presets, err := ExtractPresets(data, table)
	if err != nil {
		t.Fatalf("ExtractPresets failed: %v", err)
	}
	if len(presets) != 1 {
		t.Fatalf("Expected 1 preset, got %d", len(presets))
	}

	p := presets[0]
	if p.ChartType != "Line" {
		t.Errorf("Expected chart type Line, got %s", p.ChartType)
	}
	if p.Name == "" {
		t.Errorf("Expected the drawing object name to be set")
	}
	sel := p.Selection
	if sel.Kind != models.ChartSharedX {
		t.Fatalf("Expected shared_x, got %s", sel.Kind)
	}
	if sel.X != "Time" {
		t.Errorf("Expected X Time, got %q", sel.X)
	}
	if len(sel.YColumns) != 2 || sel.YColumns[0] != "Temp" || sel.YColumns[1] != "Load" {
		t.Errorf("Unexpected Y columns %v", sel.YColumns)
	}
	if sel.Title != "Plant" {
		t.Errorf("Expected title Plant, got %q", sel.Title)
	}
}

func TestExtractPresetsSingleSeries(t *testing.T) {
	tests := []struct {
		name     string
		typ      excelize.ChartType
		expected models.ChartKind
	}{
		{"line", excelize.Line, models.ChartLine},
		{"scatter", excelize.Scatter, models.ChartScatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, table := chartFixture(t, &excelize.Chart{
				Type: tt.typ,
				Series: []excelize.ChartSeries{
					{Name: "Sheet1!$C$1", Categories: "Sheet1!$A$2:$A$5", Values: "Sheet1!$C$2:$C$5"},
				},
			})
			presets, err := ExtractPresets(data, table)
			if err != nil {
				t.Fatalf("ExtractPresets failed: %v", err)
			}
			if len(presets) != 1 {
				t.Fatalf("Expected 1 preset, got %d", len(presets))
			}
			sel := presets[0].Selection
			if sel.Kind != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, sel.Kind)
			}
			if sel.X != "Time" || sel.Y != "Load" {
				t.Errorf("Expected Time/Load, got %q/%q", sel.X, sel.Y)
			}
		})
	}
}

func TestExtractPresetsSkipsForeignRanges(t *testing.T) {
	data, table := chartFixture(t, &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{Categories: "Sheet1!$A$2:$A$5", Values: "Sheet1!$B$2:$C$5"},
		},
	})
	presets, err := ExtractPresets(data, table)
	if err != nil {
		t.Fatalf("ExtractPresets failed: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("Expected multi-column reference to be skipped, got %+v", presets)
	}
}

const dualAxisChartXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<c:chart>
<c:title><c:tx><c:rich><a:p><a:r><a:t>Two </a:t></a:r><a:r><a:t>axes</a:t></a:r></a:p></c:rich></c:tx></c:title>
<c:plotArea>
<c:lineChart>
<c:ser><c:idx val="0"/><c:tx><c:v>Temperature</c:v></c:tx>
<c:cat><c:numRef><c:f>Sheet1!$A$2:$A$5</c:f></c:numRef></c:cat>
<c:val><c:numRef><c:f>Sheet1!$B$2:$B$5</c:f></c:numRef></c:val></c:ser>
<c:axId val="1"/><c:axId val="2"/>
</c:lineChart>
<c:lineChart>
<c:ser><c:idx val="1"/><c:tx><c:strRef><c:f>Sheet1!$C$1</c:f></c:strRef></c:tx>
<c:cat><c:numRef><c:f>Sheet1!$A$2:$A$5</c:f></c:numRef></c:cat>
<c:val><c:numRef><c:f>Sheet1!$C$2:$C$5</c:f></c:numRef></c:val></c:ser>
<c:axId val="3"/><c:axId val="4"/>
</c:lineChart>
<c:catAx><c:axId val="1"/><c:scaling/><c:axPos val="b"/><c:crossAx val="2"/></c:catAx>
<c:valAx><c:axId val="2"/><c:scaling><c:logBase val="10"/></c:scaling><c:axPos val="l"/>
<c:title><c:tx><c:rich><a:p><a:r><a:t>Deg</a:t></a:r></a:p></c:rich></c:tx></c:title><c:crossAx val="1"/></c:valAx>
<c:catAx><c:axId val="3"/><c:scaling/><c:delete val="1"/><c:axPos val="b"/><c:crossAx val="4"/></c:catAx>
<c:valAx><c:axId val="4"/><c:scaling><c:max val="12"/><c:min val="2"/></c:scaling><c:axPos val="r"/><c:crossAx val="3"/></c:valAx>
</c:plotArea>
</c:chart>
</c:chartSpace>`

func TestChartSelectionDualAxis(t *testing.T) {
	table := models.NewTable("book.xlsx", "Sheet1", []models.Column{
		models.NewNumericColumn("Time", 1, 2, 3, 4),
		models.NewNumericColumn("Temp", 20, 21, 19, 23),
		models.NewNumericColumn("Load", 5, 7, 6, 9),
	})

	nc := parseChartXML([]byte(dualAxisChartXML))
	if nc.title != "Two axes" {
		t.Errorf("Expected title %q, got %q", "Two axes", nc.title)
	}

	sel, ok := nc.selection(table)
	if !ok {
		t.Fatal("Expected chart to map onto the table")
	}
	if sel.Kind != models.ChartDualAxis {
		t.Fatalf("Expected dual_axis, got %s", sel.Kind)
	}
	if sel.LineCount != 2 || len(sel.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d/%d", sel.LineCount, len(sel.Lines))
	}
	if sel.Lines[0].Secondary || !sel.Lines[1].Secondary {
		t.Errorf("Expected second line on the secondary axis: %+v", sel.Lines)
	}
	if sel.Lines[0].Label != "Temperature" || sel.Lines[1].Label != "Load" {
		t.Errorf("Unexpected labels %q, %q", sel.Lines[0].Label, sel.Lines[1].Label)
	}
	if sel.YScale != models.ScaleLog || sel.YLabel != "Deg" {
		t.Errorf("Expected log primary axis labelled Deg, got %s %q", sel.YScale, sel.YLabel)
	}
	if !sel.EditLimits || sel.Y2Limits == nil || *sel.Y2Limits.Min != 2 || *sel.Y2Limits.Max != 12 {
		t.Errorf("Expected secondary limits 2..12, got %+v", sel.Y2Limits)
	}
	if sel.Y2Limits.Column != "Load" {
		t.Errorf("Expected limits entered against Load, got %q", sel.Y2Limits.Column)
	}
}

func TestResolveColumn(t *testing.T) {
	table := models.NewTable("book.xlsx", "Data", []models.Column{
		models.NewNumericColumn("a", 1, 2),
		models.NewNumericColumn("b", 3, 4),
	})

	tests := []struct {
		ref      string
		expected string
		ok       bool
	}{
		{"Data!$B$2:$B$3", "b", true},
		{"'Data'!$A$2:$A$3", "a", true},
		{"Other!$A$2:$A$3", "", false},
		{"Data!$A$1:$A$3", "", false},
		{"Data!$A$2:$B$3", "", false},
		{"Data!$Z$2:$Z$3", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := resolveColumn(table, tt.ref)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("resolveColumn(%q) = %q, %v; expected %q, %v", tt.ref, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target, base, expected string
	}{
		{"../drawings/drawing1.xml", "xl/worksheets", "xl/drawings/drawing1.xml"},
		{"worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
		{"/xl/worksheets/sheet2.xml", "xl", "xl/worksheets/sheet2.xml"},
	}
	for _, tt := range tests {
		if got := resolveRelativePath(tt.target, tt.base); got != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q", tt.target, tt.base, got, tt.expected)
		}
	}
}
