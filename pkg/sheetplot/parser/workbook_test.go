package parser

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/xuri/excelize/v2"
)

// workbookBytes builds an in-memory workbook from a cell map on Sheet1.
func workbookBytes(t *testing.T, cells map[string]any, extra func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
		}
	}
	if extra != nil {
		extra(f)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadTable(t *testing.T) {
	data := workbookBytes(t, map[string]any{
		"A1": "Time", "B1": "Temp", "C1": "Site",
		"A2": 1, "B2": 20.5, "C2": "north",
		"A3": 2, "C3": "south",
		"A4": 3, "B4": 22, "C4": "east",
	}, nil)

	table, err := LoadTable(bytes.NewReader(data), LoadOptions{Name: "data.xlsx"})
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if got := strings.Join(table.Columns(), ","); got != "Time,Temp,Site" {
		t.Errorf("Expected columns Time,Temp,Site, got %s", got)
	}
	if table.Rows != 3 {
		t.Errorf("Expected 3 rows, got %d", table.Rows)
	}
	if table.SheetName != "Sheet1" || table.BookName != "data.xlsx" {
		t.Errorf("Unexpected source %q/%q", table.BookName, table.SheetName)
	}
	if table.Range != "A1:C4" {
		t.Errorf("Expected range A1:C4, got %s", table.Range)
	}
	if got := strings.Join(table.NumericColumns(), ","); got != "Time,Temp" {
		t.Errorf("Expected numeric columns Time,Temp, got %s", got)
	}

	temp, _ := table.Column("Temp")
	if !math.IsNaN(temp.Numbers[1]) {
		t.Errorf("Expected missing cell to be NaN, got %v", temp.Numbers[1])
	}
	site, _ := table.Column("Site")
	if site.Text[2] != "east" {
		t.Errorf("Expected east, got %q", site.Text[2])
	}
}

func TestLoadTableOffsetRegion(t *testing.T) {
	data := workbookBytes(t, map[string]any{
		"C3": "x", "D3": "y",
		"C4": 1, "D4": 10,
		"C5": 2, "D5": 20,
	}, nil)

	table, err := LoadTable(bytes.NewReader(data), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if table.HeaderRow != 3 {
		t.Errorf("Expected header row 3, got %d", table.HeaderRow)
	}
	col, ok := table.ColumnAt(4)
	if !ok || col.Name != "y" {
		t.Errorf("Expected sheet column D to be y, got %+v", col)
	}
}

func TestLoadTablePrintArea(t *testing.T) {
	data := workbookBytes(t, map[string]any{
		"A1": "note",
		"B3": "a", "C3": "b",
		"B4": 1, "C4": 2,
	}, func(f *excelize.File) {
		if err := f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: "Sheet1!$B$3:$C$4",
			Scope:    "Sheet1",
		}); err != nil {
			t.Fatalf("SetDefinedName failed: %v", err)
		}
	})

	table, err := LoadTable(bytes.NewReader(data), LoadOptions{UsePrintArea: true})
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if got := strings.Join(table.Columns(), ","); got != "a,b" {
		t.Errorf("Expected columns a,b, got %s", got)
	}

	table, err = LoadTable(bytes.NewReader(data), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if table.Columns()[0] != "note" {
		t.Errorf("Without print area the header should start at A1, got %v", table.Columns())
	}
}

func TestLoadTableErrors(t *testing.T) {
	valid := workbookBytes(t, map[string]any{"A1": "x", "A2": 1}, nil)
	empty := workbookBytes(t, nil, nil)

	tests := []struct {
		name string
		data []byte
		opts LoadOptions
	}{
		{"not xlsx", []byte("not a spreadsheet"), LoadOptions{}},
		{"empty input", nil, LoadOptions{}},
		{"empty sheet", empty, LoadOptions{}},
		{"missing sheet", valid, LoadOptions{Sheet: "Nope"}},
		{"too large", valid, LoadOptions{MaxBytes: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(bytes.NewReader(tt.data), tt.opts)
			var pe *models.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ParseError, got %v", err)
			}
		})
	}
}

func TestParsePrintAreaReference(t *testing.T) {
	sheet, areas := parsePrintAreaReference("'My Sheet'!$A$1:$D$10,'My Sheet'!$F$1")
	if sheet != "My Sheet" {
		t.Errorf("Expected sheet My Sheet, got %q", sheet)
	}
	if len(areas) != 2 {
		t.Fatalf("Expected 2 areas, got %d", len(areas))
	}
	if areas[0] != (region{minRow: 0, maxRow: 9, minCol: 0, maxCol: 3}) {
		t.Errorf("Unexpected first area %+v", areas[0])
	}
	if areas[1] != (region{minRow: 0, maxRow: 0, minCol: 5, maxCol: 5}) {
		t.Errorf("Unexpected second area %+v", areas[1])
	}
}
