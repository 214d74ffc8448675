// Package models defines data structures shared by the loader, builder,
// renderer and exporter.
package models

import (
	"math"
	"strconv"
)

// ColumnKind classifies the values held by a column.
type ColumnKind string

const (
	// ColumnNumeric holds numbers; empty cells are NaN.
	ColumnNumeric ColumnKind = "numeric"
	// ColumnText holds at least one cell that is not a number.
	ColumnText ColumnKind = "text"
)

// Column represents one named column of a table.
type Column struct {
	// Name is the header cell text, made unique within the table.
	Name string `json:"name"`
	// Kind is the value classification.
	Kind ColumnKind `json:"kind"`
	// SheetCol is the 1-based sheet column the values were read from.
	SheetCol int `json:"sheet_col"`
	// Text holds the raw cell text of every row ("" for empty cells).
	Text []string `json:"-"`
	// Numbers holds the parsed values of a numeric column (NaN for empty cells).
	Numbers []float64 `json:"-"`
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Text)
}

// IsNumeric reports whether the column holds numbers.
func (c *Column) IsNumeric() bool {
	return c.Kind == ColumnNumeric
}

// MinMax returns the smallest and largest non-NaN value of a numeric column.
// ok is false for text columns and for columns without any value.
func (c *Column) MinMax() (min, max float64, ok bool) {
	if !c.IsNumeric() {
		return 0, 0, false
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range c.Numbers {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// NewNumericColumn builds a numeric column from values. NaN marks an empty cell.
func NewNumericColumn(name string, values ...float64) Column {
	text := make([]string, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			text[i] = formatNumber(v)
		}
	}
	return Column{
		Name:    name,
		Kind:    ColumnNumeric,
		Text:    text,
		Numbers: append([]float64(nil), values...),
	}
}

// NewTextColumn builds a text column from values.
func NewTextColumn(name string, values ...string) Column {
	return Column{
		Name: name,
		Kind: ColumnText,
		Text: append([]string(nil), values...),
	}
}

// Table represents a rectangular table read from one sheet.
type Table struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Range is the cell range covering header and data, e.g. "A1:D10".
	Range string `json:"range,omitempty"`
	// HeaderRow is the 1-based sheet row holding the column names.
	HeaderRow int `json:"header_row"`
	// Rows is the number of data rows.
	Rows int `json:"rows"`
	// Data holds the columns in sheet order.
	Data []Column `json:"columns"`

	index map[string]int
}

// NewTable creates a table over columns, padding short columns so every
// column has the same row count.
func NewTable(bookName, sheetName string, columns []Column) *Table {
	rows := 0
	for _, c := range columns {
		if c.Len() > rows {
			rows = c.Len()
		}
	}
	for i := range columns {
		c := &columns[i]
		for c.Len() < rows {
			c.Text = append(c.Text, "")
			if c.IsNumeric() {
				c.Numbers = append(c.Numbers, math.NaN())
			}
		}
		if c.SheetCol == 0 {
			c.SheetCol = i + 1
		}
	}
	t := &Table{
		BookName:  bookName,
		SheetName: sheetName,
		HeaderRow: 1,
		Rows:      rows,
		Data:      columns,
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Data))
	for i, c := range t.Data {
		t.index[c.Name] = i
	}
}

// Columns returns the column names in presentation order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.Data))
	for i, c := range t.Data {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of the numeric columns in order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Data {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.Data[i], true
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// ColumnAt returns the column read from the given 1-based sheet column.
func (t *Table) ColumnAt(sheetCol int) (*Column, bool) {
	for i := range t.Data {
		if t.Data[i].SheetCol == sheetCol {
			return &t.Data[i], true
		}
	}
	return nil, false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
