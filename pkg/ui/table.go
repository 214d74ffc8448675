package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn is one column of a text table.
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table is a padded text table.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a table with the given columns.
func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table as a string.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(col.Width, lipgloss.Width(col.Header))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder

	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		parts[i] = padString(col.Header, widths[i], "left")
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(parts, "  ")))
	b.WriteString("\n")

	for i := range t.Columns {
		parts[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableBorder.Render(strings.Join(parts, "  ")))
	b.WriteString("\n")

	for idx, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			parts[i] = padString(cell, widths[i], t.Columns[i].Align)
		}
		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

func padString(s string, width int, align string) string {
	padding := width - lipgloss.Width(s)
	if padding <= 0 {
		return s
	}
	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		left := padding / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// RenderKeyValue renders a key-value pair.
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", StyleAccent.Render(key), value)
}
