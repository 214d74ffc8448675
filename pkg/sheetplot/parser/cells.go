package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// parseNumber attempts to parse a raw cell value as a number.
// Integers are tried first so large integral values keep their exact text.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// buildColumn types a column from its raw cell text. The column is numeric
// when every non-empty cell is a number; empty cells become NaN.
func buildColumn(name string, sheetCol int, cells []string) models.Column {
	numbers := make([]float64, len(cells))
	numeric := true
	for i, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			numbers[i] = math.NaN()
			continue
		}
		v, ok := parseNumber(cell)
		if !ok {
			numeric = false
			break
		}
		numbers[i] = v
	}

	col := models.Column{
		Name:     name,
		Kind:     models.ColumnText,
		SheetCol: sheetCol,
		Text:     cells,
	}
	if numeric {
		col.Kind = models.ColumnNumeric
		col.Numbers = numbers
	}
	return col
}

// headerNames turns the header row cells into unique column names.
// Blank cells become "Unnamed: <i>" and repeats get a ".1", ".2", ... suffix.
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	used := make(map[string]bool)
	dupes := make(map[string]int)
	for i, cell := range cells {
		base := strings.TrimSpace(cell)
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for used[name] {
			dupes[base]++
			name = base + "." + strconv.Itoa(dupes[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
