package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// region is a rectangle of sheet cells, 0-based and inclusive.
type region struct {
	minRow, maxRow int
	minCol, maxCol int
}

// ref returns the region in Excel range notation, e.g. "A1:D10".
func (g region) ref() string {
	start, err := excelize.CoordinatesToCellName(g.minCol+1, g.minRow+1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(g.maxCol+1, g.maxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", start, end)
}

// detectRegion finds the bounding box of non-empty cells.
// ok is false when the sheet holds no data at all.
func detectRegion(rows [][]string) (g region, ok bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return region{}, false
	}
	return region{minRow: minRow, maxRow: maxRow, minCol: minCol, maxCol: maxCol}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// cellAt returns the cell text at 0-based coordinates, "" when the row is
// shorter (GetRows trims trailing empty cells).
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	if col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

// rowIsEmpty reports whether the row holds no data inside the column span.
func rowIsEmpty(rows [][]string, row, minCol, maxCol int) bool {
	for col := minCol; col <= maxCol; col++ {
		if strings.TrimSpace(cellAt(rows, row, col)) != "" {
			return false
		}
	}
	return true
}
