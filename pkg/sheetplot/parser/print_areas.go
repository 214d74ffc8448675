package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// printArea returns the first print area defined for sheetName.
func printArea(f *excelize.File, sheetName string) (region, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheet, areas := parsePrintAreaReference(dn.RefersTo)
		if len(areas) == 0 {
			continue
		}
		if sheet == sheetName || (sheet == "" && dn.Scope == sheetName) {
			return areas[0], true
		}
	}
	return region{}, false
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []region) {
	var areas []region
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		sheet, rangeStr := splitSheetRef(part)
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := parseRangeToRegion(rangeStr); ok {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// splitSheetRef splits "'Sheet 1'!$A$1:$B$2" into its sheet name and range.
func splitSheetRef(ref string) (sheet, rangeStr string) {
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", ref
	}
	sheet = strings.Trim(ref[:idx], "'")
	sheet = strings.ReplaceAll(sheet, "''", "'")
	return sheet, ref[idx+1:]
}

// parseRangeToRegion parses a range string like $A$1:$D$10. A single cell
// reference yields a one-cell region.
func parseRangeToRegion(rangeStr string) (region, bool) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return region{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return region{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return region{}, false
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return region{
		minRow: startRow - 1,
		maxRow: endRow - 1,
		minCol: startCol - 1,
		maxCol: endCol - 1,
	}, true
}
