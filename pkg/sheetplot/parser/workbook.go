package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"github.com/xuri/excelize/v2"
)

// LoadOptions configures how a workbook is read into a table.
type LoadOptions struct {
	// Name is the workbook file name used in the table and in errors.
	Name string
	// Sheet selects the sheet by name; empty means the first sheet.
	Sheet string
	// UsePrintArea reads the sheet's first print area instead of the
	// bounding box of its data, when one is defined.
	UsePrintArea bool
	// MaxBytes caps the workbook size; 0 means unlimited.
	MaxBytes int64
}

// ReadAll reads a workbook stream, enforcing MaxBytes.
func ReadAll(r io.Reader, opts LoadOptions) ([]byte, error) {
	src := r
	if opts.MaxBytes > 0 {
		src = io.LimitReader(r, opts.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, models.NewParseError(opts.Name, "read failed", err)
	}
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, models.NewParseError(opts.Name,
			fmt.Sprintf("file exceeds %d bytes", opts.MaxBytes), models.ErrTooLarge)
	}
	return data, nil
}

// LoadTable parses an xlsx stream into a table. The first non-empty row of
// the data region supplies the column names.
func LoadTable(r io.Reader, opts LoadOptions) (*models.Table, error) {
	data, err := ReadAll(r, opts)
	if err != nil {
		return nil, err
	}
	return LoadTableBytes(data, opts)
}

// LoadTableBytes parses an in-memory xlsx workbook into a table.
func LoadTableBytes(data []byte, opts LoadOptions) (*models.Table, error) {
	if len(data) == 0 {
		return nil, models.NewParseError(opts.Name, "empty file", nil)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewParseError(opts.Name, "not a valid xlsx workbook", err)
	}
	defer f.Close()

	sheetName, err := pickSheet(f, opts.Sheet)
	if err != nil {
		return nil, models.NewParseError(opts.Name, err.Error(), nil)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, models.NewParseError(opts.Name, fmt.Sprintf("read sheet %q", sheetName), err)
	}

	var area region
	var ok bool
	if opts.UsePrintArea {
		area, ok = printArea(f, sheetName)
	}
	if !ok {
		area, ok = detectRegion(rows)
	}
	if !ok {
		return nil, models.NewParseError(opts.Name, "no header row", nil)
	}

	// The header is the first row of the region that holds anything.
	headerRow := area.minRow
	for headerRow <= area.maxRow && rowIsEmpty(rows, headerRow, area.minCol, area.maxCol) {
		headerRow++
	}
	if headerRow > area.maxRow {
		return nil, models.NewParseError(opts.Name, "no header row", nil)
	}

	width := area.maxCol - area.minCol + 1
	header := make([]string, width)
	for i := range header {
		header[i] = cellAt(rows, headerRow, area.minCol+i)
	}
	names := headerNames(header)

	columns := make([]models.Column, width)
	for i, name := range names {
		sheetCol := area.minCol + i
		cells := make([]string, 0, area.maxRow-headerRow)
		for row := headerRow + 1; row <= area.maxRow; row++ {
			cells = append(cells, cellAt(rows, row, sheetCol))
		}
		columns[i] = buildColumn(name, sheetCol+1, cells)
	}

	t := models.NewTable(opts.Name, sheetName, columns)
	t.HeaderRow = headerRow + 1
	t.Range = region{minRow: headerRow, maxRow: area.maxRow, minCol: area.minCol, maxCol: area.maxCol}.ref()
	return t, nil
}

// pickSheet resolves the requested sheet name, defaulting to the first sheet.
func pickSheet(f *excelize.File, want string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found", want)
}
