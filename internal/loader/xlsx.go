package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/table"
)

// ReadXLSX loads one worksheet of an Excel workbook into a table. An empty
// sheet name selects the first sheet. The first non-blank row is the header;
// short rows are padded with missing cells; fully blank rows are skipped;
// rows wider than the header fail with a load error.
func ReadXLSX(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.Load(fmt.Sprintf("%s: workbook has no sheets", path), nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("%s: cannot read sheet %q", path, sheet), err)
	}

	var header []string
	var raw [][]string
	for ri, row := range rows {
		if isBlankRow(row) {
			continue
		}
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
		}
		if header == nil {
			header = trimmed
			continue
		}
		padded, err := padRow(trimmed, len(header))
		if err != nil {
			return nil, apperrors.Load(fmt.Sprintf("%s: sheet %q row %d: %s", path, sheet, ri+1, err), nil)
		}
		raw = append(raw, padded)
	}
	if header == nil {
		return nil, apperrors.Load(fmt.Sprintf("%s: sheet %q has no header row", path, sheet), nil)
	}

	typed, err := inferRows(header, raw)
	if err != nil {
		return nil, err
	}
	tbl, err := table.New(header, typed)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("%s: invalid schema", path), err)
	}
	return tbl, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// padRow extends a short row to the header width. excelize drops trailing
// empty cells, so padding restores the rectangular shape; a row wider than
// the header is malformed.
func padRow(row []string, width int) ([]string, error) {
	if len(row) > width {
		return nil, fmt.Errorf("row has %d cells, header has %d", len(row), width)
	}
	out := make([]string, width)
	copy(out, row)
	return out, nil
}
