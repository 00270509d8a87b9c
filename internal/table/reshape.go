package table

import (
	apperrors "tablecli/internal/errors"
)

// ReshapeLong pivots the named value columns into two new columns: keyName
// holds the source column name and valueName holds the cell value. Every id
// column is repeated once per value column, so the row count multiplies by
// len(valueCols). A nil or empty valueCols means every column that is not an
// id column, in schema order.
func (t *Table) ReshapeLong(idCols, valueCols []string, keyName, valueName string) (*Table, error) {
	if keyName == "" || valueName == "" {
		return nil, apperrors.Validation("reshape requires key and value column names")
	}
	idIdx, err := t.colIndexes(idCols)
	if err != nil {
		return nil, err
	}
	if len(valueCols) == 0 {
		idSet := make(map[string]bool, len(idCols))
		for _, c := range idCols {
			idSet[c] = true
		}
		for _, c := range t.cols {
			if !idSet[c] {
				valueCols = append(valueCols, c)
			}
		}
	}
	if len(valueCols) == 0 {
		return nil, apperrors.Validation("reshape has no value columns to pivot")
	}
	valIdx, err := t.colIndexes(valueCols)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(idCols)+2)
	cols = append(cols, idCols...)
	cols = append(cols, keyName, valueName)

	rows := make([][]Value, 0, len(t.rows)*len(valueCols))
	for _, r := range t.rows {
		for vi, ci := range valIdx {
			out := make([]Value, 0, len(cols))
			for _, ii := range idIdx {
				out = append(out, r[ii])
			}
			out = append(out, String(valueCols[vi]), r[ci])
			rows = append(rows, out)
		}
	}
	return New(cols, rows)
}
