package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustTable builds a table from literal rows, failing the test on schema
// errors.
func mustTable(t *testing.T, cols []string, rows ...[]Value) *Table {
	t.Helper()
	tbl, err := New(cols, rows)
	require.NoError(t, err)
	return tbl
}

// cellStrings renders every cell of a table for compact comparisons.
func cellStrings(t *testing.T, tbl *Table) [][]string {
	t.Helper()
	out := make([][]string, tbl.NumRows())
	for i := 0; i < tbl.NumRows(); i++ {
		row := make([]string, 0, tbl.NumCols())
		for _, c := range tbl.Columns() {
			v, err := tbl.Cell(i, c)
			require.NoError(t, err)
			row = append(row, v.Format())
		}
		out[i] = row
	}
	return out
}
