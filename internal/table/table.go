// Package table implements an immutable in-memory rectangular dataset and
// the transformation verbs applied to it: reshape, split, sort, rename,
// select, distinct, derive, filter and limit. Every verb returns a new Table
// and never mutates its receiver, so a pipeline is plain left-to-right
// function composition.
package table

import (
	apperrors "tablecli/internal/errors"
)

// Table is an ordered sequence of records over a fixed, ordered column
// schema. Rectangular invariant: every row holds exactly one cell per
// column.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New builds a Table from column names and rows. It fails on duplicate
// column names or ragged rows.
func New(cols []string, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, apperrors.Validationf("duplicate column name %q", c)
		}
		index[c] = i
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, apperrors.Validationf("row %d has %d cells, want %d", i, len(r), len(cols))
		}
	}
	return &Table{cols: append([]string(nil), cols...), index: index, rows: rows}, nil
}

// Columns returns a copy of the column names in schema order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the record count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// HasColumn reports whether the schema contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the cell at row i, column name.
func (t *Table) Cell(i int, name string) (Value, error) {
	ci, err := t.colIndex(name)
	if err != nil {
		return Null(), err
	}
	if i < 0 || i >= len(t.rows) {
		return Null(), apperrors.Validationf("row index %d out of range", i)
	}
	return t.rows[i][ci], nil
}

// Row returns a read-only view of record i.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// ColumnKind infers the type category of a column from its non-null cells:
// int if all are ints, float if all are numeric, string otherwise. A column
// of only nulls reports string.
func (t *Table) ColumnKind(name string) (Kind, error) {
	ci, err := t.colIndex(name)
	if err != nil {
		return KindString, err
	}
	kind := KindInt
	seen := false
	for _, r := range t.rows {
		v := r[ci]
		if v.IsNull() {
			continue
		}
		seen = true
		switch v.Kind() {
		case KindString:
			return KindString, nil
		case KindFloat:
			kind = KindFloat
		}
	}
	if !seen {
		return KindString, nil
	}
	return kind, nil
}

func (t *Table) colIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, apperrors.ColumnNotFound(name)
	}
	return i, nil
}

// colIndexes resolves a list of column names, failing on the first unknown.
func (t *Table) colIndexes(names []string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		ci, err := t.colIndex(n)
		if err != nil {
			return nil, err
		}
		idx[i] = ci
	}
	return idx, nil
}

// copyRow returns a fresh copy of row r's cells.
func copyRow(r []Value) []Value {
	return append([]Value(nil), r...)
}

// Row is a read-only view of one record.
type Row struct {
	t *Table
	i int
}

// Value returns the cell for the named column.
func (r Row) Value(name string) (Value, error) {
	return r.t.Cell(r.i, name)
}

// Index returns the record's position in its table.
func (r Row) Index() int {
	return r.i
}
