package table

import (
	"fmt"
	"strings"

	apperrors "tablecli/internal/errors"
)

// Rename renames existing columns per the mapping. Every mapping source must
// exist and no two columns may end up with the same name. Column order,
// rows and untouched columns are unchanged.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	for src := range mapping {
		if !t.HasColumn(src) {
			return nil, apperrors.ColumnNotFound(src)
		}
	}
	cols := t.Columns()
	for i, c := range cols {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		}
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			return nil, apperrors.Validationf("rename produces duplicate column %q", c)
		}
		seen[c] = true
	}
	return New(cols, t.rows)
}

// ColumnSpec selects one column, optionally renaming it during projection.
type ColumnSpec struct {
	Name string
	As   string
}

// Col selects a column under its own name.
func Col(name string) ColumnSpec {
	return ColumnSpec{Name: name}
}

// ColAs selects a column under a new name.
func ColAs(name, as string) ColumnSpec {
	return ColumnSpec{Name: name, As: as}
}

// Select projects the table to the given columns, in the given order,
// applying any inline renames. Columns not listed are dropped.
func (t *Table) Select(specs ...ColumnSpec) (*Table, error) {
	if len(specs) == 0 {
		return nil, apperrors.Validation("select requires at least one column")
	}
	idx := make([]int, len(specs))
	cols := make([]string, len(specs))
	for i, s := range specs {
		ci, err := t.colIndex(s.Name)
		if err != nil {
			return nil, err
		}
		idx[i] = ci
		if s.As != "" {
			cols[i] = s.As
		} else {
			cols[i] = s.Name
		}
	}
	rows := make([][]Value, len(t.rows))
	for ri, r := range t.rows {
		out := make([]Value, len(idx))
		for i, ci := range idx {
			out[i] = r[ci]
		}
		rows[ri] = out
	}
	return New(cols, rows)
}

// Distinct returns the unique combinations of the given columns, first
// occurrence order preserved. With no columns it deduplicates whole rows
// over the full schema.
func (t *Table) Distinct(cols ...string) (*Table, error) {
	if len(cols) == 0 {
		cols = t.Columns()
	}
	idx, err := t.colIndexes(cols)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(t.rows))
	rows := make([][]Value, 0, len(t.rows))
	for _, r := range t.rows {
		key := distinctKey(r, idx)
		if seen[key] {
			continue
		}
		seen[key] = true
		out := make([]Value, len(idx))
		for i, ci := range idx {
			out[i] = r[ci]
		}
		rows = append(rows, out)
	}
	return New(append([]string(nil), cols...), rows)
}

// distinctKey encodes the projected cells so that null, numeric and text
// cells never collide. Each segment is length-prefixed, so cell text that
// contains the tag or separator bytes cannot forge a boundary.
func distinctKey(r []Value, idx []int) string {
	var b strings.Builder
	for _, ci := range idx {
		v := r[ci]
		switch {
		case v.IsNull():
			b.WriteString("n;")
		case v.isNumeric():
			s := Float(v.AsFloat()).Format()
			fmt.Fprintf(&b, "#%d:%s;", len(s), s)
		default:
			fmt.Fprintf(&b, "s%d:%s;", len(v.AsString()), v.AsString())
		}
	}
	return b.String()
}

// Limit returns the first n rows in the current order. An n of zero yields
// an empty table; n beyond the row count yields the whole table.
func (t *Table) Limit(n int) (*Table, error) {
	if n < 0 {
		return nil, apperrors.Validationf("limit must be non-negative, got %d", n)
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return New(t.Columns(), t.rows[:n])
}
