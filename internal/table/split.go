package table

import (
	"fmt"
	"strings"

	apperrors "tablecli/internal/errors"
)

// SplitPolicy controls how SplitColumn reconciles the fragment count with
// the number of target columns.
type SplitPolicy string

const (
	// SplitMergeRemainder merges surplus trailing fragments into the last
	// target column and fills absent trailing targets with null. This is the
	// default policy.
	SplitMergeRemainder SplitPolicy = "merge_remainder"
	// SplitExact requires every row to produce exactly one fragment per
	// target column and fails with a shape mismatch otherwise.
	SplitExact SplitPolicy = "exact"
)

// SplitOptions configures SplitColumn.
type SplitOptions struct {
	Separator  string
	Policy     SplitPolicy
	KeepSource bool
}

// SplitColumn splits one text column on a separator into the named target
// columns. The new columns are inserted at the source column's position; the
// source column is dropped unless KeepSource is set, in which case it stays
// ahead of the fragments. Null source cells split into all-null targets.
func (t *Table) SplitColumn(col string, into []string, opts SplitOptions) (*Table, error) {
	ci, err := t.colIndex(col)
	if err != nil {
		return nil, err
	}
	if len(into) == 0 {
		return nil, apperrors.Validation("split requires at least one target column")
	}
	if opts.Separator == "" {
		return nil, apperrors.Validation("split requires a separator")
	}
	policy := opts.Policy
	if policy == "" {
		policy = SplitMergeRemainder
	}

	cols := make([]string, 0, len(t.cols)+len(into))
	cols = append(cols, t.cols[:ci]...)
	if opts.KeepSource {
		cols = append(cols, col)
	}
	cols = append(cols, into...)
	cols = append(cols, t.cols[ci+1:]...)

	rows := make([][]Value, 0, len(t.rows))
	for ri, r := range t.rows {
		parts, err := splitCell(r[ci], len(into), opts.Separator, policy)
		if err != nil {
			return nil, apperrors.ShapeMismatch(col, fmt.Sprintf("row %d: %s", ri, err))
		}
		out := make([]Value, 0, len(cols))
		out = append(out, r[:ci]...)
		if opts.KeepSource {
			out = append(out, r[ci])
		}
		out = append(out, parts...)
		out = append(out, r[ci+1:]...)
		rows = append(rows, out)
	}
	return New(cols, rows)
}

// splitCell produces exactly n fragment values for one cell.
func splitCell(v Value, n int, sep string, policy SplitPolicy) ([]Value, error) {
	out := make([]Value, n)
	if v.IsNull() {
		for i := range out {
			out[i] = Null()
		}
		return out, nil
	}
	frags := strings.Split(v.Format(), sep)
	switch {
	case len(frags) == n:
		for i, f := range frags {
			out[i] = String(f)
		}
	case len(frags) > n:
		if policy == SplitExact {
			return nil, fmt.Errorf("%d fragments, want %d", len(frags), n)
		}
		for i := 0; i < n-1; i++ {
			out[i] = String(frags[i])
		}
		out[n-1] = String(strings.Join(frags[n-1:], sep))
	default:
		if policy == SplitExact {
			return nil, fmt.Errorf("%d fragments, want %d", len(frags), n)
		}
		for i, f := range frags {
			out[i] = String(f)
		}
		for i := len(frags); i < n; i++ {
			out[i] = Null()
		}
	}
	return out, nil
}
