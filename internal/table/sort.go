package table

import (
	"sort"

	apperrors "tablecli/internal/errors"
)

// SortKey names one sort column and its direction.
type SortKey struct {
	Column string
	Desc   bool
}

// Sort returns the table stably ordered by the given keys. Later keys break
// ties among rows equal on earlier keys; rows equal on every key keep their
// input order. Ascending order puts nulls last, descending puts them first.
func (t *Table) Sort(keys ...SortKey) (*Table, error) {
	if len(keys) == 0 {
		return nil, apperrors.Validation("sort requires at least one key")
	}
	idx := make([]int, len(keys))
	for i, k := range keys {
		ci, err := t.colIndex(k.Column)
		if err != nil {
			return nil, err
		}
		idx[i] = ci
	}

	rows := make([][]Value, len(t.rows))
	copy(rows, t.rows)
	sort.SliceStable(rows, func(a, b int) bool {
		for ki, ci := range idx {
			c := compare(rows[a][ci], rows[b][ci])
			if c == 0 {
				continue
			}
			if keys[ki].Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return New(t.Columns(), rows)
}
