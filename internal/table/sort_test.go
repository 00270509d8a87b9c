package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tablecli/internal/errors"
)

func TestSortMultiKey(t *testing.T) {
	tbl := mustTable(t, []string{"city", "value"},
		[]Value{String("b"), Int(2)},
		[]Value{String("a"), Int(3)},
		[]Value{String("b"), Int(1)},
		[]Value{String("a"), Int(1)},
	)

	out, err := tbl.Sort(SortKey{Column: "city"}, SortKey{Column: "value", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "3"},
		{"a", "1"},
		{"b", "2"},
		{"b", "1"},
	}, cellStrings(t, out))
}

func TestSortIsStable(t *testing.T) {
	// Rows equal on the key keep their input order; the tag column records it.
	tbl := mustTable(t, []string{"key", "tag"},
		[]Value{Int(1), String("first")},
		[]Value{Int(2), String("x")},
		[]Value{Int(1), String("second")},
		[]Value{Int(1), String("third")},
	)

	out, err := tbl.Sort(SortKey{Column: "key"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "first"},
		{"1", "second"},
		{"1", "third"},
		{"2", "x"},
	}, cellStrings(t, out))
}

func TestSortNullPlacement(t *testing.T) {
	tbl := mustTable(t, []string{"v"},
		[]Value{Null()},
		[]Value{Int(2)},
		[]Value{Int(1)},
	)

	asc, err := tbl.Sort(SortKey{Column: "v"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {""}}, cellStrings(t, asc))

	desc, err := tbl.Sort(SortKey{Column: "v", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{""}, {"2"}, {"1"}}, cellStrings(t, desc))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tbl := mustTable(t, []string{"v"},
		[]Value{Int(2)},
		[]Value{Int(1)},
	)

	_, err := tbl.Sort(SortKey{Column: "v"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2"}, {"1"}}, cellStrings(t, tbl))
}

func TestSortErrors(t *testing.T) {
	tbl := mustTable(t, []string{"v"}, []Value{Int(1)})

	_, err := tbl.Sort()
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = tbl.Sort(SortKey{Column: "missing"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindColumnNotFound))
}
