package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tablecli/internal/errors"
)

func TestDerivePreservesRowsAndOtherColumns(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"},
		[]Value{Int(1), Int(10)},
		[]Value{Int(2), Int(20)},
	)

	out, err := tbl.DeriveExpr("sum", BinaryExpr{Left: ColumnRef("a"), Op: "+", Right: ColumnRef("b")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "sum"}, out.Columns())
	assert.Equal(t, [][]string{
		{"1", "10", "11"},
		{"2", "20", "22"},
	}, cellStrings(t, out))

	// Input is untouched.
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, [][]string{{"1", "10"}, {"2", "20"}}, cellStrings(t, tbl))
}

func TestDeriveOverwritesExistingColumnInPlace(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"},
		[]Value{Int(3), Int(4)},
	)

	out, err := tbl.DeriveExpr("a", BinaryExpr{Left: ColumnRef("b"), Op: "*", Right: Literal(Int(2))})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Columns(), "schema position retained")
	assert.Equal(t, [][]string{{"8", "4"}}, cellStrings(t, out))
}

func TestDeriveNullOperandYieldsNull(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"},
		[]Value{Int(1), Null()},
	)

	out, err := tbl.DeriveExpr("r", BinaryExpr{Left: ColumnRef("a"), Op: "/", Right: ColumnRef("b")})
	require.NoError(t, err)
	v, err := out.Cell(0, "r")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDeriveUnknownColumn(t *testing.T) {
	tbl := mustTable(t, []string{"a"}, []Value{Int(1)})

	_, err := tbl.DeriveExpr("r", BinaryExpr{Left: ColumnRef("missing"), Op: "+", Right: Literal(Int(1))})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindColumnNotFound))
}

// The walkthrough scenario: derive a relative index then filter down to one
// city and month.
func TestDeriveAndFilterScenario(t *testing.T) {
	tbl := mustTable(t, []string{"city", "month", "year", "local_index", "national_index"},
		[]Value{String("Boston"), String("Jan"), String("2000"), Int(100), Int(50)},
		[]Value{String("Boston"), String("Aug"), String("2000"), Int(80), Int(40)},
	)

	derived, err := tbl.DeriveExpr("rel_index", BinaryExpr{
		Left:  ColumnRef("local_index"),
		Op:    "/",
		Right: ColumnRef("national_index"),
	})
	require.NoError(t, err)

	for i := 0; i < derived.NumRows(); i++ {
		v, err := derived.Cell(i, "rel_index")
		require.NoError(t, err)
		assert.Equal(t, 2.0, v.AsFloat(), "row %d", i)
	}

	out, err := derived.Filter(
		Cmp("city", OpEq, String("Boston")),
		Cmp("month", OpEq, String("Jan")),
	)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	m, err := out.Cell(0, "month")
	require.NoError(t, err)
	assert.Equal(t, "Jan", m.AsString())
}
