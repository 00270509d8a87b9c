package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tablecli/internal/errors"
)

func TestSplitColumn(t *testing.T) {
	tbl := mustTable(t, []string{"id", "location"},
		[]Value{Int(1), String("Boston_MA")},
		[]Value{Int(2), String("New_York_NY")},
		[]Value{Int(3), Null()},
	)

	tests := []struct {
		name     string
		opts     SplitOptions
		into     []string
		wantCols []string
		want     [][]string
		wantErr  apperrors.Kind
	}{
		{
			name:     "merge remainder into last target",
			into:     []string{"city", "state"},
			opts:     SplitOptions{Separator: "_"},
			wantCols: []string{"id", "city", "state"},
			want: [][]string{
				{"1", "Boston", "MA"},
				{"2", "New", "York_NY"},
				{"3", "", ""},
			},
		},
		{
			name:     "keep source column",
			into:     []string{"city", "state"},
			opts:     SplitOptions{Separator: "_", KeepSource: true},
			wantCols: []string{"id", "location", "city", "state"},
			want: [][]string{
				{"1", "Boston_MA", "Boston", "MA"},
				{"2", "New_York_NY", "New", "York_NY"},
				{"3", "", "", ""},
			},
		},
		{
			name:    "exact policy rejects surplus fragments",
			into:    []string{"city", "state"},
			opts:    SplitOptions{Separator: "_", Policy: SplitExact},
			wantErr: apperrors.KindShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tbl.SplitColumn("location", tt.into, tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, out.Columns())
			assert.Equal(t, tt.want, cellStrings(t, out))
		})
	}
}

func TestSplitColumnFillsMissingTargets(t *testing.T) {
	tbl := mustTable(t, []string{"v"}, []Value{String("solo")})

	out, err := tbl.SplitColumn("v", []string{"a", "b"}, SplitOptions{Separator: "_"})
	require.NoError(t, err)

	a, err := out.Cell(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "solo", a.AsString())

	b, err := out.Cell(0, "b")
	require.NoError(t, err)
	assert.True(t, b.IsNull())
}

func TestSplitColumnValidation(t *testing.T) {
	tbl := mustTable(t, []string{"v"}, []Value{String("x")})

	_, err := tbl.SplitColumn("missing", []string{"a"}, SplitOptions{Separator: "_"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindColumnNotFound))

	_, err = tbl.SplitColumn("v", nil, SplitOptions{Separator: "_"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = tbl.SplitColumn("v", []string{"a"}, SplitOptions{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
