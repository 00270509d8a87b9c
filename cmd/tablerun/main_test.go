package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0644))

	tbl, err := loadInput(context.Background(), csvPath, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, 1, tbl.NumRows())
}

func TestLoadInputExplicitFormatWins(t *testing.T) {
	dir := t.TempDir()
	// CSV content behind a neutral extension still loads when forced.
	path := filepath.Join(dir, "input.data")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0644))

	tbl, err := loadInput(context.Background(), path, "csv", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

func TestLoadInputUnknownFormat(t *testing.T) {
	_, err := loadInput(context.Background(), "x.parquet", "parquet", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input format")
}
