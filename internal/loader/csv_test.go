package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/table"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSVFromFile(t *testing.T) {
	path := writeTempCSV(t, "city, value ,rate\nBoston, 10 ,1.5\nAustin,20,2.25\n")

	tbl, err := ReadCSV(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "value", "rate"}, tbl.Columns(), "header fields trimmed")
	require.Equal(t, 2, tbl.NumRows())

	v, err := tbl.Cell(0, "value")
	require.NoError(t, err)
	assert.Equal(t, table.KindInt, v.Kind(), "whitespace trimmed before inference")
	assert.Equal(t, int64(10), v.AsInt())

	r, err := tbl.Cell(1, "rate")
	require.NoError(t, err)
	assert.Equal(t, table.KindFloat, r.Kind())
	assert.Equal(t, 2.25, r.AsFloat())
}

func TestReadCSVTypeInference(t *testing.T) {
	path := writeTempCSV(t, "ints,floats,mixed,missing\n1,1.5,2,NA\n2,2,abc,\n")

	tbl, err := ReadCSV(context.Background(), path, Options{})
	require.NoError(t, err)

	tests := []struct {
		col  string
		want table.Kind
	}{
		{"ints", table.KindInt},
		{"floats", table.KindFloat},
		{"mixed", table.KindString},
	}
	for _, tt := range tests {
		k, err := tbl.ColumnKind(tt.col)
		require.NoError(t, err)
		assert.Equal(t, tt.want, k, "column %s", tt.col)
	}

	// "NA" and "" both load as null.
	for i := 0; i < 2; i++ {
		v, err := tbl.Cell(i, "missing")
		require.NoError(t, err)
		assert.True(t, v.IsNull(), "row %d", i)
	}
}

func TestReadCSVErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindLoad))
	})

	t.Run("ragged rows", func(t *testing.T) {
		path := writeTempCSV(t, "a,b\n1,2\n3\n")
		_, err := ReadCSV(context.Background(), path, Options{})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindLoad))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempCSV(t, "")
		_, err := ReadCSV(context.Background(), path, Options{})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindLoad))
	})
}

func TestReadCSVFromURL(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("city,value\nBoston,10\n"))
	}))
	defer srv.Close()

	tbl, err := ReadCSV(context.Background(), srv.URL+"/housing.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, 1, hits)
}

func TestReadCSVFromURLUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("city,value\nBoston,10\n"))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	opts := Options{CacheDir: cacheDir}
	source := srv.URL + "/housing.csv"

	_, err := ReadCSV(context.Background(), source, opts)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cacheDir, cacheName(source)))

	// Second read must come from the cache.
	_, err = ReadCSV(context.Background(), source, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestReadCSVCacheKeyedOnFullURL(t *testing.T) {
	// Two sources sharing a base name must not share a cache entry.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a/housing.csv":
			w.Write([]byte("value\n1\n"))
		case "/b/housing.csv":
			w.Write([]byte("value\n2\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := Options{CacheDir: t.TempDir()}

	first, err := ReadCSV(context.Background(), srv.URL+"/a/housing.csv", opts)
	require.NoError(t, err)
	second, err := ReadCSV(context.Background(), srv.URL+"/b/housing.csv", opts)
	require.NoError(t, err)

	v, err := first.Cell(0, "value")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.AsInt())

	v, err = second.Cell(0, "value")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.AsInt(), "second source must not read the first source's cache")
}

func TestReadCSVFromURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := ReadCSV(context.Background(), srv.URL+"/gone.csv", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindLoad))
}
