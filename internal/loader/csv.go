// Package loader reads tabular source files into tables. CSV sources may be
// local paths or http(s) URLs; URL downloads can be cached on disk so the
// network is touched at most once per source. Cell types are inferred per
// column: int when every non-missing cell parses as an integer, float when
// every non-missing cell parses as a number, text otherwise. Empty and "NA"
// cells load as null.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/table"
)

// Options configures CSV loading.
type Options struct {
	// CacheDir, when set, stores URL downloads so later runs read the cached
	// copy instead of refetching.
	CacheDir string
	// HTTPClient overrides the client used for URL sources.
	HTTPClient *http.Client
}

// ReadCSV loads a CSV source (local path or http(s) URL) into a table. The
// first record is the header; fields are trimmed of surrounding whitespace;
// ragged records fail with a load error.
func ReadCSV(ctx context.Context, source string, opts Options) (*table.Table, error) {
	r, closer, err := openSource(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	defer closer()

	return parseCSV(r, source)
}

func parseCSV(r io.Reader, source string) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.Load(fmt.Sprintf("%s: missing header row", source), err)
	}
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("%s: failed to read header", source), err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var raw [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Load(fmt.Sprintf("%s: malformed CSV", source), err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		raw = append(raw, rec)
	}

	rows, err := inferRows(header, raw)
	if err != nil {
		return nil, err
	}
	tbl, err := table.New(header, rows)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("%s: invalid schema", source), err)
	}
	return tbl, nil
}

// inferRows converts raw string cells to typed values, one inferred kind per
// column.
func inferRows(header []string, raw [][]string) ([][]table.Value, error) {
	kinds := make([]table.Kind, len(header))
	for ci := range header {
		kinds[ci] = inferColumnKind(raw, ci)
	}

	rows := make([][]table.Value, len(raw))
	for ri, rec := range raw {
		row := make([]table.Value, len(header))
		for ci := range header {
			row[ci] = convertCell(rec[ci], kinds[ci])
		}
		rows[ri] = row
	}
	return rows, nil
}

func inferColumnKind(raw [][]string, ci int) table.Kind {
	kind := table.KindInt
	seen := false
	for _, rec := range raw {
		cell := rec[ci]
		if isMissing(cell) {
			continue
		}
		seen = true
		if kind == table.KindInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = table.KindFloat
		}
		if kind == table.KindFloat {
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				continue
			}
			return table.KindString
		}
	}
	if !seen {
		return table.KindString
	}
	return kind
}

func convertCell(cell string, kind table.Kind) table.Value {
	if isMissing(cell) {
		return table.Null()
	}
	switch kind {
	case table.KindInt:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return table.Int(v)
	case table.KindFloat:
		v, _ := strconv.ParseFloat(cell, 64)
		return table.Float(v)
	default:
		return table.String(cell)
	}
}

func isMissing(cell string) bool {
	return cell == "" || cell == "NA"
}

// openSource returns a reader for the source plus a close func. URL sources
// are fetched once and optionally cached under CacheDir.
func openSource(ctx context.Context, source string, opts Options) (io.Reader, func(), error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, nil, apperrors.Load(fmt.Sprintf("cannot open %s", source), err)
		}
		return f, func() { f.Close() }, nil
	}

	if opts.CacheDir != "" {
		cached := filepath.Join(opts.CacheDir, cacheName(source))
		if f, err := os.Open(cached); err == nil {
			slog.InfoContext(ctx, "Using cached download",
				slog.String("source", source),
				slog.String("cache", cached))
			return f, func() { f.Close() }, nil
		}
	}

	body, err := download(ctx, source, opts.HTTPClient)
	if err != nil {
		return nil, nil, err
	}

	if opts.CacheDir != "" {
		cached := filepath.Join(opts.CacheDir, cacheName(source))
		if err := os.MkdirAll(opts.CacheDir, 0755); err == nil {
			if err := os.WriteFile(cached, body, 0644); err != nil {
				slog.WarnContext(ctx, "Failed to cache download",
					slog.String("cache", cached),
					slog.String("error", err.Error()))
			}
		}
	}
	return strings.NewReader(string(body)), func() {}, nil
}

func download(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("invalid source URL %s", source), err)
	}
	slog.InfoContext(ctx, "Downloading source", slog.String("url", source))
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("failed to fetch %s", source), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Load(fmt.Sprintf("fetch %s: unexpected status %s", source, resp.Status), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Load(fmt.Sprintf("failed to read response from %s", source), err)
	}
	return body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// cacheName derives a stable file name for a URL download. The name is
// prefixed with a digest of the full URL so sources that share a base name
// never share a cache entry.
func cacheName(source string) string {
	sum := sha256.Sum256([]byte(source))
	prefix := hex.EncodeToString(sum[:6])

	base := "download.csv"
	if u, err := url.Parse(source); err == nil {
		if b := path.Base(u.Path); b != "" && b != "/" && b != "." {
			base = b
		}
	}
	return prefix + "_" + base
}
