// Package exporter writes table snapshots as CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/table"
)

// Writer writes CSV snapshots.
type Writer struct {
	// BOM prefixes the file with a UTF-8 byte order mark so Excel detects
	// the encoding.
	BOM bool
	// Append appends records without rewriting the header.
	Append bool
}

// WriteTable writes the table to path: header row first, then one line per
// record, null cells as empty fields. Parent directories are created as
// needed.
func (w Writer) WriteTable(path string, t *table.Table) error {
	slog.Info("Writing CSV snapshot",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Write("failed to create output directory", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if w.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return apperrors.Write(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	if w.BOM && !w.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.Write("failed to write BOM", err)
		}
	}

	cw := csv.NewWriter(file)
	if !w.Append {
		if err := cw.Write(t.Columns()); err != nil {
			return apperrors.Write("failed to write header", err)
		}
	}
	cols := t.Columns()
	record := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for ci, c := range cols {
			v, err := t.Cell(i, c)
			if err != nil {
				return apperrors.Write(fmt.Sprintf("failed to read row %d", i), err)
			}
			record[ci] = v.Format()
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Write(fmt.Sprintf("failed to write row %d", i), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Write("failed to flush CSV", err)
	}
	return nil
}

// Stream writes rows incrementally for outputs too large to hold as one
// table.
type Stream struct {
	file   *os.File
	writer *csv.Writer
	width  int
}

// CreateStream opens a streaming CSV writer and writes the header.
func (w Writer) CreateStream(path string, header []string) (*Stream, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.Write("failed to create output directory", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Write(fmt.Sprintf("failed to create %s", path), err)
	}
	if w.BOM {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, apperrors.Write("failed to write BOM", err)
		}
	}
	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		file.Close()
		return nil, apperrors.Write("failed to write header", err)
	}
	return &Stream{file: file, writer: cw, width: len(header)}, nil
}

// WriteValues appends one record of cells.
func (s *Stream) WriteValues(values []table.Value) error {
	if len(values) != s.width {
		return apperrors.Write(fmt.Sprintf("record has %d cells, want %d", len(values), s.width), nil)
	}
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = v.Format()
	}
	if err := s.writer.Write(record); err != nil {
		return apperrors.Write("failed to write record", err)
	}
	return nil
}

// Close flushes and closes the stream.
func (s *Stream) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return apperrors.Write("failed to flush CSV", err)
	}
	if err := s.file.Close(); err != nil {
		return apperrors.Write("failed to close file", err)
	}
	return nil
}
