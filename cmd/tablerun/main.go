// Command tablerun executes a YAML-declared pipeline against a CSV or XLSX
// input and writes the resulting table as a CSV snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tablecli/internal/config"
	"tablecli/internal/exporter"
	"tablecli/internal/infrastructure"
	"tablecli/internal/loader"
	"tablecli/internal/pipeline"
	"tablecli/internal/table"
)

func main() {
	specPath := flag.String("spec", "", "YAML pipeline spec file (required)")
	input := flag.String("input", "", "input file: CSV path/URL or XLSX path (required)")
	out := flag.String("out", "", "output csv file path (required)")
	format := flag.String("format", "", "input format: csv or xlsx (defaults from the file extension)")
	sheet := flag.String("sheet", "", "worksheet name for xlsx inputs (defaults to the first sheet)")
	configPath := flag.String("config", "", "optional YAML config file")
	bom := flag.Bool("bom", false, "prefix the output with a UTF-8 BOM")
	flag.Parse()

	if *specPath == "" || *input == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "tablerun: -spec, -input and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	logger.InfoContext(ctx, "Starting pipeline run",
		slog.String("spec", *specPath),
		slog.String("input", *input),
		slog.String("output", *out))

	spec, err := pipeline.LoadSpec(*specPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load pipeline spec", "error", err)
		os.Exit(1)
	}
	steps, err := pipeline.Compile(spec)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compile pipeline spec", "error", err)
		os.Exit(1)
	}

	src, err := loadInput(ctx, *input, *format, *sheet, cfg.Paths.CacheDir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load input", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.NewRunner(logger).Run(ctx, src, steps)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", "error", err)
		os.Exit(1)
	}

	if err := (exporter.Writer{BOM: *bom}).WriteTable(*out, result); err != nil {
		logger.ErrorContext(ctx, "Failed to write snapshot", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Pipeline run completed",
		slog.Int("rows", result.NumRows()),
		slog.String("output", *out))
}

// loadInput picks the loader from the explicit format flag or the file
// extension.
func loadInput(ctx context.Context, input, format, sheet, cacheDir string) (*table.Table, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(input), ".xlsx") {
			format = "xlsx"
		} else {
			format = "csv"
		}
	}
	switch format {
	case "csv":
		return loader.ReadCSV(ctx, input, loader.Options{CacheDir: cacheDir})
	case "xlsx":
		return loader.ReadXLSX(input, sheet)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}
