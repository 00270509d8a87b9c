// Command housing runs the housing-price walkthrough pipeline: download the
// wide city-index CSV once, reshape it to long form, split the location key,
// derive each city's index relative to the national index, and write the
// result as a CSV snapshot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tablecli/internal/config"
	"tablecli/internal/exporter"
	"tablecli/internal/infrastructure"
	"tablecli/internal/loader"
	"tablecli/internal/pipeline"
	"tablecli/internal/table"
)

const defaultSource = "https://files.zillowstatic.com/research/public/City_Zhvi_AllHomes.csv"

func main() {
	input := flag.String("input", defaultSource, "source CSV (local path or URL)")
	out := flag.String("out", "", "output csv file path (defaults to <reports>/housing_rel_index.csv)")
	configPath := flag.String("config", "", "optional YAML config file")
	cacheDir := flag.String("cache-dir", "", "cache directory for downloads (defaults to the configured cache dir)")
	limit := flag.Int("limit", 0, "keep only the first N output rows (0 keeps all)")
	flag.Parse()

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

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.Paths.ReportPath("housing_rel_index.csv")
	}
	if *cacheDir == "" {
		*cacheDir = cfg.Paths.CacheDir
	}

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	logger.InfoContext(ctx, "Starting housing walkthrough",
		slog.String("input", *input),
		slog.String("output", *out))

	src, err := loader.ReadCSV(ctx, *input, loader.Options{CacheDir: *cacheDir})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load source data", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.NewRunner(logger).Run(ctx, src, buildSteps(*limit))
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", "error", err)
		os.Exit(1)
	}

	if err := (exporter.Writer{BOM: true}).WriteTable(*out, result); err != nil {
		logger.ErrorContext(ctx, "Failed to write snapshot", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Housing walkthrough completed",
		slog.Int("rows", result.NumRows()),
		slog.String("output", *out))
}

// buildSteps assembles the walkthrough pipeline. Every column other than
// Date and National.US is a city series, so the reshape pivots them all into
// (location, local_index) pairs.
func buildSteps(limit int) []pipeline.Step {
	steps := []pipeline.Step{
		pipeline.NewStep("reshape_long", func(t *table.Table) (*table.Table, error) {
			return t.ReshapeLong([]string{"Date", "National.US"}, nil, "location", "local_index")
		}),
		pipeline.NewStep("split_column", func(t *table.Table) (*table.Table, error) {
			return t.SplitColumn("location", []string{"city", "state"}, table.SplitOptions{Separator: "_"})
		}),
		pipeline.NewStep("derive", func(t *table.Table) (*table.Table, error) {
			return t.DeriveExpr("rel_index", table.BinaryExpr{
				Left:  table.ColumnRef("local_index"),
				Op:    "/",
				Right: table.ColumnRef("National.US"),
			})
		}),
		pipeline.NewStep("filter", func(t *table.Table) (*table.Table, error) {
			return t.Filter(table.IsNotNull("rel_index"))
		}),
		pipeline.NewStep("sort", func(t *table.Table) (*table.Table, error) {
			return t.Sort(
				table.SortKey{Column: "city"},
				table.SortKey{Column: "Date", Desc: true},
			)
		}),
		pipeline.NewStep("select", func(t *table.Table) (*table.Table, error) {
			return t.Select(
				table.ColAs("Date", "date"),
				table.Col("city"),
				table.Col("state"),
				table.Col("local_index"),
				table.Col("rel_index"),
			)
		}),
	}
	if limit > 0 {
		steps = append(steps, pipeline.NewStep("limit", func(t *table.Table) (*table.Table, error) {
			return t.Limit(limit)
		}))
	}
	return steps
}
