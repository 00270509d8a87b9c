package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "tablecli/internal/errors"
	"tablecli/internal/infrastructure"
	"tablecli/internal/table"
)

// Runner executes an ordered list of steps against a source table. Each run
// gets a fresh run ID that the logger injects into every record.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger falls back to slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run applies the steps left to right and returns the final table. The first
// failing step aborts the run; the returned error carries the step name and
// position.
func (r *Runner) Run(ctx context.Context, src *table.Table, steps []Step) (*table.Table, error) {
	runID := infrastructure.RunID(ctx)
	if runID == "" {
		runID = infrastructure.NewRunID()
		ctx = infrastructure.WithRunID(ctx, runID)
	}

	r.logger.InfoContext(ctx, "Pipeline run started",
		slog.Int("steps", len(steps)),
		slog.Int("input_rows", src.NumRows()),
		slog.Int("input_columns", src.NumCols()))

	current := src
	start := time.Now()
	for i, step := range steps {
		stepStart := time.Now()
		next, err := step.Apply(ctx, current)
		if err != nil {
			wrapped := apperrors.WrapStep(err, fmt.Sprintf("%s[%d]", step.Name(), i))
			r.logger.ErrorContext(ctx, "Pipeline step failed",
				slog.String("step", step.Name()),
				slog.Int("position", i),
				slog.String("error", wrapped.Error()))
			return nil, wrapped
		}
		r.logger.InfoContext(ctx, "Pipeline step completed",
			slog.String("step", step.Name()),
			slog.Int("position", i),
			slog.Int("rows_in", current.NumRows()),
			slog.Int("rows_out", next.NumRows()),
			slog.Duration("duration", time.Since(stepStart)))
		current = next
	}

	r.logger.InfoContext(ctx, "Pipeline run completed",
		slog.Int("output_rows", current.NumRows()),
		slog.Int("output_columns", current.NumCols()),
		slog.Duration("duration", time.Since(start)))
	return current, nil
}
