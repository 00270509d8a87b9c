package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// runIDContextKey carries the pipeline run ID through the context.
const runIDContextKey contextKey = "run_id"

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID stores a run ID in the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// RunID retrieves the run ID from the context, or "" when absent.
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDContextKey).(string); ok {
		return v
	}
	return ""
}
