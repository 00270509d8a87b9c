// Package pipeline composes table verbs into ordered runs. Steps can be
// assembled in code or compiled from a declarative YAML spec; the runner
// applies them left to right, logging each step under a shared run ID.
package pipeline

import (
	"context"

	"tablecli/internal/table"
)

// Step is one pure table-to-table transformation.
type Step interface {
	// Name identifies the step in logs and error attribution.
	Name() string
	// Apply transforms the input table into a new table.
	Apply(ctx context.Context, t *table.Table) (*table.Table, error)
}

type funcStep struct {
	name string
	fn   func(*table.Table) (*table.Table, error)
}

// NewStep wraps a plain transformation function as a named Step.
func NewStep(name string, fn func(*table.Table) (*table.Table, error)) Step {
	return funcStep{name: name, fn: fn}
}

func (s funcStep) Name() string {
	return s.name
}

func (s funcStep) Apply(_ context.Context, t *table.Table) (*table.Table, error) {
	return s.fn(t)
}
