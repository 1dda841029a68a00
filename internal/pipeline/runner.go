// Package pipeline sequences the preprocessing stages over the single
// in-memory table. The order is fixed and total; the first stage error
// aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fraudprep/internal/dataset"
	"fraudprep/internal/report"
	"fraudprep/internal/transform"
)

// Runner executes an ordered list of stages against one table.
type Runner struct {
	logger   *slog.Logger
	reporter *report.Reporter
	stages   []transform.Stage
}

// New creates a Runner over the given stages.
func New(logger *slog.Logger, reporter *report.Reporter, stages ...transform.Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, reporter: reporter, stages: stages}
}

// DefaultStages returns the full cleaning sequence in its fixed order:
// missing values, duplicates, outlier capping, binning, encoding,
// standardization, pruning. Capping must precede binning and
// standardization because both derive from the capped values.
func DefaultStages(logger *slog.Logger) []transform.Stage {
	return []transform.Stage{
		transform.NewMissingValues(logger),
		transform.NewDuplicates(logger),
		transform.NewOutlierCap(logger),
		transform.NewBinner(logger),
		transform.NewEncoder(logger),
		transform.NewStandardize(logger),
		transform.NewPrune(logger),
	}
}

// Run applies every stage in order, recording shape snapshots with the
// reporter. The returned error names the failing stage.
func (r *Runner) Run(ctx context.Context, t *dataset.Table) error {
	if r.reporter != nil {
		r.reporter.RecordInitial(t)
	}

	for _, stage := range r.stages {
		start := time.Now()
		r.logger.InfoContext(ctx, "stage starting",
			slog.String("stage", stage.Name()),
			slog.Int("rows", t.Rows()),
			slog.Int("columns", t.Cols()))

		if err := stage.Apply(ctx, t); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}

		if r.reporter != nil {
			r.reporter.RecordStage(stage.Name(), t, time.Since(start))
		}
	}
	return nil
}
