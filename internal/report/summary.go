// Package report observes the pipeline without mutating the table and
// emits the run summary.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"fraudprep/internal/dataset"
)

// StageSnapshot records the table shape after one stage completed.
type StageSnapshot struct {
	Stage    string
	Rows     int
	Cols     int
	Duration time.Duration
}

// Summary aggregates everything the reporter observed over a run.
type Summary struct {
	RunID       string
	InitialRows int
	InitialCols int
	FinalRows   int
	FinalCols   int
	Snapshots   []StageSnapshot
	// ClassCounts maps each target label to its row count; empty when
	// the input is unlabeled.
	ClassCounts map[int]int
	FraudRate   float64
}

// Reporter is a read-only observer over pipeline progress.
type Reporter struct {
	logger  *slog.Logger
	summary Summary
}

// NewReporter creates a reporter with a fresh run ID.
func NewReporter(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		logger: logger,
		summary: Summary{
			RunID:       uuid.NewString(),
			ClassCounts: make(map[int]int),
		},
	}
}

// RunID returns the identifier for this run.
func (r *Reporter) RunID() string { return r.summary.RunID }

// RecordInitial captures the raw table shape before any stage runs.
func (r *Reporter) RecordInitial(t *dataset.Table) {
	r.summary.InitialRows = t.Rows()
	r.summary.InitialCols = t.Cols()
}

// RecordStage captures the table shape after a stage completed.
func (r *Reporter) RecordStage(stage string, t *dataset.Table, elapsed time.Duration) {
	r.summary.Snapshots = append(r.summary.Snapshots, StageSnapshot{
		Stage:    stage,
		Rows:     t.Rows(),
		Cols:     t.Cols(),
		Duration: elapsed,
	})
}

// Finalize captures the output table shape and, when the target column
// is present, its class distribution.
func (r *Reporter) Finalize(t *dataset.Table) {
	r.summary.FinalRows = t.Rows()
	r.summary.FinalCols = t.Cols()

	target, ok := t.Column("is_fraud")
	if !ok || target.Kind != dataset.KindNumeric || len(target.Floats) == 0 {
		return
	}
	for _, v := range target.Floats {
		r.summary.ClassCounts[int(v)]++
	}
	// labels are 0/1, so the mean of the column is the positive rate
	r.summary.FraudRate = stat.Mean(target.Floats, nil)
}

// Summary returns a copy of the collected summary.
func (r *Reporter) Summary() Summary {
	out := r.summary
	out.Snapshots = append([]StageSnapshot(nil), r.summary.Snapshots...)
	out.ClassCounts = make(map[int]int, len(r.summary.ClassCounts))
	for k, v := range r.summary.ClassCounts {
		out.ClassCounts[k] = v
	}
	return out
}

// Log emits the run summary through the structured logger.
func (r *Reporter) Log(ctx context.Context) {
	s := r.summary
	for _, snap := range s.Snapshots {
		r.logger.InfoContext(ctx, "stage completed",
			slog.String("run_id", s.RunID),
			slog.String("stage", snap.Stage),
			slog.Int("rows", snap.Rows),
			slog.Int("columns", snap.Cols),
			slog.Duration("elapsed", snap.Duration))
	}

	attrs := []any{
		slog.String("run_id", s.RunID),
		slog.Int("initial_rows", s.InitialRows),
		slog.Int("initial_columns", s.InitialCols),
		slog.Int("final_rows", s.FinalRows),
		slog.Int("final_columns", s.FinalCols),
	}
	if len(s.ClassCounts) > 0 {
		attrs = append(attrs,
			slog.Int("fraud_rows", s.ClassCounts[1]),
			slog.Int("legit_rows", s.ClassCounts[0]),
			slog.Float64("fraud_rate", s.FraudRate))
	}
	r.logger.InfoContext(ctx, "preprocessing summary", attrs...)
}
