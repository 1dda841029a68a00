package transform

import (
	"context"
	"log/slog"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// MissingValues drops every row with at least one empty cell. No
// imputation: a row either survives intact or goes.
type MissingValues struct {
	logger *slog.Logger
}

// NewMissingValues creates the stage.
func NewMissingValues(logger *slog.Logger) *MissingValues {
	if logger == nil {
		logger = slog.Default()
	}
	return &MissingValues{logger: logger}
}

// Name implements Stage.
func (s *MissingValues) Name() string { return "missing-values" }

// Apply implements Stage. Removing every row is an EMPTY_DATASET
// failure rather than a silently empty output.
func (s *MissingValues) Apply(ctx context.Context, t *dataset.Table) error {
	before := t.Rows()
	removed := t.Filter(func(row int) bool {
		return !t.RowHasMissing(row)
	})

	if t.Rows() == 0 {
		return errors.Newf(errors.CodeEmptyDataset, s.Name(),
			"all %d rows contained missing values", before)
	}

	if removed > 0 {
		s.logger.InfoContext(ctx, "rows with missing values removed",
			slog.Int("removed", removed),
			slog.Int("remaining", t.Rows()))
	}
	return nil
}
