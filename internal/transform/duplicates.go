package transform

import (
	"context"
	"log/slog"

	"fraudprep/internal/dataset"
)

// Duplicates removes rows that match an earlier row in every column,
// keeping the first occurrence. Idempotent and order preserving.
type Duplicates struct {
	logger *slog.Logger
}

// NewDuplicates creates the stage.
func NewDuplicates(logger *slog.Logger) *Duplicates {
	if logger == nil {
		logger = slog.Default()
	}
	return &Duplicates{logger: logger}
}

// Name implements Stage.
func (s *Duplicates) Name() string { return "duplicates" }

// Apply implements Stage.
func (s *Duplicates) Apply(ctx context.Context, t *dataset.Table) error {
	seen := make(map[string]struct{}, t.Rows())
	removed := t.Filter(func(row int) bool {
		key := t.RowKey(row)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	if removed > 0 {
		s.logger.InfoContext(ctx, "duplicate rows removed",
			slog.Int("removed", removed),
			slog.Int("remaining", t.Rows()))
	}
	return nil
}
