package transform

import (
	"context"
	"log/slog"

	"fraudprep/internal/dataset"
)

// Prune drops the identifier column and every raw text column already
// superseded by its encoded counterpart, leaving only model-ready
// numeric columns.
type Prune struct {
	logger *slog.Logger
}

// NewPrune creates the stage.
func NewPrune(logger *slog.Logger) *Prune {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prune{logger: logger}
}

// Name implements Stage.
func (s *Prune) Name() string { return "prune" }

// Apply implements Stage.
func (s *Prune) Apply(ctx context.Context, t *dataset.Table) error {
	var drop []string
	for _, col := range t.Columns() {
		if col.Name == ColTransactionID || col.Kind == dataset.KindText {
			drop = append(drop, col.Name)
		}
	}
	for _, name := range drop {
		t.DropColumn(name)
	}

	if len(drop) > 0 {
		s.logger.InfoContext(ctx, "columns pruned",
			slog.Any("dropped", drop),
			slog.Any("remaining", t.Names()))
	}
	return nil
}
