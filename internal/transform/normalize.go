package transform

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// ScaledColumns are the numeric feature columns standardized to zero
// mean and unit variance. The 0/1 flags, the target and the encoded
// range bins stay on their original scale.
var ScaledColumns = []string{
	ColAmount,
	ColTransactionHour,
	ColDeviceTrust,
	ColVelocity,
	ColCardholderAge,
	ColMerchantCategory + EncodedSuffix,
}

// Standardize rescales each listed column to (v - mean) / stddev using
// the column's own current distribution. A zero-variance column is set
// to all zeros instead of dividing by zero.
type Standardize struct {
	logger  *slog.Logger
	columns []string
}

// NewStandardize creates the stage over the default column list.
func NewStandardize(logger *slog.Logger) *Standardize {
	return NewStandardizeFor(logger, ScaledColumns)
}

// NewStandardizeFor creates the stage over an explicit column list.
// Listed columns absent from the table are skipped.
func NewStandardizeFor(logger *slog.Logger, columns []string) *Standardize {
	if logger == nil {
		logger = slog.Default()
	}
	return &Standardize{logger: logger, columns: columns}
}

// Name implements Stage.
func (s *Standardize) Name() string { return "standardize" }

// Apply implements Stage.
func (s *Standardize) Apply(ctx context.Context, t *dataset.Table) error {
	for _, name := range s.columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		if col.Kind != dataset.KindNumeric {
			return errors.Newf(errors.CodeTransform, s.Name(),
				"column %q is not numeric", name)
		}

		mean := stat.Mean(col.Floats, nil)
		sigma := stat.PopStdDev(col.Floats, nil)

		if sigma == 0 {
			for i := range col.Floats {
				col.Floats[i] = 0
			}
			s.logger.WarnContext(ctx, "zero-variance column zeroed",
				slog.String("column", name))
			continue
		}

		for i, v := range col.Floats {
			col.Floats[i] = (v - mean) / sigma
		}
		s.logger.DebugContext(ctx, "column standardized",
			slog.String("column", name),
			slog.Float64("mean", mean),
			slog.Float64("stddev", sigma))
	}
	return nil
}
