package transform

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// iqrFactor is the classic Tukey fence multiplier.
const iqrFactor = 1.5

// CappedColumns are the continuous numeric feature columns the capper
// touches. Identifier, target and 0/1 flag columns are excluded: an
// IQR fence over a mostly-zero binary column collapses it to a
// constant.
var CappedColumns = []string{
	ColAmount,
	ColTransactionHour,
	ColDeviceTrust,
	ColVelocity,
	ColCardholderAge,
}

// Bounds holds the fence computed for one column.
type Bounds struct {
	Lower float64
	Upper float64
}

// OutlierCap clamps each listed column to its own IQR fence. Columns
// are independent; each fence comes from that column's distribution
// before any clamping.
type OutlierCap struct {
	logger  *slog.Logger
	columns []string
	bounds  map[string]Bounds
}

// NewOutlierCap creates the stage over the default column list.
func NewOutlierCap(logger *slog.Logger) *OutlierCap {
	return NewOutlierCapFor(logger, CappedColumns)
}

// NewOutlierCapFor creates the stage over an explicit column list.
// Listed columns absent from the table are skipped.
func NewOutlierCapFor(logger *slog.Logger, columns []string) *OutlierCap {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutlierCap{
		logger:  logger,
		columns: columns,
		bounds:  make(map[string]Bounds),
	}
}

// Name implements Stage.
func (s *OutlierCap) Name() string { return "outlier-cap" }

// Apply implements Stage.
func (s *OutlierCap) Apply(ctx context.Context, t *dataset.Table) error {
	for _, name := range s.columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		if col.Kind != dataset.KindNumeric {
			return errors.Newf(errors.CodeTransform, s.Name(),
				"column %q is not numeric", name)
		}

		q1 := Percentile(col.Floats, 25)
		q3 := Percentile(col.Floats, 75)
		iqr := q3 - q1
		b := Bounds{Lower: q1 - iqrFactor*iqr, Upper: q3 + iqrFactor*iqr}
		s.bounds[name] = b

		capped := 0
		for i, v := range col.Floats {
			switch {
			case v < b.Lower:
				col.Floats[i] = b.Lower
				capped++
			case v > b.Upper:
				col.Floats[i] = b.Upper
				capped++
			}
		}

		s.logger.DebugContext(ctx, "column capped",
			slog.String("column", name),
			slog.Float64("lower", b.Lower),
			slog.Float64("upper", b.Upper),
			slog.Int("capped", capped))
	}
	return nil
}

// ColumnBounds returns the fence computed for a column during Apply.
func (s *OutlierCap) ColumnBounds(name string) (Bounds, bool) {
	b, ok := s.bounds[name]
	return b, ok
}

// Percentile computes the p-th percentile (0-100) with linear
// interpolation between order statistics, the convention the quartile
// fences here were originally defined against.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
