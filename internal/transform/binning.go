package transform

import (
	"context"
	"log/slog"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// Fixed binning thresholds. All bands are closed at the lower edge and
// open at the upper edge; the last band is unbounded above.
const (
	// amount_bin: Low <= 100 < Medium <= 1000 < High
	amountLowMax    = 100.0
	amountMediumMax = 1000.0
)

var ageBandStarts = []float64{25, 35, 50, 65}
var ageBandLabels = []string{"Youth", "Young Adult", "Middle Age", "Senior", "Elderly"}

var hourBandStarts = []float64{6, 12, 18}
var hourBandLabels = []string{"Night", "Morning", "Afternoon", "Evening"}

// Binner derives the three categorical range features from the capped
// numeric columns. Pure per-row mapping, no cross-row state.
type Binner struct {
	logger *slog.Logger
}

// NewBinner creates the stage.
func NewBinner(logger *slog.Logger) *Binner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binner{logger: logger}
}

// Name implements Stage.
func (s *Binner) Name() string { return "binning" }

// Apply implements Stage.
func (s *Binner) Apply(ctx context.Context, t *dataset.Table) error {
	derived := []struct {
		source string
		target string
		label  func(float64) string
	}{
		{ColAmount, ColAmountBin, AmountBin},
		{ColCardholderAge, ColAgeGroup, AgeGroup},
		{ColTransactionHour, ColTimePeriod, TimePeriod},
	}

	for _, d := range derived {
		src, ok := t.Column(d.source)
		if !ok {
			return errors.Newf(errors.CodeTransform, s.Name(),
				"source column %q not present", d.source)
		}
		if src.Kind != dataset.KindNumeric {
			return errors.Newf(errors.CodeTransform, s.Name(),
				"source column %q is not numeric", d.source)
		}

		labels := make([]string, len(src.Floats))
		for i, v := range src.Floats {
			labels[i] = d.label(v)
		}
		if err := t.AddColumn(dataset.NewTextColumn(d.target, labels)); err != nil {
			return errors.Wrap(errors.CodeTransform, s.Name(), "adding binned column", err)
		}
		s.logger.DebugContext(ctx, "binned column derived",
			slog.String("source", d.source),
			slog.String("column", d.target))
	}
	return nil
}

// AmountBin maps a transaction amount to Low, Medium or High.
func AmountBin(amount float64) string {
	switch {
	case amount <= amountLowMax:
		return "Low"
	case amount <= amountMediumMax:
		return "Medium"
	default:
		return "High"
	}
}

// AgeGroup maps a cardholder age to one of five ordered bands. The
// final band has no upper bound.
func AgeGroup(age float64) string {
	for i, start := range ageBandStarts {
		if age < start {
			return ageBandLabels[i]
		}
	}
	return ageBandLabels[len(ageBandLabels)-1]
}

// TimePeriod maps an hour of day to one of four bands covering 0-23.
func TimePeriod(hour float64) string {
	for i, start := range hourBandStarts {
		if hour < start {
			return hourBandLabels[i]
		}
	}
	return hourBandLabels[len(hourBandLabels)-1]
}
