package transform

import (
	"context"
	"log/slog"
	"sort"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// Encoder label-encodes every categorical column except the identifier:
// the original categoricals plus the binned range features. Codes are
// assigned over the distinct values observed in this run, sorted
// lexicographically, so the mapping is stable for a given dataset but
// intentionally not fixed across datasets.
type Encoder struct {
	logger   *slog.Logger
	mappings map[string]map[string]int
}

// NewEncoder creates the stage.
func NewEncoder(logger *slog.Logger) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{
		logger:   logger,
		mappings: make(map[string]map[string]int),
	}
}

// Name implements Stage.
func (s *Encoder) Name() string { return "encoding" }

// Apply implements Stage. Encoded integer columns are appended as
// <name>_encoded; the raw text columns stay until the pruning stage so
// the summary can still see them.
func (s *Encoder) Apply(ctx context.Context, t *dataset.Table) error {
	// Snapshot: AddColumn below grows the live column slice.
	var categorical []*dataset.Column
	for _, col := range t.Columns() {
		if col.Kind == dataset.KindText && col.Name != ColTransactionID {
			categorical = append(categorical, col)
		}
	}

	for _, col := range categorical {
		mapping := buildMapping(col.Texts)
		s.mappings[col.Name] = mapping

		codes := make([]float64, len(col.Texts))
		for i, v := range col.Texts {
			codes[i] = float64(mapping[v])
		}
		encoded := dataset.NewNumericColumn(col.Name+EncodedSuffix, codes)
		if err := t.AddColumn(encoded); err != nil {
			return errors.Wrap(errors.CodeTransform, s.Name(), "adding encoded column", err)
		}

		s.logger.DebugContext(ctx, "categorical column encoded",
			slog.String("column", col.Name),
			slog.Int("distinct_values", len(mapping)))
	}
	return nil
}

// Mapping returns the value-to-code map built for a column during
// Apply, or false when the column was not encoded.
func (s *Encoder) Mapping(name string) (map[string]int, bool) {
	m, ok := s.mappings[name]
	return m, ok
}

func buildMapping(values []string) map[string]int {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	ordered := make([]string, 0, len(distinct))
	for v := range distinct {
		ordered = append(ordered, v)
	}
	sort.Strings(ordered)

	mapping := make(map[string]int, len(ordered))
	for code, v := range ordered {
		mapping[v] = code
	}
	return mapping
}
