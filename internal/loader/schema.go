package loader

import (
	"math"
	"strconv"
	"strings"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// Known transaction schema. Columns outside this set are typed by
// inference: numeric when every present value parses as a float.
var numericColumns = map[string]bool{
	"amount":              true,
	"transaction_hour":    true,
	"foreign_transaction": true,
	"location_mismatch":   true,
	"device_trust_score":  true,
	"velocity_last_24h":   true,
	"cardholder_age":      true,
	"is_fraud":            true,
}

var textColumns = map[string]bool{
	"transaction_id":    true,
	"merchant_category": true,
}

// missing markers accepted in raw cells besides the empty string.
var missingMarkers = map[string]bool{
	"na":  true,
	"nan": true,
	"n/a": true,
}

func isMissingCell(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}
	return missingMarkers[strings.ToLower(trimmed)]
}

// toTable types raw header+records into a columnar Table. A value that
// does not parse as a number inside a known numeric column fails the
// run; there is no row quarantine.
func toTable(header []string, records [][]string) (*dataset.Table, error) {
	table, err := dataset.New()
	if err != nil {
		return nil, err
	}

	for j, name := range header {
		cells := make([]string, len(records))
		for i, rec := range records {
			cells[i] = strings.TrimSpace(rec[j])
		}

		var col *dataset.Column
		switch {
		case numericColumns[name]:
			floats, badRow := parseNumeric(cells)
			if badRow >= 0 {
				return nil, errors.Newf(errors.CodeTransform, StageName,
					"column %q row %d: %q is not numeric", name, badRow+1, cells[badRow])
			}
			col = dataset.NewNumericColumn(name, floats)
		case textColumns[name]:
			col = textColumn(name, cells)
		default:
			if floats, badRow := parseNumeric(cells); badRow < 0 {
				col = dataset.NewNumericColumn(name, floats)
			} else {
				col = textColumn(name, cells)
			}
		}

		if err := table.AddColumn(col); err != nil {
			return nil, errors.Wrap(errors.CodeParse, StageName, "building table", err)
		}
	}
	return table, nil
}

// parseNumeric converts cells to floats, missing markers to NaN.
// Returns the index of the first unparsable cell, or -1.
func parseNumeric(cells []string) ([]float64, int) {
	floats := make([]float64, len(cells))
	for i, cell := range cells {
		if isMissingCell(cell) {
			floats[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, i
		}
		floats[i] = v
	}
	return floats, -1
}

func textColumn(name string, cells []string) *dataset.Column {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if isMissingCell(cell) {
			out[i] = ""
			continue
		}
		out[i] = cell
	}
	return dataset.NewTextColumn(name, out)
}
