package pipeline

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
	"fraudprep/internal/report"
	"fraudprep/internal/transform"
)

// rawTable builds a labeled ten-row transaction table with one fully
// empty row and one exact duplicate pair.
func rawTable(t *testing.T) *dataset.Table {
	t.Helper()

	ids := make([]string, 10)
	amounts := []float64{120.5, 5000, 45, 890, 3200, 15, 670, 45, 230, math.NaN()}
	hours := []float64{14, 2, 9, 19, 23, 7, 12, 9, 16, math.NaN()}
	cats := []string{"online", "travel", "grocery", "online", "travel", "grocery", "online", "grocery", "travel", ""}
	foreign := []float64{0, 1, 0, 0, 1, 0, 0, 0, 1, math.NaN()}
	mismatch := []float64{0, 1, 0, 1, 0, 0, 0, 0, 1, math.NaN()}
	trust := []float64{85.2, 20.1, 67.4, 55, 13.9, 91, 72.5, 67.4, 48.8, math.NaN()}
	velocity := []float64{3, 9, 1, 4, 11, 0, 2, 1, 6, math.NaN()}
	ages := []float64{34, 70, 45, 28, 61, 19, 52, 45, 37, math.NaN()}
	fraud := []float64{0, 1, 0, 0, 1, 0, 0, 0, 0, math.NaN()}
	for i := range ids {
		ids[i] = fmt.Sprintf("tx%03d", i+1)
	}
	ids[9] = ""
	// rows 2 and 7 are exact duplicates once the id is ignored; give
	// them the same id so the pair is identical in every column
	ids[7] = ids[2]

	tbl, err := dataset.New(
		dataset.NewTextColumn("transaction_id", ids),
		dataset.NewNumericColumn("amount", amounts),
		dataset.NewNumericColumn("transaction_hour", hours),
		dataset.NewTextColumn("merchant_category", cats),
		dataset.NewNumericColumn("foreign_transaction", foreign),
		dataset.NewNumericColumn("location_mismatch", mismatch),
		dataset.NewNumericColumn("device_trust_score", trust),
		dataset.NewNumericColumn("velocity_last_24h", velocity),
		dataset.NewNumericColumn("cardholder_age", ages),
		dataset.NewNumericColumn("is_fraud", fraud),
	)
	require.NoError(t, err)
	return tbl
}

func TestRun_FullPipeline(t *testing.T) {
	tbl := rawTable(t)
	reporter := report.NewReporter(nil)
	runner := New(nil, reporter, DefaultStages(nil)...)

	require.NoError(t, runner.Run(context.Background(), tbl))
	reporter.Finalize(tbl)

	// 10 raw rows, one empty, one duplicate
	assert.Equal(t, 8, tbl.Rows())

	// no-nulls invariant
	for row := 0; row < tbl.Rows(); row++ {
		assert.False(t, tbl.RowHasMissing(row), "row %d", row)
	}

	// no-duplicates invariant
	keys := make(map[string]struct{})
	for row := 0; row < tbl.Rows(); row++ {
		keys[tbl.RowKey(row)] = struct{}{}
	}
	assert.Len(t, keys, tbl.Rows())

	// schema pruning: no identifier, no text columns
	assert.False(t, tbl.HasColumn("transaction_id"))
	for _, col := range tbl.Columns() {
		assert.Equal(t, dataset.KindNumeric, col.Kind, "column %s", col.Name)
	}
	for _, name := range []string{
		"merchant_category_encoded", "amount_bin_encoded",
		"age_group_encoded", "time_period_encoded", "is_fraud",
	} {
		assert.True(t, tbl.HasColumn(name), "column %s", name)
	}

	// standardization of a scaled, non-constant column
	amount, _ := tbl.Column("amount")
	assert.InDelta(t, 0, stat.Mean(amount.Floats, nil), 1e-9)
	assert.InDelta(t, 1, stat.PopStdDev(amount.Floats, nil), 1e-9)

	s := reporter.Summary()
	assert.Equal(t, 10, s.InitialRows)
	assert.Equal(t, 8, s.FinalRows)
	assert.Equal(t, 2, s.ClassCounts[1])
	assert.InDelta(t, 0.25, s.FraudRate, 1e-12)
}

func TestRun_CleaningStagesIdempotent(t *testing.T) {
	first := rawTable(t)
	second := rawTable(t)

	once := New(nil, nil,
		transform.NewMissingValues(nil),
		transform.NewDuplicates(nil),
	)
	twice := New(nil, nil,
		transform.NewMissingValues(nil),
		transform.NewDuplicates(nil),
		transform.NewMissingValues(nil),
		transform.NewDuplicates(nil),
	)

	require.NoError(t, once.Run(context.Background(), first))
	require.NoError(t, twice.Run(context.Background(), second))

	require.Equal(t, first.Rows(), second.Rows())
	for row := 0; row < first.Rows(); row++ {
		assert.Equal(t, first.RowKey(row), second.RowKey(row))
	}
}

func TestRun_StopsAtFirstFailingStage(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewNumericColumn("amount", []float64{math.NaN(), math.NaN()}),
	)
	require.NoError(t, err)

	runner := New(nil, nil, DefaultStages(nil)...)
	err = runner.Run(context.Background(), tbl)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmptyDataset))
	assert.Contains(t, err.Error(), "missing-values")
}

func TestRun_UnlabeledInput(t *testing.T) {
	tbl := rawTable(t)
	tbl.DropColumn("is_fraud")

	runner := New(nil, nil, DefaultStages(nil)...)
	require.NoError(t, runner.Run(context.Background(), tbl))

	assert.False(t, tbl.HasColumn("is_fraud"))
	assert.True(t, tbl.HasColumn("amount_bin_encoded"))
}
