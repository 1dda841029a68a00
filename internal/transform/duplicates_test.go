package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudprep/internal/dataset"
)

func duplicatesTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(
		dataset.NewNumericColumn("amount", []float64{10, 20, 10, 20, 30}),
		dataset.NewTextColumn("merchant_category", []string{"online", "travel", "online", "grocery", "travel"}),
	)
	require.NoError(t, err)
	return tbl
}

func TestDuplicates_KeepsFirstOccurrence(t *testing.T) {
	tbl := duplicatesTable(t)

	require.NoError(t, NewDuplicates(nil).Apply(context.Background(), tbl))

	// row 2 (10, online) is the only exact duplicate; (20, grocery) differs
	assert.Equal(t, 4, tbl.Rows())
	amount, _ := tbl.Column("amount")
	assert.Equal(t, []float64{10, 20, 20, 30}, amount.Floats)
	cat, _ := tbl.Column("merchant_category")
	assert.Equal(t, []string{"online", "travel", "grocery", "travel"}, cat.Texts)
}

func TestDuplicates_Idempotent(t *testing.T) {
	tbl := duplicatesTable(t)
	stage := NewDuplicates(nil)

	require.NoError(t, stage.Apply(context.Background(), tbl))
	rowsAfterFirst := tbl.Rows()
	require.NoError(t, stage.Apply(context.Background(), tbl))

	assert.Equal(t, rowsAfterFirst, tbl.Rows())
}

func TestDuplicates_AllDistinctRowsSurvive(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewNumericColumn("amount", []float64{1, 2, 3}),
	)
	require.NoError(t, err)

	require.NoError(t, NewDuplicates(nil).Apply(context.Background(), tbl))

	assert.Equal(t, 3, tbl.Rows())

	// no-duplicates invariant: every surviving pair differs somewhere
	keys := make(map[string]struct{})
	for row := 0; row < tbl.Rows(); row++ {
		keys[tbl.RowKey(row)] = struct{}{}
	}
	assert.Len(t, keys, tbl.Rows())
}
