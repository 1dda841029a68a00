package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudprep/internal/dataset"
)

func TestEncoder_Apply(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewTextColumn("transaction_id", []string{"tx1", "tx2", "tx3"}),
		dataset.NewTextColumn("merchant_category", []string{"travel", "grocery", "travel"}),
		dataset.NewTextColumn("amount_bin", []string{"High", "Low", "High"}),
	)
	require.NoError(t, err)

	stage := NewEncoder(nil)
	require.NoError(t, stage.Apply(context.Background(), tbl))

	// codes follow sorted distinct values: grocery=0, travel=1
	encoded, ok := tbl.Column("merchant_category_encoded")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0, 1}, encoded.Floats)

	binEncoded, ok := tbl.Column("amount_bin_encoded")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 0}, binEncoded.Floats)

	// the identifier is never encoded
	assert.False(t, tbl.HasColumn("transaction_id_encoded"))

	// raw text columns survive until pruning
	assert.True(t, tbl.HasColumn("merchant_category"))
}

func TestEncoder_MappingBijection(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewTextColumn("merchant_category", []string{"a", "b", "c", "b", "a", "d"}),
	)
	require.NoError(t, err)

	stage := NewEncoder(nil)
	require.NoError(t, stage.Apply(context.Background(), tbl))

	mapping, ok := stage.Mapping("merchant_category")
	require.True(t, ok)
	assert.Len(t, mapping, 4)

	// each code maps back to exactly one value
	reverse := make(map[int]string)
	for value, code := range mapping {
		prev, seen := reverse[code]
		assert.False(t, seen, "code %d assigned to both %q and %q", code, prev, value)
		reverse[code] = value
	}
	assert.Len(t, reverse, 4)
}

func TestEncoder_DeterministicWithinDataset(t *testing.T) {
	build := func() *dataset.Table {
		tbl, err := dataset.New(
			dataset.NewTextColumn("merchant_category", []string{"online", "travel", "grocery"}),
		)
		require.NoError(t, err)
		return tbl
	}

	first := NewEncoder(nil)
	require.NoError(t, first.Apply(context.Background(), build()))
	second := NewEncoder(nil)
	require.NoError(t, second.Apply(context.Background(), build()))

	m1, _ := first.Mapping("merchant_category")
	m2, _ := second.Mapping("merchant_category")
	assert.Equal(t, m1, m2)
}

func TestEncoder_NoCategoricalColumns(t *testing.T) {
	tbl, err := dataset.New(
		dataset.NewNumericColumn("amount", []float64{1, 2}),
	)
	require.NoError(t, err)

	require.NoError(t, NewEncoder(nil).Apply(context.Background(), tbl))
	assert.Equal(t, 1, tbl.Cols())
}
