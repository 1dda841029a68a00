// Package transform holds the cleaning and feature-engineering stages
// of the preprocessing pipeline. Every stage mutates the table in
// place; the run aborts on the first stage error.
package transform

import (
	"context"

	"fraudprep/internal/dataset"
)

// Stage is one step of the pipeline. Apply consumes the full table
// produced by the previous stage and rewrites it in place.
type Stage interface {
	// Name identifies the stage in logs and error messages.
	Name() string

	// Apply runs the stage against the table.
	Apply(ctx context.Context, t *dataset.Table) error
}

// Column names with fixed roles in the transaction schema.
const (
	ColTransactionID    = "transaction_id"
	ColAmount           = "amount"
	ColTransactionHour  = "transaction_hour"
	ColMerchantCategory = "merchant_category"
	ColDeviceTrust      = "device_trust_score"
	ColVelocity         = "velocity_last_24h"
	ColCardholderAge    = "cardholder_age"
	ColIsFraud          = "is_fraud"

	ColAmountBin  = "amount_bin"
	ColAgeGroup   = "age_group"
	ColTimePeriod = "time_period"

	// EncodedSuffix is appended to a categorical column's name to form
	// its integer-coded counterpart.
	EncodedSuffix = "_encoded"
)
