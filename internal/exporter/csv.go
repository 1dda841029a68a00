// Package exporter serializes the final table to the output file.
package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// StageName identifies the writer in errors and logs.
const StageName = "write"

// CSVWriter writes tables as delimited files, creating the target
// directory and overwriting any existing file.
type CSVWriter struct {
	logger *slog.Logger
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// NewCSVWriter creates a writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteTable serializes the table to path. Failures to create or write
// the destination surface as WRITE_PERMISSION errors.
func (w *CSVWriter) WriteTable(path string, t *dataset.Table, options WriteOptions) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.CodeWritePermission, StageName, "creating output directory", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(errors.CodeWritePermission, StageName, "destination not writable", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.Wrap(errors.CodeWritePermission, StageName, "writing BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Names()); err != nil {
		return errors.Wrap(errors.CodeWritePermission, StageName, "writing header", err)
	}

	record := make([]string, t.Cols())
	for row := 0; row < t.Rows(); row++ {
		for i, col := range t.Columns() {
			record[i] = col.CellString(row)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(errors.CodeWritePermission, StageName, "writing row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(errors.CodeWritePermission, StageName, "flushing output", err)
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.CodeWritePermission, StageName, "closing output", err)
	}

	w.logger.Info("output written",
		slog.String("path", path),
		slog.Int("rows", t.Rows()),
		slog.Int("columns", t.Cols()))
	return nil
}
