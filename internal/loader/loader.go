// Package loader reads the raw transaction file into a dataset.Table.
// CSV and Excel inputs are supported, selected by file extension.
package loader

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"fraudprep/internal/dataset"
	"fraudprep/internal/errors"
)

// StageName identifies the loader in errors and logs.
const StageName = "load"

// Loader reads and types the raw input table.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a typed table.
func (l *Loader) Load(ctx context.Context, path string) (*dataset.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Newf(errors.CodeInputNotFound, StageName, "input file not found: %s", path)
	}

	var (
		header  []string
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		header, records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		header, records, err = readExcel(path)
	default:
		return nil, errors.Newf(errors.CodeParse, StageName, "unsupported input format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	table, err := toTable(header, records)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "input loaded",
		slog.String("path", path),
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Cols()))
	return table, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeParse, StageName, "opening input", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New(errors.CodeParse, StageName, "input file is empty")
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeParse, StageName, "reading header", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	// FieldsPerRecord is pinned by the header read, so a row with a
	// different column count surfaces as csv.ErrFieldCount here.
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeParse, StageName, "reading rows", err)
	}
	return header, records, nil
}

func readExcel(path string) ([]string, [][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeParse, StageName, "opening workbook", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New(errors.CodeParse, StageName, "workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeParse, StageName, "reading sheet", err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New(errors.CodeParse, StageName, "input file is empty")
	}

	header := rows[0]
	var records [][]string
	for i, row := range rows[1:] {
		if rowIsEmpty(row) {
			continue
		}
		if len(row) > len(header) {
			return nil, nil, errors.Newf(errors.CodeParse, StageName,
				"row %d has %d cells, header has %d", i+2, len(row), len(header))
		}
		// excelize trims trailing empty cells; pad back out.
		for len(row) < len(header) {
			row = append(row, "")
		}
		records = append(records, row)
	}
	return header, records, nil
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
