// Command fraudprep runs the credit-card transaction preprocessing
// pipeline: raw delimited input in, cleaned and encoded model-ready
// table out. It takes no arguments; INPUT_FILE and OUTPUT_DIR control
// the file locations.
package main

import (
	"context"
	"log/slog"
	"os"

	"fraudprep/internal/config"
	"fraudprep/internal/errors"
	"fraudprep/internal/exporter"
	"fraudprep/internal/infrastructure"
	"fraudprep/internal/loader"
	"fraudprep/internal/pipeline"
	"fraudprep/internal/report"
)

func main() {
	if err := run(context.Background()); err != nil {
		stage := errors.StageOf(err)
		if stage == "" {
			stage = "run"
		}
		slog.Error("preprocessing failed",
			slog.String("stage", stage),
			slog.String("code", string(errors.CodeOf(err))),
			slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging())
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	reporter := report.NewReporter(logger)
	logger = logger.With(slog.String("run_id", reporter.RunID()))

	logger.InfoContext(ctx, "starting preprocessing",
		slog.String("input_file", cfg.InputFile),
		slog.String("output_path", cfg.OutputPath()))

	table, err := loader.New(logger).Load(ctx, cfg.InputFile)
	if err != nil {
		return err
	}

	runner := pipeline.New(logger, reporter, pipeline.DefaultStages(logger)...)
	if err := runner.Run(ctx, table); err != nil {
		return err
	}

	reporter.Finalize(table)
	reporter.Log(ctx)

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteTable(cfg.OutputPath(), table, exporter.WriteOptions{}); err != nil {
		return err
	}

	logger.InfoContext(ctx, "preprocessing completed",
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Cols()))
	return nil
}
