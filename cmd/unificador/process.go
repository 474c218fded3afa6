package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/pipeline"
	"github.com/dfbarros/unificador/pkg/workbook"
)

// processCmd runs the full pipeline over the input workbook
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the unification pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger.Info("Starting pipeline run",
			zap.String("input", cfg.InputFile),
			zap.String("output", cfg.OutputFile))

		reader, err := workbook.OpenReader(cfg.InputFile, logger)
		if err != nil {
			return err
		}
		defer reader.Close()

		sink, err := workbook.NewExcelSink(cfg.OutputFile, cfg.SnapshotDir, logger)
		if err != nil {
			return err
		}

		p, err := pipeline.New(reader, sink, logger)
		if err != nil {
			return err
		}

		result, err := p.Run(pipeline.SheetNames{
			Mix:        cfg.MixSheet,
			Activation: cfg.ActivationSheet,
			Inventory:  cfg.InventorySheet,
			History:    cfg.HistorySheet,
		})
		if result != nil {
			fmt.Print(p.Metrics().GenerateReport(result))
		}
		if err != nil {
			return fmt.Errorf("pipeline run failed: %w", err)
		}

		return nil
	},
}
