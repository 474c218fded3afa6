package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfbarros/unificador/pkg/normalize"
	"github.com/dfbarros/unificador/pkg/relation"
	"github.com/dfbarros/unificador/pkg/workbook"
)

// verifySampleRows is how many values verify prints per column
const verifySampleRows = 5

// verifyCmd re-opens a produced spreadsheet and reports whether the
// expected sheets and normalized columns came out as intended
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a processed spreadsheet for the expected sheets and columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reader, err := workbook.OpenReader(cfg.OutputFile, logger)
		if err != nil {
			return err
		}
		defer reader.Close()

		fmt.Printf("Checking %s...\n", cfg.OutputFile)
		fmt.Printf("Sheets found: %v\n", reader.Sheets())

		mix, err := reader.Load(cfg.MixSheet)
		if err != nil {
			return fmt.Errorf("sheet %q is missing from the output: %w", cfg.MixSheet, err)
		}
		sampleColumn(mix, normalize.BarcodeColumn)

		historico, err := reader.Load(cfg.HistorySheet)
		if err != nil {
			fmt.Printf("Sheet %q not present (fine when the source had no history).\n", cfg.HistorySheet)
			return nil
		}
		sampleColumn(historico, normalize.StoreColumn)
		sampleColumn(historico, normalize.OrderDateColumn)
		sampleColumn(historico, normalize.StatusColumn)

		return nil
	},
}

func sampleColumn(rel *relation.Relation, column string) {
	if !rel.HasColumn(column) {
		fmt.Printf("Column %q not found in sheet %q.\n", column, rel.Name)
		return
	}

	fmt.Printf("Sample %q in %q:\n", column, rel.Name)
	for i, row := range rel.Rows {
		if i >= verifySampleRows {
			break
		}
		fmt.Printf("  %s\n", relation.ToString(row[column]))
	}
}
