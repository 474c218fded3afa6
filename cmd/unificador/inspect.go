package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfbarros/unificador/pkg/relation"
	"github.com/dfbarros/unificador/pkg/workbook"
)

// inspectSampleRows is how many data rows inspect prints per sheet
const inspectSampleRows = 5

// inspectCmd lists the sheets and columns of the input workbook
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the input workbook's sheets, columns and sample rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reader, err := workbook.OpenReader(cfg.InputFile, logger)
		if err != nil {
			return err
		}
		defer reader.Close()

		for _, sheet := range reader.Sheets() {
			rel, err := reader.Load(sheet)
			if err != nil {
				fmt.Printf("--- Sheet: %s ---\n  load failed: %v\n", sheet, err)
				continue
			}

			fmt.Printf("--- Sheet: %s (%d rows) ---\n", sheet, rel.RowCount())
			fmt.Printf("  columns: %v\n", rel.Columns)

			for i, row := range rel.Rows {
				if i >= inspectSampleRows {
					break
				}
				cells := make([]string, len(rel.Columns))
				for j, col := range rel.Columns {
					cells[j] = relation.ToString(row[col])
				}
				fmt.Printf("  %v\n", cells)
			}
		}

		return nil
	},
}
