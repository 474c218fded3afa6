package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dfbarros/unificador/pkg/config"
)

var (
	// Global flags
	verbose     bool
	inputFile   string
	outputFile  string
	snapshotDir string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "unificador",
	Short: "unificador - catalog unification pipeline",
	Long: `unificador merges a retail product catalog workbook into a single
normalized dataset.

It loads the mix, item_ativo, wms and (optionally) historico sheets,
normalizes barcodes, store codes, order dates and status codes, rolls up
per-store activation flags and warehouse stock per product, and writes a
processed spreadsheet plus parquet snapshots.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			cfg.Encoding = "console"
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// loadConfig resolves the effective configuration, letting flags
// override the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if snapshotDir != "" {
		cfg.SnapshotDir = snapshotDir
	}

	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "input workbook path (overrides INPUT_FILE)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output spreadsheet path (overrides OUTPUT_FILE)")
	rootCmd.PersistentFlags().StringVar(&snapshotDir, "snapshot-dir", "", "directory for parquet snapshots (overrides SNAPSHOT_DIR)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
