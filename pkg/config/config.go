// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// Artifact paths
	InputFile   string
	OutputFile  string
	SnapshotDir string

	// Sheet names
	MixSheet        string
	ActivationSheet string
	InventorySheet  string
	HistorySheet    string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from the environment, reading a .env
// file first when one is present.
func LoadConfig() (*Config, error) {
	// A missing .env file is not an error; plain env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		InputFile:       getEnv("INPUT_FILE", filepath.Join("data", "unificador.xlsm")),
		OutputFile:      getEnv("OUTPUT_FILE", filepath.Join("data", "unificador_processado.xlsx")),
		SnapshotDir:     getEnv("SNAPSHOT_DIR", "data"),
		MixSheet:        getEnv("SHEET_MIX", "mix"),
		ActivationSheet: getEnv("SHEET_ATIVO", "item_ativo"),
		InventorySheet:  getEnv("SHEET_WMS", "wms"),
		HistorySheet:    getEnv("SHEET_HISTORICO", "historico"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return errors.New("input file path is required")
	}

	if c.OutputFile == "" {
		return errors.New("output file path is required")
	}

	if c.MixSheet == "" || c.ActivationSheet == "" || c.InventorySheet == "" {
		return errors.New("mandatory sheet names cannot be empty")
	}

	return nil
}

// Helper function for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
