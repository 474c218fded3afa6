package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "unificador.xlsm"), cfg.InputFile)
	assert.Equal(t, filepath.Join("data", "unificador_processado.xlsx"), cfg.OutputFile)
	assert.Equal(t, "mix", cfg.MixSheet)
	assert.Equal(t, "item_ativo", cfg.ActivationSheet)
	assert.Equal(t, "wms", cfg.InventorySheet)
	assert.Equal(t, "historico", cfg.HistorySheet)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("INPUT_FILE", "in.xlsx")
	t.Setenv("OUTPUT_FILE", "out.xlsx")
	t.Setenv("SHEET_HISTORICO", "pedidos")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "in.xlsx", cfg.InputFile)
	assert.Equal(t, "out.xlsx", cfg.OutputFile)
	assert.Equal(t, "pedidos", cfg.HistorySheet)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		InputFile:       "in.xlsx",
		OutputFile:      "out.xlsx",
		MixSheet:        "mix",
		ActivationSheet: "item_ativo",
		InventorySheet:  "wms",
	}
	require.NoError(t, cfg.Validate())

	cfg.MixSheet = ""
	require.Error(t, cfg.Validate())
}
