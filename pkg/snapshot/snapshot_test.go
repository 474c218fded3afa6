package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfbarros/unificador/pkg/relation"
)

func TestWrite(t *testing.T) {
	rel := relation.New("mix", "codigo_interno", "codigo_ean", "total_estoque", "estoque_cd")
	rel.Rows = []map[string]interface{}{
		{"codigo_interno": "1", "codigo_ean": "0000000000123", "total_estoque": 20.0, "estoque_cd": 2.0},
		{"codigo_interno": "2", "codigo_ean": "0000000000456", "total_estoque": 0.0, "estoque_cd": nil},
	}

	path := filepath.Join(t.TempDir(), "mix.parquet")
	require.NoError(t, Write(rel, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteCreatesSnapshotDirectory(t *testing.T) {
	rel := relation.New("historico", "loja")
	rel.Rows = []map[string]interface{}{{"loja": "005"}}

	path := filepath.Join(t.TempDir(), "snapshots", "historico.parquet")
	require.NoError(t, Write(rel, path))
	assert.FileExists(t, path)
}

func TestWriteRejectsColumnlessRelation(t *testing.T) {
	err := Write(relation.New("empty"), filepath.Join(t.TempDir(), "x.parquet"))
	require.Error(t, err)
}

func TestIsNumericColumn(t *testing.T) {
	rel := relation.New("mix", "ean", "total", "blank")
	rel.Rows = []map[string]interface{}{
		{"ean": "0000000000123", "total": 20.0, "blank": nil},
		{"ean": "0000000000456", "total": 0.0, "blank": nil},
	}

	assert.False(t, isNumericColumn(rel, "ean"), "string cells stay textual even when they look numeric")
	assert.True(t, isNumericColumn(rel, "total"))
	assert.False(t, isNumericColumn(rel, "blank"), "a column with no populated cells defaults to text")
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "Cod_Interno", fieldName(" Cod Interno "))
	assert.Equal(t, "column", fieldName(""))
}
