package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/model"
	"github.com/dfbarros/unificador/pkg/relation"
	"github.com/dfbarros/unificador/pkg/workbook"
)

// fakeReader serves relations from memory
type fakeReader struct {
	sheets map[string]*relation.Relation
}

func (f *fakeReader) Load(sheet string) (*relation.Relation, error) {
	rel, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheet, workbook.ErrSheetNotFound)
	}
	return rel, nil
}

func (f *fakeReader) Sheets() []string {
	names := make([]string, 0, len(f.sheets))
	for name := range f.sheets {
		names = append(names, name)
	}
	return names
}

func (f *fakeReader) Close() error { return nil }

// fakeSink records what was written and can be told to fail
type fakeSink struct {
	spreadsheet     []*relation.Relation
	snapshots       []string
	spreadsheetErr  error
	failSnapshotFor string
}

func (f *fakeSink) WriteSpreadsheet(relations []*relation.Relation) error {
	if f.spreadsheetErr != nil {
		return f.spreadsheetErr
	}
	f.spreadsheet = relations
	return nil
}

func (f *fakeSink) WriteSnapshot(rel *relation.Relation, name string) error {
	if name == f.failSnapshotFor {
		return errors.New("disk full")
	}
	f.snapshots = append(f.snapshots, name)
	return nil
}

func sourceSheets() map[string]*relation.Relation {
	mix := relation.New("mix", "codigo_interno", "codigo_ean", "embalagem")
	mix.Rows = []map[string]interface{}{
		{"codigo_interno": "1", "codigo_ean": "123", "embalagem": "10"},
	}

	ativo := relation.New("item_ativo", "codigo_interno", "loja", "status")
	ativo.Rows = []map[string]interface{}{
		{"codigo_interno": "1", "loja": "5", "status": "A"},
		{"codigo_interno": "1", "loja": "12", "status": "A"},
		{"codigo_interno": "1", "loja": "99", "status": "I"},
	}

	wms := relation.New("wms", "codigo_interno", "Estoque")
	wms.Rows = []map[string]interface{}{
		{"codigo_interno": "1", "Estoque": "7"},
		{"codigo_interno": "1", "Estoque": "13"},
	}

	hist := relation.New("historico", "loja", "data_pedido", "situacao")
	hist.Rows = []map[string]interface{}{
		{"loja": "5", "data_pedido": "2024-03-15", "situacao": "1"},
	}

	return map[string]*relation.Relation{
		"mix": mix, "item_ativo": ativo, "wms": wms, "historico": hist,
	}
}

func newPipeline(t *testing.T, reader workbook.Reader, sink workbook.Sink) *Pipeline {
	t.Helper()
	p, err := New(reader, sink, zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestRunEndToEnd(t *testing.T) {
	reader := &fakeReader{sheets: sourceSheets()}
	sink := &fakeSink{}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Warnings)

	require.Len(t, sink.spreadsheet, 2)
	mix := sink.spreadsheet[0]
	require.Equal(t, "mix", mix.Name)
	require.Equal(t, 1, mix.RowCount())

	row := mix.Rows[0]
	assert.Equal(t, "0000000000123", row["codigo_ean"])
	assert.Equal(t, "005-012", row["loja_ativa_mix"], "inactive store 099 excluded, order preserved")
	assert.Equal(t, 20.0, row["total_estoque"])
	assert.Equal(t, 2.0, row["estoque_cd"])

	hist := sink.spreadsheet[1]
	require.Equal(t, "historico", hist.Name)
	assert.Equal(t, "005", hist.Rows[0]["loja"])
	assert.Equal(t, "15/03/24", hist.Rows[0]["data_pedido"])
	assert.Equal(t, "aguardando", hist.Rows[0]["situacao"])

	assert.Equal(t, []string{"mix", "historico"}, sink.snapshots)
}

func TestRunMissingHistorySheet(t *testing.T) {
	sheets := sourceSheets()
	delete(sheets, "historico")
	reader := &fakeReader{sheets: sheets}
	sink := &fakeSink{}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, sink.spreadsheet, 1, "output contains only the mix sheet")
	assert.Equal(t, "mix", sink.spreadsheet[0].Name)
	assert.Equal(t, []string{"mix"}, sink.snapshots, "no historico snapshot")

	counts := result.WarningsByCategory()
	assert.Equal(t, 1, counts[model.CategoryMissingOptional])
}

func TestRunMissingMandatorySheetIsFatal(t *testing.T) {
	sheets := sourceSheets()
	delete(sheets, "wms")
	reader := &fakeReader{sheets: sheets}
	sink := &fakeSink{}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.Error(t, err)
	assert.True(t, errors.Is(err, workbook.ErrSheetNotFound))
	assert.False(t, result.Success)
	assert.Nil(t, sink.spreadsheet, "no output produced on fatal load")
	assert.Empty(t, sink.snapshots)
}

func TestRunSpreadsheetFailureIsFatal(t *testing.T) {
	reader := &fakeReader{sheets: sourceSheets()}
	sink := &fakeSink{spreadsheetErr: errors.New("permission denied")}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, sink.snapshots, "snapshots are not attempted after a spreadsheet failure")
}

func TestRunSnapshotFailureIsNonFatal(t *testing.T) {
	reader := &fakeReader{sheets: sourceSheets()}
	sink := &fakeSink{failSnapshotFor: "mix"}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.NoError(t, err, "a snapshot failure does not fail the run")
	assert.True(t, result.Success)

	counts := result.WarningsByCategory()
	assert.Equal(t, 1, counts[model.CategorySinkFailure])
	assert.Equal(t, []string{"historico"}, sink.snapshots, "remaining snapshots still written")
	require.Len(t, sink.spreadsheet, 2, "spreadsheet write is not unwound")
}

func TestRunInventoryWithoutAliasLeavesMixStockless(t *testing.T) {
	sheets := sourceSheets()
	wms := relation.New("wms", "codigo_interno", "endereco")
	wms.Rows = []map[string]interface{}{
		{"codigo_interno": "1", "endereco": "A-01"},
	}
	sheets["wms"] = wms
	reader := &fakeReader{sheets: sheets}
	sink := &fakeSink{}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.NoError(t, err)
	assert.True(t, result.Success)

	mix := sink.spreadsheet[0]
	assert.False(t, mix.HasColumn("total_estoque"))
	assert.False(t, mix.HasColumn("estoque_cd"))

	counts := result.WarningsByCategory()
	assert.Equal(t, 1, counts[model.CategoryMissingColumn])
}

func TestGenerateReportMentionsRun(t *testing.T) {
	reader := &fakeReader{sheets: sourceSheets()}
	sink := &fakeSink{}
	p := newPipeline(t, reader, sink)

	result, err := p.Run(DefaultSheetNames())
	require.NoError(t, err)

	report := p.Metrics().GenerateReport(result)
	assert.Contains(t, report, result.RunID)
	assert.Contains(t, report, "mix: 1 rows")
}
