// pkg/pipeline/pipeline.go
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/aggregate"
	"github.com/dfbarros/unificador/pkg/model"
	"github.com/dfbarros/unificador/pkg/normalize"
	"github.com/dfbarros/unificador/pkg/relation"
	"github.com/dfbarros/unificador/pkg/workbook"
)

// SheetNames holds the sheet names the pipeline reads from the source
// workbook. History is optional; the other three are mandatory.
type SheetNames struct {
	Mix        string
	Activation string
	Inventory  string
	History    string
}

// DefaultSheetNames returns the conventional sheet names
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Mix:        "mix",
		Activation: "item_ativo",
		Inventory:  "wms",
		History:    "historico",
	}
}

// Pipeline sequences the load, normalize, aggregate and output steps.
// It is the only component aware of the overall run order and of
// whether the history relation is empty. The run is a single
// synchronous pass; any fatal failure aborts it with no partial state.
type Pipeline struct {
	reader     workbook.Reader
	sink       workbook.Sink
	normalizer *normalize.Normalizer
	aggregator *aggregate.Aggregator
	metrics    *RunMetrics
	logger     *zap.Logger
}

// New creates a pipeline over a reader and a sink
func New(reader workbook.Reader, sink workbook.Sink, logger *zap.Logger) (*Pipeline, error) {
	if reader == nil {
		return nil, errors.New("reader cannot be nil")
	}
	if sink == nil {
		return nil, errors.New("sink cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	normalizer, err := normalize.New(logger)
	if err != nil {
		return nil, err
	}
	aggregator, err := aggregate.New(logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		reader:     reader,
		sink:       sink,
		normalizer: normalizer,
		aggregator: aggregator,
		metrics:    NewRunMetrics(logger),
		logger:     logger,
	}, nil
}

// Metrics exposes the run metrics collector
func (p *Pipeline) Metrics() *RunMetrics {
	return p.metrics
}

// Run executes one full pipeline pass. A mandatory sheet that fails to
// load aborts the run and returns an error alongside the partial
// result; every other condition is absorbed as a warning.
func (p *Pipeline) Run(sheets SheetNames) (*RunResult, error) {
	result := NewRunResult()

	mix, ativo, wms, historico, err := p.load(sheets, result)
	if err != nil {
		result.Complete(false)
		p.metrics.Complete(false)
		return result, err
	}

	p.normalizeStep(mix, historico, result)

	p.record(result, p.aggregator.ApplyActivation(mix, ativo))
	p.record(result, p.aggregator.ApplyInventory(mix, wms))

	outputs := []*relation.Relation{mix}
	if !historico.IsEmpty() {
		outputs = append(outputs, historico)
	} else {
		p.logger.Info("Skipping history sheet in output, relation is empty")
	}

	if err := p.sink.WriteSpreadsheet(outputs); err != nil {
		result.Complete(false)
		p.metrics.Complete(false)
		return result, fmt.Errorf("failed to write spreadsheet artifact: %w", err)
	}
	for _, rel := range outputs {
		p.metrics.RecordRowsWritten(rel.RowCount())
	}

	// Snapshots come after the spreadsheet; their failures never unwind it.
	for _, rel := range outputs {
		if err := p.sink.WriteSnapshot(rel, rel.Name); err != nil {
			w := model.NewWarning(model.CategorySinkFailure, err.Error()).WithSheet(rel.Name)
			result.AddWarning(w)
			p.metrics.RecordWarning(w)
			continue
		}
		result.Snapshots = append(result.Snapshots, rel.Name)
	}

	result.Complete(true)
	p.metrics.Complete(true)
	return result, nil
}

// load reads the four relations. The first three are mandatory; a
// missing history sheet yields an explicit empty relation and a
// warning.
func (p *Pipeline) load(sheets SheetNames, result *RunResult) (mix, ativo, wms, historico *relation.Relation, err error) {
	mandatory := []struct {
		name string
		dest **relation.Relation
	}{
		{sheets.Mix, &mix},
		{sheets.Activation, &ativo},
		{sheets.Inventory, &wms},
	}

	for _, m := range mandatory {
		rel, loadErr := p.reader.Load(m.name)
		if loadErr != nil {
			err = fmt.Errorf("failed to load mandatory sheet %q: %w", m.name, loadErr)
			return
		}
		*m.dest = rel
		result.SheetRows[m.name] = rel.RowCount()
		p.metrics.RecordSheetLoad(m.name, rel.RowCount())
	}

	historico, loadErr := p.reader.Load(sheets.History)
	if loadErr != nil {
		if !errors.Is(loadErr, workbook.ErrSheetNotFound) {
			err = fmt.Errorf("failed to load sheet %q: %w", sheets.History, loadErr)
			return
		}
		w := model.NewWarning(model.CategoryMissingOptional,
			"optional sheet not found, continuing with an empty relation").
			WithSheet(sheets.History)
		result.AddWarning(w)
		p.metrics.RecordWarning(w)
		historico = relation.New(sheets.History)
	} else {
		result.SheetRows[sheets.History] = historico.RowCount()
		p.metrics.RecordSheetLoad(sheets.History, historico.RowCount())
	}

	return
}

// normalizeStep applies the four field rules. The rules are independent
// of each other, so their order carries no meaning.
func (p *Pipeline) normalizeStep(mix, historico *relation.Relation, result *RunResult) {
	ops, warnings := p.normalizer.FormatBarcodes(mix)
	p.recordOps(result, ops, warnings)

	ops, warnings = p.normalizer.FormatStoreCodes(historico)
	p.recordOps(result, ops, warnings)

	ops, warnings = p.normalizer.FormatOrderDates(historico)
	p.recordOps(result, ops, warnings)

	ops, warnings = p.normalizer.TranslateStatus(historico)
	p.recordOps(result, ops, warnings)
}

func (p *Pipeline) recordOps(result *RunResult, ops []model.NormalizeOperation, warnings []model.Warning) {
	result.NormalizeOps += len(ops)
	p.metrics.RecordNormalizeOps(len(ops))
	p.record(result, warnings)
}

func (p *Pipeline) record(result *RunResult, warnings []model.Warning) {
	for _, w := range warnings {
		result.AddWarning(w)
		p.metrics.RecordWarning(w)
	}
}
