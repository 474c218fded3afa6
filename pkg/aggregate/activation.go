// pkg/aggregate/activation.go
package aggregate

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/model"
	"github.com/dfbarros/unificador/pkg/normalize"
	"github.com/dfbarros/unificador/pkg/relation"
)

// Column names involved in the aggregation steps
const (
	ProductColumn    = "codigo_interno"
	StatusColumn     = "status"
	ActivationColumn = "loja_ativa_mix"
)

// ActiveMarker is the status value that marks an activation row as active
const ActiveMarker = "A"

// Aggregator rolls up the activation and inventory relations into
// per-product fields on the primary relation.
type Aggregator struct {
	logger *zap.Logger
}

// New creates an Aggregator instance
func New(logger *zap.Logger) (*Aggregator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Aggregator{logger: logger}, nil
}

// ApplyActivation collapses the activation relation into one summary
// field per product and left-merges it into the primary relation. Rows
// whose status is not the active marker are ignored; store codes keep
// the relation's original row order within each product group. Products
// with no active rows receive nil. The primary relation's row count is
// unchanged.
func (a *Aggregator) ApplyActivation(mix, ativo *relation.Relation) []model.Warning {
	active := relation.New(ativo.Name, ativo.Columns...)
	for _, row := range ativo.Rows {
		if strings.TrimSpace(relation.ToString(row[StatusColumn])) == ActiveMarker {
			active.Rows = append(active.Rows, row)
		}
	}

	summaries := make(map[string]interface{})
	keys, groups := active.GroupBy(ProductColumn)
	for _, key := range keys {
		stores := make([]string, 0, len(groups[key]))
		for _, row := range groups[key] {
			code, _ := normalize.PadNumericCode(row[normalize.StoreColumn], normalize.StoreCodeWidth)
			stores = append(stores, code)
		}
		summaries[key] = strings.Join(stores, "-")
	}

	mix.LeftMergeColumn(ProductColumn, ActivationColumn, summaries)

	a.logger.Info("Merged activation summary",
		zap.String("sheet", mix.Name),
		zap.Int("activeRows", active.RowCount()),
		zap.Int("productsWithActiveStores", len(summaries)),
		zap.Int("rows", mix.RowCount()))

	return nil
}
