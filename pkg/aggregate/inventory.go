// pkg/aggregate/inventory.go
package aggregate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/model"
	"github.com/dfbarros/unificador/pkg/relation"
)

// Columns produced by the inventory roll-up
const (
	TotalStockColumn   = "total_estoque"
	StockInBoxesColumn = "estoque_cd"
	PackagingColumn    = "embalagem"
)

// QuantityAliases is the ordered list of candidate names for the
// quantity-bearing column of the inventory relation. The scan is
// deliberately first-match over the relation's column order, not
// best-match, so the tie-break stays deterministic.
var QuantityAliases = []string{"qtde", "quantidade", "saldo", "estoque", "total"}

// FindQuantityColumn scans the relation's columns in order and returns
// the first one whose lowercased name is a known quantity alias.
func FindQuantityColumn(rel *relation.Relation) (string, bool) {
	for _, col := range rel.Columns {
		lower := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range QuantityAliases {
			if lower == alias {
				return col, true
			}
		}
	}
	return "", false
}

// ApplyInventory sums the inventory relation's quantity column per
// product, left-merges the totals into the primary relation and derives
// the stock-in-boxes figure as total over packaging size. If no alias
// matches a column, the primary relation is left untouched and a
// warning is returned. Missing totals coerce to 0; missing or zero
// packaging sizes coerce to 1 so the division is always defined.
func (a *Aggregator) ApplyInventory(mix, wms *relation.Relation) []model.Warning {
	qtyCol, found := FindQuantityColumn(wms)
	if !found {
		a.logger.Warn("No quantity column found in inventory sheet, skipping stock aggregation",
			zap.String("sheet", wms.Name),
			zap.Strings("aliases", QuantityAliases))
		return []model.Warning{model.NewWarning(model.CategoryMissingColumn,
			"no quantity column matched the alias set, stock aggregation skipped").
			WithSheet(wms.Name)}
	}

	a.logger.Info("Found quantity column",
		zap.String("sheet", wms.Name),
		zap.String("column", qtyCol))

	totals := make(map[string]interface{})
	keys, groups := wms.GroupBy(ProductColumn)
	for _, key := range keys {
		var sum float64
		for _, row := range groups[key] {
			qty, err := relation.ToFloat(row[qtyCol])
			if err != nil {
				continue
			}
			sum += qty
		}
		totals[key] = sum
	}

	mix.LeftMergeColumn(ProductColumn, TotalStockColumn, totals)
	mix.AddColumn(StockInBoxesColumn)

	for _, row := range mix.Rows {
		total, err := relation.ToFloat(row[TotalStockColumn])
		if err != nil {
			total = 0
		}
		row[TotalStockColumn] = total

		packaging, err := relation.ToFloat(row[PackagingColumn])
		if err != nil {
			packaging = 1
		}
		if mix.HasColumn(PackagingColumn) {
			row[PackagingColumn] = packaging
		}

		// A packaging size of zero still divides by one; the column keeps
		// the zero it was given.
		divisor := packaging
		if divisor == 0 {
			divisor = 1
		}
		row[StockInBoxesColumn] = total / divisor
	}

	a.logger.Info("Merged stock totals",
		zap.String("sheet", mix.Name),
		zap.Int("productsWithStock", len(totals)),
		zap.Int("rows", mix.RowCount()))

	return nil
}
