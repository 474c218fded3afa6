// pkg/normalize/normalize.go
package normalize

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/model"
	"github.com/dfbarros/unificador/pkg/relation"
)

// Column names targeted by the normalization rules
const (
	BarcodeColumn   = "codigo_ean"
	StoreColumn     = "loja"
	OrderDateColumn = "data_pedido"
	StatusColumn    = "situacao"
)

// Widths for the fixed-width numeric codes
const (
	BarcodeWidth   = 13
	StoreCodeWidth = 3
)

// OrderDateLayout is the output format for order dates (2-digit year)
const OrderDateLayout = "02/01/06"

// Normalizer applies per-column reformatting rules to loaded relations.
// Every rule is a no-op with a warning when its target column is absent
// and skips silently when the relation itself is empty.
type Normalizer struct {
	logger *zap.Logger
}

// New creates a Normalizer instance
func New(logger *zap.Logger) (*Normalizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Normalizer{logger: logger}, nil
}

// FormatBarcodes rewrites the EAN column on the primary relation as a
// zero-padded digit string of at least BarcodeWidth characters. Values
// whose digit length already exceeds the width are left at their natural
// length; padding never truncates.
func (n *Normalizer) FormatBarcodes(rel *relation.Relation) ([]model.NormalizeOperation, []model.Warning) {
	return n.formatCodeColumn(rel, BarcodeColumn, BarcodeWidth, "barcode_format")
}

// FormatStoreCodes rewrites the store column on the history relation to
// the 3-digit padded form.
func (n *Normalizer) FormatStoreCodes(rel *relation.Relation) ([]model.NormalizeOperation, []model.Warning) {
	return n.formatCodeColumn(rel, StoreColumn, StoreCodeWidth, "store_code_format")
}

// formatCodeColumn applies the shared fixed-width numeric code rule.
func (n *Normalizer) formatCodeColumn(rel *relation.Relation, column string, width int, rule string) ([]model.NormalizeOperation, []model.Warning) {
	if rel.IsEmpty() {
		return nil, nil
	}
	if !rel.HasColumn(column) {
		return nil, []model.Warning{n.missingColumn(rel.Name, column, rule)}
	}

	var operations []model.NormalizeOperation
	var warnings []model.Warning

	for i, row := range rel.Rows {
		original := row[column]
		formatted, fellBack := PadNumericCode(original, width)

		if fellBack && original != nil && relation.ToString(original) != "" {
			warnings = append(warnings, model.NewWarning(
				model.CategoryCoercionFallback,
				"value could not be coerced to a number, using 0").
				WithSheet(rel.Name).
				WithColumn(column, original))
		}

		if relation.ToString(original) != formatted {
			reason := "zero_padded"
			if fellBack {
				reason = "coercion_fallback_zero"
			}
			operations = append(operations, model.NewNormalizeOperation(
				rel.Name, column, i, original, formatted, rule, reason))
		}
		row[column] = formatted
	}

	n.logger.Info("Formatted code column",
		zap.String("sheet", rel.Name),
		zap.String("column", column),
		zap.Int("width", width),
		zap.Int("rewrites", len(operations)))

	return operations, warnings
}

// FormatOrderDates re-renders the history relation's order date column
// as DD/MM/YY. Unparseable values become nil.
func (n *Normalizer) FormatOrderDates(rel *relation.Relation) ([]model.NormalizeOperation, []model.Warning) {
	if rel.IsEmpty() {
		return nil, nil
	}
	if !rel.HasColumn(OrderDateColumn) {
		return nil, []model.Warning{n.missingColumn(rel.Name, OrderDateColumn, "order_date_format")}
	}

	var operations []model.NormalizeOperation
	var warnings []model.Warning

	for i, row := range rel.Rows {
		original := row[OrderDateColumn]

		parsed, err := relation.ToTime(original)
		if err != nil {
			if original != nil && relation.ToString(original) != "" {
				warnings = append(warnings, model.NewWarning(
					model.CategoryCoercionFallback,
					"value could not be parsed as a date, using null").
					WithSheet(rel.Name).
					WithColumn(OrderDateColumn, original))
				operations = append(operations, model.NewNormalizeOperation(
					rel.Name, OrderDateColumn, i, original, nil,
					"order_date_format", "unparseable_date_null"))
			}
			row[OrderDateColumn] = nil
			continue
		}

		formatted := parsed.Format(OrderDateLayout)
		if relation.ToString(original) != formatted {
			operations = append(operations, model.NewNormalizeOperation(
				rel.Name, OrderDateColumn, i, original, formatted,
				"order_date_format", "reformatted"))
		}
		row[OrderDateColumn] = formatted
	}

	n.logger.Info("Formatted order dates",
		zap.String("sheet", rel.Name),
		zap.Int("rewrites", len(operations)))

	return operations, warnings
}

// TranslateStatus maps integer status codes on the history relation to
// their labels. Values that fail integer coercion, and integers outside
// the mapped set, pass through unchanged; re-applying the rule to an
// already-translated label is therefore a no-op.
func (n *Normalizer) TranslateStatus(rel *relation.Relation) ([]model.NormalizeOperation, []model.Warning) {
	if rel.IsEmpty() {
		return nil, nil
	}
	if !rel.HasColumn(StatusColumn) {
		return nil, []model.Warning{n.missingColumn(rel.Name, StatusColumn, "status_translate")}
	}

	var operations []model.NormalizeOperation

	for i, row := range rel.Rows {
		original := row[StatusColumn]
		label, ok := StatusLabel(original)
		if !ok {
			continue
		}
		operations = append(operations, model.NewNormalizeOperation(
			rel.Name, StatusColumn, i, original, label,
			"status_translate", "code_to_label"))
		row[StatusColumn] = label
	}

	n.logger.Info("Translated status codes",
		zap.String("sheet", rel.Name),
		zap.Int("rewrites", len(operations)))

	return operations, nil
}

// StatusLabel returns the label for a status code and whether the value
// was translated at all.
func StatusLabel(v interface{}) (string, bool) {
	code, err := relation.ToInt(v)
	if err != nil {
		return "", false
	}

	switch {
	case code == 1:
		return "aguardando", true
	case code >= 2 && code <= 5:
		return "processando", true
	case code == 6:
		return "enviado", true
	case code == 7:
		return "em falta", true
	default:
		return "", false
	}
}

// PadNumericCode coerces a value to a whole number (0 on failure),
// renders it as decimal digits and left-pads with '0' to the minimum
// width. The second return reports whether the zero fallback was used.
func PadNumericCode(v interface{}, width int) (string, bool) {
	code, err := relation.ToInt(v)
	fellBack := err != nil
	if fellBack {
		code = 0
	}

	digits := strconv.FormatInt(code, 10)
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return digits, fellBack
}

func (n *Normalizer) missingColumn(sheet, column, rule string) model.Warning {
	n.logger.Warn("Skipping rule, target column not found",
		zap.String("sheet", sheet),
		zap.String("column", column),
		zap.String("rule", rule))
	return model.NewWarning(model.CategoryMissingColumn,
		"column not found, rule skipped").
		WithSheet(sheet).
		WithColumn(column, nil)
}
