// pkg/model/operation.go
package model

import (
	"time"
)

// NormalizeOperation represents a single cell rewrite performed by a
// normalization rule
type NormalizeOperation struct {
	SheetName     string      // Sheet the rewrite happened on
	ColumnName    string      // Column that was rewritten
	RowIndex      int         // Zero-based row index within the sheet
	OriginalValue interface{} // Original cell value (may be nil)
	NewValue      interface{} // Value after normalization
	Rule          string      // Rule that produced the rewrite (e.g., "barcode_format")
	Reason        string      // Reason for the rewrite (e.g., "coercion_fallback_zero")
	AppliedAt     time.Time   // When the rewrite occurred
}

// NewNormalizeOperation creates an operation record stamped with the
// current time.
func NewNormalizeOperation(sheet, column string, rowIndex int, original, newValue interface{}, rule, reason string) NormalizeOperation {
	return NormalizeOperation{
		SheetName:     sheet,
		ColumnName:    column,
		RowIndex:      rowIndex,
		OriginalValue: original,
		NewValue:      newValue,
		Rule:          rule,
		Reason:        reason,
		AppliedAt:     time.Now(),
	}
}
