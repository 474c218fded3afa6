// pkg/model/warning.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// WarningCategory classifies non-fatal conditions surfaced during a run
type WarningCategory int

const (
	CategoryNone WarningCategory = iota
	// CategoryMissingOptional indicates the optional history sheet was absent
	CategoryMissingOptional
	// CategoryMissingColumn indicates a rule's target column was absent
	CategoryMissingColumn
	// CategoryCoercionFallback indicates a value failed coercion and a
	// documented default was used instead
	CategoryCoercionFallback
	// CategorySinkFailure indicates an output artifact could not be written
	CategorySinkFailure
)

// String returns a string representation of the warning category
func (wc WarningCategory) String() string {
	switch wc {
	case CategoryNone:
		return "None"
	case CategoryMissingOptional:
		return "MissingOptional"
	case CategoryMissingColumn:
		return "MissingColumn"
	case CategoryCoercionFallback:
		return "CoercionFallback"
	case CategorySinkFailure:
		return "SinkFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", wc)
	}
}

// Warning represents a single non-fatal condition absorbed during a run
type Warning struct {
	Category    WarningCategory
	SheetName   string
	ColumnName  string
	SourceValue interface{}
	Message     string
	Timestamp   time.Time
}

// NewWarning creates a warning with the current timestamp
func NewWarning(category WarningCategory, message string) Warning {
	return Warning{
		Category:  category,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithSheet adds sheet information to the warning
func (w Warning) WithSheet(sheet string) Warning {
	w.SheetName = sheet
	return w
}

// WithColumn adds column information to the warning
func (w Warning) WithColumn(column string, sourceValue interface{}) Warning {
	w.ColumnName = column
	w.SourceValue = sourceValue
	return w
}

// String returns a formatted warning message
func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", w.Category))

	if w.SheetName != "" {
		sb.WriteString(fmt.Sprintf("Sheet: %s ", w.SheetName))
	}

	if w.ColumnName != "" {
		sb.WriteString(fmt.Sprintf("Column: %s ", w.ColumnName))
		if w.SourceValue != nil {
			sb.WriteString(fmt.Sprintf("Value: %v ", w.SourceValue))
		}
	}

	sb.WriteString(w.Message)
	return sb.String()
}
