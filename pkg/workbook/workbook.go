// pkg/workbook/workbook.go
package workbook

import (
	"errors"

	"github.com/dfbarros/unificador/pkg/relation"
)

// ErrSheetNotFound is returned by Reader.Load when the named sheet does
// not exist in the workbook. Callers distinguish it with errors.Is to
// downgrade the optional sheet's absence to a warning.
var ErrSheetNotFound = errors.New("sheet not found")

// Reader loads named relations from a spreadsheet container
type Reader interface {
	// Load reads one sheet into a relation. A missing sheet fails with
	// an error matching ErrSheetNotFound.
	Load(sheet string) (*relation.Relation, error)

	// Sheets lists the sheet names present in the workbook
	Sheets() []string

	// Close releases the underlying workbook handle
	Close() error
}

// Sink writes the processed relations to the output artifacts. Both
// operations are independently fallible; a snapshot failure must not
// invalidate an already-written spreadsheet.
type Sink interface {
	// WriteSpreadsheet writes the relations as sheets, in order
	WriteSpreadsheet(relations []*relation.Relation) error

	// WriteSnapshot writes one relation as a columnar snapshot artifact
	WriteSnapshot(rel *relation.Relation, name string) error
}
