// pkg/workbook/excel.go
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dfbarros/unificador/pkg/relation"
	"github.com/dfbarros/unificador/pkg/snapshot"
)

// ExcelReader reads relations from an .xlsx/.xlsm workbook
type ExcelReader struct {
	file   *excelize.File
	path   string
	logger *zap.Logger
}

// OpenReader opens a workbook file for reading
func OpenReader(path string, logger *zap.Logger) (*ExcelReader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	return &ExcelReader{file: f, path: path, logger: logger}, nil
}

// Load reads one sheet into a relation. The first row is the header;
// blank header cells are named positionally. Short rows are padded with
// nil so every row covers the full column set.
func (r *ExcelReader) Load(sheet string) (*relation.Relation, error) {
	idx, err := r.file.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrSheetNotFound)
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rel := relation.New(sheet)
	if len(rows) == 0 {
		return rel, nil
	}

	for i, header := range rows[0] {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		rel.Columns = append(rel.Columns, name)
	}

	for _, cells := range rows[1:] {
		row := make(map[string]interface{}, len(rel.Columns))
		for i, col := range rel.Columns {
			if i < len(cells) && cells[i] != "" {
				row[col] = cells[i]
			} else {
				row[col] = nil
			}
		}
		rel.Rows = append(rel.Rows, row)
	}

	r.logger.Debug("Loaded sheet",
		zap.String("sheet", sheet),
		zap.Int("rows", rel.RowCount()),
		zap.Int("columns", len(rel.Columns)))

	return rel, nil
}

// Sheets lists the sheet names present in the workbook
func (r *ExcelReader) Sheets() []string {
	return r.file.GetSheetList()
}

// Close releases the underlying workbook handle
func (r *ExcelReader) Close() error {
	return r.file.Close()
}

// ExcelSink writes the processed relations to a spreadsheet file plus
// one parquet snapshot per relation under the snapshot directory.
type ExcelSink struct {
	path        string
	snapshotDir string
	logger      *zap.Logger
}

// NewExcelSink creates a sink targeting the given spreadsheet path and
// snapshot directory
func NewExcelSink(path, snapshotDir string, logger *zap.Logger) (*ExcelSink, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if path == "" {
		return nil, errors.New("output path cannot be empty")
	}
	return &ExcelSink{path: path, snapshotDir: snapshotDir, logger: logger}, nil
}

// WriteSpreadsheet writes the relations as sheets, in order. The
// workbook's default sheet is replaced by the first relation.
func (s *ExcelSink) WriteSpreadsheet(relations []*relation.Relation) error {
	if len(relations) == 0 {
		return errors.New("no relations to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)

	for _, rel := range relations {
		if _, err := f.NewSheet(rel.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", rel.Name, err)
		}

		header := make([]interface{}, len(rel.Columns))
		for i, col := range rel.Columns {
			header[i] = col
		}
		if err := f.SetSheetRow(rel.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", rel.Name, err)
		}

		for i, row := range rel.Rows {
			cells := make([]interface{}, len(rel.Columns))
			for j, col := range rel.Columns {
				cells[j] = row[col]
			}
			start, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell coordinates: %w", err)
			}
			if err := f.SetSheetRow(rel.Name, start, &cells); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", i, rel.Name, err)
			}
		}

		s.logger.Debug("Wrote sheet",
			zap.String("sheet", rel.Name),
			zap.Int("rows", rel.RowCount()))
	}

	if defaultSheet != relations[0].Name {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}

	s.logger.Info("Wrote spreadsheet artifact",
		zap.String("path", s.path),
		zap.Int("sheets", len(relations)))

	return nil
}

// WriteSnapshot writes one relation as a parquet file named after it
func (s *ExcelSink) WriteSnapshot(rel *relation.Relation, name string) error {
	path := filepath.Join(s.snapshotDir, name+".parquet")
	if err := snapshot.Write(rel, path); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}

	s.logger.Info("Wrote columnar snapshot",
		zap.String("path", path),
		zap.Int("rows", rel.RowCount()))

	return nil
}
