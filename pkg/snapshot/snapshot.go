// pkg/snapshot/snapshot.go
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/dfbarros/unificador/pkg/relation"
)

// Write stores a relation as a parquet file so downstream consumers can
// re-read it columnar. The schema is derived per column: columns whose
// cells carry numeric Go types become DOUBLE, everything else a UTF8
// byte array. All columns are optional so nil cells survive as nulls.
func Write(rel *relation.Relation, path string) error {
	if rel == nil || len(rel.Columns) == 0 {
		return errors.New("relation has no columns")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	numeric := make(map[string]bool, len(rel.Columns))
	md := make([]string, 0, len(rel.Columns))
	for _, col := range rel.Columns {
		numeric[col] = isNumericColumn(rel, col)
		if numeric[col] {
			md = append(md, fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", fieldName(col)))
		} else {
			md = append(md, fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", fieldName(col)))
		}
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewCSVWriter(md, fw, 2)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rel.Rows {
		rec := make([]*string, len(rel.Columns))
		for i, col := range rel.Columns {
			val := row[col]
			if val == nil {
				continue
			}
			var cell string
			if numeric[col] {
				f, err := relation.ToFloat(val)
				if err != nil {
					continue
				}
				cell = strconv.FormatFloat(f, 'f', -1, 64)
			} else {
				cell = relation.ToString(val)
			}
			rec[i] = &cell
		}
		if err := pw.WriteString(rec); err != nil {
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// isNumericColumn reports whether every populated cell of a column
// carries a numeric Go type, with at least one populated cell. String
// cells keep the column textual even when their content looks numeric,
// so zero-padded codes are not degraded to numbers.
func isNumericColumn(rel *relation.Relation, col string) bool {
	populated := false
	for _, row := range rel.Rows {
		val := row[col]
		if val == nil {
			continue
		}
		if !relation.IsNumeric(val) {
			return false
		}
		populated = true
	}
	return populated
}

// fieldName sanitizes a column name for the writer's schema metadata
func fieldName(col string) string {
	name := strings.TrimSpace(col)
	name = strings.NewReplacer(" ", "_", ",", "_", "=", "_").Replace(name)
	if name == "" {
		name = "column"
	}
	return name
}
