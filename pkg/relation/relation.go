// pkg/relation/relation.go
package relation

// Relation is an in-memory rectangular table: an ordered list of column
// names plus ordered rows. Cell values keep whatever Go type the source
// produced (string, float64, int64, bool, time.Time) or nil for blanks.
type Relation struct {
	Name    string
	Columns []string
	Rows    []map[string]interface{}
}

// New creates an empty relation with the given name and column order.
func New(name string, columns ...string) *Relation {
	return &Relation{
		Name:    name,
		Columns: columns,
		Rows:    make([]map[string]interface{}, 0),
	}
}

// IsEmpty reports whether the relation has no rows.
func (r *Relation) IsEmpty() bool {
	return r == nil || len(r.Rows) == 0
}

// RowCount returns the number of rows.
func (r *Relation) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// HasColumn reports whether a column with the given name exists.
func (r *Relation) HasColumn(name string) bool {
	for _, col := range r.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// AppendRow adds a row to the relation. Keys not present in the column
// list are appended to it so the schema stays in sync with the data.
func (r *Relation) AppendRow(row map[string]interface{}) {
	for key := range row {
		if !r.HasColumn(key) {
			r.Columns = append(r.Columns, key)
		}
	}
	r.Rows = append(r.Rows, row)
}

// AddColumn registers a column name without touching existing rows.
// Adding an existing column is a no-op.
func (r *Relation) AddColumn(name string) {
	if !r.HasColumn(name) {
		r.Columns = append(r.Columns, name)
	}
}

// DropColumn removes a column and its values from every row.
// Dropping an absent column is a no-op.
func (r *Relation) DropColumn(name string) {
	idx := -1
	for i, col := range r.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	r.Columns = append(r.Columns[:idx], r.Columns[idx+1:]...)
	for _, row := range r.Rows {
		delete(row, name)
	}
}

// GroupBy partitions rows by the canonical key of keyColumn. The returned
// key slice preserves first-appearance order and each group preserves the
// relation's original row order. Rows whose key is blank are skipped.
func (r *Relation) GroupBy(keyColumn string) ([]string, map[string][]map[string]interface{}) {
	keys := make([]string, 0)
	groups := make(map[string][]map[string]interface{})

	for _, row := range r.Rows {
		key := KeyString(row[keyColumn])
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	return keys, groups
}

// LeftMergeColumn assigns targetColumn on every row by looking up the
// row's canonical key in values. A pre-existing target column is dropped
// first so the merge replaces rather than duplicates; rows without a
// matching key receive nil. Row count is never changed.
func (r *Relation) LeftMergeColumn(keyColumn, targetColumn string, values map[string]interface{}) {
	r.DropColumn(targetColumn)
	r.AddColumn(targetColumn)

	for _, row := range r.Rows {
		key := KeyString(row[keyColumn])
		if val, ok := values[key]; ok {
			row[targetColumn] = val
		} else {
			row[targetColumn] = nil
		}
	}
}
