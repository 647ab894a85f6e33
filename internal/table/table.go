// Package table implements the Record Table: an ordered collection of rows
// with named columns, the in-memory shape that flows between pipeline stages.
package table

import (
	"fmt"
	"strings"
)

// Row maps a column name to its cell value. Cells are kept as strings; type
// coercion is the transformer's job, not the table's.
type Row map[string]string

// Table holds rows in insertion order with a stable column order.
type Table struct {
	columns []string
	rows    []Row
}

// New creates a table with the given column order and no rows.
func New(columns ...string) *Table {
	t := &Table{}
	t.columns = append(t.columns, columns...)
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// IsEmpty reports whether the table has zero rows.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a new column after the existing ones. Existing rows get
// an empty cell for it.
func (t *Table) AddColumn(name string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.columns = append(t.columns, name)
	return nil
}

// AppendRow adds a row built from cells in column order.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	row := make(Row, len(t.columns))
	for i, c := range t.columns {
		row[c] = cells[i]
	}
	t.rows = append(t.rows, row)
	return nil
}

// Get returns the cell at row i, column name.
func (t *Table) Get(i int, name string) (string, bool) {
	if i < 0 || i >= len(t.rows) {
		return "", false
	}
	v, ok := t.rows[i][name]
	return v, ok
}

// Set writes the cell at row i, column name. Unknown columns are rejected so
// rows cannot drift from the declared column set.
func (t *Table) Set(i int, name, value string) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row index %d out of range (%d rows)", i, len(t.rows))
	}
	if !t.HasColumn(name) {
		return fmt.Errorf("unknown column %q", name)
	}
	t.rows[i][name] = value
	return nil
}

// Record returns row i as cells in column order. Missing cells come back
// empty.
func (t *Table) Record(i int) []string {
	cells := make([]string, len(t.columns))
	for j, c := range t.columns {
		cells[j] = t.rows[i][c]
	}
	return cells
}

// Records returns all rows as cell slices in column order, ready for a CSV
// writer.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Record(i)
	}
	return out
}

// Fingerprint returns a key identifying row i by the values of all its
// columns, used for duplicate detection.
func (t *Table) Fingerprint(i int) string {
	return strings.Join(t.Record(i), "\x1f")
}

// Clone returns a deep copy; mutating the copy never touches the original.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	for _, r := range t.rows {
		row := make(Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// Equal reports whether two tables have identical columns (same order) and
// identical rows (same order and cell values).
func (t *Table) Equal(o *Table) bool {
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.columns {
		if o.columns[i] != c {
			return false
		}
	}
	for i := range t.rows {
		if t.Fingerprint(i) != o.Fingerprint(i) {
			return false
		}
	}
	return true
}
