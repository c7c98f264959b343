// Package model contains the tabular and typed data shapes shared across the dashboard.
package model

// Row is one spreadsheet record keyed by header name.
type Row map[string]any

// Table is the materialized contents of a sheet. The first sheet row
// supplies Columns; every Row carries a value for each column.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty, non-nil table.
func NewTable() *Table {
	return &Table{
		Columns: []string{},
		Rows:    []Row{},
	}
}

// Len returns the number of rows; a nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether name appears in the header.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a copy whose rows can be modified without touching t.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}

	out := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cp := make(Row, len(row)+1)
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
