package models

import (
	"fmt"
	"sort"
	"strings"
)

// Value is a single table cell: string, float64, time.Time, or nil when the
// feed left the field out.
type Value interface{}

type Row map[string]Value

// Table is the normalized, flat view of one feed response.
// Every row carries exactly the table's column set.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func NewTable(columns ...string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{
		Columns: cols,
		Rows:    make([]Row, 0),
	}
}

// Append adds a row, rejecting it if its keys differ from the table columns.
func (t *Table) Append(row Row) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d fields, table has %d columns", len(row), len(t.Columns))
	}
	for _, c := range t.Columns {
		if _, ok := row[c]; !ok {
			keys := make([]string, 0, len(row))
			for k := range row {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return fmt.Errorf("row is missing column %q (has %s)", c, strings.Join(keys, ", "))
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Head returns a table sharing the columns and at most the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return Table{
		Columns: t.Columns,
		Rows:    t.Rows[:n],
	}
}
