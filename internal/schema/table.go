// Package schema describes table columns as declared by CREATE TABLE. The declared column
// order is the canonical order of every row built for the table.
package schema

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-sql/internal/value"
)

// Column is a declared table column.
type Column struct {
	Name string        `json:"name"`
	Type value.SQLType `json:"type"`
}

// Table is a named, ordered list of columns.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// NewTable validates and returns a table definition. A table without columns is accepted.
func NewTable(name string, columns []Column) (*Table, error) {
	var errGrp []error
	if name == "" {
		errGrp = append(errGrp, errors.New("table name is required"))
	}

	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			errGrp = append(errGrp, fmt.Errorf("column %d: name is required", i))
			continue
		}
		if seen[col.Name] {
			errGrp = append(errGrp, fmt.Errorf("duplicate column: %s", col.Name))
		}
		seen[col.Name] = true
	}

	if err := errors.Join(errGrp...); err != nil {
		return nil, err
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}, nil
}

// Position returns the zero-based position of the named column.
func (t *Table) Position(name string) (int, bool) {
	for i, col := range t.Columns {
		if col.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
