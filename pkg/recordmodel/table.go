package recordmodel

import (
	"errors"
	"fmt"
)

// Table is a named record model: columns in declaration order. The order
// determines field order, schema property order, and required-name order in
// everything synthesized from it.
type Table struct {
	name    string
	columns []*Column
}

// NewTable assembles a table from column descriptors, rejecting empty or
// duplicate column names.
func NewTable(name string, columns ...*Column) (*Table, error) {
	if name == "" {
		return nil, errors.New("recordmodel: table name is required")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("recordmodel: table %q has a nil column", name)
		}
		if col.Name == "" {
			return nil, fmt.Errorf("recordmodel: table %q has a column without a name", name)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("recordmodel: table %q declares column %q twice", name, col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return &Table{name: name, columns: append([]*Column(nil), columns...)}, nil
}

// MustTable panics if the table cannot be created. Useful for tests and
// package-level definitions.
func MustTable(name string, columns ...*Column) *Table {
	table, err := NewTable(name, columns...)
	if err != nil {
		panic(err)
	}
	return table
}

// Name returns the table name. Synthesized models take this name verbatim.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the columns in declaration order. The slice is a copy; the
// descriptors themselves are shared and must be treated as read-only.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return nil, false
}
