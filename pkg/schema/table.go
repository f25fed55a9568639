package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is returned when a row lacks an essential column.
	ErrMissingColumn = errors.New("missing essential column")

	// ErrUnknownColumn is returned when a column name is not part of the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidValue is returned when a value cannot be bound to the column's type.
	ErrInvalidValue = errors.New("invalid column value")

	// ErrDuplicateColumn is returned when a table declares the same column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// TableDef describes a table: its essential columns, which every row must carry,
// followed by optional extension columns.
type TableDef struct {
	name      string
	essential []ColumnDef
	extension []ColumnDef
}

// NewTableDef creates a table definition.
// Column names must be unique across essential and extension columns.
func NewTableDef(name string, essential []ColumnDef, extension []ColumnDef) (*TableDef, error) {
	seen := make(map[string]bool, len(essential)+len(extension))
	for _, col := range append(append([]ColumnDef{}, essential...), extension...) {
		if seen[col.Name] {
			return nil, fmt.Errorf("%w: %s in table %s", ErrDuplicateColumn, col.Name, name)
		}
		seen[col.Name] = true
	}

	return &TableDef{
		name:      name,
		essential: append([]ColumnDef(nil), essential...),
		extension: append([]ColumnDef(nil), extension...),
	}, nil
}

// MustTableDef is like NewTableDef but panics on error.
// It is meant for package-level registry declarations.
func MustTableDef(name string, essential []ColumnDef, extension []ColumnDef) *TableDef {
	t, err := NewTableDef(name, essential, extension)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *TableDef) Name() string {
	return t.name
}

// EssentialColumns returns a copy of the essential columns in declaration order.
func (t *TableDef) EssentialColumns() []ColumnDef {
	return append([]ColumnDef(nil), t.essential...)
}

// ExtensionColumns returns a copy of the extension columns in declaration order.
func (t *TableDef) ExtensionColumns() []ColumnDef {
	return append([]ColumnDef(nil), t.extension...)
}

// Columns returns essential columns followed by extension columns.
func (t *TableDef) Columns() []ColumnDef {
	cols := make([]ColumnDef, 0, len(t.essential)+len(t.extension))
	cols = append(cols, t.essential...)
	return append(cols, t.extension...)
}

// ColumnNames returns the essential column names in declaration order.
// The order drives positional CSV mapping.
func (t *TableDef) ColumnNames() []string {
	names := make([]string, len(t.essential))
	for i, c := range t.essential {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *TableDef) Column(name string) (ColumnDef, bool) {
	for _, c := range t.essential {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range t.extension {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// CreateTableString renders the DDL for the table.
func (t *TableDef) CreateTableString() string {
	defs := make([]string, 0, len(t.essential)+len(t.extension))
	for _, c := range t.Columns() {
		defs = append(defs, c.DefString())
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", t.name, strings.Join(defs, ", "))
}

// CheckColumns verifies that every name belongs to the table.
func (t *TableDef) CheckColumns(names ...string) error {
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			return fmt.Errorf("%w: %s in table %s", ErrUnknownColumn, n, t.name)
		}
	}
	return nil
}
