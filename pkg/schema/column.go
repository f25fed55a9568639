// Package schema defines table and column definitions for the asset store.
// It is the single source of truth for column names, types and order.
package schema

import "fmt"

// ColumnType is the declared SQL type of a column.
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeReal    ColumnType = "REAL"
	TypeInteger ColumnType = "INTEGER"
)

// IsText reports whether values of this type are bound as strings.
func (t ColumnType) IsText() bool {
	return t == TypeText
}

// Common column constraints.
const (
	NotNull = "NOT NULL"
)

// ColumnDef describes a single column of a table.
// It is a value type; copies never alias the registry.
type ColumnDef struct {
	Name       string
	Type       ColumnType
	Constraint string
}

// NewColumnDef creates a column definition.
func NewColumnDef(name string, typ ColumnType, constraint string) ColumnDef {
	return ColumnDef{
		Name:       name,
		Type:       typ,
		Constraint: constraint,
	}
}

// DefString renders the column as it appears inside CREATE TABLE.
// Example: "DATE TEXT NOT NULL"
func (c ColumnDef) DefString() string {
	if c.Constraint == "" {
		return fmt.Sprintf("%s %s", c.Name, c.Type)
	}
	return fmt.Sprintf("%s %s %s", c.Name, c.Type, c.Constraint)
}
