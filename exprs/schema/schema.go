// Package schema describes table shapes passed explicitly into the
// compiler: column names, SQL types, nullability, defaults and index hints.
// The compiler never discovers metadata by introspection; callers build
// these value objects from their own mapping layer.
package schema

// Column describes one column of a mapped table.
type Column struct {
	Name          string
	SQLType       string // dialect type name, e.g. "integer", "text"
	Nullable      bool
	Default       any // nil means no default
	PrimaryKey    bool
	AutoIncrement bool
	Indexed       bool
}

// Table describes a mapped table or view shape.
type Table struct {
	Name    string
	Columns []Column
}

// Column returns the named column and whether it exists.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
