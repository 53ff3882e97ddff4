package compilers

import (
	"strings"

	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/exprs/schema"
)

// Schema statements are generated from explicit table descriptions; nothing
// is introspected from a live connection. Defaults render as inline literals
// since DDL cannot carry bind parameters.

// CreateTable renders a CREATE TABLE statement for the described table.
func (b *baseCompiler) CreateTable(t schema.Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", &exprs.InvalidShapeError{Reason: "table " + t.Name + " has no columns"}
	}
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(b.hooks.QuoteName(c.Name))
		sb.WriteString(" ")
		sb.WriteString(c.SQLType)
		if c.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
			if c.AutoIncrement {
				sb.WriteString(b.hooks.AutoIncrementSQL())
			}
		} else if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if c.Default != nil {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(inlineLiteral(c.Default, b.params.escape))
		}
		defs[i] = sb.String()
	}
	return "CREATE TABLE " + b.hooks.QuoteName(t.Name) +
		" (" + strings.Join(defs, ", ") + ")", nil
}

// CreateIndexes renders one CREATE INDEX statement per indexed column.
func (b *baseCompiler) CreateIndexes(t schema.Table) []string {
	var out []string
	for _, c := range t.Columns {
		if !c.Indexed || c.PrimaryKey {
			continue
		}
		out = append(out, "CREATE INDEX "+b.hooks.QuoteName("IX_"+t.Name+"_"+c.Name)+
			" ON "+b.hooks.QuoteName(t.Name)+" ("+b.hooks.QuoteName(c.Name)+")")
	}
	return out
}

// DropTable renders a DROP TABLE statement.
func (b *baseCompiler) DropTable(name string) string {
	return "DROP TABLE " + b.hooks.QuoteName(name)
}

// CreateView renders CREATE VIEW over a compiled selection. Constants are
// inlined regardless of the compiler's parameter mode: a view definition
// cannot reference statement parameters.
func (b *baseCompiler) CreateView(name string, sel *exprs.Selection) (string, error) {
	b.begin()
	saved := b.params.parametric
	b.params.parametric = false
	defer func() { b.params.parametric = saved }()
	body, err := b.selectSQL(sel)
	if err != nil {
		return "", err
	}
	return "CREATE VIEW " + b.hooks.QuoteName(name) + " AS " + body, nil
}

// DropView renders a DROP VIEW statement.
func (b *baseCompiler) DropView(name string) string {
	return "DROP VIEW " + b.hooks.QuoteName(name)
}

// TableExists renders a query yielding a nonzero count when the named table
// exists.
func (b *baseCompiler) TableExists(name string) string {
	return b.hooks.TableExistsSQL(name)
}

// ViewExists renders a query yielding a nonzero count when the named view
// exists.
func (b *baseCompiler) ViewExists(name string) string {
	return b.hooks.ViewExistsSQL(name)
}
