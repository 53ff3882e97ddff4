// Package softdelete provides a Rewriter that injects "column is null"
// filters into statements, hiding soft-deleted rows from reads and
// keeping writes from touching them.
//
// By default every table in the FROM clause gets a deleted_at filter; the
// column name and the set of affected tables can be customised:
//
//	sd := softdelete.New()
//	sd := softdelete.New(softdelete.WithColumn("removed_at"))
//	sd := softdelete.New(softdelete.WithTables("users"))
//	sd := softdelete.New(softdelete.WithTableColumn("posts", "removed_at"))
package softdelete

import (
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/rewrite"
)

// SoftDelete is a Rewriter that appends is-null filters for a soft-delete
// column on every referenced table (or a configured subset).
type SoftDelete struct {
	rewrite.Base
	Column  string
	Columns map[string]string // per-table column overrides
	tables  map[string]bool   // nil means apply to all tables
}

// Option configures a SoftDelete rewriter.
type Option func(*SoftDelete)

// WithColumn sets the soft-delete column name. Default is "deleted_at".
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.Column = name }
}

// WithTables restricts the rewriter to only the named tables.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		sd.tables = make(map[string]bool, len(names))
		for _, n := range names {
			sd.tables[n] = true
		}
	}
}

// WithTableColumn sets a per-table column override. The table is added to
// the whitelist, restricting the rewriter's scope.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.Columns == nil {
			sd.Columns = make(map[string]string)
		}
		sd.Columns[table] = column
		if sd.tables == nil {
			sd.tables = make(map[string]bool)
		}
		sd.tables[table] = true
	}
}

// New creates a SoftDelete rewriter with the given options.
func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{Column: "deleted_at"}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// RewriteSelect appends "alias.column is null" to the filter for each
// matching table referenced by the selection.
func (sd *SoftDelete) RewriteSelect(sel *exprs.Selection) (*exprs.Selection, error) {
	for _, t := range rewrite.Tables(sel.From) {
		if !sd.appliesTo(t.Name) {
			continue
		}
		col := exprs.Col(t.Alias, sd.columnFor(t.Name))
		sel.Where = rewrite.AndWhere(sel.Where, col.IsNull())
	}
	return sel, nil
}

// RewriteUpdate keeps already soft-deleted rows out of UPDATE statements.
func (sd *SoftDelete) RewriteUpdate(u *exprs.Update) (*exprs.Update, error) {
	if sd.appliesTo(u.Target.Name) {
		col := exprs.Col(u.Target.Alias, sd.columnFor(u.Target.Name))
		u.Where = rewrite.AndWhere(u.Where, col.IsNull())
	}
	return u, nil
}

// RewriteDelete keeps already soft-deleted rows out of DELETE statements.
func (sd *SoftDelete) RewriteDelete(d *exprs.Delete) (*exprs.Delete, error) {
	if sd.appliesTo(d.Target.Name) {
		col := exprs.Col(d.Target.Alias, sd.columnFor(d.Target.Name))
		d.Where = rewrite.AndWhere(d.Where, col.IsNull())
	}
	return d, nil
}

func (sd *SoftDelete) appliesTo(tableName string) bool {
	if sd.tables == nil {
		return true
	}
	return sd.tables[tableName]
}

func (sd *SoftDelete) columnFor(tableName string) string {
	if col, ok := sd.Columns[tableName]; ok {
		return col
	}
	return sd.Column
}
