package compilers

import (
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/exprs/schema"
)

// Compiler is the full dialect surface: per-node rendering plus statement
// and schema generation. All three dialect compilers satisfy it.
type Compiler interface {
	exprs.Compiler

	Select(sel *exprs.Selection) (string, []Param, error)
	Insert(ins *exprs.Insert) (string, []Param, error)
	InsertFromQuery(target schema.Table, sel *exprs.Selection) (string, []Param, error)
	Update(u *exprs.Update) (string, []Param, error)
	Delete(d *exprs.Delete) (string, []Param, error)
	Combine(left, right *exprs.Selection, kind exprs.SetOpKind) (string, []Param, error)

	CreateTable(t schema.Table) (string, error)
	CreateIndexes(t schema.Table) []string
	DropTable(name string) string
	CreateView(name string, sel *exprs.Selection) (string, error)
	DropView(name string) string
	TableExists(name string) string
	ViewExists(name string) string
}
