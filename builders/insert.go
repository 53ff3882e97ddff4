package builders

import (
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/exprs/schema"
	"github.com/bawdo/exprel/rewrite"
)

// InsertBuilder provides a fluent API for building INSERT statements, in
// either the values form or the insert-from-query form.
type InsertBuilder struct {
	builder
	ins    *exprs.Insert
	target schema.Table
	query  *SelectBuilder
}

// NewInsert creates an InsertBuilder targeting the named table.
func NewInsert(table string) *InsertBuilder {
	return &InsertBuilder{ins: &exprs.Insert{Table: table}}
}

// Set adds a column value. val can be a raw Go value or an expression.
func (b *InsertBuilder) Set(column string, val any) *InsertBuilder {
	b.ins.Columns = append(b.ins.Columns, column)
	b.ins.Values = append(b.ins.Values, exprs.Const(val))
	return b
}

// FromSelect switches the builder to the insert-from-query form: rows come
// from the given selection, whose projected field names must resolve to
// columns of the described target table.
func (b *InsertBuilder) FromSelect(target schema.Table, q *SelectBuilder) *InsertBuilder {
	b.target = target
	b.query = q
	return b
}

// Use registers a rewriter plugin.
func (b *InsertBuilder) Use(r rewrite.Rewriter) *InsertBuilder {
	b.addRewriter(r)
	return b
}

// ToSQL applies rewriters and compiles the statement.
func (b *InsertBuilder) ToSQL(c compilers.Compiler) (string, []compilers.Param, error) {
	if b.query != nil {
		sel, err := b.query.Selection()
		if err != nil {
			return "", nil, err
		}
		return c.InsertFromQuery(b.target, sel)
	}
	ins := b.cloneStatement()
	for _, r := range b.rewriters {
		var err error
		ins, err = r.RewriteInsert(ins)
		if err != nil {
			return "", nil, err
		}
	}
	return c.Insert(ins)
}

func (b *InsertBuilder) cloneStatement() *exprs.Insert {
	ins := *b.ins
	ins.Columns = append([]string(nil), b.ins.Columns...)
	ins.Values = append([]exprs.Expr(nil), b.ins.Values...)
	return &ins
}
