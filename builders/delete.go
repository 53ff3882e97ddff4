package builders

import (
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/rewrite"
)

// DeleteBuilder provides a fluent API for building single-table DELETE
// statements. Like UpdateBuilder, column references are unaliased.
type DeleteBuilder struct {
	builder
	d *exprs.Delete
}

// NewDelete creates a DeleteBuilder targeting the named table.
func NewDelete(table string) *DeleteBuilder {
	target := exprs.Table(table, "")
	return &DeleteBuilder{d: &exprs.Delete{Target: target, From: target}}
}

// Col returns an unaliased column reference on the target table.
func (b *DeleteBuilder) Col(name string) *exprs.Column {
	return exprs.Col("", name)
}

// Where appends a condition to the filter, combined with and.
func (b *DeleteBuilder) Where(cond exprs.Expr) *DeleteBuilder {
	b.d.Where = rewrite.AndWhere(b.d.Where, cond)
	return b
}

// Use registers a rewriter plugin.
func (b *DeleteBuilder) Use(r rewrite.Rewriter) *DeleteBuilder {
	b.addRewriter(r)
	return b
}

// ToSQL applies rewriters and compiles the statement.
func (b *DeleteBuilder) ToSQL(c compilers.Compiler) (string, []compilers.Param, error) {
	d := b.cloneStatement()
	for _, r := range b.rewriters {
		var err error
		d, err = r.RewriteDelete(d)
		if err != nil {
			return "", nil, err
		}
	}
	return c.Delete(d)
}

func (b *DeleteBuilder) cloneStatement() *exprs.Delete {
	d := *b.d
	return &d
}
