package builders

import (
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/rewrite"
)

// UpdateBuilder provides a fluent API for building single-table UPDATE
// statements. Column references in assignments and filters are unaliased:
// the statement names only its target table.
type UpdateBuilder struct {
	builder
	u *exprs.Update
}

// NewUpdate creates an UpdateBuilder targeting the named table.
func NewUpdate(table string) *UpdateBuilder {
	target := exprs.Table(table, "")
	return &UpdateBuilder{u: &exprs.Update{Target: target, From: target}}
}

// Col returns an unaliased column reference on the target table.
func (b *UpdateBuilder) Col(name string) *exprs.Column {
	return exprs.Col("", name)
}

// Set adds a column assignment. val can be a raw Go value or an expression.
func (b *UpdateBuilder) Set(column string, val any) *UpdateBuilder {
	b.u.Sets = append(b.u.Sets, exprs.Assign{Column: column, Value: exprs.Const(val)})
	return b
}

// Where appends a condition to the filter, combined with and.
func (b *UpdateBuilder) Where(cond exprs.Expr) *UpdateBuilder {
	b.u.Where = rewrite.AndWhere(b.u.Where, cond)
	return b
}

// Use registers a rewriter plugin.
func (b *UpdateBuilder) Use(r rewrite.Rewriter) *UpdateBuilder {
	b.addRewriter(r)
	return b
}

// ToSQL applies rewriters and compiles the statement.
func (b *UpdateBuilder) ToSQL(c compilers.Compiler) (string, []compilers.Param, error) {
	u := b.cloneStatement()
	for _, r := range b.rewriters {
		var err error
		u, err = r.RewriteUpdate(u)
		if err != nil {
			return "", nil, err
		}
	}
	return c.Update(u)
}

func (b *UpdateBuilder) cloneStatement() *exprs.Update {
	u := *b.u
	u.Sets = append([]exprs.Assign(nil), b.u.Sets...)
	return &u
}
