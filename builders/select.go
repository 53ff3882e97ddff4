package builders

import (
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/rewrite"
)

// SelectBuilder provides a fluent API for building SELECT statements.
type SelectBuilder struct {
	builder
	sel     *exprs.Selection
	primary *exprs.TableSource
	aliases aliasAllocator
}

// NewSelect creates a SelectBuilder reading from the named table. The table
// receives the first generated alias.
func NewSelect(table string) *SelectBuilder {
	b := &SelectBuilder{}
	b.primary = exprs.Table(table, b.aliases.alloc())
	b.sel = &exprs.Selection{From: b.primary}
	return b
}

// Table returns the primary table source, used to build column references.
func (b *SelectBuilder) Table() *exprs.TableSource {
	return b.primary
}

// Select sets the projection shape, replacing any existing one. Pass a
// column, a computed expression, or an object/collection shape.
func (b *SelectBuilder) Select(shape exprs.Expr) *SelectBuilder {
	b.sel.Shape = shape
	return b
}

// Where appends a condition to the filter. Multiple calls are combined
// with and.
func (b *SelectBuilder) Where(cond exprs.Expr) *SelectBuilder {
	b.sel.Where = rewrite.AndWhere(b.sel.Where, cond)
	return b
}

// Join adds a join against the named table and returns a JoinContext for
// specifying the on-condition. The default join kind is inner.
func (b *SelectBuilder) Join(table string, kinds ...exprs.JoinKind) *JoinContext {
	kind := exprs.JoinInner
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	right := exprs.Table(table, b.aliases.alloc())
	join := &exprs.JoinSource{Left: b.sel.From, Right: right, Kind: kind}
	b.sel.From = join
	return &JoinContext{builder: b, join: join, table: right}
}

// CrossJoin adds a cross join; no on-condition is needed.
func (b *SelectBuilder) CrossJoin(table string) *SelectBuilder {
	ctx := b.Join(table, exprs.JoinCross)
	return ctx.builder
}

// GroupBy appends grouping expressions.
func (b *SelectBuilder) GroupBy(exprs ...exprs.Expr) *SelectBuilder {
	b.sel.GroupBy = append(b.sel.GroupBy, exprs...)
	return b
}

// OrderBy appends ordering terms.
func (b *SelectBuilder) OrderBy(orders ...exprs.Ordering) *SelectBuilder {
	b.sel.OrderBy = append(b.sel.OrderBy, orders...)
	return b
}

// Limit caps the number of rows returned.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.sel.Limit = n
	return b
}

// Offset skips the first n rows.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.sel.Offset = n
	return b
}

// Distinct enables the DISTINCT modifier.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.sel.Distinct = true
	return b
}

// Union combines this builder's selection with another under a set
// operator (UNION by default). Further clauses apply to the combined
// result.
func (b *SelectBuilder) Union(other *SelectBuilder, kinds ...exprs.SetOpKind) *SelectBuilder {
	kind := exprs.SetUnion
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	u := &exprs.UnionSource{Main: b.sel, Other: other.sel, Kind: kind}
	b.sel = &exprs.Selection{From: u}
	return b
}

// Use registers a rewriter plugin.
func (b *SelectBuilder) Use(r rewrite.Rewriter) *SelectBuilder {
	b.addRewriter(r)
	return b
}

// Selection returns the built tree after running the rewriter pipeline over
// a clone, leaving the builder reusable.
func (b *SelectBuilder) Selection() (*exprs.Selection, error) {
	sel := b.cloneSelection()
	for _, r := range b.rewriters {
		var err error
		sel, err = r.RewriteSelect(sel)
		if err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// ToSQL applies rewriters and compiles the statement with the given dialect
// compiler. Returns SQL text and the extracted parameters.
func (b *SelectBuilder) ToSQL(c compilers.Compiler) (string, []compilers.Param, error) {
	sel, err := b.Selection()
	if err != nil {
		return "", nil, err
	}
	return c.Select(sel)
}

func (b *SelectBuilder) cloneSelection() *exprs.Selection {
	sel := *b.sel
	sel.GroupBy = append([]exprs.Expr(nil), b.sel.GroupBy...)
	sel.OrderBy = append([]exprs.Ordering(nil), b.sel.OrderBy...)
	return &sel
}
