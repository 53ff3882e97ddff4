package builders

import "github.com/bawdo/exprel/exprs"

// JoinContext is returned by SelectBuilder.Join and enforces that a join
// condition is provided via On before continuing to build the query.
type JoinContext struct {
	builder *SelectBuilder
	join    *exprs.JoinSource
	table   *exprs.TableSource
}

// Table returns the joined table source, used to build column references
// for the on-condition and the projection.
func (jc *JoinContext) Table() *exprs.TableSource {
	return jc.table
}

// On sets the join condition and returns the SelectBuilder for continued
// chaining.
func (jc *JoinContext) On(cond exprs.Expr) *SelectBuilder {
	jc.join.On = cond
	return jc.builder
}
