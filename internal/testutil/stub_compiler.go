// Package testutil provides shared test helpers for the exprel project.
package testutil

import "github.com/bawdo/exprel/exprs"

// StubCompiler implements exprs.Compiler with minimal fixed fragments, for
// testing node dispatch without a real dialect.
type StubCompiler struct{}

var _ exprs.Compiler = StubCompiler{}

func text(s string) (exprs.Text, error) {
	return exprs.Text{SQL: s, Kind: exprs.OpNone}, nil
}

func (StubCompiler) ValueConstant(*exprs.Constant) (exprs.Text, error)       { return text("const") }
func (StubCompiler) PredicateConstant(*exprs.Constant) (exprs.Text, error)   { return text("const?") }
func (StubCompiler) ValueColumn(*exprs.Column) (exprs.Text, error)           { return text("col") }
func (StubCompiler) PredicateColumn(*exprs.Column) (exprs.Text, error)       { return text("col?") }
func (StubCompiler) ValueQuoteColumn(*exprs.QuoteColumn) (exprs.Text, error) { return text("quote") }
func (StubCompiler) PredicateQuoteColumn(*exprs.QuoteColumn) (exprs.Text, error) {
	return text("quote?")
}
func (StubCompiler) ValueBinary(*exprs.Binary) (exprs.Text, error)          { return text("binary") }
func (StubCompiler) PredicateBinary(*exprs.Binary) (exprs.Text, error)      { return text("binary?") }
func (StubCompiler) ValueUnary(*exprs.Unary) (exprs.Text, error)            { return text("unary") }
func (StubCompiler) PredicateUnary(*exprs.Unary) (exprs.Text, error)        { return text("unary?") }
func (StubCompiler) ValueConditional(*exprs.Conditional) (exprs.Text, error) {
	return text("cond")
}
func (StubCompiler) PredicateConditional(*exprs.Conditional) (exprs.Text, error) {
	return text("cond?")
}
func (StubCompiler) ValueMember(*exprs.Member) (exprs.Text, error)       { return text("member") }
func (StubCompiler) PredicateMember(*exprs.Member) (exprs.Text, error)   { return text("member?") }
func (StubCompiler) ValueCall(*exprs.Call) (exprs.Text, error)           { return text("call") }
func (StubCompiler) PredicateCall(*exprs.Call) (exprs.Text, error)       { return text("call?") }
func (StubCompiler) ValueSubquery(*exprs.Subquery) (exprs.Text, error)   { return text("sub") }
func (StubCompiler) PredicateSubquery(*exprs.Subquery) (exprs.Text, error) {
	return text("sub?")
}
func (StubCompiler) ValueSwitch(*exprs.Switch) (exprs.Text, error)     { return text("switch") }
func (StubCompiler) PredicateSwitch(*exprs.Switch) (exprs.Text, error) { return text("switch?") }
