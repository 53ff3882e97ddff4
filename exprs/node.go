// Package exprs defines the expression and data-source node types that make
// up the query AST, together with the operation catalog used to decide
// parenthesization of compiled fragments.
//
// Every expression node is renderable in two forms: as a value and as a
// predicate. The target dialects have no universal boolean scalar, so the
// compiler converts between the two forms with a fixed rule whenever a node's
// natural form is not the requested one.
package exprs

// Text is a compiled SQL fragment paired with the operation kind that
// produced it. The kind drives parenthesization of the fragment when it
// becomes a child of another expression; it never affects evaluation order,
// which is fixed by the tree.
type Text struct {
	SQL  string
	Kind Op
}

// Expr is the interface all expression nodes implement. Both forms must be
// derivable for every node kind; a node whose shape cannot be rendered at
// all (the shaping nodes) returns an InvalidShapeError from both.
type Expr interface {
	AsValue(c Compiler) (Text, error)
	AsPredicate(c Compiler) (Text, error)
}

// Compiler renders expression nodes as SQL fragments. Each node kind has a
// value and a predicate entry point; dialects implement both for every kind,
// falling back on the standard conversion where one form is unnatural.
type Compiler interface {
	ValueConstant(n *Constant) (Text, error)
	PredicateConstant(n *Constant) (Text, error)
	ValueColumn(n *Column) (Text, error)
	PredicateColumn(n *Column) (Text, error)
	ValueQuoteColumn(n *QuoteColumn) (Text, error)
	PredicateQuoteColumn(n *QuoteColumn) (Text, error)
	ValueBinary(n *Binary) (Text, error)
	PredicateBinary(n *Binary) (Text, error)
	ValueUnary(n *Unary) (Text, error)
	PredicateUnary(n *Unary) (Text, error)
	ValueConditional(n *Conditional) (Text, error)
	PredicateConditional(n *Conditional) (Text, error)
	ValueMember(n *Member) (Text, error)
	PredicateMember(n *Member) (Text, error)
	ValueCall(n *Call) (Text, error)
	PredicateCall(n *Call) (Text, error)
	ValueSubquery(n *Subquery) (Text, error)
	PredicateSubquery(n *Subquery) (Text, error)
	ValueSwitch(n *Switch) (Text, error)
	PredicateSwitch(n *Switch) (Text, error)
}
