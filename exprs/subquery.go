package exprs

// Subquery wraps a nested selection used as a scalar expression. The
// selection must yield exactly one column; yielding exactly one row is
// caller discipline, not enforced here.
type Subquery struct {
	Predications
	Arithmetics
	Combinable
	Select *Selection
}

// NewSubquery creates a Subquery with properly initialised embedded structs.
func NewSubquery(sel *Selection) *Subquery {
	n := &Subquery{Select: sel}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *Subquery) AsValue(c Compiler) (Text, error)     { return c.ValueSubquery(n) }
func (n *Subquery) AsPredicate(c Compiler) (Text, error) { return c.PredicateSubquery(n) }

// SwitchCase is one branch of a Switch: a set of test values OR-joined
// against the scrutinee, and the branch body.
type SwitchCase struct {
	Tests []Expr
	Body  Expr
}

// Switch is a multi-branch value selection compiled to a CASE WHEN chain.
type Switch struct {
	Predications
	Arithmetics
	Combinable
	On      Expr
	Cases   []SwitchCase
	Default Expr // nil if absent
}

// NewSwitch creates a Switch with properly initialised embedded structs.
func NewSwitch(on Expr, cases ...SwitchCase) *Switch {
	n := &Switch{On: on, Cases: cases}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Else sets the default body and returns the Switch for chaining.
func (n *Switch) Else(body Expr) *Switch {
	n.Default = body
	return n
}

func (n *Switch) AsValue(c Compiler) (Text, error)     { return c.ValueSwitch(n) }
func (n *Switch) AsPredicate(c Compiler) (Text, error) { return c.PredicateSwitch(n) }
