package exprs

// Combinable provides logical chaining methods to types that embed it.
// The self field must be set to the embedding node. No grouping node is
// needed around Or: the compiler parenthesizes by operation precedence.
type Combinable struct {
	self Expr
}

// And creates a logical conjunction of self and other.
func (c Combinable) And(other Expr) *Binary {
	return NewBinary(c.self, other, OpAndAlso)
}

// Or creates a logical disjunction of self and other.
func (c Combinable) Or(other Expr) *Binary {
	return NewBinary(c.self, other, OpOrElse)
}

// Not creates a logical negation of self.
func (c Combinable) Not() *Unary {
	return NewUnary(c.self, OpNot)
}
