package exprs

// Binary is a composite node combining two operands with an operator.
// Comparison, logic, arithmetic, bitwise, Like, In, Coalesce and Power
// kinds all use this node; the compiler's dispatch narrows on Op.
type Binary struct {
	Predications
	Arithmetics
	Combinable
	Left  Expr
	Right Expr
	Op    Op
}

// NewBinary creates a Binary with properly initialised embedded structs.
func NewBinary(left, right Expr, op Op) *Binary {
	n := &Binary{Left: left, Right: right, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *Binary) AsValue(c Compiler) (Text, error)     { return c.ValueBinary(n) }
func (n *Binary) AsPredicate(c Compiler) (Text, error) { return c.PredicateBinary(n) }

// Unary is a composite node with a single operand: Not, Negate, or Convert.
// TypeName carries the cast target when Op is OpConvert.
type Unary struct {
	Predications
	Arithmetics
	Combinable
	Operand  Expr
	Op       Op
	TypeName string
}

// NewUnary creates a Unary with properly initialised embedded structs.
func NewUnary(operand Expr, op Op) *Unary {
	n := &Unary{Operand: operand, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// NewConvert creates a cast of operand to the given SQL type.
func NewConvert(operand Expr, typeName string) *Unary {
	n := NewUnary(operand, OpConvert)
	n.TypeName = typeName
	return n
}

func (n *Unary) AsValue(c Compiler) (Text, error)     { return c.ValueUnary(n) }
func (n *Unary) AsPredicate(c Compiler) (Text, error) { return c.PredicateUnary(n) }

// Conditional is the ternary node: Test ? Then : Else.
type Conditional struct {
	Predications
	Arithmetics
	Combinable
	Test Expr
	Then Expr
	Else Expr
}

// NewConditional creates a Conditional with properly initialised embedded
// structs.
func NewConditional(test, then, els Expr) *Conditional {
	n := &Conditional{Test: test, Then: then, Else: els}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *Conditional) AsValue(c Compiler) (Text, error)     { return c.ValueConditional(n) }
func (n *Conditional) AsPredicate(c Compiler) (Text, error) { return c.PredicateConditional(n) }
