package exprs

// Arithmetics provides math and bitwise methods to types that embed it.
// The self field must be set to the embedding node.
type Arithmetics struct {
	self Expr
}

func (a Arithmetics) infix(op Op, val any) *Binary {
	return NewBinary(a.self, Const(val), op)
}

func (a Arithmetics) Plus(val any) *Binary       { return a.infix(OpAdd, val) }
func (a Arithmetics) Minus(val any) *Binary      { return a.infix(OpSubtract, val) }
func (a Arithmetics) Times(val any) *Binary      { return a.infix(OpMultiply, val) }
func (a Arithmetics) DividedBy(val any) *Binary  { return a.infix(OpDivide, val) }
func (a Arithmetics) Mod(val any) *Binary        { return a.infix(OpModulo, val) }
func (a Arithmetics) Concat(val any) *Binary     { return a.infix(OpConcat, val) }
func (a Arithmetics) BitAnd(val any) *Binary     { return a.infix(OpAnd, val) }
func (a Arithmetics) BitOr(val any) *Binary      { return a.infix(OpOr, val) }
func (a Arithmetics) BitXor(val any) *Binary     { return a.infix(OpXor, val) }
func (a Arithmetics) ShiftLeft(val any) *Binary  { return a.infix(OpLeftShift, val) }
func (a Arithmetics) ShiftRight(val any) *Binary { return a.infix(OpRightShift, val) }
func (a Arithmetics) Coalesce(val any) *Binary   { return a.infix(OpCoalesce, val) }
func (a Arithmetics) Pow(val any) *Binary        { return a.infix(OpPower, val) }

// Negate creates the arithmetic negation of self.
func (a Arithmetics) Negate() *Unary { return NewUnary(a.self, OpNegate) }

// CastAs creates a cast of self to the given SQL type.
func (a Arithmetics) CastAs(typeName string) *Unary { return NewConvert(a.self, typeName) }

// Length accesses the string length member of self.
func (a Arithmetics) Length() *Member { return NewMember(a.self, MemberLength) }

// DatePart accesses a date part member of self.
func (a Arithmetics) DatePart(kind MemberKind) *Member { return NewMember(a.self, kind) }
