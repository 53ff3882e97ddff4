package exprs

// Op identifies the operation kind of a compiled fragment. The enumeration
// is closed: every fragment the compiler produces is tagged with one of
// these kinds, and the parenthesization rules below are total over the set.
type Op int

const (
	OpNone Op = iota // literal, column, or otherwise atomic fragment
	OpCall           // function-call syntax f(...)
	OpSubquery       // nested SELECT, always parenthesized as a child
	OpConvert        // cast(x as type)
	OpNegate
	OpNot
	OpMultiply
	OpDivide
	OpModulo
	OpAdd
	OpSubtract
	OpConcat
	OpLeftShift
	OpRightShift
	OpAnd // bitwise &
	OpXor
	OpOr // bitwise |
	OpEqual
	OpNotEqual
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpIs // is null / is not null
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpAndAlso // logical and
	OpOrElse  // logical or
	OpCoalesce
	OpPower
)

var opNames = [...]string{
	OpNone:       "None",
	OpCall:       "Call",
	OpSubquery:   "Subquery",
	OpConvert:    "Convert",
	OpNegate:     "Negate",
	OpNot:        "Not",
	OpMultiply:   "Multiply",
	OpDivide:     "Divide",
	OpModulo:     "Modulo",
	OpAdd:        "Add",
	OpSubtract:   "Subtract",
	OpConcat:     "Concat",
	OpLeftShift:  "LeftShift",
	OpRightShift: "RightShift",
	OpAnd:        "And",
	OpXor:        "Xor",
	OpOr:         "Or",
	OpEqual:      "Equal",
	OpNotEqual:   "NotEqual",
	OpLess:       "Less",
	OpLessEq:     "LessEq",
	OpGreater:    "Greater",
	OpGreaterEq:  "GreaterEq",
	OpIs:         "Is",
	OpLike:       "Like",
	OpNotLike:    "NotLike",
	OpIn:         "In",
	OpNotIn:      "NotIn",
	OpAndAlso:    "AndAlso",
	OpOrElse:     "OrElse",
	OpCoalesce:   "Coalesce",
	OpPower:      "Power",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op?"
}

// Relative precedence of each operation kind; higher binds tighter.
// Function-syntax kinds (Call, Convert, Coalesce, Power) and atomic
// fragments sit at the top since their text is self-delimiting.
var opPrecedence = [...]int{
	OpNone:       11,
	OpCall:       11,
	OpSubquery:   11,
	OpConvert:    11,
	OpCoalesce:   11,
	OpPower:      11,
	OpNegate:     10,
	OpNot:        10,
	OpMultiply:   9,
	OpDivide:     9,
	OpModulo:     9,
	OpAdd:        8,
	OpSubtract:   8,
	OpConcat:     8,
	OpLeftShift:  7,
	OpRightShift: 7,
	OpAnd:        6,
	OpXor:        5,
	OpOr:         4,
	OpEqual:      3,
	OpNotEqual:   3,
	OpLess:       3,
	OpLessEq:     3,
	OpGreater:    3,
	OpGreaterEq:  3,
	OpIs:         3,
	OpLike:       3,
	OpNotLike:    3,
	OpIn:         3,
	OpNotIn:      3,
	OpAndAlso:    2,
	OpOrElse:     1,
}

// Precedence returns the relative precedence of op, used only for
// parenthesization decisions.
func Precedence(op Op) int {
	if int(op) < len(opPrecedence) {
		return opPrecedence[op]
	}
	return 0
}

// NeedsParens reports whether a child fragment of kind child must be
// parenthesized when placed under a parent of kind parent. A subquery child
// is always parenthesized. Coalesce and Power never parenthesize a right
// operand: their rendered syntax is f(a, b), not infix. Otherwise a child is
// wrapped when its precedence is lower than the parent's, or equal while the
// child sits on the right of a left-associative parent (all binary kinds
// here are left-associative).
func NeedsParens(parent, child Op, childIsRight bool) bool {
	if child == OpSubquery {
		return true
	}
	if (parent == OpCoalesce || parent == OpPower) && childIsRight {
		return false
	}
	pp, cp := Precedence(parent), Precedence(child)
	if cp < pp {
		return true
	}
	return cp == pp && childIsRight && pp < Precedence(OpNone)
}
