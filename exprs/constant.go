package exprs

import "time"

// Constant is a literal value leaf. Only basic scalar values may appear as
// standalone constants; a slice of basic values is additionally accepted as
// the right side of an In/NotIn binary, where the compiler enumerates it.
type Constant struct {
	Predications
	Arithmetics
	Combinable
	Value any
}

// NewConstant creates a Constant with properly initialised embedded structs.
func NewConstant(v any) *Constant {
	n := &Constant{Value: v}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Const wraps a raw Go value as a Constant. If val already implements Expr
// it is returned unchanged.
func Const(val any) Expr {
	if e, ok := val.(Expr); ok {
		return e
	}
	return NewConstant(val)
}

func (n *Constant) AsValue(c Compiler) (Text, error)     { return c.ValueConstant(n) }
func (n *Constant) AsPredicate(c Compiler) (Text, error) { return c.PredicateConstant(n) }

// IsNullConstant reports whether e is a Constant holding nil.
func IsNullConstant(e Expr) bool {
	c, ok := e.(*Constant)
	return ok && c.Value == nil
}

// BasicValue reports whether v is one of the scalar types the parameter
// context accepts. time.Time counts as basic: date arithmetic needs date
// constants.
func BasicValue(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time:
		return true
	}
	return false
}
