package exprs

// Predications provides comparison methods to types that embed it.
// The self field must be set to the embedding node so that comparisons
// reference the correct left-hand side.
type Predications struct {
	self Expr
}

func (p Predications) compare(op Op, val any) *Binary {
	return NewBinary(p.self, Const(val), op)
}

// Eq creates an equality comparison: self = val. Eq(nil) compiles to
// "self is null".
func (p Predications) Eq(val any) *Binary { return p.compare(OpEqual, val) }

// NotEq creates an inequality comparison: self != val. NotEq(nil) compiles
// to "self is not null".
func (p Predications) NotEq(val any) *Binary { return p.compare(OpNotEqual, val) }

// Gt creates a greater-than comparison: self > val.
func (p Predications) Gt(val any) *Binary { return p.compare(OpGreater, val) }

// GtEq creates a greater-than-or-equal comparison: self >= val.
func (p Predications) GtEq(val any) *Binary { return p.compare(OpGreaterEq, val) }

// Lt creates a less-than comparison: self < val.
func (p Predications) Lt(val any) *Binary { return p.compare(OpLess, val) }

// LtEq creates a less-than-or-equal comparison: self <= val.
func (p Predications) LtEq(val any) *Binary { return p.compare(OpLessEq, val) }

// Like creates a pattern match: self like val.
func (p Predications) Like(val any) *Binary { return p.compare(OpLike, val) }

// NotLike creates a negated pattern match: self not like val.
func (p Predications) NotLike(val any) *Binary { return p.compare(OpNotLike, val) }

// In creates a set membership predicate against an enumerable constant.
// Each element is parameterised individually at compile time.
func (p Predications) In(vals ...any) *Binary {
	return NewBinary(p.self, NewConstant(vals), OpIn)
}

// NotIn creates a negated set membership predicate.
func (p Predications) NotIn(vals ...any) *Binary {
	return NewBinary(p.self, NewConstant(vals), OpNotIn)
}

// InSelect creates a membership predicate against a single-column nested
// selection: self in (SELECT ...).
func (p Predications) InSelect(sel *Selection) *Binary {
	return NewBinary(p.self, NewSubquery(sel), OpIn)
}

// NotInSelect creates a negated membership predicate against a nested
// selection.
func (p Predications) NotInSelect(sel *Selection) *Binary {
	return NewBinary(p.self, NewSubquery(sel), OpNotIn)
}

// IsNull creates a null test; equivalent to Eq(nil).
func (p Predications) IsNull() *Binary { return p.Eq(nil) }

// IsNotNull creates a not-null test; equivalent to NotEq(nil).
func (p Predications) IsNotNull() *Binary { return p.NotEq(nil) }

// StartsWith creates a prefix test through the string catalog.
func (p Predications) StartsWith(val any) *Call {
	return NewCall(TargetString, FuncStartsWith, p.self, Const(val))
}

// EndsWith creates a suffix test through the string catalog.
func (p Predications) EndsWith(val any) *Call {
	return NewCall(TargetString, FuncEndsWith, p.self, Const(val))
}

// Contains creates a substring test through the string catalog.
func (p Predications) Contains(val any) *Call {
	return NewCall(TargetString, FuncContains, p.self, Const(val))
}

// Asc creates an ascending ordering on self.
func (p Predications) Asc() Ordering { return Ordering{Expr: p.self} }

// Desc creates a descending ordering on self.
func (p Predications) Desc() Ordering { return Ordering{Expr: p.self, Desc: true} }
