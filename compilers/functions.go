package compilers

import (
	"github.com/bawdo/exprel/exprs"
)

// The translation catalog is closed: dispatch narrows on target type,
// function tag and argument shape, and anything outside the table is an
// UnsupportedConstructError naming both tags. No best-effort passthrough of
// unknown calls ever reaches the SQL text.

func unsupported(n *exprs.Call) error {
	return &exprs.UnsupportedConstructError{Target: n.Target.String(), Member: n.Func.String()}
}

// object renders the instance-call receiver.
func (b *baseCompiler) object(n *exprs.Call) (string, error) {
	if n.Object == nil {
		return "", unsupported(n)
	}
	return b.arg(n.Object)
}

func (b *baseCompiler) ValueCall(n *exprs.Call) (exprs.Text, error) {
	switch n.Target {
	case exprs.TargetString:
		return b.stringCallValue(n)
	case exprs.TargetMath:
		return b.mathCall(n)
	case exprs.TargetDate:
		return b.dateCall(n)
	case exprs.TargetAggregate:
		return b.aggregateCall(n)
	case exprs.TargetConvert:
		return b.convertCall(n)
	}
	return exprs.Text{}, unsupported(n)
}

func (b *baseCompiler) PredicateCall(n *exprs.Call) (exprs.Text, error) {
	if n.Target == exprs.TargetString {
		switch n.Func {
		case exprs.FuncStartsWith, exprs.FuncEndsWith, exprs.FuncContains:
			return b.searchPredicate(n)
		}
	}
	t, err := b.outer.ValueCall(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// searchPredicate renders the predicate-natural string searches. StartsWith
// and Contains go through the dialect position function; EndsWith compares
// the string tail since a position test cannot anchor at the end.
func (b *baseCompiler) searchPredicate(n *exprs.Call) (exprs.Text, error) {
	if len(n.Args) != 1 {
		return exprs.Text{}, unsupported(n)
	}
	x, err := b.object(n)
	if err != nil {
		return exprs.Text{}, err
	}
	needle, err := b.arg(n.Args[0])
	if err != nil {
		return exprs.Text{}, err
	}
	switch n.Func {
	case exprs.FuncStartsWith:
		return exprs.Text{SQL: b.hooks.InstrSQL(x, needle) + " = 1", Kind: exprs.OpEqual}, nil
	case exprs.FuncContains:
		return exprs.Text{SQL: b.hooks.InstrSQL(x, needle) + " > 0", Kind: exprs.OpGreater}, nil
	default:
		// Rendered a second time so positional placeholder styles bind both
		// occurrences of the suffix.
		again, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.EndsWithSQL(x, needle, again), nil
	}
}

func (b *baseCompiler) stringCallValue(n *exprs.Call) (exprs.Text, error) {
	switch n.Func {
	case exprs.FuncStartsWith, exprs.FuncEndsWith, exprs.FuncContains:
		t, err := b.outer.PredicateCall(n)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.valueFromPredicate(t), nil
	}
	x, err := b.object(n)
	if err != nil {
		return exprs.Text{}, err
	}
	switch n.Func {
	case exprs.FuncSubstring:
		// Callers index from zero; substr indexes from one.
		if len(n.Args) != 1 && len(n.Args) != 2 {
			return exprs.Text{}, unsupported(n)
		}
		start, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		sql := "substr(" + x + ", " + start + " + 1"
		if len(n.Args) == 2 {
			length, err := b.arg(n.Args[1])
			if err != nil {
				return exprs.Text{}, err
			}
			sql += ", " + length
		}
		return exprs.Text{SQL: sql + ")", Kind: exprs.OpCall}, nil
	case exprs.FuncIndexOf:
		if len(n.Args) != 1 {
			return exprs.Text{}, unsupported(n)
		}
		needle, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		// Position functions are 1-based; callers expect -1-absent, 0-based.
		return exprs.Text{SQL: b.hooks.InstrSQL(x, needle) + " - 1", Kind: exprs.OpSubtract}, nil
	case exprs.FuncTrim:
		if len(n.Args) != 0 {
			return exprs.Text{}, unsupported(n)
		}
		return exprs.Text{SQL: "trim(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.FuncToUpper:
		if len(n.Args) != 0 {
			return exprs.Text{}, unsupported(n)
		}
		return exprs.Text{SQL: "upper(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.FuncToLower:
		if len(n.Args) != 0 {
			return exprs.Text{}, unsupported(n)
		}
		return exprs.Text{SQL: "lower(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.FuncReplace:
		if len(n.Args) != 2 {
			return exprs.Text{}, unsupported(n)
		}
		from, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		to, err := b.arg(n.Args[1])
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: "replace(" + x + ", " + from + ", " + to + ")", Kind: exprs.OpCall}, nil
	}
	return exprs.Text{}, unsupported(n)
}

func (b *baseCompiler) mathCall(n *exprs.Call) (exprs.Text, error) {
	if n.Func == exprs.FuncRandomInt {
		if n.Object != nil || len(n.Args) != 2 {
			return exprs.Text{}, unsupported(n)
		}
		lo, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		hi, err := b.arg(n.Args[1])
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.RandomIntSQL(lo, hi), nil
	}
	if n.Object != nil || len(n.Args) < 1 {
		return exprs.Text{}, unsupported(n)
	}
	x, err := b.arg(n.Args[0])
	if err != nil {
		return exprs.Text{}, err
	}
	switch n.Func {
	case exprs.FuncRound:
		switch len(n.Args) {
		case 1:
			return exprs.Text{SQL: "round(" + x + ")", Kind: exprs.OpCall}, nil
		case 2:
			digits, err := b.arg(n.Args[1])
			if err != nil {
				return exprs.Text{}, err
			}
			return exprs.Text{SQL: "round(" + x + ", " + digits + ")", Kind: exprs.OpCall}, nil
		}
	case exprs.FuncFloor:
		if len(n.Args) == 1 {
			return exprs.Text{SQL: "floor(" + x + ")", Kind: exprs.OpCall}, nil
		}
	case exprs.FuncCeiling:
		if len(n.Args) == 1 {
			return exprs.Text{SQL: "ceiling(" + x + ")", Kind: exprs.OpCall}, nil
		}
	case exprs.FuncAbs:
		if len(n.Args) == 1 {
			return exprs.Text{SQL: "abs(" + x + ")", Kind: exprs.OpCall}, nil
		}
	}
	return exprs.Text{}, unsupported(n)
}

func (b *baseCompiler) dateCall(n *exprs.Call) (exprs.Text, error) {
	switch n.Func {
	case exprs.FuncAddYears, exprs.FuncAddMonths, exprs.FuncAddDays,
		exprs.FuncAddHours, exprs.FuncAddMinutes, exprs.FuncAddSeconds:
		if len(n.Args) != 1 {
			return exprs.Text{}, unsupported(n)
		}
		x, err := b.object(n)
		if err != nil {
			return exprs.Text{}, err
		}
		count, err := b.arg(n.Args[0])
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.DateAddSQL(n.Func, x, count)
	case exprs.FuncDiffYears, exprs.FuncDiffMonths, exprs.FuncDiffDays,
		exprs.FuncDiffHours, exprs.FuncDiffMinutes, exprs.FuncDiffSeconds:
		// Instance form a.DiffDays(b) and static form DiffDays(a, b).
		var first, second exprs.Expr
		switch {
		case n.Object != nil && len(n.Args) == 1:
			first, second = n.Object, n.Args[0]
		case n.Object == nil && len(n.Args) == 2:
			first, second = n.Args[0], n.Args[1]
		default:
			return exprs.Text{}, unsupported(n)
		}
		a, err := b.arg(first)
		if err != nil {
			return exprs.Text{}, err
		}
		c, err := b.arg(second)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.DateDiffSQL(n.Func, a, c)
	}
	return exprs.Text{}, unsupported(n)
}

func (b *baseCompiler) aggregateCall(n *exprs.Call) (exprs.Text, error) {
	if n.Object != nil {
		return exprs.Text{}, unsupported(n)
	}
	if n.Func == exprs.FuncCount && len(n.Args) == 0 {
		return exprs.Text{SQL: "count(*)", Kind: exprs.OpCall}, nil
	}
	if len(n.Args) != 1 {
		return exprs.Text{}, unsupported(n)
	}
	x, err := b.arg(n.Args[0])
	if err != nil {
		return exprs.Text{}, err
	}
	var name string
	switch n.Func {
	case exprs.FuncCount:
		name = "count"
	case exprs.FuncSum:
		name = "sum"
	case exprs.FuncAvg:
		name = "avg"
	case exprs.FuncMin:
		name = "min"
	case exprs.FuncMax:
		name = "max"
	default:
		return exprs.Text{}, unsupported(n)
	}
	return exprs.Text{SQL: name + "(" + x + ")", Kind: exprs.OpCall}, nil
}

func (b *baseCompiler) convertCall(n *exprs.Call) (exprs.Text, error) {
	var operand exprs.Expr
	switch {
	case n.Object != nil && len(n.Args) == 0:
		operand = n.Object
	case n.Object == nil && len(n.Args) == 1:
		operand = n.Args[0]
	default:
		return exprs.Text{}, unsupported(n)
	}
	x, err := b.arg(operand)
	if err != nil {
		return exprs.Text{}, err
	}
	var typeName string
	switch n.Func {
	case exprs.FuncToString:
		typeName = b.hooks.TextTypeName()
	case exprs.FuncParseInt:
		typeName = b.hooks.IntTypeName()
	case exprs.FuncParseFloat:
		typeName = b.hooks.FloatTypeName()
	default:
		return exprs.Text{}, unsupported(n)
	}
	return exprs.Text{SQL: "cast(" + x + " as " + typeName + ")", Kind: exprs.OpConvert}, nil
}
