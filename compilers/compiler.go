// Package compilers turns expression trees and statement descriptions into
// dialect SQL. Each dialect compiler embeds baseCompiler, which implements
// the shared rendering rules, and supplies a dialectHooks value for the
// fragments that differ between engines. The outer field lets the base
// dispatch back through the dialect so overridden node methods win, the same
// virtual-dispatch shape the rest of the codebase uses for visitors.
package compilers

import (
	"strings"

	"github.com/bawdo/exprel/exprs"
)

// dialectHooks isolates the per-dialect SQL spellings. Every method is a pure
// string transform; parameter accumulation stays in the base.
type dialectHooks interface {
	QuoteName(name string) string
	ConcatSQL(left, right string) exprs.Text
	CaseInsensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text
	CaseSensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text
	XorSQL(left, right string) (exprs.Text, error)
	PowerSQL(left, right string) exprs.Text
	BoolCastSQL(pred string) exprs.Text
	ConditionalSQL(test, then, els string) exprs.Text
	InstrSQL(s, sub string) string
	// EndsWithSQL receives the suffix twice, rendered independently, because
	// the comparison mentions it in two positions and positional placeholder
	// styles must bind each occurrence.
	EndsWithSQL(s, suffixLen, suffixCmp string) exprs.Text
	DatePartSQL(kind exprs.MemberKind, x string) (exprs.Text, error)
	DateAddSQL(fn exprs.Func, x, n string) (exprs.Text, error)
	DateDiffSQL(fn exprs.Func, a, b string) (exprs.Text, error)
	RandomIntSQL(lo, hi string) exprs.Text
	TextTypeName() string
	IntTypeName() string
	FloatTypeName() string
	NoLimitToken() string
	AutoIncrementSQL() string
	TableExistsSQL(name string) string
	ViewExistsSQL(name string) string
}

// Option configures a dialect compiler at construction time.
type Option func(*baseCompiler)

// WithoutParams makes the compiler inline constants as escaped literals
// instead of extracting them as statement parameters.
func WithoutParams() Option {
	return func(b *baseCompiler) { b.params.parametric = false }
}

// WithCaseSensitive makes string comparisons case sensitive. The default is
// case insensitive, matching in-memory string semantics of the callers.
func WithCaseSensitive() Option {
	return func(b *baseCompiler) { b.caseSensitive = true }
}

type baseCompiler struct {
	outer         exprs.Compiler
	hooks         dialectHooks
	params        *Params
	caseSensitive bool
	rendered      map[exprs.Expr]bool // projection dedup, per statement
}

func newBase(outer exprs.Compiler, hooks dialectHooks, style placeholderStyle, escape func(string) string, opts ...Option) *baseCompiler {
	b := &baseCompiler{
		outer:    outer,
		hooks:    hooks,
		params:   newParams(true, style, escape),
		rendered: make(map[exprs.Expr]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// begin resets per-statement state before a top-level compile.
func (b *baseCompiler) begin() {
	b.params.Reset()
	b.rendered = make(map[exprs.Expr]bool)
}

func (b *baseCompiler) value(e exprs.Expr) (exprs.Text, error) {
	return e.AsValue(b.outer)
}

func (b *baseCompiler) predicate(e exprs.Expr) (exprs.Text, error) {
	return e.AsPredicate(b.outer)
}

// wrapChild parenthesizes a compiled child fragment when required under the
// given parent kind.
func wrapChild(parent exprs.Op, t exprs.Text, right bool) string {
	if exprs.NeedsParens(parent, t.Kind, right) {
		return "(" + t.SQL + ")"
	}
	return t.SQL
}

func (b *baseCompiler) operand(parent exprs.Op, e exprs.Expr, right bool) (string, error) {
	t, err := b.value(e)
	if err != nil {
		return "", err
	}
	return wrapChild(parent, t, right), nil
}

func (b *baseCompiler) predOperand(parent exprs.Op, e exprs.Expr, right bool) (string, error) {
	t, err := b.predicate(e)
	if err != nil {
		return "", err
	}
	return wrapChild(parent, t, right), nil
}

// arg renders an expression as a function argument: no precedence wrapping,
// only the mandatory subquery parentheses.
func (b *baseCompiler) arg(e exprs.Expr) (string, error) {
	t, err := b.value(e)
	if err != nil {
		return "", err
	}
	if t.Kind == exprs.OpSubquery {
		return "(" + t.SQL + ")", nil
	}
	return t.SQL, nil
}

// predicateFromValue applies the standard value-to-predicate conversion:
// compare the value against 1.
func predicateFromValue(t exprs.Text) exprs.Text {
	return exprs.Text{
		SQL:  wrapChild(exprs.OpEqual, t, false) + " = 1",
		Kind: exprs.OpEqual,
	}
}

// valueFromPredicate applies the standard predicate-to-value conversion via
// the dialect's boolean cast.
func (b *baseCompiler) valueFromPredicate(t exprs.Text) exprs.Text {
	return b.hooks.BoolCastSQL(t.SQL)
}

func constBool(e exprs.Expr) (val, ok bool) {
	c, isConst := e.(*exprs.Constant)
	if !isConst {
		return false, false
	}
	val, ok = c.Value.(bool)
	return val, ok
}

// stringType reports whether a column type tag names a string type.
func stringType(t string) bool {
	return t == "text" || t == "clob" || strings.Contains(t, "char")
}

// isString reports whether an expression statically yields a string. Used to
// pick concatenation for + and collation handling for comparisons.
func (b *baseCompiler) isString(e exprs.Expr) bool {
	switch n := e.(type) {
	case *exprs.Constant:
		_, ok := n.Value.(string)
		return ok
	case *exprs.Column:
		return stringType(n.Type)
	case *exprs.QuoteColumn:
		return stringType(n.Type)
	case *exprs.Binary:
		switch n.Op {
		case exprs.OpConcat:
			return true
		case exprs.OpAdd, exprs.OpCoalesce:
			return b.isString(n.Left) || b.isString(n.Right)
		}
	case *exprs.Unary:
		return n.Op == exprs.OpConvert && stringType(n.TypeName)
	case *exprs.Call:
		if n.Target == exprs.TargetString {
			switch n.Func {
			case exprs.FuncSubstring, exprs.FuncTrim, exprs.FuncToUpper,
				exprs.FuncToLower, exprs.FuncReplace:
				return true
			}
			return false
		}
		return n.Target == exprs.TargetConvert && n.Func == exprs.FuncToString
	}
	return false
}

var infixSymbol = map[exprs.Op]string{
	exprs.OpMultiply:   "*",
	exprs.OpDivide:     "/",
	exprs.OpModulo:     "%",
	exprs.OpAdd:        "+",
	exprs.OpSubtract:   "-",
	exprs.OpLeftShift:  "<<",
	exprs.OpRightShift: ">>",
	exprs.OpAnd:        "&",
	exprs.OpOr:         "|",
}

var compareSymbol = map[exprs.Op]string{
	exprs.OpEqual:     "=",
	exprs.OpNotEqual:  "!=",
	exprs.OpLess:      "<",
	exprs.OpLessEq:    "<=",
	exprs.OpGreater:   ">",
	exprs.OpGreaterEq: ">=",
}

// --- Constants ---

func (b *baseCompiler) ValueConstant(n *exprs.Constant) (exprs.Text, error) {
	if n.Value == nil {
		return exprs.Text{SQL: "null", Kind: exprs.OpNone}, nil
	}
	ph, err := b.params.Add(n.Value)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: ph, Kind: exprs.OpNone}, nil
}

func (b *baseCompiler) PredicateConstant(n *exprs.Constant) (exprs.Text, error) {
	if v, ok := n.Value.(bool); ok {
		if v {
			return exprs.Text{SQL: "1 = 1", Kind: exprs.OpEqual}, nil
		}
		return exprs.Text{SQL: "1 = 0", Kind: exprs.OpEqual}, nil
	}
	t, err := b.outer.ValueConstant(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// --- Columns ---

func (b *baseCompiler) ValueColumn(n *exprs.Column) (exprs.Text, error) {
	if n.Source == "" {
		return exprs.Text{SQL: n.Name, Kind: exprs.OpNone}, nil
	}
	return exprs.Text{SQL: n.Source + "." + n.Name, Kind: exprs.OpNone}, nil
}

func (b *baseCompiler) PredicateColumn(n *exprs.Column) (exprs.Text, error) {
	t, err := b.outer.ValueColumn(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

func (b *baseCompiler) ValueQuoteColumn(n *exprs.QuoteColumn) (exprs.Text, error) {
	if n.Source == "" {
		return exprs.Text{SQL: n.Name, Kind: exprs.OpNone}, nil
	}
	return exprs.Text{SQL: n.Source + "." + n.Name, Kind: exprs.OpNone}, nil
}

func (b *baseCompiler) PredicateQuoteColumn(n *exprs.QuoteColumn) (exprs.Text, error) {
	t, err := b.outer.ValueQuoteColumn(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// --- Binary ---

func (b *baseCompiler) ValueBinary(n *exprs.Binary) (exprs.Text, error) {
	switch n.Op {
	case exprs.OpEqual, exprs.OpNotEqual, exprs.OpLess, exprs.OpLessEq,
		exprs.OpGreater, exprs.OpGreaterEq, exprs.OpLike, exprs.OpNotLike,
		exprs.OpIn, exprs.OpNotIn, exprs.OpAndAlso, exprs.OpOrElse:
		t, err := b.outer.PredicateBinary(n)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.valueFromPredicate(t), nil
	case exprs.OpCoalesce:
		l, err := b.operand(exprs.OpCoalesce, n.Left, false)
		if err != nil {
			return exprs.Text{}, err
		}
		r, err := b.operand(exprs.OpCoalesce, n.Right, true)
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: "coalesce(" + l + ", " + r + ")", Kind: exprs.OpCoalesce}, nil
	case exprs.OpPower:
		l, err := b.operand(exprs.OpPower, n.Left, false)
		if err != nil {
			return exprs.Text{}, err
		}
		r, err := b.operand(exprs.OpPower, n.Right, true)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.PowerSQL(l, r), nil
	case exprs.OpXor:
		l, err := b.operand(exprs.OpXor, n.Left, false)
		if err != nil {
			return exprs.Text{}, err
		}
		r, err := b.operand(exprs.OpXor, n.Right, true)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.hooks.XorSQL(l, r)
	case exprs.OpConcat:
		return b.concat(n)
	case exprs.OpAdd:
		// + over strings means concatenation.
		if b.isString(n.Left) || b.isString(n.Right) {
			return b.concat(n)
		}
	}
	sym, ok := infixSymbol[n.Op]
	if !ok {
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Binary", Member: n.Op.String()}
	}
	l, err := b.operand(n.Op, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	r, err := b.operand(n.Op, n.Right, true)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: l + " " + sym + " " + r, Kind: n.Op}, nil
}

func (b *baseCompiler) concat(n *exprs.Binary) (exprs.Text, error) {
	l, err := b.operand(exprs.OpConcat, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	r, err := b.operand(exprs.OpConcat, n.Right, true)
	if err != nil {
		return exprs.Text{}, err
	}
	return b.hooks.ConcatSQL(l, r), nil
}

func (b *baseCompiler) PredicateBinary(n *exprs.Binary) (exprs.Text, error) {
	switch n.Op {
	case exprs.OpEqual, exprs.OpNotEqual:
		return b.equality(n)
	case exprs.OpLess, exprs.OpLessEq, exprs.OpGreater, exprs.OpGreaterEq:
		return b.comparison(n, compareSymbol[n.Op])
	case exprs.OpLike:
		return b.likePredicate(n, "like")
	case exprs.OpNotLike:
		return b.likePredicate(n, "not like")
	case exprs.OpIn:
		return b.inPredicate(n, false)
	case exprs.OpNotIn:
		return b.inPredicate(n, true)
	case exprs.OpAndAlso:
		return b.logical(n, "and")
	case exprs.OpOrElse:
		return b.logical(n, "or")
	}
	t, err := b.outer.ValueBinary(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// equality handles = and != including the null-literal rewrites: comparison
// against a null literal becomes is null / is not null, and null against
// null folds to a constant truth value (SQL three-valued logic would
// otherwise make null = null unknown, which callers never mean).
func (b *baseCompiler) equality(n *exprs.Binary) (exprs.Text, error) {
	leftNull := exprs.IsNullConstant(n.Left)
	rightNull := exprs.IsNullConstant(n.Right)
	switch {
	case leftNull && rightNull:
		if n.Op == exprs.OpEqual {
			return exprs.Text{SQL: "1 = 1", Kind: exprs.OpEqual}, nil
		}
		return exprs.Text{SQL: "1 = 0", Kind: exprs.OpEqual}, nil
	case leftNull || rightNull:
		side := n.Left
		if leftNull {
			side = n.Right
		}
		s, err := b.operand(exprs.OpIs, side, false)
		if err != nil {
			return exprs.Text{}, err
		}
		if n.Op == exprs.OpEqual {
			return exprs.Text{SQL: s + " is null", Kind: exprs.OpIs}, nil
		}
		return exprs.Text{SQL: s + " is not null", Kind: exprs.OpIs}, nil
	}
	return b.comparison(n, compareSymbol[n.Op])
}

func (b *baseCompiler) comparison(n *exprs.Binary, sym string) (exprs.Text, error) {
	l, err := b.operand(n.Op, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	r, err := b.operand(n.Op, n.Right, true)
	if err != nil {
		return exprs.Text{}, err
	}
	if b.isString(n.Left) && b.isString(n.Right) {
		if b.caseSensitive {
			return b.hooks.CaseSensitiveCompare(l, sym, r, n.Op), nil
		}
		return b.hooks.CaseInsensitiveCompare(l, sym, r, n.Op), nil
	}
	return exprs.Text{SQL: l + " " + sym + " " + r, Kind: n.Op}, nil
}

func (b *baseCompiler) likePredicate(n *exprs.Binary, keyword string) (exprs.Text, error) {
	l, err := b.operand(n.Op, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	r, err := b.operand(n.Op, n.Right, true)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: l + " " + keyword + " " + r, Kind: n.Op}, nil
}

func (b *baseCompiler) logical(n *exprs.Binary, keyword string) (exprs.Text, error) {
	l, err := b.predOperand(n.Op, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	r, err := b.predOperand(n.Op, n.Right, true)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: l + " " + keyword + " " + r, Kind: n.Op}, nil
}

// --- Unary ---

func (b *baseCompiler) ValueUnary(n *exprs.Unary) (exprs.Text, error) {
	switch n.Op {
	case exprs.OpNegate:
		s, err := b.operand(exprs.OpNegate, n.Operand, false)
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: "-" + s, Kind: exprs.OpNegate}, nil
	case exprs.OpNot:
		t, err := b.outer.PredicateUnary(n)
		if err != nil {
			return exprs.Text{}, err
		}
		return b.valueFromPredicate(t), nil
	case exprs.OpConvert:
		s, err := b.arg(n.Operand)
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: "cast(" + s + " as " + n.TypeName + ")", Kind: exprs.OpConvert}, nil
	}
	return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Unary", Member: n.Op.String()}
}

func (b *baseCompiler) PredicateUnary(n *exprs.Unary) (exprs.Text, error) {
	if n.Op == exprs.OpNot {
		s, err := b.predOperand(exprs.OpNot, n.Operand, false)
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: "not " + s, Kind: exprs.OpNot}, nil
	}
	t, err := b.outer.ValueUnary(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// --- Conditional ---

func (b *baseCompiler) ValueConditional(n *exprs.Conditional) (exprs.Text, error) {
	test, err := b.predicate(n.Test)
	if err != nil {
		return exprs.Text{}, err
	}
	then, err := b.arg(n.Then)
	if err != nil {
		return exprs.Text{}, err
	}
	els, err := b.arg(n.Else)
	if err != nil {
		return exprs.Text{}, err
	}
	return b.hooks.ConditionalSQL(test.SQL, then, els), nil
}

// PredicateConditional collapses constant-bool branches: a conditional whose
// branches are both bool literals is just the test predicate (or its
// negation, or a constant truth value). Everything else falls back to the
// value form compared against 1.
func (b *baseCompiler) PredicateConditional(n *exprs.Conditional) (exprs.Text, error) {
	thenVal, thenOK := constBool(n.Then)
	elseVal, elseOK := constBool(n.Else)
	if thenOK && elseOK {
		switch {
		case thenVal && elseVal:
			return exprs.Text{SQL: "1 = 1", Kind: exprs.OpEqual}, nil
		case !thenVal && !elseVal:
			return exprs.Text{SQL: "1 = 0", Kind: exprs.OpEqual}, nil
		case thenVal:
			return b.predicate(n.Test)
		default:
			return b.negated(n.Test)
		}
	}
	t, err := b.outer.ValueConditional(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

func (b *baseCompiler) negated(e exprs.Expr) (exprs.Text, error) {
	s, err := b.predOperand(exprs.OpNot, e, false)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: "not " + s, Kind: exprs.OpNot}, nil
}

// --- Member ---

func (b *baseCompiler) ValueMember(n *exprs.Member) (exprs.Text, error) {
	x, err := b.arg(n.Object)
	if err != nil {
		return exprs.Text{}, err
	}
	if n.Kind == exprs.MemberLength {
		return exprs.Text{SQL: "length(" + x + ")", Kind: exprs.OpCall}, nil
	}
	return b.hooks.DatePartSQL(n.Kind, x)
}

func (b *baseCompiler) PredicateMember(n *exprs.Member) (exprs.Text, error) {
	t, err := b.outer.ValueMember(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// --- Subquery ---

func (b *baseCompiler) ValueSubquery(n *exprs.Subquery) (exprs.Text, error) {
	sql, err := b.selectSQL(n.Select)
	if err != nil {
		return exprs.Text{}, err
	}
	return exprs.Text{SQL: sql, Kind: exprs.OpSubquery}, nil
}

func (b *baseCompiler) PredicateSubquery(n *exprs.Subquery) (exprs.Text, error) {
	t, err := b.outer.ValueSubquery(n)
	if err != nil {
		return exprs.Text{}, err
	}
	return predicateFromValue(t), nil
}

// --- Switch ---

func (b *baseCompiler) ValueSwitch(n *exprs.Switch) (exprs.Text, error) {
	if len(n.Cases) == 0 {
		return exprs.Text{}, &exprs.InvalidShapeError{Reason: "switch without cases"}
	}
	var sb strings.Builder
	sb.WriteString("case")
	for _, c := range n.Cases {
		match, err := b.caseMatch(n.On, c)
		if err != nil {
			return exprs.Text{}, err
		}
		body, err := b.arg(c.Body)
		if err != nil {
			return exprs.Text{}, err
		}
		sb.WriteString(" when ")
		sb.WriteString(match.SQL)
		sb.WriteString(" then ")
		sb.WriteString(body)
	}
	if n.Default != nil {
		body, err := b.arg(n.Default)
		if err != nil {
			return exprs.Text{}, err
		}
		sb.WriteString(" else ")
		sb.WriteString(body)
	}
	sb.WriteString(" end")
	return exprs.Text{SQL: sb.String(), Kind: exprs.OpCall}, nil
}

// caseMatch renders the when-condition of one switch case: the scrutinee
// compared against each test value, OR-joined.
func (b *baseCompiler) caseMatch(on exprs.Expr, c exprs.SwitchCase) (exprs.Text, error) {
	if len(c.Tests) == 0 {
		return exprs.Text{}, &exprs.InvalidShapeError{Reason: "switch case without test values"}
	}
	matches := make([]exprs.Text, 0, len(c.Tests))
	for _, test := range c.Tests {
		t, err := b.predicate(exprs.NewBinary(on, test, exprs.OpEqual))
		if err != nil {
			return exprs.Text{}, err
		}
		matches = append(matches, t)
	}
	return orJoin(matches), nil
}

// orJoin disjoins predicate fragments. A single fragment keeps its own kind:
// re-tagging a multi-test match would hide its "or" from NeedsParens.
func orJoin(matches []exprs.Text) exprs.Text {
	if len(matches) == 1 {
		return matches[0]
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = wrapChild(exprs.OpOrElse, m, i > 0)
	}
	return exprs.Text{SQL: strings.Join(parts, " or "), Kind: exprs.OpOrElse}
}

// PredicateSwitch collapses a switch whose bodies are all bool literals into
// pure predicate logic; mixed bodies fall back to the value form.
func (b *baseCompiler) PredicateSwitch(n *exprs.Switch) (exprs.Text, error) {
	type branch struct {
		c   exprs.SwitchCase
		val bool
	}
	branches := make([]branch, 0, len(n.Cases))
	allBool := true
	for _, c := range n.Cases {
		v, ok := constBool(c.Body)
		if !ok {
			allBool = false
			break
		}
		branches = append(branches, branch{c: c, val: v})
	}
	defaultVal := false
	if allBool && n.Default != nil {
		v, ok := constBool(n.Default)
		if !ok {
			allBool = false
		}
		defaultVal = v
	}
	if !allBool {
		t, err := b.outer.ValueSwitch(n)
		if err != nil {
			return exprs.Text{}, err
		}
		return predicateFromValue(t), nil
	}
	if defaultVal {
		// Default is true: the switch is false only where a false branch
		// matches, so negate the disjunction of false-branch matches.
		var matches []exprs.Text
		for _, br := range branches {
			if br.val {
				continue
			}
			match, err := b.caseMatch(n.On, br.c)
			if err != nil {
				return exprs.Text{}, err
			}
			matches = append(matches, match)
		}
		if len(matches) == 0 {
			return exprs.Text{SQL: "1 = 1", Kind: exprs.OpEqual}, nil
		}
		joined := orJoin(matches)
		return exprs.Text{
			SQL:  "not " + wrapChild(exprs.OpNot, joined, false),
			Kind: exprs.OpNot,
		}, nil
	}
	var matches []exprs.Text
	for _, br := range branches {
		if !br.val {
			continue
		}
		match, err := b.caseMatch(n.On, br.c)
		if err != nil {
			return exprs.Text{}, err
		}
		matches = append(matches, match)
	}
	if len(matches) == 0 {
		return exprs.Text{SQL: "1 = 0", Kind: exprs.OpEqual}, nil
	}
	return orJoin(matches), nil
}
