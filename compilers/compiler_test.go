package compilers

import (
	"errors"
	"testing"

	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/internal/testutil"
)

// Each test builds a fresh compiler so parameter numbering starts at P0.

func sqlite(opts ...Option) *SQLiteCompiler { return NewSQLiteCompiler(opts...) }

// --- Constants and columns ---

func TestValueConstantParameterised(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.NewConstant(18), "@P0")
}

func TestValueConstantInline(t *testing.T) {
	t.Parallel()
	c := sqlite(WithoutParams())
	testutil.AssertValueSQL(t, c, exprs.NewConstant("O'Brien"), "'O''Brien'")
	testutil.AssertValueSQL(t, c, exprs.NewConstant(3.5), "3.5")
}

func TestValueConstantNull(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.NewConstant(nil), "null")
}

func TestPredicateConstantBool(t *testing.T) {
	t.Parallel()
	testutil.AssertPredicateSQL(t, sqlite(), exprs.NewConstant(true), "1 = 1")
	testutil.AssertPredicateSQL(t, sqlite(), exprs.NewConstant(false), "1 = 0")
}

func TestValueColumn(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.Col("T0", "age"), "T0.age")
	testutil.AssertValueSQL(t, sqlite(), exprs.Col("", "age"), "age")
}

func TestPredicateColumnComparesAgainstOne(t *testing.T) {
	t.Parallel()
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "active"), "T0.active = 1")
}

func TestQuoteColumnRendersAlias(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.Quote("T1", "C0"), "T1.C0")
}

// --- Comparisons and null rewrites ---

func TestComparisonOperators(t *testing.T) {
	t.Parallel()
	col := exprs.Col("T0", "age")
	testutil.AssertPredicateSQL(t, sqlite(), col.Gt(18), "T0.age > @P0")
	testutil.AssertPredicateSQL(t, sqlite(), col.LtEq(18), "T0.age <= @P0")
	testutil.AssertPredicateSQL(t, sqlite(), col.NotEq(18), "T0.age != @P0")
}

func TestNullComparisonRewrites(t *testing.T) {
	t.Parallel()
	name := exprs.Col("T0", "name")
	testutil.AssertPredicateSQL(t, sqlite(), name.Eq(nil), "T0.name is null")
	testutil.AssertPredicateSQL(t, sqlite(), name.NotEq(nil), "T0.name is not null")

	null := exprs.NewConstant(nil)
	testutil.AssertPredicateSQL(t, sqlite(),
		exprs.NewBinary(null, exprs.NewConstant(nil), exprs.OpEqual), "1 = 1")
	testutil.AssertPredicateSQL(t, sqlite(),
		exprs.NewBinary(null, exprs.NewConstant(nil), exprs.OpNotEqual), "1 = 0")
}

func TestStringEqualityCollation(t *testing.T) {
	t.Parallel()
	name := exprs.Col("T0", "name").Typed("text")
	testutil.AssertPredicateSQL(t, sqlite(), name.Eq("bob"),
		"T0.name = @P0 collate nocase")
	testutil.AssertPredicateSQL(t, sqlite(WithCaseSensitive()), name.Eq("bob"),
		"T0.name = @P0")
}

func TestNonStringEqualityHasNoCollation(t *testing.T) {
	t.Parallel()
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "age").Eq(3), "T0.age = @P0")
}

// --- Logic ---

func TestLogicalOperators(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a").Eq(1)
	b := exprs.Col("T0", "b").Eq(2)
	testutil.AssertPredicateSQL(t, sqlite(), a.And(b), "T0.a = @P0 and T0.b = @P1")
	testutil.AssertPredicateSQL(t, sqlite(), a.Or(b), "T0.a = @P0 or T0.b = @P1")
}

func TestOrUnderAndIsParenthesized(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a").Eq(1)
	b := exprs.Col("T0", "b").Eq(2)
	c := exprs.Col("T0", "c").Eq(3)
	testutil.AssertPredicateSQL(t, sqlite(), a.And(b.Or(c)),
		"T0.a = @P0 and (T0.b = @P1 or T0.c = @P2)")
	testutil.AssertPredicateSQL(t, sqlite(), a.Or(b).And(c),
		"(T0.a = @P0 or T0.b = @P1) and T0.c = @P2")
}

func TestNotWrapsComposite(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a").Eq(1)
	b := exprs.Col("T0", "b").Eq(2)
	testutil.AssertPredicateSQL(t, sqlite(), a.Or(b).Not(),
		"not (T0.a = @P0 or T0.b = @P1)")
}

// --- Arithmetic and precedence ---

func TestArithmeticPrecedence(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a")
	b := exprs.Col("T0", "b")
	c := exprs.Col("T0", "c")
	testutil.AssertValueSQL(t, sqlite(), a.Plus(b.Times(c)), "T0.a + T0.b * T0.c")
	testutil.AssertValueSQL(t, sqlite(), a.Plus(b).Times(c), "(T0.a + T0.b) * T0.c")
	testutil.AssertValueSQL(t, sqlite(), a.Minus(b.Minus(c)), "T0.a - (T0.b - T0.c)")
	testutil.AssertValueSQL(t, sqlite(), a.Minus(b).Minus(c), "T0.a - T0.b - T0.c")
}

func TestNegateAndBitwise(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a")
	testutil.AssertValueSQL(t, sqlite(), a.Negate(), "-T0.a")
	testutil.AssertValueSQL(t, sqlite(), a.Plus(1).Negate(), "-(T0.a + @P0)")
	testutil.AssertValueSQL(t, sqlite(), a.BitAnd(7), "T0.a & @P0")
	testutil.AssertValueSQL(t, sqlite(), a.ShiftLeft(2), "T0.a << @P0")
}

func TestXorIsDialectRestricted(t *testing.T) {
	t.Parallel()
	_, err := exprs.Col("T0", "a").BitXor(1).AsValue(sqlite())
	var dr *exprs.DialectRestrictionError
	if !errors.As(err, &dr) {
		t.Fatalf("expected a dialect restriction, got %v", err)
	}
}

func TestCoalesceAndPower(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a")
	b := exprs.Col("T0", "b")
	testutil.AssertValueSQL(t, sqlite(), a.Coalesce(b), "coalesce(T0.a, T0.b)")
	testutil.AssertValueSQL(t, sqlite(), a.Coalesce(b.Plus(1)), "coalesce(T0.a, T0.b + @P0)")
	testutil.AssertValueSQL(t, sqlite(), a.Pow(2), "pow(T0.a, @P0)")
}

func TestStringConcat(t *testing.T) {
	t.Parallel()
	name := exprs.Col("T0", "name").Typed("text")
	testutil.AssertValueSQL(t, sqlite(), name.Concat("!"), "T0.name || @P0")
	// + over strings means concatenation.
	testutil.AssertValueSQL(t, sqlite(), name.Plus("!"), "T0.name || @P0")
	// + over numbers stays arithmetic.
	testutil.AssertValueSQL(t, sqlite(), exprs.Col("T0", "a").Plus(1), "T0.a + @P0")
}

// --- Dual-form conversions ---

func TestValueOfPredicateIsBoolCast(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.Col("T0", "a").Gt(1),
		"cast(T0.a > @P0 as boolean)")
}

func TestPredicateOfValueComparesAgainstOne(t *testing.T) {
	t.Parallel()
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "a").Plus(1),
		"T0.a + @P0 = 1")
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "a").Length(),
		"length(T0.a) = 1")
}

// --- Conditional ---

func TestConditionalValue(t *testing.T) {
	t.Parallel()
	n := exprs.NewConditional(exprs.Col("T0", "a").Gt(1),
		exprs.NewConstant(10), exprs.NewConstant(20))
	testutil.AssertValueSQL(t, sqlite(), n, "iif(T0.a > @P0, @P1, @P2)")
}

func TestConditionalPredicateCollapse(t *testing.T) {
	t.Parallel()
	test := exprs.Col("T0", "a").Gt(1)
	cases := []struct {
		name      string
		then, els bool
		expected  string
	}{
		{"both true", true, true, "1 = 1"},
		{"both false", false, false, "1 = 0"},
		{"test itself", true, false, "T0.a > @P0"},
		{"negated test", false, true, "not (T0.a > @P0)"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := exprs.NewConditional(test,
				exprs.NewConstant(tc.then), exprs.NewConstant(tc.els))
			testutil.AssertPredicateSQL(t, sqlite(), n, tc.expected)
		})
	}
}

func TestConditionalPredicateFallsBackToValueForm(t *testing.T) {
	t.Parallel()
	n := exprs.NewConditional(exprs.Col("T0", "a").Gt(1),
		exprs.NewConstant(true), exprs.Col("T0", "b"))
	testutil.AssertPredicateSQL(t, sqlite(), n,
		"iif(T0.a > @P0, @P1, T0.b) = 1")
}

// --- Member access ---

func TestMemberLength(t *testing.T) {
	t.Parallel()
	testutil.AssertValueSQL(t, sqlite(), exprs.Col("T0", "name").Length(),
		"length(T0.name)")
}

func TestMemberDateParts(t *testing.T) {
	t.Parallel()
	d := exprs.Col("T0", "created")
	testutil.AssertValueSQL(t, sqlite(), d.DatePart(exprs.MemberYear),
		"cast(strftime('%Y', T0.created) as integer)")
	testutil.AssertValueSQL(t, sqlite(), d.DatePart(exprs.MemberDayOfWeek),
		"cast(strftime('%w', T0.created) as integer)")
	testutil.AssertValueSQL(t, sqlite(), d.DatePart(exprs.MemberDate),
		"date(T0.created)")
}

// --- Cast ---

func TestConvert(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a")
	testutil.AssertValueSQL(t, sqlite(), a.CastAs("text"), "cast(T0.a as text)")
	testutil.AssertValueSQL(t, sqlite(), a.Plus(1).CastAs("real"),
		"cast(T0.a + @P0 as real)")
}

// --- In ---

func TestInEnumerable(t *testing.T) {
	t.Parallel()
	id := exprs.Col("T0", "id")
	testutil.AssertPredicateSQL(t, sqlite(), id.In(1, 2, 3),
		"T0.id in (@P0, @P1, @P2)")
	testutil.AssertPredicateSQL(t, sqlite(), id.NotIn(1, 2),
		"T0.id not in (@P0, @P1)")
}

func TestInEmptyEnumerableFolds(t *testing.T) {
	t.Parallel()
	id := exprs.Col("T0", "id")
	testutil.AssertPredicateSQL(t, sqlite(), id.In(), "1 = 0")
	testutil.AssertPredicateSQL(t, sqlite(), id.NotIn(), "1 = 1")
}

func TestInSubquery(t *testing.T) {
	t.Parallel()
	sel := &exprs.Selection{
		From:  exprs.Table("orders", "T1"),
		Shape: exprs.Col("T1", "user_id"),
	}
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "id").InSelect(sel),
		`T0.id in (SELECT T1.user_id FROM "orders" AS T1)`)
}

func TestInSubqueryMustBeSingleColumn(t *testing.T) {
	t.Parallel()
	sel := &exprs.Selection{
		From: exprs.Table("orders", "T1"),
		Shape: &exprs.CollectionShape{
			Items: []exprs.Expr{exprs.Col("T1", "a"), exprs.Col("T1", "b")},
		},
	}
	_, err := exprs.Col("T0", "id").InSelect(sel).AsPredicate(sqlite())
	var shape *exprs.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected an invalid shape error, got %v", err)
	}
}

func TestInRejectsOtherRightSides(t *testing.T) {
	t.Parallel()
	bad := exprs.NewBinary(exprs.Col("T0", "id"), exprs.Col("T0", "other"), exprs.OpIn)
	_, err := bad.AsPredicate(sqlite())
	testutil.AssertError(t, err)
}

// --- Subquery as scalar ---

func TestSubqueryValueAndPredicate(t *testing.T) {
	t.Parallel()
	sel := &exprs.Selection{
		From:  exprs.Table("orders", "T1"),
		Shape: exprs.Count(exprs.Col("T1", "id")),
	}
	sub := exprs.NewSubquery(sel)
	testutil.AssertValueSQL(t, sqlite(), sub,
		`SELECT count(T1.id) AS C0 FROM "orders" AS T1`)
	// As an operand the subquery is always parenthesized.
	testutil.AssertPredicateSQL(t, sqlite(), exprs.NewBinary(
		sub, exprs.NewConstant(0), exprs.OpGreater),
		`(SELECT count(T1.id) AS C0 FROM "orders" AS T1) > @P0`)
}

// --- Switch ---

func TestSwitchValue(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	n := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(1)}, Body: exprs.NewConstant("new")},
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(2), exprs.NewConstant(3)}, Body: exprs.NewConstant("open")},
	).Else(exprs.NewConstant("done"))
	testutil.AssertValueSQL(t, sqlite(), n,
		"case when T0.status = @P0 then @P1"+
			" when T0.status = @P2 or T0.status = @P3 then @P4"+
			" else @P5 end")
}

func TestSwitchPredicateCollapseTrueBranches(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	n := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(1)}, Body: exprs.NewConstant(true)},
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(2)}, Body: exprs.NewConstant(false)},
	)
	testutil.AssertPredicateSQL(t, sqlite(), n, "T0.status = @P0")
}

func TestSwitchPredicateDefaultTrueNegatesFalseTests(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	n := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(9)}, Body: exprs.NewConstant(false)},
	).Else(exprs.NewConstant(true))
	testutil.AssertPredicateSQL(t, sqlite(), n, "not (T0.status = @P0)")
}

// A collapsed multi-test match is a disjunction and must stay parenthesized
// when it lands under a conjunction.
func TestSwitchPredicateMultiTestCollapseUnderAnd(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	open := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(1), exprs.NewConstant(2)}, Body: exprs.NewConstant(true)},
	)
	testutil.AssertPredicateSQL(t, sqlite(), exprs.Col("T0", "flag").Eq(1).And(open),
		"T0.flag = @P0 and (T0.status = @P0 or T0.status = @P1)")
}

func TestSwitchPredicateDefaultTrueNegatesMultiTestMatch(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	n := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(8), exprs.NewConstant(9)}, Body: exprs.NewConstant(false)},
	).Else(exprs.NewConstant(true))
	testutil.AssertPredicateSQL(t, sqlite(), n,
		"not (T0.status = @P0 or T0.status = @P1)")
}

func TestSwitchValueWithoutCasesIsInvalid(t *testing.T) {
	t.Parallel()
	_, err := exprs.NewSwitch(exprs.Col("T0", "status")).
		Else(exprs.NewConstant("done")).AsValue(sqlite())
	var is *exprs.InvalidShapeError
	if !errors.As(err, &is) {
		t.Fatalf("expected an invalid shape error, got %v", err)
	}
}

func TestSwitchPredicateAllConstantFolds(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	none := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(1)}, Body: exprs.NewConstant(false)},
	)
	testutil.AssertPredicateSQL(t, sqlite(), none, "1 = 0")

	all := exprs.NewSwitch(status).Else(exprs.NewConstant(true))
	testutil.AssertPredicateSQL(t, sqlite(), all, "1 = 1")
}

func TestSwitchPredicateMixedBodiesFallBack(t *testing.T) {
	t.Parallel()
	status := exprs.Col("T0", "status")
	n := exprs.NewSwitch(status,
		exprs.SwitchCase{Tests: []exprs.Expr{exprs.NewConstant(1)}, Body: exprs.Col("T0", "flag")},
	).Else(exprs.NewConstant(false))
	testutil.AssertPredicateSQL(t, sqlite(), n,
		"case when T0.status = @P0 then T0.flag else @P1 end = 1")
}

// --- Parameter sharing across one compilation ---

func TestEqualValuesShareOneParameter(t *testing.T) {
	t.Parallel()
	c := sqlite()
	a := exprs.Col("T0", "a").Eq(7)
	b := exprs.Col("T0", "b").Eq(7)
	got, err := a.And(b).AsPredicate(c)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.SQL, "T0.a = @P0 and T0.b = @P0")
}
