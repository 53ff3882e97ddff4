package compilers

import (
	"testing"

	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/internal/testutil"
)

// Cross-dialect behavior of the constructs whose SQL spelling differs per
// engine. Shared rendering rules are covered by the SQLite tests.

func TestMySQLPositionalParams(t *testing.T) {
	t.Parallel()
	c := NewMySQLCompiler()
	a := exprs.Col("T0", "a").Eq(7)
	b := exprs.Col("T0", "b").Eq(7)
	got, err := a.And(b).AsPredicate(c)
	testutil.AssertNoError(t, err)
	// Positional placeholders cannot be shared even for equal values.
	testutil.AssertEqual(t, got.SQL, "T0.a = ? and T0.b = ?")
	if len(c.params.List()) != 2 {
		t.Fatalf("expected 2 params, got %v", c.params.List())
	}
}

func TestPostgresDollarParamsDedup(t *testing.T) {
	t.Parallel()
	c := NewPostgresCompiler()
	a := exprs.Col("T0", "a").Eq(7)
	b := exprs.Col("T0", "b").Eq(7)
	got, err := a.And(b).AsPredicate(c)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.SQL, "T0.a = $1 and T0.b = $1")
	if len(c.params.List()) != 1 {
		t.Fatalf("expected 1 param, got %v", c.params.List())
	}
}

func TestConcatPerDialect(t *testing.T) {
	t.Parallel()
	n := exprs.Col("T0", "name").Typed("text").Concat("!")
	testutil.AssertValueSQL(t, NewMySQLCompiler(), n, "concat(T0.name, ?)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), n, "T0.name || $1")
}

func TestStringCompareCollationPerDialect(t *testing.T) {
	t.Parallel()
	eq := exprs.Col("T0", "name").Typed("text").Eq("bob")

	// MySQL collates case-insensitively by default; case-sensitive mode
	// inserts the binary operator.
	testutil.AssertPredicateSQL(t, NewMySQLCompiler(), eq, "T0.name = ?")
	testutil.AssertPredicateSQL(t, NewMySQLCompiler(WithCaseSensitive()), eq,
		"T0.name = binary ?")

	// Postgres lower-folds both operands unless case sensitive.
	testutil.AssertPredicateSQL(t, NewPostgresCompiler(), eq,
		"lower(T0.name) = lower($1)")
	testutil.AssertPredicateSQL(t, NewPostgresCompiler(WithCaseSensitive()), eq,
		"T0.name = $1")
}

func TestXorPerDialect(t *testing.T) {
	t.Parallel()
	n := exprs.Col("T0", "a").BitXor(exprs.Col("T0", "b"))
	testutil.AssertValueSQL(t, NewMySQLCompiler(), n, "T0.a ^ T0.b")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), n, "T0.a # T0.b")
}

func TestBoolCastPerDialect(t *testing.T) {
	t.Parallel()
	n := exprs.Col("T0", "a").Gt(1)
	testutil.AssertValueSQL(t, NewMySQLCompiler(), n, "if(T0.a > ?, 1, 0)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), n,
		"cast(T0.a > $1 as boolean)")
}

func TestConditionalPerDialect(t *testing.T) {
	t.Parallel()
	n := exprs.NewConditional(exprs.Col("T0", "a").Gt(1),
		exprs.NewConstant(10), exprs.NewConstant(20))
	testutil.AssertValueSQL(t, NewMySQLCompiler(), n, "if(T0.a > ?, ?, ?)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), n,
		"case when T0.a > $1 then $2 else $3 end")
}

func TestSearchPredicatesPerDialect(t *testing.T) {
	t.Parallel()
	name := exprs.Col("T0", "name")
	testutil.AssertPredicateSQL(t, NewMySQLCompiler(), name.Contains("A"),
		"instr(T0.name, ?) > 0")
	testutil.AssertPredicateSQL(t, NewPostgresCompiler(), name.Contains("A"),
		"strpos(T0.name, $1) > 0")
	// Both suffix occurrences must bind positionally on MySQL.
	my := NewMySQLCompiler()
	testutil.AssertPredicateSQL(t, my, name.EndsWith("A"),
		"right(T0.name, length(?)) = ?")
	if len(my.params.List()) != 2 {
		t.Fatalf("expected 2 params, got %v", my.params.List())
	}
	testutil.AssertPredicateSQL(t, NewPostgresCompiler(), name.EndsWith("A"),
		"right(T0.name, length($1)) = $1")
}

func TestDatePartPerDialect(t *testing.T) {
	t.Parallel()
	d := exprs.Col("T0", "created")
	testutil.AssertValueSQL(t, NewMySQLCompiler(),
		d.DatePart(exprs.MemberYear), "year(T0.created)")
	testutil.AssertValueSQL(t, NewMySQLCompiler(),
		d.DatePart(exprs.MemberDayOfWeek), "dayofweek(T0.created) - 1")
	testutil.AssertValueSQL(t, NewPostgresCompiler(),
		d.DatePart(exprs.MemberYear),
		"cast(extract(year from T0.created) as integer)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(),
		d.DatePart(exprs.MemberDate), "cast(T0.created as date)")
}

func TestDateAddPerDialect(t *testing.T) {
	t.Parallel()
	d := exprs.Col("T0", "created")
	add := exprs.NewCall(exprs.TargetDate, exprs.FuncAddDays, d, exprs.NewConstant(7))
	testutil.AssertValueSQL(t, NewMySQLCompiler(WithoutParams()), add,
		"date_add(T0.created, interval (7) day)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(WithoutParams()), add,
		"T0.created + (7) * interval '1 day'")
}

func TestDateDiffPerDialect(t *testing.T) {
	t.Parallel()
	a := exprs.Col("T0", "a")
	b := exprs.Col("T0", "b")
	diff := exprs.NewCall(exprs.TargetDate, exprs.FuncDiffDays, a, b)
	testutil.AssertValueSQL(t, NewMySQLCompiler(), diff,
		"timestampdiff(day, T0.b, T0.a)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), diff,
		"cast(trunc(extract(epoch from (T0.a) - (T0.b)) / 86400) as integer)")

	years := exprs.NewCall(exprs.TargetDate, exprs.FuncDiffYears, a, b)
	testutil.AssertValueSQL(t, NewPostgresCompiler(), years,
		"cast(extract(year from age(T0.a, T0.b)) as integer)")
}

func TestConvertTypeNamesPerDialect(t *testing.T) {
	t.Parallel()
	x := exprs.Col("T0", "x")
	toStr := exprs.NewCall(exprs.TargetConvert, exprs.FuncToString, x)
	testutil.AssertValueSQL(t, NewMySQLCompiler(), toStr, "cast(T0.x as char)")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), toStr, "cast(T0.x as text)")

	toFloat := exprs.NewCall(exprs.TargetConvert, exprs.FuncParseFloat, x)
	testutil.AssertValueSQL(t, NewMySQLCompiler(), toFloat,
		"cast(T0.x as decimal(65, 10))")
	testutil.AssertValueSQL(t, NewPostgresCompiler(), toFloat,
		"cast(T0.x as double precision)")
}

func TestExistenceQueriesPerDialect(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, NewMySQLCompiler().TableExists("users"),
		"SELECT count(*) FROM information_schema.tables"+
			" WHERE table_schema = database() AND table_name = 'users'")
	testutil.AssertEqual(t, NewPostgresCompiler().ViewExists("v_users"),
		"SELECT count(*) FROM information_schema.views"+
			" WHERE table_schema = current_schema() AND table_name = 'v_users'")
}
