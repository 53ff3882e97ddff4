package compilers

import (
	"errors"
	"testing"

	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/exprs/schema"
	"github.com/bawdo/exprel/internal/testutil"
)

func usersSelection() *exprs.Selection {
	return &exprs.Selection{From: exprs.Table("users", "T0")}
}

func TestSelectStar(t *testing.T) {
	t.Parallel()
	sql, params, err := sqlite().Select(usersSelection())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "users" AS T0`)
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}
}

func TestSelectFullClauseOrder(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.CollectionShape{Items: []exprs.Expr{
		exprs.Col("T0", "id"), exprs.Col("T0", "name"),
	}}
	sel.Where = exprs.Col("T0", "age").Gt(18)
	sel.OrderBy = []exprs.Ordering{exprs.Col("T0", "name").Asc()}
	sel.Limit = 10
	sel.Offset = 5

	sql, params, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT T0.id, T0.name FROM "users" AS T0 WHERE T0.age > @P0`+
			` ORDER BY T0.name LIMIT 10 OFFSET 5`)
	if len(params) != 1 || params[0].Name != "P0" || params[0].Value != 18 {
		t.Errorf("unexpected params %v", params)
	}
}

func TestSelectDistinctGroupBy(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Distinct = true
	sel.Shape = exprs.Col("T0", "city")
	sel.GroupBy = []exprs.Expr{exprs.Col("T0", "city")}

	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT DISTINCT T0.city FROM "users" AS T0 GROUP BY T0.city`)
}

func TestSelectOrderByDescending(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.OrderBy = []exprs.Ordering{exprs.Col("T0", "age").Desc()}
	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 ORDER BY T0.age DESC`)
}

// Offset without limit needs a dialect-specific no-limit marker; Postgres
// supports a bare OFFSET.
func TestOffsetWithoutLimitPerDialect(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Offset = 5

	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "users" AS T0 LIMIT -1 OFFSET 5`)

	sql, _, err = NewMySQLCompiler().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		"SELECT * FROM `users` AS T0 LIMIT 18446744073709551615 OFFSET 5")

	sql, _, err = NewPostgresCompiler().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "users" AS T0 OFFSET 5`)
}

func TestProjectionAliases(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.ObjectShape{
		TypeName: "Row",
		Fields: []exprs.Field{
			{Name: "name", Expr: exprs.Col("T0", "name")},
			{Name: "FullName", Expr: exprs.Col("T0", "name2")},
			{Name: "", Expr: exprs.Count(exprs.Col("T0", "id"))},
		},
	}
	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT T0.name, T0.name2 AS FullName, count(T0.id) AS C2 FROM "users" AS T0`)
}

func TestEmptyProjectionIsInvalid(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.CollectionShape{}
	_, _, err := sqlite().Select(sel)
	var shape *exprs.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected an invalid shape error, got %v", err)
	}
}

// --- Joins ---

func joinedSelection(kind exprs.JoinKind) *exprs.Selection {
	users := exprs.Table("users", "T0")
	orders := exprs.Table("orders", "T1")
	var on exprs.Expr
	if kind != exprs.JoinCross {
		on = users.Col("id").Eq(orders.Col("user_id"))
	}
	return &exprs.Selection{
		From: &exprs.JoinSource{Left: users, Right: orders, On: on, Kind: kind},
	}
}

func TestInnerJoin(t *testing.T) {
	t.Parallel()
	sql, _, err := sqlite().Select(joinedSelection(exprs.JoinInner))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 INNER JOIN "orders" AS T1 ON T0.id = T1.user_id`)
}

func TestRightJoinSwapsIntoLeftJoin(t *testing.T) {
	t.Parallel()
	sql, _, err := sqlite().Select(joinedSelection(exprs.JoinRight))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "orders" AS T1 LEFT JOIN "users" AS T0 ON T0.id = T1.user_id`)
}

func TestCrossJoinHasNoOnClause(t *testing.T) {
	t.Parallel()
	sql, _, err := sqlite().Select(joinedSelection(exprs.JoinCross))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 CROSS JOIN "orders" AS T1`)
}

func TestFullJoinIsDialectRestricted(t *testing.T) {
	t.Parallel()
	_, _, err := sqlite().Select(joinedSelection(exprs.JoinFull))
	var dr *exprs.DialectRestrictionError
	if !errors.As(err, &dr) {
		t.Fatalf("expected a dialect restriction, got %v", err)
	}
}

// --- Derived tables and unions ---

func TestBareSelectionInFromPassesThrough(t *testing.T) {
	t.Parallel()
	sel := &exprs.Selection{From: usersSelection()}
	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "users" AS T0`)
}

func TestDerivedTableInFrom(t *testing.T) {
	t.Parallel()
	inner := usersSelection()
	inner.Where = exprs.Col("T0", "age").Gt(18)
	inner.Alias = "S0"
	sql, _, err := sqlite().Select(&exprs.Selection{From: inner})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM (SELECT * FROM "users" AS T0 WHERE T0.age > @P0) AS S0`)
}

func TestTableSelectionOverrideOnlyWhenForced(t *testing.T) {
	t.Parallel()
	active := exprs.Table("active_users", "T1")
	active.Over = &exprs.Selection{
		From:  exprs.Table("users", "T1"),
		Where: exprs.Col("T1", "deleted_at").Eq(nil),
	}

	// Top-level FROM: the table renders by name.
	sql, _, err := sqlite().Select(&exprs.Selection{From: active})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "active_users" AS T1`)

	// Join branches must stand alone, so the override kicks in.
	users := exprs.Table("users", "T0")
	join := &exprs.Selection{From: &exprs.JoinSource{
		Left:  users,
		Right: active,
		On:    users.Col("id").Eq(exprs.Col("T1", "user_id")),
		Kind:  exprs.JoinInner,
	}}
	sql, _, err = sqlite().Select(join)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 INNER JOIN`+
			` (SELECT * FROM "users" AS T1 WHERE T1.deleted_at is null) AS T1`+
			` ON T0.id = T1.user_id`)
}

func TestBareUnionFlattens(t *testing.T) {
	t.Parallel()
	left := usersSelection()
	right := &exprs.Selection{From: exprs.Table("admins", "T1")}
	sel := &exprs.Selection{
		From: &exprs.UnionSource{Main: left, Other: right, Kind: exprs.SetUnion},
	}
	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 UNION SELECT * FROM "admins" AS T1`)
}

func TestUnionWithOuterClausesBecomesDerivedTable(t *testing.T) {
	t.Parallel()
	left := usersSelection()
	right := &exprs.Selection{From: exprs.Table("admins", "T1")}
	sel := &exprs.Selection{
		From:  &exprs.UnionSource{Main: left, Other: right, Kind: exprs.SetUnionAll, Alias: "U0"},
		Limit: 3,
	}
	sql, _, err := sqlite().Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM (SELECT * FROM "users" AS T0 UNION ALL SELECT * FROM "admins" AS T1) AS U0 LIMIT 3`)
}

func TestCombine(t *testing.T) {
	t.Parallel()
	left := usersSelection()
	right := &exprs.Selection{From: exprs.Table("banned", "T1")}
	sql, _, err := sqlite().Combine(left, right, exprs.SetExcept)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`SELECT * FROM "users" AS T0 EXCEPT SELECT * FROM "banned" AS T1`)
}

// --- Insert ---

func TestInsertValues(t *testing.T) {
	t.Parallel()
	ins := &exprs.Insert{
		Table:   "users",
		Columns: []string{"name", "age"},
		Values:  []exprs.Expr{exprs.Const("ada"), exprs.Const(30)},
	}
	sql, params, err := sqlite().Insert(ins)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`INSERT INTO "users" (name, age) VALUES (@P0, @P1)`)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %v", params)
	}
}

func TestInsertColumnValueCountMismatch(t *testing.T) {
	t.Parallel()
	ins := &exprs.Insert{
		Table:   "users",
		Columns: []string{"name", "age"},
		Values:  []exprs.Expr{exprs.Const("ada")},
	}
	_, _, err := sqlite().Insert(ins)
	testutil.AssertError(t, err)
}

func archiveTable() schema.Table {
	return schema.Table{
		Name: "archive",
		Columns: []schema.Column{
			{Name: "name", SQLType: "text"},
			{Name: "age", SQLType: "integer"},
		},
	}
}

func TestInsertFromQuery(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.ObjectShape{
		TypeName: "Row",
		Fields: []exprs.Field{
			{Name: "name", Expr: exprs.Col("T0", "name")},
			{Name: "age", Expr: exprs.Col("T0", "age")},
		},
	}
	sql, _, err := sqlite().InsertFromQuery(archiveTable(), sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql,
		`INSERT INTO "archive" (name, age) SELECT T0.name, T0.age FROM "users" AS T0`)
}

func TestInsertFromQueryUnknownField(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.ObjectShape{
		TypeName: "Row",
		Fields:   []exprs.Field{{Name: "extra", Expr: exprs.Col("T0", "extra")}},
	}
	_, _, err := sqlite().InsertFromQuery(archiveTable(), sel)
	var missing *exprs.MissingContextError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a missing context error, got %v", err)
	}
	testutil.AssertEqual(t, err.Error(), `exprel: member "extra" not found in archive`)
}

func TestInsertFromQueryRejectsCtorArgs(t *testing.T) {
	t.Parallel()
	sel := usersSelection()
	sel.Shape = &exprs.ObjectShape{
		TypeName: "Row",
		CtorArgs: []exprs.Expr{exprs.Col("T0", "id")},
		Fields:   []exprs.Field{{Name: "name", Expr: exprs.Col("T0", "name")}},
	}
	_, _, err := sqlite().InsertFromQuery(archiveTable(), sel)
	var shape *exprs.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected an invalid shape error, got %v", err)
	}
}

// --- Update / Delete ---

func TestUpdate(t *testing.T) {
	t.Parallel()
	target := exprs.Table("users", "")
	u := &exprs.Update{
		Target: target,
		From:   target,
		Sets:   []exprs.Assign{{Column: "age", Value: exprs.Const(30)}},
		Where:  exprs.Col("", "id").Eq(1),
	}
	sql, params, err := sqlite().Update(u)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `UPDATE "users" SET age = @P0 WHERE id = @P1`)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %v", params)
	}
}

func TestUpdateRequiresAssignments(t *testing.T) {
	t.Parallel()
	target := exprs.Table("users", "")
	_, _, err := sqlite().Update(&exprs.Update{Target: target, From: target})
	testutil.AssertError(t, err)
}

func TestMultiTableUpdateIsDialectRestricted(t *testing.T) {
	t.Parallel()
	target := exprs.Table("users", "T0")
	u := &exprs.Update{
		Target: target,
		From: &exprs.JoinSource{
			Left:  target,
			Right: exprs.Table("orders", "T1"),
			On:    exprs.Col("T0", "id").Eq(exprs.Col("T1", "user_id")),
			Kind:  exprs.JoinInner,
		},
		Sets: []exprs.Assign{{Column: "age", Value: exprs.Const(30)}},
	}
	_, _, err := sqlite().Update(u)
	var dr *exprs.DialectRestrictionError
	if !errors.As(err, &dr) {
		t.Fatalf("expected a dialect restriction, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	target := exprs.Table("users", "")
	d := &exprs.Delete{
		Target: target,
		From:   target,
		Where:  exprs.Col("", "id").Eq(1),
	}
	sql, _, err := sqlite().Delete(d)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `DELETE FROM "users" WHERE id = @P0`)
}

func TestDeleteWithoutWhereDeletesAll(t *testing.T) {
	t.Parallel()
	target := exprs.Table("users", "")
	sql, _, err := sqlite().Delete(&exprs.Delete{Target: target, From: target})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `DELETE FROM "users"`)
}

func TestStatementStateResetsBetweenCompiles(t *testing.T) {
	t.Parallel()
	c := sqlite()
	sel := usersSelection()
	sel.Where = exprs.Col("T0", "age").Gt(18)

	first, params, err := c.Select(sel)
	testutil.AssertNoError(t, err)
	second, params2, err := c.Select(sel)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, first, second)
	if len(params) != 1 || len(params2) != 1 {
		t.Errorf("params must restart per statement: %v / %v", params, params2)
	}
}
