package testutil

import (
	"testing"

	"github.com/bawdo/exprel/exprs"
)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertValueSQL renders the expression in value form and compares the SQL.
func AssertValueSQL(t *testing.T, c exprs.Compiler, e exprs.Expr, expected string) {
	t.Helper()
	got, err := e.AsValue(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SQL != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, got.SQL)
	}
}

// AssertPredicateSQL renders the expression in predicate form and compares
// the SQL.
func AssertPredicateSQL(t *testing.T, c exprs.Compiler, e exprs.Expr, expected string) {
	t.Helper()
	got, err := e.AsPredicate(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SQL != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, got.SQL)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}
