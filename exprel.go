// Package exprel compiles expression trees into dialect SQL: every
// expression is renderable both as a value and as a predicate, constants
// become named statement parameters, and precedence-aware parenthesization
// keeps the emitted text minimal.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/exprel/builders (statement builders)
//   - github.com/bawdo/exprel/exprs (expression nodes)
//   - github.com/bawdo/exprel/compilers (SQL generation)
//   - github.com/bawdo/exprel/rewrite (statement rewriters)
package exprel

import (
	"github.com/bawdo/exprel/builders"
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
)

// --- Builder Types ---

// SelectBuilder provides a fluent API for building SELECT statements.
type SelectBuilder = builders.SelectBuilder

// InsertBuilder provides a fluent API for building INSERT statements.
type InsertBuilder = builders.InsertBuilder

// UpdateBuilder provides a fluent API for building UPDATE statements.
type UpdateBuilder = builders.UpdateBuilder

// DeleteBuilder provides a fluent API for building DELETE statements.
type DeleteBuilder = builders.DeleteBuilder

// --- Builder Constructors ---

// NewSelect creates a SelectBuilder reading from the named table.
func NewSelect(table string) *builders.SelectBuilder {
	return builders.NewSelect(table)
}

// NewInsert creates an InsertBuilder targeting the named table.
func NewInsert(table string) *builders.InsertBuilder {
	return builders.NewInsert(table)
}

// NewUpdate creates an UpdateBuilder targeting the named table.
func NewUpdate(table string) *builders.UpdateBuilder {
	return builders.NewUpdate(table)
}

// NewDelete creates a DeleteBuilder targeting the named table.
func NewDelete(table string) *builders.DeleteBuilder {
	return builders.NewDelete(table)
}

// --- Core Node Types ---

// Expr is the interface all expression nodes implement.
type Expr = exprs.Expr

// Text is a compiled SQL fragment paired with its operation kind.
type Text = exprs.Text

// Param is one extracted statement parameter.
type Param = compilers.Param

// --- Common Node Constructors ---

// Col creates a column reference bound to a source alias.
func Col(source, name string) *exprs.Column {
	return exprs.Col(source, name)
}

// Const wraps a raw Go value as a constant expression.
func Const(val any) exprs.Expr {
	return exprs.Const(val)
}

// Table creates a table source with the given name and alias.
func Table(name, alias string) *exprs.TableSource {
	return exprs.Table(name, alias)
}

// --- Aggregate Functions ---

// CountStar creates a count(*) aggregate.
func CountStar() *exprs.Call { return exprs.CountStar() }

// Count creates a count(expr) aggregate.
func Count(expr exprs.Expr) *exprs.Call { return exprs.Count(expr) }

// Sum creates a sum(expr) aggregate.
func Sum(expr exprs.Expr) *exprs.Call { return exprs.Sum(expr) }

// Avg creates an avg(expr) aggregate.
func Avg(expr exprs.Expr) *exprs.Call { return exprs.Avg(expr) }

// Min creates a min(expr) aggregate.
func Min(expr exprs.Expr) *exprs.Call { return exprs.Min(expr) }

// Max creates a max(expr) aggregate.
func Max(expr exprs.Expr) *exprs.Call { return exprs.Max(expr) }

// --- Compiler Types ---

// Compiler is the full dialect surface shared by all dialect compilers.
type Compiler = compilers.Compiler

// SQLiteCompiler generates SQLite-dialect SQL.
type SQLiteCompiler = compilers.SQLiteCompiler

// MySQLCompiler generates MySQL-dialect SQL.
type MySQLCompiler = compilers.MySQLCompiler

// PostgresCompiler generates PostgreSQL-dialect SQL.
type PostgresCompiler = compilers.PostgresCompiler

// --- Compiler Constructors ---

// NewSQLiteCompiler creates a SQLite dialect compiler.
func NewSQLiteCompiler(opts ...compilers.Option) *compilers.SQLiteCompiler {
	return compilers.NewSQLiteCompiler(opts...)
}

// NewMySQLCompiler creates a MySQL dialect compiler.
func NewMySQLCompiler(opts ...compilers.Option) *compilers.MySQLCompiler {
	return compilers.NewMySQLCompiler(opts...)
}

// NewPostgresCompiler creates a PostgreSQL dialect compiler.
func NewPostgresCompiler(opts ...compilers.Option) *compilers.PostgresCompiler {
	return compilers.NewPostgresCompiler(opts...)
}

// WithoutParams makes a compiler inline constants as escaped literals.
var WithoutParams = compilers.WithoutParams

// WithCaseSensitive makes string comparisons case sensitive.
var WithCaseSensitive = compilers.WithCaseSensitive
