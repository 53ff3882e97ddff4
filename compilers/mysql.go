package compilers

import (
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/internal/quoting"
)

// MySQLCompiler generates MySQL-dialect SQL. Identifiers are quoted with
// backticks; parameters use positional ? placeholders, so equal values do
// not share a placeholder; string comparison is case insensitive unless the
// compiler is case sensitive, which inserts the BINARY operator.
type MySQLCompiler struct {
	*baseCompiler
}

// NewMySQLCompiler creates a MySQLCompiler ready for use.
func NewMySQLCompiler(opts ...Option) *MySQLCompiler {
	c := &MySQLCompiler{}
	c.baseCompiler = newBase(c, mysqlHooks{}, styleQuestion, quoting.EscapeString, opts...)
	return c
}

type mysqlHooks struct{}

func (mysqlHooks) QuoteName(name string) string { return quoting.Backtick(name) }

// || is logical or in MySQL; concatenation must use the function form.
func (mysqlHooks) ConcatSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: "concat(" + left + ", " + right + ")", Kind: exprs.OpCall}
}

func (mysqlHooks) CaseInsensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{SQL: left + " " + symbol + " " + right, Kind: kind}
}

func (mysqlHooks) CaseSensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{SQL: left + " " + symbol + " binary " + right, Kind: kind}
}

func (mysqlHooks) XorSQL(left, right string) (exprs.Text, error) {
	return exprs.Text{SQL: left + " ^ " + right, Kind: exprs.OpXor}, nil
}

func (mysqlHooks) PowerSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: "power(" + left + ", " + right + ")", Kind: exprs.OpPower}
}

func (mysqlHooks) BoolCastSQL(pred string) exprs.Text {
	return exprs.Text{SQL: "if(" + pred + ", 1, 0)", Kind: exprs.OpCall}
}

func (mysqlHooks) ConditionalSQL(test, then, els string) exprs.Text {
	return exprs.Text{SQL: "if(" + test + ", " + then + ", " + els + ")", Kind: exprs.OpCall}
}

func (mysqlHooks) InstrSQL(s, sub string) string {
	return "instr(" + s + ", " + sub + ")"
}

func (mysqlHooks) EndsWithSQL(s, suffixLen, suffixCmp string) exprs.Text {
	return exprs.Text{
		SQL:  "right(" + s + ", length(" + suffixLen + ")) = " + suffixCmp,
		Kind: exprs.OpEqual,
	}
}

func (mysqlHooks) DatePartSQL(kind exprs.MemberKind, x string) (exprs.Text, error) {
	switch kind {
	case exprs.MemberYear:
		return exprs.Text{SQL: "year(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberMonth:
		return exprs.Text{SQL: "month(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberDay:
		return exprs.Text{SQL: "day(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberHour:
		return exprs.Text{SQL: "hour(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberMinute:
		return exprs.Text{SQL: "minute(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberSecond:
		return exprs.Text{SQL: "second(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberDayOfWeek:
		// dayofweek is 1-based Sunday; callers expect 0-based Sunday.
		return exprs.Text{SQL: "dayofweek(" + x + ") - 1", Kind: exprs.OpSubtract}, nil
	case exprs.MemberDayOfYear:
		return exprs.Text{SQL: "dayofyear(" + x + ")", Kind: exprs.OpCall}, nil
	case exprs.MemberDate:
		return exprs.Text{SQL: "date(" + x + ")", Kind: exprs.OpCall}, nil
	}
	return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: kind.String()}
}

func (mysqlHooks) DateAddSQL(fn exprs.Func, x, n string) (exprs.Text, error) {
	unit, ok := mysqlDateUnits[fn]
	if !ok {
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
	}
	return exprs.Text{
		SQL:  "date_add(" + x + ", interval (" + n + ") " + unit + ")",
		Kind: exprs.OpCall,
	}, nil
}

func (mysqlHooks) DateDiffSQL(fn exprs.Func, a, b string) (exprs.Text, error) {
	unit, ok := mysqlDiffUnits[fn]
	if !ok {
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
	}
	// timestampdiff(unit, earlier, later) yields later - earlier.
	return exprs.Text{
		SQL:  "timestampdiff(" + unit + ", " + b + ", " + a + ")",
		Kind: exprs.OpCall,
	}, nil
}

var mysqlDateUnits = map[exprs.Func]string{
	exprs.FuncAddYears:   "year",
	exprs.FuncAddMonths:  "month",
	exprs.FuncAddDays:    "day",
	exprs.FuncAddHours:   "hour",
	exprs.FuncAddMinutes: "minute",
	exprs.FuncAddSeconds: "second",
}

var mysqlDiffUnits = map[exprs.Func]string{
	exprs.FuncDiffYears:   "year",
	exprs.FuncDiffMonths:  "month",
	exprs.FuncDiffDays:    "day",
	exprs.FuncDiffHours:   "hour",
	exprs.FuncDiffMinutes: "minute",
	exprs.FuncDiffSeconds: "second",
}

func (mysqlHooks) RandomIntSQL(lo, hi string) exprs.Text {
	return exprs.Text{
		SQL:  "floor(rand() * (" + hi + " - " + lo + ") + " + lo + ")",
		Kind: exprs.OpCall,
	}
}

func (mysqlHooks) TextTypeName() string  { return "char" }
func (mysqlHooks) IntTypeName() string   { return "signed" }
func (mysqlHooks) FloatTypeName() string { return "decimal(65, 10)" }

// MySQL has no unlimited LIMIT; the documented idiom is the maximum row
// count.
func (mysqlHooks) NoLimitToken() string { return "18446744073709551615" }

func (mysqlHooks) AutoIncrementSQL() string { return " AUTO_INCREMENT" }

func (mysqlHooks) TableExistsSQL(name string) string {
	return "SELECT count(*) FROM information_schema.tables" +
		" WHERE table_schema = database() AND table_name = '" +
		quoting.EscapeString(name) + "'"
}

func (mysqlHooks) ViewExistsSQL(name string) string {
	return "SELECT count(*) FROM information_schema.views" +
		" WHERE table_schema = database() AND table_name = '" +
		quoting.EscapeString(name) + "'"
}
