package compilers

import (
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/internal/quoting"
)

// PostgresCompiler generates PostgreSQL-dialect SQL. Identifiers are quoted
// with double quotes; parameters use $1-style placeholders, which may be
// referenced more than once, so value dedup applies; case-insensitive string
// comparison lower-folds both operands.
type PostgresCompiler struct {
	*baseCompiler
}

// NewPostgresCompiler creates a PostgresCompiler ready for use.
func NewPostgresCompiler(opts ...Option) *PostgresCompiler {
	c := &PostgresCompiler{}
	c.baseCompiler = newBase(c, postgresHooks{}, styleDollar, quoting.EscapeStandard, opts...)
	return c
}

type postgresHooks struct{}

func (postgresHooks) QuoteName(name string) string { return quoting.DoubleQuote(name) }

func (postgresHooks) ConcatSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: left + " || " + right, Kind: exprs.OpConcat}
}

func (postgresHooks) CaseInsensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{
		SQL:  "lower(" + left + ") " + symbol + " lower(" + right + ")",
		Kind: kind,
	}
}

func (postgresHooks) CaseSensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{SQL: left + " " + symbol + " " + right, Kind: kind}
}

func (postgresHooks) XorSQL(left, right string) (exprs.Text, error) {
	return exprs.Text{SQL: left + " # " + right, Kind: exprs.OpXor}, nil
}

func (postgresHooks) PowerSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: "power(" + left + ", " + right + ")", Kind: exprs.OpPower}
}

func (postgresHooks) BoolCastSQL(pred string) exprs.Text {
	return exprs.Text{SQL: "cast(" + pred + " as boolean)", Kind: exprs.OpConvert}
}

func (postgresHooks) ConditionalSQL(test, then, els string) exprs.Text {
	return exprs.Text{
		SQL:  "case when " + test + " then " + then + " else " + els + " end",
		Kind: exprs.OpCall,
	}
}

func (postgresHooks) InstrSQL(s, sub string) string {
	return "strpos(" + s + ", " + sub + ")"
}

func (postgresHooks) EndsWithSQL(s, suffixLen, suffixCmp string) exprs.Text {
	return exprs.Text{
		SQL:  "right(" + s + ", length(" + suffixLen + ")) = " + suffixCmp,
		Kind: exprs.OpEqual,
	}
}

func (postgresHooks) DatePartSQL(kind exprs.MemberKind, x string) (exprs.Text, error) {
	var field string
	switch kind {
	case exprs.MemberYear:
		field = "year"
	case exprs.MemberMonth:
		field = "month"
	case exprs.MemberDay:
		field = "day"
	case exprs.MemberHour:
		field = "hour"
	case exprs.MemberMinute:
		field = "minute"
	case exprs.MemberSecond:
		field = "second"
	case exprs.MemberDayOfWeek:
		field = "dow" // 0-based Sunday, matching caller expectations
	case exprs.MemberDayOfYear:
		field = "doy"
	case exprs.MemberDate:
		return exprs.Text{SQL: "cast(" + x + " as date)", Kind: exprs.OpConvert}, nil
	default:
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: kind.String()}
	}
	return exprs.Text{
		SQL:  "cast(extract(" + field + " from " + x + ") as integer)",
		Kind: exprs.OpConvert,
	}, nil
}

func (postgresHooks) DateAddSQL(fn exprs.Func, x, n string) (exprs.Text, error) {
	var unit string
	switch fn {
	case exprs.FuncAddYears:
		unit = "year"
	case exprs.FuncAddMonths:
		unit = "month"
	case exprs.FuncAddDays:
		unit = "day"
	case exprs.FuncAddHours:
		unit = "hour"
	case exprs.FuncAddMinutes:
		unit = "minute"
	case exprs.FuncAddSeconds:
		unit = "second"
	default:
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
	}
	return exprs.Text{
		SQL:  x + " + (" + n + ") * interval '1 " + unit + "'",
		Kind: exprs.OpAdd,
	}, nil
}

func (postgresHooks) DateDiffSQL(fn exprs.Func, a, b string) (exprs.Text, error) {
	age := "age(" + a + ", " + b + ")"
	switch fn {
	case exprs.FuncDiffYears:
		return exprs.Text{
			SQL:  "cast(extract(year from " + age + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffMonths:
		return exprs.Text{
			SQL: "cast(extract(year from " + age + ") * 12" +
				" + extract(month from " + age + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	}
	var seconds string
	switch fn {
	case exprs.FuncDiffDays:
		seconds = "86400"
	case exprs.FuncDiffHours:
		seconds = "3600"
	case exprs.FuncDiffMinutes:
		seconds = "60"
	case exprs.FuncDiffSeconds:
		seconds = "1"
	default:
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
	}
	diff := "extract(epoch from (" + a + ") - (" + b + "))"
	if seconds != "1" {
		diff = "trunc(" + diff + " / " + seconds + ")"
	}
	return exprs.Text{SQL: "cast(" + diff + " as integer)", Kind: exprs.OpConvert}, nil
}

func (postgresHooks) RandomIntSQL(lo, hi string) exprs.Text {
	return exprs.Text{
		SQL:  "cast(floor(random() * (" + hi + " - " + lo + ") + " + lo + ") as integer)",
		Kind: exprs.OpConvert,
	}
}

func (postgresHooks) TextTypeName() string  { return "text" }
func (postgresHooks) IntTypeName() string   { return "integer" }
func (postgresHooks) FloatTypeName() string { return "double precision" }

// PostgreSQL accepts OFFSET without LIMIT directly.
func (postgresHooks) NoLimitToken() string { return "" }

func (postgresHooks) AutoIncrementSQL() string { return " GENERATED BY DEFAULT AS IDENTITY" }

func (postgresHooks) TableExistsSQL(name string) string {
	return "SELECT count(*) FROM information_schema.tables" +
		" WHERE table_schema = current_schema() AND table_name = '" +
		quoting.EscapeStandard(name) + "'"
}

func (postgresHooks) ViewExistsSQL(name string) string {
	return "SELECT count(*) FROM information_schema.views" +
		" WHERE table_schema = current_schema() AND table_name = '" +
		quoting.EscapeStandard(name) + "'"
}
