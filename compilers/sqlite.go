package compilers

import (
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/internal/quoting"
)

// SQLiteCompiler generates SQLite-dialect SQL. Identifiers are quoted with
// double quotes (ANSI); parameters use named @P placeholders with value
// dedup; case-insensitive string comparison appends collate nocase.
type SQLiteCompiler struct {
	*baseCompiler
}

// NewSQLiteCompiler creates a SQLiteCompiler ready for use. Parameterized
// mode is on by default; pass WithoutParams() to inline escaped literals.
func NewSQLiteCompiler(opts ...Option) *SQLiteCompiler {
	c := &SQLiteCompiler{}
	c.baseCompiler = newBase(c, sqliteHooks{}, styleNamed, quoting.EscapeStandard, opts...)
	return c
}

type sqliteHooks struct{}

func (sqliteHooks) QuoteName(name string) string { return quoting.DoubleQuote(name) }

func (sqliteHooks) ConcatSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: left + " || " + right, Kind: exprs.OpConcat}
}

func (sqliteHooks) CaseInsensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{SQL: left + " " + symbol + " " + right + " collate nocase", Kind: kind}
}

func (sqliteHooks) CaseSensitiveCompare(left, symbol, right string, kind exprs.Op) exprs.Text {
	return exprs.Text{SQL: left + " " + symbol + " " + right, Kind: kind}
}

func (sqliteHooks) XorSQL(left, right string) (exprs.Text, error) {
	return exprs.Text{}, &exprs.DialectRestrictionError{Construct: "bitwise xor"}
}

func (sqliteHooks) PowerSQL(left, right string) exprs.Text {
	return exprs.Text{SQL: "pow(" + left + ", " + right + ")", Kind: exprs.OpPower}
}

func (sqliteHooks) BoolCastSQL(pred string) exprs.Text {
	return exprs.Text{SQL: "cast(" + pred + " as boolean)", Kind: exprs.OpConvert}
}

func (sqliteHooks) ConditionalSQL(test, then, els string) exprs.Text {
	return exprs.Text{SQL: "iif(" + test + ", " + then + ", " + els + ")", Kind: exprs.OpCall}
}

func (sqliteHooks) InstrSQL(s, sub string) string {
	return "instr(" + s + ", " + sub + ")"
}

func (sqliteHooks) EndsWithSQL(s, suffixLen, suffixCmp string) exprs.Text {
	return exprs.Text{
		SQL:  "substr(" + s + ", -length(" + suffixLen + ")) = " + suffixCmp,
		Kind: exprs.OpEqual,
	}
}

func (sqliteHooks) DatePartSQL(kind exprs.MemberKind, x string) (exprs.Text, error) {
	var format string
	switch kind {
	case exprs.MemberYear:
		format = "%Y"
	case exprs.MemberMonth:
		format = "%m"
	case exprs.MemberDay:
		format = "%d"
	case exprs.MemberHour:
		format = "%H"
	case exprs.MemberMinute:
		format = "%M"
	case exprs.MemberSecond:
		format = "%S"
	case exprs.MemberDayOfWeek:
		format = "%w"
	case exprs.MemberDayOfYear:
		format = "%j"
	case exprs.MemberDate:
		return exprs.Text{SQL: "date(" + x + ")", Kind: exprs.OpCall}, nil
	default:
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: kind.String()}
	}
	return exprs.Text{
		SQL:  "cast(strftime('" + format + "', " + x + ") as integer)",
		Kind: exprs.OpConvert,
	}, nil
}

func (sqliteHooks) DateAddSQL(fn exprs.Func, x, n string) (exprs.Text, error) {
	var unit string
	switch fn {
	case exprs.FuncAddYears:
		unit = "years"
	case exprs.FuncAddMonths:
		unit = "months"
	case exprs.FuncAddDays:
		unit = "days"
	case exprs.FuncAddHours:
		unit = "hours"
	case exprs.FuncAddMinutes:
		unit = "minutes"
	case exprs.FuncAddSeconds:
		unit = "seconds"
	default:
		return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
	}
	return exprs.Text{
		SQL:  "datetime(" + x + ", (" + n + ") || ' " + unit + "')",
		Kind: exprs.OpCall,
	}, nil
}

func (sqliteHooks) DateDiffSQL(fn exprs.Func, a, b string) (exprs.Text, error) {
	switch fn {
	case exprs.FuncDiffYears:
		return exprs.Text{
			SQL:  "cast(strftime('%Y', " + a + ") - strftime('%Y', " + b + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffMonths:
		return exprs.Text{
			SQL: "cast((strftime('%Y', " + a + ") - strftime('%Y', " + b + ")) * 12" +
				" + strftime('%m', " + a + ") - strftime('%m', " + b + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffDays:
		return exprs.Text{
			SQL:  "cast(julianday(" + a + ") - julianday(" + b + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffHours:
		return exprs.Text{
			SQL:  "cast((julianday(" + a + ") - julianday(" + b + ")) * 24 as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffMinutes:
		return exprs.Text{
			SQL:  "cast((julianday(" + a + ") - julianday(" + b + ")) * 1440 as integer)",
			Kind: exprs.OpConvert,
		}, nil
	case exprs.FuncDiffSeconds:
		return exprs.Text{
			SQL:  "cast(strftime('%s', " + a + ") - strftime('%s', " + b + ") as integer)",
			Kind: exprs.OpConvert,
		}, nil
	}
	return exprs.Text{}, &exprs.UnsupportedConstructError{Target: "Date", Member: fn.String()}
}

func (sqliteHooks) RandomIntSQL(lo, hi string) exprs.Text {
	return exprs.Text{
		SQL:  "abs(random()) % (" + hi + " - " + lo + ") + " + lo,
		Kind: exprs.OpAdd,
	}
}

func (sqliteHooks) TextTypeName() string  { return "text" }
func (sqliteHooks) IntTypeName() string   { return "integer" }
func (sqliteHooks) FloatTypeName() string { return "real" }

// SQLite allows LIMIT -1 to mean unlimited, needed for offset without limit.
func (sqliteHooks) NoLimitToken() string { return "-1" }

func (sqliteHooks) AutoIncrementSQL() string { return " AUTOINCREMENT" }

func (sqliteHooks) TableExistsSQL(name string) string {
	return "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = '" +
		quoting.EscapeStandard(name) + "'"
}

func (sqliteHooks) ViewExistsSQL(name string) string {
	return "SELECT count(*) FROM sqlite_master WHERE type = 'view' AND name = '" +
		quoting.EscapeStandard(name) + "'"
}
