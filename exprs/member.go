package exprs

// MemberKind tags a supported member access on an object expression:
// string length or a date part.
type MemberKind int

const (
	MemberLength MemberKind = iota // string length
	MemberYear
	MemberMonth
	MemberDay
	MemberHour
	MemberMinute
	MemberSecond
	MemberDayOfWeek
	MemberDayOfYear
	MemberDate // date component of a datetime
)

var memberNames = [...]string{
	MemberLength:    "Length",
	MemberYear:      "Year",
	MemberMonth:     "Month",
	MemberDay:       "Day",
	MemberHour:      "Hour",
	MemberMinute:    "Minute",
	MemberSecond:    "Second",
	MemberDayOfWeek: "DayOfWeek",
	MemberDayOfYear: "DayOfYear",
	MemberDate:      "Date",
}

func (k MemberKind) String() string {
	if int(k) < len(memberNames) {
		return memberNames[k]
	}
	return "Member?"
}

// Member is a member access on an object expression, e.g. the length of a
// string or the year of a date.
type Member struct {
	Predications
	Arithmetics
	Combinable
	Object Expr
	Kind   MemberKind
}

// NewMember creates a Member with properly initialised embedded structs.
func NewMember(object Expr, kind MemberKind) *Member {
	n := &Member{Object: object, Kind: kind}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *Member) AsValue(c Compiler) (Text, error)     { return c.ValueMember(n) }
func (n *Member) AsPredicate(c Compiler) (Text, error) { return c.PredicateMember(n) }
