package exprs

// JoinKind identifies the join flavour of a JoinSource.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight // rendered by swapping operands into a LEFT JOIN
	JoinCross
	JoinFull // unsupported by the target dialects; compile error
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "INNER JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinCross:
		return "CROSS JOIN"
	case JoinFull:
		return "FULL JOIN"
	default:
		return "JOIN"
	}
}

// SetOpKind identifies a set-combination operator.
type SetOpKind int

const (
	SetUnion SetOpKind = iota
	SetUnionAll
	SetIntersect
	SetExcept
)

func (k SetOpKind) String() string {
	switch k {
	case SetUnion:
		return "UNION"
	case SetUnionAll:
		return "UNION ALL"
	case SetIntersect:
		return "INTERSECT"
	case SetExcept:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// Source describes a FROM-clause shape: a leaf table or view, a join, a
// set combination, or a selection wrapper. Sources are immutable after
// construction, like expression nodes.
type Source interface {
	sourceNode()
}

// TableSource is a leaf table or view reference.
type TableSource struct {
	Name  string
	Alias string
	View  bool
	Over  *Selection // optional embedded selection override
}

func (*TableSource) sourceNode() {}

// Table creates a TableSource with the given name and alias.
func Table(name, alias string) *TableSource {
	return &TableSource{Name: name, Alias: alias}
}

// Col creates a Column bound to this source's alias.
func (t *TableSource) Col(name string) *Column { return Col(t.Alias, name) }

// JoinSource combines two sources with an on-predicate.
type JoinSource struct {
	Left  Source
	Right Source
	On    Expr // nil for cross joins
	Kind  JoinKind
}

func (*JoinSource) sourceNode() {}

// UnionSource combines a main source with an affiliated source under a
// set-combination operator.
type UnionSource struct {
	Main  Source
	Other Source
	Kind  SetOpKind
	Alias string
}

func (*UnionSource) sourceNode() {}

// Ordering pairs an order-by member expression with its direction.
type Ordering struct {
	Expr Expr
	Desc bool
}

// Selection wraps a source with projection, filter, grouping, ordering,
// limit/offset and distinct clauses. A Selection is itself a Source.
type Selection struct {
	From     Source
	Shape    Expr // projection shape; nil selects the source's natural columns
	Where    Expr
	GroupBy  []Expr
	OrderBy  []Ordering
	Limit    int // 0 means no limit
	Offset   int
	Distinct bool
	Alias    string
}

func (*Selection) sourceNode() {}

// Bare reports whether the selection carries no clauses of its own: no
// projection override, filter, grouping, ordering, limit, offset or
// distinct flag. A bare selection wrapping a union is rendered by emitting
// the union's branches directly; a bare selection in a FROM position passes
// through to its inner source.
func (s *Selection) Bare() bool {
	return s.Shape == nil && s.Where == nil && len(s.GroupBy) == 0 &&
		len(s.OrderBy) == 0 && s.Limit == 0 && s.Offset == 0 && !s.Distinct
}

// PrimaryTable returns the leftmost table source reachable from s, or nil.
// Rewriters use it to anchor injected filters.
func PrimaryTable(s Source) *TableSource {
	switch src := s.(type) {
	case *TableSource:
		return src
	case *JoinSource:
		return PrimaryTable(src.Left)
	case *UnionSource:
		return PrimaryTable(src.Main)
	case *Selection:
		return PrimaryTable(src.From)
	default:
		return nil
	}
}
