package exprs

// Shaping nodes describe how flat column results are reassembled into
// structured objects. They never emit SQL themselves: the statement
// generator flattens them into their constituent leaf expressions, each
// visited once (dedup by node identity) and, when requested, given a
// column alias.

// Field pairs a member name with the expression that populates it.
type Field struct {
	Name string
	Expr Expr
}

// ObjectShape describes a structured object built from constructor
// arguments and named member assignments.
type ObjectShape struct {
	TypeName string
	CtorArgs []Expr
	Fields   []Field
}

func (n *ObjectShape) AsValue(Compiler) (Text, error) {
	return Text{}, &InvalidShapeError{Reason: "object shape " + n.TypeName + " has no value representation"}
}

func (n *ObjectShape) AsPredicate(Compiler) (Text, error) {
	return Text{}, &InvalidShapeError{Reason: "object shape " + n.TypeName + " has no predicate representation"}
}

// CollectionShape describes an ordered collection of projected expressions.
type CollectionShape struct {
	Items []Expr
}

func (n *CollectionShape) AsValue(Compiler) (Text, error) {
	return Text{}, &InvalidShapeError{Reason: "collection shape has no value representation"}
}

func (n *CollectionShape) AsPredicate(Compiler) (Text, error) {
	return Text{}, &InvalidShapeError{Reason: "collection shape has no predicate representation"}
}

// Projection pairs a flattened leaf expression with its requested alias.
// Alias is empty when no name was requested for the leaf.
type Projection struct {
	Expr  Expr
	Alias string
}

// Flatten expands a projection shape into an ordered, identity-deduplicated
// list of leaf projections, preserving first-seen order. seen is shared
// across the Flatten calls of one statement build so that a sub-expression
// referenced twice is projected once; pass a fresh map per statement.
func Flatten(e Expr, seen map[Expr]bool) []Projection {
	return flattenInto(nil, e, "", seen)
}

func flattenInto(out []Projection, e Expr, alias string, seen map[Expr]bool) []Projection {
	switch s := e.(type) {
	case *ObjectShape:
		for _, a := range s.CtorArgs {
			out = flattenInto(out, a, "", seen)
		}
		for _, f := range s.Fields {
			out = flattenInto(out, f.Expr, f.Name, seen)
		}
	case *CollectionShape:
		for _, item := range s.Items {
			out = flattenInto(out, item, "", seen)
		}
	default:
		if seen[e] {
			return out
		}
		seen[e] = true
		out = append(out, Projection{Expr: e, Alias: alias})
	}
	return out
}
