package compilers

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/exprs/schema"
)

// Statement entry points. Each one resets per-statement state, renders the
// full statement text and returns the parameters extracted along the way.
// Keywords of the statement scaffolding are uppercase; expression-level
// operators and functions render lowercase.

// Select compiles a selection into a SELECT statement.
func (b *baseCompiler) Select(sel *exprs.Selection) (string, []Param, error) {
	b.begin()
	sql, err := b.selectSQL(sel)
	if err != nil {
		return "", nil, err
	}
	return sql, b.params.List(), nil
}

// Insert compiles a values-form INSERT.
func (b *baseCompiler) Insert(ins *exprs.Insert) (string, []Param, error) {
	b.begin()
	if len(ins.Columns) == 0 || len(ins.Columns) != len(ins.Values) {
		return "", nil, &exprs.InvalidShapeError{Reason: "insert column and value counts differ"}
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.hooks.QuoteName(ins.Table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(ins.Columns, ", "))
	sb.WriteString(") VALUES (")
	for i, v := range ins.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		s, err := b.arg(v)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(s)
	}
	sb.WriteString(")")
	return sb.String(), b.params.List(), nil
}

// InsertFromQuery compiles INSERT INTO ... SELECT. The selection must
// project an object shape built without constructor arguments; every field
// name must resolve to a column of the target table.
func (b *baseCompiler) InsertFromQuery(target schema.Table, sel *exprs.Selection) (string, []Param, error) {
	b.begin()
	shape, ok := sel.Shape.(*exprs.ObjectShape)
	if !ok {
		return "", nil, &exprs.InvalidShapeError{Reason: "insert-from-query requires an object projection"}
	}
	if len(shape.CtorArgs) > 0 {
		return "", nil, &exprs.InvalidShapeError{Reason: "insert-from-query projection must use named fields only"}
	}
	if len(shape.Fields) == 0 {
		return "", nil, &exprs.InvalidShapeError{Reason: "insert-from-query projection has no fields"}
	}
	cols := make([]string, len(shape.Fields))
	for i, f := range shape.Fields {
		if _, ok := target.Column(f.Name); !ok {
			return "", nil, &exprs.MissingContextError{Member: f.Name, Shape: target.Name}
		}
		cols[i] = f.Name
	}
	body, err := b.selectSQL(sel)
	if err != nil {
		return "", nil, err
	}
	sql := "INSERT INTO " + b.hooks.QuoteName(target.Name) +
		" (" + strings.Join(cols, ", ") + ") " + body
	return sql, b.params.List(), nil
}

// Update compiles a single-table UPDATE. A FROM source other than the target
// table itself means a joined or correlated update, which the target
// dialects cannot express.
func (b *baseCompiler) Update(u *exprs.Update) (string, []Param, error) {
	b.begin()
	if err := singleTable(u.Target, u.From, "multi-table update"); err != nil {
		return "", nil, err
	}
	if len(u.Sets) == 0 {
		return "", nil, &exprs.InvalidShapeError{Reason: "update without assignments"}
	}
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.hooks.QuoteName(u.Target.Name))
	sb.WriteString(" SET ")
	for i, set := range u.Sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, err := b.arg(set.Value)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(set.Column)
		sb.WriteString(" = ")
		sb.WriteString(v)
	}
	if u.Where != nil {
		t, err := b.predicate(u.Where)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(t.SQL)
	}
	return sb.String(), b.params.List(), nil
}

// Delete compiles a single-table DELETE with the same target restriction as
// Update.
func (b *baseCompiler) Delete(d *exprs.Delete) (string, []Param, error) {
	b.begin()
	if err := singleTable(d.Target, d.From, "multi-table delete"); err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.hooks.QuoteName(d.Target.Name))
	if d.Where != nil {
		t, err := b.predicate(d.Where)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(t.SQL)
	}
	return sb.String(), b.params.List(), nil
}

// Combine compiles two selections under a set operator.
func (b *baseCompiler) Combine(left, right *exprs.Selection, kind exprs.SetOpKind) (string, []Param, error) {
	b.begin()
	l, err := b.selectSQL(left)
	if err != nil {
		return "", nil, err
	}
	r, err := b.selectSQL(right)
	if err != nil {
		return "", nil, err
	}
	return l + " " + kind.String() + " " + r, b.params.List(), nil
}

func singleTable(target *exprs.TableSource, from exprs.Source, construct string) error {
	if target == nil {
		return &exprs.InvalidShapeError{Reason: "statement without a target table"}
	}
	if from == nil {
		return nil
	}
	if t, ok := from.(*exprs.TableSource); ok && t.Name == target.Name {
		return nil
	}
	return &exprs.DialectRestrictionError{Construct: construct}
}

// selectSQL renders one SELECT. A bare selection over a union flattens into
// the union's branch statements with no wrapper.
func (b *baseCompiler) selectSQL(sel *exprs.Selection) (string, error) {
	if sel.Bare() {
		if u, ok := sel.From.(*exprs.UnionSource); ok {
			return b.unionSQL(u)
		}
	}
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if sel.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if err := b.writeProjections(&sb, sel.Shape); err != nil {
		return "", err
	}
	from, err := b.renderFrom(sel.From, false)
	if err != nil {
		return "", err
	}
	sb.WriteString(" FROM ")
	sb.WriteString(from)
	if sel.Where != nil {
		t, err := b.predicate(sel.Where)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(t.SQL)
	}
	for i, g := range sel.GroupBy {
		if i == 0 {
			sb.WriteString(" GROUP BY ")
		} else {
			sb.WriteString(", ")
		}
		s, err := b.arg(g)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	for i, o := range sel.OrderBy {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		s, err := b.arg(o.Expr)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		if o.Desc {
			sb.WriteString(" DESC")
		}
	}
	switch {
	case sel.Limit > 0:
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(sel.Limit))
		if sel.Offset > 0 {
			sb.WriteString(" OFFSET ")
			sb.WriteString(strconv.Itoa(sel.Offset))
		}
	case sel.Offset > 0:
		// Offset without limit needs a dialect-specific no-limit marker.
		if tok := b.hooks.NoLimitToken(); tok != "" {
			sb.WriteString(" LIMIT ")
			sb.WriteString(tok)
		}
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(sel.Offset))
	}
	return sb.String(), nil
}

// writeProjections renders the SELECT list. Column leaves keep their own
// name unless the requested alias differs; computed expressions are always
// aliased, with generated C<i> names where none was requested.
func (b *baseCompiler) writeProjections(sb *strings.Builder, shape exprs.Expr) error {
	if shape == nil {
		sb.WriteString("*")
		return nil
	}
	projs := exprs.Flatten(shape, b.rendered)
	if len(projs) == 0 {
		return &exprs.InvalidShapeError{Reason: "projection flattens to no columns"}
	}
	for i, p := range projs {
		if i > 0 {
			sb.WriteString(", ")
		}
		s, err := b.arg(p.Expr)
		if err != nil {
			return err
		}
		sb.WriteString(s)
		switch leaf := p.Expr.(type) {
		case *exprs.Column:
			if p.Alias != "" && p.Alias != leaf.Name {
				sb.WriteString(" AS ")
				sb.WriteString(p.Alias)
			}
		case *exprs.QuoteColumn:
			if p.Alias != "" && p.Alias != leaf.Name {
				sb.WriteString(" AS ")
				sb.WriteString(p.Alias)
			}
		default:
			alias := p.Alias
			if alias == "" {
				alias = "C" + strconv.Itoa(i)
			}
			sb.WriteString(" AS ")
			sb.WriteString(alias)
		}
	}
	return nil
}

// renderFrom renders a FROM-clause source. force requires a self-contained
// rendering even where a bare wrapper could pass through (the branches of a
// right-join swap must each stand alone).
func (b *baseCompiler) renderFrom(src exprs.Source, force bool) (string, error) {
	switch s := src.(type) {
	case *exprs.TableSource:
		// The embedded selection override stands in for the table only where
		// the rendering must be self-contained.
		if force && s.Over != nil {
			inner, err := b.selectSQL(s.Over)
			if err != nil {
				return "", err
			}
			return "(" + inner + ") AS " + s.Alias, nil
		}
		name := b.hooks.QuoteName(s.Name)
		if s.Alias != "" {
			return name + " AS " + s.Alias, nil
		}
		return name, nil
	case *exprs.JoinSource:
		return b.renderJoin(s)
	case *exprs.UnionSource:
		inner, err := b.unionSQL(s)
		if err != nil {
			return "", err
		}
		out := "(" + inner + ")"
		if s.Alias != "" {
			out += " AS " + s.Alias
		}
		return out, nil
	case *exprs.Selection:
		if s.Bare() && !force {
			return b.renderFrom(s.From, false)
		}
		inner, err := b.selectSQL(s)
		if err != nil {
			return "", err
		}
		out := "(" + inner + ")"
		if s.Alias != "" {
			out += " AS " + s.Alias
		}
		return out, nil
	}
	return "", &exprs.InvalidShapeError{Reason: "unknown source kind"}
}

func (b *baseCompiler) renderJoin(j *exprs.JoinSource) (string, error) {
	if j.Kind == exprs.JoinFull {
		return "", &exprs.DialectRestrictionError{Construct: "full outer join"}
	}
	left, right := j.Left, j.Right
	kind := j.Kind
	if kind == exprs.JoinRight {
		// No native right join: swap operands under a left join.
		left, right = right, left
		kind = exprs.JoinLeft
	}
	l, err := b.renderFrom(left, true)
	if err != nil {
		return "", err
	}
	r, err := b.renderFrom(right, true)
	if err != nil {
		return "", err
	}
	if kind == exprs.JoinCross {
		return l + " CROSS JOIN " + r, nil
	}
	if j.On == nil {
		return "", &exprs.InvalidShapeError{Reason: "join without an on-predicate"}
	}
	on, err := b.predicate(j.On)
	if err != nil {
		return "", err
	}
	return l + " " + kind.String() + " " + r + " ON " + on.SQL, nil
}

// unionSQL renders a set combination. Nested unions flatten into one chain
// instead of wrapping each level in a derived table.
func (b *baseCompiler) unionSQL(u *exprs.UnionSource) (string, error) {
	l, err := b.unionBranch(u.Main)
	if err != nil {
		return "", err
	}
	r, err := b.unionBranch(u.Other)
	if err != nil {
		return "", err
	}
	return l + " " + u.Kind.String() + " " + r, nil
}

func (b *baseCompiler) unionBranch(src exprs.Source) (string, error) {
	switch s := src.(type) {
	case *exprs.Selection:
		return b.selectSQL(s)
	case *exprs.UnionSource:
		return b.unionSQL(s)
	default:
		return b.selectSQL(&exprs.Selection{From: src})
	}
}

// inPredicate renders x in (...) with the two legal right-side shapes: a
// single-column selection or an enumerable constant. An empty enumeration
// folds to a constant truth value.
func (b *baseCompiler) inPredicate(n *exprs.Binary, negate bool) (exprs.Text, error) {
	left, err := b.operand(n.Op, n.Left, false)
	if err != nil {
		return exprs.Text{}, err
	}
	keyword := "in"
	if negate {
		keyword = "not in"
	}
	switch r := n.Right.(type) {
	case *exprs.Subquery:
		if err := singleColumn(r.Select); err != nil {
			return exprs.Text{}, err
		}
		sub, err := b.selectSQL(r.Select)
		if err != nil {
			return exprs.Text{}, err
		}
		return exprs.Text{SQL: left + " " + keyword + " (" + sub + ")", Kind: n.Op}, nil
	case *exprs.Constant:
		vals, ok := enumerate(r.Value)
		if !ok {
			return exprs.Text{}, &exprs.InvalidShapeError{Reason: "in right side is not enumerable"}
		}
		if len(vals) == 0 {
			if negate {
				return exprs.Text{SQL: "1 = 1", Kind: exprs.OpEqual}, nil
			}
			return exprs.Text{SQL: "1 = 0", Kind: exprs.OpEqual}, nil
		}
		parts := make([]string, len(vals))
		for i, v := range vals {
			ph, err := b.params.Add(v)
			if err != nil {
				return exprs.Text{}, err
			}
			parts[i] = ph
		}
		return exprs.Text{
			SQL:  left + " " + keyword + " (" + strings.Join(parts, ", ") + ")",
			Kind: n.Op,
		}, nil
	}
	return exprs.Text{}, &exprs.InvalidShapeError{
		Reason: "in right side must be an enumerable constant or a single-column selection",
	}
}

func singleColumn(sel *exprs.Selection) error {
	if sel.Shape == nil {
		return &exprs.InvalidShapeError{Reason: "in subquery must project exactly one column"}
	}
	projs := exprs.Flatten(sel.Shape, make(map[exprs.Expr]bool))
	if len(projs) != 1 {
		return &exprs.InvalidShapeError{Reason: "in subquery must project exactly one column"}
	}
	return nil
}

// enumerate unpacks a slice or array constant into its elements.
func enumerate(v any) ([]any, bool) {
	if vals, ok := v.([]any); ok {
		return vals, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
