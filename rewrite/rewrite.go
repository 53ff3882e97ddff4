// Package rewrite defines the Rewriter interface for statement middleware.
// Builders apply registered rewriters to a cloned statement right before
// compilation, so a rewriter never mutates the caller's tree.
package rewrite

import "github.com/bawdo/exprel/exprs"

// Rewriter is the interface statement rewrite plugins implement. Plugins
// embed Base and override only the methods they need.
type Rewriter interface {
	RewriteSelect(sel *exprs.Selection) (*exprs.Selection, error)
	RewriteInsert(ins *exprs.Insert) (*exprs.Insert, error)
	RewriteUpdate(u *exprs.Update) (*exprs.Update, error)
	RewriteDelete(d *exprs.Delete) (*exprs.Delete, error)
}

// Base provides no-op defaults for all Rewriter methods.
type Base struct{}

func (Base) RewriteSelect(s *exprs.Selection) (*exprs.Selection, error) { return s, nil }
func (Base) RewriteInsert(s *exprs.Insert) (*exprs.Insert, error)       { return s, nil }
func (Base) RewriteUpdate(s *exprs.Update) (*exprs.Update, error)       { return s, nil }
func (Base) RewriteDelete(s *exprs.Delete) (*exprs.Delete, error)       { return s, nil }

// Tables collects every table leaf reachable from a source, in left-to-right
// order. Rewriters use it to find the tables a statement touches.
func Tables(src exprs.Source) []*exprs.TableSource {
	return appendTables(nil, src)
}

func appendTables(out []*exprs.TableSource, src exprs.Source) []*exprs.TableSource {
	switch s := src.(type) {
	case *exprs.TableSource:
		out = append(out, s)
	case *exprs.JoinSource:
		out = appendTables(out, s.Left)
		out = appendTables(out, s.Right)
	case *exprs.UnionSource:
		out = appendTables(out, s.Main)
		out = appendTables(out, s.Other)
	case *exprs.Selection:
		out = appendTables(out, s.From)
	}
	return out
}

// AndWhere conjoins cond onto an existing filter, or returns cond when the
// filter is empty.
func AndWhere(where, cond exprs.Expr) exprs.Expr {
	if where == nil {
		return cond
	}
	return exprs.NewBinary(where, cond, exprs.OpAndAlso)
}
