// Package builders provides high-level fluent APIs for assembling statement
// trees. Builders allocate source aliases, accumulate clauses, run the
// registered rewriter pipeline over a cloned tree and hand the result to a
// dialect compiler.
package builders

import (
	"strconv"

	"github.com/bawdo/exprel/rewrite"
)

// builder is the shared base for all builder types: it holds the rewriter
// pipeline common to Select, Insert, Update and Delete builders.
type builder struct {
	rewriters []rewrite.Rewriter
}

func (b *builder) addRewriter(r rewrite.Rewriter) {
	b.rewriters = append(b.rewriters, r)
}

// Rewriters returns the registered rewriter pipeline.
func (b *builder) Rewriters() []rewrite.Rewriter {
	return b.rewriters
}

// aliasAllocator hands out T0, T1, ... source aliases in first-come order.
type aliasAllocator struct {
	next int
}

func (a *aliasAllocator) alloc() string {
	alias := "T" + strconv.Itoa(a.next)
	a.next++
	return alias
}
