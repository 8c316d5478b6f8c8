// Package sortcat is the sort catalogue (spec.md §4.1): it maps AST type
// annotations to the logical sorts predicates are built from, memoizing on
// each type's String() name the way the teacher's EncodingContext.AddType does
// (symexec/context.go, symexec/formula.go, graph's equivalent) for Go types.
package sortcat

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
)

// Catalogue memoizes the z3.Sort for each distinct AST type encountered
// during one contract's analysis.
type Catalogue struct {
	ctx   *z3.Context
	sorts map[string]z3.Sort
}

// New creates a catalogue bound to ctx. One catalogue is created per
// contract analysis and discarded with it (spec.md §5).
func New(ctx *z3.Context) *Catalogue {
	return &Catalogue{ctx: ctx, sorts: make(map[string]z3.Sort)}
}

// Sort returns the memoized z3.Sort for t, computing and caching it on
// first use. Function types degrade to Int (spec.md §4.1) rather than
// panicking, since an unsupported state-variable type must not abort the
// whole contract's analysis (spec.md §7).
func (c *Catalogue) Sort(t ast.Type) z3.Sort {
	key := t.String()
	if s, ok := c.sorts[key]; ok {
		return s
	}
	s := c.compute(t)
	c.sorts[key] = s
	return s
}

func (c *Catalogue) compute(t ast.Type) z3.Sort {
	switch t.Kind() {
	case ast.TypeBool:
		return c.ctx.BoolSort()
	case ast.TypeInt:
		// Every declared integer width maps to the same unbounded Int
		// sort; range assertions (not the sort itself) enforce the
		// width, mirroring symexec/context.go's AddVar for Go's
		// int/uint.
		return c.ctx.IntSort()
	case ast.TypeAddress:
		// Addresses are compared/ordered as 160-bit unsigned integers
		// and never dereferenced by the checker, so Int suffices; no
		// opaque address sort is needed the way the teacher needed one
		// for Go pointers it couldn't otherwise model.
		return c.ctx.IntSort()
	case ast.TypeMapping:
		return c.ctx.ArraySort(c.Sort(t.Key()), c.Sort(t.Value()))
	case ast.TypeFunction:
		// spec.md §4.1: function types as contract state variables
		// degrade to Int, since the Horn engine has no function sort.
		return c.ctx.IntSort()
	default:
		panic(fmt.Sprintf("sortcat: unknown type kind %v for %q", t.Kind(), t.String()))
	}
}

// Sorts maps each variable in vars to its sort, in order — used to build
// the domain vector of a predicate's function sort (spec.md §3's
// sort-consistency invariant).
func (c *Catalogue) Sorts(vars []ast.Variable) []z3.Sort {
	out := make([]z3.Sort, len(vars))
	for i, v := range vars {
		out[i] = c.Sort(v.Type())
	}
	return out
}
