package chc

import (
	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
	"github.com/hornchc/checker/internal/typelattice"
)

// declareVariable looks up v's symbolic value (created at SSA index 1 on
// first use), registers its current name and sort with the Horn engine
// (spec.md §4.8's declare_variable op), and asserts its declared width's
// range on the current scope.
func (c *Checker) declareVariable(v ast.Variable) {
	sv := c.enc.Variable(v)
	c.engine.DeclareVariable(sv.CurrentName(), sv.Sort())
	c.assertRange(v)
}

func (c *Checker) declareVariables(vars []ast.Variable) {
	for _, v := range vars {
		c.declareVariable(v)
	}
}

// valuesOf returns each variable's current symbolic value, in order —
// builds the argument tuple for a predicate application (spec.md §3's
// "sort-consistency invariant": the tuple's sorts must match the target
// predicate's declared domain, which c.sorts.Sorts(vars) built it from).
func (c *Checker) valuesOf(vars []ast.Variable) []z3.Value {
	vals := make([]z3.Value, len(vars))
	for i, v := range vars {
		vals[i] = c.enc.Variable(v).CurrentValue()
	}
	return vals
}

func concatVars(groups ...[]ast.Variable) []ast.Variable {
	var out []ast.Variable
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// assertRange asserts the implicit min/max bound of v's declared integer
// width (spec.md §4.1: "Every declared integer width maps to the same
// unbounded Int sort; range assertions... enforce the width"), looked up
// through internal/typelattice rather than re-deriving bounds ad hoc.
// Widths whose range does not fit an int64 (uint64, 128, 256) fall back to
// a one-sided non-negativity assertion for unsigned values, and are left
// otherwise unconstrained for signed ones.
func (c *Checker) assertRange(v ast.Variable) {
	t := v.Type()
	var elem *typelattice.Element
	switch t.Kind() {
	case ast.TypeInt:
		elem = typelattice.ForWidth(t.BitWidth(), t.Signed())
	case ast.TypeAddress:
		elem = typelattice.Address
	default:
		return
	}
	if elem == nil {
		return
	}

	sv := c.enc.Variable(v)
	value, ok := sv.CurrentValue().(z3.Int)
	if !ok {
		return
	}
	sort := sv.Sort()
	if lo, hi, exact := elem.Bounds(); exact {
		c.enc.Assert(value.GE(c.ctx.FromInt(lo, sort)).And(value.LE(c.ctx.FromInt(hi, sort))))
		return
	}
	if elem.NonNegative() {
		c.enc.Assert(value.GE(c.ctx.FromInt(0, sort)))
	}
}
