package symencoder

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
)

// SymbolicVariable is one AST variable's current SSA-indexed symbolic
// value, the concrete counterpart to spec.md §6's
// "variable(decl) -> SymbolicVariable" role. Grounded on
// symexec/context.go's per-variable z3 constant construction merged with
// constraints/push_pop.go's "result_N" SSA-renaming-by-suffix convention.
type SymbolicVariable struct {
	ctx      *z3.Context
	decl     ast.Variable
	sort     z3.Sort
	ssaIndex int
	value    z3.Value
}

func newSymbolicVariable(ctx *z3.Context, decl ast.Variable, sort z3.Sort) *SymbolicVariable {
	sv := &SymbolicVariable{ctx: ctx, decl: decl, sort: sort, ssaIndex: 0}
	sv.IncreaseIndex()
	return sv
}

// CurrentName is the SSA-qualified Z3 constant name for this variable's
// current version.
func (v *SymbolicVariable) CurrentName() string {
	return fmt.Sprintf("%s!%d", v.decl.Name(), v.ssaIndex)
}

// CurrentValue returns the current version's symbolic value.
func (v *SymbolicVariable) CurrentValue() z3.Value { return v.value }

// Sort is this variable's logical sort.
func (v *SymbolicVariable) Sort() z3.Sort { return v.sort }

// IncreaseIndex advances the SSA index and rebinds CurrentValue to a fresh,
// otherwise-unconstrained constant of that name — used both for ordinary
// assignment and for knowledge erasure (spec.md §4.6).
func (v *SymbolicVariable) IncreaseIndex() {
	v.ssaIndex++
	v.value = v.ctx.Const(v.CurrentName(), v.sort)
}

// SetZeroValue rebinds CurrentValue to the type's zero value without
// advancing the SSA index past what IncreaseIndex already set — used when
// synthesizing a default constructor (spec.md §4.3, step 5).
func (v *SymbolicVariable) SetZeroValue() {
	switch v.decl.Type().Kind() {
	case ast.TypeBool:
		v.value = v.ctx.FromBool(false)
	case ast.TypeInt, ast.TypeAddress, ast.TypeFunction:
		v.value = v.ctx.FromInt(0, v.sort)
	default:
		// Mappings have no single zero value to assert; leaving the
		// fresh symbolic constant from IncreaseIndex unconstrained is
		// sound (it simply means "any mapping").
	}
}
