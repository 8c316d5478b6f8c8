// Package symencoder is the reference "Expression encoder" (spec.md §6):
// it turns AST expressions and statements into Z3 symbolic values and
// accumulated path-local constraints. Merged from the teacher's two
// divergent drafts, graph/formula.go (the Formula/Var/BinOp/If tree) and
// symexec/{context,formula,symvalue}.go (the EncodingContext with its
// per-type z3 constant construction), into one package.
package symencoder

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
	"github.com/hornchc/checker/internal/sortcat"
)

// scope is one entry in the solver-scope stack, mirroring the engine's
// push/pop discipline (spec.md §4.6, grounded on constraints/push_pop.go).
type scope struct {
	assertions []z3.Bool
}

// Encoder is the concrete expression encoder bound to one contract's
// analysis; it owns the variable table and the solver-scope stack.
type Encoder struct {
	ctx    *z3.Context
	sorts  *sortcat.Catalogue
	vars   map[int64]*SymbolicVariable
	scopes []*scope
}

// New creates an Encoder bound to ctx and sorts. One Encoder is created per
// contract analysis (spec.md §5).
func New(ctx *z3.Context, sorts *sortcat.Catalogue) *Encoder {
	e := &Encoder{ctx: ctx, sorts: sorts, vars: make(map[int64]*SymbolicVariable)}
	e.PushSolver()
	return e
}

// Variable returns decl's SymbolicVariable, creating it (SSA index 1) on
// first use.
func (e *Encoder) Variable(decl ast.Variable) *SymbolicVariable {
	if sv, ok := e.vars[decl.NodeID()]; ok {
		return sv
	}
	sv := newSymbolicVariable(e.ctx, decl, e.sorts.Sort(decl.Type()))
	e.vars[decl.NodeID()] = sv
	return sv
}

// PushSolver opens a new, nested assertion scope, mirroring the registry's
// block-entry push (spec.md §4.6's "parallel solver scope stack").
func (e *Encoder) PushSolver() {
	e.scopes = append(e.scopes, &scope{})
}

// PopSolver closes the innermost assertion scope.
func (e *Encoder) PopSolver() {
	if len(e.scopes) == 0 {
		panic("symencoder: pop on empty scope stack")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Encoder) top() *scope {
	if len(e.scopes) == 0 {
		panic("symencoder: no open scope")
	}
	return e.scopes[len(e.scopes)-1]
}

func (e *Encoder) assert(b z3.Bool) {
	top := e.top()
	top.assertions = append(top.assertions, b)
}

// Assert records an externally-built constraint on the current scope —
// used by callers (package chc's range-assertion helper) that need to
// assert something the encoder itself didn't derive from an ast.Expression.
func (e *Encoder) Assert(b z3.Bool) {
	e.assert(b)
}

// Assertions returns the conjunction of every constraint accumulated on the
// current (innermost) scope, per spec.md §6.
func (e *Encoder) Assertions() z3.Bool {
	top := e.top()
	if len(top.assertions) == 0 {
		return e.ctx.FromBool(true)
	}
	conj := top.assertions[0]
	for _, a := range top.assertions[1:] {
		conj = conj.And(a)
	}
	return conj
}

// varState is one variable's SSA bookkeeping at a point in time.
type varState struct {
	ssaIndex int
	value    z3.Value
}

// VarSnapshot is an opaque capture of every variable's current SSA state.
// Package chc uses it to fork encoding along an if-statement's branches
// from the same starting point and restore between them, mirroring the
// scoped variable declarations CHC.cpp gets for free from a shared
// SMTEncoder stack (spec.md §4.5).
type VarSnapshot map[int64]varState

// Snapshot captures the current SSA state of every variable seen so far.
func (e *Encoder) Snapshot() VarSnapshot {
	snap := make(VarSnapshot, len(e.vars))
	for id, sv := range e.vars {
		snap[id] = varState{ssaIndex: sv.ssaIndex, value: sv.value}
	}
	return snap
}

// Restore rewinds every variable present in snap to its captured SSA
// state. Variables created after the snapshot was taken are left alone.
func (e *Encoder) Restore(snap VarSnapshot) {
	for id, s := range snap {
		if sv, ok := e.vars[id]; ok {
			sv.ssaIndex = s.ssaIndex
			sv.value = s.value
		}
	}
}

// ResetVariables drops the SSA assignment of every variable satisfying
// keep, rebinding each to a fresh, unconstrained symbolic value — the
// concrete "erase knowledge" operation (spec.md §4.6, GLOSSARY).
func (e *Encoder) ResetVariables(keep func(ast.Variable) bool) {
	for _, sv := range e.vars {
		if keep(sv.decl) {
			sv.IncreaseIndex()
		}
	}
}

// Expression encodes e's value, recursing into sub-expressions. Side
// effects of assignment expressions are recorded as assertions on the
// current scope, matching spec.md §4.3/§4.5's "side effects of condition"
// language: evaluating an expression may itself extend Assertions().
func (enc *Encoder) Expression(e ast.Expression) z3.Value {
	switch e := e.(type) {
	case *ast.Identifier:
		return enc.Variable(e.Var).CurrentValue()
	case *ast.Literal:
		return enc.literal(e)
	case *ast.BinaryExpr:
		return enc.binary(e)
	case *ast.UnaryExpr:
		return enc.unary(e)
	case *ast.Assignment:
		return enc.assignment(e)
	case *ast.IndexAccess:
		return enc.index(e)
	case *ast.FunctionCall:
		return enc.call(e)
	default:
		panic(fmt.Sprintf("symencoder: unknown expression node %T", e))
	}
}

func (enc *Encoder) literal(l *ast.Literal) z3.Value {
	switch l.Typ.Kind() {
	case ast.TypeBool:
		return enc.ctx.FromBool(l.Bool)
	case ast.TypeInt, ast.TypeAddress:
		return enc.ctx.FromInt(l.Int, enc.sorts.Sort(l.Typ))
	default:
		panic(fmt.Sprintf("symencoder: unsupported literal type %q", l.Typ.String()))
	}
}

// valueEq dispatches Eq to the concrete z3 sort of left, since z3.Value
// itself exposes no Eq method in this binding.
func valueEq(left, right z3.Value) z3.Bool {
	switch l := left.(type) {
	case z3.Int:
		return l.Eq(right.(z3.Int))
	case z3.Bool:
		return l.Eq(right.(z3.Bool))
	case z3.Array:
		return l.Eq(right.(z3.Array))
	default:
		panic(fmt.Sprintf("symencoder: unsupported Eq operand type %T", left))
	}
}

func (enc *Encoder) binary(b *ast.BinaryExpr) z3.Value {
	left := enc.Expression(b.Left)
	right := enc.Expression(b.Right)
	switch b.Op {
	case ast.OpAdd:
		return left.(z3.Int).Add(right.(z3.Int))
	case ast.OpSub:
		return left.(z3.Int).Sub(right.(z3.Int))
	case ast.OpMul:
		return left.(z3.Int).Mul(right.(z3.Int))
	case ast.OpDiv:
		return left.(z3.Int).Div(right.(z3.Int))
	case ast.OpMod:
		return left.(z3.Int).Mod(right.(z3.Int))
	case ast.OpEq:
		return valueEq(left, right)
	case ast.OpNeq:
		return valueEq(left, right).Not()
	case ast.OpLt:
		return left.(z3.Int).LT(right.(z3.Int))
	case ast.OpLe:
		return left.(z3.Int).LE(right.(z3.Int))
	case ast.OpGt:
		return left.(z3.Int).GT(right.(z3.Int))
	case ast.OpGe:
		return left.(z3.Int).GE(right.(z3.Int))
	case ast.OpAnd:
		return left.(z3.Bool).And(right.(z3.Bool))
	case ast.OpOr:
		return left.(z3.Bool).Or(right.(z3.Bool))
	default:
		panic(fmt.Sprintf("symencoder: unknown binary operator %v", b.Op))
	}
}

func (enc *Encoder) unary(u *ast.UnaryExpr) z3.Value {
	arg := enc.Expression(u.Arg)
	switch u.Op {
	case ast.OpNot:
		return arg.(z3.Bool).Not()
	case ast.OpNeg:
		return arg.(z3.Int).Neg()
	default:
		panic(fmt.Sprintf("symencoder: unknown unary operator %v", u.Op))
	}
}

// assignment evaluates Value, advances Target's SSA index, asserts the new
// version equals the evaluated value on the current scope, and returns the
// new value — Solidity's assignment-as-expression semantics, grounded on
// the teacher's BinOp.Encode pattern of asserting `result.Eq(...)`.
func (enc *Encoder) assignment(a *ast.Assignment) z3.Value {
	rhs := enc.Expression(a.Value)
	sv := enc.Variable(a.Target)
	sv.IncreaseIndex()
	enc.assert(valueEq(sv.CurrentValue(), rhs))
	return sv.CurrentValue()
}

func (enc *Encoder) index(ix *ast.IndexAccess) z3.Value {
	m := enc.Expression(ix.Map).(z3.Array)
	idx := enc.Expression(ix.Index)
	return m.Select(idx)
}

// call encodes a function-call expression's return value as a fresh,
// unconstrained symbolic value. The knowledge-erasure side effect of
// External/DelegateCall/etc. calls is triggered by package chc (it owns the
// enclosing-scope tracking), not by the encoder itself.
func (enc *Encoder) call(c *ast.FunctionCall) z3.Value {
	if c.Typ == nil {
		return nil
	}
	name := fmt.Sprintf("$call_%d", c.NodeID())
	return enc.ctx.Const(name, enc.sorts.Sort(c.Typ))
}
