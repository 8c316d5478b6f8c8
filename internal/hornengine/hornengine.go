// Package hornengine is the Horn engine adapter (spec.md §4.8): it wraps a
// Z3 Fixedpoint/CHC solver behind the four operations the checker core
// needs (declare_variable, register_relation, add_rule, query), so that
// package chc talks to the solver only through the Engine interface.
//
// Grounded on the teacher's constraints/solver.go (push/pop discipline,
// Check/Model/error handling shape) for the adapter's texture, and on the
// retrieved other_examples/Z3Prover-z3__fixedpoint.go reference file for the
// real Fixedpoint C-API surface this teacher dependency family exposes
// (NewFixedpoint, Assert, RegisterRelation, AddRule, Query, SetParams).
package hornengine

import (
	"fmt"
	"time"

	"github.com/aclements/go-z3/z3"
)

// Result is the outcome of a single entailment query, matching spec.md §6.
type Result int

const (
	SAT Result = iota
	UNSAT
	UNKNOWN
	ERROR
	CONFLICTING
)

func (r Result) String() string {
	switch r {
	case SAT:
		return "SAT"
	case UNSAT:
		return "UNSAT"
	case UNKNOWN:
		return "UNKNOWN"
	case ERROR:
		return "ERROR"
	case CONFLICTING:
		return "CONFLICTING"
	default:
		return "INVALID"
	}
}

// Engine is the external "Horn engine" role from spec.md §6/§4.8.
type Engine interface {
	DeclareVariable(name string, sort z3.Sort)
	RegisterRelation(decl z3.FuncDecl)
	AddRule(rule z3.Bool, name string)
	Query(app z3.Bool) (Result, []string)
}

const defaultQueryTimeout = 10 * time.Second

// Z3Engine is the concrete Engine backed by Z3's Fixedpoint/CHC solver.
// One Z3Engine is created per contract analysis and discarded with it
// (spec.md §5).
type Z3Engine struct {
	ctx *z3.Context
	fp  *z3.Fixedpoint
}

// New creates a Z3Engine bound to ctx with the default query timeout.
func New(ctx *z3.Context) *Z3Engine {
	e := &Z3Engine{ctx: ctx, fp: ctx.NewFixedpoint()}
	e.SetQueryTimeout(defaultQueryTimeout)
	return e
}

// SetQueryTimeout bounds every subsequent Query call, mirroring
// constraints/solver.go's bounded-resource discipline but at the engine
// level instead of per-call (spec.md §4.8: "default 10 s").
func (e *Z3Engine) SetQueryTimeout(d time.Duration) {
	params := e.ctx.MkParams()
	params.SetUint("timeout", uint(d.Milliseconds()))
	e.fp.SetParams(params)
}

func (e *Z3Engine) DeclareVariable(name string, sort z3.Sort) {
	e.ctx.Const(name, sort)
}

func (e *Z3Engine) RegisterRelation(decl z3.FuncDecl) {
	e.fp.RegisterRelation(decl)
}

func (e *Z3Engine) AddRule(rule z3.Bool, name string) {
	e.fp.AddRule(rule, name)
}

// Query issues a single entailment query. A single Z3Engine never returns
// CONFLICTING — that result only arises from a portfolio of independent
// solvers disagreeing, which is outside this adapter's scope; it is part of
// the Result enum because package chc's query driver must still handle it
// for whatever Engine implementation is plugged in.
func (e *Z3Engine) Query(app z3.Bool) (Result, []string) {
	switch e.fp.Query(app) {
	case z3.Unsatisfiable:
		return UNSAT, nil
	case z3.Satisfiable:
		return SAT, []string{e.fp.GetAnswer().String()}
	default:
		return UNKNOWN, []string{e.fp.GetReasonUnknown()}
	}
}

var _ fmt.Stringer = Result(0)
