// Package chc is the checker core: it walks a contract's control-flow
// graph, emits a Horn clause for every CFG edge, tracks the SSA and
// path-condition bookkeeping the encoding needs along the way, and issues
// one reachability query per assert. It reaches the AST through the ast
// package's interfaces and the Horn engine through hornengine.Engine, so any
// conforming AST provider and Horn engine can be plugged in without touching
// this package; the expression encoder is the concrete symencoder.Encoder.
package chc

import (
	"fmt"
	"sync/atomic"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
	"github.com/hornchc/checker/diagnostics"
	"github.com/hornchc/checker/internal/hornengine"
	"github.com/hornchc/checker/internal/predicate"
	"github.com/hornchc/checker/internal/sortcat"
	"github.com/hornchc/checker/internal/trace"
	"github.com/hornchc/checker/symencoder"
)

// syntheticID mints unique negative node-identity keys for predicates that
// have no real AST node of their own (the error predicate, a synthesized
// constructor, and the then/else/join/header/body_entry blocks a single
// IfStatement or loop statement spawns several predicates for). The keys
// count down from -1, and contractir mints positive IDs from 1, so they
// cannot collide without the registry needing to know about this package's
// node kinds.
var syntheticCounter int64

func syntheticID() int64 {
	return atomic.AddInt64(&syntheticCounter, -1)
}

// target is one recorded verification target: an assert call and the
// error-predicate version allocated for it.
type target struct {
	call  *ast.FunctionCall
	index int
}

// TargetResult is one assert's outcome once Checker.Check has queried the
// Horn engine for it.
type TargetResult struct {
	Call *ast.FunctionCall
	Safe bool
}

// Checker is the per-analysis traversal state: one Checker.Check call
// analyzes exactly one contract, with a fresh sort catalogue and expression
// encoder for the duration of that analysis and the Checker's one predicate
// registry reset at its start.
type Checker struct {
	ctx    *z3.Context
	engine hornengine.Engine
	diag   *diagnostics.Reporter
	trace  *trace.Tracer

	sorts *sortcat.Catalogue
	preds *predicate.Registry
	enc   *symencoder.Encoder

	contract   ast.Contract
	stateVars  []ast.Variable
	stateSorts []z3.Sort

	interfaceSym   *predicate.Symbol
	errorSym       *predicate.Symbol
	errorSymKey    int64
	constructorSym *predicate.Symbol // nil when the contract has a user-written constructor

	currentFunction ast.Function
	currentBodyID   int64 // fn.Body().NodeID() for the function currently being visited
	funcVars        []ast.Variable
	funcSorts       []z3.Sort
	bodyVars        []ast.Variable
	bodySorts       []z3.Sort

	path           []pathEntry
	functionBlocks int

	targets []target
	rules   []Rule
}

// New creates a Checker bound to ctx, issuing queries through engine and
// reporting warnings through diag. t may be nil to disable tracing. The
// predicate registry is allocated once here and reused across every
// contract the Checker analyzes; beginContract calls its Reset between
// contracts (spec.md §5's "reset() is called between contracts to drop
// per-contract registrations").
func New(ctx *z3.Context, engine hornengine.Engine, diag *diagnostics.Reporter, t *trace.Tracer) *Checker {
	return &Checker{ctx: ctx, engine: engine, diag: diag, trace: t, preds: predicate.New(ctx, engine)}
}

// Check analyzes one contract, returning one TargetResult per assert
// encountered in a visited function, in encounter order. A library, an
// interface, or a contract whose checker feature is disabled produces no
// targets and no error.
func (c *Checker) Check(contract ast.Contract) (results []TargetResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(internalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	if !c.shouldVisitContract(contract) {
		return nil, nil
	}

	c.trace.Printf("analyzing contract %q", contract.Name())
	c.beginContract(contract)

	for _, fn := range contract.Functions() {
		if shouldVisitFunction(fn) {
			c.visitFunction(fn)
		}
	}

	return c.endContract(), nil
}

func (c *Checker) shouldVisitContract(contract ast.Contract) bool {
	switch contract.Kind() {
	case ast.KindLibrary, ast.KindInterface:
		return false
	}
	return contract.CheckerEnabled()
}

func shouldVisitFunction(fn ast.Function) bool {
	return fn.IsPublic() && fn.IsImplemented()
}

// beginContract is CHC.cpp's visit(ContractDefinition): reset per-contract
// state, allocate the interface and error predicates, and — if the
// contract has no user-written constructor — synthesize one that
// zero-initializes every state variable (spec.md §4.3, steps 1-5).
func (c *Checker) beginContract(contract ast.Contract) {
	c.sorts = sortcat.New(c.ctx)
	c.preds.Reset()
	c.enc = symencoder.New(c.ctx, c.sorts)

	c.contract = contract
	c.stateVars = ast.StateVariablesIncludingInherited(contract)
	c.stateSorts = c.sorts.Sorts(c.stateVars)
	c.targets = nil
	c.rules = nil
	c.functionBlocks = 0
	c.path = nil

	interfaceName := fmt.Sprintf("interface_%s_%d", contract.Name(), contract.NodeID())
	c.interfaceSym = c.preds.Fresh(contract.NodeID(), c.stateSorts, interfaceName)

	c.errorSymKey = syntheticID()
	c.errorSym = c.preds.Fresh(c.errorSymKey, nil, "error")

	if contract.Constructor() == nil {
		c.synthesizeConstructor(contract, interfaceName)
	} else {
		c.constructorSym = nil
	}
}

func (c *Checker) synthesizeConstructor(contract ast.Contract, interfaceName string) {
	constructorName := fmt.Sprintf("constructor_%s_%d", contract.Name(), contract.NodeID())
	c.constructorSym = c.preds.Fresh(syntheticID(), c.stateSorts, constructorName)

	for _, v := range c.stateVars {
		sv := c.enc.Variable(v)
		sv.IncreaseIndex()
		c.engine.DeclareVariable(sv.CurrentName(), sv.Sort())
		sv.SetZeroValue()
	}

	constructorAppl := c.constructorSym.Apply(c.stateValues()...)
	c.addRule(c.ctx.FromBool(true), constructorAppl, constructorName)

	interfaceAppl := c.interfaceSym.Apply(c.stateValues()...)
	c.addRule(and(constructorAppl, c.enc.Assertions()), interfaceAppl, constructorName+"_to_"+interfaceName)
}

// endContract is CHC.cpp's endVisit(ContractDefinition): query error_i for
// every recorded target (spec.md §4.3's "On exit" rule, §4.7).
func (c *Checker) endContract() []TargetResult {
	results := make([]TargetResult, len(c.targets))
	for i, t := range c.targets {
		errApp := c.errorSym.ApplyAt(t.index)
		results[i] = TargetResult{Call: t.call, Safe: c.query(errApp, t.call)}
	}
	return results
}

// query issues a single entailment query and turns a CONFLICTING or ERROR
// result into a diagnostic warning at the target's location, per spec.md
// §4.3/§7's table.
func (c *Checker) query(app z3.Bool, call *ast.FunctionCall) bool {
	result, info := c.engine.Query(app)
	loc := diagnostics.Location{NodeID: call.NodeID(), Note: "assert"}
	switch result {
	case hornengine.UNSAT:
		return true
	case hornengine.SAT, hornengine.UNKNOWN:
		c.diag.Warning(diagnostics.Warning{Kind: diagnostics.KindUnproven, Location: loc, Message: "assertion not proven"})
		return false
	case hornengine.CONFLICTING:
		c.diag.Warning(diagnostics.Warning{Kind: diagnostics.KindConflicting, Location: loc, Message: "at least two SMT solvers provided conflicting answers; results might not be sound"})
		return false
	default:
		msg := "error trying to invoke SMT solver"
		if len(info) > 0 {
			msg = fmt.Sprintf("%s: %s", msg, info[0])
		}
		c.diag.Warning(diagnostics.Warning{Kind: diagnostics.KindSolverError, Location: loc, Message: msg})
		return false
	}
}

func (c *Checker) stateValues() []z3.Value {
	vals := make([]z3.Value, len(c.stateVars))
	for i, v := range c.stateVars {
		vals[i] = c.enc.Variable(v).CurrentValue()
	}
	return vals
}
