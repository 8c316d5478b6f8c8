package chc

import (
	"fmt"

	"github.com/hornchc/checker/ast"
	"github.com/hornchc/checker/internal/predicate"
)

// predicateName mirrors CHC.cpp's predicateName: the constructor and
// fallback get their own base names, every other function is
// "function_<name>", all suffixed with the node's identity so that
// multiple contracts analyzed in one process never collide (spec.md §4.2).
func predicateName(fn ast.Function) string {
	switch {
	case fn.IsConstructor():
		return fmt.Sprintf("constructor_%d", fn.NodeID())
	case fn.IsFallback():
		return fmt.Sprintf("fallback_%d", fn.NodeID())
	default:
		return fmt.Sprintf("function_%s_%d", fn.Name(), fn.NodeID())
	}
}

// visitFunction is CHC.cpp's visit(FunctionDefinition)/endVisit(FunctionDefinition)
// pair collapsed into one straight-line call, since Go's recursive traversal
// doesn't need the enter/exit visitor split spec.md §9 recommends moving
// away from. It allocates the three-predicate chain P_F / P_F.body / P_F.exit
// (spec.md §4.4), pushes P_F and P_F.body onto the path stack for the
// duration of the body traversal, and restores the stack to empty before
// returning.
func (c *Checker) visitFunction(fn ast.Function) {
	c.currentFunction = fn
	c.functionBlocks = 0

	c.funcVars = concatVars(c.stateVars, fn.Parameters(), fn.Returns())
	c.funcSorts = c.sorts.Sorts(c.funcVars)
	c.bodyVars = concatVars(c.funcVars, fn.Locals())
	c.bodySorts = c.sorts.Sorts(c.bodyVars)

	name := predicateName(fn)
	funcSym := c.preds.Fresh(fn.NodeID(), c.funcSorts, name)

	c.declareVariables(fn.Parameters())
	c.declareVariables(fn.Returns())
	initAssertions := c.enc.Assertions()

	funcAppl := funcSym.Apply(c.valuesOf(c.funcVars)...)
	interfaceAppl := c.interfaceSym.Apply(c.stateValues()...)
	c.addRule(interfaceAppl, funcAppl, c.interfaceSym.CurrentName()+"_to_"+funcSym.CurrentName())

	c.pushBlock(pathEntry{app: funcAppl, args: c.valuesOf(c.funcVars), name: funcSym.CurrentName()})

	bodyName := name + "_body"
	c.currentBodyID = fn.Body().NodeID()
	bodySym := c.preds.Fresh(c.currentBodyID, c.bodySorts, bodyName)
	bodyAppl := bodySym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(funcAppl, bodyAppl, funcSym.CurrentName()+"_to_"+bodySym.CurrentName())

	c.pushBlock(pathEntry{app: bodyAppl, args: c.valuesOf(c.bodyVars), name: bodySym.CurrentName()})
	// Re-assert the parameter/return init constraints (range assertions)
	// inside the body scope — they were accumulated on the enclosing scope
	// before P_F was pushed, which the P_F and body pushes shadowed.
	c.enc.Assert(initAssertions)

	invariant(c.functionBlocks == 0, "visitFunction", "functionBlocks not reset on entry")
	c.functionBlocks = 2

	for _, stmt := range fn.Body().Statements() {
		c.visitStatement(stmt)
	}

	c.endFunction(fn, funcSym)
}

// endFunction is CHC.cpp's endVisit(FunctionDefinition). The rule's "from"
// side is named after whatever block is actually current — c.top().name —
// rather than assumed to be the body predicate: an if or loop statement as
// the function's last top-level construct replaces the path-stack top with
// its own join/continuation predicate (branch.go, loop.go) before control
// ever gets back here, and spec.md §4.8's "{from}_to_{to}" naming contract
// requires the name to track the actual source predicate.
func (c *Checker) endFunction(fn ast.Function, funcSym *predicate.Symbol) {
	c.preds.Bump(fn.NodeID())
	exitAppl := funcSym.Apply(c.valuesOf(c.funcVars)...)

	invariant(c.depth() == c.functionBlocks, "endFunction", "path depth %d != functionBlocks %d", c.depth(), c.functionBlocks)

	current := c.top()
	c.addRule(and(current.app, c.enc.Assertions()), exitAppl, current.name+"_to_"+funcSym.CurrentName())

	interfaceAppl := c.interfaceSym.Apply(c.stateValues()...)
	c.addRule(exitAppl, interfaceAppl, funcSym.CurrentName()+"_to_"+c.interfaceSym.CurrentName())

	for c.depth() > 0 {
		c.popBlock()
	}
	c.functionBlocks = 0
	c.currentFunction = nil
	c.currentBodyID = 0
}
