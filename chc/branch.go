package chc

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
)

// visitIf is CHC.cpp's visit(IfStatement) combined with spec.md §4.5's
// edge shapes (the original defers the actual Horn encoding to a sibling
// SMTEncoder class this repo doesn't carry a separate copy of). Each
// branch gets a fresh block sorted like the current function's body.
// The then and else branches are encoded independently from the same
// pre-branch SSA state (restored between them via symencoder.VarSnapshot,
// since popBlock only unwinds the solver's assertion stack, not variable
// indices) and merged into a join block whose own formal variables are
// fresh SSA versions distinct from either branch's internals — the
// Horn-relation equivalent of a phi node. The join block replaces the
// current path-stack entry, so statements following the if continue to
// be encoded against it.
func (c *Checker) visitIf(stmt *ast.IfStatement) {
	cond, ok := c.enc.Expression(stmt.Condition).(z3.Bool)
	invariant(ok, "visitIf", "condition must be boolean")
	sideEffects := c.enc.Assertions()
	top := c.top()
	entrySnapshot := c.enc.Snapshot()

	thenSym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("then_%d", stmt.NodeID()))
	thenAppl := thenSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(top.app, sideEffects, cond), thenAppl, fmt.Sprintf("if_%d_to_%s", stmt.NodeID(), thenSym.CurrentName()))

	joinSym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("join_%d", stmt.NodeID()))

	c.pushBlock(pathEntry{app: thenAppl, args: c.valuesOf(c.bodyVars), name: thenSym.CurrentName()})
	for _, s := range stmt.Then.Statements() {
		c.visitStatement(s)
	}
	thenExit, thenAssertions := c.top().app, c.enc.Assertions()
	c.popBlock()
	thenJoinAppl := joinSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(thenExit, thenAssertions), thenJoinAppl, fmt.Sprintf("%s_to_%s", thenSym.CurrentName(), joinSym.CurrentName()))

	c.enc.Restore(entrySnapshot)

	if stmt.Else != nil {
		elseSym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("else_%d", stmt.NodeID()))
		elseAppl := elseSym.Apply(c.valuesOf(c.bodyVars)...)
		c.addRule(and(top.app, sideEffects, cond.Not()), elseAppl, fmt.Sprintf("if_%d_to_%s", stmt.NodeID(), elseSym.CurrentName()))

		c.pushBlock(pathEntry{app: elseAppl, args: c.valuesOf(c.bodyVars), name: elseSym.CurrentName()})
		for _, s := range stmt.Else.Statements() {
			c.visitStatement(s)
		}
		elseExit, elseAssertions := c.top().app, c.enc.Assertions()
		c.popBlock()
		elseJoinAppl := joinSym.Apply(c.valuesOf(c.bodyVars)...)
		c.addRule(and(elseExit, elseAssertions), elseJoinAppl, fmt.Sprintf("%s_to_%s", elseSym.CurrentName(), joinSym.CurrentName()))

		c.enc.Restore(entrySnapshot)
	} else {
		noElseJoinAppl := joinSym.Apply(c.valuesOf(c.bodyVars)...)
		c.addRule(and(top.app, sideEffects, cond.Not()), noElseJoinAppl, fmt.Sprintf("if_%d_to_%s_noelse", stmt.NodeID(), joinSym.CurrentName()))
	}

	// Fresh formal variables for the join point itself: neither branch's
	// internal SSA names, just a clean state later code continues from.
	c.enc.ResetVariables(func(ast.Variable) bool { return true })
	joinAppl := joinSym.Apply(c.valuesOf(c.bodyVars)...)

	c.popBlock()
	c.pushBlock(pathEntry{app: joinAppl, args: c.valuesOf(c.bodyVars), name: joinSym.CurrentName()})
}
