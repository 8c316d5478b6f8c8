package chc

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
)

// visitWhile is CHC.cpp's visit(WhileStatement), split on DoWhile the way
// the original treats do-while as "execute the body once, unconditionally,
// before the header exists" (spec.md §4.5).
func (c *Checker) visitWhile(stmt *ast.WhileStatement) {
	if stmt.DoWhile {
		c.visitDoWhile(stmt)
		return
	}
	c.visitLoop(stmt.NodeID(), stmt.Condition, stmt.Body, nil)
}

// visitFor lowers the init statement into the current scope (it runs
// exactly once, before the loop exists as a block of its own) and then
// shares the while/for loop shape, with Post folded into the body so the
// back edge naturally includes the increment step.
func (c *Checker) visitFor(stmt *ast.ForStatement) {
	if stmt.Init != nil {
		c.visitStatement(stmt.Init)
	}
	c.visitLoop(stmt.NodeID(), stmt.Condition, stmt.Body, stmt.Post)
}

// visitLoop is the shared while/for encoding: a header block reached both
// from loop entry and from the back edge, a body_entry block gated by the
// condition, and a continuation block gated by its negation (spec.md
// §4.5's header/body_entry/continuation shape):
//
//	current ∧ ⟦init side effects⟧            ⇒ header
//	header  ∧ ⟦cond side effects⟧ ∧  cond     ⇒ body_entry
//	body_entry ∧ ⟦body (+ post) side effects⟧ ⇒ header        (back edge)
//	header  ∧ ⟦cond side effects⟧ ∧ ¬cond     ⇒ continuation
//
// Both body_entry and the continuation start from the header's state, so,
// as with an if-statement's then/else, the variable state is snapshotted
// once the header edges are built and restored after the body, before the
// post-loop path continues from the continuation.
func (c *Checker) visitLoop(id int64, condition ast.Expression, body ast.Block, post ast.Statement) {
	c.functionBlocks++

	top := c.top()
	entrySideEffects := c.enc.Assertions()

	headerSym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("header_%d", id))
	entryHeaderAppl := headerSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(top.app, entrySideEffects), entryHeaderAppl, fmt.Sprintf("loop_%d_entry_to_%s", id, headerSym.CurrentName()))

	// Fresh formal variables for the header itself (the back edge below
	// re-applies headerSym to whatever state the body leaves, which is
	// unrelated to these); it's reached from two distinct predecessors so,
	// like an if's join block, needs its own clean SSA generation.
	c.enc.ResetVariables(func(ast.Variable) bool { return true })
	c.popBlock()
	headerAppl := headerSym.Apply(c.valuesOf(c.bodyVars)...)
	c.pushBlock(pathEntry{app: headerAppl, args: c.valuesOf(c.bodyVars), name: headerSym.CurrentName()})

	cond, ok := c.enc.Expression(condition).(z3.Bool)
	invariant(ok, "visitLoop", "loop condition must be boolean")
	condSideEffects := c.enc.Assertions()

	bodyEntrySym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("body_entry_%d", id))
	bodyEntryAppl := bodyEntrySym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(headerAppl, condSideEffects, cond), bodyEntryAppl, fmt.Sprintf("%s_to_%s", headerSym.CurrentName(), bodyEntrySym.CurrentName()))

	// The post-loop continuation reuses the enclosing function's body
	// predicate under a bumped SSA index (spec.md §4.5: "a fresh post-loop
	// continuation reusing the current function's body predicate with a
	// bumped SSA index"; CHC.cpp's visitWhile/visitFor call
	// createFunctionBlock(functionBody) for exactly this edge) rather than
	// minting an unrelated synthetic predicate.
	continuationSym := c.preds.Bump(c.currentBodyID)
	continuationName := continuationSym.CurrentName()
	continuationAppl := continuationSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(headerAppl, condSideEffects, cond.Not()), continuationAppl, fmt.Sprintf("%s_to_%s", headerSym.CurrentName(), continuationName))
	headerSnapshot := c.enc.Snapshot()

	c.popBlock()
	c.pushBlock(pathEntry{app: bodyEntryAppl, args: c.valuesOf(c.bodyVars), name: bodyEntrySym.CurrentName()})

	for _, s := range body.Statements() {
		c.visitStatement(s)
	}
	if post != nil {
		c.visitStatement(post)
	}

	bodyExit, bodyAssertions := c.top().app, c.enc.Assertions()
	c.popBlock()

	backHeaderAppl := headerSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(bodyExit, bodyAssertions), backHeaderAppl, fmt.Sprintf("%s_to_%s_backedge", bodyEntrySym.CurrentName(), headerSym.CurrentName()))

	c.enc.Restore(headerSnapshot)
	c.pushBlock(pathEntry{app: continuationAppl, args: c.valuesOf(c.bodyVars), name: continuationName})
	c.functionBlocks--
}

// visitDoWhile emits the body unconditionally once, then wires the header
// exactly like visitLoop except the back edge and the forward edge share
// the same bodySym (the first iteration has no condition gating it).
func (c *Checker) visitDoWhile(stmt *ast.WhileStatement) {
	c.functionBlocks++

	top := c.top()
	sideEffects := c.enc.Assertions()

	bodySym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("do_body_%d", stmt.NodeID()))
	bodyAppl := bodySym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(top.app, sideEffects), bodyAppl, fmt.Sprintf("dowhile_%d_entry_to_%s", stmt.NodeID(), bodySym.CurrentName()))

	c.popBlock()
	c.pushBlock(pathEntry{app: bodyAppl, args: c.valuesOf(c.bodyVars), name: bodySym.CurrentName()})

	for _, s := range stmt.Body.Statements() {
		c.visitStatement(s)
	}

	bodyExit, bodyAssertions := c.top().app, c.enc.Assertions()
	c.popBlock()

	headerSym := c.preds.Fresh(syntheticID(), c.bodySorts, fmt.Sprintf("header_%d", stmt.NodeID()))
	headerAppl := headerSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(bodyExit, bodyAssertions), headerAppl, fmt.Sprintf("%s_to_%s", bodySym.CurrentName(), headerSym.CurrentName()))

	c.pushBlock(pathEntry{app: headerAppl, args: c.valuesOf(c.bodyVars), name: headerSym.CurrentName()})

	cond, ok := c.enc.Expression(stmt.Condition).(z3.Bool)
	invariant(ok, "visitDoWhile", "loop condition must be boolean")
	condSideEffects := c.enc.Assertions()

	backBodyAppl := bodySym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(headerAppl, condSideEffects, cond), backBodyAppl, fmt.Sprintf("%s_to_%s_backedge", headerSym.CurrentName(), bodySym.CurrentName()))

	// See visitLoop: the post-loop continuation reuses the enclosing
	// function's body predicate under a bumped SSA index rather than a
	// synthetic one (spec.md §4.5, CHC.cpp's createFunctionBlock(functionBody)).
	continuationSym := c.preds.Bump(c.currentBodyID)
	continuationAppl := continuationSym.Apply(c.valuesOf(c.bodyVars)...)
	c.addRule(and(headerAppl, condSideEffects, cond.Not()), continuationAppl, fmt.Sprintf("%s_to_%s", headerSym.CurrentName(), continuationSym.CurrentName()))

	c.popBlock()
	c.pushBlock(pathEntry{app: continuationAppl, args: c.valuesOf(c.bodyVars), name: continuationSym.CurrentName()})
	c.functionBlocks--
}
