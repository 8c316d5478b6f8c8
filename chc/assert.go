package chc

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
)

// visitAssert is CHC.cpp's visitAssert: bump the error predicate to a fresh
// version, emit the rule proving that this assert's negated argument is
// unreachable, and record the target for the end-of-contract query pass
// (spec.md §4.7). The antecedent is the current block's entry application
// conjoined with every constraint asserted since entering it — the
// per-block predicate already summarizes everything further back on the
// path, so nothing beyond the current scope's own accumulated assertions
// needs to be carried explicitly (each branch or loop condition is a
// conjunct of the edge rule into the block it gates, so that block's
// predicate only holds where the condition did — there is no separate
// parallel conditions stack in this implementation).
func (c *Checker) visitAssert(call *ast.FunctionCall) {
	invariant(len(call.Args) == 1, "visitAssert", "assert expects exactly one argument")

	c.preds.Bump(c.errorSymKey)

	arg, ok := c.enc.Expression(call.Args[0]).(z3.Bool)
	invariant(ok, "visitAssert", "assert argument must be boolean")
	negArg := arg.Not()

	top := c.top()
	body := and(top.app, c.enc.Assertions(), negArg)
	errApp := c.errorSym.Apply()

	name := fmt.Sprintf("assert_%d_to_error", call.NodeID())
	c.addRule(body, errApp, name)

	c.targets = append(c.targets, target{call: call, index: c.errorSym.CurrentIndex()})
}
