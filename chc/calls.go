package chc

import "github.com/hornchc/checker/ast"

// visitCall handles a call-expression statement. An assert call emits the
// error-reachability rule (spec.md §4.7); anything else whose kind erases
// knowledge (ast.FunctionCallKind.ErasesKnowledge, spec.md §6) havocs state
// and mapping-typed variables immediately (CHC.cpp's unknownFunctionCall).
func (c *Checker) visitCall(call *ast.FunctionCall) {
	if call.Kind == ast.CallAssert {
		c.visitAssert(call)
		return
	}

	for _, arg := range call.Args {
		c.enc.Expression(arg)
	}

	if call.Kind.ErasesKnowledge() {
		c.eraseKnowledge()
	}
}

// eraseKnowledge havocs every state variable and every mapping-typed
// variable (the checker's reference/mapping-typed-locals rule, spec.md
// §4.6) by rebinding each to a fresh, unconstrained SSA version.
func (c *Checker) eraseKnowledge() {
	stateIDs := make(map[int64]bool, len(c.stateVars))
	for _, v := range c.stateVars {
		stateIDs[v.NodeID()] = true
	}
	c.enc.ResetVariables(func(v ast.Variable) bool {
		return stateIDs[v.NodeID()] || v.Type().Kind() == ast.TypeMapping
	})
}
