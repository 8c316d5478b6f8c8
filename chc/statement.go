package chc

import (
	"fmt"

	"github.com/hornchc/checker/ast"
)

// visitStatement dispatches on the statement's concrete variant via a type
// switch — the tagged-variant dispatch spec.md §9 recommends over a
// visitor-class hierarchy, grounded on the teacher's own
// "switch v := v.(type)" shape in symexec/symexec.go's getBlockFormula.
func (c *Checker) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExprStatement:
		c.visitExprStatement(s)
	case *ast.VarDeclStatement:
		c.visitVarDecl(s)
	case *ast.IfStatement:
		c.visitIf(s)
	case *ast.WhileStatement:
		c.visitWhile(s)
	case *ast.ForStatement:
		c.visitFor(s)
	case *ast.ReturnStatement:
		c.visitReturn(s)
	case *ast.BreakStatement:
		c.visitBreakOrContinue()
	case *ast.ContinueStatement:
		c.visitBreakOrContinue()
	default:
		panic(internalError{where: "visitStatement", msg: fmt.Sprintf("unknown statement node %T", stmt)})
	}
}

func (c *Checker) visitExprStatement(s *ast.ExprStatement) {
	if call, ok := s.Expr.(*ast.FunctionCall); ok {
		c.visitCall(call)
		return
	}
	c.enc.Expression(s.Expr)
}

func (c *Checker) visitVarDecl(s *ast.VarDeclStatement) {
	c.declareVariable(s.Var)
	if s.Initial == nil {
		return
	}
	initial := c.enc.Expression(s.Initial)
	sv := c.enc.Variable(s.Var)
	c.enc.Assert(sv.CurrentValue().Eq(initial))
}

func (c *Checker) visitReturn(s *ast.ReturnStatement) {
	for _, r := range s.Results {
		c.enc.Expression(r)
	}
}

// visitBreakOrContinue is CHC.cpp's endVisit(Break)/endVisit(Continue):
// both are treated as full knowledge erasure of every variable (spec.md
// §4.5's "open question" — intentionally coarse, preserved as-is).
func (c *Checker) visitBreakOrContinue() {
	c.eraseKnowledge()
	c.enc.ResetVariables(func(ast.Variable) bool { return true })
}
