package chc

import (
	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/internal/hornengine"
)

// fakeEngine is an in-memory hornengine.Engine double: it records every
// declaration and rule instead of handing them to a live Z3 Fixedpoint
// solver, and answers every query UNSAT unless answer overrides it. Grounded on the teacher's own habit of stubbing the solver
// boundary in tests (symexec/symexec_test.go's fixed fixtures), adapted
// here to the Engine interface instead of a concrete struct.
type fakeEngine struct {
	declared  []string
	relations []string
	rules     []ruleCall
	// answer, if non-nil, overrides the default UNSAT-for-everything
	// response for every Query call.
	answer func(app z3.Bool) (hornengine.Result, []string)
}

type ruleCall struct {
	rule z3.Bool
	name string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{}
}

func (f *fakeEngine) DeclareVariable(name string, sort z3.Sort) {
	f.declared = append(f.declared, name)
}

func (f *fakeEngine) RegisterRelation(decl z3.FuncDecl) {
	f.relations = append(f.relations, decl.String())
}

func (f *fakeEngine) AddRule(rule z3.Bool, name string) {
	f.rules = append(f.rules, ruleCall{rule: rule, name: name})
}

func (f *fakeEngine) Query(app z3.Bool) (hornengine.Result, []string) {
	if f.answer != nil {
		return f.answer(app)
	}
	return hornengine.UNSAT, nil
}
