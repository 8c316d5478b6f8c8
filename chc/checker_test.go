package chc

import (
	"testing"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/ast"
	"github.com/hornchc/checker/contractir"
	"github.com/hornchc/checker/diagnostics"
	"github.com/hornchc/checker/internal/hornengine"
)

// idGen mints node identities for test-local statement/expression fixtures.
// These can coincide numerically with contractir's own internal counter;
// that is harmless because the predicate registry only ever keys on
// contract/function/block identities (all minted by contractir), never on
// statement/expression identities.
func idGen() func() int64 {
	var n int64
	return func() int64 {
		n++
		return n
	}
}

func newChecker(t *testing.T, engine *fakeEngine) *Checker {
	t.Helper()
	ctx := z3.NewContext(nil)
	return New(ctx, engine, diagnostics.New(), nil)
}

// simpleAssertContract builds one public function with a single parameter
// x and one top-level `assert(cond(x))` statement.
func simpleAssertContract(cond func(id func() int64, x *contractir.Variable) ast.Expression) *contractir.Contract {
	next := idGen()
	x := contractir.NewVariable("x", contractir.UintN(256))
	assertCall := ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil, cond(next, x))
	stmt := ast.NewExprStatement(next(), assertCall)
	body := contractir.NewBlock(stmt)
	fn := contractir.NewFunction("foo", body, contractir.WithParams(x))
	return contractir.NewContract("C", contractir.WithFunctions(fn))
}

func TestCheck_ProvenAssertIsSafe(t *testing.T) {
	contract := simpleAssertContract(func(next func() int64, x *contractir.Variable) ast.Expression {
		// x >= 0, trivially true for an unsigned parameter's own range
		// assertion plus the literal itself.
		return ast.NewBinaryExpr(next(), ast.OpGe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)
	})

	engine := newFakeEngine() // default: every Query answers UNSAT
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("want 1 target, got %d", len(results))
	}
	if !results[0].Safe {
		t.Errorf("want assert proven safe, got unsafe")
	}
	if len(checker.path) != 0 {
		t.Errorf("path stack not empty after Check: depth %d", len(checker.path))
	}
	if len(engine.rules) == 0 {
		t.Errorf("expected at least one emitted rule")
	}
}

func TestCheck_UnprovenAssertReportsWarning(t *testing.T) {
	contract := simpleAssertContract(func(next func() int64, x *contractir.Variable) ast.Expression {
		return ast.NewBinaryExpr(next(), ast.OpLt, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 10), contractir.Bool)
	})

	engine := newFakeEngine()
	engine.answer = func(z3.Bool) (hornengine.Result, []string) {
		return hornengine.SAT, nil
	}
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("want 1 target, got %d", len(results))
	}
	if results[0].Safe {
		t.Errorf("want unproven assert to be unsafe")
	}
	warnings := checker.diag.Warnings()
	if len(warnings) != 1 || warnings[0].Kind != diagnostics.KindUnproven {
		t.Errorf("want exactly one KindUnproven warning, got %v", warnings)
	}
}

func TestCheck_LibraryContractIsSkipped(t *testing.T) {
	contract := contractir.NewContract("L", contractir.WithKind(ast.KindLibrary))
	engine := newFakeEngine()
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if results != nil {
		t.Errorf("want no results for a library contract, got %v", results)
	}
	if len(engine.rules) != 0 {
		t.Errorf("want no rules emitted for a skipped contract, got %d", len(engine.rules))
	}
}

func TestCheck_IfElseBothBranchesEncoded(t *testing.T) {
	next := idGen()
	x := contractir.NewVariable("x", contractir.UintN(256))

	thenAssert := ast.NewExprStatement(next(), ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil,
		ast.NewBinaryExpr(next(), ast.OpGe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)))
	elseAssert := ast.NewExprStatement(next(), ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil,
		ast.NewBinaryExpr(next(), ast.OpLe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 1000), contractir.Bool)))

	cond := ast.NewBinaryExpr(next(), ast.OpGt, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)
	ifStmt := ast.NewIfStatement(next(), cond, contractir.NewBlock(thenAssert), contractir.NewBlock(elseAssert))

	body := contractir.NewBlock(ifStmt)
	fn := contractir.NewFunction("branchy", body, contractir.WithParams(x))
	contract := contractir.NewContract("C", contractir.WithFunctions(fn))

	engine := newFakeEngine()
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 targets (one per branch's assert), got %d", len(results))
	}
	if len(checker.path) != 0 {
		t.Errorf("path stack not empty after Check: depth %d", len(checker.path))
	}
}

func TestCheck_WhileLoopBodyEncoded(t *testing.T) {
	next := idGen()
	x := contractir.NewVariable("x", contractir.UintN(256))

	assertStmt := ast.NewExprStatement(next(), ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil,
		ast.NewBinaryExpr(next(), ast.OpGe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)))
	decrement := ast.NewExprStatement(next(), ast.NewAssignment(next(), x,
		ast.NewBinaryExpr(next(), ast.OpSub, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 1), x.Type())))

	cond := ast.NewBinaryExpr(next(), ast.OpGt, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)
	loop := ast.NewWhileStatement(next(), cond, contractir.NewBlock(assertStmt, decrement), false)

	body := contractir.NewBlock(loop)
	fn := contractir.NewFunction("loopy", body, contractir.WithParams(x))
	contract := contractir.NewContract("C", contractir.WithFunctions(fn))

	engine := newFakeEngine()
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("want 1 target, got %d", len(results))
	}
	if len(checker.path) != 0 {
		t.Errorf("path stack not empty after Check: depth %d", len(checker.path))
	}
}

func TestCheck_TwoAssertsGetDistinctErrorVersions(t *testing.T) {
	next := idGen()
	x := contractir.NewVariable("x", contractir.UintN(256))

	first := ast.NewExprStatement(next(), ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil,
		ast.NewBinaryExpr(next(), ast.OpGe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 0), contractir.Bool)))
	second := ast.NewExprStatement(next(), ast.NewFunctionCall(next(), ast.CallAssert, "assert", nil,
		ast.NewBinaryExpr(next(), ast.OpLe, ast.NewIdentifier(next(), x), ast.NewIntLiteral(next(), x.Type(), 1000), contractir.Bool)))

	body := contractir.NewBlock(first, second)
	fn := contractir.NewFunction("two", body, contractir.WithParams(x))
	contract := contractir.NewContract("C", contractir.WithFunctions(fn))

	engine := newFakeEngine()
	checker := newChecker(t, engine)

	results, err := checker.Check(contract)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 targets, got %d", len(results))
	}
	if checker.targets[0].index == checker.targets[1].index {
		t.Errorf("want distinct error-predicate versions, both asserts got %d", checker.targets[0].index)
	}
}
