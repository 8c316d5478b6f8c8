// Command chc-check runs the Horn-clause checker against a fixed set of
// built-in example contracts and reports each assertion's outcome, safe or
// unsafe, against the outcome the example expects.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aclements/go-z3/z3"

	"github.com/hornchc/checker/chc"
	"github.com/hornchc/checker/diagnostics"
	"github.com/hornchc/checker/examples"
	"github.com/hornchc/checker/internal/hornengine"
	"github.com/hornchc/checker/internal/trace"
)

func main() {
	verbose := flag.Bool("v", false, "trace the traversal's progress to stderr")
	dumpClauses := flag.Bool("dump-clauses", false, "dump every emitted Horn clause as YAML after each contract")
	queryTimeout := flag.Duration("query-timeout", 10*time.Second, "per-query timeout passed to the Horn engine")
	flag.Parse()

	tracer := trace.New(*verbose, os.Stderr)

	failed := false
	for _, sc := range examples.All() {
		if !runScenario(sc, tracer, *dumpClauses, *queryTimeout) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// runScenario analyzes one example contract and prints a pass/fail line per
// assert target plus any diagnostic warnings. The checker itself never
// exits or sets an exit code on a warning; that decision belongs to the
// host, which is what this function is.
func runScenario(sc examples.Scenario, tracer *trace.Tracer, dumpClauses bool, queryTimeout time.Duration) bool {
	ctx := z3.NewContext(nil)
	engine := hornengine.New(ctx)
	engine.SetQueryTimeout(queryTimeout)
	diag := diagnostics.New()
	checker := chc.New(ctx, engine, diag, tracer)

	fmt.Printf("=== %s ===\n", sc.Name)

	results, err := checker.Check(sc.Contract)
	if err != nil {
		fmt.Printf("  internal error: %v\n", err)
		return false
	}

	ok := true
	for i, r := range results {
		want := true
		if i < len(sc.WantSafe) {
			want = sc.WantSafe[i]
		}
		status := boolLabel(r.Safe)
		mark := "ok"
		if r.Safe != want {
			mark = "MISMATCH, want " + boolLabel(want)
			ok = false
		}
		fmt.Printf("  assert #%d: %s (%s)\n", i+1, status, mark)
	}

	for _, w := range diag.Warnings() {
		fmt.Printf("  warning: %s\n", w)
	}

	if dumpClauses {
		yamlBytes, err := checker.DumpRules()
		if err != nil {
			fmt.Printf("  failed to dump clauses: %v\n", err)
		} else {
			fmt.Printf("  clauses:\n%s", indent(string(yamlBytes)))
		}
	}

	return ok
}

func boolLabel(b bool) string {
	if b {
		return "safe"
	}
	return "unsafe"
}

func indent(s string) string {
	out := "    "
	for _, r := range s {
		out += string(r)
		if r == '\n' {
			out += "    "
		}
	}
	return out + "\n"
}
