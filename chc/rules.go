package chc

import (
	"github.com/aclements/go-z3/z3"

	"gopkg.in/yaml.v3"
)

// Rule is one emitted Horn clause, kept around only for -dump-clauses
// reporting (SPEC_FULL.md §3's `gopkg.in/yaml.v3` wiring) — the Horn engine
// itself only ever sees the z3.Bool passed to AddRule.
type Rule struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// addRule builds body => head, passes it to the engine under name, and
// records it for later dumping, mirroring CHC.cpp's own addRule helper
// (spec.md §4.2/§4.7's "emitted exactly once per edge per traversal").
func (c *Checker) addRule(body, head z3.Bool, name string) {
	rule := implies(body, head)
	c.engine.AddRule(rule, name)
	c.rules = append(c.rules, Rule{Name: name, Formula: rule.String()})
	c.trace.Printf("emitting rule %s", name)
}

// Rules returns every Horn clause emitted during the most recent Check
// call, in emission order.
func (c *Checker) Rules() []Rule {
	return c.rules
}

// DumpRules marshals Rules to YAML, grounded on the teacher's
// graph/formula.go dump of an encoded formula tree via gopkg.in/yaml.v3 —
// here applied to emitted CHC rules rather than a single expression tree.
func (c *Checker) DumpRules() ([]byte, error) {
	return yaml.Marshal(c.rules)
}
