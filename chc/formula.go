package chc

import "github.com/aclements/go-z3/z3"

// and conjoins one or more formulas left to right, grounded on the
// teacher's own left-fold pattern in symexec/formula.go's And.Encode
// ("res = res.And(...)").
func and(bs ...z3.Bool) z3.Bool {
	conj := bs[0]
	for _, b := range bs[1:] {
		conj = conj.And(b)
	}
	return conj
}

// implies builds body => head as ¬body ∨ head, using only the .Not()/.Or()
// methods attested on teacher values (symexec/formula.go's If.Encode uses
// exactly this De Morgan expansion: "cond.And(thn).Or(cond.Not().And(els))").
func implies(body, head z3.Bool) z3.Bool {
	return body.Not().Or(head)
}
