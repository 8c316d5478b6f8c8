package chc

import "fmt"

// internalError marks a violated invariant (spec.md §7's "Invariant
// violation" row): a bug in the traversal itself, not a property of the
// contract being analyzed. It is recovered at Checker.Check's boundary,
// mirroring the teacher's symexec.staticFunction recover block, and turned
// into an error instead of crashing the whole analysis run.
type internalError struct {
	where string
	msg   string
}

func (e internalError) Error() string {
	return fmt.Sprintf("chc: internal error in %s: %s", e.where, e.msg)
}

func invariant(cond bool, where, format string, args ...any) {
	if !cond {
		panic(internalError{where: where, msg: fmt.Sprintf(format, args...)})
	}
}
