package chc

import "github.com/aclements/go-z3/z3"

// pathEntry is one block currently on the encoding path: its predicate
// application and the argument tuple captured when it was pushed (spec.md
// §3's "Path stack entry", §9's "path stack is updated in the same scope
// guard"). Keeping the captured args alongside the application lets a later
// rule re-apply a since-bumped predicate using the snapshot that was live
// when this block was entered, rather than whatever the encoder's variables
// hold after the block's body has been fully traversed.
type pathEntry struct {
	app  z3.Bool
	args []z3.Value
	// name is the SSA-qualified name of the predicate app applies, captured
	// at push time so a later rule naming "{from}_to_{to}" (spec.md §4.8)
	// can name its "from" side after whatever block is actually current —
	// which an if or loop statement may have replaced with a fresh
	// join/continuation predicate since the enclosing block was pushed.
	name string
}

// pushBlock opens a solver scope and pushes entry onto the path stack in
// lock-step, maintaining the path/solver parity invariant (spec.md §3, §8).
func (c *Checker) pushBlock(entry pathEntry) {
	c.enc.PushSolver()
	c.path = append(c.path, entry)
}

// popBlock closes the innermost solver scope and pops the path stack.
func (c *Checker) popBlock() {
	invariant(len(c.path) > 0, "popBlock", "pop on empty path stack")
	c.enc.PopSolver()
	c.path = c.path[:len(c.path)-1]
}

// top returns the path stack's innermost entry ("current" in spec.md §4.5).
func (c *Checker) top() pathEntry {
	invariant(len(c.path) > 0, "top", "path stack is empty")
	return c.path[len(c.path)-1]
}

// depth reports how many blocks are currently open, used by endFunction to
// check the path depth against functionBlocks.
func (c *Checker) depth() int {
	return len(c.path)
}
