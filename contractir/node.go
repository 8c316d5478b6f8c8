package contractir

import (
	"sync/atomic"

	"github.com/hornchc/checker/ast"
)

var nextID int64

// newID mints a fresh, process-wide unique node identity. Real AST
// providers would use their own node's address or index; contractir's
// fixtures are built by value, so identity is assigned explicitly instead
// (see DESIGN.md's Open Question on predicate identity).
func newID() int64 {
	return atomic.AddInt64(&nextID, 1)
}

// Variable is the concrete ast.Variable implementation.
type Variable struct {
	id   int64
	name string
	typ  ast.Type
}

func NewVariable(name string, typ ast.Type) *Variable {
	return &Variable{id: newID(), name: name, typ: typ}
}

func (v *Variable) NodeID() int64 { return v.id }
func (v *Variable) Name() string  { return v.name }
func (v *Variable) Type() ast.Type { return v.typ }
