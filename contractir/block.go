package contractir

import "github.com/hornchc/checker/ast"

// Block is the concrete ast.Block implementation: an ordered statement list
// with its own node identity (the checker allocates one predicate per block
// node, spec.md §3).
type Block struct {
	id    int64
	stmts []ast.Statement
}

func NewBlock(stmts ...ast.Statement) *Block {
	return &Block{id: newID(), stmts: stmts}
}

func (b *Block) NodeID() int64              { return b.id }
func (b *Block) Statements() []ast.Statement { return b.stmts }
