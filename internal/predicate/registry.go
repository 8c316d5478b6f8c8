// Package predicate is the predicate registry (spec.md §4.2): it allocates
// uniquely-named uninterpreted predicate symbols for CFG blocks, with a
// per-symbol SSA counter allowing reuse under a fresh version. Grounded on
// the teacher's otherwise-unused `funcs map[string]z3.FuncDecl` field
// declared (but never populated) in both graph/formula.go and
// symexec/context.go — this package is what finally exercises it.
package predicate

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
)

// Engine is the slice of the Horn engine adapter the registry needs:
// registering a freshly (re-)versioned relation. Kept minimal so this
// package doesn't depend on internal/hornengine's whole surface.
type Engine interface {
	RegisterRelation(decl z3.FuncDecl)
}

// Symbol is a named, versioned uninterpreted predicate. Two Symbols created
// for distinct AST nodes always have distinct base names (spec.md §3's
// predicate-uniqueness invariant); re-indexing the same Symbol keeps the
// base name and advances ssaIndex.
type Symbol struct {
	baseName string
	domain   []z3.Sort
	ssaIndex int
	decl     z3.FuncDecl
	versions []z3.FuncDecl // versions[i] is the FuncDecl registered for SSA index i+1
	ctx      *z3.Context
}

// CurrentName is the SSA-qualified name of the symbol's current version.
func (s *Symbol) CurrentName() string {
	return fmt.Sprintf("%s_%d", s.baseName, s.ssaIndex)
}

// CurrentIndex is the symbol's current SSA index.
func (s *Symbol) CurrentIndex() int {
	return s.ssaIndex
}

// Apply builds the formula applying the symbol's current version to args.
func (s *Symbol) Apply(args ...z3.Value) z3.Bool {
	return s.applyDecl(s.decl, args)
}

// ApplyAt builds the formula applying the version of the symbol registered
// at SSA index idx, regardless of what the symbol's current index has since
// become — needed to query a specific historical error predicate version
// (spec.md §4.7's "error_i is the i-th re-indexed version").
func (s *Symbol) ApplyAt(idx int, args ...z3.Value) z3.Bool {
	if idx < 1 || idx > len(s.versions) {
		panic(fmt.Sprintf("predicate: %s has no version %d", s.baseName, idx))
	}
	return s.applyDecl(s.versions[idx-1], args)
}

func (s *Symbol) applyDecl(decl z3.FuncDecl, args []z3.Value) z3.Bool {
	if len(args) != len(s.domain) {
		panic(fmt.Sprintf("predicate: %s expects %d args, got %d", s.CurrentName(), len(s.domain), len(args)))
	}
	return decl.Apply(args...).(z3.Bool)
}

// Registry allocates and re-indexes predicate symbols, keyed by the AST
// node identity of the block they represent. It is exclusively owned by one
// traversal (spec.md §3's ownership rule), which calls Reset before each
// contract it analyzes.
type Registry struct {
	ctx     *z3.Context
	engine  Engine
	symbols map[int64]*Symbol
}

// New creates a registry bound to ctx and the given engine.
func New(ctx *z3.Context, engine Engine) *Registry {
	return &Registry{ctx: ctx, engine: engine, symbols: make(map[int64]*Symbol)}
}

// Fresh creates a new symbol for nodeID with the given domain sorts and base
// name, registers its first version (SSA index 1) with the engine, and
// returns it. It is an error to call Fresh twice for the same nodeID — use
// Bump to re-enter an already-allocated block.
func (r *Registry) Fresh(nodeID int64, domain []z3.Sort, baseName string) *Symbol {
	if _, ok := r.symbols[nodeID]; ok {
		panic(fmt.Sprintf("predicate: node %d already has a symbol", nodeID))
	}
	sym := &Symbol{baseName: baseName, domain: domain, ssaIndex: 1, ctx: r.ctx}
	sym.decl = r.declareRange(sym)
	sym.versions = append(sym.versions, sym.decl)
	r.engine.RegisterRelation(sym.decl)
	r.symbols[nodeID] = sym
	return sym
}

// Bump increases the SSA index of the symbol registered for nodeID and
// re-registers the new version with the engine — used when re-entering a
// block under a new state snapshot (e.g. a loop's post-header block).
func (r *Registry) Bump(nodeID int64) *Symbol {
	sym, ok := r.symbols[nodeID]
	if !ok {
		panic(fmt.Sprintf("predicate: no symbol registered for node %d", nodeID))
	}
	sym.ssaIndex++
	sym.decl = r.declareRange(sym)
	sym.versions = append(sym.versions, sym.decl)
	r.engine.RegisterRelation(sym.decl)
	return sym
}

// Lookup returns the symbol registered for nodeID, if any.
func (r *Registry) Lookup(nodeID int64) (*Symbol, bool) {
	sym, ok := r.symbols[nodeID]
	return sym, ok
}

func (r *Registry) declareRange(sym *Symbol) z3.FuncDecl {
	return r.ctx.FuncDecl(sym.CurrentName(), sym.domain, r.ctx.BoolSort())
}

// Reset drops every registration, preparing the registry for reuse on the
// next contract (spec.md §5's "reset() is called between contracts").
func (r *Registry) Reset() {
	r.symbols = make(map[int64]*Symbol)
}
