package contractir

import "github.com/hornchc/checker/ast"

// Contract is the concrete ast.Contract implementation.
type Contract struct {
	id             int64
	name           string
	kind           ast.ContractKind
	checkerEnabled bool
	directBases    []*Contract
	stateVars      []ast.Variable
	constructor    ast.Function
	functions      []ast.Function
}

// ContractOption configures a Contract built with NewContract.
type ContractOption func(*Contract)

func WithKind(kind ast.ContractKind) ContractOption {
	return func(c *Contract) { c.kind = kind }
}

func WithBases(bases ...*Contract) ContractOption {
	return func(c *Contract) { c.directBases = bases }
}

func WithStateVariables(vars ...*Variable) ContractOption {
	return func(c *Contract) {
		for _, v := range vars {
			c.stateVars = append(c.stateVars, v)
		}
	}
}

func WithConstructor(fn *Function) ContractOption {
	return func(c *Contract) { c.constructor = fn }
}

func WithFunctions(fns ...*Function) ContractOption {
	return func(c *Contract) {
		for _, fn := range fns {
			c.functions = append(c.functions, fn)
		}
	}
}

// NewContract builds a contract with the opt-in checker feature enabled,
// adjusted by opts.
func NewContract(name string, opts ...ContractOption) *Contract {
	c := &Contract{id: newID(), name: name, kind: ast.KindContract, checkerEnabled: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Contract) NodeID() int64             { return c.id }
func (c *Contract) Name() string              { return c.name }
func (c *Contract) Kind() ast.ContractKind     { return c.kind }
func (c *Contract) CheckerEnabled() bool       { return c.checkerEnabled }
func (c *Contract) StateVariables() []ast.Variable { return c.stateVars }
func (c *Contract) Constructor() ast.Function  { return c.constructor }
func (c *Contract) Functions() []ast.Function  { return c.functions }

// Bases returns the C3 linearization of c's direct base list, most-derived
// last and excluding c itself — the order spec.md §4.3's state-variable
// collection step assumes an external linearizer already produced.
func (c *Contract) Bases() []ast.Contract {
	linearized := c3Linearize(c)
	bases := make([]ast.Contract, 0, len(linearized))
	for _, b := range linearized {
		if b != c {
			bases = append(bases, b)
		}
	}
	return bases
}
