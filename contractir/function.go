package contractir

import "github.com/hornchc/checker/ast"

// Function is the concrete ast.Function implementation.
type Function struct {
	id            int64
	name          string
	public        bool
	implemented   bool
	isConstructor bool
	isFallback    bool
	params        []ast.Variable
	returns       []ast.Variable
	locals        []ast.Variable
	body          ast.Block
}

// FunctionOption configures a Function built with NewFunction.
type FunctionOption func(*Function)

func WithParams(vars ...*Variable) FunctionOption {
	return func(f *Function) {
		for _, v := range vars {
			f.params = append(f.params, v)
		}
	}
}

func WithReturns(vars ...*Variable) FunctionOption {
	return func(f *Function) {
		for _, v := range vars {
			f.returns = append(f.returns, v)
		}
	}
}

func WithLocals(vars ...*Variable) FunctionOption {
	return func(f *Function) {
		for _, v := range vars {
			f.locals = append(f.locals, v)
		}
	}
}

func AsConstructor() FunctionOption { return func(f *Function) { f.isConstructor = true } }
func AsFallback() FunctionOption    { return func(f *Function) { f.isFallback = true } }
func NotPublic() FunctionOption     { return func(f *Function) { f.public = false } }
func NotImplemented() FunctionOption {
	return func(f *Function) { f.implemented = false }
}

// NewFunction builds a public, implemented function named name with the
// given body, adjusted by opts.
func NewFunction(name string, body *Block, opts ...FunctionOption) *Function {
	f := &Function{id: newID(), name: name, public: true, implemented: true, body: body}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Function) NodeID() int64          { return f.id }
func (f *Function) Name() string           { return f.name }
func (f *Function) IsPublic() bool         { return f.public }
func (f *Function) IsImplemented() bool    { return f.implemented }
func (f *Function) IsConstructor() bool    { return f.isConstructor }
func (f *Function) IsFallback() bool       { return f.isFallback }
func (f *Function) Parameters() []ast.Variable { return f.params }
func (f *Function) Returns() []ast.Variable    { return f.returns }
func (f *Function) Locals() []ast.Variable     { return f.locals }
func (f *Function) Body() ast.Block            { return f.body }
