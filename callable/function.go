package callable

import (
	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/value"
)

// thisSlot is the slot index bind always populates: the first (and
// only) slot of the environment frame it allocates.
const thisSlot = 0

// Function is a user-defined function or method value: the AST body
// plus the environment frame it closed over at definition time.
type Function struct {
	Decl    *ast.Function
	Closure *environment.Frame
	Kind    ast.FunctionKind
}

// New wraps decl as a callable function value closing over frame.
func New(decl *ast.Function, frame *environment.Frame, kind ast.FunctionKind) *Function {
	return &Function{Decl: decl, Closure: frame, Kind: kind}
}

func (f *Function) Type() value.Type { return FunctionType }

func (f *Function) String() string {
	if f.Decl.Name == "" {
		return "<fn>"
	}
	return "<fn " + f.Decl.Name + ">"
}

func (f *Function) Truthy() bool { return true }

// Arity is the declared parameter count; a getter takes none.
func (f *Function) Arity() int {
	if f.Kind == ast.FunctionGetter {
		return 0
	}
	return len(f.Decl.Params)
}

// Call pushes a new frame under the closure, one slot per argument in
// parameter order, and runs the body. An initializer ignores its own
// return plumbing and always yields "this" from slot 0 of its own
// closure (populated by Bind), even on implicit fall-through.
func (f *Function) Call(interp Interpreter, args []value.Value) (value.Value, *RuntimeError) {
	frame := environment.New(f.Closure)
	for _, a := range args {
		frame.Define(a)
	}

	ret, returned, rerr := interp.ExecuteBlock(f.Decl.Body, frame)
	if rerr != nil {
		return nil, rerr
	}

	if f.Kind == ast.FunctionInitializer {
		return f.Closure.GetAt(0, thisSlot), nil
	}
	if returned {
		return ret, nil
	}
	return value.NilValue, nil
}

// Bind wraps f in a fresh environment whose sole slot holds receiver,
// producing the method value seen by "this" inside the body. receiver
// is a value.Value rather than a concrete instance type so the same
// mechanism binds class methods to a Class receiver (the class acting
// as an instance of its own metaclass) as well as instance methods to
// an Instance receiver.
func (f *Function) Bind(receiver value.Value) *Function {
	frame := environment.New(f.Closure)
	frame.Define(receiver)
	return &Function{Decl: f.Decl, Closure: frame, Kind: f.Kind}
}
