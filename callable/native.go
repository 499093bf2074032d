package callable

import "github.com/sdecook/golox/value"

// Native wraps a Go function as a golox callable, the shape clock,
// read, print, and array are registered with.
type Native struct {
	NameStr string
	ArityN  int
	Fn      func(interp Interpreter, args []value.Value) (value.Value, *RuntimeError)
}

func (n *Native) Type() value.Type { return NativeType }

func (n *Native) String() string { return "<native fn " + n.NameStr + ">" }

func (n *Native) Truthy() bool { return true }

func (n *Native) Arity() int { return n.ArityN }

func (n *Native) Call(interp Interpreter, args []value.Value) (value.Value, *RuntimeError) {
	return n.Fn(interp, args)
}
