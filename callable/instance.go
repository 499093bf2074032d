package callable

import (
	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/value"
)

// Instance is a runtime instance of a Class: its class plus a
// name-keyed field table. Fields shadow methods in Get.
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

// NewInstance builds an instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]value.Value)}
}

func (i *Instance) Type() value.Type { return InstanceType }

func (i *Instance) String() string { return i.Class.Name + " instance" }

func (i *Instance) Truthy() bool { return true }

// Get resolves a property: a field first, then a method bound to i. A
// getter method is invoked immediately rather than returned as a bound
// method value.
func (i *Instance) Get(interp Interpreter, name ast.Token) (value.Value, *RuntimeError) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}

	method := i.Class.FindMethod(name.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
	}

	bound := method.Bind(i)
	if method.Kind == ast.FunctionGetter {
		return bound.Call(interp, nil)
	}
	return bound, nil
}

// Set stores a field value unconditionally, creating it if absent.
func (i *Instance) Set(name ast.Token, v value.Value) {
	i.Fields[name.Lexeme] = v
}
