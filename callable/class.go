package callable

import (
	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/value"
)

// Class is a golox class value: its name, its resolved superclass (if
// any), its instance method table, and a metaclass holding its class
// (static) methods. Because a metaclass is itself a Class, a class
// object is both callable (constructing instances) and instance-like
// (property lookup against its metaclass resolves class methods) —
// see Get.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
	Metaclass  *Class
}

// NewClass builds a class with the given instance method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) Type() value.Type { return ClassType }

func (c *Class) String() string { return c.Name }

func (c *Class) Truthy() bool { return true }

// FindMethod returns the named instance method from this class's own
// table, else recurses into the superclass, else nil.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of "init", or 0 if the class declares none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, binds and runs "init" if present,
// and returns the instance.
func (c *Class) Call(interp Interpreter, args []value.Value) (value.Value, *RuntimeError) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, rerr := init.Bind(instance).Call(interp, args); rerr != nil {
			return nil, rerr
		}
	}
	return instance, nil
}

// Get resolves a class (static) method, treating c as an instance of
// its own metaclass, and returns it bound to c.
func (c *Class) Get(name ast.Token) (value.Value, *RuntimeError) {
	if c.Metaclass != nil {
		if m := c.Metaclass.FindMethod(name.Lexeme); m != nil {
			return m.Bind(c), nil
		}
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}
