package eval

import (
	"fmt"

	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/callable"
	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/lexer"
	"github.com/sdecook/golox/value"
)

func (it *Interpreter) evalExpr(e ast.Expr) (value.Value, *callable.RuntimeError) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Grouping:
		return it.evalExpr(n.Expr)
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Logical:
		return it.evalLogical(n)
	case *ast.Conditional:
		return it.evalConditional(n)
	case *ast.Comma:
		if _, err := it.evalExpr(n.Left); err != nil {
			return nil, err
		}
		return it.evalExpr(n.Right)
	case *ast.Variable:
		return it.lookupVariable(n.ID(), n.Name)
	case *ast.Assign:
		return it.evalAssign(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Get:
		return it.evalGet(n)
	case *ast.Set:
		return it.evalSet(n)
	case *ast.This:
		return it.lookupVariable(n.ID(), n.Keyword)
	case *ast.Super:
		return it.evalSuper(n)
	case *ast.Function:
		return callable.New(n, it.frame, n.Kind), nil
	default:
		panic(fmt.Sprintf("eval: unhandled expression %T", e))
	}
}

func literalValue(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.NilValue
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	case bool:
		return value.Bool(t)
	}
	return value.NilValue
}

// lookupVariable reads a resolved local via its (depth, slot), or
// falls back to globals by name when the resolver left no entry (a
// reference to a global).
func (it *Interpreter) lookupVariable(id ast.NodeID, tok ast.Token) (value.Value, *callable.RuntimeError) {
	var v value.Value
	if depth, ok := it.Depth[id]; ok {
		v = it.frame.GetAt(depth, it.Slot[id])
	} else {
		found, ok := it.Globals.Get(tok.Lexeme)
		if !ok {
			return nil, &callable.RuntimeError{Token: tok, Message: "Undefined variable '" + tok.Lexeme + "'."}
		}
		v = found
	}
	if v == environment.Uninitialized {
		return nil, &callable.RuntimeError{Token: tok, Message: "Variable must be initialized before use."}
	}
	return v, nil
}

func (it *Interpreter) evalAssign(n *ast.Assign) (value.Value, *callable.RuntimeError) {
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := it.Depth[n.ID()]; ok {
		it.frame.AssignAt(depth, it.Slot[n.ID()], v)
		return v, nil
	}
	if it.Globals.Assign(n.Name.Lexeme, v) {
		return v, nil
	}
	return nil, &callable.RuntimeError{Token: n.Name, Message: "Undefined variable '" + n.Name.Lexeme + "'."}
}

func (it *Interpreter) evalUnary(n *ast.Unary) (value.Value, *callable.RuntimeError) {
	right, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case lexer.BANG:
		return value.Bool(!right.Truthy()), nil
	case lexer.MINUS:
		num, ok := right.(value.Number)
		if !ok {
			return nil, &callable.RuntimeError{Token: n.Op, Message: "Operand must be a number."}
		}
		return -num, nil
	}
	panic("eval: unreachable unary operator")
}

func (it *Interpreter) evalLogical(n *ast.Logical) (value.Value, *callable.RuntimeError) {
	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == lexer.OR {
		if left.Truthy() {
			return left, nil
		}
	} else {
		if !left.Truthy() {
			return left, nil
		}
	}
	return it.evalExpr(n.Right)
}

func (it *Interpreter) evalConditional(n *ast.Conditional) (value.Value, *callable.RuntimeError) {
	cond, err := it.evalExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return it.evalExpr(n.Then)
	}
	return it.evalExpr(n.Else)
}

func (it *Interpreter) evalBinary(n *ast.Binary) (value.Value, *callable.RuntimeError) {
	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case lexer.PLUS:
		return addOrConcat(left, right, n.Op)
	case lexer.MINUS:
		ln, rn, ok := numbers(left, right)
		if !ok {
			return nil, &callable.RuntimeError{Token: n.Op, Message: "Operands must be numbers."}
		}
		return ln - rn, nil
	case lexer.STAR:
		ln, rn, ok := numbers(left, right)
		if !ok {
			return nil, &callable.RuntimeError{Token: n.Op, Message: "Operands must be numbers."}
		}
		return ln * rn, nil
	case lexer.SLASH:
		ln, rn, ok := numbers(left, right)
		if !ok {
			return nil, &callable.RuntimeError{Token: n.Op, Message: "Operands must be numbers."}
		}
		if rn == 0 {
			return nil, &callable.RuntimeError{Token: n.Op, Message: "Division by zero."}
		}
		return ln / rn, nil
	case lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL:
		return compare(n.Op, left, right)
	case lexer.EQUAL_EQUAL:
		return value.Bool(left == right), nil
	case lexer.BANG_EQUAL:
		return value.Bool(left != right), nil
	}
	panic("eval: unreachable binary operator")
}

// addOrConcat implements "+": numeric addition when both operands are
// numbers, else string concatenation of the stringified operands as
// long as at least one side is already a string.
func addOrConcat(left, right value.Value, op ast.Token) (value.Value, *callable.RuntimeError) {
	if ln, lok := left.(value.Number); lok {
		if rn, rok := right.(value.Number); rok {
			return ln + rn, nil
		}
	}
	_, lstr := left.(value.String)
	_, rstr := right.(value.String)
	if lstr || rstr {
		return value.String(left.String() + right.String()), nil
	}
	return nil, &callable.RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
}

func numbers(left, right value.Value) (value.Number, value.Number, bool) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	return ln, rn, lok && rok
}

func compare(op ast.Token, left, right value.Value) (value.Value, *callable.RuntimeError) {
	if ln, ok := left.(value.Number); ok {
		if rn, ok := right.(value.Number); ok {
			return value.Bool(numCompare(op.Kind, float64(ln), float64(rn))), nil
		}
	}
	if ls, ok := left.(value.String); ok {
		if rs, ok := right.(value.String); ok {
			return value.Bool(strCompare(op.Kind, string(ls), string(rs))), nil
		}
	}
	return nil, &callable.RuntimeError{Token: op, Message: "Operands must all be of the same type."}
}

func numCompare(op lexer.Kind, a, b float64) bool {
	switch op {
	case lexer.GREATER:
		return a > b
	case lexer.GREATER_EQUAL:
		return a >= b
	case lexer.LESS:
		return a < b
	case lexer.LESS_EQUAL:
		return a <= b
	}
	panic("eval: unreachable comparison operator")
}

func strCompare(op lexer.Kind, a, b string) bool {
	switch op {
	case lexer.GREATER:
		return a > b
	case lexer.GREATER_EQUAL:
		return a >= b
	case lexer.LESS:
		return a < b
	case lexer.LESS_EQUAL:
		return a <= b
	}
	panic("eval: unreachable comparison operator")
}

func (it *Interpreter) evalCall(n *ast.Call) (value.Value, *callable.RuntimeError) {
	calleeVal, err := it.evalExpr(n.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(callable.Callable)
	if !ok {
		return nil, &callable.RuntimeError{Token: n.Paren, Message: "Can only call functions and classes."}
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := it.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if len(args) != fn.Arity() {
		return nil, &callable.RuntimeError{
			Token:   n.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(it, args)
}

func (it *Interpreter) evalGet(n *ast.Get) (value.Value, *callable.RuntimeError) {
	obj, err := it.evalExpr(n.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *callable.Instance:
		return o.Get(it, n.Name)
	case *callable.Class:
		return o.Get(n.Name)
	case *value.Array:
		return callable.ArrayMember(o, n.Name)
	default:
		return nil, &callable.RuntimeError{Token: n.Name, Message: "Only instances and classes have properties."}
	}
}

func (it *Interpreter) evalSet(n *ast.Set) (value.Value, *callable.RuntimeError) {
	obj, err := it.evalExpr(n.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*callable.Instance)
	if !ok {
		return nil, &callable.RuntimeError{Token: n.Name, Message: "Only instances have fields."}
	}
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(n.Name, v)
	return v, nil
}

// evalSuper reads the superclass from its resolved slot, reads "this"
// from the frame one level nearer (the this-scope the resolver always
// nests just inside the super-scope), and returns the named method
// bound to that receiver (an instance, or the class itself inside a
// class method).
func (it *Interpreter) evalSuper(n *ast.Super) (value.Value, *callable.RuntimeError) {
	depth := it.Depth[n.ID()]
	superVal := it.frame.GetAt(depth, it.Slot[n.ID()])
	superclass := superVal.(*callable.Class)
	receiver := it.frame.GetAt(depth-1, 0)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, &callable.RuntimeError{Token: n.Method, Message: "Undefined property '" + n.Method.Lexeme + "'."}
	}
	return method.Bind(receiver), nil
}
