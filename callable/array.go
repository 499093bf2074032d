package callable

import (
	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/value"
)

// ArrayMember resolves the get/set/length property surface the
// array(n) native exposes on a value.Array, returning each as a bound
// Native closure over arr.
func ArrayMember(arr *value.Array, name ast.Token) (value.Value, *RuntimeError) {
	switch name.Lexeme {
	case "get":
		return &Native{NameStr: "get", ArityN: 1, Fn: func(_ Interpreter, args []value.Value) (value.Value, *RuntimeError) {
			i, ok := arrayIndex(args[0])
			if !ok {
				return nil, &RuntimeError{Token: name, Message: "Array index must be an integer."}
			}
			if i < 0 || i >= len(arr.Elements) {
				return nil, &RuntimeError{Token: name, Message: "Array index out of range."}
			}
			return arr.Elements[i], nil
		}}, nil
	case "set":
		return &Native{NameStr: "set", ArityN: 2, Fn: func(_ Interpreter, args []value.Value) (value.Value, *RuntimeError) {
			if _, isNil := args[0].(value.Nil); isNil {
				arr.Elements = append(arr.Elements, args[1])
				return value.NilValue, nil
			}
			i, ok := arrayIndex(args[0])
			if !ok {
				return nil, &RuntimeError{Token: name, Message: "Array index must be an integer."}
			}
			if i < 0 || i >= len(arr.Elements) {
				return nil, &RuntimeError{Token: name, Message: "Array index out of range."}
			}
			arr.Elements[i] = args[1]
			return value.NilValue, nil
		}}, nil
	case "length":
		return &Native{NameStr: "length", ArityN: 0, Fn: func(_ Interpreter, _ []value.Value) (value.Value, *RuntimeError) {
			return value.Number(len(arr.Elements)), nil
		}}, nil
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

func arrayIndex(v value.Value) (int, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	i := int(n)
	if value.Number(i) != n {
		return 0, false
	}
	return i, true
}
