package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/lexer"
	"github.com/sdecook/golox/parser"
	"github.com/sdecook/golox/resolver"
	"github.com/sdecook/golox/stdlib"
)

// run scans, parses, resolves, and evaluates src, returning whatever was
// written to the interpreter's Stdout via the "print" native. Any static
// error fails the test immediately; callers that expect a runtime error
// use runErr instead.
func run(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	err := runInto(t, src, &out)
	require.Nil(t, err, "unexpected runtime error: %v", err)
	return out.String()
}

func runErr(t *testing.T, src string) *string {
	t.Helper()
	var out bytes.Buffer
	err := runInto(t, src, &out)
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}

func runInto(t *testing.T, src string, out *bytes.Buffer) error {
	t.Helper()
	tokens := lexer.New(src).Scan()
	p := parser.New(tokens)
	program := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Diagnostics)

	r := resolver.New()
	r.Resolve(program)
	require.False(t, r.HasErrors(), "unexpected resolve errors: %v", r.Diagnostics)

	globals := environment.NewGlobals()
	stdlib.Register(globals, strings.NewReader(""), out)

	interp := New(globals, r.Depth, r.Slot)
	interp.Stdout = out
	rerr := interp.Run(program)
	if rerr == nil {
		return nil
	}
	return rerr
}

func TestEval_ArithmeticAndPrint(t *testing.T) {
	out := run(t, `print(1 + 2 * 3);`)
	assert.Equal(t, "7\n", out)
}

func TestEval_PlusConcatenatesWhenEitherSideIsString(t *testing.T) {
	assert.Equal(t, "a1\n", run(t, `print("a" + 1);`))
	assert.Equal(t, "1a\n", run(t, `print(1 + "a");`))
	assert.Equal(t, "ab\n", run(t, `print("a" + "b");`))
}

func TestEval_DivisionByZeroIsRuntimeError(t *testing.T) {
	msg := runErr(t, `print(1 / 0);`)
	require.NotNil(t, msg)
	assert.Contains(t, *msg, "Division by zero")
}

func TestEval_VariableScopingAndShadowing(t *testing.T) {
	out := run(t, `
var a = "outer";
{
	var a = "inner";
	print(a);
}
print(a);
`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestEval_WhileLoopWithBreak(t *testing.T) {
	out := run(t, `
var i = 0;
while (true) {
	if (i == 3) break;
	print(i);
	i = i + 1;
}
`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestEval_ForLoop(t *testing.T) {
	out := run(t, `
for (var i = 0; i < 3; i = i + 1) print(i);
`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestEval_FunctionCallAndReturn(t *testing.T) {
	out := run(t, `
fun add(a, b) { return a + b; }
print(add(2, 3));
`)
	assert.Equal(t, "5\n", out)
}

func TestEval_Closures(t *testing.T) {
	out := run(t, `
fun makeCounter() {
	var i = 0;
	fun counter() {
		i = i + 1;
		return i;
	}
	return counter;
}
var counter = makeCounter();
print(counter());
print(counter());
`)
	assert.Equal(t, "1\n2\n", out)
}

func TestEval_ClassInstanceFieldsAndMethods(t *testing.T) {
	out := run(t, `
class Greeter {
	init(name) { this.name = name; }
	greet() { return "Hello, " + this.name; }
}
var g = Greeter("world");
print(g.greet());
`)
	assert.Equal(t, "Hello, world\n", out)
}

func TestEval_InheritanceAndSuper(t *testing.T) {
	out := run(t, `
class Animal {
	speak() { return "..."; }
}
class Dog < Animal {
	speak() { return super.speak() + " Woof"; }
}
print(Dog().speak());
`)
	assert.Equal(t, "... Woof\n", out)
}

func TestEval_ClassMethodsViaMetaclass(t *testing.T) {
	out := run(t, `
class Math {
	class square(n) { return n * n; }
}
print(Math.square(4));
`)
	assert.Equal(t, "16\n", out)
}

func TestEval_Getter(t *testing.T) {
	out := run(t, `
class Circle {
	init(r) { this.r = r; }
	area { return this.r * this.r * 3; }
}
print(Circle(2).area);
`)
	assert.Equal(t, "12\n", out)
}

func TestEval_UndefinedVariableIsRuntimeError(t *testing.T) {
	msg := runErr(t, `print(doesNotExist);`)
	require.NotNil(t, msg)
	assert.Contains(t, *msg, "Undefined variable")
}

func TestEval_ArrayGetSetLength(t *testing.T) {
	out := run(t, `
var a = array(2);
a.set(0, 10);
a.set(1, 20);
print(a.get(0) + a.get(1));
print(a.length());
`)
	assert.Equal(t, "30\n2\n", out)
}

func TestEval_ReplEchoesTopLevelExpressionsOnly(t *testing.T) {
	var out bytes.Buffer
	tokens := lexer.New("1 + 1;").Scan()
	p := parser.New(tokens)
	program := p.Parse()
	require.False(t, p.HasErrors())

	r := resolver.New()
	r.Resolve(program)
	require.False(t, r.HasErrors())

	globals := environment.NewGlobals()
	interp := New(globals, r.Depth, r.Slot)
	interp.REPL = true
	interp.Stdout = &out

	rerr := interp.Run(program)
	require.Nil(t, rerr)
	assert.Equal(t, "2\n", out.String())
}

func TestEval_ReplDoesNotEchoAssignment(t *testing.T) {
	var out bytes.Buffer
	tokens := lexer.New("var x = 1; x = 2;").Scan()
	p := parser.New(tokens)
	program := p.Parse()
	require.False(t, p.HasErrors())

	r := resolver.New()
	r.Resolve(program)
	require.False(t, r.HasErrors())

	globals := environment.NewGlobals()
	interp := New(globals, r.Depth, r.Slot)
	interp.REPL = true
	interp.Stdout = &out

	rerr := interp.Run(program)
	require.Nil(t, rerr)
	assert.Equal(t, "", out.String())
}
