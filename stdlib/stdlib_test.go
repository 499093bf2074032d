package stdlib

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/value"
)

func newBufReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestClockFn_ReturnsNumber(t *testing.T) {
	v, rerr := clockFn(nil, nil)
	require.Nil(t, rerr)
	_, ok := v.(value.Number)
	assert.True(t, ok)
}

func TestPrintFn_WritesStringFormOfArgPlusNewline(t *testing.T) {
	var out bytes.Buffer
	fn := printFn(&out)

	v, rerr := fn(nil, []value.Value{value.Number(3)})
	require.Nil(t, rerr)
	assert.Equal(t, value.NilValue, v)
	assert.Equal(t, "3\n", out.String())
}

func TestArrayFn_RejectsNegativeAndFractional(t *testing.T) {
	_, rerr := arrayFn(nil, []value.Value{value.Number(-1)})
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Message, "non-negative integer")

	_, rerr = arrayFn(nil, []value.Value{value.Number(1.5)})
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Message, "non-negative integer")
}

func TestArrayFn_RejectsNonNumber(t *testing.T) {
	_, rerr := arrayFn(nil, []value.Value{value.String("x")})
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Message, "non-negative integer")
}

func TestArrayFn_BuildsArrayOfGivenLength(t *testing.T) {
	v, rerr := arrayFn(nil, []value.Value{value.Number(3)})
	require.Nil(t, rerr)
	arr, ok := v.(*value.Array)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestCoerce_IntegerAndDecimalStringsBecomeNumbers(t *testing.T) {
	assert.Equal(t, value.Number(12), coerce("12"))
	assert.Equal(t, value.Number(3.5), coerce("3.5"))
}

func TestCoerce_NilLiteralBecomesNilValue(t *testing.T) {
	assert.Equal(t, value.NilValue, coerce("nil"))
}

func TestCoerce_PartialMatchStaysString(t *testing.T) {
	assert.Equal(t, value.String("12abc"), coerce("12abc"))
	assert.Equal(t, value.String("abc"), coerce("abc"))
	assert.Equal(t, value.String(""), coerce(""))
	assert.Equal(t, value.String("3."), coerce("3."))
}

func TestReadFn_PrintsPromptAndCoercesLine(t *testing.T) {
	var out bytes.Buffer
	reader := newBufReader("42\n")
	fn := readFn(reader, &out)

	v, rerr := fn(nil, []value.Value{value.String("age? ")})
	require.Nil(t, rerr)
	assert.Equal(t, value.Number(42), v)
	assert.Equal(t, "age? ", out.String())
}

func TestReadFn_EOFWithNoInputYieldsNil(t *testing.T) {
	var out bytes.Buffer
	reader := newBufReader("")
	fn := readFn(reader, &out)

	v, rerr := fn(nil, []value.Value{value.String("")})
	require.Nil(t, rerr)
	assert.Equal(t, value.NilValue, v)
}

func TestRegister_DefinesAllFourNatives(t *testing.T) {
	globals := environment.NewGlobals()
	Register(globals, strings.NewReader(""), &bytes.Buffer{})

	for _, name := range []string{"clock", "read", "print", "array"} {
		_, ok := globals.Get(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}
}
