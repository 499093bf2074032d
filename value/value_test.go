package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNil_Truthy(t *testing.T) {
	assert.False(t, NilValue.Truthy())
	assert.Equal(t, "nil", NilValue.String())
	assert.Equal(t, NilType, NilValue.Type())
}

func TestBool_Truthy(t *testing.T) {
	assert.True(t, Bool(true).Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.Equal(t, "true", Bool(true).String())
}

func TestNumber_StringDropsTrailingZero(t *testing.T) {
	assert.Equal(t, "3", Number(3.0).String())
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "-2", Number(-2.0).String())
}

func TestNumber_AlwaysTruthy(t *testing.T) {
	assert.True(t, Number(0).Truthy())
	assert.True(t, Number(-1).Truthy())
}

func TestString_Truthy(t *testing.T) {
	assert.True(t, String("").Truthy())
	assert.Equal(t, "hi", String("hi").String())
}

func TestNewArray_FillsWithNil(t *testing.T) {
	a := NewArray(3)
	assert.Len(t, a.Elements, 3)
	for _, e := range a.Elements {
		assert.Equal(t, NilValue, e)
	}
	assert.True(t, a.Truthy())
}

func TestArray_String(t *testing.T) {
	a := NewArray(2)
	a.Elements[0] = Number(1)
	a.Elements[1] = String("x")
	assert.Equal(t, `[1, x]`, a.String())
}

func TestSentinel_EqualityIsByIdentity(t *testing.T) {
	a := &Sentinel{Label: "uninitialized"}
	b := &Sentinel{Label: "uninitialized"}
	assert.NotSame(t, a, b, "two distinct sentinels with the same label must not compare equal by identity")
	assert.Same(t, a, a)
	assert.False(t, a.Truthy())
}
