package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/value"
)

func TestFrame_DefineReturnsSlotIndex(t *testing.T) {
	f := New(nil)
	assert.Equal(t, 0, f.Define(value.Number(1)))
	assert.Equal(t, 1, f.Define(value.Number(2)))
	assert.Equal(t, 2, f.Define(value.Number(3)))
}

func TestFrame_GetAtAndAssignAt(t *testing.T) {
	f := New(nil)
	f.Define(value.Number(10))
	assert.Equal(t, value.Number(10), f.GetAt(0, 0))

	f.AssignAt(0, 0, value.Number(20))
	assert.Equal(t, value.Number(20), f.GetAt(0, 0))
}

func TestFrame_GetAtWalksAncestors(t *testing.T) {
	outer := New(nil)
	outer.Define(value.String("outer-val"))

	inner := New(outer)
	inner.Define(value.String("inner-val"))

	assert.Equal(t, value.String("inner-val"), inner.GetAt(0, 0))
	assert.Equal(t, value.String("outer-val"), inner.GetAt(1, 0))
}

func TestFrame_AssignAtWritesThroughAncestor(t *testing.T) {
	outer := New(nil)
	outer.Define(value.Number(1))
	inner := New(outer)

	inner.AssignAt(1, 0, value.Number(99))
	assert.Equal(t, value.Number(99), outer.GetAt(0, 0))
}

func TestFrame_UninitializedSlotHoldsSentinel(t *testing.T) {
	f := New(nil)
	f.Define(Uninitialized)
	assert.Same(t, Uninitialized, f.GetAt(0, 0))
	assert.False(t, f.GetAt(0, 0).Truthy())
}

func TestGlobals_DefineAndGet(t *testing.T) {
	g := NewGlobals()
	g.Define("x", value.Number(1))

	v, ok := g.Get("x")
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	_, ok = g.Get("missing")
	assert.False(t, ok)
}

func TestGlobals_DefineAllowsRedeclaration(t *testing.T) {
	g := NewGlobals()
	g.Define("x", value.Number(1))
	g.Define("x", value.Number(2))

	v, _ := g.Get("x")
	assert.Equal(t, value.Number(2), v)
}

func TestGlobals_AssignOnlySucceedsIfAlreadyBound(t *testing.T) {
	g := NewGlobals()
	assert.False(t, g.Assign("x", value.Number(1)), "assigning an unbound global should fail")

	g.Define("x", value.Number(1))
	assert.True(t, g.Assign("x", value.Number(2)))

	v, _ := g.Get("x")
	assert.Equal(t, value.Number(2), v)
}
