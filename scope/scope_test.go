/*
File    : epilang/scope/scope_test.go
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionScope_ParamsBoundAtSequentialDepths(t *testing.T) {
	fs := New([]string{"a", "b", "c"})
	assert.Equal(t, 3, fs.Depth())

	for i, name := range []string{"a", "b", "c"} {
		d, ok := fs.Resolve(name)
		assert.True(t, ok, name)
		assert.Equal(t, i, d, name)
	}
}

func TestFunctionScope_DeclareAdvancesDepth(t *testing.T) {
	fs := New(nil)
	d1 := fs.Declare("x")
	assert.Equal(t, 0, d1)
	d2 := fs.Declare("y")
	assert.Equal(t, 1, d2)
	assert.Equal(t, 2, fs.Depth())
}

func TestFunctionScope_UndeclareReversesDepth(t *testing.T) {
	fs := New([]string{"p"})
	fs.Declare("x")
	assert.Equal(t, 2, fs.Depth())
	fs.Undeclare()
	assert.Equal(t, 1, fs.Depth())
}

func TestFunctionScope_UndeclareBelowZeroPanics(t *testing.T) {
	fs := New(nil)
	assert.Panics(t, func() { fs.Undeclare() })
}

func TestFunctionScope_ResolveUnknownNameFails(t *testing.T) {
	fs := New([]string{"a"})
	_, ok := fs.Resolve("nope")
	assert.False(t, ok)
}

func TestFunctionScope_ShadowingRebindsToLatestDepth(t *testing.T) {
	fs := New(nil)
	fs.Declare("x")
	d := fs.Declare("x")
	got, ok := fs.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, d, got)
}

func TestFunctionScope_BindExternalRecordsOuterDepthAndDeclaresLocally(t *testing.T) {
	fs := New([]string{"x"})
	d := fs.BindExternal("self", 3)
	assert.Equal(t, 1, d)
	assert.Len(t, fs.External, 1)
	assert.Equal(t, ExternalVar{Name: "self", Scope: 3}, fs.External[0])
	got, ok := fs.Resolve("self")
	assert.True(t, ok)
	assert.Equal(t, d, got)
}
