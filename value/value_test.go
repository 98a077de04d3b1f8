/*
File    : epilang/value/value_test.go
*/
package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_TypesAndStrings(t *testing.T) {
	assert.Equal(t, UnitType, Unit{}.Type())
	assert.Equal(t, "unit", Unit{}.String())

	assert.Equal(t, IntType, Int{Value: 7}.Type())
	assert.Equal(t, "7", Int{Value: 7}.String())

	assert.Equal(t, BoolType, Bool{Value: true}.Type())
	assert.Equal(t, "true", Bool{Value: true}.String())

	assert.Equal(t, StringType, Str{Value: "hi"}.Type())
	assert.Equal(t, "hi", Str{Value: "hi"}.String())

	fn := Fn{NumArgs: 2}
	assert.Equal(t, FunctionType, fn.Type())
	assert.Equal(t, "<function/2>", fn.String())
}

func TestValue_ListString(t *testing.T) {
	lst := List{Elements: []*Slot{NewSlot(Int{Value: 1}), NewSlot(Int{Value: 2})}}
	assert.Equal(t, ListType, lst.Type())
	assert.Equal(t, "[1, 2]", lst.String())
}

func TestValue_ListAliasingViaSharedSlots(t *testing.T) {
	shared := NewSlot(Int{Value: 1})
	a := List{Elements: []*Slot{shared}}
	b := a // copies the slice header only, not the slots
	b.Elements[0].Set(Int{Value: 99})
	assert.Equal(t, Int{Value: 99}, a.Elements[0].Get())
}

func TestSlot_GetSet(t *testing.T) {
	s := NewSlot(Int{Value: 1})
	assert.Equal(t, Int{Value: 1}, s.Get())
	s.Set(Bool{Value: true})
	assert.Equal(t, Bool{Value: true}, s.Get())
}

func TestTruthy(t *testing.T) {
	b, ok := Truthy(Bool{Value: true})
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Truthy(Int{Value: 1})
	assert.False(t, ok)
}
