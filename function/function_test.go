/*
File    : epilang/function/function_test.go
*/
package function

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/value"
)

func TestFunction_ToValueAndFromValueRoundTrip(t *testing.T) {
	body := &ast.Var{Name: "x", Scope: 0}
	slot := value.NewSlot(value.Int{Value: 1})
	f := &Function{NumArgs: 1, Body: body, ExternalValues: []*value.Slot{slot}}

	v := f.ToValue()
	assert.Equal(t, 1, v.NumArgs)
	assert.Same(t, slot, v.ExternalValues[0])

	recovered := FromValue(v)
	assert.Same(t, body, recovered)
}

func TestFunction_FromValuePanicsOnForeignBody(t *testing.T) {
	v := value.Fn{NumArgs: 0, Body: "not an expression"}
	assert.Panics(t, func() { FromValue(v) })
}
