/*
File    : epilang/function/function.go
*/

// Package function defines the Function record backing value.Fn bodies:
// arity, the body expression, and the external-capture slots used only by
// the REPL's self-recursion special case (spec.md §9 "No closures").
package function

import (
	"fmt"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/value"
)

// Function is a user-defined function: its parameter count, its body
// expression, and any externally-captured slots. Epilang function bodies
// never close over non-parameter locals (spec.md §1 Non-goals) — the only
// externally-captured slot in practice is a function's own name, pre-bound
// by the interactive driver so recursive calls resolve (spec.md §9,
// original_source/src/shell.rs eval_fn).
type Function struct {
	NumArgs        int
	Body           ast.Expression
	ExternalValues []*value.Slot
}

// ToValue wraps f as a value.Fn, erasing the body's concrete package (ast)
// to interface{} so package value need not import package ast.
func (f *Function) ToValue() value.Fn {
	return value.Fn{
		NumArgs:        f.NumArgs,
		Body:           f.Body,
		ExternalValues: f.ExternalValues,
	}
}

// FromValue recovers a *Function's body from a value.Fn produced by ToValue.
func FromValue(v value.Fn) ast.Expression {
	body, ok := v.Body.(ast.Expression)
	if !ok {
		panic(fmt.Sprintf("function: value.Fn.Body holds %T, not ast.Expression", v.Body))
	}
	return body
}
