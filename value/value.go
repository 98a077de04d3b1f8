/*
File    : epilang/value/value.go
*/

// Package value defines Epilang's runtime value model: the tagged Value
// variants (unit, integer, boolean, string, list, function) and the Slot
// abstraction that backs every variable binding on the evaluator's stack.
package value

import (
	"fmt"
	"strings"
)

// Type identifies the runtime tag of a Value. Used for error messages and
// type-mismatch diagnostics; Epilang has no reflection or user-defined types.
type Type string

const (
	UnitType     Type = "unit"
	IntType      Type = "int"
	BoolType     Type = "bool"
	StringType   Type = "string"
	ListType     Type = "list"
	FunctionType Type = "func"
)

// Value is the tagged union of every runtime value Epilang programs can
// produce: Unit, Int, Bool, Str, List, Fn (spec.md §3).
type Value interface {
	Type() Type
	String() string
}

// Unit is the single value of unit type, produced by declarations without
// an initializer, the default else-branch, and statement sequencing.
type Unit struct{}

func (Unit) Type() Type     { return UnitType }
func (Unit) String() string { return "unit" }

// Int is a 64-bit signed integer.
type Int struct {
	Value int64
}

func (Int) Type() Type        { return IntType }
func (i Int) String() string  { return fmt.Sprintf("%d", i.Value) }

// Bool is a boolean.
type Bool struct {
	Value bool
}

func (Bool) Type() Type       { return BoolType }
func (b Bool) String() string { return fmt.Sprintf("%t", b.Value) }

// Str is an immutable string.
type Str struct {
	Value string
}

func (Str) Type() Type       { return StringType }
func (s Str) String() string { return s.Value }

// List is an ordered, mutable sequence of slots. Copying a List value copies
// the Elements slice header, not the slots it points at, so two List values
// that share a backing Elements slice observe each other's in-place element
// writes (spec.md §3 "List aliasing").
type List struct {
	Elements []*Slot
}

func (List) Type() Type { return ListType }

func (l List) String() string {
	parts := make([]string, len(l.Elements))
	for i, s := range l.Elements {
		parts[i] = s.Get().String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Fn is a first-class function value: its arity, its body expression, and
// any externally-captured slots (used only by the REPL's self-recursion
// special case — see the repl package's handling of top-level named `fn`
// lines and spec.md §9 "No closures").
//
// Body is declared as interface{} here and type-asserted to ast.Expression
// by function.FromValue, because ast imports value (for ast.Const) and value
// cannot import ast back without a cycle.
type Fn struct {
	NumArgs         int
	Body            interface{}
	ExternalValues  []*Slot
}

func (Fn) Type() Type     { return FunctionType }
func (f Fn) String() string { return fmt.Sprintf("<function/%d>", f.NumArgs) }

// Slot is a shared, assignable cell: the unit of variable storage (spec.md
// §3 "StackSlot"). Re-assigning a variable replaces its slot's contents;
// copying a slot pointer (not its contents) is what makes two variables
// bound to the same list observe each other's element writes.
type Slot struct {
	value Value
}

// NewSlot allocates a slot holding v.
func NewSlot(v Value) *Slot {
	return &Slot{value: v}
}

// Get returns the slot's current value.
func (s *Slot) Get() Value {
	return s.value
}

// Set replaces the slot's contents.
func (s *Slot) Set(v Value) {
	s.value = v
}

// Truthy reports whether v is boolean true. Only Bool is a valid guard; the
// second result reports whether v is a Bool at all, so callers can treat a
// non-bool as an error.
func Truthy(v Value) (bool, bool) {
	b, ok := v.(Bool)
	if !ok {
		return false, false
	}
	return b.Value, true
}
