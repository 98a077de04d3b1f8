/*
File    : epilang/eval/errors.go
*/

package eval

import (
	"fmt"

	"github.com/epilang-lang/epilang/value"
)

// Kind distinguishes the two shapes of runtime error the control-flow
// substrate unifies (spec.md §4.2 "Control-flow substrate"): a plain
// exception (from `throw`, or an internal fault such as a type error) versus
// a labelled escape (from `throw k`) aimed at a specific enclosing callcc.
//
// The source this was ported from tells the two apart by sniffing whether
// the error message starts with "uncaught exception " (spec.md §9 "Unified
// error channel" calls this out as worth replacing with a tagged sum). This
// Kind field is that tagged sum: callcc and try/catch dispatch on it
// directly instead of inspecting message text.
type Kind int

const (
	// Exception is an unlabelled error: a bare `throw v`, or any internal
	// runtime fault (type error, division by zero, index out of range,
	// wrong arity, non-callable callee). It is never caught by callcc —
	// only try/catch catches it — and it is what the root driver reports
	// as an uncaught exception if nothing catches it.
	Exception Kind = iota
	// Escape is a labelled `throw k v`. try/catch catches it like any other
	// error; callcc catches it only when its own label matches.
	Escape
)

// Error is the runtime error value threaded through every eval call. It
// carries its Kind, the Label of an Escape, and the Payload value (for
// `callcc`/`try`/`catch` to hand to a handler). It has no separate message
// field: the diagnostic text comes from Error(), and an internal fault
// carries its message text as a value.Str Payload.
type Error struct {
	Kind    Kind
	Label   string
	Payload value.Value
}

func (e *Error) Error() string {
	if e.Kind == Escape {
		return fmt.Sprintf("escape %q: %s", e.Label, e.Payload.String())
	}
	return fmt.Sprintf("uncaught exception %s", e.Payload.String())
}

func exception(msg string) *Error {
	return &Error{Kind: Exception, Payload: value.Str{Value: msg}}
}

func thrown(v value.Value) *Error {
	return &Error{Kind: Exception, Payload: v}
}

func escape(label string, v value.Value) *Error {
	return &Error{Kind: Escape, Label: label, Payload: v}
}
