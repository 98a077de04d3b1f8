/*
File    : epilang/parser/errors.go
*/

package parser

import "fmt"

// SyntaxError is a parse failure. It carries a single diagnostic message and
// the position of the offending token (spec.md §7 "syntax errors carry a
// single message... unrecoverable for the current parse").
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%d:%d] syntax error: %s", e.Line, e.Column, e.Msg)
}
