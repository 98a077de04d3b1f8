/*
File    : epilang/ast/expression.go
*/

// Package ast defines Epilang's expression tree (spec.md §3). Every node is
// immutable once built; the parser is the only producer. Variable references
// carry a resolved scope-depth offset rather than a name — resolution is
// done during parsing (see package parser and package scope).
package ast

import (
	"github.com/epilang-lang/epilang/token"
	"github.com/epilang-lang/epilang/value"
)

// Expression is the common interface implemented by every AST node.
type Expression interface {
	exprNode()
}

// Const is a literal: unit, integer, boolean, or string.
type Const struct {
	Value value.Value
}

// Var is a resolved variable reference: Scope is the de-Bruijn-like depth
// assigned during parsing (spec.md §3 "Expression" / "Scope depth").
type Var struct {
	Name  string
	Scope int
}

// Decl is `let x = E1; E2`: bind E1's value at the current depth, evaluate
// E2, then pop the binding.
type Decl struct {
	Name string
	Init Expression
	Body Expression
}

// Assign is `lvalue = rvalue`. Lvalue is either a *Var or a *ListSelection.
type Assign struct {
	Target Expression
	Value  Expression
}

// Seq is `E1; E2` — evaluate E1, discard its result, evaluate E2.
type Seq struct {
	First  Expression
	Second Expression
}

// List is a list literal `[e1, e2, ...]`.
type List struct {
	Elements []Expression
}

// ListSelection is `list[index]`.
type ListSelection struct {
	List  Expression
	Index Expression
}

// BinaryOp covers every infix arithmetic, relational, and logical operator
// (spec.md §6). A single generalized node mirrors go-mix's
// BinaryExpressionNode (one struct, an Operation field) rather than Epilang's
// original one-variant-per-operator tree.
type BinaryOp struct {
	Op    token.Operator
	Left  Expression
	Right Expression
}

// UnaryOp covers prefix `!`.
type UnaryOp struct {
	Op      token.Operator
	Operand Expression
}

// IfThenElse is `if E { E1 } [else { E2 }]`; Else defaults to a Const{Unit}.
type IfThenElse struct {
	Cond Expression
	Then Expression
	Else Expression
}

// While is `while E { Body }`.
type While struct {
	Guard Expression
	Body  Expression
}

// Function is a function literal `fn(p1, p2, ...) { body }`. ParamNames
// gives the function its arity (len(ParamNames)) and is used for printing;
// parameter references in the body resolve via scope depth like any other
// variable.
type Function struct {
	ParamNames []string
	Body       Expression
}

// FunctionCall is `callable(arg1, arg2, ...)`.
type FunctionCall struct {
	Callable Expression
	Args     []Expression
}

// Try is a bare `try { body }` with no catch clause. Semantically
// transparent at evaluation time: the body's result or error is returned
// unchanged. The parser gives a `throw` inside it no special treatment.
type Try struct {
	Body Expression
}

// TryCatch is `try { body } catch e { handler }`.
type TryCatch struct {
	Body       Expression
	ExceptionVar string
	Handler    Expression
}

// Callcc is `callcc k in { body }`. Label names the continuation; its scope
// depth is resolved like any other variable declared at entry to the block.
type Callcc struct {
	Label string
	Body  Expression
}

// Throw is a plain `throw E` — signals an uncaught exception carrying E's
// value unless caught by an enclosing try/catch.
type Throw struct {
	Value Expression
}

// Throwcc is a labelled `throw k E` — a non-local transfer to the nearest
// enclosing callcc whose label matches k.
type Throwcc struct {
	Label string
	Value Expression
}

func (*Const) exprNode()         {}
func (*Var) exprNode()           {}
func (*Decl) exprNode()          {}
func (*Assign) exprNode()        {}
func (*Seq) exprNode()           {}
func (*List) exprNode()          {}
func (*ListSelection) exprNode() {}
func (*BinaryOp) exprNode()      {}
func (*UnaryOp) exprNode()       {}
func (*IfThenElse) exprNode()    {}
func (*While) exprNode()         {}
func (*Function) exprNode()      {}
func (*FunctionCall) exprNode()  {}
func (*Try) exprNode()           {}
func (*TryCatch) exprNode()      {}
func (*Callcc) exprNode()        {}
func (*Throw) exprNode()         {}
func (*Throwcc) exprNode()       {}
