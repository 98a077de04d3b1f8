/*
File    : epilang/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/lexer"
	"github.com/epilang-lang/epilang/token"
	"github.com/epilang-lang/epilang/value"
)

func parse(t *testing.T, src string) (ast.Expression, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func TestParse_PrecedenceClimbing(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3), i.e. the '*' node is the '+'
	// node's Right child (spec.md §4.1 "Tie-breaks and precedence").
	expr, err := parse(t, "1 + 2 * 3")
	assert.NoError(t, err)
	add, ok := expr.(*ast.BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, token.OpAdd, add.Op)
	mul, ok := add.Right.(*ast.BinaryOp)
	assert.True(t, ok)
	if lit, ok := mul.Left.(*ast.Const); ok {
		assert.Equal(t, value.Int{Value: 2}, lit.Value)
	} else {
		t.Fatalf("expected Const, got %T", mul.Left)
	}
}

func TestParse_LeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 should bind as (1 - 2) - 3.
	expr, err := parse(t, "1 - 2 - 3")
	assert.NoError(t, err)
	outer, ok := expr.(*ast.BinaryOp)
	assert.True(t, ok)
	_, ok = outer.Left.(*ast.BinaryOp)
	assert.True(t, ok, "left child of the outer '-' should itself be a BinaryOp")
	if lit, ok := outer.Right.(*ast.Const); ok {
		assert.Equal(t, value.Int{Value: 3}, lit.Value)
	} else {
		t.Fatalf("expected Const, got %T", outer.Right)
	}
}

func TestParse_UnknownVariableIsSyntaxError(t *testing.T) {
	_, err := parse(t, "x + 1")
	assert.Error(t, err)
	_, ok := err.(*SyntaxError)
	assert.True(t, ok)
}

func TestParse_LetBindsScopeDepth(t *testing.T) {
	// let x = 1; let y = 2; x + y — x resolves at depth 0, y at depth 1.
	expr, err := parse(t, "let x = 1; let y = 2; x + y")
	assert.NoError(t, err)
	outerDecl, ok := expr.(*ast.Decl)
	assert.True(t, ok)
	assert.Equal(t, "x", outerDecl.Name)
	innerDecl, ok := outerDecl.Body.(*ast.Decl)
	assert.True(t, ok)
	assert.Equal(t, "y", innerDecl.Name)
	sum, ok := innerDecl.Body.(*ast.BinaryOp)
	assert.True(t, ok)
	xv, ok := sum.Left.(*ast.Var)
	assert.True(t, ok)
	assert.Equal(t, 0, xv.Scope)
	yv, ok := sum.Right.(*ast.Var)
	assert.True(t, ok)
	assert.Equal(t, 1, yv.Scope)
}

func TestParse_FunctionParamsOwnScope(t *testing.T) {
	// A function's body cannot see an enclosing let binding that isn't one
	// of its own parameters (spec.md §1 Non-goals, "no closures").
	_, err := parse(t, "let x = 1; fn(y) { x }")
	assert.Error(t, err)
	_, ok := err.(*SyntaxError)
	assert.True(t, ok)
}

func TestParse_FunctionCallVsGrouping(t *testing.T) {
	// f(1) is a call; (1 + 2) is grouping. Both parse without error and
	// produce the structurally expected node.
	expr, err := parse(t, "let f = fn(x) { x }; f(1)")
	assert.NoError(t, err)
	decl, ok := expr.(*ast.Decl)
	assert.True(t, ok)
	call, ok := decl.Body.(*ast.FunctionCall)
	assert.True(t, ok)
	assert.Len(t, call.Args, 1)

	expr, err = parse(t, "(1 + 2) * 3")
	assert.NoError(t, err)
	mul, ok := expr.(*ast.BinaryOp)
	assert.True(t, ok)
	_, ok = mul.Left.(*ast.BinaryOp)
	assert.True(t, ok, "grouping parens should not produce a FunctionCall")
}

func TestParse_ListLiteralVsListSelection(t *testing.T) {
	expr, err := parse(t, "let a = [1, 2, 3]; a[0]")
	assert.NoError(t, err)
	decl, ok := expr.(*ast.Decl)
	assert.True(t, ok)
	lit, ok := decl.Init.(*ast.List)
	assert.True(t, ok)
	assert.Len(t, lit.Elements, 3)
	sel, ok := decl.Body.(*ast.ListSelection)
	assert.True(t, ok)
	_, ok = sel.Index.(*ast.Const)
	assert.True(t, ok)
}

func TestParse_ThrowVsThrowcc(t *testing.T) {
	// `throw 1` (followed by end-of-input) is a bare Throw.
	expr, err := parse(t, "throw 1")
	assert.NoError(t, err)
	_, ok := expr.(*ast.Throw)
	assert.True(t, ok)

	// `throw k 1` inside a callcc binding k is a labelled Throwcc.
	expr, err = parse(t, "callcc k in { throw k 1 }")
	assert.NoError(t, err)
	cc, ok := expr.(*ast.Callcc)
	assert.True(t, ok)
	tcc, ok := cc.Body.(*ast.Throwcc)
	assert.True(t, ok)
	assert.Equal(t, "k", tcc.Label)
}

// A plain `throw`'s value can be any primary expression, not just a bare
// literal or identifier — grouping, list literals, and function/if/while/
// try/callcc blocks must all parse (spec.md §6 grammar `"throw" [id] E`).
func TestParse_ThrowAcceptsNonOperandValues(t *testing.T) {
	for _, src := range []string{
		`throw (1 + 2)`,
		`throw [1, 2, 3]`,
		`throw fn(x) { x }`,
		`throw if true { 1 } else { 2 }`,
	} {
		expr, err := parse(t, src)
		assert.NoError(t, err, src)
		_, ok := expr.(*ast.Throw)
		assert.True(t, ok, src)
	}
}

func TestParse_IfElseAndAutoSemicolon(t *testing.T) {
	// After the `}` closing the if/else, no explicit `;` is needed before
	// the trailing expression (spec.md §4.1 "Automatic `;` insertion").
	expr, err := parse(t, "if true { 1 } else { 2 } 3")
	assert.NoError(t, err)
	seq, ok := expr.(*ast.Seq)
	assert.True(t, ok)
	_, ok = seq.First.(*ast.IfThenElse)
	assert.True(t, ok)
	lit, ok := seq.Second.(*ast.Const)
	assert.True(t, ok)
	assert.Equal(t, value.Int{Value: 3}, lit.Value)
}

func TestParse_TrailingSemicolonInsertsUnit(t *testing.T) {
	// `1;` at the end of a block gets a synthetic unit RHS (spec.md §4.1
	// "if the next token to be consumed is `}` or the stream is empty, a
	// synthetic unit operand is inserted first").
	expr, err := parse(t, "1;")
	assert.NoError(t, err)
	seq, ok := expr.(*ast.Seq)
	assert.True(t, ok)
	lit, ok := seq.Second.(*ast.Const)
	assert.True(t, ok)
	assert.Equal(t, value.Unit{}, lit.Value)
}

func TestParse_EmptyBlockIsUnit(t *testing.T) {
	expr, err := parse(t, "if true {  }")
	assert.NoError(t, err)
	ite, ok := expr.(*ast.IfThenElse)
	assert.True(t, ok)
	thenLit, ok := ite.Then.(*ast.Const)
	assert.True(t, ok)
	assert.Equal(t, value.Unit{}, thenLit.Value)
	elseLit, ok := ite.Else.(*ast.Const)
	assert.True(t, ok)
	assert.Equal(t, value.Unit{}, elseLit.Value)
}

func TestParse_MismatchedBracketsAreSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		"(1 + 2",
		"[1, 2",
		"if true { 1 ",
	} {
		_, err := parse(t, src)
		assert.Error(t, err, src)
		_, ok := err.(*SyntaxError)
		assert.True(t, ok, src)
	}
}

func TestParse_IncompleteLetGetsUnitBody(t *testing.T) {
	// A `let` with nothing following it (no trailing `;`-separated body)
	// is still well-formed: parseBlockBody sees end-of-input as the block
	// terminator and supplies a unit body.
	expr, err := parse(t, "let x = 1")
	assert.NoError(t, err)
	decl, ok := expr.(*ast.Decl)
	assert.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	lit, ok := decl.Body.(*ast.Const)
	assert.True(t, ok)
	assert.Equal(t, value.Unit{}, lit.Value)
}

func TestParse_CommaInGroupingIsSyntaxError(t *testing.T) {
	_, err := parse(t, "(1, 2)")
	assert.Error(t, err)
}
