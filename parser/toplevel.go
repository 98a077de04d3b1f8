/*
File    : epilang/parser/toplevel.go
*/

package parser

import (
	"fmt"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/scope"
	"github.com/epilang-lang/epilang/token"
	"github.com/epilang-lang/epilang/value"
)

// TopLevelKind distinguishes the three shapes of input the interactive
// driver accepts at its prompt (grounded on original_source/src/shell.rs's
// eval_let/eval_fn/eval_expr dispatch, which the base grammar has no
// equivalent for: a bare `let name = expr` or named `fn name(...) {...}`
// normally requires a trailing body, but the driver lets each prompt line
// extend a persistent binding set instead).
type TopLevelKind int

const (
	// TopLevelExpr is an ordinary expression: evaluate it, print the
	// result, and leave the persistent scope unchanged.
	TopLevelExpr TopLevelKind = iota
	// TopLevelLet is `let name [= expr]` with no trailing body: expr's
	// value permanently occupies a new slot every later line can see.
	TopLevelLet
	// TopLevelFn is a named `fn name(params) { body }`: recorded as a
	// function value bound under name, wired for self-recursion.
	TopLevelFn
)

// TopLevelResult is one parsed line of interactive input.
type TopLevelResult struct {
	Kind TopLevelKind
	Name string // set for TopLevelLet and TopLevelFn

	Init ast.Expression // TopLevelLet's initializer
	Fn   *ast.Function  // TopLevelFn's literal (params already scope-resolved)
	Expr ast.Expression // TopLevelExpr's expression

	// Depth is the depth the binding occupies in root (Let and Fn only).
	// For Fn it is also the outer depth recorded in the function scope's
	// external-capture list; inside the body the name resolves at the depth
	// right after the parameters.
	Depth int
}

// ParseTopLevel parses one line against root, a FunctionScope the caller
// keeps alive across calls. A top-level `let` or named `fn` declares
// permanently into root rather than requiring — and consuming — a trailing
// body the way the nested grammar form does.
func ParseTopLevel(tokens []token.Token, root *scope.FunctionScope) (result TopLevelResult, err error) {
	p := &Parser{tokens: tokens}
	p.pushScope(root)

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()

	switch {
	case p.peekIsKeyword(token.KwLet):
		result = p.parseTopLevelLet()
	case p.peekIsKeyword(token.KwFn) && p.peekAheadIsIdent():
		result = p.parseTopLevelFn()
	default:
		expr := p.parseStatementSeq(token.Punct(""))
		result = TopLevelResult{Kind: TopLevelExpr, Expr: expr}
	}

	if p.peek().Kind != token.KindEOF {
		p.fail(fmt.Sprintf("unexpected trailing token %s", p.peek()))
	}
	return result, nil
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.tokens[idx]
}

func (p *Parser) peekAheadIsIdent() bool {
	t := p.peekAt(1)
	return t.Kind == token.KindOperand && t.Operand == token.Ident
}

func (p *Parser) parseTopLevelLet() TopLevelResult {
	p.advance() // 'let'
	name := p.expectIdentName()

	var init ast.Expression = &ast.Const{Value: value.Unit{}}
	if p.peekIsOperator(token.OpAssign) {
		p.advance()
		init = p.parseExprNoSeq()
	}
	for p.peekIsOperator(token.OpSeq) {
		p.advance()
	}

	depth := p.scope().Declare(name)
	return TopLevelResult{Kind: TopLevelLet, Name: name, Init: init, Depth: depth}
}

// parseTopLevelFn parses the driver's named-function sugar. The function's
// own name is bound in root (so later lines can call it) and, inside the
// function's own scope, captured as an external value recorded with that
// root depth and declared right after the parameters
// (scope.FunctionScope.BindExternal) so a recursive call resolves it —
// mirroring original_source/src/shell.rs's eval_fn, which rebuilds the
// function's stack frame with its own closure slot appended after its
// parameters.
func (p *Parser) parseTopLevelFn() TopLevelResult {
	p.advance() // 'fn'
	name := p.expectIdentName()
	p.expectPunct(token.LParen)
	var params []string
	if !p.peekIsPunct(token.RParen) {
		params = append(params, p.expectIdentName())
		for p.peekIsPunct(token.Comma) {
			p.advance()
			params = append(params, p.expectIdentName())
		}
	}
	p.expectPunct(token.RParen)

	rootDepth := p.scope().Declare(name)

	inner := scope.New(params)
	inner.BindExternal(name, rootDepth)
	p.pushScope(inner)
	body := p.parseBlock()
	p.popScope()

	return TopLevelResult{
		Kind:  TopLevelFn,
		Name:  name,
		Fn:    &ast.Function{ParamNames: params, Body: body},
		Depth: rootDepth,
	}
}
