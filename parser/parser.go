/*
File    : epilang/parser/parser.go
*/

// Package parser converts a token stream into an ast.Expression, resolving
// every variable reference to a stack-frame depth as it goes (spec.md §4.1).
//
// The algorithm is grounded in original_source/src/parser.rs's shunting-yard
// (an explicit operator stack, output stack, and marker tokens for every
// control form), but is written here as a precedence-climbing recursive
// descent, the structure go-mix's parser/parser.go uses (a Parser type with
// per-construct parse methods dispatched by the current token, rather than
// three bare stacks the caller manipulates directly). The two formulations
// produce identical trees for this grammar: there is no right-associative or
// ternary operator, and every control form is delimited by its own closing
// bracket, so a recursive call can stand in for "pop to the matching marker".
// See DESIGN.md for the full reasoning.
package parser

import (
	"fmt"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/scope"
	"github.com/epilang-lang/epilang/token"
	"github.com/epilang-lang/epilang/value"
)

// Parser holds the token stream and the parser's working state: the current
// position, the last-consumed token (needed to reproduce automatic `;`
// insertion after `}`, spec.md §4.1), and a stack of lexical FunctionScopes,
// one per nested `fn`.
type Parser struct {
	tokens []token.Token
	pos    int
	prev   token.Token

	scopes []*scope.FunctionScope
}

// Parse tokenizes nothing itself — it consumes an already-lexed token
// stream (spec.md §1 marks the lexer out of scope for the core) and returns
// the root expression, or a *SyntaxError.
func Parse(tokens []token.Token) (expr ast.Expression, err error) {
	p := &Parser{tokens: tokens}
	p.pushScope(scope.New(nil))

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()

	expr = p.parseBlockBody(token.Punct(""))
	if p.peek().Kind != token.KindEOF {
		p.fail(fmt.Sprintf("unexpected trailing token %s", p.peek()))
	}
	return expr, nil
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.prev = t
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) fail(msg string) {
	t := p.peek()
	panic(&SyntaxError{Msg: msg, Line: t.Line, Column: t.Column})
}

func (p *Parser) peekIsOperator(op token.Operator) bool {
	t := p.peek()
	return t.Kind == token.KindOperator && t.Operator == op
}

func (p *Parser) peekIsPunct(pu token.Punct) bool {
	t := p.peek()
	return t.Kind == token.KindPunctuation && t.Punct == pu
}

func (p *Parser) peekIsKeyword(kw token.Keyword) bool {
	t := p.peek()
	return t.Kind == token.KindKeyword && t.Keyword == kw
}

func (p *Parser) expectPunct(pu token.Punct) {
	if !p.peekIsPunct(pu) {
		p.fail(fmt.Sprintf("expected %q, got %s", pu, p.peek()))
	}
	p.advance()
}

func (p *Parser) expectKeyword(kw token.Keyword) {
	if !p.peekIsKeyword(kw) {
		p.fail(fmt.Sprintf("expected %q, got %s", kw, p.peek()))
	}
	p.advance()
}

func (p *Parser) expectIdentName() string {
	t := p.peek()
	if t.Kind != token.KindOperand || t.Operand != token.Ident {
		p.fail(fmt.Sprintf("expected identifier, got %s", t))
	}
	p.advance()
	return t.Ident
}

// isStatementTerminator reports whether t ends a statement — used for
// throw's label/value lookahead and for auto-`;` insertion.
func isStatementTerminator(t token.Token) bool {
	switch {
	case t.Kind == token.KindEOF:
		return true
	case t.Kind == token.KindOperator && t.Operator == token.OpSeq:
		return true
	case t.Kind == token.KindPunctuation && (t.Punct == token.RParen || t.Punct == token.RBrack || t.Punct == token.RBrace):
		return true
	default:
		return false
	}
}

func (p *Parser) atTerminator(closer token.Punct) bool {
	t := p.peek()
	if t.Kind == token.KindEOF {
		return true
	}
	return closer != "" && t.Kind == token.KindPunctuation && t.Punct == closer
}

// --- scope stack ---

func (p *Parser) pushScope(fs *scope.FunctionScope) {
	p.scopes = append(p.scopes, fs)
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) scope() *scope.FunctionScope {
	return p.scopes[len(p.scopes)-1]
}

// --- statement sequencing ---

// parseBlockBody parses the contents of a block bounded by closer (`}`,
// `)`, or "" for the top-level program bounded only by end-of-input). An
// empty block evaluates to unit.
func (p *Parser) parseBlockBody(closer token.Punct) ast.Expression {
	if p.atTerminator(closer) {
		return &ast.Const{Value: value.Unit{}}
	}
	return p.parseStatementSeq(closer)
}

// parseStatementSeq parses `stmt (';' stmt)*`, collapsing runs of `;` and
// inserting a synthetic unit operand when a trailing `;` is immediately
// followed by closer or end-of-input (spec.md §4.1 "the `;` operator has two
// special rules"). It also reproduces automatic `;` insertion after a `}`
// that closes a control form, when the next token doesn't already signal
// the end of the statement sequence (spec.md §4.1 "After `}`...").
func (p *Parser) parseStatementSeq(closer token.Punct) ast.Expression {
	left := p.parseExprNoSeq()
	for {
		if p.peekIsOperator(token.OpSeq) {
			p.advance()
			for p.peekIsOperator(token.OpSeq) {
				p.advance()
			}
			if p.atTerminator(closer) {
				return &ast.Seq{First: left, Second: &ast.Const{Value: value.Unit{}}}
			}
			right := p.parseExprNoSeq()
			left = &ast.Seq{First: left, Second: right}
			continue
		}
		if p.prev.Kind == token.KindPunctuation && p.prev.Punct == token.RBrace &&
			!isStatementTerminator(p.peek()) && !p.peekIsKeyword(token.KwElse) && !p.peekIsKeyword(token.KwCatch) {
			right := p.parseExprNoSeq()
			left = &ast.Seq{First: left, Second: right}
			continue
		}
		return left
	}
}

// parseExprNoSeq parses one statement's worth of expression — everything
// except top-level `;` sequencing, which only parseStatementSeq introduces.
func (p *Parser) parseExprNoSeq() ast.Expression {
	return p.climb(int(token.OpAssign.Precedence()))
}

// climb is precedence-climbing over left-associative binary operators,
// bottoming out at parseUnary. maxPrec is the loosest (numerically largest)
// precedence this call will consume (spec.md §4.1 "Tie-breaks and
// precedence": lower number binds tighter).
func (p *Parser) climb(maxPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		t := p.peek()
		if t.Kind != token.KindOperator {
			return left
		}
		prec := t.Operator.Precedence()
		if prec > maxPrec {
			return left
		}
		p.advance()

		if t.Operator == token.OpAssign {
			if !isAssignable(left) {
				p.fail("left-hand side of '=' is not assignable")
			}
			right := p.climb(prec - 1)
			left = &ast.Assign{Target: left, Value: right}
			continue
		}

		right := p.climb(prec - 1)
		left = &ast.BinaryOp{Op: t.Operator, Left: left, Right: right}
	}
}

func isAssignable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Var, *ast.ListSelection:
		return true
	default:
		return false
	}
}

// --- unary / primary ---

func (p *Parser) parseUnary() ast.Expression {
	t := p.peek()
	if t.Kind == token.KindOperator && t.Operator == token.OpNot {
		p.advance()
		return &ast.UnaryOp{Op: token.OpNot, Operand: p.parseUnary()}
	}
	if t.Kind == token.KindOperator && t.Operator == token.OpThrow {
		return p.parseThrow()
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	t := p.peek()
	switch {
	case t.Kind == token.KindOperand:
		expr, _, _ := p.parseOperand()
		return p.parsePostfix(expr)
	case t.Kind == token.KindPunctuation && t.Punct == token.LParen:
		return p.parsePostfix(p.parseGrouping())
	case t.Kind == token.KindPunctuation && t.Punct == token.LBrack:
		return p.parsePostfix(p.parseListLiteral())
	case t.Kind == token.KindKeyword && t.Keyword == token.KwLet:
		return p.parseLet()
	case t.Kind == token.KindKeyword && t.Keyword == token.KwIf:
		return p.parseIf()
	case t.Kind == token.KindKeyword && t.Keyword == token.KwWhile:
		return p.parseWhile()
	case t.Kind == token.KindKeyword && t.Keyword == token.KwFn:
		return p.parseFn()
	case t.Kind == token.KindKeyword && t.Keyword == token.KwTry:
		return p.parseTry()
	case t.Kind == token.KindKeyword && t.Keyword == token.KwCallcc:
		return p.parseCallcc()
	default:
		p.fail(fmt.Sprintf("unexpected token %s", t))
		return nil
	}
}

// parseOperand consumes one literal or identifier operand. For identifiers
// it also returns the bare name and true, so callers that need the raw
// name (throw's label disambiguation) don't have to unwrap the *ast.Var.
func (p *Parser) parseOperand() (ast.Expression, string, bool) {
	t := p.peek()
	if t.Kind != token.KindOperand {
		p.fail(fmt.Sprintf("expected operand, got %s", t))
	}
	switch t.Operand {
	case token.Null:
		p.advance()
		return &ast.Const{Value: value.Unit{}}, "", false
	case token.Int:
		p.advance()
		return &ast.Const{Value: value.Int{Value: t.IntValue}}, "", false
	case token.Bool:
		p.advance()
		return &ast.Const{Value: value.Bool{Value: t.BoolValue}}, "", false
	case token.Str:
		p.advance()
		return &ast.Const{Value: value.Str{Value: t.StrValue}}, "", false
	case token.Ident:
		name := t.Ident
		p.advance()
		depth, ok := p.scope().Resolve(name)
		if !ok {
			p.fail(fmt.Sprintf("unknown variable %q", name))
		}
		return &ast.Var{Name: name, Scope: depth}, name, true
	default:
		p.fail("expected operand")
		return nil, "", false
	}
}

// parsePostfix applies zero or more trailing call/selection suffixes.
// Only operand results and the closing brackets of grouping/list-literal
// are "callable" (spec.md §4.1 / token.Token.IsCallable) — a block form
// closed by `}` (if/while/fn/try/callcc) is never postfix-applied.
func (p *Parser) parsePostfix(base ast.Expression) ast.Expression {
	for {
		switch {
		case p.peekIsPunct(token.LParen):
			p.advance()
			var args []ast.Expression
			if !p.peekIsPunct(token.RParen) {
				args = append(args, p.parseExprNoSeq())
				for p.peekIsPunct(token.Comma) {
					p.advance()
					args = append(args, p.parseExprNoSeq())
				}
			}
			p.expectPunct(token.RParen)
			base = &ast.FunctionCall{Callable: base, Args: args}
		case p.peekIsPunct(token.LBrack):
			p.advance()
			idx := p.parseExprNoSeq()
			p.expectPunct(token.RBrack)
			base = &ast.ListSelection{List: base, Index: idx}
		default:
			return base
		}
	}
}

func (p *Parser) parseGrouping() ast.Expression {
	p.advance() // '('
	body := p.parseBlockBody(token.RParen)
	p.expectPunct(token.RParen)
	return body
}

func (p *Parser) parseListLiteral() ast.Expression {
	p.advance() // '['
	var elems []ast.Expression
	if !p.peekIsPunct(token.RBrack) {
		elems = append(elems, p.parseExprNoSeq())
		for p.peekIsPunct(token.Comma) {
			p.advance()
			elems = append(elems, p.parseExprNoSeq())
		}
	}
	p.expectPunct(token.RBrack)
	return &ast.List{Elements: elems}
}

// parseThrow disambiguates `throw v` from `throw k v`. Label-lookahead only
// applies when the token right after `throw` is an identifier; any other
// token starts a plain value expression and can never be a Throwcc label
// (spec.md §4.1 "throw is disambiguated").
func (p *Parser) parseThrow() ast.Expression {
	p.advance() // 'throw'
	if p.peek().Kind != token.KindOperand || p.peek().Operand != token.Ident {
		return &ast.Throw{Value: p.parsePrimary()}
	}
	first, name, _ := p.parseOperand()
	if isStatementTerminator(p.peek()) {
		return &ast.Throw{Value: first}
	}
	val := p.parseExprNoSeq()
	return &ast.Throwcc{Label: name, Value: val}
}

// --- block forms ---

func (p *Parser) parseBlock() ast.Expression {
	p.expectPunct(token.LBrace)
	body := p.parseBlockBody(token.RBrace)
	p.expectPunct(token.RBrace)
	return body
}

func (p *Parser) parseLet() ast.Expression {
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

	p.scope().Declare(name)
	body := p.parseBlockBody(token.Punct(""))
	p.scope().Undeclare()
	return &ast.Decl{Name: name, Init: init, Body: body}
}

func (p *Parser) parseIf() ast.Expression {
	p.advance() // 'if'
	cond := p.parseExprNoSeq()
	then := p.parseBlock()
	var els ast.Expression = &ast.Const{Value: value.Unit{}}
	if p.peekIsKeyword(token.KwElse) {
		p.advance()
		els = p.parseBlock()
	}
	return &ast.IfThenElse{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Expression {
	p.advance() // 'while'
	guard := p.parseExprNoSeq()
	body := p.parseBlock()
	return &ast.While{Guard: guard, Body: body}
}

func (p *Parser) parseFn() ast.Expression {
	p.advance() // 'fn'
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

	p.pushScope(scope.New(params))
	body := p.parseBlock()
	p.popScope()
	return &ast.Function{ParamNames: params, Body: body}
}

func (p *Parser) parseTry() ast.Expression {
	p.advance() // 'try'
	body := p.parseBlock()
	if !p.peekIsKeyword(token.KwCatch) {
		return &ast.Try{Body: body}
	}
	p.advance() // 'catch'
	excVar := p.expectIdentName()
	p.scope().Declare(excVar)
	handler := p.parseBlock()
	p.scope().Undeclare()
	return &ast.TryCatch{Body: body, ExceptionVar: excVar, Handler: handler}
}

func (p *Parser) parseCallcc() ast.Expression {
	p.advance() // 'callcc'
	label := p.expectIdentName()
	p.scope().Declare(label)
	p.expectKeyword(token.KwIn)
	body := p.parseBlock()
	p.scope().Undeclare()
	return &ast.Callcc{Label: label, Body: body}
}
