/*
File    : epilang/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epilang-lang/epilang/token"
)

type tokenizeCase struct {
	Input    string
	Expected []token.Token
}

func opT(op token.Operator) token.Token { return token.Token{Kind: token.KindOperator, Operator: op} }
func kwT(kw token.Keyword) token.Token  { return token.Token{Kind: token.KindKeyword, Keyword: kw} }
func puT(p token.Punct) token.Token     { return token.Token{Kind: token.KindPunctuation, Punct: p} }
func intT(v int64) token.Token {
	return token.Token{Kind: token.KindOperand, Operand: token.Int, IntValue: v}
}
func identT(name string) token.Token {
	return token.Token{Kind: token.KindOperand, Operand: token.Ident, Ident: name}
}
func strT(s string) token.Token {
	return token.Token{Kind: token.KindOperand, Operand: token.Str, StrValue: s}
}
func boolT(b bool) token.Token {
	return token.Token{Kind: token.KindOperand, Operand: token.Bool, BoolValue: b}
}
func nullT() token.Token { return token.Token{Kind: token.KindOperand, Operand: token.Null} }
func eofT() token.Token  { return token.Token{Kind: token.KindEOF} }

// assertTokenKinds compares Kind/Operand/IntValue/BoolValue/StrValue/Ident/
// Operator/Keyword/Punct, ignoring Line/Column (position bookkeeping isn't
// part of the lexical contract under test here).
func assertTokenKinds(t *testing.T, expected, got []token.Token) {
	t.Helper()
	assert.Equal(t, len(expected), len(got))
	for i := range expected {
		if i >= len(got) {
			break
		}
		e, g := expected[i], got[i]
		assert.Equal(t, e.Kind, g.Kind, "token %d kind", i)
		assert.Equal(t, e.Operand, g.Operand, "token %d operand", i)
		assert.Equal(t, e.IntValue, g.IntValue, "token %d int", i)
		assert.Equal(t, e.BoolValue, g.BoolValue, "token %d bool", i)
		assert.Equal(t, e.StrValue, g.StrValue, "token %d str", i)
		assert.Equal(t, e.Ident, g.Ident, "token %d ident", i)
		assert.Equal(t, e.Operator, g.Operator, "token %d operator", i)
		assert.Equal(t, e.Keyword, g.Keyword, "token %d keyword", i)
		assert.Equal(t, e.Punct, g.Punct, "token %d punct", i)
	}
}

func TestTokenize_ArithmeticAndPunctuation(t *testing.T) {
	tests := []tokenizeCase{
		{
			Input:    ` 1 + 2 * 3 `,
			Expected: []token.Token{intT(1), opT(token.OpAdd), intT(2), opT(token.OpMul), intT(3), eofT()},
		},
		{
			Input: `(a, b) [0] { }`,
			Expected: []token.Token{
				puT(token.LParen), identT("a"), puT(token.Comma), identT("b"), puT(token.RParen),
				puT(token.LBrack), intT(0), puT(token.RBrack),
				puT(token.LBrace), puT(token.RBrace),
				eofT(),
			},
		},
		{
			Input:    `<= >= == != < > ! = ;`,
			Expected: []token.Token{opT(token.OpLte), opT(token.OpGte), opT(token.OpEq), opT(token.OpNeq), opT(token.OpLt), opT(token.OpGt), opT(token.OpNot), opT(token.OpAssign), opT(token.OpSeq), eofT()},
		},
	}
	for _, tt := range tests {
		got, err := Tokenize(tt.Input)
		assert.NoError(t, err, tt.Input)
		assertTokenKinds(t, tt.Expected, got)
	}
}

func TestTokenize_KeywordsAndLiterals(t *testing.T) {
	tests := []tokenizeCase{
		{
			Input:    `while if else let fn try catch callcc in`,
			Expected: []token.Token{kwT(token.KwWhile), kwT(token.KwIf), kwT(token.KwElse), kwT(token.KwLet), kwT(token.KwFn), kwT(token.KwTry), kwT(token.KwCatch), kwT(token.KwCallcc), kwT(token.KwIn), eofT()},
		},
		{
			Input:    `true false null throw`,
			Expected: []token.Token{boolT(true), boolT(false), nullT(), opT(token.OpThrow), eofT()},
		},
		{
			Input:    `"hello world" myVar123 __leading`,
			Expected: []token.Token{strT("hello world"), identT("myVar123"), identT("__leading"), eofT()},
		},
		{
			Input:    `"escaped\nnewline\ttab\"quote\\backslash"`,
			Expected: []token.Token{strT("escaped\nnewline\ttab\"quote\\backslash"), eofT()},
		},
	}
	for _, tt := range tests {
		got, err := Tokenize(tt.Input)
		assert.NoError(t, err, tt.Input)
		assertTokenKinds(t, tt.Expected, got)
	}
}

func TestTokenize_CommentsAreSkipped(t *testing.T) {
	got, err := Tokenize("1 // a line comment\n + /* block\ncomment */ 2")
	assert.NoError(t, err)
	assertTokenKinds(t, []token.Token{intT(1), opT(token.OpAdd), intT(2), eofT()}, got)
}

func TestTokenize_UnterminatedStringIsLexError(t *testing.T) {
	_, err := Tokenize(`"no closing quote`)
	assert.Error(t, err)
	_, ok := err.(*LexError)
	assert.True(t, ok)
}

func TestTokenize_UnexpectedCharacterIsLexError(t *testing.T) {
	_, err := Tokenize(`1 @ 2`)
	assert.Error(t, err)
	_, ok := err.(*LexError)
	assert.True(t, ok)
}

func TestToken_IsCallable(t *testing.T) {
	assert.True(t, intT(1).IsCallable())
	assert.True(t, identT("x").IsCallable())
	assert.True(t, puT(token.RParen).IsCallable())
	assert.True(t, puT(token.RBrack).IsCallable())
	assert.False(t, puT(token.RBrace).IsCallable())
	assert.False(t, opT(token.OpAdd).IsCallable())
	assert.False(t, kwT(token.KwIf).IsCallable())
}
