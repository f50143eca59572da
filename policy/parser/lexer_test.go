package parser

import (
	"testing"

	"github.com/dangerclosesec/polar/policy/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokens(t *testing.T) {
	input := `allow(x, "a\"b") if x.y >= -1.5 and z := Foo::Bar; # trailing
?= not true; [*rest] != {k: 10} mod rem matches type forall new debug print cut in or | !`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{TokenSymbol, "allow"},
		{TokenLParen, "("},
		{TokenSymbol, "x"},
		{TokenComma, ","},
		{TokenString, `a"b`},
		{TokenRParen, ")"},
		{TokenIf, "if"},
		{TokenSymbol, "x"},
		{TokenDot, "."},
		{TokenSymbol, "y"},
		{TokenGTE, ">="},
		{TokenSub, "-"},
		{TokenFloat, "1.5"},
		{TokenAnd, "and"},
		{TokenSymbol, "z"},
		{TokenAssign, ":="},
		{TokenSymbol, "Foo::Bar"},
		{TokenSemicolon, ";"},
		{TokenQuery, "?="},
		{TokenNot, "not"},
		{TokenBoolean, "true"},
		{TokenSemicolon, ";"},
		{TokenLBracket, "["},
		{TokenMul, "*"},
		{TokenSymbol, "rest"},
		{TokenRBracket, "]"},
		{TokenNEQ, "!="},
		{TokenLBrace, "{"},
		{TokenSymbol, "k"},
		{TokenColon, ":"},
		{TokenInteger, "10"},
		{TokenRBrace, "}"},
		{TokenMod, "mod"},
		{TokenRem, "rem"},
		{TokenMatches, "matches"},
		{TokenTypeKw, "type"},
		{TokenForAll, "forall"},
		{TokenNew, "new"},
		{TokenDebug, "debug"},
		{TokenPrint, "print"},
		{TokenCut, "cut"},
		{TokenIn, "in"},
		{TokenOr, "or"},
		{TokenPipe, "|"},
		{TokenBang, "!"},
		{TokenEOF, ""},
	}

	tokens := Tokenize(term.NewSource("", input))
	require.Len(t, tokens, len(expected))
	for i, want := range expected {
		assert.Equal(t, want.typ, tokens[i].Type, "token %d type", i)
		assert.Equal(t, want.literal, tokens[i].Literal, "token %d literal", i)
	}
	assert.Equal(t, int64(10), tokens[30].Int)
	assert.Equal(t, 1.5, tokens[12].Float)
}

func TestLexerOffsets(t *testing.T) {
	tokens := Tokenize(term.NewSource("", "é = \"ü\"\n  x"))
	require.Len(t, tokens, 5)

	// é is not an identifier character
	assert.Equal(t, TokenIllegal, tokens[0].Type)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 2, tokens[0].End)

	assert.Equal(t, TokenUnify, tokens[1].Type)
	assert.Equal(t, 3, tokens[1].Start)

	assert.Equal(t, TokenString, tokens[2].Type)
	assert.Equal(t, "ü", tokens[2].Literal)
	assert.Equal(t, 5, tokens[2].Start)
	assert.Equal(t, 9, tokens[2].End)

	assert.Equal(t, TokenSymbol, tokens[3].Type)
	assert.Equal(t, 12, tokens[3].Start)
	assert.Equal(t, TokenEOF, tokens[4].Type)
	assert.Equal(t, 13, tokens[4].Start)
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		i     int64
		f     float64
	}{
		{"0", TokenInteger, 0, 0},
		{"42", TokenInteger, 42, 0},
		{"3.25", TokenFloat, 0, 3.25},
		{"1e2", TokenFloat, 0, 100},
		{"2.5E-1", TokenFloat, 0, 0.25},
		{"99999999999999999999", TokenIllegal, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(term.NewSource("", tt.input)).NextToken()
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.i, tok.Int)
			assert.Equal(t, tt.f, tok.Float)
		})
	}

	// a dot not followed by a digit is field access
	tokens := Tokenize(term.NewSource("", "1.x"))
	assert.Equal(t, TokenInteger, tokens[0].Type)
	assert.Equal(t, TokenDot, tokens[1].Type)
}

func TestLexerStrings(t *testing.T) {
	tok := NewLexer(term.NewSource("", `"a\nb\t\\\0"`)).NextToken()
	assert.Equal(t, TokenString, tok.Type)
	assert.Equal(t, "a\nb\t\\\x00", tok.Literal)

	tok = NewLexer(term.NewSource("", `"open`)).NextToken()
	assert.Equal(t, TokenIllegal, tok.Type)
	assert.Equal(t, "unterminated string", tok.Literal)

	tok = NewLexer(term.NewSource("", `"bad \q"`)).NextToken()
	assert.Equal(t, TokenIllegal, tok.Type)
}

func TestLexerEOFRepeats(t *testing.T) {
	l := NewLexer(term.NewSource("", "  # only a comment"))
	assert.Equal(t, TokenEOF, l.NextToken().Type)
	assert.Equal(t, TokenEOF, l.NextToken().Type)
}
