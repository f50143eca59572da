package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dangerclosesec/polar/policy/term"
)

// Lexer tokenizes policy source text
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
}

// NewLexer creates a new Lexer over a source unit
func NewLexer(src *term.Source) *Lexer {
	l := &Lexer{input: src.Text}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += size
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0 // EOF
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	// Skip whitespace and comments before processing the next token
	for !l.atEOF() && (unicode.IsSpace(l.ch) || l.ch == '#') {
		if l.ch == '#' {
			l.skipComment()
		} else {
			l.readChar()
		}
	}

	start := l.position
	if l.atEOF() {
		return Token{Type: TokenEOF, Start: start, End: start}
	}

	switch l.ch {
	case '{':
		return l.single(TokenLBrace)
	case '}':
		return l.single(TokenRBrace)
	case '[':
		return l.single(TokenLBracket)
	case ']':
		return l.single(TokenRBracket)
	case '(':
		return l.single(TokenLParen)
	case ')':
		return l.single(TokenRParen)
	case ',':
		return l.single(TokenComma)
	case ';':
		return l.single(TokenSemicolon)
	case '.':
		return l.single(TokenDot)
	case '|':
		return l.single(TokenPipe)
	case '*':
		return l.single(TokenMul)
	case '/':
		return l.single(TokenDiv)
	case '+':
		return l.single(TokenAdd)
	case '-':
		return l.single(TokenSub)
	case ':':
		return l.pair('=', TokenAssign, TokenColon)
	case '=':
		return l.pair('=', TokenEQ, TokenUnify)
	case '!':
		return l.pair('=', TokenNEQ, TokenBang)
	case '<':
		return l.pair('=', TokenLTE, TokenLT)
	case '>':
		return l.pair('=', TokenGTE, TokenGT)
	case '?':
		if l.peekChar() == '=' {
			return l.pair('=', TokenQuery, TokenIllegal)
		}
		l.readChar()
		return Token{Type: TokenIllegal, Literal: "unexpected character '?'", Start: start, End: l.position}
	case '"':
		return l.readString()
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		tok := Token{Type: lookupIdent(ident), Literal: ident, Start: start, End: l.position}
		return tok
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}

	ch := l.ch
	l.readChar()
	return Token{
		Type:    TokenIllegal,
		Literal: fmt.Sprintf("unexpected character %q", ch),
		Start:   start,
		End:     l.position,
	}
}

func (l *Lexer) single(t TokenType) Token {
	start := l.position
	l.readChar()
	return Token{Type: t, Literal: l.input[start:l.position], Start: start, End: l.position}
}

// pair lexes a one or two character operator depending on the next char
func (l *Lexer) pair(next rune, two, one TokenType) Token {
	start := l.position
	t := one
	if l.peekChar() == next {
		l.readChar()
		t = two
	}
	l.readChar()
	return Token{Type: t, Literal: l.input[start:l.position], Start: start, End: l.position}
}

// readIdentifier reads an identifier, including `::` path separators
func (l *Lexer) readIdentifier() string {
	position := l.position
	for {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == ':' && l.peekChar() == ':' && l.readPosition+1 < len(l.input) &&
			isLetter(rune(l.input[l.readPosition+1])) {
			l.readChar()
			l.readChar()
			continue
		}
		return l.input[position:l.position]
	}
}

func (l *Lexer) readNumber() Token {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		rest := l.input[l.readPosition:]
		if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
			rest = rest[1:]
		}
		if rest != "" && isDigit(rune(rest[0])) {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	text := l.input[start:l.position]
	tok := Token{Literal: text, Start: start, End: l.position}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{Type: TokenIllegal, Literal: "invalid float " + text, Start: start, End: l.position}
		}
		tok.Type = TokenFloat
		tok.Float = f
		return tok
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{Type: TokenIllegal, Literal: "integer out of range " + text, Start: start, End: l.position}
	}
	tok.Type = TokenInteger
	tok.Int = i
	return tok
}

func (l *Lexer) readString() Token {
	start := l.position
	l.readChar() // opening quote

	var sb strings.Builder
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return Token{Type: TokenString, Literal: sb.String(), Start: start, End: l.position}
		case '\\':
			l.readChar()
			switch l.ch {
			case '"', '\\':
				sb.WriteRune(l.ch)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			default:
				if l.atEOF() {
					return Token{Type: TokenIllegal, Literal: "unterminated string", Start: start, End: l.position}
				}
				bad := l.ch
				l.readChar()
				return Token{Type: TokenIllegal, Literal: fmt.Sprintf("invalid escape \\%c", bad), Start: start, End: l.position}
			}
			l.readChar()
		default:
			if l.atEOF() {
				return Token{Type: TokenIllegal, Literal: "unterminated string", Start: start, End: l.position}
			}
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// skipComment skips over a comment line
func (l *Lexer) skipComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// isLetter returns true if the character can start an identifier
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// lookupIdent checks if the identifier is a keyword or boolean
func lookupIdent(ident string) TokenType {
	if ident == "true" || ident == "false" {
		return TokenBoolean
	}
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return TokenSymbol
}

// Tokenize lexes the whole source unit, including the trailing EOF.
func Tokenize(src *term.Source) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
