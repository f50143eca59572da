package parser

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // symbol name, unescaped string, raw punctuation, or lexer diagnostic
	Int     int64
	Float   float64
	Start   int // byte offsets into the source unit
	End     int
}

// TokenSource supplies tokens to the parser. After the last token it must
// keep returning TokenEOF.
type TokenSource interface {
	NextToken() Token
}

// SliceSource adapts a pre-lexed token slice.
type SliceSource struct {
	Tokens []Token
	pos    int
}

// NextToken returns the next token, or EOF once the slice is exhausted
func (s *SliceSource) NextToken() Token {
	if s.pos >= len(s.Tokens) {
		end := 0
		if n := len(s.Tokens); n > 0 {
			end = s.Tokens[n-1].End
		}
		return Token{Type: TokenEOF, Start: end, End: end}
	}
	tok := s.Tokens[s.pos]
	s.pos++
	return tok
}

// TokenType represents the type of a token
type TokenType int

// Token types
const (
	TokenIllegal TokenType = iota
	TokenEOF

	// Literals
	TokenInteger
	TokenFloat
	TokenString
	TokenBoolean
	TokenSymbol

	// Delimiters
	TokenColon     // :
	TokenComma     // ,
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenDot       // .
	TokenBang      // !
	TokenPipe      // |
	TokenSemicolon // ;

	// Operators
	TokenMul    // *
	TokenDiv    // /
	TokenAdd    // +
	TokenSub    // -
	TokenEQ     // ==
	TokenNEQ    // !=
	TokenLTE    // <=
	TokenGTE    // >=
	TokenLT     // <
	TokenGT     // >
	TokenUnify  // =
	TokenAssign // :=
	TokenQuery  // ?=

	// Keywords
	TokenNew
	TokenMod
	TokenRem
	TokenCut
	TokenDebug
	TokenPrint
	TokenIn
	TokenForAll
	TokenIf
	TokenAnd
	TokenOr
	TokenNot
	TokenMatches
	TokenTypeKw
)

// Keywords maps keyword strings to token types
var Keywords = map[string]TokenType{
	"new":     TokenNew,
	"mod":     TokenMod,
	"rem":     TokenRem,
	"cut":     TokenCut,
	"debug":   TokenDebug,
	"print":   TokenPrint,
	"in":      TokenIn,
	"forall":  TokenForAll,
	"if":      TokenIf,
	"and":     TokenAnd,
	"or":      TokenOr,
	"not":     TokenNot,
	"matches": TokenMatches,
	"type":    TokenTypeKw,
}

var tokenNames = map[TokenType]string{
	TokenIllegal:   "illegal token",
	TokenEOF:       "end of input",
	TokenInteger:   "integer",
	TokenFloat:     "float",
	TokenString:    "string",
	TokenBoolean:   "boolean",
	TokenSymbol:    "symbol",
	TokenColon:     "':'",
	TokenComma:     "','",
	TokenLBracket:  "'['",
	TokenRBracket:  "']'",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenLBrace:    "'{'",
	TokenRBrace:    "'}'",
	TokenDot:       "'.'",
	TokenBang:      "'!'",
	TokenPipe:      "'|'",
	TokenSemicolon: "';'",
	TokenMul:       "'*'",
	TokenDiv:       "'/'",
	TokenAdd:       "'+'",
	TokenSub:       "'-'",
	TokenEQ:        "'=='",
	TokenNEQ:       "'!='",
	TokenLTE:       "'<='",
	TokenGTE:       "'>='",
	TokenLT:        "'<'",
	TokenGT:        "'>'",
	TokenUnify:     "'='",
	TokenAssign:    "':='",
	TokenQuery:     "'?='",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, tt := range Keywords {
		if tt == t {
			return "'" + kw + "'"
		}
	}
	return "unknown token"
}

// IsKeyword reports whether the token type is a reserved word
func (t TokenType) IsKeyword() bool {
	return t >= TokenNew && t <= TokenTypeKw
}

// keywordText returns the source spelling of a keyword token
func (t TokenType) keywordText() string {
	for kw, tt := range Keywords {
		if tt == t {
			return kw
		}
	}
	return ""
}
