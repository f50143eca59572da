package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/polar/policy/term"
)

var (
	// ErrSyntax matches unexpected, missing, or invalid tokens
	ErrSyntax = errors.New("syntax error")

	// ErrWrongValueType matches value/logical classification failures
	ErrWrongValueType = errors.New("wrong value type")

	// ErrDuplicateKey matches repeated keys in dictionaries, calls and patterns
	ErrDuplicateKey = errors.New("duplicate key")
)

// ErrorKind identifies what went wrong
type ErrorKind int

const (
	KindUnrecognizedToken ErrorKind = iota
	KindUnrecognizedEOF
	KindInvalidToken
	KindWrongValueType
	KindDuplicateKey
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnrecognizedToken:
		return "unrecognized_token"
	case KindUnrecognizedEOF:
		return "unrecognized_eof"
	case KindInvalidToken:
		return "invalid_token"
	case KindWrongValueType:
		return "wrong_value_type"
	case KindDuplicateKey:
		return "duplicate_key"
	}
	return "unknown"
}

// Error is the single fatal error of a parse. Fields beyond Kind and Span
// are filled in according to Kind.
type Error struct {
	Kind     ErrorKind
	Span     term.Span
	Token    Token          // offending token for syntax errors
	Expected []string       // what the grammar would have accepted
	Want     Classification // required classification
	Term     *term.Term     // offending term for classification errors
	Key      term.Symbol    // repeated key
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindUnrecognizedToken:
		msg = fmt.Sprintf("unexpected token %s", describeToken(e.Token))
	case KindUnrecognizedEOF:
		msg = "unexpected end of input"
	case KindInvalidToken:
		msg = "invalid token: " + e.Token.Literal
	case KindWrongValueType:
		msg = fmt.Sprintf("expected a %s term, got %s", e.Want, e.Term)
	case KindDuplicateKey:
		msg = fmt.Sprintf("duplicate key %q", string(e.Key))
	}
	if len(e.Expected) > 0 {
		msg += ", expected " + strings.Join(e.Expected, " or ")
	}

	line, col := e.Span.Source.Position(e.Span.Start)
	if e.Span.Source != nil && e.Span.Source.Filename != "" {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Span.Source.Filename, msg, line, col)
	}
	return fmt.Sprintf("%s (line %d, column %d)", msg, line, col)
}

// Unwrap maps the error onto its sentinel
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindWrongValueType:
		return ErrWrongValueType
	case KindDuplicateKey:
		return ErrDuplicateKey
	}
	return ErrSyntax
}

func describeToken(tok Token) string {
	switch tok.Type {
	case TokenString:
		return fmt.Sprintf("%q", tok.Literal)
	case TokenSymbol, TokenInteger, TokenFloat, TokenBoolean:
		return "'" + tok.Literal + "'"
	}
	return tok.Type.String()
}
