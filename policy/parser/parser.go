// Package parser turns a policy token stream into terms, rules and lines.
//
// The expression grammar classifies every sub-expression as a value, a
// logical goal, or either, and rejects operands of the wrong class while
// parsing. The first error aborts the parse.
package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

// Classification is the parse-time kind of an expression
type Classification int

const (
	// ClassValue terms denote data
	ClassValue Classification = iota
	// ClassLogical terms succeed or fail
	ClassLogical
	// ClassEither terms may be used as both, e.g. variables
	ClassEither
)

func (c Classification) String() string {
	switch c {
	case ClassValue:
		return "value"
	case ClassLogical:
		return "logical"
	}
	return "either"
}

// mode selects between the full expression grammar and the operator-free
// pattern grammar. Both share the atom productions.
type mode int

const (
	modeTerm mode = iota
	modePattern
)

// Parser parses one source unit. It is not safe for concurrent use; use one
// Parser per source unit.
type Parser struct {
	ts        TokenSource
	src       *term.Source
	curToken  Token
	peekToken Token
}

// NewParser creates a new Parser
func NewParser(ts TokenSource, src *term.Source) *Parser {
	p := &Parser{ts: ts, src: src}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// ParseTerm parses one complete expression
func ParseTerm(ts TokenSource, src *term.Source) (*term.Term, error) {
	p := NewParser(ts, src)
	t, _, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(TokenEOF) {
		return nil, p.unexpected()
	}
	return t, nil
}

// ParseRules parses zero or more rule definitions
func ParseRules(ts TokenSource, src *term.Source) ([]*term.Rule, error) {
	p := NewParser(ts, src)
	rules := []*term.Rule{}
	for !p.curTokenIs(TokenEOF) {
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseLines parses a whole file: rules, rule types, queries and resource
// blocks in source order
func ParseLines(ts TokenSource, src *term.Source) ([]term.Line, error) {
	p := NewParser(ts, src)
	lines := []term.Line{}
	for !p.curTokenIs(TokenEOF) {
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (p *Parser) parseLine() (term.Line, error) {
	switch p.curToken.Type {
	case TokenQuery:
		return p.parseQuery()
	case TokenTypeKw:
		return p.parseRuleType()
	case TokenSymbol:
		switch p.peekToken.Type {
		case TokenLParen:
			return p.parseRule()
		case TokenLBrace, TokenSymbol:
			return p.parseResourceBlock()
		}
		p.nextToken()
		return nil, p.unexpected("'('", "'{'")
	}
	return nil, p.unexpected("rule", "query", "resource block")
}

func (p *Parser) parseQuery() (*term.Query, error) {
	p.nextToken() // ?=
	t, _, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &term.Query{Term: t}, nil
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.ts.NextToken()
}

// Helper methods for token checking
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expect consumes the current token if it has the expected type
func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.curTokenIs(t) {
		return Token{}, p.unexpected(t.String())
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

// unexpected reports the current token as a syntax error
func (p *Parser) unexpected(expected ...string) error {
	tok := p.curToken
	kind := KindUnrecognizedToken
	switch tok.Type {
	case TokenEOF:
		kind = KindUnrecognizedEOF
	case TokenIllegal:
		kind = KindInvalidToken
		expected = nil
	}
	return &Error{
		Kind:     kind,
		Span:     p.span(tok.Start, tok.End),
		Token:    tok,
		Expected: expected,
	}
}

func (p *Parser) span(start, end int) term.Span {
	return term.Span{Source: p.src, Start: start, End: end}
}

func (p *Parser) term(start, end int, v term.Value) *term.Term {
	return term.NewFromParser(p.src, start, end, v)
}

// tokenTerm builds a term spanning a single token
func (p *Parser) tokenTerm(tok Token, v term.Value) *term.Term {
	return p.term(tok.Start, tok.End, v)
}

// requireValue narrows a term to a value
func (p *Parser) requireValue(t *term.Term, c Classification) (*term.Term, error) {
	if c == ClassLogical {
		return nil, p.wrongType(t, ClassValue)
	}
	return t, nil
}

// requireLogical narrows a term to a logical goal
func (p *Parser) requireLogical(t *term.Term, c Classification) (*term.Term, error) {
	if c == ClassValue {
		return nil, p.wrongType(t, ClassLogical)
	}
	return t, nil
}

func (p *Parser) wrongType(t *term.Term, want Classification) error {
	return &Error{
		Kind: KindWrongValueType,
		Span: t.Span(),
		Want: want,
		Term: t,
	}
}
