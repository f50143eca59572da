package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

// parsePattern parses a specializer or the right side of `matches`. A bare
// variable names a type: `Foo` means `Foo{}`.
func (p *Parser) parsePattern() (*term.Term, error) {
	t, err := p.parsePatternElement()
	if err != nil {
		return nil, err
	}
	if v, ok := t.Value().(term.Variable); ok {
		return t.CloneWithValue(term.NewInstance(term.Symbol(v))), nil
	}
	return t, nil
}

// parsePatternElement parses one operator-free pattern term. Variables
// inside patterns stay variables.
func (p *Parser) parsePatternElement() (*term.Term, error) {
	t, _, err := p.parseAtom(modePattern)
	return t, err
}

// parseInstance parses `Tag{field: pattern, ...}`
func (p *Parser) parseInstance() (*term.Term, error) {
	tag := p.curToken
	p.nextToken() // tag
	p.nextToken() // {

	fields, end, err := p.parseFieldList(TokenRBrace, true, p.parsePatternElement)
	if err != nil {
		return nil, err
	}
	return p.term(tag.Start, end.End, &term.InstanceLiteral{Tag: term.Symbol(tag.Literal), Fields: fields}), nil
}
