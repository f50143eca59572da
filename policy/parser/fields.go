package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

// insertField adds key to d, failing on a key already present
func (p *Parser) insertField(d *term.Dictionary, key Token, value *term.Term) error {
	if !d.Insert(term.Symbol(key.Literal), value) {
		return &Error{
			Kind: KindDuplicateKey,
			Span: p.span(key.Start, key.End),
			Key:  term.Symbol(key.Literal),
		}
	}
	return nil
}

// separator consumes the comma between items. It reports done when the
// closer is next, which also tolerates a single trailing comma.
func (p *Parser) separator(closer TokenType) (done bool, err error) {
	switch {
	case p.curTokenIs(closer):
		return true, nil
	case p.curTokenIs(TokenComma):
		p.nextToken()
		return p.curTokenIs(closer), nil
	}
	return false, p.unexpected("','", closer.String())
}

// parseFieldList parses `key: value` items up to and including closer.
// With shorthand set, a bare key binds the variable of the same name.
func (p *Parser) parseFieldList(closer TokenType, shorthand bool,
	value func() (*term.Term, error)) (*term.Dictionary, Token, error) {
	fields := term.NewDictionary()
	for !p.curTokenIs(closer) {
		key, err := p.expect(TokenSymbol)
		if err != nil {
			return nil, Token{}, err
		}

		var v *term.Term
		switch {
		case p.curTokenIs(TokenColon):
			p.nextToken()
			if v, err = value(); err != nil {
				return nil, Token{}, err
			}
		case shorthand:
			v = p.tokenTerm(key, term.Variable(key.Literal))
		default:
			return nil, Token{}, p.unexpected("':'")
		}

		if err := p.insertField(fields, key, v); err != nil {
			return nil, Token{}, err
		}
		if done, err := p.separator(closer); err != nil {
			return nil, Token{}, err
		} else if done {
			break
		}
	}
	end := p.curToken
	p.nextToken()
	return fields, end, nil
}

// fieldValue returns the value production for dictionary fields
func (p *Parser) fieldValue(m mode) func() (*term.Term, error) {
	if m == modePattern {
		return p.parsePatternElement
	}
	return p.parseValue
}

// parseValueList parses comma separated values up to and including closer
func (p *Parser) parseValueList(closer TokenType) ([]*term.Term, Token, error) {
	items := []*term.Term{}
	for !p.curTokenIs(closer) {
		item, err := p.parseValue()
		if err != nil {
			return nil, Token{}, err
		}
		items = append(items, item)
		if done, err := p.separator(closer); err != nil {
			return nil, Token{}, err
		} else if done {
			break
		}
	}
	end := p.curToken
	p.nextToken()
	return items, end, nil
}

// parseCall parses `name(args..., key: value...)`. Keyword arguments must
// follow every positional argument.
func (p *Parser) parseCall() (*term.Term, error) {
	name := p.curToken
	p.nextToken()
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	call := &term.Call{Name: term.Symbol(name.Literal), Args: []*term.Term{}}
	for !p.curTokenIs(TokenRParen) {
		if p.curTokenIs(TokenSymbol) && p.peekTokenIs(TokenColon) {
			key := p.curToken
			p.nextToken()
			p.nextToken()
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if call.KwArgs == nil {
				call.KwArgs = term.NewDictionary()
			}
			if err := p.insertField(call.KwArgs, key, v); err != nil {
				return nil, err
			}
		} else {
			if call.KwArgs != nil {
				return nil, p.unexpected("keyword argument")
			}
			arg, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}

		if done, err := p.separator(TokenRParen); err != nil {
			return nil, err
		} else if done {
			break
		}
	}
	end := p.curToken
	p.nextToken()
	return p.term(name.Start, end.End, call), nil
}

// parseList parses `[a, b, *rest]`
func (p *Parser) parseList(m mode) (*term.Term, error) {
	start := p.curToken.Start
	p.nextToken()

	element := p.fieldValue(m)
	items := term.List{}
	for !p.curTokenIs(TokenRBracket) {
		if p.curTokenIs(TokenMul) {
			star := p.curToken
			p.nextToken()
			name, err := p.expect(TokenSymbol)
			if err != nil {
				return nil, err
			}
			items = append(items, p.term(star.Start, name.End, term.RestVariable(name.Literal)))
			if !p.curTokenIs(TokenRBracket) {
				return nil, p.unexpected(TokenRBracket.String())
			}
			break
		}

		item, err := element()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if done, err := p.separator(TokenRBracket); err != nil {
			return nil, err
		} else if done {
			break
		}
	}
	end := p.curToken
	p.nextToken()
	return p.term(start, end.End, items), nil
}

// parseDictionary parses `{key: value, ...}`. In pattern mode the result
// is a dictionary pattern.
func (p *Parser) parseDictionary(m mode) (*term.Term, error) {
	start := p.curToken.Start
	p.nextToken()

	fields, end, err := p.parseFieldList(TokenRBrace, true, p.fieldValue(m))
	if err != nil {
		return nil, err
	}
	if m == modePattern {
		return p.term(start, end.End, &term.DictionaryPattern{Fields: fields}), nil
	}
	return p.term(start, end.End, fields), nil
}
