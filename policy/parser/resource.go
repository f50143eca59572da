package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

// parseResourceBlock parses `[keyword] Resource { productions }`
func (p *Parser) parseResourceBlock() (*term.ResourceBlock, error) {
	first := p.curToken
	p.nextToken()

	block := &term.ResourceBlock{Productions: []term.Production{}}
	block.Resource = p.tokenTerm(first, term.Variable(first.Literal))
	if p.curTokenIs(TokenSymbol) {
		block.Keyword = block.Resource
		block.Resource = p.tokenTerm(p.curToken, term.Variable(p.curToken.Literal))
		p.nextToken()
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	for !p.curTokenIs(TokenRBrace) {
		production, err := p.parseProduction()
		if err != nil {
			return nil, err
		}
		block.Productions = append(block.Productions, production)
	}
	block.Span = p.span(first.Start, p.curToken.End)
	p.nextToken()
	return block, nil
}

func (p *Parser) parseProduction() (term.Production, error) {
	switch p.curToken.Type {
	case TokenSymbol:
		return p.parseDeclaration()
	case TokenString:
		return p.parseShorthandRule()
	}
	return nil, p.unexpected("declaration", "shorthand rule", TokenRBrace.String())
}

// parseDeclaration parses `name = ["a", "b"];` or `name = {key: Type};`
func (p *Parser) parseDeclaration() (*term.Declaration, error) {
	name := p.tokenTerm(p.curToken, term.Variable(p.curToken.Literal))
	p.nextToken()
	if _, err := p.expect(TokenUnify); err != nil {
		return nil, err
	}

	var value *term.Term
	var err error
	switch p.curToken.Type {
	case TokenLBracket:
		value, err = p.parseStringList()
	case TokenLBrace:
		start := p.curToken.Start
		p.nextToken()
		var fields *term.Dictionary
		var end Token
		if fields, end, err = p.parseFieldList(TokenRBrace, false, p.parseVariable); err == nil {
			value = p.term(start, end.End, fields)
		}
	default:
		return nil, p.unexpected("list of strings", "dictionary of types")
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &term.Declaration{Name: name, Value: value}, nil
}

func (p *Parser) parseStringList() (*term.Term, error) {
	start := p.curToken.Start
	p.nextToken()

	items := term.List{}
	for !p.curTokenIs(TokenRBracket) {
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		items = append(items, s)
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

func (p *Parser) parseString() (*term.Term, error) {
	tok, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	return p.tokenTerm(tok, term.String(tok.Literal)), nil
}

func (p *Parser) parseVariable() (*term.Term, error) {
	tok, err := p.expect(TokenSymbol)
	if err != nil {
		return nil, err
	}
	return p.tokenTerm(tok, term.Variable(tok.Literal)), nil
}

// parseShorthandRule parses `"head" if "implier" [on "relation"];`
func (p *Parser) parseShorthandRule() (*term.ShorthandRule, error) {
	head, err := p.parseString()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenIf); err != nil {
		return nil, err
	}
	implier, err := p.parseString()
	if err != nil {
		return nil, err
	}

	rule := &term.ShorthandRule{Head: head, Implier: implier}
	if p.curTokenIs(TokenSymbol) {
		on := p.tokenTerm(p.curToken, term.Variable(p.curToken.Literal))
		p.nextToken()
		relation, err := p.parseString()
		if err != nil {
			return nil, err
		}
		rule.Relation = &term.Relation{On: on, Name: relation}
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return rule, nil
}
