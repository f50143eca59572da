package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

type ruleHead struct {
	name   term.Symbol
	params []term.Parameter
	start  int
	end    int
}

// parseRuleHead parses `name(param, param: Pattern, ...)`
func (p *Parser) parseRuleHead() (*ruleHead, error) {
	name, err := p.expect(TokenSymbol)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	head := &ruleHead{name: term.Symbol(name.Literal), params: []term.Parameter{}, start: name.Start}
	for !p.curTokenIs(TokenRParen) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		head.params = append(head.params, param)
		if done, err := p.separator(TokenRParen); err != nil {
			return nil, err
		} else if done {
			break
		}
	}
	head.end = p.curToken.End
	p.nextToken()
	return head, nil
}

// parseParameter parses a value term with an optional specializer
func (p *Parser) parseParameter() (term.Parameter, error) {
	t, c, err := p.parseDot()
	if err != nil {
		return term.Parameter{}, err
	}
	if t, err = p.requireValue(t, c); err != nil {
		return term.Parameter{}, err
	}
	param := term.Parameter{Parameter: t}
	if !p.curTokenIs(TokenColon) {
		return param, nil
	}
	p.nextToken()
	if param.Specializer, err = p.parsePattern(); err != nil {
		return term.Parameter{}, err
	}
	return param, nil
}

// emptyBody is the vacuously true body of a fact, a zero-width span right
// after the head
func (p *Parser) emptyBody(head *ruleHead) *term.Term {
	return p.term(head.end, head.end, term.NewOperation(term.And))
}

// parseRule parses `head;` or `head if body;`
func (p *Parser) parseRule() (*term.Rule, error) {
	head, err := p.parseRuleHead()
	if err != nil {
		return nil, err
	}

	var body *term.Term
	switch p.curToken.Type {
	case TokenSemicolon:
		body = p.emptyBody(head)
	case TokenIf:
		p.nextToken()
		if body, _, err = p.parseOr(); err != nil {
			return nil, err
		}
		if _, ok := term.IsOperation(body.Value(), term.And); !ok {
			body = body.CloneWithValue(term.NewOperation(term.And, body))
		}
	default:
		return nil, p.unexpected("';'", "'if'")
	}

	end, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &term.Rule{
		Name:   head.name,
		Params: head.params,
		Body:   body,
		Span:   p.span(head.start, end.End),
	}, nil
}

// parseRuleType parses `type head;`. A rule type never has a body.
func (p *Parser) parseRuleType() (*term.RuleType, error) {
	start := p.curToken.Start
	p.nextToken() // type

	head, err := p.parseRuleHead()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &term.RuleType{Rule: &term.Rule{
		Name:   head.name,
		Params: head.params,
		Body:   p.emptyBody(head),
		Span:   p.span(start, end.End),
	}}, nil
}
