package parser

import (
	"github.com/dangerclosesec/polar/policy/term"
)

// Precedence levels, loosest first:
//
//	or
//	and
//	not
//	= :=
//	== != <= >= < >
//	+ -
//	* / mod rem
//	in matches
//	.
//	atoms

var comparisonOps = map[TokenType]term.Operator{
	TokenEQ:  term.Eq,
	TokenNEQ: term.Neq,
	TokenLTE: term.Leq,
	TokenGTE: term.Geq,
	TokenLT:  term.Lt,
	TokenGT:  term.Gt,
}

var additiveOps = map[TokenType]term.Operator{
	TokenAdd: term.Add,
	TokenSub: term.Sub,
}

var multiplicativeOps = map[TokenType]term.Operator{
	TokenMul: term.Mul,
	TokenDiv: term.Div,
	TokenMod: term.Mod,
	TokenRem: term.Rem,
}

// binary builds an operation spanning both operands
func (p *Parser) binary(op term.Operator, left, right *term.Term) *term.Term {
	return p.term(left.Start(), right.End(), term.NewOperation(op, left, right))
}

// chain joins left and right under op, splicing right when it is already
// an op chain so conjunctions and disjunctions stay flat
func (p *Parser) chain(op term.Operator, left, right *term.Term) *term.Term {
	args := []*term.Term{left}
	if inner, ok := term.IsOperation(right.Value(), op); ok {
		args = append(args, inner.Args...)
	} else {
		args = append(args, right)
	}
	return p.term(left.Start(), right.End(), term.NewOperation(op, args...))
}

func (p *Parser) parseOr() (*term.Term, Classification, error) {
	return p.parseConnective(TokenOr, term.Or, p.parseAnd)
}

func (p *Parser) parseAnd() (*term.Term, Classification, error) {
	return p.parseConnective(TokenAnd, term.And, p.parseNot)
}

// parseConnective parses `operand (tok self)?`; the right side recurses so
// the chain is spliced from the right
func (p *Parser) parseConnective(tok TokenType, op term.Operator,
	operand func() (*term.Term, Classification, error)) (*term.Term, Classification, error) {
	left, lc, err := operand()
	if err != nil {
		return nil, 0, err
	}
	if !p.curTokenIs(tok) {
		return left, lc, nil
	}
	p.nextToken()

	right, rc, err := p.parseConnective(tok, op, operand)
	if err != nil {
		return nil, 0, err
	}
	if left, err = p.requireLogical(left, lc); err != nil {
		return nil, 0, err
	}
	if right, err = p.requireLogical(right, rc); err != nil {
		return nil, 0, err
	}
	return p.chain(op, left, right), ClassLogical, nil
}

func (p *Parser) parseNot() (*term.Term, Classification, error) {
	if !p.curTokenIs(TokenNot) {
		return p.parseUnify()
	}
	start := p.curToken.Start
	p.nextToken()

	operand, c, err := p.parseNot()
	if err != nil {
		return nil, 0, err
	}
	if operand, err = p.requireLogical(operand, c); err != nil {
		return nil, 0, err
	}
	return p.term(start, operand.End(), term.NewOperation(term.Not, operand)), ClassLogical, nil
}

func (p *Parser) parseUnify() (*term.Term, Classification, error) {
	left, lc, err := p.parseComparison()
	if err != nil {
		return nil, 0, err
	}

	var op term.Operator
	switch p.curToken.Type {
	case TokenUnify:
		op = term.Unify
	case TokenAssign:
		if _, ok := left.Value().(term.Variable); !ok {
			return nil, 0, p.unexpected()
		}
		op = term.Assign
	default:
		return left, lc, nil
	}
	p.nextToken()

	right, rc, err := p.parseComparison()
	if err != nil {
		return nil, 0, err
	}
	return p.valueOperands(op, left, lc, right, rc, ClassLogical)
}

func (p *Parser) parseComparison() (*term.Term, Classification, error) {
	left, lc, err := p.parseAdditive()
	if err != nil {
		return nil, 0, err
	}
	op, ok := comparisonOps[p.curToken.Type]
	if !ok {
		return left, lc, nil
	}
	p.nextToken()

	right, rc, err := p.parseAdditive()
	if err != nil {
		return nil, 0, err
	}
	return p.valueOperands(op, left, lc, right, rc, ClassLogical)
}

func (p *Parser) parseAdditive() (*term.Term, Classification, error) {
	return p.parseArithmetic(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (*term.Term, Classification, error) {
	return p.parseArithmetic(multiplicativeOps, p.parseMembership)
}

// parseArithmetic parses a left-associative run of value operators
func (p *Parser) parseArithmetic(ops map[TokenType]term.Operator,
	operand func() (*term.Term, Classification, error)) (*term.Term, Classification, error) {
	left, lc, err := operand()
	if err != nil {
		return nil, 0, err
	}
	for {
		op, ok := ops[p.curToken.Type]
		if !ok {
			return left, lc, nil
		}
		p.nextToken()

		right, rc, err := operand()
		if err != nil {
			return nil, 0, err
		}
		if left, lc, err = p.valueOperands(op, left, lc, right, rc, ClassValue); err != nil {
			return nil, 0, err
		}
	}
}

func (p *Parser) parseMembership() (*term.Term, Classification, error) {
	left, lc, err := p.parseDot()
	if err != nil {
		return nil, 0, err
	}
	for {
		switch p.curToken.Type {
		case TokenIn:
			p.nextToken()
			right, rc, err := p.parseDot()
			if err != nil {
				return nil, 0, err
			}
			if left, lc, err = p.valueOperands(term.In, left, lc, right, rc, ClassLogical); err != nil {
				return nil, 0, err
			}
		case TokenMatches:
			p.nextToken()
			pattern, err := p.parsePattern()
			if err != nil {
				return nil, 0, err
			}
			if left, err = p.requireValue(left, lc); err != nil {
				return nil, 0, err
			}
			left, lc = p.binary(term.Isa, left, pattern), ClassLogical
		default:
			return left, lc, nil
		}
	}
}

// valueOperands requires both operands to be values and builds op
func (p *Parser) valueOperands(op term.Operator, left *term.Term, lc Classification,
	right *term.Term, rc Classification, result Classification) (*term.Term, Classification, error) {
	left, err := p.requireValue(left, lc)
	if err != nil {
		return nil, 0, err
	}
	if right, err = p.requireValue(right, rc); err != nil {
		return nil, 0, err
	}
	return p.binary(op, left, right), result, nil
}

func (p *Parser) parseDot() (*term.Term, Classification, error) {
	left, c, err := p.parseAtom(modeTerm)
	if err != nil {
		return nil, 0, err
	}
	for p.curTokenIs(TokenDot) {
		p.nextToken()
		key, err := p.parseDotKey()
		if err != nil {
			return nil, 0, err
		}
		if left, err = p.requireValue(left, c); err != nil {
			return nil, 0, err
		}
		left, c = p.binary(term.Dot, left, key), ClassEither
	}
	return left, c, nil
}

// parseDotKey parses the right side of `.`: a field name, a method call,
// a reserved word used as a field name, `(variable)` or `("string")`
func (p *Parser) parseDotKey() (*term.Term, error) {
	tok := p.curToken
	switch {
	case tok.Type == TokenSymbol && p.peekTokenIs(TokenLParen):
		return p.parseCall()
	case tok.Type == TokenSymbol, tok.Type == TokenBoolean:
		p.nextToken()
		return p.tokenTerm(tok, term.String(tok.Literal)), nil
	case tok.Type.IsKeyword():
		p.nextToken()
		return p.tokenTerm(tok, term.String(tok.Type.keywordText())), nil
	case tok.Type == TokenLParen:
		p.nextToken()
		inner := p.curToken
		var key *term.Term
		switch inner.Type {
		case TokenSymbol:
			key = p.tokenTerm(inner, term.Variable(inner.Literal))
		case TokenString:
			key = p.tokenTerm(inner, term.String(inner.Literal))
		default:
			return nil, p.unexpected("symbol", "string")
		}
		p.nextToken()
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return key, nil
	}
	return nil, p.unexpected("field name", "method call")
}

// parseAtom parses the tightest-binding productions. Pattern mode accepts
// only literals, variables, lists, dictionaries and instance literals.
func (p *Parser) parseAtom(m mode) (*term.Term, Classification, error) {
	tok := p.curToken
	switch tok.Type {
	case TokenInteger, TokenFloat:
		p.nextToken()
		return p.tokenTerm(tok, numberOf(tok, false)), ClassValue, nil
	case TokenAdd, TokenSub:
		num := p.peekToken
		if num.Type == TokenIllegal {
			p.nextToken()
			return nil, 0, p.unexpected()
		}
		if num.Type != TokenInteger && num.Type != TokenFloat {
			return nil, 0, p.unexpected()
		}
		p.nextToken()
		p.nextToken()
		return p.term(tok.Start, num.End, numberOf(num, tok.Type == TokenSub)), ClassValue, nil
	case TokenString:
		p.nextToken()
		return p.tokenTerm(tok, term.String(tok.Literal)), ClassValue, nil
	case TokenBoolean:
		p.nextToken()
		return p.tokenTerm(tok, term.Boolean(tok.Literal == "true")), ClassEither, nil
	case TokenSymbol:
		if m == modePattern && p.peekTokenIs(TokenLBrace) {
			t, err := p.parseInstance()
			return t, ClassValue, err
		}
		if m == modeTerm && p.peekTokenIs(TokenLParen) {
			t, err := p.parseCall()
			return t, ClassLogical, err
		}
		p.nextToken()
		return p.tokenTerm(tok, term.Variable(tok.Literal)), ClassEither, nil
	case TokenLBracket:
		t, err := p.parseList(m)
		return t, ClassValue, err
	case TokenLBrace:
		t, err := p.parseDictionary(m)
		return t, ClassValue, err
	}

	if m == modeTerm {
		switch tok.Type {
		case TokenLParen:
			p.nextToken()
			inner, c, err := p.parseOr()
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return nil, 0, err
			}
			return inner, c, nil
		case TokenNew:
			t, err := p.parseNew()
			return t, ClassValue, err
		case TokenDebug, TokenPrint, TokenCut, TokenForAll:
			t, err := p.parseBuiltin()
			return t, ClassLogical, err
		}
	}
	return nil, 0, p.unexpected()
}

func numberOf(tok Token, negate bool) term.Number {
	if tok.Type == TokenFloat {
		f := tok.Float
		if negate {
			f = -f
		}
		return term.Number{Float: f, IsFloat: true}
	}
	i := tok.Int
	if negate {
		i = -i
	}
	return term.Number{Integer: i}
}

// parseNew parses `new Call(...)` into a single-argument New operation
func (p *Parser) parseNew() (*term.Term, error) {
	start := p.curToken.Start
	p.nextToken()
	if !p.curTokenIs(TokenSymbol) || !p.peekTokenIs(TokenLParen) {
		return nil, p.unexpected("constructor call")
	}
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	return p.term(start, call.End(), term.NewOperation(term.New, call)), nil
}

// parseBuiltin parses debug(), print(...), cut and forall(a, b)
func (p *Parser) parseBuiltin() (*term.Term, error) {
	tok := p.curToken
	p.nextToken()

	switch tok.Type {
	case TokenCut:
		return p.tokenTerm(tok, term.NewOperation(term.Cut)), nil
	case TokenDebug:
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		end, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		return p.term(tok.Start, end.End, term.NewOperation(term.Debug)), nil
	case TokenPrint:
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		args, end, err := p.parseValueList(TokenRParen)
		if err != nil {
			return nil, err
		}
		return p.term(tok.Start, end.End, term.NewOperation(term.Print, args...)), nil
	}

	// forall(condition, action)
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	first, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	second, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	return p.term(tok.Start, end.End, term.NewOperation(term.ForAll, first, second)), nil
}

// parseValue parses a full expression that must be a value
func (p *Parser) parseValue() (*term.Term, error) {
	t, c, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return p.requireValue(t, c)
}

// parseLogical parses a full expression that must be a goal
func (p *Parser) parseLogical() (*term.Term, error) {
	t, c, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return p.requireLogical(t, c)
}
