package parser

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// parseExpression: var '=' expression | simple-expression.
// Assignment is right-associative.
func (p *Parser) parseExpression() (*ast.Node, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	left, ok := p.parseSimple()
	if !ok {
		return nil, false
	}
	if !p.at(token.Assign) {
		return left, true
	}
	eq := p.advance()
	if left.Kind != ast.KindVarRef && left.Kind != ast.KindArrayIndex {
		p.report(diag.SynInvalidTarget, p.line(eq), "left side of '=' must be a variable or array element")
	}
	right, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	return ast.New(ast.KindAssign, p.line(eq)).Append(left, right), true
}

// parseSimple: additive [ relop additive ].
func (p *Parser) parseSimple() (*ast.Node, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	if !p.peek().IsRelOp() {
		return left, true
	}
	op := p.advance()
	right, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	return ast.NewLexeme(ast.KindRelOp, op.Text, p.line(op)).Append(left, right), true
}

// parseAdditive: term { addop term }, left-associative.
func (p *Parser) parseAdditive() (*ast.Node, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	for p.peek().IsAddOp() {
		op := p.advance()
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = ast.NewLexeme(ast.KindAddOp, op.Text, p.line(op)).Append(left, right)
	}
	return left, true
}

// parseTerm: factor { mulop factor }, left-associative.
func (p *Parser) parseTerm() (*ast.Node, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return nil, false
	}
	for p.peek().IsMulOp() {
		op := p.advance()
		right, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		left = ast.NewLexeme(ast.KindMulOp, op.Text, p.line(op)).Append(left, right)
	}
	return left, true
}

// parseFactor: '(' expression ')' | NUM | ID | ID '[' expression ']' | ID '(' args ')'.
func (p *Parser) parseFactor() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil, false
		}
		return inner, true
	case token.Number:
		return p.parseNumber()
	case token.Ident:
		p.advance()
		line := p.line(tok)
		switch {
		case p.at(token.LParen):
			return p.parseCall(tok.Text, line)
		case p.at(token.LBracket):
			p.advance()
			idx, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index"); !ok {
				return nil, false
			}
			base := ast.NewLexeme(ast.KindVarRef, tok.Text, line)
			return ast.New(ast.KindArrayIndex, line).Append(base, idx), true
		default:
			return ast.NewLexeme(ast.KindVarRef, tok.Text, line), true
		}
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return nil, false
}

// parseCall: ID '(' [ expression { ',' expression } ] ')'.
func (p *Parser) parseCall(name string, line int) (*ast.Node, bool) {
	p.advance() // '('
	call := ast.NewLexeme(ast.KindCall, name, line)
	if p.at(token.RParen) {
		p.advance()
		return call, true
	}
	for {
		arg, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		call.Append(arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments"); !ok {
		return nil, false
	}
	return call, true
}
