package parser

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// parseBlock: '{' { var-declaration } { statement } '}'.
func (p *Parser) parseBlock() (*ast.Node, bool) {
	open := p.advance() // '{'
	line := p.line(open)
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	blk := ast.New(ast.KindBlock, line)
	seenStmt := false
	for !p.atOr(token.RBrace, token.EOF) {
		if p.peek().IsType() {
			if seenStmt {
				p.err(diag.SynUnexpectedToken, "declarations must come before statements")
			}
			if decl, ok := p.parseLocalDecl(); ok {
				blk.Append(decl)
				continue
			}
			p.resyncStmt()
			continue
		}
		seenStmt = true
		stmt, ok := p.parseStatement()
		if !ok {
			p.resyncStmt()
			continue
		}
		blk.Append(stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace,
		fmt.Sprintf("expected '}' to close block opened at line %d", line)); !ok {
		return nil, false
	}
	return blk, true
}

func (p *Parser) parseLocalDecl() (*ast.Node, bool) {
	typ, _ := p.parseType()
	id, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "functions cannot be declared inside a block")
		return nil, false
	}
	return p.parseVarRest(typ, id)
}

// resyncStmt skips past the next ';' or up to a '}'.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.LBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseStatement returns a nil node for the empty statement.
func (p *Parser) parseStatement() (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.Semicolon:
		p.advance()
		return nil, true
	}
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		return nil, false
	}
	return expr, true
}

// parseBranch parses the statement of an if or while. An empty statement
// becomes an empty block so the branch keeps its position among the
// children.
func (p *Parser) parseBranch() (*ast.Node, bool) {
	line := p.line(p.peek())
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	stmt, ok := p.parseStatement()
	if ok && stmt == nil {
		stmt = ast.New(ast.KindBlock, line)
	}
	return stmt, ok
}

func (p *Parser) parseCondition(keyword string) (*ast.Node, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+keyword+"'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return nil, false
	}
	return cond, true
}

// parseIf: 'if' '(' expression ')' statement [ 'else' statement ].
func (p *Parser) parseIf() (*ast.Node, bool) {
	kw := p.advance()
	n := ast.New(ast.KindIf, p.line(kw))
	cond, ok := p.parseCondition("if")
	if !ok {
		return nil, false
	}
	then, ok := p.parseBranch()
	if !ok {
		return nil, false
	}
	n.Append(cond, then)
	if p.at(token.KwElse) {
		p.advance()
		els, ok := p.parseBranch()
		if !ok {
			return nil, false
		}
		n.Append(els)
	}
	return n, true
}

// parseWhile: 'while' '(' expression ')' statement.
func (p *Parser) parseWhile() (*ast.Node, bool) {
	kw := p.advance()
	n := ast.New(ast.KindWhile, p.line(kw))
	cond, ok := p.parseCondition("while")
	if !ok {
		return nil, false
	}
	body, ok := p.parseBranch()
	if !ok {
		return nil, false
	}
	return n.Append(cond, body), true
}

// parseReturn: 'return' [ expression ] ';'.
func (p *Parser) parseReturn() (*ast.Node, bool) {
	kw := p.advance()
	n := ast.New(ast.KindReturn, p.line(kw))
	if !p.at(token.Semicolon) {
		expr, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		n.Append(expr)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return"); !ok {
		return nil, false
	}
	return n, true
}
