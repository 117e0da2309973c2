package parser

import (
	"strconv"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// parseProgram: declaration { declaration } EOF.
func (p *Parser) parseProgram() *ast.Node {
	root := ast.New(ast.KindProgram, p.line(p.peek()))
	for !p.at(token.EOF) {
		if decl, ok := p.parseDeclaration(); ok {
			root.Append(decl)
			continue
		}
		if p.opts.Enough() {
			break
		}
		p.resyncTop()
	}
	return root
}

// resyncTop skips to the next type keyword that can start a declaration.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwInt, token.KwVoid)
	if p.atOr(token.Semicolon, token.RBrace) {
		p.advance()
	}
}

// parseDeclaration: type ID ( ';' | '[' NUM ']' ';' | '(' params ')' block ).
func (p *Parser) parseDeclaration() (*ast.Node, bool) {
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	id, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if p.at(token.LParen) {
		return p.parseFunRest(typ, id)
	}
	return p.parseVarRest(typ, id)
}

func (p *Parser) parseType() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwInt:
		p.advance()
		return ast.New(ast.KindTypeInt, p.line(tok)), true
	case token.KwVoid:
		p.advance()
		return ast.New(ast.KindTypeVoid, p.line(tok)), true
	}
	p.err(diag.SynExpectType, "expected 'int' or 'void', got "+describe(tok))
	return nil, false
}

func (p *Parser) parseIdent() (*ast.Node, bool) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(tok))
		return nil, false
	}
	p.advance()
	return ast.NewLexeme(ast.KindId, tok.Text, p.line(tok)), true
}

func (p *Parser) parseVarRest(typ, id *ast.Node) (*ast.Node, bool) {
	decl := ast.New(ast.KindVarDecl, typ.Line).Append(typ, id)
	if p.at(token.LBracket) {
		p.advance()
		size, ok := p.parseNumber()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after array size"); !ok {
			return nil, false
		}
		decl.Append(size)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration of '"+id.Name()+"'"); !ok {
		return nil, false
	}
	return decl, true
}

func (p *Parser) parseNumber() (*ast.Node, bool) {
	tok := p.peek()
	if tok.Kind != token.Number {
		p.err(diag.SynExpectExpression, "expected number, got "+describe(tok))
		return nil, false
	}
	p.advance()
	v, err := strconv.ParseInt(tok.Text, 10, 32)
	if err != nil {
		p.report(diag.LexBadNumber, p.line(tok), "integer literal "+tok.Text+" out of range")
		v = 0
	}
	return ast.NewNum(int(v), p.line(tok)), true
}

// parseFunRest: '(' params ')' block, where params is 'void', empty or a
// comma-separated list of param.
func (p *Parser) parseFunRest(typ, id *ast.Node) (*ast.Node, bool) {
	fn := ast.New(ast.KindFunDecl, typ.Line).Append(typ, id)
	p.advance() // '('
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	fn.Append(params...)
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return nil, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected function body, got "+describe(p.peek()))
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return fn.Append(body), true
}

func (p *Parser) parseParams() ([]*ast.Node, bool) {
	if p.at(token.RParen) {
		return nil, true
	}
	// "void" alone means no parameters. Other void parameters, named or
	// not, are left for semantic analysis.
	first, ok := p.parseParam()
	if !ok {
		return nil, false
	}
	return p.parseMoreParams([]*ast.Node{first})
}

func (p *Parser) parseMoreParams(params []*ast.Node) ([]*ast.Node, bool) {
	for p.at(token.Comma) {
		p.advance()
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	return params, true
}

func (p *Parser) parseParam() (*ast.Node, bool) {
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if typ.Kind == ast.KindTypeVoid && p.atOr(token.Comma, token.RParen) {
		return ast.New(ast.KindParam, typ.Line).Append(typ), true
	}
	return p.parseParamRest(typ)
}

// parseParamRest: ID [ '[' ']' ]. An array parameter carries a 0 marker.
func (p *Parser) parseParamRest(typ *ast.Node) (*ast.Node, bool) {
	id, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	param := ast.New(ast.KindParam, typ.Line).Append(typ, id)
	if p.at(token.LBracket) {
		p.advance()
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array parameter"); !ok {
			return nil, false
		}
		param.Append(ast.NewNum(0, id.Line))
	}
	return param, true
}
