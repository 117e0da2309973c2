package parser

import (
	"slices"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/lexer"
	"cminus/internal/token"
)

const DefaultMaxNesting = 256

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	// MaxNesting bounds statement and expression nesting; 0 selects
	// DefaultMaxNesting.
	MaxNesting int
	Reporter   diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root   *ast.Node
	Errors uint
}

// Parser is the state of one file's parse.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastLine int // line of the last consumed token
	depth    int
}

// ParseFile parses a whole C-minus program. The tree is always returned;
// Result.Errors counts the syntax errors reported along the way (lexical
// errors go to the lexer's own reporter).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = DefaultMaxNesting
	}
	p := Parser{lx: lx, opts: opts, lastLine: 1}
	root := p.parseProgram()
	return Result{Root: root, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token { return p.lx.Peek() }

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) line(tok token.Token) int {
	if tok.Kind == token.EOF {
		return p.lastLine
	}
	return p.lx.LineOf(tok.Span)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastLine = p.lx.LineOf(tok.Span)
	}
	return tok
}

// expect consumes a token of kind k or reports code and leaves the stream
// untouched.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.line(p.peek()), msg)
}

func (p *Parser) report(code diag.Code, line int, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || (p.opts.MaxErrors > 0 && p.opts.CurrentErrors > p.opts.MaxErrors) {
		return
	}
	diag.ReportError(p.opts.Reporter, code, line, msg).Emit()
}

// describe renders the current token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.Number:
		return "number " + tok.Text
	default:
		return "'" + tok.Text + "'"
	}
}

// resyncUntil skips tokens until one of kinds or EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

// enter guards recursion depth; callers must call leave when it succeeds.
func (p *Parser) enter() bool {
	if p.depth >= p.opts.MaxNesting {
		p.err(diag.SynUnexpectedToken, "nesting too deep")
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() { p.depth-- }
