package lexer

import (
	"cminus/internal/diag"
	"cminus/internal/token"
)

// scanNumber reads a decimal literal. Letters glued to the digits make the
// whole run one bad literal rather than a number followed by a name.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() || !isIdentStartByte(lx.cursor.Peek()) {
		return lx.emit(token.Number, start)
	}
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexBadNumber, tok.Span, "malformed number '"+tok.Text+"'")
	return tok
}
