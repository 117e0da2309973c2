package lexer

import (
	"cminus/internal/diag"
	"cminus/internal/source"
)

// Options configure a Lexer. A nil Reporter drops diagnostics; lexing
// continues either way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, lx.LineOf(sp), msg).Emit()
}
