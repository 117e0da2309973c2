package token

import (
	"cminus/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwInt && t.Kind <= KwReturn
}

// IsType reports whether the token starts a type specifier.
func (t Token) IsType() bool {
	return t.Kind == KwInt || t.Kind == KwVoid
}

// IsRelOp reports whether the token is a comparison operator.
func (t Token) IsRelOp() bool {
	switch t.Kind {
	case Lt, LtEq, Gt, GtEq, EqEq, BangEq:
		return true
	default:
		return false
	}
}

// IsAddOp reports whether the token is + or -.
func (t Token) IsAddOp() bool { return t.Kind == Plus || t.Kind == Minus }

// IsMulOp reports whether the token is * or /.
func (t Token) IsMulOp() bool { return t.Kind == Star || t.Kind == Slash }
