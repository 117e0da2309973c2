package ast

// Attr is the per-kind payload of a node: a Lexeme for names and
// operators, a Literal for numbers.
type Attr interface {
	payload() PayloadKind
}

// Lexeme is identifier or operator text.
type Lexeme string

// Literal is a numeric constant.
type Literal int

func (Lexeme) payload() PayloadKind  { return PayloadLexeme }
func (Literal) payload() PayloadKind { return PayloadLiteral }

func payloadOf(a Attr) PayloadKind {
	if a == nil {
		return PayloadNone
	}
	return a.payload()
}
