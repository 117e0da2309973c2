package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents a decimal integer literal.
	Number

	KwInt    // int
	KwVoid   // void
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwReturn // return

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	EqEq      // ==
	BangEq    // !=
	Assign    // =
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Number:    "Number",
	KwInt:     "int",
	KwVoid:    "void",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwReturn:  "return",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	EqEq:      "==",
	BangEq:    "!=",
	Assign:    "=",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LBrace:    "{",
	RBrace:    "}",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
