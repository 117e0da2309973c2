package token

var keywords = map[string]Kind{
	"int":    KwInt,
	"void":   KwVoid,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
}

// LookupKeyword reports the keyword kind of ident. Keywords are lowercase
// and case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
