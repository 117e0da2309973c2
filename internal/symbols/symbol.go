package symbols

import (
	"cminus/internal/ast"
)

// SymbolKind classifies what a declared name denotes.
type SymbolKind uint8

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolArray
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "var"
	case SymbolFunction:
		return "fun"
	case SymbolArray:
		return "array"
	default:
		return "invalid"
	}
}

// Entry is one declared name in one scope.
type Entry struct {
	Name     string
	Scope    ast.ScopeID
	Kind     SymbolKind
	Type     ast.ExpType // declared type, or return type for functions
	Location int         // allocation slot, unique per table
	DeclLine int
	Params   []ast.ExpType // functions only

	next *Entry // bucket chain
}

// Arity is the declared parameter count of a function entry.
func (e *Entry) Arity() int {
	return len(e.Params)
}

// IsFunction reports whether the entry names a function.
func (e *Entry) IsFunction() bool {
	return e != nil && e.Kind == SymbolFunction
}
