package sema

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
)

const (
	DefaultEntry            = "main"
	DefaultMaxScopeDepth    = 512
	DefaultMaxFunctionDepth = 64
	DefaultMaxTreeDepth     = 512
)

// Builtin describes a function the global scope provides before any
// declaration is processed.
type Builtin struct {
	Name    string
	Returns ast.ExpType
	Params  []ast.ExpType
}

// DefaultBuiltins returns the runtime I/O functions every program may call:
// int input(void) and void output(int).
func DefaultBuiltins() []Builtin {
	return []Builtin{
		{Name: "input", Returns: ast.Integer},
		{Name: "output", Returns: ast.Void, Params: []ast.ExpType{ast.Integer}},
	}
}

// Options configure one analysis. Zero values select the defaults; a
// non-nil empty Builtins disables the built-in functions.
type Options struct {
	Reporter diag.Reporter
	Entry    string
	Builtins []Builtin

	MaxScopeDepth    int
	MaxFunctionDepth int
	MaxTreeDepth     int
}

func (o Options) withDefaults() Options {
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	if o.Entry == "" {
		o.Entry = DefaultEntry
	}
	if o.Builtins == nil {
		o.Builtins = DefaultBuiltins()
	}
	if o.MaxScopeDepth <= 0 {
		o.MaxScopeDepth = DefaultMaxScopeDepth
	}
	if o.MaxFunctionDepth <= 0 {
		o.MaxFunctionDepth = DefaultMaxFunctionDepth
	}
	if o.MaxTreeDepth <= 0 {
		o.MaxTreeDepth = DefaultMaxTreeDepth
	}
	return o
}
