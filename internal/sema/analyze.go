package sema

import (
	"cminus/internal/ast"
	"cminus/internal/symbols"
)

// Result is what code generation consumes: the annotated tree and the
// finished symbol table.
type Result struct {
	Tree        *ast.Node
	Table       *symbols.Table
	GlobalScope ast.ScopeID
	Scopes      int
}

// Analyze runs the declaration and type-check passes over root with a fresh
// Context. Diagnostics go to opts.Reporter; the returned error is non-nil
// only for resource limits (see ErrLimit).
func Analyze(root *ast.Node, opts Options) (*Result, error) {
	c := NewContext(opts)
	if err := c.Declare(root); err != nil {
		return nil, err
	}
	if err := c.Check(root); err != nil {
		return nil, err
	}
	return c.Result(root), nil
}

// Result packages the state left by Declare and Check over root.
func (c *Context) Result(root *ast.Node) *Result {
	return &Result{
		Tree:        root,
		Table:       c.Table,
		GlobalScope: ast.GlobalScope,
		Scopes:      c.ScopeCount(),
	}
}
