package sema

import (
	"fmt"

	"fortio.org/safecast"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
)

// Context holds everything one analysis mutates: the symbol table, the
// scope counter and the traversal stacks. Two analyses never share a
// Context; Declare and Check may be run separately against the same one.
type Context struct {
	Table *symbols.Table

	opts     Options
	reporter diag.Reporter

	scopes int // scope ids issued so far

	generation stack[ast.ScopeID] // scopes open for declarations
	visible    stack[ast.ScopeID] // scopes enclosing the checked node
	parents    stack[*ast.Node]   // ancestors of the visited node
	returns    stack[ast.ExpType] // return types of enclosing functions
}

// NewContext returns a Context with an empty table.
func NewContext(opts Options) *Context {
	opts = opts.withDefaults()
	return &Context{
		Table:      symbols.NewTable(),
		opts:       opts,
		reporter:   opts.Reporter,
		generation: newStack[ast.ScopeID]("generation", opts.MaxScopeDepth),
		visible:    newStack[ast.ScopeID]("visibility", opts.MaxScopeDepth),
		parents:    newStack[*ast.Node]("parent", opts.MaxTreeDepth),
		returns:    newStack[ast.ExpType]("return type", opts.MaxFunctionDepth),
	}
}

// ScopeCount is the number of scope ids issued, the global scope included.
func (c *Context) ScopeCount() int { return c.scopes }

func (c *Context) resetStacks() {
	c.generation.reset()
	c.visible.reset()
	c.parents.reset()
	c.returns.reset()
}

// openScope issues the next scope id and makes it the declaration target.
func (c *Context) openScope(line int) (ast.ScopeID, error) {
	id, err := safecast.Conv[int32](c.scopes)
	if err != nil {
		panic(fmt.Errorf("scope id overflow: %w", err))
	}
	scope := ast.ScopeID(id)
	if err := c.generation.push(scope, line); err != nil {
		return ast.NoScope, err
	}
	c.scopes++
	return scope, nil
}

func (c *Context) closeScope() {
	c.generation.pop()
}

// currentScope is the scope receiving declarations.
func (c *Context) currentScope() ast.ScopeID {
	if s, ok := c.generation.top(); ok {
		return s
	}
	return ast.GlobalScope
}

// resolve finds name in the innermost visible scope that declares it.
func (c *Context) resolve(name string) *symbols.Entry {
	for i := c.visible.size() - 1; i >= 0; i-- {
		if e := c.Table.LookupInScope(name, c.visible.items[i]); e != nil {
			return e
		}
	}
	return nil
}

func (c *Context) parent() *ast.Node {
	p, _ := c.parents.top()
	return p
}

// walk visits the sibling chain starting at n, calling pre before and post
// after each node's children. The parent stack holds the ancestors of the
// node being visited and also bounds the recursion depth.
func (c *Context) walk(n *ast.Node, pre, post func(*ast.Node) error) error {
	for ; n != nil; n = n.Sibling {
		if err := pre(n); err != nil {
			return err
		}
		if n.Child != nil {
			if err := c.parents.push(n, n.Line); err != nil {
				return err
			}
			if err := c.walk(n.Child, pre, post); err != nil {
				return err
			}
			c.parents.pop()
		}
		if err := post(n); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) errorf(code diag.Code, line int, format string, args ...any) {
	diag.Errorf(c.reporter, code, line, format, args...)
}

// errorAt reports a diagnostic with a note pointing at the declaration of e.
func (c *Context) errorAt(code diag.Code, line int, e *symbols.Entry, msg string) {
	b := diag.ReportError(c.reporter, code, line, msg)
	if e != nil {
		b.WithNote(e.DeclLine, declaredHere(e))
	}
	b.Emit()
}

func declaredHere(e *symbols.Entry) string {
	if e.DeclLine <= 0 {
		return fmt.Sprintf("'%s' is a built-in %s", e.Name, kindNoun(e.Kind))
	}
	return fmt.Sprintf("'%s' first declared here", e.Name)
}

func kindNoun(k symbols.SymbolKind) string {
	switch k {
	case symbols.SymbolFunction:
		return "function"
	case symbols.SymbolArray:
		return "array"
	default:
		return "variable"
	}
}
