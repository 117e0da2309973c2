package sema

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
)

// Declare runs the declaration pass over the tree rooted at root: it
// installs the built-ins, binds every declared name in the scope that
// declares it and stamps FunDecl and Block nodes with their scope ids.
// Each call starts over with an empty table and scope counter.
// Language errors are reported; only resource limits return an error.
func (c *Context) Declare(root *ast.Node) error {
	c.resetStacks()
	c.Table = symbols.NewTable()
	c.scopes = 0
	global, err := c.openScope(0)
	if err != nil {
		return err
	}
	if err := c.declareBuiltins(global); err != nil {
		return err
	}
	if err := c.walk(root, c.declareNode, c.leaveDeclared); err != nil {
		return err
	}
	c.closeScope()
	c.checkEntry(global)
	return nil
}

func (c *Context) declareBuiltins(global ast.ScopeID) error {
	for _, b := range c.opts.Builtins {
		if _, err := c.Table.Insert(b.Name, 0, global, b.Returns, symbols.SymbolFunction); err != nil {
			return fmt.Errorf("built-in %q: %w", b.Name, err)
		}
		c.Table.SetParams(b.Name, b.Params)
	}
	return nil
}

func (c *Context) declareNode(n *ast.Node) error {
	switch n.Kind {
	case ast.KindFunDecl:
		return c.declareFun(n)
	case ast.KindBlock:
		scope, err := c.openScope(n.Line)
		if err != nil {
			return err
		}
		n.Scope = scope
	case ast.KindVarDecl:
		return c.declareVar(n)
	case ast.KindParam:
		return c.declareParam(n)
	}
	return nil
}

func (c *Context) leaveDeclared(n *ast.Node) error {
	if n.Kind.OwnsScope() {
		c.closeScope()
	}
	return nil
}

func (c *Context) declareFun(n *ast.Node) error {
	typ, id, params, _ := ast.FunParts(n)
	if name := id.Name(); name != "" {
		scope := c.currentScope()
		switch prev := c.Table.LookupAny(name); {
		case prev.IsFunction():
			c.errorAt(diag.SemaRedeclaredFunction, n.Line, prev,
				fmt.Sprintf("function '%s' is already declared", name))
		case c.Table.LookupInScope(name, scope) != nil:
			c.errorAt(diag.SemaRedeclaredFunction, n.Line, c.Table.LookupInScope(name, scope),
				fmt.Sprintf("'%s' is already declared in this scope", name))
		default:
			if _, err := c.Table.Insert(name, n.Line, scope, ast.DeclaredType(typ), symbols.SymbolFunction); err != nil {
				return fmt.Errorf("function %q: %w", name, err)
			}
			c.Table.SetParams(name, signature(params))
		}
	}
	scope, err := c.openScope(n.Line)
	if err != nil {
		return err
	}
	n.Scope = scope
	return nil
}

// signature lists the parameter types of a function. A lone unnamed void
// parameter means no parameters; any other void parameter counts as int
// and is reported when the Param itself is declared.
func signature(params []*ast.Node) []ast.ExpType {
	if ast.IsVoidParamList(params) {
		return nil
	}
	types := make([]ast.ExpType, len(params))
	for i := range params {
		types[i] = ast.Integer
	}
	return types
}

func (c *Context) declareVar(n *ast.Node) error {
	typ, id, size := ast.DeclParts(n)
	name := id.Name()
	if name == "" {
		return nil
	}
	if ast.DeclaredType(typ) == ast.Void {
		c.errorf(diag.SemaVoidVariable, n.Line, "variable '%s' declared void", name)
		return nil
	}
	if prev := c.Table.LookupAny(name); prev.IsFunction() {
		c.errorAt(diag.SemaVarShadowsFunction, n.Line, prev,
			fmt.Sprintf("variable '%s' conflicts with function of the same name", name))
		return nil
	}
	scope := c.currentScope()
	if prev := c.Table.LookupInScope(name, scope); prev != nil {
		c.errorAt(diag.SemaRedeclaredVariable, n.Line, prev,
			fmt.Sprintf("variable '%s' is already declared in this scope", name))
		return nil
	}
	kind := symbols.SymbolVariable
	if size != nil {
		kind = symbols.SymbolArray
	}
	if _, err := c.Table.Insert(name, n.Line, scope, ast.Integer, kind); err != nil {
		return fmt.Errorf("variable %q: %w", name, err)
	}
	return nil
}

func (c *Context) declareParam(n *ast.Node) error {
	if fn := c.parent(); fn != nil && fn.Kind == ast.KindFunDecl {
		if _, _, params, _ := ast.FunParts(fn); ast.IsVoidParamList(params) {
			return nil
		}
	}
	typ, id, marker := ast.DeclParts(n)
	name := id.Name()
	if ast.DeclaredType(typ) == ast.Void {
		if name == "" {
			c.errorf(diag.SemaVoidParam, n.Line, "'void' must be the only parameter")
		} else {
			c.errorf(diag.SemaVoidParam, n.Line, "parameter '%s' declared void", name)
		}
	}
	if name == "" {
		return nil
	}
	scope := c.currentScope()
	if prev := c.Table.LookupInScope(name, scope); prev != nil {
		c.errorAt(diag.SemaRedeclaredParam, n.Line, prev,
			fmt.Sprintf("parameter '%s' is already declared", name))
		return nil
	}
	kind := symbols.SymbolVariable
	if marker != nil {
		kind = symbols.SymbolArray
	}
	if _, err := c.Table.Insert(name, n.Line, scope, ast.Integer, kind); err != nil {
		return fmt.Errorf("parameter %q: %w", name, err)
	}
	return nil
}

// checkEntry reports a program without the entry function.
func (c *Context) checkEntry(global ast.ScopeID) {
	if e := c.Table.LookupInScope(c.opts.Entry, global); e.IsFunction() {
		return
	}
	c.errorf(diag.SemaMissingEntryPoint, 0, "function '%s' is not defined", c.opts.Entry)
}
