package sema

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
)

// Check runs the type-check pass. Declare must have stamped the tree first.
// Every expression node ends with a resolved type; failed rules leave Void.
func (c *Context) Check(root *ast.Node) error {
	c.resetStacks()
	if err := c.visible.push(ast.GlobalScope, 0); err != nil {
		return err
	}
	return c.walk(root, c.enterChecked, c.checkNode)
}

func (c *Context) enterChecked(n *ast.Node) error {
	switch n.Kind {
	case ast.KindFunDecl:
		if err := c.visible.push(stamped(n), n.Line); err != nil {
			return err
		}
		return c.returns.push(ast.DeclaredType(n.Child), n.Line)
	case ast.KindBlock:
		return c.visible.push(stamped(n), n.Line)
	}
	return nil
}

func stamped(n *ast.Node) ast.ScopeID {
	if n.Scope.IsValid() {
		return n.Scope
	}
	return ast.GlobalScope
}

func (c *Context) checkNode(n *ast.Node) error {
	switch n.Kind {
	case ast.KindNum:
		n.Type = ast.Integer
	case ast.KindAddOp, ast.KindMulOp:
		c.checkArith(n)
	case ast.KindRelOp:
		c.checkRel(n)
	case ast.KindVarRef:
		c.checkVarRef(n)
	case ast.KindArrayIndex:
		c.checkIndex(n)
	case ast.KindAssign:
		c.checkAssign(n)
	case ast.KindReturn:
		c.checkReturn(n)
	case ast.KindCall:
		c.checkCall(n)
	case ast.KindBlock:
		c.visible.pop()
	case ast.KindFunDecl:
		c.returns.pop()
		c.visible.pop()
	}
	return nil
}

func typeOf(n *ast.Node) ast.ExpType {
	if n == nil {
		return ast.Void
	}
	return n.Type
}

func (c *Context) checkArith(n *ast.Node) {
	left, right := ast.Operands(n)
	lt, rt := typeOf(left), typeOf(right)
	if lt == ast.Integer && rt == ast.Integer {
		n.Type = ast.Integer
		return
	}
	n.Type = ast.Void
	c.errorf(diag.SemaArithmeticOperands, n.Line,
		"operator '%s' requires int operands, got %s and %s", n.Name(), lt, rt)
}

func (c *Context) checkRel(n *ast.Node) {
	left, right := ast.Operands(n)
	lt, rt := typeOf(left), typeOf(right)
	if lt == ast.Integer && rt == ast.Integer {
		n.Type = ast.Boolean
		return
	}
	n.Type = ast.Void
	c.errorf(diag.SemaRelationalOperands, n.Line,
		"comparison '%s' requires int operands, got %s and %s", n.Name(), lt, rt)
}

func (c *Context) checkVarRef(n *ast.Node) {
	e := c.resolve(n.Name())
	// The base of an index expression is diagnosed by the ArrayIndex rule.
	if p := c.parent(); p != nil && p.Kind == ast.KindArrayIndex && p.Child == n {
		if e != nil && !e.IsFunction() {
			n.Type = e.Type
		}
		return
	}
	switch {
	case e == nil:
		n.Type = ast.Void
		c.errorf(diag.SemaUndeclaredVariable, n.Line, "undeclared variable '%s'", n.Name())
	case e.IsFunction():
		n.Type = ast.Void
		c.errorAt(diag.SemaFunctionAsVariable, n.Line, e,
			fmt.Sprintf("function '%s' used as a variable", e.Name))
	default:
		n.Type = e.Type
	}
}

func (c *Context) checkIndex(n *ast.Node) {
	n.Type = ast.Void
	base, index := ast.Operands(n)
	if base == nil {
		c.errorf(diag.SemaIndexBaseInvalid, n.Line, "index expression has no array")
		return
	}
	if base.Kind != ast.KindVarRef {
		c.errorf(diag.SemaIndexBaseInvalid, n.Line, "indexed expression is not a variable")
		return
	}
	name := base.Name()
	e := c.resolve(name)
	if e == nil {
		c.errorf(diag.SemaUndeclaredVariable, n.Line, "undeclared variable '%s'", name)
		return
	}
	if e.Kind != symbols.SymbolArray {
		c.errorAt(diag.SemaNotArray, n.Line, e, fmt.Sprintf("'%s' is not an array", name))
		return
	}
	if index == nil {
		c.errorf(diag.SemaIndexMissing, n.Line, "missing index for array '%s'", name)
		return
	}
	if index.Type != ast.Integer {
		c.errorf(diag.SemaIndexType, n.Line, "array index must be int, got %s", index.Type)
		return
	}
	n.Type = e.Type
}

func (c *Context) checkAssign(n *ast.Node) {
	n.Type = ast.Void
	target, value := ast.Operands(n)
	lt, rt := typeOf(target), typeOf(value)
	switch {
	case target == nil || (target.Kind != ast.KindVarRef && target.Kind != ast.KindArrayIndex) || lt == ast.Void:
		c.errorf(diag.SemaAssignTarget, n.Line, "left side of assignment is not a valid variable")
	case rt == ast.Void:
		c.errorf(diag.SemaAssignVoid, n.Line, "cannot assign void to %s", lt)
	case lt != rt:
		c.errorf(diag.SemaAssignIncompatible, n.Line, "incompatible types in assignment (%s = %s)", lt, rt)
	default:
		n.Type = lt
	}
}

func (c *Context) checkReturn(n *ast.Node) {
	want, ok := c.returns.top()
	if !ok {
		want = ast.Void
	}
	expr := n.Child
	switch {
	case want == ast.Void && expr != nil:
		c.errorf(diag.SemaReturnValueInVoid, n.Line, "void function returns a value")
	case want != ast.Void && expr == nil:
		c.errorf(diag.SemaReturnMissingValue, n.Line, "missing return value in function returning %s", want)
	case want != ast.Void && expr.Type == ast.Void:
		c.errorf(diag.SemaReturnVoidValue, n.Line, "returning void from function returning %s", want)
	}
}

func (c *Context) checkCall(n *ast.Node) {
	n.Type = ast.Void
	name := n.Name()
	e := c.resolve(name)
	if e == nil {
		c.errorf(diag.SemaUndeclaredFunction, n.Line, "call to undeclared function '%s'", name)
		return
	}
	if !e.IsFunction() {
		c.errorAt(diag.SemaNotCallable, n.Line, e, fmt.Sprintf("'%s' is not a function", name))
		return
	}
	var args []*ast.Node
	for a := range n.Children() {
		args = append(args, a)
	}
	if len(args) != e.Arity() {
		c.errorAt(diag.SemaArityMismatch, n.Line, e,
			fmt.Sprintf("call to '%s' expects %d argument(s), got %d", name, e.Arity(), len(args)))
	}
	for i := 0; i < min(len(args), e.Arity()); i++ {
		if args[i].Type != e.Params[i] {
			c.errorf(diag.SemaArgumentType, n.Line,
				"argument %d of call to '%s': expected %s, got %s", i+1, name, e.Params[i], args[i].Type)
		}
	}
	n.Type = e.Type
	if n.Type != ast.Void && c.isStatement() {
		c.errorf(diag.SemaIgnoredReturn, n.Line, "return value of '%s' is ignored", name)
	}
}

// isStatement reports whether the call being checked stands alone as a
// statement, so its value is discarded: its parent is a Block or the
// Program. An unbraced If or While branch does not count.
func (c *Context) isStatement() bool {
	p := c.parent()
	return p == nil || p.Kind == ast.KindBlock || p.Kind == ast.KindProgram
}
