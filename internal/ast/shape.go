package ast

// Accessors for the fixed child layouts the parser guarantees. They tolerate
// malformed trees by returning nil parts instead of panicking.

// FunParts splits a FunDecl into type, name, parameters and body.
// Layout: Type -> Id -> Param* -> Block.
func FunParts(fn *Node) (typ, id *Node, params []*Node, body *Node) {
	typ = fn.Child
	if typ == nil {
		return nil, nil, nil, nil
	}
	id = typ.Sibling
	if id == nil {
		return typ, nil, nil, nil
	}
	for c := id.Sibling; c != nil; c = c.Sibling {
		switch c.Kind {
		case KindParam:
			params = append(params, c)
		case KindBlock:
			body = c
		}
	}
	return typ, id, params, body
}

// DeclParts splits a VarDecl or Param into type, name and the optional
// size node following the name.
// Layout: Type -> [Id -> [Num]].
func DeclParts(decl *Node) (typ, id, size *Node) {
	typ = decl.Child
	if typ == nil {
		return nil, nil, nil
	}
	id = typ.Sibling
	if id == nil {
		return typ, nil, nil
	}
	if s := id.Sibling; s != nil && s.Kind == KindNum {
		size = s
	}
	return typ, id, size
}

// Operands returns the first two children, as used by binary nodes,
// Assign and ArrayIndex.
func Operands(n *Node) (left, right *Node) {
	left = n.Child
	if left != nil {
		right = left.Sibling
	}
	return left, right
}

// IsVoidParamList reports whether params is exactly one unnamed void
// parameter, the spelling of "no parameters".
func IsVoidParamList(params []*Node) bool {
	if len(params) != 1 {
		return false
	}
	typ, id, _ := DeclParts(params[0])
	return typ != nil && typ.Kind == KindTypeVoid && id == nil
}
