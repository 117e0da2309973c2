package ast

import (
	"fmt"
	"iter"
)

// Node is one syntax tree node in first-child/next-sibling form. A node owns
// its first child; the rest of its children hang off that child's sibling
// chain. Scope and Type are written by semantic analysis.
type Node struct {
	Kind    Kind
	Line    int
	Child   *Node
	Sibling *Node
	Attr    Attr

	Scope ScopeID // set on FunDecl/Block by the declaration pass
	Type  ExpType // set on expressions by the type-check pass
}

// New allocates a node of a kind that carries no payload.
func New(kind Kind, line int) *Node {
	n, err := NewWithAttr(kind, nil, line)
	if err != nil {
		panic(err)
	}
	return n
}

// NewLexeme allocates an identifier, reference, call or operator node.
func NewLexeme(kind Kind, text string, line int) *Node {
	n, err := NewWithAttr(kind, Lexeme(text), line)
	if err != nil {
		panic(err)
	}
	return n
}

// NewNum allocates a numeric literal node.
func NewNum(value, line int) *Node {
	return &Node{Kind: KindNum, Line: line, Attr: Literal(value), Scope: NoScope}
}

// NewWithAttr allocates a node after checking the payload matches the kind.
func NewWithAttr(kind Kind, attr Attr, line int) (*Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid node kind %d", kind)
	}
	if want, got := kind.Payload(), payloadOf(attr); want != got {
		return nil, fmt.Errorf("%s node: payload mismatch (want %s, got %s)", kind, payloadName(want), payloadName(got))
	}
	return &Node{Kind: kind, Line: line, Attr: attr, Scope: NoScope}, nil
}

func payloadName(p PayloadKind) string {
	switch p {
	case PayloadLexeme:
		return "lexeme"
	case PayloadLiteral:
		return "literal"
	default:
		return "none"
	}
}

// Name returns the lexeme of the node, or "" when it carries none.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	if lx, ok := n.Attr.(Lexeme); ok {
		return string(lx)
	}
	return ""
}

// Value returns the literal value of a Num node.
func (n *Node) Value() (int, bool) {
	if n == nil {
		return 0, false
	}
	lit, ok := n.Attr.(Literal)
	return int(lit), ok
}

// Append links children at the end of n's child list and returns n.
// Nil children are skipped.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		if n.Child == nil {
			n.Child = c
			continue
		}
		last := n.Child
		for last.Sibling != nil {
			last = last.Sibling
		}
		last.Sibling = c
	}
	return n
}

// Children iterates over the sibling chain starting at n.Child.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		for c := n.Child; c != nil; c = c.Sibling {
			if !yield(c) {
				return
			}
		}
	}
}

// NumChildren counts the sibling chain under n.
func (n *Node) NumChildren() int {
	count := 0
	for range n.Children() {
		count++
	}
	return count
}

// ChildAt returns the i-th child (0-based) or nil.
func (n *Node) ChildAt(i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	c := n.Child
	for ; c != nil && i > 0; i-- {
		c = c.Sibling
	}
	return c
}

// Label is the one-line description used by the printer and diagnostics.
func (n *Node) Label() string {
	switch n.Kind.Payload() {
	case PayloadLexeme:
		return fmt.Sprintf("%s %s", n.Kind, n.Name())
	case PayloadLiteral:
		v, _ := n.Value()
		return fmt.Sprintf("%s %d", n.Kind, v)
	}
	if n.Kind == KindFunDecl {
		if id := n.ChildAt(1); id != nil {
			return fmt.Sprintf("%s %s", n.Kind, id.Name())
		}
	}
	return n.Kind.String()
}
