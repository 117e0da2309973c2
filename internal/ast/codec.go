package ast

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
)

// Current schema version - increment when the wire layout changes.
const treeSchemaVersion uint16 = 1

var (
	// ErrSchema reports a tree file written with an unknown schema version.
	ErrSchema = errors.New("unsupported tree schema")
	// ErrMalformed reports a tree file whose links or payloads break the node contract.
	ErrMalformed = errors.New("malformed tree")
)

// Document is a tree as exchanged with an external parser: the root plus
// the metadata stored next to it.
type Document struct {
	Source    string // path of the program the tree was parsed from
	Annotated bool   // Scope/Type fields carry analysis results
	Root      *Node
}

type treeFile struct {
	Schema    uint16     `msgpack:"schema"`
	Source    string     `msgpack:"source,omitempty"`
	Annotated bool       `msgpack:"annotated,omitempty"`
	Nodes     []wireNode `msgpack:"nodes"`
}

// wireNode is a node in a flat preorder list; links are indices, -1 for none.
type wireNode struct {
	Kind     uint8  `msgpack:"k"`
	Line     int    `msgpack:"l"`
	Name     string `msgpack:"n,omitempty"`
	Value    int    `msgpack:"v,omitempty"`
	HasValue bool   `msgpack:"hv,omitempty"`
	Child    int32  `msgpack:"c"`
	Sibling  int32  `msgpack:"s"`
	Scope    int32  `msgpack:"sc,omitempty"`
	Type     uint8  `msgpack:"t,omitempty"`
}

// Encode writes doc as a msgpack tree file.
func Encode(w io.Writer, doc *Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: empty document", ErrMalformed)
	}
	order := preorder(doc.Root)
	index := make(map[*Node]int32, len(order))
	for i, n := range order {
		idx, err := safecast.Conv[int32](i)
		if err != nil {
			return fmt.Errorf("tree too large: %w", err)
		}
		index[n] = idx
	}

	file := treeFile{
		Schema:    treeSchemaVersion,
		Source:    doc.Source,
		Annotated: doc.Annotated,
		Nodes:     make([]wireNode, len(order)),
	}
	link := func(n *Node) int32 {
		if n == nil {
			return -1
		}
		return index[n]
	}
	for i, n := range order {
		wn := wireNode{
			Kind:    uint8(n.Kind),
			Line:    n.Line,
			Child:   link(n.Child),
			Sibling: link(n.Sibling),
		}
		if i == 0 {
			// the root's siblings are not part of the document
			wn.Sibling = -1
		}
		switch a := n.Attr.(type) {
		case Lexeme:
			wn.Name = string(a)
		case Literal:
			wn.Value = int(a)
			wn.HasValue = true
		}
		if doc.Annotated {
			wn.Scope = int32(n.Scope)
			wn.Type = uint8(n.Type)
		}
		file.Nodes[i] = wn
	}
	return msgpack.NewEncoder(w).Encode(&file)
}

// preorder lists the nodes reachable from root (excluding root's siblings)
// in the order Decode expects: every link points forward.
func preorder(root *Node) []*Node {
	var out []*Node
	stack := []*Node{root}
	first := true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		if n.Sibling != nil && !first {
			stack = append(stack, n.Sibling)
		}
		first = false
		if n.Child != nil {
			stack = append(stack, n.Child)
		}
	}
	return out
}

// Decode reads a msgpack tree file and rebuilds the node graph, rejecting
// anything that is not a well-formed tree of valid nodes.
func Decode(r io.Reader) (*Document, error) {
	var file treeFile
	if err := msgpack.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if file.Schema != treeSchemaVersion {
		return nil, fmt.Errorf("%w: version %d", ErrSchema, file.Schema)
	}
	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrMalformed)
	}
	nodes := make([]*Node, len(file.Nodes))
	for i, wn := range file.Nodes {
		kind := Kind(wn.Kind)
		var attr Attr
		switch {
		case wn.HasValue:
			attr = Literal(wn.Value)
		case kind.Payload() == PayloadLexeme:
			attr = Lexeme(norm.NFC.String(wn.Name))
		case wn.Name != "":
			return nil, fmt.Errorf("%w: node %d (%s) carries unexpected name %q", ErrMalformed, i, kind, wn.Name)
		}
		n, err := NewWithAttr(kind, attr, wn.Line)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrMalformed, i, err)
		}
		if file.Annotated {
			n.Scope = ScopeID(wn.Scope)
			n.Type = ExpType(wn.Type)
		}
		nodes[i] = n
	}

	refs := make([]int, len(nodes))
	resolve := func(from int, to int32, what string) (*Node, error) {
		if to == -1 {
			return nil, nil
		}
		if int(to) <= from || int(to) >= len(nodes) {
			return nil, fmt.Errorf("%w: node %d %s link %d out of order", ErrMalformed, from, what, to)
		}
		refs[to]++
		if refs[to] > 1 {
			return nil, fmt.Errorf("%w: node %d linked more than once", ErrMalformed, to)
		}
		return nodes[to], nil
	}
	var err error
	for i, wn := range file.Nodes {
		if i == 0 && wn.Sibling != -1 {
			return nil, fmt.Errorf("%w: root has a sibling", ErrMalformed)
		}
		if nodes[i].Child, err = resolve(i, wn.Child, "child"); err != nil {
			return nil, err
		}
		if nodes[i].Sibling, err = resolve(i, wn.Sibling, "sibling"); err != nil {
			return nil, err
		}
	}
	for i := 1; i < len(refs); i++ {
		if refs[i] == 0 {
			return nil, fmt.Errorf("%w: node %d is unreachable", ErrMalformed, i)
		}
	}

	return &Document{
		Source:    file.Source,
		Annotated: file.Annotated,
		Root:      nodes[0],
	}, nil
}
