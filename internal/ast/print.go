package ast

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PrintOptions controls which analysis annotations Fprint includes.
type PrintOptions struct {
	Types  bool // append ": <type>" to expression nodes
	Scopes bool // append "[scope N]" to scope owners
	Lines  bool // prefix every node with its line
	Indent int  // spaces per level, 2 when zero
}

// Fprint writes an indented listing of the tree rooted at root.
func Fprint(w io.Writer, root *Node, opts PrintOptions) error {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	bw := bufio.NewWriter(w)
	printNode(bw, root, 0, opts)
	return bw.Flush()
}

// Sprint is Fprint into a string.
func Sprint(root *Node, opts PrintOptions) string {
	var b strings.Builder
	_ = Fprint(&b, root, opts)
	return b.String()
}

func printNode(w *bufio.Writer, n *Node, depth int, opts PrintOptions) {
	for ; n != nil; n = n.Sibling {
		w.WriteString(strings.Repeat(" ", depth*opts.Indent))
		if opts.Lines {
			fmt.Fprintf(w, "%4d  ", n.Line)
		}
		w.WriteString(n.Label())
		if opts.Scopes && n.Kind.OwnsScope() && n.Scope.IsValid() {
			fmt.Fprintf(w, " [scope %d]", n.Scope)
		}
		if opts.Types && n.Kind.IsExpr() {
			fmt.Fprintf(w, " : %s", n.Type)
		}
		w.WriteByte('\n')
		printNode(w, n.Child, depth+1, opts)
	}
}
