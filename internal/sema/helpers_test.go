package sema

import (
	"testing"

	"cminus/internal/ast"
	"cminus/internal/diag"
)

// Tree builders mirroring the parser's output shapes.

func program(decls ...*ast.Node) *ast.Node {
	return ast.New(ast.KindProgram, 1).Append(decls...)
}

func typeNode(kind ast.Kind, line int) *ast.Node { return ast.New(kind, line) }

func varDecl(line int, name string) *ast.Node {
	return ast.New(ast.KindVarDecl, line).Append(
		typeNode(ast.KindTypeInt, line),
		ast.NewLexeme(ast.KindId, name, line),
	)
}

func voidVarDecl(line int, name string) *ast.Node {
	return ast.New(ast.KindVarDecl, line).Append(
		typeNode(ast.KindTypeVoid, line),
		ast.NewLexeme(ast.KindId, name, line),
	)
}

func arrayDecl(line int, name string, size int) *ast.Node {
	return varDecl(line, name).Append(ast.NewNum(size, line))
}

func param(line int, name string) *ast.Node {
	return ast.New(ast.KindParam, line).Append(
		typeNode(ast.KindTypeInt, line),
		ast.NewLexeme(ast.KindId, name, line),
	)
}

func arrayParam(line int, name string) *ast.Node {
	return param(line, name).Append(ast.NewNum(0, line))
}

func voidParam(line int) *ast.Node {
	return ast.New(ast.KindParam, line).Append(typeNode(ast.KindTypeVoid, line))
}

func namedVoidParam(line int, name string) *ast.Node {
	return ast.New(ast.KindParam, line).Append(
		typeNode(ast.KindTypeVoid, line),
		ast.NewLexeme(ast.KindId, name, line),
	)
}

// fun builds a FunDecl; ret is KindTypeInt or KindTypeVoid.
func fun(line int, ret ast.Kind, name string, params []*ast.Node, body *ast.Node) *ast.Node {
	n := ast.New(ast.KindFunDecl, line).Append(
		typeNode(ret, line),
		ast.NewLexeme(ast.KindId, name, line),
	)
	n.Append(params...)
	return n.Append(body)
}

func block(line int, items ...*ast.Node) *ast.Node {
	return ast.New(ast.KindBlock, line).Append(items...)
}

func ret(line int, expr *ast.Node) *ast.Node {
	return ast.New(ast.KindReturn, line).Append(expr)
}

func assign(line int, target, value *ast.Node) *ast.Node {
	return ast.New(ast.KindAssign, line).Append(target, value)
}

func ref(line int, name string) *ast.Node { return ast.NewLexeme(ast.KindVarRef, name, line) }

func num(line, v int) *ast.Node { return ast.NewNum(v, line) }

func call(line int, name string, args ...*ast.Node) *ast.Node {
	return ast.NewLexeme(ast.KindCall, name, line).Append(args...)
}

func binary(kind ast.Kind, op string, line int, left, right *ast.Node) *ast.Node {
	return ast.NewLexeme(kind, op, line).Append(left, right)
}

func index(line int, name string, idx *ast.Node) *ast.Node {
	return ast.New(ast.KindArrayIndex, line).Append(ref(line, name), idx)
}

func ifStmt(line int, cond, then, els *ast.Node) *ast.Node {
	return ast.New(ast.KindIf, line).Append(cond, then, els)
}

func while(line int, cond, body *ast.Node) *ast.Node {
	return ast.New(ast.KindWhile, line).Append(cond, body)
}

// mainFn is `int main(void) { body...; }`.
func mainFn(line int, body ...*ast.Node) *ast.Node {
	return fun(line, ast.KindTypeInt, "main", []*ast.Node{voidParam(line)}, block(line, body...))
}

func analyze(t *testing.T, root *ast.Node, opts Options) (*Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res, err := Analyze(root, opts)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return res, bag
}

func codes(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := codes(bag)
	if len(got) != len(want) {
		t.Fatalf("diagnostics = %v, want %d: %v", got, len(want), bag.Items())
	}
	for i, code := range want {
		if got[i] != code.ID() {
			t.Fatalf("diagnostic %d = %s, want %s (all: %v)", i, got[i], code.ID(), bag.Items())
		}
	}
}
