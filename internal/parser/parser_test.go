package parser_test

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/lexer"
	"cminus/internal/parser"
	"cminus/internal/source"
)

func parse(t *testing.T, src string, opts parser.Options) (*ast.Node, *diag.Bag, parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cm", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	opts.Reporter = rep
	res := parser.ParseFile(lx, opts)
	be.True(t, res.Root != nil)
	return res.Root, bag, res
}

func shape(n *ast.Node) string {
	return ast.Sprint(n, ast.PrintOptions{})
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

const gcdSource = `/* greatest common divisor */
int gcd(int u, int v)
{
	if (v == 0) return u;
	else return gcd(v, u - u/v*v);
}

void main(void)
{
	int x; int y;
	x = input(); y = input();
	output(gcd(x, y));
}
`

func TestParseGCDProgram(t *testing.T) {
	root, bag, res := parse(t, gcdSource, parser.Options{})
	be.Equal(t, bag.Len(), 0)
	be.Equal(t, res.Errors, uint(0))
	be.Equal(t, shape(root), lines(
		"Program",
		"  FunDecl gcd",
		"    TypeInt",
		"    Id gcd",
		"    Param",
		"      TypeInt",
		"      Id u",
		"    Param",
		"      TypeInt",
		"      Id v",
		"    Block",
		"      If",
		"        RelOp ==",
		"          VarRef v",
		"          Num 0",
		"        Return",
		"          VarRef u",
		"        Return",
		"          Call gcd",
		"            VarRef v",
		"            AddOp -",
		"              VarRef u",
		"              MulOp *",
		"                MulOp /",
		"                  VarRef u",
		"                  VarRef v",
		"                VarRef v",
		"  FunDecl main",
		"    TypeVoid",
		"    Id main",
		"    Param",
		"      TypeVoid",
		"    Block",
		"      VarDecl",
		"        TypeInt",
		"        Id x",
		"      VarDecl",
		"        TypeInt",
		"        Id y",
		"      Assign",
		"        VarRef x",
		"        Call input",
		"      Assign",
		"        VarRef y",
		"        Call input",
		"      Call output",
		"        Call gcd",
		"          VarRef x",
		"          VarRef y",
	))
}

func TestParseLines(t *testing.T) {
	root, _, _ := parse(t, gcdSource, parser.Options{})
	gcd := root.Child
	be.Equal(t, gcd.Line, 2)
	_, _, _, body := ast.FunParts(gcd)
	be.Equal(t, body.Line, 3)
	be.Equal(t, body.Child.Line, 4) // If
	main := gcd.Sibling
	be.Equal(t, main.Line, 8)
}

func TestParseDeclarationsAndParams(t *testing.T) {
	root, bag, _ := parse(t, "int a[10]; int f(int v[], int n) { return n; } int g() { return 0; }", parser.Options{})
	be.Equal(t, bag.Len(), 0)

	arr := root.Child
	_, id, size := ast.DeclParts(arr)
	be.Equal(t, id.Name(), "a")
	n, ok := size.Value()
	be.True(t, ok)
	be.Equal(t, n, 10)

	_, _, params, _ := ast.FunParts(arr.Sibling)
	be.Equal(t, len(params), 2)
	_, pid, marker := ast.DeclParts(params[0])
	be.Equal(t, pid.Name(), "v")
	be.True(t, marker != nil)

	_, _, none, body := ast.FunParts(arr.Sibling.Sibling)
	be.Equal(t, len(none), 0)
	be.True(t, body != nil)
}

func TestParseVoidParamForms(t *testing.T) {
	root, bag, _ := parse(t, "int f(void) { return 0; } int g(void x, int y) { return y; } int h(int a, void) { return a; } int k(void, int b) { return b; }", parser.Options{})
	be.Equal(t, bag.Len(), 0)
	f := root.Child
	_, _, params, _ := ast.FunParts(f)
	be.True(t, ast.IsVoidParamList(params))

	_, _, gParams, _ := ast.FunParts(f.Sibling)
	be.Equal(t, len(gParams), 2)
	be.Equal(t, gParams[0].ChildAt(1).Name(), "x")

	_, _, hParams, _ := ast.FunParts(f.Sibling.Sibling)
	be.Equal(t, len(hParams), 2)
	be.Equal(t, hParams[1].NumChildren(), 1)

	_, _, kParams, _ := ast.FunParts(f.Sibling.Sibling.Sibling)
	be.Equal(t, len(kParams), 2)
	be.Equal(t, kParams[0].NumChildren(), 1)
	be.Equal(t, kParams[1].ChildAt(1).Name(), "b")
	be.True(t, !ast.IsVoidParamList(kParams))
}

func TestParseExpressionPrecedence(t *testing.T) {
	root, bag, _ := parse(t, "void f(void) { x = a + b * c < d - 1; a = b = 1; }", parser.Options{})
	be.Equal(t, bag.Len(), 0)
	_, _, _, body := ast.FunParts(root.Child)
	be.Equal(t, shape(body), lines(
		"Block",
		"  Assign",
		"    VarRef x",
		"    RelOp <",
		"      AddOp +",
		"        VarRef a",
		"        MulOp *",
		"          VarRef b",
		"          VarRef c",
		"      AddOp -",
		"        VarRef d",
		"        Num 1",
		"  Assign",
		"    VarRef a",
		"    Assign",
		"      VarRef b",
		"      Num 1",
	))
}

func TestParseControlFlow(t *testing.T) {
	src := "void f(void) { while (i < 10) { a[i] = 0; i = i + 1; } if (i) ; else { } }"
	root, bag, _ := parse(t, src, parser.Options{})
	be.Equal(t, bag.Len(), 0)
	_, _, _, body := ast.FunParts(root.Child)
	be.Equal(t, shape(body), lines(
		"Block",
		"  While",
		"    RelOp <",
		"      VarRef i",
		"      Num 10",
		"    Block",
		"      Assign",
		"        ArrayIndex",
		"          VarRef a",
		"          VarRef i",
		"        Num 0",
		"      Assign",
		"        VarRef i",
		"        AddOp +",
		"          VarRef i",
		"          Num 1",
		"  If",
		"    VarRef i",
		"    Block",
		"    Block",
	))
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
		line int
	}{
		{"missing semicolon", "int x\nint y;", diag.SynExpectSemicolon, 2},
		{"invalid target", "void f(void) {\n 1 = x; }", diag.SynInvalidTarget, 2},
		{"unclosed brace", "void f(void) {\n x = 1;\n", diag.SynUnclosedBrace, 2},
		{"missing expression", "void f(void) { x = ; }", diag.SynExpectExpression, 1},
		{"missing type", "x;", diag.SynExpectType, 1},
		{"nested function", "void f(void) { int g(void) }", diag.SynUnexpectedToken, 1},
		{"number out of range", "int a[99999999999];", diag.LexBadNumber, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag, res := parse(t, tc.src, parser.Options{})
			be.True(t, bag.Len() >= 1)
			be.True(t, res.Errors >= 1)
			d := bag.Items()[0]
			be.Equal(t, d.Code, tc.code)
			be.Equal(t, d.Line, tc.line)
		})
	}
}

func TestParseRecoversAtNextDeclaration(t *testing.T) {
	root, bag, _ := parse(t, "int x = 1;\nint main(void) { return 0; }", parser.Options{})
	be.True(t, bag.Len() >= 1)
	var names []string
	for decl := range root.Children() {
		if decl.Kind == ast.KindFunDecl {
			names = append(names, decl.ChildAt(1).Name())
		}
	}
	be.Equal(t, names, []string{"main"})
}

func TestParseNestingLimit(t *testing.T) {
	src := "int f(void) { return " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + "; }"
	_, bag, _ := parse(t, src, parser.Options{MaxNesting: 16})
	be.True(t, bag.Len() >= 1)
	be.True(t, strings.Contains(bag.Items()[0].Message, "nesting too deep"))
}

func TestParseMaxErrors(t *testing.T) {
	src := "void f(void) { 1 = 2; 3 = 4; 5 = 6; 7 = 8; }"
	_, bag, res := parse(t, src, parser.Options{MaxErrors: 2})
	be.Equal(t, bag.Len(), 2)
	be.Equal(t, res.Errors, uint(4))
}
