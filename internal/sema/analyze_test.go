package sema

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
)

// int x; int main(void) { x = 1; return x; }
func TestScenarioGlobalAssignment(t *testing.T) {
	root := program(
		varDecl(1, "x"),
		mainFn(1, assign(1, ref(1, "x"), num(1, 1)), ret(1, ref(1, "x"))),
	)
	res, bag := analyze(t, root, Options{})
	expectCodes(t, bag)

	x := res.Table.LookupInScope("x", ast.GlobalScope)
	if x == nil {
		t.Fatalf("x not declared globally")
	}
	if x.Kind != symbols.SymbolVariable || x.Type != ast.Integer || x.Scope != res.GlobalScope {
		t.Fatalf("x = %+v", x)
	}
	if x.Location != 2 {
		t.Fatalf("x location = %d, want 2 (after the built-ins)", x.Location)
	}
}

// int f(int a) { return a; } int main(void) { f(); }
func TestScenarioArityMismatch(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeInt, "f", []*ast.Node{param(1, "a")}, block(1, ret(1, ref(1, "a")))),
		mainFn(2, call(2, "f")),
	)
	_, bag := analyze(t, root, Options{})
	if n := bag.Count(diag.SemaArityMismatch); n != 1 {
		t.Fatalf("arity diagnostics = %d, want 1: %v", n, bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SemaArityMismatch {
			continue
		}
		if d.Line != 2 {
			t.Fatalf("arity diagnostic at line %d, want 2", d.Line)
		}
		if !strings.Contains(d.Message, "expects 1 argument(s), got 0") {
			t.Fatalf("message = %q", d.Message)
		}
		if d.Code.Category() != diag.CategoryArityMismatch {
			t.Fatalf("category = %s", d.Code.Category())
		}
	}
}

// void g(void) {} int main(void) { g(); return 0; }
func TestScenarioVoidCallStatement(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeVoid, "g", []*ast.Node{voidParam(1)}, block(1)),
		mainFn(1, call(1, "g"), ret(1, num(1, 0))),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag)
}

func TestScenarioMissingEntryPoint(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeInt, "f", []*ast.Node{voidParam(1)}, block(1, ret(1, num(1, 0)))),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaMissingEntryPoint)
	if bag.Items()[0].Code.Category() != diag.CategoryMissingEntryPoint {
		t.Fatalf("category = %s", bag.Items()[0].Code.Category())
	}
}

func TestInnerDeclarationShadowsOuter(t *testing.T) {
	inner := block(4, arrayDecl(4, "x", 4), assign(5, index(5, "x", num(5, 0)), num(5, 2)))
	outerUse := ref(3, "x")
	root := program(
		varDecl(1, "x"),
		mainFn(2,
			assign(3, outerUse, num(3, 1)),
			inner,
			index(6, "x", num(6, 1)),
			ret(7, ref(7, "x")),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaNotArray)
	d := bag.Items()[0]
	if d.Line != 6 || len(d.Notes) != 1 || d.Notes[0].Line != 1 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if outerUse.Type != ast.Integer {
		t.Fatalf("outer x type = %s", outerUse.Type)
	}
}

func TestResolveWalksVisibleScopes(t *testing.T) {
	inner := block(3, arrayDecl(3, "x", 2))
	body := block(2, varDecl(2, "y"), inner)
	main := fun(2, ast.KindTypeInt, "main", []*ast.Node{voidParam(2)}, body)
	root := program(varDecl(1, "x"), main)

	c := NewContext(Options{})
	if err := c.Declare(root); err != nil {
		t.Fatalf("declare: %v", err)
	}
	for _, s := range []ast.ScopeID{ast.GlobalScope, main.Scope, body.Scope, inner.Scope} {
		if err := c.visible.push(s, 0); err != nil {
			t.Fatal(err)
		}
	}
	if e := c.resolve("x"); e == nil || e.Kind != symbols.SymbolArray || e.Scope != inner.Scope {
		t.Fatalf("inside the block x = %+v", e)
	}
	if e := c.resolve("y"); e == nil || e.Scope != body.Scope {
		t.Fatalf("y = %+v", e)
	}
	c.visible.pop()
	if e := c.resolve("x"); e == nil || e.Kind != symbols.SymbolVariable || e.Scope != ast.GlobalScope {
		t.Fatalf("outside the block x = %+v", e)
	}
	c.visible.pop()
	if e := c.resolve("y"); e != nil {
		t.Fatalf("y must not be visible outside its block, got %+v", e)
	}
}

func TestRedeclarationInSameScopeKeepsOriginal(t *testing.T) {
	root := program(
		varDecl(1, "x"),
		arrayDecl(2, "x", 5),
		mainFn(3, ret(3, num(3, 0))),
	)
	res, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaRedeclaredVariable)
	d := bag.Items()[0]
	if d.Line != 2 || len(d.Notes) != 1 || d.Notes[0].Line != 1 {
		t.Fatalf("diagnostic = %+v", d)
	}
	x := res.Table.LookupInScope("x", ast.GlobalScope)
	if x.Kind != symbols.SymbolVariable || x.DeclLine != 1 || x.Location != 2 {
		t.Fatalf("original entry changed: %+v", x)
	}
	// input, output, x, main
	if res.Table.NextLocation() != 4 || res.Table.Len() != 4 {
		t.Fatalf("NextLocation = %d, Len = %d", res.Table.NextLocation(), res.Table.Len())
	}
}

func TestScopeIDsAreNeverReused(t *testing.T) {
	innerF := block(1)
	bodyF := block(1, innerF)
	f := fun(1, ast.KindTypeVoid, "f", []*ast.Node{voidParam(1)}, bodyF)
	bodyMain := block(2, ret(2, num(2, 0)))
	main := fun(2, ast.KindTypeInt, "main", []*ast.Node{voidParam(2)}, bodyMain)
	res, bag := analyze(t, program(f, main), Options{})
	expectCodes(t, bag)

	got := []ast.ScopeID{f.Scope, bodyF.Scope, innerF.Scope, main.Scope, bodyMain.Scope}
	if diff := deep.Equal(got, []ast.ScopeID{1, 2, 3, 4, 5}); diff != nil {
		t.Fatalf("scope ids: %v", diff)
	}
	if res.Scopes != 6 {
		t.Fatalf("Scopes = %d, want 6", res.Scopes)
	}
}

func TestOperatorsRequireIntegerOperands(t *testing.T) {
	add := binary(ast.KindAddOp, "+", 3, call(3, "g"), num(3, 1))
	mul := binary(ast.KindMulOp, "*", 4, num(4, 2), call(4, "g"))
	badRel := binary(ast.KindRelOp, "<", 5, call(5, "g"), num(5, 1))
	goodRel := binary(ast.KindRelOp, "<", 6, num(6, 1), num(6, 2))
	goodAdd := binary(ast.KindAddOp, "-", 7, num(7, 1), num(7, 2))
	root := program(
		fun(1, ast.KindTypeVoid, "g", []*ast.Node{voidParam(1)}, block(1)),
		mainFn(2,
			add,
			mul,
			ifStmt(5, badRel, block(5), nil),
			while(6, goodRel, block(6)),
			ret(7, goodAdd),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaArithmeticOperands, diag.SemaArithmeticOperands, diag.SemaRelationalOperands)
	for _, n := range []*ast.Node{add, mul, badRel} {
		if n.Type != ast.Void {
			t.Fatalf("%s line %d type = %s, want void", n.Kind, n.Line, n.Type)
		}
	}
	if goodRel.Type != ast.Boolean || goodAdd.Type != ast.Integer {
		t.Fatalf("types = %s, %s", goodRel.Type, goodAdd.Type)
	}
	if !strings.Contains(bag.Items()[0].Message, "got void and int") {
		t.Fatalf("message = %q", bag.Items()[0].Message)
	}
}

func TestCallArityAndArgumentTypes(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeVoid, "g", []*ast.Node{voidParam(1)}, block(1)),
		fun(2, ast.KindTypeInt, "f", []*ast.Node{param(2, "a")}, block(2, ret(2, ref(2, "a")))),
		mainFn(3,
			varDecl(4, "a"),
			assign(5, ref(5, "a"), call(5, "input", num(5, 5))),
			call(6, "output", call(6, "g")),
			assign(7, ref(7, "a"), call(7, "f", num(7, 1), num(7, 2))),
			ret(8, ref(8, "a")),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaArityMismatch, diag.SemaArgumentType, diag.SemaArityMismatch)
	items := bag.Items()
	if !strings.Contains(items[0].Message, "expects 0 argument(s), got 1") {
		t.Fatalf("message = %q", items[0].Message)
	}
	if !strings.Contains(items[1].Message, "argument 1 ") || items[1].Code.Category() != diag.CategoryTypeMismatch {
		t.Fatalf("argument diagnostic = %+v", items[1])
	}
	if items[2].Line != 7 {
		t.Fatalf("second arity diagnostic at line %d", items[2].Line)
	}
}

func TestIgnoredReturnValue(t *testing.T) {
	root := program(
		mainFn(1,
			varDecl(2, "a"),
			call(3, "input"),
			assign(4, ref(4, "a"), call(4, "input")),
			ifStmt(5, ref(5, "a"), call(5, "input"), block(6, call(6, "input"))),
			while(6, call(6, "input"), assign(6, ref(6, "a"), num(6, 1))),
			call(7, "output", call(7, "input")),
			ret(8, call(8, "input")),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaIgnoredReturn, diag.SemaIgnoredReturn)
	if bag.Items()[0].Line != 3 || bag.Items()[1].Line != 6 {
		t.Fatalf("lines = %d, %d", bag.Items()[0].Line, bag.Items()[1].Line)
	}
}

func TestReturnRules(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeVoid, "v", []*ast.Node{voidParam(1)}, block(1, ret(1, num(1, 1)))),
		fun(2, ast.KindTypeInt, "i", []*ast.Node{voidParam(2)}, block(2, ret(2, nil))),
		fun(3, ast.KindTypeInt, "j", []*ast.Node{voidParam(3)}, block(3, ret(3, call(3, "v")))),
		fun(4, ast.KindTypeVoid, "w", []*ast.Node{voidParam(4)}, block(4, ret(4, nil))),
		mainFn(5, ret(5, num(5, 0))),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag, diag.SemaReturnValueInVoid, diag.SemaReturnMissingValue, diag.SemaReturnVoidValue)
}

func TestDeclarationErrors(t *testing.T) {
	redeclared := fun(6, ast.KindTypeInt, "f", []*ast.Node{voidParam(6)}, block(6, ret(6, num(6, 1))))
	root := program(
		fun(1, ast.KindTypeInt, "f", []*ast.Node{voidParam(1)}, block(1, ret(1, num(1, 0)))),
		voidVarDecl(2, "z"),
		varDecl(3, "f"),
		fun(4, ast.KindTypeInt, "g", []*ast.Node{param(4, "a"), param(4, "a")}, block(4, ret(4, ref(4, "a")))),
		fun(5, ast.KindTypeInt, "h", []*ast.Node{param(5, "a"), voidParam(5)}, block(5, ret(5, ref(5, "a")))),
		redeclared,
		fun(7, ast.KindTypeInt, "input", []*ast.Node{voidParam(7)}, block(7, ret(7, num(7, 2)))),
		fun(8, ast.KindTypeInt, "k", []*ast.Node{namedVoidParam(8, "x")}, block(8, ret(8, ref(8, "x")))),
		mainFn(9, ret(9, call(9, "h", num(9, 1), num(9, 2)))),
	)
	res, bag := analyze(t, root, Options{})
	expectCodes(t, bag,
		diag.SemaVoidVariable,
		diag.SemaVarShadowsFunction,
		diag.SemaRedeclaredParam,
		diag.SemaVoidParam,
		diag.SemaRedeclaredFunction,
		diag.SemaRedeclaredFunction,
		diag.SemaVoidParam,
	)
	items := bag.Items()
	if items[1].Notes[0].Line != 1 || items[4].Notes[0].Line != 1 {
		t.Fatalf("notes should point at line 1: %+v / %+v", items[1], items[4])
	}
	if !strings.Contains(items[5].Notes[0].Msg, "built-in") {
		t.Fatalf("built-in note = %+v", items[5].Notes)
	}
	if !redeclared.Scope.IsValid() {
		t.Fatalf("a redeclared function still owns a scope")
	}
	if res.Table.LookupInScope("z", ast.GlobalScope) != nil {
		t.Fatalf("void variable must not be bound")
	}
	h := res.Table.LookupInScope("h", ast.GlobalScope)
	if diff := deep.Equal(h.Params, []ast.ExpType{ast.Integer, ast.Integer}); diff != nil {
		t.Fatalf("h params: %v", diff)
	}
	f := res.Table.LookupInScope("f", ast.GlobalScope)
	if f.DeclLine != 1 || f.Kind != symbols.SymbolFunction {
		t.Fatalf("f = %+v", f)
	}
}

func TestArrayParameters(t *testing.T) {
	sum := fun(1, ast.KindTypeInt, "sum", []*ast.Node{arrayParam(1, "v"), param(1, "n")},
		block(1, ret(1, binary(ast.KindAddOp, "+", 1, index(1, "v", num(1, 0)), ref(1, "n")))))
	root := program(
		sum,
		mainFn(2, arrayDecl(2, "a", 3), ret(2, call(2, "sum", ref(2, "a"), num(2, 3)))),
	)
	res, bag := analyze(t, root, Options{})
	expectCodes(t, bag)
	v := res.Table.LookupInScope("v", sum.Scope)
	if v == nil || v.Kind != symbols.SymbolArray {
		t.Fatalf("v = %+v", v)
	}
}

func TestNameResolutionErrors(t *testing.T) {
	root := program(
		fun(1, ast.KindTypeInt, "f", []*ast.Node{voidParam(1)}, block(1, ret(1, num(1, 0)))),
		mainFn(2,
			varDecl(3, "a"),
			ref(4, "b"),
			ref(5, "f"),
			call(6, "a"),
			call(7, "nope"),
			ret(8, num(8, 0)),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag,
		diag.SemaUndeclaredVariable,
		diag.SemaFunctionAsVariable,
		diag.SemaNotCallable,
		diag.SemaUndeclaredFunction,
	)
	wantCats := []diag.Category{
		diag.CategoryUndeclaredUse,
		diag.CategoryKindMismatch,
		diag.CategoryKindMismatch,
		diag.CategoryUndeclaredUse,
	}
	for i, d := range bag.Items() {
		if d.Code.Category() != wantCats[i] {
			t.Fatalf("%s category = %s, want %s", d.Code.ID(), d.Code.Category(), wantCats[i])
		}
	}
}

func TestIndexErrors(t *testing.T) {
	noIndex := ast.New(ast.KindArrayIndex, 7).Append(ref(7, "arr"))
	badBase := ast.New(ast.KindArrayIndex, 8).Append(num(8, 1), num(8, 2))
	good := index(9, "arr", num(9, 2))
	indexedFunc := index(8, "g", num(8, 0))
	root := program(
		fun(1, ast.KindTypeVoid, "g", []*ast.Node{voidParam(1)}, block(1)),
		mainFn(2,
			varDecl(3, "a"),
			arrayDecl(3, "arr", 10),
			index(4, "a", num(4, 0)),
			index(5, "arr", call(5, "g")),
			index(6, "missing", num(6, 1)),
			noIndex,
			badBase,
			indexedFunc,
			ret(9, good),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag,
		diag.SemaNotArray,
		diag.SemaIndexType,
		diag.SemaUndeclaredVariable,
		diag.SemaIndexMissing,
		diag.SemaIndexBaseInvalid,
		diag.SemaNotArray,
	)
	if last := bag.Items()[bag.Len()-1]; last.Line != 8 || len(last.Notes) != 1 || last.Notes[0].Line != 1 {
		t.Fatalf("indexing a function = %+v", last)
	}
	if noIndex.Type != ast.Void || badBase.Type != ast.Void || good.Type != ast.Integer {
		t.Fatalf("types = %s %s %s", noIndex.Type, badBase.Type, good.Type)
	}
}

func TestAssignmentRules(t *testing.T) {
	chained := assign(4, ref(4, "a"), assign(4, ref(4, "b"), num(4, 1)))
	root := program(
		fun(1, ast.KindTypeVoid, "g", []*ast.Node{voidParam(1)}, block(1)),
		mainFn(2,
			varDecl(3, "a"),
			varDecl(3, "b"),
			chained,
			assign(5, ref(5, "a"), call(5, "g")),
			assign(6, ref(6, "a"), binary(ast.KindRelOp, "<", 6, num(6, 1), num(6, 2))),
			assign(7, ref(7, "g"), num(7, 1)),
			ret(8, ref(8, "a")),
		),
	)
	_, bag := analyze(t, root, Options{})
	expectCodes(t, bag,
		diag.SemaAssignVoid,
		diag.SemaAssignIncompatible,
		diag.SemaFunctionAsVariable,
		diag.SemaAssignTarget,
	)
	if chained.Type != ast.Integer {
		t.Fatalf("chained assignment type = %s", chained.Type)
	}
}

func nestedBlocks(depth int) *ast.Node {
	var inner *ast.Node
	for i := depth; i > 0; i-- {
		b := block(i)
		b.Append(inner)
		inner = b
	}
	return inner
}

func TestScopeDepthLimit(t *testing.T) {
	root := program(mainFn(1, nestedBlocks(3)))
	_, err := Analyze(root, Options{MaxScopeDepth: 4})
	var limit *LimitError
	if !errors.As(err, &limit) {
		t.Fatalf("expected LimitError, got %v", err)
	}
	if !errors.Is(err, ErrLimit) || limit.Stack != "generation" || limit.Limit != 4 {
		t.Fatalf("limit = %+v", limit)
	}

	if _, err := Analyze(program(mainFn(1, nestedBlocks(600))), Options{}); !errors.Is(err, ErrLimit) {
		t.Fatalf("default limits should stop 600 nested blocks, got %v", err)
	}
}

func TestTreeDepthLimit(t *testing.T) {
	expr := num(1, 0)
	for range 20 {
		expr = binary(ast.KindAddOp, "+", 1, expr, num(1, 1))
	}
	root := program(mainFn(1, ret(1, expr)))
	_, err := Analyze(root, Options{MaxTreeDepth: 8})
	var limit *LimitError
	if !errors.As(err, &limit) || limit.Stack != "parent" {
		t.Fatalf("expected parent stack limit, got %v", err)
	}
}

func TestLongSiblingChainsDoNotRecurse(t *testing.T) {
	stmts := make([]*ast.Node, 0, 5000)
	stmts = append(stmts, varDecl(1, "a"))
	for i := range 5000 {
		stmts = append(stmts, assign(i+2, ref(i+2, "a"), num(i+2, i)))
	}
	stmts = append(stmts, ret(6000, ref(6000, "a")))
	_, bag := analyze(t, program(mainFn(1, stmts...)), Options{MaxTreeDepth: 8})
	expectCodes(t, bag)
}

func TestBuiltinsAndEntryAreConfigurable(t *testing.T) {
	root := program(
		mainFn(1, varDecl(2, "a"), assign(3, ref(3, "a"), call(3, "input")), ret(4, ref(4, "a"))),
	)
	_, bag := analyze(t, root, Options{Builtins: []Builtin{}, Entry: "start"})
	// The entry check closes the declaration pass, so it precedes type errors.
	expectCodes(t, bag, diag.SemaMissingEntryPoint, diag.SemaUndeclaredFunction, diag.SemaAssignVoid)
	if !strings.Contains(bag.Items()[0].Message, "'start'") {
		t.Fatalf("message = %q", bag.Items()[0].Message)
	}
}

func TestDeclareStartsFresh(t *testing.T) {
	root := program(varDecl(1, "x"), mainFn(2, ret(2, num(2, 0))))
	c := NewContext(Options{})
	for range 2 {
		if err := c.Declare(root); err != nil {
			t.Fatal(err)
		}
	}
	if c.ScopeCount() != 3 || c.Table.Len() != 4 {
		t.Fatalf("ScopeCount = %d, Len = %d", c.ScopeCount(), c.Table.Len())
	}
}
