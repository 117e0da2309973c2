package diag

import (
	"testing"
)

func TestCodeIDAndCategory(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		cat  Category
	}{
		{LexUnknownChar, "LEX1001", CategoryLexical},
		{SynExpectSemicolon, "SYN2002", CategorySyntax},
		{SemaRedeclaredVariable, "SEM3001", CategoryRedeclaration},
		{SemaVarShadowsFunction, "SEM3004", CategoryRedeclaration},
		{SemaUndeclaredFunction, "SEM3011", CategoryUndeclaredUse},
		{SemaNotArray, "SEM3022", CategoryKindMismatch},
		{SemaArgumentType, "SEM3039", CategoryTypeMismatch},
		{SemaVoidParam, "SEM3006", CategoryTypeMismatch},
		{SemaArityMismatch, "SEM3050", CategoryArityMismatch},
		{SemaIgnoredReturn, "SEM3060", CategoryUnusedReturnValue},
		{SemaMissingEntryPoint, "SEM3070", CategoryMissingEntryPoint},
		{IODecodeTreeError, "IO4002", CategoryIO},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Category(); got != tt.cat {
			t.Errorf("%s.Category() = %s, want %s", tt.id, got, tt.cat)
		}
	}
	if UnknownCode.ID() != "E0000" {
		t.Fatalf("unknown code id = %q", UnknownCode.ID())
	}
}

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	Errorf(r, SemaArityMismatch, 3, "call %q: expected %d, got %d", "f", 1, 0)
	ReportWarning(r, SemaIgnoredReturn, 3, "ignored").Emit()
	Errorf(r, SemaArityMismatch, 4, "dropped")

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", bag.Dropped())
	}
	if bag.Count(SemaArityMismatch) != 1 {
		t.Fatalf("Count(arity) = %d", bag.Count(SemaArityMismatch))
	}
	if bag.CountCategory(CategoryUnusedReturnValue) != 1 {
		t.Fatalf("CountCategory(unused) = %d", bag.CountCategory(CategoryUnusedReturnValue))
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	if got := bag.Items()[0].Message; got != `call "f": expected 1, got 0` {
		t.Fatalf("message = %q", got)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaRedeclaredVariable, 7, "variable 'x' redeclared").
		WithNote(2, "first declared here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Line != 2 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(SemaUndeclaredVariable, SevError, 5, "variable 'y' was not declared", nil)
	}
	r.Report(SemaUndeclaredVariable, SevError, 6, "variable 'y' was not declared", nil)
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SemaAssignVoid, 9, "b"))
	bag.Add(New(SevWarning, SemaIgnoredReturn, 2, "a"))
	bag.Add(NewError(SemaArityMismatch, 2, "c"))
	bag.Sort()

	want := []Code{SemaArityMismatch, SemaIgnoredReturn, SemaAssignVoid}
	if bag.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", bag.Len(), len(want))
	}
	for i, code := range want {
		if bag.Items()[i].Code != code {
			t.Errorf("item %d = %s, want %s", i, bag.Items()[i].Code.ID(), code.ID())
		}
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaAssignVoid, 1, "a"))
	b := NewBag(1)
	b.Add(NewError(SemaArityMismatch, 2, "b"))
	b.Add(NewError(SemaArityMismatch, 3, "dropped"))

	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 2 || a.Dropped() != 1 {
		t.Fatalf("Len = %d, Dropped = %d, want 2 and 1", a.Len(), a.Dropped())
	}
	if a.Items()[1].Message != "b" {
		t.Fatalf("merged item = %+v", a.Items()[1])
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewError(SemaArityMismatch, 3, "call to 'f'\nexpects 1 argument(s), got 0").WithNote(1, "'f' declared here"),
		New(SevWarning, SemaIgnoredReturn, 3, "ignored"),
		NewError(SemaMissingEntryPoint, 0, "no 'main'"),
	}
	want := "error SEM3050 prog.cm:3 call to 'f' expects 1 argument(s), got 0\n" +
		"note SEM3050 prog.cm:1 'f' declared here\n" +
		"warning SEM3060 prog.cm:3 ignored\n" +
		"error SEM3070 prog.cm no 'main'"
	if got := FormatShort(diags, "prog.cm", true); got != want {
		t.Fatalf("FormatShort mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if got := FormatShort(nil, "prog.cm", true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
