package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.cm", []byte("int x;"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.cm", []byte("int y;"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.cm")
	if !exists || latestID != id2 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}
	if string(fs.Get(id1).Content) != "int x;" {
		t.Errorf("first file content changed: %q", fs.Get(id1).Content)
	}
}

func TestLineResolution(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.cm", []byte("int x;\nvoid f(void)\n{ }\n"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{4, 1, 5},
		{6, 1, 7}, // the newline itself belongs to line 1
		{7, 2, 1},
		{12, 2, 6},
		{20, 3, 1},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
		if got := f.LineOf(tt.off); got != tt.line {
			t.Errorf("LineOf(%d) = %d, want %d", tt.off, got, tt.line)
		}
	}

	if got := f.GetLine(2); got != "void f(void)" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	in := []byte("\xEF\xBB\xBFa\r\nb\r")
	stripped, hadBOM := removeBOM(in)
	if !hadBOM {
		t.Fatalf("expected BOM to be detected")
	}
	out, changed := normalizeCRLF(stripped)
	if !changed || string(out) != "a\nb\r" {
		t.Fatalf("normalizeCRLF = %q (changed=%v)", out, changed)
	}
}

func TestFormatPathVirtual(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem/prog.cm", []byte("int x;")))
	if !f.Virtual() {
		t.Fatal("AddVirtual did not mark the file virtual")
	}
	if got := f.FormatPath("absolute", ""); got != "mem/prog.cm" {
		t.Fatalf("absolute path of a virtual file = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "prog.cm" {
		t.Fatalf("basename = %q", got)
	}
}
