package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cminus/internal/ast"
	"cminus/internal/diag"
)

func writeTree(t *testing.T, path, src string) {
	t.Helper()
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "tree.cm")
	writeFile(t, srcPath, src)
	res, err := ParseOnly(srcPath, Options{})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := ast.Encode(f, &ast.Document{Source: srcPath, Root: res.Tree}); err != nil {
		t.Fatal(err)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.cm")
	arity := filepath.Join(dir, "b.cm")
	tree := filepath.Join(dir, "c.cmt")
	broken := filepath.Join(dir, "d.cmt")
	writeFile(t, good, "int main(void) { return input(); }")
	writeFile(t, arity, "int f(int a) { return a; }\nint main(void) { f(); }")
	writeTree(t, tree, "void g(void) {} int main(void) { g(); return 0; }")
	if err := os.WriteFile(broken, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	paths, err := ListFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{good, arity, tree, broken}
	if len(paths) != len(want) {
		t.Fatalf("ListFiles = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("ListFiles[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	sink := &recordingSink{}
	_, results, err := CheckFiles(context.Background(), paths, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d", len(results))
	}

	if r := results[0]; r.Err != nil || r.Bag.Len() != 0 || !r.Analyzed() {
		t.Fatalf("a.cm: err=%v diags=%v", r.Err, r.Bag.Items())
	}
	if r := results[1]; r.Bag.Count(diag.SemaArityMismatch) != 1 {
		t.Fatalf("b.cm: diags=%v", r.Bag.Items())
	}
	if r := results[2]; r.Err != nil || r.Bag.Len() != 0 || r.Source != nil || !r.Analyzed() {
		t.Fatalf("c.cmt: err=%v diags=%v", r.Err, r.Bag.Items())
	}
	r := results[3]
	if !errors.Is(r.Err, ast.ErrMalformed) || r.Bag.Count(diag.IODecodeTreeError) != 1 {
		t.Fatalf("d.cmt: err=%v diags=%v", r.Err, r.Bag.Items())
	}

	for i, p := range paths {
		ev, ok := sink.last(p)
		if !ok {
			t.Fatalf("no events for %s", p)
		}
		wantStatus := StatusDone
		if i == 3 {
			wantStatus = StatusError
		}
		if ev.Status != wantStatus {
			t.Fatalf("%s last event = %+v, want %s", p, ev, wantStatus)
		}
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cm")
	_, results, err := CheckFiles(context.Background(), []string{missing}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := results[0]
	if !errors.Is(r.Err, os.ErrNotExist) || r.Bag.Count(diag.IOLoadFileError) != 1 {
		t.Fatalf("err=%v diags=%v", r.Err, r.Bag.Items())
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cm")
	writeFile(t, path, "int main(void) { return 0; }")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := CheckFiles(ctx, []string{path}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestListFilesRejectsMissing(t *testing.T) {
	if _, err := ListFiles([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected an error for a missing argument")
	}
}
