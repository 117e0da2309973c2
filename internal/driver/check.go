// Package driver runs the load, parse (or decode), declare and check
// steps over one or many inputs.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/lexer"
	"cminus/internal/observ"
	"cminus/internal/parser"
	"cminus/internal/sema"
	"cminus/internal/source"
)

// Options configure a check. Sema.Reporter is ignored: every file gets a
// reporter feeding its own Bag.
type Options struct {
	Sema            sema.Options
	MaxDiagnostics  int
	MaxSyntaxErrors uint
	MaxNesting      int
	Jobs            int
	Progress        ProgressSink
}

// FileResult is the outcome of checking one input.
type FileResult struct {
	Path   string
	Source *source.File // nil for tree files
	Bag    *diag.Bag
	Tree   *ast.Node
	Sema   *sema.Result // nil when analysis did not run
	Timing observ.Report
	// Err is a failure that stopped the file: I/O, a malformed tree or a
	// resource limit. Set by CheckFiles; CheckFile returns it instead.
	Err error
}

// Analyzed reports whether both passes ran to completion.
func (r *FileResult) Analyzed() bool { return r.Sema != nil }

// CheckFile checks a single input.
func CheckFile(ctx context.Context, path string, opts Options) (*source.FileSet, FileResult, error) {
	fileSet := source.NewFileSet()
	in := load(fileSet, path)
	res, err := check(ctx, in, opts)
	return fileSet, res, err
}

// CheckSource checks program text held in memory.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (FileResult, error) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	return check(ctx, loaded{path: name, file: fileSet.Get(id)}, opts)
}

// ParseOnly lexes and parses path without analysis.
func ParseOnly(path string, opts Options) (FileResult, error) {
	fileSet := source.NewFileSet()
	in := load(fileSet, path)
	res := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	if in.err != nil {
		return res, fmt.Errorf("%s: %w", path, in.err)
	}
	if in.isTree() {
		return res, fmt.Errorf("%s: already a tree file", path)
	}
	res.Source = in.file
	res.Tree = parse(in.file, res.Bag, opts)
	return res, nil
}

func check(ctx context.Context, in loaded, opts Options) (FileResult, error) {
	res := FileResult{Path: in.path, Source: in.file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	timer := observ.NewTimer()

	fail := func(stage Stage, err error) (FileResult, error) {
		emit(opts.Progress, Event{File: in.path, Stage: stage, Status: StatusError, Err: err})
		res.Timing = timer.Report()
		return res, err
	}

	if in.err != nil {
		return fail(StageLoad, fmt.Errorf("%s: %w", in.path, in.err))
	}
	if err := ctx.Err(); err != nil {
		return fail(StageLoad, err)
	}

	if in.isTree() {
		emit(opts.Progress, Event{File: in.path, Stage: StageDecode, Status: StatusWorking})
		idx := timer.Begin("decode")
		doc, err := ast.Decode(bytes.NewReader(in.raw))
		timer.End(idx, "")
		if err != nil {
			return fail(StageDecode, fmt.Errorf("%s: %w", in.path, err))
		}
		res.Tree = doc.Root
	} else {
		emit(opts.Progress, Event{File: in.path, Stage: StageParse, Status: StatusWorking})
		idx := timer.Begin("parse")
		res.Tree = parse(in.file, res.Bag, opts)
		timer.End(idx, "")
		if res.Bag.HasErrors() {
			timer.End(timer.Begin("analyze"), "skipped: syntax errors")
			res.Timing = timer.Report()
			emit(opts.Progress, Event{File: in.path, Stage: StageParse, Status: StatusDone})
			return res, nil
		}
	}

	semaOpts := opts.Sema
	semaOpts.Reporter = diag.BagReporter{Bag: res.Bag}
	c := sema.NewContext(semaOpts)

	emit(opts.Progress, Event{File: in.path, Stage: StageDeclare, Status: StatusWorking})
	start := time.Now()
	idx := timer.Begin("declare")
	err := c.Declare(res.Tree)
	timer.End(idx, fmt.Sprintf("%d symbols, %d scopes", c.Table.Len(), c.ScopeCount()))
	if err != nil {
		return fail(StageDeclare, fmt.Errorf("%s: declaration pass: %w", in.path, err))
	}

	emit(opts.Progress, Event{File: in.path, Stage: StageCheck, Status: StatusWorking})
	idx = timer.Begin("check")
	err = c.Check(res.Tree)
	timer.End(idx, "")
	if err != nil {
		return fail(StageCheck, fmt.Errorf("%s: type-check pass: %w", in.path, err))
	}
	res.Bag.Sort()
	res.Sema = c.Result(res.Tree)
	res.Timing = timer.Report()
	emit(opts.Progress, Event{File: in.path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(start)})
	return res, nil
}

func parse(file *source.File, bag *diag.Bag, opts Options) *ast.Node {
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	result := parser.ParseFile(lx, parser.Options{
		MaxErrors:  opts.MaxSyntaxErrors,
		MaxNesting: opts.MaxNesting,
		Reporter:   reporter,
	})
	return result.Root
}

// failureCode maps a per-file error to the diagnostic recorded for it.
func failureCode(err error) (diag.Code, bool) {
	switch {
	case errors.Is(err, ast.ErrMalformed), errors.Is(err, ast.ErrSchema):
		return diag.IODecodeTreeError, true
	case errors.Is(err, sema.ErrLimit), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0, false
	}
	return diag.IOLoadFileError, true
}
