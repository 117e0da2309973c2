package main

import (
	"fmt"
	"io"

	"cminus/internal/config"
	"cminus/internal/diag"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/symbols"
)

type renderOptions struct {
	format   string
	color    bool
	notes    bool
	symbols  bool
	context  int
	pathMode diagfmt.PathMode
}

func input(r driver.FileResult) diagfmt.Input {
	return diagfmt.Input{Path: r.Path, Source: r.Source}
}

// renderResults writes every file's diagnostics in the chosen format.
// Per-file failures without a diagnostic of their own (resource limits)
// are printed as plain errors.
func renderResults(w io.Writer, results []driver.FileResult, opts renderOptions) error {
	switch opts.format {
	case config.FormatJSON:
		files := make([]diagfmt.FileJSON, 0, len(results))
		for _, r := range results {
			fj := diagfmt.BuildFileOutput(r.Bag, input(r), tableOf(r), diagfmt.JSONOpts{
				PathMode:       opts.pathMode,
				IncludeNotes:   opts.notes,
				IncludeSymbols: opts.symbols,
			})
			if r.Err != nil {
				fj.Error = r.Err.Error()
			}
			files = append(files, fj)
		}
		return diagfmt.JSON(w, files)

	case config.FormatShort:
		for _, r := range results {
			if r.Bag == nil {
				continue
			}
			if out := diag.FormatShort(r.Bag.Items(), r.Path, opts.notes); out != "" {
				fmt.Fprintln(w, out)
			}
			printFailure(w, r)
		}
		return nil

	default:
		for _, r := range results {
			if r.Bag == nil {
				continue
			}
			diagfmt.Pretty(w, r.Bag, input(r), diagfmt.PrettyOpts{
				Color:     opts.color,
				Context:   opts.context,
				PathMode:  opts.pathMode,
				ShowNotes: opts.notes,
			})
			printFailure(w, r)
		}
		return nil
	}
}

func printFailure(w io.Writer, r driver.FileResult) {
	if r.Err == nil {
		return
	}
	if failureRecorded(r) {
		return
	}
	fmt.Fprintf(w, "%s: fatal: %v\n", r.Path, r.Err)
}

// failureRecorded reports whether r.Err already appears as an IO diagnostic.
func failureRecorded(r driver.FileResult) bool {
	return r.Bag.CountCategory(diag.CategoryIO) > 0
}

func tableOf(r driver.FileResult) *symbols.Table {
	if r.Sema == nil {
		return nil
	}
	return r.Sema.Table
}

// failed reports whether any result carries an error.
func failed(results []driver.FileResult) bool {
	for _, r := range results {
		if r.Err != nil || (r.Bag != nil && r.Bag.HasErrors()) {
			return true
		}
	}
	return false
}
