package diagfmt

import (
	"encoding/json"
	"io"

	"cminus/internal/diag"
	"cminus/internal/symbols"
)

// LocationJSON is a position in a checked file. Line 0 means the whole file.
type LocationJSON struct {
	File string `json:"file"`
	Line int    `json:"line,omitempty"`
}

// NoteJSON is a secondary message attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is a diagnostic in JSON form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// SymbolJSON is one symbol table entry.
type SymbolJSON struct {
	Name     string   `json:"name"`
	Scope    int32    `json:"scope"`
	Kind     string   `json:"kind"`
	Type     string   `json:"type"`
	Location int      `json:"location"`
	Line     int      `json:"line"`
	Params   []string `json:"params,omitempty"`
}

// FileJSON groups the results for one input.
type FileJSON struct {
	File        string           `json:"file"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
	Symbols     []SymbolJSON     `json:"symbols,omitempty"`
	// Error is a failure that stopped the file, set by the caller.
	Error string `json:"error,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Files []FileJSON `json:"files"`
	Count int        `json:"count"`
}

// BuildFileOutput converts one file's bag (and, with opts.IncludeSymbols,
// its symbol table) into the JSON structure.
func BuildFileOutput(bag *diag.Bag, in Input, table *symbols.Table, opts JSONOpts) FileJSON {
	path := in.display(opts.PathMode, opts.BaseDir)
	out := FileJSON{File: path, Diagnostics: []DiagnosticJSON{}}
	if bag != nil {
		items := bag.Items()
		if opts.Max > 0 && len(items) > opts.Max {
			out.Dropped = len(items) - opts.Max
			items = items[:opts.Max]
		}
		out.Dropped += bag.Dropped()
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Category: d.Category().String(),
				Message:  d.Message,
				Location: LocationJSON{File: path, Line: d.Line},
			}
			if opts.IncludeNotes && len(d.Notes) > 0 {
				dj.Notes = make([]NoteJSON, len(d.Notes))
				for i, n := range d.Notes {
					dj.Notes[i] = NoteJSON{Message: n.Msg, Location: LocationJSON{File: path, Line: n.Line}}
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)
	if opts.IncludeSymbols && table != nil {
		out.Symbols = buildSymbols(table)
	}
	return out
}

func buildSymbols(table *symbols.Table) []SymbolJSON {
	entries := table.Entries()
	out := make([]SymbolJSON, 0, len(entries))
	for _, e := range entries {
		sj := SymbolJSON{
			Name:     e.Name,
			Scope:    int32(e.Scope),
			Kind:     e.Kind.String(),
			Type:     e.Type.String(),
			Location: e.Location,
			Line:     e.DeclLine,
		}
		for _, p := range e.Params {
			sj.Params = append(sj.Params, p.String())
		}
		out = append(out, sj)
	}
	return out
}

// JSON writes the files as one indented document.
func JSON(w io.Writer, files []FileJSON) error {
	output := DiagnosticsOutput{Files: files}
	if output.Files == nil {
		output.Files = []FileJSON{}
	}
	for _, f := range files {
		output.Count += f.Count
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
