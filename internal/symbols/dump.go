package symbols

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var dumpColumns = []string{"Name", "Scope", "Kind", "Type", "Location", "Line", "Params"}

// DumpHeader returns the column header line of Dump.
func DumpHeader() string {
	return formatRow(dumpColumns)
}

// Dump writes every entry, grouped by hash bucket, as a fixed-width table.
func (t *Table) Dump(w io.Writer) error {
	return DumpEntries(w, t.Entries())
}

// DumpEntries writes entries in the given order in the layout of Dump.
func DumpEntries(w io.Writer, entries []*Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(DumpHeader())
	bw.WriteByte('\n')
	dashes := make([]string, len(dumpColumns))
	for i := range dashes {
		dashes[i] = strings.Repeat("-", columnWidth)
	}
	bw.WriteString(formatRow(dashes))
	bw.WriteByte('\n')
	for _, e := range entries {
		bw.WriteString(formatRow(EntryRow(e)))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// EntryRow renders e as the cells of one Dump row.
func EntryRow(e *Entry) []string {
	params := "-"
	if e.Kind == SymbolFunction {
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.String()
		}
		params = "(" + strings.Join(names, ", ") + ")"
	}
	return []string{
		e.Name,
		fmt.Sprint(e.Scope),
		e.Kind.String(),
		e.Type.String(),
		fmt.Sprint(e.Location),
		fmt.Sprint(e.DeclLine),
		params,
	}
}

const columnWidth = 13

func formatRow(cells []string) string {
	var b strings.Builder
	for i, c := range cells {
		if i == len(cells)-1 {
			b.WriteString(c)
			break
		}
		b.WriteString(runewidth.FillRight(runewidth.Truncate(c, columnWidth, "~"), columnWidth))
		b.WriteString("  ")
	}
	return strings.TrimRight(b.String(), " ")
}
