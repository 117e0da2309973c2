package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"

	"cminus/internal/diag"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, note    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Faint),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders every diagnostic in bag as
//
//	<path>:<line>: <SEV> <CODE>: <message>
//
// followed by the source line (with opts.Context lines around it) and,
// when opts.ShowNotes is set, each note in the same layout. Diagnostics
// at line 0 concern the whole file and carry no source excerpt.
func Pretty(w io.Writer, bag *diag.Bag, in Input, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	path := in.display(opts.PathMode, opts.BaseDir)

	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s %s %s: %s\n",
			p.path.Sprint(location(path, d.Line)+":"),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		excerpt(w, in, d.Line, opts.Context, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note"), location(path, n.Line), n.Msg)
			excerpt(w, in, n.Line, 0, p)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "%s: %d more diagnostic(s) not shown\n", path, dropped)
	}
}

// Summary renders counts like "2 errors, 1 warning".
func Summary(bag *diag.Bag) string {
	if bag == nil {
		return "no diagnostics"
	}
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	errs += bag.Dropped()
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func location(path string, line int) string {
	if line <= 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, line)
}

func excerpt(w io.Writer, in Input, line, context int, p palette) {
	if in.Source == nil || line <= 0 {
		return
	}
	if context < 0 {
		context = 0
	}
	first := max(line-context, 1)
	last := line + context
	width := len(fmt.Sprint(last))
	for l := first; l <= last; l++ {
		n, err := safecast.Conv[uint32](l)
		if err != nil {
			return
		}
		text := in.Source.GetLine(n)
		if text == "" && l != line {
			continue
		}
		marker := " "
		if l == line {
			marker = ">"
		}
		gutter := fmt.Sprintf("%s %*d |", marker, width, l)
		fmt.Fprintf(w, "  %s %s\n", p.gutter.Sprint(gutter), strings.TrimRight(text, " \t"))
	}
}
