package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bssc/internal/diag"
	"bssc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	}
	return p.info(sev.String())
}

// Pretty prints every diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined ^~~~ and, when
// requested, the notes in the same location format.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f, ok := fileOf(fs, d.Primary.File)
		if !ok {
			fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity), pal.code(d.Code.ID()), d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(f, fs, opts.PathMode), start.Line, start.Col,
			pal.severity(d.Severity), pal.code(d.Code.ID()), d.Message)
		writeContext(w, f, d.Primary, opts.Context, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf, ok := fileOf(fs, n.Span.File)
			if !ok {
				fmt.Fprintf(w, "  %s %s\n", pal.note("note:"), n.Msg)
				continue
			}
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note("note:"),
				displayPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (limit %d)\n", dropped, bag.Cap())
	}
}

// writeContext prints up to context lines before the primary line, the
// line itself and a caret row aligned by display width.
func writeContext(w io.Writer, f *source.File, sp source.Span, context int8, pal palette) {
	start := f.Position(sp.Start)
	end := f.Position(sp.End)
	if start.Line == 0 {
		return
	}
	first := start.Line
	for i := int8(0); i < context && first > 1; i++ {
		first--
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter(fmt.Sprintf("%*d", gutterWidth, ln)), pal.gutter("|"), text)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	prefix := runewidth.StringWidth(expandTabs(line[:col]))

	width := 1
	if end.Line == start.Line && int(end.Col)-1 > col {
		stop := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutterWidth), pal.gutter("|"),
		strings.Repeat(" ", prefix), pal.caret(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
