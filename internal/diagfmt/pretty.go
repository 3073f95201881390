package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"decaf/internal/diag"
	"decaf/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty печатает диагностики в виде
//
//	path:line:col: error SEM3110: message
//	   3 |     int x = 1 + true;
//	     |             ^~~~~~~~
//
// Ожидается, что bag уже отсортирован.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	tab := int(opts.TabWidth)
	if tab == 0 {
		tab = 4
	}
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		sev := strings.ToLower(d.Severity.String())
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(sev), pal.code.Sprint(d.Code.ID()), d.Message)
		writeSnippet(w, fs, d.Primary, uint32(opts.Context), tab, pal, pal.severity(d.Severity))

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			fmt.Fprintf(w, "   %s %s:%d:%d\n", pal.gutter.Sprint("-->"),
				displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col)
			writeSnippet(w, fs, n.Span, 0, tab, pal, pal.note)
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context uint32, tab int, pal palette, mark *color.Color) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	from := start.Line - min(context, start.Line-1)
	for n := from; n <= start.Line; n++ {
		fmt.Fprintf(w, " %s %s %s\n",
			pal.gutter.Sprint(fmt.Sprintf("%*d", gutterWidth, n)), pal.gutter.Sprint("|"), expandTabs(f.Line(n), tab))
	}

	line := f.Line(start.Line)
	lo := clampCol(start.Col, line)
	hi := len(line)
	if end.Line == start.Line {
		hi = max(clampCol(end.Col, line), lo)
	}
	pad := runewidth.StringWidth(expandTabs(line[:lo], tab))
	width := max(runewidth.StringWidth(expandTabs(line[lo:hi], tab)), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n",
		strings.Repeat(" ", gutterWidth), pal.gutter.Sprint("|"), strings.Repeat(" ", pad), mark.Sprint(underline))
}

// clampCol turns a 1-based byte column into an index into line.
func clampCol(col uint32, line string) int {
	return min(max(int(col)-1, 0), len(line))
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tab))
}

// Short prints one line per diagnostic: `path:line:col: severity CODE: message`.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", displayPath(fs, d.Primary.File, mode),
			start.Line, start.Col, strings.ToLower(d.Severity.String()), d.Code.ID(), d.Message)
	}
}
