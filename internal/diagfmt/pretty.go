package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vantalint/internal/diag"
	"vantalint/internal/source"
)

const tabWidth = 4

type palette struct {
	errorC, warnC, infoC *color.Color
	path, gutter, caret  *color.Color
	note, fix, added     *color.Color
	removed, dim         *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		errorC:  color.New(color.FgRed, color.Bold),
		warnC:   color.New(color.FgYellow, color.Bold),
		infoC:   color.New(color.FgCyan, color.Bold),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgGreen),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.errorC, p.warnC, p.infoC, p.path, p.gutter, p.caret, p.note, p.fix, p.added, p.removed, p.dim} {
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
		return p.errorC
	case diag.SevWarning:
		return p.warnC
	default:
		return p.infoC
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	start, end := fs.Resolve(d.Primary)

	header := fmt.Sprintf("%s %s: %s",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message)
	if opts.ShowRule && d.Rule != "" {
		header += " " + pal.dim.Sprintf("[%s]", d.Rule)
	}
	fmt.Fprintf(w, "%s: %s\n", pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), header)

	file := fs.Get(d.Primary.File)
	if len(file.Content) > 0 {
		writeSnippet(w, file, start, end, opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"),
				formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, f := range d.Fixes {
			writeFix(w, fs, i+1, f, opts, pal)
		}
	}
}

func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	if maxLine := uint32(len(file.LineIdx)) + 1; last > maxLine { // #nosec G115 -- bounded by FileSet.Add
		last = maxLine
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := file.GetLine(ln)
		if ln != start.Line && text == "" && ln == last {
			break
		}
		fmt.Fprintf(w, "%s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln),
			clip(expandTabs(text), opts.Width))
		if ln != start.Line {
			continue
		}
		fmt.Fprintf(w, "%s %s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			pal.caret.Sprint(caretLine(text, start, end)))
	}
}

// caretLine returns the "   ^~~~" marker for the span on the primary line.
// Columns are byte offsets; display widths come from runewidth so wide
// characters stay aligned.
func caretLine(text string, start, end source.LineCol) string {
	startCol := max(min(int(start.Col)-1, len(text)), 0)
	endCol := len(text)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(text))
	}
	pad := runewidth.StringWidth(expandTabs(text[:startCol]))
	width := 1
	if endCol > startCol {
		width = max(runewidth.StringWidth(expandTabs(text[startCol:endCol])), 1)
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func writeFix(w io.Writer, fs *source.FileSet, n int, f diag.Fix, opts PrettyOpts, pal palette) {
	title := fmt.Sprintf("fix #%d: %s", n, f.Title)
	meta := fmt.Sprintf("(%s, %s", f.Kind, f.Applicability)
	if f.IsPreferred {
		meta += ", preferred"
	}
	meta += ")"
	if f.ID != "" {
		meta += " id=" + f.ID
	}
	fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint(title), pal.dim.Sprint(meta))
	for _, e := range f.Edits {
		es, ee := fs.Resolve(e.Span)
		fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q\n",
			formatPath(fs, e.Span.File, opts.PathMode), es.Line, es.Col, ee.Line, ee.Col, e.NewText)
		if !opts.ShowPreview {
			continue
		}
		preview, err := buildFixEditPreview(fs, e)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, "    preview:")
		for _, line := range preview.before {
			fmt.Fprintf(w, "      %s\n", pal.removed.Sprint("- "+line))
		}
		for _, line := range preview.after {
			fmt.Fprintf(w, "      %s\n", pal.added.Sprint("+ "+line))
		}
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}

// Summary prints the closing "N problems" line. It prints nothing when
// there are no diagnostics.
func Summary(w io.Writer, bag *diag.Bag, fixable int, useColor bool) {
	total := bag.Len()
	if total == 0 {
		return
	}
	pal := newPalette(useColor)
	errs := bag.Count(diag.SevError)
	warns := bag.Count(diag.SevWarning) - errs
	infos := total - errs - warns

	c := pal.infoC
	switch {
	case errs > 0:
		c = pal.errorC
	case warns > 0:
		c = pal.warnC
	}
	line := fmt.Sprintf("%s (%s, %s, %s)",
		plural(total, "problem"), plural(errs, "error"), plural(warns, "warning"), plural(infos, "info"))
	fmt.Fprintln(w, c.Sprint(line))
	if fixable > 0 {
		fmt.Fprintf(w, "  %s potentially fixable with `vantalint fix`\n", plural(fixable, "problem"))
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "  %s not shown (limit reached)\n", plural(dropped, "diagnostic"))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	if word == "info" {
		return fmt.Sprintf("%d infos", n)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
