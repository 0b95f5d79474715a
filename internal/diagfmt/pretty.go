package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"liberty/internal/diag"
	"liberty/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.fix} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	loc := location(fs, d.Primary, opts.PathMode)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		loc,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if f := fs.Get(d.Primary.File); f != nil && len(f.Content) > 0 {
		snippet(w, f, d.Primary, opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("= note:"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("= fix:"), fx.Title)
			for _, edit := range fx.Edits {
				before, after, err := editPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range before {
					fmt.Fprintf(w, "    - %s\n", expandTabs(line))
				}
				for _, line := range after {
					fmt.Fprintf(w, "    %s\n", pal.fix.Sprint("+ "+expandTabs(line)))
				}
			}
		}
	}
}

// location renders path:line:col for sp, or just the path when the span
// does not point into a loaded file.
func location(fs *source.FileSet, sp source.Span, mode source.PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	path := f.FormatPath(mode, fs.BaseDir())
	if len(f.Content) == 0 && sp.Start == 0 {
		return path
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// snippet prints the primary line with Context lines around it and a
// caret line under the span.
func snippet(w io.Writer, f *source.File, sp source.Span, opts PrettyOpts, pal palette) {
	start := f.LineCol(sp.Start)
	end := f.LineCol(sp.End)

	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := max(min(start.Line+ctx, lastLine(f)), start.Line)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		shown := expandTabs(text)
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), shown)

		if ln != start.Line {
			continue
		}
		col := int(start.Col) - 1
		col = min(max(col, 0), len(text))
		stop := len(text)
		if end.Line == start.Line {
			stop = min(max(int(end.Col)-1, col), len(text))
		}
		pad := runewidth.StringWidth(expandTabs(text[:col]))
		width := runewidth.StringWidth(expandTabs(text[col:stop]))
		underline := "^"
		if width > 1 {
			underline += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "%s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			pal.caret.Sprint(underline))
	}
}

func lastLine(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	if len(f.LineIdx) > 0 && int(f.LineIdx[len(f.LineIdx)-1]) == len(f.Content)-1 {
		n-- // файл кончается переводом строки
	}
	return n
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Summary renders the trailing "N errors, M warnings" line.
func Summary(bag *diag.Bag) string {
	if bag == nil {
		return ""
	}
	errs := bag.ErrorCount()
	warns := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			warns++
		}
	}
	return fmt.Sprintf("%d %s, %d %s", errs, plural(errs, "error"), warns, plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
