package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"liberty/internal/diag"
	"liberty/internal/source"
)

// editPreview returns the lines touched by edit before and after applying
// it.
func editPreview(fs *source.FileSet, edit diag.FixEdit) (before, after []string, err error) {
	if fs == nil {
		return nil, nil, errors.New("no file set")
	}
	f := fs.Get(edit.Span.File)
	if f == nil {
		return nil, nil, fmt.Errorf("unknown file %d", edit.Span.File)
	}
	if edit.Span.End < edit.Span.Start || int(edit.Span.End) > len(f.Content) {
		return nil, nil, fmt.Errorf("edit %d..%d is outside %s", edit.Span.Start, edit.Span.End, f.Path)
	}

	from, to := fs.Resolve(edit.Span)
	lo := f.LineStart(from.Line)
	hi := max(f.LineEnd(max(to.Line, from.Line)), lo)

	block := string(f.Content[lo:hi])
	head := block[:edit.Span.Start-lo]
	tail := block[edit.Span.End-lo:]
	return previewLines(block), previewLines(head + edit.NewText + tail), nil
}

// previewLines splits text into lines; the final newline adds no line.
func previewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
