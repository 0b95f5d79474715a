package diagfmt

import (
	"io"

	"liberty/internal/diag"
	"liberty/internal/source"
)

// Short пишет по одной строке на диагностику, отсортировано по позиции.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
