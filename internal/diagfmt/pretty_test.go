package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/diag"
	"liberty/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/lib")
	content := []byte("library (L) {\n  area : 1.5\n  cell (C) { }\n}\n")
	id := fs.AddVirtual("/home/user/lib/cells/std.lib", content)

	bag := diag.NewBag(10)
	// "1.5" во второй строке: смещения 23..26
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: id, Start: 23, End: 26},
		"syntax error: ';' is expected").
		WithNote(source.Span{File: id, Start: 0, End: 7}, "library group opened here").
		WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: id, Start: 26, End: 26}, NewText: ";"}))
	return bag, fs
}

func TestPathModes(t *testing.T) {
	bag, fs := sampleBag(t)

	tests := []struct {
		name     string
		mode     source.PathMode
		contains string
	}{
		{name: "absolute", mode: source.PathAbsolute, contains: "/home/user/lib/cells/std.lib:2:10"},
		{name: "relative", mode: source.PathRelative, contains: "cells/std.lib:2:10"},
		{name: "basename", mode: source.PathBase, contains: "std.lib:2:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			assert.Contains(t, out, tt.contains)
			assert.Contains(t, out, "ERROR")
			assert.Contains(t, out, "SYN2004")
			assert.Contains(t, out, "';' is expected")
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: source.PathBase})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2 |   area : 1.5", lines[1])
	// подчёркивание стоит под "1.5"
	assert.Equal(t, "  |          ^~~", lines[2])
	assert.NotContains(t, buf.String(), "\x1b[", "no colour unless asked")
}

func TestPrettyContextNotesFixes(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:  source.PathBase,
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	})
	out := buf.String()
	assert.Contains(t, out, "1 | library (L) {")
	assert.Contains(t, out, "3 |   cell (C) { }")
	assert.Contains(t, out, "= note: std.lib:1:1: library group opened here")
	assert.Contains(t, out, "= fix: insert ';'")
	assert.Contains(t, out, "    -   area : 1.5\n")
	assert.Contains(t, out, "    +   area : 1.5;\n")
}

func TestPrettyColor(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true, PathMode: source.PathBase})
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "名前" занимает 4 колонки, но 6 байт
	content := []byte("cell (名前) { x }\n")
	id := fs.AddVirtual("w.lib", content)
	start := uint32(strings.Index(string(content), "x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnknownAttribute, source.Span{File: id, Start: start, End: start + 1}, "unknown"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: source.PathBase})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  |               ^", lines[2])
}

func TestPrettyMax(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.NewError(diag.SynExpectName, source.Span{File: 0, Start: 0, End: 1}, "second"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Max: 1})
	assert.NotContains(t, buf.String(), "second")
}

func TestSummary(t *testing.T) {
	bag, _ := sampleBag(t)
	bag.Add(diag.New(diag.SevWarning, diag.SynTrailingContent, source.Span{}, "trailing"))
	assert.Equal(t, "1 error, 1 warning", Summary(bag))
	assert.Equal(t, "0 errors, 0 warnings", Summary(diag.NewBag(0)))
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	require.NoError(t, Short(&buf, bag, fs, true))
	assert.Equal(t,
		"note SYN2004 cells/std.lib:1:1 library group opened here\n"+
			"error SYN2004 cells/std.lib:2:10 syntax error: ';' is expected\n",
		buf.String())
}
