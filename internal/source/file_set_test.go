package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("cells.lib", []byte("library (a) { }"), 0)
	id2 := fs.Add("cells.lib", []byte("library (b) { }"), 0)
	assert.NotEqual(t, id1, id2)

	latest, ok := fs.GetLatest("cells.lib")
	require.True(t, ok)
	assert.Equal(t, id2, latest)

	assert.Equal(t, "library (a) { }", string(fs.Get(id1).Content))
	assert.Equal(t, "library (b) { }", string(fs.Get(id2).Content))
	assert.Equal(t, 2, fs.Len())
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.lib", []byte("library (x) {\n  area : 1 ;\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 16, End: 20})
	assert.Equal(t, LineCol{Line: 2, Col: 3}, start)
	assert.Equal(t, LineCol{Line: 2, Col: 7}, end)

	// перевод строки принадлежит своей строке
	nl, _ := fs.Resolve(Span{File: id, Start: 13, End: 13})
	assert.Equal(t, LineCol{Line: 1, Col: 14}, nl)
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.lib", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	assert.Equal(t, "first", f.GetLine(1))
	assert.Equal(t, "second", f.GetLine(2))
	assert.Equal(t, "third", f.GetLine(3))
	assert.Equal(t, "", f.GetLine(4))
	assert.Equal(t, "", f.GetLine(0))
}

func TestLoadNormalizesNewlinesAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.lib")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\rc\n")...)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	f := fs.Get(id)
	assert.Equal(t, "a\nb\nc\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedNewlines)
	assert.Len(t, f.LineIdx, 3)
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "nope.lib"))
	require.Error(t, err)
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	require.NoError(t, os.MkdirAll(base, 0o755))

	inside, err := RelativePath(filepath.Join(base, "lib", "x.lib"), base)
	require.NoError(t, err)
	assert.Equal(t, "lib/x.lib", inside)

	outsideTarget := filepath.Join(tmp, "other", "y.lib")
	outside, err := RelativePath(outsideTarget, base)
	require.NoError(t, err)
	assert.Equal(t, normalizePath(outsideTarget), outside)
}

func TestFormatPathModes(t *testing.T) {
	fs := NewFileSetWithBase("/srv/libs")
	f := fs.Get(fs.AddVirtual("/srv/libs/std/cells.lib", nil))

	assert.Equal(t, "std/cells.lib", f.FormatPath(PathRelative, fs.BaseDir()))
	assert.Equal(t, "cells.lib", f.FormatPath(PathBase, ""))
	assert.Equal(t, "/srv/libs/std/cells.lib", f.FormatPath(PathAbsolute, ""))
	assert.Equal(t, "/srv/libs/std/cells.lib", f.FormatPath(PathAuto, ""))

	mode, err := ParsePathMode("basename")
	require.NoError(t, err)
	assert.Equal(t, PathBase, mode)
	assert.Equal(t, "basename", mode.String())
	_, err = ParsePathMode("short")
	assert.Error(t, err)
}

func TestLineBounds(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.lib", []byte("ab\ncd\n")))
	assert.Equal(t, uint32(3), f.LineStart(2))
	assert.Equal(t, uint32(6), f.LineEnd(2))
	assert.Equal(t, uint32(6), f.LineStart(9))
}
