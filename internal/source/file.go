package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

type (
	// FileID is the index of a file in its FileSet.
	FileID uint32
	// FileFlags records what Load did to the bytes on disk.
	FileFlags uint8
)

const (
	FileVirtual            FileFlags = 1 << iota // добавлен из памяти (тест, stdin)
	FileHadBOM                                   // UTF-8 BOM срезан
	FileNormalizedNewlines                       // \r\n и одиночный \r свёрнуты в \n
)

// File is one library text. Content is immutable once added; spans index
// into it by byte offset.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n' по возрастанию
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts bytes, not runes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// LineCol converts a byte offset into a position.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return n
}

// LineStart returns the offset of the first byte of line, or the file size
// when the line does not exist.
func (f *File) LineStart(line uint32) uint32 {
	switch {
	case line <= 1:
		return 0
	case int(line-2) < len(f.LineIdx):
		return f.LineIdx[line-2] + 1
	}
	return f.size()
}

// LineEnd returns the offset just past the '\n' ending line, or the file
// size for the last line.
func (f *File) LineEnd(line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if int(line-1) < len(f.LineIdx) {
		return f.LineIdx[line-1] + 1
	}
	return f.size()
}

// GetLine returns line (1-based) without its newline; "" when out of range.
func (f *File) GetLine(line uint32) string {
	if line == 0 || int(line-1) > len(f.LineIdx) {
		return ""
	}
	start, end := f.LineStart(line), f.LineEnd(line)
	if end > start && int(line-1) < len(f.LineIdx) {
		end-- // сам '\n'
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// PathMode selects how FormatPath renders a file path.
type PathMode uint8

const (
	PathAuto PathMode = iota // короткие и относительные как есть, длинные абсолютные по basename
	PathAbsolute
	PathRelative
	PathBase
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

// ParsePathMode maps a flag value to a PathMode; "" is auto.
func ParsePathMode(s string) (PathMode, error) {
	if s == "" {
		return PathAuto, nil
	}
	for i, name := range pathModeNames {
		if s == name {
			return PathMode(i), nil
		}
	}
	return PathAuto, fmt.Errorf("invalid path mode %q (expected auto|absolute|relative|basename)", s)
}

// FormatPath renders f.Path for output. baseDir is the root of relative
// paths; empty means the working directory.
func (f *File) FormatPath(mode PathMode, baseDir string) string {
	switch mode {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBase:
		return BaseName(f.Path)
	case PathAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
