package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"liberty/internal/source"
)

// Cursor walks the bytes of one file. All reads past the end return 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // граница Off, не включая
}

func NewCursor(f *source.File) Cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s is too large to scan: %w", f.Path, err))
	}
	return Cursor{File: f, Limit: n}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes and returns one byte.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Rune decodes the rune at the cursor; size is 0 at the end. Invalid
// UTF-8 yields utf8.RuneError of size 1.
func (c *Cursor) Rune() (r rune, size int) {
	switch {
	case c.EOF():
		return utf8.RuneError, 0
	case c.Peek() < utf8.RuneSelf:
		return rune(c.Peek()), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// BumpRune consumes the rune at the cursor.
func (c *Cursor) BumpRune() {
	_, size := c.Rune()
	c.Off += uint32(size) //nolint:gosec // size <= utf8.UTFMax
}

// Mark remembers a position for SpanFrom, TextFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m:c.Off])
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// классы байтов имён
func isSymbolStart(b byte) bool {
	return b == '_' || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }
