package diag

import (
	"fmt"

	"liberty/internal/source"
)

// ParseError is the error form of a failed parse. It carries the first
// error diagnostic and unwraps to its category sentinel.
type ParseError struct {
	Path    string
	Pos     source.LineCol
	Code    Code
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Pos.Line, e.Pos.Col, e.Code.ID(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code.ID(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

func (e *ParseError) Unwrap() error { return e.Code.Category().Err() }

// Category returns the failure class.
func (e *ParseError) Category() Category { return e.Code.Category() }

// FirstError builds a *ParseError from the first error in bag.
// Returns nil when the bag holds no errors.
func FirstError(bag *Bag, fs *source.FileSet) *ParseError {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		if d.Severity < SevError {
			continue
		}
		pe := &ParseError{Code: d.Code, Message: d.Message}
		if fs != nil && d.Code.Category() != CatIO && int(d.Primary.File) < fs.Len() {
			f := fs.Get(d.Primary.File)
			pe.Path = f.Path
			pe.Pos, _ = fs.Resolve(d.Primary)
		}
		return pe
	}
	return nil
}
