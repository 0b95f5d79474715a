package diag

import "errors"

// Category classifies a Code by how the caller should read the failure.
type Category uint8

const (
	CatUnknown Category = iota
	// CatLex: a character the scanner cannot place.
	CatLex
	// CatTokenMismatch: expected punctuation or token kind not found.
	CatTokenMismatch
	// CatTypeMismatch: a value of the wrong kind for its attribute.
	CatTypeMismatch
	// CatStructural: bad separators, unknown names in a strict group, bad group values.
	CatStructural
	// CatExpression: malformed Boolean function text.
	CatExpression
	// CatIO: the file could not be read.
	CatIO
)

// Category sentinels; *ParseError unwraps to one of these.
var (
	ErrLex           = errors.New("lexical error")
	ErrTokenMismatch = errors.New("token mismatch")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrStructural    = errors.New("structural error")
	ErrExpression    = errors.New("expression syntax error")
	ErrIO            = errors.New("i/o error")
	ErrUnknown       = errors.New("parse error")
)

// Category returns the class of the code.
func (c Code) Category() Category {
	switch {
	case c >= 1000 && c < 2000:
		return CatLex
	case c >= 2000 && c < 2100:
		return CatTokenMismatch
	case c >= 2100 && c < 2200:
		return CatStructural
	case c >= 2200 && c < 2300:
		return CatTypeMismatch
	case c >= 2300 && c < 2400:
		return CatExpression
	case c >= 4000 && c < 5000:
		return CatIO
	}
	return CatUnknown
}

func (c Category) String() string {
	switch c {
	case CatLex:
		return "DOTLIB_LEX"
	case CatTokenMismatch:
		return "DOTLIB_PARSER"
	case CatTypeMismatch:
		return "DOTLIB_TYPE"
	case CatStructural:
		return "DOTLIB_STRUCT"
	case CatExpression:
		return "DOTLIB_FUNC"
	case CatIO:
		return "DOTLIB_IO"
	}
	return "DOTLIB_UNKNOWN"
}

// Err returns the sentinel for the category.
func (c Category) Err() error {
	switch c {
	case CatLex:
		return ErrLex
	case CatTokenMismatch:
		return ErrTokenMismatch
	case CatTypeMismatch:
		return ErrTypeMismatch
	case CatStructural:
		return ErrStructural
	case CatExpression:
		return ErrExpression
	case CatIO:
		return ErrIO
	}
	return ErrUnknown
}
