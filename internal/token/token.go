package token

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"liberty/internal/source"
)

// Token represents a single token with its location and payload.
type Token struct {
	Kind   Kind
	Span   source.Span
	Text   string
	Quoted bool // Name came from a "..." string
	Int    int64
	Float  float64

	// Offsets[i] is the file offset of Text[i]. It is set only for quoted
	// names whose escapes or line continuations broke the byte-for-byte
	// match; nil means Text[i] sits at the payload start plus i.
	Offsets []uint32
}

// IsNumber reports whether the token is an int or float literal.
func (t Token) IsNumber() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}

// Number returns the numeric payload as float64. Ints are widened.
func (t Token) Number() float64 {
	if t.Kind == IntLit {
		return float64(t.Int)
	}
	return t.Float
}

// IsEnd reports whether the token may end a statement.
func (t Token) IsEnd() bool {
	return t.Kind == NL || t.Kind == EOF
}

// String renders the token for the tokenize dump.
func (t Token) String() string {
	switch t.Kind {
	case Name:
		if t.Quoted {
			return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
		}
		return t.Kind.String() + "(" + t.Text + ")"
	case IntLit, FloatLit, Invalid:
		return t.Kind.String() + "(" + t.Text + ")"
	default:
		return t.Kind.String()
	}
}

// PayloadSpan maps the Text bytes [from, to) back to the source. Offsets
// past the end of Text land on the closing quote.
func (t Token) PayloadSpan(from, to int) source.Span {
	base, limit := t.Span.Start, t.Span.End
	if t.Quoted && limit > base {
		base++
		limit--
	}
	at := func(i int) uint32 {
		switch {
		case i >= len(t.Text):
			return limit
		case t.Offsets != nil:
			return t.Offsets[i]
		}
		n, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("payload offset overflow: %w", err))
		}
		return min(base+n, limit)
	}
	sp := source.Span{File: t.Span.File, Start: at(from), End: at(from)}
	if to > from {
		sp.End = min(at(to-1)+1, limit)
	}
	return sp
}
