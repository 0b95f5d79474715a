package lexer

import (
	"strings"
	"unicode/utf8"

	"liberty/internal/diag"
	"liberty/internal/token"
)

func (lx *Lexer) scanName(sym bool) token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if isSymbolStart(ch) || isDec(ch) || (sym && ch == '.') {
			lx.cursor.Bump()
			continue
		}
		if ch >= utf8.RuneSelf {
			lx.cursor.BumpRune()
			continue
		}
		break
	}
	return token.Token{Kind: token.Name, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) scanNegativeSymbol() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '-'
	tok := lx.scanName(true)
	tok.Span = lx.cursor.SpanFrom(start)
	tok.Text = lx.cursor.TextFrom(start)
	return tok
}

// scanString reads "...". The payload drops the quotes; '\' takes the next
// byte literally and '\' + line break is a continuation.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'

	var b strings.Builder
	var offs []uint32 // заводим на первом экранировании, см. token.Offsets
	keep := func() {
		if offs != nil {
			offs = append(offs, lx.cursor.Off)
		}
		b.WriteByte(lx.cursor.Bump())
	}
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unexpected end of file in quoted string")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
		}
		ch := lx.cursor.Peek()
		switch ch {
		case '"':
			lx.cursor.Bump()
			return token.Token{
				Kind:    token.Name,
				Span:    lx.cursor.SpanFrom(start),
				Text:    b.String(),
				Quoted:  true,
				Offsets: offs,
			}
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexNewlineInString, sp, "unexpected newline in quoted string")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
		case '\\':
			if offs == nil {
				offs = make([]uint32, b.Len(), b.Len()+16)
				for i := range offs {
					offs[i] = uint32(start) + 1 + uint32(i) //nolint:gosec // i < string length
				}
			}
			lx.cursor.Bump()
			switch next := lx.cursor.Peek(); next {
			case '\n':
				lx.cursor.Bump()
			case '\r':
				lx.cursor.Bump()
				lx.cursor.Eat('\n')
			case 0:
				// EOF обработается на следующей итерации
			default:
				keep()
			}
		default:
			keep()
		}
	}
}
