package lexer

import (
	"strconv"

	"liberty/internal/diag"
	"liberty/internal/token"
)

// Формы: 12, -3, 1.5, .5, 1.5e-3, 2e10.
// Точка должна быть продолжена цифрой; 'e' без цифр за ним в число не входит.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.cursor.Eat('-')
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "digit is expected after '.'")
		}
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		n1 := lx.cursor.PeekAt(1)
		n2 := lx.cursor.PeekAt(2)
		if isDec(n1) || ((n1 == '+' || n1 == '-') && isDec(n2)) {
			lx.cursor.Bump()
			if !isDec(n1) {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			kind = token.FloatLit
		}
	}

	text := lx.cursor.TextFrom(start)
	tok := token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: text}
	if kind == token.IntLit {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return lx.badNumber(start, "integer literal out of range")
		}
		tok.Int = v
		return tok
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lx.badNumber(start, "float literal out of range")
	}
	tok.Float = v
	return tok
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}
