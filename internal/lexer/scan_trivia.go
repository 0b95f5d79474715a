package lexer

import (
	"liberty/internal/diag"
	"liberty/internal/token"
)

// skipBlanks пропускает пробелы и табы, но не переводы строк.
func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f', '\v':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// scanNewline reads \n, \r or \r\n as one NL token.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	return token.Token{Kind: token.NL, Span: lx.cursor.SpanFrom(start), Text: "\n"}
}

// skipLineComment stops before the line break so that NL is still produced.
func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() {
		if ch := lx.cursor.Peek(); ch == '\n' || ch == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return token.Token{}, true
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedBlockComment, sp, "unexpected end of file in comment")
	return token.Token{Kind: token.Invalid, Span: sp, Text: "/*"}, false
}
