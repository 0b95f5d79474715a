package lexer

import (
	"fmt"

	"liberty/internal/diag"
	"liberty/internal/token"
)

var punct = [256]token.Kind{
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanPunct() (token.Token, bool) {
	k := punct[lx.cursor.Peek()]
	if k == token.Invalid {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}, true
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.cursor.Rune()
	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("syntax error: unexpected character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}
