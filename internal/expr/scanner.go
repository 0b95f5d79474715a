package expr

import (
	"fmt"
	"strconv"

	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
)

// scanner tokenizes the text of one function value.
type scanner struct {
	text   string
	pos    int
	src    token.Token // носитель текста; по нему считаются позиции в файле
	report diag.Reporter
	look   *token.Token // буфер на один токен
}

func newScanner(src token.Token, r diag.Reporter) *scanner {
	return &scanner{text: src.Text, src: src, report: r}
}

func (s *scanner) span(start, end int) source.Span {
	return s.src.PayloadSpan(start, end)
}

// unread pushes tok back; the next call to next returns it.
func (s *scanner) unread(tok token.Token) {
	s.look = &tok
}

func (s *scanner) peek() token.Token {
	tok := s.next()
	s.unread(tok)
	return tok
}

func (s *scanner) next() token.Token {
	if s.look != nil {
		tok := *s.look
		s.look = nil
		return tok
	}

	for s.pos < len(s.text) {
		switch s.text[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
			continue
		}
		break
	}
	if s.pos >= len(s.text) {
		return token.Token{Kind: token.EOF, Span: s.span(s.pos, s.pos)}
	}

	start := s.pos
	ch := s.text[s.pos]
	if k, ok := opKinds[ch]; ok {
		s.pos++
		return token.Token{Kind: k, Span: s.span(start, s.pos), Text: s.text[start:s.pos]}
	}

	switch {
	case isDigit(ch):
		for s.pos < len(s.text) && isDigit(s.text[s.pos]) {
			s.pos++
		}
		text := s.text[start:s.pos]
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			v = -1 // переполнение: всё равно не 0 и не 1
		}
		return token.Token{Kind: token.IntLit, Span: s.span(start, s.pos), Text: text, Int: v}

	case isNameStart(ch):
		for s.pos < len(s.text) && isNameChar(s.text[s.pos]) {
			s.pos++
		}
		return token.Token{Kind: token.Name, Span: s.span(start, s.pos), Text: s.text[start:s.pos]}
	}

	s.pos++
	sp := s.span(start, s.pos)
	if s.report != nil {
		diag.ReportError(s.report, diag.ExprUnknownChar, sp,
			fmt.Sprintf("syntax error: unexpected character %q in function", ch)).Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(ch)}
}

var opKinds = map[byte]token.Kind{
	'!':  token.Not,
	'\'': token.Prime,
	'&':  token.And,
	'*':  token.And,
	'|':  token.Or,
	'+':  token.Or,
	'^':  token.Xor,
	'(':  token.LParen,
	')':  token.RParen,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Bus bits and hierarchical pin names: A[0], u1.Q
func isNameChar(b byte) bool {
	return isNameStart(b) || isDigit(b) || b == '[' || b == ']' || b == '.'
}
