package lexer

import (
	"liberty/internal/source"
	"liberty/internal/token"
)

// Lexer turns a Liberty file into tokens. Whether a digit-leading run is a
// number or a name depends on the mode the caller asks for: Next scans in
// number mode, NextSymbol in symbol mode.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token // 1 элементный буфер для токена
	lookSym bool         // режим, в котором был прочитан look
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий токен в обычном режиме.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token { return lx.next(false) }

// NextSymbol returns the next token in symbol mode: digits and '.' are
// symbol characters, so "1ns" or "0A" come back as names.
func (lx *Lexer) NextSymbol() token.Token { return lx.next(true) }

// Peek возвращает следующий токен (обычный режим), не потребляя его.
func (lx *Lexer) Peek() token.Token { return lx.peek(false) }

// PeekSymbol is Peek in symbol mode.
func (lx *Lexer) PeekSymbol() token.Token { return lx.peek(true) }

func (lx *Lexer) peek(sym bool) token.Token {
	t := lx.next(sym)
	lx.look = &t
	lx.lookSym = sym
	return t
}

func (lx *Lexer) next(sym bool) token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		if lx.lookSym == sym || !modeSensitive(tok) {
			return tok
		}
		// прочитан в другом режиме — сканируем заново
		lx.cursor.Reset(Mark(tok.Span.Start))
	}
	return lx.scan(sym)
}

// modeSensitive reports whether rescanning tok in the other mode could
// produce a different token.
func modeSensitive(tok token.Token) bool {
	switch tok.Kind {
	case token.Name:
		return !tok.Quoted
	case token.IntLit, token.FloatLit, token.Invalid, token.Minus:
		return true
	}
	return false
}

func (lx *Lexer) scan(sym bool) token.Token {
	for {
		lx.skipBlanks()
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '\n' || ch == '\r':
			return lx.scanNewline()

		case ch == '\\':
			// '\' + перевод строки — продолжение строки,
			// одиночный '\' просто пропускается
			lx.cursor.Bump()
			if next := lx.cursor.Peek(); next == '\n' || next == '\r' {
				lx.scanNewline()
			}
			continue

		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			lx.skipLineComment()
			continue

		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			if bad, ok := lx.skipBlockComment(); !ok {
				return bad
			}
			continue

		case ch == '"':
			return lx.scanString()

		case ch == '-' && isDec(lx.cursor.PeekAt(1)) && !sym:
			return lx.scanNumber()

		case isDec(ch) || ch == '.':
			if sym {
				return lx.scanName(true)
			}
			if ch == '.' && !isDec(lx.cursor.PeekAt(1)) {
				return lx.scanUnknown()
			}
			return lx.scanNumber()

		case isSymbolStart(ch):
			return lx.scanName(sym)

		case ch == '-' && sym && isDec(lx.cursor.PeekAt(1)):
			return lx.scanNegativeSymbol()
		}

		if tok, ok := lx.scanPunct(); ok {
			return tok
		}
		return lx.scanUnknown()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
