package parser

import (
	"iter"
	"strconv"
	"strings"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/token"
)

// listShape — ограничение на список значений составного атрибута.
type listShape uint8

const (
	anyList     listShape = iota
	str1List              // ( name )
	unitList              // ( number, name )
	pwList                // ( int, float )
	defineList            // ( name, group, type )
	vectorList            // ( "v, v, ..." )
	vectorsList           // ( "v, ...", "v, ...", ... )
)

func (s listShape) vector() bool { return s == vectorList || s == vectorsList }

// complexHandler reads `name ( v, v, ... ) ;`.
type complexHandler struct {
	shape  listShape
	symbol bool
}

func (h complexHandler) Read(p *Parser, name token.Token) (ast.NodeID, bool) {
	open, ok := p.expect(token.LParen, diag.SynExpectLParen, false)
	if !ok {
		return ast.NoNodeID, false
	}
	list, ok := p.readList(open, h.symbol, h.shape.vector())
	if !ok || !h.check(p, name, list) {
		return ast.NoNodeID, false
	}
	if h.shape == defineList && !p.define(list) {
		return ast.NoNodeID, false
	}
	if !p.expectEnd() {
		return ast.NoNodeID, false
	}
	return list, true
}

// check проверяет форму уже прочитанного списка.
func (h complexHandler) check(p *Parser, name token.Token, list ast.NodeID) bool {
	m := p.m
	n := m.ListLen(list)
	shapeErr := func(want string) bool {
		p.errorf(diag.SynBadListShape, m.Span(list), "%s: %s is expected, got %s",
			name.Text, want, plural(n, "value", "values"))
		return false
	}
	wantString := func(pos int) bool {
		if e := m.ListElem(list, pos); !m.IsString(e) {
			p.errorf(diag.TypeExpectString, m.Span(e), "syntax error: string value is expected")
			return false
		}
		return true
	}

	switch h.shape {
	case str1List:
		if n != 1 {
			return shapeErr("one string")
		}
		return wantString(0)

	case unitList:
		if n != 2 {
			return shapeErr("a number and a unit")
		}
		if e := m.ListElem(list, 0); !m.IsFloat(e) {
			p.errorf(diag.TypeExpectFloat, m.Span(e), "syntax error: float value is expected")
			return false
		}
		return wantString(1)

	case pwList:
		if n != 2 {
			return shapeErr("an integer and a float")
		}
		if e := m.ListElem(list, 0); !m.IsInt(e) {
			p.errorf(diag.TypeExpectInt, m.Span(e), "syntax error: integer value is expected")
			return false
		}
		if e := m.ListElem(list, 1); !m.IsFloat(e) {
			p.errorf(diag.TypeExpectFloat, m.Span(e), "syntax error: float value is expected")
			return false
		}
		return true

	case defineList:
		if n != 3 {
			return shapeErr("attribute, group and type names")
		}
		return wantString(0) && wantString(1) && wantString(2)

	case vectorList:
		if n != 1 || !m.IsVector(m.ListElem(list, 0)) {
			return shapeErr("one quoted vector")
		}

	case vectorsList:
		if n == 0 {
			return shapeErr("quoted vectors")
		}
		for e := range m.Elems(list) {
			if !m.IsVector(e) {
				p.errorf(diag.SynBadListShape, m.Span(e), "%s: quoted vector is expected", name.Text)
				return false
			}
		}
	}
	return true
}

// readList reads the rest of `( v, v, ... )` after open. Elements are
// scanned in symbol mode when sym is set; in vector mode a quoted string
// element becomes a Vector node.
func (p *Parser) readList(open token.Token, sym, vector bool) (ast.NodeID, bool) {
	var elems []ast.NodeID
	tok := p.skipNL(sym)
	if tok.Kind == token.RParen {
		return p.m.NewList(nil, open.Span.Cover(tok.Span)), true
	}
	for {
		elem, ok := p.listElem(tok, vector)
		if !ok {
			return ast.NoNodeID, false
		}
		elems = append(elems, elem)

		sep := p.skipNL(false)
		switch sep.Kind {
		case token.Comma:
			tok = p.skipNL(sym)
			continue
		case token.RParen:
			return p.m.NewList(elems, open.Span.Cover(sep.Span)), true
		case token.Invalid:
			return ast.NoNodeID, false
		case token.EOF:
			diag.ReportError(p.reporter, diag.SynMissingSeparator, p.diagSpan(sep),
				"syntax error: ')' is expected, got end of file").
				WithNote(open.Span, "list opened here").
				Emit()
			return ast.NoNodeID, false
		}
		p.errorf(diag.SynMissingSeparator, sep.Span, "syntax error: ',' or ')' is expected, got %s", describe(sep))
		return ast.NoNodeID, false
	}
}

func (p *Parser) listElem(tok token.Token, vector bool) (ast.NodeID, bool) {
	switch tok.Kind {
	case token.IntLit, token.FloatLit:
		return p.scalar(tok), true
	case token.Name:
		if vector && tok.Quoted {
			return p.splitVector(tok)
		}
		return p.scalar(tok), true
	case token.Invalid:
		return ast.NoNodeID, false
	}
	p.errorf(diag.SynBadListElement, p.diagSpan(tok), "syntax error: value is expected, got %s", describe(tok))
	return ast.NoNodeID, false
}

// splitVector разбивает "1.0, 2.0, 3.5" на числа. Разделители: запятые и
// пробелы; пустой слот между запятыми — ошибка.
func (p *Parser) splitVector(tok token.Token) (ast.NodeID, bool) {
	text := tok.Text
	values := make([]float64, 0, strings.Count(text, ",")+1)
	from := 0
	for from <= len(text) {
		to := strings.IndexByte(text[from:], ',')
		if to < 0 {
			to = len(text)
		} else {
			to += from
		}
		empty := true
		for at, field := range vectorFields(text, from, to) {
			empty = false
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				p.errorf(diag.TypeBadVectorNumber, tok.PayloadSpan(at, at+len(field)), "syntax error: %q is not a number", field)
				return ast.NoNodeID, false
			}
			values = append(values, v)
		}
		if empty {
			p.errorf(diag.SynEmptyVectorElement, tok.PayloadSpan(from, to), "syntax error: empty element in vector %q", text)
			return ast.NoNodeID, false
		}
		from = to + 1
	}
	return p.m.NewVector(values, tok.Span), true
}

// vectorFields yields the blank-separated fields of text[from:to] with
// their offsets in text.
func vectorFields(text string, from, to int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := from
		for i < to {
			for i < to && isVectorBlank(text[i]) {
				i++
			}
			start := i
			for i < to && !isVectorBlank(text[i]) {
				i++
			}
			if start < i && !yield(start, text[start:i]) {
				return
			}
		}
	}
}

func isVectorBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
