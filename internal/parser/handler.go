package parser

import (
	"fmt"
	"strings"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/expr"
	"liberty/internal/token"
)

// Handler reads one statement whose name token has already been consumed
// and returns the node that becomes the attribute value.
type Handler interface {
	Read(p *Parser, name token.Token) (ast.NodeID, bool)
}

// valueKind — какой вид значения принимает простой атрибут.
type valueKind uint8

const (
	anyValue valueKind = iota
	stringValue
	floatValue
	intValue
	funcValue // булева функция, разбирается пакетом expr
	exprValue // арифметика: vil, vih, vol, voh ...
)

// simpleHandler reads `name : value ;`.
type simpleHandler struct {
	kind   valueKind
	symbol bool // значение сканируется в symbol-режиме (1ns, 0A)
}

func (h simpleHandler) Read(p *Parser, name token.Token) (ast.NodeID, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, false); !ok {
		return ast.NoNodeID, false
	}

	var (
		value ast.NodeID
		ok    bool
	)
	if h.kind == exprValue {
		value, ok = p.arith(0)
	} else {
		value, ok = h.value(p, p.advance(h.symbol))
	}
	if !ok || !p.expectEnd() {
		return ast.NoNodeID, false
	}
	return value, true
}

func (h simpleHandler) value(p *Parser, tok token.Token) (ast.NodeID, bool) {
	switch tok.Kind {
	case token.Invalid:
		return ast.NoNodeID, false
	case token.Name, token.IntLit, token.FloatLit:
	default:
		p.mismatch(diag.SynExpectValue, tok, "value")
		return ast.NoNodeID, false
	}

	switch h.kind {
	case stringValue:
		if tok.Kind != token.Name {
			p.errorf(diag.TypeExpectString, tok.Span, "syntax error: string value is expected, got %s", describe(tok))
			return ast.NoNodeID, false
		}
	case floatValue:
		if tok.Kind == token.Name {
			p.errorf(diag.TypeExpectFloat, tok.Span, "syntax error: float value is expected, got %s", describe(tok))
			return ast.NoNodeID, false
		}
	case intValue:
		if tok.Kind != token.IntLit {
			p.errorf(diag.TypeExpectInt, tok.Span, "syntax error: integer value is expected, got %s", describe(tok))
			return ast.NoNodeID, false
		}
	case funcValue:
		if tok.Kind == token.FloatLit {
			p.errorf(diag.ExprBadConstant, tok.Span, "syntax error: constant %s is not 0 or 1", tok.Text)
			return ast.NoNodeID, false
		}
		return expr.Parse(p.m, tok, expr.Options{Reporter: p.reporter, MaxDepth: p.opts.maxDepth()})
	}
	return p.scalar(tok), true
}

// scalar строит Int, Float или String по токену.
func (p *Parser) scalar(tok token.Token) ast.NodeID {
	switch tok.Kind {
	case token.IntLit:
		return p.m.NewInt(tok.Int, tok.Span)
	case token.FloatLit:
		return p.m.NewFloat(tok.Float, tok.Span)
	}
	return p.m.NewString(tok.Text, tok.Span)
}

// genericHandler accepts any statement shape. It serves every name inside
// a group that has no schema.
type genericHandler struct{}

func (genericHandler) Read(p *Parser, name token.Token) (ast.NodeID, bool) {
	tok := p.peek(false)
	switch tok.Kind {
	case token.Colon:
		return simpleHandler{kind: anyValue}.Read(p, name)
	case token.LParen:
	case token.Invalid:
		p.advance(false)
		return ast.NoNodeID, false
	default:
		p.advance(false)
		p.mismatch(diag.SynExpectColon, tok, "':' or '('")
		return ast.NoNodeID, false
	}

	open := p.advance(false)
	value, ok := p.readList(open, false, false)
	if !ok {
		return ast.NoNodeID, false
	}

	// `name (...) {` — группа, иначе составной атрибут
	sawNL := p.at(token.NL)
	next := p.skipNLPeek(false)
	if next.Kind == token.LBrace {
		brace := p.advance(false)
		return p.readBody(genericSchema, name, value, brace)
	}
	if sawNL && p.opts.AllowNoSemi {
		return value, true
	}
	if !p.expectEnd() {
		return ast.NoNodeID, false
	}
	return value, true
}

// valueText renders a value for the debug echo.
func valueText(m *ast.Mgr, id ast.NodeID) string {
	k := m.Kind(id)
	switch {
	case k.IsBool():
		return m.FuncText(id)
	case k.IsOpr():
		return m.ExprText(id)
	}
	return strings.TrimSpace(m.DumpText(id))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
