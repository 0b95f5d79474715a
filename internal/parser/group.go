package parser

import (
	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
)

// headerKind — форма списка в заголовке группы.
type headerKind uint8

const (
	headerGeneric headerKind = iota
	headerEmpty              // ()
	headerStr1               // (name)
	headerStr2               // (name, name)
	headerStr2Int            // (name, name, int)
)

// symbol reports whether the header is scanned in symbol mode, so that
// pin names like 0A stay names.
func (k headerKind) symbol() bool {
	return k == headerStr1 || k == headerStr2
}

// groupSchema describes which statements a group kind accepts.
// A generic schema accepts any name.
type groupSchema struct {
	header  headerKind
	generic bool
	attrs   map[string]Handler
}

var genericSchema = &groupSchema{generic: true}

// groupHandler reads `name ( header ) { body }`.
type groupHandler struct {
	schema *groupSchema
}

func (h *groupHandler) Read(p *Parser, name token.Token) (ast.NodeID, bool) {
	return h.readGroup(p, name)
}

func (h *groupHandler) readGroup(p *Parser, name token.Token) (ast.NodeID, bool) {
	open, ok := p.expect(token.LParen, diag.SynExpectLParen, false)
	if !ok {
		return ast.NoNodeID, false
	}
	value, ok := p.readList(open, h.schema.header.symbol(), false)
	if !ok || !p.checkHeader(h.schema.header, name, value) {
		return ast.NoNodeID, false
	}
	brace := p.skipNL(false)
	if brace.Kind != token.LBrace {
		p.mismatch(diag.SynExpectLBrace, brace, "'{'")
		return ast.NoNodeID, false
	}
	return p.readBody(h.schema, name, value, brace)
}

func (p *Parser) checkHeader(kind headerKind, name token.Token, value ast.NodeID) bool {
	m := p.m
	n := m.ListLen(value)
	bad := func(want string) bool {
		p.errorf(diag.SynBadGroupValue, m.Span(value), "%s group: %s is expected, got %s",
			name.Text, want, plural(n, "value", "values"))
		return false
	}
	isStr := func(pos int) bool { return m.IsString(m.ListElem(value, pos)) }

	switch kind {
	case headerEmpty:
		if n != 0 {
			return bad("empty value list")
		}
	case headerStr1:
		if n != 1 || !isStr(0) {
			return bad("one string")
		}
	case headerStr2:
		if n != 2 || !isStr(0) || !isStr(1) {
			return bad("two strings")
		}
	case headerStr2Int:
		if n != 3 || !isStr(0) || !isStr(1) || !m.IsInt(m.ListElem(value, 2)) {
			return bad("two strings and an integer")
		}
	}
	return true
}

// readBody reads statements up to the closing '}'. The group span starts
// at the group name.
func (p *Parser) readBody(s *groupSchema, name token.Token, value ast.NodeID, open token.Token) (ast.NodeID, bool) {
	if p.depth >= p.opts.maxDepth() {
		p.errorf(diag.SynNestingTooDeep, name.Span, "group nesting exceeds %d levels", p.opts.maxDepth())
		return ast.NoNodeID, false
	}
	p.depth++
	defer func() { p.depth-- }()

	group := p.m.NewGroup(value, name.Span)
	table := p.table(s)

	for {
		tok := p.advance(false)
		switch tok.Kind {
		case token.NL, token.Semicolon:
			continue
		case token.RBrace:
			p.m.CloseGroup(group, tok.Span)
			return group, true
		case token.Name:
		case token.Invalid:
			return ast.NoNodeID, false
		case token.EOF:
			diag.ReportError(p.reporter, diag.SynUnclosedBrace, p.diagSpan(tok),
				"syntax error: '}' is expected, got end of file").
				WithNote(open.Span, name.Text+" group opened here").
				Emit()
			return ast.NoNodeID, false
		default:
			p.mismatch(diag.SynExpectName, tok, "attribute name or '}'")
			return ast.NoNodeID, false
		}

		id := p.m.Strings.Intern(tok.Text)
		h := table[id]
		if h == nil {
			h = p.defines[name.Text][id]
		}
		if h == nil {
			if !s.generic {
				p.errorf(diag.SynUnknownAttribute, tok.Span, "syntax error: unknown attribute '%s' in %s group", tok.Text, name.Text)
				return ast.NoNodeID, false
			}
			h = genericHandler{}
		}

		val, ok := h.Read(p, tok)
		if !ok {
			return ast.NoNodeID, false
		}
		p.m.AddAttr(group, p.m.NewAttr(id, val, tok.Span))
		p.debugAttr(tok, val)
	}
}

// table переводит имена схемы в StringID интернера сессии.
// Строится один раз на вид группы.
func (p *Parser) table(s *groupSchema) map[source.StringID]Handler {
	if len(s.attrs) == 0 {
		return nil
	}
	if t, ok := p.tables[s]; ok {
		return t
	}
	t := make(map[source.StringID]Handler, len(s.attrs))
	for name, h := range s.attrs {
		t[p.m.Strings.Intern(name)] = h
	}
	p.tables[s] = t
	return t
}

// define registers define(name, group, type) so that name is accepted
// inside groups named group from now on.
func (p *Parser) define(list ast.NodeID) bool {
	m := p.m
	attr := m.ListElem(list, 0)
	group := m.StringValue(m.ListElem(list, 1))
	typ := m.ListElem(list, 2)

	var h Handler
	switch m.StringValue(typ) {
	case "string", "boolean":
		h = simpleHandler{kind: stringValue, symbol: true}
	case "float":
		h = simpleHandler{kind: floatValue}
	case "integer":
		h = simpleHandler{kind: intValue}
	default:
		p.errorf(diag.SynBadDefine, m.Span(typ), "define: unknown attribute type '%s' (expected string, float, integer or boolean)", m.StringValue(typ))
		return false
	}
	if p.defines[group] == nil {
		p.defines[group] = make(map[source.StringID]Handler)
	}
	p.defines[group][m.StringID(attr)] = h
	return true
}
