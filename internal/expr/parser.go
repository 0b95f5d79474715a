package expr

import (
	"fmt"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
)

// DefaultMaxDepth bounds parenthesis nesting.
const DefaultMaxDepth = 256

type Options struct {
	Reporter diag.Reporter
	MaxDepth int // 0 selects DefaultMaxDepth
}

type parser struct {
	s        *scanner
	m        *ast.Mgr
	reporter diag.Reporter
	maxDepth int
}

// Parse parses the function held in tok (a Name token) and builds the tree
// in m. On any error it reports a diagnostic and returns false.
func Parse(m *ast.Mgr, tok token.Token, opts Options) (ast.NodeID, bool) {
	p := &parser{
		s:        newScanner(tok, opts.Reporter),
		m:        m,
		reporter: opts.Reporter,
		maxDepth: opts.MaxDepth,
	}
	return p.run()
}

// ParseText parses text whose first byte sits at file offset base. Spans
// are clamped to limit.
func ParseText(m *ast.Mgr, text string, file source.FileID, base, limit uint32, opts Options) (ast.NodeID, bool) {
	tok := token.Token{Kind: token.Name, Span: source.Span{File: file, Start: base, End: limit}, Text: text}
	return Parse(m, tok, opts)
}

func (p *parser) run() (ast.NodeID, bool) {
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	id := p.expr(0)
	if !id.IsValid() {
		return ast.NoNodeID, false
	}
	if tok := p.s.next(); tok.Kind != token.EOF {
		p.unexpected(tok)
		return ast.NoNodeID, false
	}
	return id, true
}

func (p *parser) err(code diag.Code, tok token.Token, msg string) {
	if p.reporter != nil {
		diag.ReportError(p.reporter, code, tok.Span, msg).Emit()
	}
}

func (p *parser) unexpected(tok token.Token) {
	switch tok.Kind {
	case token.Invalid:
		// уже сообщено сканером
	case token.EOF:
		p.err(diag.ExprMissingOperand, tok, "syntax error: operand is expected at end of function")
	default:
		p.err(diag.ExprUnexpectedToken, tok, fmt.Sprintf("syntax error: unexpected %s in function", tok.Kind.Describe()))
	}
}

// expr := product ( ('+'|'^') product )*
func (p *parser) expr(depth int) ast.NodeID {
	left := p.product(depth)
	if !left.IsValid() {
		return ast.NoNodeID
	}
	for {
		tok := p.s.next()
		if tok.Kind != token.Or && tok.Kind != token.Xor {
			p.s.unread(tok)
			return left
		}
		right := p.product(depth)
		if !right.IsValid() {
			return ast.NoNodeID
		}
		if tok.Kind == token.Or {
			left = p.m.NewOr(left, right)
		} else {
			left = p.m.NewXor(left, right)
		}
	}
}

// product := primary2 ( '&'? primary2 )*
func (p *parser) product(depth int) ast.NodeID {
	left := p.primary2(depth)
	if !left.IsValid() {
		return ast.NoNodeID
	}
	for {
		tok := p.s.next()
		switch tok.Kind {
		case token.And:
		case token.Not, token.LParen, token.Name, token.IntLit:
			// неявное AND
			p.s.unread(tok)
		default:
			p.s.unread(tok)
			return left
		}
		right := p.primary2(depth)
		if !right.IsValid() {
			return ast.NoNodeID
		}
		left = p.m.NewAnd(left, right)
	}
}

// primary2 := '!' primary | primary "'"?
func (p *parser) primary2(depth int) ast.NodeID {
	tok := p.s.next()
	if tok.Kind == token.Not {
		opr := p.primary(depth)
		if !opr.IsValid() {
			return ast.NoNodeID
		}
		return p.m.NewNot(opr, tok.Span)
	}
	p.s.unread(tok)

	opr := p.primary(depth)
	if !opr.IsValid() {
		return ast.NoNodeID
	}
	next := p.s.next()
	if next.Kind == token.Prime {
		return p.m.NewNot(opr, next.Span)
	}
	p.s.unread(next)
	return opr
}

// primary := '(' expr ')' | NAME | '0' | '1'
func (p *parser) primary(depth int) ast.NodeID {
	tok := p.s.next()
	switch tok.Kind {
	case token.LParen:
		if depth+1 > p.maxDepth {
			p.err(diag.SynNestingTooDeep, tok, fmt.Sprintf("function nesting exceeds %d levels", p.maxDepth))
			return ast.NoNodeID
		}
		inner := p.expr(depth + 1)
		if !inner.IsValid() {
			return ast.NoNodeID
		}
		closing := p.s.next()
		if closing.Kind != token.RParen {
			if closing.Kind == token.EOF {
				p.err(diag.ExprUnclosedParen, tok, "syntax error: ')' is expected")
			} else {
				p.unexpected(closing)
			}
			return ast.NoNodeID
		}
		return inner

	case token.Name:
		return p.m.NewString(tok.Text, tok.Span)

	case token.IntLit:
		if tok.Int != 0 && tok.Int != 1 {
			p.err(diag.ExprBadConstant, tok, fmt.Sprintf("syntax error: constant %s is not 0 or 1", tok.Text))
			return ast.NoNodeID
		}
		return p.m.NewInt(tok.Int, tok.Span)
	}

	p.unexpected(tok)
	return ast.NoNodeID
}
