package parser

import (
	"strings"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/token"
)

// Арифметика в значениях vil/vih/vol/voh:
//
//	arith  := term ( ('+'|'-') term )*
//	term   := factor ( ('*'|'/') factor )*
//	factor := NUMBER | NAME | '(' arith ')'
func (p *Parser) arith(depth int) (ast.NodeID, bool) {
	left, ok := p.term(depth)
	if !ok {
		return ast.NoNodeID, false
	}
	for {
		tok := p.peek(false)
		switch {
		case tok.Kind == token.Plus || tok.Kind == token.Minus:
			p.advance(false)
			right, ok := p.term(depth)
			if !ok {
				return ast.NoNodeID, false
			}
			if tok.Kind == token.Plus {
				left = p.m.NewPlus(left, right)
			} else {
				left = p.m.NewMinus(left, right)
			}

		case tok.IsNumber() && strings.HasPrefix(tok.Text, "-"):
			// "VDD -0.1": лексер склеил минус с числом
			p.advance(false)
			right := p.unsigned(tok)
			for p.at(token.Star) || p.at(token.Slash) {
				var ok bool
				if right, ok = p.termTail(depth, right); !ok {
					return ast.NoNodeID, false
				}
			}
			left = p.m.NewMinus(left, right)

		default:
			return left, true
		}
	}
}

func (p *Parser) term(depth int) (ast.NodeID, bool) {
	left, ok := p.factor(depth)
	if !ok {
		return ast.NoNodeID, false
	}
	for p.at(token.Star) || p.at(token.Slash) {
		if left, ok = p.termTail(depth, left); !ok {
			return ast.NoNodeID, false
		}
	}
	return left, true
}

// termTail reads one `('*'|'/') factor` and combines it with left.
func (p *Parser) termTail(depth int, left ast.NodeID) (ast.NodeID, bool) {
	op := p.advance(false)
	right, ok := p.factor(depth)
	if !ok {
		return ast.NoNodeID, false
	}
	if op.Kind == token.Star {
		return p.m.NewMult(left, right), true
	}
	return p.m.NewDiv(left, right), true
}

func (p *Parser) factor(depth int) (ast.NodeID, bool) {
	tok := p.advance(false)
	switch tok.Kind {
	case token.IntLit, token.FloatLit:
		return p.scalar(tok), true
	case token.Name:
		if tok.Quoted {
			break
		}
		return p.m.NewString(tok.Text, tok.Span), true
	case token.LParen:
		if depth+1 > p.opts.maxDepth() {
			p.errorf(diag.SynNestingTooDeep, tok.Span, "expression nesting exceeds %d levels", p.opts.maxDepth())
			return ast.NoNodeID, false
		}
		inner, ok := p.arith(depth + 1)
		if !ok {
			return ast.NoNodeID, false
		}
		closing := p.advance(false)
		if closing.Kind != token.RParen {
			if closing.Kind == token.EOF {
				diag.ReportError(p.reporter, diag.SynUnclosedParen, p.diagSpan(closing),
					"syntax error: ')' is expected, got end of file").
					WithNote(tok.Span, "'(' opened here").
					Emit()
			} else {
				p.mismatch(diag.SynUnclosedParen, closing, "')'")
			}
			return ast.NoNodeID, false
		}
		return inner, true
	case token.Invalid:
		return ast.NoNodeID, false
	}
	p.errorf(diag.TypeBadExprOperand, p.diagSpan(tok), "syntax error: number, name or '(' is expected, got %s", describe(tok))
	return ast.NoNodeID, false
}

// unsigned turns a "-N" literal into N, with the span moved past the sign.
func (p *Parser) unsigned(tok token.Token) ast.NodeID {
	sp := tok.Span
	sp.Start++
	if tok.Kind == token.IntLit {
		return p.m.NewInt(-tok.Int, sp)
	}
	return p.m.NewFloat(-tok.Float, sp)
}
