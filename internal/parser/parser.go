package parser

import (
	"context"
	"fmt"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/lexer"
	"liberty/internal/source"
	"liberty/internal/token"
	"liberty/internal/trace"
)

// Parser — состояние разбора одного файла.
// Разбор fail-fast: первая ошибка обрывает спуск, восстановления нет.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	m        *ast.Mgr
	opts     Options
	reporter *countingReporter
	tracer   trace.Tracer
	depth    int
	lastSpan source.Span // span последнего съеденного токена

	tables  map[*groupSchema]map[source.StringID]Handler
	defines map[string]map[source.StringID]Handler // kind группы → атрибуты из define(...)
}

// countingReporter считает ошибки, чтобы отличать неудачный разбор
// даже при внешнем Reporter.
type countingReporter struct {
	next   diag.Reporter
	errors int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev >= diag.SevError {
		r.errors++
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// ParseFile parses a file already registered in fs into m. When
// opts.Reporter is nil diagnostics are collected into Result.Bag.
func ParseFile(ctx context.Context, fs *source.FileSet, file source.FileID, m *ast.Mgr, opts Options) Result {
	var bag *diag.Bag
	if opts.Reporter == nil {
		bag = diag.NewBag(0)
		opts.Reporter = diag.BagReporter{Bag: bag}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}

	f := fs.Get(file)
	counter := &countingReporter{next: opts.Reporter}
	p := &Parser{
		lx:       lexer.New(f, lexer.Options{Reporter: counter}),
		file:     f,
		m:        m,
		opts:     opts,
		reporter: counter,
		tracer:   tracer,
		tables:   make(map[*groupSchema]map[source.StringID]Handler),
		defines:  make(map[string]map[source.StringID]Handler),
	}

	span := trace.Begin(tracer, trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID).
		WithExtra("file", f.Path)
	root := p.parseLibrary()
	ok := root.IsValid() && counter.errors == 0
	if ok {
		m.SetRoot(root)
	} else {
		root = ast.NoNodeID
	}
	span.End(fmt.Sprintf("ok=%t nodes=%d", ok, m.Stats().Total()))

	return Result{Root: root, Mgr: m, Bag: bag, OK: ok}
}

// parseLibrary разбирает `library (name) { ... }` и всё, что после него.
func (p *Parser) parseLibrary() ast.NodeID {
	tok := p.skipNL(false)
	if tok.Kind != token.Name || tok.Quoted || tok.Text != "library" {
		if tok.Kind != token.Invalid {
			p.errorf(diag.SynExpectLibrary, tok.Span, "'library' is expected, got %s", describe(tok))
		}
		return ast.NoNodeID
	}
	lib := registry().library
	group, ok := lib.readGroup(p, tok)
	if !ok {
		return ast.NoNodeID
	}
	p.debugAttr(tok, group)
	p.checkTrailing()
	return group
}

// checkTrailing предупреждает о содержимом после закрывающей '}' библиотеки.
func (p *Parser) checkTrailing() {
	tok := p.skipNL(false)
	switch tok.Kind {
	case token.EOF, token.Invalid:
		return
	}
	p.warnf(diag.SynTrailingContent, tok.Span, "content after the library group is ignored")
}

func (p *Parser) advance(sym bool) token.Token {
	var tok token.Token
	if sym {
		tok = p.lx.NextSymbol()
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) peek(sym bool) token.Token {
	if sym {
		return p.lx.PeekSymbol()
	}
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// skipNL съедает переводы строк и возвращает первый другой токен.
func (p *Parser) skipNL(sym bool) token.Token {
	for {
		tok := p.advance(sym)
		if tok.Kind != token.NL {
			return tok
		}
	}
}

// skipNLPeek is skipNL without consuming the token it stops at.
func (p *Parser) skipNLPeek(sym bool) token.Token {
	for {
		tok := p.peek(sym)
		if tok.Kind != token.NL {
			return tok
		}
		p.advance(sym)
	}
}

// expect съедает токен вида k или репортит code.
func (p *Parser) expect(k token.Kind, code diag.Code, sym bool) (token.Token, bool) {
	tok := p.advance(sym)
	if tok.Kind == k {
		return tok, true
	}
	p.mismatch(code, tok, k.Describe())
	return tok, false
}

// mismatch reports that want was expected where tok stands. Invalid tokens
// were already reported by the lexer.
func (p *Parser) mismatch(code diag.Code, tok token.Token, want string) {
	if tok.Kind == token.Invalid {
		return
	}
	p.errorf(code, p.diagSpan(tok), "syntax error: %s is expected, got %s", want, describe(tok))
}

// diagSpan — лучший span для диагностики: EOF нулевой длины
// ставим сразу за последним съеденным токеном.
func (p *Parser) diagSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF && tok.Span.Empty() && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

// expectEnd завершает простой или составной атрибут.
func (p *Parser) expectEnd() bool {
	tok := p.peek(false)
	switch tok.Kind {
	case token.Semicolon:
		p.advance(false)
		return true
	case token.NL, token.EOF:
		if p.opts.AllowNoSemi {
			if tok.Kind == token.NL {
				p.advance(false)
			}
			return true
		}
	case token.RBrace:
		// '}' остаётся группе
		if p.opts.AllowNoSemi {
			return true
		}
	case token.Invalid:
		p.advance(false)
		return false
	}
	sp := p.diagSpan(tok)
	if tok.Kind == token.NL || tok.Kind == token.EOF || tok.Kind == token.RBrace {
		sp = p.lastSpan.ZeroideToEnd()
	}
	diag.ReportError(p.reporter, diag.SynExpectSemicolon, sp,
		fmt.Sprintf("syntax error: ';' is expected, got %s", describe(tok))).
		WithFix("insert ';'", diag.FixEdit{Span: p.lastSpan.ZeroideToEnd(), NewText: ";"}).
		Emit()
	return false
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (p *Parser) warnf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportWarning(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// debugAttr — эхо (имя, значение) для опции Debug.
func (p *Parser) debugAttr(name token.Token, value ast.NodeID) {
	if !p.opts.Debug || p.tracer == nil || !p.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	detail := ""
	if p.m.IsGroup(value) {
		detail = p.m.GroupName(value)
	} else {
		detail = valueText(p.m, value)
	}
	pos := p.file.LineCol(name.Span.Start)
	trace.Point(p.tracer, trace.ScopeNode, name.Text, detail,
		map[string]string{"pos": fmt.Sprintf("%d:%d", pos.Line, pos.Col)})
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Name:
		if tok.Quoted {
			return fmt.Sprintf("string %q", tok.Text)
		}
		return fmt.Sprintf("'%s'", tok.Text)
	case token.IntLit, token.FloatLit:
		return "number " + tok.Text
	}
	return tok.Kind.Describe()
}
