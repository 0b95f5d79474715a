package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/diag"
	"liberty/internal/lexer"
	"liberty/internal/source"
	"liberty/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lib", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestPunctuationAndNames(t *testing.T) {
	lx, bag := makeTestLexer("library (demo) {\n  area : 1.5 ;\n}")
	toks := collectAllTokens(lx)

	assert.Equal(t, []token.Kind{
		token.Name, token.LParen, token.Name, token.RParen, token.LBrace, token.NL,
		token.Name, token.Colon, token.FloatLit, token.Semicolon, token.NL,
		token.RBrace, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "library", toks[0].Text)
	assert.Equal(t, "demo", toks[2].Text)
	assert.InDelta(t, 1.5, toks[8].Float, 0)
	assert.Equal(t, 0, bag.Len())
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in    string
		kind  token.Kind
		value float64
	}{
		{"42", token.IntLit, 42},
		{"-7", token.IntLit, -7},
		{"0.25", token.FloatLit, 0.25},
		{".5", token.FloatLit, 0.5},
		{"-1.5", token.FloatLit, -1.5},
		{"1.0e-3", token.FloatLit, 0.001},
		{"2E+2", token.FloatLit, 200},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.in)
			tok := lx.Next()
			assert.Equal(t, tt.kind, tok.Kind)
			assert.InDelta(t, tt.value, tok.Number(), 1e-12)
			assert.Equal(t, tt.in, tok.Text)
			assert.Equal(t, token.EOF, lx.Next().Kind)
			assert.Equal(t, 0, bag.Len())
		})
	}
}

func TestExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	lx, _ := makeTestLexer("3e")
	toks := collectAllTokens(lx)
	assert.Equal(t, []token.Kind{token.IntLit, token.Name, token.EOF}, kinds(toks))
	assert.Equal(t, "e", toks[1].Text)
}

func TestBadNumber(t *testing.T) {
	lx, bag := makeTestLexer("1.x")
	tok := lx.Next()
	assert.Equal(t, token.Invalid, tok.Kind)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LexBadNumber, bag.Items()[0].Code)
}

func TestMinusWithoutDigit(t *testing.T) {
	lx, _ := makeTestLexer("a - b")
	assert.Equal(t, []token.Kind{token.Name, token.Minus, token.Name, token.EOF}, kinds(collectAllTokens(lx)))
}

func TestSymbolMode(t *testing.T) {
	lx, _ := makeTestLexer("1ns 0.5ps 2A")
	for _, want := range []string{"1ns", "0.5ps", "2A"} {
		tok := lx.NextSymbol()
		assert.Equal(t, token.Name, tok.Kind)
		assert.Equal(t, want, tok.Text)
	}

	lx, _ = makeTestLexer("1ns")
	toks := collectAllTokens(lx)
	assert.Equal(t, []token.Kind{token.IntLit, token.Name, token.EOF}, kinds(toks))
}

func TestPeekRescansInOtherMode(t *testing.T) {
	lx, _ := makeTestLexer("10ps")
	peeked := lx.Peek()
	assert.Equal(t, token.IntLit, peeked.Kind)

	tok := lx.NextSymbol()
	assert.Equal(t, token.Name, tok.Kind)
	assert.Equal(t, "10ps", tok.Text)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}

func TestQuotedString(t *testing.T) {
	lx, bag := makeTestLexer(`"A & B" "x\"y" "1.0, 2.0"`)
	a := lx.Next()
	assert.Equal(t, token.Name, a.Kind)
	assert.True(t, a.Quoted)
	assert.Equal(t, "A & B", a.Text)
	assert.Equal(t, uint32(0), a.Span.Start)
	assert.Equal(t, uint32(7), a.Span.End)

	assert.Equal(t, `x"y`, lx.Next().Text)
	assert.Equal(t, "1.0, 2.0", lx.Next().Text)
	assert.Equal(t, 0, bag.Len())
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		in   string
		code diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"\"line\nbreak\"", diag.LexNewlineInString},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.in)
		assert.Equal(t, token.Invalid, lx.Next().Kind)
		require.Equal(t, 1, bag.Len())
		assert.Equal(t, tt.code, bag.Items()[0].Code)
	}
}

func TestStringLineContinuation(t *testing.T) {
	lx, bag := makeTestLexer("\"0.1, \\\n0.2\"")
	tok := lx.Next()
	assert.Equal(t, "0.1, 0.2", tok.Text)
	assert.Equal(t, 0, bag.Len())
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 8, 9, 10}, tok.Offsets)
	assert.Equal(t, source.Span{Start: 8, End: 11}, tok.PayloadSpan(5, 8))
}

func TestStringEscapeOffsets(t *testing.T) {
	lx, _ := makeTestLexer(`"a\"b" "plain"`)
	tok := lx.Next()
	assert.Equal(t, `a"b`, tok.Text)
	assert.Equal(t, source.Span{Start: 4, End: 5}, tok.PayloadSpan(2, 3))

	plain := lx.Next()
	assert.Nil(t, plain.Offsets)
	assert.Equal(t, source.Span{Start: 8, End: 13}, plain.PayloadSpan(0, 5))
}

func TestLoneBackslashIsDropped(t *testing.T) {
	lx, bag := makeTestLexer("a \\ b\\c")
	toks := collectAllTokens(lx)
	assert.Equal(t, []token.Kind{token.Name, token.Name, token.Name, token.EOF}, kinds(toks))
	assert.Equal(t, "c", toks[2].Text)
	assert.Equal(t, 0, bag.Len())
}

func TestComments(t *testing.T) {
	lx, bag := makeTestLexer("a /* block\n comment */ b // tail\nc")
	toks := collectAllTokens(lx)
	assert.Equal(t, []token.Kind{token.Name, token.Name, token.NL, token.Name, token.EOF}, kinds(toks))
	assert.Equal(t, 0, bag.Len())

	lx, bag = makeTestLexer("a /* never closed")
	toks = collectAllTokens(lx)
	assert.Equal(t, token.Invalid, toks[len(toks)-1].Kind)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LexUnterminatedBlockComment, bag.Items()[0].Code)
}

func TestNewlinesAndContinuation(t *testing.T) {
	lx, _ := makeTestLexer("a\r\nb\rc \\\nd")
	toks := collectAllTokens(lx)
	assert.Equal(t, []token.Kind{
		token.Name, token.NL, token.Name, token.NL, token.Name, token.Name, token.EOF,
	}, kinds(toks))
	assert.Equal(t, uint32(2), toks[1].Span.Len())
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a @ b")
	assert.Equal(t, token.Name, lx.Next().Kind)
	bad := lx.Next()
	assert.Equal(t, token.Invalid, bad.Kind)
	assert.Equal(t, "@", bad.Text)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.LexUnknownChar, d.Code)
	assert.Equal(t, diag.CatLex, d.Category())
	assert.Equal(t, source.Span{Start: 2, End: 3}, d.Primary)
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Peek().Kind)
}
