package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
)

// parseFunc parses text as if it were the quoted value at offset 10 of a file.
func parseFunc(t *testing.T, text string) (*ast.Mgr, ast.NodeID, *diag.Bag) {
	t.Helper()
	m := ast.NewMgr(ast.Hints{}, source.NewInterner())
	bag := diag.NewBag(0)
	end := uint32(10 + len(text) + 2)
	tok := token.Token{
		Kind:   token.Name,
		Quoted: true,
		Text:   text,
		Span:   source.Span{File: 0, Start: 10, End: end},
	}
	id, ok := Parse(m, tok, Options{Reporter: diag.BagReporter{Bag: bag}})
	if ok {
		require.True(t, id.IsValid())
		require.Equal(t, 0, bag.Len())
	} else {
		require.False(t, id.IsValid())
		require.True(t, bag.HasErrors())
	}
	return m, id, bag
}

// sexpr renders a function tree as an s-expression for comparisons.
func sexpr(m *ast.Mgr, id ast.NodeID) string {
	switch k := m.Kind(id); k {
	case ast.KindString:
		return m.StringValue(id)
	case ast.KindInt:
		return m.FuncText(id)
	case ast.KindNot:
		return "(not " + sexpr(m, m.Opr1(id)) + ")"
	case ast.KindAnd, ast.KindOr, ast.KindXor:
		return "(" + k.String() + " " + sexpr(m, m.Opr1(id)) + " " + sexpr(m, m.Opr2(id)) + ")"
	default:
		return "?" + k.String()
	}
}

func TestParseFunctions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A & B", "(and A B)"},
		{"A * B", "(and A B)"},
		{"A B", "(and A B)"},
		{"A'", "(not A)"},
		{"!A", "(not A)"},
		{"A + B", "(or A B)"},
		{"A | B", "(or A B)"},
		{"A ^ B", "(xor A B)"},
		{"A(B+C)", "(and A (or B C))"},
		{"A + B ^ C", "(xor (or A B) C)"},
		{"A ^ B + C", "(or (xor A B) C)"},
		{"A & B | C & D", "(or (and A B) (and C D))"},
		{"!(A | B)", "(not (or A B))"},
		{"(A + B)'", "(not (or A B))"},
		{"IQ' & CLK", "(and (not IQ) CLK)"},
		{"A !B", "(and A (not B))"},
		{"D[0] & EN", "(and D[0] EN)"},
		{"1", "1"},
		{"A & 0", "(and A 0)"},
		{"  A\t&\nB ", "(and A B)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, id, _ := parseFunc(t, tt.in)
			assert.Equal(t, tt.want, sexpr(m, id))
		})
	}
}

func TestParseFunctionErrors(t *testing.T) {
	tests := []struct {
		in   string
		code diag.Code
	}{
		{"", diag.ExprMissingOperand},
		{"A &", diag.ExprMissingOperand},
		{"A +", diag.ExprMissingOperand},
		{"(A + B", diag.ExprUnclosedParen},
		{"A + B)", diag.ExprUnexpectedToken},
		{"A & 2", diag.ExprBadConstant},
		{"!A'", diag.ExprUnexpectedToken},
		{"A''", diag.ExprUnexpectedToken},
		{"A # B", diag.ExprUnknownChar},
		{"()", diag.ExprUnexpectedToken},
		{"+A", diag.ExprUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, _, bag := parseFunc(t, tt.in)
			assert.Equal(t, tt.code, bag.Items()[0].Code)
			assert.Equal(t, diag.CatExpression, bag.Items()[0].Category())
		})
	}
}

func TestSpansPointIntoFile(t *testing.T) {
	// значение "A & B" начинается с кавычки на смещении 10
	m, id, _ := parseFunc(t, "A & B")
	assert.Equal(t, source.Span{Start: 11, End: 16}, m.Span(id))
	assert.Equal(t, source.Span{Start: 15, End: 16}, m.Span(m.Opr2(id)))

	_, _, bag := parseFunc(t, "A & 7")
	assert.Equal(t, source.Span{Start: 15, End: 16}, bag.Items()[0].Primary)
}

func TestSpansFollowContinuations(t *testing.T) {
	// "A & \<перевод строки>7" с кавычкой на смещении 10
	m := ast.NewMgr(ast.Hints{}, source.NewInterner())
	bag := diag.NewBag(0)
	tok := token.Token{
		Kind:    token.Name,
		Quoted:  true,
		Text:    "A & 7",
		Span:    source.Span{Start: 10, End: 19},
		Offsets: []uint32{11, 12, 13, 14, 17},
	}
	_, ok := Parse(m, tok, Options{Reporter: diag.BagReporter{Bag: bag}})
	require.False(t, ok)
	assert.Equal(t, diag.ExprBadConstant, bag.Items()[0].Code)
	assert.Equal(t, source.Span{Start: 17, End: 18}, bag.Items()[0].Primary)
}

func TestNestingLimit(t *testing.T) {
	deep := strings.Repeat("(", 10) + "A" + strings.Repeat(")", 10)

	m := ast.NewMgr(ast.Hints{}, source.NewInterner())
	bag := diag.NewBag(0)
	_, ok := ParseText(m, deep, 0, 0, uint32(len(deep)), Options{Reporter: diag.BagReporter{Bag: bag}, MaxDepth: 5})
	assert.False(t, ok)
	assert.Equal(t, diag.SynNestingTooDeep, bag.Items()[0].Code)

	id, ok := ParseText(m, deep, 0, 0, uint32(len(deep)), Options{MaxDepth: 10})
	assert.True(t, ok)
	assert.Equal(t, "A", m.StringValue(id))
}

func TestUnquotedToken(t *testing.T) {
	m := ast.NewMgr(ast.Hints{}, source.NewInterner())
	tok := token.Token{Kind: token.Name, Text: "CLK", Span: source.Span{Start: 4, End: 7}}
	id, ok := Parse(m, tok, Options{})
	require.True(t, ok)
	assert.Equal(t, source.Span{Start: 4, End: 7}, m.Span(id))
}
