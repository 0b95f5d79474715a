package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/diag"
	"liberty/internal/lexer"
	"liberty/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestIntIsFloatCompatible(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	for _, v := range []int64{0, 1, -3, 1 << 40} {
		id := m.NewInt(v, sp(0, 1))
		assert.True(t, m.IsInt(id))
		assert.True(t, m.IsFloat(id))
		assert.InDelta(t, float64(v), m.FloatValue(id), 0)
		assert.Equal(t, v, m.IntValue(id))
	}
	f := m.NewFloat(2.5, sp(0, 3))
	assert.False(t, m.IsInt(f))
	assert.True(t, m.IsFloat(f))
}

func TestOperatorSpansCoverOperands(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	a := m.NewString("A", sp(1, 2))
	b := m.NewString("B", sp(5, 6))
	and := m.NewAnd(a, b)
	assert.Equal(t, sp(1, 6), m.Span(and))
	assert.Equal(t, a, m.Opr1(and))
	assert.Equal(t, b, m.Opr2(and))

	not := m.NewNot(and, sp(0, 1))
	assert.Equal(t, sp(0, 6), m.Span(not))
	assert.Equal(t, NoNodeID, m.Opr2(not))
	assert.True(t, m.IsOpr(not))
}

func TestListPreservesOrder(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	elems := []NodeID{m.NewInt(1, sp(1, 2)), m.NewFloat(2.5, sp(4, 7)), m.NewString("x", sp(9, 10))}
	list := m.NewList(elems, sp(0, 11))

	assert.Equal(t, 3, m.ListLen(list))
	var got []NodeID
	for e := range m.Elems(list) {
		got = append(got, e)
	}
	assert.Equal(t, elems, got)
	assert.Equal(t, elems[1], m.ListElem(list, 1))
	assert.Equal(t, NoNodeID, m.ListElem(list, 3))
	assert.Equal(t, NoNodeID, m.Next(elems[2]))
}

func TestGroupAttributeChain(t *testing.T) {
	strs := source.NewInterner()
	m := NewMgr(Hints{}, strs)
	hdr := m.NewList([]NodeID{m.NewString("INV", sp(5, 8))}, sp(4, 9))
	g := m.NewGroup(hdr, sp(0, 9))

	area := m.NewAttr(strs.Intern("area"), m.NewFloat(1.5, sp(20, 23)), sp(13, 17))
	m.AddAttr(g, area)
	dir := m.NewAttr(strs.Intern("direction"), m.NewString("input", sp(40, 45)), sp(28, 37))
	m.AddAttr(g, dir)
	m.CloseGroup(g, sp(50, 51))

	assert.Equal(t, "INV", m.GroupName(g))
	assert.Equal(t, 2, m.AttrLen(g))
	assert.Equal(t, area, m.AttrTop(g))
	assert.Equal(t, dir, m.Next(area))
	assert.Equal(t, "direction", m.AttrName(dir))
	assert.Equal(t, strs.Intern("direction"), m.AttrNameID(dir))
	assert.Equal(t, "input", m.StringValue(m.AttrValue(dir)))
	assert.Equal(t, area, m.FindAttr(g, "area"))
	assert.Equal(t, NoNodeID, m.FindAttr(g, "pin"))
	assert.Equal(t, sp(0, 51), m.Span(g))
}

func TestClearInvalidatesEverything(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	g := m.NewGroup(m.NewList(nil, sp(0, 2)), sp(0, 2))
	m.SetRoot(g)
	assert.Panics(t, func() { m.SetRoot(g) })
	assert.Equal(t, uint32(1), m.Stats().Count(KindGroup))

	m.Clear()
	assert.Equal(t, NoNodeID, m.Root())
	assert.Equal(t, uint32(0), m.Nodes.Len())
	assert.Equal(t, uint32(0), m.Stats().Total())
	assert.Equal(t, uint32(1), m.Epoch())
	assert.False(t, m.IsGroup(g))
	assert.Equal(t, KindInvalid, m.Kind(g))

	// после Clear корень можно установить заново
	m.SetRoot(m.NewGroup(NoNodeID, sp(0, 1)))
	assert.True(t, m.Root().IsValid())

	// индексы переиспользуются: старый id указывает на новый узел
	reused := m.NewInt(7, sp(0, 1))
	assert.Equal(t, g, reused)
	assert.True(t, m.IsInt(g))
	assert.NotEqual(t, uint32(0), m.Epoch())
}

func TestVectorCopiesInput(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	in := []float64{1, 2, 3.5}
	v := m.NewVector(in, sp(0, 12))
	in[0] = 99
	assert.Equal(t, []float64{1, 2, 3.5}, m.VectorValue(v))
	assert.True(t, m.IsVector(v))
	assert.False(t, m.IsFloat(v))
}

func TestAccessorsTolerateWrongKinds(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	s := m.NewString("x", sp(0, 1))
	assert.Equal(t, int64(0), m.IntValue(s))
	assert.Nil(t, m.VectorValue(s))
	assert.Equal(t, NoNodeID, m.AttrValue(s))
	assert.Equal(t, NoNodeID, m.GroupValue(NoNodeID))
	assert.Equal(t, "", m.StringValue(NodeID(999)))
}

func TestStatsMap(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	m.NewInt(1, sp(0, 1))
	m.NewInt(2, sp(0, 1))
	m.NewString("a", sp(0, 1))
	assert.Equal(t, map[string]uint32{"int": 2, "string": 1}, m.Stats().Map())
	assert.Equal(t, uint32(3), m.Stats().Total())
}

func buildInverter(m *Mgr) NodeID {
	strs := m.Strings
	s := func(v string) NodeID { return m.NewString(v, sp(0, 0)) }
	hdr := func(v string) NodeID { return m.NewList([]NodeID{s(v)}, sp(0, 0)) }

	lib := m.NewGroup(hdr("L"), sp(0, 0))
	cell := m.NewGroup(hdr("INV"), sp(0, 0))
	m.AddAttr(cell, m.NewAttr(strs.Intern("area"), m.NewFloat(1.5, sp(0, 0)), sp(0, 0)))
	pin := m.NewGroup(hdr("Y"), sp(0, 0))
	m.AddAttr(pin, m.NewAttr(strs.Intern("function"), m.NewNot(s("A"), sp(0, 0)), sp(0, 0)))
	m.AddAttr(pin, m.NewAttr(strs.Intern("index_1"),
		m.NewList([]NodeID{m.NewVector([]float64{0.1, 1}, sp(0, 0))}, sp(0, 0)), sp(0, 0)))
	m.AddAttr(cell, m.NewAttr(strs.Intern("pin"), pin, sp(0, 0)))
	m.AddAttr(lib, m.NewAttr(strs.Intern("cell"), cell, sp(0, 0)))
	return lib
}

func TestDumpLiberty(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	lib := buildInverter(m)

	want := "library (L) {\n" +
		"  cell (INV) {\n" +
		"    area : 1.5 ;\n" +
		"    pin (Y) {\n" +
		"      function : \"!A\" ;\n" +
		"      index_1 (\"0.1, 1.0\") ;\n" +
		"    }\n" +
		"  }\n" +
		"}\n"
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf, lib))
	assert.Equal(t, want, buf.String())
	assert.Equal(t, want, m.DumpText(lib))
}

func TestFuncTextParenthesizes(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	s := func(v string) NodeID { return m.NewString(v, sp(0, 0)) }

	and := m.NewAnd(s("A"), m.NewOr(s("B"), s("C")))
	assert.Equal(t, "A & (B | C)", m.FuncText(and))

	leftAssoc := m.NewXor(m.NewOr(s("A"), s("B")), s("C"))
	assert.Equal(t, "A | B ^ C", m.FuncText(leftAssoc))

	rightNested := m.NewOr(s("A"), m.NewXor(s("B"), s("C")))
	assert.Equal(t, "A | (B ^ C)", m.FuncText(rightNested))

	notNot := m.NewNot(m.NewNot(s("A"), sp(0, 0)), sp(0, 0))
	assert.Equal(t, "!(!A)", m.FuncText(notNot))

	arith := m.NewMult(m.NewPlus(m.NewFloat(0.3, sp(0, 0)), s("VDD")), m.NewInt(2, sp(0, 0)))
	assert.Equal(t, "(0.3 + VDD) * 2", m.ExprText(arith))
}

func TestDumpTreeAndExport(t *testing.T) {
	m := NewMgr(Hints{}, source.NewInterner())
	lib := buildInverter(m)

	var buf bytes.Buffer
	require.NoError(t, m.DumpTree(&buf, lib))
	assert.Contains(t, buf.String(), "group [")
	assert.Contains(t, buf.String(), "attr [")
	assert.Contains(t, buf.String(), `string [1:0-0] "INV"`)

	exp := m.Export(lib)
	require.NotNil(t, exp)
	assert.Equal(t, "group", exp.Kind)
	require.Len(t, exp.Items, 1)
	assert.Equal(t, "cell", exp.Items[0].Name)
	assert.Equal(t, "group", exp.Items[0].Value.Kind)
	assert.Nil(t, m.Export(NoNodeID))
}

func TestQuoteReadsBack(t *testing.T) {
	for _, text := range []string{"a\tb", `say "hi"`, `C:\lib`, "x\u00e9"} {
		quoted := quote(text)
		fs := source.NewFileSet()
		bag := diag.NewBag(0)
		lx := lexer.New(fs.Get(fs.AddVirtual("q.lib", []byte(quoted))), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		tok := lx.Next()
		assert.Equal(t, text, tok.Text, quoted)
		assert.Equal(t, 0, bag.Len())
	}
	assert.Equal(t, "cell_1", quoteIfNeeded("cell_1"))
	assert.Equal(t, `"1a"`, quoteIfNeeded("1a"))
}
