package ast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the subtree rooted at id back as Liberty text. A group
// prints as a full group statement named after its first attribute
// context; the root prints as "library".
func (m *Mgr) Dump(w io.Writer, id NodeID) error {
	bw := bufio.NewWriter(w)
	d := dumper{m: m, w: bw}
	if m.IsGroup(id) {
		d.group("library", id, 0)
	} else {
		d.value(id)
		d.nl()
	}
	return bw.Flush()
}

// DumpText is Dump into a string.
func (m *Mgr) DumpText(id NodeID) string {
	var b strings.Builder
	_ = m.Dump(&b, id)
	return b.String()
}

type dumper struct {
	m *Mgr
	w *bufio.Writer
}

func (d *dumper) nl() { d.w.WriteByte('\n') }

func (d *dumper) indent(level int) {
	for range level {
		d.w.WriteString("  ")
	}
}

func (d *dumper) group(name string, id NodeID, level int) {
	d.indent(level)
	d.w.WriteString(name)
	d.w.WriteString(" ")
	d.list(d.m.GroupValue(id))
	d.w.WriteString(" {")
	d.nl()
	for a := range d.m.Attrs(id) {
		d.attr(a, level+1)
	}
	d.indent(level)
	d.w.WriteString("}")
	d.nl()
}

func (d *dumper) attr(id NodeID, level int) {
	name := d.m.AttrName(id)
	v := d.m.AttrValue(id)
	switch d.m.Kind(v) {
	case KindGroup:
		d.group(name, v, level)
	case KindList:
		d.indent(level)
		d.w.WriteString(name)
		d.w.WriteString(" ")
		d.list(v)
		d.w.WriteString(" ;")
		d.nl()
	default:
		d.indent(level)
		d.w.WriteString(name)
		d.w.WriteString(" : ")
		d.value(v)
		d.w.WriteString(" ;")
		d.nl()
	}
}

func (d *dumper) list(id NodeID) {
	d.w.WriteString("(")
	first := true
	for e := range d.m.Elems(id) {
		if !first {
			d.w.WriteString(", ")
		}
		first = false
		d.value(e)
	}
	d.w.WriteString(")")
}

func (d *dumper) value(id NodeID) {
	k := d.m.Kind(id)
	switch {
	case k == KindInt:
		d.w.WriteString(strconv.FormatInt(d.m.IntValue(id), 10))
	case k == KindFloat:
		d.w.WriteString(formatFloat(d.m.FloatValue(id)))
	case k == KindString:
		d.w.WriteString(quoteIfNeeded(d.m.StringValue(id)))
	case k == KindVector:
		d.w.WriteString(quote(d.m.vectorText(id)))
	case k.IsBool():
		d.w.WriteString(quote(d.m.FuncText(id)))
	case k.IsOpr():
		d.w.WriteString(d.m.ExprText(id))
	case k == KindList:
		d.list(id)
	default:
		d.w.WriteString("<" + k.String() + ">")
	}
}

func (m *Mgr) vectorText(id NodeID) string {
	vals := m.VectorValue(id)
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quoteIfNeeded leaves plain symbols bare and quotes everything else.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return quote(s)
	}
	return s
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps s the way the scanner reads strings back: only '"' and '\'
// are escaped, other bytes stay literal.
func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// Boolean operator precedence for printing: or/xor < and < not.
func boolPrec(k Kind) int {
	switch k {
	case KindOr, KindXor:
		return 1
	case KindAnd:
		return 2
	case KindNot:
		return 3
	}
	return 4
}

// FuncText renders a Boolean function tree in Liberty function syntax.
func (m *Mgr) FuncText(id NodeID) string {
	var b strings.Builder
	m.funcText(&b, id)
	return b.String()
}

func (m *Mgr) funcText(b *strings.Builder, id NodeID) {
	k := m.Kind(id)
	switch k {
	case KindString:
		b.WriteString(m.StringValue(id))
	case KindInt:
		b.WriteString(strconv.FormatInt(m.IntValue(id), 10))
	case KindNot:
		b.WriteString("!")
		m.funcOperand(b, m.Opr1(id), boolPrec(k), true)
	case KindAnd, KindOr, KindXor:
		op := map[Kind]string{KindAnd: " & ", KindOr: " | ", KindXor: " ^ "}[k]
		m.funcOperand(b, m.Opr1(id), boolPrec(k), false)
		b.WriteString(op)
		m.funcOperand(b, m.Opr2(id), boolPrec(k), true)
	default:
		fmt.Fprintf(b, "<%s>", k)
	}
}

func (m *Mgr) funcOperand(b *strings.Builder, id NodeID, parent int, right bool) {
	p := boolPrec(m.Kind(id))
	if p < parent || (right && p == parent) {
		b.WriteString("(")
		m.funcText(b, id)
		b.WriteString(")")
		return
	}
	m.funcText(b, id)
}

func arithPrec(k Kind) int {
	switch k {
	case KindPlus, KindMinus:
		return 1
	case KindMult, KindDiv:
		return 2
	}
	return 3
}

// ExprText renders an arithmetic expression tree.
func (m *Mgr) ExprText(id NodeID) string {
	var b strings.Builder
	m.exprText(&b, id)
	return b.String()
}

func (m *Mgr) exprText(b *strings.Builder, id NodeID) {
	k := m.Kind(id)
	switch k {
	case KindInt:
		b.WriteString(strconv.FormatInt(m.IntValue(id), 10))
	case KindFloat:
		b.WriteString(formatFloat(m.FloatValue(id)))
	case KindString:
		b.WriteString(m.StringValue(id))
	case KindPlus, KindMinus, KindMult, KindDiv:
		op := map[Kind]string{KindPlus: " + ", KindMinus: " - ", KindMult: " * ", KindDiv: " / "}[k]
		m.exprOperand(b, m.Opr1(id), arithPrec(k), false)
		b.WriteString(op)
		m.exprOperand(b, m.Opr2(id), arithPrec(k), true)
	default:
		fmt.Fprintf(b, "<%s>", k)
	}
}

func (m *Mgr) exprOperand(b *strings.Builder, id NodeID, parent int, right bool) {
	p := arithPrec(m.Kind(id))
	if p < parent || (right && p == parent) {
		b.WriteString("(")
		m.exprText(b, id)
		b.WriteString(")")
		return
	}
	m.exprText(b, id)
}
