package ast

import (
	"fmt"
	"io"
	"strings"
)

// DumpTree writes a debugging view of the subtree: one node per line with
// its kind, span and value.
func (m *Mgr) DumpTree(w io.Writer, id NodeID) error {
	var b strings.Builder
	m.tree(&b, id, "", "")
	_, err := io.WriteString(w, b.String())
	return err
}

func (m *Mgr) tree(b *strings.Builder, id NodeID, prefix, label string) {
	b.WriteString(prefix)
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	k := m.Kind(id)
	fmt.Fprintf(b, "%s [%s]", k, m.Span(id))
	switch k {
	case KindInt, KindFloat, KindString, KindVector:
		b.WriteString(" ")
		b.WriteString(m.leafText(id))
	case KindAttr:
		fmt.Fprintf(b, " %s", m.AttrName(id))
	}
	b.WriteString("\n")

	child := prefix + "  "
	switch {
	case k.IsOpr():
		m.tree(b, m.Opr1(id), child, "")
		if k != KindNot {
			m.tree(b, m.Opr2(id), child, "")
		}
	case k == KindList:
		for e := range m.Elems(id) {
			m.tree(b, e, child, "")
		}
	case k == KindGroup:
		m.tree(b, m.GroupValue(id), child, "value")
		for a := range m.Attrs(id) {
			m.tree(b, a, child, "")
		}
	case k == KindAttr:
		m.tree(b, m.AttrValue(id), child, "")
	}
}

func (m *Mgr) leafText(id NodeID) string {
	switch m.Kind(id) {
	case KindInt:
		return fmt.Sprint(m.IntValue(id))
	case KindFloat:
		return formatFloat(m.FloatValue(id))
	case KindString:
		return fmt.Sprintf("%q", m.StringValue(id))
	case KindVector:
		return "[" + m.vectorText(id) + "]"
	}
	return ""
}
