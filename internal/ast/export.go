package ast

// ExportNode is a plain, serialisable copy of a subtree used for JSON output.
type ExportNode struct {
	Kind   string        `json:"kind"`
	Name   string        `json:"name,omitempty"`
	Int    *int64        `json:"int,omitempty"`
	Float  *float64      `json:"float,omitempty"`
	String *string       `json:"string,omitempty"`
	Vector []float64     `json:"vector,omitempty"`
	Value  *ExportNode   `json:"value,omitempty"`
	Items  []*ExportNode `json:"items,omitempty"`
}

// Export copies the subtree rooted at id.
func (m *Mgr) Export(id NodeID) *ExportNode {
	k := m.Kind(id)
	if k == KindInvalid {
		return nil
	}
	out := &ExportNode{Kind: k.String()}
	switch {
	case k == KindInt:
		v := m.IntValue(id)
		out.Int = &v
	case k == KindFloat:
		v := m.FloatValue(id)
		out.Float = &v
	case k == KindString:
		v := m.StringValue(id)
		out.String = &v
	case k == KindVector:
		out.Vector = append([]float64{}, m.VectorValue(id)...)
	case k.IsOpr():
		out.Items = append(out.Items, m.Export(m.Opr1(id)))
		if k != KindNot {
			out.Items = append(out.Items, m.Export(m.Opr2(id)))
		}
	case k == KindList:
		for e := range m.Elems(id) {
			out.Items = append(out.Items, m.Export(e))
		}
	case k == KindGroup:
		out.Value = m.Export(m.GroupValue(id))
		for a := range m.Attrs(id) {
			out.Items = append(out.Items, m.Export(a))
		}
	case k == KindAttr:
		out.Name = m.AttrName(id)
		out.Value = m.Export(m.AttrValue(id))
	}
	return out
}
