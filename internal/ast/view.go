package ast

import (
	"iter"

	"liberty/internal/source"
)

// Read-only navigation. Every accessor tolerates NoNodeID and ids past the
// end of the arena: predicates return false and values return zero. Ids are
// not tagged with the epoch, so an id taken before Clear may resolve to a
// node allocated after it; compare Epoch to detect that.

func (m *Mgr) node(id NodeID) *Node {
	return m.Nodes.Get(uint32(id))
}

func (m *Mgr) Get(id NodeID) *Node { return m.node(id) }

func (m *Mgr) Kind(id NodeID) Kind {
	if n := m.node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (m *Mgr) Span(id NodeID) source.Span {
	if n := m.node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// Next returns the following sibling in a list or attribute chain.
func (m *Mgr) Next(id NodeID) NodeID {
	if n := m.node(id); n != nil {
		return n.Next
	}
	return NoNodeID
}

func (m *Mgr) IsInt(id NodeID) bool { return m.Kind(id) == KindInt }

// IsFloat is true for floats and also for ints: an integer literal is a
// valid float value.
func (m *Mgr) IsFloat(id NodeID) bool {
	k := m.Kind(id)
	return k == KindFloat || k == KindInt
}

func (m *Mgr) IsString(id NodeID) bool { return m.Kind(id) == KindString }
func (m *Mgr) IsVector(id NodeID) bool { return m.Kind(id) == KindVector }
func (m *Mgr) IsOpr(id NodeID) bool    { return m.Kind(id).IsOpr() }
func (m *Mgr) IsList(id NodeID) bool   { return m.Kind(id) == KindList }
func (m *Mgr) IsGroup(id NodeID) bool  { return m.Kind(id) == KindGroup }
func (m *Mgr) IsAttr(id NodeID) bool   { return m.Kind(id) == KindAttr }

func (m *Mgr) payload(id NodeID, kind Kind) uint32 {
	n := m.node(id)
	if n == nil || n.Kind != kind {
		return 0
	}
	return uint32(n.Payload)
}

func (m *Mgr) IntValue(id NodeID) int64 {
	if d := m.Ints.Get(m.payload(id, KindInt)); d != nil {
		return d.Value
	}
	return 0
}

// FloatValue returns the value of a Float node, or the widened value of an Int.
func (m *Mgr) FloatValue(id NodeID) float64 {
	if m.IsInt(id) {
		return float64(m.IntValue(id))
	}
	if d := m.Floats.Get(m.payload(id, KindFloat)); d != nil {
		return d.Value
	}
	return 0
}

func (m *Mgr) StringID(id NodeID) source.StringID {
	if d := m.Strs.Get(m.payload(id, KindString)); d != nil {
		return d.Value
	}
	return source.NoStringID
}

func (m *Mgr) StringValue(id NodeID) string {
	s, _ := m.Strings.Lookup(m.StringID(id))
	return s
}

// VectorValue returns the stored slice; callers must not modify it.
func (m *Mgr) VectorValue(id NodeID) []float64 {
	if d := m.Vectors.Get(m.payload(id, KindVector)); d != nil {
		return d.Values
	}
	return nil
}

func (m *Mgr) oprData(id NodeID) *OprData {
	n := m.node(id)
	if n == nil || !n.Kind.IsOpr() {
		return nil
	}
	return m.Oprs.Get(uint32(n.Payload))
}

func (m *Mgr) Opr1(id NodeID) NodeID {
	if d := m.oprData(id); d != nil {
		return d.Opr1
	}
	return NoNodeID
}

func (m *Mgr) Opr2(id NodeID) NodeID {
	if d := m.oprData(id); d != nil {
		return d.Opr2
	}
	return NoNodeID
}

func (m *Mgr) listData(id NodeID) *ListData {
	return m.Lists.Get(m.payload(id, KindList))
}

// ListTop returns the first element of a list.
func (m *Mgr) ListTop(id NodeID) NodeID {
	if d := m.listData(id); d != nil {
		return d.Head
	}
	return NoNodeID
}

func (m *Mgr) ListLen(id NodeID) int {
	if d := m.listData(id); d != nil {
		return int(d.Len)
	}
	return 0
}

// ListElem returns the element at pos (0-based) or NoNodeID.
func (m *Mgr) ListElem(id NodeID, pos int) NodeID {
	if pos < 0 {
		return NoNodeID
	}
	e := m.ListTop(id)
	for ; pos > 0 && e.IsValid(); pos-- {
		e = m.Next(e)
	}
	return e
}

// Elems iterates the elements of a list.
func (m *Mgr) Elems(id NodeID) iter.Seq[NodeID] {
	return m.chain(m.ListTop(id))
}

func (m *Mgr) groupData(id NodeID) *GroupData {
	return m.Groups.Get(m.payload(id, KindGroup))
}

// GroupValue returns the header value list of a group.
func (m *Mgr) GroupValue(id NodeID) NodeID {
	if d := m.groupData(id); d != nil {
		return d.Value
	}
	return NoNodeID
}

// AttrTop returns the first attribute of a group.
func (m *Mgr) AttrTop(id NodeID) NodeID {
	if d := m.groupData(id); d != nil {
		return d.Head
	}
	return NoNodeID
}

func (m *Mgr) AttrLen(id NodeID) int {
	if d := m.groupData(id); d != nil {
		return int(d.Len)
	}
	return 0
}

// Attrs iterates the attribute chain of a group in declaration order.
func (m *Mgr) Attrs(group NodeID) iter.Seq[NodeID] {
	return m.chain(m.AttrTop(group))
}

func (m *Mgr) chain(head NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for e := head; e.IsValid(); e = m.Next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

func (m *Mgr) attrData(id NodeID) *AttrData {
	return m.AttrArena.Get(m.payload(id, KindAttr))
}

func (m *Mgr) AttrNameID(id NodeID) source.StringID {
	if d := m.attrData(id); d != nil {
		return d.Name
	}
	return source.NoStringID
}

func (m *Mgr) AttrName(id NodeID) string {
	s, _ := m.Strings.Lookup(m.AttrNameID(id))
	return s
}

func (m *Mgr) AttrValue(id NodeID) NodeID {
	if d := m.attrData(id); d != nil {
		return d.Value
	}
	return NoNodeID
}

// GroupName returns the first header value of a group when it is a string,
// e.g. "INV" for cell (INV).
func (m *Mgr) GroupName(id NodeID) string {
	return m.StringValue(m.ListTop(m.GroupValue(id)))
}

// FindAttr returns the first attribute of group called name.
func (m *Mgr) FindAttr(group NodeID, name string) NodeID {
	for a := range m.Attrs(group) {
		if m.AttrName(a) == name {
			return a
		}
	}
	return NoNodeID
}

// FindAttrs returns every attribute of group called name, in order.
func (m *Mgr) FindAttrs(group NodeID, name string) []NodeID {
	var out []NodeID
	for a := range m.Attrs(group) {
		if m.AttrName(a) == name {
			out = append(out, a)
		}
	}
	return out
}
