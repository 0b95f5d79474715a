package ast

import (
	"slices"

	"liberty/internal/source"
)

// Hints are initial arena capacities. Zero fields get defaults.
type Hints struct{ Nodes, Vectors, Oprs, Lists, Groups, Attrs uint }

// Mgr owns every node of one parse session. It is not safe for concurrent
// mutation; parse different files with different managers.
type Mgr struct {
	Nodes     *Arena[Node]
	Ints      *Arena[IntData]
	Floats    *Arena[FloatData]
	Strs      *Arena[StringData]
	Vectors   *Arena[VectorData]
	Oprs      *Arena[OprData]
	Lists     *Arena[ListData]
	Groups    *Arena[GroupData]
	AttrArena *Arena[AttrData]

	Strings *source.Interner

	root  NodeID
	epoch uint32
	stats Stats
}

// NewMgr creates a manager. A nil interner selects source.Shared().
func NewMgr(hints Hints, strings *source.Interner) *Mgr {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 10
	}
	if hints.Vectors == 0 {
		hints.Vectors = 1 << 6
	}
	if hints.Oprs == 0 {
		hints.Oprs = 1 << 6
	}
	if hints.Lists == 0 {
		hints.Lists = 1 << 8
	}
	if hints.Groups == 0 {
		hints.Groups = 1 << 7
	}
	if hints.Attrs == 0 {
		hints.Attrs = 1 << 9
	}
	if strings == nil {
		strings = source.Shared()
	}
	return &Mgr{
		Nodes:     NewArena[Node](hints.Nodes),
		Ints:      NewArena[IntData](hints.Nodes / 4),
		Floats:    NewArena[FloatData](hints.Nodes / 4),
		Strs:      NewArena[StringData](hints.Nodes / 4),
		Vectors:   NewArena[VectorData](hints.Vectors),
		Oprs:      NewArena[OprData](hints.Oprs),
		Lists:     NewArena[ListData](hints.Lists),
		Groups:    NewArena[GroupData](hints.Groups),
		AttrArena: NewArena[AttrData](hints.Attrs),
		Strings:   strings,
	}
}

func (m *Mgr) new(kind Kind, sp source.Span, payload PayloadID) NodeID {
	m.stats.add(kind)
	return NodeID(m.Nodes.Allocate(Node{Kind: kind, Span: sp, Payload: payload}))
}

func (m *Mgr) NewInt(v int64, sp source.Span) NodeID {
	return m.new(KindInt, sp, PayloadID(m.Ints.Allocate(IntData{Value: v})))
}

func (m *Mgr) NewFloat(v float64, sp source.Span) NodeID {
	return m.new(KindFloat, sp, PayloadID(m.Floats.Allocate(FloatData{Value: v})))
}

// NewString interns s and wraps it in a String node.
func (m *Mgr) NewString(s string, sp source.Span) NodeID {
	return m.NewStringID(m.Strings.Intern(s), sp)
}

func (m *Mgr) NewStringID(id source.StringID, sp source.Span) NodeID {
	return m.new(KindString, sp, PayloadID(m.Strs.Allocate(StringData{Value: id})))
}

// NewVector copies values into a Vector node.
func (m *Mgr) NewVector(values []float64, sp source.Span) NodeID {
	return m.new(KindVector, sp, PayloadID(m.Vectors.Allocate(VectorData{Values: slices.Clone(values)})))
}

func (m *Mgr) newBinary(kind Kind, a, b NodeID) NodeID {
	sp := m.Span(a).Cover(m.Span(b))
	return m.new(kind, sp, PayloadID(m.Oprs.Allocate(OprData{Opr1: a, Opr2: b})))
}

func (m *Mgr) NewPlus(a, b NodeID) NodeID  { return m.newBinary(KindPlus, a, b) }
func (m *Mgr) NewMinus(a, b NodeID) NodeID { return m.newBinary(KindMinus, a, b) }
func (m *Mgr) NewMult(a, b NodeID) NodeID  { return m.newBinary(KindMult, a, b) }
func (m *Mgr) NewDiv(a, b NodeID) NodeID   { return m.newBinary(KindDiv, a, b) }
func (m *Mgr) NewAnd(a, b NodeID) NodeID   { return m.newBinary(KindAnd, a, b) }
func (m *Mgr) NewOr(a, b NodeID) NodeID    { return m.newBinary(KindOr, a, b) }
func (m *Mgr) NewXor(a, b NodeID) NodeID   { return m.newBinary(KindXor, a, b) }

// NewNot negates a. sp is the span of the operator token; the node spans
// both the operator and the operand.
func (m *Mgr) NewNot(a NodeID, sp source.Span) NodeID {
	return m.new(KindNot, sp.Cover(m.Span(a)), PayloadID(m.Oprs.Allocate(OprData{Opr1: a})))
}

// NewList links elems in order. Each element must not already be linked
// into another list or chain.
func (m *Mgr) NewList(elems []NodeID, sp source.Span) NodeID {
	data := ListData{}
	for _, e := range elems {
		if data.Tail.IsValid() {
			m.Nodes.Get(uint32(data.Tail)).Next = e
		} else {
			data.Head = e
		}
		data.Tail = e
		data.Len++
	}
	return m.new(KindList, sp, PayloadID(m.Lists.Allocate(data)))
}

// NewGroup creates a group with header value list value and an empty
// attribute chain. Attributes are appended with AddAttr.
func (m *Mgr) NewGroup(value NodeID, sp source.Span) NodeID {
	return m.new(KindGroup, sp.Cover(m.Span(value)), PayloadID(m.Groups.Allocate(GroupData{Value: value})))
}

// AddAttr appends attr to the end of group's chain and widens the group span.
func (m *Mgr) AddAttr(group, attr NodeID) {
	g := m.groupData(group)
	if g == nil || m.Kind(attr) != KindAttr {
		return
	}
	if g.Tail.IsValid() {
		m.Nodes.Get(uint32(g.Tail)).Next = attr
	} else {
		g.Head = attr
	}
	g.Tail = attr
	g.Len++
	n := m.Nodes.Get(uint32(group))
	n.Span = n.Span.Cover(m.Span(attr))
}

// CloseGroup widens the group span to include the closing brace.
func (m *Mgr) CloseGroup(group NodeID, sp source.Span) {
	if n := m.node(group); n != nil && n.Kind == KindGroup {
		n.Span = n.Span.Cover(sp)
	}
}

// NewAttr pairs a name with a value node; sp is usually the name span.
func (m *Mgr) NewAttr(name source.StringID, value NodeID, sp source.Span) NodeID {
	return m.new(KindAttr, sp.Cover(m.Span(value)), PayloadID(m.AttrArena.Allocate(AttrData{Name: name, Value: value})))
}

// SetRoot records the library group. It may be called once per session.
func (m *Mgr) SetRoot(id NodeID) {
	if m.root.IsValid() {
		panic("ast: root already set")
	}
	m.root = id
}

// Root returns the library group or NoNodeID.
func (m *Mgr) Root() NodeID { return m.root }

// Epoch counts Clear calls. Ids taken in an earlier epoch are meaningless.
func (m *Mgr) Epoch() uint32 { return m.epoch }

// Clear drops every node, forgets the root and resets statistics.
// Interned names survive; the interner is shared.
func (m *Mgr) Clear() {
	m.Nodes.Reset()
	m.Ints.Reset()
	m.Floats.Reset()
	m.Strs.Reset()
	m.Vectors.Reset()
	m.Oprs.Reset()
	m.Lists.Reset()
	m.Groups.Reset()
	m.AttrArena.Reset()
	m.root = NoNodeID
	m.stats = Stats{}
	m.epoch++
}

// Stats returns per-kind allocation counters.
func (m *Mgr) Stats() Stats { return m.stats }

// Stats counts allocated nodes per kind.
type Stats struct {
	counts [numKinds]uint32
}

func (s *Stats) add(k Kind) { s.counts[k]++ }

// Count returns the number of nodes of kind k.
func (s Stats) Count(k Kind) uint32 {
	if k >= numKinds {
		return 0
	}
	return s.counts[k]
}

// Total returns the number of nodes.
func (s Stats) Total() uint32 {
	var n uint32
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Map returns non-zero counters keyed by kind name.
func (s Stats) Map() map[string]uint32 {
	out := make(map[string]uint32)
	for k, c := range s.counts {
		if c != 0 {
			out[Kind(k).String()] = c
		}
	}
	return out
}
