package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"liberty/internal/ast"
	"liberty/internal/source"
)

// CheckTree runs the structural invariants on a parsed tree:
//  1. every reachable id is in range and reached exactly once (tree, no cycles);
//  2. operands, list elements, attribute values and group headers are
//     allocated before the node that refers to them;
//  3. every span lies inside sf and composite spans cover their parts;
//  4. attribute chains and list elements run in source order;
//  5. chain lengths match the recorded counts.
func CheckTree(m *ast.Mgr, root ast.NodeID, sf *source.File) error {
	if m == nil || sf == nil {
		return fmt.Errorf("nil manager or file")
	}
	if !m.IsGroup(root) {
		return fmt.Errorf("root %d is %s, want group", root, m.Kind(root))
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := checker{m: m, file: sf.ID, size: size, seen: make(map[ast.NodeID]bool)}
	return c.node(root)
}

type checker struct {
	m    *ast.Mgr
	file source.FileID
	size uint32
	seen map[ast.NodeID]bool
}

func (c *checker) node(id ast.NodeID) error {
	m := c.m
	if !id.IsValid() || uint32(id) > m.Nodes.Len() {
		return fmt.Errorf("node id %d out of range (%d nodes)", id, m.Nodes.Len())
	}
	if c.seen[id] {
		return fmt.Errorf("node %d reached twice", id)
	}
	c.seen[id] = true

	sp := m.Span(id)
	if sp.File != c.file || sp.End < sp.Start || sp.End > c.size {
		return fmt.Errorf("node %d (%s): span %v outside file (size %d)", id, m.Kind(id), sp, c.size)
	}

	k := m.Kind(id)
	switch {
	case k == ast.KindNot:
		return c.child(id, m.Opr1(id))
	case k.IsOpr():
		if err := c.child(id, m.Opr1(id)); err != nil {
			return err
		}
		return c.child(id, m.Opr2(id))
	case k == ast.KindList:
		return c.chain(id, m.Elems(id), m.ListLen(id), true)
	case k == ast.KindAttr:
		return c.child(id, m.AttrValue(id))
	case k == ast.KindGroup:
		if err := c.child(id, m.GroupValue(id)); err != nil {
			return err
		}
		// атрибуты создаются после группы, поэтому порядок id не проверяем
		return c.chain(id, m.Attrs(id), m.AttrLen(id), false)
	case k == ast.KindInvalid:
		return fmt.Errorf("node %d has invalid kind", id)
	}
	return nil
}

// child checks a reference from parent to an operand allocated before it.
func (c *checker) child(parent, id ast.NodeID) error {
	if id >= parent {
		return fmt.Errorf("node %d (%s) refers to later node %d", parent, c.m.Kind(parent), id)
	}
	if err := c.node(id); err != nil {
		return err
	}
	return c.covers(parent, id)
}

func (c *checker) covers(parent, id ast.NodeID) error {
	if ps, cs := c.m.Span(parent), c.m.Span(id); !ps.Contains(cs) {
		return fmt.Errorf("node %d (%s) span %v does not cover child %d span %v", parent, c.m.Kind(parent), ps, id, cs)
	}
	return nil
}

func (c *checker) chain(parent ast.NodeID, items func(func(ast.NodeID) bool), want int, before bool) error {
	n := 0
	var prev source.Span
	for id := range items {
		n++
		if n > want {
			return fmt.Errorf("node %d: chain longer than recorded length %d", parent, want)
		}
		if before && id >= parent {
			return fmt.Errorf("node %d (%s) refers to later node %d", parent, c.m.Kind(parent), id)
		}
		if err := c.node(id); err != nil {
			return err
		}
		if err := c.covers(parent, id); err != nil {
			return err
		}
		sp := c.m.Span(id)
		if n > 1 && sp.Start < prev.Start {
			return fmt.Errorf("node %d: element %d at %v precedes previous element at %v", parent, id, sp, prev)
		}
		prev = sp
	}
	if n != want {
		return fmt.Errorf("node %d: chain has %d elements, recorded %d", parent, n, want)
	}
	return nil
}
