package ast

import (
	"liberty/internal/source"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindVector
	KindPlus
	KindMinus
	KindMult
	KindDiv
	KindAnd
	KindOr
	KindXor
	KindNot
	KindList
	KindGroup
	KindAttr

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindVector:  "vector",
	KindPlus:    "plus",
	KindMinus:   "minus",
	KindMult:    "mult",
	KindDiv:     "div",
	KindAnd:     "and",
	KindOr:      "or",
	KindXor:     "xor",
	KindNot:     "not",
	KindList:    "list",
	KindGroup:   "group",
	KindAttr:    "attr",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "invalid"
}

// IsOpr reports whether k is one of the operator kinds.
func (k Kind) IsOpr() bool {
	return k >= KindPlus && k <= KindNot
}

// IsBool reports whether k is a Boolean function operator.
func (k Kind) IsBool() bool {
	return k >= KindAnd && k <= KindNot
}

// Node is the common header of every tree node. Next links siblings in a
// list or in a group's attribute chain.
type Node struct {
	Kind    Kind
	Span    source.Span
	Next    NodeID
	Payload PayloadID
}

type IntData struct {
	Value int64
}

type FloatData struct {
	Value float64
}

type StringData struct {
	Value source.StringID
}

type VectorData struct {
	Values []float64
}

// OprData holds operands; Opr2 is NoNodeID for KindNot.
type OprData struct {
	Opr1 NodeID
	Opr2 NodeID
}

type ListData struct {
	Head NodeID
	Tail NodeID
	Len  uint32
}

type GroupData struct {
	Value NodeID // List of header values
	Head  NodeID // first attribute
	Tail  NodeID
	Len   uint32
}

type AttrData struct {
	Name  source.StringID
	Value NodeID
}
