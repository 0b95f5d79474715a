package ast

type (
	// NodeID addresses a node inside one Mgr.
	NodeID uint32
	// PayloadID addresses a per-kind payload record.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
