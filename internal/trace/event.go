package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // начало операции
	KindSpanEnd                   // конец операции
	KindPoint                     // мгновенное событие
	KindHeartbeat                 // периодический сигнал живости
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a CLI command or a directory walk.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one phase over one file: load, cache lookup, parse.
	ScopePass
	// ScopeFile covers one file of a directory parse.
	ScopeFile
	// ScopeNode is one event per parsed attribute (the debug echo).
	ScopeNode
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. SpanID and ParentID link begin and end
// events of nested spans; GID tells apart the workers of a directory parse.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивает tracer при записи
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	GID      uint64
	Name     string // "parse", "file", имя атрибута
	Detail   string
	Extra    map[string]string
}
