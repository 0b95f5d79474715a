package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one file: "load", "cache" or
// "parse". ParseDir also sends a "file" end event once a file is done.
type PhaseEvent struct {
	Name    string
	Path    string
	Status  PhaseStatus
	Elapsed time.Duration
	OK      bool // только для PhaseEnd
}

// PhaseObserver receives phase events emitted during Parse and ParseDir.
// ParseDir calls it from several goroutines.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
