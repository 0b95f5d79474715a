package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations must be safe for
// concurrent use: directory parses emit from several workers.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// Dumper is implemented by tracers that keep events in memory.
type Dumper interface {
	Dump(w io.Writer, format Format) error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// Tee forwards every event to several tracers. Each child filters by its
// own level; the tee itself reports level.
type Tee struct {
	level   Level
	targets []Tracer
	ring    *RingTracer
}

// NewTee builds a tee over targets. The first RingTracer among them is
// used for Dump.
func NewTee(level Level, targets ...Tracer) *Tee {
	t := &Tee{level: level, targets: targets}
	for _, target := range targets {
		if r, ok := target.(*RingTracer); ok {
			t.ring = r
			break
		}
	}
	return t
}

func (t *Tee) Emit(ev *Event) {
	for _, target := range t.targets {
		// копия: StreamTracer проставляет Seq прямо в событии
		cp := *ev
		target.Emit(&cp)
	}
}

func (t *Tee) Flush() error {
	var errs []error
	for _, target := range t.targets {
		errs = append(errs, target.Flush())
	}
	return errors.Join(errs...)
}

func (t *Tee) Close() error {
	var errs []error
	for _, target := range t.targets {
		errs = append(errs, target.Close())
	}
	return errors.Join(errs...)
}

func (t *Tee) Level() Level  { return t.level }
func (t *Tee) Enabled() bool { return t.level > LevelOff }

// Dump writes the ring child's events; without one it writes nothing.
func (t *Tee) Dump(w io.Writer, format Format) error {
	if t.ring == nil {
		return nil
	}
	return t.ring.Dump(w, format)
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // сразу в Output
	ModeRing                          // только в памяти, Dump по запросу
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	for i, name := range modeNames {
		if name != "" && strings.EqualFold(s, name) {
			return StorageMode(i), nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto: ndjson для *.ndjson и *.jsonl, иначе text
	Output     io.Writer     // приоритетнее OutputPath
	OutputPath string        // "-" или пусто: stderr
	RingSize   int           // 0: 4096
	Heartbeat  time.Duration // не используется New; см. StartHeartbeat
	Session    string        // пусто: NewSession()
}

// ResolvedFormat resolves FormatAuto by the extension of OutputPath.
func (cfg Config) ResolvedFormat() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	for _, ext := range []string{".ndjson", ".jsonl"} {
		if strings.HasSuffix(cfg.OutputPath, ext) {
			return FormatNDJSON
		}
	}
	return FormatText
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Session == "" {
		cfg.Session = NewSession()
	}

	var stream, ring Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream = NewStreamTracer(w, cfg.Level, cfg.ResolvedFormat(), cfg.Session)
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		ring = NewRingTracer(cfg.RingSize, cfg.Level)
	}

	switch {
	case stream != nil && ring != nil:
		return NewTee(cfg.Level, stream, ring), nil
	case stream != nil:
		return stream, nil
	case ring != nil:
		return ring, nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
