package diag

import (
	"cmp"
	"slices"

	"liberty/internal/source"
)

// Bag collects the diagnostics of one file. It is not safe for concurrent
// use; directory parses give every worker its own Bag and merge later.
type Bag struct {
	items []Diagnostic
	max   int // <= 0: без лимита
}

// NewBag creates a bag that keeps at most max diagnostics.
func NewBag(max int) *Bag {
	hint := 64
	if max > 0 {
		hint = min(max, hint)
	}
	return &Bag{items: make([]Diagnostic, 0, hint), max: max}
}

// Add stores d unless the bag is full; the result tells which happened.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) full() bool { return b.max > 0 && len(b.items) >= b.max }

func (b *Bag) Cap() int { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the stored diagnostics. The slice aliases the bag; do not
// modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) count(floor Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= floor {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool { return b.count(SevError) > 0 }

// HasWarnings reports a warning or anything worse.
func (b *Bag) HasWarnings() bool { return b.count(SevWarning) > 0 }

func (b *Bag) ErrorCount() int { return b.count(SevError) }

// Merge appends everything from other, raising the limit when needed so
// that nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start, end, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic of every code, primary span and message.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
		msg  string
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary, d.Message}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
