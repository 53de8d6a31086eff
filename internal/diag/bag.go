package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a limit and counts what it had to drop.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag returns a bag holding at most limit diagnostics; limits that do not
// fit uint16 are clamped.
func NewBag(limit int) *Bag {
	capacity, err := safecast.Conv[uint16](limit)
	if err != nil {
		capacity = ^uint16(0)
		if limit < 0 {
			capacity = 0
		}
	}
	return &Bag{items: make([]Diagnostic, 0, min(capacity, 64)), max: capacity}
}

// Add appends d unless the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Report makes a Bag usable as a Reporter.
func (b *Bag) Report(d Diagnostic) {
	b.Add(d)
}

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the backing slice; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by subject, then severity (errors first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if c := cmp.Compare(x.Subject, y.Subject); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Code, y.Code)
	})
}

// Dedup keeps the first diagnostic of each code and subject pair.
func (b *Bag) Dedup() {
	type key struct {
		code    Code
		subject string
	}
	seen := make(map[key]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Subject}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}
