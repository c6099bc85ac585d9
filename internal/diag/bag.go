package diag

import (
	"sort"

	"github.com/hlslc/frontend/internal/source"
)

// Bag collects diagnostics for one compilation, tracking the overall
// status monotonically - it never downgrades once an error is seen.
type Bag struct {
	items  []Diagnostic
	status Status
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report appends a diagnostic and raises the bag's status if needed.
func (b *Bag) Report(d Diagnostic) {
	b.items = append(b.items, d)
	switch d.Severity {
	case SevError:
		b.status = StatusError
	case SevWarning:
		if b.status < StatusWarning {
			b.status = StatusWarning
		}
	}
}

// Error reports an error-severity diagnostic; returns the index so callers
// can attach notes via AddNote.
func (b *Bag) Error(code Code, loc source.Location, msg string) int {
	b.Report(Diagnostic{Severity: SevError, Code: code, Message: msg, Loc: loc})
	return len(b.items) - 1
}

// Warning reports a warning-severity diagnostic.
func (b *Bag) Warning(code Code, loc source.Location, msg string) int {
	b.Report(Diagnostic{Severity: SevWarning, Code: code, Message: msg, Loc: loc})
	return len(b.items) - 1
}

// AddNote attaches a note to a previously reported diagnostic by index.
func (b *Bag) AddNote(idx int, loc source.Location, msg string) {
	if idx < 0 || idx >= len(b.items) {
		return
	}
	b.items[idx].Notes = append(b.items[idx].Notes, Note{Loc: loc, Msg: msg})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return b.status == StatusError
}

// HasWarnings reports whether any warning-severity diagnostic was recorded.
func (b *Bag) HasWarnings() bool {
	return b.status >= StatusWarning
}

// Status returns the bag's current overall status.
func (b *Bag) Status() Status {
	return b.status
}

// Items returns a read-only view of the collected diagnostics in report
// order. Callers must not mutate the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len reports how many diagnostics have been collected.
func (b *Bag) Len() int {
	return len(b.items)
}

// Sort orders diagnostics by file, line, column, then severity
// (descending) for stable, deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		li, lj := b.items[i].Loc, b.items[j].Loc
		if li.File != lj.File {
			return li.File < lj.File
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		if li.Col != lj.Col {
			return li.Col < lj.Col
		}
		return b.items[i].Severity > b.items[j].Severity
	})
}
