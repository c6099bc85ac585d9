// Package funcs implements the function table: named entries, each
// holding a set of overloads keyed by parameter signature.
package funcs

// ID is a stable handle into a Table's function arena.
type ID uint32

// NoID marks the absence of a function reference.
const NoID ID = 0

// IsValid reports whether id names an allocated function.
func (id ID) IsValid() bool { return id != NoID }
