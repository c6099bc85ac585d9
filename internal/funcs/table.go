package funcs

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Table is the function table: an arena of declarations plus a by-name
// index, since multiple declarations with the same name form overloads
// keyed by parameter signature.
type Table struct {
	data   []Function
	byName map[source.StringID][]ID
}

// NewTable creates an empty function table; slot 0 is reserved for NoID.
func NewTable() *Table {
	return &Table{data: make([]Function, 1, 16), byName: make(map[source.StringID][]ID)}
}

// Get returns a mutable pointer to the function, or nil for an invalid id.
func (t *Table) Get(id ID) *Function {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Declare inserts f and indexes it by name, returning its handle.
func (t *Table) Declare(f Function) ID {
	n, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("function arena overflow: %w", err))
	}
	id := ID(n)
	t.data = append(t.data, f)
	t.byName[f.Name] = append(t.byName[f.Name], id)
	return id
}

// Overloads returns every declaration (across all signatures) sharing
// name, in declaration order.
func (t *Table) Overloads(name source.StringID) []ID {
	return t.byName[name]
}

// FindExact returns a prior declaration under name whose parameter
// signature exactly matches sig, if any - the match the redefinition
// and overload-selection rules key on.
func (t *Table) FindExact(vars *scope.Variables, name source.StringID, sig []hlsltype.TypeID) (ID, bool) {
	for _, id := range t.byName[name] {
		f := t.Get(id)
		if signaturesEqual(f.Signature(vars), sig) {
			return id, true
		}
	}
	return NoID, false
}

func signaturesEqual(a, b []hlsltype.TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
