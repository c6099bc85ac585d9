package scope

import (
	"fmt"

	"fortio.org/safecast"
)

// Variables is a compact slice-based arena of Variable, following the
// arena idiom used throughout this front-end (stable handles rather than
// pointers, so the liveness pass can mutate a variable in place while IR
// nodes keep referencing it by VariableID).
type Variables struct {
	data []Variable
}

func newVariables() *Variables {
	return &Variables{data: make([]Variable, 1, 64)} // slot 0 reserved
}

// New allocates v and returns its stable handle.
func (vs *Variables) New(v Variable) VariableID {
	n, err := safecast.Conv[uint32](len(vs.data))
	if err != nil {
		panic(fmt.Errorf("variable arena overflow: %w", err))
	}
	id := VariableID(n)
	vs.data = append(vs.data, v)
	return id
}

// Get returns a mutable pointer to the variable, or nil for an invalid id.
func (vs *Variables) Get(id VariableID) *Variable {
	if !id.IsValid() || int(id) >= len(vs.data) {
		return nil
	}
	return &vs.data[id]
}

// Len reports how many variables are allocated, excluding the sentinel.
func (vs *Variables) Len() int { return len(vs.data) - 1 }

// Data exposes every allocated variable, sentinel excluded, in
// allocation order (== program declaration order across the whole
// compilation, since each New call appends).
func (vs *Variables) Data() []Variable {
	if len(vs.data) <= 1 {
		return nil
	}
	return vs.data[1:]
}
