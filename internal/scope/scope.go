package scope

import (
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/source"
)

// Scope is one lexical scope: a parent link, the variables declared
// directly in it (insertion order preserved), and a map from type name
// to type.
type Scope struct {
	Parent ID
	IsGlobal bool

	vars     []VariableID
	varIndex map[source.StringID]VariableID
	types    map[source.StringID]hlsltype.TypeID
}

func newScope(parent ID, isGlobal bool) *Scope {
	return &Scope{
		Parent:   parent,
		IsGlobal: isGlobal,
		varIndex: make(map[source.StringID]VariableID),
		types:    make(map[source.StringID]hlsltype.TypeID),
	}
}

// Vars returns the scope's own variables in declaration order.
func (s *Scope) Vars() []VariableID {
	return s.vars
}
