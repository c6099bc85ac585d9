package scope

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/source"
)

// Stack is the scope tree plus the variable arena backing every scope's
// declarations. The root scope ("globals") is created by NewStack and
// seeded with the predefined types before parsing begins.
type Stack struct {
	scopes []Scope
	vars   *Variables
	path   []ID // current scope nesting, path[0] is always the global scope
}

// NewStack creates a Stack with a populated global scope.
func NewStack(predefined map[source.StringID]hlsltype.TypeID) *Stack {
	st := &Stack{
		scopes: make([]Scope, 1, 16), // slot 0 reserved for NoID
		vars:   newVariables(),
	}
	global := st.push(NoID, true)
	g := st.Get(global)
	for name, id := range predefined {
		g.types[name] = id
	}
	st.path = []ID{global}
	return st
}

func (st *Stack) push(parent ID, isGlobal bool) ID {
	n, err := safecast.Conv[uint32](len(st.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ID(n)
	st.scopes = append(st.scopes, *newScope(parent, isGlobal))
	return id
}

// Get returns a mutable pointer to the scope, or nil for an invalid id.
func (st *Stack) Get(id ID) *Scope {
	if !id.IsValid() || int(id) >= len(st.scopes) {
		return nil
	}
	return &st.scopes[id]
}

// Global returns the root scope's ID.
func (st *Stack) Global() ID {
	return ID(1)
}

// Current returns the innermost active scope.
func (st *Stack) Current() ID {
	return st.path[len(st.path)-1]
}

// InGlobalScope reports whether the innermost active scope is the root.
func (st *Stack) InGlobalScope() bool {
	return st.Current() == st.Global()
}

// Enter pushes a fresh child scope onto the stack and returns its ID.
func (st *Stack) Enter() ID {
	id := st.push(st.Current(), false)
	st.path = append(st.path, id)
	return id
}

// Leave pops the innermost scope. Leaving the global scope is a no-op,
// since the compilation context owns it for its whole lifetime.
func (st *Stack) Leave() {
	if len(st.path) <= 1 {
		return
	}
	st.path = st.path[:len(st.path)-1]
}

// Variables returns the backing variable arena, so the liveness pass and
// IR builder can resolve VariableID handles.
func (st *Stack) Variables() *Variables {
	return st.vars
}

// Declare inserts v into the current scope and returns its handle. ok is
// false when a variable with the same name already exists in this exact
// scope, which is a name-collision error; existing names the caller's
// earlier declaration.
func (st *Stack) Declare(v Variable) (id VariableID, existing VariableID, ok bool) {
	cur := st.Get(st.Current())
	if prior, found := cur.varIndex[v.Name]; found {
		return NoVariableID, prior, false
	}
	id = st.vars.New(v)
	cur.varIndex[v.Name] = id
	cur.vars = append(cur.vars, id)
	return id, NoVariableID, true
}

// Lookup walks outward from the current scope looking for a variable
// named name, returning the innermost match.
func (st *Stack) Lookup(name source.StringID) (VariableID, bool) {
	for i := len(st.path) - 1; i >= 0; i-- {
		s := st.Get(st.path[i])
		if id, ok := s.varIndex[name]; ok {
			return id, true
		}
	}
	return NoVariableID, false
}

// LookupInScope looks up name only within the given scope, not its
// ancestors; used for redefinition checks scoped to exactly one block.
func (st *Stack) LookupInScope(scope ID, name source.StringID) (VariableID, bool) {
	s := st.Get(scope)
	if s == nil {
		return NoVariableID, false
	}
	id, ok := s.varIndex[name]
	return id, ok
}

// DeclareType inserts a named type into the current scope's type map.
// ok is false when the name is already bound in this exact scope:
// typedef redefinition is an error.
func (st *Stack) DeclareType(name source.StringID, t hlsltype.TypeID) bool {
	cur := st.Get(st.Current())
	if _, exists := cur.types[name]; exists {
		return false
	}
	cur.types[name] = t
	return true
}

// LookupType walks outward from the current scope for a type name.
func (st *Stack) LookupType(name source.StringID) (hlsltype.TypeID, bool) {
	for i := len(st.path) - 1; i >= 0; i-- {
		s := st.Get(st.path[i])
		if id, ok := s.types[name]; ok {
			return id, true
		}
	}
	return hlsltype.NoTypeID, false
}
