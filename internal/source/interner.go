package source

import "slices"

// StringID is a stable handle into a StringInterner, used for identifier
// and field names referenced from types, scopes, and IR nodes.
type StringID uint32

// NoStringID marks the absence of an interned string.
const NoStringID StringID = 0

// StringInterner de-duplicates identifier text so names can be compared
// by handle instead of by string content.
type StringInterner struct {
	byID  []string
	index map[string]StringID
}

// NewStringInterner creates an interner whose slot 0 resolves to "".
func NewStringInterner() *StringInterner {
	return &StringInterner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the stable StringID for s, registering it on first use.
func (in *StringInterner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	id := StringID(len(in.byID))
	cpy := string([]byte(s))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup resolves id back to its text.
func (in *StringInterner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics on an invalid id.
func (in *StringInterner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Snapshot returns a copy of every interned string, index-aligned with
// StringID values.
func (in *StringInterner) Snapshot() []string {
	return slices.Clone(in.byID)
}
