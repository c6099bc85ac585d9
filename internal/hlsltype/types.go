package hlsltype

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/hlslc/frontend/internal/source"
)

// TypeID is a stable handle into a Registry. Zero is the invalid sentinel.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Type is the descriptor carried for every HLSL type.
type Type struct {
	Class Class
	Base  Base
	DimX  uint8
	DimY  uint8
	Mods  Modifiers

	// ArrayElem/ArrayLen are populated when Class == ClassArray.
	ArrayElem TypeID
	ArrayLen  uint32

	// StructSlot indexes into Registry.structs when Class == ClassStruct.
	StructSlot uint32

	// Name optionally names the type (structs and typedefs); zero means
	// anonymous.
	Name source.StringID
}

// IsScalar/IsVector/IsMatrix/IsNumeric classify by Class+Base together.
func (t Type) IsScalar() bool { return t.Class == ClassScalar }
func (t Type) IsVector() bool { return t.Class == ClassVector }
func (t Type) IsMatrix() bool { return t.Class == ClassMatrix }
func (t Type) IsNumeric() bool {
	return (t.Class == ClassScalar || t.Class == ClassVector || t.Class == ClassMatrix) && t.Base.IsNumeric()
}

// ComponentCount returns dimx*dimy, the total scalar-component count used
// by initializer and constructor size checks.
func (t Type) ComponentCount() int {
	return int(t.DimX) * int(t.DimY)
}

// RegSize is the derived register footprint: for a matrix it is the row
// count (DimY) if row-major, else the column count (DimX); for every
// other numeric class it is the component count.
func (t Type) RegSize() int {
	if t.Class == ClassMatrix {
		if rowMajor, ok := t.Mods.HasMajority(); ok && rowMajor {
			return int(t.DimY)
		}
		return int(t.DimX)
	}
	return t.ComponentCount()
}

// Registry owns every allocated Type, interning by full structural value
// so identical descriptors (class/base/dims/array/struct-slot/modifiers)
// share a TypeID.
type Registry struct {
	types   []Type
	index   map[Type]TypeID
	structs []StructInfo
	strings *source.StringInterner
}

// NewRegistry creates an empty registry. strings is the shared identifier
// interner used for struct/typedef names and field names.
func NewRegistry(strings *source.StringInterner) *Registry {
	r := &Registry{
		index:   make(map[Type]TypeID, 256),
		strings: strings,
	}
	r.types = append(r.types, Type{}) // slot 0 reserved for NoTypeID
	r.structs = append(r.structs, StructInfo{})
	return r
}

// Intern returns the stable TypeID for t, allocating a new slot only if
// an identical descriptor hasn't been seen yet. Types with StructSlot set
// are never deduplicated against each other structurally beyond the slot
// itself, since each struct declaration owns a distinct field list.
func (r *Registry) Intern(t Type) TypeID {
	if t.Class == ClassInvalid {
		return NoTypeID
	}
	if id, ok := r.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(r.types))
	if err != nil {
		panic(fmt.Errorf("type registry overflow: %w", err))
	}
	id := TypeID(n)
	r.types = append(r.types, t)
	r.index[t] = id
	return id
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(r.types) {
		return Type{}, false
	}
	return r.types[id], true
}

// MustLookup panics on an invalid id; used once a caller has already
// validated the handle.
func (r *Registry) MustLookup(id TypeID) Type {
	t, ok := r.Lookup(id)
	if !ok {
		panic("hlsltype: invalid TypeID")
	}
	return t
}

// Clone overlays mods onto the descriptor named by base and interns the
// result: clone the base type and overlay the modifier bits. When
// neither the base type nor mods specify a matrix majority and the
// descriptor is a matrix, defaultRowMajor injects the compilation-wide
// default majority.
func (r *Registry) Clone(base TypeID, mods Modifiers, defaultRowMajor bool) (TypeID, bool) {
	t, ok := r.Lookup(base)
	if !ok {
		return NoTypeID, false
	}
	if mods.ConflictingMajority() {
		return NoTypeID, false
	}
	t.Mods |= mods
	if t.Class == ClassMatrix {
		if _, hasMajority := t.Mods.HasMajority(); !hasMajority {
			if defaultRowMajor {
				t.Mods |= ModRowMajor
			} else {
				t.Mods |= ModColumnMajor
			}
		}
	}
	return r.Intern(t), true
}

// Equal implements structural-identity comparison: two types compare
// equal iff class, base, dimensions, and the identity-relevant modifier
// subset (matrix majority) match. Storage and qualifier modifiers
// (const, uniform, extern, ...) are not identity.
func (r *Registry) Equal(a, b TypeID) bool {
	ta, oka := r.Lookup(a)
	tb, okb := r.Lookup(b)
	if !oka || !okb {
		return false
	}
	if ta.Class != tb.Class || ta.Base != tb.Base || ta.DimX != tb.DimX || ta.DimY != tb.DimY {
		return false
	}
	switch ta.Class {
	case ClassArray:
		return ta.ArrayLen == tb.ArrayLen && r.Equal(ta.ArrayElem, tb.ArrayElem)
	case ClassStruct:
		return ta.StructSlot == tb.StructSlot
	case ClassMatrix:
		ra, _ := ta.Mods.HasMajority()
		rb, _ := tb.Mods.HasMajority()
		return ra == rb
	default:
		return true
	}
}

// StripModifiers returns the TypeID for the same shape with every
// modifier bit cleared (majority excepted for matrices, since it is part
// of a matrix type's identity).
func (r *Registry) StripModifiers(id TypeID) TypeID {
	t, ok := r.Lookup(id)
	if !ok {
		return NoTypeID
	}
	keep := Modifiers(0)
	if t.Class == ClassMatrix {
		keep = t.Mods & (ModRowMajor | ModColumnMajor)
	}
	t.Mods = keep
	return r.Intern(t)
}
