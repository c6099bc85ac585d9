package hlsltype

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/hlslc/frontend/internal/source"
)

// StructField is one member of a struct type descriptor: name, type,
// modifiers, optional semantic string, and its computed register offset
// within the struct's layout.
type StructField struct {
	Name     source.StringID
	Type     TypeID
	Mods     Modifiers
	Semantic source.StringID
	RegOff   int
}

// StructInfo holds the out-of-band payload for a ClassStruct type: its
// name and ordered field list. Kept out of Type itself so Type stays a
// small, comparable value usable as an interning map key.
type StructInfo struct {
	Name   source.StringID
	Decl   source.Location
	Fields []StructField
}

// DeclareStruct allocates a new struct slot and returns the TypeID for
// the (initially fieldless) struct type. SetFields fills in the layout
// once every member has been resolved, following the two-phase pattern
// declarations need to support self-referential field types via pointers
// (HLSL structs can't be recursive, but forward-referencing a struct
// typedef from within its own scope during parsing is common).
func (r *Registry) DeclareStruct(name source.StringID, decl source.Location) TypeID {
	slot, err := safecast.Conv[uint32](len(r.structs))
	if err != nil {
		panic(fmt.Errorf("struct table overflow: %w", err))
	}
	r.structs = append(r.structs, StructInfo{Name: name, Decl: decl})
	t := Type{Class: ClassStruct, StructSlot: slot, Name: name}
	return r.Intern(t)
}

// SetFields stores the resolved field list and computes each field's
// register offset, accumulating RegSize() across the fields in order.
func (r *Registry) SetFields(id TypeID, fields []StructField) {
	info := r.structInfo(id)
	if info == nil {
		return
	}
	offset := 0
	resolved := make([]StructField, len(fields))
	for i, f := range fields {
		f.RegOff = offset
		if ft, ok := r.Lookup(f.Type); ok {
			offset += ft.RegSize()
		}
		resolved[i] = f
	}
	info.Fields = resolved
}

// Fields returns a copy of the struct's field list.
func (r *Registry) Fields(id TypeID) []StructField {
	info := r.structInfo(id)
	if info == nil {
		return nil
	}
	return slices.Clone(info.Fields)
}

// FindField resolves a field by name, returning its index and descriptor.
func (r *Registry) FindField(id TypeID, name source.StringID) (StructField, int, bool) {
	info := r.structInfo(id)
	if info == nil {
		return StructField{}, -1, false
	}
	for i, f := range info.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return StructField{}, -1, false
}

// StructName returns the struct's declared name, if any.
func (r *Registry) StructName(id TypeID) (source.StringID, bool) {
	info := r.structInfo(id)
	if info == nil {
		return source.NoStringID, false
	}
	return info.Name, true
}

func (r *Registry) structInfo(id TypeID) *StructInfo {
	t, ok := r.Lookup(id)
	if !ok || t.Class != ClassStruct {
		return nil
	}
	if t.StructSlot == 0 || int(t.StructSlot) >= len(r.structs) {
		return nil
	}
	return &r.structs[t.StructSlot]
}
