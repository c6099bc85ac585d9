package hlsltype

// Compatible reports whether a value of type src can be cast or
// implicitly converted to type dst. Two numeric types are compatible
// when they carry the same component count; any class may convert to
// itself structurally; structs and arrays are only compatible with an
// identical type.
func (r *Registry) Compatible(src, dst TypeID) bool {
	if r.Equal(src, dst) {
		return true
	}
	ts, oks := r.Lookup(src)
	td, okd := r.Lookup(dst)
	if !oks || !okd {
		return false
	}
	if ts.IsNumeric() && td.IsNumeric() {
		return ts.ComponentCount() == td.ComponentCount()
	}
	return false
}

// NeedsCast reports whether converting src to dst requires a materialized
// cast node (the types differ but are Compatible), versus being already
// identical.
func (r *Registry) NeedsCast(src, dst TypeID) bool {
	return !r.Equal(src, dst) && r.Compatible(src, dst)
}
