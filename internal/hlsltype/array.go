package hlsltype

// Array returns the TypeID for array-of(elem, length), interning it like
// any other descriptor. Length 0 marks an unsized array, used only for
// extern declarations the core never lowers a body for.
func (r *Registry) Array(elem TypeID, length uint32) TypeID {
	return r.Intern(Type{Class: ClassArray, ArrayElem: elem, ArrayLen: length})
}

// MaxArrayLength is the largest array size a declarator may request.
const MaxArrayLength = 65536
