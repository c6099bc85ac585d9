package ir

// InstrList is an append-only, program-ordered sequence of node handles.
// A NodeID is only ever appended to the one list the builder is
// currently filling, so each node belongs to exactly one instruction
// list by construction discipline rather than a stored back-pointer.
type InstrList []NodeID

// Append adds id to the end of the list and returns the updated list, so
// callers can use the usual append idiom: l = l.Append(id).
func (l InstrList) Append(id NodeID) InstrList {
	return append(l, id)
}

// Last returns the final node in the list, the conventional "result"
// node for an expression's flattened instruction stream.
func (l InstrList) Last() NodeID {
	if len(l) == 0 {
		return NoNodeID
	}
	return l[len(l)-1]
}

// Concat appends every node of other after l's own nodes, used when
// lowering a binary expression: concatenate both operand lists, then
// append the operator node.
func (l InstrList) Concat(other InstrList) InstrList {
	return append(l, other...)
}
