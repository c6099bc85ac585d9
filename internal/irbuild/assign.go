package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/source"
)

// LowerAssign lowers a plain `lvalue = rhs`. The lvalue's type may not
// carry the const modifier. A single-component rhs assigned into a
// wider lvalue broadcasts, the same as a declaration's initializer.
func (b *Builder) LowerAssign(loc source.Location, lvalue, rhs Lowered) (Lowered, bool) {
	if !b.checkAssignable(loc, lvalue) {
		return Lowered{}, false
	}
	converted, ok := b.implicitConvert(loc, lvalue.Type(b), rhs)
	if !ok {
		lhsType, lhsOk := b.Types.Lookup(lvalue.Type(b))
		rhsType, rhsOk := b.Types.Lookup(rhs.Type(b))
		if lhsOk && rhsOk && rhsType.ComponentCount() == 1 && lhsType.ComponentCount() > 1 {
			if broadcast, bok := b.LowerBroadcast(loc, lvalue.Type(b), rhs); bok {
				converted = broadcast
				ok = true
			}
		}
	}
	if !ok {
		b.errorf(diag.TypeMismatchedInitializer, loc, "assigned value's type is incompatible with the target")
		return Lowered{}, false
	}

	list := lvalue.List.Concat(converted.List)
	id := b.newNode(ir.Node{
		Kind: ir.KindAssignment, Loc: loc, Type: lvalue.Type(b),
		Data: ir.AssignmentData{LValue: lvalue.Result, Op: ir.AssignPlain, RHS: converted.Result},
	})
	return Lowered{List: list.Append(id), Result: id}, true
}

// LowerCompoundAssign lowers `lvalue op= rhs` by computing the binary
// operation on (lvalue, rhs) first, then storing the result - the
// compound operator itself is retained on the node only for fidelity,
// since the arithmetic is already applied before the store.
func (b *Builder) LowerCompoundAssign(loc source.Location, op ir.Operator, lvalue, rhs Lowered) (Lowered, bool) {
	if !b.checkAssignable(loc, lvalue) {
		return Lowered{}, false
	}

	// A second, independent read of the lvalue's variable feeds the
	// binary op, so the write (via the assignment below) and the read
	// remain distinct node occurrences for the liveness pass to tell apart.
	readLValue, ok := b.rereadLValue(loc, lvalue)
	if !ok {
		return Lowered{}, false
	}
	computed := b.LowerBinary(loc, op, readLValue, rhs)

	list := lvalue.List.Concat(computed.List)
	id := b.newNode(ir.Node{
		Kind: ir.KindAssignment, Loc: loc, Type: lvalue.Type(b),
		Data: ir.AssignmentData{LValue: lvalue.Result, Op: ir.AssignCompound, CompoundOp: op, RHS: computed.Result},
	})
	return Lowered{List: list.Append(id), Result: id}, true
}

// rereadLValue rebuilds a fresh deref chain equivalent to lvalue's, so a
// compound assignment's read side gets its own node occurrence distinct
// from the write side's.
func (b *Builder) rereadLValue(loc source.Location, lvalue Lowered) (Lowered, bool) {
	node := b.Arena.Get(lvalue.Result)
	if node == nil {
		return Lowered{}, false
	}
	switch data := node.Data.(type) {
	case ir.VarDerefData:
		return b.LowerVarRef(loc, data.Var), true
	default:
		// Record/array derefs keep their base subexpression's existing
		// nodes (already safe to re-reference) and just re-emit the
		// outer deref node so it gets its own index.
		id := b.newNode(ir.Node{Kind: node.Kind, Loc: loc, Type: node.Type, Data: node.Data})
		return Lowered{List: ir.InstrList{id}, Result: id}, true
	}
}

func (b *Builder) checkAssignable(loc source.Location, lvalue Lowered) bool {
	t, ok := b.Types.Lookup(lvalue.Type(b))
	if !ok {
		return false
	}
	if t.Mods.Has(hlsltype.ModConst) {
		b.errorf(diag.TypeConstLValue, loc, "cannot assign to a const-qualified value")
		return false
	}
	return true
}
