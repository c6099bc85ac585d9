package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/source"
)

// LowerIf lowers `if (cond) then [else else_]`: the condition must be
// scalar.
func (b *Builder) LowerIf(loc source.Location, cond Lowered, then, els ir.InstrList) (ir.InstrList, ir.NodeID) {
	b.requireScalarCondition(loc, cond)
	id := b.newNode(ir.Node{Kind: ir.KindIf, Loc: loc, Data: ir.IfData{Cond: cond.Result, Then: then, Else: els}})
	return cond.List.Append(id), id
}

func (b *Builder) requireScalarCondition(loc source.Location, cond Lowered) {
	t, ok := b.Types.Lookup(cond.Type(b))
	if !ok || t.DimX != 1 || t.DimY != 1 {
		b.errorf(diag.TypeNonScalarCondition, loc, "condition must be a scalar")
	}
}

// LowerLoop builds the unified loop shape shared by while, do-while,
// and for: an outer list holding any initializer
// instructions followed by a single loop node, whose body is (for
// while/for) condition-break, user body, iter instructions, or (for
// do-while) user body, condition-break.
//
// cond may be the zero Lowered value (empty instruction list, invalid
// result), meaning an unconditional infinite loop - the condition-break
// is then omitted entirely rather than negating a missing condition.
func (b *Builder) LowerLoop(loc source.Location, init ir.InstrList, cond Lowered, doWhile bool, userBody, iter ir.InstrList) ir.InstrList {
	var body ir.InstrList
	condBreak := b.lowerConditionBreak(loc, cond)

	switch {
	case doWhile:
		body = body.Concat(userBody)
		body = body.Concat(condBreak)
	default:
		body = body.Concat(condBreak)
		body = body.Concat(userBody)
		body = body.Concat(iter)
	}

	loopID := b.newNode(ir.Node{Kind: ir.KindLoop, Loc: loc, Data: ir.LoopData{Body: body}})
	return init.Append(loopID)
}

// lowerConditionBreak produces the negated-condition `if (!cond) break;`
// that every lowered loop shape uses to test its exit condition, or an
// empty list when cond is absent: an empty condition list is treated as
// an unconditional infinite loop.
func (b *Builder) lowerConditionBreak(loc source.Location, cond Lowered) ir.InstrList {
	if !cond.Result.IsValid() {
		return nil
	}
	negated := b.LowerUnary(loc, ir.OpLogicalNot, cond)
	breakID := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpBreak}})
	ifID := b.newNode(ir.Node{Kind: ir.KindIf, Loc: loc, Data: ir.IfData{Cond: negated.Result, Then: ir.InstrList{breakID}}})
	return negated.List.Append(ifID)
}

// LowerBreak and LowerContinue are only valid inside a loop body; the
// parser tracks loop nesting and only calls these while inside one.
// They do not check nesting themselves, and jump nodes carry no
// structural link back to their enclosing loop.
func (b *Builder) LowerBreak(loc source.Location) ir.InstrList {
	id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpBreak}})
	return ir.InstrList{id}
}

func (b *Builder) LowerContinue(loc source.Location) ir.InstrList {
	id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpContinue}})
	return ir.InstrList{id}
}

// LowerReturn lowers `return` and `return <expr>`: a value-less return
// in a non-void function, or a value-bearing return in
// a void function, is an error; otherwise a value-bearing return's
// expression is implicitly converted to the function's declared return
// type.
func (b *Builder) LowerReturn(loc source.Location, value *Lowered) ir.InstrList {
	isVoid := b.currentReturn == hlsltype.NoTypeID || b.currentReturn == b.VoidType

	switch {
	case value == nil && !isVoid:
		b.errorf(diag.TypeReturnMissingValue, loc, "non-void function must return a value")
		id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpReturn}})
		return ir.InstrList{id}

	case value != nil && isVoid:
		b.errorf(diag.TypeReturnValueVoid, loc, "void function may not return a value")
		id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpReturn}})
		return value.List.Append(id)

	case value == nil:
		id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Data: ir.JumpData{Kind: ir.JumpReturn}})
		return ir.InstrList{id}

	default:
		converted, ok := b.implicitConvert(loc, b.currentReturn, *value)
		if !ok {
			b.errorf(diag.TypeIncompatibleReturn, loc, "return value's type is incompatible with the function's return type")
			converted = *value
		}
		id := b.newNode(ir.Node{Kind: ir.KindJump, Loc: loc, Type: b.currentReturn, Data: ir.JumpData{Kind: ir.JumpReturn, Value: converted.Result}})
		return converted.List.Append(id)
	}
}

