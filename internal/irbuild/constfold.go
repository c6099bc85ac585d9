package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// foldConstant evaluates a scalar expression tree rooted at id to a
// single ir.ConstantData, when every leaf is itself a constant and every
// intermediate operator is one this evaluator understands. It does not
// mutate the arena; callers decide what, if anything, to do with a fold.
func foldConstant(arena *ir.Arena, id ir.NodeID) (ir.ConstantData, bool) {
	node := arena.Get(id)
	if node == nil {
		return ir.ConstantData{}, false
	}
	switch node.Kind {
	case ir.KindConstant:
		return node.Data.(ir.ConstantData), true
	case ir.KindExpr:
		return foldExpr(arena, node.Data.(ir.ExprData))
	default:
		return ir.ConstantData{}, false
	}
}

func foldExpr(arena *ir.Arena, data ir.ExprData) (ir.ConstantData, bool) {
	switch data.Arity {
	case 1:
		operand, ok := foldConstant(arena, data.Operands[0])
		if !ok {
			return ir.ConstantData{}, false
		}
		return foldUnary(data.Op, operand)
	case 2:
		lhs, ok := foldConstant(arena, data.Operands[0])
		if !ok {
			return ir.ConstantData{}, false
		}
		rhs, ok := foldConstant(arena, data.Operands[1])
		if !ok {
			return ir.ConstantData{}, false
		}
		return foldBinary(data.Op, lhs, rhs)
	default:
		return ir.ConstantData{}, false
	}
}

func foldUnary(op ir.Operator, v ir.ConstantData) (ir.ConstantData, bool) {
	switch op {
	case ir.OpNeg:
		switch v.Base {
		case hlsltype.BaseInt:
			v.IntVal = -v.IntVal
		case hlsltype.BaseFloat, hlsltype.BaseHalf, hlsltype.BaseDouble:
			v.FloatVal = -v.FloatVal
		default:
			return ir.ConstantData{}, false
		}
		return v, true
	case ir.OpLogicalNot:
		if v.Base != hlsltype.BaseBool {
			return ir.ConstantData{}, false
		}
		v.BoolVal = !v.BoolVal
		return v, true
	default:
		return ir.ConstantData{}, false
	}
}

func foldBinary(op ir.Operator, lhs, rhs ir.ConstantData) (ir.ConstantData, bool) {
	if lhs.Base != rhs.Base {
		return ir.ConstantData{}, false
	}
	out := ir.ConstantData{Base: lhs.Base}
	switch lhs.Base {
	case hlsltype.BaseFloat, hlsltype.BaseHalf, hlsltype.BaseDouble:
		a, b := lhs.FloatVal, rhs.FloatVal
		switch op {
		case ir.OpAdd:
			out.FloatVal = a + b
		case ir.OpSub:
			out.FloatVal = a - b
		case ir.OpMul:
			out.FloatVal = a * b
		case ir.OpDiv:
			if b == 0 {
				return ir.ConstantData{}, false
			}
			out.FloatVal = a / b
		default:
			return ir.ConstantData{}, false
		}
		return out, true
	case hlsltype.BaseInt:
		a, b := lhs.IntVal, rhs.IntVal
		switch op {
		case ir.OpAdd:
			out.IntVal = a + b
		case ir.OpSub:
			out.IntVal = a - b
		case ir.OpMul:
			out.IntVal = a * b
		case ir.OpDiv:
			if b == 0 {
				return ir.ConstantData{}, false
			}
			out.IntVal = a / b
		case ir.OpMod:
			if b == 0 {
				return ir.ConstantData{}, false
			}
			out.IntVal = a % b
		default:
			return ir.ConstantData{}, false
		}
		return out, true
	case hlsltype.BaseUint:
		a, b := lhs.UintVal, rhs.UintVal
		switch op {
		case ir.OpAdd:
			out.UintVal = a + b
		case ir.OpSub:
			out.UintVal = a - b
		case ir.OpMul:
			out.UintVal = a * b
		case ir.OpDiv:
			if b == 0 {
				return ir.ConstantData{}, false
			}
			out.UintVal = a / b
		default:
			return ir.ConstantData{}, false
		}
		return out, true
	default:
		return ir.ConstantData{}, false
	}
}

// FoldArrayLength constant-folds size - the expression between an array
// declarator's brackets - sharing the same scalar folder recordGlobalConstFold
// uses for a static const global's initializer, and validates the result
// falls in [1, 65536]. A non-foldable expression, a non-integer fold, or
// an out-of-range value reports diag.TypeBadArrayLength and returns 1.
func (b *Builder) FoldArrayLength(loc source.Location, size Lowered) (uint32, bool) {
	value, ok := foldConstant(b.Arena, size.Result)
	if !ok {
		b.errorf(diag.TypeBadArrayLength, loc, "array size must be a constant expression")
		return 1, false
	}

	var n int64
	switch value.Base {
	case hlsltype.BaseInt:
		n = value.IntVal
	case hlsltype.BaseUint:
		n = int64(value.UintVal)
	default:
		b.errorf(diag.TypeBadArrayLength, loc, "array size must be an integer constant expression")
		return 1, false
	}

	if n < 1 || int64(hlsltype.MaxArrayLength) < n {
		b.errorf(diag.TypeBadArrayLength, loc, "array length must be between 1 and 65536")
		return 1, false
	}
	return uint32(n), true
}

// recordGlobalConstFold attempts to fold a global static const scalar's
// initializer and, on success, remembers the folded value for Context.
// A fold failure is not a diagnostic: most global consts initialize from
// runtime-visible expressions, and only a constant subset is foldable.
func (b *Builder) recordGlobalConstFold(id scope.VariableID, declType hlsltype.TypeID, init *Lowered) {
	if init == nil || !b.Scopes.InGlobalScope() {
		return
	}
	ty, ok := b.Types.Lookup(declType)
	if !ok || !ty.Mods.Has(hlsltype.ModConst) || !ty.IsScalar() {
		return
	}
	value, ok := foldConstant(b.Arena, init.Result)
	if !ok {
		return
	}
	if b.ConstFolds == nil {
		b.ConstFolds = make(map[scope.VariableID]ir.ConstantData)
	}
	b.ConstFolds[id] = value
}
