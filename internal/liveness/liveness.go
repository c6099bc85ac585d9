package liveness

import (
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
)

// extent is the instruction-index span of the outermost loop currently
// enclosing the walk, or nil outside any loop; nested loops share it.
type extent struct {
	first uint32
	exit  uint32
}

// SeedGlobals sets first_write = 1 on every global variable: a global
// is considered live from the start of the function.
func SeedGlobals(vars *scope.Variables, ids []scope.VariableID) {
	for _, id := range ids {
		vars.Get(id).FirstWrite = 1
	}
}

// SeedParameters sets first_write = 1 on every input parameter and
// last_read = MaxLiveness on every output parameter, before the body is
// walked.
func SeedParameters(vars *scope.Variables, ids []scope.VariableID) {
	for _, id := range ids {
		v := vars.Get(id)
		if v.Mods.Has(hlsltype.ModIn) {
			v.FirstWrite = 1
		}
		if v.Mods.Has(hlsltype.ModOut) {
			v.LastRead = scope.MaxLiveness
		}
	}
}

// Analyze walks an already-indexed instruction list and fills in every
// referenced variable's first_write/last_read, extending both across a
// loop's full span for anything read inside it. Index must have
// already run over the same body.
func Analyze(arena *ir.Arena, vars *scope.Variables, body ir.InstrList) {
	walk(arena, vars, body, nil)
}

func walk(arena *ir.Arena, vars *scope.Variables, list ir.InstrList, loop *extent) {
	for _, id := range list {
		node := arena.Get(id)
		if node == nil {
			continue
		}

		switch node.Kind {
		case ir.KindAssignment:
			a := node.Data.(ir.AssignmentData)
			if v, ok := rootVariable(arena, a.LValue); ok {
				writeUpdate(vars.Get(v), node.Index, loop)
			}
			if v, ok := rootVariable(arena, a.RHS); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}

		case ir.KindExpr:
			e := node.Data.(ir.ExprData)
			for i := 0; i < e.Arity; i++ {
				if v, ok := rootVariable(arena, e.Operands[i]); ok {
					readUpdate(vars.Get(v), node.Index, loop)
				}
			}

		case ir.KindConstructor:
			c := node.Data.(ir.ConstructorData)
			for _, arg := range c.Args {
				if v, ok := rootVariable(arena, arg); ok {
					readUpdate(vars.Get(v), node.Index, loop)
				}
			}

		case ir.KindSwizzle:
			s := node.Data.(ir.SwizzleData)
			if v, ok := rootVariable(arena, s.Base); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}

		case ir.KindRecordDeref:
			r := node.Data.(ir.RecordDerefData)
			if v, ok := rootVariable(arena, r.Base); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}

		case ir.KindArrayDeref:
			ad := node.Data.(ir.ArrayDerefData)
			if v, ok := rootVariable(arena, ad.Array); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}
			if v, ok := rootVariable(arena, ad.Index); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}

		case ir.KindIf:
			f := node.Data.(ir.IfData)
			if v, ok := rootVariable(arena, f.Cond); ok {
				readUpdate(vars.Get(v), node.Index, loop)
			}
			walk(arena, vars, f.Then, loop)
			walk(arena, vars, f.Else, loop)

		case ir.KindLoop:
			l := node.Data.(ir.LoopData)
			inner := loop
			if inner == nil {
				inner = &extent{first: node.Index, exit: l.NextIndex}
			}
			walk(arena, vars, l.Body, inner)

		case ir.KindJump:
			j := node.Data.(ir.JumpData)
			if j.Value.IsValid() {
				if v, ok := rootVariable(arena, j.Value); ok {
					readUpdate(vars.Get(v), node.Index, loop)
				}
			}
		}
	}
}

// rootVariable unwraps a chain of record/array/swizzle derefs down to the
// variable it ultimately addresses, if any (an expression built from
// constants or a function result has none).
func rootVariable(arena *ir.Arena, id ir.NodeID) (scope.VariableID, bool) {
	node := arena.Get(id)
	if node == nil {
		return scope.NoVariableID, false
	}
	switch node.Kind {
	case ir.KindVarDeref:
		return node.Data.(ir.VarDerefData).Var, true
	case ir.KindRecordDeref:
		return rootVariable(arena, node.Data.(ir.RecordDerefData).Base)
	case ir.KindArrayDeref:
		return rootVariable(arena, node.Data.(ir.ArrayDerefData).Array)
	case ir.KindSwizzle:
		return rootVariable(arena, node.Data.(ir.SwizzleData).Base)
	default:
		return scope.NoVariableID, false
	}
}

func writeUpdate(v *scope.Variable, index uint32, loop *extent) {
	if v.FirstWrite != scope.UnusedLiveness {
		return
	}
	if loop != nil {
		v.FirstWrite = minU32(index, loop.first)
		return
	}
	v.FirstWrite = index
}

func readUpdate(v *scope.Variable, index uint32, loop *extent) {
	if loop != nil {
		v.LastRead = maxU32(index, loop.exit)
		return
	}
	v.LastRead = index
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
