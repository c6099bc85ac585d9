package liveness

import (
	"testing"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// buildLoop constructs: for a variable i, a loop whose body reads i
// (via an expr node) then writes it back, followed by one instruction
// after the loop. Mirrors the "for (int i = 0; i < 4; ++i) {}" shape
// closely enough to exercise the extension rule.
func buildLoop(t *testing.T) (*ir.Arena, *scope.Variables, ir.InstrList, ir.NodeID, scope.VariableID) {
	t.Helper()
	strings := source.NewStringInterner()
	types := hlsltype.NewRegistry(strings)
	predefined := hlsltype.SeedPredefined(types)
	stack := scope.NewStack(predefined.SeedStringsInto(strings))

	vars := stack.Variables()
	arena := ir.NewArena()

	iName := strings.Intern("i")
	iVar := vars.New(scope.Variable{Name: iName})

	readI := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: iVar}})
	exprUse := arena.New(ir.Node{Kind: ir.KindExpr, Data: ir.ExprData{Op: ir.OpPreInc, Operands: [3]ir.NodeID{readI}, Arity: 1}})
	writeTarget := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: iVar}})
	assign := arena.New(ir.Node{Kind: ir.KindAssignment, Data: ir.AssignmentData{LValue: writeTarget, Op: ir.AssignPlain, RHS: exprUse}})

	body := ir.InstrList{readI, exprUse, writeTarget, assign}
	loop := arena.New(ir.Node{Kind: ir.KindLoop, Data: ir.LoopData{Body: body}})

	after := arena.New(ir.Node{Kind: ir.KindConstant, Data: ir.ConstantData{}})

	program := ir.InstrList{loop, after}
	return arena, vars, program, loop, iVar
}

// freshVariables returns an empty variable arena via a throwaway scope
// stack, keeping slot 0 reserved for NoVariableID the same way a real
// compilation context's arena would.
func freshVariables() *scope.Variables {
	return scope.NewStack(nil).Variables()
}

func TestIndexAssignsProgramOrderAndLoopNextIndex(t *testing.T) {
	arena, _, program, loop, _ := buildLoop(t)
	Index(arena, program)

	loopNode := arena.Get(loop)
	if loopNode.Index != 2 {
		t.Fatalf("loop node index = %d, want 2", loopNode.Index)
	}
	data := loopNode.Data.(ir.LoopData)
	for _, id := range data.Body {
		if n := arena.Get(id); n.Index < 3 {
			t.Fatalf("body node index %d should be >= 3", n.Index)
		}
	}
	after := program[1]
	if arena.Get(after).Index != data.NextIndex {
		t.Fatalf("next_index = %d, want %d (the post-loop instruction's index)", data.NextIndex, arena.Get(after).Index)
	}
}

func TestAnalyzeExtendsLivenessAcrossLoop(t *testing.T) {
	arena, vars, program, loop, iVar := buildLoop(t)
	Index(arena, program)
	Analyze(arena, vars, program)

	loopNode := arena.Get(loop)
	data := loopNode.Data.(ir.LoopData)

	v := vars.Get(iVar)
	if v.FirstWrite != loopNode.Index {
		t.Fatalf("first_write = %d, want loop index %d", v.FirstWrite, loopNode.Index)
	}
	if v.LastRead != data.NextIndex {
		t.Fatalf("last_read = %d, want loop next_index %d", v.LastRead, data.NextIndex)
	}
	if v.FirstWrite > v.LastRead {
		t.Fatalf("invariant violated: first_write %d > last_read %d", v.FirstWrite, v.LastRead)
	}
}

// TestAnalyzeLoopWriteDoesNotClobberEarlierOutsideWrite mirrors
// `int i = 0; for (; ...; ++i) { }`: the declaration's initializer
// write to i happens before the loop, and the loop body's own write
// (at a much later index) must not overwrite first_write, or invariant
// 4 (first_write <= loop.first_index for a variable read inside the
// loop) breaks.
func TestAnalyzeLoopWriteDoesNotClobberEarlierOutsideWrite(t *testing.T) {
	vars := freshVariables()
	arena := ir.NewArena()

	iVar := vars.New(scope.Variable{})

	zero := arena.New(ir.Node{Kind: ir.KindConstant, Data: ir.ConstantData{IntVal: 0}})
	initTarget := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: iVar}})
	initAssign := arena.New(ir.Node{Kind: ir.KindAssignment, Data: ir.AssignmentData{LValue: initTarget, Op: ir.AssignPlain, RHS: zero}})

	readI := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: iVar}})
	exprUse := arena.New(ir.Node{Kind: ir.KindExpr, Data: ir.ExprData{Op: ir.OpPreInc, Operands: [3]ir.NodeID{readI}, Arity: 1}})
	writeTarget := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: iVar}})
	loopAssign := arena.New(ir.Node{Kind: ir.KindAssignment, Data: ir.AssignmentData{LValue: writeTarget, Op: ir.AssignPlain, RHS: exprUse}})
	loopBody := ir.InstrList{readI, exprUse, writeTarget, loopAssign}
	loop := arena.New(ir.Node{Kind: ir.KindLoop, Data: ir.LoopData{Body: loopBody}})

	program := ir.InstrList{zero, initTarget, initAssign, loop}
	Index(arena, program)
	Analyze(arena, vars, program)

	v := vars.Get(iVar)
	wantFirstWrite := arena.Get(initAssign).Index
	if v.FirstWrite != wantFirstWrite {
		t.Fatalf("first_write = %d, want the outside-loop initializer's index %d (the in-loop write must not clobber it)", v.FirstWrite, wantFirstWrite)
	}
	loopNode := arena.Get(loop)
	if v.FirstWrite > loopNode.Index {
		t.Fatalf("invariant violated: first_write %d > loop.first_index %d", v.FirstWrite, loopNode.Index)
	}
}

func TestAnalyzeParameterSeeding(t *testing.T) {
	vars := freshVariables()
	in := vars.New(scope.Variable{Mods: hlsltype.ModIn})
	out := vars.New(scope.Variable{Mods: hlsltype.ModOut})
	SeedParameters(vars, []scope.VariableID{in, out})

	if vars.Get(in).FirstWrite != 1 {
		t.Fatalf("input parameter first_write = %d, want 1", vars.Get(in).FirstWrite)
	}
	if vars.Get(out).LastRead != scope.MaxLiveness {
		t.Fatalf("output parameter last_read = %d, want MaxLiveness", vars.Get(out).LastRead)
	}
}

func TestAnalyzePlainAssignmentOutsideLoop(t *testing.T) {
	vars := freshVariables()
	arena := ir.NewArena()

	x := vars.New(scope.Variable{})
	lit := arena.New(ir.Node{Kind: ir.KindConstant, Data: ir.ConstantData{IntVal: 1}})
	target := arena.New(ir.Node{Kind: ir.KindVarDeref, Data: ir.VarDerefData{Var: x}})
	assign := arena.New(ir.Node{Kind: ir.KindAssignment, Data: ir.AssignmentData{LValue: target, RHS: lit}})

	program := ir.InstrList{lit, target, assign}
	Index(arena, program)
	Analyze(arena, vars, program)

	v := vars.Get(x)
	if v.FirstWrite != arena.Get(assign).Index {
		t.Fatalf("first_write = %d, want assignment's own index %d", v.FirstWrite, arena.Get(assign).Index)
	}
}
