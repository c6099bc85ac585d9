package irbuild

import (
	"testing"

	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/source"
)

func TestLowerIfRequiresScalarCondition(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float4"))
	cond := env.b.LowerVarRef(source.Location{}, v)

	env.b.LowerIf(source.Location{}, cond, nil, nil)

	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected a non-scalar-condition error")
	}
}

func TestLowerLoopWhileShapeOrdersConditionBreakBeforeBody(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "i", env.typeByName(t, "int"))
	cond := env.b.LowerVarRef(source.Location{}, v)
	body := ir.InstrList{env.intConst(t, 1).Result}

	result := env.b.LowerLoop(source.Location{}, nil, cond, false, body, nil)

	if len(result) != 1 {
		t.Fatalf("expected exactly one loop node in the outer list, got %d", len(result))
	}
	loopNode := env.b.Arena.Get(result[0])
	if loopNode.Kind != ir.KindLoop {
		t.Fatalf("expected a loop node, got %v", loopNode.Kind)
	}
	loopData := loopNode.Data.(ir.LoopData)
	// condition-break, then the user's one body instruction.
	if len(loopData.Body) < 2 {
		t.Fatalf("expected condition-break followed by body, got %d instructions", len(loopData.Body))
	}
	breakIf := env.b.Arena.Get(loopData.Body[len(loopData.Body)-2])
	if breakIf.Kind != ir.KindIf {
		t.Fatalf("expected the instruction before the body to be the condition-break if, got %v", breakIf.Kind)
	}
}

func TestLowerLoopDoWhilePutsBodyBeforeConditionBreak(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "i", env.typeByName(t, "int"))
	cond := env.b.LowerVarRef(source.Location{}, v)
	bodyNode := env.intConst(t, 1)
	body := ir.InstrList{bodyNode.Result}

	result := env.b.LowerLoop(source.Location{}, nil, cond, true, body, nil)

	loopData := env.b.Arena.Get(result[0]).Data.(ir.LoopData)
	if loopData.Body[0] != bodyNode.Result {
		t.Fatalf("expected the user body to come first in a do-while loop")
	}
}

func TestLowerLoopEmptyConditionIsUnconditional(t *testing.T) {
	env := newTestEnv(t)
	body := ir.InstrList{env.intConst(t, 1).Result}

	result := env.b.LowerLoop(source.Location{}, nil, Lowered{}, false, body, nil)

	loopData := env.b.Arena.Get(result[0]).Data.(ir.LoopData)
	if len(loopData.Body) != 1 {
		t.Fatalf("expected no condition-break instructions, got %d", len(loopData.Body))
	}
}

func TestLowerReturnRejectsValueInVoidFunction(t *testing.T) {
	env := newTestEnv(t)
	env.b.currentReturn = env.b.VoidType
	value := env.intConst(t, 1)

	env.b.LowerReturn(source.Location{}, &value)

	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected a void-return-with-value error")
	}
}

func TestLowerReturnRejectsMissingValueInNonVoidFunction(t *testing.T) {
	env := newTestEnv(t)
	env.b.currentReturn = env.typeByName(t, "float")

	env.b.LowerReturn(source.Location{}, nil)

	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected a missing-return-value error")
	}
}

func TestLowerReturnInsertsImplicitConversion(t *testing.T) {
	env := newTestEnv(t)
	env.b.currentReturn = env.typeByName(t, "float")
	value := env.intConst(t, 1)

	result := env.b.LowerReturn(source.Location{}, &value)

	last := env.b.Arena.Get(result[len(result)-1])
	jumpData := last.Data.(ir.JumpData)
	returnValueNode := env.b.Arena.Get(jumpData.Value)
	if returnValueNode.Kind != ir.KindExpr {
		t.Fatalf("expected an inserted cast node, got %v", returnValueNode.Kind)
	}
}
