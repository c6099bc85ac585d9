package irbuild

import (
	"testing"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/source"
)

func TestLowerAssignRejectsConstLValue(t *testing.T) {
	env := newTestEnv(t)
	floatType := env.typeByName(t, "float")
	constType, ok := env.b.Types.Clone(floatType, hlsltype.ModConst, false)
	if !ok {
		t.Fatalf("clone failed")
	}
	v := env.declareVar(t, "x", constType)
	lvalue := env.b.LowerVarRef(source.Location{}, v)
	rhs := env.intConst(t, 1)

	if _, ok := env.b.LowerAssign(source.Location{}, lvalue, rhs); ok {
		t.Fatalf("expected assignment to a const lvalue to fail")
	}
	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected a const-lvalue diagnostic")
	}
}

func TestLowerAssignBuildsAssignmentNode(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "x", env.typeByName(t, "int"))
	lvalue := env.b.LowerVarRef(source.Location{}, v)
	rhs := env.intConst(t, 5)

	result, ok := env.b.LowerAssign(source.Location{}, lvalue, rhs)
	if !ok {
		t.Fatalf("expected assignment to succeed")
	}
	node := env.b.Arena.Get(result.Result)
	if node.Kind != ir.KindAssignment {
		t.Fatalf("expected an assignment node, got %v", node.Kind)
	}
	data := node.Data.(ir.AssignmentData)
	if data.Op != ir.AssignPlain {
		t.Fatalf("expected a plain assignment")
	}
}

func TestLowerAssignBroadcastsScalarIntoWiderLValue(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float4"))
	lvalue := env.b.LowerVarRef(source.Location{}, v)
	rhs := env.intConst(t, 1)

	result, ok := env.b.LowerAssign(source.Location{}, lvalue, rhs)
	if !ok {
		t.Fatalf("expected a scalar-into-vector assignment to broadcast rather than fail: %v", env.b.Diags.Items())
	}
	node := env.b.Arena.Get(result.Result)
	data := node.Data.(ir.AssignmentData)
	rhsNode := env.b.Arena.Get(data.RHS)
	if rhsNode == nil || rhsNode.Kind != ir.KindConstructor {
		t.Fatalf("expected the broadcast rhs to lower to a constructor node, got %v", rhsNode)
	}
}

func TestLowerCompoundAssignRereadsLValue(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "x", env.typeByName(t, "int"))
	lvalue := env.b.LowerVarRef(source.Location{}, v)
	rhs := env.intConst(t, 1)

	result, ok := env.b.LowerCompoundAssign(source.Location{}, ir.OpAdd, lvalue, rhs)
	if !ok {
		t.Fatalf("expected compound assignment to succeed")
	}

	// The lvalue's own deref node and the fresh re-read node must be
	// distinct occurrences, so the liveness pass can tell read and
	// write events apart.
	seen := map[ir.NodeID]int{}
	for _, id := range result.List {
		seen[id]++
	}
	if seen[lvalue.Result] != 1 {
		t.Fatalf("expected the original lvalue node to appear exactly once, got %d", seen[lvalue.Result])
	}
	varDerefCount := 0
	for _, id := range result.List {
		if n := env.b.Arena.Get(id); n.Kind == ir.KindVarDeref {
			varDerefCount++
		}
	}
	if varDerefCount != 2 {
		t.Fatalf("expected two distinct var-deref occurrences (write lvalue + reread), got %d", varDerefCount)
	}
}
