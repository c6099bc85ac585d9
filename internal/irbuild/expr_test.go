package irbuild

import (
	"testing"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/source"
)

func TestLowerBinaryConcatenatesOperandLists(t *testing.T) {
	env := newTestEnv(t)
	lhs := env.intConst(t, 1)
	rhs := env.intConst(t, 2)

	result := env.b.LowerBinary(source.Location{}, ir.OpAdd, lhs, rhs)

	if len(result.List) != 3 {
		t.Fatalf("expected 3 instructions (2 operands + op), got %d", len(result.List))
	}
	if result.List[2] != result.Result {
		t.Fatalf("result node should be the last in the list")
	}
}

func TestLowerBinaryComparisonProducesBool(t *testing.T) {
	env := newTestEnv(t)
	lhs := env.intConst(t, 1)
	rhs := env.intConst(t, 2)

	result := env.b.LowerBinary(source.Location{}, ir.OpLt, lhs, rhs)

	resultType, ok := env.b.Types.Lookup(result.Type(env.b))
	if !ok || resultType.Base.String() != "bool" {
		t.Fatalf("expected bool result, got %+v", resultType)
	}
}

func TestLowerCastReportsIncompatibleTypes(t *testing.T) {
	env := newTestEnv(t)
	floatType := env.typeByName(t, "float4")
	c := env.intConst(t, 1)

	env.b.LowerCast(source.Location{}, floatType, c)

	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected an incompatible-cast error")
	}
}

func TestLowerConstructorValidatesComponentCount(t *testing.T) {
	env := newTestEnv(t)
	target := env.typeByName(t, "float3")
	a := env.intConst(t, 1)
	b := env.intConst(t, 2)

	if _, ok := env.b.LowerConstructor(source.Location{}, target, []Lowered{a, b}); ok {
		t.Fatalf("expected a component-count mismatch error")
	}
	if !env.b.Diags.HasErrors() {
		t.Fatalf("expected a diagnostic to be recorded")
	}
}

func TestLowerConstructorAcceptsMatchingComponentCount(t *testing.T) {
	env := newTestEnv(t)
	target := env.typeByName(t, "float2")
	a := env.intConst(t, 1)
	b := env.intConst(t, 2)

	result, ok := env.b.LowerConstructor(source.Location{}, target, []Lowered{a, b})
	if !ok {
		t.Fatalf("expected constructor to succeed")
	}
	if len(result.List) != 3 {
		t.Fatalf("expected 2 arg nodes + 1 constructor node, got %d", len(result.List))
	}
}

func TestLowerBroadcastRepeatsScalarHandleOnce(t *testing.T) {
	env := newTestEnv(t)
	target := env.typeByName(t, "float4")
	scalar := env.intConst(t, 1)

	result, ok := env.b.LowerBroadcast(source.Location{}, target, scalar)
	if !ok {
		t.Fatalf("expected broadcast to succeed")
	}
	// The scalar contributes exactly one instruction, plus the constructor.
	if len(result.List) != 2 {
		t.Fatalf("expected scalar's own instruction to appear once, got list of %d", len(result.List))
	}
	data, ok := env.b.Arena.Get(result.Result).Data.(ir.ConstructorData)
	if !ok {
		t.Fatalf("expected constructor data")
	}
	if len(data.Args) != 4 {
		t.Fatalf("expected 4 repeated args, got %d", len(data.Args))
	}
	for _, a := range data.Args {
		if a != scalar.Result {
			t.Fatalf("expected every arg to reference the scalar's result handle")
		}
	}
}

func TestLowerSwizzleVectorProducesExpectedComponentCount(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float4"))
	base := env.b.LowerVarRef(source.Location{}, v)

	result, ok := env.b.LowerSwizzle(source.Location{}, base, "xy")
	if !ok {
		t.Fatalf("expected swizzle to succeed")
	}
	resultType, _ := env.b.Types.Lookup(result.Type(env.b))
	if resultType.ComponentCount() != 2 {
		t.Fatalf("expected a 2-component result, got %d", resultType.ComponentCount())
	}
}

func TestLowerSwizzleSingleComponentProducesScalar(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float4"))
	base := env.b.LowerVarRef(source.Location{}, v)

	result, ok := env.b.LowerSwizzle(source.Location{}, base, "w")
	if !ok {
		t.Fatalf("expected swizzle to succeed")
	}
	resultType, _ := env.b.Types.Lookup(result.Type(env.b))
	if resultType.Class != hlsltype.ClassScalar {
		t.Fatalf("expected a scalar result, got %v", resultType.Class)
	}
}

func TestLowerSwizzleRejectsMixedComponentNames(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float4"))
	base := env.b.LowerVarRef(source.Location{}, v)

	if _, ok := env.b.LowerSwizzle(source.Location{}, base, "xg"); ok {
		t.Fatalf("expected mixed xyzw/rgba swizzle to fail")
	}
}

func TestLowerSwizzleRejectsOutOfRangeComponent(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "v", env.typeByName(t, "float2"))
	base := env.b.LowerVarRef(source.Location{}, v)

	if _, ok := env.b.LowerSwizzle(source.Location{}, base, "z"); ok {
		t.Fatalf("expected an out-of-range swizzle component to fail")
	}
}

func TestLowerSwizzleMatrixZeroBasedForm(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "m", env.typeByName(t, "float4x4"))
	base := env.b.LowerVarRef(source.Location{}, v)

	result, ok := env.b.LowerSwizzle(source.Location{}, base, "_m00_m11")
	if !ok {
		t.Fatalf("expected matrix swizzle to succeed")
	}
	resultType, _ := env.b.Types.Lookup(result.Type(env.b))
	if resultType.ComponentCount() != 2 {
		t.Fatalf("expected a 2-component result, got %d", resultType.ComponentCount())
	}
}

func TestLowerSwizzleMatrixRejectsMixedForms(t *testing.T) {
	env := newTestEnv(t)
	v := env.declareVar(t, "m", env.typeByName(t, "float4x4"))
	base := env.b.LowerVarRef(source.Location{}, v)

	if _, ok := env.b.LowerSwizzle(source.Location{}, base, "_m00_11"); ok {
		t.Fatalf("expected mixed zero/one-based matrix swizzle forms to fail")
	}
}

func TestLowerRecordAccessUnknownFieldReportsError(t *testing.T) {
	env := newTestEnv(t)
	structType := env.b.Types.DeclareStruct(env.strings.Intern("Foo"), source.Location{})
	base := env.b.LowerVarRef(source.Location{}, env.declareVar(t, "foo", structType))

	if _, ok := env.b.LowerRecordAccess(source.Location{}, base, env.strings.Intern("missing")); ok {
		t.Fatalf("expected unknown-field lookup to fail")
	}
}
