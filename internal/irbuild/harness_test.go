package irbuild

import (
	"testing"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// testEnv bundles a fresh Builder with its predefined numeric types,
// mirroring the setup a real compilation context performs once at
// startup.
type testEnv struct {
	b        *Builder
	strings  *source.StringInterner
	pre      hlsltype.Predefined
	names    map[source.StringID]hlsltype.TypeID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	strings := source.NewStringInterner()
	types := hlsltype.NewRegistry(strings)
	pre := hlsltype.SeedPredefined(types)
	names := pre.SeedStringsInto(strings)

	scopes := scope.NewStack(names)
	diags := diag.NewBag()
	b := New(strings, types, scopes, diags)
	b.VoidType = pre.Void

	return &testEnv{b: b, strings: strings, pre: pre, names: names}
}

func (e *testEnv) typeByName(t *testing.T, name string) hlsltype.TypeID {
	t.Helper()
	id, ok := e.pre.ByName[name]
	if !ok {
		t.Fatalf("no predefined type named %q", name)
	}
	return id
}

func (e *testEnv) declareVar(t *testing.T, name string, ty hlsltype.TypeID) scope.VariableID {
	t.Helper()
	id, _, ok := e.b.Scopes.Declare(scope.Variable{Name: e.strings.Intern(name), Type: ty})
	if !ok {
		t.Fatalf("failed to declare %q", name)
	}
	return id
}

func (e *testEnv) intConst(t *testing.T, v int64) Lowered {
	t.Helper()
	return e.b.LowerConstant(source.Location{}, e.typeByName(t, "int"), ir.ConstantData{Base: hlsltype.BaseInt, IntVal: v})
}
