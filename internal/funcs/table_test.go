package funcs

import (
	"testing"

	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

func TestTableDeclareAndGet(t *testing.T) {
	strings := source.NewStringInterner()
	tbl := NewTable()
	name := strings.Intern("saturate")

	id := tbl.Declare(Function{Name: name, ReturnType: hlsltype.TypeID(1)})
	if !id.IsValid() {
		t.Fatalf("expected valid id")
	}
	f := tbl.Get(id)
	if f == nil || f.Name != name {
		t.Fatalf("got %+v", f)
	}
}

func TestTableOverloadsGroupByName(t *testing.T) {
	strings := source.NewStringInterner()
	tbl := NewTable()
	name := strings.Intern("lerp")

	id1 := tbl.Declare(Function{Name: name, ReturnType: hlsltype.TypeID(1)})
	id2 := tbl.Declare(Function{Name: name, ReturnType: hlsltype.TypeID(2)})

	overloads := tbl.Overloads(name)
	if len(overloads) != 2 || overloads[0] != id1 || overloads[1] != id2 {
		t.Fatalf("got %v", overloads)
	}
}

func TestTableFindExactMatchesSignature(t *testing.T) {
	strings := source.NewStringInterner()
	stack := scope.NewStack(nil)
	vars := stack.Variables()
	tbl := NewTable()
	name := strings.Intern("mul")

	pFloat, _, _ := stack.Declare(scope.Variable{Name: strings.Intern("a"), Type: hlsltype.TypeID(1)})
	pInt, _, _ := stack.Declare(scope.Variable{Name: strings.Intern("b"), Type: hlsltype.TypeID(2)})

	id := tbl.Declare(Function{Name: name, Params: []scope.VariableID{pFloat, pInt}, ReturnType: hlsltype.TypeID(1)})

	got, found := tbl.FindExact(vars, name, []hlsltype.TypeID{hlsltype.TypeID(1), hlsltype.TypeID(2)})
	if !found || got != id {
		t.Fatalf("expected to find %v, got %v found=%v", id, got, found)
	}

	if _, found := tbl.FindExact(vars, name, []hlsltype.TypeID{hlsltype.TypeID(2), hlsltype.TypeID(1)}); found {
		t.Fatalf("signature in wrong order should not match")
	}
}

func TestTableFindExactUnknownName(t *testing.T) {
	strings := source.NewStringInterner()
	stack := scope.NewStack(nil)
	tbl := NewTable()
	if _, found := tbl.FindExact(stack.Variables(), strings.Intern("missing"), nil); found {
		t.Fatalf("expected no match for undeclared name")
	}
}
