package parser

import (
	"testing"

	"github.com/hlslc/frontend/internal/diag"
)

func TestParseTypedefDeclaresAlias(t *testing.T) {
	tp := newTestParser(t, "typedef float3 Color;")
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)

	name := tp.strings.Intern("Color")
	if _, ok := tp.b.Scopes.LookupType(name); !ok {
		t.Fatalf("expected typedef 'Color' to resolve")
	}
}

func TestParseMultipleDeclaratorsShareBaseTypeAndModifiers(t *testing.T) {
	tp := newTestParser(t, "static const float a = 1.0, b = 2.0, c[2] = { 1.0, 2.0 };")
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)

	for _, n := range []string{"a", "b", "c"} {
		if _, ok := tp.b.Scopes.Lookup(tp.strings.Intern(n)); !ok {
			t.Fatalf("expected declarator %q to be declared", n)
		}
	}
}

func TestParseGlobalVariableWithRegisterAnnotation(t *testing.T) {
	tp := newTestParser(t, "float4 g_color : register(c0);")
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)
}

func TestParseArraySizeOutOfBoundsIsAnError(t *testing.T) {
	tp := newTestParser(t, "float huge[0];")
	tp.p.ParseTranslationUnit()
	found := false
	for _, d := range tp.diags.Items() {
		if d.Code == diag.TypeBadArrayLength {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TypeBadArrayLength, got %s", tp.diagSummary())
	}
}

func TestParseArraySizeAcceptsConstantFoldedExpression(t *testing.T) {
	tp := newTestParser(t, "float4 arr[2 + 2];")
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)

	id, ok := tp.b.Scopes.Lookup(tp.strings.Intern("arr"))
	if !ok {
		t.Fatalf("expected 'arr' to be declared")
	}
	v := tp.b.Scopes.Variables().Get(id)
	ty, _ := tp.b.Types.Lookup(v.Type)
	if ty.ArrayLen != 4 {
		t.Fatalf("expected the folded array length 4, got %d", ty.ArrayLen)
	}
}

func TestParseArraySizeNonConstantExpressionIsAnError(t *testing.T) {
	tp := newTestParser(t, `
		float n;
		float a[n];
	`)
	tp.p.ParseTranslationUnit()
	found := false
	for _, d := range tp.diags.Items() {
		if d.Code == diag.TypeBadArrayLength {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TypeBadArrayLength, got %s", tp.diagSummary())
	}
}

func TestParseConstWithoutInitializerIsAnError(t *testing.T) {
	tp := parseFunctionBody(t, "const float k;")
	found := false
	for _, d := range tp.diags.Items() {
		if d.Code == diag.TypeMissingInitializer {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TypeMissingInitializer, got %s", tp.diagSummary())
	}
}

func TestParseCBufferLowersMembersAsGlobals(t *testing.T) {
	tp := newTestParser(t, `
		cbuffer PerFrame : register(b0) {
			float4x4 viewProj;
			float3 eyePos;
		};
	`)
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)

	for _, n := range []string{"viewProj", "eyePos"} {
		if _, ok := tp.b.Scopes.Lookup(tp.strings.Intern(n)); !ok {
			t.Fatalf("expected cbuffer member %q to be declared as a global", n)
		}
	}
}

func TestParseTechniqueBlockIsSkipped(t *testing.T) {
	tp := newTestParser(t, `
		technique Main {
			pass P0 {
				VertexShader = compile vs_4_0 VS();
			}
		}
		float4 after;
	`)
	tp.p.ParseTranslationUnit()
	if _, ok := tp.b.Scopes.Lookup(tp.strings.Intern("after")); !ok {
		t.Fatalf("expected parsing to continue past the skipped technique block")
	}
}

func TestParseStructBraceInitializer(t *testing.T) {
	tp := newTestParser(t, `
		struct Point { float x; float y; };
		Point p = { 1.0, 2.0 };
	`)
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)
}

func TestParseArrayBraceInitializerIsUnimplemented(t *testing.T) {
	tp := newTestParser(t, "float a[2] = { 1.0, 2.0 };")
	tp.p.ParseTranslationUnit()
	found := false
	for _, d := range tp.diags.Items() {
		if d.Code == diag.UnimplArrayInit {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnimplArrayInit, got %s", tp.diagSummary())
	}
}
