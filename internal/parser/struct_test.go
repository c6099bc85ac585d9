package parser

import (
	"testing"

	"github.com/hlslc/frontend/internal/diag"
)

func TestParseNamedStructDeclaresFields(t *testing.T) {
	tp := newTestParser(t, `
		struct Light {
			float3 color;
			float intensity : INTENSITY;
		};
	`)
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)

	name := tp.strings.Intern("Light")
	ty, ok := tp.b.Scopes.LookupType(name)
	if !ok {
		t.Fatalf("expected struct type 'Light' to be registered")
	}
	fields := tp.b.Types.Fields(ty)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
}

func TestParseStructDuplicateFieldIsAnError(t *testing.T) {
	tp := newTestParser(t, `
		struct Bad {
			float x;
			float x;
		};
	`)
	tp.p.ParseTranslationUnit()
	if !tp.diags.HasErrors() {
		t.Fatalf("expected a duplicate-field error")
	}
	found := false
	for _, d := range tp.diags.Items() {
		if d.Code == diag.RedefVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected RedefVariable diagnostic, got %s", tp.diagSummary())
	}
}

func TestParseAnonymousStructAsDeclarationBaseType(t *testing.T) {
	tp := newTestParser(t, `
		struct { float2 uv; } texcoord;
	`)
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)
}

func TestParseStructFieldWithArraySizeAndSemantic(t *testing.T) {
	tp := newTestParser(t, `
		struct Bones {
			float4 weights[4] : BLENDWEIGHT;
		};
	`)
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)
}
