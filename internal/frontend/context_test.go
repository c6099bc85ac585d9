package frontend

import (
	"testing"

	"github.com/hlslc/frontend/internal/parser"
)

func TestParseFileDeclaresGlobalsAndFunctions(t *testing.T) {
	src := `
		float4 g_tint : register(c0);

		float4 scale(float4 v, float k) {
			return v * k;
		}
	`
	ctx := NewContext(Options{})
	ctx.ParseFile("shader.hlsl", src, parser.Options{})

	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagMessages(ctx))
	}

	name := ctx.Strings.Intern("scale")
	if len(ctx.Builder.Funcs.Overloads(name)) == 0 {
		t.Fatalf("expected function 'scale' to be declared")
	}

	gname := ctx.Strings.Intern("g_tint")
	if _, ok := ctx.Scopes.Lookup(gname); !ok {
		t.Fatalf("expected global 'g_tint' to be declared")
	}
}

func TestParseFileAcrossMultipleCallsSharesScope(t *testing.T) {
	ctx := NewContext(Options{})
	ctx.ParseFile("a.hlsl", "static const int kCount = 4;", parser.Options{})
	ctx.ParseFile("b.hlsl", "float4 read() { return float4(kCount, 0, 0, 0); }", parser.Options{})

	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagMessages(ctx))
	}
}

func diagMessages(ctx *Context) string {
	s := ""
	for _, d := range ctx.Diags.Items() {
		s += d.Message + "; "
	}
	return s
}
