package frontend

import (
	"testing"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/parser"
)

func TestCompileResolvesEntryPointAndAnnotatesLiveness(t *testing.T) {
	src := `
		float4 main(float4 pos : POSITION) : SV_POSITION {
			float4 result = pos;
			result.x = result.x + 1.0;
			return result;
		}
	`
	ctx := NewContext(Options{})
	ctx.ParseFile("shader.hlsl", src, parser.Options{})
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", diagMessages(ctx))
	}

	status, _ := ctx.Compile("main", ShaderVertex, 5, 0)
	if status != diag.StatusOK {
		t.Fatalf("expected StatusOK, got %v: %s", status, diagMessages(ctx))
	}
	if !ctx.Entry().IsValid() {
		t.Fatalf("expected a resolved entry function")
	}
}

func TestCompileMissingEntryPointIsAnError(t *testing.T) {
	ctx := NewContext(Options{})
	ctx.ParseFile("shader.hlsl", "float4 helper() { return float4(0, 0, 0, 0); }", parser.Options{})

	status, diags := ctx.Compile("main", ShaderPixel, 5, 0)
	if status != diag.StatusError {
		t.Fatalf("expected StatusError, got %v", status)
	}
	found := false
	for _, d := range diags {
		if d.Code == diag.ResEntryPointNotFound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ResEntryPointNotFound diagnostic, got %+v", diags)
	}
}

func TestCompileEmptyEntryPointNameIsAnError(t *testing.T) {
	ctx := NewContext(Options{})
	status, _ := ctx.Compile("", ShaderPixel, 5, 0)
	if status != diag.StatusError {
		t.Fatalf("expected StatusError for empty entry point name, got %v", status)
	}
}
