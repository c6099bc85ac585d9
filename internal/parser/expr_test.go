package parser

import (
	"testing"

	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
)

func TestParsePrecedenceOfBinaryOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"additive_over_equality", "1 + 2 == 3"},
		{"multiplicative_over_additive", "1 + 2 * 3"},
		{"shift_over_relational", "1 < 2 << 1"},
		{"logical_and_over_or", "1 || 0 && 1"},
		{"bitor_over_bitxor", "1 ^ 2 | 3"},
		{"ternary_right_assoc", "1 ? 2 : 3 ? 4 : 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestParser(t, tt.input)
			lowered, ok := tp.p.parseExpr()
			if !ok {
				t.Fatalf("parse failed: %s", tp.diagSummary())
			}
			tp.requireNoErrors(t)
			if !lowered.Result.IsValid() {
				t.Fatalf("expected a resolved expression node")
			}
		})
	}
}

func TestParseFieldVsSwizzleDisambiguation(t *testing.T) {
	tp := newTestParser(t, "v.xy")
	ty := tp.p.pre.ByName["float4"]
	if _, _, ok := tp.b.Scopes.Declare(scope.Variable{Name: tp.strings.Intern("v"), Type: ty}); !ok {
		t.Fatalf("failed to declare v")
	}

	lowered, ok := tp.p.parseExpr()
	if !ok {
		t.Fatalf("parse failed: %s", tp.diagSummary())
	}
	tp.requireNoErrors(t)
	node := tp.b.Arena.Get(lowered.Result)
	if node == nil || node.Kind != ir.KindSwizzle {
		t.Fatalf("expected a swizzle node, got %v", node)
	}
}

func TestParseStructFieldAccess(t *testing.T) {
	tp := newTestParser(t, "struct S { float4 pos; float w; }; S s; void f() { s.w; }")
	tp.p.ParseTranslationUnit()
	tp.requireNoErrors(t)
}

func TestParseCastVsParenExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"cast", "(float)1"},
		{"paren", "(1 + 2)"},
		{"cast_vector", "(float4)int4(0, 0, 0, 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestParser(t, tt.input)
			lowered, ok := tp.p.parseExpr()
			if !ok {
				t.Fatalf("parse failed: %s", tp.diagSummary())
			}
			tp.requireNoErrors(t)
			if !lowered.Result.IsValid() {
				t.Fatalf("expected a resolved expression node")
			}
		})
	}
}

func TestParseConstructorExpression(t *testing.T) {
	tp := newTestParser(t, "float4(1, 2, 3, 4)")
	lowered, ok := tp.p.parseExpr()
	if !ok {
		t.Fatalf("parse failed: %s", tp.diagSummary())
	}
	tp.requireNoErrors(t)
	node := tp.b.Arena.Get(lowered.Result)
	if node == nil || node.Kind != ir.KindConstructor {
		t.Fatalf("expected a constructor node, got %v", node)
	}
}

func TestParseUnimplementedFunctionCallWarns(t *testing.T) {
	tp := newTestParser(t, "foo(1, 2)")
	_, ok := tp.p.parseExpr()
	if !ok {
		t.Fatalf("parse failed: %s", tp.diagSummary())
	}
	if !tp.diags.HasWarnings() {
		t.Fatalf("expected a warning for the unlowered call, got %s", tp.diagSummary())
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	tp := parseFunctionBody(t, "int a; int b; int c; a = b = c;")
	tp.requireNoErrors(t)
}

func TestParsePostfixIncrementDecrement(t *testing.T) {
	tp := parseFunctionBody(t, "int a; a++;")
	tp.requireNoErrors(t)
}

func TestParseCompoundAssignOperators(t *testing.T) {
	ops := []string{"+=", "-=", "*=", "/="}
	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			tp := parseFunctionBody(t, "int a; a "+op+" 1;")
			tp.requireNoErrors(t)
		})
	}
}
