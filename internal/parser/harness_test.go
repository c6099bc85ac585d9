package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scopeClassifier resolves identifier text against a live scope stack,
// the same split the lexer package's Classifier interface exists for -
// the real implementation lives in internal/frontend, but a parser test
// drives the lexer directly, so it needs its own copy wired to the same
// tables as the Parser under test.
type scopeClassifier struct {
	strings *source.StringInterner
	scopes  *scope.Stack
}

func (c scopeClassifier) Classify(name string) token.Kind {
	id := c.strings.Intern(name)
	if _, ok := c.scopes.LookupType(id); ok {
		return token.TypeName
	}
	if _, ok := c.scopes.Lookup(id); ok {
		return token.VarName
	}
	return token.NewIdent
}

// testParser bundles a Parser with the tables it drives, so a test can
// both feed it source and inspect the resulting scope/type/diagnostic
// state afterward.
type testParser struct {
	p       *Parser
	b       *irbuild.Builder
	strings *source.StringInterner
	diags   *diag.Bag
	files   *source.FilePool
}

// newTestParser builds a fresh set of compilation tables and a Parser
// over src, without running it - callers choose which production to
// call (parseExpr, parseStatement, ParseTranslationUnit, ...).
func newTestParser(t *testing.T, src string) *testParser {
	t.Helper()
	strs := source.NewStringInterner()
	types := hlsltype.NewRegistry(strs)
	pre := hlsltype.SeedPredefined(types)
	scopes := scope.NewStack(pre.SeedStringsInto(strs))
	diags := diag.NewBag()
	b := irbuild.New(strs, types, scopes, diags)
	b.VoidType = pre.Void

	files := source.NewFilePool()
	file := files.Intern("test.hlsl")

	lx := lexer.New(file, src, lexer.Options{
		Files:      files,
		Diags:      diags,
		Classifier: scopeClassifier{strings: strs, scopes: scopes},
	})

	p := New(lx, b, pre, Options{})
	return &testParser{p: p, b: b, strings: strs, diags: diags, files: files}
}

func (tp *testParser) diagSummary() string {
	items := tp.diags.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (tp *testParser) requireNoErrors(t *testing.T) {
	t.Helper()
	if tp.diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", tp.diagSummary())
	}
}
