package lexer_test

import (
	"testing"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

func makeTestLexer(t *testing.T, input string) (*lexer.Lexer, *diag.Bag) {
	t.Helper()
	files := source.NewFilePool()
	fileID := files.Intern("test.hlsl")
	bag := diag.NewBag()
	opts := lexer.Options{Files: files, Diags: bag}
	return lexer.New(fileID, input, opts), bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	lx, bag := makeTestLexer(t, "+ += ++ << <<= <= = == != && ||")
	toks := collectAllTokens(lx)
	want := []token.Kind{
		token.Plus, token.PlusAssign, token.PlusPlus,
		token.Shl, token.ShlAssign, token.LtEq, token.Assign, token.EqEq,
		token.BangEq, token.AmpAmp, token.PipePipe, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexerNumericLiterals(t *testing.T) {
	cases := []struct {
		text string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"0x2A", token.IntLit},
		{"3.14", token.FloatLit},
		{"1.0f", token.FloatLit},
		{"1e-3", token.FloatLit},
		{".5", token.FloatLit},
	}
	for _, tc := range cases {
		lx, bag := makeTestLexer(t, tc.text)
		tok := lx.Next()
		if tok.Kind != tc.kind {
			t.Fatalf("%q: kind = %v, want %v", tc.text, tok.Kind, tc.kind)
		}
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics: %v", tc.text, bag.Items())
		}
	}
}

func TestLexerClassifiesIdentifiers(t *testing.T) {
	files := source.NewFilePool()
	fileID := files.Intern("test.hlsl")
	cls := stubClassifier{types: map[string]bool{"float3": true}, vars: map[string]bool{"x": true}}
	lx := lexer.New(fileID, "float3 x freshName", lexer.Options{Files: files, Classifier: cls})

	toks := collectAllTokens(lx)
	if toks[0].Kind != token.TypeName {
		t.Fatalf("float3 classified as %v, want TypeName", toks[0].Kind)
	}
	if toks[1].Kind != token.VarName {
		t.Fatalf("x classified as %v, want VarName", toks[1].Kind)
	}
	if toks[2].Kind != token.NewIdent {
		t.Fatalf("freshName classified as %v, want NewIdent", toks[2].Kind)
	}
}

func TestLexerLineDirectiveUpdatesLocation(t *testing.T) {
	lx, bag := makeTestLexer(t, "x\n#line 100 \"other.hlsl\"\ny")
	toks := collectAllTokens(lx)
	if toks[0].Loc().Line != 1 {
		t.Fatalf("first token line = %d, want 1", toks[0].Loc().Line)
	}
	if toks[1].Loc().Line != 100 {
		t.Fatalf("second token line = %d, want 100", toks[1].Loc().Line)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexerUnterminatedStringReportsDiagnostic(t *testing.T) {
	lx, bag := makeTestLexer(t, `"abc`)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("kind = %v, want StringLit", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected an unterminated-string diagnostic")
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	lx, _ := makeTestLexer(t, "// comment\n/* block */ x")
	tok := lx.Next()
	if tok.Kind != token.NewIdent || tok.Text != "x" {
		t.Fatalf("got %v %q, want NewIdent x", tok.Kind, tok.Text)
	}
}

type stubClassifier struct {
	types map[string]bool
	vars  map[string]bool
}

func (s stubClassifier) Classify(name string) token.Kind {
	if s.types[name] {
		return token.TypeName
	}
	if s.vars[name] {
		return token.VarName
	}
	return token.NewIdent
}
