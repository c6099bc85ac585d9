package lexer

import "github.com/hlslc/frontend/internal/token"

// Classifier resolves an identifier spelling against live scope state,
// so the lexer can emit token.TypeName/VarName/NewIdent directly
// instead of the parser backtracking over a declaration/expression
// ambiguity. The frontend package supplies the
// concrete implementation backed by a scope.Stack; the lexer only needs
// this narrow interface to stay decoupled from the symbol tables.
type Classifier interface {
	Classify(name string) token.Kind
}

// staticClassifier always returns NewIdent, used by callers (tests,
// tools) that only want raw tokenization without scope awareness.
type staticClassifier struct{}

func (staticClassifier) Classify(string) token.Kind { return token.NewIdent }
