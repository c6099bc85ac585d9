package frontend

import (
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scopeClassifier is the lexer.Classifier backed by live scope state: the
// lexer asks it to resolve an identifier's text before emitting a token,
// so the parser sees TypeName/VarName/NewIdent directly instead of
// backtracking.
type scopeClassifier struct {
	strings *source.StringInterner
	scopes  *scope.Stack
}

func newScopeClassifier(strings *source.StringInterner, scopes *scope.Stack) *scopeClassifier {
	return &scopeClassifier{strings: strings, scopes: scopes}
}

func (c *scopeClassifier) Classify(name string) token.Kind {
	id := c.strings.Intern(name)
	if _, ok := c.scopes.LookupType(id); ok {
		return token.TypeName
	}
	if _, ok := c.scopes.Lookup(id); ok {
		return token.VarName
	}
	return token.NewIdent
}
