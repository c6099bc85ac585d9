// Package token defines the lexical token vocabulary of the HLSL subset
// surface syntax.
package token

import "github.com/hlslc/frontend/internal/source"

// Token is a single lexical unit with its source range and literal text.
type Token struct {
	Kind  Kind
	Range source.Range
	Text  string

	// IntValue/FloatValue/BoolValue hold the decoded literal payload for
	// IntLit/FloatLit/BoolLit tokens.
	IntValue   int64
	FloatValue float64
	BoolValue  bool
}

// Loc returns the token's starting location, the one diagnostics anchor
// on by convention.
func (t Token) Loc() source.Location {
	return t.Range.First
}

// IsIdentLike reports whether t is one of the three identifier classes
// the lexer's scope-aware classifier can produce.
func (t Token) IsIdentLike() bool {
	switch t.Kind {
	case NewIdent, VarName, TypeName:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether t carries a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, BoolLit:
		return true
	default:
		return false
	}
}
