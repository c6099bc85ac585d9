package lexer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* (plus any non-ASCII
// continuation byte, normalized below), then either resolves it to a
// keyword or classifies it against live scope state.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cur.loc()
	startOff := lx.cur.off

	lx.cur.bump()
	for isIdentContinue(lx.cur.peek()) {
		lx.cur.bump()
	}

	raw := lx.cur.text[startOff:lx.cur.off]
	// HLSL identifiers are compared by spelling; normalize to NFC first
	// so visually identical Unicode names drawn from different sources
	// can't silently collide or fail to collide.
	text := norm.NFC.String(raw)

	end := lx.cur.loc()
	rng := source.Range{First: start, Last: end}

	if kind, ok := token.LookupKeyword(text); ok {
		switch kind {
		case token.KwTrue, token.KwFalse:
			return token.Token{Kind: token.BoolLit, Range: rng, Text: text, BoolValue: kind == token.KwTrue}
		default:
			return token.Token{Kind: kind, Range: rng, Text: text}
		}
	}

	kind := lx.opts.Classifier.Classify(text)
	return token.Token{Kind: kind, Range: rng, Text: text}
}
