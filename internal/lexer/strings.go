package lexer

import (
	"strings"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scanString scans a double-quoted string literal. HLSL strings don't
// support escapes beyond the closing quote; an unterminated string is
// reported and the token closes at end-of-line or end-of-file.
func (lx *Lexer) scanString() token.Token {
	start := lx.cur.loc()
	lx.cur.bump() // opening quote

	var sb strings.Builder
	for {
		b := lx.cur.peek()
		if b == 0 || b == '\n' {
			lx.report(diag.SynUnclosedDelim, start, "unterminated string literal")
			break
		}
		if b == '"' {
			lx.cur.bump()
			break
		}
		sb.WriteByte(b)
		lx.cur.bump()
	}

	end := lx.cur.loc()
	rng := source.Range{First: start, Last: end}
	return token.Token{Kind: token.StringLit, Range: rng, Text: sb.String()}
}
