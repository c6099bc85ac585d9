package parser

import (
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/token"
)

// tokenStream adds one-token lookahead on top of *lexer.Lexer, which only
// exposes Next. The parser needs Peek to decide between alternatives
// (declaration vs. expression, cast vs. parenthesized expression) without
// backtracking.
type tokenStream struct {
	lx      *lexer.Lexer
	lookhd  token.Token
	primed  bool
	lastTok token.Token
}

func newTokenStream(lx *lexer.Lexer) *tokenStream {
	return &tokenStream{lx: lx}
}

func (ts *tokenStream) peek() token.Token {
	if !ts.primed {
		ts.lookhd = ts.lx.Next()
		ts.primed = true
	}
	return ts.lookhd
}

func (ts *tokenStream) next() token.Token {
	tok := ts.peek()
	ts.primed = false
	if tok.Kind != token.EOF {
		ts.lastTok = tok
	}
	return tok
}
