// Package lexer implements the character scanner: it turns an
// already-preprocessed source text (carrying `#line` directives from an
// external preprocessor, which stays out of scope here) into a stream
// of tokens, classifying identifiers against live scope state as it
// goes so the parser never has to backtrack over a declaration versus
// expression ambiguity.
package lexer

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// Options configures a Lexer. Files is required so `#line "name"`
// directives can intern new file names; Diags and Classifier may be nil,
// in which case diagnostics are dropped and every identifier classifies
// as NewIdent.
type Options struct {
	Files      *source.FilePool
	Diags      *diag.Bag
	Classifier Classifier
}

// Lexer scans one file's text into tokens on demand.
type Lexer struct {
	cur  cursor
	opts Options
}

// New creates a Lexer over text, attributed to file for diagnostics and
// token locations.
func New(file source.FileID, text string, opts Options) *Lexer {
	if opts.Classifier == nil {
		opts.Classifier = staticClassifier{}
	}
	return &Lexer{cur: newCursor(file, text), opts: opts}
}

// Next scans and returns the next token, skipping whitespace, comments,
// and `#line` directives. Past end-of-input it always returns an EOF
// token at the final location.
func (lx *Lexer) Next() token.Token {
	for {
		lx.skipWhitespaceAndComments()
		if lx.cur.peek() != '#' {
			break
		}
		if !lx.tryLineDirective() {
			break
		}
	}

	start := lx.cur.loc()

	if lx.cur.eof() {
		return token.Token{Kind: token.EOF, Range: source.Range{First: start, Last: start}}
	}

	b := lx.cur.peek()
	switch {
	case isIdentStart(b):
		return lx.scanIdentOrKeyword()
	case isDigit(b), b == '.' && isDigit(lx.cur.peekAt(1)):
		return lx.scanNumber()
	case b == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		switch lx.cur.peek() {
		case ' ', '\t', '\r', '\n':
			lx.cur.bump()
			continue
		case '/':
			if lx.cur.peekAt(1) == '/' {
				for !lx.cur.eof() && lx.cur.peek() != '\n' {
					lx.cur.bump()
				}
				continue
			}
			if lx.cur.peekAt(1) == '*' {
				lx.cur.bump()
				lx.cur.bump()
				for !lx.cur.eof() && !(lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/') {
					lx.cur.bump()
				}
				if !lx.cur.eof() {
					lx.cur.bump()
					lx.cur.bump()
				}
				continue
			}
		}
		return
	}
}

func (lx *Lexer) report(code diag.Code, loc source.Location, msg string) {
	if lx.opts.Diags != nil {
		lx.opts.Diags.Error(code, loc, msg)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
