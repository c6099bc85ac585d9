package lexer

import "github.com/hlslc/frontend/internal/source"

// tryLineDirective consumes a `#line <num> "file"` directive at the
// current position and reports whether one was found. The preprocessor
// that emits these directives is an external collaborator, out of
// scope here; the lexer only has to apply them.
func (lx *Lexer) tryLineDirective() bool {
	save := lx.cur

	if lx.cur.peek() != '#' {
		return false
	}
	lx.cur.bump()
	lx.skipInlineSpace()
	if !lx.consumeWord("line") {
		lx.cur = save
		return false
	}
	lx.skipInlineSpace()

	num, ok := lx.consumeDecimal()
	if !ok {
		lx.cur = save
		return false
	}
	lx.skipInlineSpace()

	fileID := source.NoFileID
	if lx.cur.peek() == '"' {
		name, ok := lx.consumeQuoted()
		if ok && lx.opts.Files != nil {
			fileID = lx.opts.Files.Intern(name)
		}
	}

	for !lx.cur.eof() && lx.cur.peek() != '\n' {
		lx.cur.bump()
	}
	if !lx.cur.eof() {
		lx.cur.bump()
	}

	lx.cur.setLine(num, fileID)
	return true
}

func (lx *Lexer) skipInlineSpace() {
	for lx.cur.peek() == ' ' || lx.cur.peek() == '\t' {
		lx.cur.bump()
	}
}

func (lx *Lexer) consumeWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if lx.cur.peekAt(i) != word[i] {
			return false
		}
	}
	for i := 0; i < len(word); i++ {
		lx.cur.bump()
	}
	return true
}

func (lx *Lexer) consumeDecimal() (uint32, bool) {
	start := lx.cur.off
	for isDigit(lx.cur.peek()) {
		lx.cur.bump()
	}
	if lx.cur.off == start {
		return 0, false
	}
	var v uint32
	for _, b := range []byte(lx.cur.text[start:lx.cur.off]) {
		v = v*10 + uint32(b-'0')
	}
	return v, true
}

func (lx *Lexer) consumeQuoted() (string, bool) {
	if !lx.cur.eat('"') {
		return "", false
	}
	start := lx.cur.off
	for !lx.cur.eof() && lx.cur.peek() != '"' && lx.cur.peek() != '\n' {
		lx.cur.bump()
	}
	text := lx.cur.text[start:lx.cur.off]
	if !lx.cur.eat('"') {
		return text, false
	}
	return text, true
}
