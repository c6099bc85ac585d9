package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/hlslc/frontend/internal/source"
)

// cursor walks a single source file's text one byte at a time, tracking
// the line/column directly rather than a byte offset resolved later, so
// location ranges carry plain line+column from the start.
type cursor struct {
	file source.FileID
	text string
	off  uint32
	line uint32
	col  uint32
}

func newCursor(file source.FileID, text string) cursor {
	return cursor{file: file, text: text, line: 1, col: 1}
}

func (c *cursor) eof() bool {
	return int(c.off) >= len(c.text)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.text[c.off]
}

func (c *cursor) peekAt(ahead int) byte {
	idx := int(c.off) + ahead
	if idx >= len(c.text) {
		return 0
	}
	return c.text[idx]
}

func (c *cursor) loc() source.Location {
	line, err := safecast.Conv[uint32](c.line)
	if err != nil {
		panic(fmt.Errorf("lexer: line overflow: %w", err))
	}
	return source.Location{File: c.file, Line: line, Col: c.col}
}

// bump consumes and returns the current byte, advancing line/col.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.text[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

func (c *cursor) eat(b byte) bool {
	if c.peek() == b {
		c.bump()
		return true
	}
	return false
}

// setLine implements a `#line <num> "file"` directive: the line
// counter is reset and, when file is non-empty, the active file id is
// swapped for the pool's interned id.
func (c *cursor) setLine(line uint32, file source.FileID) {
	c.line = line
	c.col = 1
	if file != source.NoFileID {
		c.file = file
	}
}
