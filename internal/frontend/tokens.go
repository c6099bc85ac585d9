package frontend

import (
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/token"
)

// Tokenize lexes text to completion and returns every token, including
// the trailing EOF, without invoking the parser or touching scope state.
// It is the building block for a CLI's tokenize subcommand.
func (c *Context) Tokenize(fileName, text string) []token.Token {
	fileID := c.Files.Intern(fileName)
	lx := lexer.New(fileID, text, lexer.Options{
		Files:      c.Files,
		Diags:      c.Diags,
		Classifier: c.classifier,
	})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}
