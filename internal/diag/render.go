package diag

import (
	"fmt"
	"strings"

	"github.com/hlslc/frontend/internal/source"
)

// Render formats every diagnostic in the bag (and their notes) into a
// single buffer, one line per message, of the form
// "<file>:<line>:<col>: <level>: <message>\n".
func Render(b *Bag, files *source.FilePool) string {
	var sb strings.Builder
	for _, d := range b.Items() {
		renderOne(&sb, files, d.Loc, d.Severity.String(), d.Message)
		for _, n := range d.Notes {
			renderOne(&sb, files, n.Loc, "note", n.Msg)
		}
	}
	return sb.String()
}

func renderOne(sb *strings.Builder, files *source.FilePool, loc source.Location, level, msg string) {
	fmt.Fprintf(sb, "%s:%d:%d: %s: %s\n", files.Name(loc.File), loc.Line, loc.Col, level, msg)
}
