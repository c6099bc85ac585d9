package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/frontend"
	"github.com/hlslc/frontend/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// printDiagnostics renders every diagnostic in ctx: a
// "<file>:<line>:<col>: <level>: <message>" line, followed by the
// offending source line and a caret underneath it, then
// any attached notes the same way. src maps a file name to the text
// handed to ParseFile, so the snippet can be pulled without re-reading
// from disk.
func printDiagnostics(w io.Writer, useColor bool, ctx *frontend.Context, src map[string]string) {
	ctx.Diags.Sort()
	for _, d := range ctx.Diags.Items() {
		printOne(w, useColor, ctx.Files, src, d.Severity, d.Message, d.Loc)
		for _, n := range d.Notes {
			printOne(w, useColor, ctx.Files, src, diag.SevNote, n.Msg, n.Loc)
		}
	}
}

func printOne(w io.Writer, useColor bool, files *source.FilePool, src map[string]string, sev diag.Severity, msg string, loc source.Location) {
	fileName := files.Name(loc.File)
	level := sev.String()
	if useColor {
		level = colorForSeverity(sev).Sprint(level)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", fileName, loc.Line, loc.Col, level, msg)

	line, ok := sourceLine(src[fileName], loc.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)
	caret := caretUnder(line, loc.Col)
	if useColor {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "  %s\n", caret)
}

func colorForSeverity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return noteColor
	}
}

func sourceLine(text string, line uint32) (string, bool) {
	if text == "" || line == 0 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	idx := int(line) - 1
	if idx < 0 || idx >= len(lines) {
		return "", false
	}
	return lines[idx], true
}

// caretUnder builds a "^" pointer aligned under column col of line,
// accounting for wide runes so the caret lands under the right glyph
// rather than the right byte.
func caretUnder(line string, col uint32) string {
	if col == 0 {
		col = 1
	}
	runes := []rune(line)
	limit := int(col) - 1
	if limit > len(runes) {
		limit = len(runes)
	}
	width := runewidth.StringWidth(string(runes[:limit]))
	return strings.Repeat(" ", width) + "^"
}
