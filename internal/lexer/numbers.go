package lexer

import (
	"strconv"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scanNumber scans an HLSL numeric literal: decimal or hex integers, and
// decimal floats with an optional exponent and an f/F/h/H/L suffix.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.loc()
	startOff := lx.cur.off
	isFloat := false

	if lx.cur.peek() == '0' && (lx.cur.peekAt(1) == 'x' || lx.cur.peekAt(1) == 'X') {
		lx.cur.bump()
		lx.cur.bump()
		for isHexDigit(lx.cur.peek()) {
			lx.cur.bump()
		}
		return lx.emitNumber(start, startOff, false)
	}

	for isDigit(lx.cur.peek()) {
		lx.cur.bump()
	}
	if lx.cur.peek() == '.' && (isDigit(lx.cur.peekAt(1)) || lx.cur.off == startOff) {
		isFloat = true
		lx.cur.bump()
		for isDigit(lx.cur.peek()) {
			lx.cur.bump()
		}
	}
	if lx.cur.peek() == 'e' || lx.cur.peek() == 'E' {
		isFloat = true
		lx.cur.bump()
		if lx.cur.peek() == '+' || lx.cur.peek() == '-' {
			lx.cur.bump()
		}
		for isDigit(lx.cur.peek()) {
			lx.cur.bump()
		}
	}
	switch lx.cur.peek() {
	case 'f', 'F', 'h', 'H':
		isFloat = true
		lx.cur.bump()
	case 'l', 'L', 'u', 'U':
		lx.cur.bump()
	}

	return lx.emitNumber(start, startOff, isFloat)
}

func (lx *Lexer) emitNumber(start source.Location, startOff uint32, isFloat bool) token.Token {
	end := lx.cur.loc()
	rng := source.Range{First: start, Last: end}
	text := lx.cur.text[startOff:lx.cur.off]

	if isFloat {
		digits := trimFloatSuffix(text)
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			lx.report(diag.SynUnexpectedToken, start, "malformed floating-point literal")
		}
		return token.Token{Kind: token.FloatLit, Range: rng, Text: text, FloatValue: v}
	}

	digits := trimIntSuffix(text)
	base := 10
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		lx.report(diag.SynUnexpectedToken, start, "malformed integer literal")
	}
	return token.Token{Kind: token.IntLit, Range: rng, Text: text, IntValue: v}
}

func trimFloatSuffix(text string) string {
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'f', 'F', 'h', 'H', 'l', 'L':
			return text[:n-1]
		}
	}
	return text
}

func trimIntSuffix(text string) string {
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'l', 'L', 'u', 'U':
			return text[:n-1]
		}
	}
	return text
}
