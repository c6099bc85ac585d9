package lexer

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// scanOperatorOrPunct scans one punctuation or operator token, preferring
// the longest match (e.g. "<<=" over "<<" over "<").
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cur.loc()
	startOff := lx.cur.off
	b := lx.cur.bump()

	two := func(next byte, kind token.Kind, single token.Kind) token.Kind {
		if lx.cur.peek() == next {
			lx.cur.bump()
			return kind
		}
		return single
	}

	var kind token.Kind
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = two(':', token.ColonColon, token.Colon)
	case '.':
		kind = token.Dot
	case '?':
		kind = token.Question
	case '+':
		switch {
		case lx.cur.peek() == '+':
			lx.cur.bump()
			kind = token.PlusPlus
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.PlusAssign
		default:
			kind = token.Plus
		}
	case '-':
		switch {
		case lx.cur.peek() == '-':
			lx.cur.bump()
			kind = token.MinusMinus
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.MinusAssign
		default:
			kind = token.Minus
		}
	case '*':
		kind = two('=', token.StarAssign, token.Star)
	case '/':
		kind = two('=', token.SlashAssign, token.Slash)
	case '%':
		kind = two('=', token.PercentAssign, token.Percent)
	case '!':
		kind = two('=', token.BangEq, token.Bang)
	case '~':
		kind = token.Tilde
	case '<':
		switch {
		case lx.cur.peek() == '<' && lx.cur.peekAt(1) == '=':
			lx.cur.bump()
			lx.cur.bump()
			kind = token.ShlAssign
		case lx.cur.peek() == '<':
			lx.cur.bump()
			kind = token.Shl
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.LtEq
		default:
			kind = token.Lt
		}
	case '>':
		switch {
		case lx.cur.peek() == '>' && lx.cur.peekAt(1) == '=':
			lx.cur.bump()
			lx.cur.bump()
			kind = token.ShrAssign
		case lx.cur.peek() == '>':
			lx.cur.bump()
			kind = token.Shr
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.GtEq
		default:
			kind = token.Gt
		}
	case '=':
		kind = two('=', token.EqEq, token.Assign)
	case '&':
		switch {
		case lx.cur.peek() == '&':
			lx.cur.bump()
			kind = token.AmpAmp
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.AmpAssign
		default:
			kind = token.Amp
		}
	case '|':
		switch {
		case lx.cur.peek() == '|':
			lx.cur.bump()
			kind = token.PipePipe
		case lx.cur.peek() == '=':
			lx.cur.bump()
			kind = token.PipeAssign
		default:
			kind = token.Pipe
		}
	case '^':
		kind = two('=', token.CaretAssign, token.Caret)
	default:
		kind = token.Invalid
	}

	end := lx.cur.loc()
	rng := source.Range{First: start, Last: end}
	text := lx.cur.text[startOff:lx.cur.off]
	if kind == token.Invalid {
		lx.report(diag.SynUnexpectedToken, start, "unexpected character '"+string(b)+"'")
	}
	return token.Token{Kind: kind, Range: rng, Text: text}
}
