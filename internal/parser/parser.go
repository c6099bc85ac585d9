// Package parser is the recursive-descent grammar driver for the HLSL
// subset surface syntax. It recognizes declarations,
// statements, and expressions and calls into package irbuild's Builder
// methods as each construct is recognized - the parser never builds IR
// nodes directly.
package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// Options configures a parse run.
type Options struct {
	// MaxErrors: once the parser has reported this many errors, its own
	// further errors and warnings are dropped; lexer and builder
	// diagnostics are still recorded. 0 means unbounded.
	MaxErrors uint
}

// Parser holds the per-file parsing state: the lookahead-buffered token
// stream, the builder it drives, and the predefined-type table needed to
// resolve the handful of builtin type keywords (void, sampler variants,
// texture variants, string) that bypass scope-based TypeName
// classification.
type Parser struct {
	ts   *tokenStream
	b    *irbuild.Builder
	pre  hlsltype.Predefined
	opts Options

	errCount uint
}

// New creates a Parser over lx, driving b and resolving builtin keyword
// types against pre.
func New(lx *lexer.Lexer, b *irbuild.Builder, pre hlsltype.Predefined, opts Options) *Parser {
	return &Parser{ts: newTokenStream(lx), b: b, pre: pre, opts: opts}
}

// ParseTranslationUnit parses every top-level declaration in the file.
func (p *Parser) ParseTranslationUnit() {
	for !p.at(token.EOF) {
		if !p.parseTopLevel() {
			p.resyncTopLevel()
		}
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.ts.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	cur := p.ts.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	return p.ts.next()
}

func (p *Parser) loc() source.Location {
	return p.ts.peek().Loc()
}

// expect consumes k or reports code/msg and returns the zero token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	if p.enoughErrors() {
		return
	}
	p.errCount++
	p.b.Diags.Error(code, p.loc(), msg)
}

func (p *Parser) warn(code diag.Code, msg string) {
	if p.enoughErrors() {
		return
	}
	p.b.Diags.Warning(code, p.loc(), msg)
}

func (p *Parser) enoughErrors() bool {
	return p.opts.MaxErrors > 0 && p.errCount >= p.opts.MaxErrors
}

// parseIdentLike accepts any of the three identifier-class tokens the
// lexer's scope-aware classifier can produce and interns its text.
func (p *Parser) parseIdentLike() (source.StringID, source.Location, bool) {
	tok := p.ts.peek()
	if !tok.IsIdentLike() {
		p.err(diag.SynUnexpectedToken, "expected an identifier")
		return source.NoStringID, tok.Loc(), false
	}
	p.advance()
	return p.b.Strings.Intern(tok.Text), tok.Loc(), true
}

// resyncTopLevel skips tokens until one that plausibly starts a new
// top-level declaration, or EOF.
func (p *Parser) resyncTopLevel() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if isTopLevelStarter(p.ts.peek().Kind) {
			return
		}
		p.advance()
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.TypeName, token.KwStruct, token.KwTypedef, token.KwVoid,
		token.KwConst, token.KwExtern, token.KwUniform, token.KwStatic,
		token.KwShared, token.KwGroupshared, token.KwVolatile, token.KwInline,
		token.KwPrecise, token.KwRowMajor, token.KwColumnMajor, token.KwNointerpolation,
		token.KwCBuffer, token.KwTechnique, token.KwSampler, token.KwSamplerState,
		token.KwSampler1D, token.KwSampler2D, token.KwSampler3D, token.KwSamplerCube,
		token.KwTexture, token.KwTexture1D, token.KwTexture2D, token.KwTexture3D,
		token.KwTextureCube, token.KwString, token.KwPixelShader, token.KwVertexShader:
		return true
	default:
		return false
	}
}
