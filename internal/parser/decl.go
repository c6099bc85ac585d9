package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// parseTopLevel recognizes one top-level item: a typedef, a struct
// declaration, a cbuffer, a technique (skipped), or a modifiers+type
// declarator group that is either a function or one or more variables,
// disambiguated by whether the first declarator's name is followed by
// '('.
func (p *Parser) parseTopLevel() bool {
	switch p.ts.peek().Kind {
	case token.KwTypedef:
		return p.parseTypedef()
	case token.KwCBuffer:
		return p.parseCBuffer()
	case token.KwTechnique:
		return p.skipTechnique()
	default:
		return p.parseDeclGroup()
	}
}

func (p *Parser) parseTypedef() bool {
	p.advance() // 'typedef'
	mods := p.parseModifiers()
	base, ok := p.parseTypeSpec()
	if !ok {
		return false
	}
	name, loc, ok := p.parseIdentLike()
	if !ok {
		return false
	}
	arrayLen := p.parseOptionalArraySize()
	if _, ok := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after typedef"); !ok {
		return false
	}
	p.b.DeclareTypedef(loc, name, base, mods, arrayLen)
	return true
}

// parseCBuffer lowers each member of a `cbuffer Name { ... }` block as an
// ordinary global variable declaration - cbuffer is a grouping construct
// only, it does not introduce a struct type of its own. A ';' after the
// closing '}' is optional.
func (p *Parser) parseCBuffer() bool {
	p.advance() // 'cbuffer'
	if p.ts.peek().IsIdentLike() {
		p.advance()
	}
	if p.at(token.Colon) {
		p.advance()
		p.expect(token.KwRegister, diag.SynExpectedToken, "expected 'register' after ':'")
		p.skipBalanced(token.LParen, token.RParen)
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectedToken, "expected '{' to start cbuffer body"); !ok {
		return false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.parseDeclGroup() {
			p.resyncTopLevel()
		}
	}
	_, ok := p.expect(token.RBrace, diag.SynUnclosedDelim, "expected '}' to close cbuffer body")
	if ok && p.at(token.Semicolon) {
		p.advance()
	}
	return ok
}

// skipTechnique consumes a `technique { pass { ... } ... }` block without
// lowering it - render-state blocks carry no data this front end models,
// full HLSL conformance being explicitly out of scope.
func (p *Parser) skipTechnique() bool {
	p.advance() // 'technique'
	if p.ts.peek().IsIdentLike() {
		p.advance()
	}
	return p.skipBalanced(token.LBrace, token.RBrace)
}

func (p *Parser) skipBalanced(open, close token.Kind) bool {
	if _, ok := p.expect(open, diag.SynExpectedToken, "expected opening delimiter"); !ok {
		return false
	}
	depth := 1
	for depth > 0 {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelim, "unexpected end of file inside balanced block")
			return false
		}
		switch p.ts.peek().Kind {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
	}
	return true
}

// parseDeclGroup parses `modifiers base-type declarator (',' declarator)* ';'`
// for variables, or `modifiers base-type name '(' params ')' (';' | block)`
// for a function - the two are disambiguated after the first name is read.
// A struct type-spec followed directly by ';' declares only the type.
func (p *Parser) parseDeclGroup() bool {
	if !isModifierStart(p.ts.peek().Kind) && !p.isTypeStart() {
		p.err(diag.SynUnexpectedToken, "expected a declaration")
		return false
	}

	mods := p.parseModifiers()
	structDecl := p.at(token.KwStruct)
	base, ok := p.parseTypeSpec()
	if !ok {
		return false
	}
	if structDecl && p.at(token.Semicolon) {
		p.advance()
		return true
	}
	name, loc, ok := p.parseIdentLike()
	if !ok {
		return false
	}

	if p.at(token.LParen) {
		return p.parseFunctionDecl(loc, name, base, mods)
	}
	return p.parseVariableDeclGroup(mods, base, name, loc)
}

func (p *Parser) parseVariableDeclGroup(mods hlsltype.Modifiers, base hlsltype.TypeID, firstName source.StringID, firstLoc source.Location) bool {
	name, loc := firstName, firstLoc
	for {
		if _, ok := p.parseOneVariableDeclarator(mods, base, name, loc); !ok {
			p.resyncTopLevel()
			return false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		var ok bool
		name, loc, ok = p.parseIdentLike()
		if !ok {
			return false
		}
	}
	_, ok := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after declaration")
	return ok
}

// parseOneVariableDeclarator parses one `name [size] [: semantic |
// : register(...)] [= init]` declarator and returns the instruction
// list its initializer (if any) produced. The list is returned at any
// scope; a global declaration discards it, having no enclosing
// instruction stream to splice it into, while a local declaration
// statement splices it in so the initializer actually runs.
func (p *Parser) parseOneVariableDeclarator(mods hlsltype.Modifiers, base hlsltype.TypeID, name source.StringID, loc source.Location) (ir.InstrList, bool) {
	arrayLen := p.parseOptionalArraySize()

	var semantic source.StringID
	var reg scope.Register
	for p.at(token.Colon) {
		p.advance()
		if p.at(token.KwRegister) {
			p.advance()
			reg = p.parseRegisterAnnotation(loc)
			continue
		}
		var ok bool
		semantic, _, ok = p.parseIdentLike()
		if !ok {
			return nil, false
		}
	}

	var init *irbuild.Lowered
	var braceElems []irbuild.Lowered
	hasBraceInit := false
	if p.at(token.Assign) {
		p.advance()
		if p.at(token.LBrace) {
			hasBraceInit = true
			braceElems = p.parseBraceInitList()
		} else {
			lowered, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			init = &lowered
		}
	}

	d := irbuild.Declarator{Name: name, Loc: loc, ArrayLen: arrayLen, Semantic: semantic, Register: reg, Init: init, HasBraceInit: hasBraceInit}
	varID, lowered, ok := p.b.DeclareVariable(mods, base, d)
	if !ok {
		return nil, true
	}
	if lowered != nil {
		return lowered.List, true
	}
	if hasBraceInit {
		if v := p.b.Scopes.Variables().Get(varID); v != nil {
			return p.b.LowerBraceInitializer(loc, varID, v.Type, braceElems), true
		}
	}
	return nil, true
}

// parseOptionalArraySize parses `'[' expr ']'`, lowers expr and
// constant-folds it, rejecting anything that doesn't fold to an integer
// in [1, 65536].
func (p *Parser) parseOptionalArraySize() uint32 {
	if !p.at(token.LBracket) {
		return 0
	}
	loc := p.loc()
	p.advance()
	size, ok := p.parseExpr()
	if !ok {
		p.expect(token.RBracket, diag.SynExpectedToken, "expected ']' after array size")
		return 0
	}
	p.expect(token.RBracket, diag.SynExpectedToken, "expected ']' after array size")

	n, ok := p.b.FoldArrayLength(loc, size)
	if !ok {
		return 1
	}
	return n
}

// parseRegisterAnnotation parses `(<tag><index>[, target])` after
// `register` has already been consumed.
func (p *Parser) parseRegisterAnnotation(loc source.Location) scope.Register {
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'register'"); !ok {
		return scope.Register{}
	}

	tag, idx, tagOK := p.parseRegisterTag()
	hasTarget := false
	if p.at(token.Comma) {
		p.advance()
		p.parseIdentLike()
		hasTarget = true
	}
	p.expect(token.RParen, diag.SynExpectedToken, "expected ')' to close register annotation")
	if !tagOK {
		return scope.Register{}
	}
	return p.b.ParseRegister(loc, tag, idx, hasTarget)
}

func (p *Parser) parseRegisterTag() (byte, uint32, bool) {
	tok := p.ts.peek()
	if !tok.IsIdentLike() || len(tok.Text) < 2 {
		p.err(diag.SynBadRegisterTag, "expected a register tag like 'c0'")
		return 0, 0, false
	}
	p.advance()
	tag := tok.Text[0]
	idx, ok := parseDecimalSuffix(tok.Text[1:])
	if !ok {
		p.err(diag.SynBadRegisterTag, "expected a numeric register index")
		return 0, 0, false
	}
	return tag, idx, true
}

func parseDecimalSuffix(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		v = v*10 + uint32(s[i]-'0')
	}
	return v, true
}
