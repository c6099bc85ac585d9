package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// parseFunctionDecl parses the parameter list, an optional return
// semantic, an optional register annotation (reported as unsupported on
// a function), and either a ';' prototype or a '{' body.
func (p *Parser) parseFunctionDecl(loc source.Location, name source.StringID, retType hlsltype.TypeID, _ hlsltype.Modifiers) bool {
	params, ok := p.parseParamList()
	if !ok {
		return false
	}

	var retSemantic source.StringID
	for p.at(token.Colon) {
		p.advance()
		if p.at(token.KwRegister) {
			p.advance()
			p.parseRegisterAnnotation(loc)
			p.b.RejectFunctionRegister(loc)
			continue
		}
		retSemantic, _, ok = p.parseIdentLike()
		if !ok {
			return false
		}
	}

	hasBody := p.at(token.LBrace)
	id, began := p.b.BeginFunction(loc, name, retType, retSemantic, params, hasBody)

	if !hasBody {
		_, ok := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after function prototype")
		if began {
			p.b.EndFunction(id, nil)
		}
		return ok
	}

	body, ok := p.parseBlock()
	if began {
		p.b.EndFunction(id, &body)
	}
	return ok
}

func (p *Parser) parseParamList() ([]irbuild.ParamSpec, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' to start parameter list"); !ok {
		return nil, false
	}
	var params []irbuild.ParamSpec
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' to close parameter list")
	return params, ok
}

func (p *Parser) parseParam() (irbuild.ParamSpec, bool) {
	mods := p.parseModifiers()
	base, ok := p.parseTypeSpec()
	if !ok {
		return irbuild.ParamSpec{}, false
	}
	name, loc, ok := p.parseIdentLike()
	if !ok {
		return irbuild.ParamSpec{}, false
	}
	arrayLen := p.parseOptionalArraySize()
	declType := base
	if arrayLen > 0 {
		declType = p.b.Types.Array(base, arrayLen)
	}

	var semantic source.StringID
	if p.at(token.Colon) {
		p.advance()
		semantic, _, ok = p.parseIdentLike()
		if !ok {
			return irbuild.ParamSpec{}, false
		}
	}
	return irbuild.ParamSpec{Name: name, Type: declType, Loc: loc, Mods: mods, Semantic: semantic}, true
}
