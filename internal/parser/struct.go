package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// parseStructTypeSpec parses `struct [Name] { field-decl* }` and declares
// it in the type registry via DeclareStruct/SetFields. An anonymous
// struct (no name) is valid only inline, in a declaration's base-type
// position.
func (p *Parser) parseStructTypeSpec() (hlsltype.TypeID, bool) {
	loc := p.loc()
	p.advance() // 'struct'

	var name source.StringID
	if p.ts.peek().IsIdentLike() {
		var ok bool
		name, _, ok = p.parseIdentLike()
		if !ok {
			return hlsltype.NoTypeID, false
		}
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectedToken, "expected '{' to start struct body"); !ok {
		return hlsltype.NoTypeID, false
	}

	structType := p.b.Types.DeclareStruct(name, loc)
	var fields []hlsltype.StructField
	seen := make(map[source.StringID]source.Location)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseStructField()
		if !ok {
			p.resyncStructField()
			continue
		}
		if prior, exists := seen[field.Name]; exists {
			idx := p.b.Diags.Error(diag.RedefVariable, field.loc, "duplicate field name")
			p.b.Diags.AddNote(idx, prior, "previous declaration is here")
		} else {
			seen[field.Name] = field.loc
		}
		fields = append(fields, hlsltype.StructField{
			Name: field.Name, Type: field.Type, Mods: field.Mods, Semantic: field.Semantic,
		})
		if !p.at(token.RBrace) {
			p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after struct field")
		}
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelim, "expected '}' to close struct body"); !ok {
		return hlsltype.NoTypeID, false
	}

	p.b.Types.SetFields(structType, fields)
	if name != source.NoStringID {
		if !p.b.Scopes.DeclareType(name, structType) {
			p.err(diag.RedefType, "redefinition of type")
		}
	}
	return structType, true
}

type structFieldSpec struct {
	Name     source.StringID
	Type     hlsltype.TypeID
	Mods     hlsltype.Modifiers
	Semantic source.StringID
	loc      source.Location
}

func (p *Parser) parseStructField() (structFieldSpec, bool) {
	mods := p.parseModifiers()
	base, ok := p.parseTypeSpec()
	if !ok {
		return structFieldSpec{}, false
	}
	name, loc, ok := p.parseIdentLike()
	if !ok {
		return structFieldSpec{}, false
	}

	arrayLen := p.parseOptionalArraySize()

	var semantic source.StringID
	if p.at(token.Colon) {
		p.advance()
		semantic, _, ok = p.parseIdentLike()
		if !ok {
			return structFieldSpec{}, false
		}
	}

	declType, cloneOK := p.b.Types.Clone(base, mods, p.b.DefaultRowMajor)
	if !cloneOK {
		p.err(diag.TypeMajorityConflict, "row_major and column_major both specified")
		declType = base
	}
	if arrayLen > 0 {
		declType = p.b.Types.Array(declType, arrayLen)
	}

	return structFieldSpec{Name: name, Type: declType, Mods: mods, Semantic: semantic, loc: loc}, true
}

// resyncStructField skips to the next plausible field boundary.
func (p *Parser) resyncStructField() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}
