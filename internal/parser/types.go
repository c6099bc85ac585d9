package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/token"
)

// parseModifiers consumes zero or more modifier keywords, accumulating
// their bits. `inline` is recognized and discarded - it is accepted
// lexically but has no corresponding IR effect. A directional modifier
// (in/out) repeated verbatim is reported as a duplicate, since that
// information is lost once the bits are merged.
func (p *Parser) parseModifiers() hlsltype.Modifiers {
	var mods hlsltype.Modifiers
	var inCount, outCount int
	for {
		switch p.ts.peek().Kind {
		case token.KwConst:
			mods |= hlsltype.ModConst
		case token.KwExtern:
			mods |= hlsltype.ModExtern
		case token.KwUniform:
			mods |= hlsltype.ModUniform
		case token.KwStatic:
			mods |= hlsltype.ModStatic
		case token.KwShared:
			mods |= hlsltype.ModShared
		case token.KwGroupshared:
			mods |= hlsltype.ModGroupshared
		case token.KwVolatile:
			mods |= hlsltype.ModVolatile
		case token.KwIn:
			mods |= hlsltype.ModIn
			inCount++
		case token.KwOut:
			mods |= hlsltype.ModOut
			outCount++
		case token.KwInout:
			mods |= hlsltype.ModIn | hlsltype.ModOut
		case token.KwPrecise:
			mods |= hlsltype.ModPrecise
		case token.KwRowMajor:
			mods |= hlsltype.ModRowMajor
		case token.KwColumnMajor:
			mods |= hlsltype.ModColumnMajor
		case token.KwNointerpolation:
			mods |= hlsltype.ModNointerpolation
		case token.KwInline:
			// accepted, not lowered
		default:
			if inCount > 1 || outCount > 1 {
				p.err(diag.TypeDuplicateInputMod, "duplicate input modifier")
			}
			return mods
		}
		p.advance()
	}
}

// parseTypeSpec resolves the base type of a declaration: a scope-
// classified TypeName (every numeric predefined name and every
// user-declared struct/typedef), one of the builtin object-type
// keywords, or an inline struct declaration.
func (p *Parser) parseTypeSpec() (hlsltype.TypeID, bool) {
	tok := p.ts.peek()
	switch tok.Kind {
	case token.TypeName:
		p.advance()
		name := p.b.Strings.Intern(tok.Text)
		if t, ok := p.b.Scopes.LookupType(name); ok {
			return t, true
		}
		p.err(diag.TypeUnknownName, "unknown type name")
		return hlsltype.NoTypeID, false
	case token.KwStruct:
		return p.parseStructTypeSpec()
	case token.KwVoid:
		p.advance()
		return p.pre.Void, true
	case token.KwString:
		p.advance()
		return p.pre.String, true
	case token.KwSampler:
		p.advance()
		return p.builtinByName("sampler")
	case token.KwSamplerState:
		p.advance()
		return p.builtinByName("SamplerState")
	case token.KwSampler1D:
		p.advance()
		return p.builtinByName("sampler1D")
	case token.KwSampler2D:
		p.advance()
		return p.builtinByName("sampler2D")
	case token.KwSampler3D:
		p.advance()
		return p.builtinByName("sampler3D")
	case token.KwSamplerCube:
		p.advance()
		return p.builtinByName("samplerCUBE")
	case token.KwTexture:
		p.advance()
		return p.builtinByName("texture")
	case token.KwTexture1D:
		p.advance()
		return p.builtinByName("Texture1D")
	case token.KwTexture2D:
		p.advance()
		return p.builtinByName("Texture2D")
	case token.KwTexture3D:
		p.advance()
		return p.builtinByName("Texture3D")
	case token.KwTextureCube:
		p.advance()
		return p.builtinByName("TextureCube")
	case token.KwPixelShader:
		p.advance()
		return p.builtinByName("pixelshader")
	case token.KwVertexShader:
		p.advance()
		return p.builtinByName("vertexshader")
	default:
		p.err(diag.SynUnexpectedToken, "expected a type")
		return hlsltype.NoTypeID, false
	}
}

func (p *Parser) builtinByName(name string) (hlsltype.TypeID, bool) {
	if t, ok := p.pre.ByName[name]; ok {
		return t, true
	}
	p.err(diag.TypeUnknownName, "unknown builtin type")
	return hlsltype.NoTypeID, false
}

// isTypeStart reports whether the current token can begin a type-spec,
// used to distinguish a declaration from an expression statement and a
// cast from a parenthesized expression.
func (p *Parser) isTypeStart() bool {
	switch p.ts.peek().Kind {
	case token.TypeName, token.KwStruct, token.KwVoid, token.KwString,
		token.KwSampler, token.KwSamplerState, token.KwSampler1D, token.KwSampler2D,
		token.KwSampler3D, token.KwSamplerCube, token.KwTexture, token.KwTexture1D,
		token.KwTexture2D, token.KwTexture3D, token.KwTextureCube,
		token.KwPixelShader, token.KwVertexShader:
		return true
	default:
		return false
	}
}

// isModifierStart reports whether the current token begins a modifier
// list that must precede a declaration.
func isModifierStart(k token.Kind) bool {
	switch k {
	case token.KwConst, token.KwExtern, token.KwUniform, token.KwStatic,
		token.KwShared, token.KwGroupshared, token.KwVolatile, token.KwIn,
		token.KwOut, token.KwInout, token.KwInline, token.KwPrecise,
		token.KwRowMajor, token.KwColumnMajor, token.KwNointerpolation:
		return true
	default:
		return false
	}
}
