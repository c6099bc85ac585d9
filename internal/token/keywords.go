package token

// keywords maps reserved words to their token kind. Several are accepted
// lexically but not lowered further.
var keywords = map[string]Kind{
	"struct":            KwStruct,
	"typedef":           KwTypedef,
	"return":            KwReturn,
	"if":                KwIf,
	"else":              KwElse,
	"while":             KwWhile,
	"do":                KwDo,
	"for":               KwFor,
	"break":             KwBreak,
	"continue":          KwContinue,
	"const":             KwConst,
	"extern":            KwExtern,
	"uniform":           KwUniform,
	"static":            KwStatic,
	"shared":            KwShared,
	"groupshared":       KwGroupshared,
	"volatile":          KwVolatile,
	"in":                KwIn,
	"out":               KwOut,
	"inout":             KwInout,
	"inline":            KwInline,
	"precise":           KwPrecise,
	"row_major":         KwRowMajor,
	"column_major":      KwColumnMajor,
	"nointerpolation":   KwNointerpolation,
	"register":          KwRegister,
	"void":              KwVoid,
	"true":              KwTrue,
	"false":             KwFalse,
	"sampler":           KwSampler,
	"SamplerState":      KwSamplerState,
	"sampler1D":         KwSampler1D,
	"sampler2D":         KwSampler2D,
	"sampler3D":         KwSampler3D,
	"samplerCUBE":       KwSamplerCube,
	"texture":           KwTexture,
	"Texture1D":         KwTexture1D,
	"Texture2D":         KwTexture2D,
	"Texture3D":         KwTexture3D,
	"TextureCube":       KwTextureCube,
	"string":            KwString,
	"pixelshader":       KwPixelShader,
	"vertexshader":      KwVertexShader,
	"technique":         KwTechnique,
	"pass":              KwPass,
	"cbuffer":           KwCBuffer,
}

// LookupKeyword reports whether text is a reserved word, and its kind.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
