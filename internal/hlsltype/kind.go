// Package hlsltype owns every HLSL type descriptor: construction, cloning
// with modifier overlays, and structural comparison.
package hlsltype

import "fmt"

// Class is the coarse shape of a type.
type Class uint8

const (
	ClassInvalid Class = iota
	ClassScalar
	ClassVector
	ClassMatrix
	ClassArray
	ClassStruct
	ClassObject
)

func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassVector:
		return "vector"
	case ClassMatrix:
		return "matrix"
	case ClassArray:
		return "array"
	case ClassStruct:
		return "struct"
	case ClassObject:
		return "object"
	default:
		return "invalid"
	}
}

// Base is the element base type for numeric classes, and the specific
// object kind for ClassObject.
type Base uint8

const (
	BaseNone Base = iota
	BaseFloat
	BaseHalf
	BaseDouble
	BaseInt
	BaseUint
	BaseBool
	BaseVoid
	BaseSampler
	BaseSampler1D
	BaseSampler2D
	BaseSampler3D
	BaseSamplerCube
	BaseTexture
	BaseTexture1D
	BaseTexture2D
	BaseTexture3D
	BaseTextureCube
	BaseString
	BasePixelShader
	BaseVertexShader
)

func (b Base) String() string {
	switch b {
	case BaseFloat:
		return "float"
	case BaseHalf:
		return "half"
	case BaseDouble:
		return "double"
	case BaseInt:
		return "int"
	case BaseUint:
		return "uint"
	case BaseBool:
		return "bool"
	case BaseVoid:
		return "void"
	case BaseSampler:
		return "sampler"
	case BaseSampler1D:
		return "sampler1D"
	case BaseSampler2D:
		return "sampler2D"
	case BaseSampler3D:
		return "sampler3D"
	case BaseSamplerCube:
		return "samplerCUBE"
	case BaseTexture:
		return "texture"
	case BaseTexture1D:
		return "Texture1D"
	case BaseTexture2D:
		return "Texture2D"
	case BaseTexture3D:
		return "Texture3D"
	case BaseTextureCube:
		return "TextureCube"
	case BaseString:
		return "string"
	case BasePixelShader:
		return "pixelshader"
	case BaseVertexShader:
		return "vertexshader"
	default:
		return fmt.Sprintf("base(%d)", b)
	}
}

// IsNumeric reports whether b participates in the numeric (scalar/vector/
// matrix) type algebra.
func (b Base) IsNumeric() bool {
	switch b {
	case BaseFloat, BaseHalf, BaseDouble, BaseInt, BaseUint, BaseBool:
		return true
	default:
		return false
	}
}
