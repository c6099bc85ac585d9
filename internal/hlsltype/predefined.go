package hlsltype

import (
	"fmt"

	"github.com/hlslc/frontend/internal/source"
)

// numericBases is the seeding order of the predefined-type matrix:
// {float, half, double, int, uint, bool} x {1..4} x {1..4}.
var numericBases = []Base{BaseFloat, BaseHalf, BaseDouble, BaseInt, BaseUint, BaseBool}

// Predefined is the table of startup-seeded type names, ready to be
// copied into the global scope's type map.
type Predefined struct {
	// ByName maps every seeded spelling - bare base name, "<base>N",
	// "<base>NxM", and the legacy aliases - to its TypeID.
	ByName map[string]TypeID
	Void   TypeID
	String TypeID
}

// SeedPredefined populates the registry with every numeric scalar/
// vector/matrix combination plus the legacy aliases, following the
// naming scheme "<base><x>" (scalar when x=1, vector otherwise) and
// "<base><x>x<y>" (matrix, y>1). Matrices are interned without a
// majority bit; the default majority is injected later, at declaration
// time.
func SeedPredefined(r *Registry) Predefined {
	pre := Predefined{ByName: make(map[string]TypeID, 256)}

	for _, base := range numericBases {
		name := base.String()
		for x := 1; x <= 4; x++ {
			for y := 1; y <= 4; y++ {
				var t Type
				var spelling string
				switch {
				case y == 1:
					t = Type{Class: classForDim(x), Base: base, DimX: uint8(x), DimY: 1}
					spelling = fmt.Sprintf("%s%d", name, x)
				default:
					t = Type{Class: ClassMatrix, Base: base, DimX: uint8(x), DimY: uint8(y)}
					spelling = fmt.Sprintf("%s%dx%d", name, x, y)
				}
				id := r.Intern(t)
				pre.ByName[spelling] = id
				if x == 1 && y == 1 {
					// The bare base name ("float") is a common alias for
					// the 1x1 scalar spelling ("float1").
					pre.ByName[name] = id
				}
			}
		}
	}

	pre.Void = r.Intern(Type{Class: ClassObject, Base: BaseVoid})
	pre.String = r.Intern(Type{Class: ClassObject, Base: BaseString})
	pre.ByName["void"] = pre.Void
	pre.ByName["string"] = pre.String

	sampler := r.Intern(Type{Class: ClassObject, Base: BaseSampler})
	pre.ByName["sampler"] = sampler
	pre.ByName["SamplerState"] = sampler
	pre.ByName["sampler1D"] = r.Intern(Type{Class: ClassObject, Base: BaseSampler1D})
	pre.ByName["sampler2D"] = r.Intern(Type{Class: ClassObject, Base: BaseSampler2D})
	pre.ByName["sampler3D"] = r.Intern(Type{Class: ClassObject, Base: BaseSampler3D})
	pre.ByName["samplerCUBE"] = r.Intern(Type{Class: ClassObject, Base: BaseSamplerCube})

	texture := r.Intern(Type{Class: ClassObject, Base: BaseTexture})
	pre.ByName["texture"] = texture
	pre.ByName["Texture1D"] = r.Intern(Type{Class: ClassObject, Base: BaseTexture1D})
	pre.ByName["Texture2D"] = r.Intern(Type{Class: ClassObject, Base: BaseTexture2D})
	pre.ByName["Texture3D"] = r.Intern(Type{Class: ClassObject, Base: BaseTexture3D})
	pre.ByName["TextureCube"] = r.Intern(Type{Class: ClassObject, Base: BaseTextureCube})

	pixelShader := r.Intern(Type{Class: ClassObject, Base: BasePixelShader})
	vertexShader := r.Intern(Type{Class: ClassObject, Base: BaseVertexShader})
	pre.ByName["pixelshader"] = pixelShader
	pre.ByName["vertexshader"] = vertexShader

	// Legacy names.
	pre.ByName["DWORD"] = pre.ByName["uint"]
	pre.ByName["FLOAT"] = pre.ByName["float"]
	pre.ByName["VECTOR"] = pre.ByName["float4"]
	pre.ByName["MATRIX"] = pre.ByName["float4x4"]
	pre.ByName["STRING"] = pre.String
	pre.ByName["TEXTURE"] = texture
	pre.ByName["PIXELSHADER"] = pixelShader
	pre.ByName["VERTEXSHADER"] = vertexShader

	return pre
}

func classForDim(x int) Class {
	if x == 1 {
		return ClassScalar
	}
	return ClassVector
}

// SeedStringsInto interns every legacy/base name into the shared
// identifier interner so scope lookups can resolve them by StringID.
func (p Predefined) SeedStringsInto(strings *source.StringInterner) map[source.StringID]TypeID {
	out := make(map[source.StringID]TypeID, len(p.ByName))
	for name, id := range p.ByName {
		out[strings.Intern(name)] = id
	}
	return out
}
