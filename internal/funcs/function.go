package funcs

import (
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Function is one declaration or definition: name, parameters, return
// type, optional body, semantic, location, and whether it was declared
// intrinsic.
type Function struct {
	Name       source.StringID
	Params     []scope.VariableID
	ReturnType hlsltype.TypeID
	Body       *ir.InstrList // nil until a defining declaration is parsed
	Semantic   source.StringID
	Loc        source.Location
	Intrinsic  bool
}

// Signature returns the parameter-type tuple used to key overloads.
func (f Function) Signature(vars *scope.Variables) []hlsltype.TypeID {
	sig := make([]hlsltype.TypeID, len(f.Params))
	for i, p := range f.Params {
		if v := vars.Get(p); v != nil {
			sig[i] = v.Type
		}
	}
	return sig
}

// HasBody reports whether this declaration defines the function.
func (f Function) HasBody() bool {
	return f.Body != nil
}
