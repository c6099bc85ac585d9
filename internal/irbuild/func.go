package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/funcs"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// ParamSpec is one formal parameter as parsed, before its storage
// modifier has been defaulted or validated.
type ParamSpec struct {
	Name     source.StringID
	Type     hlsltype.TypeID
	Loc      source.Location
	Mods     hlsltype.Modifiers
	Semantic source.StringID
}

// BeginFunction validates a signature and inserts it into the function
// table, pushing a fresh scope for the parameters and recording the
// return type the body's return statements are checked against. Call EndFunction once the body, if any, has been lowered.
func (b *Builder) BeginFunction(loc source.Location, name source.StringID, retType hlsltype.TypeID, retSemantic source.StringID, params []ParamSpec, hasBody bool) (funcs.ID, bool) {
	if retSemantic != source.NoStringID && retType == b.VoidType {
		b.errorf(diag.TypeVoidSemantic, loc, "void function may not carry a return semantic")
	}

	b.Scopes.Enter()
	paramIDs := make([]scope.VariableID, 0, len(params))
	sig := make([]hlsltype.TypeID, 0, len(params))
	for _, p := range params {
		mods := b.normalizeParamMods(loc, p.Mods)
		v := scope.Variable{Name: p.Name, Type: p.Type, Loc: p.Loc, Mods: mods, Semantic: p.Semantic}
		id, _, ok := b.Scopes.Declare(v)
		if ok {
			paramIDs = append(paramIDs, id)
			sig = append(sig, p.Type)
		}
	}

	if prior, found := b.Funcs.FindExact(b.Scopes.Variables(), name, sig); found {
		existing := b.Funcs.Get(prior)
		if existing.HasBody() && hasBody {
			idx := b.errorNote(diag.RedefFunction, loc, "redefinition of function")
			b.Diags.AddNote(idx, existing.Loc, "previous definition is here")
			b.Scopes.Leave()
			return funcs.NoID, false
		}
		if existing.ReturnType != retType {
			idx := b.errorNote(diag.RedefFunctionReturnType, loc, "function redeclared with a different return type")
			b.Diags.AddNote(idx, existing.Loc, "previous declaration is here")
			b.Scopes.Leave()
			return funcs.NoID, false
		}
	}

	f := funcs.Function{Name: name, Params: paramIDs, ReturnType: retType, Semantic: retSemantic, Loc: loc}
	id := b.Funcs.Declare(f)

	b.currentReturn = retType
	b.currentReturnLoc = loc
	return id, true
}

// normalizeParamMods applies the default parameter-modifier rule:
// neither in nor out specified defaults to in; both specified is
// equivalent to inout and is not an error. Writing the same directional
// modifier twice (`in in`)
// is a duplicate-input-modifier error, but that can only be caught at the
// token stream - diag.TypeDuplicateInputMod is reported by the parser
// before the merged bitset reaches here.
func (b *Builder) normalizeParamMods(loc source.Location, mods hlsltype.Modifiers) hlsltype.Modifiers {
	hasIn := mods.Has(hlsltype.ModIn)
	hasOut := mods.Has(hlsltype.ModOut)
	if !hasIn && !hasOut {
		return mods | hlsltype.ModIn
	}
	return mods
}

// EndFunction records body (nil for a prototype-only declaration) on the
// function table entry and leaves the parameter scope BeginFunction
// entered.
func (b *Builder) EndFunction(id funcs.ID, body *ir.InstrList) {
	if f := b.Funcs.Get(id); f != nil {
		f.Body = body
	}
	b.Scopes.Leave()
	b.currentReturn = hlsltype.NoTypeID
}
