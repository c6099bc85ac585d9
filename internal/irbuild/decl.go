package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Declarator is one name in a (modifiers, base-type, declarators) group.
type Declarator struct {
	Name     source.StringID
	Loc      source.Location
	ArrayLen uint32 // 0 means not an array
	Semantic source.StringID
	Register scope.Register
	Init     *Lowered

	// HasBraceInit is set when the declarator's initializer is a `{ ... }`
	// list rather than a plain expression - its elements are lowered and
	// stored separately by the caller, via LowerBraceInitializer, once
	// DeclareVariable has resolved the declared type. It still counts as
	// "has an initializer" for the const-without-initializer check below.
	HasBraceInit bool
}

// DeclareVariable lowers one declarator into a scope.Variable, applying
// every applicable rule: array wrapping, the global-scope implicit
// uniform tag, illegal local storage/semantics, const-without-initializer,
// and name-collision checks - against prior variables and, since the
// function and variable namespaces overlap, against existing functions.
func (b *Builder) DeclareVariable(mods hlsltype.Modifiers, base hlsltype.TypeID, d Declarator) (scope.VariableID, *Lowered, bool) {
	if overloads := b.Funcs.Overloads(d.Name); len(overloads) > 0 {
		idx := b.errorNote(diag.RedefVarFuncCollision, d.Loc, "variable name collides with an existing function")
		if f := b.Funcs.Get(overloads[0]); f != nil {
			b.Diags.AddNote(idx, f.Loc, "function is declared here")
		}
		return scope.NoVariableID, nil, false
	}

	declType, ok := b.Types.Clone(base, mods, b.DefaultRowMajor)
	if !ok {
		b.errorf(diag.TypeMajorityConflict, d.Loc, "row_major and column_major both specified")
		declType = base
	}

	if d.ArrayLen > 0 {
		declType = b.Types.Array(declType, d.ArrayLen)
	}

	isGlobal := b.Scopes.InGlobalScope()
	if isGlobal {
		declType = b.withMods(declType, hlsltype.ModUniform)
	} else {
		if ty, ok := b.Types.Lookup(declType); ok && ty.Mods.HasIllegalLocalStorage() {
			b.errorf(diag.TypeStorageOnLocal, d.Loc, "local variable may not carry this storage class")
		}
		if d.Semantic != source.NoStringID {
			b.errorf(diag.TypeSemanticOnLocal, d.Loc, "local variable may not carry a semantic")
		}
	}

	if ty, ok := b.Types.Lookup(declType); ok && ty.Mods.Has(hlsltype.ModConst) && !ty.Mods.Has(hlsltype.ModUniform) && d.Init == nil && !d.HasBraceInit {
		b.errorf(diag.TypeMissingInitializer, d.Loc, "const variable without uniform storage must have an initializer")
	}

	v := scope.Variable{
		Name: d.Name, Type: declType, Loc: d.Loc, Mods: mods,
		Semantic: d.Semantic, Register: d.Register,
	}
	id, prior, ok := b.Scopes.Declare(v)
	if !ok {
		idx := b.errorNote(diag.RedefVariable, d.Loc, "redefinition of variable")
		if pv := b.Scopes.Variables().Get(prior); pv != nil {
			b.Diags.AddNote(idx, pv.Loc, "previous declaration is here")
		}
		return scope.NoVariableID, nil, false
	}

	init := b.lowerInitializer(d.Loc, declType, d.Init)
	if init != nil {
		b.recordGlobalConstFold(id, declType, init)
		assigned := b.emitDeclInitStore(d.Loc, id, declType, *init)
		return id, &assigned, true
	}
	return id, nil, true
}

// emitDeclInitStore appends the assignment that stores a declarator's
// initializer into the new variable. It bypasses LowerAssign's
// const-lvalue check, since initializing a const (or a uniform-backed
// const, which is never actually stored) is the one write a declaration
// is always entitled to make, unlike a later assignment to the same name.
func (b *Builder) emitDeclInitStore(loc source.Location, id scope.VariableID, declType hlsltype.TypeID, rhs Lowered) Lowered {
	target := b.LowerVarRef(loc, id)
	list := target.List.Concat(rhs.List)
	assignID := b.newNode(ir.Node{
		Kind: ir.KindAssignment, Loc: loc, Type: declType,
		Data: ir.AssignmentData{LValue: target.Result, Op: ir.AssignPlain, RHS: rhs.Result},
	})
	return Lowered{List: list.Append(assignID), Result: assignID}
}

func (b *Builder) errorNote(code diag.Code, loc source.Location, msg string) int {
	return b.Diags.Error(code, loc, msg)
}

func (b *Builder) withMods(t hlsltype.TypeID, extra hlsltype.Modifiers) hlsltype.TypeID {
	ty, ok := b.Types.Lookup(t)
	if !ok {
		return t
	}
	cloned, ok := b.Types.Clone(t, ty.Mods|extra, b.DefaultRowMajor)
	if !ok {
		return t
	}
	return cloned
}

// lowerInitializer applies the component-count rules for a plain
// (non-brace) initializer: exact match, or a single-component
// broadcast.
func (b *Builder) lowerInitializer(loc source.Location, declType hlsltype.TypeID, init *Lowered) *Lowered {
	if init == nil {
		return nil
	}
	declInfo, ok := b.Types.Lookup(declType)
	if !ok {
		return init
	}
	initInfo, ok := b.Types.Lookup(init.Type(b))
	if !ok {
		return init
	}

	switch declInfo.Class {
	case hlsltype.ClassStruct, hlsltype.ClassArray:
		if initInfo.ComponentCount() != declInfo.ComponentCount() {
			b.errorf(diag.UnimplStructInitMismatch, loc, "mismatched field/element sizes in a struct or array initializer")
		}
		return init
	default:
		if initInfo.ComponentCount() == declInfo.ComponentCount() {
			return init
		}
		if initInfo.ComponentCount() == 1 {
			broadcast, ok := b.LowerBroadcast(loc, declType, *init)
			if ok {
				return &broadcast
			}
		}
		b.errorf(diag.TypeMismatchedInitializer, loc, "initializer component count does not match the declared type")
		return init
	}
}

// LowerBraceInitializer dispatches a `= { e1, e2, ... }` initializer,
// flat (no nested braces - those are reported as unimplemented by the
// caller before this is reached), against the declared variable's type:
// a struct initializer lowers to one assignment per field, in order;
// an array initializer is reported as unimplemented rather than lowered.
func (b *Builder) LowerBraceInitializer(loc source.Location, varID scope.VariableID, declType hlsltype.TypeID, elements []Lowered) ir.InstrList {
	declInfo, ok := b.Types.Lookup(declType)
	if !ok {
		return nil
	}
	switch declInfo.Class {
	case hlsltype.ClassStruct:
		return b.lowerStructFieldInitializers(loc, varID, declType, elements)
	case hlsltype.ClassArray:
		b.warnf(diag.UnimplArrayInit, loc, "array initializers are not lowered")
		return nil
	default:
		b.errorf(diag.UnimplNestedInit, loc, "compound initializer is not valid for this type")
		return nil
	}
}

// lowerStructFieldInitializers matches the flat element list against the
// struct's fields by total component count, not by element count: a
// field wider than one component consumes as many consecutive elements
// as it takes to fill its width (so `{1.0, 2.0, 3.0}` against
// `{float a; float2 b;}` splits into a=1.0 and b={2.0, 3.0}), and a
// multi-component element fills a field on its own.
func (b *Builder) lowerStructFieldInitializers(loc source.Location, varID scope.VariableID, structType hlsltype.TypeID, elements []Lowered) ir.InstrList {
	fields := b.Types.Fields(structType)
	groups, ok := b.groupInitElements(loc, elements, fields)
	if !ok {
		return nil
	}

	var list ir.InstrList
	for i, field := range fields {
		rhs, ok := b.collapseInitGroup(loc, field.Type, groups[i])
		if !ok {
			continue
		}
		base := b.LowerVarRef(loc, varID)
		target, ok := b.LowerRecordAccess(loc, base, field.Name)
		if !ok {
			continue
		}
		if converted, ok := b.implicitConvert(loc, field.Type, rhs); ok {
			rhs = converted
		} else if fieldInfo, ok := b.Types.Lookup(field.Type); ok {
			if rhsInfo, ok := b.Types.Lookup(rhs.Type(b)); ok && rhsInfo.ComponentCount() == 1 && fieldInfo.ComponentCount() > 1 {
				if broadcast, ok := b.LowerBroadcast(loc, field.Type, rhs); ok {
					rhs = broadcast
				}
			}
		}
		assigned, ok := b.LowerAssign(loc, target, rhs)
		if !ok {
			continue
		}
		list = list.Concat(assigned.List)
	}
	return list
}

// groupInitElements partitions elements into one slice per field,
// consuming consecutive elements until each field's component width is
// filled. A mismatch anywhere - too few elements, an element that
// overruns a field's width, or leftover elements once every field is
// filled - is reported once as a size mismatch.
func (b *Builder) groupInitElements(loc source.Location, elements []Lowered, fields []hlsltype.StructField) ([][]Lowered, bool) {
	groups := make([][]Lowered, len(fields))
	idx := 0
	for fi, field := range fields {
		width := b.componentWidth(field.Type)
		consumed := 0
		for consumed < width {
			if idx >= len(elements) {
				b.errorf(diag.UnimplStructInitMismatch, loc, "mismatched field/element sizes in a struct initializer")
				return nil, false
			}
			elem := elements[idx]
			ecount := b.componentWidth(elem.Type(b))
			groups[fi] = append(groups[fi], elem)
			consumed += ecount
			idx++
		}
		if consumed != width {
			b.errorf(diag.UnimplStructInitMismatch, loc, "mismatched field/element sizes in a struct initializer")
			return nil, false
		}
	}
	if idx != len(elements) {
		b.errorf(diag.UnimplStructInitMismatch, loc, "mismatched field/element sizes in a struct initializer")
		return nil, false
	}
	return groups, true
}

func (b *Builder) componentWidth(t hlsltype.TypeID) int {
	ty, ok := b.Types.Lookup(t)
	if !ok {
		return 1
	}
	return ty.ComponentCount()
}

// collapseInitGroup turns a group of one or more flat elements into a
// single value of fieldType: one element passes through unchanged,
// several are joined with a constructor the same way an explicit
// `T(a, b, ...)` call would be.
func (b *Builder) collapseInitGroup(loc source.Location, fieldType hlsltype.TypeID, group []Lowered) (Lowered, bool) {
	if len(group) == 1 {
		return group[0], true
	}
	return b.LowerConstructor(loc, fieldType, group)
}

// DeclareTypedef clones base, overlays mods (type-modifier bits only),
// and inserts the result under name in the current scope's type map.
func (b *Builder) DeclareTypedef(loc source.Location, name source.StringID, base hlsltype.TypeID, mods hlsltype.Modifiers, arrayLen uint32) bool {
	if mods.Any(hlsltype.ModExtern | hlsltype.ModUniform | hlsltype.ModStatic | hlsltype.ModShared | hlsltype.ModGroupshared | hlsltype.ModVolatile) {
		b.errorf(diag.TypeIllegalModifier, loc, "storage modifiers are not permitted on a typedef")
	}

	cloned, ok := b.Types.Clone(base, mods, b.DefaultRowMajor)
	if !ok {
		b.errorf(diag.TypeMajorityConflict, loc, "row_major and column_major both specified")
		cloned = base
	}
	if arrayLen > 0 {
		cloned = b.Types.Array(cloned, arrayLen)
	}

	if !b.Scopes.DeclareType(name, cloned) {
		b.errorf(diag.RedefType, loc, "redefinition of type")
		return false
	}
	return true
}

// ParseRegister maps a `:register(<tag><n>)` annotation's tag letter to
// its RegisterKind; an unknown tag is a warning-as-unsupported with a
// null reservation.
func (b *Builder) ParseRegister(loc source.Location, tag byte, index uint32, hasTarget bool) scope.Register {
	if hasTarget {
		b.warnf(diag.RegTargetIgnored, loc, "register shader-target argument is ignored")
	}
	switch tag {
	case 'c':
		return scope.Register{Kind: scope.RegisterConst, Index: index}
	case 'i':
		return scope.Register{Kind: scope.RegisterConstInt, Index: index}
	case 'b':
		return scope.Register{Kind: scope.RegisterConstBool, Index: index}
	case 's':
		return scope.Register{Kind: scope.RegisterSampler, Index: index}
	default:
		b.warnf(diag.RegUnknownTag, loc, "unknown register tag")
		return scope.Register{}
	}
}

// RejectFunctionRegister reports that a register reservation on a
// function declaration is unsupported and discarded.
func (b *Builder) RejectFunctionRegister(loc source.Location) {
	b.warnf(diag.RegOnFunction, loc, "register reservations on functions are unsupported and discarded")
}
