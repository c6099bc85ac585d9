package irbuild

import (
	"strings"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Lowered is an expression's flattened instruction stream plus the
// handle of its final, result-bearing node.
type Lowered struct {
	List   ir.InstrList
	Result ir.NodeID
}

// Type reports the data type of the lowered expression's result.
func (l Lowered) Type(b *Builder) hlsltype.TypeID {
	return b.typeOf(l.Result)
}

// LowerConstant appends a constant node.
func (b *Builder) LowerConstant(loc source.Location, t hlsltype.TypeID, data ir.ConstantData) Lowered {
	id := b.newNode(ir.Node{Kind: ir.KindConstant, Loc: loc, Type: t, Data: data})
	return Lowered{List: ir.InstrList{id}, Result: id}
}

// LowerVarRef appends a variable-dereference node for a name already
// resolved in scope.
func (b *Builder) LowerVarRef(loc source.Location, v scope.VariableID) Lowered {
	variable := b.Scopes.Variables().Get(v)
	id := b.newNode(ir.Node{Kind: ir.KindVarDeref, Loc: loc, Type: variable.Type, Data: ir.VarDerefData{Var: v}})
	return Lowered{List: ir.InstrList{id}, Result: id}
}

// LowerUnary appends one node for a prefix/postfix unary expression.
func (b *Builder) LowerUnary(loc source.Location, op ir.Operator, operand Lowered) Lowered {
	resultType := b.unaryResultType(loc, op, operand.Type(b))
	id := b.newNode(ir.Node{
		Kind: ir.KindExpr, Loc: loc, Type: resultType,
		Data: ir.ExprData{Op: op, Operands: [3]ir.NodeID{operand.Result}, Arity: 1},
	})
	return Lowered{List: operand.List.Append(id), Result: id}
}

func (b *Builder) unaryResultType(loc source.Location, op ir.Operator, operand hlsltype.TypeID) hlsltype.TypeID {
	switch op {
	case ir.OpLogicalNot:
		return b.boolTypeLike(operand)
	case ir.OpPostInc, ir.OpPostDec:
		// Post-inc/dec results are const-adorned copies of the operand
		// type so they can't themselves be assigned to.
		cloned, ok := b.Types.Clone(b.Types.StripModifiers(operand), hlsltype.ModConst, b.DefaultRowMajor)
		if !ok {
			return operand
		}
		return cloned
	default:
		return operand
	}
}

func (b *Builder) boolTypeLike(t hlsltype.TypeID) hlsltype.TypeID {
	ty, ok := b.Types.Lookup(t)
	if !ok {
		return t
	}
	boolType := hlsltype.Type{Class: ty.Class, Base: hlsltype.BaseBool, DimX: ty.DimX, DimY: ty.DimY}
	return b.Types.Intern(boolType)
}

// LowerBinary concatenates both operand lists then appends the operator
// node. Shift, bitwise, and logical operators are fully lowered here
// rather than merely flagged unimplemented.
func (b *Builder) LowerBinary(loc source.Location, op ir.Operator, lhs, rhs Lowered) Lowered {
	resultType := b.binaryResultType(op, lhs.Type(b), rhs.Type(b))
	list := lhs.List.Concat(rhs.List)
	id := b.newNode(ir.Node{
		Kind: ir.KindExpr, Loc: loc, Type: resultType,
		Data: ir.ExprData{Op: op, Operands: [3]ir.NodeID{lhs.Result, rhs.Result}, Arity: 2},
	})
	return Lowered{List: list.Append(id), Result: id}
}

func (b *Builder) binaryResultType(op ir.Operator, lhs, rhs hlsltype.TypeID) hlsltype.TypeID {
	switch op {
	case ir.OpLt, ir.OpGt, ir.OpLe, ir.OpGe, ir.OpEq, ir.OpNe, ir.OpLogicalAnd, ir.OpLogicalOr:
		return b.boolTypeLike(lhs)
	default:
		return lhs
	}
}

// LowerTernary lowers `cond ? a : b` into a single Cond-operator node
// (the REDESIGN FLAGS choice to lower ternary rather than leave it
// unimplemented).
func (b *Builder) LowerTernary(loc source.Location, cond, a, c Lowered) Lowered {
	list := cond.List.Concat(a.List).Concat(c.List)
	id := b.newNode(ir.Node{
		Kind: ir.KindExpr, Loc: loc, Type: a.Type(b),
		Data: ir.ExprData{Op: ir.OpCond, Operands: [3]ir.NodeID{cond.Result, a.Result, c.Result}, Arity: 3},
	})
	return Lowered{List: list.Append(id), Result: id}
}

// LowerCast materializes `(T)e` as a cast-operator node, after checking
// compatible_data_types.
func (b *Builder) LowerCast(loc source.Location, target hlsltype.TypeID, operand Lowered) Lowered {
	if !b.Types.Compatible(operand.Type(b), target) {
		b.errorf(diag.TypeInvalidCast, loc, "invalid cast: incompatible data types")
	}
	id := b.newNode(ir.Node{
		Kind: ir.KindExpr, Loc: loc, Type: target,
		Data: ir.ExprData{Op: ir.OpCast, Operands: [3]ir.NodeID{operand.Result}, Arity: 1},
	})
	return Lowered{List: operand.List.Append(id), Result: id}
}

// implicitConvert inserts a cast node when src and dst differ but are
// compatible, used by return-statement and initializer lowering.
func (b *Builder) implicitConvert(loc source.Location, dst hlsltype.TypeID, e Lowered) (Lowered, bool) {
	src := e.Type(b)
	if b.Types.Equal(src, dst) {
		return e, true
	}
	if !b.Types.NeedsCast(src, dst) {
		return e, false
	}
	id := b.newNode(ir.Node{
		Kind: ir.KindExpr, Loc: loc, Type: dst,
		Data: ir.ExprData{Op: ir.OpCast, Operands: [3]ir.NodeID{e.Result}, Arity: 1},
	})
	return Lowered{List: e.List.Append(id), Result: id}, true
}

// LowerRecordAccess resolves `.field` on a struct operand.
func (b *Builder) LowerRecordAccess(loc source.Location, base Lowered, field source.StringID) (Lowered, bool) {
	fieldInfo, idx, ok := b.Types.FindField(base.Type(b), field)
	if !ok {
		b.errorf(diag.TypeUnknownField, loc, "unknown field")
		return Lowered{}, false
	}
	id := b.newNode(ir.Node{
		Kind: ir.KindRecordDeref, Loc: loc, Type: fieldInfo.Type,
		Data: ir.RecordDerefData{Base: base.Result, FieldName: field, FieldIndex: idx},
	})
	return Lowered{List: base.List.Append(id), Result: id}, true
}

// LowerIndex resolves `arr[index]` on an array, matrix (row vector
// result), or vector (scalar result) operand.
func (b *Builder) LowerIndex(loc source.Location, arr, index Lowered) (Lowered, bool) {
	baseType, ok := b.Types.Lookup(arr.Type(b))
	if !ok {
		return Lowered{}, false
	}
	indexType, ok := b.Types.Lookup(index.Type(b))
	if !ok || !indexType.IsScalar() || !indexType.Base.IsNumeric() {
		b.errorf(diag.TypeIndexNonScalar, loc, "array index must be scalar")
		return Lowered{}, false
	}

	var resultType hlsltype.TypeID
	switch baseType.Class {
	case hlsltype.ClassArray:
		resultType = baseType.ArrayElem
	case hlsltype.ClassMatrix:
		resultType = b.Types.Intern(hlsltype.Type{Class: hlsltype.ClassVector, Base: baseType.Base, DimX: baseType.DimX, DimY: 1})
	case hlsltype.ClassVector:
		resultType = b.Types.Intern(hlsltype.Type{Class: hlsltype.ClassScalar, Base: baseType.Base, DimX: 1, DimY: 1})
	default:
		b.errorf(diag.TypeIndexNonArray, loc, "cannot index this type")
		return Lowered{}, false
	}

	list := arr.List.Concat(index.List)
	id := b.newNode(ir.Node{
		Kind: ir.KindArrayDeref, Loc: loc, Type: resultType,
		Data: ir.ArrayDerefData{Array: arr.Result, Index: index.Result},
	})
	return Lowered{List: list.Append(id), Result: id}, true
}

// LowerConstructor builds `T(args...)`: valid only for a numeric target
// type whose total component count equals the combined argument
// component count.
func (b *Builder) LowerConstructor(loc source.Location, target hlsltype.TypeID, args []Lowered) (Lowered, bool) {
	targetType, ok := b.Types.Lookup(target)
	if !ok || !targetType.IsNumeric() {
		b.errorf(diag.TypeBadConstructor, loc, "constructor target must be numeric")
		return Lowered{}, false
	}

	total := 0
	var list ir.InstrList
	ids := make([]ir.NodeID, len(args))
	for i, a := range args {
		at, ok := b.Types.Lookup(a.Type(b))
		if !ok {
			return Lowered{}, false
		}
		total += at.ComponentCount()
		list = list.Concat(a.List)
		ids[i] = a.Result
	}
	if total != targetType.ComponentCount() {
		b.errorf(diag.TypeBadConstructor, loc, "constructor argument count does not match target component count")
		return Lowered{}, false
	}

	id := b.newNode(ir.Node{Kind: ir.KindConstructor, Loc: loc, Type: target, Data: ir.ConstructorData{Args: ids}})
	return Lowered{List: list.Append(id), Result: id}, true
}

// LowerBroadcast lowers a single-component initializer being broadcast
// to a larger numeric target (the Open Question resolution: broadcast
// initialization lowers to a constructor that repeats the scalar). The
// scalar's own instructions are emitted once; the constructor's argument
// list repeats the same result handle, since an operand reference need
// not be the node's one owning occurrence.
func (b *Builder) LowerBroadcast(loc source.Location, target hlsltype.TypeID, scalar Lowered) (Lowered, bool) {
	targetType, ok := b.Types.Lookup(target)
	if !ok || !targetType.IsNumeric() {
		b.errorf(diag.TypeBadConstructor, loc, "broadcast target must be numeric")
		return Lowered{}, false
	}
	scalarType, ok := b.Types.Lookup(scalar.Type(b))
	if !ok || scalarType.ComponentCount() != 1 {
		b.errorf(diag.TypeBadConstructor, loc, "broadcast source must be a single component")
		return Lowered{}, false
	}

	count := targetType.ComponentCount()
	args := make([]ir.NodeID, count)
	for i := range args {
		args[i] = scalar.Result
	}
	id := b.newNode(ir.Node{Kind: ir.KindConstructor, Loc: loc, Type: target, Data: ir.ConstructorData{Args: args}})
	return Lowered{List: scalar.List.Append(id), Result: id}, true
}

var vectorSwizzleLetters = [2]string{"xyzw", "rgba"}

// LowerSwizzle resolves a dotted suffix on a vector or matrix operand.
// For a vector, the suffix is 1-4 letters drawn from
// exactly one of {x,y,z,w} or {r,g,b,a}. For a matrix, the suffix is a
// sequence of `_mRC` (zero-based) or `_RC` (one-based) groups, not mixed.
// The result is a vector of the selected component count, or a scalar
// when that count is 1, carrying the operand's base type.
func (b *Builder) LowerSwizzle(loc source.Location, base Lowered, suffix string) (Lowered, bool) {
	baseType, ok := b.Types.Lookup(base.Type(b))
	if !ok {
		return Lowered{}, false
	}

	switch baseType.Class {
	case hlsltype.ClassVector, hlsltype.ClassScalar:
		return b.lowerVectorSwizzle(loc, base, baseType, suffix)
	case hlsltype.ClassMatrix:
		return b.lowerMatrixSwizzle(loc, base, baseType, suffix)
	default:
		b.errorf(diag.TypeInvalidSwizzle, loc, "swizzle requires a vector or matrix operand")
		return Lowered{}, false
	}
}

func (b *Builder) lowerVectorSwizzle(loc source.Location, base Lowered, baseType hlsltype.Type, suffix string) (Lowered, bool) {
	if len(suffix) < 1 || len(suffix) > 4 {
		b.errorf(diag.TypeInvalidSwizzle, loc, "swizzle must select 1 to 4 components")
		return Lowered{}, false
	}

	comps := make([]int, len(suffix))
	letterSet := -1
	for i := 0; i < len(suffix); i++ {
		set, idx := indexInSwizzleAlphabet(suffix[i])
		if set < 0 {
			b.errorf(diag.TypeInvalidSwizzle, loc, "invalid swizzle component")
			return Lowered{}, false
		}
		if letterSet < 0 {
			letterSet = set
		} else if letterSet != set {
			b.errorf(diag.TypeInvalidSwizzle, loc, "swizzle mixes xyzw and rgba component names")
			return Lowered{}, false
		}
		if idx >= int(baseType.DimX) {
			b.errorf(diag.TypeInvalidSwizzle, loc, "swizzle component index out of range")
			return Lowered{}, false
		}
		comps[i] = idx
	}

	count := len(comps)
	class := hlsltype.ClassVector
	if count == 1 {
		class = hlsltype.ClassScalar
	}
	resultType := b.Types.Intern(hlsltype.Type{Class: class, Base: baseType.Base, DimX: uint8(count), DimY: 1})
	id := b.newNode(ir.Node{
		Kind: ir.KindSwizzle, Loc: loc, Type: resultType,
		Data: ir.SwizzleData{Base: base.Result, Mask: ir.PackVectorSwizzle(comps), Count: count},
	})
	return Lowered{List: base.List.Append(id), Result: id}, true
}

func indexInSwizzleAlphabet(c byte) (set, idx int) {
	for s, letters := range vectorSwizzleLetters {
		if i := strings.IndexByte(letters, c); i >= 0 {
			return s, i
		}
	}
	return -1, -1
}

func (b *Builder) lowerMatrixSwizzle(loc source.Location, base Lowered, baseType hlsltype.Type, suffix string) (Lowered, bool) {
	groups := strings.Split(suffix, "_")
	if len(groups) < 2 || groups[0] != "" {
		b.errorf(diag.TypeInvalidSwizzle, loc, "invalid matrix swizzle suffix")
		return Lowered{}, false
	}
	groups = groups[1:]
	if len(groups) < 1 || len(groups) > 4 {
		b.errorf(diag.TypeInvalidSwizzle, loc, "matrix swizzle must select 1 to 4 components")
		return Lowered{}, false
	}

	comps := make([]ir.MatrixComponent, len(groups))
	zeroBased := -1
	for i, g := range groups {
		row, col, isZeroBased, ok := parseMatrixSwizzleGroup(g)
		if !ok {
			b.errorf(diag.TypeInvalidSwizzle, loc, "invalid matrix swizzle component")
			return Lowered{}, false
		}
		if zeroBased < 0 {
			zeroBased = boolToInt(isZeroBased)
		} else if zeroBased != boolToInt(isZeroBased) {
			b.errorf(diag.TypeInvalidSwizzle, loc, "matrix swizzle mixes zero-based and one-based forms")
			return Lowered{}, false
		}
		if row < 0 || row >= int(baseType.DimY) || col < 0 || col >= int(baseType.DimX) {
			b.errorf(diag.TypeInvalidSwizzle, loc, "matrix swizzle component index out of range")
			return Lowered{}, false
		}
		comps[i] = ir.MatrixComponent{Row: row, Col: col}
	}

	count := len(comps)
	class := hlsltype.ClassVector
	if count == 1 {
		class = hlsltype.ClassScalar
	}
	resultType := b.Types.Intern(hlsltype.Type{Class: class, Base: baseType.Base, DimX: uint8(count), DimY: 1})
	id := b.newNode(ir.Node{
		Kind: ir.KindSwizzle, Loc: loc, Type: resultType,
		Data: ir.SwizzleData{Base: base.Result, Mask: ir.PackMatrixSwizzle(comps), Count: count, IsMatrix: true},
	})
	return Lowered{List: base.List.Append(id), Result: id}, true
}

// parseMatrixSwizzleGroup parses one "mRC" (zero-based) or "RC" (one-based)
// group, where R and C are single digits.
func parseMatrixSwizzleGroup(g string) (row, col int, zeroBased bool, ok bool) {
	zeroBased = strings.HasPrefix(g, "m")
	if zeroBased {
		g = g[1:]
	}
	if len(g) != 2 || !isDigitByte(g[0]) || !isDigitByte(g[1]) {
		return 0, 0, false, false
	}
	row = int(g[0] - '0')
	col = int(g[1] - '0')
	if !zeroBased {
		row--
		col--
	}
	return row, col, zeroBased, true
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
