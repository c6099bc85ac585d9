package ir

import (
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Kind discriminates the closed set of IR node payloads.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindConstant
	KindVarDeref
	KindRecordDeref
	KindArrayDeref
	KindSwizzle
	KindConstructor
	KindExpr
	KindAssignment
	KindIf
	KindLoop
	KindJump
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindVarDeref:
		return "var-deref"
	case KindRecordDeref:
		return "record-deref"
	case KindArrayDeref:
		return "array-deref"
	case KindSwizzle:
		return "swizzle"
	case KindConstructor:
		return "constructor"
	case KindExpr:
		return "expr"
	case KindAssignment:
		return "assignment"
	case KindIf:
		return "if"
	case KindLoop:
		return "loop"
	case KindJump:
		return "jump"
	default:
		return "invalid"
	}
}

// Node is the common envelope every IR node carries: kind, location,
// data type, the post-pass index (0 = unused, 1 = reserved for the
// function-entry event), and the node's own liveness-last-read, which
// tracks when the value this node computes is last consumed - distinct
// from Variable.LastRead, which tracks a named binding's source-level
// lifetime and is the one the loop-extension rule applies to.
type Node struct {
	Kind     Kind
	Loc      source.Location
	Type     hlsltype.TypeID
	Index    uint32
	LastRead uint32

	Data Payload
}

// Payload is the kind-specific data every node carries. It is a closed
// set - a tagged-variant representation rather than a virtual-dispatch
// class hierarchy - and each concrete type below implements the marker
// method.
type Payload interface {
	irPayload()
}

// ConstantData holds a literal value in one of the numeric base types,
// stored as a union discriminated by Base.
type ConstantData struct {
	Base     hlsltype.Base
	IntVal   int64
	UintVal  uint64
	FloatVal float64
	BoolVal  bool
}

func (ConstantData) irPayload() {}

// VarDerefData is a direct reference to a variable.
type VarDerefData struct {
	Var scope.VariableID
}

func (VarDerefData) irPayload() {}

// RecordDerefData is a base expression node plus a struct-field
// reference.
type RecordDerefData struct {
	Base       NodeID
	FieldName  source.StringID
	FieldIndex int
}

func (RecordDerefData) irPayload() {}

// ArrayDerefData is an array-expression node and an index-expression
// node.
type ArrayDerefData struct {
	Array NodeID
	Index NodeID
}

func (ArrayDerefData) irPayload() {}

// SwizzleData is a base expression node, a packed swizzle mask (up to 4
// two-bit component selectors for vectors, or 4 four-bit row/col pairs
// for matrices - see swizzle.go in this package), and the component count.
type SwizzleData struct {
	Base    NodeID
	Mask    uint32
	Count   int
	IsMatrix bool
}

func (SwizzleData) irPayload() {}

// ConstructorData is a type plus an ordered argument list whose total
// component count equals the product of the type's dimensions.
type ConstructorData struct {
	Args []NodeID
}

func (ConstructorData) irPayload() {}

// Operator enumerates every unary/binary/ternary operator the expression
// node can carry.
type Operator uint8

const (
	OpInvalid Operator = iota

	// Unary.
	OpNeg
	OpLogicalNot
	OpBitNot
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpCast

	// Binary, arithmetic and comparison.
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe

	// Binary, bitwise/shift/logical (REDESIGN FLAGS: lowered rather than
	// silently dropped).
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLogicalAnd
	OpLogicalOr

	// Ternary.
	OpCond
)

// ExprData is an operator tag plus up to three operand nodes: unary,
// binary, or ternary.
type ExprData struct {
	Op       Operator
	Operands [3]NodeID
	Arity    int
}

func (ExprData) irPayload() {}

// AssignOp distinguishes a plain store from a compound one; the actual
// arithmetic of a compound assign is lowered into the RHS expression
// before the store, so AssignCompound is retained only for
// fidelity/debugging, not for further lowering.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignCompound
)

// AssignmentData is an lvalue deref, an assign-op tag, and an rhs node.
type AssignmentData struct {
	LValue     NodeID
	Op         AssignOp
	CompoundOp Operator
	RHS        NodeID
}

func (AssignmentData) irPayload() {}

// IfData is a condition node, a then-list, and an optional else-list.
type IfData struct {
	Cond NodeID
	Then InstrList
	Else InstrList
}

func (IfData) irPayload() {}

// LoopData is a body-list plus the post-pass next_index (the index
// assigned to the first instruction after the loop).
type LoopData struct {
	Body      InstrList
	NextIndex uint32
}

func (LoopData) irPayload() {}

// JumpKind distinguishes break/continue/return.
type JumpKind uint8

const (
	JumpBreak JumpKind = iota
	JumpContinue
	JumpReturn
)

// JumpData is a jump kind plus an optional return-value node.
type JumpData struct {
	Kind  JumpKind
	Value NodeID
}

func (JumpData) irPayload() {}
