// Package irbuild lowers declarations, expressions, and control-flow
// constructs into the flat, indexed instruction lists of package ir. It
// is the semantic-action layer the parser drives: the parser recognizes
// surface syntax, and every reduction that produces a value or a
// statement calls into a Builder method here.
package irbuild

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/funcs"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Builder owns every piece of mutable compilation state the lowering
// routines touch: the node arena, the scope/variable tables, the type
// registry, the function table, and the diagnostic sink. One Builder
// serves exactly one compilation context at a time.
type Builder struct {
	Arena   *ir.Arena
	Scopes  *scope.Stack
	Types   *hlsltype.Registry
	Funcs   *funcs.Table
	Diags   *diag.Bag
	Strings *source.StringInterner

	// ConstFolds holds the compile-time value of every global static
	// const scalar whose initializer folded to a constant, keyed by the
	// variable it was declared for. It is populated lazily by
	// recordGlobalConstFold and is nil until the first successful fold.
	ConstFolds map[scope.VariableID]ir.ConstantData

	// DefaultRowMajor is the compilation-wide matrix majority used when
	// neither a type nor its declaration modifiers specify one (column-
	// major initially).
	DefaultRowMajor bool

	// VoidType is the predefined void type, needed to distinguish a
	// void-returning function from one with no declared return type yet.
	VoidType hlsltype.TypeID

	// loopDepth tracks whether the builder is currently lowering a loop
	// body, used to decide whether break/continue are well-formed.
	loopDepth int

	// currentReturn is the enclosing function's declared return type,
	// used by lowerReturn to insert implicit conversions.
	currentReturn hlsltype.TypeID
	// currentReturnLoc anchors "void function returns a value" and
	// similar diagnostics at the function's own declaration.
	currentReturnLoc source.Location
}

// New creates a Builder over a fresh set of compilation tables.
func New(strings *source.StringInterner, types *hlsltype.Registry, scopes *scope.Stack, diags *diag.Bag) *Builder {
	return &Builder{
		Arena:   ir.NewArena(),
		Scopes:  scopes,
		Types:   types,
		Funcs:   funcs.NewTable(),
		Diags:   diags,
		Strings: strings,
	}
}

func (b *Builder) errorf(code diag.Code, loc source.Location, msg string) {
	b.Diags.Error(code, loc, msg)
}

func (b *Builder) warnf(code diag.Code, loc source.Location, msg string) {
	b.Diags.Warning(code, loc, msg)
}

// newNode allocates a node in the arena and returns its id.
func (b *Builder) newNode(n ir.Node) ir.NodeID {
	return b.Arena.New(n)
}

// typeOf returns the data type carried by an already-built node.
func (b *Builder) typeOf(id ir.NodeID) hlsltype.TypeID {
	if n := b.Arena.Get(id); n != nil {
		return n.Type
	}
	return hlsltype.NoTypeID
}

// EnterLoop/LeaveLoop/InLoop track loop nesting so the parser can reject
// a break/continue that isn't lexically inside a loop body.
func (b *Builder) EnterLoop() { b.loopDepth++ }
func (b *Builder) LeaveLoop() { b.loopDepth-- }
func (b *Builder) InLoop() bool { return b.loopDepth > 0 }
