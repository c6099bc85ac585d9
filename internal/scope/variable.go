package scope

import (
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/source"
)

// RegisterKind is the reservation kind accepted by `:register(<tag><n>)`.
type RegisterKind uint8

const (
	RegisterNone RegisterKind = iota
	RegisterConst
	RegisterConstInt
	RegisterConstBool
	RegisterSampler
)

// Register is a parsed `:register(...)` annotation.
type Register struct {
	Kind  RegisterKind
	Index uint32
}

// UnusedLiveness is the sentinel liveness index meaning "not yet
// written"; liveness.go reassigns it once the indexer + liveness pass
// run. MaxLiveness marks an output parameter's last-read, meaning "read
// all the way to the end of the function".
const UnusedLiveness = 0
const MaxLiveness = ^uint32(0)

// Variable is a named binding: its declared type, location, inherited
// modifiers, optional semantic/register annotations, and the two
// liveness indices the post-pass fills in.
type Variable struct {
	Name     source.StringID
	Type     hlsltype.TypeID
	Loc      source.Location
	Mods     hlsltype.Modifiers
	Semantic source.StringID
	Register Register

	FirstWrite uint32
	LastRead   uint32
}
