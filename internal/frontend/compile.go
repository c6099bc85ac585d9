package frontend

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/funcs"
	"github.com/hlslc/frontend/internal/liveness"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// ShaderType names the pipeline stage an entry point targets. The front
// end does not generate bytecode for either stage; the value is
// recorded for diagnostics and for the driver tooling built on top of
// this package, not consulted by the lowering itself.
type ShaderType uint8

const (
	ShaderUnknown ShaderType = iota
	ShaderVertex
	ShaderPixel
)

func (s ShaderType) String() string {
	switch s {
	case ShaderVertex:
		return "vertex"
	case ShaderPixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// Compile resolves entryPoint in the context's function table and, on
// success, runs the post-pass instruction indexer and the liveness
// analyzer over its body: the entry function's IR ends up fully built,
// indexed, and liveness-annotated. shaderType, major, and minor are
// recorded but do not affect lowering - shader-model-gated intrinsic
// availability and per-stage semantic validation are full-HLSL-
// conformance concerns out of scope here.
//
// It never mutates diagnostics beyond what parsing already recorded,
// except to report the entry-point-resolution failures below; the
// returned status is the context's final diag.Status, which only moves
// monotonically from ok to warning to error.
func (c *Context) Compile(entryPoint string, shaderType ShaderType, major, minor uint32) (diag.Status, []diag.Diagnostic) {
	_ = shaderType
	_ = major
	_ = minor

	if entryPoint == "" {
		c.Diags.Error(diag.ResEntryPointMissing, source.Location{}, "no entry point name was given")
		return c.Diags.Status(), c.Diags.Items()
	}

	name := c.Strings.Intern(entryPoint)
	ids := c.Builder.Funcs.Overloads(name)
	var found funcs.ID
	for _, id := range ids {
		if f := c.Builder.Funcs.Get(id); f != nil && f.HasBody() {
			found = id
			break
		}
	}
	if !found.IsValid() {
		c.Diags.Error(diag.ResEntryPointNotFound, source.Location{}, "entry point function was not found or has no body")
		return c.Diags.Status(), c.Diags.Items()
	}

	f := c.Builder.Funcs.Get(found)
	if f.Body == nil {
		c.Diags.Error(diag.ResEntryPointNoBody, f.Loc, "entry point has no defining body")
		return c.Diags.Status(), c.Diags.Items()
	}

	if c.Diags.HasErrors() {
		return c.Diags.Status(), c.Diags.Items()
	}

	liveness.SeedGlobals(c.Scopes.Variables(), c.globalVariables())
	liveness.SeedParameters(c.Scopes.Variables(), f.Params)
	liveness.Index(c.Builder.Arena, *f.Body)
	liveness.Analyze(c.Builder.Arena, c.Scopes.Variables(), *f.Body)

	c.entry = found
	return c.Diags.Status(), c.Diags.Items()
}

// Entry returns the function resolved by the most recent successful
// Compile call, or funcs.NoID if none has succeeded yet.
func (c *Context) Entry() funcs.ID {
	return c.entry
}

func (c *Context) globalVariables() []scope.VariableID {
	g := c.Scopes.Get(c.Scopes.Global())
	if g == nil {
		return nil
	}
	return g.Vars()
}
