// Package frontend ties the lexer, parser, and irbuild Builder into one
// explicit compilation context, operating on one compilation context at
// a time and replacing a global compiler state with a value the caller
// owns and can discard after one invocation.
package frontend

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/funcs"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/lexer"
	"github.com/hlslc/frontend/internal/parser"
	"github.com/hlslc/frontend/internal/scope"
	"github.com/hlslc/frontend/internal/source"
)

// Context owns every table a compilation needs: the file and string
// pools, the type registry, the scope stack, the IR builder (which in
// turn owns the function table and node arena), and the diagnostic bag.
type Context struct {
	Files   *source.FilePool
	Strings *source.StringInterner
	Types   *hlsltype.Registry
	Scopes  *scope.Stack
	Diags   *diag.Bag
	Builder *irbuild.Builder

	pre        hlsltype.Predefined
	classifier *scopeClassifier
	entry      funcs.ID
	maxErrors  uint
}

// Options configures a new Context. MaxErrors bounds the parser's error
// count (0 means unbounded); DefaultRowMajor picks the compilation-wide
// matrix majority (the default is column-major, so false).
type Options struct {
	MaxErrors      uint
	DefaultRowMajor bool
}

// NewContext allocates every table fresh and seeds the global scope with
// the predefined numeric types.
func NewContext(opts Options) *Context {
	files := source.NewFilePool()
	strings := source.NewStringInterner()
	types := hlsltype.NewRegistry(strings)
	pre := hlsltype.SeedPredefined(types)
	scopes := scope.NewStack(pre.SeedStringsInto(strings))

	diags := diag.NewBag()
	builder := irbuild.New(strings, types, scopes, diags)
	builder.VoidType = pre.Void

	ctx := &Context{
		Files:   files,
		Strings: strings,
		Types:   types,
		Scopes:  scopes,
		Diags:   diags,
		Builder: builder,
		pre:     pre,
	}
	ctx.Builder.DefaultRowMajor = opts.DefaultRowMajor
	ctx.maxErrors = opts.MaxErrors
	ctx.classifier = newScopeClassifier(strings, scopes)
	return ctx
}

// ParseFile lexes and parses one translation unit's text into this
// context's tables, attributing diagnostics and locations to fileName.
// It may be called more than once against the same Context to parse
// several files (e.g. an include chain flattened by an external
// preprocessor) into one shared scope; the preprocessor itself is out
// of scope, not multi-file input to one context.
func (c *Context) ParseFile(fileName, text string, parserOpts parser.Options) {
	fileID := c.Files.Intern(fileName)
	lx := lexer.New(fileID, text, lexer.Options{
		Files:      c.Files,
		Diags:      c.Diags,
		Classifier: c.classifier,
	})
	if parserOpts.MaxErrors == 0 {
		parserOpts.MaxErrors = c.maxErrors
	}
	p := parser.New(lx, c.Builder, c.pre, parserOpts)
	p.ParseTranslationUnit()
}
