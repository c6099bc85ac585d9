package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/frontend"
	"github.com/hlslc/frontend/internal/parser"
	"github.com/hlslc/frontend/internal/scope"
)

var (
	compileEntry string
	compileStage string
	compileSM    string
	compileDump  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.hlsl",
	Short: "Parse and compile an HLSL entry point",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&compileEntry, "entry", "main", "entry point function name")
	compileCmd.Flags().StringVar(&compileStage, "stage", "pixel", "shader stage (vertex|pixel)")
	compileCmd.Flags().StringVar(&compileSM, "sm", "5.0", "shader model, as major.minor")
	compileCmd.Flags().BoolVar(&compileDump, "dump", false, "print a liveness summary for the entry point")
}

func parseShaderModel(s string) (uint32, uint32, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --sm %q, expected major.minor", s)
	}
	var mj, mn int
	if _, err := fmt.Sscanf(major, "%d", &mj); err != nil {
		return 0, 0, fmt.Errorf("invalid shader model major version %q", major)
	}
	if _, err := fmt.Sscanf(minor, "%d", &mn); err != nil {
		return 0, 0, fmt.Errorf("invalid shader model minor version %q", minor)
	}
	return uint32(mj), uint32(mn), nil
}

func parseShaderStage(s string) (frontend.ShaderType, error) {
	switch strings.ToLower(s) {
	case "vertex":
		return frontend.ShaderVertex, nil
	case "pixel":
		return frontend.ShaderPixel, nil
	default:
		return frontend.ShaderUnknown, fmt.Errorf("unknown --stage %q (must be vertex or pixel)", s)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	stage, err := parseShaderStage(compileStage)
	if err != nil {
		return err
	}
	major, minor, err := parseShaderModel(compileSM)
	if err != nil {
		return err
	}

	ctx := frontend.NewContext(frontend.Options{})
	ctx.ParseFile(path, string(text), parser.Options{})

	var status diag.Status
	if !ctx.Diags.HasErrors() {
		status, _ = ctx.Compile(compileEntry, stage, major, minor)
	} else {
		status = ctx.Diags.Status()
	}

	printDiagnostics(cmd.OutOrStdout(), colorEnabled(cmd, os.Stdout), ctx, map[string]string{path: string(text)})

	if compileDump && ctx.Entry().IsValid() {
		f := ctx.Builder.Funcs.Get(ctx.Entry())
		global := ctx.Scopes.Get(ctx.Scopes.Global())
		out := cmd.OutOrStdout()
		for _, line := range dumpVariableLiveness(ctx, "global", global.Vars()) {
			fmt.Fprintln(out, line)
		}
		for _, line := range dumpVariableLiveness(ctx, "param", f.Params) {
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", status)
	if status == diag.StatusError {
		return fmt.Errorf("compile failed")
	}
	return nil
}

// dumpVariableLiveness formats the first-write/last-read instruction
// indices liveness.Analyze recorded for each variable in ids, for the
// --dump flag's entry-point inspection view.
func dumpVariableLiveness(ctx *frontend.Context, label string, ids []scope.VariableID) []string {
	vars := ctx.Scopes.Variables()
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		v := vars.Get(id)
		if v == nil {
			continue
		}
		name := ctx.Strings.MustLookup(v.Name)
		lines = append(lines, fmt.Sprintf("%s %s: first_write=%d last_read=%d", label, name, v.FirstWrite, v.LastRead))
	}
	return lines
}
