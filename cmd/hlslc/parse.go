package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlslc/frontend/internal/frontend"
	"github.com/hlslc/frontend/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.hlsl",
	Short: "Parse an HLSL source file and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx := frontend.NewContext(frontend.Options{})
	ctx.ParseFile(path, string(text), parser.Options{})

	printDiagnostics(cmd.OutOrStdout(), colorEnabled(cmd, os.Stdout), ctx, map[string]string{path: string(text)})
	if ctx.Diags.HasErrors() {
		return fmt.Errorf("parse failed with errors")
	}
	return nil
}
