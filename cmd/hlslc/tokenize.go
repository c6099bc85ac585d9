package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlslc/frontend/internal/frontend"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.hlsl",
	Short: "Tokenize an HLSL source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx := frontend.NewContext(frontend.Options{})
	for _, tok := range ctx.Tokenize(path, string(text)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d:%d  %q\n", tok.Kind, tok.Loc().Line, tok.Loc().Col, tok.Text)
	}

	if ctx.Diags.HasErrors() {
		printDiagnostics(cmd.ErrOrStderr(), colorEnabled(cmd, os.Stderr), ctx, map[string]string{path: string(text)})
	}
	return nil
}
