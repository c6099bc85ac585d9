package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// toolVersion is the semantic version of the CLI. Overridable at build
// time via -ldflags.
var toolVersion = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hlslc version",
	RunE: func(cmd *cobra.Command, args []string) error {
		label := color.New(color.FgCyan, color.Bold)
		fmt.Fprintf(cmd.OutOrStdout(), "hlslc %s\n", label.Sprint(toolVersion))
		return nil
	},
}
