// Command hlslc drives the HLSL front-end interactively: tokenize, parse,
// and compile single files for inspection, or build a manifest-described
// project in batch. It never emits bytecode - only diagnostics and a
// variable liveness summary - the front-end library remains the only thing that
// knows how to lower HLSL at all.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "hlslc",
	Short: "HLSL front-end toolchain",
	Long:  `hlslc tokenizes, parses, and compiles HLSL shaders against the front-end library.`,
}

func main() {
	rootCmd.Version = toolVersion

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode != "off" && isTerminal(f))
}
