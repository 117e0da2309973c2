package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cminus/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "cminus",
	Short:         "Semantic analyzer for C-minus programs",
	Long:          `cminus checks C-minus programs (or syntax trees produced by another front end) for scope and type errors`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process status without an extra message; the
// diagnostics explaining it are already printed.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(symtabCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics kept per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to "+configFileName+" (default: search upwards from the working directory)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
