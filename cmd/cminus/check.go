package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cminus/internal/config"
	"cminus/internal/diag"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cm|file.cmt|directory>...",
	Short: "Check programs for scope and type errors",
	Long: `Check runs the declaration and type-check passes over C-minus programs.
Source files (*.cm) are parsed first; tree files (*.cmt) are decoded as
produced by "cminus parse -o". Directories are searched recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json); default from "+configFileName)
	checkCmd.Flags().Bool("with-notes", true, "include notes pointing at earlier declarations")
	checkCmd.Flags().Bool("symbols", false, "include symbol tables in JSON output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = auto)")
	checkCmd.Flags().Int("context", -1, "source lines shown around each diagnostic (-1 = from config)")
	checkCmd.Flags().String("path-mode", "", "how file paths are shown (auto|absolute|relative|basename)")
	checkCmd.Flags().String("ui", "auto", "show live progress for multiple files (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	if flags.Changed("format") {
		if s.cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		s.cfg.Output.Format = strings.ToLower(s.cfg.Output.Format)
	}
	if flags.Changed("jobs") {
		if s.cfg.Output.Jobs, err = flags.GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("context") {
		if s.cfg.Output.Context, err = flags.GetInt("context"); err != nil {
			return fmt.Errorf("failed to get context flag: %w", err)
		}
	}
	if flags.Changed("path-mode") {
		if s.cfg.Output.PathMode, err = flags.GetString("path-mode"); err != nil {
			return fmt.Errorf("failed to get path-mode flag: %w", err)
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	withSymbols, err := flags.GetBool("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	showTimings, err := timingsEnabled(cmd)
	if err != nil {
		return err
	}

	paths, err := driver.ListFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s or %s files found", driver.SourceExt, driver.TreeExt)
	}

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var results []driver.FileResult
	if useProgressView(mode, len(paths), s.cfg.Output.Format, os.Stdout) {
		results, err = runCheckWithUI(ctx, "checking", paths, opts)
	} else {
		_, results, err = driver.CheckFiles(ctx, paths, opts)
	}
	if err != nil {
		return err
	}

	pathMode, _ := diagfmt.ParsePathMode(s.cfg.Output.PathMode)
	out := cmd.OutOrStdout()
	if err := renderResults(out, results, renderOptions{
		format:   s.cfg.Output.Format,
		color:    s.color,
		notes:    withNotes,
		symbols:  withSymbols,
		context:  s.cfg.Output.Context,
		pathMode: pathMode,
	}); err != nil {
		return err
	}
	if s.cfg.Output.Format == config.FormatPretty {
		printCheckSummary(out, results)
	}
	if showTimings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if failed(results) {
		return exitError{code: 1}
	}
	return nil
}

func printCheckSummary(w io.Writer, results []driver.FileResult) {
	total := diag.NewBag(0)
	broken := 0
	for _, r := range results {
		if r.Err != nil {
			broken++
		}
		total.Merge(r.Bag)
	}
	if total.Len() == 0 && total.Dropped() == 0 && broken == 0 {
		fmt.Fprintf(w, "checked %d file(s): ok\n", len(results))
		return
	}
	fmt.Fprintf(w, "checked %d file(s): %s", len(results), diagfmt.Summary(total))
	if broken > 0 {
		fmt.Fprintf(w, ", %d file(s) not analyzed", broken)
	}
	fmt.Fprintln(w)
}
