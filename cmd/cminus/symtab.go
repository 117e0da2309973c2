package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cminus/internal/ast"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/symbols"
)

var symtabCmd = &cobra.Command{
	Use:   "symtab [flags] <file.cm|file.cmt>",
	Short: "Analyze a program and print its symbol table",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymtab,
}

func init() {
	symtabCmd.Flags().Int32("scope", -1, "list only the entries of this scope id")
}

var symtabTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func runSymtab(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	scope, err := cmd.Flags().GetInt32("scope")
	if err != nil {
		return fmt.Errorf("failed to get scope flag: %w", err)
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, res, err := driver.CheckFile(ctx, args[0], opts)
	if err != nil {
		return err
	}
	pathMode, _ := diagfmt.ParsePathMode(s.cfg.Output.PathMode)
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, input(res), diagfmt.PrettyOpts{
		Color:     s.color,
		PathMode:  pathMode,
		ShowNotes: true,
	})
	if !res.Analyzed() {
		return exitError{code: 1}
	}

	table := res.Sema.Table
	title := fmt.Sprintf("symbol table: %s (%d entries, %d scopes)", args[0], table.Len(), res.Sema.Scopes)
	entries := table.Entries()
	if scope >= 0 {
		id := ast.ScopeID(scope)
		entries = table.InScope(id)
		title = fmt.Sprintf("scope %d of %s (%d entries)", id, args[0], len(entries))
	}
	out := cmd.OutOrStdout()
	if s.color {
		fmt.Fprintln(out, symtabTitle.Render(title))
	} else {
		fmt.Fprintln(out, title)
	}
	if err := symbols.DumpEntries(out, entries); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
