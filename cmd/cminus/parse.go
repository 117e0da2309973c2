package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cminus/internal/ast"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.cm>",
	Short: "Parse a program and print or save its syntax tree",
	Long: `Parse reads a C-minus program and prints its syntax tree. With -o the tree
is written as a .cmt file that "cminus check" accepts in place of source.
With --analyze the tree is annotated with scopes and expression types first.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "write the tree to this .cmt file instead of printing it")
	parseCmd.Flags().Bool("analyze", false, "run semantic analysis and keep its annotations")
	parseCmd.Flags().Bool("lines", false, "prefix printed nodes with their source line")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	analyze, err := cmd.Flags().GetBool("analyze")
	if err != nil {
		return fmt.Errorf("failed to get analyze flag: %w", err)
	}
	lines, err := cmd.Flags().GetBool("lines")
	if err != nil {
		return fmt.Errorf("failed to get lines flag: %w", err)
	}
	showTimings, err := timingsEnabled(cmd)
	if err != nil {
		return err
	}

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	path := args[0]
	var res driver.FileResult
	if analyze {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		_, res, err = driver.CheckFile(ctx, path, opts)
	} else {
		res, err = driver.ParseOnly(path, opts)
	}
	if err != nil {
		return err
	}

	pathMode, _ := diagfmt.ParsePathMode(s.cfg.Output.PathMode)
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, input(res), diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   s.cfg.Output.Context,
		PathMode:  pathMode,
		ShowNotes: true,
	})
	if showTimings {
		printTimings(cmd.ErrOrStderr(), []driver.FileResult{res})
	}

	if output != "" {
		if err := writeTree(output, &ast.Document{Source: path, Annotated: res.Analyzed(), Root: res.Tree}); err != nil {
			return err
		}
	} else {
		printOpts := ast.PrintOptions{Lines: lines, Types: res.Analyzed(), Scopes: res.Analyzed()}
		if err := ast.Fprint(cmd.OutOrStdout(), res.Tree, printOpts); err != nil {
			return err
		}
	}
	if res.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func writeTree(path string, doc *ast.Document) error {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := ast.Encode(w, doc); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
