// Package config loads cminus.toml, the per-project analyzer settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cminus/internal/ast"
	"cminus/internal/sema"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "cminus.toml"

// Output formats accepted in [output].format.
const (
	FormatPretty = "pretty"
	FormatShort  = "short"
	FormatJSON   = "json"
)

// Config mirrors cminus.toml.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Output   Output   `toml:"output"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Analysis struct {
	Entry            string    `toml:"entry"`
	MaxScopeDepth    int       `toml:"max_scope_depth"`
	MaxFunctionDepth int       `toml:"max_function_depth"`
	MaxTreeDepth     int       `toml:"max_tree_depth"`
	Builtins         []Builtin `toml:"builtin"`
}

// Builtin declares a function available in the global scope. Types are
// spelled as in source: "int" or "void".
type Builtin struct {
	Name    string   `toml:"name"`
	Returns string   `toml:"returns"`
	Params  []string `toml:"params"`
}

type Output struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	PathMode       string `toml:"path_mode"`
	Context        int    `toml:"context"`
	Jobs           int    `toml:"jobs"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Entry:            sema.DefaultEntry,
			MaxScopeDepth:    sema.DefaultMaxScopeDepth,
			MaxFunctionDepth: sema.DefaultMaxFunctionDepth,
			MaxTreeDepth:     sema.DefaultMaxTreeDepth,
			Builtins: []Builtin{
				{Name: "input", Returns: "int"},
				{Name: "output", Returns: "void", Params: []string{"int"}},
			},
		},
		Output: Output{
			Format:         FormatPretty,
			MaxDiagnostics: 100,
			PathMode:       "auto",
		},
	}
}

// Find walks up from startDir looking for cminus.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest cminus.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path. Keys the file leaves out keep their default values;
// an explicit empty builtin list removes the built-in functions.
func Load(path string) (Config, error) {
	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	cfg := Default()
	cfg.Path = path
	if meta.IsDefined("analysis", "entry") {
		cfg.Analysis.Entry = file.Analysis.Entry
	}
	if meta.IsDefined("analysis", "max_scope_depth") {
		cfg.Analysis.MaxScopeDepth = file.Analysis.MaxScopeDepth
	}
	if meta.IsDefined("analysis", "max_function_depth") {
		cfg.Analysis.MaxFunctionDepth = file.Analysis.MaxFunctionDepth
	}
	if meta.IsDefined("analysis", "max_tree_depth") {
		cfg.Analysis.MaxTreeDepth = file.Analysis.MaxTreeDepth
	}
	if meta.IsDefined("analysis", "builtin") {
		cfg.Analysis.Builtins = file.Analysis.Builtins
		if cfg.Analysis.Builtins == nil {
			cfg.Analysis.Builtins = []Builtin{}
		}
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = file.Output.Format
	}
	if meta.IsDefined("output", "max_diagnostics") {
		cfg.Output.MaxDiagnostics = file.Output.MaxDiagnostics
	}
	if meta.IsDefined("output", "path_mode") {
		cfg.Output.PathMode = file.Output.PathMode
	}
	if meta.IsDefined("output", "context") {
		cfg.Output.Context = file.Output.Context
	}
	if meta.IsDefined("output", "jobs") {
		cfg.Output.Jobs = file.Output.Jobs
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and builtin declarations.
func (c Config) Validate() error {
	a := c.Analysis
	if strings.TrimSpace(a.Entry) == "" {
		return errors.New("[analysis].entry must not be empty")
	}
	for key, v := range map[string]int{
		"max_scope_depth":    a.MaxScopeDepth,
		"max_function_depth": a.MaxFunctionDepth,
		"max_tree_depth":     a.MaxTreeDepth,
	} {
		if v <= 0 {
			return fmt.Errorf("[analysis].%s must be positive, got %d", key, v)
		}
	}
	if _, err := c.SemaBuiltins(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatPretty, FormatShort, FormatJSON:
	default:
		return fmt.Errorf("[output].format must be pretty, short or json, got %q", c.Output.Format)
	}
	switch c.Output.PathMode {
	case "auto", "absolute", "relative", "basename":
	default:
		return fmt.Errorf("[output].path_mode: unknown mode %q", c.Output.PathMode)
	}
	if c.Output.MaxDiagnostics < 0 || c.Output.Context < 0 || c.Output.Jobs < 0 {
		return errors.New("[output] values must not be negative")
	}
	return nil
}

// SemaBuiltins converts the builtin declarations for the analyzer.
func (c Config) SemaBuiltins() ([]sema.Builtin, error) {
	out := make([]sema.Builtin, 0, len(c.Analysis.Builtins))
	seen := make(map[string]bool, len(c.Analysis.Builtins))
	for i, b := range c.Analysis.Builtins {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, fmt.Errorf("[[analysis.builtin]] #%d: missing name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("builtin %q declared twice", name)
		}
		seen[name] = true
		ret, err := parseType(b.Returns)
		if err != nil {
			return nil, fmt.Errorf("builtin %q returns: %w", name, err)
		}
		var params []ast.ExpType
		for _, p := range b.Params {
			pt, err := parseType(p)
			if err != nil {
				return nil, fmt.Errorf("builtin %q params: %w", name, err)
			}
			if pt == ast.Void {
				return nil, fmt.Errorf("builtin %q params: parameters cannot be void", name)
			}
			params = append(params, pt)
		}
		out = append(out, sema.Builtin{Name: name, Returns: ret, Params: params})
	}
	return out, nil
}

// SemaOptions builds analyzer options from the [analysis] table.
func (c Config) SemaOptions() (sema.Options, error) {
	builtins, err := c.SemaBuiltins()
	if err != nil {
		return sema.Options{}, err
	}
	return sema.Options{
		Entry:            c.Analysis.Entry,
		Builtins:         builtins,
		MaxScopeDepth:    c.Analysis.MaxScopeDepth,
		MaxFunctionDepth: c.Analysis.MaxFunctionDepth,
		MaxTreeDepth:     c.Analysis.MaxTreeDepth,
	}, nil
}

func parseType(s string) (ast.ExpType, error) {
	switch strings.TrimSpace(s) {
	case "int":
		return ast.Integer, nil
	case "void":
		return ast.Void, nil
	}
	return ast.Void, fmt.Errorf("unknown type %q (want int or void)", s)
}
