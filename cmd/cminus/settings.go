package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cminus/internal/config"
	"cminus/internal/driver"
)

const configFileName = config.FileName

// settings is the configuration file merged with command-line overrides.
type settings struct {
	cfg   config.Config
	color bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return settings{}, err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	color, err := colorEnabled(colorMode, os.Stdout)
	if err != nil {
		return settings{}, err
	}
	return settings{cfg: cfg, color: color}, nil
}

func colorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// driverOptions builds the driver configuration from the merged settings.
func (s settings) driverOptions() (driver.Options, error) {
	semaOpts, err := s.cfg.SemaOptions()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Sema:           semaOpts,
		MaxDiagnostics: s.cfg.Output.MaxDiagnostics,
		Jobs:           s.cfg.Output.Jobs,
	}, nil
}

func timingsEnabled(cmd *cobra.Command) (bool, error) {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return on, nil
}
