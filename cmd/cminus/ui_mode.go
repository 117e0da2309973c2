package main

import (
	"fmt"
	"os"
	"strings"

	"cminus/internal/config"
)

// uiMode is the value of "check --ui".
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiAlways
	uiNever
)

var uiModes = map[string]uiMode{"": uiAuto, "auto": uiAuto, "on": uiAlways, "off": uiNever}

func (m uiMode) String() string {
	switch m {
	case uiAlways:
		return "on"
	case uiNever:
		return "off"
	default:
		return "auto"
	}
}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// useProgressView decides whether checking files inputs shows the live
// progress view. A single file or JSON output never does; auto mode also
// needs out to be a terminal.
func useProgressView(mode uiMode, files int, format string, out *os.File) bool {
	if files < 2 || format == config.FormatJSON {
		return false
	}
	switch mode {
	case uiAlways:
		return true
	case uiNever:
		return false
	default:
		return out != nil && isTerminal(out)
	}
}
