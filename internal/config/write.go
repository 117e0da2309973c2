package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrExists is returned by WriteDefault when the target already exists.
var ErrExists = errors.New("config file already exists")

const header = "# cminus analyzer settings. Command-line flags override these values.\n\n"

// WriteDefault writes the default configuration to path. An existing file
// is kept unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(header); err != nil {
		f.Close()
		return err
	}
	if err := toml.NewEncoder(w).Encode(Default()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
