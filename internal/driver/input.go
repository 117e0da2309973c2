package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"cminus/internal/source"
)

// File extensions the driver accepts.
const (
	SourceExt = ".cm"
	TreeExt   = ".cmt"
)

// IsInput reports whether path names a program or a tree file.
func IsInput(path string) bool {
	switch filepath.Ext(path) {
	case SourceExt, TreeExt:
		return true
	}
	return false
}

// ListFiles expands args into a sorted, duplicate-free list of inputs.
// Directories are walked for *.cm and *.cmt files; plain file arguments
// are taken as given whatever their extension.
func ListFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsInput(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// loaded is an input read into memory. Program text goes through the
// FileSet (BOM and CRLF normalized); tree files are kept as raw bytes.
type loaded struct {
	path string
	file *source.File
	raw  []byte
	err  error
}

func (l loaded) isTree() bool { return filepath.Ext(l.path) == TreeExt }

// load reads path. FileSet is not safe for concurrent use, so callers
// load every input before starting workers.
func load(fileSet *source.FileSet, path string) loaded {
	in := loaded{path: path}
	if in.isTree() {
		// #nosec G304 -- path is provided by the caller
		in.raw, in.err = os.ReadFile(path)
		return in
	}
	id, err := fileSet.Load(path)
	if err != nil {
		in.err = err
		return in
	}
	in.file = fileSet.Get(id)
	return in
}
