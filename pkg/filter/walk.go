package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Walk lists root depth-first and calls fn for every path the enumeration
// yields. Regular files and other non-directories are always yielded. A
// directory found at depth < maxDepth is descended into; at maxDepth it is
// yielded itself. Depth 0 means root's immediate children.
//
// Entry kinds come from the directory listing, so a symlink to a directory
// is yielded as a non-directory.
func Walk(root string, maxDepth int, fn func(path string, d fs.DirEntry) error) error {
	if maxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", fspath.ErrInvalidArgument, maxDepth)
	}
	if err := fspath.ValidateDir(root); err != nil {
		return err
	}
	return walkDir(root, 0, maxDepth, fn)
}

func walkDir(dir string, depth, maxDepth int, fn func(path string, d fs.DirEntry) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fspath.Wrap("read", dir, err)
	}
	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		if d.IsDir() && depth < maxDepth {
			if err := walkDir(path, depth+1, maxDepth, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, d); err != nil {
			return err
		}
	}
	return nil
}

// List returns every path Walk yields, in the same order.
func List(root string, maxDepth int) ([]string, error) {
	var paths []string
	err := Walk(root, maxDepth, func(path string, _ fs.DirEntry) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
