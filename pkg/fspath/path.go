// Package fspath decomposes host paths into name, stem, suffix and parent,
// and defines the error kinds shared by the filetidy packages.
package fspath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name returns the last path component including its extension.
func Name(path string) string {
	return filepath.Base(path)
}

// Parent returns the directory containing path.
func Parent(path string) string {
	return filepath.Dir(path)
}

// Suffix returns the final extension of the name including the leading dot.
// A dot that starts or ends the name does not begin a suffix, so ".bashrc"
// and "notes." have none.
func Suffix(path string) string {
	name := Name(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Stem returns the name without its final extension.
func Stem(path string) string {
	name := Name(path)
	return name[:len(name)-len(Suffix(path))]
}

// WithName returns path with its last component replaced by name.
func WithName(path, name string) string {
	return filepath.Join(Parent(path), name)
}

// WithStem returns path with its stem replaced, keeping the suffix.
func WithStem(path, stem string) string {
	return WithName(path, stem+Suffix(path))
}

// ValidateDir reports an ErrInvalidDirectory error unless dir exists and is a
// directory.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidDirectory)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDirectory, dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidDirectory, dir)
	}
	return nil
}

// ValidateBaseName rejects names that would escape their parent directory.
func ValidateBaseName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: invalid file name %q", ErrInvalidArgument, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: file name %q contains a path separator", ErrInvalidArgument, name)
	}
	return nil
}
