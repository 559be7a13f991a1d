package fspath

import (
	"errors"
	"io/fs"
	"os"
)

// Rename moves oldpath to newpath within the host filesystem. It refuses to
// replace an existing entry unless that entry is oldpath itself, which
// happens for case-only renames on case-insensitive volumes.
func Rename(oldpath, newpath string) error {
	if oldpath == newpath {
		return nil
	}
	if dst, err := os.Lstat(newpath); err == nil {
		src, srcErr := os.Lstat(oldpath)
		if srcErr != nil {
			return Wrap("rename", oldpath, srcErr)
		}
		if !os.SameFile(src, dst) {
			return &FilesystemError{Op: "rename", Path: oldpath, Err: &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrExist}}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Wrap("rename", newpath, err)
	}
	return Wrap("rename", oldpath, os.Rename(oldpath, newpath))
}

// Exists reports whether path names an existing entry, without following a
// trailing symlink.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
