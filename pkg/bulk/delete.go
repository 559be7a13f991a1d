package bulk

import (
	"errors"
	"io/fs"
	"os"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Delete removes each path. A path that is already gone counts as removed.
// Directories are rejected before anything is deleted.
func (o Ops) Delete(paths []string) ([]string, error) {
	for _, p := range paths {
		fi, err := os.Lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fspath.Wrap("delete", p, err)
		}
		if fi.IsDir() {
			return nil, &fspath.FilesystemError{Op: "delete", Path: p, Err: fspath.ErrIsDirectory}
		}
	}

	var removed []string
	for _, p := range paths {
		if err := o.before(); err != nil {
			return removed, err
		}
		if err := os.Remove(p); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return removed, fspath.Wrap("delete", p, err)
			}
			o.log().Debug("already absent", "path", p)
		} else {
			o.log().Debug("deleted", "path", p)
		}
		removed = append(removed, p)
		o.done(p, 0)
	}
	return removed, nil
}
