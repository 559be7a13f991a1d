package bulk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nethoundsh/filetidy/pkg/fspath"
	"github.com/nethoundsh/filetidy/pkg/hasher"
)

// Copy copies each path into targetDir, which must already exist. Regular
// files land at targetDir/<name>, replacing an existing file, and keep their
// permissions and modification time. Directories are copied as a subtree to
// targetDir/<name>, which must not exist yet. It returns the created paths.
func (o Ops) Copy(paths []string, targetDir string) ([]string, error) {
	if err := fspath.ValidateDir(targetDir); err != nil {
		return nil, err
	}

	var created []string
	for _, src := range paths {
		if err := o.before(); err != nil {
			return created, err
		}
		fi, err := os.Stat(src)
		if err != nil {
			return created, fspath.Wrap("copy", src, err)
		}
		dst := filepath.Join(targetDir, fspath.Name(src))

		var n int64
		switch {
		case fi.IsDir():
			if err := checkNotInside(src, dst); err != nil {
				return created, err
			}
			n, err = o.copyTree(src, dst)
		case fi.Mode().IsRegular():
			if err := checkNotSame(src, dst); err != nil {
				return created, err
			}
			n, err = o.copyRegular(src, dst, fi, false)
		default:
			err = fmt.Errorf("%w: %s (%s)", fspath.ErrUnsupportedPathKind, src, fi.Mode().Type())
		}
		if err != nil {
			return created, err
		}

		created = append(created, dst)
		o.log().Debug("copied", "src", src, "dst", dst, "bytes", n)
		o.done(src, n)
	}
	return created, nil
}

func (o Ops) copyTree(src, dst string) (int64, error) {
	if _, err := os.Lstat(dst); err == nil {
		return 0, fspath.Wrap("copy", src, &fs.PathError{Op: "mkdir", Path: dst, Err: fs.ErrExist})
	}

	var total int64
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fspath.Wrap("copy", path, err)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return fspath.Wrap("copy", path, err)
		}

		switch {
		case d.IsDir():
			return fspath.Wrap("copy", path, os.Mkdir(target, info.Mode().Perm()|0o700))
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fspath.Wrap("copy", path, err)
			}
			return fspath.Wrap("copy", path, os.Symlink(link, target))
		case d.Type().IsRegular():
			n, err := o.copyRegular(path, target, info, true)
			total += n
			return err
		default:
			return fmt.Errorf("%w: %s (%s)", fspath.ErrUnsupportedPathKind, path, d.Type())
		}
	})
	return total, err
}

// copyRegular copies one regular file and then restores its permissions and
// modification time. With exclusive set, an existing dst fails with
// fs.ErrExist instead of being replaced.
func (o Ops) copyRegular(src, dst string, fi os.FileInfo, exclusive bool) (int64, error) {
	n, err := copyContents(src, dst, fi.Mode().Perm(), exclusive)
	if err != nil {
		if exclusive && !errors.Is(err, fs.ErrExist) {
			_ = os.Remove(dst)
		}
		return n, err
	}

	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		o.log().Debug("could not preserve permissions", "path", dst, "error", err)
	}
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		o.log().Debug("could not preserve modification time", "path", dst, "error", err)
	}

	if o.Verify {
		same, err := hasher.SameContent(src, dst)
		if err != nil {
			return n, fspath.Wrap("verify", dst, err)
		}
		if !same {
			return n, &fspath.FilesystemError{Op: "verify", Path: dst, Err: fspath.ErrChecksumMismatch}
		}
	}
	return n, nil
}

func copyContents(src, dst string, perm os.FileMode, exclusive bool) (_ int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fspath.Wrap("copy", src, err)
	}
	defer func() { _ = in.Close() }()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, perm)
	if err != nil {
		return 0, fspath.Wrap("copy", src, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fspath.Wrap("copy", dst, closeErr)
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, fspath.Wrap("copy", src, err)
	}
	return n, nil
}

// checkNotInside rejects copying a directory into its own subtree.
func checkNotInside(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if absDst == absSrc || strings.HasPrefix(absDst, absSrc+string(filepath.Separator)) {
		return fmt.Errorf("%w: cannot copy %s into itself", fspath.ErrInvalidArgument, src)
	}
	return nil
}

// checkNotSame rejects copying a file onto itself, which would truncate it.
func checkNotSame(src, dst string) error {
	dfi, err := os.Stat(dst)
	if err != nil {
		return nil
	}
	sfi, err := os.Stat(src)
	if err != nil {
		return nil
	}
	if os.SameFile(sfi, dfi) {
		return fmt.Errorf("%w: %s and %s are the same file", fspath.ErrInvalidArgument, src, dst)
	}
	return nil
}
