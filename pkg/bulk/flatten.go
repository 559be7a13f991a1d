package bulk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nethoundsh/filetidy/pkg/filter"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Flatten copies every regular file found below base, but not directly in
// it, into base when its name matches the glob pattern ("*" when empty).
// Sources are gathered before the first copy. A file whose name is taken
// lands as "{parent} - {name}", then "{parent} - {i} - {name}" for i = 1, 2,
// and so on; no file already in base is overwritten.
func (o Ops) Flatten(base, pattern string) ([]string, error) {
	if err := fspath.ValidateDir(base); err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = "*"
	}
	if err := filter.ValidatePatterns([]string{pattern}); err != nil {
		return nil, err
	}
	base = filepath.Clean(base)

	var sources []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fspath.Wrap("flatten", path, err)
		}
		if !d.Type().IsRegular() || filepath.Dir(path) == base {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var created []string
	for _, src := range sources {
		if err := o.before(); err != nil {
			return created, err
		}
		fi, err := os.Stat(src)
		if err != nil {
			return created, fspath.Wrap("flatten", src, err)
		}
		dst, n, err := o.flattenOne(base, src, fi)
		if err != nil {
			return created, err
		}
		o.log().Debug("flattened", "src", src, "dst", dst, "bytes", n)
		created = append(created, dst)
		o.done(src, n)
	}
	return created, nil
}

func (o Ops) flattenOne(base, src string, fi os.FileInfo) (string, int64, error) {
	name := fspath.Name(src)
	parent := fspath.Name(fspath.Parent(src))
	for attempt := 0; ; attempt++ {
		dst := filepath.Join(base, flattenName(parent, name, attempt))
		n, err := o.copyRegular(src, dst, fi, true)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return dst, n, err
	}
}

// flattenName returns the candidate destination name for the given attempt.
func flattenName(parent, name string, attempt int) string {
	switch attempt {
	case 0:
		return name
	case 1:
		return parent + " - " + name
	default:
		return fmt.Sprintf("%s - %d - %s", parent, attempt-1, name)
	}
}
