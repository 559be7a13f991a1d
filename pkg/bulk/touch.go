package bulk

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Touch creates each named file in targetDir. Existing files keep their
// content and get their modification time set to now.
func (o Ops) Touch(names []string, targetDir string) ([]string, error) {
	if err := fspath.ValidateDir(targetDir); err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := fspath.ValidateBaseName(name); err != nil {
			return nil, err
		}
	}

	var created []string
	for _, name := range names {
		if err := o.before(); err != nil {
			return created, err
		}
		path := filepath.Join(targetDir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return created, fspath.Wrap("touch", path, err)
		}
		if err := f.Close(); err != nil {
			return created, fspath.Wrap("touch", path, err)
		}
		now := time.Now()
		if err := os.Chtimes(path, now, now); err != nil {
			return created, fspath.Wrap("touch", path, err)
		}
		o.log().Debug("touched", "path", path)
		created = append(created, path)
		o.done(path, 0)
	}
	return created, nil
}
