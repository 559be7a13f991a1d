// Package rename builds a new name for one path from a chain of pure string
// stages, then previews or commits it.
//
//	newPath, err := rename.New(path).KeepAfter("-").NormalizeSpacesLower().SmartTitle().Rename()
//
// Stages see the stem of a file and the full name of a directory. Nothing
// touches the filesystem before Rename, apart from the read-only check that
// tells files and directories apart.
package rename

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Builder accumulates stages for a single path. It is discarded after use
// and is not safe for concurrent use.
type Builder struct {
	path   string
	stages []Stage
	err    error
}

// New returns a builder bound to path.
func New(path string) *Builder {
	return &Builder{path: path}
}

// Path returns the bound path.
func (b *Builder) Path() string { return b.path }

// Apply appends a caller-supplied stage. fn must be pure.
func (b *Builder) Apply(fn Stage) *Builder {
	if fn == nil {
		return b.fail(fmt.Errorf("%w: nil stage", fspath.ErrInvalidArgument))
	}
	b.stages = append(b.stages, fn)
	return b
}

// Contains keeps the name only when it contains keyword (or lacks it, when
// invert is set). Otherwise the rename is skipped.
func (b *Builder) Contains(keyword string, invert bool) *Builder {
	return b.Apply(func(s string) string { return ContainsFilter(s, keyword, invert) })
}

// KeepAfter keeps the text after the first sep.
func (b *Builder) KeepAfter(sep string) *Builder {
	if sep == "" {
		return b.fail(fmt.Errorf("%w: empty separator", fspath.ErrInvalidArgument))
	}
	return b.Apply(func(s string) string { return KeepAfter(s, sep) })
}

// Replace substitutes every occurrence of old with new.
func (b *Builder) Replace(old, new string) *Builder {
	return b.Apply(func(s string) string { return strings.ReplaceAll(s, old, new) })
}

// NormalizeSpacesLower collapses whitespace and lowercases.
func (b *Builder) NormalizeSpacesLower() *Builder {
	return b.Apply(NormalizeSpacesLower)
}

// AddDashAfterKeywords marks each keyword with a trailing " -". With no
// keywords, DefaultDashKeywords is used.
func (b *Builder) AddDashAfterKeywords(keywords ...string) *Builder {
	if len(keywords) == 0 {
		keywords = DefaultDashKeywords
	}
	keywords = slices.Clone(keywords)
	return b.Apply(func(s string) string { return AddDashAfterKeywords(s, keywords) })
}

// SmartTitle title-cases the name. With no exceptions,
// DefaultTitleExceptions is used. The set is captured when the stage is
// added.
func (b *Builder) SmartTitle(exceptions ...string) *Builder {
	if len(exceptions) == 0 {
		exceptions = DefaultTitleExceptions
	}
	set := ExceptionSet(exceptions)
	return b.Apply(func(s string) string { return SmartTitle(s, set) })
}

// Preview returns the name the stages produce without renaming anything.
func (b *Builder) Preview() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	name := fspath.Stem(b.path)
	if b.isDir() {
		name = fspath.Name(b.path)
	}
	for _, stage := range b.stages {
		name = stage(name)
	}
	return name, nil
}

// Rename commits the preview and returns the new path. An empty preview
// leaves the path untouched and returns it unchanged.
func (b *Builder) Rename() (string, error) {
	newName, err := b.Preview()
	if err != nil {
		return b.path, err
	}
	if newName == "" {
		return b.path, nil
	}
	target, err := b.target(newName)
	if err != nil {
		return b.path, err
	}
	if err := fspath.Rename(b.path, target); err != nil {
		return b.path, err
	}
	return target, nil
}

// Target returns the path Rename would produce, or the original path when
// the preview is empty.
func (b *Builder) Target() (string, error) {
	newName, err := b.Preview()
	if err != nil || newName == "" {
		return b.path, err
	}
	return b.target(newName)
}

func (b *Builder) target(newName string) (string, error) {
	if b.isDir() {
		if err := fspath.ValidateBaseName(newName); err != nil {
			return "", err
		}
		return fspath.WithName(b.path, newName), nil
	}
	if err := fspath.ValidateBaseName(newName + fspath.Suffix(b.path)); err != nil {
		return "", err
	}
	return fspath.WithStem(b.path, newName), nil
}

func (b *Builder) isDir() bool {
	fi, err := os.Stat(b.path)
	return err == nil && fi.IsDir()
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}
