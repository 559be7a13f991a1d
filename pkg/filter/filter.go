// Package filter enumerates a directory tree to a bounded depth and narrows
// the result with chainable predicates.
package filter

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Config describes a filter chain built from command-line flags. Empty
// fields add no filter.
type Config struct {
	MaxDepth         int
	Extension        string
	ExcludeExtension string
	Match            string
	Search           string
	Names            []string
	Includes         []string
	Excludes         []string
	MinSize          int64
	MaxSize          int64
	FilesOnly        bool
}

// Apply appends the configured filters to p in a fixed order: kind,
// extension, regexes, names, globs, size.
func (c Config) Apply(p *Pipeline) *Pipeline {
	p.All()
	if c.FilesOnly {
		p.FilesOnly()
	}
	if c.Extension != "" {
		p.ByExtension(c.Extension, false)
	}
	if c.ExcludeExtension != "" {
		p.ByExtension(c.ExcludeExtension, true)
	}
	if c.Match != "" {
		p.ByRegex(c.Match, false)
	}
	if c.Search != "" {
		p.ByRegexSearch(c.Search, false)
	}
	if len(c.Names) > 0 {
		p.ByNames(c.Names, false)
	}
	if len(c.Includes) > 0 {
		p.ByGlob(c.Includes, false)
	}
	if len(c.Excludes) > 0 {
		p.ByGlob(c.Excludes, true)
	}
	if c.MinSize > 0 || c.MaxSize > 0 {
		p.BySize(c.MinSize, c.MaxSize)
	}
	return p
}

// ParseSizeRange parses human-readable bounds such as "10MB". Empty strings
// mean "no limit".
func ParseSizeRange(minStr, maxStr string) (minSize, maxSize int64, err error) {
	if minStr != "" {
		b, err := humanize.ParseBytes(minStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid min size %q: %w", fspath.ErrInvalidArgument, minStr, err)
		}
		minSize = int64(b)
	}
	if maxStr != "" {
		b, err := humanize.ParseBytes(maxStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid max size %q: %w", fspath.ErrInvalidArgument, maxStr, err)
		}
		maxSize = int64(b)
	}
	if minSize > 0 && maxSize > 0 && minSize > maxSize {
		return 0, 0, fmt.Errorf("%w: min size (%s) cannot be greater than max size (%s)",
			fspath.ErrInvalidArgument, minStr, maxStr)
	}
	return minSize, maxSize, nil
}

// ValidatePatterns reports the first malformed glob pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, "test"); err != nil {
			return fmt.Errorf("%w: glob pattern %q: %w", fspath.ErrInvalidArgument, p, err)
		}
	}
	return nil
}

// WithinSize reports whether size lies in [minSize, maxSize]; 0 bounds are
// open.
func WithinSize(size, minSize, maxSize int64) bool {
	if minSize > 0 && size < minSize {
		return false
	}
	if maxSize > 0 && size > maxSize {
		return false
	}
	return true
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
