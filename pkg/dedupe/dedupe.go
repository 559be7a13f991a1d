// Package dedupe finds files named like "report (1).pdf" and resolves them:
// a copy whose un-numbered sibling exists is deleted, and an orphan gets the
// "(N)" dropped from its name.
package dedupe

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/nethoundsh/filetidy/pkg/bulk"
	"github.com/nethoundsh/filetidy/pkg/filter"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Pattern matches the copy counter at the end of a stem.
var Pattern = regexp.MustCompile(`\(\d+\)$`)

// Candidate pairs a numbered file with the name it would have without the
// counter.
type Candidate struct {
	Path     string `json:"path"`
	Original string `json:"original"`
}

type Result struct {
	Dir    string `json:"dir"`
	DryRun bool   `json:"dry_run"`
	// Total counts every file whose stem ends with a counter.
	Total int `json:"total"`
	// Real duplicates have their original on disk and are deleted.
	Real []Candidate `json:"deleted"`
	// False duplicates have no original and are renamed to it.
	False []Candidate `json:"cleaned"`
	// Skipped false duplicates found their original already taken when
	// Apply reached them, usually by another orphan of the same name.
	Skipped []Candidate `json:"skipped,omitempty"`
}

// NotDuplicated counts the candidates without an original on disk.
func (r Result) NotDuplicated() int {
	return r.Total - len(r.Real)
}

// OriginalPath strips the trailing "(N)" and any whitespace before it from
// the stem of path. It reports false when the stem has no counter or would
// become empty.
func OriginalPath(path string) (string, bool) {
	stem := fspath.Stem(path)
	loc := Pattern.FindStringIndex(stem)
	if loc == nil {
		return "", false
	}
	clean := strings.TrimRightFunc(stem[:loc[0]], unicode.IsSpace)
	if clean == "" {
		return "", false
	}
	return fspath.WithStem(path, clean), true
}

// Find classifies the numbered files under dir without touching them.
func Find(dir string, maxDepth int) (Result, error) {
	res := Result{Dir: dir, DryRun: true}

	p, err := filter.NewPipeline(dir, maxDepth)
	if err != nil {
		return res, err
	}
	paths, err := p.FilesOnly().ByStemRegexSearch(Pattern.String(), false).Collect()
	if errors.Is(err, fspath.ErrEmptyEnumeration) {
		return res, nil
	}
	if err != nil {
		return res, err
	}

	for _, path := range paths {
		original, ok := OriginalPath(path)
		if !ok {
			continue
		}
		res.Total++
		c := Candidate{Path: path, Original: original}
		exists, err := fspath.Exists(original)
		if err != nil {
			return res, fspath.Wrap("stat", original, err)
		}
		if exists {
			res.Real = append(res.Real, c)
		} else {
			res.False = append(res.False, c)
		}
	}
	return res, nil
}

// Apply deletes the real duplicates in res, then renames each false
// duplicate to its original. A false duplicate whose original exists by the
// time it is reached moves to res.Skipped instead.
func Apply(ops bulk.Ops, res *Result) error {
	res.DryRun = false

	paths := make([]string, 0, len(res.Real))
	for _, c := range res.Real {
		paths = append(paths, c.Path)
	}
	removed, err := ops.Delete(paths)
	if err != nil {
		res.Real = res.Real[:len(removed)]
		res.False = nil
		return err
	}

	var cleaned []Candidate
	for _, c := range res.False {
		exists, err := fspath.Exists(c.Original)
		if err != nil {
			return fspath.Wrap("stat", c.Original, err)
		}
		if exists {
			res.Skipped = append(res.Skipped, c)
			continue
		}
		mapping := map[string]string{fspath.Name(c.Path): fspath.Name(c.Original)}
		if _, _, err := ops.RenameByMapping([]string{c.Path}, mapping); err != nil {
			res.False = cleaned
			return err
		}
		cleaned = append(cleaned, c)
	}
	res.False = cleaned
	return nil
}

// Run finds the numbered files under dir and, unless dryRun is set, applies
// the result.
func Run(ops bulk.Ops, dir string, maxDepth int, dryRun bool) (Result, error) {
	res, err := Find(dir, maxDepth)
	if err != nil || dryRun {
		return res, err
	}
	err = Apply(ops, &res)
	return res, err
}
