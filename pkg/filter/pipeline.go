package filter

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Pipeline narrows a candidate list enumerated from a root directory.
//
// The list is materialized by the first filter and drained by Collect:
//
//	paths, err := p.ByExtension(".xlsx", false).ByRegex("^Fracaso", false).Collect()
//
// Filters only ever remove candidates. The first failing filter records its
// error; later filters are no-ops and Collect returns that error.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	root         string
	maxDepth     int
	candidates   []string
	materialized bool
	err          error
}

// New returns an empty pipeline. Call SetRoot before filtering.
func New() *Pipeline {
	return &Pipeline{}
}

// NewPipeline returns a pipeline configured with root and maxDepth.
func NewPipeline(root string, maxDepth int) (*Pipeline, error) {
	p := New()
	if err := p.SetRoot(root); err != nil {
		return nil, err
	}
	if err := p.SetMaxDepth(maxDepth); err != nil {
		return nil, err
	}
	return p, nil
}

// SetRoot validates dir is an existing directory and stores it.
func (p *Pipeline) SetRoot(dir string) error {
	if err := fspath.ValidateDir(dir); err != nil {
		return err
	}
	p.root = dir
	return nil
}

// Root returns the configured search directory.
func (p *Pipeline) Root() string { return p.root }

// SetMaxDepth stores the number of descent steps allowed below root.
func (p *Pipeline) SetMaxDepth(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative max depth %d", fspath.ErrInvalidArgument, n)
	}
	p.maxDepth = n
	return nil
}

// MaxDepth returns the configured depth budget.
func (p *Pipeline) MaxDepth() int { return p.maxDepth }

// Collect returns the current candidates and the recorded error, then resets
// the pipeline so the next filter re-enumerates root.
func (p *Pipeline) Collect() ([]string, error) {
	paths, err := p.candidates, p.err
	p.candidates, p.materialized, p.err = nil, false, nil
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// All materializes the candidate list without narrowing it.
func (p *Pipeline) All() *Pipeline {
	p.materialize()
	return p
}

// ByExtension keeps paths whose suffix equals ext, or differs from it when
// invert is set. ext must start with a dot.
func (p *Pipeline) ByExtension(ext string, invert bool) *Pipeline {
	if ext == "" || !strings.HasPrefix(ext, ".") {
		return p.fail(fmt.Errorf("%w: extension %q should start with a '.'", fspath.ErrInvalidArgument, ext))
	}
	return p.keep(func(path string) bool { return fspath.Suffix(path) == ext }, invert)
}

// ByRegex keeps paths whose name matches pattern at position 0.
func (p *Pipeline) ByRegex(pattern string, invert bool) *Pipeline {
	re, ok := p.compile(pattern)
	if !ok {
		return p
	}
	return p.keep(func(path string) bool { return matchAtStart(re, fspath.Name(path)) }, invert)
}

// ByRegexSearch keeps paths whose name contains a match for pattern.
func (p *Pipeline) ByRegexSearch(pattern string, invert bool) *Pipeline {
	re, ok := p.compile(pattern)
	if !ok {
		return p
	}
	return p.keep(func(path string) bool { return re.MatchString(fspath.Name(path)) }, invert)
}

// ByStemRegexSearch keeps paths whose stem contains a match for pattern.
func (p *Pipeline) ByStemRegexSearch(pattern string, invert bool) *Pipeline {
	re, ok := p.compile(pattern)
	if !ok {
		return p
	}
	return p.keep(func(path string) bool { return re.MatchString(fspath.Stem(path)) }, invert)
}

// ByNames keeps paths whose name is in names.
func (p *Pipeline) ByNames(names []string, invert bool) *Pipeline {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return p.keep(func(path string) bool {
		_, ok := set[fspath.Name(path)]
		return ok
	}, invert)
}

// ByGlob keeps paths whose name matches at least one pattern.
func (p *Pipeline) ByGlob(patterns []string, invert bool) *Pipeline {
	if err := ValidatePatterns(patterns); err != nil {
		return p.fail(err)
	}
	return p.keep(func(path string) bool { return matchAny(patterns, fspath.Name(path)) }, invert)
}

// BySize keeps non-directories whose size lies within [min, max]. A bound of
// 0 is unbounded.
func (p *Pipeline) BySize(min, max int64) *Pipeline {
	if min < 0 || max < 0 || (max > 0 && min > max) {
		return p.fail(fmt.Errorf("%w: size range [%d, %d]", fspath.ErrInvalidArgument, min, max))
	}
	if min == 0 && max == 0 {
		return p.All()
	}
	return p.keepStat(func(fi os.FileInfo) bool {
		return !fi.IsDir() && WithinSize(fi.Size(), min, max)
	})
}

// FilesOnly drops directories yielded at the depth limit.
func (p *Pipeline) FilesOnly() *Pipeline {
	return p.keepStat(func(fi os.FileInfo) bool { return !fi.IsDir() })
}

// Where keeps paths for which pred reports true, or false when invert is set.
func (p *Pipeline) Where(pred func(path string) bool, invert bool) *Pipeline {
	return p.keep(pred, invert)
}

func (p *Pipeline) keep(pred func(path string) bool, invert bool) *Pipeline {
	if !p.materialize() {
		return p
	}
	out := p.candidates[:0]
	for _, path := range p.candidates {
		if pred(path) != invert {
			out = append(out, path)
		}
	}
	p.candidates = out
	return p
}

func (p *Pipeline) keepStat(pred func(fi os.FileInfo) bool) *Pipeline {
	var statErr error
	p.keep(func(path string) bool {
		if statErr != nil {
			return false
		}
		fi, err := os.Lstat(path)
		if err != nil {
			statErr = fspath.Wrap("stat", path, err)
			return false
		}
		return pred(fi)
	}, false)
	if statErr != nil {
		p.fail(statErr)
	}
	return p
}

func (p *Pipeline) materialize() bool {
	if p.err != nil {
		return false
	}
	if p.materialized {
		return true
	}
	if p.root == "" {
		p.err = fmt.Errorf("%w: no root directory set", fspath.ErrInvalidArgument)
		return false
	}
	paths, err := List(p.root, p.maxDepth)
	if err != nil {
		p.err = err
		return false
	}
	if len(paths) == 0 {
		p.err = fmt.Errorf("%w in %s", fspath.ErrEmptyEnumeration, p.root)
		return false
	}
	p.candidates = paths
	p.materialized = true
	return true
}

func (p *Pipeline) compile(pattern string) (*regexp.Regexp, bool) {
	if p.err != nil {
		return nil, false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.fail(fmt.Errorf("%w: regex %q: %w", fspath.ErrInvalidArgument, pattern, err))
		return nil, false
	}
	return re, true
}

func (p *Pipeline) fail(err error) *Pipeline {
	if p.err == nil {
		p.err = err
	}
	return p
}

// matchAtStart mirrors an anchored match: the leftmost match starts at 0
// whenever any match at 0 exists.
func matchAtStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}
