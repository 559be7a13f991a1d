package runner

import (
	"fmt"
	"strings"

	"github.com/nethoundsh/filetidy/pkg/config"
	"github.com/nethoundsh/filetidy/pkg/filter"
	"github.com/nethoundsh/filetidy/pkg/fspath"
	outputpkg "github.com/nethoundsh/filetidy/pkg/output"
	"github.com/nethoundsh/filetidy/pkg/rename"
)

// RenameOptions selects the stages applied to every entry, in this order:
// contains filter, keep-after, replacements, normalize, dash, title.
type RenameOptions struct {
	Filter      string
	InvertMatch bool
	KeepAfter   string
	// Replace holds "old=new" pairs.
	Replace    []string
	Normalize  bool
	DashAfter  bool
	Title      bool
	Exceptions []string
	Apply      bool
}

// RunRename previews, or with opts.Apply performs, the rename of every
// immediate entry of dir.
func RunRename(app AppConfig, dir string, opts RenameOptions) int {
	replacements, err := parseReplacements(opts.Replace)
	if err != nil {
		return app.fail(err)
	}
	entries, err := collect(dir, filter.Config{})
	if err != nil {
		return app.fail(err)
	}

	var renames []outputpkg.Rename
	var runErr error
	for _, path := range entries {
		b := app.builder(path, opts, replacements)
		var target string
		if opts.Apply {
			if runErr = app.wait(); runErr != nil {
				break
			}
			target, runErr = b.Rename()
		} else {
			target, runErr = b.Target()
		}
		if runErr != nil {
			break
		}
		if opts.Apply && target != path {
			app.log().Debug("renamed", "from", path, "to", target)
		}
		renames = append(renames, outputpkg.Rename{Path: path, Target: target, Applied: opts.Apply})
	}

	if err := outputpkg.PrintRenames(app.Out, renames, app.Output); err != nil {
		return app.fail(err)
	}
	if runErr != nil {
		return app.fail(runErr)
	}
	return 0
}

func (app AppConfig) builder(path string, opts RenameOptions, replacements [][2]string) *rename.Builder {
	b := rename.New(path)
	if opts.Filter != "" {
		b.Contains(opts.Filter, opts.InvertMatch)
	}
	if opts.KeepAfter != "" {
		b.KeepAfter(opts.KeepAfter)
	}
	for _, r := range replacements {
		b.Replace(r[0], r[1])
	}
	if opts.Normalize {
		b.NormalizeSpacesLower()
	}
	if opts.DashAfter {
		b.AddDashAfterKeywords(app.Settings.DashKeywords...)
	}
	if opts.Title {
		exceptions := opts.Exceptions
		if len(exceptions) == 0 {
			exceptions = app.Settings.TitleExceptions
		}
		b.SmartTitle(exceptions...)
	}
	return b
}

func parseReplacements(pairs []string) ([][2]string, error) {
	out := make([][2]string, 0, len(pairs))
	for _, pair := range pairs {
		old, repl, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --replace %q must look like old=new", fspath.ErrInvalidArgument, pair)
		}
		out = append(out, [2]string{old, repl})
	}
	return out, nil
}

// RunRenameMap renames paths according to the JSON mapping file at
// mappingPath.
func RunRenameMap(app AppConfig, mappingPath string, paths []string) int {
	mapping, err := config.LoadMapping(mappingPath)
	if err != nil {
		return app.fail(err)
	}

	t := &tally{}
	renamed, unused, err := app.ops(t, nil).RenameByMapping(paths, mapping)
	if len(unused) > 0 {
		app.warn("unused mapping entries:", strings.Join(unused, ", "))
	}
	if printErr := outputpkg.PrintPaths(app.Out, "rename", renamed, app.Output); printErr != nil {
		return app.fail(printErr)
	}
	if err != nil {
		return app.fail(err)
	}
	return 0
}
