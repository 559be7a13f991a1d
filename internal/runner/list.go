package runner

import (
	"errors"

	"github.com/nethoundsh/filetidy/pkg/fileinfo"
	"github.com/nethoundsh/filetidy/pkg/filter"
	"github.com/nethoundsh/filetidy/pkg/fspath"
	"github.com/nethoundsh/filetidy/pkg/natsort"
	outputpkg "github.com/nethoundsh/filetidy/pkg/output"
)

type ListOptions struct {
	Filter      filter.Config
	SortNumeric bool
	Long        bool
}

// RunList prints the entries of dir that pass the configured filters.
func RunList(app AppConfig, dir string, opts ListOptions) int {
	paths, err := collect(dir, opts.Filter)
	if err != nil {
		return app.fail(err)
	}
	if opts.SortNumeric {
		paths = natsort.ByFirstNumberFunc(paths, fspath.Name)
	}

	metas := make([]*fileinfo.Meta, 0, len(paths))
	for _, p := range paths {
		meta, err := fileinfo.Stat(p)
		if err != nil {
			app.warn(err)
			continue
		}
		metas = append(metas, meta)
	}
	if err := outputpkg.PrintListing(app.Out, metas, app.Output, opts.Long); err != nil {
		return app.fail(err)
	}
	return 0
}

// collect runs the filter chain over dir. An empty directory is an empty
// result, not an error.
func collect(dir string, fc filter.Config) ([]string, error) {
	p, err := filter.NewPipeline(dir, fc.MaxDepth)
	if err != nil {
		return nil, err
	}
	paths, err := fc.Apply(p).Collect()
	if errors.Is(err, fspath.ErrEmptyEnumeration) {
		return nil, nil
	}
	return paths, err
}
