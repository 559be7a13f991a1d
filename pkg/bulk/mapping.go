package bulk

import (
	"fmt"
	"slices"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// RenameByMapping renames every path whose base name is a key of mapping to
// the corresponding value, within the same parent directory. Every new name
// is validated before the first rename.
//
// New names whose key never matched a path are returned sorted as unused and
// logged as a warning.
func (o Ops) RenameByMapping(paths []string, mapping map[string]string) (renamed, unused []string, err error) {
	for oldName, newName := range mapping {
		if err := fspath.ValidateBaseName(newName); err != nil {
			return nil, nil, fmt.Errorf("mapping for %q: %w", oldName, err)
		}
	}

	used := make(map[string]bool, len(mapping))
	for _, p := range paths {
		name := fspath.Name(p)
		newName, ok := mapping[name]
		if !ok {
			continue
		}
		used[name] = true
		if err := o.before(); err != nil {
			return renamed, unusedNames(mapping, used), err
		}
		target := fspath.WithName(p, newName)
		if err := fspath.Rename(p, target); err != nil {
			return renamed, unusedNames(mapping, used), err
		}
		o.log().Debug("renamed", "from", p, "to", target)
		renamed = append(renamed, target)
		o.done(target, 0)
	}

	unused = unusedNames(mapping, used)
	if len(unused) > 0 {
		o.log().Warn("some new names in the mapping were not used", "names", unused)
	}
	return renamed, unused, nil
}

// unusedNames returns the distinct new names that no consumed key produced.
func unusedNames(mapping map[string]string, used map[string]bool) []string {
	produced := make(map[string]bool, len(used))
	for oldName := range used {
		produced[mapping[oldName]] = true
	}
	var names []string
	for oldName, newName := range mapping {
		if used[oldName] || produced[newName] || slices.Contains(names, newName) {
			continue
		}
		names = append(names, newName)
	}
	slices.Sort(names)
	return names
}
