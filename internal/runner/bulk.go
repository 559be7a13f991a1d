package runner

import (
	"github.com/nethoundsh/filetidy/pkg/bulk"
	outputpkg "github.com/nethoundsh/filetidy/pkg/output"
)

// RunCopy copies paths into targetDir. With verify set every copied file is
// checked against its source by SHA-256.
func RunCopy(app AppConfig, targetDir string, paths []string, verify bool) int {
	return app.runBulk("Copying", "copy", "Copied", len(paths), func(ops bulk.Ops) error {
		ops.Verify = verify
		_, err := ops.Copy(paths, targetDir)
		return err
	})
}

func RunDelete(app AppConfig, paths []string) int {
	return app.runBulk("Deleting", "delete", "Deleted", len(paths), func(ops bulk.Ops) error {
		_, err := ops.Delete(paths)
		return err
	})
}

// RunFlatten copies nested files matching pattern up into base.
func RunFlatten(app AppConfig, base, pattern string) int {
	return app.runBulk("Flattening", "flatten", "Flattened", 0, func(ops bulk.Ops) error {
		_, err := ops.Flatten(base, pattern)
		return err
	})
}

func RunTouch(app AppConfig, dir string, names []string) int {
	return app.runBulk("Touching", "touch", "Touched", len(names), func(ops bulk.Ops) error {
		_, err := ops.Touch(names, dir)
		return err
	})
}

// runBulk runs fn under a progress bar and prints a summary of the completed
// items, even when fn fails partway.
func (app AppConfig) runBulk(label, op, verb string, total int, fn func(bulk.Ops) error) int {
	t := &tally{}
	bar := app.newProgressBar(label, total)
	err := fn(app.ops(t, bar))
	bar.wait()

	summary := outputpkg.BulkSummary{Op: op, Verb: verb, Count: t.count, Bytes: t.bytes}
	if printErr := outputpkg.PrintBulkSummary(app.Out, summary, app.Output); printErr != nil {
		return app.fail(printErr)
	}
	if err != nil {
		return app.fail(err)
	}
	return 0
}
