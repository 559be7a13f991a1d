package runner

import (
	"github.com/nethoundsh/filetidy/pkg/dedupe"
	outputpkg "github.com/nethoundsh/filetidy/pkg/output"
)

// RunDedupe deletes numbered copies under dir whose original exists and
// strips the number from the rest. With dryRun nothing is changed.
func RunDedupe(app AppConfig, dir string, maxDepth int, dryRun bool) int {
	res, err := dedupe.Find(dir, maxDepth)
	if err != nil {
		return app.fail(err)
	}
	if !dryRun {
		t := &tally{}
		bar := app.newProgressBar("Deduplicating", len(res.Real)+len(res.False))
		err = dedupe.Apply(app.ops(t, bar), &res)
		bar.wait()
	}

	if printErr := outputpkg.PrintDedupe(app.Out, res, app.Output); printErr != nil {
		return app.fail(printErr)
	}
	if err != nil {
		return app.fail(err)
	}
	return 0
}
