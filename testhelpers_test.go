package main

import (
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
)

// captureOutput redirects os.Stdout and os.Stderr to pipes, runs fn, and
// returns everything fn wrote to each. The pipes are drained concurrently
// so large output cannot block fn.
func captureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	oldOut, oldErr, oldNoColor := os.Stdout, os.Stderr, color.NoColor
	defer func() {
		os.Stdout, os.Stderr, color.NoColor = oldOut, oldErr, oldNoColor
	}()

	drain := func(target **os.File) (*os.File, <-chan string) {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("os.Pipe(): %v", err)
		}
		*target = w
		ch := make(chan string, 1)
		go func() {
			out, _ := io.ReadAll(r)
			_ = r.Close()
			ch <- string(out)
		}()
		return w, ch
	}

	outW, outCh := drain(&os.Stdout)
	errW, errCh := drain(&os.Stderr)
	fn()
	_ = outW.Close()
	_ = errW.Close()
	return <-outCh, <-errCh
}

// isolateConfig points the default settings file at an empty temp
// directory and returns that directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	stdout, stderr = captureOutput(t, func() {
		code = run(args)
	})
	return code, stdout, stderr
}
