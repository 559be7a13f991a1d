package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunUsage(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"--version"}, wantCode: 0, wantStdout: "filetidy dev"},
		{name: "no command", args: nil, wantCode: 1, wantStderr: "Usage: filetidy"},
		{name: "help command", args: []string{"help"}, wantCode: 0, wantStdout: "dedupe <dir>"},
		{name: "help flag", args: []string{"--help"}, wantCode: 0, wantStdout: "Global flags:"},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: 1, wantStderr: "unknown command: frobnicate"},
		{name: "unknown global flag", args: []string{"--bogus", "ls"}, wantCode: 1, wantStderr: "Error:"},
		{name: "command help", args: []string{"ls", "--help"}, wantCode: 0, wantStdout: "Usage: filetidy ls <dir>"},
		{name: "missing args", args: []string{"copy", "only-target"}, wantCode: 1, wantStderr: "missing arguments"},
		{name: "bad output format", args: []string{"-o", "yaml", "ls", "."}, wantCode: 1, wantStderr: "output must be text or json"},
		{name: "bad command flag", args: []string{"dedupe", "--nope", "."}, wantCode: 1, wantStderr: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout, tt.wantStdout) {
				t.Fatalf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Fatalf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

func TestRunDedupeEndToEnd(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, "report.pdf", "report (1).pdf", "orphan (2).pdf")

	code, stdout, stderr := runCLI(t, "--no-color", "dedupe", dir)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{
		"Paths that end with (#) that are not duplicated: 1/2",
		"Deleted (1):",
		"Cleaned (1):",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan.pdf")); err != nil {
		t.Fatalf("orphan not cleaned: %v", err)
	}
}

func TestRunJSONOutput(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a (1).txt")

	code, stdout, stderr := runCLI(t, "-o", "json", "dedupe", "--dry-run", dir)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	var summary struct {
		Summary struct {
			Cleaned int  `json:"cleaned"`
			DryRun  bool `json:"dry_run"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &summary); err != nil {
		t.Fatalf("last line is not JSON: %v\n%s", err, stdout)
	}
	if summary.Summary.Cleaned != 1 || !summary.Summary.DryRun {
		t.Fatalf("unexpected summary: %+v", summary.Summary)
	}
	if strings.Contains(stdout, "\033[") {
		t.Fatal("JSON output contains ANSI escapes")
	}
}

func TestRunConfigFileSetsDefaults(t *testing.T) {
	home := isolateConfig(t)
	cfgDir := filepath.Join(home, "filetidy")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := `{
		// descend one level when listing
		"max_depth": 1,
	}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	writeFiles(t, dir, "top.txt", "sub/nested.txt")

	code, stdout, stderr := runCLI(t, "--no-color", "ls", "--files-only", dir)
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "nested.txt") {
		t.Fatalf("config max_depth not applied:\n%s", stdout)
	}

	code, stdout, _ = runCLI(t, "--no-color", "ls", "--depth", "0", "--files-only", dir)
	if code != 0 || strings.Contains(stdout, "nested.txt") {
		t.Fatalf("--depth did not override config (exit %d):\n%s", code, stdout)
	}
}

func TestRunInvalidConfigFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"color": "rainbow"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runCLI(t, "--config", path, "ls", ".")
	if code != 1 || !strings.Contains(stderr, "invalid config") {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
}

func TestRunConfigInitAndShow(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "filetidy.json")

	code, stdout, stderr := runCLI(t, "--config", path, "config", "init")
	if code != 0 || !strings.Contains(stdout, path) {
		t.Fatalf("init: exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}
	code, stdout, _ = runCLI(t, "--config", path, "config", "show")
	if code != 0 || !strings.Contains(stdout, `"title_exceptions"`) {
		t.Fatalf("show: exit %d, stdout %q", code, stdout)
	}
}

func TestRunRenameFlagsExclusive(t *testing.T) {
	isolateConfig(t)
	code, _, stderr := runCLI(t, "rename", "--contains", "a", "--not-contains", "b", t.TempDir())
	if code != 1 || !strings.Contains(stderr, "mutually exclusive") {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}
}

func TestRunTouchCopyFlatten(t *testing.T) {
	isolateConfig(t)
	src, dst := t.TempDir(), t.TempDir()

	if code, _, stderr := runCLI(t, "--no-color", "touch", src, "a.txt", "b.txt"); code != 0 {
		t.Fatalf("touch exit = %d, stderr: %s", code, stderr)
	}
	code, stdout, stderr := runCLI(t, "--no-color", "copy", "--verify", dst, filepath.Join(src, "a.txt"), filepath.Join(src, "b.txt"))
	if code != 0 || !strings.Contains(stdout, "Copied 2 items") {
		t.Fatalf("copy: exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}

	writeFiles(t, dst, "nested/c.txt")
	code, stdout, stderr = runCLI(t, "--no-color", "flatten", "--pattern", "*.txt", dst)
	if code != 0 || !strings.Contains(stdout, "Flattened 1 item") {
		t.Fatalf("flatten: exit %d, stdout %q, stderr %q", code, stdout, stderr)
	}
	if _, err := os.Stat(filepath.Join(dst, "c.txt")); err != nil {
		t.Fatalf("flatten did not create c.txt: %v", err)
	}
}
