package dedupe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nethoundsh/filetidy/pkg/bulk"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOriginalPath(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"dir/report (1).pdf", "dir/report.pdf", true},
		{"dir/report(12).pdf", "dir/report.pdf", true},
		{"dir/notes (3)", "dir/notes", true},
		{"dir/a (1) (2).txt", "dir/a (1).txt", true},
		{"dir/report.pdf", "", false},
		{"dir/report (1) final.pdf", "", false},
		{"dir/(1).pdf", "", false},
		{"dir/archive.tar (1).gz", "dir/archive.tar.gz", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := filepath.FromSlash(tt.in)
			got, ok := OriginalPath(in)
			if ok != tt.wantOK {
				t.Fatalf("OriginalPath(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != filepath.FromSlash(tt.want) {
				t.Fatalf("OriginalPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunMixed(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report.pdf", "report (1).pdf", "orphan (2).pdf")

	res, err := Run(bulk.Ops{}, dir, 1, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.NotDuplicated() != 1 || res.Total != 2 {
		t.Fatalf("not duplicated = %d/%d, want 1/2", res.NotDuplicated(), res.Total)
	}
	wantReal := []Candidate{{Path: filepath.Join(dir, "report (1).pdf"), Original: filepath.Join(dir, "report.pdf")}}
	if diff := cmp.Diff(wantReal, res.Real); diff != "" {
		t.Fatalf("Real mismatch (-want +got):\n%s", diff)
	}
	wantFalse := []Candidate{{Path: filepath.Join(dir, "orphan (2).pdf"), Original: filepath.Join(dir, "orphan.pdf")}}
	if diff := cmp.Diff(wantFalse, res.False); diff != "" {
		t.Fatalf("False mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"orphan.pdf", "report.pdf"}, listNames(t, dir)); diff != "" {
		t.Fatalf("directory mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	if err != nil || string(data) != "report.pdf" {
		t.Fatalf("original was touched: %q, %v", data, err)
	}
}

func TestRunDryRunChangesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report.pdf", "report (1).pdf", "orphan (2).pdf")

	res, err := Run(bulk.Ops{}, dir, 1, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.DryRun || len(res.Real) != 1 || len(res.False) != 1 {
		t.Fatalf("unexpected dry-run result: %+v", res)
	}
	want := []string{"orphan (2).pdf", "report (1).pdf", "report.pdf"}
	if diff := cmp.Diff(want, listNames(t, dir)); diff != "" {
		t.Fatalf("dry run mutated directory (-want +got):\n%s", diff)
	}
}

func TestRunCollidingOrphansAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "x (1).txt", "x (2).txt")

	res, err := Run(bulk.Ops{}, dir, 1, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.False) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("cleaned %d, skipped %d; want 1 and 1", len(res.False), len(res.Skipped))
	}
	if res.Skipped[0].Path != filepath.Join(dir, "x (2).txt") {
		t.Fatalf("skipped %q, want x (2).txt", res.Skipped[0].Path)
	}
	if diff := cmp.Diff([]string{"x (2).txt", "x.txt"}, listNames(t, dir)); diff != "" {
		t.Fatalf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRespectsDepthAndSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a (1).txt", "deep/b (1).txt")
	if err := os.Mkdir(filepath.Join(dir, "folder (1)"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Find(dir, 0)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.Total != 1 || len(res.False) != 1 || res.False[0].Path != filepath.Join(dir, "a (1).txt") {
		t.Fatalf("depth 0 result: %+v", res)
	}

	res, err = Find(dir, 1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("depth 1 total = %d, want 2", res.Total)
	}
}

func TestFindEmptyDirectory(t *testing.T) {
	res, err := Find(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("Find(empty) error: %v", err)
	}
	if res.Total != 0 || res.NotDuplicated() != 0 {
		t.Fatalf("Find(empty) = %+v, want zero result", res)
	}
}

func TestFindInvalidDirectory(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing"), 1)
	if !errors.Is(err, fspath.ErrInvalidDirectory) {
		t.Fatalf("Find(missing) = %v, want ErrInvalidDirectory", err)
	}
}
