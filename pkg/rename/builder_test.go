package rename

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestPreviewUsesStemForFilesAndNameForDirs(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, filepath.Join(dir, "INFORME de avance Y cierre.pdf"))
	sub := filepath.Join(dir, "carpeta.v1")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := New(file).SmartTitle().Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if want := "INFORME de Avance y Cierre"; got != want {
		t.Fatalf("Preview(file) = %q, want %q", got, want)
	}

	got, err = New(sub).Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if got != "carpeta.v1" {
		t.Fatalf("Preview(dir) = %q, want full directory name", got)
	}
}

func TestPreviewKeepAfterNoSeparator(t *testing.T) {
	file := touch(t, filepath.Join(t.TempDir(), "plain_name.v2.txt"))
	got, err := New(file).KeepAfter("-").Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if got != "v2" {
		t.Fatalf("Preview = %q, want %q", got, "v2")
	}
}

func TestPreviewIsPure(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, filepath.Join(dir, "001 - nota DE actualidad.docx"))

	b := New(file).
		KeepAfter("-").
		NormalizeSpacesLower().
		AddDashAfterKeywords().
		SmartTitle()
	first, err := b.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	second, err := b.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if first != second {
		t.Fatalf("Preview not repeatable: %q then %q", first, second)
	}
	if want := "Nota de Actualidad -"; first != want {
		t.Fatalf("Preview = %q, want %q", first, want)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("Preview touched the file: %v", err)
	}
}

func TestReplaceIdentityDoesNotChangePreview(t *testing.T) {
	file := touch(t, filepath.Join(t.TempDir(), "Some Name.txt"))
	for _, x := range []string{"", "a", "Name", " "} {
		base, err := New(file).NormalizeSpacesLower().Preview()
		if err != nil {
			t.Fatal(err)
		}
		got, err := New(file).NormalizeSpacesLower().Replace(x, x).Preview()
		if err != nil {
			t.Fatal(err)
		}
		if got != base {
			t.Fatalf("Replace(%q, %q) changed preview: %q -> %q", x, x, base, got)
		}
	}
}

func TestApplyEscapeHatch(t *testing.T) {
	file := touch(t, filepath.Join(t.TempDir(), "draft.md"))
	got, err := New(file).Apply(strings.ToUpper).Apply(func(s string) string { return s + "_v2" }).Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if got != "DRAFT_v2" {
		t.Fatalf("Preview = %q, want DRAFT_v2", got)
	}
}

func TestRenameFile(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, filepath.Join(dir, "informe  FINAL.pdf"))

	got, err := New(file).NormalizeSpacesLower().SmartTitle().Rename()
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want := filepath.Join(dir, "Informe Final.pdf")
	if got != want {
		t.Fatalf("Rename = %q, want %q", got, want)
	}
	if ok, _ := fspath.Exists(want); !ok {
		t.Fatal("renamed file does not exist")
	}
	if ok, _ := fspath.Exists(file); ok {
		t.Fatal("original file still exists")
	}
}

func TestRenameDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "2024 - archivos.varios")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := New(sub).KeepAfter("-").SmartTitle().Rename()
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want := filepath.Join(dir, "Archivos.varios")
	if got != want {
		t.Fatalf("Rename = %q, want %q", got, want)
	}
	fi, err := os.Stat(want)
	if err != nil || !fi.IsDir() {
		t.Fatalf("renamed directory missing: %v", err)
	}
}

func TestRenameSkippedByContains(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, filepath.Join(dir, "slides PPT.pptx"))

	got, err := New(file).Contains("PPT", true).SmartTitle().Rename()
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got != file {
		t.Fatalf("Rename = %q, want unchanged %q", got, file)
	}
	if ok, _ := fspath.Exists(file); !ok {
		t.Fatal("skipped file was moved")
	}
}

func TestRenameDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "b.txt"))

	got, err := New(file).Replace("a", "b").Rename()
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("Rename onto existing = %v, want ErrExist", err)
	}
	if got != file {
		t.Fatalf("Rename returned %q on failure, want original", got)
	}
}

func TestBuilderValidation(t *testing.T) {
	file := touch(t, filepath.Join(t.TempDir(), "a.txt"))

	if _, err := New(file).KeepAfter("").Preview(); !errors.Is(err, fspath.ErrInvalidArgument) {
		t.Fatalf("KeepAfter(\"\") = %v, want ErrInvalidArgument", err)
	}
	if _, err := New(file).Apply(nil).Preview(); !errors.Is(err, fspath.ErrInvalidArgument) {
		t.Fatalf("Apply(nil) = %v, want ErrInvalidArgument", err)
	}
	if _, err := New(file).Replace("a", "x/y").Rename(); !errors.Is(err, fspath.ErrInvalidArgument) {
		t.Fatalf("rename into another directory = %v, want ErrInvalidArgument", err)
	}
}

func TestSmartTitleExceptionsCapturedPerStage(t *testing.T) {
	file := touch(t, filepath.Join(t.TempDir(), "uno Y dos.txt"))
	got, err := New(file).SmartTitle("dos").Preview()
	if err != nil {
		t.Fatal(err)
	}
	if got != "Uno Y dos" {
		t.Fatalf("Preview = %q, want %q", got, "Uno Y dos")
	}
}
