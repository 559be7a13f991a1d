// Package output renders listings, rename plans, bulk summaries and the
// duplicate report as colored text or NDJSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/nethoundsh/filetidy/pkg/dedupe"
	"github.com/nethoundsh/filetidy/pkg/fileinfo"
)

// NDJSON output: each line is a self-contained JSON object.
type JSONAction struct {
	Action string `json:"action"`
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
}

type JSONDedupeSummary struct {
	Dir           string `json:"dir"`
	Total         int    `json:"total"`
	NotDuplicated int    `json:"not_duplicated"`
	Deleted       int    `json:"deleted"`
	Cleaned       int    `json:"cleaned"`
	Skipped       int    `json:"skipped"`
	DryRun        bool   `json:"dry_run"`
}

type JSONBulkSummary struct {
	Op         string `json:"op"`
	Count      int    `json:"count"`
	Bytes      int64  `json:"bytes,omitempty"`
	BytesHuman string `json:"bytes_human,omitempty"`
}

type JSONSummaryRecord[T any] struct {
	Summary T `json:"summary"`
}

// Rename describes one planned or applied rename.
type Rename struct {
	Path    string `json:"path"`
	Target  string `json:"target"`
	Applied bool   `json:"applied"`
}

// BulkSummary totals a finished bulk operation. Verb is the past tense shown
// in text output, e.g. "Copied".
type BulkSummary struct {
	Op    string
	Verb  string
	Count int
	Bytes int64
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, a...)
	}
}

func (ew *errWriter) println(a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintln(ew.w, a...)
	}
}

func (ew *errWriter) json(v any) {
	if ew.err != nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		ew.err = fmt.Errorf("marshaling JSON output: %w", err)
		return
	}
	ew.println(string(b))
}

// PrintDedupe prints the duplicate report in the configured format.
func PrintDedupe(w io.Writer, res dedupe.Result, format string) error {
	if format == "json" {
		return PrintDedupeJSON(w, res)
	}
	return PrintDedupeText(w, res)
}

func PrintDedupeText(w io.Writer, res dedupe.Result) error {
	ew := &errWriter{w: w}
	ew.printf("Paths that end with (#) that are not duplicated: %d/%d\n", res.NotDuplicated(), res.Total)
	printCandidates(ew, color.RedString("Deleted (%d):", len(res.Real)), res.Real)
	printCandidates(ew, color.GreenString("Cleaned (%d):", len(res.False)), res.False)
	if len(res.Skipped) > 0 {
		printCandidates(ew, color.YellowString("Skipped (%d):", len(res.Skipped)), res.Skipped)
	}
	if res.DryRun {
		ew.println(color.YellowString("Dry run: no files were changed"))
	}
	return ew.err
}

func printCandidates(ew *errWriter, header string, cs []dedupe.Candidate) {
	ew.println(header)
	for _, c := range cs {
		ew.printf("- %s\n", c.Path)
	}
}

func PrintDedupeJSON(w io.Writer, res dedupe.Result) error {
	ew := &errWriter{w: w}
	for _, c := range res.Real {
		ew.json(JSONAction{Action: "delete", Path: c.Path, Target: c.Original})
	}
	for _, c := range res.False {
		ew.json(JSONAction{Action: "clean", Path: c.Path, Target: c.Original})
	}
	for _, c := range res.Skipped {
		ew.json(JSONAction{Action: "skip", Path: c.Path, Target: c.Original})
	}
	ew.json(JSONSummaryRecord[JSONDedupeSummary]{Summary: JSONDedupeSummary{
		Dir:           res.Dir,
		Total:         res.Total,
		NotDuplicated: res.NotDuplicated(),
		Deleted:       len(res.Real),
		Cleaned:       len(res.False),
		Skipped:       len(res.Skipped),
		DryRun:        res.DryRun,
	}})
	return ew.err
}

// PrintListing prints one line per entry. Long text output adds
// permissions, size and modification time columns.
func PrintListing(w io.Writer, metas []*fileinfo.Meta, format string, long bool) error {
	ew := &errWriter{w: w}
	for _, m := range metas {
		switch {
		case format == "json":
			ew.json(fileinfo.ToJSON(m))
		case long:
			const tsFormat = "2006-01-02 15:04"
			ew.printf("%s %9s  %s  %s\n", m.Permissions, m.SizeHuman, m.Modified.Local().Format(tsFormat), pathColor(m))
		default:
			ew.println(pathColor(m))
		}
	}
	return ew.err
}

func pathColor(m *fileinfo.Meta) string {
	switch m.Kind {
	case fileinfo.KindDir:
		return color.HiBlueString("%s", m.Path)
	case fileinfo.KindSymlink:
		return color.CyanString("%s", m.Path)
	default:
		return m.Path
	}
}

// PrintRenames prints each rename as "old -> new". Entries whose target
// equals their path are left out of text output.
func PrintRenames(w io.Writer, renames []Rename, format string) error {
	ew := &errWriter{w: w}
	for _, r := range renames {
		if format == "json" {
			ew.json(r)
			continue
		}
		if r.Target == r.Path {
			continue
		}
		ew.printf("%s -> %s\n", r.Path, color.GreenString("%s", r.Target))
	}
	return ew.err
}

func PrintBulkSummary(w io.Writer, s BulkSummary, format string) error {
	ew := &errWriter{w: w}
	if format == "json" {
		sum := JSONBulkSummary{Op: s.Op, Count: s.Count, Bytes: s.Bytes}
		if s.Bytes > 0 {
			sum.BytesHuman = humanize.Bytes(uint64(s.Bytes))
		}
		ew.json(JSONSummaryRecord[JSONBulkSummary]{Summary: sum})
		return ew.err
	}

	unit := "items"
	if s.Count == 1 {
		unit = "item"
	}
	if s.Bytes > 0 {
		ew.printf("%s %s %s (%s)\n", s.Verb, color.GreenString("%d", s.Count), unit, humanize.Bytes(uint64(s.Bytes)))
	} else {
		ew.printf("%s %s %s\n", s.Verb, color.GreenString("%d", s.Count), unit)
	}
	return ew.err
}

// PrintPaths prints bare paths, or {"path": ...} records for JSON.
func PrintPaths(w io.Writer, action string, paths []string, format string) error {
	ew := &errWriter{w: w}
	for _, p := range paths {
		if format == "json" {
			ew.json(JSONAction{Action: action, Path: p})
		} else {
			ew.println(p)
		}
	}
	return ew.err
}
