// Package fileinfo describes listed paths for long and JSON listings.
package fileinfo

import (
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nethoundsh/filetidy/pkg/fspath"
)

const (
	KindFile    = "file"
	KindDir     = "dir"
	KindSymlink = "symlink"
	KindOther   = "other"
)

type Meta struct {
	Path        string
	Name        string
	Stem        string
	Suffix      string
	Kind        string
	Size        int64
	SizeHuman   string
	Modified    time.Time
	Created     time.Time
	Permissions string
}

type JSONMeta struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Stem        string `json:"stem"`
	Suffix      string `json:"suffix,omitempty"`
	Kind        string `json:"kind"`
	Size        int64  `json:"size"`
	SizeHuman   string `json:"size_human"`
	Modified    string `json:"modified"`
	Age         string `json:"age"`
	Created     string `json:"created,omitempty"`
	Permissions string `json:"permissions"`
}

// Stat describes path without following a trailing symlink.
func Stat(path string) (*Meta, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, fspath.Wrap("stat", path, err)
	}
	return New(path, fi), nil
}

func New(path string, fi os.FileInfo) *Meta {
	return &Meta{
		Path:        path,
		Name:        fi.Name(),
		Stem:        fspath.Stem(path),
		Suffix:      fspath.Suffix(path),
		Kind:        kindOf(fi.Mode()),
		Size:        fi.Size(),
		SizeHuman:   humanize.Bytes(uint64(fi.Size())),
		Modified:    fi.ModTime().UTC(),
		Created:     birthTime(path, fi).UTC(),
		Permissions: fi.Mode().String(),
	}
}

// Age renders the modification time relative to now, e.g. "3 days ago".
func (m *Meta) Age() string {
	return humanize.Time(m.Modified)
}

func ToJSON(meta *Meta) *JSONMeta {
	if meta == nil {
		return nil
	}
	out := &JSONMeta{
		Path:        meta.Path,
		Name:        meta.Name,
		Stem:        meta.Stem,
		Suffix:      meta.Suffix,
		Kind:        meta.Kind,
		Size:        meta.Size,
		SizeHuman:   meta.SizeHuman,
		Modified:    meta.Modified.Format(time.RFC3339),
		Age:         meta.Age(),
		Permissions: meta.Permissions,
	}
	if !meta.Created.IsZero() {
		out.Created = meta.Created.Format(time.RFC3339)
	}
	return out
}

func kindOf(mode fs.FileMode) string {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}
