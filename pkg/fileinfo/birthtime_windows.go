//go:build windows

package fileinfo

import (
	"os"
	"syscall"
	"time"
)

// birthTime uses the creation time already fetched by os.Lstat.
func birthTime(_ string, fi os.FileInfo) time.Time {
	if fi == nil {
		return time.Time{}
	}
	attrs, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return time.Time{}
	}
	if ft := attrs.CreationTime; ft.HighDateTime != 0 || ft.LowDateTime != 0 {
		return time.Unix(0, ft.Nanoseconds()).UTC()
	}
	return time.Time{}
}
