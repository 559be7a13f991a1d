//go:build darwin

package fileinfo

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime reads st_birthtimespec without following a final symlink, so a
// link reports its own creation time like it does on Linux.
func birthTime(path string, _ os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return time.Time{}
	}
	ts := st.Birthtimespec
	if ts.Sec == 0 && ts.Nsec == 0 {
		return time.Time{}
	}
	return time.Unix(ts.Unix()).UTC()
}
