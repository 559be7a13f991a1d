//go:build linux

package fileinfo

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime asks statx for the creation time. Filesystems without btime
// support leave the mask bit clear.
func birthTime(path string, _ os.FileInfo) time.Time {
	var stx unix.Statx_t
	flags := unix.AT_STATX_SYNC_AS_STAT | unix.AT_SYMLINK_NOFOLLOW
	if err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}
	}
	sec := int64(stx.Btime.Sec)
	nsec := int64(stx.Btime.Nsec)
	if sec == 0 && nsec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, nsec).UTC()
}
