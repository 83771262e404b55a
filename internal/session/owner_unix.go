//go:build unix

package session

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// preserveOwner gives the temp file the uid/gid of the file it replaces.
// Unprivileged callers cannot chown and keep their own ownership.
func preserveOwner(f *os.File, prev os.FileInfo) error {
	st, ok := prev.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	err := unix.Fchown(int(f.Fd()), int(st.Uid), int(st.Gid))
	if errors.Is(err, unix.EPERM) {
		return nil
	}
	return err
}
