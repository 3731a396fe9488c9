// SPDX-License-Identifier: MPL-2.0

//go:build unix

package provision

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// errFlockUnavailable is defined for cross-platform compatibility with
// lock_other.go. On unix, acquireCreateLock never returns it.
var errFlockUnavailable = errors.New("flock not available on this platform")

// createLock holds a blocking exclusive flock on a per-marker lock file,
// serializing environment creation between venvshell processes.
type createLock struct {
	file *os.File
}

// acquireCreateLock opens (or creates) the lock file at path and acquires a
// blocking exclusive flock. The call blocks until the lock is available.
func acquireCreateLock(path string) (*createLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	return &createLock{file: f}, nil
}

// Release unlocks and closes the lock file. Subsequent calls are no-ops.
func (l *createLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		slog.Debug("flock unlock failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		slog.Debug("lock file close failed", "error", err)
	}
	l.file = nil
}
