// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// lockFilePrefix names the zero-byte lock files. An orphaned lock file is
// harmless: the kernel releases the lock when the holder's fd is closed,
// including on crash.
const lockFilePrefix = "venvshell-"

// lockFilePath returns the lock file guarding creation of the marker at
// markerPath. Lock files live in dir (normally $XDG_RUNTIME_DIR), falling
// back to os.TempDir() when dir is empty.
func lockFilePath(dir, markerPath string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(markerPath)))
	return filepath.Join(dir, lockFilePrefix+hex.EncodeToString(sum[:8])+".lock")
}
