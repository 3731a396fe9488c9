// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLockFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := lockFilePath(dir, filepath.Join(dir, "project", ".venv"))
	b := lockFilePath(dir, filepath.Join(dir, "project", ".venv")+string(filepath.Separator))
	c := lockFilePath(dir, filepath.Join(dir, "other", ".venv"))

	if a != b {
		t.Errorf("equivalent marker paths should share a lock: %q != %q", a, b)
	}
	if a == c {
		t.Errorf("different markers should not share a lock: %q", a)
	}
	if filepath.Dir(a) != dir {
		t.Errorf("lock file %q not in %q", a, dir)
	}
	base := filepath.Base(a)
	if !strings.HasPrefix(base, lockFilePrefix) || !strings.HasSuffix(base, ".lock") {
		t.Errorf("unexpected lock file name %q", base)
	}
	// prefix + 16 hex digits + ".lock"
	if got, want := len(base), len(lockFilePrefix)+16+len(".lock"); got != want {
		t.Errorf("lock file name length = %d, want %d", got, want)
	}
}

func TestLockFilePath_DefaultsToTempDir(t *testing.T) {
	t.Parallel()

	got := lockFilePath("", "/srv/app/.venv")
	if filepath.Dir(got) != filepath.Clean(os.TempDir()) {
		t.Errorf("lockFilePath(\"\") = %q, want a file in %q", got, os.TempDir())
	}
}
