// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/venvshell/venvshell/pkg/platform"
)

// MakeVenvLayout creates the minimal on-disk layout of a Python virtual
// environment at dir: pyvenv.cfg and an executable directory holding a
// placeholder python. It returns the executable directory.
func MakeVenvLayout(t testing.TB, dir string) string {
	t.Helper()
	binDir := filepath.Join(dir, platform.ExecutableDirName())
	MustWriteFile(t, filepath.Join(dir, "pyvenv.cfg"), "home = /usr/bin\nversion = 3.14.0\n")
	MustWriteFile(t, filepath.Join(binDir, platform.ExecutableName("python")), "#!/bin/sh\n")
	return binDir
}
