// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"

	"github.com/venvshell/venvshell/internal/session"
)

// LookPath resolves name against the PATH of env rather than the PATH of the
// venvshell process, so executables of the activated environment are found.
// Names containing a path separator are resolved relative to dir.
func LookPath(env session.Environ, dir, name string) (string, error) {
	return interp.LookPathDir(dir, expand.ListEnviron(env.Slice()...), name)
}
