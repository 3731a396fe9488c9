// SPDX-License-Identifier: MPL-2.0

// Package descriptor loads the project descriptor (venvshell.cue): the
// interpreter pin, an optional marker path, and the tools each target platform
// is expected to provide. It also resolves which interpreter spec a new
// environment is created with when the descriptor does not pin one.
package descriptor
