// SPDX-License-Identifier: MPL-2.0

// Package session models the interactive session a bootstrap runs for.
//
// An Environ is an in-memory copy of the session's environment. Activate
// derives the activated environment from it: the environment's executable
// directory is moved to the front of PATH and VIRTUAL_ENV points at the
// environment. Nothing here touches the real process environment; callers
// apply the result by emitting shell code or by starting children with it.
package session
