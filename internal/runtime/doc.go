// SPDX-License-Identifier: MPL-2.0

// Package runtime runs commands inside an activated session: a single
// executable (native), a shell snippet interpreted in-process (virtual), or an
// interactive subshell attached to a pseudo-terminal.
package runtime
