// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the operation that failed, the resource involved and
// suggestions for fixing it. Issues are longer Markdown guides, keyed by Id and
// rendered with glamour, that the CLI prints in verbose mode.
package issue
