// SPDX-License-Identifier: MPL-2.0

// Package shellhook renders an activation delta as shell code. The output of
// `venvshell hook <shell>` is meant to be evaluated by the calling shell:
//
//	eval "$(venvshell hook bash)"
package shellhook
