// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"github.com/venvshell/venvshell/internal/descriptor"
	"github.com/venvshell/venvshell/internal/session"
)

// ToolStatus reports whether a declared tool resolves in the activated session.
type ToolStatus struct {
	Tool descriptor.Tool
	// Path is where the tool resolved; empty when missing.
	Path string
	// Err is the lookup error for a missing tool.
	Err error
}

// Found reports whether the tool resolved.
func (s ToolStatus) Found() bool {
	return s.Err == nil && s.Path != ""
}

// CheckTools looks every tool up in env's PATH. Tools are never installed.
func CheckTools(env session.Environ, dir string, tools []descriptor.Tool) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		path, err := LookPath(env, dir, tool.Name)
		statuses = append(statuses, ToolStatus{Tool: tool, Path: path, Err: err})
	}
	return statuses
}

// Missing returns the tools that did not resolve.
func Missing(statuses []ToolStatus) []descriptor.Tool {
	var missing []descriptor.Tool
	for _, s := range statuses {
		if !s.Found() {
			missing = append(missing, s.Tool)
		}
	}
	return missing
}
