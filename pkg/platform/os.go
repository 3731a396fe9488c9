// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExecutableDirName returns the name of the directory inside a Python virtual
// environment that holds its executables: "Scripts" on Windows, "bin" elsewhere.
func ExecutableDirName() string {
	return executableDirNameFor(runtime.GOOS)
}

func executableDirNameFor(goos string) string {
	if goos == Windows {
		return "Scripts"
	}
	return "bin"
}

// ExecutableName appends the platform executable suffix to name.
func ExecutableName(name string) string {
	if runtime.GOOS == Windows {
		return name + ".exe"
	}
	return name
}

// DefaultShell returns the shell to start when $SHELL is unset.
func DefaultShell() string {
	switch runtime.GOOS {
	case Windows:
		return "cmd.exe"
	case Darwin:
		return "/bin/zsh"
	default:
		return "/bin/sh"
	}
}
