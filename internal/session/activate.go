// SPDX-License-Identifier: MPL-2.0

package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/venvshell/venvshell/pkg/platform"
)

const (
	// VirtualEnvVar marks the active environment for Python tooling.
	VirtualEnvVar = "VIRTUAL_ENV"
	// VirtualEnvPromptVar carries the prompt label shells may show.
	VirtualEnvPromptVar = "VIRTUAL_ENV_PROMPT"
	// PythonHomeVar would override the interpreter's prefix; activation removes it.
	PythonHomeVar = "PYTHONHOME"
)

type (
	// Target is an environment ready to be activated.
	Target struct {
		// Dir is the absolute environment directory.
		Dir string
		// BinDir is the environment's executable directory.
		BinDir string
		// Prompt is the label exported as VIRTUAL_ENV_PROMPT.
		Prompt string
	}

	// Var is a single variable assignment.
	Var struct {
		Name  string
		Value string
	}

	// Delta is the change activation makes to a session environment, in the
	// order a shell should apply it.
	Delta struct {
		Set   []Var
		Unset []string
	}
)

// Activate returns env with target activated, together with the delta that
// was applied. env itself is not modified.
//
// Activation is stable: activating an already-active target returns an equal
// environment. target.BinDir appears exactly once in PATH, at the front. If
// another environment was active, its executable directory is removed from
// PATH.
func Activate(env Environ, target Target) (Environ, Delta) {
	out := env.Clone()

	drop := []string{target.BinDir}
	if previous := env.Get(VirtualEnvVar); previous != "" && !samePath(previous, target.Dir) {
		drop = append(drop, filepath.Join(previous, platform.ExecutableDirName()))
	}

	entries := []string{target.BinDir}
	for _, entry := range filepath.SplitList(env.Get(PathVar)) {
		if entry == "" || containsPath(drop, entry) {
			continue
		}
		entries = append(entries, entry)
	}
	searchPath := strings.Join(entries, string(os.PathListSeparator))

	prompt := target.Prompt
	if prompt == "" {
		prompt = filepath.Base(target.Dir)
	}

	delta := Delta{
		Set: []Var{
			{Name: VirtualEnvVar, Value: target.Dir},
			{Name: VirtualEnvPromptVar, Value: prompt},
			{Name: PathVar, Value: searchPath},
		},
	}
	if _, ok := env.Lookup(PythonHomeVar); ok {
		delta.Unset = append(delta.Unset, PythonHomeVar)
	}

	for _, v := range delta.Set {
		out.Set(v.Name, v.Value)
	}
	for _, name := range delta.Unset {
		out.Unset(name)
	}
	return out, delta
}

// IsActive reports whether target is the active environment of env with its
// executable directory first on PATH.
func IsActive(env Environ, target Target) bool {
	if !samePath(env.Get(VirtualEnvVar), target.Dir) {
		return false
	}
	entries := filepath.SplitList(env.Get(PathVar))
	return len(entries) > 0 && samePath(entries[0], target.BinDir)
}

func containsPath(paths []string, candidate string) bool {
	for _, p := range paths {
		if samePath(p, candidate) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
