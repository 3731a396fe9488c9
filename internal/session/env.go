// SPDX-License-Identifier: MPL-2.0

package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Env holds the session variables venvshell reads. Only what is needed to
// locate the working-directory root and to start a shell is consumed.
type Env struct {
	// Root overrides the working-directory root the marker is resolved against.
	Root string `env:"VENVSHELL_ROOT"`
	// Shell is the user's login shell.
	Shell string `env:"SHELL"`
	// RuntimeDir is the per-user runtime directory used for lock files.
	RuntimeDir string `env:"XDG_RUNTIME_DIR"`
	// VirtualEnv is the environment active before this bootstrap, if any.
	VirtualEnv string `env:"VIRTUAL_ENV"`
}

// ParseEnv decodes the session variables from environ.
func ParseEnv(environ Environ) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ.Map()}); err != nil {
		return Env{}, fmt.Errorf("parse session environment: %w", err)
	}
	return e, nil
}

// RootDir returns the absolute working-directory root: Root when set,
// otherwise the process working directory.
func (e Env) RootDir() (string, error) {
	if e.Root != "" {
		root, err := filepath.Abs(e.Root)
		if err != nil {
			return "", fmt.Errorf("resolve VENVSHELL_ROOT %q: %w", e.Root, err)
		}
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// Resolve resolves path against the root directory. Absolute paths are
// returned cleaned.
func (e Env) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	root, err := e.RootDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, path), nil
}
