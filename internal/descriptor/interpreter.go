// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/venvshell/venvshell/internal/provision"
)

const (
	// PythonVersionFile is the pyenv-style interpreter pin.
	PythonVersionFile = ".python-version"
	// PyprojectFile is the Python project metadata file.
	PyprojectFile = "pyproject.toml"
)

// Where an interpreter spec came from.
const (
	SourcePlatform      Source = "descriptor platform"
	SourceDescriptor    Source = "descriptor"
	SourcePythonVersion Source = PythonVersionFile
	SourcePyproject     Source = PyprojectFile
	SourceConfig        Source = "config"
	SourceDefault       Source = "creator default"
)

type (
	// Source names where an interpreter spec was found.
	Source string

	// Resolution is the interpreter spec a new environment is created with.
	Resolution struct {
		Spec   provision.InterpreterSpec
		Source Source
	}

	pyproject struct {
		Project struct {
			RequiresPython string `toml:"requires-python"`
		} `toml:"project"`
	}
)

// ResolveInterpreter picks the interpreter spec in precedence order: the
// platform's python, the descriptor's python, .python-version in root,
// [project].requires-python in root's pyproject.toml, then fallback from the
// user configuration. An empty result leaves the choice to the creator.
func ResolveInterpreter(root string, ts Toolset, d *Descriptor, fallback provision.InterpreterSpec) (Resolution, error) {
	if ts.Python != "" {
		if d != nil && ts.Python == d.Python {
			return Resolution{Spec: ts.Python, Source: SourceDescriptor}, nil
		}
		return Resolution{Spec: ts.Python, Source: SourcePlatform}, nil
	}
	if d != nil && d.Python != "" {
		return Resolution{Spec: d.Python, Source: SourceDescriptor}, nil
	}

	spec, err := readPythonVersion(filepath.Join(root, PythonVersionFile))
	if err != nil {
		return Resolution{}, err
	}
	if spec != "" {
		return Resolution{Spec: spec, Source: SourcePythonVersion}, nil
	}

	spec, err = readRequiresPython(filepath.Join(root, PyprojectFile))
	if err != nil {
		return Resolution{}, err
	}
	if spec != "" {
		return Resolution{Spec: spec, Source: SourcePyproject}, nil
	}

	if fallback != "" {
		return Resolution{Spec: fallback, Source: SourceConfig}, nil
	}
	return Resolution{Source: SourceDefault}, nil
}

// readPythonVersion returns the first pinned version in a .python-version
// file, or "" when the file is missing or holds no version.
func readPythonVersion(path string) (provision.InterpreterSpec, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return provision.InterpreterSpec(line), nil
	}
	return "", nil
}

// readRequiresPython returns [project].requires-python from a pyproject.toml
// with whitespace removed (">= 3.11, <4" becomes ">=3.11,<4"), or "" when
// absent.
func readRequiresPython(path string) (provision.InterpreterSpec, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var p pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return provision.InterpreterSpec(strings.Join(strings.Fields(p.Project.RequiresPython), "")), nil
}
