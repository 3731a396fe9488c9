// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/venvshell/venvshell/internal/provision"
	"github.com/venvshell/venvshell/pkg/cueutil"
	"github.com/venvshell/venvshell/pkg/platform"
)

// FileName is the default descriptor file name in the session root.
const FileName = "venvshell.cue"

var (
	//go:embed descriptor_schema.cue
	descriptorSchema []byte

	// ErrPlatformNotSupported is returned when the descriptor declares
	// platforms and the requested one is not among them.
	ErrPlatformNotSupported = errors.New("platform not supported")

	// ErrDuplicateTool is returned when a platform lists a tool twice.
	ErrDuplicateTool = errors.New("duplicate tool")
)

type (
	// Descriptor is a parsed venvshell.cue.
	Descriptor struct {
		Python    provision.InterpreterSpec `json:"python,omitempty"`
		Marker    string                    `json:"marker,omitempty"`
		Platforms map[string]Platform       `json:"platforms,omitempty"`

		// Source is the file the descriptor was read from; empty when no
		// descriptor exists.
		Source string `json:"-"`
	}

	// Platform is the per-platform section of a descriptor.
	Platform struct {
		Python provision.InterpreterSpec `json:"python,omitempty"`
		Tools  []Tool                    `json:"tools,omitempty"`
	}

	// Tool is a declared {tool, version} pair. An empty Version means any.
	Tool struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	// Toolset is what the descriptor declares for one platform.
	Toolset struct {
		Platform platform.ID
		Python   provision.InterpreterSpec
		Tools    []Tool
	}

	// PlatformNotSupportedError lists the platforms a descriptor does support.
	PlatformNotSupportedError struct {
		Platform  platform.ID
		Supported []platform.ID
	}
)

// Load reads the descriptor at file, resolved against root when relative.
// A missing file is not an error: the returned descriptor is empty and its
// Source is "".
func Load(root, file string) (*Descriptor, error) {
	if file == "" {
		file = FileName
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Descriptor{}, nil
	}

	result, err := cueutil.ParseFile[Descriptor](descriptorSchema, path, "#Descriptor")
	if err != nil {
		return nil, err
	}
	d := result.Value
	d.Source = path

	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse parses descriptor content. filename is used in error messages.
func Parse(data []byte, filename string) (*Descriptor, error) {
	result, err := cueutil.ParseAndDecode[Descriptor](descriptorSchema, data, "#Descriptor", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	d := result.Value
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// Exists reports whether the descriptor was read from a file.
func (d *Descriptor) Exists() bool {
	return d != nil && d.Source != ""
}

// SupportedPlatforms returns the declared platform IDs in sorted order.
func (d *Descriptor) SupportedPlatforms() []platform.ID {
	if d == nil {
		return nil
	}
	ids := make([]platform.ID, 0, len(d.Platforms))
	for _, key := range slices.Sorted(maps.Keys(d.Platforms)) {
		ids = append(ids, platform.ID(key))
	}
	return ids
}

// Toolset returns the declarations for id. A descriptor without a platforms
// section supports every platform with an empty toolset.
func (d *Descriptor) Toolset(id platform.ID) (Toolset, error) {
	ts := Toolset{Platform: id}
	if d == nil {
		return ts, nil
	}
	ts.Python = d.Python
	if len(d.Platforms) == 0 {
		return ts, nil
	}

	p, ok := d.Platforms[id.String()]
	if !ok {
		return Toolset{Platform: id}, &PlatformNotSupportedError{Platform: id, Supported: d.SupportedPlatforms()}
	}
	if p.Python != "" {
		ts.Python = p.Python
	}
	ts.Tools = slices.Clone(p.Tools)
	return ts, nil
}

// validate checks what the schema cannot express.
func (d *Descriptor) validate() error {
	for _, key := range slices.Sorted(maps.Keys(d.Platforms)) {
		seen := make(map[string]bool, len(d.Platforms[key].Tools))
		for i, tool := range d.Platforms[key].Tools {
			if seen[tool.Name] {
				return fmt.Errorf("platforms.%q.tools[%d]: %w %q", key, i, ErrDuplicateTool, tool.Name)
			}
			seen[tool.Name] = true
		}
	}
	return nil
}

// String returns "name" or "name==version".
func (t Tool) String() string {
	if t.Version == "" {
		return t.Name
	}
	return t.Name + "==" + t.Version
}

// Error implements the error interface.
func (e *PlatformNotSupportedError) Error() string {
	names := make([]string, len(e.Supported))
	for i, id := range e.Supported {
		names[i] = id.String()
	}
	return fmt.Sprintf("platform %s is not declared (supported: %s)", e.Platform, strings.Join(names, ", "))
}

// Unwrap returns ErrPlatformNotSupported for errors.Is() compatibility.
func (e *PlatformNotSupportedError) Unwrap() error { return ErrPlatformNotSupported }
