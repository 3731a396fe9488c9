// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/venvshell/venvshell/internal/session"
	"github.com/venvshell/venvshell/pkg/platform"
)

// versionProbe prints the interpreter's full version.
const versionProbe = "import sys; print('%d.%d.%d' % sys.version_info[:3])"

var (
	// ErrUnresolvableSpec is returned when the venv creator is given a version
	// specifier or a non-CPython interpreter name.
	ErrUnresolvableSpec = errors.New("venv creator cannot resolve interpreter spec; install uv or pin a plain version")
	// ErrInterpreterMismatch is returned when the interpreter found for a
	// patch-level pin reports a different version.
	ErrInterpreterMismatch = errors.New("interpreter version does not match the pinned version")
)

// Compile-time interface check
var _ Creator = (*VenvCreator)(nil)

type (
	// VenvCreator creates environments with the standard library venv module of
	// an interpreter already installed on the host.
	VenvCreator struct {
		goos string
	}

	// InterpreterCommand is how VenvCreator starts the interpreter for a spec.
	InterpreterCommand struct {
		Name string
		Args []string
		// Exact is the full version the interpreter must report for an X.Y.Z pin.
		Exact string
	}
)

// NewVenvCreator returns a VenvCreator for the running OS.
func NewVenvCreator() *VenvCreator {
	return &VenvCreator{goos: runtime.GOOS}
}

// Name implements Creator.
func (c *VenvCreator) Name() string { return string(CreatorVenv) }

// Command returns the interpreter command for spec:
//
//	""        -> python3
//	"3.14"    -> python3.14     (py -3.14 on Windows)
//	"3.12.4"  -> python3.12     must report 3.12.4
//	"/opt/py" -> /opt/py
//
// Anything else needs a resolver and fails with ErrUnresolvableSpec.
func (c *VenvCreator) Command(spec InterpreterSpec) (InterpreterCommand, error) {
	switch {
	case spec == "":
		return c.versioned("3"), nil
	case spec.IsPath():
		return InterpreterCommand{Name: spec.String()}, nil
	case !spec.IsVersion():
		return InterpreterCommand{}, fmt.Errorf("%w: %q", ErrUnresolvableSpec, spec)
	}

	minor, patch := spec.MinorVersion()
	cmd := c.versioned(minor)
	if patch {
		cmd.Exact = spec.String()
	}
	return cmd, nil
}

func (c *VenvCreator) versioned(version string) InterpreterCommand {
	if c.goos == platform.Windows {
		return InterpreterCommand{Name: "py", Args: []string{"-" + version}}
	}
	return InterpreterCommand{Name: "python" + version}
}

// Create implements Creator.
func (c *VenvCreator) Create(ctx context.Context, req CreateRequest) error {
	cmd, err := c.Command(req.Interpreter)
	if err != nil {
		return err
	}
	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		return fmt.Errorf("find interpreter for %q: %w", req.Interpreter, err)
	}
	if cmd.Exact != "" {
		if err := checkInterpreterVersion(ctx, req.Env, bin, cmd.Args, cmd.Exact); err != nil {
			return err
		}
	}
	args := append(slices.Clone(cmd.Args), "-m", "venv", req.Dir)
	return runCreationCommand(ctx, req, bin, args...)
}

// checkInterpreterVersion runs bin and compares the version it reports with want.
func checkInterpreterVersion(ctx context.Context, env session.Environ, bin string, lead []string, want string) error {
	cmd := exec.CommandContext(ctx, bin, append(slices.Clone(lead), "-c", versionProbe)...)
	if env.Len() > 0 {
		cmd.Env = env.Slice()
	}
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("query version of %s: %w", bin, err)
	}
	if got := strings.TrimSpace(string(out)); got != want {
		return fmt.Errorf("%w: %s is Python %s, want %s", ErrInterpreterMismatch, bin, got, want)
	}
	return nil
}
