// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/venvshell/venvshell/internal/session"
)

// outputTailLimit bounds how much creator stderr is kept for error reports.
const outputTailLimit = 4 << 10

const (
	// CreatorAuto picks uv when it is on PATH and falls back to venv.
	CreatorAuto CreatorKind = "auto"
	// CreatorUV creates environments with `uv venv`.
	CreatorUV CreatorKind = "uv"
	// CreatorVenv creates environments with `python -m venv`.
	CreatorVenv CreatorKind = "venv"
)

// ErrInvalidCreatorKind is the sentinel error wrapped by InvalidCreatorKindError.
var ErrInvalidCreatorKind = errors.New("invalid creator kind")

type (
	// Creator is the runtime-environment-creation primitive: it materializes
	// a new virtual environment directory.
	Creator interface {
		// Name identifies the primitive in logs, errors and the stamp file.
		Name() string
		// Create materializes req.Dir. It blocks until the creation tool exits.
		Create(ctx context.Context, req CreateRequest) error
	}

	// CreateRequest describes one environment creation.
	CreateRequest struct {
		// Dir is the absolute directory to create.
		Dir string
		// Interpreter is the pinned runtime version.
		Interpreter InterpreterSpec
		// Env is the environment the creation tool runs with.
		Env session.Environ
		// Progress receives the tool's output as it runs; nil discards it.
		Progress io.Writer
	}

	// CreatorKind selects a Creator implementation.
	CreatorKind string

	// InvalidCreatorKindError is returned for an unknown CreatorKind.
	InvalidCreatorKindError struct {
		Value CreatorKind
	}

	// commandError is a failed creation command with its captured stderr.
	commandError struct {
		args   []string
		output string
		err    error
	}

	// tailBuffer keeps the last outputTailLimit bytes written to it.
	tailBuffer struct {
		mu  sync.Mutex
		buf bytes.Buffer
	}
)

// NewCreator returns the Creator for kind.
func NewCreator(kind CreatorKind) (Creator, error) {
	switch kind {
	case CreatorUV:
		return NewUVCreator(), nil
	case CreatorVenv:
		return NewVenvCreator(), nil
	case CreatorAuto, "":
		return NewAutoCreator(), nil
	default:
		return nil, &InvalidCreatorKindError{Value: kind}
	}
}

// String returns the string representation of the kind.
func (k CreatorKind) String() string { return string(k) }

// IsValid returns whether the kind names a known creator. The zero value means auto.
func (k CreatorKind) IsValid() (bool, []error) {
	switch k {
	case CreatorAuto, CreatorUV, CreatorVenv, "":
		return true, nil
	default:
		return false, []error{&InvalidCreatorKindError{Value: k}}
	}
}

// Error implements the error interface.
func (e *InvalidCreatorKindError) Error() string {
	return fmt.Sprintf("invalid creator %q (valid: auto, uv, venv)", e.Value)
}

// Unwrap returns ErrInvalidCreatorKind for errors.Is() compatibility.
func (e *InvalidCreatorKindError) Unwrap() error { return ErrInvalidCreatorKind }

func (e *commandError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.args, " "), e.err)
}

func (e *commandError) Unwrap() error { return e.err }

// creatorOutput returns the stderr captured by a failed creation command.
func creatorOutput(err error) string {
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		return cmdErr.output
	}
	return ""
}

// runCreationCommand runs a creation tool with req's environment. A previously
// active environment is hidden from the tool so it cannot redirect creation.
func runCreationCommand(ctx context.Context, req CreateRequest, name string, args ...string) error {
	env := req.Env.Clone()
	env.Unset(session.VirtualEnvVar)
	env.Unset(session.PythonHomeVar)

	cmd := exec.CommandContext(ctx, name, args...)
	if env.Len() > 0 {
		cmd.Env = env.Slice()
	}

	progress := req.Progress
	if progress == nil {
		progress = io.Discard
	}
	var stderr tailBuffer
	cmd.Stdout = progress
	cmd.Stderr = io.MultiWriter(&stderr, progress)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%w)", ctxErr, err)
		}
		return &commandError{
			args:   append([]string{name}, args...),
			output: strings.TrimSpace(stderr.String()),
			err:    err,
		}
	}
	return nil
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, _ := b.buf.Write(p)
	if over := b.buf.Len() - outputTailLimit; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
