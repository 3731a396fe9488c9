// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/venvshell/venvshell/internal/session"
	"github.com/venvshell/venvshell/pkg/types"
)

// Runtime type constants for different execution modes.
const (
	RuntimeTypeNative      RuntimeType = "native"
	RuntimeTypeVirtual     RuntimeType = "virtual"
	RuntimeTypeInteractive RuntimeType = "interactive"
)

// ErrNothingToRun is returned when an ExecutionContext carries no command.
var ErrNothingToRun = errors.New("nothing to run")

type (
	// RuntimeType names an execution mode.
	RuntimeType string

	// ExecutionContext contains everything needed to run one command.
	ExecutionContext struct {
		// Context is the Go context for cancellation
		Context context.Context
		// Env is the activated session environment the command runs with
		Env session.Environ
		// WorkDir is the working directory; empty means the current one
		WorkDir string

		// Argv is the command line for the native runtime
		Argv []string
		// Script is the shell snippet for the virtual runtime
		Script string
		// PositionalArgs are passed to Script as $1, $2, ...
		PositionalArgs []string
		// Shell is the interactive shell to start
		Shell string

		// Stdin is where to read standard input
		Stdin io.Reader
		// Stdout is where to write standard output
		Stdout io.Writer
		// Stderr is where to write standard error
		Stderr io.Writer
	}

	// Result contains the result of a command execution
	Result struct {
		// ExitCode is the exit code of the command
		ExitCode types.ExitCode
		// Error is set when the command could not be run at all
		Error error
	}

	// Runtime defines the interface for command execution
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Validate checks if the context can be executed by this runtime
		Validate(ctx *ExecutionContext) error
		// Execute runs the command
		Execute(ctx *ExecutionContext) *Result
	}
)

// NewExecutionContext returns a context wired to the process stdio.
func NewExecutionContext(ctx context.Context, env session.Environ) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Env:     env,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// String returns the string representation of the runtime type.
func (t RuntimeType) String() string { return string(t) }

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

func (ctx *ExecutionContext) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

func (ctx *ExecutionContext) workDir() (string, error) {
	if ctx.WorkDir != "" {
		return ctx.WorkDir, nil
	}
	return os.Getwd()
}
