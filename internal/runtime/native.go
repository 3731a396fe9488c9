// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/venvshell/venvshell/pkg/types"
)

// Compile-time interface check
var _ Runtime = (*NativeRuntime)(nil)

// NativeRuntime executes a single program with the activated environment.
type NativeRuntime struct{}

// NewNativeRuntime creates a new native runtime
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return RuntimeTypeNative.String()
}

// Validate checks if a command can be executed
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	if len(ctx.Argv) == 0 || ctx.Argv[0] == "" {
		return ErrNothingToRun
	}
	return nil
}

// Execute runs ctx.Argv. The program is looked up in the activated PATH.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	workDir, err := ctx.workDir()
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to determine working directory: %w", err))
	}

	path, err := LookPath(ctx.Env, workDir, ctx.Argv[0])
	if err != nil {
		return NewErrorResult(127, err)
	}

	cmd := exec.CommandContext(ctx.context(), path, ctx.Argv[1:]...)
	cmd.Args[0] = ctx.Argv[0]
	cmd.Dir = workDir
	cmd.Env = ctx.Env.Slice()
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr

	return resultFromWait(cmd.Run())
}

// resultFromWait maps the error of a finished child process to a Result. A
// non-zero exit is a normal termination, not an error.
func resultFromWait(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewExitCodeResult(types.ExitCode(exitErr.ExitCode()).Clamp())
	}
	return NewErrorResult(types.ExitFailure, err)
}
