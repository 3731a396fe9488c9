// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/venvshell/venvshell/pkg/platform"
	"github.com/venvshell/venvshell/pkg/types"
)

// Compile-time interface check
var _ Runtime = (*InteractiveRuntime)(nil)

// InteractiveRuntime starts the user's shell in the activated environment.
// When stdin is a terminal the shell gets its own pseudo-terminal; otherwise
// it inherits the standard streams.
type InteractiveRuntime struct {
	isTerminal func(fd int) bool
}

// NewInteractiveRuntime creates a new interactive runtime
func NewInteractiveRuntime() *InteractiveRuntime {
	return &InteractiveRuntime{isTerminal: term.IsTerminal}
}

// Name returns the runtime name
func (r *InteractiveRuntime) Name() string {
	return RuntimeTypeInteractive.String()
}

// Validate checks that a shell can be found.
func (r *InteractiveRuntime) Validate(ctx *ExecutionContext) error {
	_, err := r.shellPath(ctx)
	return err
}

// Execute starts the shell and waits for it to exit. The result carries the
// shell's exit code.
func (r *InteractiveRuntime) Execute(ctx *ExecutionContext) *Result {
	shell, err := r.shellPath(ctx)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}
	workDir, err := ctx.workDir()
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to determine working directory: %w", err))
	}

	cmd := exec.CommandContext(ctx.context(), shell)
	cmd.Dir = workDir
	cmd.Env = ctx.Env.Slice()

	if stdin, ok := ctx.Stdin.(*os.File); ok && r.isTerminal(int(stdin.Fd())) {
		err := runPTY(cmd, stdin, ctx.Stdout)
		if !errors.Is(err, errPTYUnsupported) {
			return resultFromWait(err)
		}
		cmd = exec.CommandContext(ctx.context(), shell)
		cmd.Dir = workDir
		cmd.Env = ctx.Env.Slice()
	}

	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	return resultFromWait(cmd.Run())
}

// shellPath resolves ctx.Shell, falling back to the platform default.
func (r *InteractiveRuntime) shellPath(ctx *ExecutionContext) (string, error) {
	shell := ctx.Shell
	if shell == "" {
		shell = platform.DefaultShell()
	}
	dir, err := ctx.workDir()
	if err != nil {
		return "", err
	}
	path, err := LookPath(ctx.Env, dir, shell)
	if err != nil {
		return "", fmt.Errorf("shell %q not found: %w", shell, err)
	}
	return path, nil
}
