// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/venvshell/venvshell/pkg/types"
)

// Compile-time interface check
var _ Runtime = (*VirtualRuntime)(nil)

// VirtualRuntime interprets a POSIX shell snippet with mvdan/sh, so `run -c`
// works the same on hosts without a POSIX shell.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return RuntimeTypeVirtual.String()
}

// Validate checks that the script is present and parses.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Script) == "" {
		return ErrNothingToRun
	}
	if _, err := parseScript(ctx.Script); err != nil {
		return err
	}
	return nil
}

// Execute runs ctx.Script in-process.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	if strings.TrimSpace(ctx.Script) == "" {
		return NewErrorResult(types.ExitFailure, ErrNothingToRun)
	}
	prog, err := parseScript(ctx.Script)
	if err != nil {
		return NewErrorResult(types.ExitUsage, err)
	}

	workDir, err := ctx.workDir()
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to determine working directory: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Dir(workDir),
		interp.Env(expand.ListEnviron(ctx.Env.Slice()...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
	}

	// Prepend "--" to signal end of options; without this, args like "-v"
	// are interpreted as shell options by interp.Params()
	if len(ctx.PositionalArgs) > 0 {
		params := append([]string{"--"}, ctx.PositionalArgs...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err))
	}

	err = runner.Run(ctx.context(), prog)
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("script execution failed: %w", err))
	}
	return NewSuccessResult()
}

func parseScript(script string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}
