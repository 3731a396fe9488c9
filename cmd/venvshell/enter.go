// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/venvshell/venvshell/internal/issue"
	"github.com/venvshell/venvshell/internal/runtime"

	"github.com/spf13/cobra"
)

// newEnterCommand creates the `venvshell enter` command.
func newEnterCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "enter",
		Short: "Start a subshell with the project environment active",
		Long: `Make sure the project environment exists and start $SHELL (or the
platform default shell) with it activated. When standard input is a terminal
the shell runs on a pseudo-terminal.

The exit code is the subshell's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := app.openWorkspace(ctx, flags)
			if err != nil {
				return err
			}
			result, err := app.activate(ctx, ws)
			if err != nil {
				return err
			}

			execCtx := runtime.NewExecutionContext(ctx, result.Env)
			execCtx.WorkDir = ws.root
			execCtx.Shell = ws.session.Shell
			execCtx.Stdin = cmd.InOrStdin()
			execCtx.Stdout = cmd.OutOrStdout()
			execCtx.Stderr = cmd.ErrOrStderr()

			res := runtime.NewInteractiveRuntime().Execute(execCtx)
			if res.Error != nil {
				return &ExitError{
					Code: res.ExitCode,
					Err: issue.NewErrorContext().
						WithOperation("start shell").
						WithResource(execCtx.Shell).
						WithSuggestion("Set SHELL to an installed shell").
						WithIssue(issue.ShellNotFoundId).
						Wrap(res.Error).
						BuildError(),
				}
			}
			return exitError(res)
		},
	}
}

// exitError converts a runtime result to the error returned from RunE.
func exitError(res *runtime.Result) error {
	if res.Error != nil {
		return &ExitError{Code: res.ExitCode, Err: res.Error}
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
