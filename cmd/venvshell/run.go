// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/venvshell/venvshell/internal/runtime"
	"github.com/venvshell/venvshell/pkg/types"

	"github.com/spf13/cobra"
)

// newRunCommand creates the `venvshell run` command.
func newRunCommand(app *App, flags *rootFlags) *cobra.Command {
	var script string

	runCmd := &cobra.Command{
		Use:   "run [-c script] [--] [command [args...]]",
		Short: "Run one command in the project environment",
		Long: `Make sure the project environment exists and run one command with it
activated.

Without -c the arguments are executed directly. With -c the script runs in
the built-in POSIX shell and the arguments become $1, $2, ...`,
		Example: `  venvshell run -- python -m pytest -x
  venvshell run -c 'python -V && pip list'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			virtual := cmd.Flags().Changed("command")
			var rt runtime.Runtime = runtime.NewNativeRuntime()
			if virtual {
				rt = runtime.NewVirtualRuntime()
			}

			ws, err := app.openWorkspace(ctx, flags)
			if err != nil {
				return err
			}

			execCtx := runtime.NewExecutionContext(ctx, ws.env)
			execCtx.WorkDir = ws.root
			execCtx.Stdin = cmd.InOrStdin()
			execCtx.Stdout = cmd.OutOrStdout()
			execCtx.Stderr = cmd.ErrOrStderr()
			if virtual {
				execCtx.Script = script
				execCtx.PositionalArgs = args
			} else {
				execCtx.Argv = args
			}
			if err := rt.Validate(execCtx); err != nil {
				return &ExitError{Code: types.ExitUsage, Err: err}
			}

			result, err := app.activate(ctx, ws)
			if err != nil {
				return err
			}
			execCtx.Env = result.Env

			return exitError(rt.Execute(execCtx))
		},
	}
	runCmd.Flags().StringVarP(&script, "command", "c", "", "run `script` in the built-in POSIX shell")
	runCmd.Flags().SetInterspersed(false)

	return runCmd
}
