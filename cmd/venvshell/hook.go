// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/venvshell/venvshell/internal/issue"
	"github.com/venvshell/venvshell/internal/shellhook"

	"github.com/spf13/cobra"
)

// newHookCommand creates the `venvshell hook` command.
func newHookCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "hook [bash|zsh|sh|fish]",
		Short:     "Print shell code that activates the project environment",
		ValidArgs: shellNames(),
		Args:      cobra.MaximumNArgs(1),
		Long: `Make sure the project environment exists, creating it on first use, and
print shell code that activates it in the calling shell.

Add one of these to your shell startup file:

  eval "$(venvshell hook bash)"     # ~/.bashrc
  eval "$(venvshell hook zsh)"      # ~/.zshrc
  venvshell hook fish | source      # ~/.config/fish/config.fish

When the environment cannot be created nothing is printed, so the shell
starts with its search path unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runHook(cmd.Context(), app, flags, name, cmd.OutOrStdout())
		},
	}
}

// runHook writes the activation code to out only after provisioning succeeded.
func runHook(ctx context.Context, app *App, flags *rootFlags, shellName string, out io.Writer) error {
	ws, err := app.openWorkspace(ctx, flags)
	if err != nil {
		return err
	}

	if shellName == "" {
		shellName = ws.session.Shell
	}
	sh, err := shellhook.Parse(shellName)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("generate shell hook").
			WithResource(shellName).
			WithSuggestion(fmt.Sprintf("Pass the shell explicitly, one of: %v", shellNames())).
			WithIssue(issue.ShellNotFoundId).
			Wrap(err).
			BuildError()
	}

	result, err := app.activate(ctx, ws)
	if err != nil {
		return err
	}

	code, err := shellhook.Render(sh, result.Delta)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, code)
	return err
}

func shellNames() []string {
	shells := shellhook.Shells()
	names := make([]string, 0, len(shells))
	for _, s := range shells {
		names = append(names, s.String())
	}
	return names
}
