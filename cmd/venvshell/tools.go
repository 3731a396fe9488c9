// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/venvshell/venvshell/internal/issue"
	"github.com/venvshell/venvshell/internal/runtime"

	"github.com/spf13/cobra"
)

// newToolsCommand creates the `venvshell tools` command.
func newToolsCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Check the tools the project descriptor declares",
		Long: `Activate the project environment and check that every tool declared for
the platform in venvshell.cue resolves on the search path. Missing tools are
reported, never installed.

Use --platform to check the declaration of another platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkTools(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}
}

func checkTools(ctx context.Context, app *App, flags *rootFlags, w io.Writer) error {
	ws, err := app.openWorkspace(ctx, flags)
	if err != nil {
		return err
	}
	if ws.toolsetErr != nil {
		return issue.NewErrorContext().
			WithOperation("check tools").
			WithResource(ws.descriptor.Source).
			WithSuggestion("Add the platform to the descriptor's platforms section").
			WithSuggestion("Use --platform to check another platform's declaration").
			WithIssue(issue.PlatformNotSupportedId).
			Wrap(ws.toolsetErr).
			BuildError()
	}

	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Tools for"), CmdStyle.Render(ws.toolset.Platform.String()))
	if len(ws.toolset.Tools) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none declared)"))
		return nil
	}

	result, err := app.activate(ctx, ws)
	if err != nil {
		return err
	}

	statuses := runtime.CheckTools(result.Env, ws.root, ws.toolset.Tools)
	for _, s := range statuses {
		version := ""
		if s.Tool.Version != "" {
			version = " " + SubtitleStyle.Render(s.Tool.Version)
		}
		if s.Found() {
			fmt.Fprintf(w, "  %s %s%s %s\n", checkMark, s.Tool.Name, version, SubtitleStyle.Render(s.Path))
		} else {
			fmt.Fprintf(w, "  %s %s%s %s\n", crossMark, s.Tool.Name, version, ErrorStyle.Render("not found"))
		}
	}

	missing := runtime.Missing(statuses)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, tool := range missing {
		names[i] = tool.String()
	}
	return issue.NewErrorContext().
		WithOperation("check tools").
		WithResource(ws.toolset.Platform.String()).
		WithSuggestion("Install the missing tools, e.g. 'uv pip install " + strings.Join(names, " ") + "'").
		WithIssue(issue.ToolsMissingId).
		Wrap(fmt.Errorf("%d of %d tools missing: %s", len(missing), len(statuses), strings.Join(names, ", "))).
		BuildError()
}
