// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/venvshell/venvshell/internal/provision"
	"github.com/venvshell/venvshell/internal/session"

	"github.com/spf13/cobra"
)

// Environment states reported by `venvshell status`.
const (
	stateAbsent       = "absent"
	stateValid        = "valid"
	stateInvalid      = "invalid layout"
	stateNotDirectory = "not a directory"
)

// newStatusCommand creates the `venvshell status` command.
func newStatusCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the project environment state",
		Long: `Show where the project environment is, whether it exists and would be
activated as is, how it was created, and which interpreter a new environment
would be created with. Nothing is created or activated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}
}

func showStatus(ctx context.Context, app *App, flags *rootFlags, w io.Writer) error {
	ws, err := app.openWorkspace(ctx, flags)
	if err != nil {
		return err
	}
	p, err := ws.provisioner(io.Discard)
	if err != nil {
		return err
	}
	layout, err := p.Status(ws.marker)
	if err != nil {
		return err
	}

	state, reason := environmentState(layout, p.Validate(layout))

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	line := func(key, value string) {
		fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render(key), value)
	}
	none := SubtitleStyle.Render("(none)")

	fmt.Fprintln(w, TitleStyle.Render("Environment"))
	line("marker", valueStyle.Render(ws.marker))
	switch state {
	case stateValid:
		line("state", checkMark+" "+valueStyle.Render(state))
	case stateAbsent:
		line("state", warnMark+" "+WarningStyle.Render(state)+SubtitleStyle.Render(" (created on next activation)"))
	default:
		line("state", crossMark+" "+ErrorStyle.Render(state))
		line("reason", reason)
	}
	if layout.Stamp != nil {
		line("created", layout.Stamp.CreatedAt.Local().Format(time.RFC3339))
		line("creator", layout.Stamp.Creator)
		python := layout.Stamp.Interpreter.String()
		if python == "" {
			python = "(creator default)"
		}
		line("created with", python)
	} else if layout.Exists && layout.IsDir {
		line("created", SubtitleStyle.Render("(not by venvshell)"))
	}
	if layout.Prompt != "" {
		line("prompt", layout.Prompt)
	}
	active := "no"
	if session.IsActive(ws.env, session.Target{Dir: layout.Path, BinDir: layout.BinDir}) {
		active = "yes"
	}
	line("active", active)

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Project"))
	line("root", ws.root)
	if ws.descriptor.Exists() {
		line("descriptor", ws.descriptor.Source)
	} else {
		line("descriptor", none)
	}
	platformValue := ws.toolset.Platform.String()
	if ws.toolsetErr != nil {
		platformValue += " " + WarningStyle.Render("(not declared by the descriptor)")
	}
	line("platform", platformValue)
	switch {
	case ws.interpreterErr != nil:
		line("python", crossMark+" "+ErrorStyle.Render(ws.interpreterErr.Error()))
	case ws.interpreter.Spec != "":
		line("python", fmt.Sprintf("%s %s", valueStyle.Render(ws.interpreter.Spec.String()), SubtitleStyle.Render("("+string(ws.interpreter.Source)+")")))
	default:
		line("python", SubtitleStyle.Render("(creator default)"))
	}
	line("creator", p.Cache().Creator().Name())
	line("strict layout", fmt.Sprintf("%v", ws.cfg.StrictLayout))
	if ws.configPath != "" {
		line("config", ws.configPath)
	} else {
		line("config", SubtitleStyle.Render("(using defaults)"))
	}

	return nil
}

// environmentState classifies a marker for display. err is the result of
// validating the layout.
func environmentState(layout provision.Layout, err error) (state, reason string) {
	switch {
	case !layout.Exists:
		return stateAbsent, ""
	case layout.DanglingLink:
		return stateNotDirectory, provision.ErrDanglingLink.Error()
	case !layout.IsDir:
		return stateNotDirectory, provision.ErrNotDirectory.Error()
	case err == nil:
		return stateValid, ""
	}
	var activationErr *provision.ActivationError
	if errors.As(err, &activationErr) {
		reason = activationErr.Reason
		if activationErr.Cause != nil {
			reason += ": " + activationErr.Cause.Error()
		}
		return stateInvalid, reason
	}
	return stateInvalid, err.Error()
}
