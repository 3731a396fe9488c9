// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/venvshell/venvshell/internal/issue"
	"github.com/venvshell/venvshell/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configPath string
	marker     string
	python     string
	platform   string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "venvshell",
		Short: "Bootstrap and activate a project's Python environment",
		Long: TitleStyle.Render("venvshell") + SubtitleStyle.Render(" - Bootstrap and activate a project's Python environment") + `

venvshell makes sure the project's virtual environment exists, creating it
with uv or the interpreter's venv module on first use, and activates it for
the current shell session.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Optionally pin an interpreter in venvshell.cue or .python-version
  2. Add to your shell startup: eval "$(venvshell hook bash)"
  3. Open a new shell in the project directory

` + SubtitleStyle.Render("Examples:") + `
  venvshell hook zsh          Print activation code for zsh
  venvshell enter             Start a subshell with the environment active
  venvshell run -- pytest     Run one command in the environment
  venvshell status            Show the environment state
  venvshell tools             Check the declared tools`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/venvshell/config.cue)")
	pf.StringVar(&flags.marker, "marker", "", "environment directory, relative to the project root")
	pf.StringVar(&flags.python, "python", "", "interpreter spec used when creating the environment")
	pf.StringVar(&flags.platform, "platform", "", "platform identifier, e.g. x86_64-linux (default is the running platform)")

	rootCmd.AddCommand(
		newHookCommand(app, flags),
		newEnterCommand(app, flags),
		newRunCommand(app, flags),
		newStatusCommand(app, flags),
		newToolsCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process. This is called by main.main().
func Execute() {
	os.Exit(int(run(context.Background(), Dependencies{})))
}

// run executes the command tree and maps the outcome to an exit code.
func run(ctx context.Context, deps Dependencies) types.ExitCode {
	app, err := NewApp(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return types.ExitFailure
	}

	rootCmd := NewRootCommand(app)
	if len(deps.Args) > 0 {
		rootCmd.SetArgs(deps.Args)
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err = fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.printError(w, err)
		}),
	)
	return exitCodeFor(err)
}

// exitCodeFor maps a command error to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code.Clamp()
	}
	return types.ExitFailure
}

// printError writes err for the user. Errors that only carry an exit code
// print nothing; the command already reported what happened. In verbose mode
// the catalog issue linked to an actionable error is rendered too.
func (a *App) printError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var ae *issue.ActionableError
	if !a.verbose || !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}
	if iss := issue.Get(ae.IssueID); iss != nil {
		if rendered, renderErr := iss.Render(a.glamourStyle); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
