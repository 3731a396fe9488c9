// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	CreationFailedId Id = iota + 1
	ActivationFailedId
	ConfigLoadFailedId
	DescriptorParseErrorId
	PlatformNotSupportedId
	ShellNotFoundId
	LockFailedId
	ToolsMissingId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation link shown under an issue.
	HttpLink string

	// Issue is a catalog entry: a Markdown guide explaining one failure mode.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the issue's catalog ID.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the issue's documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue with the glamour style at stylePath
// ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	creationFailedIssue = &Issue{
		id: CreationFailedId,
		mdMsg: `
# Could not create the Python environment

The environment directory did not exist, so venvshell tried to create it and
the creation tool failed. The session was not activated.

## Things you can try:
- Make sure the project directory is writable and the disk is not full
- Check that the pinned interpreter exists, e.g. for ` + "`3.14`" + `:
~~~
$ uv python find 3.14
$ python3.14 --version
~~~
- Pick a different creator in your config (` + "`creator: \"uv\"`" + ` or ` + "`\"venv\"`" + `)
- Re-run with ` + "`--verbose`" + ` to see the creator's output`,
		docLinks: []HttpLink{"https://docs.astral.sh/uv/pip/environments/"},
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# The environment directory does not look like a Python environment

A directory exists at the environment path, but it has neither a venvshell
stamp nor the layout of a virtual environment (` + "`pyvenv.cfg`" + ` and a
` + "`bin`" + ` directory). It may be corrupted or belong to something else.

## Things you can try:
- Inspect the directory, then remove it so it is recreated on the next start:
~~~
$ venvshell status
$ rm -rf .venv
~~~
- Set ` + "`strict_layout: false`" + ` to activate any existing directory as-is`,
		docLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration

## Things you can try:
- Check the file for CUE syntax errors
- Show where venvshell looks for its configuration:
~~~
$ venvshell config path
~~~
- Recreate a default configuration file:
~~~
$ venvshell config init
~~~`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# The project descriptor is invalid

` + "`venvshell.cue`" + ` must follow this shape:
~~~cue
python: "3.14"
platforms: {
	"x86_64-linux": {
		tools: [{name: "ruff", version: "0.6.9"}]
	}
}
~~~

## Things you can try:
- Fix the field named in the error message
- Validate the file with ` + "`cue vet venvshell.cue`",
	}

	platformNotSupportedIssue = &Issue{
		id: PlatformNotSupportedId,
		mdMsg: `
# This platform is not declared by the project

The project descriptor lists toolsets per platform and the current platform
is not among them.

## Things you can try:
- Add an entry for your platform under ` + "`platforms`" + `
- Use ` + "`--platform`" + ` to inspect another platform's toolset`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found

## Things you can try:
- Set the ` + "`SHELL`" + ` environment variable to an installed shell
- Pass the shell explicitly: ` + "`venvshell enter --shell /bin/bash`",
	}

	lockFailedIssue = &Issue{
		id: LockFailedId,
		mdMsg: `
# Could not lock the environment for creation

venvshell serializes environment creation between terminals with a lock file
in ` + "`$XDG_RUNTIME_DIR`" + ` (or the temporary directory).

## Things you can try:
- Check that ` + "`$XDG_RUNTIME_DIR`" + ` exists and is writable
- Unset ` + "`XDG_RUNTIME_DIR`" + ` to fall back to the temporary directory`,
	}

	toolsMissingIssue = &Issue{
		id: ToolsMissingId,
		mdMsg: `
# Some declared tools are not available

venvshell does not install tools; it only checks that the tools declared
for this platform resolve on the activated ` + "`PATH`" + `.

## Things you can try:
- Install the missing tools with your package manager
- Install Python tools into the environment, e.g. ` + "`uv pip install ruff`",
	}

	issues = map[Id]*Issue{
		creationFailedIssue.Id():       creationFailedIssue,
		activationFailedIssue.Id():     activationFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		descriptorParseErrorIssue.Id(): descriptorParseErrorIssue,
		platformNotSupportedIssue.Id(): platformNotSupportedIssue,
		shellNotFoundIssue.Id():        shellNotFoundIssue,
		lockFailedIssue.Id():           lockFailedIssue,
		toolsMissingIssue.Id():         toolsMissingIssue,
	}
)

// Values returns all catalog issues ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the issue with the given Id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
