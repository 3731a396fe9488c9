// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/venvshell/venvshell/internal/config"
	"github.com/venvshell/venvshell/internal/descriptor"
	"github.com/venvshell/venvshell/internal/issue"
	"github.com/venvshell/venvshell/internal/logging"
	"github.com/venvshell/venvshell/internal/provision"
	"github.com/venvshell/venvshell/internal/session"
	"github.com/venvshell/venvshell/pkg/platform"
)

// sourceFlag marks an interpreter spec given with --python.
const sourceFlag descriptor.Source = "--python flag"

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and build
	// their workspace through it.
	App struct {
		Config ConfigProvider

		environ session.Environ
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer

		// Set once the configuration is loaded; used when printing errors.
		verbose      bool
		glamourStyle string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Environ is the session environment; nil means the process environment.
		Environ []string
		// Args replaces os.Args[1:] when non-empty.
		Args   []string
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// workspace is everything a command needs once configuration, the project
	// descriptor, and the session environment have been read.
	workspace struct {
		cfg        *config.Config
		configPath string
		env        session.Environ
		session    session.Env
		root       string
		descriptor *descriptor.Descriptor
		toolset    descriptor.Toolset
		// toolsetErr is set when the descriptor does not support the platform.
		toolsetErr  error
		interpreter descriptor.Resolution
		// interpreterErr is reported only if an environment has to be created.
		interpreterErr error
		marker         string
		logger      *slog.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	environ := session.FromOS()
	if deps.Environ != nil {
		environ = session.FromSlice(deps.Environ)
	}

	return &App{
		Config:       deps.Config,
		environ:      environ,
		stdin:        deps.Stdin,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
		glamourStyle: config.ColorSchemeAuto.GlamourStyle(),
	}, nil
}

// openWorkspace loads configuration and the project descriptor and resolves
// the marker path and interpreter spec. Flags win over the descriptor, and the
// descriptor wins over the user configuration.
func (a *App) openWorkspace(ctx context.Context, flags *rootFlags) (*workspace, error) {
	a.verbose = flags.verbose

	cfg, cfgPath, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}
	a.verbose = flags.verbose || cfg.UI.Verbose
	a.glamourStyle = cfg.UI.ColorScheme.GlamourStyle()

	ws := &workspace{
		cfg:        cfg,
		configPath: cfgPath,
		env:        a.environ.Clone(),
		logger:     logging.New(a.stderr, a.verbose),
	}

	ws.session, err = session.ParseEnv(ws.env)
	if err != nil {
		return nil, err
	}
	ws.root, err = ws.session.RootDir()
	if err != nil {
		return nil, err
	}

	ws.descriptor, err = descriptor.Load(ws.root, cfg.Descriptor)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load project descriptor").
			WithResource(cfg.Descriptor).
			WithSuggestion("Check the CUE syntax and field names of the descriptor").
			WithIssue(issue.DescriptorParseErrorId).
			Wrap(err).
			BuildError()
	}

	id := platform.Current()
	if flags.platform != "" {
		id = platform.ID(flags.platform)
		if valid, errs := id.IsValid(); !valid {
			return nil, errors.Join(errs...)
		}
	}
	ws.toolset, ws.toolsetErr = ws.descriptor.Toolset(id)
	if ws.toolsetErr != nil {
		if !errors.Is(ws.toolsetErr, descriptor.ErrPlatformNotSupported) {
			return nil, ws.toolsetErr
		}
		ws.logger.Warn("descriptor does not declare this platform; continuing without a toolset", "platform", id)
		ws.toolset = descriptor.Toolset{Platform: id}
	}

	if flags.python != "" {
		ws.interpreter = descriptor.Resolution{Spec: provision.InterpreterSpec(flags.python), Source: sourceFlag}
	} else {
		ws.interpreter, ws.interpreterErr = descriptor.ResolveInterpreter(ws.root, ws.toolset, ws.descriptor, provision.InterpreterSpec(cfg.Python))
		if ws.interpreterErr != nil {
			ws.logger.Debug("interpreter spec unresolved", "error", ws.interpreterErr)
		}
	}

	marker := cfg.Marker
	if ws.descriptor.Marker != "" {
		marker = ws.descriptor.Marker
	}
	if flags.marker != "" {
		marker = flags.marker
	}
	ws.marker, err = ws.session.Resolve(marker)
	if err != nil {
		return nil, err
	}

	ws.logger.Debug("workspace",
		"root", ws.root,
		"config", cfgPath,
		"descriptor", ws.descriptor.Source,
		"platform", id,
		"python", ws.interpreter.Spec,
		"python_source", ws.interpreter.Source,
		"marker", ws.marker,
	)
	return ws, nil
}

// provisioner builds the provisioner for ws. Creator progress goes to progress.
func (ws *workspace) provisioner(progress io.Writer) (*provision.Provisioner, error) {
	creator, err := provision.NewCreator(provision.CreatorKind(ws.cfg.Creator))
	if err != nil {
		return nil, err
	}
	cache := provision.NewEnvironmentCache(creator, provision.NewConfig(
		provision.WithStrictLayout(ws.cfg.StrictLayout),
		provision.WithLockDir(ws.lockDir()),
		provision.WithProgress(progress),
		provision.WithLogger(ws.logger),
	))
	return provision.NewProvisioner(cache), nil
}

// lockDir returns the session runtime directory when it is usable; an empty
// result makes the provisioner use the OS temp dir.
func (ws *workspace) lockDir() string {
	dir := ws.session.RuntimeDir
	if dir == "" {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// resolveInterpreter is the spec lookup handed to the provisioner.
func (ws *workspace) resolveInterpreter() (provision.InterpreterSpec, error) {
	return ws.interpreter.Spec, ws.interpreterErr
}

// activate provisions the environment and returns the activated session.
// Provisioning errors are turned into actionable errors.
func (a *App) activate(ctx context.Context, ws *workspace) (*provision.ActivationResult, error) {
	p, err := ws.provisioner(a.stderr)
	if err != nil {
		return nil, err
	}

	result, err := p.EnsureActiveEnvironmentFunc(ctx, ws.env, ws.marker, ws.resolveInterpreter)
	if err != nil {
		return nil, provisionError(err, ws)
	}
	if result.Created {
		ws.logger.Info("created environment", "path", result.Handle.Dir, "python", ws.interpreter.Spec)
	}
	return result, nil
}

// provisionError maps provisioner errors to actionable errors with the
// matching issue.
func provisionError(err error, ws *workspace) error {
	var creationErr *provision.CreationError
	if errors.As(err, &creationErr) {
		ec := issue.NewErrorContext().
			WithOperation("create Python environment").
			WithResource(creationErr.Path).
			WithIssue(issue.CreationFailedId)
		if out := strings.TrimSpace(creationErr.Output); out != "" {
			ec.WithSuggestion("Creator output: " + out)
		}
		if ws.interpreterErr != nil && errors.Is(err, ws.interpreterErr) {
			ec.WithSuggestion("Fix or remove the interpreter pin in .python-version or pyproject.toml, or pass --python")
		}
		if errors.Is(err, provision.ErrUnresolvableSpec) {
			ec.WithSuggestion("Install uv, or pin a plain version such as 3.12 with --python")
		}
		if errors.Is(err, provision.ErrNotDirectory) || errors.Is(err, provision.ErrDanglingLink) {
			ec.WithSuggestion("Remove the file at the marker path or choose another --marker")
		}
		if ws.interpreter.Spec != "" {
			ec.WithSuggestion(fmt.Sprintf("Check that Python %s is installed (from %s)", ws.interpreter.Spec, ws.interpreter.Source))
		}
		ec.WithSuggestion("Set 'creator' in the config to choose between uv and venv")
		return ec.Wrap(err).BuildError()
	}

	var activationErr *provision.ActivationError
	if errors.As(err, &activationErr) {
		return issue.NewErrorContext().
			WithOperation("activate Python environment").
			WithResource(activationErr.Path).
			WithSuggestion("Remove the directory so venvshell can recreate it").
			WithSuggestion("Set 'strict_layout: false' to accept any existing directory").
			WithIssue(issue.ActivationFailedId).
			Wrap(err).
			BuildError()
	}

	return err
}
