// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/venvshell/venvshell/internal/session"
)

type (
	// EnvironmentCache maps a marker path to the environment stored there. It
	// has a single value per key and no eviction: once an environment exists it
	// is reused by every later session.
	EnvironmentCache struct {
		creator Creator
		config  *Config

		// mu serializes creation inside this process where flock is unavailable.
		mu sync.Mutex
	}

	// Handle is a usable environment.
	Handle struct {
		// Dir is the absolute environment directory.
		Dir string
		// BinDir is the executable directory.
		BinDir string
		// Prompt is the prompt recorded by the creation tool, if any.
		Prompt string
		// Stamp is the creation record; nil for environments made by other tools
		// or accepted in lax mode.
		Stamp *Stamp
	}
)

// NewEnvironmentCache creates a cache that creates missing environments with creator.
func NewEnvironmentCache(creator Creator, cfg *Config) *EnvironmentCache {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &EnvironmentCache{
		creator: creator,
		config:  cfg,
	}
}

// Config returns the cache configuration.
func (c *EnvironmentCache) Config() *Config {
	return c.config
}

// Creator returns the creation primitive.
func (c *EnvironmentCache) Creator() Creator {
	return c.creator
}

// Target returns the activation target for h.
func (h Handle) Target() session.Target {
	return session.Target{Dir: h.Dir, BinDir: h.BinDir, Prompt: h.Prompt}
}

// GetOrCreate returns the environment at the absolute path dir, creating it
// with spec when it does not exist. The second result reports whether this
// call created it.
//
// Creation is attempted once. On failure no directory is left behind, so the
// next call starts from scratch.
func (c *EnvironmentCache) GetOrCreate(ctx context.Context, env session.Environ, dir string, spec InterpreterSpec) (Handle, bool, error) {
	return c.GetOrCreateFunc(ctx, env, dir, FixedSpec(spec))
}

// GetOrCreateFunc is GetOrCreate with the interpreter spec supplied by
// resolve, which is only called when the environment has to be created.
//
// Only a stamped environment is accepted without the creation lock. Anything
// else may be a directory another session is still filling in, so it is
// inspected again once that session has released the lock.
func (c *EnvironmentCache) GetOrCreateFunc(ctx context.Context, env session.Environ, dir string, resolve SpecFunc) (Handle, bool, error) {
	logger := c.config.Logger

	layout, err := Inspect(dir)
	if err != nil {
		return Handle{}, false, &CreationError{Path: dir, Cause: err}
	}
	if layout.Exists && (!layout.IsDir || layout.Complete()) {
		logger.Debug("environment exists", "path", dir)
		h, err := c.accept(layout)
		return h, false, err
	}

	unlock, err := c.lock(dir)
	if err != nil {
		return Handle{}, false, &CreationError{Path: dir, Cause: err}
	}
	defer unlock()

	// Another session may have finished creating it while we waited.
	layout, err = Inspect(dir)
	if err != nil {
		return Handle{}, false, &CreationError{Path: dir, Cause: err}
	}
	if layout.Exists {
		logger.Debug("environment exists after waiting for the creation lock", "path", dir)
		h, err := c.accept(layout)
		return h, false, err
	}

	spec, err := resolve()
	if err != nil {
		return Handle{}, false, &CreationError{Path: dir, Cause: err}
	}
	if valid, errs := spec.IsValid(); !valid {
		return Handle{}, false, &CreationError{Path: dir, Interpreter: spec, Cause: errors.Join(errs...)}
	}

	h, err := c.create(ctx, env, dir, spec)
	if err != nil {
		return Handle{}, false, err
	}
	return h, true, nil
}

// accept validates an existing marker.
func (c *EnvironmentCache) accept(layout Layout) (Handle, error) {
	if layout.DanglingLink {
		return Handle{}, &CreationError{Path: layout.Path, Cause: ErrDanglingLink}
	}
	if !layout.IsDir {
		return Handle{}, &CreationError{Path: layout.Path, Cause: ErrNotDirectory}
	}

	h := Handle{
		Dir:    layout.Path,
		BinDir: layout.BinDir,
		Prompt: layout.Prompt,
		Stamp:  layout.Stamp,
	}
	if !c.config.StrictLayout {
		return h, nil
	}

	switch {
	case layout.Stamp != nil && layout.HasBinDir:
		return h, nil
	case layout.StampErr != nil:
		return Handle{}, &ActivationError{Path: layout.Path, Reason: "unreadable stamp", Cause: layout.StampErr}
	case layout.LooksLikeVenv():
		c.config.Logger.Debug("accepting environment created by another tool", "path", layout.Path)
		return h, nil
	case !layout.HasBinDir:
		return Handle{}, &ActivationError{Path: layout.Path, Reason: fmt.Sprintf("missing %s directory", layout.BinDir)}
	default:
		return Handle{}, &ActivationError{Path: layout.Path, Reason: "missing " + pyvenvCfgName}
	}
}

// create runs the creator and stamps the result. The caller holds the lock.
func (c *EnvironmentCache) create(ctx context.Context, env session.Environ, dir string, spec InterpreterSpec) (Handle, error) {
	logger := c.config.Logger
	name := c.creator.Name()
	fail := func(cause error) (Handle, error) {
		c.discard(dir)
		return Handle{}, &CreationError{
			Path:        dir,
			Interpreter: spec,
			Creator:     name,
			Output:      creatorOutput(cause),
			Cause:       cause,
		}
	}

	logger.Info("creating environment", "path", dir, "python", spec, "creator", name)
	err := c.creator.Create(ctx, CreateRequest{
		Dir:         dir,
		Interpreter: spec,
		Env:         env,
		Progress:    c.config.Progress,
	})
	if err != nil {
		return fail(err)
	}

	layout, err := Inspect(dir)
	if err != nil {
		return fail(err)
	}
	if !layout.Exists || !layout.IsDir {
		return fail(ErrNotMaterialized)
	}

	stamp := Stamp{
		Version:     StampVersion,
		Interpreter: spec,
		Creator:     name,
		CreatedAt:   c.config.Now().UTC(),
	}
	if err := WriteStamp(dir, stamp); err != nil {
		return fail(err)
	}

	logger.Info("environment created", "path", dir)
	return Handle{
		Dir:    dir,
		BinDir: layout.BinDir,
		Prompt: layout.Prompt,
		Stamp:  &stamp,
	}, nil
}

// discard removes a partially created marker.
func (c *EnvironmentCache) discard(dir string) {
	if _, err := os.Lstat(dir); err != nil {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		c.config.Logger.Warn("could not remove partially created environment", "path", dir, "error", err)
	}
}

// lock serializes creation of dir across processes, falling back to an
// in-process mutex where flock is unavailable.
func (c *EnvironmentCache) lock(dir string) (func(), error) {
	l, err := acquireCreateLock(lockFilePath(c.config.LockDir, dir))
	if err == nil {
		return l.Release, nil
	}
	if !errors.Is(err, errFlockUnavailable) {
		return nil, err
	}
	c.mu.Lock()
	return c.mu.Unlock, nil
}
