// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/venvshell/venvshell/internal/session"
)

type (
	// Provisioner bootstraps the session's Python environment.
	Provisioner struct {
		cache *EnvironmentCache
	}

	// ActivationResult describes an activated environment.
	ActivationResult struct {
		// Handle is the environment that was activated.
		Handle Handle
		// Created reports whether this call created the environment.
		Created bool
		// Interpreter is the spec the environment was created with; empty when
		// it already existed.
		Interpreter InterpreterSpec
		// Env is the session environment after activation.
		Env session.Environ
		// Delta is what activation changed, in application order.
		Delta session.Delta
	}
)

// NewProvisioner creates a Provisioner backed by cache.
func NewProvisioner(cache *EnvironmentCache) *Provisioner {
	return &Provisioner{cache: cache}
}

// Cache returns the underlying environment cache.
func (p *Provisioner) Cache() *EnvironmentCache {
	return p.cache
}

// EnsureActiveEnvironment makes sure an environment exists at markerPath and
// returns env with it activated.
//
// markerPath is resolved against the working directory when relative. The
// existence check precedes any creation and creation precedes activation; on
// error env is left as it was and no activation is reported. spec is only
// used when the environment has to be created.
func (p *Provisioner) EnsureActiveEnvironment(ctx context.Context, env session.Environ, markerPath string, spec InterpreterSpec) (*ActivationResult, error) {
	return p.EnsureActiveEnvironmentFunc(ctx, env, markerPath, FixedSpec(spec))
}

// EnsureActiveEnvironmentFunc is EnsureActiveEnvironment with the spec
// resolved by resolve, which is not called for an existing environment.
func (p *Provisioner) EnsureActiveEnvironmentFunc(ctx context.Context, env session.Environ, markerPath string, resolve SpecFunc) (*ActivationResult, error) {
	dir, err := filepath.Abs(markerPath)
	if err != nil {
		return nil, &CreationError{Path: markerPath, Cause: fmt.Errorf("resolve marker path: %w", err)}
	}

	handle, created, err := p.cache.GetOrCreateFunc(ctx, env, dir, resolve)
	if err != nil {
		return nil, err
	}

	activated, delta := session.Activate(env, handle.Target())
	p.cache.config.Logger.Debug("environment activated", "path", handle.Dir, "created", created)

	result := &ActivationResult{
		Handle:  handle,
		Created: created,
		Env:     activated,
		Delta:   delta,
	}
	if created && handle.Stamp != nil {
		result.Interpreter = handle.Stamp.Interpreter
	}
	return result, nil
}

// Status inspects the marker at markerPath without creating or activating anything.
func (p *Provisioner) Status(markerPath string) (Layout, error) {
	dir, err := filepath.Abs(markerPath)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve marker path: %w", err)
	}
	return Inspect(dir)
}

// Validate reports whether the existing marker described by layout would be
// activated as is. It returns nil for a usable environment, a *CreationError
// when the marker is not a directory, and an *ActivationError when strict
// layout checks reject it.
func (p *Provisioner) Validate(layout Layout) error {
	if !layout.Exists {
		return nil
	}
	_, err := p.cache.accept(layout)
	return err
}
