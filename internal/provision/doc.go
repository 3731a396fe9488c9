// SPDX-License-Identifier: MPL-2.0

// Package provision makes sure an isolated Python environment exists for a
// working directory and activates it for the session.
//
// The environment directory (the marker) is the only persisted state. The
// first session start that finds it missing creates it with a Creator; every
// later start only activates it:
//
//	cache := provision.NewEnvironmentCache(provision.NewUVCreator(), provision.DefaultConfig())
//	p := provision.NewProvisioner(cache)
//	result, err := p.EnsureActiveEnvironment(ctx, session.FromOS(), ".venv", "3.14")
//	// result.Env is the session environment with .venv/bin first on PATH
//
// Creation is serialized across processes with an advisory lock, so two
// terminals opened at once in a fresh checkout create the environment once.
// After a successful creation a stamp file is written inside the marker; in
// strict mode an existing directory without the stamp is only accepted when it
// has the layout of a virtual environment.
package provision
