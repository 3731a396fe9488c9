// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"os/exec"
)

// Compile-time interface check
var _ Creator = (*AutoCreator)(nil)

// AutoCreator delegates to uv when it is installed and to venv otherwise.
type AutoCreator struct {
	uv       *UVCreator
	venv     *VenvCreator
	lookPath func(string) (string, error)
}

// NewAutoCreator returns an AutoCreator using PATH lookups.
func NewAutoCreator() *AutoCreator {
	return &AutoCreator{
		uv:       NewUVCreator(),
		venv:     NewVenvCreator(),
		lookPath: exec.LookPath,
	}
}

// Resolve returns the creator that would be used right now.
func (c *AutoCreator) Resolve() Creator {
	if _, err := c.lookPath(c.uv.Binary); err == nil {
		return c.uv
	}
	return c.venv
}

// Name implements Creator and reports the resolved creator.
func (c *AutoCreator) Name() string { return c.Resolve().Name() }

// Create implements Creator.
func (c *AutoCreator) Create(ctx context.Context, req CreateRequest) error {
	return c.Resolve().Create(ctx, req)
}
