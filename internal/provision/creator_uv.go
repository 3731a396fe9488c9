// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"os/exec"
)

// Compile-time interface check
var _ Creator = (*UVCreator)(nil)

// UVCreator creates environments with `uv venv`. uv resolves (and if needed
// downloads) the requested interpreter, so version specifiers like ">=3.11"
// are accepted.
type UVCreator struct {
	// Binary is the uv executable name or path.
	Binary string
}

// NewUVCreator returns a UVCreator that runs uv from PATH.
func NewUVCreator() *UVCreator {
	return &UVCreator{Binary: "uv"}
}

// Name implements Creator.
func (c *UVCreator) Name() string { return string(CreatorUV) }

// Args returns the uv arguments for req.
func (c *UVCreator) Args(req CreateRequest) []string {
	args := []string{"venv", "--quiet", "--no-config"}
	if req.Interpreter != "" {
		args = append(args, "--python", req.Interpreter.String())
	}
	return append(args, req.Dir)
}

// Create implements Creator.
func (c *UVCreator) Create(ctx context.Context, req CreateRequest) error {
	bin, err := exec.LookPath(c.Binary)
	if err != nil {
		return fmt.Errorf("find uv: %w", err)
	}
	return runCreationCommand(ctx, req, bin, c.Args(req)...)
}
