// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/venvshell/venvshell/pkg/types"
)

// ExitError carries the process exit code out of a command handler. `run` and
// `enter` return the child's status through it, and usage mistakes such as
// `run` without a command use types.ExitUsage. exitCodeFor clamps Code; a nil
// Err means the failure was already reported and nothing more is printed.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exited with code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
