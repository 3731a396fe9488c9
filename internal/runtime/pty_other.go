// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

var errPTYUnsupported = errors.New("pty not supported on this platform")

// runPTY is unavailable here; the shell inherits the standard streams instead.
func runPTY(*exec.Cmd, *os.File, io.Writer) error {
	return errPTYUnsupported
}
