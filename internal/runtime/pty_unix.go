// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

var errPTYUnsupported = errors.New("pty not supported on this platform")

// runPTY runs cmd on a new pseudo-terminal, with stdin in raw mode and window
// size changes forwarded, and returns the error of cmd.Wait.
func runPTY(cmd *exec.Cmd, stdin *os.File, stdout io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			if err := pty.InheritSize(stdin, ptmx); err != nil {
				slog.Debug("resize pty failed", "error", err)
			}
		}
	}()
	winch <- syscall.SIGWINCH
	defer func() {
		signal.Stop(winch)
		close(winch)
	}()

	fd := int(stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		slog.Debug("raw mode unavailable", "error", err)
	} else {
		defer func() { _ = term.Restore(fd, oldState) }()
	}

	go func() { _, _ = io.Copy(ptmx, stdin) }()
	// Reading the master fails with EIO once the shell exits.
	_, _ = io.Copy(stdout, ptmx)

	return cmd.Wait()
}
