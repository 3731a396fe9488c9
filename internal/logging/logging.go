// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the CLI and the
// provisioner. Records are written with log/slog and formatted by
// charmbracelet/log.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix tags every record so venvshell output is recognizable in shell startup noise.
const Prefix = "venvshell"

// New returns a logger writing to w. Verbose lowers the level from warn to debug.
//
// Logs must never go to stdout: `venvshell hook` output is evaluated by the shell.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
