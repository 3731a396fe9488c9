// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for venvshell.
//
// This package implements the Cobra command hierarchy: the root command,
// the activation surface (hook, enter, run), inspection (status, tools), and
// user configuration management.
package cmd
