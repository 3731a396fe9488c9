// SPDX-License-Identifier: MPL-2.0

// Package config handles user configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/venvshell/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/venvshell/config.cue on macOS,
// %APPDATA%\venvshell\config.cue on Windows). Every key can be overridden with a
// VENVSHELL_-prefixed environment variable (VENVSHELL_CREATOR, VENVSHELL_UI_VERBOSE).
//
// Configuration files are validated against a CUE schema (config_schema.cue).
package config
