// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when set.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir. Tests use it instead of
// faking HOME, which os.UserHomeDir does not honor on every platform.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the override set by SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}
