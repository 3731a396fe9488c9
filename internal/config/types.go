// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/venvshell/venvshell/pkg/platform"
)

const (
	// CreatorAuto picks uv when installed and venv otherwise.
	// Defined locally to avoid coupling config to internal/provision.
	CreatorAuto CreatorKind = "auto"
	// CreatorUV creates environments with uv.
	CreatorUV CreatorKind = "uv"
	// CreatorVenv creates environments with the interpreter's venv module.
	CreatorVenv CreatorKind = "venv"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidCreatorKind is returned when a CreatorKind value is not recognized.
	ErrInvalidCreatorKind = errors.New("invalid creator")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidMarkerPath is returned when the marker path is empty, whitespace-only,
	// or a reserved device name.
	ErrInvalidMarkerPath = errors.New("invalid marker path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CreatorKind selects how missing environments are created.
	// The orchestrator casts to provision.CreatorKind at the boundary.
	CreatorKind string

	// InvalidCreatorKindError is returned when a CreatorKind value is not recognized.
	// It wraps ErrInvalidCreatorKind for errors.Is() compatibility.
	InvalidCreatorKindError struct {
		Value CreatorKind
	}

	// ColorScheme specifies the terminal color scheme.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Marker is the environment directory, relative to the session root.
		Marker string `json:"marker" mapstructure:"marker"`
		// Python is the interpreter spec used when nothing in the project pins one.
		Python string `json:"python" mapstructure:"python"`
		// Creator selects the creation tool.
		Creator CreatorKind `json:"creator" mapstructure:"creator"`
		// StrictLayout rejects existing markers that are not virtual environments.
		StrictLayout bool `json:"strict_layout" mapstructure:"strict_layout"`
		// Descriptor is the project descriptor file, relative to the session root.
		Descriptor string `json:"descriptor" mapstructure:"descriptor"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and detailed error output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Marker:       ".venv",
		Creator:      CreatorAuto,
		StrictLayout: true,
		Descriptor:   "venvshell.cue",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the CreatorKind.
func (k CreatorKind) String() string { return string(k) }

// IsValid returns whether the CreatorKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k CreatorKind) IsValid() (bool, []error) {
	switch k {
	case CreatorAuto, CreatorUV, CreatorVenv:
		return true, nil
	default:
		return false, []error{&InvalidCreatorKindError{Value: k}}
	}
}

// Error implements the error interface.
func (e *InvalidCreatorKindError) Error() string {
	return fmt.Sprintf("invalid creator %q (valid: auto, uv, venv)", e.Value)
}

// Unwrap returns ErrInvalidCreatorKind for errors.Is() compatibility.
func (e *InvalidCreatorKindError) Unwrap() error { return ErrInvalidCreatorKind }

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// GlamourStyle returns the glamour style name for the color scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// IsValid returns whether the Config has valid fields.
// It delegates to CreatorKind.IsValid() and ColorScheme.IsValid() and checks
// the marker path.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	switch {
	case strings.TrimSpace(c.Marker) == "":
		errs = append(errs, fmt.Errorf("marker: %w", ErrInvalidMarkerPath))
	case platform.IsWindowsReservedName(filepath.Base(c.Marker)):
		errs = append(errs, fmt.Errorf("marker %q is a reserved device name: %w", c.Marker, ErrInvalidMarkerPath))
	}
	if valid, fieldErrs := c.Creator.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors, so errors.Is() matches
// both the config-level and the field-level sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
