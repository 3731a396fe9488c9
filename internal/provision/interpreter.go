// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidInterpreterSpec is the sentinel error wrapped by InvalidInterpreterSpecError.
var ErrInvalidInterpreterSpec = errors.New("invalid interpreter spec")

// versionPattern matches plain Python versions: "3", "3.14", "3.14.0".
var versionPattern = regexp.MustCompile(`^3(\.[0-9]+){0,2}$`)

type (
	// InterpreterSpec identifies the Python runtime to create an environment
	// with. It is a plain version ("3.14"), a version specifier (">=3.11"), an
	// interpreter path, or empty for the creator's default. It is only used at
	// creation time.
	InterpreterSpec string

	// SpecFunc supplies the interpreter spec when an environment has to be
	// created.
	SpecFunc func() (InterpreterSpec, error)

	// InvalidInterpreterSpecError is returned when a spec contains whitespace
	// or control characters.
	InvalidInterpreterSpecError struct {
		Value InterpreterSpec
	}
)

// FixedSpec returns a SpecFunc that always yields spec.
func FixedSpec(spec InterpreterSpec) SpecFunc {
	return func() (InterpreterSpec, error) { return spec, nil }
}

// String returns the string representation of the spec.
func (s InterpreterSpec) String() string { return string(s) }

// IsVersion reports whether the spec is a plain version like "3.14".
func (s InterpreterSpec) IsVersion() bool {
	return versionPattern.MatchString(string(s))
}

// MinorVersion returns the "X.Y" prefix of a plain version and whether the
// version also pins a patch level.
func (s InterpreterSpec) MinorVersion() (minor string, patch bool) {
	parts := strings.SplitN(string(s), ".", 3)
	if len(parts) < 3 {
		return string(s), false
	}
	return parts[0] + "." + parts[1], true
}

// IsPath reports whether the spec names an interpreter by path.
func (s InterpreterSpec) IsPath() bool {
	return filepath.IsAbs(string(s)) || strings.ContainsRune(string(s), filepath.Separator)
}

// IsValid returns whether the spec is usable as a single command-line argument.
// The zero value is valid.
func (s InterpreterSpec) IsValid() (bool, []error) {
	if strings.ContainsFunc(string(s), func(r rune) bool { return r <= ' ' || r == 0x7f }) {
		return false, []error{&InvalidInterpreterSpecError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidInterpreterSpecError) Error() string {
	return fmt.Sprintf("invalid interpreter spec %q: must not contain whitespace or control characters", e.Value)
}

// Unwrap returns ErrInvalidInterpreterSpec for errors.Is() compatibility.
func (e *InvalidInterpreterSpecError) Unwrap() error { return ErrInvalidInterpreterSpec }
