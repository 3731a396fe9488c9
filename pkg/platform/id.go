// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrInvalidID is the sentinel error wrapped by InvalidIDError.
var ErrInvalidID = errors.New("invalid platform identifier")

type (
	// ID identifies a target platform as "<arch>-<os>", e.g. "x86_64-linux".
	ID string

	// InvalidIDError is returned when an ID is not of the form "<arch>-<os>".
	InvalidIDError struct {
		Value ID
	}
)

// archNames maps GOARCH values to the architecture names used in platform IDs.
var archNames = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "i686",
	"arm":     "armv7l",
	"riscv64": "riscv64",
	"ppc64le": "powerpc64le",
	"s390x":   "s390x",
}

// Current returns the platform ID of the running process.
func Current() ID {
	return FromGo(runtime.GOOS, runtime.GOARCH)
}

// FromGo builds a platform ID from Go's GOOS/GOARCH pair. Unknown
// architectures are passed through unchanged.
func FromGo(goos, goarch string) ID {
	arch, ok := archNames[goarch]
	if !ok {
		arch = goarch
	}
	return ID(arch + "-" + goos)
}

// Arch returns the architecture half of the ID.
func (id ID) Arch() string {
	arch, _, _ := strings.Cut(string(id), "-")
	return arch
}

// OS returns the operating-system half of the ID.
func (id ID) OS() string {
	_, osName, _ := strings.Cut(string(id), "-")
	return osName
}

// String returns the string representation of the ID.
func (id ID) String() string { return string(id) }

// IsValid returns whether the ID has a non-empty architecture and OS.
func (id ID) IsValid() (bool, []error) {
	arch, osName, ok := strings.Cut(string(id), "-")
	if !ok || strings.TrimSpace(arch) == "" || strings.TrimSpace(osName) == "" {
		return false, []error{&InvalidIDError{Value: id}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid platform identifier %q (expected <arch>-<os>, e.g. x86_64-linux)", e.Value)
}

// Unwrap returns ErrInvalidID for errors.Is() compatibility.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }
