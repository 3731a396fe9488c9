// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
)

var (
	// ErrCreationFailed is wrapped by every CreationError.
	ErrCreationFailed = errors.New("environment creation failed")
	// ErrActivationFailed is wrapped by every ActivationError.
	ErrActivationFailed = errors.New("environment activation failed")
	// ErrNotDirectory is the cause when the marker path exists but is not a directory.
	ErrNotDirectory = errors.New("path exists and is not a directory")
	// ErrDanglingLink is the cause when the marker path is a symbolic link whose target is missing.
	ErrDanglingLink = errors.New("path is a symbolic link to a missing target")
	// ErrNotMaterialized is the cause when a creator reports success but no directory appeared.
	ErrNotMaterialized = errors.New("creator reported success but the directory does not exist")
)

type (
	// CreationError reports that the marker directory could not be materialized.
	// It is fatal for the session bootstrap.
	CreationError struct {
		// Path is the absolute marker path.
		Path string
		// Interpreter is the spec the creator was asked for.
		Interpreter InterpreterSpec
		// Creator names the creation primitive.
		Creator string
		// Output is the tail of the creator's stderr, if any.
		Output string
		// Cause is the underlying error.
		Cause error
	}

	// ActivationError reports that the marker exists but is not a usable environment.
	ActivationError struct {
		// Path is the absolute marker path.
		Path string
		// Reason describes what is missing.
		Reason string
		// Cause is the underlying error, if any.
		Cause error
	}
)

// Error implements the error interface.
func (e *CreationError) Error() string {
	msg := fmt.Sprintf("create environment %s", e.Path)
	if e.Creator != "" {
		msg += " with " + e.Creator
	}
	if e.Interpreter != "" {
		msg += fmt.Sprintf(" (python %s)", e.Interpreter)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause and ErrCreationFailed, so both errors.Is(err,
// ErrCreationFailed) and errors.Is(err, fs.ErrPermission) work.
func (e *CreationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCreationFailed}
	}
	return []error{ErrCreationFailed, e.Cause}
}

// Error implements the error interface.
func (e *ActivationError) Error() string {
	msg := fmt.Sprintf("activate environment %s: %s", e.Path, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause and ErrActivationFailed.
func (e *ActivationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrActivationFailed}
	}
	return []error{ErrActivationFailed, e.Cause}
}
