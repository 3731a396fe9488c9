// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"testing"
)

func TestInterpreterSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec      InterpreterSpec
		isVersion bool
		isPath    bool
		valid     bool
	}{
		{spec: "", valid: true},
		{spec: "3", isVersion: true, valid: true},
		{spec: "3.14", isVersion: true, valid: true},
		{spec: "3.14.0", isVersion: true, valid: true},
		{spec: "3.14.0.1", valid: true},
		{spec: "2.7", valid: true},
		{spec: ">=3.11", valid: true},
		{spec: "pypy@3.10", valid: true},
		{spec: "/usr/bin/python3", isPath: true, valid: true},
		{spec: "3.14 --system"},
		{spec: "3.14\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec), func(t *testing.T) {
			t.Parallel()

			if got := tt.spec.IsVersion(); got != tt.isVersion {
				t.Errorf("IsVersion() = %v, want %v", got, tt.isVersion)
			}
			if tt.isPath && !tt.spec.IsPath() {
				t.Errorf("IsPath() = false, want true")
			}
			valid, errs := tt.spec.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v, want %v", valid, tt.valid)
			}
			if !valid && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidInterpreterSpec)) {
				t.Errorf("IsValid() errors = %v, want ErrInvalidInterpreterSpec", errs)
			}
		})
	}
}

func TestInterpreterSpec_MinorVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec      InterpreterSpec
		wantMinor string
		wantPatch bool
	}{
		{"3", "3", false},
		{"3.14", "3.14", false},
		{"3.12.4", "3.12", true},
	}
	for _, tt := range tests {
		minor, patch := tt.spec.MinorVersion()
		if minor != tt.wantMinor || patch != tt.wantPatch {
			t.Errorf("MinorVersion(%q) = %q, %v, want %q, %v", tt.spec, minor, patch, tt.wantMinor, tt.wantPatch)
		}
	}
}
