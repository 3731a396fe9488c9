// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "test.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "test.cue") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original error, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: []string{}, expected: ""},
		{name: "single element", path: []string{"python"}, expected: "python"},
		{name: "nested path", path: []string{"ui", "verbose"}, expected: "ui.verbose"},
		{name: "list index", path: []string{"tools", "0", "name"}, expected: "tools[0].name"},
		{name: "leading number is a field", path: []string{"0", "name"}, expected: "0.name"},
		{
			name:     "platform key",
			path:     []string{"platforms", "x86_64-linux", "tools", "2"},
			expected: "platforms.x86_64-linux.tools[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("CheckFileSize() at limit returned error: %v", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "f.cue")
	if err == nil {
		t.Fatal("CheckFileSize() over limit returned nil")
	}
	if !strings.Contains(err.Error(), "f.cue") {
		t.Errorf("error should name the file, got: %v", err)
	}
}
