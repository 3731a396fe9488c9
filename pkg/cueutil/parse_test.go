// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSchema = `
#Pin: {
	name:    string & !=""
	version: string | *""
	strict?: bool
}
`

type testPin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Strict  bool   `json:"strict"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	result, err := ParseAndDecode[testPin]([]byte(testSchema), []byte(`name: "ruff"`), "#Pin")
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if result.Value.Name != "ruff" {
		t.Errorf("Name = %q, want ruff", result.Value.Name)
	}
	if result.Value.Version != "" {
		t.Errorf("Version = %q, want default empty", result.Value.Version)
	}
}

func TestParseAndDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testPin]([]byte(testSchema), []byte(`name: ""`), "#Pin", WithFilename("pin.cue"))
	if err == nil {
		t.Fatal("expected validation error for empty name")
	}
	if !strings.Contains(err.Error(), "pin.cue") {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestParseAndDecode_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testPin]([]byte(testSchema), []byte("name: \"ruff\"\nbogus: 1"), "#Pin")
	if err == nil {
		t.Fatal("expected error for field not allowed by closed definition")
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testPin]([]byte(testSchema), []byte(`name: "ruff"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Fatalf("expected missing definition error, got %v", err)
	}
}

func TestParseAndDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "` + strings.Repeat("x", 64) + `"`)
	_, err := ParseAndDecode[testPin]([]byte(testSchema), data, "#Pin", WithMaxFileSize(16))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestUnify_NonConcrete(t *testing.T) {
	t.Parallel()

	schema := []byte("#Cfg: {\n\tname?: string\n\tlevel: int\n}\n")
	if _, err := Unify(schema, []byte(`name: "x"`), "#Cfg", WithConcrete(false)); err != nil {
		t.Fatalf("Unify(concrete=false) error: %v", err)
	}
	if _, err := Unify(schema, []byte(`name: "x"`), "#Cfg"); err == nil {
		t.Fatal("Unify(concrete=true) should reject missing concrete level")
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pin.cue")
	if err := os.WriteFile(path, []byte(`name: "just"
version: "1.36.0"`), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ParseFile[testPin]([]byte(testSchema), path, "#Pin")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if result.Value.Version != "1.36.0" {
		t.Errorf("Version = %q, want 1.36.0", result.Value.Version)
	}

	if _, err := ParseFile[testPin]([]byte(testSchema), filepath.Join(t.TempDir(), "missing.cue"), "#Pin"); err == nil {
		t.Fatal("ParseFile() on missing file returned nil error")
	}
}
