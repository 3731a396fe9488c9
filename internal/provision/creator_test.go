// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/venvshell/venvshell/internal/session"
	"github.com/venvshell/venvshell/internal/testutil"
	"github.com/venvshell/venvshell/pkg/platform"
)

func TestNewCreator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    CreatorKind
		want    string
		wantErr bool
	}{
		{kind: CreatorUV, want: "uv"},
		{kind: CreatorVenv, want: "venv"},
		{kind: "conda", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			c, err := NewCreator(tt.kind)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCreatorKind) {
					t.Fatalf("NewCreator(%q) error = %v, want ErrInvalidCreatorKind", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCreator(%q) error: %v", tt.kind, err)
			}
			if c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
		})
	}

	for _, kind := range []CreatorKind{CreatorAuto, ""} {
		c, err := NewCreator(kind)
		if err != nil {
			t.Fatalf("NewCreator(%q) error: %v", kind, err)
		}
		if _, ok := c.(*AutoCreator); !ok {
			t.Errorf("NewCreator(%q) = %T, want *AutoCreator", kind, c)
		}
	}
}

func TestCreatorKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, kind := range []CreatorKind{"", CreatorAuto, CreatorUV, CreatorVenv} {
		if ok, errs := kind.IsValid(); !ok || len(errs) != 0 {
			t.Errorf("CreatorKind(%q).IsValid() = %v, %v", kind, ok, errs)
		}
	}
	ok, errs := CreatorKind("pipenv").IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidCreatorKind) {
		t.Errorf("CreatorKind(pipenv).IsValid() = %v, %v", ok, errs)
	}
}

func TestUVCreator_Args(t *testing.T) {
	t.Parallel()

	c := NewUVCreator()
	tests := []struct {
		spec InterpreterSpec
		want []string
	}{
		{spec: "3.14", want: []string{"venv", "--quiet", "--no-config", "--python", "3.14", "/p/.venv"}},
		{spec: ">=3.11", want: []string{"venv", "--quiet", "--no-config", "--python", ">=3.11", "/p/.venv"}},
		{spec: "", want: []string{"venv", "--quiet", "--no-config", "/p/.venv"}},
	}
	for _, tt := range tests {
		got := c.Args(CreateRequest{Dir: "/p/.venv", Interpreter: tt.spec})
		if !slices.Equal(got, tt.want) {
			t.Errorf("Args(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestVenvCreator_Command(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		spec InterpreterSpec
		want InterpreterCommand
	}{
		{goos: platform.Linux, spec: "3.14", want: InterpreterCommand{Name: "python3.14"}},
		{goos: platform.Linux, spec: "", want: InterpreterCommand{Name: "python3"}},
		{goos: platform.Linux, spec: "3.12.4", want: InterpreterCommand{Name: "python3.12", Exact: "3.12.4"}},
		{goos: platform.Linux, spec: "/opt/python/bin/python3", want: InterpreterCommand{Name: "/opt/python/bin/python3"}},
		{goos: platform.Darwin, spec: "3", want: InterpreterCommand{Name: "python3"}},
		{goos: platform.Windows, spec: "3.14", want: InterpreterCommand{Name: "py", Args: []string{"-3.14"}}},
		{goos: platform.Windows, spec: "3.12.4", want: InterpreterCommand{Name: "py", Args: []string{"-3.12"}, Exact: "3.12.4"}},
		{goos: platform.Windows, spec: "", want: InterpreterCommand{Name: "py", Args: []string{"-3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+string(tt.spec), func(t *testing.T) {
			t.Parallel()

			if tt.spec.IsPath() && runtime.GOOS == platform.Windows {
				t.Skip("unix path spec")
			}
			c := &VenvCreator{goos: tt.goos}
			got, err := c.Command(tt.spec)
			if err != nil {
				t.Fatalf("Command(%q) error: %v", tt.spec, err)
			}
			if got.Name != tt.want.Name || !slices.Equal(got.Args, tt.want.Args) || got.Exact != tt.want.Exact {
				t.Errorf("Command(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestVenvCreator_CommandUnresolvable(t *testing.T) {
	t.Parallel()

	c := &VenvCreator{goos: platform.Linux}
	for _, spec := range []InterpreterSpec{">=3.11", ">=3.11,<4", "~=3.12", "pypy3.10", "2.7", "cpython@3.12"} {
		if _, err := c.Command(spec); !errors.Is(err, ErrUnresolvableSpec) {
			t.Errorf("Command(%q) error = %v, want ErrUnresolvableSpec", spec, err)
		}
	}
}

// writeFakePython puts a python3.12 stand-in on PATH that reports version and
// creates a venv layout for "-m venv <dir>".
func writeFakePython(t *testing.T, version string) {
	t.Helper()
	if runtime.GOOS == platform.Windows {
		t.Skip("shell script interpreter stand-in requires a unix shell")
	}
	binDir := t.TempDir()
	path := filepath.Join(binDir, "python3.12")
	testutil.MustWriteFile(t, path, `#!/bin/sh
if [ "$1" = "-c" ]; then echo `+version+`; exit 0; fi
mkdir -p "$3/bin"
echo "home = /usr/bin" > "$3/pyvenv.cfg"
`)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestVenvCreator_CreatePatchPin(t *testing.T) {
	writeFakePython(t, "3.12.4")

	dir := filepath.Join(t.TempDir(), ".venv")
	env := session.FromMap(map[string]string{session.PathVar: os.Getenv("PATH")})
	if err := NewVenvCreator().Create(t.Context(), CreateRequest{Dir: dir, Interpreter: "3.12.4", Env: env}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pyvenv.cfg")); err != nil {
		t.Errorf("environment not created: %v", err)
	}
}

func TestVenvCreator_CreatePatchMismatch(t *testing.T) {
	writeFakePython(t, "3.12.1")

	dir := filepath.Join(t.TempDir(), ".venv")
	env := session.FromMap(map[string]string{session.PathVar: os.Getenv("PATH")})
	err := NewVenvCreator().Create(t.Context(), CreateRequest{Dir: dir, Interpreter: "3.12.4", Env: env})
	if !errors.Is(err, ErrInterpreterMismatch) {
		t.Fatalf("Create() error = %v, want ErrInterpreterMismatch", err)
	}
	if _, statErr := os.Stat(dir); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("environment created with the wrong interpreter")
	}
}

func TestVenvCreator_CreateSpecifierFails(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".venv")
	cache := newTestCache(t, NewVenvCreator())
	_, _, err := cache.GetOrCreate(t.Context(), session.Environ{}, dir, ">=3.11")
	if !errors.Is(err, ErrUnresolvableSpec) || !errors.Is(err, ErrCreationFailed) {
		t.Fatalf("GetOrCreate() error = %v, want ErrUnresolvableSpec as a creation failure", err)
	}
	if _, statErr := os.Stat(dir); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("marker created for an unresolvable spec")
	}
}

func TestAutoCreator_Resolve(t *testing.T) {
	t.Parallel()

	found := func(string) (string, error) { return "/usr/bin/uv", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	c := &AutoCreator{uv: NewUVCreator(), venv: NewVenvCreator(), lookPath: found}
	if got := c.Name(); got != "uv" {
		t.Errorf("with uv on PATH Name() = %q, want uv", got)
	}
	c.lookPath = missing
	if got := c.Name(); got != "venv" {
		t.Errorf("without uv Name() = %q, want venv", got)
	}
}

func TestTailBuffer(t *testing.T) {
	t.Parallel()

	var b tailBuffer
	head := strings.Repeat("h", outputTailLimit)
	if _, err := b.Write([]byte(head)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Write([]byte("tail")); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	if len(got) != outputTailLimit {
		t.Errorf("len = %d, want %d", len(got), outputTailLimit)
	}
	if !strings.HasSuffix(got, "tail") {
		t.Errorf("buffer does not end with the latest write")
	}
}

// writeFakeUV writes a uv stand-in that creates a venv layout in its last
// argument and records the VIRTUAL_ENV it was started with.
func writeFakeUV(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == platform.Windows {
		t.Skip("shell script creator stand-in requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "uv")
	testutil.MustWriteFile(t, path, "#!/bin/sh\n"+body)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUVCreator_Create(t *testing.T) {
	t.Parallel()

	uv := writeFakeUV(t, `for a; do dir=$a; done
mkdir -p "$dir/bin"
echo "home = /usr/bin" > "$dir/pyvenv.cfg"
echo "${VIRTUAL_ENV:-unset} $*" > "$dir/invocation"
`)
	dir := filepath.Join(t.TempDir(), ".venv")
	env := session.FromMap(map[string]string{
		session.PathVar:       "/usr/bin:/bin",
		session.VirtualEnvVar: "/elsewhere/.venv",
	})

	c := &UVCreator{Binary: uv}
	if err := c.Create(t.Context(), CreateRequest{Dir: dir, Interpreter: "3.14", Env: env}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "invocation"))
	if err != nil {
		t.Fatal(err)
	}
	want := "unset venv --quiet --no-config --python 3.14 " + dir
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("invocation = %q, want %q", got, want)
	}
}

func TestUVCreator_CreateFailureKeepsOutput(t *testing.T) {
	t.Parallel()

	uv := writeFakeUV(t, `echo "error: No interpreter found for Python 3.14" >&2
exit 2
`)
	c := &UVCreator{Binary: uv}
	err := c.Create(t.Context(), CreateRequest{
		Dir:         filepath.Join(t.TempDir(), ".venv"),
		Interpreter: "3.14",
		Env:         session.FromMap(map[string]string{session.PathVar: "/usr/bin:/bin"}),
	})
	if err == nil {
		t.Fatal("Create() should fail")
	}
	if got := creatorOutput(err); got != "error: No interpreter found for Python 3.14" {
		t.Errorf("creatorOutput() = %q", got)
	}
}

func TestUVCreator_MissingBinary(t *testing.T) {
	t.Parallel()

	c := &UVCreator{Binary: filepath.Join(t.TempDir(), "no-such-uv")}
	err := c.Create(t.Context(), CreateRequest{Dir: filepath.Join(t.TempDir(), ".venv")})
	if err == nil {
		t.Fatal("Create() with a missing binary should fail")
	}
	if creatorOutput(err) != "" {
		t.Error("lookup failure should carry no creator output")
	}
}
