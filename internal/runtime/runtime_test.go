// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/venvshell/venvshell/internal/descriptor"
	"github.com/venvshell/venvshell/internal/session"
	"github.com/venvshell/venvshell/internal/testutil"
	"github.com/venvshell/venvshell/pkg/platform"
	"github.com/venvshell/venvshell/pkg/types"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if goruntime.GOOS == platform.Windows {
		t.Skip("requires a unix shell")
	}
}

// activatedEnv returns an environment whose PATH starts with a bin dir
// holding an executable "hello" script, followed by the system PATH.
func activatedEnv(t *testing.T) (session.Environ, string) {
	t.Helper()
	venv := filepath.Join(t.TempDir(), ".venv")
	binDir := testutil.MakeVenvLayout(t, venv)
	hello := filepath.Join(binDir, "hello")
	testutil.MustWriteFile(t, hello, "#!/bin/sh\necho \"hello from $VIRTUAL_ENV\"\n")
	if err := os.Chmod(hello, 0o755); err != nil {
		t.Fatal(err)
	}

	env, _ := session.Activate(
		session.FromMap(map[string]string{session.PathVar: "/usr/bin:/bin"}),
		session.Target{Dir: venv, BinDir: binDir},
	)
	return env, venv
}

func TestNativeRuntime_UsesActivatedPath(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	env, venv := activatedEnv(t)
	var stdout bytes.Buffer
	ctx := &ExecutionContext{
		Context: t.Context(),
		Env:     env,
		WorkDir: t.TempDir(),
		Argv:    []string{"hello"},
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	}

	result := NewNativeRuntime().Execute(ctx)
	if result.Error != nil || result.ExitCode != types.ExitSuccess {
		t.Fatalf("Execute() = %+v", result)
	}
	if got, want := strings.TrimSpace(stdout.String()), "hello from "+venv; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNativeRuntime_ExitCode(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	env, _ := activatedEnv(t)
	result := NewNativeRuntime().Execute(&ExecutionContext{
		Context: t.Context(),
		Env:     env,
		WorkDir: t.TempDir(),
		Argv:    []string{"sh", "-c", "exit 3"},
	})
	if result.Error != nil {
		t.Fatalf("Execute() error: %v", result.Error)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestNativeRuntime_NotFound(t *testing.T) {
	t.Parallel()

	env, _ := activatedEnv(t)
	result := NewNativeRuntime().Execute(&ExecutionContext{
		Context: t.Context(),
		Env:     env,
		WorkDir: t.TempDir(),
		Argv:    []string{"definitely-not-installed-tool"},
	})
	if result.Error == nil || result.ExitCode != 127 {
		t.Errorf("Execute() = %+v, want exit 127 with an error", result)
	}
}

func TestNativeRuntime_Validate(t *testing.T) {
	t.Parallel()

	if err := NewNativeRuntime().Validate(&ExecutionContext{}); !errors.Is(err, ErrNothingToRun) {
		t.Errorf("Validate() error = %v, want ErrNothingToRun", err)
	}
}

func TestVirtualRuntime(t *testing.T) {
	t.Parallel()

	env, venv := activatedEnv(t)
	tests := []struct {
		name     string
		script   string
		args     []string
		wantOut  string
		wantCode types.ExitCode
	}{
		{name: "sees activation", script: `echo "$VIRTUAL_ENV"`, wantOut: venv + "\n"},
		{name: "positional args", script: `echo "$1 $2"`, args: []string{"-v", "x"}, wantOut: "-v x\n"},
		{name: "exit status", script: "exit 4", wantCode: 4},
		{name: "syntax error", script: "if then", wantCode: types.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			result := NewVirtualRuntime().Execute(&ExecutionContext{
				Context:        t.Context(),
				Env:            env,
				WorkDir:        t.TempDir(),
				Script:         tt.script,
				PositionalArgs: tt.args,
				Stdout:         &stdout,
				Stderr:         &stderr,
			})
			if result.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d (err %v, stderr %q)", result.ExitCode, tt.wantCode, result.Error, stderr.String())
			}
			if tt.wantOut != "" && stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestVirtualRuntime_Validate(t *testing.T) {
	t.Parallel()

	r := NewVirtualRuntime()
	if err := r.Validate(&ExecutionContext{Script: "  "}); !errors.Is(err, ErrNothingToRun) {
		t.Errorf("Validate(blank) error = %v", err)
	}
	if err := r.Validate(&ExecutionContext{Script: "echo ok"}); err != nil {
		t.Errorf("Validate(valid) error = %v", err)
	}
	if err := r.Validate(&ExecutionContext{Script: "fi"}); err == nil {
		t.Error("Validate(invalid) should fail")
	}
}

func TestInteractiveRuntime_WithoutTerminal(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	env, venv := activatedEnv(t)
	var stdout bytes.Buffer
	r := &InteractiveRuntime{isTerminal: func(int) bool { return false }}
	result := r.Execute(&ExecutionContext{
		Context: t.Context(),
		Env:     env,
		WorkDir: t.TempDir(),
		Shell:   "sh",
		Stdin:   strings.NewReader("echo \"$VIRTUAL_ENV\"\nexit 5\n"),
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	})
	if result.Error != nil {
		t.Fatalf("Execute() error: %v", result.Error)
	}
	if result.ExitCode != 5 {
		t.Errorf("ExitCode = %d, want 5", result.ExitCode)
	}
	if got := strings.TrimSpace(stdout.String()); got != venv {
		t.Errorf("subshell VIRTUAL_ENV = %q, want %q", got, venv)
	}
}

func TestInteractiveRuntime_MissingShell(t *testing.T) {
	t.Parallel()

	env, _ := activatedEnv(t)
	r := NewInteractiveRuntime()
	ctx := &ExecutionContext{Context: t.Context(), Env: env, WorkDir: t.TempDir(), Shell: "no-such-shell"}
	if err := r.Validate(ctx); err == nil {
		t.Error("Validate() should fail for a missing shell")
	}
	if result := r.Execute(ctx); result.Error == nil {
		t.Error("Execute() should fail for a missing shell")
	}
}

func TestCheckTools(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	env, venv := activatedEnv(t)
	tools := []descriptor.Tool{{Name: "hello"}, {Name: "not-a-real-tool", Version: "1.0"}}

	statuses := CheckTools(env, t.TempDir(), tools)
	if len(statuses) != 2 {
		t.Fatalf("CheckTools() returned %d statuses", len(statuses))
	}
	if !statuses[0].Found() || statuses[0].Path != filepath.Join(venv, "bin", "hello") {
		t.Errorf("hello status = %+v", statuses[0])
	}
	if statuses[1].Found() {
		t.Errorf("missing tool reported found: %+v", statuses[1])
	}

	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "not-a-real-tool" {
		t.Errorf("Missing() = %v", missing)
	}
}
