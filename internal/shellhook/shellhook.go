// SPDX-License-Identifier: MPL-2.0

package shellhook

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/venvshell/venvshell/internal/session"
)

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Sh   Shell = "sh"
	Fish Shell = "fish"
)

var (
	// ErrUnsupportedShell is the sentinel error wrapped by UnsupportedShellError.
	ErrUnsupportedShell = errors.New("unsupported shell")

	namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// Shell is a shell dialect hook code can be rendered for.
	Shell string

	// UnsupportedShellError is returned for a shell without a renderer.
	UnsupportedShellError struct {
		Value string
	}
)

// Shells returns the supported dialects.
func Shells() []Shell {
	return []Shell{Bash, Zsh, Sh, Fish}
}

// Parse returns the Shell named by s. Paths are accepted, so the value of
// $SHELL can be passed as-is; "dash", "ash" and "ksh" render as sh.
func Parse(s string) (Shell, error) {
	name := strings.TrimSuffix(filepath.Base(s), ".exe")
	switch name {
	case "bash", "zsh", "sh", "fish":
		return Shell(name), nil
	case "dash", "ash", "ksh", "mksh", "busybox":
		return Sh, nil
	default:
		return "", &UnsupportedShellError{Value: s}
	}
}

// String returns the string representation of the shell.
func (s Shell) String() string { return string(s) }

// IsValid returns whether s has a renderer.
func (s Shell) IsValid() (bool, []error) {
	switch s {
	case Bash, Zsh, Sh, Fish:
		return true, nil
	default:
		return false, []error{&UnsupportedShellError{Value: string(s)}}
	}
}

// Render returns shell code that applies delta. Unsets come before sets.
func Render(shell Shell, delta session.Delta) (string, error) {
	if valid, errs := shell.IsValid(); !valid {
		return "", errors.Join(errs...)
	}
	for _, v := range delta.Set {
		if !namePattern.MatchString(v.Name) {
			return "", fmt.Errorf("invalid variable name %q", v.Name)
		}
	}
	for _, name := range delta.Unset {
		if !namePattern.MatchString(name) {
			return "", fmt.Errorf("invalid variable name %q", name)
		}
	}

	if shell == Fish {
		return renderFish(delta), nil
	}
	return renderPOSIX(shell, delta)
}

func renderPOSIX(shell Shell, delta session.Delta) (string, error) {
	lang := syntax.LangBash
	if shell == Sh {
		lang = syntax.LangPOSIX
	}

	var b strings.Builder
	for _, name := range delta.Unset {
		fmt.Fprintf(&b, "unset %s;\n", name)
	}
	for _, v := range delta.Set {
		quoted, err := syntax.Quote(v.Value, lang)
		if err != nil {
			return "", fmt.Errorf("quote %s for %s: %w", v.Name, shell, err)
		}
		fmt.Fprintf(&b, "export %s=%s;\n", v.Name, quoted)
	}

	// Forget cached command locations so the environment's executables win.
	if shell == Zsh {
		b.WriteString("rehash;\n")
	} else {
		b.WriteString("hash -r 2>/dev/null || true;\n")
	}
	return b.String(), nil
}

func renderFish(delta session.Delta) string {
	var b strings.Builder
	for _, name := range delta.Unset {
		fmt.Fprintf(&b, "set -e %s;\n", name)
	}
	for _, v := range delta.Set {
		fmt.Fprintf(&b, "set -gx %s", v.Name)
		if v.Name == session.PathVar {
			// fish keeps PATH as a list.
			for _, entry := range filepath.SplitList(v.Value) {
				b.WriteString(" " + fishQuote(entry))
			}
		} else {
			b.WriteString(" " + fishQuote(v.Value))
		}
		b.WriteString(";\n")
	}
	return b.String()
}

// fishQuote single-quotes s. Inside fish single quotes only \\ and \' are escapes.
func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

// Error implements the error interface.
func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell %q (supported: bash, zsh, sh, fish)", e.Value)
}

// Unwrap returns ErrUnsupportedShell for errors.Is() compatibility.
func (e *UnsupportedShellError) Unwrap() error { return ErrUnsupportedShell }
