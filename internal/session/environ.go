// SPDX-License-Identifier: MPL-2.0

package session

import (
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/venvshell/venvshell/pkg/platform"
)

// PathVar is the name of the command search path variable.
const PathVar = "PATH"

// Environ is a copy of a process environment. The zero value is empty and
// ready to use. Names are case-insensitive on Windows.
type Environ struct {
	vars map[string]string
}

// FromOS captures the current process environment.
func FromOS() Environ {
	return FromSlice(os.Environ())
}

// FromSlice builds an Environ from "KEY=VALUE" entries. Malformed entries and
// Windows per-drive entries ("=C:=C:\") are skipped.
func FromSlice(entries []string) Environ {
	e := Environ{vars: make(map[string]string, len(entries))}
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		e.Set(name, value)
	}
	return e
}

// FromMap builds an Environ from a name/value map.
func FromMap(m map[string]string) Environ {
	e := Environ{vars: make(map[string]string, len(m))}
	for name, value := range m {
		e.Set(name, value)
	}
	return e
}

// Lookup returns the value of name and whether it is set.
func (e Environ) Lookup(name string) (string, bool) {
	v, ok := e.vars[e.key(name)]
	return v, ok
}

// Get returns the value of name, or "" if unset.
func (e Environ) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Set assigns value to name.
func (e *Environ) Set(name, value string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[e.key(name)] = value
}

// Unset removes name.
func (e *Environ) Unset(name string) {
	delete(e.vars, e.key(name))
}

// Clone returns an independent copy.
func (e Environ) Clone() Environ {
	return Environ{vars: maps.Clone(e.vars)}
}

// Slice returns the environment as sorted "KEY=VALUE" entries, the form
// exec.Cmd.Env expects.
func (e Environ) Slice() []string {
	names := slices.Sorted(maps.Keys(e.vars))
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+"="+e.vars[name])
	}
	return out
}

// Map returns a copy of the environment as a map.
func (e Environ) Map() map[string]string {
	return maps.Clone(e.vars)
}

// Len returns the number of variables.
func (e Environ) Len() int {
	return len(e.vars)
}

// key returns the map key to use for name: on Windows the spelling of an
// existing variable wins, so "Path" and "PATH" address the same entry.
func (e Environ) key(name string) string {
	if runtime.GOOS != platform.Windows {
		return name
	}
	for existing := range e.vars {
		if strings.EqualFold(existing, name) {
			return existing
		}
	}
	return name
}
