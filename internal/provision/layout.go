// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/venvshell/venvshell/pkg/platform"
)

// pyvenvCfgName is the configuration file every virtual environment carries.
const pyvenvCfgName = "pyvenv.cfg"

// Layout is what is on disk at a marker path.
type Layout struct {
	// Path is the absolute marker path.
	Path string
	// Exists reports whether anything is at Path.
	Exists bool
	// IsDir reports whether Path is a directory.
	IsDir bool
	// DanglingLink reports whether Path is a symbolic link to nothing.
	DanglingLink bool
	// BinDir is the executable directory the environment would have.
	BinDir string
	// HasBinDir reports whether BinDir exists as a directory.
	HasBinDir bool
	// HasPyvenvCfg reports whether pyvenv.cfg exists.
	HasPyvenvCfg bool
	// Prompt is the prompt recorded in pyvenv.cfg, if any.
	Prompt string
	// Stamp is the parsed stamp, nil when absent or unreadable.
	Stamp *Stamp
	// StampErr is the error reading a stamp that is present but unreadable.
	StampErr error
}

// Inspect examines path without modifying it. Only errors other than "does
// not exist" are returned.
func Inspect(path string) (Layout, error) {
	l := Layout{
		Path:   path,
		BinDir: filepath.Join(path, platform.ExecutableDirName()),
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if _, lerr := os.Lstat(path); lerr == nil {
			l.Exists = true
			l.DanglingLink = true
		}
		return l, nil
	}
	if err != nil {
		return l, err
	}
	l.Exists = true
	l.IsDir = info.IsDir()
	if !l.IsDir {
		return l, nil
	}

	if bin, err := os.Stat(l.BinDir); err == nil && bin.IsDir() {
		l.HasBinDir = true
	}

	if prompt, ok := readPyvenvPrompt(filepath.Join(path, pyvenvCfgName)); ok {
		l.HasPyvenvCfg = true
		l.Prompt = prompt
	}

	stamp, err := ReadStamp(path)
	switch {
	case err == nil:
		l.Stamp = stamp
	case !errors.Is(err, fs.ErrNotExist):
		l.StampErr = err
	}

	return l, nil
}

// Complete reports whether the directory carries a stamp and an executable
// directory, which only happens once creation has finished.
func (l Layout) Complete() bool {
	return l.IsDir && l.Stamp != nil && l.HasBinDir
}

// LooksLikeVenv reports whether the directory has the layout of a virtual
// environment regardless of which tool created it.
func (l Layout) LooksLikeVenv() bool {
	return l.IsDir && l.HasPyvenvCfg && l.HasBinDir
}

// readPyvenvPrompt reads pyvenv.cfg and returns its "prompt" value. The
// second result reports whether the file could be read at all.
func readPyvenvPrompt(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	prompt := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || strings.TrimSpace(key) != "prompt" {
			continue
		}
		prompt = strings.Trim(strings.TrimSpace(value), `'"`)
	}
	return prompt, true
}
